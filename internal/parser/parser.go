package parser

import "fmt"

// Parser builds an AST from a token stream by recursive descent with
// precedence climbing. Parsing is total: it always returns a Program,
// possibly with fewer statements than the source contained, plus the
// list of recovered error messages. A failed statement is dropped and
// parsing resumes at the next synchronization point (panic mode).
type Parser struct {
	tokens []Token
	pos    int
	errs   []string
}

// Keywords that begin a statement; panic-mode recovery stops here.
var syncKeywords = map[string]bool{
	"function": true, "var": true, "let": true, "const": true,
	"if": true, "while": true, "for": true, "return": true,
}

// Parse lexes and parses source in one call.
func Parse(source string) (*Program, []string) {
	return ParseTokens(Tokenize(source))
}

// ParseTokens parses an already lexed token stream. Comment and Newline
// tokens are filtered out first; the grammar never sees them.
func ParseTokens(tokens []Token) (*Program, []string) {
	filtered := make([]Token, 0, len(tokens))
	for _, tok := range tokens {
		if tok.Kind == TokenComment || tok.Kind == TokenNewline {
			continue
		}
		filtered = append(filtered, tok)
	}

	p := &Parser{tokens: filtered}
	program := p.parseProgram()
	return program, p.errs
}

func (p *Parser) parseProgram() *Program {
	program := &Program{Position: Position{Line: 1, Column: 1}}

	for !p.isAtEnd() {
		stmt := p.parseStatement()
		if stmt != nil {
			program.Body = append(program.Body, stmt)
		} else {
			p.synchronize()
		}
	}

	return program
}

// synchronize discards tokens until a ';' is consumed, a statement
// keyword is reached, or the input ends.
func (p *Parser) synchronize() {
	for !p.isAtEnd() {
		if p.check(TokenSemicolon) {
			p.advance()
			return
		}
		if p.check(TokenKeyword) && syncKeywords[p.current().Text] {
			return
		}
		p.advance()
	}
}

func (p *Parser) parseStatement() Node {
	tok := p.current()

	if tok.Kind == TokenKeyword {
		switch tok.Text {
		case "var", "let", "const":
			return p.parseVarDecl()
		case "function":
			return p.parseFunctionDecl()
		case "if":
			return p.parseIfStatement()
		case "return":
			return p.parseReturnStatement()
		case "for", "while":
			return p.parseLoopStatement()
		}
	}
	if tok.Kind == TokenLBrace {
		return p.parseBlock()
	}

	return p.parseExpressionStatement()
}

func (p *Parser) parseVarDecl() Node {
	kw := p.advance()
	decl := &VariableDeclaration{
		Position: tokenPos(kw),
		DeclKind: kw.Text,
	}

	for {
		d := p.parseDeclarator()
		if d == nil {
			return nil
		}
		decl.Declarations = append(decl.Declarations, d)
		if !p.check(TokenComma) {
			break
		}
		p.advance()
	}

	if p.check(TokenSemicolon) {
		p.advance()
	}
	return decl
}

func (p *Parser) parseDeclarator() *VariableDeclarator {
	nameTok, ok := p.expect(TokenIdentifier)
	if !ok {
		return nil
	}

	d := &VariableDeclarator{
		Position: tokenPos(nameTok),
		ID:       &Identifier{Position: tokenPos(nameTok), Name: nameTok.Text},
	}

	if p.check(TokenAssignment) && p.current().Text == "=" {
		p.advance()
		init := p.parseAssignment()
		if init == nil {
			return nil
		}
		d.Init = init
	}
	return d
}

func (p *Parser) parseFunctionDecl() Node {
	kw := p.advance()

	nameTok, ok := p.expect(TokenIdentifier)
	if !ok {
		return nil
	}
	if _, ok := p.expect(TokenLParen); !ok {
		return nil
	}

	var params []*Identifier
	for !p.check(TokenRParen) && !p.isAtEnd() {
		paramTok, ok := p.expect(TokenIdentifier)
		if !ok {
			return nil
		}
		params = append(params, &Identifier{Position: tokenPos(paramTok), Name: paramTok.Text})
		if !p.check(TokenComma) {
			break
		}
		p.advance()
	}
	if _, ok := p.expect(TokenRParen); !ok {
		return nil
	}

	body := p.parseBlockStatement()
	if body == nil {
		return nil
	}

	return &FunctionDeclaration{
		Position: tokenPos(kw),
		Name:     &Identifier{Position: tokenPos(nameTok), Name: nameTok.Text},
		Params:   params,
		Body:     body,
	}
}

func (p *Parser) parseBlock() Node {
	block := p.parseBlockStatement()
	if block == nil {
		return nil
	}
	return block
}

func (p *Parser) parseBlockStatement() *BlockStatement {
	lbrace, ok := p.expect(TokenLBrace)
	if !ok {
		return nil
	}

	block := &BlockStatement{Position: tokenPos(lbrace)}
	for !p.check(TokenRBrace) && !p.isAtEnd() {
		stmt := p.parseStatement()
		if stmt != nil {
			block.Body = append(block.Body, stmt)
		} else {
			p.synchronize()
		}
	}

	if _, ok := p.expect(TokenRBrace); !ok {
		return nil
	}
	return block
}

func (p *Parser) parseIfStatement() Node {
	kw := p.advance()

	if _, ok := p.expect(TokenLParen); !ok {
		return nil
	}
	test := p.parseExpression()
	if test == nil {
		return nil
	}
	if _, ok := p.expect(TokenRParen); !ok {
		return nil
	}

	consequent := p.parseStatement()
	if consequent == nil {
		return nil
	}

	stmt := &IfStatement{
		Position:   tokenPos(kw),
		Test:       test,
		Consequent: consequent,
	}

	if p.check(TokenKeyword) && p.current().Text == "else" {
		p.advance()
		alternate := p.parseStatement()
		if alternate == nil {
			return nil
		}
		stmt.Alternate = alternate
	}
	return stmt
}

func (p *Parser) parseReturnStatement() Node {
	kw := p.advance()
	stmt := &ReturnStatement{Position: tokenPos(kw)}

	if p.check(TokenSemicolon) {
		p.advance()
		return stmt
	}
	if p.check(TokenRBrace) || p.isAtEnd() {
		return stmt
	}

	arg := p.parseExpression()
	if arg == nil {
		return nil
	}
	stmt.Argument = arg

	if p.check(TokenSemicolon) {
		p.advance()
	}
	return stmt
}

// parseLoopStatement handles `for` and `while`. The parenthesized
// header is skipped with balanced-paren counting rather than parsed;
// the body is parsed as an ordinary statement. The analyzer only needs
// to know it is nested under a loop, not the loop's clauses.
func (p *Parser) parseLoopStatement() Node {
	kw := p.advance()

	if _, ok := p.expect(TokenLParen); !ok {
		return nil
	}
	depth := 1
	for !p.isAtEnd() && depth > 0 {
		if p.check(TokenLParen) {
			depth++
		} else if p.check(TokenRParen) {
			depth--
		}
		p.advance()
	}

	body := p.parseStatement()
	if body == nil {
		return nil
	}

	return &LoopStatement{
		Position: tokenPos(kw),
		Keyword:  kw.Text,
		Body:     body,
	}
}

func (p *Parser) parseExpressionStatement() Node {
	expr := p.parseExpression()
	if expr == nil {
		return nil
	}

	if p.check(TokenSemicolon) {
		p.advance()
	}

	return &ExpressionStatement{
		Position:   nodePos(expr),
		Expression: expr,
	}
}

func (p *Parser) parseExpression() Node {
	return p.parseAssignment()
}

// parseAssignment is right-associative: the right-hand side recurses
// into parseAssignment itself, so a = b = c groups as a = (b = c).
func (p *Parser) parseAssignment() Node {
	left := p.parseLogicalOr()
	if left == nil {
		return nil
	}

	if p.check(TokenAssignment) {
		op := p.advance()
		right := p.parseAssignment()
		if right == nil {
			return nil
		}
		return &AssignmentExpression{
			Position: nodePos(left),
			Operator: op.Text,
			Left:     left,
			Right:    right,
		}
	}
	return left
}

func (p *Parser) parseLogicalOr() Node {
	left := p.parseLogicalAnd()
	if left == nil {
		return nil
	}

	for p.check(TokenLogical) && p.current().Text == "||" {
		op := p.advance()
		right := p.parseLogicalAnd()
		if right == nil {
			return nil
		}
		left = &BinaryExpression{Position: nodePos(left), Operator: op.Text, Left: left, Right: right}
	}
	return left
}

func (p *Parser) parseLogicalAnd() Node {
	left := p.parseEquality()
	if left == nil {
		return nil
	}

	for p.check(TokenLogical) && p.current().Text == "&&" {
		op := p.advance()
		right := p.parseEquality()
		if right == nil {
			return nil
		}
		left = &BinaryExpression{Position: nodePos(left), Operator: op.Text, Left: left, Right: right}
	}
	return left
}

var equalityOps = map[string]bool{"==": true, "!=": true, "===": true, "!==": true}

func (p *Parser) parseEquality() Node {
	left := p.parseRelational()
	if left == nil {
		return nil
	}

	for p.check(TokenComparison) && equalityOps[p.current().Text] {
		op := p.advance()
		right := p.parseRelational()
		if right == nil {
			return nil
		}
		left = &BinaryExpression{Position: nodePos(left), Operator: op.Text, Left: left, Right: right}
	}
	return left
}

var relationalOps = map[string]bool{"<": true, ">": true, "<=": true, ">=": true}

func (p *Parser) parseRelational() Node {
	left := p.parseAdditive()
	if left == nil {
		return nil
	}

	for p.check(TokenComparison) && relationalOps[p.current().Text] {
		op := p.advance()
		right := p.parseAdditive()
		if right == nil {
			return nil
		}
		left = &BinaryExpression{Position: nodePos(left), Operator: op.Text, Left: left, Right: right}
	}
	return left
}

func (p *Parser) parseAdditive() Node {
	left := p.parseMultiplicative()
	if left == nil {
		return nil
	}

	for p.check(TokenArithmetic) && (p.current().Text == "+" || p.current().Text == "-") {
		op := p.advance()
		right := p.parseMultiplicative()
		if right == nil {
			return nil
		}
		left = &BinaryExpression{Position: nodePos(left), Operator: op.Text, Left: left, Right: right}
	}
	return left
}

func (p *Parser) parseMultiplicative() Node {
	left := p.parseUnary()
	if left == nil {
		return nil
	}

	for p.check(TokenArithmetic) &&
		(p.current().Text == "*" || p.current().Text == "/" || p.current().Text == "%") {
		op := p.advance()
		right := p.parseUnary()
		if right == nil {
			return nil
		}
		left = &BinaryExpression{Position: nodePos(left), Operator: op.Text, Left: left, Right: right}
	}
	return left
}

func (p *Parser) parseUnary() Node {
	if p.check(TokenUnary) {
		op := p.advance()
		operand := p.parseUnary()
		if operand == nil {
			return nil
		}
		return &UnaryExpression{Position: tokenPos(op), Operator: op.Text, Operand: operand}
	}
	return p.parsePostfix()
}

// parsePostfix chains member accesses and calls left-associatively:
// each suffix wraps the previously built node.
func (p *Parser) parsePostfix() Node {
	expr := p.parsePrimary()
	if expr == nil {
		return nil
	}

	for {
		switch {
		case p.check(TokenDot):
			p.advance()
			nameTok, ok := p.expect(TokenIdentifier)
			if !ok {
				return nil
			}
			expr = &MemberExpression{
				Position: nodePos(expr),
				Object:   expr,
				Property: &Identifier{Position: tokenPos(nameTok), Name: nameTok.Text},
				Computed: false,
			}

		case p.check(TokenLBracket):
			p.advance()
			index := p.parseExpression()
			if index == nil {
				return nil
			}
			if _, ok := p.expect(TokenRBracket); !ok {
				return nil
			}
			expr = &MemberExpression{
				Position: nodePos(expr),
				Object:   expr,
				Property: index,
				Computed: true,
			}

		case p.check(TokenLParen):
			p.advance()
			call := &CallExpression{Position: nodePos(expr), Callee: expr}
			for !p.check(TokenRParen) && !p.isAtEnd() {
				arg := p.parseAssignment()
				if arg == nil {
					return nil
				}
				call.Arguments = append(call.Arguments, arg)
				if !p.check(TokenComma) {
					break
				}
				p.advance()
			}
			if _, ok := p.expect(TokenRParen); !ok {
				return nil
			}
			expr = call

		default:
			return expr
		}
	}
}

func (p *Parser) parsePrimary() Node {
	tok := p.current()

	switch tok.Kind {
	case TokenIdentifier:
		p.advance()
		return &Identifier{Position: tokenPos(tok), Name: tok.Text}
	case TokenNumber:
		p.advance()
		return &Literal{Position: tokenPos(tok), LitKind: NumberLiteral, Value: tok.Text}
	case TokenString:
		p.advance()
		return &Literal{Position: tokenPos(tok), LitKind: StringLiteral, Value: tok.Text}
	case TokenBoolean:
		p.advance()
		return &Literal{Position: tokenPos(tok), LitKind: BooleanLiteral, Value: tok.Text}
	case TokenNull:
		p.advance()
		return &Literal{Position: tokenPos(tok), LitKind: NullLiteral, Value: tok.Text}
	case TokenLParen:
		p.advance()
		expr := p.parseExpression()
		if expr == nil {
			return nil
		}
		if _, ok := p.expect(TokenRParen); !ok {
			return nil
		}
		return expr
	case TokenLBracket:
		return p.parseArray()
	case TokenLBrace:
		return p.parseObject()
	}

	p.errorf("Expected expression, got %s at %d:%d", describe(tok), tok.Line, tok.Column)
	if !p.isAtEnd() {
		p.advance()
	}
	return nil
}

func (p *Parser) parseArray() Node {
	lbracket := p.advance()
	arr := &ArrayExpression{Position: tokenPos(lbracket)}

	for !p.check(TokenRBracket) && !p.isAtEnd() {
		elem := p.parseAssignment()
		if elem == nil {
			return nil
		}
		arr.Elements = append(arr.Elements, elem)
		if !p.check(TokenComma) {
			break
		}
		p.advance()
	}

	if _, ok := p.expect(TokenRBracket); !ok {
		return nil
	}
	return arr
}

func (p *Parser) parseObject() Node {
	lbrace := p.advance()
	obj := &ObjectExpression{Position: tokenPos(lbrace)}

	for !p.check(TokenRBrace) && !p.isAtEnd() {
		key := p.parsePropertyKey()
		if key == nil {
			return nil
		}
		if _, ok := p.expect(TokenColon); !ok {
			return nil
		}
		value := p.parseAssignment()
		if value == nil {
			return nil
		}
		obj.Properties = append(obj.Properties, &Property{
			Position: nodePos(key),
			Key:      key,
			Value:    value,
		})
		if !p.check(TokenComma) {
			break
		}
		p.advance()
	}

	if _, ok := p.expect(TokenRBrace); !ok {
		return nil
	}
	return obj
}

func (p *Parser) parsePropertyKey() Node {
	tok := p.current()
	switch tok.Kind {
	case TokenIdentifier, TokenKeyword, TokenBoolean, TokenNull:
		p.advance()
		return &Identifier{Position: tokenPos(tok), Name: tok.Text}
	case TokenString:
		p.advance()
		return &Literal{Position: tokenPos(tok), LitKind: StringLiteral, Value: tok.Text}
	case TokenNumber:
		p.advance()
		return &Literal{Position: tokenPos(tok), LitKind: NumberLiteral, Value: tok.Text}
	}

	p.errorf("Expected property key, got %s at %d:%d", describe(tok), tok.Line, tok.Column)
	if !p.isAtEnd() {
		p.advance()
	}
	return nil
}

func (p *Parser) current() Token {
	if p.pos < len(p.tokens) {
		return p.tokens[p.pos]
	}
	return Token{Kind: TokenEOF}
}

func (p *Parser) advance() Token {
	tok := p.current()
	if p.pos < len(p.tokens) {
		p.pos++
	}
	return tok
}

func (p *Parser) check(kind TokenKind) bool {
	return p.current().Kind == kind
}

func (p *Parser) isAtEnd() bool {
	return p.current().Kind == TokenEOF
}

// expect consumes the current token if it has the wanted kind.
// Otherwise it records a diagnostic and discards the offending token;
// the caller is responsible for abandoning the statement.
func (p *Parser) expect(kind TokenKind) (Token, bool) {
	if p.check(kind) {
		return p.advance(), true
	}
	tok := p.current()
	p.errorf("Expected %s, got %s at %d:%d", kind, describe(tok), tok.Line, tok.Column)
	if !p.isAtEnd() {
		p.advance()
	}
	return tok, false
}

func (p *Parser) errorf(format string, args ...interface{}) {
	p.errs = append(p.errs, fmt.Sprintf(format, args...))
}

func describe(tok Token) string {
	if tok.Kind == TokenEOF {
		return "end of input"
	}
	return "'" + tok.Text + "'"
}

func tokenPos(tok Token) Position {
	return Position{Line: tok.Line, Column: tok.Column}
}

func nodePos(n Node) Position {
	line, col := n.Pos()
	return Position{Line: line, Column: col}
}
