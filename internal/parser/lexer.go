package parser

// Lexer tokenizes JavaScript source code. Tokenization is total: any
// input produces a token slice ending in exactly one EOF token, with
// unrecognized characters emitted as Unknown tokens rather than errors.
type Lexer struct {
	input  string
	pos    int
	line   int
	column int
	tokens []Token
}

// NewLexer creates a new lexer for the given input
func NewLexer(input string) *Lexer {
	return &Lexer{
		input:  input,
		pos:    0,
		line:   1,
		column: 1,
	}
}

// Tokenize is a convenience wrapper that lexes source in one call.
func Tokenize(source string) []Token {
	return NewLexer(source).Tokenize()
}

// Tokenize processes the entire input and returns all tokens
func (l *Lexer) Tokenize() []Token {
	for l.pos < len(l.input) {
		ch := l.input[l.pos]

		switch {
		case ch == ' ' || ch == '\t' || ch == '\r':
			l.advance()
		case ch == '\n':
			l.addToken(TokenNewline, "\n")
			l.advance()
		case ch == '/' && l.peek() == '/':
			l.readLineComment()
		case ch == '/' && l.peek() == '*':
			l.readBlockComment()
		case ch == '"' || ch == '\'' || ch == '`':
			l.readString(ch)
		case isDigit(ch):
			l.readNumber()
		case isIdentStart(ch):
			l.readIdentifier()
		case isOperatorChar(ch):
			l.readOperator()
		default:
			if kind, ok := punctuation[ch]; ok {
				l.addToken(kind, string(ch))
			} else {
				l.addToken(TokenUnknown, string(ch))
			}
			l.advance()
		}
	}

	l.tokens = append(l.tokens, Token{Kind: TokenEOF, Line: l.line, Column: l.column})
	return l.tokens
}

func (l *Lexer) advance() {
	if l.pos < len(l.input) {
		if l.input[l.pos] == '\n' {
			l.line++
			l.column = 1
		} else {
			l.column++
		}
		l.pos++
	}
}

func (l *Lexer) peek() byte {
	if l.pos+1 < len(l.input) {
		return l.input[l.pos+1]
	}
	return 0
}

func (l *Lexer) readLineComment() {
	startLine := l.line
	startCol := l.column
	start := l.pos

	for l.pos < len(l.input) && l.input[l.pos] != '\n' {
		l.advance()
	}

	l.tokens = append(l.tokens, Token{
		Kind:   TokenComment,
		Text:   l.input[start:l.pos],
		Line:   startLine,
		Column: startCol,
	})
}

// readBlockComment consumes to the matching */ or, if the comment is
// unterminated, silently absorbs the remainder of the input.
func (l *Lexer) readBlockComment() {
	startLine := l.line
	startCol := l.column
	start := l.pos

	l.advance() // skip /
	l.advance() // skip *
	for l.pos < len(l.input) {
		if l.input[l.pos] == '*' && l.peek() == '/' {
			l.advance() // skip *
			l.advance() // skip /
			break
		}
		l.advance()
	}

	l.tokens = append(l.tokens, Token{
		Kind:   TokenComment,
		Text:   l.input[start:l.pos],
		Line:   startLine,
		Column: startCol,
	})
}

// readString scans until the matching quote or EOF. A backslash makes
// the next character literal; the backslash itself is dropped but no
// escape interpretation happens. The stored text excludes the quotes.
// An unterminated string consumes to EOF and still yields a token.
func (l *Lexer) readString(quote byte) {
	startLine := l.line
	startCol := l.column
	var text []byte

	l.advance() // skip opening quote
	for l.pos < len(l.input) {
		ch := l.input[l.pos]
		if ch == '\\' {
			l.advance()
			if l.pos < len(l.input) {
				text = append(text, l.input[l.pos])
				l.advance()
			}
			continue
		}
		if ch == quote {
			l.advance()
			break
		}
		text = append(text, ch)
		l.advance()
	}

	l.tokens = append(l.tokens, Token{
		Kind:   TokenString,
		Text:   string(text),
		Line:   startLine,
		Column: startCol,
	})
}

// readNumber scans digits with at most one decimal point. A second '.'
// ends the number; the leftover characters lex as separate tokens.
// No hex, octal, scientific or BigInt forms.
func (l *Lexer) readNumber() {
	startLine := l.line
	startCol := l.column
	start := l.pos
	seenDot := false

	for l.pos < len(l.input) {
		ch := l.input[l.pos]
		if isDigit(ch) {
			l.advance()
		} else if ch == '.' && !seenDot {
			seenDot = true
			l.advance()
		} else {
			break
		}
	}

	l.tokens = append(l.tokens, Token{
		Kind:   TokenNumber,
		Text:   l.input[start:l.pos],
		Line:   startLine,
		Column: startCol,
	})
}

func (l *Lexer) readIdentifier() {
	startLine := l.line
	startCol := l.column
	start := l.pos

	for l.pos < len(l.input) && isIdentPart(l.input[l.pos]) {
		l.advance()
	}

	text := l.input[start:l.pos]
	kind := TokenIdentifier
	switch {
	case text == "true" || text == "false":
		kind = TokenBoolean
	case text == "null":
		kind = TokenNull
	case keywords[text]:
		kind = TokenKeyword
	}

	l.tokens = append(l.tokens, Token{
		Kind:   kind,
		Text:   text,
		Line:   startLine,
		Column: startCol,
	})
}

// readOperator tries 3-, then 2-, then 1-character spellings so that
// "===" lexes as one token, never "==" followed by "=".
func (l *Lexer) readOperator() {
	startLine := l.line
	startCol := l.column

	if l.pos+3 <= len(l.input) {
		three := l.input[l.pos : l.pos+3]
		if kind, ok := threeCharOps[three]; ok {
			l.emitOperator(kind, three, startLine, startCol)
			return
		}
	}
	if l.pos+2 <= len(l.input) {
		two := l.input[l.pos : l.pos+2]
		if kind, ok := twoCharOps[two]; ok {
			l.emitOperator(kind, two, startLine, startCol)
			return
		}
	}
	one := l.input[l.pos : l.pos+1]
	if kind, ok := oneCharOps[one]; ok {
		l.emitOperator(kind, one, startLine, startCol)
		return
	}
	l.emitOperator(TokenUnknown, one, startLine, startCol)
}

func (l *Lexer) emitOperator(kind TokenKind, text string, line, col int) {
	for range text {
		l.advance()
	}
	l.tokens = append(l.tokens, Token{Kind: kind, Text: text, Line: line, Column: col})
}

func (l *Lexer) addToken(kind TokenKind, text string) {
	l.tokens = append(l.tokens, Token{
		Kind:   kind,
		Text:   text,
		Line:   l.line,
		Column: l.column,
	})
}

func isDigit(ch byte) bool {
	return ch >= '0' && ch <= '9'
}

func isIdentStart(ch byte) bool {
	return (ch >= 'a' && ch <= 'z') || (ch >= 'A' && ch <= 'Z') || ch == '_' || ch == '$'
}

func isIdentPart(ch byte) bool {
	return isIdentStart(ch) || isDigit(ch)
}

func isOperatorChar(ch byte) bool {
	return ch == '+' || ch == '-' || ch == '*' || ch == '/' || ch == '%' ||
		ch == '=' || ch == '<' || ch == '>' || ch == '!' || ch == '&' ||
		ch == '|' || ch == '^' || ch == '~'
}
