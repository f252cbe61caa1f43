package parser

// TokenKind classifies a lexical token from JavaScript source
type TokenKind int

const (
	TokenIdentifier TokenKind = iota
	TokenNumber
	TokenString
	TokenBoolean
	TokenNull
	TokenKeyword
	TokenAssignment
	TokenArithmetic
	TokenComparison
	TokenLogical
	TokenUnary
	TokenSemicolon
	TokenComma
	TokenDot
	TokenColon
	TokenLParen
	TokenRParen
	TokenLBrace
	TokenRBrace
	TokenLBracket
	TokenRBracket
	TokenComment
	TokenNewline
	TokenEOF
	TokenUnknown
)

var tokenKindNames = map[TokenKind]string{
	TokenIdentifier: "identifier",
	TokenNumber:     "number",
	TokenString:     "string",
	TokenBoolean:    "boolean",
	TokenNull:       "null",
	TokenKeyword:    "keyword",
	TokenAssignment: "assignment operator",
	TokenArithmetic: "arithmetic operator",
	TokenComparison: "comparison operator",
	TokenLogical:    "logical operator",
	TokenUnary:      "unary operator",
	TokenSemicolon:  "';'",
	TokenComma:      "','",
	TokenDot:        "'.'",
	TokenColon:      "':'",
	TokenLParen:     "'('",
	TokenRParen:     "')'",
	TokenLBrace:     "'{'",
	TokenRBrace:     "'}'",
	TokenLBracket:   "'['",
	TokenRBracket:   "']'",
	TokenComment:    "comment",
	TokenNewline:    "newline",
	TokenEOF:        "end of input",
	TokenUnknown:    "unknown",
}

func (k TokenKind) String() string {
	if name, ok := tokenKindNames[k]; ok {
		return name
	}
	return "unknown"
}

// Token is one classified lexical unit with its source position.
// Line and Column are 1-based and refer to the token's first character.
type Token struct {
	Kind   TokenKind
	Text   string
	Line   int
	Column int
}

var keywords = map[string]bool{
	"var": true, "let": true, "const": true,
	"function": true, "return": true,
	"if": true, "else": true, "for": true, "while": true,
}

// Operator spellings by length, longest first (maximal munch).
// Single '&', '|' and '^' have no kind of their own and lex as Unknown.
var threeCharOps = map[string]TokenKind{
	"===": TokenComparison,
	"!==": TokenComparison,
}

var twoCharOps = map[string]TokenKind{
	"==": TokenComparison,
	"!=": TokenComparison,
	"<=": TokenComparison,
	">=": TokenComparison,
	"&&": TokenLogical,
	"||": TokenLogical,
	"+=": TokenAssignment,
	"-=": TokenAssignment,
	"*=": TokenAssignment,
	"/=": TokenAssignment,
	"%=": TokenAssignment,
	"++": TokenUnary,
	"--": TokenUnary,
}

var oneCharOps = map[string]TokenKind{
	"=": TokenAssignment,
	"+": TokenArithmetic,
	"-": TokenArithmetic,
	"*": TokenArithmetic,
	"/": TokenArithmetic,
	"%": TokenArithmetic,
	"<": TokenComparison,
	">": TokenComparison,
	"!": TokenUnary,
	"~": TokenUnary,
}

var punctuation = map[byte]TokenKind{
	';': TokenSemicolon,
	',': TokenComma,
	'.': TokenDot,
	':': TokenColon,
	'(': TokenLParen,
	')': TokenRParen,
	'{': TokenLBrace,
	'}': TokenRBrace,
	'[': TokenLBracket,
	']': TokenRBracket,
}
