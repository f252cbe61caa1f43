package parser

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func kinds(tokens []Token) []TokenKind {
	out := make([]TokenKind, 0, len(tokens))
	for _, tok := range tokens {
		out = append(out, tok.Kind)
	}
	return out
}

func TestTokenizeEmptyInput(t *testing.T) {
	tokens := Tokenize("")
	require.Len(t, tokens, 1)
	assert.Equal(t, TokenEOF, tokens[0].Kind)
}

func TestTokenizeWhitespaceOnly(t *testing.T) {
	tokens := Tokenize("  \t \r ")
	require.Len(t, tokens, 1)
	assert.Equal(t, TokenEOF, tokens[0].Kind)
}

func TestTokenizeNewlinesEmitted(t *testing.T) {
	tokens := Tokenize("\n\n")
	assert.Equal(t, []TokenKind{TokenNewline, TokenNewline, TokenEOF}, kinds(tokens))
}

func TestTokenizeAlwaysExactlyOneEOF(t *testing.T) {
	inputs := []string{
		"",
		"let x = 1;",
		"\x00\x01\xff garbage @#§",
		"\"unterminated",
		"/* unterminated comment",
		"1.2.3.4",
	}
	for _, input := range inputs {
		tokens := Tokenize(input)
		require.NotEmpty(t, tokens, "input %q", input)
		assert.Equal(t, TokenEOF, tokens[len(tokens)-1].Kind, "input %q", input)

		eofs := 0
		for _, tok := range tokens {
			if tok.Kind == TokenEOF {
				eofs++
			}
		}
		assert.Equal(t, 1, eofs, "input %q", input)
	}
}

func TestMaximalMunch(t *testing.T) {
	tokens := Tokenize("===")
	require.Len(t, tokens, 2)
	assert.Equal(t, TokenComparison, tokens[0].Kind)
	assert.Equal(t, "===", tokens[0].Text)

	tokens = Tokenize("= == === !== != <= >= && || ++ --")
	want := []struct {
		kind TokenKind
		text string
	}{
		{TokenAssignment, "="},
		{TokenComparison, "=="},
		{TokenComparison, "==="},
		{TokenComparison, "!=="},
		{TokenComparison, "!="},
		{TokenComparison, "<="},
		{TokenComparison, ">="},
		{TokenLogical, "&&"},
		{TokenLogical, "||"},
		{TokenUnary, "++"},
		{TokenUnary, "--"},
	}
	require.Len(t, tokens, len(want)+1)
	for i, w := range want {
		assert.Equal(t, w.kind, tokens[i].Kind, "token %d", i)
		assert.Equal(t, w.text, tokens[i].Text, "token %d", i)
	}
}

func TestCompoundAssignmentOperators(t *testing.T) {
	tokens := Tokenize("+= -= *= /= %=")
	require.Len(t, tokens, 6)
	for i := 0; i < 5; i++ {
		assert.Equal(t, TokenAssignment, tokens[i].Kind)
	}
}

func TestUnmatchedOperatorCharsAreUnknown(t *testing.T) {
	tokens := Tokenize("& | ^")
	require.Len(t, tokens, 4)
	for i := 0; i < 3; i++ {
		assert.Equal(t, TokenUnknown, tokens[i].Kind)
	}
}

func TestKeywordClassification(t *testing.T) {
	tokens := Tokenize("var let const function return if else for while")
	require.Len(t, tokens, 10)
	for i := 0; i < 9; i++ {
		assert.Equal(t, TokenKeyword, tokens[i].Kind, "token %q", tokens[i].Text)
	}
}

func TestBooleanNullAndUnreservedWords(t *testing.T) {
	tokens := Tokenize("true false null class switch $jq _x")
	require.Len(t, tokens, 8)
	assert.Equal(t, TokenBoolean, tokens[0].Kind)
	assert.Equal(t, TokenBoolean, tokens[1].Kind)
	assert.Equal(t, TokenNull, tokens[2].Kind)
	// class and switch are not in the keyword set and lex as identifiers
	assert.Equal(t, TokenIdentifier, tokens[3].Kind)
	assert.Equal(t, TokenIdentifier, tokens[4].Kind)
	assert.Equal(t, TokenIdentifier, tokens[5].Kind)
	assert.Equal(t, TokenIdentifier, tokens[6].Kind)
}

func TestStringQuotesAndEscapes(t *testing.T) {
	tokens := Tokenize(`"a\"b"`)
	require.GreaterOrEqual(t, len(tokens), 2)
	assert.Equal(t, TokenString, tokens[0].Kind)
	assert.Equal(t, `a"b`, tokens[0].Text)

	tokens = Tokenize("'single' `tick`")
	assert.Equal(t, "single", tokens[0].Text)
	assert.Equal(t, "tick", tokens[1].Text)
}

func TestUnterminatedStringConsumesToEOF(t *testing.T) {
	tokens := Tokenize(`"abc`)
	require.Len(t, tokens, 2)
	assert.Equal(t, TokenString, tokens[0].Kind)
	assert.Equal(t, "abc", tokens[0].Text)
}

func TestEscapesAreNotInterpreted(t *testing.T) {
	tokens := Tokenize(`"a\nb"`)
	// The backslash is dropped but \n is not turned into a newline.
	assert.Equal(t, "anb", tokens[0].Text)
}

func TestNumberStopsAtSecondDot(t *testing.T) {
	tokens := Tokenize("1.2.3")
	require.Len(t, tokens, 4)
	assert.Equal(t, TokenNumber, tokens[0].Kind)
	assert.Equal(t, "1.2", tokens[0].Text)
	assert.Equal(t, TokenDot, tokens[1].Kind)
	assert.Equal(t, TokenNumber, tokens[2].Kind)
	assert.Equal(t, "3", tokens[2].Text)
}

func TestLineComment(t *testing.T) {
	tokens := Tokenize("a // rest of line\nb")
	assert.Equal(t,
		[]TokenKind{TokenIdentifier, TokenComment, TokenNewline, TokenIdentifier, TokenEOF},
		kinds(tokens))
	assert.Equal(t, "// rest of line", tokens[1].Text)
}

func TestBlockComment(t *testing.T) {
	tokens := Tokenize("a /* x\ny */ b")
	assert.Equal(t,
		[]TokenKind{TokenIdentifier, TokenComment, TokenIdentifier, TokenEOF},
		kinds(tokens))
	// b is on line 2 after the comment's embedded newline
	assert.Equal(t, 2, tokens[2].Line)
}

func TestUnterminatedBlockCommentAbsorbsRest(t *testing.T) {
	tokens := Tokenize("/* never closed ... let x = 1;")
	assert.Equal(t, []TokenKind{TokenComment, TokenEOF}, kinds(tokens))
}

func TestPositions(t *testing.T) {
	tokens := Tokenize("ab\n  cd")
	require.Len(t, tokens, 4)
	assert.Equal(t, 1, tokens[0].Line)
	assert.Equal(t, 1, tokens[0].Column)
	assert.Equal(t, 2, tokens[2].Line)
	assert.Equal(t, 3, tokens[2].Column)
}

func TestPunctuation(t *testing.T) {
	tokens := Tokenize(";,.:(){}[]")
	assert.Equal(t, []TokenKind{
		TokenSemicolon, TokenComma, TokenDot, TokenColon,
		TokenLParen, TokenRParen, TokenLBrace, TokenRBrace,
		TokenLBracket, TokenRBracket, TokenEOF,
	}, kinds(tokens))
}
