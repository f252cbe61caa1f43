package analyzer

import (
	"fmt"
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"jscheck/internal/parser"
)

func analyzeSource(t *testing.T, source string) []Issue {
	t.Helper()
	program, _ := parser.Parse(source)
	return Analyze(program)
}

func filterBy(issues []Issue, kind IssueKind, severity Severity) []Issue {
	var out []Issue
	for _, issue := range issues {
		if issue.Kind == kind && issue.Severity == severity {
			out = append(out, issue)
		}
	}
	return out
}

func TestEvalCall(t *testing.T) {
	issues := analyzeSource(t, `eval("x")`)
	matches := filterBy(issues, KindSecurity, SeverityHigh)
	require.Len(t, matches, 1)
	assert.Contains(t, matches[0].Message, "eval")
}

func TestDangerousCalleeFamily(t *testing.T) {
	for _, name := range []string{"Function", "execScript"} {
		issues := analyzeSource(t, name+"(code);")
		matches := filterBy(issues, KindSecurity, SeverityHigh)
		require.Len(t, matches, 1, "callee %s", name)
		assert.Contains(t, matches[0].Message, name)
	}

	// A call to an unrelated identifier is clean.
	issues := analyzeSource(t, "evaluate(code);")
	assert.Empty(t, filterBy(issues, KindSecurity, SeverityHigh))
}

func TestTimerWithStringArgument(t *testing.T) {
	issues := analyzeSource(t, `setTimeout("doWork()", 100);`)
	matches := filterBy(issues, KindSecurity, SeverityHigh)
	require.Len(t, matches, 1)
	assert.Contains(t, matches[0].Message, "setTimeout")

	issues = analyzeSource(t, "setTimeout(doWork, 100);")
	assert.Empty(t, filterBy(issues, KindSecurity, SeverityHigh))

	issues = analyzeSource(t, `setInterval("tick()", 50);`)
	assert.Len(t, filterBy(issues, KindSecurity, SeverityHigh), 1)
}

func TestInnerHTML(t *testing.T) {
	issues := analyzeSource(t, "el.innerHTML = payload;")
	matches := filterBy(issues, KindSecurity, SeverityHigh)
	require.Len(t, matches, 1)
	assert.Contains(t, matches[0].Message, "innerHTML")

	issues = analyzeSource(t, "el.textContent = payload;")
	assert.Empty(t, filterBy(issues, KindSecurity, SeverityHigh))
}

func TestDocumentWrite(t *testing.T) {
	issues := analyzeSource(t, "document.write(x);")
	matches := filterBy(issues, KindSecurity, SeverityHigh)
	require.Len(t, matches, 1)
	assert.Contains(t, matches[0].Message, "document.write")

	// The object must be literally `document`.
	issues = analyzeSource(t, "foo.write(x);")
	assert.Empty(t, filterBy(issues, KindSecurity, SeverityHigh))

	issues = analyzeSource(t, "document.writeln(x);")
	assert.Len(t, filterBy(issues, KindSecurity, SeverityHigh), 1)
}

func TestInsecureHTTPURL(t *testing.T) {
	issues := analyzeSource(t, `xhr.open("GET", "http://example.com");`)
	matches := filterBy(issues, KindSecurity, SeverityMedium)
	require.Len(t, matches, 1)
	assert.Contains(t, matches[0].Message, "HTTPS")

	issues = analyzeSource(t, `xhr.open("GET", "https://example.com");`)
	assert.Empty(t, filterBy(issues, KindSecurity, SeverityMedium))

	// Fewer than two arguments never matches.
	issues = analyzeSource(t, `xhr.open("http://example.com");`)
	assert.Empty(t, filterBy(issues, KindSecurity, SeverityMedium))
}

func TestLooseEquality(t *testing.T) {
	issues := analyzeSource(t, "if (a == b) {}")
	matches := filterBy(issues, KindError, SeverityMedium)
	require.Len(t, matches, 1)
	assert.Contains(t, matches[0].Message, "==")

	issues = analyzeSource(t, "if (a === b) {}")
	assert.Empty(t, filterBy(issues, KindError, SeverityMedium))

	issues = analyzeSource(t, "if (a != b) {}")
	matches = filterBy(issues, KindError, SeverityMedium)
	require.Len(t, matches, 1)
	assert.Contains(t, matches[0].Message, "!=")
}

func TestImplicitGlobal(t *testing.T) {
	issues := analyzeSource(t, "x = 5;")
	matches := filterBy(issues, KindError, SeverityHigh)
	require.Len(t, matches, 1)
	assert.Contains(t, matches[0].Message, "x")

	// Member assignments are not bare-identifier assignments.
	issues = analyzeSource(t, "obj.x = 5;")
	assert.Empty(t, filterBy(issues, KindError, SeverityHigh))
}

func TestImplicitGlobalIsScopeFree(t *testing.T) {
	// The heuristic has no scope table: reassignment of a declared
	// variable fires too.
	issues := analyzeSource(t, "let x = 1; x = 2;")
	assert.Len(t, filterBy(issues, KindError, SeverityHigh), 1)
}

func TestVarKeyword(t *testing.T) {
	issues := analyzeSource(t, "var x = 1;")
	require.Len(t, filterBy(issues, KindStyle, SeverityMedium), 1)

	issues = analyzeSource(t, "let x = 1;")
	assert.Empty(t, filterBy(issues, KindStyle, SeverityMedium))

	issues = analyzeSource(t, "const x = 1;")
	assert.Empty(t, filterBy(issues, KindStyle, SeverityMedium))
}

func TestStringConcatInLoop(t *testing.T) {
	issues := analyzeSource(t, `while (a) { s += "x"; }`)
	matches := filterBy(issues, KindPerformance, SeverityMedium)
	require.Len(t, matches, 1)
	assert.Contains(t, matches[0].Message, "join")

	issues = analyzeSource(t, `for (i = 0; i < 9; i = i + 1) { s += "x"; }`)
	assert.Len(t, filterBy(issues, KindPerformance, SeverityMedium), 1)

	// Outside a loop the same assignment is clean.
	issues = analyzeSource(t, `s += "x";`)
	assert.Empty(t, filterBy(issues, KindPerformance, SeverityMedium))

	// Numeric accumulation in a loop is clean too.
	issues = analyzeSource(t, "while (a) { s += 1; }")
	assert.Empty(t, filterBy(issues, KindPerformance, SeverityMedium))
}

func functionWithStatements(n int) string {
	var sb strings.Builder
	sb.WriteString("function f() {\n")
	for i := 0; i < n; i++ {
		fmt.Fprintf(&sb, "a = %d;\n", i)
	}
	sb.WriteString("}")
	return sb.String()
}

func TestFunctionTooLarge(t *testing.T) {
	issues := analyzeSource(t, functionWithStatements(31))
	matches := filterBy(issues, KindComplexity, SeverityMedium)
	require.Len(t, matches, 1)
	assert.Contains(t, matches[0].Message, "(31 statements)")

	issues = analyzeSource(t, functionWithStatements(30))
	assert.Empty(t, filterBy(issues, KindComplexity, SeverityMedium))
}

func TestFunctionSizeCountsNestedBlocks(t *testing.T) {
	// 10 top-level statements, one of which is an if whose block holds
	// 25 more: 10 + 25 = 35 > 30.
	var sb strings.Builder
	sb.WriteString("function f() {\n")
	for i := 0; i < 9; i++ {
		fmt.Fprintf(&sb, "a = %d;\n", i)
	}
	sb.WriteString("if (a) {\n")
	for i := 0; i < 25; i++ {
		fmt.Fprintf(&sb, "b = %d;\n", i)
	}
	sb.WriteString("}\n}")

	issues := analyzeSource(t, sb.String())
	matches := filterBy(issues, KindComplexity, SeverityMedium)
	require.Len(t, matches, 1)
	assert.Contains(t, matches[0].Message, "(35 statements)")
}

func TestUnusedVariable(t *testing.T) {
	issues := analyzeSource(t, "let unused = 1; let used = 2; f(used);")
	matches := filterBy(issues, KindPerformance, SeverityLow)
	require.Len(t, matches, 1)
	assert.Contains(t, matches[0].Message, "Unused variable: unused")
}

func TestAnalyzeOrderIsPreOrder(t *testing.T) {
	issues := analyzeSource(t, "eval(a);\ndocument.write(b);")
	require.Len(t, filterBy(issues, KindSecurity, SeverityHigh), 2)
	assert.Contains(t, issues[0].Message, "eval")
	assert.Less(t, issues[0].Line, issues[1].Line)
}

func TestAnalyzeIsIdempotent(t *testing.T) {
	program, _ := parser.Parse(`var s = ""; while (a) { s += "x"; } eval(s);`)

	first := Analyze(program)
	second := Analyze(program)
	assert.Equal(t, first, second)
}

func TestAnalyzeEmptyProgram(t *testing.T) {
	program, _ := parser.Parse("")
	assert.Empty(t, Analyze(program))
	assert.Empty(t, Analyze(nil))
}

func TestIssuePositions(t *testing.T) {
	issues := analyzeSource(t, "\n\n  eval(x);")
	matches := filterBy(issues, KindSecurity, SeverityHigh)
	require.Len(t, matches, 1)
	assert.Equal(t, 3, matches[0].Line)
	assert.Equal(t, 3, matches[0].Column)
}

func TestMultipleIssuesFromOneStatement(t *testing.T) {
	// document.write(eval(x)) carries both an eval call and a
	// document.write call.
	issues := analyzeSource(t, "document.write(eval(x));")
	assert.Len(t, filterBy(issues, KindSecurity, SeverityHigh), 2)
}
