package analyzer

import (
	"fmt"
	"strings"

	"jscheck/internal/parser"
)

// ruleContext gives a rule access to the whole tree and to the chain
// of ancestors of the node under inspection (outermost first).
type ruleContext struct {
	root      *parser.Program
	ancestors []parser.Node
}

type ruleFunc func(n parser.Node, ctx *ruleContext) []Issue

// ruleCatalog is the fixed, ordered set of detection rules. Every rule
// is evaluated against every visited node; a single node may emit
// several issues.
var ruleCatalog = []ruleFunc{
	ruleDangerousCall,
	ruleTimerStringArg,
	ruleHTMLInjection,
	ruleDocumentWrite,
	ruleInsecureURL,
	ruleLooseEquality,
	ruleImplicitGlobal,
	ruleVarKeyword,
	ruleConcatInLoop,
	ruleFunctionSize,
	ruleUnusedVariable,
}

var dangerousCallees = map[string]bool{
	"eval":       true,
	"Function":   true,
	"execScript": true,
}

// ruleDangerousCall flags calls to eval-family functions.
func ruleDangerousCall(n parser.Node, _ *ruleContext) []Issue {
	call, ok := n.(*parser.CallExpression)
	if !ok {
		return nil
	}
	callee, ok := call.Callee.(*parser.Identifier)
	if !ok || !dangerousCallees[callee.Name] {
		return nil
	}
	msg := fmt.Sprintf("Unsafe use of %s() — can execute arbitrary code", callee.Name)
	return []Issue{newIssue(KindSecurity, SeverityHigh, msg, n)}
}

// ruleTimerStringArg flags setTimeout/setInterval called with a string
// body, which is evaluated like eval.
func ruleTimerStringArg(n parser.Node, _ *ruleContext) []Issue {
	call, ok := n.(*parser.CallExpression)
	if !ok {
		return nil
	}
	callee, ok := call.Callee.(*parser.Identifier)
	if !ok || (callee.Name != "setTimeout" && callee.Name != "setInterval") {
		return nil
	}
	if len(call.Arguments) == 0 {
		return nil
	}
	if lit, ok := call.Arguments[0].(*parser.Literal); !ok || !lit.IsString() {
		return nil
	}
	msg := fmt.Sprintf("Unsafe use of %s with string argument — similar to eval()", callee.Name)
	return []Issue{newIssue(KindSecurity, SeverityHigh, msg, n)}
}

// ruleHTMLInjection flags any innerHTML/outerHTML member access.
func ruleHTMLInjection(n parser.Node, _ *ruleContext) []Issue {
	member, ok := n.(*parser.MemberExpression)
	if !ok {
		return nil
	}
	prop, ok := member.Property.(*parser.Identifier)
	if !ok || (prop.Name != "innerHTML" && prop.Name != "outerHTML") {
		return nil
	}
	msg := fmt.Sprintf("Potential XSS vulnerability using %s", prop.Name)
	return []Issue{newIssue(KindSecurity, SeverityHigh, msg, n)}
}

// ruleDocumentWrite flags document.write and document.writeln calls.
// The callee must be a member chain rooted at the identifier
// `document`; foo.write does not match.
func ruleDocumentWrite(n parser.Node, _ *ruleContext) []Issue {
	call, ok := n.(*parser.CallExpression)
	if !ok {
		return nil
	}
	member, ok := call.Callee.(*parser.MemberExpression)
	if !ok || member.Computed {
		return nil
	}
	obj, ok := member.Object.(*parser.Identifier)
	if !ok || obj.Name != "document" {
		return nil
	}
	prop, ok := member.Property.(*parser.Identifier)
	if !ok || (prop.Name != "write" && prop.Name != "writeln") {
		return nil
	}
	msg := fmt.Sprintf("Insecure use of document.%s() — can enable XSS attacks", prop.Name)
	return []Issue{newIssue(KindSecurity, SeverityHigh, msg, n)}
}

// ruleInsecureURL flags .open(..., "http://...") style calls where the
// second argument is a plain-HTTP URL.
func ruleInsecureURL(n parser.Node, _ *ruleContext) []Issue {
	call, ok := n.(*parser.CallExpression)
	if !ok || len(call.Arguments) < 2 {
		return nil
	}
	member, ok := call.Callee.(*parser.MemberExpression)
	if !ok {
		return nil
	}
	prop, ok := member.Property.(*parser.Identifier)
	if !ok || prop.Name != "open" {
		return nil
	}
	lit, ok := call.Arguments[1].(*parser.Literal)
	if !ok || !lit.IsString() || !strings.HasPrefix(lit.Value, "http://") {
		return nil
	}
	return []Issue{newIssue(KindSecurity, SeverityMedium,
		"Using insecure HTTP protocol instead of HTTPS", n)}
}

// ruleLooseEquality flags == and != comparisons.
func ruleLooseEquality(n parser.Node, _ *ruleContext) []Issue {
	bin, ok := n.(*parser.BinaryExpression)
	if !ok || (bin.Operator != "==" && bin.Operator != "!=") {
		return nil
	}
	msg := fmt.Sprintf("Unsafe equality comparison using %s instead of %s=", bin.Operator, bin.Operator)
	return []Issue{newIssue(KindError, SeverityMedium, msg, n)}
}

// ruleImplicitGlobal flags assignment to a bare identifier. This is a
// heuristic with no scope analysis: reassignment of a declared variable
// fires too. Keeping it scope-free is documented behavior.
func ruleImplicitGlobal(n parser.Node, _ *ruleContext) []Issue {
	assign, ok := n.(*parser.AssignmentExpression)
	if !ok {
		return nil
	}
	target, ok := assign.Left.(*parser.Identifier)
	if !ok {
		return nil
	}
	msg := fmt.Sprintf("Potential implicit global variable: %s", target.Name)
	return []Issue{newIssue(KindError, SeverityHigh, msg, n)}
}

// ruleVarKeyword flags `var` declarations.
func ruleVarKeyword(n parser.Node, _ *ruleContext) []Issue {
	decl, ok := n.(*parser.VariableDeclaration)
	if !ok || decl.DeclKind != "var" {
		return nil
	}
	return []Issue{newIssue(KindStyle, SeverityMedium,
		"Use of 'var' keyword — consider using 'let' or 'const' instead", n)}
}

// ruleConcatInLoop flags `x += "..."` when some ancestor is a for or
// while loop.
func ruleConcatInLoop(n parser.Node, ctx *ruleContext) []Issue {
	assign, ok := n.(*parser.AssignmentExpression)
	if !ok || assign.Operator != "+=" {
		return nil
	}
	if lit, ok := assign.Right.(*parser.Literal); !ok || !lit.IsString() {
		return nil
	}
	inLoop := false
	for _, anc := range ctx.ancestors {
		if anc.Kind() == parser.KindLoopStatement {
			inLoop = true
			break
		}
	}
	if !inLoop {
		return nil
	}
	return []Issue{newIssue(KindPerformance, SeverityMedium,
		"Inefficient string concatenation in loop — consider using array.join() instead", n)}
}

// ruleFunctionSize flags function bodies with more than maxFunctionStatements
// statements, counting statements in nested blocks recursively.
const maxFunctionStatements = 30

func ruleFunctionSize(n parser.Node, _ *ruleContext) []Issue {
	fn, ok := n.(*parser.FunctionDeclaration)
	if !ok {
		return nil
	}
	count := blockStatementCount(fn.Body)
	if count <= maxFunctionStatements {
		return nil
	}
	msg := fmt.Sprintf("Function is too large (%d statements) — consider refactoring", count)
	return []Issue{newIssue(KindComplexity, SeverityMedium, msg, n)}
}

// blockStatementCount counts the statements in a block, descending into
// the blocks of nested statements. Each statement in a list counts as
// one plus whatever its own blocks contain.
func blockStatementCount(block *parser.BlockStatement) int {
	if block == nil {
		return 0
	}
	total := 0
	for _, stmt := range block.Body {
		total += 1 + nestedStatementCount(stmt)
	}
	return total
}

// nestedStatementCount returns the statements contained inside a single
// statement's blocks, not counting the statement itself.
func nestedStatementCount(n parser.Node) int {
	switch stmt := n.(type) {
	case *parser.BlockStatement:
		return blockStatementCount(stmt)
	case *parser.IfStatement:
		total := branchStatementCount(stmt.Consequent)
		if stmt.Alternate != nil {
			total += branchStatementCount(stmt.Alternate)
		}
		return total
	case *parser.LoopStatement:
		return branchStatementCount(stmt.Body)
	case *parser.FunctionDeclaration:
		return blockStatementCount(stmt.Body)
	}
	return 0
}

// branchStatementCount counts the statements of a branch body: a block
// contributes its contents, a single statement contributes itself plus
// its own nesting.
func branchStatementCount(n parser.Node) int {
	if block, ok := n.(*parser.BlockStatement); ok {
		return blockStatementCount(block)
	}
	return 1 + nestedStatementCount(n)
}

// ruleUnusedVariable flags a declarator whose name never occurs as an
// identifier anywhere else in the tree. This is a full secondary scan
// per declarator; the O(n^2) cost is accepted for realistic file sizes.
func ruleUnusedVariable(n parser.Node, ctx *ruleContext) []Issue {
	decl, ok := n.(*parser.VariableDeclarator)
	if !ok {
		return nil
	}
	if countIdentifierUses(ctx.root, decl.ID) > 0 {
		return nil
	}
	msg := fmt.Sprintf("Unused variable: %s", decl.ID.Name)
	return []Issue{newIssue(KindPerformance, SeverityLow, msg, n)}
}

// countIdentifierUses counts Identifier nodes sharing the declarator's
// name, excluding the declarator's own ID node.
func countIdentifierUses(root *parser.Program, id *parser.Identifier) int {
	count := 0
	var visit func(n parser.Node)
	visit = func(n parser.Node) {
		if ident, ok := n.(*parser.Identifier); ok && ident != id && ident.Name == id.Name {
			count++
		}
		for _, c := range n.Children() {
			visit(c)
		}
	}
	visit(root)
	return count
}

func newIssue(kind IssueKind, severity Severity, message string, n parser.Node) Issue {
	line, col := n.Pos()
	return Issue{
		Kind:     kind,
		Severity: severity,
		Message:  message,
		Line:     line,
		Column:   col,
	}
}
