package analyzer

import (
	"jscheck/internal/parser"
)

// Analyze walks the AST once in pre-order depth-first order and
// evaluates every rule of the catalog against every visited node.
// The result order is the traversal order; it is deterministic and the
// call allocates everything fresh, so repeated calls on the same tree
// yield identical issue lists.
func Analyze(program *parser.Program) []Issue {
	if program == nil {
		return nil
	}

	var issues []Issue
	ctx := &ruleContext{root: program}

	var walk func(n parser.Node)
	walk = func(n parser.Node) {
		for _, rule := range ruleCatalog {
			issues = append(issues, rule(n, ctx)...)
		}
		ctx.ancestors = append(ctx.ancestors, n)
		for _, child := range n.Children() {
			walk(child)
		}
		ctx.ancestors = ctx.ancestors[:len(ctx.ancestors)-1]
	}
	walk(program)

	return issues
}
