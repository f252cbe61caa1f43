//go:build cgo

// Package tsparse is an alternate parsing frontend that delegates to
// tree-sitter's JavaScript grammar and converts the resulting parse
// tree into the same AST the hand-written parser produces. Constructs
// the hand parser cannot express are flattened into their statement
// children, mirroring how the hand parser flattens loop headers.
package tsparse

import (
	"context"
	"fmt"
	"strings"

	sitter "github.com/smacker/go-tree-sitter"
	"github.com/smacker/go-tree-sitter/javascript"

	"jscheck/internal/parser"
)

// Parse parses source with tree-sitter and returns the converted
// Program plus any syntax error locations tree-sitter reported. Like
// the hand parser it is total: a Program always comes back.
func Parse(source string) (*parser.Program, []string) {
	content := []byte(source)

	p := sitter.NewParser()
	p.SetLanguage(javascript.GetLanguage())

	tree, err := p.ParseCtx(context.Background(), nil, content)
	if err != nil {
		return &parser.Program{Position: parser.Position{Line: 1, Column: 1}},
			[]string{fmt.Sprintf("tree-sitter: %v", err)}
	}
	defer tree.Close()

	c := &converter{content: content}
	root := tree.RootNode()
	program := &parser.Program{
		Position: parser.Position{Line: 1, Column: 1},
		Body:     c.convertStatements(root),
	}
	return program, c.errs
}

type converter struct {
	content []byte
	errs    []string
}

// convertStatements converts the named children of node that map onto
// statement variants, splicing through constructs the AST cannot hold.
func (c *converter) convertStatements(node *sitter.Node) []parser.Node {
	var out []parser.Node
	for i := 0; i < int(node.NamedChildCount()); i++ {
		child := node.NamedChild(i)
		out = append(out, c.convertStatement(child)...)
	}
	return out
}

func (c *converter) convertStatement(node *sitter.Node) []parser.Node {
	if node.Type() == "ERROR" {
		c.errorAt(node)
		return nil
	}

	switch node.Type() {
	case "variable_declaration", "lexical_declaration":
		if decl := c.convertVarDecl(node); decl != nil {
			return []parser.Node{decl}
		}
		return nil

	case "function_declaration":
		if fn := c.convertFunction(node); fn != nil {
			return []parser.Node{fn}
		}
		return nil

	case "statement_block":
		return []parser.Node{&parser.BlockStatement{
			Position: nodePos(node),
			Body:     c.convertStatements(node),
		}}

	case "expression_statement":
		if node.NamedChildCount() == 0 {
			return nil
		}
		expr := c.convertExpression(node.NamedChild(0))
		if expr == nil {
			return nil
		}
		return []parser.Node{&parser.ExpressionStatement{
			Position:   nodePos(node),
			Expression: expr,
		}}

	case "return_statement":
		stmt := &parser.ReturnStatement{Position: nodePos(node)}
		if node.NamedChildCount() > 0 {
			stmt.Argument = c.convertExpression(node.NamedChild(0))
		}
		return []parser.Node{stmt}

	case "if_statement":
		return c.convertIf(node)

	case "for_statement", "for_in_statement":
		return c.convertLoop(node, "for")

	case "while_statement", "do_statement":
		return c.convertLoop(node, "while")

	case "comment":
		return nil
	}

	// Anything else (classes, switch, try, exports, ...) flattens into
	// whatever statements live inside it.
	return c.convertStatements(node)
}

func (c *converter) convertVarDecl(node *sitter.Node) parser.Node {
	declKind := "var"
	if node.ChildCount() > 0 {
		declKind = node.Child(0).Content(c.content)
	}

	decl := &parser.VariableDeclaration{
		Position: nodePos(node),
		DeclKind: declKind,
	}
	for i := 0; i < int(node.NamedChildCount()); i++ {
		child := node.NamedChild(i)
		if child.Type() != "variable_declarator" {
			continue
		}
		nameNode := child.ChildByFieldName("name")
		if nameNode == nil || nameNode.Type() != "identifier" {
			continue // destructuring patterns are not representable
		}
		d := &parser.VariableDeclarator{
			Position: nodePos(child),
			ID:       c.identifier(nameNode),
		}
		if value := child.ChildByFieldName("value"); value != nil {
			d.Init = c.convertExpression(value)
		}
		decl.Declarations = append(decl.Declarations, d)
	}
	if len(decl.Declarations) == 0 {
		return nil
	}
	return decl
}

func (c *converter) convertFunction(node *sitter.Node) parser.Node {
	nameNode := node.ChildByFieldName("name")
	bodyNode := node.ChildByFieldName("body")
	if nameNode == nil || bodyNode == nil {
		return nil
	}

	fn := &parser.FunctionDeclaration{
		Position: nodePos(node),
		Name:     c.identifier(nameNode),
		Body: &parser.BlockStatement{
			Position: nodePos(bodyNode),
			Body:     c.convertStatements(bodyNode),
		},
	}
	if params := node.ChildByFieldName("parameters"); params != nil {
		for i := 0; i < int(params.NamedChildCount()); i++ {
			p := params.NamedChild(i)
			if p.Type() == "identifier" {
				fn.Params = append(fn.Params, c.identifier(p))
			}
		}
	}
	return fn
}

func (c *converter) convertIf(node *sitter.Node) []parser.Node {
	condNode := node.ChildByFieldName("condition")
	consNode := node.ChildByFieldName("consequence")
	if condNode == nil || consNode == nil {
		return nil
	}

	test := c.convertExpression(unwrapParens(condNode))
	if test == nil {
		return nil
	}
	consequent := c.single(c.convertStatement(consNode))
	if consequent == nil {
		return nil
	}

	stmt := &parser.IfStatement{
		Position:   nodePos(node),
		Test:       test,
		Consequent: consequent,
	}
	if alt := node.ChildByFieldName("alternative"); alt != nil {
		// alternative is an else_clause wrapping the actual statement
		inner := alt
		if alt.NamedChildCount() > 0 {
			inner = alt.NamedChild(0)
		}
		stmt.Alternate = c.single(c.convertStatement(inner))
	}
	return []parser.Node{stmt}
}

func (c *converter) convertLoop(node *sitter.Node, keyword string) []parser.Node {
	bodyNode := node.ChildByFieldName("body")
	if bodyNode == nil {
		return nil
	}
	body := c.single(c.convertStatement(bodyNode))
	if body == nil {
		return nil
	}
	return []parser.Node{&parser.LoopStatement{
		Position: nodePos(node),
		Keyword:  keyword,
		Body:     body,
	}}
}

func (c *converter) convertExpression(node *sitter.Node) parser.Node {
	if node == nil {
		return nil
	}
	if node.Type() == "ERROR" {
		c.errorAt(node)
		return nil
	}

	switch node.Type() {
	case "identifier", "property_identifier", "shorthand_property_identifier":
		return c.identifier(node)

	case "number":
		return &parser.Literal{Position: nodePos(node), LitKind: parser.NumberLiteral,
			Value: node.Content(c.content)}

	case "string", "template_string":
		return &parser.Literal{Position: nodePos(node), LitKind: parser.StringLiteral,
			Value: stripQuotes(node.Content(c.content))}

	case "true", "false":
		return &parser.Literal{Position: nodePos(node), LitKind: parser.BooleanLiteral,
			Value: node.Content(c.content)}

	case "null":
		return &parser.Literal{Position: nodePos(node), LitKind: parser.NullLiteral,
			Value: "null"}

	case "parenthesized_expression":
		return c.convertExpression(unwrapParens(node))

	case "binary_expression":
		left := c.convertExpression(node.ChildByFieldName("left"))
		right := c.convertExpression(node.ChildByFieldName("right"))
		opNode := node.ChildByFieldName("operator")
		if left == nil || right == nil || opNode == nil {
			return nil
		}
		return &parser.BinaryExpression{
			Position: nodePos(node),
			Operator: opNode.Content(c.content),
			Left:     left,
			Right:    right,
		}

	case "unary_expression", "update_expression":
		operand := c.convertExpression(node.ChildByFieldName("argument"))
		opNode := node.ChildByFieldName("operator")
		if operand == nil || opNode == nil {
			return nil
		}
		return &parser.UnaryExpression{
			Position: nodePos(node),
			Operator: opNode.Content(c.content),
			Operand:  operand,
		}

	case "assignment_expression", "augmented_assignment_expression":
		left := c.convertExpression(node.ChildByFieldName("left"))
		right := c.convertExpression(node.ChildByFieldName("right"))
		if left == nil || right == nil {
			return nil
		}
		operator := "="
		if opNode := node.ChildByFieldName("operator"); opNode != nil {
			operator = opNode.Content(c.content)
		}
		return &parser.AssignmentExpression{
			Position: nodePos(node),
			Operator: operator,
			Left:     left,
			Right:    right,
		}

	case "call_expression":
		callee := c.convertExpression(node.ChildByFieldName("function"))
		if callee == nil {
			return nil
		}
		call := &parser.CallExpression{Position: nodePos(node), Callee: callee}
		if args := node.ChildByFieldName("arguments"); args != nil {
			for i := 0; i < int(args.NamedChildCount()); i++ {
				if arg := c.convertExpression(args.NamedChild(i)); arg != nil {
					call.Arguments = append(call.Arguments, arg)
				}
			}
		}
		return call

	case "member_expression":
		object := c.convertExpression(node.ChildByFieldName("object"))
		property := c.convertExpression(node.ChildByFieldName("property"))
		if object == nil || property == nil {
			return nil
		}
		return &parser.MemberExpression{
			Position: nodePos(node),
			Object:   object,
			Property: property,
			Computed: false,
		}

	case "subscript_expression":
		object := c.convertExpression(node.ChildByFieldName("object"))
		index := c.convertExpression(node.ChildByFieldName("index"))
		if object == nil || index == nil {
			return nil
		}
		return &parser.MemberExpression{
			Position: nodePos(node),
			Object:   object,
			Property: index,
			Computed: true,
		}

	case "array":
		arr := &parser.ArrayExpression{Position: nodePos(node)}
		for i := 0; i < int(node.NamedChildCount()); i++ {
			if elem := c.convertExpression(node.NamedChild(i)); elem != nil {
				arr.Elements = append(arr.Elements, elem)
			}
		}
		return arr

	case "object":
		obj := &parser.ObjectExpression{Position: nodePos(node)}
		for i := 0; i < int(node.NamedChildCount()); i++ {
			pair := node.NamedChild(i)
			if pair.Type() != "pair" {
				continue
			}
			key := c.convertExpression(pair.ChildByFieldName("key"))
			value := c.convertExpression(pair.ChildByFieldName("value"))
			if key == nil || value == nil {
				continue
			}
			obj.Properties = append(obj.Properties, &parser.Property{
				Position: nodePos(pair),
				Key:      key,
				Value:    value,
			})
		}
		return obj
	}

	return nil
}

func (c *converter) identifier(node *sitter.Node) *parser.Identifier {
	return &parser.Identifier{
		Position: nodePos(node),
		Name:     node.Content(c.content),
	}
}

func (c *converter) single(nodes []parser.Node) parser.Node {
	if len(nodes) == 1 {
		return nodes[0]
	}
	if len(nodes) > 1 {
		// Splice produced several statements; wrap them in a block so
		// the result stays a single statement.
		line, col := nodes[0].Pos()
		return &parser.BlockStatement{
			Position: parser.Position{Line: line, Column: col},
			Body:     nodes,
		}
	}
	return nil
}

func (c *converter) errorAt(node *sitter.Node) {
	pt := node.StartPoint()
	c.errs = append(c.errs, fmt.Sprintf("Syntax error at %d:%d", pt.Row+1, pt.Column+1))
}

func unwrapParens(node *sitter.Node) *sitter.Node {
	if node.Type() == "parenthesized_expression" && node.NamedChildCount() > 0 {
		return node.NamedChild(0)
	}
	return node
}

func stripQuotes(s string) string {
	if len(s) >= 2 {
		first, last := s[0], s[len(s)-1]
		if first == last && (first == '"' || first == '\'' || first == '`') {
			s = s[1 : len(s)-1]
		}
	}
	return strings.ReplaceAll(s, "\\", "")
}

func nodePos(node *sitter.Node) parser.Position {
	pt := node.StartPoint()
	return parser.Position{Line: int(pt.Row) + 1, Column: int(pt.Column) + 1}
}
