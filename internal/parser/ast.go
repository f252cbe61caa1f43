package parser

// NodeKind identifies the variant of an AST node.
type NodeKind int

const (
	KindProgram NodeKind = iota
	KindVariableDeclaration
	KindVariableDeclarator
	KindFunctionDeclaration
	KindBlockStatement
	KindExpressionStatement
	KindReturnStatement
	KindIfStatement
	KindLoopStatement
	KindBinaryExpression
	KindUnaryExpression
	KindAssignmentExpression
	KindCallExpression
	KindMemberExpression
	KindIdentifier
	KindLiteral
	KindArrayExpression
	KindObjectExpression
	KindProperty
)

// Node is one vertex of the abstract syntax tree. The variant set is
// closed: every implementation lives in this file. Children returns the
// traversable child nodes in a fixed per-variant order, so walkers never
// have to guess which fields are structure and which are metadata.
type Node interface {
	Kind() NodeKind
	Pos() (line, column int)
	Children() []Node
}

// Position locates a node at its leftmost token. It is embedded in
// every node variant.
type Position struct {
	Line   int
	Column int
}

// Pos returns the node's 1-based line and column.
func (p Position) Pos() (int, int) { return p.Line, p.Column }

// Program is the AST root: an ordered sequence of statements.
type Program struct {
	Position
	Body []Node
}

// VariableDeclaration is `var|let|const` with one or more declarators.
// Declarations is never empty for parser-built nodes.
type VariableDeclaration struct {
	Position
	DeclKind     string // "var", "let" or "const"
	Declarations []*VariableDeclarator
}

// VariableDeclarator binds one name, optionally with an initializer.
type VariableDeclarator struct {
	Position
	ID   *Identifier
	Init Node // nil when there is no initializer
}

type FunctionDeclaration struct {
	Position
	Name   *Identifier
	Params []*Identifier
	Body   *BlockStatement
}

type BlockStatement struct {
	Position
	Body []Node
}

type ExpressionStatement struct {
	Position
	Expression Node
}

type ReturnStatement struct {
	Position
	Argument Node // nil for bare `return`
}

type IfStatement struct {
	Position
	Test       Node
	Consequent Node
	Alternate  Node // nil when there is no else branch
}

// LoopStatement is a flattened `for` or `while` statement. The
// parenthesized header is consumed but not represented; only the loop
// keyword and the body survive, which is all the analyzer needs.
type LoopStatement struct {
	Position
	Keyword string // "for" or "while"
	Body    Node
}

type BinaryExpression struct {
	Position
	Operator string
	Left     Node
	Right    Node
}

type UnaryExpression struct {
	Position
	Operator string
	Operand  Node
}

type AssignmentExpression struct {
	Position
	Operator string
	Left     Node
	Right    Node
}

type CallExpression struct {
	Position
	Callee    Node
	Arguments []Node
}

// MemberExpression is obj.prop (Computed false) or obj[expr]
// (Computed true).
type MemberExpression struct {
	Position
	Object   Node
	Property Node
	Computed bool
}

type Identifier struct {
	Position
	Name string
}

// LiteralKind distinguishes the four literal value shapes.
type LiteralKind int

const (
	NumberLiteral LiteralKind = iota
	StringLiteral
	BooleanLiteral
	NullLiteral
)

// Literal is a number, string, boolean or null constant. Value holds
// the lexed text: the digits for numbers, the unquoted content for
// strings, "true"/"false" for booleans and "null" for null.
type Literal struct {
	Position
	LitKind LiteralKind
	Value   string
}

type ArrayExpression struct {
	Position
	Elements []Node
}

type ObjectExpression struct {
	Position
	Properties []*Property
}

type Property struct {
	Position
	Key   Node
	Value Node
}

func (*Program) Kind() NodeKind              { return KindProgram }
func (*VariableDeclaration) Kind() NodeKind  { return KindVariableDeclaration }
func (*VariableDeclarator) Kind() NodeKind   { return KindVariableDeclarator }
func (*FunctionDeclaration) Kind() NodeKind  { return KindFunctionDeclaration }
func (*BlockStatement) Kind() NodeKind       { return KindBlockStatement }
func (*ExpressionStatement) Kind() NodeKind  { return KindExpressionStatement }
func (*ReturnStatement) Kind() NodeKind      { return KindReturnStatement }
func (*IfStatement) Kind() NodeKind          { return KindIfStatement }
func (*LoopStatement) Kind() NodeKind        { return KindLoopStatement }
func (*BinaryExpression) Kind() NodeKind     { return KindBinaryExpression }
func (*UnaryExpression) Kind() NodeKind      { return KindUnaryExpression }
func (*AssignmentExpression) Kind() NodeKind { return KindAssignmentExpression }
func (*CallExpression) Kind() NodeKind       { return KindCallExpression }
func (*MemberExpression) Kind() NodeKind     { return KindMemberExpression }
func (*Identifier) Kind() NodeKind           { return KindIdentifier }
func (*Literal) Kind() NodeKind              { return KindLiteral }
func (*ArrayExpression) Kind() NodeKind      { return KindArrayExpression }
func (*ObjectExpression) Kind() NodeKind     { return KindObjectExpression }
func (*Property) Kind() NodeKind             { return KindProperty }

func (n *Program) Children() []Node { return n.Body }

func (n *VariableDeclaration) Children() []Node {
	children := make([]Node, 0, len(n.Declarations))
	for _, d := range n.Declarations {
		children = append(children, d)
	}
	return children
}

func (n *VariableDeclarator) Children() []Node {
	children := []Node{n.ID}
	if n.Init != nil {
		children = append(children, n.Init)
	}
	return children
}

func (n *FunctionDeclaration) Children() []Node {
	children := []Node{n.Name}
	for _, p := range n.Params {
		children = append(children, p)
	}
	return append(children, n.Body)
}

func (n *BlockStatement) Children() []Node { return n.Body }

func (n *ExpressionStatement) Children() []Node { return []Node{n.Expression} }

func (n *ReturnStatement) Children() []Node {
	if n.Argument == nil {
		return nil
	}
	return []Node{n.Argument}
}

func (n *IfStatement) Children() []Node {
	children := []Node{n.Test, n.Consequent}
	if n.Alternate != nil {
		children = append(children, n.Alternate)
	}
	return children
}

func (n *LoopStatement) Children() []Node { return []Node{n.Body} }

func (n *BinaryExpression) Children() []Node { return []Node{n.Left, n.Right} }

func (n *UnaryExpression) Children() []Node { return []Node{n.Operand} }

func (n *AssignmentExpression) Children() []Node { return []Node{n.Left, n.Right} }

func (n *CallExpression) Children() []Node {
	children := []Node{n.Callee}
	return append(children, n.Arguments...)
}

func (n *MemberExpression) Children() []Node { return []Node{n.Object, n.Property} }

func (n *Identifier) Children() []Node { return nil }

func (n *Literal) Children() []Node { return nil }

func (n *ArrayExpression) Children() []Node { return n.Elements }

func (n *ObjectExpression) Children() []Node {
	children := make([]Node, 0, len(n.Properties))
	for _, p := range n.Properties {
		children = append(children, p)
	}
	return children
}

func (n *Property) Children() []Node { return []Node{n.Key, n.Value} }

// IsString reports whether the literal is a string constant.
func (n *Literal) IsString() bool { return n.LitKind == StringLiteral }
