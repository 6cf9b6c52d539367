// Package ast defines the VLP syntax tree. Nodes form two closed families,
// Expr and Stmt, each a Go sum type expressed as an interface with an
// unexported marker method implemented by every concrete node. The parser
// builds the tree bottom-up and the code generator walks it, writing only
// FunctionDef.Namespace on functions of imported modules.
package ast

// Pos carries the source position a node was parsed from, for diagnostics.
type Pos struct {
	Line   int
	Column int
}

// Expr is implemented by every expression node.
type Expr interface {
	exprNode()
	Position() Pos
}

// Stmt is implemented by every statement node.
type Stmt interface {
	stmtNode()
	Position() Pos
}

// ---- Expressions ----

type Number struct {
	Pos   Pos
	Value int32
}

type Float struct {
	Pos   Pos
	Value float64
}

type String struct {
	Pos   Pos
	Value string
}

type Bool struct {
	Pos   Pos
	Value bool
}

type Variable struct {
	Pos  Pos
	Name string
}

type Unary struct {
	Pos     Pos
	Op      string
	Operand Expr
}

type Binary struct {
	Pos   Pos
	Left  Expr
	Op    string
	Right Expr
}

type Assignment struct {
	Pos   Pos
	Name  string
	Value Expr
}

// Call is a function call, optionally namespaced (ns.name(...)) by a module
// import alias. Namespace is empty for an unqualified call.
type Call struct {
	Pos       Pos
	Namespace string
	Name      string
	Args      []Expr
}

func (*Number) exprNode()     {}
func (*Float) exprNode()      {}
func (*String) exprNode()     {}
func (*Bool) exprNode()       {}
func (*Variable) exprNode()   {}
func (*Unary) exprNode()      {}
func (*Binary) exprNode()     {}
func (*Assignment) exprNode() {}
func (*Call) exprNode()       {}

func (n *Number) Position() Pos     { return n.Pos }
func (n *Float) Position() Pos      { return n.Pos }
func (n *String) Position() Pos     { return n.Pos }
func (n *Bool) Position() Pos       { return n.Pos }
func (n *Variable) Position() Pos   { return n.Pos }
func (n *Unary) Position() Pos      { return n.Pos }
func (n *Binary) Position() Pos     { return n.Pos }
func (n *Assignment) Position() Pos { return n.Pos }
func (n *Call) Position() Pos       { return n.Pos }

// ---- Statements ----

type Block struct {
	Pos   Pos
	Stmts []Stmt
}

// VarDecl declares a variable or, when IsConst is set, a constant. VLP
// parses const but never enforces immutability at emission time (spec open
// question — see DESIGN.md).
type VarDecl struct {
	Pos         Pos
	Name        string
	Type        string // Declared type name, or "" if omitted.
	IsConst     bool
	Initializer Expr // nil if no initializer.
}

type Assign struct {
	Pos   Pos
	Name  string
	Value Expr
}

type ExprStmt struct {
	Pos  Pos
	Expr Expr
}

type Return struct {
	Pos   Pos
	Value Expr // nil for a bare "return;"
}

type If struct {
	Pos  Pos
	Cond Expr
	Then *Block
	Else *Block // nil if no else branch.
}

type For struct {
	Pos      Pos
	Iterator string
	Start    Expr
	End      Expr
	Body     *Block
}

type While struct {
	Pos  Pos
	Cond Expr
	Body *Block
}

// Print lowers a print(...) call: Format holds the template ("{}" per
// positional argument), Formatted records whether the source supplied an
// explicit string-literal template as the first argument.
type Print struct {
	Pos       Pos
	Format    string
	Args      []Expr
	Formatted bool
}

type Gather struct {
	Pos   Pos
	Names []string
}

// Parameter is a single function parameter: type-first syntax in source
// ("int: x"), with an auto-generated name (p0, p1, ...) when the name is
// omitted.
type Parameter struct {
	Type string
	Name string
}

type FunctionDef struct {
	Pos        Pos
	Name       string
	Namespace  string // Set to the import alias by codegen.Generate for imported functions.
	ReturnType string
	Parameters []Parameter
	Body       *Block // nil for a prototype with no body.
}

type ModuleImport struct {
	Pos   Pos
	Path  string
	Alias string
}

func (*Block) stmtNode()        {}
func (*VarDecl) stmtNode()      {}
func (*Assign) stmtNode()       {}
func (*ExprStmt) stmtNode()     {}
func (*Return) stmtNode()       {}
func (*If) stmtNode()           {}
func (*For) stmtNode()          {}
func (*While) stmtNode()        {}
func (*Print) stmtNode()        {}
func (*Gather) stmtNode()       {}
func (*FunctionDef) stmtNode()  {}
func (*ModuleImport) stmtNode() {}

func (n *Block) Position() Pos        { return n.Pos }
func (n *VarDecl) Position() Pos      { return n.Pos }
func (n *Assign) Position() Pos       { return n.Pos }
func (n *ExprStmt) Position() Pos     { return n.Pos }
func (n *Return) Position() Pos       { return n.Pos }
func (n *If) Position() Pos           { return n.Pos }
func (n *For) Position() Pos          { return n.Pos }
func (n *While) Position() Pos        { return n.Pos }
func (n *Print) Position() Pos        { return n.Pos }
func (n *Gather) Position() Pos       { return n.Pos }
func (n *FunctionDef) Position() Pos  { return n.Pos }
func (n *ModuleImport) Position() Pos { return n.Pos }

// Program is the root of a parsed source file: a flat sequence of top-level
// declarations in source order (module imports, function definitions, and
// top-level statements; a prototype function definition parses to nil and
// is dropped from this slice, per spec).
type Program struct {
	Decls []Stmt
}
