package codegen

import (
	"strconv"

	"github.com/sam-rubyy/vulpes-structures-of-programming/internal/ast"
)

// emitExpression emits expr and returns its SSA value (or literal) along
// with the LLVM type it carries, mirroring original_source's
// emitExpression(Expression*, std::string& outType) out-parameter as a
// second return value.
func (g *Generator) emitExpression(expr ast.Expr) (value, typ string) {
	switch e := expr.(type) {
	case *ast.Number:
		return strconv.FormatInt(int64(e.Value), 10), "i32"

	case *ast.Float:
		return formatFloat(e.Value), "double"

	case *ast.String:
		return g.emitStringLiteral(e.Value), "i8*"

	case *ast.Bool:
		if e.Value {
			return "true", "i1"
		}
		return "false", "i1"

	case *ast.Variable:
		return g.emitVariableLoad(e.Name)

	case *ast.Unary:
		return g.emitUnary(e)

	case *ast.Binary:
		return g.emitBinary(e)

	case *ast.Call:
		return g.emitCall(e)

	case *ast.Assignment:
		return g.emitAssignExpr(e)
	}
	return "0", "i32"
}

func (g *Generator) emitStringLiteral(value string) string {
	globalName := "@" + g.nextStringName()
	escaped := escapeString(value)
	length := len(value) + 1
	g.globals.Write("%s = private unnamed_addr constant [%d x i8] c\"%s\", align 1\n", globalName, length, escaped)
	ptr := g.nextTemp()
	g.body.Write("  %s = getelementptr inbounds [%d x i8], [%d x i8]* %s, i32 0, i32 0\n", ptr, length, length, globalName)
	return ptr
}

func (g *Generator) emitVariableLoad(name string) (string, string) {
	info, ok := g.resolveVariable(name)
	if !ok {
		return "0", "i32"
	}
	tmp := g.nextTemp()
	g.body.Write("  %s = load %s, %s* %s, align %d\n", tmp, info.typ, info.typ, info.address, alignmentFor(info.typ))
	return tmp, info.typ
}

func (g *Generator) emitUnary(u *ast.Unary) (string, string) {
	val, typ := g.emitExpression(u.Operand)
	if u.Op != "-" {
		return val, typ
	}
	tmp := g.nextTemp()
	if typ == "double" {
		g.body.Write("  %s = fsub double 0.0, %s\n", tmp, val)
		return tmp, "double"
	}
	if typ != "i32" {
		val = g.convert(val, typ, "i32")
	}
	g.body.Write("  %s = sub i32 0, %s\n", tmp, val)
	return tmp, "i32"
}

var comparisonOps = map[string]bool{
	"==": true, "!=": true, "<": true, ">": true, "<=": true, ">=": true,
}

func (g *Generator) emitBinary(b *ast.Binary) (string, string) {
	l, lt := g.emitExpression(b.Left)
	r, rt := g.emitExpression(b.Right)

	if comparisonOps[b.Op] {
		cmpType := "i32"
		if lt == "double" || rt == "double" {
			cmpType = "double"
		}
		if lt != cmpType {
			l = g.convert(l, lt, cmpType)
		}
		if rt != cmpType {
			r = g.convert(r, rt, cmpType)
		}
		tmp := g.nextTemp()
		op := icmpOp(b.Op, cmpType == "double")
		g.body.Write("  %s = %s %s %s, %s\n", tmp, op, cmpType, l, r)
		return tmp, "i1"
	}

	resType := "i32"
	if lt == "double" || rt == "double" {
		resType = "double"
	}
	if lt != resType {
		l = g.convert(l, lt, resType)
	}
	if rt != resType {
		r = g.convert(r, rt, resType)
	}
	tmp := g.nextTemp()
	op := arithOp(b.Op, resType == "double")
	g.body.Write("  %s = %s %s %s, %s\n", tmp, op, resType, l, r)
	return tmp, resType
}

func icmpOp(op string, float bool) string {
	if float {
		switch op {
		case "==":
			return "fcmp oeq"
		case "!=":
			return "fcmp one"
		case "<":
			return "fcmp olt"
		case ">":
			return "fcmp ogt"
		case "<=":
			return "fcmp ole"
		default:
			return "fcmp oge"
		}
	}
	switch op {
	case "==":
		return "icmp eq"
	case "!=":
		return "icmp ne"
	case "<":
		return "icmp slt"
	case ">":
		return "icmp sgt"
	case "<=":
		return "icmp sle"
	default:
		return "icmp sge"
	}
}

func arithOp(op string, float bool) string {
	if float {
		switch op {
		case "+":
			return "fadd"
		case "-":
			return "fsub"
		case "*":
			return "fmul"
		default:
			return "fdiv"
		}
	}
	switch op {
	case "+":
		return "add"
	case "-":
		return "sub"
	case "*":
		return "mul"
	default:
		return "sdiv"
	}
}

func (g *Generator) emitAssignExpr(a *ast.Assignment) (string, string) {
	target, ok := g.resolveVariable(a.Name)
	if !ok {
		return "0", "i32"
	}
	rhs, rhsType := g.emitExpression(a.Value)
	if rhsType != target.typ {
		rhs = g.convert(rhs, rhsType, target.typ)
	}
	align := alignmentFor(target.typ)
	g.body.Write("  store %s %s, %s* %s, align %d\n", target.typ, rhs, target.typ, target.address, align)
	return rhs, target.typ
}
