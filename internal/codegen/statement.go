package codegen

import "github.com/sam-rubyy/vulpes-structures-of-programming/internal/ast"

// emitStatement emits stmt into the current function body, returning true
// if it terminated the enclosing block with a return (so emitFunction and
// nested block emission know to stop walking further statements, matching
// original_source's bool-returning emitStatement).
func (g *Generator) emitStatement(stmt ast.Stmt, currentReturn string) bool {
	switch s := stmt.(type) {
	case *ast.Block:
		g.pushScope()
		defer g.popScope()
		for _, inner := range s.Stmts {
			if g.emitStatement(inner, currentReturn) {
				return true
			}
		}
		return false

	case *ast.VarDecl:
		g.emitVarDecl(s)
		return false

	case *ast.Assign:
		g.emitAssignStmt(s)
		return false

	case *ast.ExprStmt:
		g.emitExpression(s.Expr)
		return false

	case *ast.Return:
		g.emitReturn(s, currentReturn)
		return true

	case *ast.Print:
		g.emitPrint(s)
		return false

	case *ast.Gather:
		g.emitGather(s)
		return false

	case *ast.If:
		g.emitIf(s, currentReturn)
		return false

	case *ast.While:
		g.emitWhile(s, currentReturn)
		return false

	case *ast.For:
		g.emitFor(s, currentReturn)
		return false
	}
	return false
}

func (g *Generator) emitVarDecl(decl *ast.VarDecl) {
	initType := ""
	if decl.Type != "" {
		initType = mapType(decl.Type)
	}
	value := "0"
	if decl.Initializer != nil {
		v, exprType := g.emitExpression(decl.Initializer)
		if initType == "" {
			initType = exprType
		} else if exprType != initType {
			v = g.convert(v, exprType, initType)
		}
		value = v
	} else {
		if initType == "" {
			initType = "i32"
		}
		switch initType {
		case "double":
			value = "0.0"
		case "i1":
			value = "false"
		default:
			value = "0"
		}
	}
	s := g.nextTemp()
	align := alignmentFor(initType)
	g.body.Write("  %s = alloca %s, align %d\n", s, initType, align)
	g.body.Write("  store %s %s, %s* %s, align %d\n", initType, value, initType, s, align)
	g.currentScope()[decl.Name] = slot{address: s, typ: initType}
}

func (g *Generator) emitAssignStmt(a *ast.Assign) {
	target, ok := g.resolveVariable(a.Name)
	if !ok {
		return
	}
	rhs, rhsType := g.emitExpression(a.Value)
	if rhsType != target.typ {
		rhs = g.convert(rhs, rhsType, target.typ)
	}
	align := alignmentFor(target.typ)
	g.body.Write("  store %s %s, %s* %s, align %d\n", target.typ, rhs, target.typ, target.address, align)
}

func (g *Generator) emitReturn(ret *ast.Return, currentReturn string) {
	if ret.Value == nil {
		g.body.WriteString("  ret void\n")
		return
	}
	value, typ := g.emitExpression(ret.Value)
	if typ != currentReturn && currentReturn != "void" {
		value = g.convert(value, typ, currentReturn)
		typ = currentReturn
	}
	g.body.Write("  ret %s %s\n", typ, value)
}

func (g *Generator) emitGather(gs *ast.Gather) {
	for _, name := range gs.Names {
		v, ok := g.resolveVariable(name)
		if !ok {
			s := g.nextTemp()
			g.body.Write("  %s = alloca i32, align 4\n", s)
			g.body.Write("  store i32 0, i32* %s, align 4\n", s)
			v = slot{address: s, typ: "i32"}
			g.currentScope()[name] = v
		}
		call := g.nextTemp()
		g.body.Write("  %s = call i32 (i8*, ...) @scanf(i8* getelementptr inbounds ([3 x i8], [3 x i8]* @.str_input_int, i32 0, i32 0), i32* %s)\n", call, v.address)
	}
}

func (g *Generator) emitIf(ifs *ast.If, currentReturn string) {
	condVal, condType := g.emitExpression(ifs.Cond)
	if condType != "i1" {
		condVal = g.convert(condVal, condType, "i1")
	}
	thenLabel := g.nextLabel("if_then")
	elseLabel := g.nextLabel("if_else")
	endLabel := g.nextLabel("if_end")

	target := endLabel
	if ifs.Else != nil {
		target = elseLabel
	}
	g.body.Write("  br i1 %s, label %%%s, label %%%s\n", condVal, thenLabel, target)
	g.body.Label(thenLabel)
	g.emitStatement(ifs.Then, currentReturn)
	g.body.Write("  br label %%%s\n", endLabel)
	if ifs.Else != nil {
		g.body.Label(elseLabel)
		g.emitStatement(ifs.Else, currentReturn)
		g.body.Write("  br label %%%s\n", endLabel)
	}
	g.body.Label(endLabel)
}

func (g *Generator) emitWhile(ws *ast.While, currentReturn string) {
	condLabel := g.nextLabel("while_cond")
	bodyLabel := g.nextLabel("while_body")
	endLabel := g.nextLabel("while_end")

	g.body.Write("  br label %%%s\n", condLabel)
	g.body.Label(condLabel)
	condVal, condType := g.emitExpression(ws.Cond)
	if condType != "i1" {
		condVal = g.convert(condVal, condType, "i1")
	}
	g.body.Write("  br i1 %s, label %%%s, label %%%s\n", condVal, bodyLabel, endLabel)
	g.body.Label(bodyLabel)
	g.emitStatement(ws.Body, currentReturn)
	g.body.Write("  br label %%%s\n", condLabel)
	g.body.Label(endLabel)
}

func (g *Generator) emitFor(fs *ast.For, currentReturn string) {
	startVal, startType := g.emitExpression(fs.Start)
	endVal, endType := g.emitExpression(fs.End)
	startVal = g.convert(startVal, startType, "i32")
	endVal = g.convert(endVal, endType, "i32")

	iterSlot := g.nextTemp()
	g.body.Write("  %s = alloca i32, align 4\n", iterSlot)
	g.body.Write("  store i32 %s, i32* %s, align 4\n", startVal, iterSlot)
	g.currentScope()[fs.Iterator] = slot{address: iterSlot, typ: "i32"}

	condLabel := g.nextLabel("for_cond")
	loopLabel := g.nextLabel("for_body")
	endLabel := g.nextLabel("for_end")

	g.body.Write("  br label %%%s\n", condLabel)
	g.body.Label(condLabel)
	cur := g.nextTemp()
	g.body.Write("  %s = load i32, i32* %s, align 4\n", cur, iterSlot)
	cmp := g.nextTemp()
	g.body.Write("  %s = icmp slt i32 %s, %s\n", cmp, cur, endVal)
	g.body.Write("  br i1 %s, label %%%s, label %%%s\n", cmp, loopLabel, endLabel)
	g.body.Label(loopLabel)
	g.emitStatement(fs.Body, currentReturn)
	next := g.nextTemp()
	g.body.Write("  %s = add i32 %s, 1\n", next, cur)
	g.body.Write("  store i32 %s, i32* %s, align 4\n", next, iterSlot)
	g.body.Write("  br label %%%s\n", condLabel)
	g.body.Label(endLabel)
}
