package codegen

import "github.com/sam-rubyy/vulpes-structures-of-programming/internal/ast"

// emitCall dispatches sqrt/rand (the two builtins, matching
// original_source's hard-coded special cases ahead of user-function
// lookup) and otherwise resolves a user function from the registry.
func (g *Generator) emitCall(c *ast.Call) (string, string) {
	if c.Namespace == "" && c.Name == "sqrt" && len(c.Args) == 1 {
		return g.emitSqrt(c.Args[0])
	}
	if c.Namespace == "" && c.Name == "rand" && len(c.Args) == 2 {
		return g.emitRand(c.Args[0], c.Args[1])
	}

	key := funcKey(c.Namespace, c.Name)
	info, ok := g.functions[key]
	if !ok {
		return "0", "i32"
	}

	var argValues, argTypes []string
	for i, arg := range c.Args {
		v, t := g.emitExpression(arg)
		if i < len(info.parameters) {
			expected := mapType(info.parameters[i].Type)
			if t != expected {
				v = g.convert(v, t, expected)
			}
			t = expected
		}
		argValues = append(argValues, v)
		argTypes = append(argTypes, t)
	}

	var res string
	if info.returnType != "void" {
		res = g.nextTemp()
		g.body.Write("  %s = call %s @%s(", res, info.returnType, info.irName)
	} else {
		g.body.Write("  call void @%s(", info.irName)
	}
	for i := range argValues {
		if i > 0 {
			g.body.WriteString(", ")
		}
		g.body.Write("%s %s", argTypes[i], argValues[i])
	}
	g.body.WriteString(")\n")
	return res, info.returnType
}

func (g *Generator) emitSqrt(arg ast.Expr) (string, string) {
	v, t := g.emitExpression(arg)
	if t != "double" {
		v = g.convert(v, t, "double")
	}
	tmp := g.nextTemp()
	g.body.Write("  %s = call double @sqrt(double %s)\n", tmp, v)
	return tmp, "double"
}

// emitRand lowers rand(lo, hi) to a closed-interval draw from a linear
// congruential generator seeded once from time(), exactly as
// original_source's CodeGenerator does: same multiplier (1103515245),
// increment (12345) and mask (0x7FFFFFFF), same @rand_seeded guard.
func (g *Generator) emitRand(loExpr, hiExpr ast.Expr) (string, string) {
	loVal, loType := g.emitExpression(loExpr)
	hiVal, hiType := g.emitExpression(hiExpr)
	loVal = g.convert(loVal, loType, "i32")
	hiVal = g.convert(hiVal, hiType, "i32")

	seeded := g.nextTemp()
	seedLabel := g.nextLabel("seed")
	contLabel := g.nextLabel("cont")
	g.body.Write("  %s = load i1, i1* @rand_seeded, align 1\n", seeded)
	g.body.Write("  br i1 %s, label %%%s, label %%%s\n", seeded, contLabel, seedLabel)
	g.body.Label(seedLabel)
	timeReg := g.nextTemp()
	truncReg := g.nextTemp()
	g.body.Write("  %s = call i64 @time(i8* null)\n", timeReg)
	g.body.Write("  %s = trunc i64 %s to i32\n", truncReg, timeReg)
	g.body.Write("  store i32 %s, i32* @rand_seed, align 4\n", truncReg)
	g.body.WriteString("  store i1 true, i1* @rand_seeded, align 1\n")
	g.body.Write("  br label %%%s\n", contLabel)
	g.body.Label(contLabel)

	seed := g.nextTemp()
	g.body.Write("  %s = load i32, i32* @rand_seed, align 4\n", seed)
	s1, s2, s3 := g.nextTemp(), g.nextTemp(), g.nextTemp()
	g.body.Write("  %s = mul i32 %s, 1103515245\n", s1, seed)
	g.body.Write("  %s = add i32 %s, 12345\n", s2, s1)
	g.body.Write("  %s = and i32 %s, 2147483647\n", s3, s2)
	g.body.Write("  store i32 %s, i32* @rand_seed, align 4\n", s3)

	rangeVal, size, scaled, result := g.nextTemp(), g.nextTemp(), g.nextTemp(), g.nextTemp()
	g.body.Write("  %s = sub i32 %s, %s\n", rangeVal, hiVal, loVal)
	g.body.Write("  %s = add i32 %s, 1\n", size, rangeVal)
	g.body.Write("  %s = urem i32 %s, %s\n", scaled, s3, size)
	g.body.Write("  %s = add i32 %s, %s\n", result, loVal, scaled)
	return result, "i32"
}
