package codegen

import "strconv"

// formatFloat renders a float literal's IR text. original_source streams
// the value through an ostringstream, which picks its own shortest/round-
// trippable rendering; strconv's 'g' verb with -1 precision gives the
// same shortest-round-trip behavior for Go float64 values.
func formatFloat(v float64) string {
	return strconv.FormatFloat(v, 'g', -1, 64)
}

// convert emits a coercion from one LLVM scalar type to another, per the
// lattice in spec §4.3 (i32 <-> double <-> i1). Grounded verbatim on
// original_source's CodeGenerator::convert, including its policy of
// returning the value unchanged for any pair outside the lattice (for
// example anything to or from i8*) rather than erroring.
func (g *Generator) convert(value, from, to string) string {
	if from == to {
		return value
	}
	tmp := g.nextTemp()
	switch {
	case from == "i32" && to == "double":
		g.body.Write("  %s = sitofp i32 %s to double\n", tmp, value)
	case from == "double" && to == "i32":
		g.body.Write("  %s = fptosi double %s to i32\n", tmp, value)
	case from == "i32" && to == "i1":
		g.body.Write("  %s = icmp ne i32 %s, 0\n", tmp, value)
	case from == "double" && to == "i1":
		g.body.Write("  %s = fcmp one double %s, 0.0\n", tmp, value)
	case from == "i1" && to == "i32":
		g.body.Write("  %s = zext i1 %s to i32\n", tmp, value)
	case from == "i1" && to == "double":
		mid := tmp
		tmp = g.nextTemp()
		g.body.Write("  %s = zext i1 %s to i32\n", mid, value)
		g.body.Write("  %s = sitofp i32 %s to double\n", tmp, mid)
	default:
		return value
	}
	return tmp
}
