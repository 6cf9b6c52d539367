package codegen

import (
	"strings"

	"github.com/sam-rubyy/vulpes-structures-of-programming/internal/ast"
)

// emitPrint lowers a print statement to a printf call. Format-placeholder
// substitution, the surplus-argument fallback, and the trailing-newline
// rule all follow original_source's PrintStatement handling, which is the
// executable ground truth for edge cases spec §4.3 only describes in
// prose (an empty format with no arguments, more arguments than "{}"
// placeholders, etc).
func (g *Generator) emitPrint(p *ast.Print) {
	type argument struct {
		value string
		typ   string
	}
	var args []argument
	for _, a := range p.Args {
		v, t := g.emitExpression(a)
		args = append(args, argument{value: v, typ: t})
	}

	built := p.Format
	if built == "" && len(args) > 0 {
		built = "{}"
	}

	var finalFmt strings.Builder
	argIndex := 0
	for i := 0; i < len(built); i++ {
		if built[i] == '{' && i+1 < len(built) && built[i+1] == '}' && argIndex < len(args) {
			finalFmt.WriteString(specifierFor(args[argIndex].typ))
			argIndex++
			i++
		} else {
			finalFmt.WriteByte(built[i])
		}
	}
	for argIndex < len(args) {
		s := finalFmt.String()
		if s != "" && s[len(s)-1] != ' ' {
			finalFmt.WriteByte(' ')
		}
		finalFmt.WriteString(specifierFor(args[argIndex].typ))
		argIndex++
	}
	fmtStr := finalFmt.String()
	if fmtStr == "" || fmtStr[len(fmtStr)-1] != '\n' {
		fmtStr += "\n"
	}

	escaped := escapeString(fmtStr)
	length := len(fmtStr) + 1
	globalName := "@" + g.nextStringName()
	g.globals.Write("%s = private unnamed_addr constant [%d x i8] c\"%s\", align 1\n", globalName, length, escaped)

	fmtPtr := g.nextTemp()
	g.body.Write("  %s = getelementptr inbounds [%d x i8], [%d x i8]* %s, i32 0, i32 0\n", fmtPtr, length, length, globalName)

	var converted []argument
	for _, a := range args {
		if a.typ == "i1" {
			a.value = g.convert(a.value, "i1", "i32")
			a.typ = "i32"
		}
		converted = append(converted, a)
	}

	call := g.nextTemp()
	g.body.Write("  %s = call i32 (i8*, ...) @printf(i8* %s", call, fmtPtr)
	for _, a := range converted {
		g.body.Write(", %s %s", a.typ, a.value)
	}
	g.body.WriteString(")\n")
}

func specifierFor(llvmType string) string {
	switch llvmType {
	case "i32":
		return "%d"
	case "double":
		return "%g"
	case "i8*":
		return "%s"
	default:
		return "%d"
	}
}
