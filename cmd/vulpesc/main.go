// Command vulpesc compiles a single VLP source file to a native executable.
// The driver is thin by design (spec §1/§6 put it out of core scope): read
// source, run lexer -> parser -> codegen, write the .ll file, then shell
// out to clang (falling back to llc+gcc) exactly as original_source's
// main.cpp does. CLI surface and stage order are grounded on main.cpp;
// the Options struct / run(opt) error shape follows the teacher's
// util.Options and main.go's run function.
package main

import (
	"fmt"
	"os"
	"os/exec"
	"path/filepath"
	"strings"

	"github.com/juju/loggo"

	"github.com/sam-rubyy/vulpes-structures-of-programming/internal/codegen"
	"github.com/sam-rubyy/vulpes-structures-of-programming/internal/diag"
	"github.com/sam-rubyy/vulpes-structures-of-programming/internal/lexer"
	"github.com/sam-rubyy/vulpes-structures-of-programming/internal/parser"
	"github.com/sam-rubyy/vulpes-structures-of-programming/internal/util"
)

var logger = loggo.GetLogger("vulpes.driver")

func main() {
	opt := parseArgs(os.Args[1:])
	if opt.Verbose {
		_ = loggo.ConfigureLoggers("vulpes=TRACE")
	}

	if opt.Clean {
		clean(opt)
		return
	}

	if err := run(opt); err != nil {
		fmt.Fprintf(os.Stderr, "Error: %s\n", err)
		os.Exit(1)
	}
}

// parseArgs hand-rolls flag parsing the way the teacher's util.ParseArgs
// does, rather than reaching for flag.FlagSet: a positional *.vlp source
// path plus a handful of bare switches: main.cpp's flag set (-o,
// --show-llvm/-ll, --run/-r/run, --clean/-c) plus -vb/--verbose, which
// turns on loggo trace output.
func parseArgs(args []string) util.Options {
	opt := util.Options{Src: "main.vlp", Out: "a.out"}
	for i := 0; i < len(args); i++ {
		switch args[i] {
		case "--show-llvm", "-ll":
			opt.ShowLLVM = true
		case "--run", "-r", "run":
			opt.Run = true
		case "--clean", "-c":
			opt.Clean = true
		case "-vb", "--verbose":
			opt.Verbose = true
		case "-o":
			if i+1 < len(args) {
				opt.Out = args[i+1]
				i++
			}
		default:
			if strings.HasSuffix(args[i], ".vlp") {
				opt.Src = args[i]
			}
		}
	}
	return opt
}

func stem(path string) string {
	ext := filepath.Ext(path)
	return strings.TrimSuffix(path, ext)
}

func clean(opt util.Options) {
	s := stem(opt.Src)
	_ = os.Remove(s + ".ll")
	_ = os.Remove(s + ".o")
	_ = os.Remove(opt.Out)
	_ = os.Remove("a.out")
}

// run executes every compiler stage for one source file, matching the
// order in main.cpp: read, lex, parse, bail on diagnostics, generate IR,
// write the .ll file, optionally echo it, then link.
func run(opt util.Options) error {
	source, err := os.ReadFile(opt.Src)
	if err != nil {
		return fmt.Errorf("could not read source code: %w", err)
	}

	tokens := lexer.Lex(string(source))
	errs := diag.NewCollector(opt.Src, string(source))
	program := parser.Parse(tokens, errs)
	if errs.HasErrors() {
		errs.PrintErrors(os.Stderr)
		os.Exit(1)
	}

	gen := codegen.New()
	imports := codegen.ResolveModules(program, errs)
	ir := gen.Generate(program, imports)
	logger.Debugf("generated %d bytes of IR for %s", len(ir), opt.Src)

	llFile := stem(opt.Src) + ".ll"
	if err := os.WriteFile(llFile, []byte(ir), 0644); err != nil {
		return fmt.Errorf("could not write %s: %w", llFile, err)
	}

	if opt.ShowLLVM {
		fmt.Println(ir)
	}

	if err := link(llFile, opt.Out); err != nil {
		return err
	}
	fmt.Printf("Executable created: %s\n", opt.Out)

	if opt.Run {
		cmd := exec.Command("./" + opt.Out)
		cmd.Stdin = os.Stdin
		cmd.Stdout = os.Stdout
		cmd.Stderr = os.Stderr
		_ = cmd.Run()
	}
	return nil
}

// link invokes clang directly, falling back to llc (emit an object file)
// then gcc if clang isn't available, matching main.cpp's fallback chain.
func link(llFile, out string) error {
	if err := exec.Command("clang", "-o", out, llFile, "-lm").Run(); err == nil {
		return nil
	}

	objFile := stem(llFile) + ".o"
	if err := exec.Command("llc", "-filetype=obj", llFile, "-o", objFile).Run(); err != nil {
		return fmt.Errorf("compilation failed (clang/llc/gcc not available?)")
	}
	if err := exec.Command("gcc", "-o", out, objFile, "-lm").Run(); err != nil {
		return fmt.Errorf("compilation failed (clang/llc/gcc not available?)")
	}
	return nil
}
