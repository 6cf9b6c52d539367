package util

// Options is the compiler's configuration, populated entirely from CLI
// flags (no config file, matching the teacher, whose own util.Options
// is likewise flag-only).
type Options struct {
	Src      string // Path to source .vlp file.
	Out      string // Path to the linked executable.
	ShowLLVM bool   // Print generated IR to stdout.
	Run      bool   // Execute the linked binary after a successful build.
	Clean    bool   // Remove generated .ll/.o/output artifacts and exit.
	Verbose  bool   // Emit loggo trace/debug output for internal stages.
}
