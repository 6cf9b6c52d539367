package lexer

import "fmt"

// Kind differentiates the tokens produced by the lexer.
type Kind int

const (
	EndOfFile Kind = iota
	Unknown

	Identifier
	Number
	Float
	String
	True
	False

	// keywords
	Var
	Const
	Fx
	If
	Else
	For
	In
	While
	Return
	Print
	Gather
	Mod

	// punctuation / operators
	Arrow       // ->
	Colon       // :
	ColonColon  // ::
	LeftParen   // (
	RightParen  // )
	LeftBrace   // {
	RightBrace  // }
	Comma       // ,
	Semicolon   // ;
	Dot         // .
	DotDot      // ..
	Plus        // +
	Minus       // -
	Star        // *
	Slash       // /
	Assign      // =
	Equals      // ==
	NotEquals   // !=
	Less        // <
	LessEq      // <=
	Greater     // >
	GreaterEq   // >=
)

var kindNames = [...]string{
	EndOfFile:  "EOF",
	Unknown:    "Unknown",
	Identifier: "Identifier",
	Number:     "Number",
	Float:      "Float",
	String:     "String",
	True:       "true",
	False:      "false",
	Var:        "var",
	Const:      "const",
	Fx:         "fx",
	If:         "if",
	Else:       "else",
	For:        "for",
	In:         "in",
	While:      "while",
	Return:     "return",
	Print:      "print",
	Gather:     "gather",
	Mod:        "mod",
	Arrow:      "->",
	Colon:      ":",
	ColonColon: "::",
	LeftParen:  "(",
	RightParen: ")",
	LeftBrace:  "{",
	RightBrace: "}",
	Comma:      ",",
	Semicolon:  ";",
	Dot:        ".",
	DotDot:     "..",
	Plus:       "+",
	Minus:      "-",
	Star:       "*",
	Slash:      "/",
	Assign:     "=",
	Equals:     "==",
	NotEquals:  "!=",
	Less:       "<",
	LessEq:     "<=",
	Greater:    ">",
	GreaterEq:  ">=",
}

// String returns a human readable name for the token kind, used in test
// failure messages.
func (k Kind) String() string {
	if int(k) >= 0 && int(k) < len(kindNames) && kindNames[k] != "" {
		return kindNames[k]
	}
	return fmt.Sprintf("Kind(%d)", int(k))
}

// Token is a single lexeme scanned from the source, tagged with its kind
// and 1-based source position.
type Token struct {
	Kind   Kind
	Lexeme string
	Line   int
	Column int
}

// String formats the token for diagnostic output and tests.
func (t Token) String() string {
	if len(t.Lexeme) > 10 {
		return fmt.Sprintf("%.10q... (line %d:%d)", t.Lexeme, t.Line, t.Column)
	}
	return fmt.Sprintf("%q (line %d:%d)", t.Lexeme, t.Line, t.Column)
}

// rw holds the reserved VLP keywords, indexed by word length the way the
// teacher's frontend/lang.go does it: searching a short per-length slice
// beats a hash table for a keyword set this small.
type reservedWord struct {
	word string
	kind Kind
}

var rw [][]reservedWord

func init() {
	words := []reservedWord{
		{"var", Var},
		{"const", Const},
		{"fx", Fx},
		{"if", If},
		{"else", Else},
		{"for", For},
		{"in", In},
		{"while", While},
		{"return", Return},
		{"print", Print},
		{"gather", Gather},
		{"mod", Mod},
		{"true", True},
		{"false", False},
	}
	maxLen := 0
	for _, w := range words {
		if len(w.word) > maxLen {
			maxLen = len(w.word)
		}
	}
	rw = make([][]reservedWord, maxLen+1)
	for _, w := range words {
		rw[len(w.word)] = append(rw[len(w.word)], w)
	}
}

// isKeyword reports whether s is a reserved VLP keyword, returning its kind.
func isKeyword(s string) (Kind, bool) {
	if len(s) == 0 || len(s) >= len(rw) {
		return Identifier, false
	}
	for _, w := range rw[len(s)] {
		if w.word == s {
			return w.kind, true
		}
	}
	return Identifier, false
}
