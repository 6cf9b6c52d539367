// Tests the lexer by verifying that a small VLP snippet is tokenized into
// the expected kind/lexeme/position sequence, in the same
// expected-slice-versus-scanned-stream style as the teacher's own
// TestLexer.
package lexer

import "testing"

func TestLexBasicProgram(t *testing.T) {
	src := "fx add(int: a, int: b) -> int {\n  return a + b;\n}\n"

	exp := []Token{
		{Kind: Fx, Lexeme: "fx", Line: 1, Column: 1},
		{Kind: Identifier, Lexeme: "add", Line: 1, Column: 4},
		{Kind: LeftParen, Lexeme: "(", Line: 1, Column: 7},
		{Kind: Identifier, Lexeme: "int", Line: 1, Column: 8},
		{Kind: Colon, Lexeme: ":", Line: 1, Column: 11},
		{Kind: Identifier, Lexeme: "a", Line: 1, Column: 13},
		{Kind: Comma, Lexeme: ",", Line: 1, Column: 14},
		{Kind: Identifier, Lexeme: "int", Line: 1, Column: 16},
		{Kind: Colon, Lexeme: ":", Line: 1, Column: 19},
		{Kind: Identifier, Lexeme: "b", Line: 1, Column: 21},
		{Kind: RightParen, Lexeme: ")", Line: 1, Column: 22},
		{Kind: Arrow, Lexeme: "->", Line: 1, Column: 24},
		{Kind: Identifier, Lexeme: "int", Line: 1, Column: 27},
		{Kind: LeftBrace, Lexeme: "{", Line: 1, Column: 31},
		{Kind: Return, Lexeme: "return", Line: 2, Column: 3},
		{Kind: Identifier, Lexeme: "a", Line: 2, Column: 10},
		{Kind: Plus, Lexeme: "+", Line: 2, Column: 12},
		{Kind: Identifier, Lexeme: "b", Line: 2, Column: 14},
		{Kind: Semicolon, Lexeme: ";", Line: 2, Column: 15},
		{Kind: RightBrace, Lexeme: "}", Line: 3, Column: 1},
		{Kind: EndOfFile, Lexeme: "", Line: 4, Column: 1},
	}

	got := Lex(src)
	if len(got) != len(exp) {
		t.Fatalf("expected %d tokens, got %d: %v", len(exp), len(got), got)
	}
	for i, e := range exp {
		g := got[i]
		if g.Kind != e.Kind || g.Lexeme != e.Lexeme {
			t.Errorf("token %d: expected {%s %q}, got {%s %q}", i, e.Kind, e.Lexeme, g.Kind, g.Lexeme)
		}
		if g.Line != e.Line || g.Column != e.Column {
			t.Errorf("token %d (%q): expected position %d:%d, got %d:%d", i, e.Lexeme, e.Line, e.Column, g.Line, g.Column)
		}
	}
}

func TestLexRangeOperatorVsFloat(t *testing.T) {
	got := Lex("0..5")
	want := []Kind{Number, DotDot, Number, EndOfFile}
	if len(got) != len(want) {
		t.Fatalf("expected %d tokens, got %d: %v", len(want), len(got), got)
	}
	for i, k := range want {
		if got[i].Kind != k {
			t.Errorf("token %d: expected kind %s, got %s", i, k, got[i].Kind)
		}
	}
}

func TestLexStringEscapes(t *testing.T) {
	got := Lex(`"line\nand\ttab\x"`)
	if len(got) != 2 {
		t.Fatalf("expected 2 tokens (String, EOF), got %d: %v", len(got), got)
	}
	if got[0].Kind != String {
		t.Fatalf("expected String token, got %s", got[0].Kind)
	}
	want := "line\nand\ttabx"
	if got[0].Lexeme != want {
		t.Errorf("expected escaped lexeme %q, got %q", want, got[0].Lexeme)
	}
}

func TestLexUnterminatedStringNoPanic(t *testing.T) {
	got := Lex(`"never closed`)
	if len(got) != 2 || got[0].Kind != String || got[1].Kind != EndOfFile {
		t.Fatalf("expected [String EOF], got %v", got)
	}
}

func TestIsKeyword(t *testing.T) {
	cases := map[string]Kind{
		"var": Var, "const": Const, "fx": Fx, "if": If, "else": Else,
		"for": For, "in": In, "while": While, "return": Return,
		"print": Print, "gather": Gather, "mod": Mod, "true": True, "false": False,
	}
	for word, kind := range cases {
		if k, ok := isKeyword(word); !ok || k != kind {
			t.Errorf("isKeyword(%q) = (%s, %v), want (%s, true)", word, k, ok, kind)
		}
	}
	if _, ok := isKeyword("notakeyword"); ok {
		t.Errorf("isKeyword(%q) should not match any reserved word", "notakeyword")
	}
	if _, ok := isKeyword(""); ok {
		t.Errorf("isKeyword(\"\") should not match")
	}
}
