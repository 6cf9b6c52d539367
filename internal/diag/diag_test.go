package diag

import (
	"bytes"
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestCollectorHasErrors(t *testing.T) {
	c := NewCollector("t.vlp", "var x;\n")
	assert.False(t, c.HasErrors())

	c.Warning(1, 1, "unused variable")
	assert.False(t, c.HasErrors(), "a Warning alone should not count as an error")

	c.Error(1, 5, "expected ';'")
	assert.True(t, c.HasErrors())
	assert.Equal(t, 2, c.Len())
}

func TestCollectorFatalCountsAsError(t *testing.T) {
	c := NewCollector("t.vlp", "")
	c.Fatal(1, 1, "internal error")
	assert.True(t, c.HasErrors())
}

func TestPrintErrorsFormat(t *testing.T) {
	src := "var x = 1\nprint(x)\n"
	c := NewCollector("sample.vlp", src)
	c.Error(2, 9, "expected ';' after print")

	var buf bytes.Buffer
	c.PrintErrors(&buf)
	out := buf.String()

	require.Contains(t, out, "sample.vlp")
	require.Contains(t, out, "line 2, column 9")
	require.Contains(t, out, "expected ';' after print")
	lines := strings.Split(strings.TrimRight(out, "\n"), "\n")
	require.Len(t, lines, 3, "expected message, source-context, and caret lines")
	assert.Equal(t, "  print(x)", lines[1])
	assert.Equal(t, "  "+strings.Repeat(" ", 8)+"^", lines[2])
}

func TestCollectorEntriesOrder(t *testing.T) {
	c := NewCollector("t.vlp", "a\nb\nc\n")
	c.Warning(1, 1, "first")
	c.Error(2, 1, "second")
	c.Fatal(3, 1, "third")

	entries := c.Entries()
	require.Len(t, entries, 3)
	assert.Equal(t, Warning, entries[0].Severity)
	assert.Equal(t, Error, entries[1].Severity)
	assert.Equal(t, Fatal, entries[2].Severity)
}
