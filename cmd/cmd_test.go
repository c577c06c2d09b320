package cmd

import (
	"bytes"
	"context"
	"os"
	"path/filepath"
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/eduval/eduval/internal/instrument"
)

func run(t *testing.T, args ...string) string {
	t.Helper()
	var out bytes.Buffer
	rootCmd.SetOut(&out)
	rootCmd.SetErr(&bytes.Buffer{})
	rootCmd.SetArgs(append([]string{"--lang", "en", "--log-level", "error"}, args...))
	require.NoError(t, rootCmd.ExecuteContext(context.Background()))
	return out.String()
}

func TestNewEditScoreExport(t *testing.T) {
	path := filepath.Join(t.TempDir(), "checklist.json")

	run(t, "new", "checklist", "-o", path)
	inst, err := readInstrument(path)
	require.NoError(t, err)
	assert.Equal(t, instrument.KindChecklist, inst.Kind())
	assert.Equal(t, "0.00\n", run(t, "score", path))

	id := strings.TrimSpace(run(t, "edit", path, "add"))
	require.NotEmpty(t, id)
	run(t, "edit", path, "set", id, "checked", "true")
	run(t, "edit", path, "title", "Fractions")

	assert.Equal(t, "5.00\n", run(t, "score", path))

	sheet := run(t, "export", path, "--format", "text", "-o", "")
	assert.Contains(t, sheet, "FRACTIONS")
	assert.Contains(t, sheet, "Score: 5.00")
}

func TestEditRejectsBadValue(t *testing.T) {
	path := filepath.Join(t.TempDir(), "rating.json")
	run(t, "new", "rating-scale", "-o", path)
	before, err := os.ReadFile(path)
	require.NoError(t, err)

	inst, err := readInstrument(path)
	require.NoError(t, err)

	rootCmd.SetArgs([]string{"--log-level", "error", "edit", path, "set", inst.IDs()[0], "value", "9"})
	rootCmd.SetOut(&bytes.Buffer{})
	rootCmd.SetErr(&bytes.Buffer{})
	assert.Error(t, rootCmd.ExecuteContext(context.Background()))

	after, err := os.ReadFile(path)
	require.NoError(t, err)
	assert.Equal(t, before, after)
}

func TestPromptNeedsNoProvider(t *testing.T) {
	out := run(t, "prompt", "exam", "--level", "Grade 7", "--subject", "Science", "--topic", "cells")
	assert.Contains(t, out, "SYSTEM")
	assert.Contains(t, out, "cells")
	assert.Contains(t, out, "SCHEMA")
}

func TestAuditLogCommands(t *testing.T) {
	db := filepath.Join(t.TempDir(), "audit", "eduval.db")

	assert.Contains(t, run(t, "--db", db, "llm", "list"), "No AI requests recorded.")
	assert.Contains(t, run(t, "--db", db, "llm", "stats"), "No AI usage recorded yet.")
}

func TestVersion(t *testing.T) {
	assert.Equal(t, "eduval (devel)\n", run(t, "version"))
}
