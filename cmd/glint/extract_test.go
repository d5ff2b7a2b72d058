package main

import (
	"bytes"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/require"

	"glint/internal/extract"
)

func TestPrintReportPlain(t *testing.T) {
	var buf bytes.Buffer
	entities := []extract.Entity{
		{Text: "Ronaldo", Label: "person"},
		{Text: "Al Nassr", Label: "organization"},
	}
	printReport(&buf, "Ronaldo plays for Al Nassr.", entities, true)

	out := buf.String()
	require.Contains(t, out, "[Ronaldo](person)")
	require.Contains(t, out, "[Al Nassr](organization)")
	require.Contains(t, out, "Legend:")
	require.Contains(t, out, "organization")
}

func TestPrintReportNoEntities(t *testing.T) {
	var buf bytes.Buffer
	printReport(&buf, "nothing here", nil, true)
	require.Contains(t, buf.String(), "No entities found")
}

func TestExtractCommandFallback(t *testing.T) {
	cmd := newRootCmd()
	var buf bytes.Buffer
	cmd.SetOut(&buf)
	cmd.SetErr(&buf)
	cmd.SetArgs([]string{
		"extract", "--fallback", "--no-color",
		"--config", filepath.Join(t.TempDir(), "config.yaml"),
		"my friend Jane Doe visited Initech",
	})
	require.NoError(t, cmd.Execute())

	out := buf.String()
	require.Contains(t, out, "[Jane Doe](person)")
	require.Contains(t, out, "[Initech](person)")
}

func TestExtractCommandRejectsBadOverlap(t *testing.T) {
	cmd := newRootCmd()
	cmd.SetOut(&bytes.Buffer{})
	cmd.SetErr(&bytes.Buffer{})
	cmd.SetArgs([]string{
		"extract", "--fallback",
		"--config", filepath.Join(t.TempDir(), "config.yaml"),
		"--max-len", "100", "--overlap", "100",
		"some text",
	})
	require.Error(t, cmd.Execute())
}

func TestHumanBytes(t *testing.T) {
	require.Equal(t, "0 B", humanBytes(0))
	require.Equal(t, "4 KB", humanBytes(4*1024))
	require.Equal(t, "3 MB", humanBytes(3*1024*1024))
}
