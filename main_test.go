package main

import (
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/mcncl/bencview/internal/errors"
)

// writeTempInput writes bencode to a temp file and returns its path
func writeTempInput(t *testing.T, data string) string {
	t.Helper()
	path := filepath.Join(t.TempDir(), "input.torrent")
	require.NoError(t, os.WriteFile(path, []byte(data), 0644))
	return path
}

func TestRun_TreeOutput(t *testing.T) {
	// Save original CLI state
	originalCLI := CLI
	defer func() { CLI = originalCLI }()

	outPath := filepath.Join(t.TempDir(), "out.txt")
	CLI.Input = writeTempInput(t, "d3:bar4:spam3:fooi42ee")
	CLI.Output = outPath
	CLI.Raw = false

	err := run(&Context{})
	require.NoError(t, err)

	out, err := os.ReadFile(outPath)
	require.NoError(t, err)

	expected := "dictionary (2 entries)\n" +
		"  \"bar\": \"spam\"\n" +
		"  \"foo\": 42\n"
	assert.Equal(t, expected, string(out))
}

func TestRun_RawOutputNormalizesKeyOrder(t *testing.T) {
	originalCLI := CLI
	defer func() { CLI = originalCLI }()

	outPath := filepath.Join(t.TempDir(), "out.bencode")
	CLI.Input = writeTempInput(t, "d3:fooi42e3:bar4:spame")
	CLI.Output = outPath
	CLI.Raw = true

	err := run(&Context{})
	require.NoError(t, err)

	out, err := os.ReadFile(outPath)
	require.NoError(t, err)
	assert.Equal(t, "d3:bar4:spam3:fooi42ee", string(out))
}

func TestRun_TrailingBytes(t *testing.T) {
	originalCLI := CLI
	defer func() { CLI = originalCLI }()

	t.Run("strict mode rejects trailing bytes", func(t *testing.T) {
		CLI.Input = writeTempInput(t, "i42e4:spam")
		CLI.Output = filepath.Join(t.TempDir(), "out.txt")

		err := run(&Context{Strict: true})
		require.Error(t, err)
		assert.Contains(t, err.Error(), "trailing bytes")
	})

	t.Run("default mode warns and succeeds", func(t *testing.T) {
		CLI.Input = writeTempInput(t, "i42e4:spam")
		outPath := filepath.Join(t.TempDir(), "out.txt")
		CLI.Output = outPath

		err := run(&Context{})
		require.NoError(t, err)

		out, err := os.ReadFile(outPath)
		require.NoError(t, err)
		assert.Equal(t, "42\n", string(out))
	})
}

func TestRun_MalformedInput(t *testing.T) {
	originalCLI := CLI
	defer func() { CLI = originalCLI }()

	CLI.Input = writeTempInput(t, "i0001e")
	CLI.Output = filepath.Join(t.TempDir(), "out.txt")

	err := run(&Context{})
	require.Error(t, err)
	assert.ErrorIs(t, err, &errors.ParseError{Type: errors.ErrorTypeGrammar})
}

func TestRun_MissingInputFile(t *testing.T) {
	originalCLI := CLI
	defer func() { CLI = originalCLI }()

	CLI.Input = filepath.Join(t.TempDir(), "does-not-exist.torrent")

	err := run(&Context{})
	require.Error(t, err)
	assert.ErrorIs(t, err, errors.ErrFileNotFound)
}

func TestRun_EmptyInputFile(t *testing.T) {
	originalCLI := CLI
	defer func() { CLI = originalCLI }()

	CLI.Input = writeTempInput(t, "")

	err := run(&Context{})
	require.Error(t, err)
	assert.ErrorIs(t, err, errors.ErrFileEmpty)
}
