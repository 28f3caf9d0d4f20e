package logger

import (
	"path/filepath"
	"testing"

	"github.com/charmbracelet/log"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestParseLevel(t *testing.T) {
	t.Parallel()

	cases := map[string]log.Level{
		"debug":   log.DebugLevel,
		"WARN":    log.WarnLevel,
		"warning": log.WarnLevel,
		"error":   log.ErrorLevel,
		"":        log.InfoLevel,
		"verbose": log.InfoLevel,
	}
	for input, want := range cases {
		assert.Equal(t, want, ParseLevel(input), "ParseLevel(%q)", input)
	}
}

func TestNewCreatesLogDirectory(t *testing.T) {
	t.Parallel()

	file := filepath.Join(t.TempDir(), "nested", "healthai.log")
	l, err := New(Config{Level: "debug", File: file})
	require.NoError(t, err)
	require.NotNil(t, l)
	assert.Equal(t, log.DebugLevel, l.GetLevel())
	assert.DirExists(t, filepath.Dir(file))
}
