package logger

import (
	"bytes"
	"encoding/json"
	"errors"
	"io"
	"os"
	"strings"
	"testing"

	pkgerrors "github.com/pkg/errors"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

// captureStdout runs f with os.Stdout redirected to a pipe and returns the output.
func captureStdout(t *testing.T, f func()) string {
	t.Helper()
	r, w, err := os.Pipe()
	if err != nil {
		t.Fatalf("pipe: %v", err)
	}
	orig := os.Stdout
	os.Stdout = w
	defer func() { os.Stdout = orig }()

	f()

	_ = w.Close()
	b, _ := io.ReadAll(r)
	_ = r.Close()
	return string(b)
}

func lastNonEmptyLine(s string) string {
	lines := strings.Split(s, "\n")
	for i := len(lines) - 1; i >= 0; i-- {
		if strings.TrimSpace(lines[i]) != "" {
			return lines[i]
		}
	}
	return ""
}

func TestLogger_IncludesStackAndServiceOnError(t *testing.T) {
	out := captureStdout(t, func() {
		log := New("insurance-service")
		log.Error().Stack().Err(errors.New("boom")).Msg("storage write failed")
	})

	line := lastNonEmptyLine(out)
	require.NotEmpty(t, line, "no output captured")

	var payload map[string]any
	require.NoError(t, json.Unmarshal([]byte(line), &payload), line)

	assert.Equal(t, "insurance-service", payload["service"])
	assert.Equal(t, "error", payload["level"])
	assert.Contains(t, payload, "stack")
}

func TestNewWithWriter_KeepsExistingStack(t *testing.T) {
	var buf bytes.Buffer
	log := NewWithWriter("insurance-mcp-server", &buf)
	log.Error().Stack().Err(pkgerrors.New("wrapped")).Msg("tool failed")

	var payload map[string]any
	require.NoError(t, json.Unmarshal(buf.Bytes(), &payload))
	assert.Equal(t, "insurance-mcp-server", payload["service"])
	assert.Equal(t, "wrapped", payload["error"])
	assert.NotEmpty(t, payload["stack"])
}
