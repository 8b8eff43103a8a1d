package testutils

import (
	"github.com/icinga/icinga-go-library/logging"
	"github.com/stretchr/testify/require"
	"go.uber.org/zap"
	"go.uber.org/zap/zapcore"
	"go.uber.org/zap/zaptest"
	"os"
	"path/filepath"
	"strings"
	"testing"
	"time"
)

// WriteFile writes the given content to a file named name within a per-test temporary directory
// and returns its path. Leading and trailing whitespace of content is trimmed, so that test cases
// can use indented raw string literals.
func WriteFile(t *testing.T, name string, content string) string {
	path := filepath.Join(t.TempDir(), name)
	require.NoError(t, os.WriteFile(path, []byte(strings.TrimSpace(content)+"\n"), 0o600), "writing test file")

	return path
}

// NewTestLogging creates a new logging instance for testing purposes.
//
// The logger uses zaptest to integrate with the testing.T instance, allowing log output to be
// captured and displayed in test results. The logging level is set to Debug to provide detailed
// output during tests.
func NewTestLogging(t *testing.T) *logging.Logging {
	return logging.NewLoggingWithFactory(
		"testing",
		zap.DebugLevel,
		time.Hour,
		func(level zap.AtomicLevel) zapcore.Core {
			return zaptest.NewLogger(t, zaptest.Level(level.Level())).Core()
		},
	)
}
