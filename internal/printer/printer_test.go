package printer

import (
	"bytes"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func captureOutput(t *testing.T) (*bytes.Buffer, *bytes.Buffer) {
	t.Helper()
	DisableColor()
	out, errOut := new(bytes.Buffer), new(bytes.Buffer)
	SetOutput(out, errOut)
	t.Cleanup(func() { SetOutput(nil, nil) })
	return out, errOut
}

func TestError(t *testing.T) {
	t.Run("returns error with title", func(t *testing.T) {
		_, errOut := captureOutput(t)
		err := Error("Test Error", "This is a test error", []string{})
		require.Error(t, err)
		require.Equal(t, "Test Error", err.Error())
		assert.Equal(t, "Test Error\n\nThis is a test error\n", errOut.String())
	})

	t.Run("prints a single suggestion verbatim", func(t *testing.T) {
		_, errOut := captureOutput(t)
		err := Error("Test Error", "Explanation", []string{"Try this fix"})
		require.Equal(t, "Test Error", err.Error())
		assert.Contains(t, errOut.String(), "\nTry this fix\n")
		assert.NotContains(t, errOut.String(), "Either:")
	})

	t.Run("numbers multiple suggestions", func(t *testing.T) {
		_, errOut := captureOutput(t)
		err := Error("Test Error", "Explanation", []string{
			"First option",
			"Second option",
		})
		require.Equal(t, "Test Error", err.Error())
		assert.Contains(t, errOut.String(), "Either:\n  1. First option\n  2. Second option\n")
	})
}

func TestErrorWithContext(t *testing.T) {
	t.Run("prints context in sorted key order", func(t *testing.T) {
		_, errOut := captureOutput(t)
		context := map[string]string{
			"Report": "/path/to/report.md",
			"Config": "gidas-alignment.config.json",
		}
		err := ErrorWithContext("Test Error", "Explanation", context, nil, []string{})
		require.Error(t, err)
		require.Equal(t, "Test Error", err.Error())
		assert.Contains(t, errOut.String(), "  Config: gidas-alignment.config.json\n  Report: /path/to/report.md\n")
	})

	t.Run("lists items in the given order", func(t *testing.T) {
		_, errOut := captureOutput(t)
		err := ErrorWithContext("Test Error", "", nil, []string{"b item", "a item"}, []string{"Fix it"})
		require.Equal(t, "Test Error", err.Error())
		assert.Equal(t, "Test Error\n\n\n  - b item\n  - a item\n\nFix it\n", errOut.String())
	})
}

func TestSuccessAndWarning(t *testing.T) {
	out, errOut := captureOutput(t)

	Success("Preconditions satisfied\n")
	Success("✓ already prefixed\n")
	Warning("careful\n")

	assert.Equal(t, "✓ Preconditions satisfied\n✓ already prefixed\n", out.String())
	assert.Equal(t, "⚠️  careful\n", errOut.String())
}
