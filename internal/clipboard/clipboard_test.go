package clipboard

import (
	"errors"
	"runtime"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func stub(t *testing.T, isUnsupported bool, write func(string) error) {
	t.Helper()
	origWrite, origUnsupported := writeAll, unsupported
	writeAll = write
	unsupported = func() bool { return isUnsupported }
	t.Cleanup(func() {
		writeAll, unsupported = origWrite, origUnsupported
	})
}

func TestClipboardError(t *testing.T) {
	err := NewClipboardError()

	assert.Equal(t, runtime.GOOS, err.OS)
	assert.NotEmpty(t, err.Error())
	assert.True(t, IsUnavailable(err))
	assert.True(t, IsUnavailable(errors.Join(errors.New("context"), err)))
	assert.False(t, IsUnavailable(errors.New("other")))
}

func TestCopy_Success(t *testing.T) {
	var got string
	stub(t, false, func(s string) error {
		got = s
		return nil
	})

	require.NoError(t, Copy("You are a poet"))
	assert.Equal(t, "You are a poet", got)
	assert.True(t, IsClipboardAvailable())
}

func TestCopy_Unsupported(t *testing.T) {
	stub(t, true, func(string) error {
		t.Fatal("writer must not be called")
		return nil
	})

	err := Copy("text")
	require.Error(t, err)
	assert.True(t, IsUnavailable(err))
	assert.False(t, IsClipboardAvailable())
}

func TestCopy_WriterFailureIsWrapped(t *testing.T) {
	boom := errors.New("exit status 1")
	stub(t, false, func(string) error { return boom })

	err := Copy("text")
	require.Error(t, err)
	assert.ErrorIs(t, err, boom)
	assert.Contains(t, err.Error(), "failed to copy to clipboard")
	assert.False(t, IsUnavailable(err))
}

func TestGetInstallInstructions(t *testing.T) {
	instructions := GetInstallInstructions()
	require.NotEmpty(t, instructions)

	switch runtime.GOOS {
	case "linux":
		assert.Contains(t, instructions, "xclip")
	case "darwin":
		assert.Contains(t, instructions, "pbcopy")
	case "windows":
		assert.Contains(t, instructions, "clip")
	}
}
