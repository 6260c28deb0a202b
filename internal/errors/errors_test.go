package errors

import (
	stderrors "errors"
	"fmt"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.uber.org/zap"
	"go.uber.org/zap/zapcore"
	"go.uber.org/zap/zaptest/observer"
)

func TestCategorize(t *testing.T) {
	tests := []struct {
		code     ErrorCode
		category ErrorCategory
		severity ErrorSeverity
	}{
		{ErrCodeInvalidInput, CategoryValidation, SeverityWarning},
		{ErrCodeNotFound, CategoryStorage, SeverityInfo},
		{ErrCodeStorageFailure, CategoryStorage, SeverityError},
		{ErrCodeExportFailure, CategoryExport, SeverityError},
		{ErrCodeClipboardUnavailable, CategoryExport, SeverityWarning},
		{ErrCodeInternalError, CategorySystem, SeverityCritical},
	}
	for _, tt := range tests {
		e := NewAppError(tt.code, "x")
		assert.Equal(t, tt.category, e.Category, tt.code)
		assert.Equal(t, tt.severity, e.Severity, tt.code)
	}
}

func TestWrapAndUnwrap(t *testing.T) {
	cause := stderrors.New("permission denied")
	err := fmt.Errorf("exporting: %w", ExportError(cause))

	assert.True(t, IsAppError(err))
	assert.True(t, HasCode(err, ErrCodeExportFailure))
	assert.False(t, HasCode(err, ErrCodeNotFound))
	assert.ErrorIs(t, err, cause)
	assert.Equal(t, "EXPORT_FAILURE: Export failed", GetAppError(err).Error())
}

func TestGetAppError_WrapsUnknown(t *testing.T) {
	appErr := GetAppError(stderrors.New("boom"))
	assert.Equal(t, ErrCodeInternalError, appErr.Code)
	assert.False(t, IsAppError(stderrors.New("boom")))
}

func TestCLIErrorHandler(t *testing.T) {
	core, logs := observer.New(zapcore.ErrorLevel)
	h := NewCLIErrorHandler(false, zap.New(core))

	err := h.HandleError(NotFoundError("prompt abc"))
	require.Error(t, err)
	assert.Equal(t, "ℹ️  INFO: prompt abc not found", err.Error())
	assert.Equal(t, 1, logs.FilterMessage("command failed").Len())

	assert.Equal(t, "⚠️  WARNING: bad format", h.FormatError(InvalidInputError("bad format")))

	verbose := NewCLIErrorHandler(true, nil)
	msg := verbose.FormatError(StorageError("save", stderrors.New("disk full")))
	assert.Contains(t, msg, "❌ ERROR: Storage operation failed: save")
	assert.Contains(t, msg, "caused by: disk full")
}

func TestTUIErrorHandler(t *testing.T) {
	h := NewTUIErrorHandler(true, nil)
	err := ClipboardError(stderrors.New("install xclip"))

	assert.Equal(t, "Clipboard unavailable: install xclip", h.FormatError(err))
	icon, colour := h.GetErrorStyle(err)
	assert.Equal(t, "⚠️", icon)
	assert.Equal(t, "#feca57", colour)
}

func TestTUIErrorHandler_IsSilent(t *testing.T) {
	h := NewTUIErrorHandler(false, nil)

	assert.True(t, h.IsSilent(StorageError("save", stderrors.New("disk full"))))
	assert.True(t, h.IsSilent(fmt.Errorf("export: %w", ExportError(stderrors.New("read-only")))))
	assert.True(t, h.IsSilent(ClipboardError(stderrors.New("no xclip"))))

	assert.False(t, h.IsSilent(InvalidInputError("bad format")))
	assert.False(t, h.IsSilent(NotFoundError("prompt abc")))
	assert.False(t, h.IsSilent(stderrors.New("boom")))
}
