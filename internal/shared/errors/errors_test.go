package errors

import (
	"fmt"
	"net/http"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestConstructors_MapToStatus(t *testing.T) {
	tests := []struct {
		name     string
		err      *AppError
		wantType ErrorType
		wantCode int
	}{
		{"validation", NewValidationError("subject is required"), ErrorTypeValidation, http.StatusBadRequest},
		{"not found", NewNotFoundError("ticket not found"), ErrorTypeNotFound, http.StatusNotFound},
		{"too large", NewPayloadTooLargeError("image too large"), ErrorTypeTooLarge, http.StatusRequestEntityTooLarge},
		{"ocr decode", NewOCRDecodeError("invalid image"), ErrorTypeOCRDecode, http.StatusBadRequest},
		{"ocr engine", NewOCREngineError("tesseract failed"), ErrorTypeOCREngine, http.StatusBadGateway},
		{"inference", NewModelInferenceError("prediction failed"), ErrorTypeModelInference, http.StatusInternalServerError},
		{"storage", NewStorageError("insert failed"), ErrorTypeStorage, http.StatusInternalServerError},
		{"rate limited", NewTooManyRequestsError("slow down"), ErrorTypeTooManyRequests, http.StatusTooManyRequests},
		{"internal", NewInternalError("boom"), ErrorTypeInternal, http.StatusInternalServerError},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			assert.Equal(t, tt.wantType, tt.err.Type)
			assert.Equal(t, tt.wantCode, tt.err.Code)
		})
	}
}

func TestAppError_Error(t *testing.T) {
	assert.Equal(t, "validation_error: bad input", NewValidationError("bad input").Error())
	assert.Equal(t, "storage_error: insert failed (timeout)", NewStorageError("insert failed", "timeout").Error())
}

func TestGetAppError_Unwraps(t *testing.T) {
	wrapped := fmt.Errorf("persist stage: %w", NewStorageError("insert failed"))

	appErr := GetAppError(wrapped)
	require.NotNil(t, appErr)
	assert.Equal(t, ErrorTypeStorage, appErr.Type)
	assert.True(t, IsAppError(wrapped))
	assert.True(t, HasType(wrapped, ErrorTypeStorage))
	assert.False(t, IsNotFoundError(wrapped))

	assert.Nil(t, GetAppError(fmt.Errorf("plain")))
}
