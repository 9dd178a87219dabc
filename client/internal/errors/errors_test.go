package errors

import (
	stderrors "errors"
	"fmt"
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestClassifyHTTPError(t *testing.T) {
	tests := []struct {
		status int
		want   ErrorCategory
	}{
		{400, Irrecoverable},
		{401, Irrecoverable},
		{404, Irrecoverable},
		{408, Recoverable},
		{429, Recoverable},
		{500, Recoverable},
		{503, Recoverable},
		{302, Recoverable},
	}
	for _, tt := range tests {
		t.Run(fmt.Sprint(tt.status), func(t *testing.T) {
			err := ClassifyHTTPError(tt.status, "", stderrors.New("boom"))
			assert.Equal(t, tt.want, err.Category)
			assert.Equal(t, tt.want == Irrecoverable, IsIrrecoverable(err))
		})
	}
}

func TestIsIrrecoverable_Wrapped(t *testing.T) {
	inner := ClassifyHTTPError(400, "{}", stderrors.New("bad"))
	assert.True(t, IsIrrecoverable(fmt.Errorf("create policy: %w", inner)))
	assert.False(t, IsIrrecoverable(stderrors.New("plain")))
}

func TestNetworkErrorUnwraps(t *testing.T) {
	cause := stderrors.New("connection refused")
	err := NewNetworkError("GET /api/policies", cause)
	assert.Equal(t, Recoverable, err.Category)
	assert.ErrorIs(t, err, cause)
	assert.Contains(t, err.Error(), "[Recoverable] GET /api/policies network error")
}
