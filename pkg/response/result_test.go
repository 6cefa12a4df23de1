package response

import (
	"net/http"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"rugstore/internal/domain/result"
)

func TestFromResult(t *testing.T) {
	tests := []struct {
		name   string
		result result.Result[[]string]
		status int
		code   string
	}{
		{"data", result.Data([]string{}), http.StatusOK, ""},
		{"not found", result.ErrorWithCode[[]string]("NOT_FOUND", "Product not found"), http.StatusNotFound, "NOT_FOUND"},
		{"unavailable", result.Error[[]string]("Unable to load products right now"), http.StatusServiceUnavailable, "UNAVAILABLE"},
		{"loading", result.Loading[[]string](), http.StatusAccepted, ""},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			c, rec := newContext()

			require.NoError(t, FromResult(c, tt.result))

			assert.Equal(t, tt.status, rec.Code)
			body := decode(t, rec)
			if tt.code == "" {
				assert.Nil(t, body.Error)
				return
			}
			require.NotNil(t, body.Error)
			assert.Equal(t, tt.code, body.Error.Code)
			assert.Equal(t, tt.result.Message(), body.Error.Message)
		})
	}
}
