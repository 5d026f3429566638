package responsewriter

import (
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestWrap_Defaults(t *testing.T) {
	rec := httptest.NewRecorder()
	w := Wrap(rec)

	require.NotNil(t, w)
	assert.Equal(t, http.StatusOK, w.StatusCode())
	assert.Equal(t, 0, w.BytesWritten())
	assert.False(t, w.HeaderWritten())
}

func TestWrap_ReusesExistingRecorder(t *testing.T) {
	outer := Wrap(httptest.NewRecorder())
	assert.Same(t, outer, Wrap(outer))
}

func TestResponseWriter_WriteHeader(t *testing.T) {
	tests := []struct {
		name   string
		status int
	}{
		{name: "ok", status: http.StatusOK},
		{name: "unprocessable", status: http.StatusUnprocessableEntity},
		{name: "internal error", status: http.StatusInternalServerError},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			rec := httptest.NewRecorder()
			w := Wrap(rec)

			w.WriteHeader(tt.status)

			assert.Equal(t, tt.status, w.StatusCode())
			assert.Equal(t, tt.status, rec.Code)
			assert.True(t, w.HeaderWritten())
		})
	}
}

func TestResponseWriter_SecondWriteHeaderIgnored(t *testing.T) {
	rec := httptest.NewRecorder()
	w := Wrap(rec)

	w.WriteHeader(http.StatusInternalServerError)
	w.WriteHeader(http.StatusOK)

	assert.Equal(t, http.StatusInternalServerError, w.StatusCode())
	assert.Equal(t, http.StatusInternalServerError, rec.Code)
}

func TestResponseWriter_WriteCountsBytes(t *testing.T) {
	rec := httptest.NewRecorder()
	w := Wrap(rec)

	n, err := w.Write([]byte(`{"summary":"a"}`))
	require.NoError(t, err)
	_, err = w.Write([]byte("\n"))
	require.NoError(t, err)

	assert.Equal(t, 15, n)
	assert.Equal(t, 16, w.BytesWritten())
	assert.Equal(t, http.StatusOK, w.StatusCode())
	assert.Equal(t, "{\"summary\":\"a\"}\n", rec.Body.String())
}

func TestResponseWriter_Flush(t *testing.T) {
	rec := httptest.NewRecorder()
	w := Wrap(rec)

	w.Flush()

	assert.True(t, rec.Flushed)
	assert.True(t, w.HeaderWritten())
}

func TestResponseWriter_Unwrap(t *testing.T) {
	rec := httptest.NewRecorder()
	assert.Equal(t, http.ResponseWriter(rec), Wrap(rec).Unwrap())
}
