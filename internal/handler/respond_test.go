package handler

import (
	"net/http/httptest"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/keshav84652/workflow-management/internal/repository"
	"github.com/keshav84652/workflow-management/internal/service"
)

func TestRespondErrorMapping(t *testing.T) {
	cases := []struct {
		name string
		err  error
		want int
	}{
		{"validation", &service.ValidationError{Msg: "bad input"}, 400},
		{"not found", repository.ErrNotFound, 404},
		{"conflict", repository.ErrConflict, 409},
		{"bad credentials", service.ErrInvalidCredentials, 401},
		{"bad access code", service.ErrInvalidAccessCode, 401},
		{"rate limited", service.ErrTooManyAttempts, 429},
		{"wrong tenant", service.ErrForbidden, 403},
		{"anything else", assert.AnError, 500},
	}
	for _, tc := range cases {
		t.Run(tc.name, func(t *testing.T) {
			rec := httptest.NewRecorder()
			respondError(rec, tc.err)
			assert.Equal(t, tc.want, rec.Code)
			assert.Equal(t, "application/json", rec.Header().Get("Content-Type"))
		})
	}
}

func TestWriteJSON(t *testing.T) {
	rec := httptest.NewRecorder()
	writeJSON(rec, 201, map[string]string{"id": "abc"})

	require.Equal(t, 201, rec.Code)
	assert.JSONEq(t, `{"id":"abc"}`, rec.Body.String())
}

func TestServeDocumentEscapesFileName(t *testing.T) {
	rec := httptest.NewRecorder()
	serveDocument(rec, []byte("pdf bytes"), "w2 \"final\"\r\nX-Evil: 1.pdf", "application/pdf")

	require.Equal(t, 200, rec.Code)
	assert.Equal(t, `attachment; filename="w2 \"final\"X-Evil: 1.pdf"`, rec.Header().Get("Content-Disposition"))
	assert.Empty(t, rec.Header().Get("X-Evil"))
	assert.Equal(t, "9", rec.Header().Get("Content-Length"))
}

func TestServeDocumentPlainFileName(t *testing.T) {
	rec := httptest.NewRecorder()
	serveDocument(rec, []byte("x"), "1099-int.pdf", "application/pdf")

	assert.Equal(t, `attachment; filename="1099-int.pdf"`, rec.Header().Get("Content-Disposition"))
}

func TestRespondErrorHidesInternalDetail(t *testing.T) {
	rec := httptest.NewRecorder()
	respondError(rec, assert.AnError)

	assert.Equal(t, 500, rec.Code)
	assert.JSONEq(t, `{"error":"internal error"}`, rec.Body.String())
}
