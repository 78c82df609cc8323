package apperr

import (
	"errors"
	"fmt"
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestStatusOf(t *testing.T) {
	cause := errors.New("boom")
	tests := []struct {
		name string
		err  error
		want int
	}{
		{"no file", NoFile(), http.StatusBadRequest},
		{"invalid", InvalidInput("bad form", cause), http.StatusBadRequest},
		{"not found", NotFound("File not found."), http.StatusNotFound},
		{"unauthorized", Unauthorized("bad token"), http.StatusUnauthorized},
		{"too large", TooLarge(cause), http.StatusRequestEntityTooLarge},
		{"internal", Internal("Error processing file.", cause), http.StatusInternalServerError},
		{"wrapped", fmt.Errorf("handler: %w", NotFound("gone")), http.StatusNotFound},
		{"plain", cause, http.StatusInternalServerError},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			assert.Equal(t, tt.want, StatusOf(tt.err))
		})
	}
}

func TestErrorUnwrapAndMessage(t *testing.T) {
	cause := errors.New("disk full")
	err := Internal("Error processing file.", cause)

	assert.ErrorIs(t, err, cause)
	assert.Equal(t, "Error processing file.: disk full", err.Error())
	assert.Equal(t, "Error processing file.", Message(err))
	assert.Equal(t, "Internal Server Error", Message(cause))
}

func TestWrite(t *testing.T) {
	rec := httptest.NewRecorder()
	Write(rec, NoFile())

	assert.Equal(t, http.StatusBadRequest, rec.Code)
	assert.Equal(t, "No file uploaded.\n", rec.Body.String())
}
