package errors

import (
	"net/http"
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestStatusCodes(t *testing.T) {
	testCases := []struct {
		name     string
		err      *APIError
		expected int
	}{
		{"not found", NotFound("Book"), http.StatusNotFound},
		{"bad request", BadRequest("bad limit"), http.StatusBadRequest},
		{"internal", InternalError(""), http.StatusInternalServerError},
		{"store down", ServiceUnavailable("book store"), http.StatusInternalServerError},
		{"timeout", Timeout("recommendation"), http.StatusInternalServerError},
	}

	for _, tc := range testCases {
		t.Run(tc.name, func(t *testing.T) {
			assert.Equal(t, tc.expected, tc.err.Status)
			assert.Equal(t, tc.expected, tc.err.Code.StatusCode())
		})
	}
}

func TestNotFoundMessage(t *testing.T) {
	assert.Equal(t, "Book not found", NotFound("Book").Message)
}

func TestUnknownCodeDefaultsTo500(t *testing.T) {
	assert.Equal(t, http.StatusInternalServerError, ErrorCode("SOMETHING_ELSE").StatusCode())
}

func TestWithDetails(t *testing.T) {
	err := ServiceUnavailable("book store").WithDetails("dial tcp: connection refused")
	assert.Equal(t, "book store is temporarily unavailable", err.Message)
	assert.Contains(t, err.Error(), "connection refused")
}
