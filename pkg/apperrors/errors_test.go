package apperrors_test

import (
	"errors"
	"fmt"
	"net/http"
	"testing"

	"github.com/pointraillabs/pointrail/pkg/apperrors"
	"github.com/stretchr/testify/assert"
)

func TestHTTPStatus(t *testing.T) {
	assert.Equal(t, http.StatusBadRequest, apperrors.Validation("bad").HTTPStatus())
	assert.Equal(t, http.StatusConflict, apperrors.Conflict("busy").HTTPStatus())
	assert.Equal(t, http.StatusNotFound, apperrors.NotFound("missing").HTTPStatus())
	assert.Equal(t, http.StatusInternalServerError, apperrors.Internal("boom", nil).HTTPStatus())
}

func TestInternalWrapsCause(t *testing.T) {
	cause := errors.New("connection reset")
	err := apperrors.Internal("storage failure", cause)

	assert.ErrorIs(t, err, cause)
	assert.Contains(t, err.Error(), "connection reset")
}

func TestKindOf(t *testing.T) {
	assert.Equal(t, apperrors.KindConflict, apperrors.KindOf(apperrors.Conflict("busy")))
	assert.Equal(t, apperrors.KindConflict, apperrors.KindOf(fmt.Errorf("wrapped: %w", apperrors.Conflict("busy"))))
	assert.Equal(t, apperrors.KindInternal, apperrors.KindOf(errors.New("plain")))
}
