package errs

import (
	"errors"
	"fmt"
	"net/http"
	"testing"

	"github.com/stretchr/testify/assert"
	"gorm.io/gorm"
)

func TestContentErrorStatusCodes(t *testing.T) {
	tests := []struct {
		name string
		err  *ApiErr
		want int
		is   func(error) bool
	}{
		{"missing field", NewMissingRequiredFieldError("name"), http.StatusBadRequest, IsMissingRequiredFieldError},
		{"invalid field", NewInvalidFieldError("name", "must not contain |"), http.StatusBadRequest, IsInvalidFieldError},
		{"index", NewIndexOutOfRangeError(3, 2), http.StatusBadRequest, IsIndexOutOfRangeError},
		{"confirmation", NewConfirmationRequiredError("remove"), http.StatusPreconditionRequired, IsConfirmationRequiredError},
		{"image", NewImageNotUploadedError(1), http.StatusBadRequest, IsImageNotUploadedError},
		{"empty block", NewEmptyBlockError(), http.StatusBadRequest, IsEmptyBlockError},
		{"malformed", NewMalformedContentError("projects", errors.New("eof")), http.StatusUnprocessableEntity, IsMalformedContentError},
		{"unsupported", NewUnsupportedSectionTypeError("marquee"), http.StatusBadRequest, IsUnsupportedSectionTypeError},
		{"unknown action", NewUnknownActionError("pricing", "sort"), http.StatusBadRequest, IsUnknownActionError},
		{"no active record", NewNoActiveRecordError(), http.StatusConflict, IsNoActiveRecordError},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			assert.Equal(t, tt.want, tt.err.StatusCode)
			assert.True(t, tt.is(tt.err))
			assert.True(t, tt.is(fmt.Errorf("wrapped: %w", tt.err)))
		})
	}
}

func TestApiErrMessages(t *testing.T) {
	err := NewMalformedContentError("testimonials", errors.New("unexpected end of JSON input"))
	assert.Equal(t, "malformed section content: Stored testimonials content could not be parsed", err.Error())
	assert.Equal(t, "content", err.Field)
	assert.Contains(t, err.GetFullError(), "-> unexpected end of JSON input")

	assert.True(t, IsUnauthorized(NewMissingTokenError()))
	assert.True(t, IsUnauthorized(NewInvalidTokenError(errors.New("expired"))))
	assert.True(t, errors.Is(NewUploadDisabledError(), ErrUploadDisabled))
	assert.True(t, IsNotFound(NewNotFoundError("page not found")))
}

func TestRequestErrorMessagesDoNotRepeatTheirPrefix(t *testing.T) {
	err := NewUnsupportedMediaTypeError("text/plain; charset=utf-8", []string{"image/png", "image/gif"})
	assert.Equal(t, "unsupported media type: text/plain; charset=utf-8 is not one of image/png, image/gif", err.Error())
	assert.Equal(t, http.StatusUnsupportedMediaType, err.StatusCode)

	assert.Equal(t, "max body size exceeded: limit is 1024 bytes", NewMaxBodySizeExceededError(1024).Error())
}

func TestNewDatabaseError(t *testing.T) {
	tests := []struct {
		name  string
		cause error
		want  int
	}{
		{"not found", gorm.ErrRecordNotFound, http.StatusNotFound},
		{"duplicate", errors.New(`ERROR: duplicate key value violates unique constraint "sections_pkey"`), http.StatusConflict},
		{"foreign key", errors.New("violates foreign key constraint"), http.StatusBadRequest},
		{"connection", errors.New("failed to connect: connection refused"), http.StatusServiceUnavailable},
		{"other", errors.New("syntax error"), http.StatusInternalServerError},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			err := NewDatabaseError("find", "section", tt.cause)
			assert.Equal(t, tt.want, err.StatusCode)
		})
	}

	assert.True(t, IsNotFound(NewDatabaseError("find", "section", gorm.ErrRecordNotFound)))
	assert.True(t, IsAlreadyExists(NewDatabaseError("add", "section", errors.New("duplicate key"))))
}
