package errs

import (
	"errors"
	"fmt"
	"net/http"
)

// Section content & editor validation errors. Editors return these as
// user-visible notices; no mutation happens when one is returned.
var (
	ErrMissingRequiredField   = errors.New("missing required field")
	ErrInvalidField           = errors.New("invalid field")
	ErrIndexOutOfRange        = errors.New("index out of range")
	ErrConfirmationRequired   = errors.New("confirmation required")
	ErrImageNotUploaded       = errors.New("image not uploaded yet")
	ErrEmptyBlock             = errors.New("block has no content")
	ErrMalformedContent       = errors.New("malformed section content")
	ErrUnsupportedSectionType = errors.New("unsupported section type")
	ErrUnknownAction          = errors.New("unknown editor action")
	ErrUploadDisabled         = errors.New("image upload is not configured")
	ErrNoActiveRecord         = errors.New("no record is being edited")
	ErrNoImageTarget          = errors.New("no editor is waiting for an image")
)

func NewMissingRequiredFieldError(fieldName string) *ApiErr {
	return &ApiErr{
		StatusCode: http.StatusBadRequest,
		err:        ErrMissingRequiredField,
		Details:    fmt.Sprintf("Missing required field: %s", fieldName),
		Field:      fieldName,
	}
}

func NewInvalidFieldError(fieldName string, reason string) *ApiErr {
	return &ApiErr{
		StatusCode: http.StatusBadRequest,
		err:        ErrInvalidField,
		Details:    fmt.Sprintf("Invalid field %s: %s", fieldName, reason),
		Field:      fieldName,
	}
}

func NewIndexOutOfRangeError(index, length int) *ApiErr {
	return &ApiErr{
		StatusCode: http.StatusBadRequest,
		err:        ErrIndexOutOfRange,
		Details:    fmt.Sprintf("Index %d is outside the list of %d items", index, length),
		Field:      "index",
	}
}

func NewConfirmationRequiredError(operation string) *ApiErr {
	return &ApiErr{
		StatusCode: http.StatusPreconditionRequired,
		err:        ErrConfirmationRequired,
		Details:    fmt.Sprintf("%s must be confirmed", operation),
		Field:      "confirmed",
	}
}

func NewImageNotUploadedError(position int) *ApiErr {
	return &ApiErr{
		StatusCode: http.StatusBadRequest,
		err:        ErrImageNotUploaded,
		Details:    fmt.Sprintf("Image %d is still a local preview; wait for the upload to finish", position+1),
		Field:      "images",
	}
}

func NewEmptyBlockError() *ApiErr {
	return &ApiErr{
		StatusCode: http.StatusBadRequest,
		err:        ErrEmptyBlock,
		Details:    "Provide at least a content type, title, text or image",
	}
}

func NewMalformedContentError(kind string, cause error) *ApiErr {
	return &ApiErr{
		StatusCode: http.StatusUnprocessableEntity,
		err:        ErrMalformedContent,
		Details:    fmt.Sprintf("Stored %s content could not be parsed", kind),
		Field:      "content",
		Cause:      cause,
	}
}

func NewUnsupportedSectionTypeError(sectionType string) *ApiErr {
	return &ApiErr{
		StatusCode: http.StatusBadRequest,
		err:        ErrUnsupportedSectionType,
		Details:    fmt.Sprintf("Section type %q is not supported", sectionType),
		Field:      "section_type",
	}
}

func NewUnknownActionError(kind, action string) *ApiErr {
	return &ApiErr{
		StatusCode: http.StatusBadRequest,
		err:        ErrUnknownAction,
		Details:    fmt.Sprintf("Action %q is not available for %s sections", action, kind),
		Field:      "action",
	}
}

func NewUploadDisabledError() *ApiErr {
	return &ApiErr{
		StatusCode: http.StatusServiceUnavailable,
		err:        ErrUploadDisabled,
	}
}

func NewNoActiveRecordError() *ApiErr {
	return &ApiErr{
		StatusCode: http.StatusConflict,
		err:        ErrNoActiveRecord,
		Details:    "Open a record for editing first",
	}
}

func NewNoImageTargetError() *ApiErr {
	return &ApiErr{
		StatusCode: http.StatusConflict,
		err:        ErrNoImageTarget,
	}
}

func IsMissingRequiredFieldError(err error) bool {
	return errors.Is(err, ErrMissingRequiredField)
}

func IsIndexOutOfRangeError(err error) bool {
	return errors.Is(err, ErrIndexOutOfRange)
}

func IsConfirmationRequiredError(err error) bool {
	return errors.Is(err, ErrConfirmationRequired)
}

func IsImageNotUploadedError(err error) bool {
	return errors.Is(err, ErrImageNotUploaded)
}

func IsMalformedContentError(err error) bool {
	return errors.Is(err, ErrMalformedContent)
}

func IsUnsupportedSectionTypeError(err error) bool {
	return errors.Is(err, ErrUnsupportedSectionType)
}

func IsNoActiveRecordError(err error) bool {
	return errors.Is(err, ErrNoActiveRecord)
}

func IsUnknownActionError(err error) bool {
	return errors.Is(err, ErrUnknownAction)
}

func IsInvalidFieldError(err error) bool {
	return errors.Is(err, ErrInvalidField)
}

func IsEmptyBlockError(err error) bool {
	return errors.Is(err, ErrEmptyBlock)
}
