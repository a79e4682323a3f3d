package service

import (
	"errors"
	"fmt"
	"strings"
)

var (
	// ErrInvalidCredentials is returned for unknown usernames and wrong passwords alike.
	ErrInvalidCredentials = errors.New("invalid credentials")
	// ErrNoFieldsToUpdate means a patch carried no recognised field.
	ErrNoFieldsToUpdate = errors.New("no fields to update")
)

// FieldError describes one rejected input field.
type FieldError struct {
	Field   string `json:"field"`
	Message string `json:"message"`
}

// ValidationError collects every rejected field of a request.
type ValidationError struct {
	Fields []FieldError
}

func (e *ValidationError) Error() string {
	parts := make([]string, 0, len(e.Fields))
	for _, f := range e.Fields {
		parts = append(parts, f.Field+": "+f.Message)
	}
	return "validation failed: " + strings.Join(parts, "; ")
}

// NotFoundError reports a missing row of the named resource.
type NotFoundError struct {
	Resource string
	ID       uint
}

func (e *NotFoundError) Error() string {
	return fmt.Sprintf("%s %d not found", strings.ToLower(e.Resource), e.ID)
}

// FileError reports a rejected upload.
type FileError struct {
	Reason string
}

func (e *FileError) Error() string {
	return e.Reason
}

// IsNotFound reports whether err is a NotFoundError.
func IsNotFound(err error) bool {
	var nf *NotFoundError
	return errors.As(err, &nf)
}
