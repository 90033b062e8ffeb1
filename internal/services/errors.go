package services

import (
	"errors"
	"fmt"
)

var (
	ErrSchema           = errors.New("spreadsheet columns must be: nome, e-mail, data de nascimento, ativo")
	ErrMissingFile      = errors.New("no file was uploaded")
	ErrMethodNotAllowed = errors.New("method not allowed")
	ErrPersonNotFound   = errors.New("person not found")
)

// ParseError is returned when the uploaded file is not a readable workbook
type ParseError struct {
	Cause error
}

func (e *ParseError) Error() string {
	return fmt.Sprintf("failed to read spreadsheet: %v", e.Cause)
}

func (e *ParseError) Unwrap() error {
	return e.Cause
}
