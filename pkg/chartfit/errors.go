package chartfit

import (
	"errors"
	"fmt"
)

// ErrFileNotFound indicates the input file does not exist.
var ErrFileNotFound = errors.New("file not found")

// ErrInvalidFormat indicates the input file is not a valid xlsx format.
var ErrInvalidFormat = errors.New("invalid xlsx format")

// ErrSheetNotFound indicates the requested sheet is not in the workbook.
var ErrSheetNotFound = errors.New("sheet not found")

// ErrInvalidOptions indicates an option value out of range.
var ErrInvalidOptions = errors.New("invalid options")

// StageError represents an error while processing one sheet.
type StageError struct {
	SheetName string
	Component string // "rows", "anomalies", "charts", "layout"
	Err       error
}

func (e *StageError) Error() string {
	return fmt.Sprintf("%s error in sheet %q: %v", e.Component, e.SheetName, e.Err)
}

func (e *StageError) Unwrap() error {
	return e.Err
}

// NewStageError creates a new StageError.
func NewStageError(sheetName, component string, err error) *StageError {
	return &StageError{
		SheetName: sheetName,
		Component: component,
		Err:       err,
	}
}
