// Package upload defines the in-memory representation of analyst-provided
// spreadsheets. Files are read fully into memory by the UI layer, passed by
// reference into service calls, and discarded after the workflow run.
package upload

import apperrors "github.com/abenson/pbbdash/internal/errors"

// Kind declares the content a file is expected to carry.
type Kind string

const (
	// KindPositions is the staff positions spreadsheet
	// (Department, Division, Position columns).
	KindPositions Kind = "positions"
	// KindBudgets is the department budgets spreadsheet
	// (Department, Budget columns).
	KindBudgets Kind = "budgets"
	// KindGenerated marks a buffer synthesized by the workflow itself,
	// such as the serialized program inventory fed into cost prediction.
	KindGenerated Kind = "generated"
)

// XLSXContentType is the MIME type sent for spreadsheet uploads.
const XLSXContentType = "application/vnd.openxmlformats-officedocument.spreadsheetml.sheet"

// File is an uploaded document: raw bytes plus the filename and declared
// content kind. File values are treated as read-only after construction.
type File struct {
	// Name is the filename as declared by the uploader.
	Name string
	// Content is the raw byte buffer.
	Content []byte
	// Kind declares what the file is expected to contain.
	Kind Kind
}

// New constructs a File.
func New(name string, content []byte, kind Kind) File {
	return File{Name: name, Content: content, Kind: kind}
}

// Validate checks that the file carries a name and a non-empty buffer.
// Every remote capability in this system requires at least one document,
// so an empty upload is rejected before any network call is made.
func (f File) Validate() error {
	if f.Name == "" {
		return apperrors.ValidationError{Field: "name", Message: "filename is required"}
	}
	if len(f.Content) == 0 {
		return apperrors.ValidationError{Field: "content", Message: "file is empty"}
	}
	return nil
}
