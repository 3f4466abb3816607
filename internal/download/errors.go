package download

import "errors"

// Sentinel errors for the download package.
var (
	// ErrNotFound is returned when a download record is not found in the database.
	ErrNotFound = errors.New("download not found")

	// ErrDuplicate is returned when a record with the same hash already exists.
	ErrDuplicate = errors.New("duplicate download")

	// ErrInvalid is returned when a record fails validation before insert.
	ErrInvalid = errors.New("invalid download record")
)
