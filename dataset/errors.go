package dataset

import (
	"errors"
	"fmt"
)

var (
	ErrMissingHeader    = errors.New("source has no header row")
	ErrEmptySource      = errors.New("source has no data rows")
	ErrUnknownDimension = errors.New("unknown dimension")
)

// LoadError reports a malformed source. Row is the 1-based data row (0 for
// problems with the source itself or its header), Column the normalised column name.
type LoadError struct {
	Row    int
	Column string
	Err    error
}

func (e *LoadError) Error() string {
	switch {
	case e.Row > 0 && e.Column != "":
		return fmt.Sprintf("load: row %d, column %q: %v", e.Row, e.Column, e.Err)
	case e.Row > 0:
		return fmt.Sprintf("load: row %d: %v", e.Row, e.Err)
	case e.Column != "":
		return fmt.Sprintf("load: column %q: %v", e.Column, e.Err)
	}
	return fmt.Sprintf("load: %v", e.Err)
}

func (e *LoadError) Unwrap() error { return e.Err }

// IsParseError reports whether err is a value-level failure inside a data row.
func IsParseError(err error) bool {
	var le *LoadError
	return errors.As(err, &le) && le.Row > 0 && le.Column != ""
}
