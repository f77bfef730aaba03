package assign

import "errors"

// Sentinel kinds for assignment errors.
var (
	ErrDuplicateAssignment = errors.New("mentor already assigned to this team")
)
