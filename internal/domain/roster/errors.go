package roster

import "errors"

var (
	ErrRosterEntryNotFound = errors.New("roster entry not found")
	ErrUnknownPattern      = errors.New("unknown roster pattern")
)
