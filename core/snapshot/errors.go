package snapshot

import "errors"

var (
	// ErrDuplicateSection indicates an attempt to add a section identifier
	// that is already present in the snapshot.
	ErrDuplicateSection = errors.New("duplicate section identifier")

	// ErrDuplicateItem indicates an attempt to add an item identifier that
	// already exists anywhere in the snapshot.
	ErrDuplicateItem = errors.New("duplicate item identifier")

	// ErrUnknownSection indicates a reference to a section that is not part
	// of the snapshot.
	ErrUnknownSection = errors.New("unknown section identifier")

	// ErrUnknownItem indicates a move, reconfigure or reload that names an
	// item not present in the snapshot.
	ErrUnknownItem = errors.New("unknown item identifier")
)
