package srg

import "errors"

var (
	// ErrNoClassHeader indicates the mapping text does not open with a class
	// header. Import cannot continue without a class context.
	ErrNoClassHeader = errors.New("first mapping line is not a class header")

	// ErrDanglingReference indicates a serialized database refers to an entry
	// it does not contain. The codec only reads files written by Serialize,
	// so this aborts deserialization.
	ErrDanglingReference = errors.New("dangling cross-reference in serialized database")
)
