package match

import "github.com/pkg/errors"

var (
	// ErrShapeMismatch indicates that parallel input slices (boxes, labels,
	// scores) have inconsistent lengths.
	ErrShapeMismatch = errors.New("match: inconsistent input lengths")

	// ErrMinSizeUnsupported indicates that minimum-area filtering was
	// requested. The option is a defined limitation and never silently
	// ignored.
	ErrMinSizeUnsupported = errors.New("match: min-size filtering is not supported")

	// ErrLabelOutOfRange indicates a class label outside [0, numClasses).
	ErrLabelOutOfRange = errors.New("match: class label out of range")
)
