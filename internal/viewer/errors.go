package viewer

import "errors"

// Load and export errors.
var (
	// ErrNoRootBounds means the fetched root node has no bounding box, so
	// nothing can be positioned.
	ErrNoRootBounds = errors.New("root node has no bounding box")

	// ErrNoBoundingBox is returned when exporting a node that has no box.
	ErrNoBoundingBox = errors.New("can't find any node to select")

	// ErrCropUnavailable means the crop rectangle could not be computed.
	ErrCropUnavailable = errors.New("unknown error")

	// ErrNotLoaded is returned by operations that need a loaded document.
	ErrNotLoaded = errors.New("viewer is not loaded")

	// ErrUnknownNode is returned when an id does not name a paintable node.
	ErrUnknownNode = errors.New("unknown node")
)
