package entities

import "errors"

var (
	// ErrInvalidVersion is returned when a string is not a dotted numeric version.
	ErrInvalidVersion = errors.New("invalid version")

	// ErrSource wraps failures of a version source for a single component.
	// The run skips that component and carries on.
	ErrSource = errors.New("version source failure")

	// ErrStore wraps persistence failures. A run stops on the first one.
	ErrStore = errors.New("store failure")

	// ErrNoOwningProject is returned when an outdated component has no
	// project owning it, which points at broken data upstream.
	ErrNoOwningProject = errors.New("component is not owned by any project")
)
