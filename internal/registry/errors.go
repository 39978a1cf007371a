package registry

import "errors"

var (
	// ErrNoActiveEnvironment indicates an operation that targets the
	// currently-selected environment was invoked with none active.
	ErrNoActiveEnvironment = errors.New("no environment is currently active")

	// ErrExists indicates an environment with the requested name already
	// has a record.
	ErrExists = errors.New("environment already exists")

	// ErrInvalidName indicates an empty or unusable environment name.
	ErrInvalidName = errors.New("invalid environment name")
)
