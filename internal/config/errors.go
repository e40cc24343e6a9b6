package config

import "errors"

// Errors returned by configuration operations.
var (
	// ErrInvalidLogLevel indicates an unknown logging level name.
	ErrInvalidLogLevel = errors.New("config: invalid log level")

	// ErrEmptyIDPrefix indicates the session id prefix is empty.
	ErrEmptyIDPrefix = errors.New("config: session id prefix must not be empty")

	// ErrDecode indicates the merged settings do not fit the Config types.
	ErrDecode = errors.New("config: cannot decode settings")

	// ErrInvalidKeys indicates a binding in the [keys] section cannot be parsed.
	ErrInvalidKeys = errors.New("config: invalid key binding")

	// ErrNoFile indicates a watch was requested without a settings file.
	ErrNoFile = errors.New("config: no settings file to watch")

	// ErrWatch indicates the file watcher failed.
	ErrWatch = errors.New("config: watch failed")
)
