package core

import "errors"

var (
	// ErrInvalidArgument indicates a configuration value or argument outside
	// its valid range. These are programmer/configuration errors and are
	// never retried.
	ErrInvalidArgument = errors.New("invalid argument")

	// ErrIndexOutOfRange indicates an action index outside a bandit's valid
	// range. Unreachable through the policy API, which only selects from the
	// bandit's own action set.
	ErrIndexOutOfRange = errors.New("action index out of range")
)
