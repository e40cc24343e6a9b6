package dispatcher

// Config holds dispatcher configuration options.
type Config struct {
	// VerifyAfterMutation validates the document after every handled event
	// that changed the tree.
	VerifyAfterMutation bool

	// EnableMetrics enables dispatch timing and statistics collection.
	EnableMetrics bool

	// RecoverFromPanic wraps handler execution in panic recovery.
	RecoverFromPanic bool
}

// DefaultConfig returns a configuration with sensible defaults.
func DefaultConfig() Config {
	return Config{
		VerifyAfterMutation: false,
		EnableMetrics:       false,
		RecoverFromPanic:    true,
	}
}

// WithVerify returns a copy of the config with post-mutation validation set.
func (c Config) WithVerify(verify bool) Config {
	c.VerifyAfterMutation = verify
	return c
}

// WithMetrics returns a copy of the config with metrics enabled.
func (c Config) WithMetrics() Config {
	c.EnableMetrics = true
	return c
}

// WithPanicRecovery returns a copy of the config with panic recovery set.
func (c Config) WithPanicRecovery(recover bool) Config {
	c.RecoverFromPanic = recover
	return c
}
