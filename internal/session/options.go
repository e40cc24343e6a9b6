package session

import "github.com/dshills/wedit/internal/logging"

// DefaultIDPrefix is the identifier namespace used when none is configured.
const DefaultIDPrefix = "wedit-"

// Option configures a Session during creation.
type Option func(*Session)

// WithIDPrefix sets the namespace prepended to every allocated identifier.
func WithIDPrefix(prefix string) Option {
	return func(s *Session) {
		s.prefix = prefix
	}
}

// WithSpellcheck sets the spellcheck marker applied to editable leaves.
func WithSpellcheck(enabled bool) Option {
	return func(s *Session) {
		s.spellcheck = enabled
	}
}

// WithLogger sets the logger. A nil logger is ignored.
func WithLogger(l *logging.Logger) Option {
	return func(s *Session) {
		if l != nil {
			s.logger = l
		}
	}
}
