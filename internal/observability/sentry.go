// Package observability wires zerolog's error-level output into Sentry, so
// errors such as a failed scheduled reload surface as issues instead of
// scrolling past in stdout logs. Warn-level events (for example
// number-formatting fallbacks) are not forwarded.
package observability

import (
	"github.com/getsentry/sentry-go"
	"github.com/rs/zerolog"
)

// SentryHook forwards zerolog events at or above Error level to Sentry.
type SentryHook struct {
	MinLevel zerolog.Level
}

// NewSentryHook inits the Sentry SDK and returns a hook to attach via
// zerolog's logger.Hook(...). Returns a zero-value (disabled) hook if dsn
// is empty, so environments without Sentry configured degrade gracefully.
func NewSentryHook(dsn, environment string) (SentryHook, error) {
	if dsn == "" {
		return SentryHook{MinLevel: zerolog.Disabled}, nil
	}

	if err := sentry.Init(sentry.ClientOptions{Dsn: dsn, Environment: environment}); err != nil {
		return SentryHook{}, err
	}

	return SentryHook{MinLevel: zerolog.ErrorLevel}, nil
}

// Run implements zerolog.Hook.
func (hook SentryHook) Run(e *zerolog.Event, level zerolog.Level, msg string) {
	if hook.MinLevel == zerolog.Disabled || level < hook.MinLevel {
		return
	}

	sentry.WithScope(func(scope *sentry.Scope) {
		scope.SetLevel(toSentryLevel(level))
		sentry.CaptureMessage(msg)
	})
}

func toSentryLevel(level zerolog.Level) sentry.Level {
	switch level {
	case zerolog.FatalLevel, zerolog.PanicLevel:
		return sentry.LevelFatal
	case zerolog.ErrorLevel:
		return sentry.LevelError
	case zerolog.WarnLevel:
		return sentry.LevelWarning
	default:
		return sentry.LevelInfo
	}
}
