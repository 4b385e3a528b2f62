package cli

import "go.uber.org/zap"

// resolveLogger yields the diagnostic logger for one command invocation.
// Verbose runs get a development logger on stderr; otherwise logging is a
// no-op so command output stays clean.
func resolveLogger(opts *Options) *zap.Logger {
	if !opts.Verbose {
		return zap.NewNop()
	}
	logger, err := zap.NewDevelopment()
	if err != nil {
		return zap.NewNop()
	}
	return logger
}
