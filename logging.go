package ecsquery

import "go.uber.org/zap"

// NewProductionLogger builds the zap logger FileConfig.RegistryOptions
// hands a Registry when development logging is off. (A Registry given no
// logger at all uses zap.NewNop() instead.) It mirrors the library-default logging posture
// the rest of the pack reaches for: JSON, production-leveled, caller
// info on.
func NewProductionLogger() *zap.Logger {
	log, err := zap.NewProduction()
	if err != nil {
		// zap.NewProduction only fails if stderr can't be opened for
		// its sink; fall back to a logger that still works.
		return zap.NewNop()
	}
	return log
}

// NewDevelopmentLogger builds a human-readable, debug-leveled logger
// suitable for the demo command and local test runs.
func NewDevelopmentLogger() *zap.Logger {
	log, err := zap.NewDevelopment()
	if err != nil {
		return zap.NewNop()
	}
	return log
}
