package observability

import "go.uber.org/zap"

// NewLogger builds the process logger. Production gets sampled JSON output;
// anything else gets the human-readable development encoder.
func NewLogger(env string) (*zap.Logger, error) {
	if env == "production" {
		return zap.NewProduction()
	}
	return zap.NewDevelopment()
}
