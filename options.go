package redline

import (
	"log/slog"

	"github.com/tsawler/redline/matcher"
)

// CompareOptions holds configuration for a comparison.
type CompareOptions struct {
	// Fuzzy matching
	threshold float64

	// Extraction
	paragraphTags []string

	// Failure behavior and diagnostics
	strict bool
	logger *slog.Logger
}

// defaultOptions returns the default comparison options.
func defaultOptions() CompareOptions {
	return CompareOptions{
		threshold:     matcher.DefaultThreshold,
		paragraphTags: nil, // nil means paragraphs are <p> only
		strict:        false,
		logger:        nil, // nil means quiet
	}
}

// clone creates a deep copy of CompareOptions.
func (o CompareOptions) clone() CompareOptions {
	newOpts := CompareOptions{
		threshold: o.threshold,
		strict:    o.strict,
		logger:    o.logger,
	}

	// Deep copy tags slice
	if o.paragraphTags != nil {
		newOpts.paragraphTags = make([]string, len(o.paragraphTags))
		copy(newOpts.paragraphTags, o.paragraphTags)
	}

	return newOpts
}
