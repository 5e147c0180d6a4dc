package llm

import "fmt"

type ErrUnsupportedProvider struct {
	Provider string
}

func (e ErrUnsupportedProvider) Error() string {
	return fmt.Sprintf("unsupported generation provider: %s", e.Provider)
}

// GenerationError means the model call completed but produced nothing usable.
// It is always fatal to the request.
type GenerationError struct {
	Reason string
}

func (e GenerationError) Error() string {
	return "generation failed: " + e.Reason
}
