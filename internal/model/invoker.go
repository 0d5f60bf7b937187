package model

import (
	"context"
	"fmt"
	"strings"
)

// TranslationError wraps a failure of the generation call for a specific
// input. It is reported once per request and does not change the model's
// lifecycle state.
type TranslationError struct {
	Err error
}

func (e *TranslationError) Error() string {
	return fmt.Sprintf("translation failed: %v", e.Err)
}

func (e *TranslationError) Unwrap() error {
	return e.Err
}

// Invoker runs translations against a ready bundle with fixed generation
// constraints. It is stateless given its inputs and safe for concurrent use.
type Invoker struct {
	maxOutputLength int
	numBeams        int
}

// NewInvoker creates an invoker with the given generation constraints.
func NewInvoker(maxOutputLength, numBeams int) *Invoker {
	return &Invoker{
		maxOutputLength: maxOutputLength,
		numBeams:        numBeams,
	}
}

// Translate delegates to the bundle's generation call and trims the output.
// Every failure of the underlying call, including panics from the external
// library, is converted into a *TranslationError. No retries happen here.
func (inv *Invoker) Translate(ctx context.Context, bundle Bundle, text string) (out string, err error) {
	defer func() {
		if r := recover(); r != nil {
			out = ""
			err = &TranslationError{Err: fmt.Errorf("panic in translation call: %v", r)}
		}
	}()

	raw, terr := bundle.Translate(ctx, text, inv.maxOutputLength, inv.numBeams)
	if terr != nil {
		return "", &TranslationError{Err: terr}
	}
	return strings.TrimSpace(raw), nil
}
