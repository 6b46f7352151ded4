package link

import (
	"context"
	"fmt"
)

const (
	DefaultCodeLength  = 6
	DefaultMaxAttempts = 8
)

// ClaimFunc conditionally reserves code and reports whether this caller won.
type ClaimFunc func(ctx context.Context, code string) (bool, error)

// Allocator turns candidate codes into a claimed one. The claim itself is
// the tie-breaker between concurrent allocators: whoever's conditional set
// succeeds owns the code and everyone else draws again.
type Allocator struct {
	gen         CodeGenerator
	length      int
	maxAttempts int
}

func NewAllocator(gen CodeGenerator, length, maxAttempts int) *Allocator {
	if length <= 0 {
		length = DefaultCodeLength
	}
	if maxAttempts <= 0 {
		maxAttempts = DefaultMaxAttempts
	}
	return &Allocator{gen: gen, length: length, maxAttempts: maxAttempts}
}

func (a *Allocator) Allocate(ctx context.Context, claim ClaimFunc) (string, error) {
	for range a.maxAttempts {
		if err := ctx.Err(); err != nil {
			return "", storageErr("allocate", err)
		}

		code, err := a.gen.Generate(a.length)
		if err != nil {
			return "", fmt.Errorf("failed to generate code: %w", err)
		}

		won, err := claim(ctx, code)
		if err != nil {
			return "", err
		}
		if won {
			return code, nil
		}
	}
	return "", fmt.Errorf("%w after %d attempts", ErrAllocationExhausted, a.maxAttempts)
}
