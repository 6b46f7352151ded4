package shortener

import (
	"crypto/rand"
	"fmt"
	"io"
)

// Alphabet is the 62-symbol set every generated code is drawn from.
const Alphabet = "0123456789ABCDEFGHIJKLMNOPQRSTUVWXYZabcdefghijklmnopqrstuvwxyz"

const (
	DefaultLength = 6

	// Bytes at or above this value are rejected so that b % 62 is uniform.
	maxUnbiased = 256 - 256%len(Alphabet)
)

// Random draws codes uniformly from Alphabet.
type Random struct {
	src io.Reader
}

// NewRandom uses crypto/rand when src is nil.
func NewRandom(src io.Reader) *Random {
	if src == nil {
		src = rand.Reader
	}
	return &Random{src: src}
}

func (r *Random) Generate(length int) (string, error) {
	if length <= 0 {
		length = DefaultLength
	}

	out := make([]byte, 0, length)
	buf := make([]byte, length+length/2)
	for len(out) < length {
		if _, err := io.ReadFull(r.src, buf); err != nil {
			return "", fmt.Errorf("failed to read entropy: %w", err)
		}
		for _, b := range buf {
			if int(b) >= maxUnbiased {
				continue
			}
			out = append(out, Alphabet[int(b)%len(Alphabet)])
			if len(out) == length {
				break
			}
		}
	}
	return string(out), nil
}
