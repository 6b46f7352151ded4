package shortener

import (
	"crypto/rand"
	"encoding/binary"
	"errors"
	"fmt"
	"io"
	"math"
	"sync"

	"github.com/sqids/sqids-go"
)

const sqidsAttempts = 16

var ErrNoFit = errors.New("no encoding of the requested length")

// Sqids encodes random numbers with sqids, which keeps codes clear of its
// profanity blocklist. Codes are not uniform over Alphabet; use Random
// when distribution matters.
type Sqids struct {
	src io.Reader

	mu       sync.Mutex
	byLength map[int]*sqids.Sqids
}

func NewSqids(src io.Reader) *Sqids {
	if src == nil {
		src = rand.Reader
	}
	return &Sqids{src: src, byLength: make(map[int]*sqids.Sqids)}
}

func (s *Sqids) Generate(length int) (string, error) {
	if length <= 0 {
		length = DefaultLength
	}

	enc, err := s.encoder(length)
	if err != nil {
		return "", err
	}

	bound := numberBound(length)
	var buf [8]byte
	for range sqidsAttempts {
		if _, err := io.ReadFull(s.src, buf[:]); err != nil {
			return "", fmt.Errorf("failed to read entropy: %w", err)
		}
		n := binary.BigEndian.Uint64(buf[:]) % bound

		code, err := enc.Encode([]uint64{n})
		if err != nil {
			return "", fmt.Errorf("failed to encode: %w", err)
		}
		if len(code) == length {
			return code, nil
		}
	}
	return "", fmt.Errorf("%w: %d", ErrNoFit, length)
}

func (s *Sqids) encoder(length int) (*sqids.Sqids, error) {
	if length > math.MaxUint8 {
		return nil, fmt.Errorf("%w: %d", ErrNoFit, length)
	}

	s.mu.Lock()
	defer s.mu.Unlock()

	if enc, ok := s.byLength[length]; ok {
		return enc, nil
	}
	enc, err := sqids.New(sqids.Options{
		MinLength: uint8(length),
	})
	if err != nil {
		return nil, err
	}
	s.byLength[length] = enc
	return enc, nil
}

// numberBound keeps encodings within length: sqids spends one character
// on its prefix and writes the number in base 61.
func numberBound(length int) uint64 {
	bound := uint64(1)
	for range length - 1 {
		if bound > math.MaxUint64/61 {
			return math.MaxUint64
		}
		bound *= 61
	}
	return bound
}
