package shortener_test

import (
	"bytes"
	"encoding/binary"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"shortlink/internal/shortener"
)

func numberSource(numbers ...uint64) *bytes.Reader {
	buf := make([]byte, 0, 8*len(numbers))
	for _, n := range numbers {
		buf = binary.BigEndian.AppendUint64(buf, n)
	}
	return bytes.NewReader(buf)
}

func TestSqids_KnownEncodings(t *testing.T) {
	tests := []struct {
		number uint64
		want   string
	}{
		{0, "bMZn4Y"},
		{1, "UkLWZg"},
		{12345, "A6das1"},
	}

	for _, tt := range tests {
		s := shortener.NewSqids(numberSource(tt.number))
		code, err := s.Generate(6)
		require.NoError(t, err)
		assert.Equal(t, tt.want, code)
	}
}

func TestSqids_FixedLength(t *testing.T) {
	s := shortener.NewSqids(nil)

	for range 200 {
		code, err := s.Generate(6)
		require.NoError(t, err)
		assert.Len(t, code, 6)
		assert.Regexp(t, alphanumeric, code)
	}
}

func TestSqids_DefaultLength(t *testing.T) {
	s := shortener.NewSqids(nil)

	code, err := s.Generate(0)
	require.NoError(t, err)
	assert.Len(t, code, shortener.DefaultLength)
}

func TestSqids_EntropyError(t *testing.T) {
	s := shortener.NewSqids(bytes.NewReader(nil))

	_, err := s.Generate(6)
	assert.Error(t, err)
}

func TestSqids_LengthTooLarge(t *testing.T) {
	s := shortener.NewSqids(nil)

	_, err := s.Generate(300)
	assert.ErrorIs(t, err, shortener.ErrNoFit)
}
