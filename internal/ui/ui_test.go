// Released under an MIT license. See LICENSE.

package ui

import (
	"bytes"
	"context"
	"errors"
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

var errBad = errors.New("bad line")

type recorder struct {
	depth int
	lines []string
	reset int
}

func (r *recorder) Complete(_ string) []string {
	return nil
}

func (r *recorder) Line(_ context.Context, line string) (bool, error) {
	r.lines = append(r.lines, line)

	switch line {
	case "bad":
		return false, errBad
	case "open":
		r.depth++
	case "close":
		r.depth--
	}

	return r.depth > 0, nil
}

func (r *recorder) Reset() {
	r.depth = 0
	r.reset++
}

func TestBatch(t *testing.T) {
	r := &recorder{}

	var w bytes.Buffer

	err := Batch(context.Background(), r, strings.NewReader("a\nopen\nb\nclose\n"), &w)
	require.NoError(t, err)
	assert.Equal(t, []string{"a", "open", "b", "close"}, r.lines)
	assert.Empty(t, w.String())
}

func TestBatchContinuesAfterError(t *testing.T) {
	r := &recorder{}

	var w bytes.Buffer

	err := Batch(context.Background(), r, strings.NewReader("bad\nok\n"), &w)
	require.ErrorIs(t, err, ErrFailed)
	assert.Equal(t, []string{"bad", "ok"}, r.lines)
	assert.Equal(t, "bad line\n", w.String())
}

func TestBatchIncomplete(t *testing.T) {
	r := &recorder{}

	var w bytes.Buffer

	err := Batch(context.Background(), r, strings.NewReader("open\n"), &w)
	require.ErrorIs(t, err, ErrIncomplete)
	assert.Equal(t, 1, r.reset)
}
