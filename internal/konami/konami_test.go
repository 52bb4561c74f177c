package konami

import (
	"testing"

	"github.com/go-playground/assert/v2"
)

func feedAll(d *Detector, keys ...string) int {
	fired := 0
	for _, k := range keys {
		if d.Feed(k) {
			fired++
		}
	}
	return fired
}

func TestDetector_FiresOnFullSequence(t *testing.T) {
	d := New(Sequence)

	assert.Equal(t, 1, feedAll(d, Sequence...))
	assert.Equal(t, 0, d.Position())
}

func TestDetector_UppercaseLetters(t *testing.T) {
	d := New(Sequence)
	keys := append(append([]string{}, Sequence[:8]...), "B", "A")

	assert.Equal(t, 1, feedAll(d, keys...))
}

func TestDetector_MismatchResets(t *testing.T) {
	d := New(Sequence)

	feedAll(d, "ArrowUp", "ArrowUp", "ArrowDown")
	assert.Equal(t, 3, d.Position())

	d.Feed("x")
	assert.Equal(t, 0, d.Position())
}

func TestDetector_MismatchOnFirstKeyRestarts(t *testing.T) {
	d := New(Sequence)

	// Three ups: the third breaks the run but starts a new one.
	feedAll(d, "ArrowUp", "ArrowUp", "ArrowUp")
	assert.Equal(t, 1, d.Position())

	keys := append([]string{}, Sequence[1:]...)
	assert.Equal(t, 1, feedAll(d, keys...))
}

func TestDetector_FiresRepeatedly(t *testing.T) {
	d := New(Sequence)
	keys := append(append([]string{}, Sequence...), Sequence...)

	assert.Equal(t, 2, feedAll(d, keys...))
}

func TestDetector_Reset(t *testing.T) {
	d := New(Sequence)
	feedAll(d, Sequence[:5]...)
	d.Reset()

	assert.Equal(t, 0, d.Position())
}

func TestDetector_EmptySequence(t *testing.T) {
	assert.Equal(t, false, New(nil).Feed("a"))
}
