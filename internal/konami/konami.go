package konami

import "strings"

// Sequence is the classic code: up up down down left right left right b a.
var Sequence = []string{
	"ArrowUp", "ArrowUp", "ArrowDown", "ArrowDown",
	"ArrowLeft", "ArrowRight", "ArrowLeft", "ArrowRight",
	"b", "a",
}

// Detector tracks progress through a key sequence. The zero value is not
// usable; call New.
type Detector struct {
	seq []string
	pos int
}

func New(seq []string) *Detector {
	return &Detector{seq: seq}
}

// Feed consumes one key and reports whether it completed the sequence.
// A mismatched key restarts progress, counting itself if it opens the sequence.
func (d *Detector) Feed(key string) bool {
	if len(d.seq) == 0 {
		return false
	}
	key = normalize(key)

	if key == d.seq[d.pos] {
		d.pos++
		if d.pos == len(d.seq) {
			d.pos = 0
			return true
		}
		return false
	}

	if key == d.seq[0] {
		d.pos = 1
	} else {
		d.pos = 0
	}
	return false
}

// Position is how many keys of the sequence have matched so far.
func (d *Detector) Position() int {
	return d.pos
}

func (d *Detector) Reset() {
	d.pos = 0
}

// normalize lowercases single-character keys, leaving named keys alone.
func normalize(key string) string {
	if len([]rune(key)) == 1 {
		return strings.ToLower(key)
	}
	return key
}
