package copywriter

import (
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestChooseAngleStartsAtTheFirstAngle(t *testing.T) {
	assert.Equal(t, "shape", ChooseAngle(""))
}

func TestChooseAngleResetsOnUnknownPrevious(t *testing.T) {
	assert.Equal(t, "shape", ChooseAngle("tone"))
}

func TestChooseAngleNeverRepeatsAndWrapsAfterSix(t *testing.T) {
	prev := ""
	var seq []string
	for i := 0; i < 12; i++ {
		a := ChooseAngle(prev)
		if prev != "" {
			assert.NotEqual(t, prev, a, "consecutive repeat at call %d", i)
		}
		seq = append(seq, a)
		prev = a
	}
	// The 7th call lands back on the first angle.
	assert.Equal(t, seq[0], seq[6])
	assert.ElementsMatch(t, angles, seq[:6])
}
