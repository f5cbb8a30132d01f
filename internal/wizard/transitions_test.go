package wizard

import (
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestAdvance(t *testing.T) {
	next, ok := Advance(StepProjectType)
	assert.True(t, ok)
	assert.Equal(t, StepPriorities, next)

	next, ok = Advance(StepPriorities)
	assert.True(t, ok)
	assert.Equal(t, StepContact, next)

	// last step has no forward transition
	next, ok = Advance(StepContact)
	assert.False(t, ok)
	assert.Equal(t, StepContact, next)

	_, ok = Advance(Step("bogus"))
	assert.False(t, ok)
}

func TestRetreat_WalksMonotonicallyToFirstStep(t *testing.T) {
	step := StepContact

	step, ok := Retreat(step)
	assert.True(t, ok)
	assert.Equal(t, StepPriorities, step)

	step, ok = Retreat(step)
	assert.True(t, ok)
	assert.Equal(t, StepProjectType, step)

	// repeated retreats from the first step are no-ops
	for i := 0; i < 3; i++ {
		step, ok = Retreat(step)
		assert.False(t, ok)
		assert.Equal(t, StepProjectType, step)
	}
}

func TestCanGoForwardAndBack(t *testing.T) {
	assert.True(t, CanGoForward(StepProjectType))
	assert.True(t, CanGoForward(StepPriorities))
	assert.False(t, CanGoForward(StepContact))

	assert.False(t, CanGoBack(StepProjectType))
	assert.True(t, CanGoBack(StepPriorities))
	assert.True(t, CanGoBack(StepContact))
}
