package wizard

import (
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestSteps_RegistryOrder(t *testing.T) {
	assert.Len(t, Steps, 3)
	assert.Equal(t, StepProjectType, Steps[0].ID)
	assert.Equal(t, StepPriorities, Steps[1].ID)
	assert.Equal(t, StepContact, Steps[2].ID)

	for i, info := range Steps {
		assert.Equal(t, i+1, info.Order, "order must match index+1 for %s", info.ID)
		assert.NotEmpty(t, info.Label)
	}
}

func TestFieldsFor(t *testing.T) {
	testCases := []struct {
		step   Step
		fields []string
	}{
		{StepProjectType, []string{"projectType", "description"}},
		{StepPriorities, []string{"mainGoal", "budgetClarity", "timeline"}},
		{StepContact, []string{"name", "email", "preferredContact"}},
		{Step("bogus"), nil},
		{Step(""), nil},
	}

	for _, tc := range testCases {
		assert.Equal(t, tc.fields, FieldsFor(tc.step), "step=%q", tc.step)
	}
}

func TestFirstAndLastStep(t *testing.T) {
	assert.Equal(t, StepProjectType, FirstStep())
	assert.Equal(t, StepContact, LastStep())
}

func TestIsValidStep(t *testing.T) {
	for _, info := range Steps {
		assert.True(t, IsValidStep(info.ID))
	}
	assert.False(t, IsValidStep(Step("submitted")))
}
