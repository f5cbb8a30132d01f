package brief

import (
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
)

func validContactAnswers() Answers {
	a := DefaultAnswers()
	a.Name = "Anna"
	a.Email = "anna@example.com"
	a.PreferredContact = ContactTelegram
	return a
}

func TestValidateFields_SubsetOnly(t *testing.T) {
	v := NewValidator()

	// only the contact fields are valid; the rest of the answer set is not
	answers := validContactAnswers()

	ok, fieldErrs := v.ValidateFields(answers, []string{"name", "email", "preferredContact"})

	assert.True(t, ok)
	assert.Empty(t, fieldErrs)
}

func TestValidateFields_DescriptionBoundaries(t *testing.T) {
	v := NewValidator()

	testCases := []struct {
		name        string
		description string
		expectOK    bool
	}{
		{"nine chars fails", strings.Repeat("a", 9), false},
		{"ten chars passes", strings.Repeat("a", 10), true},
		{"five hundred chars passes", strings.Repeat("a", 500), true},
		{"five hundred one chars fails", strings.Repeat("a", 501), false},
		{"empty fails", "", false},
	}

	for _, tc := range testCases {
		t.Run(tc.name, func(t *testing.T) {
			answers := DefaultAnswers()
			answers.ProjectType = ProjectTypeLanding
			answers.Description = tc.description

			ok, fieldErrs := v.ValidateFields(answers, []string{"projectType", "description"})

			assert.Equal(t, tc.expectOK, ok)
			if !tc.expectOK {
				assert.Contains(t, fieldErrs, "description")
			}
		})
	}
}

func TestValidateFields_EnumAndEmailRules(t *testing.T) {
	v := NewValidator()

	answers := DefaultAnswers()
	answers.Name = "A" // below min length
	answers.Email = "not-an-email"
	answers.PreferredContact = "carrier-pigeon"

	ok, fieldErrs := v.ValidateFields(answers, []string{"name", "email", "preferredContact"})

	assert.False(t, ok)
	assert.Contains(t, fieldErrs, "name")
	assert.Contains(t, fieldErrs, "email")
	assert.Contains(t, fieldErrs, "preferredContact")
}

func TestValidateFields_UnknownFieldNamesIgnored(t *testing.T) {
	v := NewValidator()

	ok, fieldErrs := v.ValidateFields(DefaultAnswers(), []string{"nope", "alsoNope"})

	assert.True(t, ok)
	assert.Empty(t, fieldErrs)
}

func TestValidateFields_EmptySetPasses(t *testing.T) {
	v := NewValidator()

	ok, fieldErrs := v.ValidateFields(DefaultAnswers(), nil)

	assert.True(t, ok)
	assert.Empty(t, fieldErrs)
}

func TestValidateAll(t *testing.T) {
	v := NewValidator()

	answers := validContactAnswers()
	answers.ProjectType = ProjectTypeMVP
	answers.Description = "A mobile-first marketplace for vintage synthesizers."
	answers.MainGoal = GoalSales
	answers.BudgetClarity = BudgetApproximate
	answers.Timeline = TimelineFlexible

	ok, fieldErrs := v.ValidateAll(answers)
	assert.True(t, ok)
	assert.Empty(t, fieldErrs)

	// optional fields never block
	answers.Phone = ""
	answers.Company = ""
	answers.ExamplesUrls = ""
	ok, _ = v.ValidateAll(answers)
	assert.True(t, ok)

	// defaults alone do not pass full validation
	ok, fieldErrs = v.ValidateAll(DefaultAnswers())
	assert.False(t, ok)
	assert.Contains(t, fieldErrs, "projectType")
	assert.Contains(t, fieldErrs, "mainGoal")
	assert.Contains(t, fieldErrs, "email")
}
