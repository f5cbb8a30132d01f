// Package wizard implements the brief wizard session: the fixed step order,
// validated forward/backward navigation, and durable draft snapshots.
package wizard

// Step identifies one stage of the wizard.
type Step string

const (
	// StepProjectType collects the project type and description.
	StepProjectType Step = "projectType"
	// StepPriorities collects goals, budget clarity and timeline.
	StepPriorities Step = "priorities"
	// StepContact collects contact details and closes the wizard.
	StepContact Step = "contact"
)

// StepInfo carries display metadata for a step.
type StepInfo struct {
	ID    Step   `json:"id"`
	Label string `json:"label"`
	Order int    `json:"order"`
}

// Steps is the fixed, ordered registry of wizard steps. The order is
// invariant and never changes at runtime.
var Steps = []StepInfo{
	{ID: StepProjectType, Label: "Project", Order: 1},
	{ID: StepPriorities, Label: "Priorities", Order: 2},
	{ID: StepContact, Label: "Contact", Order: 3},
}

// stepFields maps each step to the fields that must validate before the step
// can be left. Fields owned by no step (hasExamples, hasDesign and friends)
// never block navigation.
var stepFields = map[Step][]string{
	StepProjectType: {"projectType", "description"},
	StepPriorities:  {"mainGoal", "budgetClarity", "timeline"},
	StepContact:     {"name", "email", "preferredContact"},
}

// FirstStep returns the entry step of the wizard.
func FirstStep() Step {
	return Steps[0].ID
}

// LastStep returns the final step of the wizard.
func LastStep() Step {
	return Steps[len(Steps)-1].ID
}

// FieldsFor returns the fields owned by the given step. Unknown step ids
// yield nil, never an error.
func FieldsFor(step Step) []string {
	return stepFields[step]
}

// IsValidStep reports whether the step exists in the registry.
func IsValidStep(step Step) bool {
	return stepIndex(step) >= 0
}

func stepIndex(step Step) int {
	for i, info := range Steps {
		if info.ID == step {
			return i
		}
	}
	return -1
}
