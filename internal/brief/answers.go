// Package brief holds the domain model for a project brief: the answer set
// collected by the wizard, its validation rules, and the stored submission.
package brief

// ProjectType constants accepted by the wizard.
const (
	ProjectTypeLanding   = "landing"
	ProjectTypeCorporate = "corporate"
	ProjectTypeEcommerce = "ecommerce"
	ProjectTypeService   = "service"
	ProjectTypeMVP       = "mvp"
)

// MainGoal constants.
const (
	GoalSales      = "sales"
	GoalLeads      = "leads"
	GoalAwareness  = "awareness"
	GoalAutomation = "automation"
)

// BudgetClarity constants.
const (
	BudgetExact       = "exact"
	BudgetApproximate = "approximate"
	BudgetNoIdea      = "no_idea"
)

// Timeline constants.
const (
	TimelineUrgent   = "urgent"
	TimelineNormal   = "normal"
	TimelineFlexible = "flexible"
)

// PreferredContact constants.
const (
	ContactWhatsapp = "whatsapp"
	ContactTelegram = "telegram"
	ContactEmail    = "email"
	ContactPhone    = "phone"
)

// ValidProjectTypes enumerates every project type the pricing table knows.
var ValidProjectTypes = map[string]struct{}{
	ProjectTypeLanding:   {},
	ProjectTypeCorporate: {},
	ProjectTypeEcommerce: {},
	ProjectTypeService:   {},
	ProjectTypeMVP:       {},
}

// Answers is the full answer set of the brief wizard. Every field always holds
// a concrete value: zero values act as defaults until the user sets them, and
// validation rather than absence gates step progression.
type Answers struct {
	ProjectType  string `json:"projectType" validate:"required,oneof=landing corporate ecommerce service mvp"`
	Description  string `json:"description" validate:"required,min=10,max=500"`
	HasExamples  bool   `json:"hasExamples"`
	ExamplesUrls string `json:"examplesUrls" validate:"omitempty,max=500"`

	MainGoal      string `json:"mainGoal" validate:"required,oneof=sales leads awareness automation"`
	BudgetClarity string `json:"budgetClarity" validate:"required,oneof=exact approximate no_idea"`
	Timeline      string `json:"timeline" validate:"required,oneof=urgent normal flexible"`
	HasDesign     bool   `json:"hasDesign"`
	HasContent    bool   `json:"hasContent"`
	HasDomain     bool   `json:"hasDomain"`

	Name             string `json:"name" validate:"required,min=2,max=100"`
	Email            string `json:"email" validate:"required,email"`
	Phone            string `json:"phone" validate:"omitempty,max=30"`
	Company          string `json:"company" validate:"omitempty,max=100"`
	PreferredContact string `json:"preferredContact" validate:"required,oneof=whatsapp telegram email phone"`
}

// DefaultAnswers returns the fully defaulted answer set a fresh session starts
// with. Persisted snapshots are merged over this value on restore so that
// fields added after a snapshot was written never come back undefined.
func DefaultAnswers() Answers {
	return Answers{}
}
