// Package pricing computes project estimates from a (possibly incomplete)
// answer set. Calculate is pure and total: it never fails and always returns a
// result, falling back to the landing-page rate when the project type is
// unknown.
package pricing

import (
	"math"

	"github.com/freelancehub/brief-service/internal/brief"
)

// PriceRange holds the estimated cost bounds in whole currency units.
type PriceRange struct {
	Min int `json:"min"`
	Max int `json:"max"`
}

// TimeEstimate holds the delivery estimate bounds in weeks.
type TimeEstimate struct {
	Min int `json:"min"`
	Max int `json:"max"`
}

// Discounts records which reductions were applied to the base price.
type Discounts struct {
	HasDesign  bool    `json:"hasDesign"`
	HasContent bool    `json:"hasContent"`
	Urgency    float64 `json:"urgency"`
}

// Estimate is the derived pricing result. It is recomputed on demand and
// never persisted.
type Estimate struct {
	PriceRange   PriceRange   `json:"priceRange"`
	TimeEstimate TimeEstimate `json:"timeEstimate"`
	Included     []string     `json:"included"`
	Discounts    Discounts    `json:"discounts"`
}

type rate struct {
	priceMin float64
	priceMax float64
	weeksMin int
	weeksMax int
	included []string
}

var rateTable = map[string]rate{
	brief.ProjectTypeLanding: {
		priceMin: 750, priceMax: 1750,
		weeksMin: 1, weeksMax: 2,
		included: []string{
			"One-page responsive layout",
			"Lead capture form",
			"Basic SEO setup",
			"Analytics integration",
		},
	},
	brief.ProjectTypeCorporate: {
		priceMin: 1500, priceMax: 4000,
		weeksMin: 2, weeksMax: 4,
		included: []string{
			"Up to 10 pages",
			"Content management system",
			"Contact and career forms",
			"Basic SEO setup",
			"Analytics integration",
		},
	},
	brief.ProjectTypeEcommerce: {
		priceMin: 2500, priceMax: 7000,
		weeksMin: 4, weeksMax: 8,
		included: []string{
			"Product catalog and search",
			"Shopping cart and checkout",
			"Payment gateway integration",
			"Order management panel",
			"Analytics integration",
		},
	},
	brief.ProjectTypeService: {
		priceMin: 2000, priceMax: 6000,
		weeksMin: 3, weeksMax: 6,
		included: []string{
			"User accounts and authentication",
			"Booking or request workflow",
			"Admin panel",
			"Email notifications",
			"Analytics integration",
		},
	},
	brief.ProjectTypeMVP: {
		priceMin: 5000, priceMax: 15000,
		weeksMin: 6, weeksMax: 12,
		included: []string{
			"Product scoping session",
			"Custom backend and API",
			"Web application frontend",
			"User accounts and roles",
			"Deployment and monitoring setup",
		},
	},
}

var urgencyMultipliers = map[string]float64{
	brief.TimelineUrgent:   1.30,
	brief.TimelineNormal:   1.00,
	brief.TimelineFlexible: 0.90,
}

const (
	designDiscount  = 0.85
	contentDiscount = 0.90
)

// Calculate derives an estimate from the current answers. Discount order is
// fixed: the urgency multiplier first, then the design and content discounts
// sequentially (compounding). Only the final bounds are rounded, each to the
// nearest multiple of 50, half up. The time estimate is never discounted.
func Calculate(answers brief.Answers) Estimate {
	row, ok := rateTable[answers.ProjectType]
	if !ok {
		row = rateTable[brief.ProjectTypeLanding]
	}

	urgency, ok := urgencyMultipliers[answers.Timeline]
	if !ok {
		urgency = 1.00
	}

	minPrice := row.priceMin * urgency
	maxPrice := row.priceMax * urgency

	if answers.HasDesign {
		minPrice *= designDiscount
		maxPrice *= designDiscount
	}
	if answers.HasContent {
		minPrice *= contentDiscount
		maxPrice *= contentDiscount
	}

	return Estimate{
		PriceRange: PriceRange{
			Min: roundToStep(minPrice),
			Max: roundToStep(maxPrice),
		},
		TimeEstimate: TimeEstimate{Min: row.weeksMin, Max: row.weeksMax},
		Included:     append([]string(nil), row.included...),
		Discounts: Discounts{
			HasDesign:  answers.HasDesign,
			HasContent: answers.HasContent,
			Urgency:    urgency,
		},
	}
}

const priceStep = 50

func roundToStep(v float64) int {
	return int(math.Floor(v/priceStep+0.5)) * priceStep
}
