package brief

import "time"

// Submission is a persisted brief: the complete answer set accepted by the
// submission endpoint plus metadata assigned at insert time.
type Submission struct {
	ID        string    `json:"id"`
	Answers   Answers   `json:"answers"`
	ClientIP  string    `json:"-"`
	CreatedAt time.Time `json:"createdAt"`
}
