package wizard

import (
	"time"

	"github.com/freelancehub/brief-service/internal/brief"
)

// Session pairs a client's in-progress answer set with its current step. A
// session is owned by the single client that created it; the durable snapshot
// slot is one key per session id, so a second wizard started under the same
// id overwrites the first.
type Session struct {
	ID        string        `json:"id"`
	Values    brief.Answers `json:"values"`
	Step      Step          `json:"step"`
	UpdatedAt time.Time     `json:"updatedAt"`

	// hydrated is set once the session has been loaded (or defaulted) from
	// storage. Snapshots are only written for hydrated sessions, so an
	// unhydrated default state can never overwrite a real draft.
	hydrated bool
}

// NewSession returns a fresh, fully defaulted session positioned on the first
// step. The session is already hydrated: there is nothing to restore.
func NewSession(id string) *Session {
	return &Session{
		ID:       id,
		Values:   brief.DefaultAnswers(),
		Step:     FirstStep(),
		hydrated: true,
	}
}

// Hydrated reports whether the write path is armed for this session.
func (s *Session) Hydrated() bool {
	return s.hydrated
}

// snapshot is the persisted JSON layout of a session draft.
type snapshot struct {
	Values    brief.Answers `json:"values"`
	Step      Step          `json:"step,omitempty"`
	Timestamp string        `json:"timestamp"`
}
