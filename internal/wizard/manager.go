package wizard

import (
	"context"
	"encoding/json"
	"fmt"
	"log/slog"

	"github.com/freelancehub/brief-service/internal/apperr"
	"github.com/freelancehub/brief-service/internal/brief"
)

// Manager is the wizard's form state store and step navigator. It holds no
// state of its own: sessions are hydrated from Storage per request, mutated in
// memory, and snapshotted back. Storage failures are reported and swallowed;
// the in-memory session stays authoritative and the caller is never blocked.
type Manager struct {
	storage   Storage
	validator *brief.Validator
	errs      *apperr.Handler
	log       *slog.Logger
}

// NewManager creates a wizard manager over the given draft storage. A nil
// error handler falls back to one that only logs.
func NewManager(storage Storage, validator *brief.Validator, errs *apperr.Handler, log *slog.Logger) *Manager {
	if log == nil {
		log = slog.Default()
	}
	if errs == nil {
		errs = apperr.NewHandler(log, false)
	}

	return &Manager{
		storage:   storage,
		validator: validator,
		errs:      errs,
		log:       log,
	}
}

// Load hydrates the session for the given id. A missing draft, a corrupt
// snapshot or an unavailable store all degrade to a fresh default session;
// Load never fails.
func (m *Manager) Load(ctx context.Context, id string) *Session {
	session, err := m.storage.Load(ctx, id)
	if err != nil {
		if err != ErrSessionNotFound {
			m.errs.Handle(ctx, apperr.NewStorageError(fmt.Errorf("hydrate session %s: %w", id, err)))
		}
		return NewSession(id)
	}

	return session
}

// SetValues replaces the session's answer set and snapshots the draft.
func (m *Manager) SetValues(ctx context.Context, session *Session, values brief.Answers) {
	session.Values = values
	m.persist(ctx, session)
}

// SetValue updates a single field by its wire name and snapshots the draft.
// Unknown field names leave the answer set unchanged.
func (m *Manager) SetValue(ctx context.Context, session *Session, field string, value any) {
	patch, err := json.Marshal(map[string]any{field: value})
	if err != nil {
		m.log.Warn("unencodable field value ignored", "field", field, "error", err)
		return
	}

	if err := json.Unmarshal(patch, &session.Values); err != nil {
		m.log.Warn("field update ignored", "field", field, "error", err)
		return
	}

	m.persist(ctx, session)
}

// ValidateFields validates only the named fields of the session's answers.
func (m *Manager) ValidateFields(session *Session, fields []string) (bool, map[string]string) {
	return m.validator.ValidateFields(session.Values, fields)
}

// Next attempts a validated forward transition. It validates exactly the
// fields owned by the current step; on failure the step does not change and
// the per-field messages are returned for the caller to surface. On success
// from a non-final step the pointer advances and the draft is snapshotted;
// on the final step a valid Next is a no-op.
func (m *Manager) Next(ctx context.Context, session *Session) (bool, map[string]string) {
	ok, fieldErrs := m.validator.ValidateFields(session.Values, FieldsFor(session.Step))
	if !ok {
		return false, fieldErrs
	}

	next, moved := Advance(session.Step)
	if !moved {
		return true, nil
	}

	transitionRecorder(string(session.Step), string(next))
	session.Step = next
	m.persist(ctx, session)

	return true, nil
}

// Back moves to the previous step without validation. On the first step it
// is a no-op.
func (m *Manager) Back(ctx context.Context, session *Session) {
	prev, moved := Retreat(session.Step)
	if !moved {
		return
	}

	transitionRecorder(string(session.Step), string(prev))
	session.Step = prev
	m.persist(ctx, session)
}

// Reset restores the defaulted answer set, returns to the first step and
// removes the durable draft.
func (m *Manager) Reset(ctx context.Context, session *Session) {
	session.Values = brief.DefaultAnswers()
	session.Step = FirstStep()

	if err := m.storage.Clear(ctx, session.ID); err != nil {
		m.errs.Handle(ctx, apperr.NewStorageError(fmt.Errorf("clear session %s on reset: %w", session.ID, err)))
	}
}

// Clear removes the durable draft for a session id, e.g. after a successful
// submission. Failures are logged and swallowed.
func (m *Manager) Clear(ctx context.Context, id string) {
	if err := m.storage.Clear(ctx, id); err != nil {
		m.errs.Handle(ctx, apperr.NewStorageError(fmt.Errorf("clear session %s: %w", id, err)))
	}
}

func (m *Manager) persist(ctx context.Context, session *Session) {
	if !session.hydrated {
		m.log.Warn("skipping draft write for unhydrated session", "session_id", session.ID)
		return
	}

	if err := m.storage.Save(ctx, session); err != nil {
		m.errs.Handle(ctx, apperr.NewStorageError(fmt.Errorf("snapshot session %s: %w", session.ID, err)))
	}
}
