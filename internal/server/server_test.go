package server

import (
	"bytes"
	"context"
	"encoding/json"
	"errors"
	"io"
	"log/slog"
	"net/http"
	"net/http/httptest"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/mock"
	"github.com/stretchr/testify/require"

	"github.com/freelancehub/brief-service/internal/apperr"
	"github.com/freelancehub/brief-service/internal/brief"
	"github.com/freelancehub/brief-service/internal/health"
	"github.com/freelancehub/brief-service/internal/pricing"
	"github.com/freelancehub/brief-service/internal/ratelimit"
	"github.com/freelancehub/brief-service/internal/repository"
	"github.com/freelancehub/brief-service/internal/wizard"
	"github.com/freelancehub/brief-service/pkg/config"
)

func testLogger() *slog.Logger {
	return slog.New(slog.NewTextHandler(io.Discard, nil))
}

type memStorage struct {
	drafts map[string]*wizard.Session
}

func newMemStorage() *memStorage {
	return &memStorage{drafts: make(map[string]*wizard.Session)}
}

func (s *memStorage) Load(_ context.Context, id string) (*wizard.Session, error) {
	stored, ok := s.drafts[id]
	if !ok {
		return nil, wizard.ErrSessionNotFound
	}

	session := wizard.NewSession(id)
	session.Values = stored.Values
	session.Step = stored.Step
	return session, nil
}

func (s *memStorage) Save(_ context.Context, session *wizard.Session) error {
	copied := *session
	s.drafts[session.ID] = &copied
	return nil
}

func (s *memStorage) Clear(_ context.Context, id string) error {
	delete(s.drafts, id)
	return nil
}

type mockSubmissions struct {
	mock.Mock
}

func (m *mockSubmissions) Create(ctx context.Context, answers brief.Answers, clientIP string) (*brief.Submission, error) {
	args := m.Called(ctx, answers, clientIP)
	submission, _ := args.Get(0).(*brief.Submission)
	return submission, args.Error(1)
}

func (m *mockSubmissions) FindByID(ctx context.Context, id string) (*brief.Submission, error) {
	args := m.Called(ctx, id)
	submission, _ := args.Get(0).(*brief.Submission)
	return submission, args.Error(1)
}

type fakeQueue struct {
	notified []string
}

func (q *fakeQueue) EnqueueNotifyBrief(_ context.Context, submissionID string) error {
	q.notified = append(q.notified, submissionID)
	return nil
}

func (q *fakeQueue) Close() error { return nil }

// fakeLimiter denies every checked request.
type fakeLimiter struct{}

func (f *fakeLimiter) Check(_ context.Context, _ string, _ int, window time.Duration) (*ratelimit.Result, error) {
	return &ratelimit.Result{Allowed: false, ResetAt: time.Now().Add(window)}, nil
}

type testEnv struct {
	router      http.Handler
	storage     *memStorage
	submissions *mockSubmissions
	queue       *fakeQueue
}

func newTestEnv(t *testing.T) *testEnv {
	t.Helper()
	return newTestEnvWith(t, nil, nil)
}

func newTestEnvWith(t *testing.T, limiter ratelimit.Limiter, runtime *config.Runtime) *testEnv {
	t.Helper()

	log := testLogger()
	storage := newMemStorage()
	validator := brief.NewValidator()
	submissions := &mockSubmissions{}
	queue := &fakeQueue{}

	var _ repository.SubmissionRepository = submissions

	srv := New(Deps{
		Log:         log,
		Wizard:      wizard.NewManager(storage, validator, nil, log),
		Validator:   validator,
		Submissions: submissions,
		Queue:       queue,
		Limiter:     limiter,
		Runtime:     runtime,
		Formatter:   pricing.NewFormatter("en", "USD"),
		Checker:     health.NewChecker(log),
		Errors:      apperr.NewHandler(log, false),
	})

	return &testEnv{
		router:      srv.Router(),
		storage:     storage,
		submissions: submissions,
		queue:       queue,
	}
}

func (e *testEnv) do(t *testing.T, method, path string, body any, headers map[string]string) *httptest.ResponseRecorder {
	t.Helper()

	var reader io.Reader
	if body != nil {
		payload, err := json.Marshal(body)
		require.NoError(t, err)
		reader = bytes.NewReader(payload)
	}

	req := httptest.NewRequest(method, path, reader)
	for key, value := range headers {
		req.Header.Set(key, value)
	}

	rec := httptest.NewRecorder()
	e.router.ServeHTTP(rec, req)
	return rec
}

func decodeSession(t *testing.T, rec *httptest.ResponseRecorder) sessionResponse {
	t.Helper()

	var resp sessionResponse
	require.NoError(t, json.Unmarshal(rec.Body.Bytes(), &resp))
	return resp
}

func validAnswers() brief.Answers {
	a := brief.DefaultAnswers()
	a.ProjectType = brief.ProjectTypeLanding
	a.Description = "A landing page for a local coffee roastery."
	a.MainGoal = brief.GoalLeads
	a.BudgetClarity = brief.BudgetApproximate
	a.Timeline = brief.TimelineNormal
	a.Name = "Anna"
	a.Email = "anna@example.com"
	a.PreferredContact = brief.ContactTelegram
	return a
}

func TestHandleSteps(t *testing.T) {
	env := newTestEnv(t)

	rec := env.do(t, http.MethodGet, "/api/v1/steps", nil, nil)
	require.Equal(t, http.StatusOK, rec.Code)

	var steps []wizard.StepInfo
	require.NoError(t, json.Unmarshal(rec.Body.Bytes(), &steps))
	assert.Len(t, steps, 3)
	assert.Equal(t, wizard.StepProjectType, steps[0].ID)
}

func TestHandleEstimate(t *testing.T) {
	env := newTestEnv(t)

	rec := env.do(t, http.MethodPost, "/api/v1/estimate", map[string]any{
		"projectType": "landing",
		"timeline":    "urgent",
	}, nil)
	require.Equal(t, http.StatusOK, rec.Code)

	var resp estimateResponse
	require.NoError(t, json.Unmarshal(rec.Body.Bytes(), &resp))
	assert.Equal(t, 1000, resp.PriceRange.Min)
	assert.Equal(t, 2250, resp.PriceRange.Max)
	assert.NotEmpty(t, resp.FormattedPrice)
	assert.NotEmpty(t, resp.FormattedTime)
}

func TestHandleEstimate_EmptyBodyStillSucceeds(t *testing.T) {
	env := newTestEnv(t)

	rec := env.do(t, http.MethodPost, "/api/v1/estimate", map[string]any{}, nil)
	require.Equal(t, http.StatusOK, rec.Code)

	var resp estimateResponse
	require.NoError(t, json.Unmarshal(rec.Body.Bytes(), &resp))
	assert.Equal(t, 750, resp.PriceRange.Min)
}

func TestWizardFlow(t *testing.T) {
	env := newTestEnv(t)

	// fresh session starts on the first step
	rec := env.do(t, http.MethodGet, "/api/v1/wizard/w1", nil, nil)
	require.Equal(t, http.StatusOK, rec.Code)
	resp := decodeSession(t, rec)
	assert.Equal(t, wizard.StepProjectType, resp.Step)
	assert.False(t, resp.CanGoBack)

	// next without valid fields is blocked
	rec = env.do(t, http.MethodPost, "/api/v1/wizard/w1/next", nil, nil)
	require.Equal(t, http.StatusUnprocessableEntity, rec.Code)
	resp = decodeSession(t, rec)
	assert.Equal(t, wizard.StepProjectType, resp.Step)
	assert.Contains(t, resp.Errors, "description")

	// fill in the first step and advance
	rec = env.do(t, http.MethodPatch, "/api/v1/wizard/w1/values", map[string]any{
		"projectType": "landing",
		"description": "A landing page for a local coffee roastery.",
	}, nil)
	require.Equal(t, http.StatusOK, rec.Code)

	rec = env.do(t, http.MethodPost, "/api/v1/wizard/w1/next", nil, nil)
	require.Equal(t, http.StatusOK, rec.Code)
	resp = decodeSession(t, rec)
	assert.Equal(t, wizard.StepPriorities, resp.Step)
	assert.True(t, resp.CanGoBack)

	// back never validates
	rec = env.do(t, http.MethodPost, "/api/v1/wizard/w1/back", nil, nil)
	require.Equal(t, http.StatusOK, rec.Code)
	resp = decodeSession(t, rec)
	assert.Equal(t, wizard.StepProjectType, resp.Step)

	// draft survived in storage
	stored, err := env.storage.Load(context.Background(), "w1")
	require.NoError(t, err)
	assert.Equal(t, "A landing page for a local coffee roastery.", stored.Values.Description)
}

func TestHandleReset(t *testing.T) {
	env := newTestEnv(t)

	env.do(t, http.MethodPatch, "/api/v1/wizard/w2/values", map[string]any{
		"projectType": "mvp",
		"description": "An analytics dashboard for gyms.",
	}, nil)

	rec := env.do(t, http.MethodDelete, "/api/v1/wizard/w2", nil, nil)
	require.Equal(t, http.StatusOK, rec.Code)
	resp := decodeSession(t, rec)
	assert.Equal(t, wizard.StepProjectType, resp.Step)
	assert.Empty(t, resp.Values.ProjectType)

	_, err := env.storage.Load(context.Background(), "w2")
	assert.ErrorIs(t, err, wizard.ErrSessionNotFound)
}

func TestHandleSubmit_Success(t *testing.T) {
	env := newTestEnv(t)
	answers := validAnswers()

	env.submissions.On("Create", mock.Anything, answers, mock.Anything).
		Return(&brief.Submission{ID: "sub-123", Answers: answers}, nil).Once()

	// a draft exists and must be cleared on success
	session := wizard.NewSession("w3")
	session.Values = answers
	require.NoError(t, env.storage.Save(context.Background(), session))

	rec := env.do(t, http.MethodPost, "/api/v1/briefs", answers, map[string]string{
		"X-Session-ID": "w3",
	})
	require.Equal(t, http.StatusCreated, rec.Code)

	var resp map[string]string
	require.NoError(t, json.Unmarshal(rec.Body.Bytes(), &resp))
	assert.Equal(t, "sub-123", resp["id"])

	_, err := env.storage.Load(context.Background(), "w3")
	assert.ErrorIs(t, err, wizard.ErrSessionNotFound)

	require.Len(t, env.queue.notified, 1)
	assert.Equal(t, "sub-123", env.queue.notified[0])

	env.submissions.AssertExpectations(t)
}

func TestHandleSubmit_ValidationFailure(t *testing.T) {
	env := newTestEnv(t)

	answers := validAnswers()
	answers.Email = "not-an-email"
	answers.Description = "short"

	rec := env.do(t, http.MethodPost, "/api/v1/briefs", answers, nil)
	require.Equal(t, http.StatusUnprocessableEntity, rec.Code)

	var resp struct {
		Message string            `json:"message"`
		Errors  map[string]string `json:"errors"`
	}
	require.NoError(t, json.Unmarshal(rec.Body.Bytes(), &resp))
	assert.Contains(t, resp.Errors, "email")
	assert.Contains(t, resp.Errors, "description")

	assert.Empty(t, env.queue.notified)
	env.submissions.AssertNotCalled(t, "Create", mock.Anything, mock.Anything, mock.Anything)
}

func TestHandleSubmit_DatabaseFailureKeepsDraft(t *testing.T) {
	env := newTestEnv(t)
	answers := validAnswers()

	env.submissions.On("Create", mock.Anything, answers, mock.Anything).
		Return((*brief.Submission)(nil), errors.New("connection refused")).Once()

	session := wizard.NewSession("w4")
	session.Values = answers
	require.NoError(t, env.storage.Save(context.Background(), session))

	rec := env.do(t, http.MethodPost, "/api/v1/briefs", answers, map[string]string{
		"X-Session-ID": "w4",
	})
	require.Equal(t, http.StatusInternalServerError, rec.Code)

	var resp map[string]string
	require.NoError(t, json.Unmarshal(rec.Body.Bytes(), &resp))
	assert.NotEmpty(t, resp["message"])

	// the draft is untouched so the client can retry
	stored, err := env.storage.Load(context.Background(), "w4")
	require.NoError(t, err)
	assert.Equal(t, answers, stored.Values)
	assert.Empty(t, env.queue.notified)
}

func TestSubmitRateLimit_ReadsRuntimeConfigPerRequest(t *testing.T) {
	runtime := config.NewRuntime(&config.Config{})
	env := newTestEnvWith(t, &fakeLimiter{}, runtime)
	answers := validAnswers()

	env.submissions.On("Create", mock.Anything, answers, mock.Anything).
		Return(&brief.Submission{ID: "sub-1", Answers: answers}, nil).Once()

	// limit disabled at boot: the denying limiter is never consulted
	rec := env.do(t, http.MethodPost, "/api/v1/briefs", answers, nil)
	require.Equal(t, http.StatusCreated, rec.Code)

	// a config reload enables the limit without a restart
	runtime.Update(&config.Config{
		RateLimit: config.RateLimitConfig{SubmitLimit: 1, SubmitWindow: time.Minute},
	})

	rec = env.do(t, http.MethodPost, "/api/v1/briefs", answers, nil)
	assert.Equal(t, http.StatusTooManyRequests, rec.Code)
}

func TestHandleHealth(t *testing.T) {
	env := newTestEnv(t)

	rec := env.do(t, http.MethodGet, "/healthz", nil, nil)
	assert.Equal(t, http.StatusOK, rec.Code)
}
