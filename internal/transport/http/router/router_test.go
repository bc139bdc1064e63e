package router

import (
	"bytes"
	"context"
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"sync"
	"testing"
	"time"

	"github.com/golang-jwt/jwt/v5"
	"github.com/stretchr/testify/assert"

	"github.com/secretariat-suite/engagement-service/internal/application/engagement"
	eventapp "github.com/secretariat-suite/engagement-service/internal/application/event"
	"github.com/secretariat-suite/engagement-service/internal/config"
	"github.com/secretariat-suite/engagement-service/internal/domain"
	"github.com/secretariat-suite/engagement-service/internal/transport/http/handlers"
	authmw "github.com/secretariat-suite/engagement-service/internal/transport/http/middleware"
)

const (
	testSecret = "test-secret"
	testIssuer = "secretariat-auth"
)

// --- in-memory stubs ---

type stubStore struct {
	mu     sync.Mutex
	counts map[domain.LocationRef]int64
}

func newStubStore() *stubStore {
	return &stubStore{counts: map[domain.LocationRef]int64{}}
}

func (s *stubStore) Get(ctx context.Context, ref domain.LocationRef) (domain.CounterRecord, error) {
	s.mu.Lock()
	defer s.mu.Unlock()
	return domain.CounterRecord{Ref: ref, VisitCount: s.counts[ref]}, nil
}

func (s *stubStore) ApplyDelta(ctx context.Context, ref domain.LocationRef, delta int64, occurredAt *time.Time) error {
	s.mu.Lock()
	defer s.mu.Unlock()
	next := s.counts[ref] + delta
	if next < 0 {
		next = 0
	}
	s.counts[ref] = next
	return nil
}

func (s *stubStore) ResetAll(ctx context.Context, cat domain.Category) error {
	s.mu.Lock()
	defer s.mu.Unlock()
	for ref := range s.counts {
		if ref.Category == cat {
			s.counts[ref] = 0
		}
	}
	return nil
}

func (s *stubStore) SetCountAndDate(ctx context.Context, ref domain.LocationRef, count int64, lastVisit *time.Time) error {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.counts[ref] = count
	return nil
}

func (s *stubStore) TopByCategory(ctx context.Context, cat domain.Category, limit int) ([]domain.CounterRecord, error) {
	return nil, nil
}

type stubRepo struct {
	mu   sync.Mutex
	byID map[string]*domain.Event
}

func newStubRepo() *stubRepo { return &stubRepo{byID: map[string]*domain.Event{}} }

func (r *stubRepo) Create(ctx context.Context, e *domain.Event) error {
	r.mu.Lock()
	defer r.mu.Unlock()
	r.byID[e.ID] = e
	return nil
}

func (r *stubRepo) GetByID(ctx context.Context, id string) (*domain.Event, error) {
	r.mu.Lock()
	defer r.mu.Unlock()
	e, ok := r.byID[id]
	if !ok {
		return nil, domain.ErrNotFound("event not found")
	}
	return e, nil
}

func (r *stubRepo) Update(ctx context.Context, e *domain.Event) error {
	r.mu.Lock()
	defer r.mu.Unlock()
	r.byID[e.ID] = e
	return nil
}

func (r *stubRepo) Delete(ctx context.Context, id string) error {
	r.mu.Lock()
	defer r.mu.Unlock()
	delete(r.byID, id)
	return nil
}

func (r *stubRepo) List(ctx context.Context, page, pageSize int) ([]*domain.Event, int, error) {
	return nil, 0, nil
}

func (r *stubRepo) ListAll(ctx context.Context) ([]*domain.Event, error) {
	r.mu.Lock()
	defer r.mu.Unlock()
	var out []*domain.Event
	for _, e := range r.byID {
		out = append(out, e)
	}
	return out, nil
}

type testClock struct{}

func (testClock) Now() time.Time { return time.Date(2025, 3, 1, 10, 0, 0, 0, time.UTC) }

func newTestServer(t *testing.T) (http.Handler, *stubStore, *stubRepo) {
	t.Helper()

	store := newStubStore()
	repo := newStubRepo()

	engine := engagement.New(store, repo, testClock{}, engagement.NoopPublisher{}, nil, 0)
	svc := eventapp.New(repo, engine, testClock{})

	cfg := &config.Config{RLEnabled: false}
	h := New(
		handlers.NewEventsHandler(svc),
		handlers.NewCountersHandler(engine),
		handlers.NewReconcileHandler(engine, time.Minute),
		authmw.NewAuth(testSecret, testIssuer),
		handlers.NewHealthHandler(),
		cfg,
	)
	return h, store, repo
}

func signToken(t *testing.T, uid, role string) string {
	t.Helper()
	claims := jwt.MapClaims{
		"uid":  uid,
		"role": role,
		"iss":  testIssuer,
		"exp":  time.Now().Add(time.Hour).Unix(),
	}
	token := jwt.NewWithClaims(jwt.SigningMethodHS256, claims)
	s, err := token.SignedString([]byte(testSecret))
	assert.NoError(t, err)
	return s
}

func doJSON(t *testing.T, h http.Handler, method, path, token string, body any) *httptest.ResponseRecorder {
	t.Helper()
	var buf bytes.Buffer
	if body != nil {
		assert.NoError(t, json.NewEncoder(&buf).Encode(body))
	}
	req := httptest.NewRequest(method, path, &buf)
	if token != "" {
		req.Header.Set("Authorization", "Bearer "+token)
	}
	rec := httptest.NewRecorder()
	h.ServeHTTP(rec, req)
	return rec
}

// --- tests ---

func TestRouter_Healthz(t *testing.T) {
	h, _, _ := newTestServer(t)
	rec := doJSON(t, h, http.MethodGet, "/healthz", "", nil)
	assert.Equal(t, http.StatusOK, rec.Code)
}

func TestRouter_AuthRequired(t *testing.T) {
	h, _, _ := newTestServer(t)
	rec := doJSON(t, h, http.MethodGet, "/engagement/v1/counters/district/5", "", nil)
	assert.Equal(t, http.StatusUnauthorized, rec.Code)
}

func TestRouter_CounterRead(t *testing.T) {
	h, store, _ := newTestServer(t)
	token := signToken(t, "user_1", "user")

	store.counts[domain.LocationRef{Category: domain.CategoryDistrict, ID: 5}] = 3

	rec := doJSON(t, h, http.MethodGet, "/engagement/v1/counters/district/5", token, nil)
	assert.Equal(t, http.StatusOK, rec.Code)

	var out struct {
		Data struct {
			Category   string `json:"category"`
			LocationID int64  `json:"location_id"`
			VisitCount int64  `json:"visit_count"`
		} `json:"data"`
	}
	assert.NoError(t, json.Unmarshal(rec.Body.Bytes(), &out))
	assert.Equal(t, "district", out.Data.Category)
	assert.EqualValues(t, 5, out.Data.LocationID)
	assert.EqualValues(t, 3, out.Data.VisitCount)

	t.Run("unknown_category", func(t *testing.T) {
		rec := doJSON(t, h, http.MethodGet, "/engagement/v1/counters/province/5", token, nil)
		assert.Equal(t, http.StatusBadRequest, rec.Code)
	})

	t.Run("never_referenced_reads_zero", func(t *testing.T) {
		rec := doJSON(t, h, http.MethodGet, "/engagement/v1/counters/mosque/999", token, nil)
		assert.Equal(t, http.StatusOK, rec.Code)
	})
}

func TestRouter_CreateEventIncrementsCounters(t *testing.T) {
	h, store, _ := newTestServer(t)
	token := signToken(t, "user_1", "user")

	body := map[string]any{
		"title":      "Neighborhood visit",
		"event_date": "2025-03-05T14:00:00Z",
		"locations": map[string][]int64{
			"district": {5},
			"mosque":   {12, 13},
		},
	}
	rec := doJSON(t, h, http.MethodPost, "/engagement/v1/events", token, body)
	assert.Equal(t, http.StatusCreated, rec.Code)

	assert.EqualValues(t, 1, store.counts[domain.LocationRef{Category: domain.CategoryDistrict, ID: 5}])
	assert.EqualValues(t, 1, store.counts[domain.LocationRef{Category: domain.CategoryMosque, ID: 12}])
	assert.EqualValues(t, 1, store.counts[domain.LocationRef{Category: domain.CategoryMosque, ID: 13}])
}

func TestRouter_ReconcileAdminOnly(t *testing.T) {
	h, _, _ := newTestServer(t)

	t.Run("user_forbidden", func(t *testing.T) {
		rec := doJSON(t, h, http.MethodPost, "/engagement/v1/reconcile", signToken(t, "user_1", "user"), nil)
		assert.Equal(t, http.StatusForbidden, rec.Code)
	})

	t.Run("admin_allowed", func(t *testing.T) {
		rec := doJSON(t, h, http.MethodPost, "/engagement/v1/reconcile", signToken(t, "admin_1", "admin"), nil)
		assert.Equal(t, http.StatusOK, rec.Code)

		var out struct {
			Data struct {
				EventsProcessed  int `json:"events_processed"`
				LocationsUpdated int `json:"locations_updated"`
			} `json:"data"`
		}
		assert.NoError(t, json.Unmarshal(rec.Body.Bytes(), &out))
		assert.Equal(t, 0, out.Data.EventsProcessed)
	})
}

func TestRouter_DeleteRequiresArchive(t *testing.T) {
	h, store, repo := newTestServer(t)
	token := signToken(t, "user_1", "user")

	ev, err := domain.NewEvent("user_1", "Visit", "", time.Date(2025, 3, 5, 14, 0, 0, 0, time.UTC),
		domain.NewLocationSet(map[domain.Category][]int64{domain.CategoryMosque: {12}}),
		time.Date(2025, 3, 1, 10, 0, 0, 0, time.UTC))
	assert.NoError(t, err)
	assert.NoError(t, repo.Create(context.Background(), ev))
	store.counts[domain.LocationRef{Category: domain.CategoryMosque, ID: 12}] = 1

	t.Run("live_event_rejected", func(t *testing.T) {
		rec := doJSON(t, h, http.MethodDelete, "/engagement/v1/events/"+ev.ID, token, nil)
		assert.Equal(t, http.StatusConflict, rec.Code)
	})

	t.Run("archived_event_deleted_and_retracted", func(t *testing.T) {
		rec := doJSON(t, h, http.MethodPost, "/engagement/v1/events/"+ev.ID+"/archive", token, nil)
		assert.Equal(t, http.StatusOK, rec.Code)
		// archiving alone does not decrement
		assert.EqualValues(t, 1, store.counts[domain.LocationRef{Category: domain.CategoryMosque, ID: 12}])

		rec = doJSON(t, h, http.MethodDelete, "/engagement/v1/events/"+ev.ID, token, nil)
		assert.Equal(t, http.StatusOK, rec.Code)
		assert.EqualValues(t, 0, store.counts[domain.LocationRef{Category: domain.CategoryMosque, ID: 12}])
	})
}
