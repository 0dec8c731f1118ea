package api

import (
	"context"
	"encoding/json"
	"errors"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"
	"time"

	"github.com/gorilla/mux"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/tahcohcat/daily-mystery/internal/auth"
	"github.com/tahcohcat/daily-mystery/internal/game"
	"github.com/tahcohcat/daily-mystery/internal/services"
	"github.com/tahcohcat/daily-mystery/internal/store"
)

var testNow = time.Date(2024, 3, 10, 9, 0, 0, 0, time.UTC)

func fixedClock() time.Time { return testNow }

func newMemoryStore() store.KeyValueStore {
	return store.NewMemoryStore().WithClock(fixedClock)
}

func newTestRouter(kv store.KeyValueStore) *mux.Router {
	realm := services.NewRealmService(kv, services.RealmOptions{Clock: fixedClock})
	r := mux.NewRouter()
	r.Use(Instrument)
	r.HandleFunc("/ping", Ping).Methods("GET")
	RegisterRoutes(r.PathPrefix("/api/v1").Subrouter(), realm, nil, auth.New("test-secret", "dm"))
	return r
}

func do(t *testing.T, h http.Handler, method, path, user, body string) *httptest.ResponseRecorder {
	t.Helper()
	var req *http.Request
	if body != "" {
		req = httptest.NewRequest(method, path, strings.NewReader(body))
		req.Header.Set("Content-Type", "application/json")
	} else {
		req = httptest.NewRequest(method, path, nil)
	}
	if user != "" {
		req.Header.Set(auth.HeaderUserID, user)
		req.Header.Set(auth.HeaderUsername, user)
	}
	rec := httptest.NewRecorder()
	h.ServeHTTP(rec, req)
	return rec
}

func decode(t *testing.T, rec *httptest.ResponseRecorder) map[string]interface{} {
	t.Helper()
	var out map[string]interface{}
	require.NoError(t, json.Unmarshal(rec.Body.Bytes(), &out))
	return out
}

const base = "/api/v1/sessions/s1"

func TestStatusFor(t *testing.T) {
	cases := map[services.Kind]int{
		services.KindNone:               http.StatusOK,
		services.KindValidation:         http.StatusBadRequest,
		services.KindRateLimited:        http.StatusTooManyRequests,
		services.KindConflict:           http.StatusConflict,
		services.KindNotInitialized:     http.StatusNotFound,
		services.KindStorageUnavailable: http.StatusServiceUnavailable,
	}
	for kind, status := range cases {
		assert.Equal(t, status, StatusFor(kind), string(kind))
	}
}

func TestPing(t *testing.T) {
	rec := do(t, newTestRouter(newMemoryStore()), "GET", "/ping", "", "")
	assert.Equal(t, http.StatusOK, rec.Code)
}

func TestAnonymousRequestsAreRejected(t *testing.T) {
	rec := do(t, newTestRouter(newMemoryStore()), "GET", base+"/init", "", "")
	assert.Equal(t, http.StatusUnauthorized, rec.Code)
}

func TestCookieIdentityFallback(t *testing.T) {
	r := newTestRouter(newMemoryStore())

	first := do(t, r, "GET", base+"/init", "alice", "")
	require.Equal(t, http.StatusOK, first.Code)
	cookies := first.Result().Cookies()
	require.NotEmpty(t, cookies)

	req := httptest.NewRequest("GET", base+"/init", nil)
	for _, c := range cookies {
		req.AddCookie(c)
	}
	rec := httptest.NewRecorder()
	r.ServeHTTP(rec, req)

	require.Equal(t, http.StatusOK, rec.Code)
	assert.Equal(t, "alice", decode(t, rec)["username"])
}

func TestInit(t *testing.T) {
	rec := do(t, newTestRouter(newMemoryStore()), "GET", base+"/init", "alice", "")
	require.Equal(t, http.StatusOK, rec.Code)

	body := decode(t, rec)
	assert.Equal(t, "alice", body["username"])
	state := body["mystery_state"].(map[string]interface{})
	assert.Equal(t, "2024-03-10", state["daily_date"])
	mystery := state["mystery"].(map[string]interface{})
	assert.NotContains(t, mystery, "answer")
	assert.Len(t, body["achievements"], 10)
}

func TestGuessStatusCodes(t *testing.T) {
	r := newTestRouter(newMemoryStore())
	answer := game.SelectDailyMystery(game.DateString(testNow)).Answer

	rec := do(t, r, "POST", base+"/guess", "alice", `{"guess":"NOPE"}`)
	assert.Equal(t, http.StatusNotFound, rec.Code)
	assert.Equal(t, "not_initialized", decode(t, rec)["kind"])

	require.Equal(t, http.StatusOK, do(t, r, "GET", base+"/init", "alice", "").Code)

	rec = do(t, r, "POST", base+"/guess", "alice", `{"guess":"   "}`)
	assert.Equal(t, http.StatusBadRequest, rec.Code)

	rec = do(t, r, "POST", base+"/guess", "alice", `not json`)
	assert.Equal(t, http.StatusBadRequest, rec.Code)

	rec = do(t, r, "POST", base+"/guess", "alice", `{"guess":"`+answer+`"}`)
	require.Equal(t, http.StatusOK, rec.Code)
	body := decode(t, rec)
	assert.Equal(t, true, body["success"])
	assert.Equal(t, true, body["correct"])
	assert.Equal(t, answer, body["revealed_content"])

	rec = do(t, r, "POST", base+"/guess", "alice", `{"guess":"`+answer+`"}`)
	assert.Equal(t, http.StatusConflict, rec.Code)

	require.Equal(t, http.StatusOK, do(t, r, "GET", base+"/init", "bob", "").Code)
	for i := 0; i < game.MaxGuessesPerDay; i++ {
		assert.Equal(t, http.StatusOK, do(t, r, "POST", base+"/guess", "bob", `{"guess":"NOPE"}`).Code)
	}
	rec = do(t, r, "POST", base+"/guess", "bob", `{"guess":"NOPE"}`)
	assert.Equal(t, http.StatusTooManyRequests, rec.Code)
	assert.Equal(t, "Daily guess limit reached", decode(t, rec)["message"])
}

func TestSubmissionEndpoints(t *testing.T) {
	r := newTestRouter(newMemoryStore())

	rec := do(t, r, "POST", base+"/submissions", "bob", `{"answer":"","category":"Movie Quote","hints":["x"]}`)
	assert.Equal(t, http.StatusBadRequest, rec.Code)

	rec = do(t, r, "POST", base+"/submissions", "bob", `{"answer":"hello there","category":"Movie Quote","hints":["Star Wars"]}`)
	require.Equal(t, http.StatusCreated, rec.Code)
	sub := decode(t, rec)["submission"].(map[string]interface{})
	id := sub["id"].(string)
	assert.Equal(t, "HELLO THERE", sub["answer"])

	rec = do(t, r, "POST", base+"/submissions/"+id+"/vote", "alice", "")
	require.Equal(t, http.StatusOK, rec.Code)
	assert.Equal(t, float64(1), decode(t, rec)["new_vote_count"])

	rec = do(t, r, "POST", base+"/submissions/"+id+"/vote", "alice", "")
	assert.Equal(t, http.StatusConflict, rec.Code)

	rec = do(t, r, "POST", base+"/submissions/sub_nope/vote", "alice", "")
	assert.Equal(t, http.StatusConflict, rec.Code)

	rec = do(t, r, "GET", base+"/submissions", "alice", "")
	require.Equal(t, http.StatusOK, rec.Code)
	body := decode(t, rec)
	assert.Len(t, body["submissions"], 1)
	assert.Equal(t, float64(4), body["user_votes_remaining"])
}

func TestActivityEndpoint(t *testing.T) {
	r := newTestRouter(newMemoryStore())
	do(t, r, "POST", base+"/submissions", "bob", `{"answer":"hello there","category":"Movie Quote","hints":["Star Wars"]}`)

	rec := do(t, r, "GET", base+"/activity", "alice", "")
	require.Equal(t, http.StatusOK, rec.Code)
	// the submission and its achievement
	assert.Len(t, decode(t, rec)["events"], 2)

	rec = do(t, r, "GET", base+"/activity?limit=1", "alice", "")
	require.Equal(t, http.StatusOK, rec.Code)
	assert.Len(t, decode(t, rec)["events"], 1)

	rec = do(t, r, "GET", base+"/activity?limit=zero", "alice", "")
	assert.Equal(t, http.StatusBadRequest, rec.Code)
}

type brokenStore struct{}

func (brokenStore) Get(context.Context, string) (string, bool, error) {
	return "", false, store.ErrUnavailable
}

func (brokenStore) Set(context.Context, string, string, time.Time) error {
	return store.ErrUnavailable
}

func (brokenStore) Incr(context.Context, string) (int64, error) {
	return 0, errors.New("down")
}

func (brokenStore) Close() error { return nil }

func TestStorageFailureIsServiceUnavailable(t *testing.T) {
	rec := do(t, newTestRouter(brokenStore{}), "GET", base+"/init", "alice", "")
	assert.Equal(t, http.StatusServiceUnavailable, rec.Code)
	assert.Equal(t, "storage_unavailable", decode(t, rec)["kind"])
}
