package httpapi

import (
	"bytes"
	"context"
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"strings"
	"sync"
	"testing"
	"time"

	"github.com/rs/zerolog"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/mesh-intelligence/hobbyist/internal/api"
	"github.com/mesh-intelligence/hobbyist/internal/memory"
	"github.com/mesh-intelligence/hobbyist/pkg/types"
)

// syncBuffer is a bytes.Buffer safe for the server goroutines to write
// while the test reads.
type syncBuffer struct {
	mu  sync.Mutex
	buf bytes.Buffer
}

func (b *syncBuffer) Write(p []byte) (int, error) {
	b.mu.Lock()
	defer b.mu.Unlock()
	return b.buf.Write(p)
}

func (b *syncBuffer) String() string {
	b.mu.Lock()
	defer b.mu.Unlock()
	return b.buf.String()
}

type envelope struct {
	Data      json.RawMessage `json:"data"`
	Error     string          `json:"error"`
	RequestID string          `json:"request_id"`
}

func setupServer(t *testing.T) (*httptest.Server, *syncBuffer) {
	t.Helper()
	b := memory.NewBackend()
	require.NoError(t, b.Attach(types.Config{Backend: types.BackendMemory}))
	t.Cleanup(func() { _ = b.Detach() })
	svc, err := api.FromBackend(b)
	require.NoError(t, err)

	logs := &syncBuffer{}
	srv := httptest.NewServer(NewHandler(svc, zerolog.New(logs)))
	t.Cleanup(srv.Close)
	return srv, logs
}

func call(t *testing.T, srv *httptest.Server, op, body string) (int, envelope) {
	t.Helper()
	resp, err := http.Post(srv.URL+"/api/"+op, "application/json", strings.NewReader(body))
	require.NoError(t, err)
	defer resp.Body.Close()

	var env envelope
	require.NoError(t, json.NewDecoder(resp.Body).Decode(&env))
	return resp.StatusCode, env
}

func mustData[T any](t *testing.T, env envelope) T {
	t.Helper()
	var v T
	require.NoError(t, json.Unmarshal(env.Data, &v), string(env.Data))
	return v
}

func TestHandler_ConcreteScenario(t *testing.T) {
	srv, _ := setupServer(t)

	status, env := call(t, srv, api.OpCreateHobby, `{"payload":{"name":"reading"}}`)
	require.Equal(t, http.StatusOK, status, env.Error)
	h1 := mustData[types.Hobby](t, env)

	_, env = call(t, srv, api.OpCreateHobby, `{"payload":{"name":"cycling"}}`)
	h2 := mustData[types.Hobby](t, env)

	status, env = call(t, srv, api.OpCreatePerson,
		`{"payload":{"name":"Ann","hobbies":["`+h1.ID.String()+`","`+h2.ID.String()+`"]}}`)
	require.Equal(t, http.StatusOK, status, env.Error)
	ann := mustData[map[string]any](t, env)
	p1 := ann["_id"].(string)
	assert.Equal(t, []any{h1.ID.String(), h2.ID.String()}, ann["hobbies"])

	_, env = call(t, srv, api.OpPerson, `{"_id":"`+p1+`","populate":true}`)
	assert.JSONEq(t, `{"_id":"`+p1+`","name":"Ann","hobbies":[
		{"_id":"`+h1.ID.String()+`","name":"reading"},
		{"_id":"`+h2.ID.String()+`","name":"cycling"}]}`, string(env.Data))

	status, _ = call(t, srv, api.OpDeleteHobby, `{"_id":"`+h1.ID.String()+`"}`)
	require.Equal(t, http.StatusOK, status)

	_, env = call(t, srv, api.OpPerson, `{"_id":"`+p1+`","populate":true}`)
	assert.JSONEq(t, `{"_id":"`+p1+`","name":"Ann","hobbies":[
		null,
		{"_id":"`+h2.ID.String()+`","name":"cycling"}]}`, string(env.Data))

	_, env = call(t, srv, api.OpPersons, `{"populate":false}`)
	assert.JSONEq(t, `[{"_id":"`+p1+`","name":"Ann","hobbies":["`+h1.ID.String()+`","`+h2.ID.String()+`"]}]`,
		string(env.Data))
}

func TestHandler_HobbyOperations(t *testing.T) {
	srv, _ := setupServer(t)

	_, env := call(t, srv, api.OpCreateHobby, `{"payload":{"name":"chess"}}`)
	h := mustData[types.Hobby](t, env)
	_, _ = call(t, srv, api.OpCreateHobby, `{"payload":{"name":"go"}}`)

	_, env = call(t, srv, api.OpHobbies, `{"filters":{"name":"chess"}}`)
	assert.Equal(t, []types.Hobby{h}, mustData[[]types.Hobby](t, env))

	_, env = call(t, srv, api.OpHobbies, ``)
	assert.Len(t, mustData[[]types.Hobby](t, env), 2)

	_, env = call(t, srv, api.OpUpdateHobby, `{"payload":{"_id":"`+h.ID.String()+`","name":"x"}}`)
	assert.Equal(t, types.Hobby{ID: h.ID, Name: "x"}, mustData[types.Hobby](t, env))

	missing := types.NewIdentifier().String()
	status, env := call(t, srv, api.OpHobby, `{"_id":"`+missing+`"}`)
	assert.Equal(t, http.StatusOK, status)
	assert.Equal(t, "null", string(env.Data))

	status, env = call(t, srv, api.OpUpdateHobby, `{"payload":{"_id":"`+missing+`","name":"y"}}`)
	assert.Equal(t, http.StatusOK, status)
	assert.Equal(t, "null", string(env.Data))
}

func TestHandler_Errors(t *testing.T) {
	srv, _ := setupServer(t)

	tests := []struct {
		name   string
		op     string
		body   string
		status int
	}{
		{name: "invalid id", op: api.OpHobby, body: `{"_id":"nope"}`, status: http.StatusBadRequest},
		{name: "missing id", op: api.OpDeletePerson, body: `{}`, status: http.StatusBadRequest},
		{name: "malformed json", op: api.OpCreateHobby, body: `{"payload":`, status: http.StatusBadRequest},
		{name: "unknown argument", op: api.OpHobby, body: `{"_id":"000000000000000000000000","x":1}`, status: http.StatusBadRequest},
		{name: "populate on hobby op", op: api.OpHobbies, body: `{"populate":true}`, status: http.StatusBadRequest},
		{name: "bad populate", op: api.OpPerson, body: `{"_id":"000000000000000000000000","populate":"yes"}`, status: http.StatusBadRequest},
		{name: "wrong payload type", op: api.OpCreateHobby, body: `{"payload":{"name":5}}`, status: http.StatusBadRequest},
		{name: "invalid hobby in payload", op: api.OpCreatePerson, body: `{"payload":{"name":"Ann","hobbies":["zz"]}}`, status: http.StatusBadRequest},
		{name: "unknown operation", op: "dropTables", body: `{}`, status: http.StatusNotFound},
		{name: "field is not routed", op: "Person.hobbies", body: `{}`, status: http.StatusNotFound},
		{name: "schema is not an operation", op: "schema", body: `{}`, status: http.StatusNotFound},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			status, env := call(t, srv, tt.op, tt.body)
			assert.Equal(t, tt.status, status)
			assert.NotEmpty(t, env.Error)
			assert.NotEmpty(t, env.RequestID)
		})
	}
}

func TestHandler_StorageError(t *testing.T) {
	b := memory.NewBackend()
	require.NoError(t, b.Attach(types.Config{Backend: types.BackendMemory}))
	svc, err := api.FromBackend(b)
	require.NoError(t, err)
	require.NoError(t, b.Detach())

	srv := httptest.NewServer(NewHandler(svc, zerolog.Nop()))
	t.Cleanup(srv.Close)

	status, env := call(t, srv, api.OpHobbies, `{}`)
	assert.Equal(t, http.StatusInternalServerError, status)
	assert.Contains(t, env.Error, types.ErrBackendDetached.Error())
}

func TestHandler_SchemaAndHealth(t *testing.T) {
	srv, _ := setupServer(t)

	resp, err := http.Get(srv.URL + "/api/schema")
	require.NoError(t, err)
	defer resp.Body.Close()
	assert.Equal(t, http.StatusOK, resp.StatusCode)
	var body struct {
		Data []api.Operation `json:"data"`
	}
	require.NoError(t, json.NewDecoder(resp.Body).Decode(&body))
	assert.Equal(t, api.Schema(), body.Data)

	health, err := http.Get(srv.URL + "/healthz")
	require.NoError(t, err)
	defer health.Body.Close()
	assert.Equal(t, http.StatusOK, health.StatusCode)

	wrongMethod, err := http.Get(srv.URL + "/api/" + api.OpHobby)
	require.NoError(t, err)
	defer wrongMethod.Body.Close()
	assert.Equal(t, http.StatusMethodNotAllowed, wrongMethod.StatusCode)
}

func TestHandler_RequestIDAndLogging(t *testing.T) {
	srv, logs := setupServer(t)

	req, err := http.NewRequestWithContext(context.Background(), http.MethodPost,
		srv.URL+"/api/"+api.OpHobbies, strings.NewReader(`{}`))
	require.NoError(t, err)
	req.Header.Set(RequestIDHeader, "req-123")
	resp, err := http.DefaultClient.Do(req)
	require.NoError(t, err)
	resp.Body.Close()
	assert.Equal(t, "req-123", resp.Header.Get(RequestIDHeader))

	resp, err = http.Post(srv.URL+"/api/"+api.OpHobbies, "application/json", strings.NewReader(`{}`))
	require.NoError(t, err)
	resp.Body.Close()
	assert.Len(t, resp.Header.Get(RequestIDHeader), 36, "generated ids are UUIDs")

	findEntry := func() map[string]any {
		for _, line := range strings.Split(logs.String(), "\n") {
			var entry map[string]any
			if json.Unmarshal([]byte(line), &entry) == nil && entry["request_id"] == "req-123" {
				return entry
			}
		}
		return nil
	}
	require.Eventually(t, func() bool { return findEntry() != nil }, time.Second, 10*time.Millisecond)
	entry := findEntry()
	assert.Equal(t, "/api/hobbies", entry["path"])
	assert.Equal(t, "POST", entry["method"])
	assert.Equal(t, float64(http.StatusOK), entry["status"])
}

func TestOperations_CoverSchema(t *testing.T) {
	for _, op := range api.Schema() {
		if op.Kind == api.KindField {
			continue
		}
		_, ok := operations[op.Name]
		assert.True(t, ok, "operation %s has no handler", op.Name)
	}
}

func TestRecoverMiddleware(t *testing.T) {
	logs := &bytes.Buffer{}
	h := Wrap(zerolog.New(logs), http.HandlerFunc(func(http.ResponseWriter, *http.Request) {
		panic("boom")
	}))
	rec := httptest.NewRecorder()
	h.ServeHTTP(rec, httptest.NewRequest(http.MethodGet, "/", nil))

	assert.Equal(t, http.StatusInternalServerError, rec.Code)
	assert.NotEmpty(t, rec.Header().Get(RequestIDHeader))
	assert.Contains(t, logs.String(), "panic recovered")
}
