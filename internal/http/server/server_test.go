package server

import (
	"encoding/json"
	"io"
	"log/slog"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"

	"github.com/aanand-mishra/student-registration/internal/service"
	"github.com/aanand-mishra/student-registration/internal/storage/memory"
	"github.com/aanand-mishra/student-registration/internal/types"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func newTestServer(t *testing.T) *httptest.Server {
	t.Helper()

	log := slog.New(slog.NewTextHandler(io.Discard, nil))
	srv := httptest.NewServer(NewRouter(service.NewStudentService(memory.New()), log, []string{"*"}))
	t.Cleanup(srv.Close)

	return srv
}

func request(t *testing.T, method, url, body string) *http.Response {
	t.Helper()

	var r io.Reader
	if body != "" {
		r = strings.NewReader(body)
	}
	req, err := http.NewRequest(method, url, r)
	require.NoError(t, err)
	req.Header.Set("Content-Type", "application/json")

	res, err := http.DefaultClient.Do(req)
	require.NoError(t, err)
	t.Cleanup(func() { res.Body.Close() })

	return res
}

func decodeInto(t *testing.T, res *http.Response, v any) {
	t.Helper()
	require.NoError(t, json.NewDecoder(res.Body).Decode(v))
}

// TestRegistrationScenario walks one student through its whole lifecycle.
func TestRegistrationScenario(t *testing.T) {
	srv := newTestServer(t)
	base := srv.URL + "/students"

	ann := types.Student{
		FirstName:     "Ann",
		LastName:      "Lee",
		RollNo:        "101",
		Password:      "p1",
		ContactNumber: "555-0101",
	}
	body, err := json.Marshal(ann)
	require.NoError(t, err)

	res := request(t, http.MethodPost, base, string(body))
	require.Equal(t, http.StatusCreated, res.StatusCode)
	var created types.Student
	decodeInto(t, res, &created)
	assert.Equal(t, ann, created)

	res = request(t, http.MethodGet, base, "")
	require.Equal(t, http.StatusOK, res.StatusCode)
	var list []types.Student
	decodeInto(t, res, &list)
	assert.Equal(t, []types.Student{ann}, list)

	res = request(t, http.MethodPut, base+"/101", `{"contactNumber":"555-9999"}`)
	require.Equal(t, http.StatusOK, res.StatusCode)
	var updated types.Student
	decodeInto(t, res, &updated)
	assert.Equal(t, "555-9999", updated.ContactNumber)
	assert.Equal(t, "Ann", updated.FirstName)

	res = request(t, http.MethodDelete, base+"/101", "")
	require.Equal(t, http.StatusOK, res.StatusCode)
	var msg types.Message
	decodeInto(t, res, &msg)
	assert.Equal(t, "Student deleted", msg.Message)

	res = request(t, http.MethodGet, base, "")
	require.Equal(t, http.StatusOK, res.StatusCode)
	list = nil
	decodeInto(t, res, &list)
	assert.Empty(t, list)
}

func TestHealth(t *testing.T) {
	srv := newTestServer(t)

	res := request(t, http.MethodGet, srv.URL+"/health", "")
	assert.Equal(t, http.StatusOK, res.StatusCode)
	assert.NotEmpty(t, res.Header.Get("X-Request-ID"))
}

func TestUnknownMethod(t *testing.T) {
	srv := newTestServer(t)

	res := request(t, http.MethodPatch, srv.URL+"/students/101", `{}`)
	assert.Equal(t, http.StatusMethodNotAllowed, res.StatusCode)
}
