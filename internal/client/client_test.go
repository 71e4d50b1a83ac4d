package client

import (
	"context"
	"errors"
	"io"
	"log/slog"
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/aanand-mishra/student-registration/internal/http/server"
	"github.com/aanand-mishra/student-registration/internal/service"
	"github.com/aanand-mishra/student-registration/internal/storage/memory"
	"github.com/aanand-mishra/student-registration/internal/types"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

var ann = types.Student{
	FirstName:     "Ann",
	LastName:      "Lee",
	RollNo:        "101",
	Password:      "p1",
	ContactNumber: "555-0101",
}

func newTestClient(t *testing.T) *Client {
	t.Helper()

	log := slog.New(slog.NewTextHandler(io.Discard, nil))
	srv := httptest.NewServer(server.NewRouter(service.NewStudentService(memory.New()), log, []string{"*"}))
	t.Cleanup(srv.Close)

	c := New(srv.URL)
	t.Cleanup(func() { _ = c.Close() })

	return c
}

func TestClientLifecycle(t *testing.T) {
	c := newTestClient(t)
	ctx := context.Background()

	created, err := c.Create(ctx, ann)
	require.NoError(t, err)
	assert.Equal(t, ann, created)

	students, err := c.List(ctx)
	require.NoError(t, err)
	assert.Equal(t, []types.Student{ann}, students)

	updated, err := c.Update(ctx, "101", "555-9999")
	require.NoError(t, err)
	assert.Equal(t, "555-9999", updated.ContactNumber)

	require.NoError(t, c.Delete(ctx, "101"))

	students, err = c.List(ctx)
	require.NoError(t, err)
	assert.Empty(t, students)
}

func TestClientAPIErrors(t *testing.T) {
	c := newTestClient(t)
	ctx := context.Background()

	_, err := c.Create(ctx, ann)
	require.NoError(t, err)

	_, err = c.Create(ctx, ann)
	var apiErr *APIError
	require.ErrorAs(t, err, &apiErr)
	assert.Equal(t, http.StatusBadRequest, apiErr.Status)
	assert.Equal(t, "roll number already exists: 101", apiErr.Message)

	err = c.Delete(ctx, "404")
	require.ErrorAs(t, err, &apiErr)
	assert.Equal(t, http.StatusNotFound, apiErr.Status)
	assert.Equal(t, "Student not found", apiErr.Error())
}

func TestClientTransportError(t *testing.T) {
	srv := httptest.NewServer(http.NotFoundHandler())
	url := srv.URL
	srv.Close()

	c := New(url)
	defer c.Close()

	_, err := c.List(context.Background())

	var tErr *TransportError
	require.ErrorAs(t, err, &tErr)
	assert.Equal(t, "list students", tErr.Op)

	var apiErr *APIError
	assert.False(t, errors.As(err, &apiErr))
}

func TestAPIErrorWithoutMessage(t *testing.T) {
	err := &APIError{Status: http.StatusBadGateway}
	assert.Equal(t, "server responded with status 502", err.Error())
}
