package form

import (
	"context"
	"errors"
	"io"
	"log/slog"
	"net/http/httptest"
	"testing"

	"github.com/aanand-mishra/student-registration/internal/client"
	"github.com/aanand-mishra/student-registration/internal/http/server"
	"github.com/aanand-mishra/student-registration/internal/service"
	"github.com/aanand-mishra/student-registration/internal/storage/memory"
	"github.com/aanand-mishra/student-registration/internal/types"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func discardLogger() *slog.Logger {
	return slog.New(slog.NewTextHandler(io.Discard, nil))
}

// fakeAPI records calls and returns canned results.
type fakeAPI struct {
	students []types.Student
	err      error
	listErr  error
	calls    []string
}

func (f *fakeAPI) List(context.Context) ([]types.Student, error) {
	f.calls = append(f.calls, "list")
	if f.listErr != nil {
		return nil, f.listErr
	}
	return f.students, nil
}

func (f *fakeAPI) Create(_ context.Context, s types.Student) (types.Student, error) {
	f.calls = append(f.calls, "create")
	if f.err != nil {
		return types.Student{}, f.err
	}
	f.students = append(f.students, s)
	return s, nil
}

func (f *fakeAPI) Update(_ context.Context, rollNo, contactNumber string) (types.Student, error) {
	f.calls = append(f.calls, "update "+rollNo+" "+contactNumber)
	return types.Student{}, f.err
}

func (f *fakeAPI) Delete(_ context.Context, rollNo string) error {
	f.calls = append(f.calls, "delete "+rollNo)
	return f.err
}

func fill(c *Controller, d Draft) {
	for _, f := range Fields {
		c.Change(f, d.Get(f))
	}
}

func TestSubmitBlockedByValidation(t *testing.T) {
	api := &fakeAPI{}
	c := NewController(api, discardLogger())

	d := complete
	d.ContactNumber = ""
	fill(c, d)

	s := c.Submit(context.Background())

	assert.Contains(t, s.Errors, FieldContactNumber)
	assert.Empty(t, api.calls, "no network call for an invalid draft")
	assert.Equal(t, d, s.Draft)
}

func TestSubmitCreate(t *testing.T) {
	api := &fakeAPI{}
	c := NewController(api, discardLogger())
	fill(c, complete)

	s := c.Submit(context.Background())

	assert.Equal(t, []string{"create", "list"}, api.calls)
	assert.Equal(t, Draft{}, s.Draft)
	assert.Empty(t, s.Errors)
	assert.Equal(t, MsgRegistered, s.Success)
	assert.Equal(t, []types.Student{complete.Student()}, s.Students)
}

func TestSubmitServerRejection(t *testing.T) {
	tests := []struct {
		name string
		err  error
		want string
	}{
		{"api message", &client.APIError{Status: 400, Message: "roll number already exists: 101"}, "roll number already exists: 101"},
		{"api without message", &client.APIError{Status: 502}, msgSubmitFailed},
		{"transport", &client.TransportError{Op: "create student", Err: errors.New("refused")}, msgSubmitFailed},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			api := &fakeAPI{err: tt.err}
			c := NewController(api, discardLogger())
			fill(c, complete)

			s := c.Submit(context.Background())

			assert.Equal(t, Errors{FieldServer: tt.want}, s.Errors)
			assert.Equal(t, complete, s.Draft, "draft is kept")
			assert.Equal(t, []string{"create"}, api.calls, "no refresh after a failure")
		})
	}
}

func TestSubmitUpdateSendsOnlyContactNumber(t *testing.T) {
	api := &fakeAPI{students: []types.Student{ann}}
	c := NewController(api, discardLogger())
	c.Refresh(context.Background())

	_, err := c.Edit("101")
	require.NoError(t, err)

	c.Change(FieldContactNumber, "555-9999")
	c.Change(FieldPassword, "p1")
	c.Change(FieldConfirmPassword, "p1")

	s := c.Submit(context.Background())

	assert.Equal(t, []string{"list", "update 101 555-9999", "list"}, api.calls)
	assert.False(t, s.IsEditing)
	assert.Equal(t, MsgUpdated, s.Success)
}

func TestEditUnknownRollNo(t *testing.T) {
	c := NewController(&fakeAPI{}, discardLogger())

	_, err := c.Edit("404")
	assert.Error(t, err)
	assert.False(t, c.State().IsEditing)
}

func TestDeleteAndRefreshFailuresAreSwallowed(t *testing.T) {
	api := &fakeAPI{students: []types.Student{ann}}
	c := NewController(api, discardLogger())
	c.Refresh(context.Background())

	api.err = errors.New("unreachable")
	s := c.Delete(context.Background(), "101")
	assert.Empty(t, s.Errors)
	assert.Empty(t, s.Success)

	api.listErr = errors.New("unreachable")
	s = c.Refresh(context.Background())
	assert.Equal(t, []types.Student{ann}, s.Students, "cached list kept")
}

// TestControllerAgainstServer runs the form against the real API.
func TestControllerAgainstServer(t *testing.T) {
	srv := httptest.NewServer(server.NewRouter(
		service.NewStudentService(memory.New()), discardLogger(), []string{"*"}))
	defer srv.Close()

	api := client.New(srv.URL)
	defer api.Close()

	ctx := context.Background()
	c := NewController(api, discardLogger())

	fill(c, complete)
	s := c.Submit(ctx)
	require.Equal(t, MsgRegistered, s.Success)
	require.Len(t, s.Students, 1)

	// Registering the same roll number again surfaces the server message.
	fill(c, complete)
	s = c.Submit(ctx)
	assert.Equal(t, Errors{FieldServer: "roll number already exists: 101"}, s.Errors)

	c.Cancel()
	_, err := c.Edit("101")
	require.NoError(t, err)
	c.Change(FieldContactNumber, "555-9999")
	c.Change(FieldPassword, "p1")
	c.Change(FieldConfirmPassword, "p1")
	s = c.Submit(ctx)
	require.Equal(t, MsgUpdated, s.Success)
	assert.Equal(t, "555-9999", s.Students[0].ContactNumber)
	assert.Equal(t, "p1", s.Students[0].Password)

	s = c.Delete(ctx, "101")
	assert.Equal(t, MsgDeleted, s.Success)
	assert.Empty(t, s.Students)

	// Deleting a missing record is logged only.
	s = c.Delete(ctx, "101")
	assert.Empty(t, s.Errors)
}
