package form

import (
	"context"
	"errors"
	"fmt"
	"log/slog"

	"github.com/aanand-mishra/student-registration/internal/client"
	"github.com/aanand-mishra/student-registration/internal/types"
)

// msgSubmitFailed is shown when the server gave no message of its own.
const msgSubmitFailed = "An error occurred while submitting the form"

// API is the subset of the REST client the form needs.
// *client.Client satisfies it.
type API interface {
	List(ctx context.Context) ([]types.Student, error)
	Create(ctx context.Context, student types.Student) (types.Student, error)
	Update(ctx context.Context, rollNo, contactNumber string) (types.Student, error)
	Delete(ctx context.Context, rollNo string) error
}

// Controller owns the current State and runs the side effects of user
// actions. It is meant to be driven from a single goroutine; it issues one
// request at a time and does not de-duplicate repeated submits.
type Controller struct {
	api   API
	log   *slog.Logger
	state State
}

func NewController(api API, log *slog.Logger) *Controller {
	return &Controller{api: api, log: log, state: Initial()}
}

// State returns the current snapshot.
func (c *Controller) State() State {
	return c.state
}

func (c *Controller) dispatch(a Action) {
	c.state = Reduce(c.state, a)
}

// Change edits one draft field.
func (c *Controller) Change(field, value string) State {
	c.dispatch(FieldChanged{Field: field, Value: value})
	return c.state
}

// Refresh re-fetches the full list. A failure is logged and otherwise
// ignored; the cached list stays as it was.
func (c *Controller) Refresh(ctx context.Context) State {
	students, err := c.api.List(ctx)
	if err != nil {
		c.log.Error("error fetching student data", slog.String("error", err.Error()))
		return c.state
	}

	c.dispatch(StudentsLoaded{Students: students})
	return c.state
}

// Submit validates the draft and, when it is clean, creates a new student
// or updates the contact number of the one being edited. On success the
// form is reset and the list refreshed.
func (c *Controller) Submit(ctx context.Context) State {
	c.dispatch(SubmitStarted{})

	errs := Validate(c.state.Draft)
	c.dispatch(Validated{Errors: errs})
	if len(errs) > 0 {
		return c.state
	}

	var (
		err error
		msg string
	)
	if c.state.IsEditing {
		_, err = c.api.Update(ctx, c.state.EditRollNo, c.state.Draft.ContactNumber)
		msg = MsgUpdated
	} else {
		_, err = c.api.Create(ctx, c.state.Draft.Student())
		msg = MsgRegistered
	}

	if err != nil {
		c.log.Warn("submit rejected", slog.String("error", err.Error()))
		c.dispatch(SubmitFailed{Message: serverMessage(err)})
		return c.state
	}

	c.dispatch(SubmitSucceeded{Message: msg})
	return c.Refresh(ctx)
}

// Delete removes a student straight away and refreshes the list. A
// failure is logged and otherwise ignored.
func (c *Controller) Delete(ctx context.Context, rollNo string) State {
	if err := c.api.Delete(ctx, rollNo); err != nil {
		c.log.Error("error deleting student",
			slog.String("rollNo", rollNo),
			slog.String("error", err.Error()))
		return c.state
	}

	c.dispatch(DeleteSucceeded{})
	return c.Refresh(ctx)
}

// Edit switches the form into edit mode for a student from the cached list.
func (c *Controller) Edit(rollNo string) (State, error) {
	for _, s := range c.state.Students {
		if s.RollNo == rollNo {
			c.dispatch(EditStarted{Student: s})
			return c.state, nil
		}
	}
	return c.state, fmt.Errorf("no student with roll no %q in the list", rollNo)
}

// Cancel leaves edit mode and clears the draft.
func (c *Controller) Cancel() State {
	c.dispatch(EditCancelled{})
	return c.state
}

func serverMessage(err error) string {
	var apiErr *client.APIError
	if errors.As(err, &apiErr) && apiErr.Message != "" {
		return apiErr.Message
	}
	return msgSubmitFailed
}
