package form

import "github.com/aanand-mishra/student-registration/internal/types"

// Success messages.
const (
	MsgRegistered = "Student registered successfully!"
	MsgUpdated    = "Student details updated successfully!"
	MsgDeleted    = "Student deleted successfully!"
)

// Action is one event in the life of the form.
type Action interface {
	action()
}

type (
	// FieldChanged sets a draft field and clears its error.
	FieldChanged struct{ Field, Value string }

	// SubmitStarted clears the previous success message.
	SubmitStarted struct{}

	// Validated replaces the errors with the result of Validate.
	Validated struct{ Errors Errors }

	// SubmitSucceeded resets the form after a create or update.
	SubmitSucceeded struct{ Message string }

	// SubmitFailed shows the server's message. The draft is kept.
	SubmitFailed struct{ Message string }

	// EditStarted loads a record into the draft for editing.
	EditStarted struct{ Student types.Student }

	// EditCancelled leaves edit mode with an empty draft.
	EditCancelled struct{}

	// StudentsLoaded replaces the cached list.
	StudentsLoaded struct{ Students []types.Student }

	// DeleteSucceeded reports a successful delete.
	DeleteSucceeded struct{}
)

func (FieldChanged) action()    {}
func (SubmitStarted) action()   {}
func (Validated) action()       {}
func (SubmitSucceeded) action() {}
func (SubmitFailed) action()    {}
func (EditStarted) action()     {}
func (EditCancelled) action()   {}
func (StudentsLoaded) action()  {}
func (DeleteSucceeded) action() {}

// Reduce returns the state that follows s after a. s is not modified.
func Reduce(s State, a Action) State {
	next := s.clone()

	switch a := a.(type) {
	case FieldChanged:
		if next.Locked(a.Field) {
			return next
		}
		draft, ok := next.Draft.With(a.Field, a.Value)
		if !ok {
			return next
		}
		next.Draft = draft
		delete(next.Errors, a.Field)

	case SubmitStarted:
		next.Success = ""

	case Validated:
		next.Errors = a.Errors.clone()

	case SubmitSucceeded:
		next.Draft = Draft{}
		next.Errors = Errors{}
		next.IsEditing = false
		next.EditRollNo = ""
		next.Success = a.Message

	case SubmitFailed:
		next.Errors = Errors{FieldServer: a.Message}

	case EditStarted:
		next.Draft = Draft{
			FirstName:     a.Student.FirstName,
			LastName:      a.Student.LastName,
			RollNo:        a.Student.RollNo,
			ContactNumber: a.Student.ContactNumber,
			// The password is never shown again or re-sent on update.
		}
		next.IsEditing = true
		next.EditRollNo = a.Student.RollNo

	case EditCancelled:
		next.Draft = Draft{}
		next.Errors = Errors{}
		next.IsEditing = false
		next.EditRollNo = ""

	case StudentsLoaded:
		next.Students = append([]types.Student{}, a.Students...)

	case DeleteSucceeded:
		next.Success = MsgDeleted
	}

	return next
}
