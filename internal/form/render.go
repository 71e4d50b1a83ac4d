package form

import (
	"fmt"
	"io"
	"strings"
	"text/tabwriter"

	"github.com/gookit/color"
)

var labels = map[string]string{
	FieldFirstName:       "First Name",
	FieldLastName:        "Last Name",
	FieldRollNo:          "Roll No",
	FieldPassword:        "Password",
	FieldConfirmPassword: "Confirm Password",
	FieldContactNumber:   "Contact Number",
}

// Render writes the form and the student table for s.
func Render(w io.Writer, s State) error {
	title := "Student Registration Form"
	if s.IsEditing {
		title = "Edit Student Details"
	}

	var b strings.Builder
	fmt.Fprintln(&b, color.Bold.Sprint(title))

	tw := tabwriter.NewWriter(&b, 0, 4, 2, ' ', 0)
	for _, f := range Fields {
		value := s.Draft.Get(f)
		if f == FieldPassword || f == FieldConfirmPassword {
			value = strings.Repeat("*", len(value))
		}

		line := fmt.Sprintf("  %s:\t%s", labels[f], value)
		if s.Locked(f) {
			line += "\t(locked)"
		}
		if msg := s.Errors[f]; msg != "" {
			line += "\t" + color.Red.Sprint(msg)
		}
		fmt.Fprintln(tw, line)
	}
	if err := tw.Flush(); err != nil {
		return err
	}

	if msg := s.Errors[FieldServer]; msg != "" {
		fmt.Fprintln(&b, color.Red.Sprint(msg))
	}
	if s.Success != "" {
		fmt.Fprintln(&b, color.Green.Sprint(s.Success))
	}

	fmt.Fprintln(&b)
	fmt.Fprintln(&b, color.Bold.Sprint("Registered Students"))

	tw = tabwriter.NewWriter(&b, 0, 4, 2, ' ', 0)
	fmt.Fprintln(tw, "Roll No\tFirst Name\tLast Name\tContact Number")
	for _, st := range s.Students {
		fmt.Fprintf(tw, "%s\t%s\t%s\t%s\n", st.RollNo, st.FirstName, st.LastName, st.ContactNumber)
	}
	if err := tw.Flush(); err != nil {
		return err
	}

	_, err := io.WriteString(w, b.String())
	return err
}
