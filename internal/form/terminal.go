package form

import (
	"bufio"
	"context"
	"fmt"
	"io"
	"strings"
)

const help = `commands:
  set <field> <value>   change a field (firstName lastName rollNo password confirmPassword contactNumber)
  submit                register, or save the contact number while editing
  edit <rollNo>         edit a student from the list
  cancel                leave edit mode
  delete <rollNo>       delete a student
  list                  reload the student list
  help                  show this text
  quit                  exit`

// Run drives c from line commands read from in, rendering the form to out
// after every command. It loads the list once before the first prompt and
// returns when in is exhausted, on "quit", or when ctx is done.
func Run(ctx context.Context, c *Controller, in io.Reader, out io.Writer) error {
	c.Refresh(ctx)
	if err := Render(out, c.State()); err != nil {
		return err
	}

	scanner := bufio.NewScanner(in)
	for {
		fmt.Fprint(out, "> ")
		if !scanner.Scan() {
			return scanner.Err()
		}
		if err := ctx.Err(); err != nil {
			return err
		}

		args := strings.Fields(scanner.Text())
		if len(args) == 0 {
			continue
		}

		switch cmd := args[0]; cmd {
		case "quit", "exit":
			return nil
		case "help":
			fmt.Fprintln(out, help)
			continue
		case "set":
			if len(args) < 2 {
				fmt.Fprintln(out, "usage: set <field> <value>")
				continue
			}
			if c.State().Locked(args[1]) {
				fmt.Fprintf(out, "%s cannot be changed while editing\n", args[1])
				continue
			}
			c.Change(args[1], strings.Join(args[2:], " "))
		case "submit":
			c.Submit(ctx)
		case "edit":
			if len(args) != 2 {
				fmt.Fprintln(out, "usage: edit <rollNo>")
				continue
			}
			if _, err := c.Edit(args[1]); err != nil {
				fmt.Fprintln(out, err)
				continue
			}
		case "cancel":
			c.Cancel()
		case "delete":
			if len(args) != 2 {
				fmt.Fprintln(out, "usage: delete <rollNo>")
				continue
			}
			c.Delete(ctx, args[1])
		case "list":
			c.Refresh(ctx)
		default:
			fmt.Fprintf(out, "unknown command %q, type help\n", cmd)
			continue
		}

		if err := Render(out, c.State()); err != nil {
			return err
		}
	}
}
