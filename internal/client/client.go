// Package client is the REST client the form uses to talk to the students
// API. It turns every outcome into one of three results: the decoded body,
// an *APIError carrying the server's { "message": ... }, or a
// *TransportError when the server could not be reached at all.
package client

import (
	"context"
	"fmt"
	"net/url"

	"github.com/aanand-mishra/student-registration/internal/types"
	"resty.dev/v3"
)

// APIError is a non-2xx response from the API.
type APIError struct {
	Status  int
	Message string
}

func (e *APIError) Error() string {
	if e.Message == "" {
		return fmt.Sprintf("server responded with status %d", e.Status)
	}
	return e.Message
}

// TransportError means the request never produced an HTTP response.
type TransportError struct {
	Op  string
	Err error
}

func (e *TransportError) Error() string {
	return fmt.Sprintf("%s: %v", e.Op, e.Err)
}

func (e *TransportError) Unwrap() error { return e.Err }

// Client calls the /students endpoints under a base URL.
type Client struct {
	rc *resty.Client
}

// New returns a client for the API at baseURL, e.g. http://localhost:5000.
// No timeout or retry policy is applied.
func New(baseURL string) *Client {
	rc := resty.New().
		SetBaseURL(baseURL).
		SetHeader("Accept", "application/json")

	return &Client{rc: rc}
}

// Close releases idle connections.
func (c *Client) Close() error {
	return c.rc.Close()
}

func (c *Client) List(ctx context.Context) ([]types.Student, error) {
	var students []types.Student
	if err := c.do(ctx, "list students", "GET", "/students", nil, &students); err != nil {
		return nil, err
	}
	return students, nil
}

func (c *Client) Create(ctx context.Context, student types.Student) (types.Student, error) {
	var created types.Student
	if err := c.do(ctx, "create student", "POST", "/students", student, &created); err != nil {
		return types.Student{}, err
	}
	return created, nil
}

// Update sends only the contact number; nothing else may change.
func (c *Client) Update(ctx context.Context, rollNo, contactNumber string) (types.Student, error) {
	var updated types.Student
	body := types.UpdateRequest{ContactNumber: contactNumber}
	if err := c.do(ctx, "update student", "PUT", studentPath(rollNo), body, &updated); err != nil {
		return types.Student{}, err
	}
	return updated, nil
}

func (c *Client) Delete(ctx context.Context, rollNo string) error {
	var msg types.Message
	return c.do(ctx, "delete student", "DELETE", studentPath(rollNo), nil, &msg)
}

func studentPath(rollNo string) string {
	return "/students/" + url.PathEscape(rollNo)
}

func (c *Client) do(ctx context.Context, op, method, path string, body, result any) error {
	var apiErr types.Message

	req := c.rc.R().
		SetContext(ctx).
		SetResult(result).
		SetError(&apiErr)
	if body != nil {
		req.SetBody(body)
	}

	res, err := req.Execute(method, path)
	if err != nil {
		return &TransportError{Op: op, Err: err}
	}

	if res.IsError() {
		return &APIError{Status: res.StatusCode(), Message: apiErr.Message}
	}

	return nil
}
