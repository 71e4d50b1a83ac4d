package response

import (
	"encoding/json"
	"errors"
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/aanand-mishra/student-registration/internal/types"
	"github.com/aanand-mishra/student-registration/internal/utils/validation"
	"github.com/go-playground/validator/v10"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestWriteJSON(t *testing.T) {
	rr := httptest.NewRecorder()

	require.NoError(t, WriteJSON(rr, http.StatusNotFound, GeneralError(errors.New("Student not found"))))

	assert.Equal(t, http.StatusNotFound, rr.Code)
	assert.Equal(t, "application/json", rr.Header().Get("Content-Type"))
	assert.JSONEq(t, `{"message":"Student not found"}`, rr.Body.String())
}

func TestValidationError(t *testing.T) {
	err := validation.New().Struct(types.Student{FirstName: "Ann", RollNo: "101", Password: "p"})

	var fieldErrs validator.ValidationErrors
	require.True(t, errors.As(err, &fieldErrs))

	body, jerr := json.Marshal(ValidationError(fieldErrs))
	require.NoError(t, jerr)
	assert.JSONEq(t,
		`{"message":"field lastName is required, field contactNumber is required"}`,
		string(body))
}
