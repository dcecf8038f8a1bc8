package notify

import (
	"net/http"
	"sort"

	"github.com/pkg/errors"

	"github.com/SatuPadu/fses-client/core"
)

type statusError interface {
	error
	StatusCode() int
}

type fieldsError interface {
	error
	FieldErrors() map[string][]string
}

// statusTitles maps backend statuses onto the fixed toast titles users
// already know.
var statusTitles = map[int]string{
	http.StatusUnauthorized:        "Unauthorized",
	http.StatusForbidden:           "Forbidden",
	http.StatusNotFound:            "Not Found",
	http.StatusUnprocessableEntity: "Validation Error",
	http.StatusInternalServerError: "Server Error",
}

// HandleAPIError turns err into a single error toast. Validation
// responses surface the first message of the first failing field so the
// user sees something actionable instead of a wall of text. Errors
// without a status are treated as transport failures.
func (q *Queue) HandleAPIError(err error) {
	if err == nil {
		return
	}

	title := "Error"
	body := err.Error()

	var se statusError
	if errors.As(err, &se) {
		if t, ok := statusTitles[se.StatusCode()]; ok {
			title = t
		}
	} else {
		var ve *core.ValidationError
		if !errors.As(err, &ve) {
			title = "Network Error"
			body = "Could not reach the server. Please try again."
		}
	}

	var fe fieldsError
	if errors.As(err, &fe) {
		if msg := firstFieldMessage(fe.FieldErrors()); msg != "" {
			body = msg
		}
	}
	var ve *core.ValidationError
	if errors.As(err, &ve) {
		title = "Validation Error"
		if len(ve.Fields) > 0 {
			body = ve.Fields[0].Error
		}
	}

	q.Error(title, body)
}

// HandleAPISuccess shows a success toast for a completed operation.
func (q *Queue) HandleAPISuccess(message string) {
	if message == "" {
		message = "Operation completed successfully."
	}
	q.Success("Success", message)
}

func firstFieldMessage(fields map[string][]string) string {
	if len(fields) == 0 {
		return ""
	}
	names := make([]string, 0, len(fields))
	for name := range fields {
		names = append(names, name)
	}
	sort.Strings(names)
	for _, name := range names {
		if msgs := fields[name]; len(msgs) > 0 {
			return msgs[0]
		}
	}
	return ""
}
