package client

import (
	"bufio"
	"bytes"
	"context"
	"encoding/json"
	"io"
	"mime/multipart"
	"net/http"
	"net/url"
	"strings"

	"github.com/pkg/errors"
)

// Import statuses
const (
	ImportQueued              = "queued"
	ImportProcessing          = "processing"
	ImportCompleted           = "completed"
	ImportCompletedWithErrors = "completed_with_errors"
	ImportFailed              = "failed"
)

type ImportRowError struct {
	Row   int                    `json:"row"`
	Error string                 `json:"error"`
	Data  map[string]interface{} `json:"data"`
}

type ImportSummary struct {
	ProgramsCreated      int `json:"programs_created"`
	ProgramsUpdated      int `json:"programs_updated"`
	LecturersCreated     int `json:"lecturers_created"`
	LecturersUpdated     int `json:"lecturers_updated"`
	UsersCreated         int `json:"users_created"`
	UsersUpdated         int `json:"users_updated"`
	StudentsCreated      int `json:"students_created"`
	StudentsUpdated      int `json:"students_updated"`
	EvaluationsCreated   int `json:"evaluations_created"`
	EvaluationsUpdated   int `json:"evaluations_updated"`
	CoSupervisorsCreated int `json:"co_supervisors_created"`
	CoSupervisorsUpdated int `json:"co_supervisors_updated"`
}

type ImportStatus struct {
	ImportID  string           `json:"import_id"`
	Status    string           `json:"status"`
	Message   string           `json:"message"`
	Errors    []ImportRowError `json:"errors"`
	Summary   *ImportSummary   `json:"summary,omitempty"`
	UpdatedAt string           `json:"updated_at"`
}

type ImportUpload struct {
	ImportID   string `json:"import_id"`
	Filename   string `json:"filename"`
	FileSize   int64  `json:"file_size"`
	UploadedAt string `json:"uploaded_at"`
}

// Done reports whether the import reached a terminal state.
func (s ImportStatus) Done() bool {
	switch s.Status {
	case ImportCompleted, ImportCompletedWithErrors, ImportFailed:
		return true
	}
	return false
}

// UploadImport submits a spreadsheet for a long-running import job.
func (api *API) UploadImport(ctx context.Context, filename string, file io.Reader) (*ImportUpload, error) {
	token := api.ts.Token()
	if token == "" {
		return nil, ErrAuthRequired
	}

	var buf bytes.Buffer
	mw := multipart.NewWriter(&buf)
	part, err := mw.CreateFormFile("file", filename)
	if err != nil {
		return nil, errors.Wrap(err, "building upload form")
	}
	if _, err := io.Copy(part, file); err != nil {
		return nil, errors.Wrap(err, "reading upload file")
	}
	if err := mw.Close(); err != nil {
		return nil, errors.Wrap(err, "finalizing upload form")
	}

	req, err := http.NewRequestWithContext(ctx, http.MethodPost, api.c.url("/imports/upload", nil), &buf)
	if err != nil {
		return nil, errors.Wrap(err, "building request")
	}
	req.Header.Set("Content-Type", mw.FormDataContentType())
	req.Header.Set("Accept", "application/json")
	req.Header.Set("Authorization", "Bearer "+token)

	resp, err := api.c.http.Do(req)
	if err != nil {
		return nil, errors.Wrap(err, "network error")
	}
	defer resp.Body.Close()

	raw, err := io.ReadAll(resp.Body)
	if err != nil {
		return nil, errors.Wrap(err, "reading response")
	}
	var env envelope
	if err := json.Unmarshal(raw, &env); err != nil {
		return nil, errors.Wrap(err, "decoding response")
	}
	if env.Error != nil {
		return nil, &APIError{Status: resp.StatusCode, Message: env.Error.Message}
	}
	if !env.Success || resp.StatusCode >= 400 {
		return nil, &APIError{Status: resp.StatusCode, Message: env.Message, Fields: decodeFieldErrors(env.Data)}
	}
	var upload ImportUpload
	if err := json.Unmarshal(env.Data, &upload); err != nil {
		return nil, errors.Wrap(err, "decoding response data")
	}
	return &upload, nil
}

func (api *API) GetImportStatus(ctx context.Context, importID string) (*ImportStatus, error) {
	var status ImportStatus
	if err := api.get(ctx, "/imports/"+importID+"/status", nil, &status); err != nil {
		return nil, err
	}
	return &status, nil
}

func (api *API) GetImportErrors(ctx context.Context, importID string) ([]ImportRowError, error) {
	var rowErrs []ImportRowError
	if err := api.get(ctx, "/imports/"+importID+"/errors", nil, &rowErrs); err != nil {
		return nil, err
	}
	return rowErrs, nil
}

// DownloadImportTemplate streams the spreadsheet template into w.
func (api *API) DownloadImportTemplate(ctx context.Context, w io.Writer) error {
	token := api.ts.Token()
	if token == "" {
		return ErrAuthRequired
	}
	req, err := http.NewRequestWithContext(ctx, http.MethodGet, api.c.url("/imports/template", nil), nil)
	if err != nil {
		return errors.Wrap(err, "building request")
	}
	req.Header.Set("Authorization", "Bearer "+token)

	resp, err := api.c.http.Do(req)
	if err != nil {
		return errors.Wrap(err, "network error")
	}
	defer resp.Body.Close()
	if resp.StatusCode >= 400 {
		return &APIError{Status: resp.StatusCode, Message: http.StatusText(resp.StatusCode)}
	}
	_, err = io.Copy(w, resp.Body)
	return errors.Wrap(err, "downloading template")
}

// StreamImportProgress follows the server-push progress stream for a
// running import, invoking onMessage per event until the stream closes,
// the import finishes or ctx is cancelled. The stream authenticates via a
// token query parameter because the browser's EventSource cannot set
// headers; the backend expects the same here.
func (api *API) StreamImportProgress(ctx context.Context, importID string, onMessage func(ImportStatus)) error {
	token := api.ts.Token()
	if token == "" {
		return ErrAuthRequired
	}

	query := url.Values{"token": {token}}
	req, err := http.NewRequestWithContext(ctx, http.MethodGet, api.c.url("/imports/"+importID+"/stream", query), nil)
	if err != nil {
		return errors.Wrap(err, "building request")
	}
	req.Header.Set("Accept", "text/event-stream")

	// the stream outlives the regular request timeout
	httpc := &http.Client{}
	resp, err := httpc.Do(req)
	if err != nil {
		return errors.Wrap(err, "network error")
	}
	defer resp.Body.Close()
	if resp.StatusCode >= 400 {
		return &APIError{Status: resp.StatusCode, Message: http.StatusText(resp.StatusCode)}
	}

	scanner := bufio.NewScanner(resp.Body)
	scanner.Buffer(make([]byte, 0, 64*1024), 1024*1024)
	for scanner.Scan() {
		line := strings.TrimSpace(scanner.Text())
		if !strings.HasPrefix(line, "data:") {
			continue
		}
		payload := strings.TrimSpace(strings.TrimPrefix(line, "data:"))
		if payload == "" {
			continue
		}
		var status ImportStatus
		if err := json.Unmarshal([]byte(payload), &status); err != nil {
			api.c.log.Warn("imports: parsing stream event", err)
			continue
		}
		onMessage(status)
		if status.Done() {
			return nil
		}
	}
	if err := scanner.Err(); err != nil && ctx.Err() == nil {
		return errors.Wrap(err, "reading stream")
	}
	return nil
}
