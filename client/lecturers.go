package client

import (
	"context"
	"fmt"
	"net/url"
	"strconv"
	"time"

	"github.com/SatuPadu/fses-client/core/session"
)

type Lecturer struct {
	ID                  int           `json:"id"`
	Name                string        `json:"name"`
	Email               string        `json:"email"`
	Title               string        `json:"title"`
	Phone               *string       `json:"phone"`
	Department          string        `json:"department"`
	IsFromFAI           bool          `json:"is_from_fai"`
	ExternalInstitution *string       `json:"external_institution"`
	Specialization      *string       `json:"specialization"`
	UserID              *int          `json:"user_id"`
	StaffNumber         *string       `json:"staff_number"`
	CreatedAt           *time.Time    `json:"created_at,omitempty"`
	UpdatedAt           *time.Time    `json:"updated_at,omitempty"`
	DeletedAt           *time.Time    `json:"deleted_at,omitempty"`
	User                *session.User `json:"user,omitempty"`
}

// NewLecturer is the create/update payload.
type NewLecturer struct {
	Name                string  `json:"name"`
	Email               string  `json:"email"`
	Title               string  `json:"title"`
	Phone               *string `json:"phone,omitempty"`
	Department          string  `json:"department"`
	IsFromFAI           bool    `json:"is_from_fai"`
	ExternalInstitution *string `json:"external_institution,omitempty"`
	Specialization      *string `json:"specialization,omitempty"`
}

type lecturerPage struct {
	Pagination
	Data []Lecturer `json:"data"`
}

func (api *API) GetLecturers(ctx context.Context, opts ListOptions) ([]Lecturer, *Pagination, error) {
	var page lecturerPage
	if err := api.get(ctx, "/lecturers", opts.query("perPage"), &page); err != nil {
		return nil, nil, err
	}
	return page.Data, &page.Pagination, nil
}

// GetAllLecturers fetches the full unpaginated list.
func (api *API) GetAllLecturers(ctx context.Context) ([]Lecturer, error) {
	v := url.Values{"all": {"true"}}
	var lecturers []Lecturer
	if err := api.get(ctx, "/lecturers", v, &lecturers); err != nil {
		return nil, err
	}
	return lecturers, nil
}

func (api *API) GetLecturer(ctx context.Context, id int) (*Lecturer, error) {
	var lecturer Lecturer
	if err := api.get(ctx, fmt.Sprintf("/lecturers/%d", id), nil, &lecturer); err != nil {
		return nil, err
	}
	return &lecturer, nil
}

func (api *API) CreateLecturer(ctx context.Context, payload NewLecturer) (*Lecturer, error) {
	var lecturer Lecturer
	if err := api.post(ctx, "/lecturers", payload, &lecturer); err != nil {
		return nil, err
	}
	return &lecturer, nil
}

func (api *API) UpdateLecturer(ctx context.Context, id int, payload NewLecturer) (*Lecturer, error) {
	var lecturer Lecturer
	if err := api.put(ctx, fmt.Sprintf("/lecturers/%d", id), payload, &lecturer); err != nil {
		return nil, err
	}
	return &lecturer, nil
}

func (api *API) DeleteLecturer(ctx context.Context, id int) error {
	return api.delete(ctx, fmt.Sprintf("/lecturers/%d", id))
}

// GetSupervisorSuggestions lists lecturers fit to supervise in a department.
func (api *API) GetSupervisorSuggestions(ctx context.Context, department string) ([]Lecturer, error) {
	v := url.Values{"department": {department}}
	var lecturers []Lecturer
	if err := api.get(ctx, "/lecturers/supervisor-suggestions", v, &lecturers); err != nil {
		return nil, err
	}
	return lecturers, nil
}

// GetCoSupervisorSuggestions lists co-supervisor candidates compatible with
// the chosen main supervisor.
func (api *API) GetCoSupervisorSuggestions(ctx context.Context, supervisorID int) ([]Lecturer, error) {
	v := url.Values{"supervisor_id": {strconv.Itoa(supervisorID)}}
	var lecturers []Lecturer
	if err := api.get(ctx, "/lecturers/co-supervisor-suggestions", v, &lecturers); err != nil {
		return nil, err
	}
	return lecturers, nil
}
