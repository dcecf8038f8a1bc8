package client

import (
	"context"
	"fmt"
	"time"
)

type Student struct {
	ID               int        `json:"id"`
	Name             string     `json:"name"`
	Email            string     `json:"email"`
	MatricNumber     string     `json:"matric_number"`
	ProgramID        int        `json:"program_id"`
	CurrentSemester  string     `json:"current_semester"`
	Department       string     `json:"department"`
	Country          *string    `json:"country"`
	MainSupervisorID int        `json:"main_supervisor_id"`
	EvaluationType   string     `json:"evaluation_type"`
	ResearchTitle    *string    `json:"research_title"`
	CreatedAt        *time.Time `json:"created_at,omitempty"`
	UpdatedAt        *time.Time `json:"updated_at,omitempty"`
	DeletedAt        *time.Time `json:"deleted_at,omitempty"`

	Program        *Program     `json:"program,omitempty"`
	MainSupervisor *Lecturer    `json:"main_supervisor,omitempty"`
	CoSupervisors  []Lecturer   `json:"co_supervisors,omitempty"`
	Evaluations    []Evaluation `json:"evaluations,omitempty"`
}

// NewStudent is the create/update payload.
type NewStudent struct {
	Name             string  `json:"name"`
	Email            string  `json:"email"`
	MatricNumber     string  `json:"matric_number"`
	ProgramID        int     `json:"program_id"`
	CurrentSemester  string  `json:"current_semester"`
	Department       string  `json:"department"`
	Country          *string `json:"country,omitempty"`
	MainSupervisorID int     `json:"main_supervisor_id"`
	EvaluationType   string  `json:"evaluation_type"`
	ResearchTitle    *string `json:"research_title,omitempty"`
	CoSupervisorIDs  []int   `json:"co_supervisor_ids,omitempty"`
}

type studentPage struct {
	Pagination
	Data []Student `json:"data"`
}

func (api *API) GetStudents(ctx context.Context, opts ListOptions) ([]Student, *Pagination, error) {
	var page studentPage
	if err := api.get(ctx, "/students", opts.query("perPage"), &page); err != nil {
		return nil, nil, err
	}
	return page.Data, &page.Pagination, nil
}

func (api *API) GetStudent(ctx context.Context, id int) (*Student, error) {
	var student Student
	if err := api.get(ctx, fmt.Sprintf("/students/%d", id), nil, &student); err != nil {
		return nil, err
	}
	return &student, nil
}

func (api *API) CreateStudent(ctx context.Context, payload NewStudent) (*Student, error) {
	var student Student
	if err := api.post(ctx, "/students", payload, &student); err != nil {
		return nil, err
	}
	return &student, nil
}

func (api *API) UpdateStudent(ctx context.Context, id int, payload NewStudent) (*Student, error) {
	var student Student
	if err := api.put(ctx, fmt.Sprintf("/students/%d", id), payload, &student); err != nil {
		return nil, err
	}
	return &student, nil
}

func (api *API) DeleteStudent(ctx context.Context, id int) error {
	return api.delete(ctx, fmt.Sprintf("/students/%d", id))
}
