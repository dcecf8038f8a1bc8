package client

import (
	"context"
	"fmt"
	"net/url"
	"time"
)

type Program struct {
	ID                 int        `json:"id"`
	ProgramName        string     `json:"program_name"`
	ProgramCode        string     `json:"program_code"`
	Department         string     `json:"department"`
	TotalSemesters     int        `json:"total_semesters"`
	EvaluationSemester int        `json:"evaluation_semester"`
	CreatedAt          *time.Time `json:"created_at,omitempty"`
	UpdatedAt          *time.Time `json:"updated_at,omitempty"`
	DeletedAt          *time.Time `json:"deleted_at,omitempty"`
	Students           []Student  `json:"students,omitempty"`
}

// NewProgram is the create/update payload.
type NewProgram struct {
	ProgramName        string `json:"program_name"`
	ProgramCode        string `json:"program_code"`
	Department         string `json:"department"`
	TotalSemesters     int    `json:"total_semesters"`
	EvaluationSemester int    `json:"evaluation_semester"`
}

type programPage struct {
	Pagination
	Data []Program `json:"data"`
}

func (api *API) GetPrograms(ctx context.Context, opts ListOptions) ([]Program, *Pagination, error) {
	var page programPage
	if err := api.get(ctx, "/programs", opts.query("perPage"), &page); err != nil {
		return nil, nil, err
	}
	return page.Data, &page.Pagination, nil
}

// GetAllPrograms fetches the full unpaginated list, optionally scoped to a
// department.
func (api *API) GetAllPrograms(ctx context.Context, department string) ([]Program, error) {
	v := url.Values{"all": {"true"}}
	if department != "" {
		v.Set("department", department)
	}
	var programs []Program
	if err := api.get(ctx, "/programs", v, &programs); err != nil {
		return nil, err
	}
	return programs, nil
}

func (api *API) GetProgram(ctx context.Context, id int) (*Program, error) {
	var program Program
	if err := api.get(ctx, fmt.Sprintf("/programs/%d", id), nil, &program); err != nil {
		return nil, err
	}
	return &program, nil
}

func (api *API) CreateProgram(ctx context.Context, payload NewProgram) (*Program, error) {
	var program Program
	if err := api.post(ctx, "/programs", payload, &program); err != nil {
		return nil, err
	}
	return &program, nil
}

func (api *API) UpdateProgram(ctx context.Context, id int, payload NewProgram) (*Program, error) {
	var program Program
	if err := api.put(ctx, fmt.Sprintf("/programs/%d", id), payload, &program); err != nil {
		return nil, err
	}
	return &program, nil
}

func (api *API) DeleteProgram(ctx context.Context, id int) error {
	return api.delete(ctx, fmt.Sprintf("/programs/%d", id))
}
