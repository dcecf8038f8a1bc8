package client

import (
	"context"
	"fmt"
	"time"
)

// Nomination statuses
const (
	NominationPending   = "Pending"
	NominationNominated = "Nominated"
	NominationLocked    = "Locked"
	NominationPostponed = "Postponed"
)

type Examiner struct {
	ID                  int     `json:"id"`
	Name                string  `json:"name"`
	Title               string  `json:"title"`
	Email               string  `json:"email"`
	IsFromFAI           bool    `json:"is_from_fai"`
	ExternalInstitution *string `json:"external_institution,omitempty"`
	Department          *string `json:"department,omitempty"`
	Specialization      *string `json:"specialization,omitempty"`
	Phone               *string `json:"phone,omitempty"`
}

type Evaluation struct {
	ID                 int        `json:"id"`
	StudentID          int        `json:"student_id"`
	NominationStatus   string     `json:"nomination_status"`
	Examiner1ID        *int       `json:"examiner1_id"`
	Examiner2ID        *int       `json:"examiner2_id"`
	Examiner3ID        *int       `json:"examiner3_id"`
	ChairpersonID      *int       `json:"chairperson_id"`
	IsAutoAssigned     bool       `json:"is_auto_assigned"`
	NominatedBy        *int       `json:"nominated_by"`
	NominatedAt        *time.Time `json:"nominated_at"`
	LockedBy           *int       `json:"locked_by"`
	LockedAt           *time.Time `json:"locked_at"`
	Semester           int        `json:"semester"`
	AcademicYear       string     `json:"academic_year"`
	IsPostponed        bool       `json:"is_postponed"`
	PostponementReason *string    `json:"postponement_reason"`
	PostponedTo        *string    `json:"postponed_to"`

	Student     *Student  `json:"student,omitempty"`
	Examiner1   *Lecturer `json:"examiner1,omitempty"`
	Examiner2   *Lecturer `json:"examiner2,omitempty"`
	Examiner3   *Lecturer `json:"examiner3,omitempty"`
	Chairperson *Lecturer `json:"chairperson,omitempty"`
}

type Nomination struct {
	ID                 int        `json:"id"`
	Student            Student    `json:"student"`
	NominationStatus   string     `json:"nomination_status"`
	Examiner1          *Examiner  `json:"examiner1,omitempty"`
	Examiner2          *Examiner  `json:"examiner2,omitempty"`
	Examiner3          *Examiner  `json:"examiner3,omitempty"`
	Semester           int        `json:"semester"`
	AcademicYear       string     `json:"academic_year"`
	IsPostponed        bool       `json:"is_postponed"`
	PostponementReason *string    `json:"postponement_reason,omitempty"`
	PostponedTo        *string    `json:"postponed_to,omitempty"`
	NominatedAt        *time.Time `json:"nominated_at,omitempty"`
	LockedAt           *time.Time `json:"locked_at,omitempty"`
}

type CreateNomination struct {
	StudentID    int    `json:"student_id"`
	Semester     int    `json:"semester"`
	AcademicYear string `json:"academic_year"`
	Examiner1ID  *int   `json:"examiner1_id,omitempty"`
	Examiner2ID  *int   `json:"examiner2_id,omitempty"`
	Examiner3ID  *int   `json:"examiner3_id,omitempty"`
}

type UpdateNomination struct {
	Semester     *int   `json:"semester,omitempty"`
	AcademicYear string `json:"academic_year,omitempty"`
	Examiner1ID  *int   `json:"examiner1_id,omitempty"`
	Examiner2ID  *int   `json:"examiner2_id,omitempty"`
	Examiner3ID  *int   `json:"examiner3_id,omitempty"`
}

type PostponeNomination struct {
	Reason      string `json:"reason"`
	PostponedTo string `json:"postponed_to"`
}

// AssignChairperson binds a chairperson to evaluations.
type AssignChairperson struct {
	EvaluationIDs []int `json:"evaluation_ids"`
	ChairpersonID int   `json:"chairperson_id"`
}

type nominationPage struct {
	Pagination
	Data []Nomination `json:"data"`
}

func (api *API) GetNominations(ctx context.Context, opts ListOptions) ([]Nomination, *Pagination, error) {
	var page nominationPage
	if err := api.get(ctx, "/evaluations/nominations", opts.query("per_page"), &page); err != nil {
		return nil, nil, err
	}
	return page.Data, &page.Pagination, nil
}

func (api *API) CreateNomination(ctx context.Context, payload CreateNomination) (*Nomination, error) {
	var nom Nomination
	if err := api.post(ctx, "/evaluations/nominations", payload, &nom); err != nil {
		return nil, err
	}
	return &nom, nil
}

func (api *API) UpdateNomination(ctx context.Context, id int, payload UpdateNomination) (*Nomination, error) {
	var nom Nomination
	if err := api.put(ctx, fmt.Sprintf("/evaluations/nominations/%d", id), payload, &nom); err != nil {
		return nil, err
	}
	return &nom, nil
}

func (api *API) PostponeNomination(ctx context.Context, id int, payload PostponeNomination) (*Nomination, error) {
	var nom Nomination
	if err := api.post(ctx, fmt.Sprintf("/evaluations/nominations/%d/postpone", id), payload, &nom); err != nil {
		return nil, err
	}
	return &nom, nil
}

// LockNomination finalizes one nomination; no further examiner changes are
// accepted after this.
func (api *API) LockNomination(ctx context.Context, id int) (*Nomination, error) {
	var nom Nomination
	if err := api.post(ctx, fmt.Sprintf("/evaluations/nominations/%d/lock", id), nil, &nom); err != nil {
		return nil, err
	}
	return &nom, nil
}

// LockNominations locks a batch in one call.
func (api *API) LockNominations(ctx context.Context, ids []int) error {
	body := map[string][]int{"nomination_ids": ids}
	return api.post(ctx, "/evaluations/nominations/lock", body, nil)
}

// GetExaminerSuggestions suggests candidates for an examiner slot (1-3).
func (api *API) GetExaminerSuggestions(ctx context.Context, slot, studentID int) ([]Examiner, error) {
	var examiners []Examiner
	path := fmt.Sprintf("/examiner-suggestions/examiner%d/%d", slot, studentID)
	if err := api.get(ctx, path, nil, &examiners); err != nil {
		return nil, err
	}
	return examiners, nil
}

func (api *API) GetAcademicYears(ctx context.Context) ([]string, error) {
	var years []string
	if err := api.get(ctx, "/academic-years", nil, &years); err != nil {
		return nil, err
	}
	return years, nil
}

func (api *API) GetChairpersonSuggestions(ctx context.Context) ([]Examiner, error) {
	var chairs []Examiner
	if err := api.get(ctx, "/evaluations/assignments/chairperson-suggestions", nil, &chairs); err != nil {
		return nil, err
	}
	return chairs, nil
}

func (api *API) AssignChairperson(ctx context.Context, payload AssignChairperson) error {
	return api.post(ctx, "/evaluations/assignments", payload, nil)
}
