package client

import (
	"context"
	"encoding/json"
	"net/url"
)

// Report payload shapes vary per chart/report; callers get the raw data
// plus the handful of fields every report shares.
type ExaminerSession struct {
	LecturerID   int    `json:"lecturer_id"`
	StudentName  string `json:"student_name"`
	Semester     int    `json:"semester"`
	AcademicYear string `json:"academic_year"`
	Role         string `json:"role,omitempty"`
}

type ReportLecturer struct {
	ID           int    `json:"id"`
	Name         string `json:"name"`
	Title        string `json:"title,omitempty"`
	Department   string `json:"department,omitempty"`
	SessionCount int    `json:"session_count,omitempty"`
}

// GetUniqueExaminers lists lecturers who served as examiners.
func (api *API) GetUniqueExaminers(ctx context.Context) ([]ReportLecturer, error) {
	var lecturers []ReportLecturer
	if err := api.get(ctx, "/reports/unique-examiners", nil, &lecturers); err != nil {
		return nil, err
	}
	return lecturers, nil
}

// GetExaminerSessions lists a lecturer's examiner sessions, optionally
// scoped to an academic year.
func (api *API) GetExaminerSessions(ctx context.Context, lecturerID, academicYear string) ([]ExaminerSession, error) {
	v := url.Values{"lecturer_id": {lecturerID}}
	if academicYear != "" {
		v.Set("academic_year", academicYear)
	}
	var sessions []ExaminerSession
	if err := api.get(ctx, "/reports/examiner-sessions", v, &sessions); err != nil {
		return nil, err
	}
	return sessions, nil
}

func (api *API) GetUniqueChairpersons(ctx context.Context) ([]ReportLecturer, error) {
	var lecturers []ReportLecturer
	if err := api.get(ctx, "/reports/unique-chairpersons", nil, &lecturers); err != nil {
		return nil, err
	}
	return lecturers, nil
}

func (api *API) GetChairpersonSessions(ctx context.Context, lecturerID, academicYear string) ([]ExaminerSession, error) {
	v := url.Values{"lecturer_id": {lecturerID}}
	if academicYear != "" {
		v.Set("academic_year", academicYear)
	}
	var sessions []ExaminerSession
	if err := api.get(ctx, "/reports/chairperson-sessions", v, &sessions); err != nil {
		return nil, err
	}
	return sessions, nil
}

// GetEvaluationChartData returns the chart payload as-is; its shape is
// chart-specific.
func (api *API) GetEvaluationChartData(ctx context.Context, academicYear string) (json.RawMessage, error) {
	var v url.Values
	if academicYear != "" {
		v = url.Values{"academic_year": {academicYear}}
	}
	var data json.RawMessage
	if err := api.get(ctx, "/reports/chart-data", v, &data); err != nil {
		return nil, err
	}
	return data, nil
}
