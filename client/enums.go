package client

import "context"

// Enums is the backend's lookup data for dropdowns and labels.
type Enums struct {
	Departments      map[string]string `json:"departments"`
	Titles           map[string]string `json:"titles"`
	Roles            map[string]string `json:"roles"`
	NominationStatus map[string]string `json:"nominationStatus"`
	EvaluationTypes  map[string]string `json:"evaluationTypes"`
}

func (api *API) GetEnums(ctx context.Context) (*Enums, error) {
	var enums Enums
	if err := api.get(ctx, "/enums", nil, &enums); err != nil {
		return nil, err
	}
	return &enums, nil
}
