package api

// ErrorResponse represents an error response
type ErrorResponse struct {
	Error          string   `json:"error"`
	Kind           string   `json:"kind,omitempty"`
	Details        string   `json:"details,omitempty"`
	AcceptedFields []string `json:"accepted_fields,omitempty"`
}
