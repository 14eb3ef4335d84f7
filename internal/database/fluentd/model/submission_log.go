package model

// SubmissionLog summarizes one form submission. Names and salary are never shipped.
type SubmissionLog struct {
	RequestID      string   `json:"request_id"`
	ProjectName    string   `json:"project_name,omitempty"`
	EmployeeNumber string   `json:"employee_number,omitempty"`
	Department     string   `json:"department,omitempty"`
	FieldsPresent  int      `json:"fields_present"`
	Outcome        string   `json:"outcome"`
	InsertedID     string   `json:"inserted_id,omitempty"`
	Flags          []string `json:"flags,omitempty"`
	Error          string   `json:"error,omitempty"`
	Version        string   `json:"version,omitempty"`
	LoggedAt       string   `json:"logged_at"`
}
