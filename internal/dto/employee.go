package dto

import "ems/internal/pkg/request"

// EmployeeSubmissionDto is the form body of POST /employee_management_system.
// Absent keys stay nil; salary keeps whatever type the client sent.
type EmployeeSubmissionDto struct {
	EmployeeNumber   *string `json:"employeeNumber" form:"employeeNumber" validate:"required,min=1,max=32" example:"100"`
	FirstName        *string `json:"firstName" form:"firstName" validate:"required,min=1,max=100" example:"Jane"`
	LastName         *string `json:"lastName" form:"lastName" validate:"required,min=1,max=100" example:"Doe"`
	Department       *string `json:"department" form:"department" validate:"required,min=1,max=100" example:"IT"`
	AccessLevel      *string `json:"accessLevel" form:"accessLevel" validate:"required,min=1,max=50" example:"User"`
	EmploymentStatus *string `json:"employmentStatus" form:"employmentStatus" validate:"required,min=1,max=50" example:"Active"`
	Salary           any     `json:"salary" form:"salary" validate:"required,salary" swaggertype:"string" example:"50000"`
}

func (d *EmployeeSubmissionDto) GetMessages() request.ValidatorMessages {
	return request.ValidatorMessages{
		"employeeNumber.required":   "employeeNumber is required",
		"employeeNumber.min":        "employeeNumber must not be empty",
		"employeeNumber.max":        "employeeNumber must be at most 32 characters",
		"firstName.required":        "firstName is required",
		"lastName.required":         "lastName is required",
		"department.required":       "department is required",
		"accessLevel.required":      "accessLevel is required",
		"employmentStatus.required": "employmentStatus is required",
		"salary.required":           "salary is required",
		"salary.salary":             "salary must be a number",
	}
}

// FieldsPresent counts the submitted keys.
func (d *EmployeeSubmissionDto) FieldsPresent() int {
	n := 0
	for _, s := range []*string{d.EmployeeNumber, d.FirstName, d.LastName, d.Department, d.AccessLevel, d.EmploymentStatus} {
		if s != nil {
			n++
		}
	}
	if d.Salary != nil {
		n++
	}
	return n
}

// SubmissionResultDto is the outcome of a stored submission.
type SubmissionResultDto struct {
	ID    string   `json:"id"`
	Flags []string `json:"flags,omitempty"`
}
