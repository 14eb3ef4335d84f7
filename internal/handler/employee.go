package handler

import (
	"context"
	"errors"
	"io"
	"net/http"

	"ems/config"
	"ems/internal/core"
	"ems/internal/dto"
	cErr "ems/internal/pkg/error"
	"ems/internal/pkg/response"
	"ems/internal/telemetry"

	"github.com/gin-gonic/gin"
	"github.com/gin-gonic/gin/binding"
	"go.uber.org/zap"
)

// EmployeeSubmitter stores one form submission.
type EmployeeSubmitter interface {
	Submit(ctx context.Context, submission *dto.EmployeeSubmissionDto) (*dto.SubmissionResultDto, error)
}

type EmployeeHandler struct {
	logger       *zap.Logger
	trace        *telemetry.Trace
	submitter    EmployeeSubmitter
	redirectPath string
}

func NewEmployeeHandler(
	logger *zap.Logger,
	trace *telemetry.Trace,
	config *config.Configuration,
	submitter EmployeeSubmitter,
) *EmployeeHandler {
	redirectPath := config.Submission.RedirectPath
	if redirectPath == "" {
		redirectPath = "/employee_management_system.html"
	}
	return &EmployeeHandler{
		logger:       logger,
		trace:        trace,
		submitter:    submitter,
		redirectPath: redirectPath,
	}
}

// Submit stores an employee record
// @Summary Submit the employee form
// @Description Stores the submitted fields as one new document and redirects to the confirmation page.
// @Tags Employee
// @Accept x-www-form-urlencoded
// @Accept json
// @Param employeeNumber formData string false "Employee number"
// @Param firstName formData string false "First name"
// @Param lastName formData string false "Last name"
// @Param department formData string false "Department"
// @Param accessLevel formData string false "Access level"
// @Param employmentStatus formData string false "Employment status"
// @Param salary formData string false "Salary"
// @Success 302 {string} string "redirect to the confirmation page"
// @Failure 400 {object} response.Response
// @Failure 429 {object} response.Response
// @Failure 500 {object} response.Response
// @Router /employee_management_system [post]
func (h *EmployeeHandler) Submit(c *gin.Context) {
	ctx, _, end := h.trace.WithSpan(c)

	submission, err := bindSubmission(c)
	if err != nil {
		appErr := cErr.ValidateErr(err.Error())
		var tooLarge *http.MaxBytesError
		if errors.As(err, &tooLarge) {
			appErr = cErr.PayloadTooLarge(err.Error())
		}
		end(appErr)
		response.AbortWithError(c, appErr)
		return
	}

	result, err := h.submitter.Submit(ctx, submission)
	if err != nil {
		end(err)
		response.AbortWithError(c, err)
		return
	}
	end(nil)

	h.logger.Info("Record Inserted Successfully",
		zap.String("id", result.ID),
		zap.Strings("flags", result.Flags),
		zap.String("requestId", core.RequestIDFromContext(ctx)),
	)
	c.Redirect(http.StatusFound, h.redirectPath)
}

// multipartMemory matches gin's default MaxMultipartMemory.
const multipartMemory = 32 << 20

// bindSubmission reads a JSON or flat form body. Keys the client did not send stay nil.
// Any other content type yields an empty submission. Forms are parsed up front so a
// truncated body is an error instead of a partial record.
func bindSubmission(c *gin.Context) (*dto.EmployeeSubmissionDto, error) {
	submission := &dto.EmployeeSubmissionDto{}
	switch c.ContentType() {
	case binding.MIMEJSON:
		if err := c.ShouldBindJSON(submission); err != nil && !errors.Is(err, io.EOF) {
			return nil, err
		}
	case binding.MIMEPOSTForm, binding.MIMEMultipartPOSTForm:
		if err := parseForm(c); err != nil {
			return nil, err
		}
		submission.EmployeeNumber = postForm(c, "employeeNumber")
		submission.FirstName = postForm(c, "firstName")
		submission.LastName = postForm(c, "lastName")
		submission.Department = postForm(c, "department")
		submission.AccessLevel = postForm(c, "accessLevel")
		submission.EmploymentStatus = postForm(c, "employmentStatus")
		if salary := postForm(c, "salary"); salary != nil {
			submission.Salary = *salary
		}
	}
	return submission, nil
}

func parseForm(c *gin.Context) error {
	if c.ContentType() == binding.MIMEMultipartPOSTForm {
		return c.Request.ParseMultipartForm(multipartMemory)
	}
	return c.Request.ParseForm()
}

func postForm(c *gin.Context, key string) *string {
	if value, ok := c.GetPostForm(key); ok {
		return &value
	}
	return nil
}
