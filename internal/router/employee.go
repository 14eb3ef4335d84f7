package router

import (
	"ems/internal/handler"
	"ems/internal/middleware"

	"github.com/gin-gonic/gin"
)

type EmployeeRouter struct {
	employeeHandler     *handler.EmployeeHandler
	pageHandler         *handler.PageHandler
	ratelimitMiddleware *middleware.RateLimit
}

func NewEmployeeRouter(
	employeeHandler *handler.EmployeeHandler,
	pageHandler *handler.PageHandler,
	ratelimitMiddleware *middleware.RateLimit,
) *EmployeeRouter {
	return &EmployeeRouter{
		employeeHandler:     employeeHandler,
		pageHandler:         pageHandler,
		ratelimitMiddleware: ratelimitMiddleware,
	}
}

func (er *EmployeeRouter) RegisterRoutes(r *gin.Engine) {
	r.GET("/", er.pageHandler.Root)
	r.POST("/employee_management_system",
		er.ratelimitMiddleware.Guard(),
		er.employeeHandler.Submit,
	)
}
