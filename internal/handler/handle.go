package handler

import (
	"ems/internal/service"

	"github.com/google/wire"
)

// ProviderSet wires the HTTP handlers.
var ProviderSet = wire.NewSet(
	NewEmployeeHandler,
	NewPageHandler,
	NewHealthHandler,
	wire.Bind(new(EmployeeSubmitter), new(*service.EmployeeService)),
)
