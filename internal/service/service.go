package service

import (
	"ems/internal/database/fluentd/repository"
	mongoRepository "ems/internal/database/mongodb/repository"

	"github.com/google/wire"
)

var ProviderSet = wire.NewSet(
	NewHealthService,
	NewEmployeeService,
	wire.Bind(new(EmployeeStore), new(*mongoRepository.EmployeeRepository)),
	wire.Bind(new(SubmissionLogger), new(*repository.LogRepository)),
)
