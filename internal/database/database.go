package database

import (
	client "ems/internal/database/client"
	fluentdRepo "ems/internal/database/fluentd/repository"
	mongoRepo "ems/internal/database/mongodb/repository"
	redisRepo "ems/internal/database/redis/repository"

	"github.com/google/wire"
)

// ProviderSet wires every store client and repository.
var ProviderSet = wire.NewSet(
	client.NewMongoClient,
	client.NewRedisClient,
	client.NewFluentdClient,
	mongoRepo.ProviderSet,
	redisRepo.ProviderSet,
	fluentdRepo.ProviderSet,
)
