package repository

import (
	"context"
	"fmt"
	"time"

	"ems/internal/core"
	client "ems/internal/database/client"
	"ems/internal/database/mongodb/model"
	"ems/internal/telemetry"

	"go.mongodb.org/mongo-driver/bson/primitive"
	"go.mongodb.org/mongo-driver/mongo"
	"go.uber.org/zap"
)

type EmployeeRepository struct {
	trace      *telemetry.Trace
	collection *mongo.Collection
}

func NewEmployeeRepository(logger *zap.Logger, trace *telemetry.Trace, mongoClient *client.MongoClient) *EmployeeRepository {
	repository := newEmployeeRepository(trace, mongoClient.Database().Collection(string(core.MongoCollectionEmployees)))

	// indexes are best effort; the server may be down at boot
	go func() {
		ctx, cancel := context.WithTimeout(context.Background(), 30*time.Second)
		defer cancel()
		if err := repository.ensureIndexes(ctx); err != nil {
			logger.Warn("ensure employees indexes failed", zap.Error(err))
		}
	}()
	return repository
}

func newEmployeeRepository(trace *telemetry.Trace, collection *mongo.Collection) *EmployeeRepository {
	return &EmployeeRepository{trace: trace, collection: collection}
}

func (repository *EmployeeRepository) ensureIndexes(ctx context.Context) error {
	_, err := repository.collection.Indexes().CreateMany(ctx, model.EmployeeIndexes)
	return err
}

// Create performs exactly one insert-one. Identical records produce distinct documents.
func (repository *EmployeeRepository) Create(contextValue context.Context, employee *model.Employee) (_ *model.Employee, returnedError error) {
	contextValue, _, endSpan := repository.trace.WithSpan(contextValue)
	defer func() { endSpan(returnedError) }()

	if employee.ID.IsZero() {
		employee.ID = primitive.NewObjectID()
	}

	insertResult, insertError := repository.collection.InsertOne(contextValue, employee)
	if insertError != nil {
		return nil, insertError
	}
	objectID, ok := insertResult.InsertedID.(primitive.ObjectID)
	if !ok {
		return nil, fmt.Errorf("unexpected InsertedID type: %T", insertResult.InsertedID)
	}
	employee.ID = objectID
	return employee, nil
}
