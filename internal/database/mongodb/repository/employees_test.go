package repository

import (
	"context"
	"testing"

	"ems/config"
	"ems/internal/database/mongodb/model"
	"ems/internal/telemetry"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.mongodb.org/mongo-driver/mongo"
	"go.mongodb.org/mongo-driver/mongo/integration/mtest"
)

func str(s string) *string { return &s }

func newTestTrace(t *testing.T) *telemetry.Trace {
	tr, _, err := telemetry.NewTrace(&config.Configuration{})
	require.NoError(t, err)
	return tr
}

func TestEmployeeRepositoryCreate(t *testing.T) {
	mt := mtest.New(t, mtest.NewOptions().ClientType(mtest.Mock))

	mt.Run("inserts one document and returns its id", func(mt *mtest.T) {
		repository := newEmployeeRepository(newTestTrace(t), mt.Coll)
		mt.AddMockResponses(mtest.CreateSuccessResponse())

		created, err := repository.Create(context.Background(), &model.Employee{
			EmployeeNumber: str("100"),
			FirstName:      str("Jane"),
			Salary:         "50000",
		})
		require.NoError(t, err)
		assert.False(t, created.ID.IsZero())
		assert.Equal(t, "100", *created.EmployeeNumber)
	})

	mt.Run("identical records get distinct ids", func(mt *mtest.T) {
		repository := newEmployeeRepository(newTestTrace(t), mt.Coll)
		mt.AddMockResponses(mtest.CreateSuccessResponse(), mtest.CreateSuccessResponse())

		first, err := repository.Create(context.Background(), &model.Employee{EmployeeNumber: str("100")})
		require.NoError(t, err)
		second, err := repository.Create(context.Background(), &model.Employee{EmployeeNumber: str("100")})
		require.NoError(t, err)
		assert.NotEqual(t, first.ID, second.ID)
	})

	mt.Run("surfaces write errors", func(mt *mtest.T) {
		repository := newEmployeeRepository(newTestTrace(t), mt.Coll)
		mt.AddMockResponses(mtest.CreateWriteErrorsResponse(mtest.WriteError{
			Index:   0,
			Code:    121,
			Message: "Document failed validation",
		}))

		created, err := repository.Create(context.Background(), &model.Employee{EmployeeNumber: str("100")})
		assert.Nil(t, created)
		var writeErr mongo.WriteException
		assert.ErrorAs(t, err, &writeErr)
	})

	mt.Run("surfaces command errors", func(mt *mtest.T) {
		repository := newEmployeeRepository(newTestTrace(t), mt.Coll)
		mt.AddMockResponses(mtest.CreateCommandErrorResponse(mtest.CommandError{
			Code:    13,
			Name:    "Unauthorized",
			Message: "not authorized on ems to execute command",
		}))

		_, err := repository.Create(context.Background(), &model.Employee{})
		assert.Error(t, err)
	})
}
