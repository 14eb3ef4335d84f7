package model

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.mongodb.org/mongo-driver/bson"
	"go.mongodb.org/mongo-driver/bson/primitive"
)

func str(s string) *string { return &s }

func TestEmployeeDocumentHoldsOnlySubmittedKeys(t *testing.T) {
	doc := Employee{
		ID:             primitive.NewObjectID(),
		EmployeeNumber: str("100"),
		FirstName:      str("Jane"),
		Department:     str(""),
	}
	raw, err := bson.Marshal(doc)
	require.NoError(t, err)

	var stored bson.M
	require.NoError(t, bson.Unmarshal(raw, &stored))

	assert.Len(t, stored, 4)
	assert.Equal(t, "100", stored["employeeNumber"])
	assert.Equal(t, "Jane", stored["firstName"])
	// an empty but present value is kept
	assert.Equal(t, "", stored["department"])
	assert.NotContains(t, stored, "lastName")
	assert.NotContains(t, stored, "salary")
}

func TestEmployeeSalaryKeepsSubmittedType(t *testing.T) {
	for _, salary := range []any{"50000", 50000.0} {
		raw, err := bson.Marshal(Employee{ID: primitive.NewObjectID(), Salary: salary})
		require.NoError(t, err)

		var stored bson.M
		require.NoError(t, bson.Unmarshal(raw, &stored))
		assert.Equal(t, salary, stored["salary"])
	}
}
