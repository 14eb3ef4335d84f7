package model

import (
	"go.mongodb.org/mongo-driver/bson"
	"go.mongodb.org/mongo-driver/bson/primitive"
	"go.mongodb.org/mongo-driver/mongo"
	"go.mongodb.org/mongo-driver/mongo/options"
)

// Employee is one stored form submission. Nil fields are left out of the document,
// so a record holds exactly the keys the client sent. Salary is stored as sent.
type Employee struct {
	ID               primitive.ObjectID `json:"id" bson:"_id"`
	EmployeeNumber   *string            `json:"employeeNumber,omitempty" bson:"employeeNumber,omitempty"`
	FirstName        *string            `json:"firstName,omitempty" bson:"firstName,omitempty"`
	LastName         *string            `json:"lastName,omitempty" bson:"lastName,omitempty"`
	Department       *string            `json:"department,omitempty" bson:"department,omitempty"`
	AccessLevel      *string            `json:"accessLevel,omitempty" bson:"accessLevel,omitempty"`
	EmploymentStatus *string            `json:"employmentStatus,omitempty" bson:"employmentStatus,omitempty"`
	Salary           any                `json:"salary,omitempty" bson:"salary,omitempty"`
}

// EmployeeIndexes are lookup helpers only; employee numbers are not unique.
var EmployeeIndexes = []mongo.IndexModel{
	{
		Keys:    bson.D{{Key: "employeeNumber", Value: 1}},
		Options: options.Index().SetName("idx_employeeNumber"),
	},
	{
		Keys:    bson.D{{Key: "department", Value: 1}, {Key: "employmentStatus", Value: 1}},
		Options: options.Index().SetName("idx_department_employmentStatus"),
	},
}
