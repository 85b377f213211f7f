package types

import (
	"go.mongodb.org/mongo-driver/bson/primitive"
)

const ACCOUNT_TYPE_EMAIL = "email"

type User struct {
	ID         primitive.ObjectID `bson:"_id,omitempty" json:"id"`
	Account    Account            `bson:"account" json:"account"`
	Timestamps Timestamps         `bson:"timestamps" json:"timestamps"`
}

type Account struct {
	Type      string `bson:"type" json:"type"`
	AccountID string `bson:"accountID" json:"accountID"`
	Password  string `bson:"password" json:"-"`
	Role      string `bson:"role" json:"role"`

	// Rate limiting
	FailedLoginAttempts []int64 `bson:"failedLoginAttempts" json:"-"`
}

type Timestamps struct {
	CreatedAt int64 `bson:"createdAt" json:"createdAt"`
	UpdatedAt int64 `bson:"updatedAt" json:"updatedAt"`
	LastLogin int64 `bson:"lastLogin" json:"lastLogin"`
}
