package models

import (
	"time"

	"go.mongodb.org/mongo-driver/bson/primitive"
)

// Courier is a delivery staff profile. UserID links the profile to a login
// account with the courier role so the courier endpoints can resolve their
// assigned orders.
type Courier struct {
	ID          primitive.ObjectID  `bson:"_id,omitempty" json:"id"`
	Name        string              `bson:"name" json:"name"`
	Phone       string              `bson:"phone" json:"phone"`
	Vehicle     string              `bson:"vehicle,omitempty" json:"vehicle,omitempty"`
	IsAvailable bool                `bson:"isAvailable" json:"isAvailable"`
	UserID      *primitive.ObjectID `bson:"userId,omitempty" json:"userId,omitempty"`
	CreatedAt   time.Time           `bson:"createdAt" json:"createdAt"`
}
