package models

import (
	"time"

	"go.mongodb.org/mongo-driver/bson/primitive"
)

// Addon is an admin-managed topping catalog entry shown by the options
// endpoint. The key ties it to the fixed pricing table, which remains the
// authority for fee computation; addon documents only control presentation
// and availability.
type Addon struct {
	ID        primitive.ObjectID `bson:"_id,omitempty" json:"id"`
	Key       string             `bson:"key" json:"key"`
	Label     string             `bson:"label" json:"label"`
	Price     float64            `bson:"price" json:"price"`
	IsActive  bool               `bson:"isActive" json:"isActive"`
	CreatedAt time.Time          `bson:"createdAt" json:"createdAt"`
}
