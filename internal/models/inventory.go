package models

import (
	"time"

	"go.mongodb.org/mongo-driver/bson/primitive"
)

// InventoryItem tracks a baking ingredient or supply.
type InventoryItem struct {
	ID                primitive.ObjectID `bson:"_id,omitempty" json:"id"`
	Name              string             `bson:"name" json:"name"`
	Quantity          float64            `bson:"quantity" json:"quantity"`
	Unit              string             `bson:"unit" json:"unit"`
	LowStockThreshold float64            `bson:"lowStockThreshold" json:"lowStockThreshold"`
	UpdatedAt         time.Time          `bson:"updatedAt" json:"updatedAt"`
}

// IsLowStock reports whether the item has fallen to or below its threshold.
func (i InventoryItem) IsLowStock() bool {
	return i.Quantity <= i.LowStockThreshold
}
