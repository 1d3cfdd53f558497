package models

import (
	"time"

	"go.mongodb.org/mongo-driver/bson/primitive"
)

// Finance record types.
const (
	FinanceIncome  = "income"
	FinanceExpense = "expense"
)

// FinanceRecord is a single bookkeeping entry. RecordID is a UUID exposed
// to clients, distinct from the storage key.
type FinanceRecord struct {
	ID          primitive.ObjectID `bson:"_id,omitempty" json:"id"`
	RecordID    string             `bson:"recordId" json:"recordId"`
	Type        string             `bson:"type" json:"type"`
	Amount      float64            `bson:"amount" json:"amount"`
	Description string             `bson:"description" json:"description"`
	RecordedAt  time.Time          `bson:"recordedAt" json:"recordedAt"`
}
