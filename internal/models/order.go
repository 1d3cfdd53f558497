package models

import (
	"time"

	"go.mongodb.org/mongo-driver/bson/primitive"

	"github.com/VenuriN/Online-Cake-ordering-management-system-sub000/internal/lifecycle"
	"github.com/VenuriN/Online-Cake-ordering-management-system-sub000/internal/pricing"
)

// Order defines the persisted cake order document. Field names are part of
// the wire contract read by the frontend, so the document stays flat. The
// embedded pricing breakdown is a snapshot computed once at creation and
// never recomputed; statusHistory is append-only.
type Order struct {
	ID          primitive.ObjectID `bson:"_id,omitempty" json:"id"`
	OrderNumber string             `bson:"orderNumber" json:"orderNumber"`
	UserID      primitive.ObjectID `bson:"userId" json:"userId"`

	CakeSize            string     `bson:"cakeSize" json:"cakeSize"`
	CakeShape           string     `bson:"cakeShape" json:"cakeShape"`
	Flavor              string     `bson:"flavor" json:"flavor"`
	Frosting            string     `bson:"frosting" json:"frosting"`
	Toppings            StringList `bson:"toppings" json:"toppings"`
	SpecialInstructions string     `bson:"specialInstructions,omitempty" json:"specialInstructions,omitempty"`

	Name            string    `bson:"name" json:"name"`
	Email           string    `bson:"email" json:"email"`
	Phone           string    `bson:"phone" json:"phone"`
	DeliveryDate    time.Time `bson:"deliveryDate" json:"deliveryDate"`
	DeliveryAddress string    `bson:"deliveryAddress" json:"deliveryAddress"`
	DeliveryCity    string    `bson:"deliveryCity" json:"deliveryCity"`

	pricing.Breakdown `bson:",inline"`

	Status        lifecycle.Status    `bson:"status" json:"status"`
	StatusHistory []lifecycle.Entry   `bson:"statusHistory" json:"statusHistory"`
	IsPaid        bool                `bson:"isPaid" json:"isPaid"`
	PaymentMethod string              `bson:"paymentMethod,omitempty" json:"paymentMethod,omitempty"`
	CourierID     *primitive.ObjectID `bson:"courierId,omitempty" json:"courierId,omitempty"`
	CreatedAt     time.Time           `bson:"createdAt" json:"createdAt"`
}
