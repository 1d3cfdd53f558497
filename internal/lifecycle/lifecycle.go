package lifecycle

import (
	"errors"
	"time"
)

// Status is an order lifecycle state.
type Status string

const (
	StatusPending    Status = "pending"
	StatusAccepted   Status = "accepted"
	StatusPreparing  Status = "preparing"
	StatusReady      Status = "ready"
	StatusDispatched Status = "dispatched"
	StatusDelivered  Status = "delivered"
	StatusCancelled  Status = "cancelled"
)

var (
	ErrUnknownStatus  = errors.New("unknown order status")
	ErrNotCancellable = errors.New("order can no longer be cancelled")
	ErrNotAllowed     = errors.New("status transition not allowed")
)

// All lifecycle states, in nominal progression order.
var All = []Status{
	StatusPending,
	StatusAccepted,
	StatusPreparing,
	StatusReady,
	StatusDispatched,
	StatusDelivered,
	StatusCancelled,
}

// adminTransitions encodes which target states an admin may move an order
// into from each current state. Admins may jump between any pair of states,
// including out of delivered and cancelled; the permissiveness is deliberate
// and kept explicit here so tightening it later is a data change, not a
// code change.
var adminTransitions = map[Status][]Status{
	StatusPending:    {StatusPending, StatusAccepted, StatusPreparing, StatusReady, StatusDispatched, StatusDelivered, StatusCancelled},
	StatusAccepted:   {StatusPending, StatusAccepted, StatusPreparing, StatusReady, StatusDispatched, StatusDelivered, StatusCancelled},
	StatusPreparing:  {StatusPending, StatusAccepted, StatusPreparing, StatusReady, StatusDispatched, StatusDelivered, StatusCancelled},
	StatusReady:      {StatusPending, StatusAccepted, StatusPreparing, StatusReady, StatusDispatched, StatusDelivered, StatusCancelled},
	StatusDispatched: {StatusPending, StatusAccepted, StatusPreparing, StatusReady, StatusDispatched, StatusDelivered, StatusCancelled},
	StatusDelivered:  {StatusPending, StatusAccepted, StatusPreparing, StatusReady, StatusDispatched, StatusDelivered, StatusCancelled},
	StatusCancelled:  {StatusPending, StatusAccepted, StatusPreparing, StatusReady, StatusDispatched, StatusDelivered, StatusCancelled},
}

// courierTransitions limits delivery staff to the hand-off legs of the
// lifecycle.
var courierTransitions = map[Status][]Status{
	StatusReady:      {StatusDispatched},
	StatusDispatched: {StatusDelivered},
}

// Entry is one record in an order's append-only status history.
type Entry struct {
	Status    Status    `bson:"status" json:"status"`
	Timestamp time.Time `bson:"timestamp" json:"timestamp"`
	Note      string    `bson:"note,omitempty" json:"note,omitempty"`
}

var defaultNotes = map[Status]string{
	StatusPending:    "Order placed",
	StatusAccepted:   "Order accepted",
	StatusPreparing:  "Cake preparation started",
	StatusReady:      "Cake ready for delivery",
	StatusDispatched: "Out for delivery",
	StatusDelivered:  "Delivered",
	StatusCancelled:  "Order cancelled",
}

// NewEntry builds a history entry stamped now. An empty note falls back to
// the default note for the status.
func NewEntry(s Status, note string) Entry {
	if note == "" {
		note = defaultNotes[s]
	}
	return Entry{Status: s, Timestamp: time.Now(), Note: note}
}

// Parse validates a raw status string against the enumerated set.
func Parse(raw string) (Status, error) {
	s := Status(raw)
	for _, known := range All {
		if s == known {
			return s, nil
		}
	}
	return "", ErrUnknownStatus
}

// CustomerCancel checks the customer-side cancel guard: only a pending
// order may be cancelled by its owner.
func CustomerCancel(current Status) error {
	if current != StatusPending {
		return ErrNotCancellable
	}
	return nil
}

// AdminTransition validates an admin-initiated move from current to target.
func AdminTransition(current, target Status) error {
	return transition(adminTransitions, current, target)
}

// CourierTransition validates a delivery-staff move from current to target.
func CourierTransition(current, target Status) error {
	return transition(courierTransitions, current, target)
}

func transition(table map[Status][]Status, current, target Status) error {
	if _, err := Parse(string(target)); err != nil {
		return err
	}
	for _, allowed := range table[current] {
		if allowed == target {
			return nil
		}
	}
	return ErrNotAllowed
}
