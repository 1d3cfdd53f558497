package lifecycle

import (
	"errors"
	"testing"
)

func TestParseAcceptsAllSevenStatuses(t *testing.T) {
	for _, s := range All {
		parsed, err := Parse(string(s))
		if err != nil {
			t.Errorf("Parse(%q) returned error: %v", s, err)
		}
		if parsed != s {
			t.Errorf("Parse(%q) = %q", s, parsed)
		}
	}
	if len(All) != 7 {
		t.Fatalf("expected 7 statuses, got %d", len(All))
	}
}

func TestParseRejectsUnknownStatus(t *testing.T) {
	for _, raw := range []string{"", "shipped", "PENDING", "done"} {
		if _, err := Parse(raw); !errors.Is(err, ErrUnknownStatus) {
			t.Errorf("Parse(%q): expected ErrUnknownStatus, got %v", raw, err)
		}
	}
}

func TestCustomerCancelOnlyFromPending(t *testing.T) {
	if err := CustomerCancel(StatusPending); err != nil {
		t.Fatalf("cancel from pending should succeed, got %v", err)
	}
	for _, s := range All {
		if s == StatusPending {
			continue
		}
		if err := CustomerCancel(s); !errors.Is(err, ErrNotCancellable) {
			t.Errorf("cancel from %q: expected ErrNotCancellable, got %v", s, err)
		}
	}
}

func TestAdminTransitionAllowsAnyPair(t *testing.T) {
	for _, from := range All {
		for _, to := range All {
			if err := AdminTransition(from, to); err != nil {
				t.Errorf("admin %q -> %q: unexpected error %v", from, to, err)
			}
		}
	}
}

func TestAdminTransitionRejectsUnknownTarget(t *testing.T) {
	if err := AdminTransition(StatusPending, Status("shipped")); !errors.Is(err, ErrUnknownStatus) {
		t.Fatalf("expected ErrUnknownStatus, got %v", err)
	}
}

func TestCourierTransitionLimitedToHandoffLegs(t *testing.T) {
	if err := CourierTransition(StatusReady, StatusDispatched); err != nil {
		t.Fatalf("ready -> dispatched should be allowed, got %v", err)
	}
	if err := CourierTransition(StatusDispatched, StatusDelivered); err != nil {
		t.Fatalf("dispatched -> delivered should be allowed, got %v", err)
	}

	denied := []struct{ from, to Status }{
		{StatusPending, StatusDispatched},
		{StatusReady, StatusDelivered},
		{StatusDispatched, StatusCancelled},
		{StatusDelivered, StatusDispatched},
	}
	for _, tc := range denied {
		if err := CourierTransition(tc.from, tc.to); !errors.Is(err, ErrNotAllowed) {
			t.Errorf("courier %q -> %q: expected ErrNotAllowed, got %v", tc.from, tc.to, err)
		}
	}
}

func TestNewEntryDefaultsNote(t *testing.T) {
	entry := NewEntry(StatusCancelled, "")
	if entry.Note != "Order cancelled" {
		t.Fatalf("expected default note, got %q", entry.Note)
	}
	if entry.Timestamp.IsZero() {
		t.Fatal("expected timestamp to be set")
	}

	entry = NewEntry(StatusCancelled, "Cancelled by customer")
	if entry.Note != "Cancelled by customer" {
		t.Fatalf("expected explicit note to win, got %q", entry.Note)
	}
}
