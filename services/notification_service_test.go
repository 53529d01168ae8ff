package services

import (
	"testing"
	"time"
)

func TestNotificationExpiresAfterTTL(t *testing.T) {
	center := NewNotificationCenter(20 * time.Millisecond)

	center.Notify("s1", "Added to cart", NotifySuccess)
	if got := center.Active("s1"); len(got) != 1 {
		t.Fatalf("expected 1 active notification, got %d", len(got))
	}

	deadline := time.Now().Add(2 * time.Second)
	for time.Now().Before(deadline) {
		if len(center.Active("s1")) == 0 {
			return
		}
		time.Sleep(5 * time.Millisecond)
	}
	t.Fatal("notification did not expire")
}

func TestExpiryRemovesByIDNotPosition(t *testing.T) {
	center := NewNotificationCenter(time.Hour)

	first := center.Notify("s1", "first", NotifySuccess)
	second := center.Notify("s1", "second", NotifyError)

	// Dismissing the head reorders the queue; the timer for second must
	// still remove second, not whatever sits at its old index.
	center.Dismiss("s1", first.ID)
	center.Dismiss("s1", second.ID)

	if got := center.Active("s1"); len(got) != 0 {
		t.Fatalf("expected empty queue, got %d entries", len(got))
	}
}

func TestDismissUnknownIDIsNoop(t *testing.T) {
	center := NewNotificationCenter(time.Hour)

	kept := center.Notify("s1", "kept", NotifySuccess)
	center.Dismiss("s1", "not-a-real-id")

	got := center.Active("s1")
	if len(got) != 1 || got[0].ID != kept.ID {
		t.Fatalf("unknown id must not remove anything, got %+v", got)
	}
}

func TestActiveReturnsEnqueueOrder(t *testing.T) {
	center := NewNotificationCenter(time.Hour)

	center.Notify("s1", "one", NotifySuccess)
	center.Notify("s1", "two", NotifySuccess)
	center.Notify("s1", "three", NotifyError)

	got := center.Active("s1")
	want := []string{"one", "two", "three"}
	if len(got) != len(want) {
		t.Fatalf("expected %d notifications, got %d", len(want), len(got))
	}
	for i := range want {
		if got[i].Message != want[i] {
			t.Fatalf("position %d: expected %q, got %q", i, want[i], got[i].Message)
		}
	}
}

func TestQueuesAreIsolatedPerSession(t *testing.T) {
	center := NewNotificationCenter(time.Hour)

	center.Notify("s1", "mine", NotifySuccess)
	if got := center.Active("s2"); len(got) != 0 {
		t.Fatalf("sessions must not see each other's notifications, got %d", len(got))
	}
}
