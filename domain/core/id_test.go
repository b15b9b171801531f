package core

import (
	"testing"
)

// TestNewIDUniqueness tests that NewID generates unique identifiers
func TestNewIDUniqueness(t *testing.T) {
	const numIDs = 10000

	ids := make(map[ID]bool, numIDs)
	for i := 0; i < numIDs; i++ {
		id := NewID()
		if id.IsEmpty() {
			t.Errorf("Generated empty ID at iteration %d", i)
		}
		if ids[id] {
			t.Errorf("Generated duplicate ID: %s", id)
		}
		ids[id] = true
	}

	if len(ids) != numIDs {
		t.Errorf("Expected %d unique IDs, got %d", numIDs, len(ids))
	}
}

// TestIDIsEmpty tests ID emptiness check
func TestIDIsEmpty(t *testing.T) {
	if !ID("").IsEmpty() {
		t.Error("Expected empty ID to be empty")
	}
	if ID("not-empty").IsEmpty() {
		t.Error("Expected non-empty ID to not be empty")
	}
}

// TestDomainErrors tests sentinel wrapping
func TestDomainErrors(t *testing.T) {
	if !IsDecodeError(NewDecodeError("a.csv", "bad base64")) {
		t.Error("Expected decode error to match ErrDecode")
	}
	if !IsLookupMiss(NewLookupMiss("gone.csv")) {
		t.Error("Expected lookup miss to match ErrLookupMiss")
	}
	if IsLookupMiss(NewDecodeError("a.csv", "x")) {
		t.Error("Decode error must not match ErrLookupMiss")
	}
}
