package models

import "testing"

func TestBatchStatusTerminal(t *testing.T) {
	terminal := []BatchStatus{
		BatchStatusCompleted,
		BatchStatusCompletedWithErrors,
		BatchStatusFailed,
	}
	for _, status := range terminal {
		if !status.Terminal() {
			t.Errorf("Expected %s to be terminal", status)
		}
	}

	for _, status := range []BatchStatus{BatchStatusPending, BatchStatusProcessing} {
		if status.Terminal() {
			t.Errorf("Expected %s not to be terminal", status)
		}
	}
}
