package idhash

import "testing"

func TestComputeFrameID(t *testing.T) {
	got := ComputeFrameID("session-1", "view-1", 1)
	if len(got) != 64 {
		t.Errorf("ComputeFrameID() length = %d, want 64", len(got))
	}
	if again := ComputeFrameID("session-1", "view-1", 1); again != got {
		t.Errorf("ComputeFrameID() not deterministic: %s != %s", got, again)
	}
	if next := ComputeFrameID("session-1", "view-1", 2); next == got {
		t.Error("ComputeFrameID() same for different seq")
	}
	if other := ComputeFrameID("session-2", "view-1", 1); other == got {
		t.Error("ComputeFrameID() same for different session")
	}
}
