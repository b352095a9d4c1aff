package renderer

import (
	"testing"
)

// TestNextFrameIdx confirms the frame slot cursor visits every slot and wraps back to 0, so the
// sync objects of slot n are only ever reused after all other slots had their turn.
func TestNextFrameIdx(t *testing.T) {
	idx := int32(0)
	for i := 1; i < MAX_FRAMES_IN_FLIGHT; i++ {
		idx = nextFrameIdx(idx)
		if idx != int32(i) {
			t.Fatalf("Expected frame index %d after %d advances, got: %d", i, i, idx)
		}
	}
	if idx = nextFrameIdx(idx); idx != 0 {
		t.Errorf("Expected frame index to wrap to 0 after %d advances, got: %d", MAX_FRAMES_IN_FLIGHT, idx)
	}
}
