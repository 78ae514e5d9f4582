package clipboard

import (
	"testing"
)

func TestWrite(t *testing.T) {
	if err := Init(); err != nil {
		t.Skipf("clipboard not available: %v", err)
	}

	if err := Write("test text"); err != nil {
		t.Fatalf("Failed to write to clipboard: %v", err)
	}
	if err := Write(""); err != nil {
		t.Fatalf("Failed to write empty text: %v", err)
	}
}
