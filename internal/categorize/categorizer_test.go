package categorize

import "testing"

func TestConstant(t *testing.T) {
	c := NewConstant("Groceries")
	if got := c.Categorize("SUPERMARKET"); got != "Groceries" {
		t.Fatalf("got %q", got)
	}
	if got := c.Categorize("CAFE"); got != "Groceries" {
		t.Fatalf("label must not depend on merchant, got %q", got)
	}
}

func TestConstantDefault(t *testing.T) {
	c := NewConstant("")
	if got := c.Categorize("ANY"); got != DefaultLabel {
		t.Fatalf("got %q", got)
	}
}
