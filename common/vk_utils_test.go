package common

import (
	"testing"
)

func TestAllOfAinB(t *testing.T) {
	if !AllOfAinB([]string{"a", "b"}, []string{"c", "b", "a"}) {
		t.Errorf("Expected [a b] to be contained in [c b a]")
	}
	if AllOfAinB([]string{"a", "x"}, []string{"c", "b", "a"}) {
		t.Errorf("Expected [a x] not to be contained in [c b a]")
	}
	if !AllOfAinB(nil, []string{"a"}) {
		t.Errorf("Expected empty list to be contained in anything")
	}
}

func TestFirstNotInB(t *testing.T) {
	if got := FirstNotInB([]string{"a", "x", "y"}, []string{"a"}); got != "x" {
		t.Errorf("Expected first missing element 'x', got: '%s'", got)
	}
	if got := FirstNotInB([]string{"a"}, []string{"a", "b"}); got != "" {
		t.Errorf("Expected empty string when nothing is missing, got: '%s'", got)
	}
}

// TestTerminatedStr confirms NUL termination is added exactly once.
func TestTerminatedStr(t *testing.T) {
	if got := TerminatedStr("abc"); got != "abc\x00" {
		t.Errorf("Expected 'abc\\x00', got: %q", got)
	}
	if got := TerminatedStr("abc\x00"); got != "abc\x00" {
		t.Errorf("Expected already terminated string to pass unchanged, got: %q", got)
	}
}

func TestClampUint32(t *testing.T) {
	if got := ClampUint32(5, 1, 10); got != 5 {
		t.Errorf("Expected 5, got: %d", got)
	}
	if got := ClampUint32(0, 1, 10); got != 1 {
		t.Errorf("Expected clamp to lower bound 1, got: %d", got)
	}
	if got := ClampUint32(11, 1, 10); got != 10 {
		t.Errorf("Expected clamp to upper bound 10, got: %d", got)
	}
}

// TestAsUint32Arr confirms the reinterpretation keeps byte order and element count.
func TestAsUint32Arr(t *testing.T) {
	b := []byte{0x01, 0x00, 0x00, 0x00, 0xff, 0x00, 0x00, 0x00}
	u := AsUint32Arr(b)
	if len(u) != 2 {
		t.Fatalf("Expected 2 uint32 elements, got: %d", len(u))
	}
	if u[0] != 1 || u[1] != 255 {
		t.Errorf("Expected [1 255], got: %v", u)
	}
}
