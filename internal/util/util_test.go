// internal/util/util_test.go
package util

import (
	"strings"
	"testing"
)

func TestTruncateRunes(t *testing.T) {
	cases := []struct {
		in   string
		max  int
		want string
	}{
		{"short", 10, "short"},
		{"exactly10!", 10, "exactly10!"},
		{"this is too long", 7, "this is…"},
		{"héllo wörld", 5, "héllo…"},
	}
	for _, tc := range cases {
		if got := TruncateRunes(tc.in, tc.max); got != tc.want {
			t.Fatalf("TruncateRunes(%q, %d): expected %q, got %q", tc.in, tc.max, tc.want, got)
		}
	}
}

func TestWrapToWidth(t *testing.T) {
	wrapped := WrapToWidth("one two three four", 9)
	for _, line := range strings.Split(wrapped, "\n") {
		if len([]rune(line)) > 9 {
			t.Fatalf("line exceeds width: %q", line)
		}
	}

	if got := WrapToWidth("unbroken", 0); got != "unbroken" {
		t.Fatalf("expected zero width to be a no-op, got %q", got)
	}

	long := WrapToWidth("abcdefghij", 4)
	if long != "abcd\nefgh\nij" {
		t.Fatalf("expected long word to break, got %q", long)
	}
}
