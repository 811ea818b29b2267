package filter

import "testing"

func TestIsSafeRelative(t *testing.T) {
	safe := []string{"a", "a/b", "Music/Björk/album", "a.b/c-d"}
	for _, uri := range safe {
		if !IsSafeRelative(uri) {
			t.Errorf("%q should be safe", uri)
		}
	}

	unsafe := []string{"", "/a", "a/", "a//b", "..", "../a", "a/../b", "a/.", "./a"}
	for _, uri := range unsafe {
		if IsSafeRelative(uri) {
			t.Errorf("%q should be rejected", uri)
		}
	}
}
