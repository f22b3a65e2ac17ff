package version

import "testing"

func TestShortCommit(t *testing.T) {
	t.Parallel()

	tests := []struct {
		input string
		want  string
	}{
		{"", ""},
		{"abc123", "abc123"},
		{"0123456789ab", "0123456789ab"},
		{"0123456789abcdef0123", "0123456789ab"},
	}
	for _, tc := range tests {
		if got := shortCommit(tc.input); got != tc.want {
			t.Errorf("shortCommit(%q): got %q want %q", tc.input, got, tc.want)
		}
	}
}

func TestResolveNeverEmpty(t *testing.T) {
	t.Parallel()

	if info := Resolve(); info.Version == "" {
		t.Fatal("Resolve returned an empty version")
	}
	if String() == "" {
		t.Fatal("String returned an empty version")
	}
}
