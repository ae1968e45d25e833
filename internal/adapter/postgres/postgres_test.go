package postgres

import "testing"

func TestLikePrefixEscapesWildcards(t *testing.T) {
	tests := []struct {
		in, want string
	}{
		{"fittrack_", `fittrack\_%`},
		{"50%", `50\%%`},
		{`a\b`, `a\\b%`},
		{"", "%"},
	}
	for _, tc := range tests {
		if got := likePrefix(tc.in); got != tc.want {
			t.Errorf("likePrefix(%q) = %q; want %q", tc.in, got, tc.want)
		}
	}
}
