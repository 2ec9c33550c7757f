package cache

import "testing"

func TestSkipSetLegacyKeys(t *testing.T) {
	set := NewSkipSet()
	for _, rel := range LegacySkips {
		if !set.Contains(rel) {
			t.Fatalf("legacy key %s should be skipped", rel)
		}
	}
	if set.Contains("cache/football/fixtures") {
		t.Fatalf("non-legacy key should not be skipped")
	}
	if set.Contains("./cache/basketball/games") {
		t.Fatalf("Contains expects the ./ prefix to be stripped")
	}
}

func TestSkipSetExtraEntries(t *testing.T) {
	set := NewSkipSet("cache/tennis/games", "cache/hockey/**", "  ")

	testCases := []struct {
		rel  string
		want bool
	}{
		{"cache/tennis/games", true},
		{"cache/tennis/leagues", false},
		{"cache/hockey/2024/games.json", true},
		{"cache/basketball/leagues", true},
	}
	for _, tc := range testCases {
		if got := set.Contains(tc.rel); got != tc.want {
			t.Fatalf("Contains(%q) = %v, want %v", tc.rel, got, tc.want)
		}
	}
	if set.Len() != len(LegacySkips)+2 {
		t.Fatalf("unexpected set size %d", set.Len())
	}
}
