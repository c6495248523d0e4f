package tag

import "testing"

func TestMatch(t *testing.T) {
	tests := []struct {
		a, b string
		want bool
	}{
		{"Informatik", "informatik", true},
		{"  IT ", "it", true},
		{"Informatik", "Informatiker", true},
		{"Wirtschaftsinformatik", "informatik", true},
		{"it", "Informatik", false},
		{"art", "Startup", true},
		{"Pflege", "Logistik", false},
		{"", "", false},
		{"", "Logistik", false},
		{"Büro", "büro", true},
	}
	for _, tc := range tests {
		if got := Match(tc.a, tc.b); got != tc.want {
			t.Errorf("Match(%q, %q) = %v, want %v", tc.a, tc.b, got, tc.want)
		}
		if got := Match(tc.b, tc.a); got != tc.want {
			t.Errorf("Match(%q, %q) = %v, want %v (reversed)", tc.b, tc.a, got, tc.want)
		}
	}
}

func TestMatchAny(t *testing.T) {
	set := []string{"Gaming", "Teamarbeit"}
	if !MatchAny("team", set) {
		t.Error("expected team to match Teamarbeit")
	}
	if MatchAny("Kochen", set) {
		t.Error("did not expect Kochen to match")
	}
	if MatchAny("Kochen", nil) {
		t.Error("empty set never matches")
	}
}

func TestClean(t *testing.T) {
	got := Clean([]string{" Gaming", "gaming", "", "  ", "Musik"})
	want := []string{"gaming", "musik"}
	if len(got) != len(want) {
		t.Fatalf("Clean = %v, want %v", got, want)
	}
	for i := range want {
		if got[i] != want[i] {
			t.Errorf("Clean[%d] = %q, want %q", i, got[i], want[i])
		}
	}
}
