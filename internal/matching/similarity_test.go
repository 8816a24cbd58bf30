package matching

import "testing"

func TestSimilarityIdentity(t *testing.T) {
	t.Parallel()
	for _, s := range []string{"", "a", "Salem", "Tiruchirappalli", "प्लंबिंग", "North 24 Parganas"} {
		if got := Similarity(s, s); got != 1 {
			t.Errorf("Similarity(%q, %q) = %v, want 1", s, s, got)
		}
	}
}

func TestSimilarityContainment(t *testing.T) {
	t.Parallel()
	pairs := [][2]string{
		{"chennai", "chennai district"},
		{"Mumbai Suburban", "mumbai"},
		{"x", "abcdefghijklmnopqrstuvwxyz"},
		{"", "salem"},
	}
	for _, p := range pairs {
		if got := Similarity(p[0], p[1]); got < 0.8 {
			t.Errorf("Similarity(%q, %q) = %v, want >= 0.8", p[0], p[1], got)
		}
		if got := Similarity(p[1], p[0]); got < 0.8 {
			t.Errorf("Similarity(%q, %q) = %v, want >= 0.8", p[1], p[0], got)
		}
	}
}

func TestSimilarityEditDistance(t *testing.T) {
	t.Parallel()
	cases := []struct {
		a, b string
		want float64
	}{
		{"salem", "salam", 0.8},
		{"salem", "sulam", 0.6},
		{"dindigul", "dandugal", 0.625},
		{"abc", "xyz", 0},
	}
	for _, c := range cases {
		got := Similarity(c.a, c.b)
		if diff := got - c.want; diff > 1e-9 || diff < -1e-9 {
			t.Errorf("Similarity(%q, %q) = %v, want %v", c.a, c.b, got, c.want)
		}
	}
}

func TestSimilaritySymmetric(t *testing.T) {
	t.Parallel()
	pairs := [][2]string{{"madurai", "madras"}, {"pune", "puna"}, {"kolkata", "calcutta"}}
	for _, p := range pairs {
		if a, b := Similarity(p[0], p[1]), Similarity(p[1], p[0]); a != b {
			t.Errorf("Similarity not symmetric for %v: %v vs %v", p, a, b)
		}
	}
}
