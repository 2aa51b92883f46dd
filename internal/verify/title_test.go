package verify

import "testing"

func TestTitleMatch(t *testing.T) {
	tests := []struct {
		name string
		a, b string
		want bool
	}{
		{
			name: "punctuation and case fold to exact",
			a:    "Deep Learning: A Survey",
			b:    "deep learning a survey",
			want: true,
		},
		{
			name: "containment",
			a:    "Deep Learning",
			b:    "Deep Learning: A Survey of Methods",
			want: true,
		},
		{
			name: "near identical survives typo",
			a:    "Deep Learning: A Survye",
			b:    "Deep Learning: A Survey",
			want: true,
		},
		{
			name: "keyword overlap with reordering",
			a:    "Survey of Deep Learning Methods",
			b:    "Deep Learning Methods: A Survey",
			want: true,
		},
		{
			name: "different works",
			a:    "Quantum Chemistry Basics",
			b:    "Deep Learning: A Survey",
			want: false,
		},
		{
			name: "empty side never matches",
			a:    "",
			b:    "Deep Learning",
			want: false,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			if got := TitleMatch(tt.a, tt.b); got != tt.want {
				t.Errorf("TitleMatch(%q, %q) = %v, want %v", tt.a, tt.b, got, tt.want)
			}
		})
	}
}

func TestNormalizeTitle(t *testing.T) {
	got := normalizeTitle("Graph  Neural Networks — Theory; Practice, and: Tools")
	want := "graph neural networks theory practice and tools"
	if got != want {
		t.Errorf("normalizeTitle = %q, want %q", got, want)
	}
}

func TestSimilarity(t *testing.T) {
	tests := []struct {
		a, b string
		want float64
	}{
		{"same", "same", 1.0},
		{"", "abc", 0.0},
		{"abcd", "abed", 0.75}, // one substitution over length 4
	}

	for _, tt := range tests {
		if got := Similarity(tt.a, tt.b); got != tt.want {
			t.Errorf("Similarity(%q, %q) = %v, want %v", tt.a, tt.b, got, tt.want)
		}
	}
}
