package extract

import "testing"

func TestFirstAuthorPrefersMetadata(t *testing.T) {
	tests := []struct {
		name     string
		metadata string
		want     string
	}{
		{name: "comma separated", metadata: "Jane Doe, John Smith", want: "Jane Doe"},
		{name: "semicolon separated", metadata: "Wei Zhang; Li Ming", want: "Wei Zhang"},
		{name: "single author", metadata: "  Ada Lovelace  ", want: "Ada Lovelace"},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got := FirstAuthor("By: Someone Else", tt.metadata)
			if got != tt.want {
				t.Errorf("FirstAuthor = %q, want %q", got, tt.want)
			}
		})
	}
}

func TestFirstAuthorFromText(t *testing.T) {
	tests := []struct {
		name string
		text string
		want string
	}{
		{name: "western name", text: "A Study of Things\nJane M. Doe\nSome University", want: "Jane M. Doe"},
		{name: "surname first initials", text: "Doe, J. and Smith, A. wrote this", want: "Doe, J."},
		{name: "authors label", text: "authors: Maria Garcia; Pedro Ruiz", want: "Maria Garcia"},
		{name: "by label", text: "by: somebody anonymous", want: "somebody anonymous"},
		{name: "nothing", text: "2023 all lowercase text only", want: ""},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got := FirstAuthor(tt.text, "")
			if got != tt.want {
				t.Errorf("FirstAuthor(%q) = %q, want %q", tt.text, got, tt.want)
			}
		})
	}
}

func TestAuthors(t *testing.T) {
	got := Authors("Jane Doe, John Smith; Wei Zhang")
	want := []string{"Jane Doe", "John Smith", "Wei Zhang"}

	if len(got) != len(want) {
		t.Fatalf("Authors = %v, want %v", got, want)
	}
	for i := range want {
		if got[i] != want[i] {
			t.Errorf("Authors[%d] = %q, want %q", i, got[i], want[i])
		}
	}

	if Authors("") != nil {
		t.Error("Authors(\"\") should be nil")
	}
}
