package document

import "testing"

func TestComputeStats(t *testing.T) {
	tests := []struct {
		name string
		text string
		want Stats
	}{
		{"empty", "", Stats{}},
		{"whitespace only", "  \n\t\n", Stats{Words: 0, Characters: 5, Paragraphs: 0}},
		{"one paragraph", "two words", Stats{Words: 2, Characters: 9, Paragraphs: 1}},
		{
			name: "heading and paragraphs",
			text: "# Title\nfirst line\nsecond line\n\nnext para",
			want: Stats{Words: 8, Characters: 41, Paragraphs: 3},
		},
		{"grapheme clusters", "é 👍🏽", Stats{Words: 2, Characters: 3, Paragraphs: 1}},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			if got := ComputeStats(tt.text); got != tt.want {
				t.Errorf("ComputeStats(%q) = %+v, want %+v", tt.text, got, tt.want)
			}
		})
	}
}
