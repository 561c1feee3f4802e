package findreplace

import (
	"strings"
	"testing"
)

func TestScan(t *testing.T) {
	tests := []struct {
		name  string
		text  string
		query Query
		want  []Match
	}{
		{
			name:  "empty query",
			text:  "anything",
			query: Query{},
			want:  nil,
		},
		{
			name:  "no occurrences",
			text:  "hello world",
			query: Query{Text: "xyz", MatchCase: true},
			want:  nil,
		},
		{
			name:  "inside words",
			text:  "cathedral concatenate",
			query: Query{Text: "cat", MatchCase: true},
			want:  []Match{{0, 3}, {13, 16}},
		},
		{
			name:  "non-overlapping",
			text:  "aaaa",
			query: Query{Text: "aa", MatchCase: true},
			want:  []Match{{0, 2}, {2, 4}},
		},
		{
			name:  "metacharacters are literal",
			text:  "a.b a+b (a) a.b",
			query: Query{Text: "a.b", MatchCase: true},
			want:  []Match{{0, 3}, {12, 15}},
		},
		{
			name:  "brackets and backslash",
			text:  `x[1]\y x[1]\y`,
			query: Query{Text: `[1]\`, MatchCase: true},
			want:  []Match{{1, 5}, {8, 12}},
		},
		{
			name:  "case insensitive",
			text:  "Cat cat CAT",
			query: Query{Text: "CAT"},
			want:  []Match{{0, 3}, {4, 7}, {8, 11}},
		},
		{
			name:  "case sensitive",
			text:  "Cat cat CAT",
			query: Query{Text: "cat", MatchCase: true},
			want:  []Match{{4, 7}},
		},
		{
			name:  "rune offsets after multibyte text",
			text:  "héllo wörld wörld",
			query: Query{Text: "wörld", MatchCase: true},
			want:  []Match{{6, 11}, {12, 17}},
		},
		{
			name:  "case insensitive multibyte",
			text:  "ÉTÉ été",
			query: Query{Text: "été"},
			want:  []Match{{0, 3}, {4, 7}},
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got := Scan(tt.text, tt.query)
			if len(got) != len(tt.want) {
				t.Fatalf("Scan(%q, %q) = %v, want %v", tt.text, tt.query.Text, got, tt.want)
			}
			for i := range got {
				if got[i] != tt.want[i] {
					t.Errorf("match %d = %v, want %v", i, got[i], tt.want[i])
				}
			}
		})
	}
}

func TestScan_CountsAndOrdering(t *testing.T) {
	for k := 0; k <= 12; k++ {
		text := strings.Repeat("ab-", k) + "tail"
		got := Scan(text, Query{Text: "ab", MatchCase: true})
		if len(got) != k {
			t.Fatalf("k=%d: got %d matches", k, len(got))
		}
		for i := 1; i < len(got); i++ {
			if got[i].From < got[i-1].To {
				t.Errorf("k=%d: match %d overlaps or is out of order: %v after %v", k, i, got[i], got[i-1])
			}
		}
	}
}

func TestMatch_Len(t *testing.T) {
	if got := (Match{From: 3, To: 8}).Len(); got != 5 {
		t.Errorf("Len() = %d, want 5", got)
	}
}
