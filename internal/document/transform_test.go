package document

import "testing"

func TestParseTransform(t *testing.T) {
	tests := []struct {
		in      string
		want    Transform
		wantErr bool
	}{
		{"lower", Lower, false},
		{"UPPERCASE", Upper, false},
		{" Title Case ", Title, false},
		{"sentence", "", true},
	}
	for _, tt := range tests {
		t.Run(tt.in, func(t *testing.T) {
			got, err := ParseTransform(tt.in)
			if (err != nil) != tt.wantErr {
				t.Fatalf("ParseTransform(%q) error = %v", tt.in, err)
			}
			if got != tt.want {
				t.Errorf("ParseTransform(%q) = %q, want %q", tt.in, got, tt.want)
			}
		})
	}
}

func TestApplyTransform(t *testing.T) {
	tests := []struct {
		name      string
		transform Transform
		want      string
	}{
		{"lower", Lower, "say hello world now"},
		{"upper", Upper, "say HELLO WORLD now"},
		{"title", Title, "say Hello World now"},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			b := NewBuffer("say hELLo wOrld now")
			b.SetSelection(4, 15)

			ok, err := ApplyTransform(b, tt.transform)
			if err != nil || !ok {
				t.Fatalf("ApplyTransform() = %v, %v", ok, err)
			}
			if got := b.FlatText(); got != tt.want {
				t.Errorf("FlatText() = %q, want %q", got, tt.want)
			}
		})
	}

	t.Run("empty selection", func(t *testing.T) {
		b := NewBuffer("unchanged")
		ok, err := ApplyTransform(b, Upper)
		if ok || err != nil {
			t.Errorf("ApplyTransform() = %v, %v; want false, nil", ok, err)
		}
		if b.FlatText() != "unchanged" {
			t.Errorf("FlatText() = %q", b.FlatText())
		}
	})
}
