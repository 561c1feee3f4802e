package document

import (
	"errors"
	"testing"
)

func TestBuffer_DeleteInsert(t *testing.T) {
	t.Run("delete range", func(t *testing.T) {
		b := NewBuffer("hello world")
		if err := b.DeleteRange(5, 11); err != nil {
			t.Fatal(err)
		}
		if got := b.FlatText(); got != "hello" {
			t.Errorf("FlatText() = %q, want %q", got, "hello")
		}
		if b.Revision() != 1 {
			t.Errorf("Revision() = %d, want 1", b.Revision())
		}
	})

	t.Run("insert multibyte", func(t *testing.T) {
		b := NewBuffer("naïve")
		if err := b.InsertAt(3, "—x—"); err != nil {
			t.Fatal(err)
		}
		if got := b.FlatText(); got != "naï—x—ve" {
			t.Errorf("FlatText() = %q", got)
		}
		if b.Len() != 8 {
			t.Errorf("Len() = %d, want 8", b.Len())
		}
	})

	t.Run("rejects out of range", func(t *testing.T) {
		b := NewBuffer("abc")
		tests := []struct {
			name string
			err  error
		}{
			{"delete past end", b.DeleteRange(1, 4)},
			{"delete reversed", b.DeleteRange(2, 1)},
			{"delete negative", b.DeleteRange(-1, 1)},
			{"insert past end", b.InsertAt(4, "x")},
			{"insert negative", b.InsertAt(-1, "x")},
		}
		for _, tt := range tests {
			if !errors.Is(tt.err, ErrOutOfRange) {
				t.Errorf("%s: err = %v, want ErrOutOfRange", tt.name, tt.err)
			}
		}
		if b.FlatText() != "abc" || b.Revision() != 0 {
			t.Errorf("buffer changed: %q rev %d", b.FlatText(), b.Revision())
		}
	})

	t.Run("empty operations do not bump revision", func(t *testing.T) {
		b := NewBuffer("abc")
		b.DeleteRange(1, 1)
		b.InsertAt(1, "")
		if b.Revision() != 0 {
			t.Errorf("Revision() = %d, want 0", b.Revision())
		}
	})
}

func TestBuffer_Selection(t *testing.T) {
	t.Run("clamps and orders", func(t *testing.T) {
		b := NewBuffer("abcdef")
		b.SetSelection(10, -3)
		if from, to := b.Selection(); from != 0 || to != 6 {
			t.Errorf("Selection() = %d-%d, want 0-6", from, to)
		}
	})

	t.Run("follows deletions", func(t *testing.T) {
		b := NewBuffer("0123456789")
		b.SetSelection(6, 8)
		b.DeleteRange(1, 3)
		if from, to := b.Selection(); from != 4 || to != 6 {
			t.Errorf("Selection() = %d-%d, want 4-6", from, to)
		}
		if got := b.SelectedText(); got != "67" {
			t.Errorf("SelectedText() = %q, want 67", got)
		}
	})

	t.Run("collapses when deleted", func(t *testing.T) {
		b := NewBuffer("0123456789")
		b.SetSelection(3, 5)
		b.DeleteRange(2, 7)
		if from, to := b.Selection(); from != 2 || to != 2 {
			t.Errorf("Selection() = %d-%d, want 2-2", from, to)
		}
	})

	t.Run("follows insertions", func(t *testing.T) {
		b := NewBuffer("abcdef")
		b.SetSelection(2, 4)
		b.InsertAt(1, "XY")
		if got := b.SelectedText(); got != "cd" {
			t.Errorf("SelectedText() = %q, want cd", got)
		}
	})

	t.Run("replace selection", func(t *testing.T) {
		b := NewBuffer("hello world")
		b.SetSelection(6, 11)
		if err := b.ReplaceSelection("gophers"); err != nil {
			t.Fatal(err)
		}
		if got := b.FlatText(); got != "hello gophers" {
			t.Errorf("FlatText() = %q", got)
		}
		if got := b.SelectedText(); got != "gophers" {
			t.Errorf("SelectedText() = %q", got)
		}
	})
}
