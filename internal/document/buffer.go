// Package document provides the in-memory document model the editing tools
// operate on: a flat rune buffer with a selection.
package document

import (
	"errors"
	"fmt"
)

// ErrOutOfRange is returned when an offset falls outside the buffer.
var ErrOutOfRange = errors.New("offset out of range")

// Buffer is a flat-text document addressed by rune offsets.
type Buffer struct {
	text     []rune
	selFrom  int
	selTo    int
	revision uint64
}

// NewBuffer creates a buffer holding text with an empty selection at 0.
func NewBuffer(text string) *Buffer {
	return &Buffer{text: []rune(text)}
}

// FlatText returns the full text of the buffer.
func (b *Buffer) FlatText() string {
	return string(b.text)
}

// Len returns the length of the buffer in runes.
func (b *Buffer) Len() int {
	return len(b.text)
}

// Revision is incremented by every mutation.
func (b *Buffer) Revision() uint64 {
	return b.revision
}

// Selection returns the selected rune range.
func (b *Buffer) Selection() (from, to int) {
	return b.selFrom, b.selTo
}

// SetSelection selects [from, to). Offsets are clamped to the buffer and
// swapped if reversed.
func (b *Buffer) SetSelection(from, to int) {
	from = b.clamp(from)
	to = b.clamp(to)
	if from > to {
		from, to = to, from
	}
	b.selFrom, b.selTo = from, to
}

// SelectedText returns the text under the selection.
func (b *Buffer) SelectedText() string {
	return string(b.text[b.selFrom:b.selTo])
}

// DeleteRange removes [from, to).
func (b *Buffer) DeleteRange(from, to int) error {
	if from < 0 || to > len(b.text) || from > to {
		return fmt.Errorf("delete %d-%d in buffer of %d: %w", from, to, len(b.text), ErrOutOfRange)
	}
	if from == to {
		return nil
	}

	b.text = append(b.text[:from], b.text[to:]...)
	b.revision++
	b.SetSelection(shift(b.selFrom, from, to), shift(b.selTo, from, to))
	return nil
}

// InsertAt inserts text before the rune at offset.
func (b *Buffer) InsertAt(offset int, text string) error {
	if offset < 0 || offset > len(b.text) {
		return fmt.Errorf("insert at %d in buffer of %d: %w", offset, len(b.text), ErrOutOfRange)
	}
	ins := []rune(text)
	if len(ins) == 0 {
		return nil
	}

	out := make([]rune, 0, len(b.text)+len(ins))
	out = append(out, b.text[:offset]...)
	out = append(out, ins...)
	out = append(out, b.text[offset:]...)
	b.text = out
	b.revision++

	if b.selFrom > offset {
		b.selFrom += len(ins)
	}
	if b.selTo > offset {
		b.selTo += len(ins)
	}
	return nil
}

// ReplaceSelection replaces the selected text and selects the inserted text.
func (b *Buffer) ReplaceSelection(text string) error {
	from, to := b.Selection()
	if err := b.DeleteRange(from, to); err != nil {
		return err
	}
	if err := b.InsertAt(from, text); err != nil {
		return err
	}
	b.SetSelection(from, from+len([]rune(text)))
	return nil
}

// shift maps pos across the deletion of [from, to).
func shift(pos, from, to int) int {
	switch {
	case pos <= from:
		return pos
	case pos >= to:
		return pos - (to - from)
	default:
		return from
	}
}

func (b *Buffer) clamp(pos int) int {
	return max(0, min(pos, len(b.text)))
}
