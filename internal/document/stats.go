package document

import (
	"strings"

	"github.com/rivo/uniseg"
)

// Stats holds the document statistics shown by the word count tool.
type Stats struct {
	Words      int `json:"words"`
	Characters int `json:"characters"`
	Paragraphs int `json:"paragraphs"`
}

// ComputeStats counts words, user-perceived characters and paragraphs.
// Paragraphs are runs of non-blank lines; a markdown heading is a block of
// its own.
func ComputeStats(text string) Stats {
	return Stats{
		Words:      len(strings.Fields(text)),
		Characters: uniseg.GraphemeClusterCount(text),
		Paragraphs: countBlocks(text),
	}
}

func countBlocks(text string) int {
	blocks := 0
	inBlock := false
	for line := range strings.Lines(text) {
		trimmed := strings.TrimSpace(line)
		switch {
		case trimmed == "":
			inBlock = false
		case strings.HasPrefix(trimmed, "#"):
			blocks++
			inBlock = false
		case !inBlock:
			blocks++
			inBlock = true
		}
	}
	return blocks
}
