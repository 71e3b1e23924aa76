package rag

import (
	"regexp"
	"strings"
)

var sentenceRe = regexp.MustCompile(`(?m)(?U)([^.!?\n]+[.!?\n]|[^.!?\n]+$)`)

// SentenceChunker packs whole sentences into chunks of at most maxChars runes,
// carrying roughly overlapChars runes of trailing sentences into the next
// chunk so retrieval does not lose context at boundaries.
type SentenceChunker struct {
	maxChars     int
	overlapChars int
}

// NewSentenceChunker creates a chunker with the given size and overlap in runes.
func NewSentenceChunker(maxChars, overlapChars int) *SentenceChunker {
	if maxChars <= 0 {
		maxChars = 1024
	}
	if overlapChars < 0 {
		overlapChars = 0
	}
	if overlapChars >= maxChars {
		overlapChars = maxChars / 4
	}
	return &SentenceChunker{maxChars: maxChars, overlapChars: overlapChars}
}

// Chunk splits a document into sentence-aligned chunks.
func (c *SentenceChunker) Chunk(doc RawDocument) []Chunk {
	sentences := sentenceRe.FindAllString(doc.Text, -1)
	cleaned := sentences[:0]
	for _, s := range sentences {
		if s = strings.TrimSpace(s); s != "" {
			cleaned = append(cleaned, s)
		}
	}
	if len(cleaned) == 0 {
		return nil
	}

	var chunks []Chunk
	var cur []string
	curLen := 0
	seq := 0

	flush := func() {
		if len(cur) == 0 {
			return
		}
		chunks = append(chunks, Chunk{
			DocumentID:   doc.ID,
			DocumentName: doc.Name,
			Seq:          seq,
			Text:         strings.Join(cur, " "),
		})
		seq++

		// Seed the next chunk with trailing sentences up to the overlap budget.
		var carry []string
		carryLen := 0
		for i := len(cur) - 1; i >= 0; i-- {
			n := len([]rune(cur[i])) + 1
			if carryLen+n > c.overlapChars {
				break
			}
			carry = append([]string{cur[i]}, carry...)
			carryLen += n
		}
		cur = carry
		curLen = carryLen
	}

	for _, s := range cleaned {
		n := len([]rune(s)) + 1
		if curLen > 0 && curLen+n > c.maxChars {
			flush()
		}
		cur = append(cur, s)
		curLen += n
	}
	flush()

	return chunks
}
