// Package chunker splits document text into overlapping windows and ranks
// them by relevance to a keyword set. Chunks are ephemeral: built per
// extraction call, never persisted.
package chunker

import (
	"sort"
	"strings"

	"github.com/sells-group/evidence-cli/internal/model"
)

const (
	defaultChunkSize = 3000
	defaultOverlap   = 300

	// boundarySlack is how far past the nominal window end a chunk may
	// extend to finish on a line boundary.
	boundarySlack = 200
)

// Chunk is a contiguous text window drawn from adjacent pages, with the
// page span retained for citation.
type Chunk struct {
	Text      string
	StartPage int
	EndPage   int
	Offset    int
	Section   model.SectionType // "" for whole-document chunks
	Score     int
}

// Chunker windows document text with a configured size and overlap.
type Chunker struct {
	chunkSize int
	overlap   int
}

// New creates a Chunker. Non-positive size or overlap fall back to defaults;
// overlap is clamped below the chunk size.
func New(chunkSize, overlap int) *Chunker {
	if chunkSize <= 0 {
		chunkSize = defaultChunkSize
	}
	if overlap <= 0 {
		overlap = defaultOverlap
	}
	if overlap >= chunkSize {
		overlap = chunkSize / 4
	}
	return &Chunker{chunkSize: chunkSize, overlap: overlap}
}

// ChunkSections windows the text of every section of the given types, in
// the order given. Missing section types contribute nothing.
func (c *Chunker) ChunkSections(doc *model.Document, types []model.SectionType) []Chunk {
	var out []Chunk
	for _, t := range types {
		for _, sec := range doc.SectionsOfType(t) {
			out = append(out, c.chunkPages(doc.PagesInRange(sec.StartPage, sec.EndPage), t)...)
		}
	}
	return out
}

// ChunkDocument windows the whole document. Used when none of a block's
// priority sections were detected.
func (c *Chunker) ChunkDocument(doc *model.Document) []Chunk {
	return c.chunkPages(doc.Pages, "")
}

// chunkPages concatenates the pages' text and cuts fixed-stride windows,
// extending each window forward to the next line break within a small slack
// so passages are not cut mid-line. Page attribution comes from tracked
// page boundary offsets.
func (c *Chunker) chunkPages(pages []model.Page, section model.SectionType) []Chunk {
	if len(pages) == 0 {
		return nil
	}

	type span struct {
		page  int
		start int
		end   int
	}
	var b strings.Builder
	spans := make([]span, 0, len(pages))
	for _, p := range pages {
		start := b.Len()
		b.WriteString(p.Text)
		b.WriteString("\n")
		spans = append(spans, span{page: p.Number, start: start, end: b.Len()})
	}
	text := b.String()

	pageAt := func(off int) int {
		i := sort.Search(len(spans), func(i int) bool { return spans[i].end > off })
		if i >= len(spans) {
			return spans[len(spans)-1].page
		}
		return spans[i].page
	}

	var chunks []Chunk
	stride := c.chunkSize - c.overlap
	for start := 0; start < len(text); start += stride {
		end := start + c.chunkSize
		if end >= len(text) {
			end = len(text)
		} else {
			// Extend to the next newline within the slack.
			if nl := strings.IndexByte(text[end:min(end+boundarySlack, len(text))], '\n'); nl >= 0 {
				end += nl
			}
		}

		window := strings.TrimSpace(text[start:end])
		if window == "" {
			if end == len(text) {
				break
			}
			continue
		}

		chunks = append(chunks, Chunk{
			Text:      window,
			StartPage: pageAt(start),
			EndPage:   pageAt(end - 1),
			Offset:    start,
			Section:   section,
		})
		if end == len(text) {
			break
		}
	}
	return chunks
}
