package retriever

import (
	"context"
	"encoding/json"
	"fmt"
	"os"
	"regexp"
	"sort"
	"strings"

	"github.com/Kailramiya/AI4Chat-ai-assistant/internal/domain"
)

const (
	chunkSize    = 800
	chunkOverlap = 100
	// A chunk is only cut back to a sentence end that lies past this share of its length.
	sentenceBackoff = 0.7
)

// Page is one scraped page of the knowledge base.
type Page struct {
	URL         string              `json:"url"`
	Title       string              `json:"title"`
	Content     string              `json:"content"`
	PageType    string              `json:"page_type"`
	ProductInfo *domain.ProductInfo `json:"product_info,omitempty"`
}

type chunk struct {
	doc   domain.Document
	terms map[string]struct{}
}

// LocalRetriever searches an in-process index of scraped pages by term overlap.
type LocalRetriever struct {
	chunks []chunk
}

var _ Retriever = (*LocalRetriever)(nil)

// LoadLocalRetriever reads a scraped-pages JSON file and indexes it.
func LoadLocalRetriever(path string) (*LocalRetriever, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, fmt.Errorf("failed to read knowledge file: %w", err)
	}
	var pages []Page
	if err := json.Unmarshal(data, &pages); err != nil {
		return nil, fmt.Errorf("failed to parse knowledge file: %w", err)
	}
	return NewLocalRetriever(pages), nil
}

// NewLocalRetriever indexes pages.
func NewLocalRetriever(pages []Page) *LocalRetriever {
	r := &LocalRetriever{}
	for _, p := range pages {
		info := p.ProductInfo
		if info.Empty() {
			info = nil
		}
		for _, text := range ChunkText(p.Title + "\n\n" + p.Content) {
			r.chunks = append(r.chunks, chunk{
				doc: domain.Document{
					Text:        text,
					Title:       p.Title,
					URL:         p.URL,
					PageType:    p.PageType,
					ProductInfo: info,
				},
				terms: termSet(text),
			})
		}
	}
	return r
}

// Len returns the number of indexed chunks.
func (r *LocalRetriever) Len() int {
	return len(r.chunks)
}

// Search scores every chunk by the share of query terms it contains.
func (r *LocalRetriever) Search(ctx context.Context, query string, limit int) ([]domain.Document, error) {
	if err := ctx.Err(); err != nil {
		return nil, &Error{Backend: "local", Reason: "cancelled", Err: err}
	}
	q := termSet(query)
	if len(q) == 0 {
		return []domain.Document{}, nil
	}

	type hit struct {
		idx   int
		score float64
	}
	var hits []hit
	for i, c := range r.chunks {
		matched := 0
		for t := range q {
			if _, ok := c.terms[t]; ok {
				matched++
			}
		}
		if matched > 0 {
			hits = append(hits, hit{idx: i, score: float64(matched) / float64(len(q))})
		}
	}
	sort.SliceStable(hits, func(a, b int) bool { return hits[a].score > hits[b].score })

	docs := make([]domain.Document, 0, len(hits))
	for _, h := range hits {
		doc := r.chunks[h.idx].doc
		doc.Score = h.score
		docs = append(docs, doc)
	}
	return normalize(docs, limit), nil
}

var whitespaceRe = regexp.MustCompile(`\s+`)

// ChunkText splits text into overlapping chunks of at most chunkSize runes,
// cutting back to the last ". " when it falls late enough in the chunk.
func ChunkText(text string) []string {
	runes := []rune(whitespaceRe.ReplaceAllString(text, " "))
	var chunks []string
	start := 0
	for start < len(runes) {
		end := start + chunkSize
		if end > len(runes) {
			end = len(runes)
		}
		if end < len(runes) {
			if last := lastSentenceEnd(runes[start:end]); float64(last) > chunkSize*sentenceBackoff {
				end = start + last + 1
			}
		}
		if s := strings.TrimSpace(string(runes[start:end])); s != "" {
			chunks = append(chunks, s)
		}
		if end >= len(runes) {
			break
		}
		start = end - chunkOverlap
	}
	return chunks
}

func lastSentenceEnd(r []rune) int {
	for i := len(r) - 2; i >= 0; i-- {
		if r[i] == '.' && r[i+1] == ' ' {
			return i
		}
	}
	return -1
}

var termRe = regexp.MustCompile(`[a-z0-9]+`)

var stopwords = map[string]struct{}{
	"a": {}, "an": {}, "and": {}, "are": {}, "do": {}, "does": {}, "for": {}, "how": {},
	"i": {}, "in": {}, "is": {}, "it": {}, "me": {}, "my": {}, "of": {}, "on": {},
	"the": {}, "this": {}, "to": {}, "what": {}, "you": {}, "your": {},
}

func termSet(text string) map[string]struct{} {
	set := make(map[string]struct{})
	for _, t := range termRe.FindAllString(strings.ToLower(text), -1) {
		if _, stop := stopwords[t]; stop {
			continue
		}
		set[t] = struct{}{}
	}
	return set
}
