// Package retriever provides knowledge-base search backends.
package retriever

import (
	"context"
	"errors"
	"fmt"

	"github.com/Kailramiya/AI4Chat-ai-assistant/internal/domain"
)

// Retriever returns ranked documents for a query.
type Retriever interface {
	// Search returns at most limit documents, best first.
	Search(ctx context.Context, query string, limit int) ([]domain.Document, error)
}

// ErrRetrieval is matched by every retrieval failure.
var ErrRetrieval = errors.New("retrieval failed")

// Error describes a failed search.
type Error struct {
	Backend string
	Reason  string
	Stderr  string
	Err     error
}

func (e *Error) Error() string {
	msg := fmt.Sprintf("%s retriever: %s", e.Backend, e.Reason)
	if e.Err != nil {
		msg += ": " + e.Err.Error()
	}
	if e.Stderr != "" {
		msg += " (stderr: " + e.Stderr + ")"
	}
	return msg
}

func (e *Error) Unwrap() error {
	return e.Err
}

// Is makes every *Error match ErrRetrieval.
func (e *Error) Is(target error) bool {
	return target == ErrRetrieval
}

func normalize(docs []domain.Document, limit int) []domain.Document {
	if limit > 0 && len(docs) > limit {
		docs = docs[:limit]
	}
	for i := range docs {
		if docs[i].ProductInfo.Empty() {
			docs[i].ProductInfo = nil
		}
	}
	return docs
}
