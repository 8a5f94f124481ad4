package retriever

import (
	"context"
	"sync"

	"github.com/Kailramiya/AI4Chat-ai-assistant/internal/domain"
)

// MockRetriever serves a small built-in catalog, or fixed results when Docs or
// Err are set. It records the queries it receives.
type MockRetriever struct {
	Docs []domain.Document
	Err  error

	index *LocalRetriever

	mu      sync.Mutex
	queries []string
}

// NewMockRetriever creates a mock retriever over the demo catalog.
func NewMockRetriever() *MockRetriever {
	return &MockRetriever{index: NewLocalRetriever(demoPages())}
}

var _ Retriever = (*MockRetriever)(nil)

// Search returns Err, Docs, or demo catalog hits, in that order of precedence.
func (m *MockRetriever) Search(ctx context.Context, query string, limit int) ([]domain.Document, error) {
	m.mu.Lock()
	m.queries = append(m.queries, query)
	m.mu.Unlock()

	if m.Err != nil {
		return nil, m.Err
	}
	if m.Docs != nil {
		docs := append([]domain.Document(nil), m.Docs...)
		if limit > 0 && len(docs) > limit {
			docs = docs[:limit]
		}
		return docs, nil
	}
	if m.index == nil {
		return []domain.Document{}, nil
	}
	return m.index.Search(ctx, query, limit)
}

// Queries returns the queries seen so far.
func (m *MockRetriever) Queries() []string {
	m.mu.Lock()
	defer m.mu.Unlock()
	return append([]string(nil), m.queries...)
}

func demoPages() []Page {
	inStock, soldOut := true, false
	return []Page{
		{
			URL:      "https://shop.example.com/products/classic-hoodie",
			Title:    "Classic Hoodie",
			PageType: "product",
			Content:  "Our classic hoodie is made of 100% cotton fleece. Machine washable. Available in blue and black, sizes S to XL.",
			ProductInfo: &domain.ProductInfo{
				Name:      "Classic Hoodie",
				Handle:    "classic-hoodie",
				BestPrice: "40.00",
				Materials: "100% cotton",
				Care:      "machine washable",
				Options:   []domain.Option{{Name: "Color", Values: []string{"Blue", "Black"}}, {Name: "Size", Values: []string{"S", "M", "L", "XL"}}},
				Variants: []domain.Variant{
					{Label: "Blue / M", SKU: "HD-BL-M", Price: "$40", Available: &inStock},
					{Label: "Blue / L", SKU: "HD-BL-L", Price: "$40", Available: &inStock},
					{Label: "Black / M", SKU: "HD-BK-M", Price: "$42", Available: &soldOut},
				},
			},
		},
		{
			URL:      "https://shop.example.com/products/linen-shirt",
			Title:    "Linen Shirt",
			PageType: "product",
			Content:  "A breathable linen shirt for warm days. Hand wash cold.",
			ProductInfo: &domain.ProductInfo{
				Name:      "Linen Shirt",
				Handle:    "linen-shirt",
				BestPrice: "55.00",
				Materials: "linen",
				Care:      "hand wash",
				Variants: []domain.Variant{
					{Label: "White / M", SKU: "LS-WH-M", Price: "55.00", Available: &inStock},
				},
			},
		},
		{
			URL:      "https://shop.example.com/pages/shipping",
			Title:    "Shipping Policy",
			PageType: "policy",
			Content:  "Orders ship within 2 business days. Standard delivery takes 3 to 5 business days.",
		},
		{
			URL:      "https://shop.example.com/pages/returns",
			Title:    "Returns and Refunds",
			PageType: "policy",
			Content:  "Items can be returned within 30 days of delivery. Refunds are issued to the original payment method.",
		},
	}
}
