package domain

import (
	"bytes"
	"encoding/json"
	"strings"
)

// Document is a ranked piece of knowledge-base content returned by a retriever.
// Documents are read-only inputs to synthesis.
type Document struct {
	Text        string       `json:"text"`
	Title       string       `json:"title"`
	URL         string       `json:"url"`
	PageType    string       `json:"page_type,omitempty"`
	Score       float64      `json:"score"`
	ProductInfo *ProductInfo `json:"product_info,omitempty"`
}

// Source is the citation exposed to the caller for a Document.
type Source struct {
	Title string  `json:"title"`
	URL   string  `json:"url"`
	Score float64 `json:"score"`
}

// Source projects the document onto its citation fields.
func (d Document) Source() Source {
	return Source{Title: d.Title, URL: d.URL, Score: d.Score}
}

// SourcesFor returns the citations for the first MaxSources documents, in order.
func SourcesFor(docs []Document) []Source {
	n := len(docs)
	if n > MaxSources {
		n = MaxSources
	}
	sources := make([]Source, 0, n)
	for _, d := range docs[:n] {
		sources = append(sources, d.Source())
	}
	return sources
}

// ProductInfo holds structured product facts attached to a document.
type ProductInfo struct {
	Name           string    `json:"name,omitempty"`
	Title          string    `json:"title,omitempty"`
	Handle         string    `json:"handle,omitempty"`
	Vendor         string    `json:"vendor,omitempty"`
	ProductType    string    `json:"product_type,omitempty"`
	Price          Text      `json:"price,omitempty"`
	BestPrice      Text      `json:"best_price,omitempty"`
	MaxPrice       Text      `json:"max_price,omitempty"`
	PriceRange     Text      `json:"price_range,omitempty"`
	CompareAtPrice Text      `json:"compare_at_price,omitempty"`
	Materials      string    `json:"materials,omitempty"`
	Care           string    `json:"care,omitempty"`
	Warranty       string    `json:"warranty,omitempty"`
	ShippingInfo   string    `json:"shipping_info,omitempty"`
	SizeChartURL   string    `json:"size_chart_url,omitempty"`
	Options        []Option  `json:"options,omitempty"`
	Variants       []Variant `json:"variants,omitempty"`
	Images         []Image   `json:"images,omitempty"`
}

// DisplayName returns the product name, falling back to its title.
func (p *ProductInfo) DisplayName() string {
	if p == nil {
		return ""
	}
	if p.Name != "" {
		return p.Name
	}
	return p.Title
}

// StartingPrice returns the lowest known price of the product.
func (p *ProductInfo) StartingPrice() string {
	if p == nil {
		return ""
	}
	for _, candidate := range []Text{p.BestPrice, p.Price, p.PriceRange} {
		if candidate != "" {
			return string(candidate)
		}
	}
	for _, v := range p.Variants {
		if v.Price != "" {
			return string(v.Price)
		}
	}
	return ""
}

// Variant is a specific colour/size/price/availability combination of a product.
type Variant struct {
	Label          string `json:"label,omitempty"`
	Color          string `json:"color,omitempty"`
	Size           string `json:"size,omitempty"`
	SKU            string `json:"sku,omitempty"`
	Price          Text   `json:"price,omitempty"`
	CompareAtPrice Text   `json:"compare_at_price,omitempty"`
	Available      *bool  `json:"available,omitempty"`
	Weight         Text   `json:"weight,omitempty"`
	WeightUnit     string `json:"weight_unit,omitempty"`
	ImageSrc       string `json:"image_src,omitempty"`
}

// ColorAndSize returns the variant colour and size, deriving them from a
// "Color / Size" label when the explicit fields are empty.
func (v Variant) ColorAndSize() (string, string) {
	color, size := v.Color, v.Size
	if (color == "" || size == "") && v.Label != "" {
		parts := strings.Split(v.Label, "/")
		if color == "" {
			color = strings.TrimSpace(parts[0])
		}
		if size == "" && len(parts) > 1 {
			size = strings.TrimSpace(parts[1])
		}
	}
	return color, size
}

// Image is a product image.
type Image struct {
	Src string `json:"src"`
	Alt string `json:"alt,omitempty"`
}

// Option is a named product option and its values, e.g. Size: S, M, L.
type Option struct {
	Name   string   `json:"name"`
	Values []string `json:"values,omitempty"`
}

// Text is a string that also accepts JSON numbers, since catalogue exports
// disagree on whether prices and weights are quoted.
type Text string

// UnmarshalJSON implements json.Unmarshaler.
func (t *Text) UnmarshalJSON(data []byte) error {
	data = bytes.TrimSpace(data)
	if len(data) == 0 || bytes.Equal(data, []byte("null")) {
		*t = ""
		return nil
	}
	if data[0] == '"' {
		var s string
		if err := json.Unmarshal(data, &s); err != nil {
			return err
		}
		*t = Text(s)
		return nil
	}
	var n json.Number
	if err := json.Unmarshal(data, &n); err != nil {
		return err
	}
	*t = Text(n.String())
	return nil
}

// TrackingInfo is the status of an order as reported by a tracker.
type TrackingInfo struct {
	Status  string `json:"status"`
	Details string `json:"details"`
}

// Empty reports whether p carries no product facts. Indexers emit `{}` for
// non-product pages.
func (p *ProductInfo) Empty() bool {
	if p == nil {
		return true
	}
	return p.Name == "" && p.Title == "" && p.Handle == "" &&
		p.StartingPrice() == "" && p.Materials == "" && p.Care == "" &&
		p.Warranty == "" && p.ShippingInfo == "" &&
		len(p.Options) == 0 && len(p.Variants) == 0 && len(p.Images) == 0
}
