package synth

import (
	"fmt"
	"regexp"
	"strings"
	"unicode"

	"github.com/Kailramiya/AI4Chat-ai-assistant/internal/domain"
)

// DedupeByURL keeps the first document for each URL, preserving order.
func DedupeByURL(docs []domain.Document) []domain.Document {
	seen := make(map[string]struct{}, len(docs))
	out := make([]domain.Document, 0, len(docs))
	for _, d := range docs {
		if _, dup := seen[d.URL]; dup {
			continue
		}
		seen[d.URL] = struct{}{}
		out = append(out, d)
	}
	return out
}

// FilterByAttributes keeps documents that offer the requested colour and size,
// either as a variant or in their text. It never filters down to nothing.
func FilterByAttributes(docs []domain.Document, attrs Attributes) []domain.Document {
	if attrs.Color == "" && attrs.Size == "" {
		return docs
	}
	var out []domain.Document
	for _, d := range docs {
		if hasMatchingVariant(d, attrs) || textMentions(d.Text, attrs) {
			out = append(out, d)
		}
	}
	if len(out) == 0 {
		return docs
	}
	return out
}

func hasMatchingVariant(d domain.Document, attrs Attributes) bool {
	if d.ProductInfo == nil {
		return false
	}
	for _, v := range d.ProductInfo.Variants {
		if variantMatches(v, attrs) {
			return true
		}
	}
	return false
}

func variantMatches(v domain.Variant, attrs Attributes) bool {
	color, size := v.ColorAndSize()
	if attrs.Color != "" && NormalizeColor(color) != attrs.Color {
		return false
	}
	if attrs.Size != "" && NormalizeSize(size) != attrs.Size {
		return false
	}
	return true
}

// textMentions reports whether text names the requested colour and size in
// any of their spellings, as whole words.
func textMentions(text string, attrs Attributes) bool {
	words := make(map[string]struct{})
	for _, w := range strings.FieldsFunc(strings.ToLower(text), func(r rune) bool {
		return !unicode.IsLetter(r) && !unicode.IsDigit(r)
	}) {
		words[w] = struct{}{}
	}
	if attrs.Color != "" && !containsAny(words, wordForms(attrs.Color, attrs.ColorWord)) {
		return false
	}
	if attrs.Size != "" && !containsAny(words, wordForms(attrs.Size, attrs.SizeWord)) {
		return false
	}
	return true
}

func containsAny(words map[string]struct{}, forms []string) bool {
	for _, f := range forms {
		if _, ok := words[f]; ok {
			return true
		}
	}
	return false
}

// PickVariant returns the variant matching attrs, else the first one.
func PickVariant(info *domain.ProductInfo, attrs Attributes) *domain.Variant {
	if info == nil || len(info.Variants) == 0 {
		return nil
	}
	if attrs.Color != "" || attrs.Size != "" {
		for i := range info.Variants {
			if variantMatches(info.Variants[i], attrs) {
				return &info.Variants[i]
			}
		}
	}
	return &info.Variants[0]
}

var plainNumberRe = regexp.MustCompile(`^\d+(\.\d+)?$`)

// FormatPrice prefixes bare numbers with a dollar sign and leaves anything else as is.
func FormatPrice(p domain.Text) string {
	s := strings.TrimSpace(string(p))
	if plainNumberRe.MatchString(s) {
		return "$" + s
	}
	return s
}

func productReply(message string, docs []domain.Document) string {
	docs = DedupeByURL(docs)
	if len(docs) == 0 {
		return ReplyProductNotFound
	}
	attrs := ExtractAttributes(message)
	doc := FilterByAttributes(docs, attrs)[0]

	var lines []string
	info := doc.ProductInfo
	if info == nil {
		lines = append(lines, fmt.Sprintf("%s: %s", doc.Title, truncate(doc.Text, snippetLength)))
	} else {
		variant := PickVariant(info, attrs)
		lines = append(lines, header(doc, info, variant))
		if attrs.HasFlags() {
			lines = append(lines, flagLines(info, variant, attrs)...)
		} else {
			lines = append(lines, summaryLines(doc, info, variant, attrs)...)
		}
	}
	if doc.URL != "" {
		lines = append(lines, moreDetails+doc.URL)
	}
	return strings.Join(lines, "\n")
}

func header(doc domain.Document, info *domain.ProductInfo, v *domain.Variant) string {
	name := info.DisplayName()
	if name == "" {
		name = doc.Title
	}
	if v != nil && v.Label != "" {
		return fmt.Sprintf("Here's what I found for %s (%s):", name, v.Label)
	}
	return fmt.Sprintf("Here's what I found for %s:", name)
}

// flagLines emits one line per requested fact in a fixed order.
func flagLines(info *domain.ProductInfo, v *domain.Variant, attrs Attributes) []string {
	var lines []string
	if attrs.Price {
		lines = append(lines, priceLine(info, v))
	}
	if attrs.Availability {
		lines = append(lines, "Availability: "+availability(v))
	}
	if attrs.Materials {
		lines = append(lines, "Materials: "+orNotSpecified(info.Materials))
		lines = append(lines, "Care: "+orNotSpecified(info.Care))
	}
	if attrs.Options {
		lines = append(lines, "Options: "+orNotSpecified(options(info)))
	}
	if attrs.Warranty {
		lines = append(lines, "Warranty: "+orNotSpecified(info.Warranty))
	}
	if attrs.Shipping {
		lines = append(lines, "Shipping: "+orNotSpecified(info.ShippingInfo))
	}
	if attrs.Image {
		lines = append(lines, "Image: "+orNotSpecified(image(info, v)))
	}
	if attrs.Weight {
		lines = append(lines, "Weight: "+orNotSpecified(weight(v)))
	}
	return lines
}

func summaryLines(doc domain.Document, info *domain.ProductInfo, v *domain.Variant, attrs Attributes) []string {
	var lines []string
	if price := info.StartingPrice(); price != "" {
		lines = append(lines, "Price: from "+FormatPrice(domain.Text(price)))
	}
	if info.Materials != "" {
		lines = append(lines, "Materials: "+info.Materials)
	}
	if info.Care != "" {
		lines = append(lines, "Care: "+info.Care)
	}
	if attrs.Color == "" && attrs.Size == "" {
		if stock := anyInStock(info); stock != "" {
			lines = append(lines, "Availability: "+stock)
		}
	} else if v != nil && v.Available != nil {
		lines = append(lines, "Availability: "+availability(v))
	}
	if len(lines) == 0 && doc.Text != "" {
		lines = append(lines, truncate(doc.Text, snippetLength))
	}
	return lines
}

func priceLine(info *domain.ProductInfo, v *domain.Variant) string {
	if v != nil && v.Price != "" {
		line := "Price: " + FormatPrice(v.Price)
		if v.Available != nil {
			line += " (" + stockWord(*v.Available) + ")"
		}
		if v.CompareAtPrice != "" && v.CompareAtPrice != v.Price {
			line += ", was " + FormatPrice(v.CompareAtPrice)
		}
		return line
	}
	if price := info.StartingPrice(); price != "" {
		return "Price: from " + FormatPrice(domain.Text(price))
	}
	return "Price: " + notSpecified
}

func stockWord(available bool) string {
	if available {
		return "in stock"
	}
	return "out of stock"
}

func availability(v *domain.Variant) string {
	if v == nil || v.Available == nil {
		return notSpecified
	}
	if *v.Available {
		return "In stock"
	}
	return "Out of stock"
}

// anyInStock summarizes stock across all variants; empty when no variant says.
func anyInStock(info *domain.ProductInfo) string {
	known := false
	for _, v := range info.Variants {
		if v.Available == nil {
			continue
		}
		if *v.Available {
			return "In stock"
		}
		known = true
	}
	if known {
		return "Out of stock"
	}
	return ""
}

func options(info *domain.ProductInfo) string {
	if len(info.Options) > 0 {
		parts := make([]string, 0, len(info.Options))
		for _, o := range info.Options {
			if len(o.Values) == 0 {
				continue
			}
			parts = append(parts, o.Name+": "+strings.Join(o.Values, ", "))
		}
		return strings.Join(parts, "; ")
	}
	labels := make([]string, 0, len(info.Variants))
	for _, v := range info.Variants {
		if v.Label != "" {
			labels = append(labels, v.Label)
		}
	}
	return strings.Join(labels, ", ")
}

func image(info *domain.ProductInfo, v *domain.Variant) string {
	if v != nil && v.ImageSrc != "" {
		return v.ImageSrc
	}
	if len(info.Images) > 0 {
		return info.Images[0].Src
	}
	return ""
}

func weight(v *domain.Variant) string {
	if v == nil || v.Weight == "" {
		return ""
	}
	if v.WeightUnit != "" {
		return string(v.Weight) + " " + v.WeightUnit
	}
	return string(v.Weight)
}

func orNotSpecified(s string) string {
	if strings.TrimSpace(s) == "" {
		return notSpecified
	}
	return s
}
