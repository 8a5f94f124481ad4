package synth

import (
	"regexp"
	"strings"
)

// Attributes are the product facts a message asks about.
type Attributes struct {
	// Color and Size are normalized; ColorWord and SizeWord keep the word as typed.
	Color     string
	Size      string
	ColorWord string
	SizeWord  string

	Price        bool
	Availability bool
	Materials    bool
	Options      bool
	Warranty     bool
	Shipping     bool
	Image        bool
	Weight       bool
}

// HasFlags reports whether any specific fact was requested.
func (a Attributes) HasFlags() bool {
	return a.Price || a.Availability || a.Materials || a.Options ||
		a.Warranty || a.Shipping || a.Image || a.Weight
}

var (
	colorRe     = regexp.MustCompile(`\b(black|white|red|blue|green|yellow|gray|grey|pink)\b`)
	sizeAfterRe = regexp.MustCompile(`\bsize(?:\s*:\s*|\s+)(xxl|xl|xs|small|medium|large|s|m|l)\b`)
	sizeWordRe  = regexp.MustCompile(`\b(xxl|xl|xs|small|medium|large)\b`)

	priceRe        = regexp.MustCompile(`\b(price|prices|pricing|cost|costs|how much|expensive|cheap|cheaper)\b`)
	availabilityRe = regexp.MustCompile(`\b(available|availability|in stock|stock|sold out)\b`)
	materialsRe    = regexp.MustCompile(`\b(material|materials|made of|fabric|fabrics|care|wash|washing)\b`)
	optionsRe      = regexp.MustCompile(`\b(option|options|variant|variants|colors|colours|sizes|come in)\b`)
	warrantyRe     = regexp.MustCompile(`\b(warranty|warranties|guarantee|guaranteed)\b`)
	shippingRe     = regexp.MustCompile(`\b(ship|ships|shipping|shipped|delivery|deliver)\b`)
	imageRe        = regexp.MustCompile(`\b(image|images|picture|pictures|photo|photos)\b`)
	weightRe       = regexp.MustCompile(`\b(weight|weigh|weighs|heavy)\b`)
)

var sizeAliases = map[string]string{
	"small":  "s",
	"medium": "m",
	"large":  "l",
}

// spellings lists the words that name a normalized colour or size in free
// text. Bare size letters are left out since "it's" would match "s".
var spellings = map[string][]string{
	"gray": {"gray", "grey"},
	"s":    {"small"},
	"m":    {"medium"},
	"l":    {"large"},
}

func wordForms(normalized, typed string) []string {
	forms := []string{normalized}
	if alt, ok := spellings[normalized]; ok {
		forms = alt
	}
	if typed != "" && typed != normalized {
		forms = append(forms, typed)
	}
	return forms
}

// NormalizeColor maps colour spellings onto one name.
func NormalizeColor(c string) string {
	c = strings.ToLower(strings.TrimSpace(c))
	if c == "grey" {
		return "gray"
	}
	return c
}

// NormalizeSize maps size words onto their letter codes.
func NormalizeSize(s string) string {
	s = strings.ToLower(strings.TrimSpace(s))
	if alias, ok := sizeAliases[s]; ok {
		return alias
	}
	return s
}

// ExtractAttributes reads the requested colour, size and fact flags from message.
func ExtractAttributes(message string) Attributes {
	lower := strings.ToLower(message)
	var a Attributes

	if m := colorRe.FindStringSubmatch(lower); m != nil {
		a.ColorWord = m[1]
		a.Color = NormalizeColor(m[1])
	}
	// Bare letters are only trusted right after "size".
	if m := sizeAfterRe.FindStringSubmatch(lower); m != nil {
		a.SizeWord = m[1]
	} else if m := sizeWordRe.FindStringSubmatch(lower); m != nil {
		a.SizeWord = m[1]
	}
	if a.SizeWord != "" {
		a.Size = NormalizeSize(a.SizeWord)
	}

	a.Price = priceRe.MatchString(lower)
	a.Availability = availabilityRe.MatchString(lower)
	a.Materials = materialsRe.MatchString(lower)
	a.Options = optionsRe.MatchString(lower)
	a.Warranty = warrantyRe.MatchString(lower)
	a.Shipping = shippingRe.MatchString(lower)
	a.Image = imageRe.MatchString(lower)
	a.Weight = weightRe.MatchString(lower)
	return a
}
