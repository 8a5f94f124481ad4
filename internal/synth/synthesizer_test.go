package synth

import (
	"context"
	"errors"
	"math/rand"
	"strings"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/Kailramiya/AI4Chat-ai-assistant/internal/adapter/tracking"
	"github.com/Kailramiya/AI4Chat-ai-assistant/internal/domain"
)

type failingTracker struct{}

func (failingTracker) Lookup(ctx context.Context, orderID string) (domain.TrackingInfo, error) {
	return domain.TrackingInfo{}, errors.New("order system down")
}

func boolPtr(b bool) *bool { return &b }

func hoodieDoc() domain.Document {
	return domain.Document{
		Text:  "Classic Hoodie. Soft cotton fleece hoodie.",
		Title: "Classic Hoodie",
		URL:   "https://shop.example.com/products/classic-hoodie",
		Score: 0.92,
		ProductInfo: &domain.ProductInfo{
			Name:      "Classic Hoodie",
			BestPrice: "40.00",
			Materials: "100% cotton",
			Variants: []domain.Variant{
				{Color: "Black", Size: "M", Price: "$42", Available: boolPtr(false)},
				{Color: "blue", Size: "m", Price: "$40", Available: boolPtr(true)},
			},
		},
	}
}

func newSynth(tr tracking.Tracker) *Synthesizer {
	return New(nil, tr, nil)
}

func TestBlueHoodiePrice(t *testing.T) {
	s := newSynth(nil)
	reply, err := s.Synthesize(context.Background(), Input{
		Intent:    domain.IntentProductInquiry,
		Message:   "What is the price of the blue hoodie in size M?",
		Documents: []domain.Document{hoodieDoc()},
	})
	require.NoError(t, err)
	assert.Contains(t, reply, "Price: $40 (in stock)")
	assert.Contains(t, reply, "More details: https://shop.example.com/products/classic-hoodie")
	assert.True(t, strings.HasSuffix(reply, "More details: https://shop.example.com/products/classic-hoodie"))
}

func TestPersonalizedTemplates(t *testing.T) {
	s := newSynth(nil)
	cases := map[string]string{
		"my refund status":           ReplyPersonalizedRefund,
		"where is my package":        ReplyPersonalizedOrder,
		"my return label never came": ReplyPersonalizedReturn,
		"my card was charged twice":  ReplyPersonalizedPayment,
		"please update my account":   ReplyPersonalizedGeneric,
		"i ordered the wrong size":   ReplyPersonalizedOrder,
	}
	for msg, want := range cases {
		reply, err := s.Synthesize(context.Background(), Input{
			Intent:    domain.IntentPersonalizedAccount,
			Message:   msg,
			Documents: []domain.Document{hoodieDoc()},
		})
		require.NoError(t, err)
		assert.Equal(t, want, reply, msg)
	}
}

func TestOrderTrackingAsksForID(t *testing.T) {
	s := newSynth(tracking.NewMockTracker(rand.NewSource(1)))
	session := domain.NewSession("s1", time.Now())

	reply, err := s.Synthesize(context.Background(), Input{Intent: domain.IntentOrderTracking, Message: "track my order", Session: session})
	require.NoError(t, err)
	assert.Equal(t, ReplyAskOrderID, reply)

	reply, err = s.Synthesize(context.Background(), Input{Intent: domain.IntentOrderTracking, Message: "track my order"})
	require.NoError(t, err)
	assert.Equal(t, ReplyAskOrderID, reply)
}

func TestOrderTrackingWithOrderID(t *testing.T) {
	s := newSynth(tracking.NewMockTracker(rand.NewSource(1)))
	session := domain.NewSession("s1", time.Now())
	session.Context[domain.ContextOrderID] = "ORD-123"

	reply, err := s.Synthesize(context.Background(), Input{Intent: domain.IntentOrderTracking, Message: "status?", Session: session})
	require.NoError(t, err)
	assert.True(t, strings.HasPrefix(reply, "Order ORD-123: "), reply)

	matched := false
	for _, st := range tracking.Statuses {
		if reply == "Order ORD-123: "+st.Status+". "+st.Details {
			matched = true
		}
	}
	assert.True(t, matched, reply)
}

func TestOrderTrackingLookupFailure(t *testing.T) {
	s := newSynth(failingTracker{})
	session := domain.NewSession("s1", time.Now())
	session.Context[domain.ContextOrderID] = "ORD-9"

	reply, err := s.Synthesize(context.Background(), Input{Intent: domain.IntentOrderTracking, Message: "status", Session: session})
	require.NoError(t, err)
	assert.Contains(t, reply, "couldn't look up the status of order ORD-9")
}

func TestGeneralKnowledge(t *testing.T) {
	s := newSynth(nil)

	reply, err := s.Synthesize(context.Background(), Input{Intent: domain.IntentGeneralKnowledge, Message: "hours?"})
	require.NoError(t, err)
	assert.Equal(t, ReplyNotFound, reply)

	docs := []domain.Document{
		{Text: strings.Repeat("a", 400), URL: "1"},
		{Text: "short answer", URL: "2"},
		{Text: "third", URL: "3"},
		{Text: "fourth is dropped", URL: "4"},
	}
	reply, err = s.Synthesize(context.Background(), Input{Intent: domain.IntentGeneralKnowledge, Message: "hours?", Documents: docs})
	require.NoError(t, err)
	assert.True(t, strings.HasPrefix(reply, "Based on the information I found"))
	assert.Contains(t, reply, strings.Repeat("a", 300)+"...")
	assert.NotContains(t, reply, strings.Repeat("a", 301))
	assert.Contains(t, reply, "short answer")
	assert.Contains(t, reply, "third")
	assert.NotContains(t, reply, "fourth")
}

func TestProductNoDocuments(t *testing.T) {
	s := newSynth(nil)
	reply, err := s.Synthesize(context.Background(), Input{Intent: domain.IntentProductInquiry, Message: "price of the hoodie"})
	require.NoError(t, err)
	assert.Equal(t, ReplyProductNotFound, reply)
}

func TestProductFilterPrefersMatchingDocument(t *testing.T) {
	red := domain.Document{
		Title: "Red Tee", URL: "https://x/red",
		ProductInfo: &domain.ProductInfo{Name: "Red Tee", Variants: []domain.Variant{{Label: "Red / S", Price: "20"}}},
	}
	reply := productReply("how much is the blue one in size m", []domain.Document{red, hoodieDoc()})
	assert.Contains(t, reply, "Classic Hoodie")
	assert.Contains(t, reply, "Price: $40 (in stock)")
}

func TestProductFilterFallsBack(t *testing.T) {
	reply := productReply("price of the pink hoodie", []domain.Document{hoodieDoc()})
	assert.Contains(t, reply, "Classic Hoodie")
	// No pink variant: first variant is used.
	assert.Contains(t, reply, "Price: $42 (out of stock)")
}

func TestProductNotSpecifiedLines(t *testing.T) {
	reply := productReply("does it have a warranty, what does it weigh, and shipping?", []domain.Document{hoodieDoc()})
	lines := strings.Split(reply, "\n")
	require.Len(t, lines, 5)
	assert.Equal(t, "Warranty: not specified", lines[1])
	assert.Equal(t, "Shipping: not specified", lines[2])
	assert.Equal(t, "Weight: not specified", lines[3])
	assert.Equal(t, "More details: https://shop.example.com/products/classic-hoodie", lines[4])
}

func TestProductFlagOrder(t *testing.T) {
	doc := hoodieDoc()
	doc.ProductInfo.Warranty = "1 year"
	doc.ProductInfo.Options = []domain.Option{{Name: "Size", Values: []string{"S", "M"}}}
	reply := productReply("warranty? what sizes? is it in stock? price? material?", []domain.Document{doc})
	lines := strings.Split(reply, "\n")

	var keys []string
	for _, l := range lines[1 : len(lines)-1] {
		keys = append(keys, strings.SplitN(l, ":", 2)[0])
	}
	assert.Equal(t, []string{"Price", "Availability", "Materials", "Care", "Options", "Warranty"}, keys)
	assert.Contains(t, reply, "Options: Size: S, M")
	assert.Contains(t, reply, "Warranty: 1 year")
	assert.Contains(t, reply, "Care: not specified")
}

func TestProductSummaryWithoutFlags(t *testing.T) {
	reply := productReply("tell me about the hoodie", []domain.Document{hoodieDoc()})
	assert.Contains(t, reply, "Price: from $40.00")
	assert.Contains(t, reply, "Materials: 100% cotton")
	assert.Contains(t, reply, "Availability: In stock")
}

func TestProductSummaryAvailabilityAcrossVariants(t *testing.T) {
	doc := hoodieDoc()
	doc.ProductInfo.Variants[1].Available = boolPtr(false)
	reply := productReply("tell me about the hoodie", []domain.Document{doc})
	assert.Contains(t, reply, "Availability: Out of stock")

	doc.ProductInfo.Variants = []domain.Variant{{Color: "Black", Price: "$42"}}
	reply = productReply("tell me about the hoodie", []domain.Document{doc})
	assert.NotContains(t, reply, "Availability:")
}

func TestProductFilterMatchesPlainText(t *testing.T) {
	tee := domain.Document{Title: "Classic Tee", URL: "https://x/tee", Text: "Classic tee available in Small only."}
	hoodie := domain.Document{Title: "Hoodie", URL: "https://x/hoodie", Text: "Hoodie available in Medium and Large."}

	attrs := ExtractAttributes("is the hoodie available in medium?")
	require.Len(t, FilterByAttributes([]domain.Document{tee, hoodie}, attrs), 1)
	reply := productReply("is the hoodie available in medium?", []domain.Document{tee, hoodie})
	assert.True(t, strings.HasPrefix(reply, "Hoodie: "), reply)

	attrs = ExtractAttributes("anything in size m?")
	require.Len(t, FilterByAttributes([]domain.Document{tee, hoodie}, attrs), 1)
	assert.Equal(t, "Hoodie", FilterByAttributes([]domain.Document{tee, hoodie}, attrs)[0].Title)

	black := domain.Document{Title: "Black Jacket", URL: "https://x/black", Text: "Rain jacket in black."}
	grey := domain.Document{Title: "Grey Jacket", URL: "https://x/grey", Text: "Rain jacket in grey."}
	reply = productReply("do you have a grey jacket?", []domain.Document{black, grey})
	assert.True(t, strings.HasPrefix(reply, "Grey Jacket: "), reply)
	reply = productReply("do you have a gray jacket?", []domain.Document{black, grey})
	assert.True(t, strings.HasPrefix(reply, "Grey Jacket: "), reply)
}

func TestProductWithoutProductInfo(t *testing.T) {
	doc := domain.Document{Title: "Shipping Policy", URL: "https://x/ship", Text: "Orders ship in 2 days."}
	reply := productReply("is shipping available", []domain.Document{doc})
	assert.Equal(t, "Shipping Policy: Orders ship in 2 days.\nMore details: https://x/ship", reply)
}

func TestDedupeByURL(t *testing.T) {
	docs := []domain.Document{{URL: "a", Title: "1"}, {URL: "b"}, {URL: "a", Title: "2"}, {URL: "c"}}
	got := DedupeByURL(docs)
	require.Len(t, got, 3)
	assert.Equal(t, "1", got[0].Title)
	assert.Equal(t, "b", got[1].URL)
	assert.Equal(t, "c", got[2].URL)
}

func TestFormatPrice(t *testing.T) {
	assert.Equal(t, "$40", FormatPrice("40"))
	assert.Equal(t, "$40.50", FormatPrice(" 40.50 "))
	assert.Equal(t, "$40", FormatPrice("$40"))
	assert.Equal(t, "€35", FormatPrice("€35"))
}

func TestUnknownIntent(t *testing.T) {
	_, err := newSynth(nil).Synthesize(context.Background(), Input{Intent: "smalltalk"})
	assert.Error(t, err)
}
