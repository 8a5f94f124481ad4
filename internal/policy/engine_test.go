package policy

import (
	"context"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/Kailramiya/AI4Chat-ai-assistant/internal/domain"
)

func TestDefaultPolicyRouting(t *testing.T) {
	ctx := context.Background()
	engine, err := NewEngine(ctx, DefaultPolicy)
	require.NoError(t, err)

	cases := map[domain.Intent]string{
		domain.IntentProductInquiry:      DecisionRetrieve,
		domain.IntentGeneralKnowledge:    DecisionRetrieve,
		domain.IntentOrderTracking:       DecisionSkip,
		domain.IntentPersonalizedAccount: DecisionSkip,
	}
	for intent, want := range cases {
		got, err := engine.Evaluate(ctx, Input{Intent: intent, Message: "hello"})
		require.NoError(t, err)
		assert.Equal(t, want, got, intent)

		needs, err := engine.NeedsDocuments(ctx, Input{Intent: intent})
		require.NoError(t, err)
		assert.Equal(t, intent.NeedsDocuments(), needs, intent)
	}
}

func TestCustomPolicy(t *testing.T) {
	ctx := context.Background()
	engine, err := NewEngine(ctx, `
package routing

default decision = "skip"

decision = "retrieve" {
	contains(input.message, "warranty")
}
`)
	require.NoError(t, err)

	got, err := engine.Evaluate(ctx, Input{Intent: domain.IntentPersonalizedAccount, Message: "my warranty claim"})
	require.NoError(t, err)
	assert.Equal(t, DecisionRetrieve, got)

	got, err = engine.Evaluate(ctx, Input{Intent: domain.IntentProductInquiry, Message: "price?"})
	require.NoError(t, err)
	assert.Equal(t, DecisionSkip, got)
}

func TestPolicyFallback(t *testing.T) {
	ctx := context.Background()
	engine, err := NewEngine(ctx, `
package routing

decision = "maybe" {
	true
}
`)
	require.NoError(t, err)

	needs, err := engine.NeedsDocuments(ctx, Input{Intent: domain.IntentProductInquiry})
	assert.Error(t, err)
	assert.True(t, needs)

	needs, err = engine.NeedsDocuments(ctx, Input{Intent: domain.IntentOrderTracking})
	assert.Error(t, err)
	assert.False(t, needs)

	var nilEngine *Engine
	needs, err = nilEngine.NeedsDocuments(ctx, Input{Intent: domain.IntentGeneralKnowledge})
	require.NoError(t, err)
	assert.True(t, needs)
}

func TestInvalidPolicy(t *testing.T) {
	_, err := NewEngine(context.Background(), "package routing\n\ndecision = {")
	assert.Error(t, err)
}
