// Package policy decides per turn whether a reply must be grounded in
// retrieved documents.
package policy

import (
	"context"
	_ "embed"
	"fmt"

	"github.com/open-policy-agent/opa/rego"

	"github.com/Kailramiya/AI4Chat-ai-assistant/internal/domain"
)

// Decisions returned by the routing policy.
const (
	DecisionRetrieve = "retrieve"
	DecisionSkip     = "skip"
)

// DefaultPolicy retrieves for product and general-knowledge intents.
//
//go:embed routing.rego
var DefaultPolicy string

// Input is the document evaluated by the policy.
type Input struct {
	Intent  domain.Intent `json:"intent"`
	Message string        `json:"message"`
}

// Engine is the OPA policy engine.
type Engine struct {
	query rego.PreparedEvalQuery
}

// NewEngine creates a new policy engine with the given policy content.
// The module must define data.routing.decision.
func NewEngine(ctx context.Context, policyContent string) (*Engine, error) {
	r := rego.New(
		rego.Query("data.routing.decision"),
		rego.Module("routing.rego", policyContent),
	)

	query, err := r.PrepareForEval(ctx)
	if err != nil {
		return nil, fmt.Errorf("failed to prepare rego: %w", err)
	}

	return &Engine{query: query}, nil
}

// Evaluate returns DecisionRetrieve or DecisionSkip.
func (e *Engine) Evaluate(ctx context.Context, in Input) (string, error) {
	results, err := e.query.Eval(ctx, rego.EvalInput(map[string]interface{}{
		"intent":  string(in.Intent),
		"message": in.Message,
	}))
	if err != nil {
		return "", fmt.Errorf("failed to evaluate policy: %w", err)
	}

	if len(results) == 0 || len(results[0].Expressions) == 0 {
		return "", fmt.Errorf("policy produced no decision")
	}

	switch val := results[0].Expressions[0].Value.(type) {
	case string:
		if val != DecisionRetrieve && val != DecisionSkip {
			return "", fmt.Errorf("unknown policy decision %q", val)
		}
		return val, nil
	default:
		return "", fmt.Errorf("unexpected policy result type %T", val)
	}
}

// NeedsDocuments evaluates the policy and falls back to the intent's default
// when the policy cannot be evaluated. The error, if any, is still returned
// so callers can log it.
func (e *Engine) NeedsDocuments(ctx context.Context, in Input) (bool, error) {
	if e == nil {
		return in.Intent.NeedsDocuments(), nil
	}
	decision, err := e.Evaluate(ctx, in)
	if err != nil {
		return in.Intent.NeedsDocuments(), err
	}
	return decision == DecisionRetrieve, nil
}
