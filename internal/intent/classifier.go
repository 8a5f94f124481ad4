// Package intent classifies user messages into coarse intents with an ordered
// keyword cascade.
package intent

import (
	_ "embed"
	"fmt"
	"strings"

	"gopkg.in/yaml.v3"

	"github.com/Kailramiya/AI4Chat-ai-assistant/internal/domain"
)

//go:embed keywords.yaml
var defaultRulesYAML []byte

// Rule maps a set of trigger phrases to an intent.
type Rule struct {
	Intent  domain.Intent `yaml:"intent"`
	Phrases []string      `yaml:"phrases"`
}

// Topic is a keyword group used to pick a personalized-account template.
type Topic struct {
	Topic   string   `yaml:"topic"`
	Phrases []string `yaml:"phrases"`
}

// Rules is the full keyword table set.
type Rules struct {
	Cascade            []Rule  `yaml:"cascade"`
	PersonalizedTopics []Topic `yaml:"personalized_topics"`
}

// ParseRules decodes a YAML rule table and validates it.
func ParseRules(data []byte) (Rules, error) {
	var rules Rules
	if err := yaml.Unmarshal(data, &rules); err != nil {
		return Rules{}, fmt.Errorf("failed to parse intent rules: %w", err)
	}
	for i, r := range rules.Cascade {
		if !r.Intent.Valid() {
			return Rules{}, fmt.Errorf("cascade entry %d: unknown intent %q", i, r.Intent)
		}
		if len(r.Phrases) == 0 {
			return Rules{}, fmt.Errorf("cascade entry %d (%s): no phrases", i, r.Intent)
		}
		for j, p := range r.Phrases {
			rules.Cascade[i].Phrases[j] = strings.ToLower(p)
		}
	}
	for i, t := range rules.PersonalizedTopics {
		for j, p := range t.Phrases {
			rules.PersonalizedTopics[i].Phrases[j] = strings.ToLower(p)
		}
	}
	return rules, nil
}

// DefaultRules returns the embedded keyword tables.
func DefaultRules() Rules {
	rules, err := ParseRules(defaultRulesYAML)
	if err != nil {
		panic(err)
	}
	return rules
}

// Classifier evaluates the cascade. It holds no mutable state and is safe for
// concurrent use.
type Classifier struct {
	rules Rules
}

// NewClassifier creates a classifier over the given rules.
func NewClassifier(rules Rules) *Classifier {
	return &Classifier{rules: rules}
}

var defaultClassifier = NewClassifier(DefaultRules())

// Default returns the classifier built from the embedded tables.
func Default() *Classifier {
	return defaultClassifier
}

// Classify returns the first intent in the cascade whose phrases occur in message,
// or general knowledge when none do.
func (c *Classifier) Classify(message string) domain.Intent {
	lower := strings.ToLower(message)
	for _, rule := range c.rules.Cascade {
		if containsAny(lower, rule.Phrases) {
			return rule.Intent
		}
	}
	return domain.IntentGeneralKnowledge
}

// PersonalizedTopic returns the first personalized topic mentioned in message,
// or "" for the generic template.
func (c *Classifier) PersonalizedTopic(message string) string {
	lower := strings.ToLower(message)
	for _, t := range c.rules.PersonalizedTopics {
		if containsAny(lower, t.Phrases) {
			return t.Topic
		}
	}
	return ""
}

// Classify classifies message with the default tables.
func Classify(message string) domain.Intent {
	return defaultClassifier.Classify(message)
}

func containsAny(s string, phrases []string) bool {
	for _, p := range phrases {
		if p != "" && strings.Contains(s, p) {
			return true
		}
	}
	return false
}
