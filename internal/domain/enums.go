// Package domain defines the core domain models for the support assistant.
package domain

// Role identifies who authored a message.
type Role string

const (
	RoleUser      Role = "user"
	RoleAssistant Role = "assistant"
)

// Intent is the coarse classification of a user message.
type Intent string

const (
	IntentPersonalizedAccount Intent = "personalized_account"
	IntentOrderTracking       Intent = "order_tracking"
	IntentProductInquiry      Intent = "product_inquiry"
	IntentGeneralKnowledge    Intent = "general_knowledge"
)

// NeedsDocuments reports whether replies for the intent are grounded in retrieved documents.
func (i Intent) NeedsDocuments() bool {
	return i == IntentProductInquiry || i == IntentGeneralKnowledge
}

// Valid reports whether i is one of the known intents.
func (i Intent) Valid() bool {
	switch i {
	case IntentPersonalizedAccount, IntentOrderTracking, IntentProductInquiry, IntentGeneralKnowledge:
		return true
	}
	return false
}

// Session context keys.
const (
	ContextOrderID      = "orderId"
	ContextCustomerInfo = "customerInfo"
)

// MaxSources is the number of citations returned with a reply.
const MaxSources = 3
