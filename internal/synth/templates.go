package synth

// Fixed replies.
const (
	ReplyPersonalizedOrder = "I can't see individual order or delivery details from here. " +
		"Please use the order tracking form with your order ID, or contact our support team " +
		"with your order number and we'll look into it for you."
	ReplyPersonalizedRefund = "I can't see the status of individual refunds. Refunds are usually " +
		"issued to the original payment method within 5-10 business days after we receive your " +
		"return. For your specific refund, please contact our support team with your order number."
	ReplyPersonalizedReturn = "I can't access individual return requests. Items can usually be " +
		"returned within 30 days of delivery. Please contact our support team with your order " +
		"number to start or check on a return."
	ReplyPersonalizedPayment = "For your security I can't view payment or billing details. " +
		"Please contact our support team, and never share full card numbers in this chat."
	ReplyPersonalizedGeneric = "I can't access personal account information from here. " +
		"Please contact our support team and they'll be glad to help with your account."

	ReplyAskOrderID = "I'd be happy to help you track your order! Please provide your order ID " +
		"so I can look up its status."

	ReplyNotFound = "I'm sorry, I couldn't find any information about that. Could you try " +
		"rephrasing your question, or contact our support team for more help?"

	ReplyProductNotFound = "I couldn't find a product matching your question. Could you tell me " +
		"a bit more about what you're looking for?"

	generalIntro   = "Based on the information I found:"
	generalOutro   = "Is there anything else I can help you with?"
	moreDetails    = "More details: "
	notSpecified   = "not specified"
	snippetLength  = 300
	trackingFailed = "I couldn't look up the status of order %s right now. Please try again shortly."
)

var personalizedReplies = map[string]string{
	"order":   ReplyPersonalizedOrder,
	"refund":  ReplyPersonalizedRefund,
	"return":  ReplyPersonalizedReturn,
	"payment": ReplyPersonalizedPayment,
}
