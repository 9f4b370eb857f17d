package payment

import "strings"

// declineMappings translate server decline reasons into user-facing sentences
// by substring match, first hit wins. Unknown reasons surface verbatim.
var declineMappings = []struct {
	substring string
	message   string
}{
	{"zip", "Invalid ZIP code. Please verify your billing ZIP code and try again."},
	{"checksum", "Card number failed verification. Please re-enter your card number."},
	{"expired", "This card has expired. Please use a different card."},
	{"invalid card", "Invalid card details. Please check your card information and try again."},
	{"not in pending", "This booking was already processed, please refresh."},
	{"already processed", "This booking was already processed, please refresh."},
	{"insufficient", "Payment was declined due to insufficient funds."},
}

// MapDeclineMessage resolves a server decline reason to its user-visible
// sentence, falling back to the raw message.
func MapDeclineMessage(raw string) string {
	trimmed := strings.TrimSpace(raw)
	if trimmed == "" {
		return "Payment failed, please try again."
	}
	lowered := strings.ToLower(trimmed)
	for _, mapping := range declineMappings {
		if strings.Contains(lowered, mapping.substring) {
			return mapping.message
		}
	}
	return trimmed
}
