package twilio

import "strings"

// Carrier-standard opt-out keywords for inbound SMS bodies.
var optOutKeywords = []string{"STOP", "UNSUBSCRIBE", "CANCEL", "END", "QUIT"}

// IsOptOut reports whether an inbound message body is an opt-out request.
// Matching is whole-body: "STOP" opts out, "please stop" does not.
func IsOptOut(body string) bool {
	normalized := strings.ToUpper(strings.TrimSpace(body))
	for _, kw := range optOutKeywords {
		if normalized == kw {
			return true
		}
	}
	return false
}
