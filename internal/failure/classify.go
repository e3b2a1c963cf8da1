// Package failure maps raw error text onto the coarse categories the client
// uses to choose which message a user sees.
package failure

import "strings"

// Kind is the routing key for presenting a failed request.
type Kind int

const (
	// Generic failures show the underlying message as-is.
	Generic Kind = iota
	// QuotaExhausted failures come from upstream billing or rate limits and
	// are always replaced by the administrator-contact message.
	QuotaExhausted
)

func (k Kind) String() string {
	switch k {
	case QuotaExhausted:
		return "quota_exhausted"
	default:
		return "generic"
	}
}

// quotaKeywords are matched as lower-case substrings. "limit" also matches
// phrases such as "character limit"; that is accepted.
var quotaKeywords = []string{
	"quota",
	"insufficient_quota",
	"rate_limit",
	"credits",
	"billing",
	"exceeded",
	"limit",
}

// Classify returns QuotaExhausted when text mentions any quota keyword in any
// letter case, otherwise Generic.
func Classify(text string) Kind {
	lower := strings.ToLower(text)
	for _, kw := range quotaKeywords {
		if strings.Contains(lower, kw) {
			return QuotaExhausted
		}
	}
	return Generic
}

// AdminMessage builds the fixed message shown for QuotaExhausted failures.
func AdminMessage(contact string) string {
	if contact == "" {
		return "⚠️ API credits exhausted. Please contact the administrator"
	}
	return "⚠️ API credits exhausted. Please contact the administrator at " + contact
}

// Present classifies raw and returns the kind together with the text to show.
// Quota failures drop the upstream detail in favour of adminMsg.
func Present(raw, adminMsg string) (Kind, string) {
	kind := Classify(raw)
	if kind == QuotaExhausted {
		return kind, adminMsg
	}
	return kind, raw
}
