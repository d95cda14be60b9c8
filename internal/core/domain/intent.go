package domain

// Intent is one entry in the closed caller-intent taxonomy. The set is fixed
// at compile time; keyword mappings are configurable at startup.
type Intent string

const (
	IntentBilling   Intent = "billing"
	IntentTechnical Intent = "technical"
	IntentAccount   Intent = "account"
	IntentSupport   Intent = "support"
	IntentCancel    Intent = "cancel"
	IntentTransfer  Intent = "transfer"
	IntentGeneral   Intent = "general"
)

// Intents returns the taxonomy in declaration order. Classification ties
// break on this order: the first listed intent wins.
func Intents() []Intent {
	return []Intent{
		IntentBilling,
		IntentTechnical,
		IntentAccount,
		IntentSupport,
		IntentCancel,
		IntentTransfer,
		IntentGeneral,
	}
}

// Valid reports whether i is a member of the taxonomy.
func (i Intent) Valid() bool {
	for _, known := range Intents() {
		if i == known {
			return true
		}
	}
	return false
}

// DefaultKeywords is the stock keyword-to-intent mapping, matched
// case-insensitively against the message text. IntentGeneral has no keywords;
// it is the fallback when nothing matches.
func DefaultKeywords() map[Intent][]string {
	return map[Intent][]string{
		IntentBilling:   {"bill", "charge", "payment", "invoice", "fee", "cost", "refund"},
		IntentTechnical: {"issue", "error", "problem", "not working", "broken", "bug", "crash"},
		IntentAccount:   {"password", "login", "account", "username", "access", "profile"},
		IntentSupport:   {"help", "support", "assist", "guide", "how to", "tutorial"},
		IntentCancel:    {"cancel", "cancellation", "terminate", "unsubscribe", "close my"},
		IntentTransfer:  {"human", "agent", "representative", "operator", "transfer", "speak to someone"},
		IntentGeneral:   {},
	}
}

// Classification is the outcome of scoring a message against the taxonomy.
type Classification struct {
	Intent Intent

	// Confidence in [0,1]: matched keywords over keywords examined for the
	// winning intent.
	Confidence float64

	// RequiresTransfer is set when the winning intent is IntentTransfer or
	// the low-confidence escalation policy fired.
	RequiresTransfer bool

	// TransferReason explains which rule fired, empty otherwise.
	TransferReason string
}
