package wizard

// PromptKind identifies what the transport should render next.
type PromptKind int

const (
	// PromptNone means acknowledge the interaction without changing the UI.
	PromptNone PromptKind = iota
	// PromptMainMenu shows the direction choice and the report shortcuts.
	PromptMainMenu
	// PromptOrigins lists the entry origins.
	PromptOrigins
	// PromptCategories lists the expense categories.
	PromptCategories
	// PromptSubcategories lists the subcategories of Prompt.Category.
	PromptSubcategories
	// PromptPayments lists the payment methods.
	PromptPayments
	// PromptDateChoice offers the date quick actions.
	PromptDateChoice
	// PromptNoSubcategories is the dead-end shown for a category with no
	// configured subcategories; only the back button leads out.
	PromptNoSubcategories
	// PromptAmountForm requests the amount, date already fixed in Prompt.Date.
	PromptAmountForm
	// PromptDateAmountForm requests date and amount together as free text.
	PromptDateAmountForm
	// PromptDateSuggestion asks the user to confirm Prompt.Suggestion or
	// re-type the date (Prompt.RawDate holds the original input).
	PromptDateSuggestion
	// PromptInvalidDate tells the user their date was unrecognizable.
	PromptInvalidDate
	// PromptSubmitted confirms a successful submission for Prompt.Date.
	PromptSubmitted
	// PromptSubmitFailed reports a failed submission. Prompt.Timeout
	// distinguishes a deadline expiry from other transport failures.
	PromptSubmitFailed
)

// Prompt is the wizard's instruction to the transport. Which fields are
// meaningful depends on Kind; Back is the zero Event when the prompt has no
// back navigation.
type Prompt struct {
	Kind        PromptKind
	Options     []string
	Category    string
	Selected    string // the choice that led here, for the prompt text
	Date        string
	RawDate     string
	Suggestion  string
	HasLastDate bool
	Timeout     bool
	Back        Event
}

// HasBack reports whether the prompt carries a back navigation target.
func (p Prompt) HasBack() bool {
	return p.Back != (Event{})
}
