package presentation

// FAQItem is a question with its answer.
type FAQItem struct {
	Question string `json:"question" yaml:"question"`
	Answer   string `json:"answer" yaml:"answer"`
}

// Accordion keeps at most one answer open.
type Accordion struct {
	items []FAQItem
	open  int
}

// NewAccordion returns an accordion with every answer closed.
func NewAccordion(items []FAQItem) *Accordion {
	return &Accordion{
		items: append([]FAQItem(nil), items...),
		open:  -1,
	}
}

// Toggle closes every answer and then opens index only if it was closed
// before the call. Out of range indexes just close everything.
func (a *Accordion) Toggle(index int) {
	wasOpen := a.IsOpen(index)
	a.open = -1
	if !wasOpen && index >= 0 && index < len(a.items) {
		a.open = index
	}
}

// IsOpen reports whether the answer at index is visible.
func (a *Accordion) IsOpen(index int) bool {
	return a != nil && a.open >= 0 && a.open == index
}

// Open returns the index of the open answer, if any.
func (a *Accordion) Open() (int, bool) {
	if a == nil || a.open < 0 {
		return -1, false
	}
	return a.open, true
}

// Items returns a copy of the entries.
func (a *Accordion) Items() []FAQItem {
	if a == nil {
		return nil
	}
	return append([]FAQItem(nil), a.items...)
}

// Len returns the number of entries.
func (a *Accordion) Len() int {
	if a == nil {
		return 0
	}
	return len(a.items)
}

// DefaultFAQ lists the stock questions shown beneath the form.
func DefaultFAQ() []FAQItem {
	return []FAQItem{
		{
			Question: "How does the obituary writer work?",
			Answer:   "Fill in the name, optional age, a few details and a tone. The text is generated remotely and shown in the preview, where you can copy or download it.",
		},
		{
			Question: "What happens if the generation service is unavailable?",
			Answer:   "A tone-specific sample is filled in with the name, age and today's date so you still get a formatted starting point. Bracketed fields such as [Location] are left for you to complete.",
		},
		{
			Question: "Is my information stored?",
			Answer:   "No. The form is sent once to the generation service and nothing is kept after the preview is replaced or reset.",
		},
		{
			Question: "Can I edit the result?",
			Answer:   "Yes. Copy the text or download it as obituary.txt and edit it in any editor.",
		},
	}
}
