package schema

// PackingItem is one derived packing entry. Reason records the rule that
// produced it, e.g. "rain probability above 40%".
type PackingItem struct {
	Category string `json:"category"`
	Name     string `json:"name"`
	Quantity int    `json:"quantity"`
	Reason   string `json:"reason"`
}

// PackingList is the categorized list derived from the weather outlook.
// LowConfidence is set when the outlook was absent and only the
// destination-agnostic baseline could be produced.
type PackingList struct {
	Items         []PackingItem `json:"items"`
	LowConfidence bool          `json:"low_confidence,omitempty"`
}
