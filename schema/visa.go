package schema

// VisaRequirement is the advisory requirement category.
type VisaRequirement string

const (
	VisaFree      VisaRequirement = "visa-free"
	VisaOnArrival VisaRequirement = "visa-on-arrival"
	VisaEVisa     VisaRequirement = "e-visa"
	VisaEmbassy   VisaRequirement = "embassy-required"
	VisaUnknown   VisaRequirement = "unknown"
)

// VisaDisclaimer is attached to every VisaInfo. Advisory data is never
// authoritative.
const VisaDisclaimer = "General information only. Verify current requirements with the official embassy or consulate before traveling."

// VisaInfo is best-effort visa guidance for one destination.
type VisaInfo struct {
	Destination    string          `json:"destination"`
	Requirement    VisaRequirement `json:"requirement"`
	ProcessingTime string          `json:"processing_time,omitempty"`
	Note           string          `json:"note,omitempty"`
	Disclaimer     string          `json:"disclaimer"`
}
