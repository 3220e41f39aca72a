package model

// Canonical vendor names. The set is closed: a model whose vendor is not one
// of these fails dispatch.
const (
	VendorOpenAI    = "openai"
	VendorAnthropic = "anthropic"
	VendorGoogle    = "google"
)

// Vendor is an external LLM provider with its own wire protocol.
type Vendor struct {
	ID   int    `json:"id"`
	Name string `json:"name"`
}

// Model is a logical model: the vendor's identifier string plus the
// capability flags the dispatcher trusts when selecting behavior.
type Model struct {
	ID                int    `json:"id"`
	APIName           string `json:"api_name"`
	Name              string `json:"name"`
	IsVision          bool   `json:"is_vision"`
	IsImageGeneration bool   `json:"is_image_generation"`
	IsThinking        bool   `json:"is_thinking"`
	// NoSystemRole marks o1-style models that reject the system role; the
	// composer rewrites the leading system message to a user message.
	NoSystemRole bool    `json:"no_system_role"`
	Vendor       *Vendor `json:"vendor,omitempty"`
}

// VendorName returns the vendor name, or "" when unset.
func (m *Model) VendorName() string {
	if m.Vendor == nil {
		return ""
	}
	return m.Vendor.Name
}
