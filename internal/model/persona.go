package model

// Persona is a reusable system-prompt fragment establishing the assistant's
// role and behavior. History stores the composed prompt text, not a
// reference, so editing a persona never rewrites saved conversations.
type Persona struct {
	ID      int    `json:"id"`
	Name    string `json:"name"`
	Prompt  string `json:"prompt"`
	OwnerID int    `json:"owner_id,omitempty"`
}

// RenderType tells the client how to render replies produced under an output
// format. It never reaches the model.
type RenderType struct {
	ID   int    `json:"id"`
	Name string `json:"name"`
}

// Render type names.
const (
	RenderMarkdown = "markdown"
	RenderHTML     = "html"
)

// OutputFormat is a reusable system-prompt fragment defining reply
// formatting, paired with a client-side render hint.
type OutputFormat struct {
	ID             int    `json:"id"`
	Name           string `json:"name"`
	Prompt         string `json:"prompt"`
	OwnerID        int    `json:"owner_id,omitempty"`
	RenderTypeID   int    `json:"render_type_id,omitempty"`
	RenderTypeName string `json:"render_type_name,omitempty"`
}

// CreatePersonaRequest is the request to create a persona.
type CreatePersonaRequest struct {
	Name   string `json:"name"`
	Prompt string `json:"prompt"`
}

// CreateOutputFormatRequest is the request to create an output format.
type CreateOutputFormatRequest struct {
	Name         string `json:"name"`
	Prompt       string `json:"prompt"`
	RenderTypeID int    `json:"render_type_id"`
}
