package provider

// ProviderRequest is the backend-facing request: the resolved model and the
// conversation flattened to plain-text messages.
type ProviderRequest struct {
	Model    string            `json:"model"`
	Messages []ProviderMessage `json:"messages"`
}

// ProviderMessage is a single conversation turn.
type ProviderMessage struct {
	Role    string `json:"role"`
	Content string `json:"content"`
}

// ProviderResponse carries the result of one chat exchange.
type ProviderResponse struct {
	// Content is the concatenation of all extracted message fragments.
	Content string

	// Raw is the decoded upstream body. It is returned to the caller
	// verbatim when Content is empty.
	Raw string

	// Fragments and Skipped count the considered stream lines that parsed
	// and that did not.
	Fragments int
	Skipped   int
}

// Empty reports whether no assistant text could be extracted.
func (r *ProviderResponse) Empty() bool {
	return r.Content == ""
}
