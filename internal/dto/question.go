package dto

type AskRequest struct {
	Question string `json:"question"`
	// Scope is "all" or the file name of one processed document.
	Scope string `json:"scope"`
}

type AskResponse struct {
	Answer     string  `json:"answer"`
	Confidence float64 `json:"confidence"`
	Source     string  `json:"source"`
	// Warning surfaces a non-fatal generative backend failure.
	Warning string `json:"warning,omitempty"`
}
