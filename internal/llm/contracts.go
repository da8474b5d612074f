package llm

import "context"

// IdentityFields is the normalized shape we want from the LLM. Every field
// may be null when the model is uncertain; values are passed through to the
// caller as-is, without validation.
type IdentityFields struct {
	Name           *string `json:"name"`
	DOB            *string `json:"dob"` // DD-MM-YYYY
	Phone          *string `json:"phone"`
	DocumentNumber *string `json:"document_number"` // Aadhaar / PAN / driving license / other
	Address        *string `json:"address"`
	DocumentType   *string `json:"type"`
	Language       *string `json:"language"`
	Gender         *string `json:"gender"`
}

// CompletionClient is the single-turn completion dependency the pipeline
// depends on.
type CompletionClient interface {
	Complete(ctx context.Context, prompt string) (string, error)
}
