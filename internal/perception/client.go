// Package perception holds the generative backend client. The rest of the
// application talks to the LLMClient interface; the concrete Gemini client
// lives behind it so the ingest pipeline can be tested with a fake.
package perception

import "context"

// LLMClient defines the interface for generative backends.
type LLMClient interface {
	// Complete sends a prompt and returns the completion.
	Complete(ctx context.Context, prompt string) (string, error)

	// CompleteWithSystem sends a prompt with a system message.
	CompleteWithSystem(ctx context.Context, systemPrompt, userPrompt string) (string, error)

	// CompleteWithImage sends a prompt plus an inline image attachment.
	// A nil image degrades to CompleteWithSystem.
	CompleteWithImage(ctx context.Context, systemPrompt, userPrompt string, image *ImagePart) (string, error)
}

// ImagePart is an inline image attachment for a completion request.
type ImagePart struct {
	MIMEType string // e.g. "image/png", "image/jpeg"
	Data     []byte // raw bytes; base64 encoding happens at the wire
}
