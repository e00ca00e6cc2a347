package chat

import "context"

// Generator produces text on behalf of simulated study peers.
type Generator interface {
	// Reply continues a conversation in the voice of persona. A non-empty
	// groupContext places the exchange in that group's chat.
	Reply(ctx context.Context, history []Message, persona, groupContext string) (string, error)
	// Summarize condenses study notes into key points.
	Summarize(ctx context.Context, content string) (string, error)
	// Quiz builds a multiple choice quiz from study notes.
	Quiz(ctx context.Context, content string) ([]QuizQuestion, error)
	// Advice returns study tips for a subject.
	Advice(ctx context.Context, subject string) (string, error)
}
