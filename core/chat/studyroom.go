package chat

import "context"

// Canned responses keep the study tools usable when the generator is
// unreachable.
const (
	summaryFallback = "An error occurred while summarizing."
	summaryEmpty    = "Failed to generate summary."
	adviceFallback  = "Keep studying hard!"
	adviceEmpty     = "Focus and persistence are key!"
)

// StudyRoom exposes the note-powered study tools. Failures never surface
// as errors, every tool degrades to canned output.
type StudyRoom struct {
	gen Generator
}

func NewStudyRoom(gen Generator) *StudyRoom {
	return &StudyRoom{gen: gen}
}

func (sr *StudyRoom) Summarize(ctx context.Context, content string) string {
	summary, err := sr.gen.Summarize(ctx, content)
	if err != nil {
		return summaryFallback
	}
	if summary == "" {
		return summaryEmpty
	}
	return summary
}

func (sr *StudyRoom) Quiz(ctx context.Context, content string) []QuizQuestion {
	questions, err := sr.gen.Quiz(ctx, content)
	if err != nil {
		return []QuizQuestion{}
	}
	return questions
}

func (sr *StudyRoom) Advice(ctx context.Context, subject string) string {
	advice, err := sr.gen.Advice(ctx, subject)
	if err != nil {
		return adviceFallback
	}
	if advice == "" {
		return adviceEmpty
	}
	return advice
}
