package chat

// Sender marks which side of the conversation authored a message.
type Sender string

const (
	SenderMe    Sender = "me"
	SenderOther Sender = "other"
)

type Message struct {
	ID         string `json:"id"`
	Text       string `json:"text"`
	Sender     Sender `json:"sender"`
	SenderName string `json:"senderName,omitempty"`
	Timestamp  string `json:"timestamp"`
}

// QuizQuestion is a multiple choice question generated from study notes.
// CorrectAnswer indexes into Options.
type QuizQuestion struct {
	Question      string   `json:"question"`
	Options       []string `json:"options"`
	CorrectAnswer int      `json:"correctAnswer"`
}
