package textgensvc

import (
	"context"
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/studymate/studymate/core"
	"github.com/studymate/studymate/core/chat"
)

type nopLogger struct{}

func (nopLogger) Debug(string, ...interface{}) {}
func (nopLogger) Info(string, ...interface{})  {}
func (nopLogger) Warn(string, ...interface{})  {}
func (nopLogger) Error(string, ...interface{}) {}
func (nopLogger) Fatal(string, ...interface{}) {}

func candidateResponse(text string) string {
	out, _ := json.Marshal(map[string]interface{}{
		"candidates": []map[string]interface{}{
			{"content": map[string]interface{}{
				"role":  "model",
				"parts": []map[string]string{{"text": text}},
			}},
		},
	})
	return string(out)
}

func newTestService(t *testing.T, handler http.HandlerFunc) *geminiService {
	t.Helper()
	srv := httptest.NewServer(handler)
	t.Cleanup(srv.Close)
	return &geminiService{
		client:  &http.Client{Timeout: time.Second},
		baseURL: srv.URL,
		key:     "test-key",
		model:   "gemini-3-flash-preview",
		logger:  nopLogger{},
	}
}

func TestReplySendsHistoryAsAlternatingRoles(t *testing.T) {
	var got genRequest
	svc := newTestService(t, func(w http.ResponseWriter, r *http.Request) {
		require.NoError(t, json.NewDecoder(r.Body).Decode(&got))
		assert.Contains(t, r.URL.Path, "gemini-3-flash-preview:generateContent")
		assert.Equal(t, "test-key", r.URL.Query().Get("key"))
		w.Write([]byte(candidateResponse("This is a longer reply that stays as-is.")))
	})

	history := []chat.Message{
		{Text: "hey", Sender: chat.SenderMe},
		{Text: "hey!", Sender: chat.SenderOther},
		{Text: "library at 3?", Sender: chat.SenderMe},
	}
	reply, err := svc.Reply(context.Background(), history, "Sheila Putri", "")
	require.NoError(t, err)
	assert.Equal(t, "This is a longer reply that stays as-is.", reply)

	require.Len(t, got.Contents, 3)
	assert.Equal(t, "user", got.Contents[0].Role)
	assert.Equal(t, "model", got.Contents[1].Role)
	assert.Equal(t, "user", got.Contents[2].Role)
	require.NotNil(t, got.SystemInstruction)
	assert.Contains(t, got.SystemInstruction.Parts[0].Text, "Sheila Putri")
	require.NotNil(t, got.GenerationConfig)
	assert.Equal(t, 0.9, got.GenerationConfig.Temperature)
	assert.Equal(t, 100, got.GenerationConfig.MaxOutputTokens)
}

func TestReplyEmptyHistorySendsGreeting(t *testing.T) {
	var got genRequest
	svc := newTestService(t, func(w http.ResponseWriter, r *http.Request) {
		require.NoError(t, json.NewDecoder(r.Body).Decode(&got))
		w.Write([]byte(candidateResponse("This is a longer reply that stays as-is.")))
	})

	_, err := svc.Reply(context.Background(), nil, "Sheila Putri", "HCI Group")
	require.NoError(t, err)
	require.Len(t, got.Contents, 1)
	assert.Equal(t, "hey", got.Contents[0].Parts[0].Text)
	assert.Contains(t, got.SystemInstruction.Parts[0].Text, "HCI Group")
}

func TestReplyErrorsOnAPIFailure(t *testing.T) {
	svc := newTestService(t, func(w http.ResponseWriter, r *http.Request) {
		w.WriteHeader(http.StatusServiceUnavailable)
	})
	_, err := svc.Reply(context.Background(), nil, "Sheila Putri", "")
	assert.ErrorIs(t, err, core.ErrCollaborator)
}

func TestQuizRequestsJSONOutput(t *testing.T) {
	var got genRequest
	svc := newTestService(t, func(w http.ResponseWriter, r *http.Request) {
		require.NoError(t, json.NewDecoder(r.Body).Decode(&got))
		w.Write([]byte(candidateResponse(`[{"question":"What is UX?","options":["a","b","c","d"],"correctAnswer":2}]`)))
	})

	questions, err := svc.Quiz(context.Background(), "UX notes")
	require.NoError(t, err)
	require.NotNil(t, got.GenerationConfig)
	assert.Equal(t, "application/json", got.GenerationConfig.ResponseMimeType)
	require.Len(t, questions, 1)
	assert.Equal(t, 2, questions[0].CorrectAnswer)
}

func TestParseQuiz(t *testing.T) {
	tests := []struct {
		name    string
		input   string
		wantLen int
		wantErr bool
	}{
		{
			name:    "bare JSON array",
			input:   `[{"question":"q","options":["a","b"],"correctAnswer":0}]`,
			wantLen: 1,
		},
		{
			name:    "fenced JSON",
			input:   "```json\n[{\"question\":\"q\",\"options\":[\"a\",\"b\"],\"correctAnswer\":1}]\n```",
			wantLen: 1,
		},
		{
			name:    "not JSON",
			input:   "sorry, I cannot do that",
			wantErr: true,
		},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			questions, err := parseQuiz(tt.input)
			if tt.wantErr {
				assert.Error(t, err)
				return
			}
			require.NoError(t, err)
			assert.Len(t, questions, tt.wantLen)
		})
	}
}
