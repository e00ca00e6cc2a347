package textgensvc

import (
	"bytes"
	"context"
	"encoding/json"
	"fmt"
	"math/rand"
	"net/http"
	"strings"
	"time"

	"github.com/pkg/errors"

	"github.com/studymate/studymate/core"
	"github.com/studymate/studymate/core/chat"
)

const defaultBaseURL = "https://generativelanguage.googleapis.com/v1beta"

var randFloat = rand.Float64

type geminiService struct {
	client  *http.Client
	baseURL string
	key     string
	model   string
	logger  core.Logger
}

var _ chat.Generator = (*geminiService)(nil)

func NewGeminiService(conf *core.Config, logger core.Logger) chat.Generator {
	return &geminiService{
		client:  &http.Client{Timeout: 30 * time.Second},
		baseURL: defaultBaseURL,
		key:     conf.GeminiAPIKey,
		model:   conf.GeminiModel,
		logger:  logger,
	}
}

type (
	genContent struct {
		Role  string    `json:"role,omitempty"`
		Parts []genPart `json:"parts"`
	}

	genPart struct {
		Text string `json:"text"`
	}

	genConfig struct {
		Temperature      float64 `json:"temperature,omitempty"`
		MaxOutputTokens  int     `json:"maxOutputTokens,omitempty"`
		ResponseMimeType string  `json:"responseMimeType,omitempty"`
	}

	genRequest struct {
		Contents          []genContent `json:"contents"`
		SystemInstruction *genContent  `json:"systemInstruction,omitempty"`
		GenerationConfig  *genConfig   `json:"generationConfig,omitempty"`
	}

	genResponse struct {
		Candidates []struct {
			Content genContent `json:"content"`
		} `json:"candidates"`
	}
)

func (svc *geminiService) Reply(ctx context.Context, history []chat.Message, persona, groupContext string) (string, error) {
	contents := make([]genContent, 0, len(history))
	for _, m := range history {
		role := "model"
		if m.Sender == chat.SenderMe {
			role = "user"
		}
		contents = append(contents, genContent{Role: role, Parts: []genPart{{Text: m.Text}}})
	}
	if len(contents) == 0 {
		contents = append(contents, genContent{Role: "user", Parts: []genPart{{Text: "hey"}}})
	}

	text, err := svc.generate(ctx, genRequest{
		Contents:          contents,
		SystemInstruction: &genContent{Parts: []genPart{{Text: chatInstruction(persona, groupContext)}}},
		GenerationConfig:  &genConfig{Temperature: 0.9, MaxOutputTokens: 100},
	})
	if err != nil {
		return "", err
	}
	if text == "" {
		text = "yo"
	}
	// short replies read more human in lowercase, some of the time
	if len(text) < 20 && randFloat() > 0.5 {
		text = strings.ToLower(text)
	}
	return text, nil
}

func chatInstruction(persona, groupContext string) string {
	setting := "This is a private 1-on-1 chat."
	if groupContext != "" {
		setting = fmt.Sprintf("You are in the %q group chat.", groupContext)
	}
	return fmt.Sprintf(`You are %s, a student texting a friend. %s
Match the length of the last message: a few words get a few words back.
Keep it casual like a messaging app, lowercase is fine, skip perfect punctuation.
Use the conversation history for context and do not bring up studies or coursework unless the other person did first.
Stay under 3 sentences, usually 1.
Never say you are an AI and never offer help like an assistant. You are just a friend texting back.`, persona, setting)
}

func (svc *geminiService) Summarize(ctx context.Context, content string) (string, error) {
	return svc.generate(ctx, genRequest{
		Contents: []genContent{{
			Role:  "user",
			Parts: []genPart{{Text: "Summarize the following study notes concisely into key bullet points:\n\n" + content}},
		}},
	})
}

func (svc *geminiService) Quiz(ctx context.Context, content string) ([]chat.QuizQuestion, error) {
	text, err := svc.generate(ctx, genRequest{
		Contents: []genContent{{
			Role:  "user",
			Parts: []genPart{{Text: "Create a 5-question multiple choice quiz based on the following notes. Return a JSON array of objects with fields question, options and correctAnswer (the index of the correct option).\n\nNOTES: " + content}},
		}},
		GenerationConfig: &genConfig{ResponseMimeType: "application/json"},
	})
	if err != nil {
		return nil, err
	}
	return parseQuiz(text)
}

func (svc *geminiService) Advice(ctx context.Context, subject string) (string, error) {
	return svc.generate(ctx, genRequest{
		Contents: []genContent{{
			Role:  "user",
			Parts: []genPart{{Text: "Provide three practical study tips specifically for the subject: " + subject + "."}},
		}},
	})
}

func (svc *geminiService) generate(ctx context.Context, payload genRequest) (string, error) {
	body, err := json.Marshal(payload)
	if err != nil {
		return "", errors.Wrap(err, "encoding request")
	}

	url := fmt.Sprintf("%s/models/%s:generateContent?key=%s", svc.baseURL, svc.model, svc.key)
	req, err := http.NewRequestWithContext(ctx, http.MethodPost, url, bytes.NewReader(body))
	if err != nil {
		return "", errors.Wrap(err, "building request")
	}
	req.Header.Set("Content-Type", "application/json")

	res, err := svc.client.Do(req)
	if err != nil {
		return "", errors.Wrap(core.ErrCollaborator, "calling text generation API: "+err.Error())
	}
	defer res.Body.Close()

	if res.StatusCode >= http.StatusBadRequest {
		return "", errors.Wrapf(core.ErrCollaborator, "text generation API - status: %d", res.StatusCode)
	}

	var parsed genResponse
	if err = json.NewDecoder(res.Body).Decode(&parsed); err != nil {
		return "", errors.Wrap(err, "decoding response")
	}
	if len(parsed.Candidates) == 0 || len(parsed.Candidates[0].Content.Parts) == 0 {
		return "", nil
	}
	return strings.TrimSpace(parsed.Candidates[0].Content.Parts[0].Text), nil
}

// parseQuiz decodes the generated quiz, tolerating a markdown code fence
// around the JSON.
func parseQuiz(text string) ([]chat.QuizQuestion, error) {
	text = strings.TrimSpace(text)
	text = strings.TrimPrefix(text, "```json")
	text = strings.TrimPrefix(text, "```")
	text = strings.TrimSuffix(text, "```")
	text = strings.TrimSpace(text)

	var questions []chat.QuizQuestion
	if err := json.Unmarshal([]byte(text), &questions); err != nil {
		return nil, errors.Wrap(err, "decoding quiz")
	}
	return questions, nil
}
