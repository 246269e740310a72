package ocr

import (
	"context"
	"errors"

	genai "google.golang.org/genai"
)

const transcribePrompt = "Transcribe every piece of text visible in this page image, top to bottom, " +
	"preserving line breaks. The text may be Korean, English, or both. " +
	"Return ONLY the transcribed text with no commentary."

// Gemini recognizes page text with a multimodal Gemini model.
type Gemini struct {
	client *genai.Client
	model  string
}

func NewGemini(ctx context.Context, apiKey, model string) (*Gemini, error) {
	if apiKey == "" {
		return nil, errors.New("missing GEMINI_API_KEY")
	}
	if model == "" {
		model = "gemini-2.5-flash"
	}
	c, err := genai.NewClient(ctx, &genai.ClientConfig{APIKey: apiKey})
	if err != nil {
		return nil, err
	}
	return &Gemini{client: c, model: model}, nil
}

func (g *Gemini) Recognize(ctx context.Context, png []byte) (string, error) {
	if len(png) == 0 {
		return "", nil
	}
	content := &genai.Content{
		Role: genai.RoleUser,
		Parts: []*genai.Part{
			{Text: transcribePrompt},
			{InlineData: &genai.Blob{MIMEType: "image/png", Data: png}},
		},
	}
	res, err := g.client.Models.GenerateContent(ctx, g.model, []*genai.Content{content}, nil)
	if err != nil {
		return "", err
	}
	return res.Text(), nil
}
