// Package screener asks an OpenAI chat model to rate a resume against a
// list of screening criteria.
package screener

import (
	"context"
	"encoding/base64"
	"encoding/json"
	"errors"
	"fmt"
	"strings"

	"github.com/openai/openai-go/v3"
	"github.com/openai/openai-go/v3/option"
	"github.com/openai/openai-go/v3/shared/constant"
)

const DefaultModel = "gpt-4o"

// Screener rates resumes with a chat completion in JSON mode
type Screener struct {
	client *openai.Client
	model  string
}

// New creates a screener. Extra options are passed to the OpenAI client.
func New(apiKey, model string, opts ...option.RequestOption) *Screener {
	if model == "" {
		model = DefaultModel
	}
	client := openai.NewClient(append([]option.RequestOption{option.WithAPIKey(apiKey)}, opts...)...)
	return &Screener{client: &client, model: model}
}

// Result is the model's verdict
type Result struct {
	Score       float64 `json:"score"`
	Explanation string  `json:"explanation"`
}

const systemPrompt = `You are an experienced technical recruiter. You compare one resume with the screening criteria of a job position and return ONLY valid JSON.`

func userPrompt(criteria []string) string {
	var sb strings.Builder
	sb.WriteString("Screening criteria:\n")
	for i, c := range criteria {
		fmt.Fprintf(&sb, "%d. %s\n", i+1, c)
	}
	sb.WriteString(`
Rate how well the resume meets the criteria and answer with this JSON:

{
  "score": number (0 to 100, 100 means every criteria is fully met),
  "explanation": string (two or three sentences naming met and missing criteria)
}`)
	return sb.String()
}

// ScoreText rates a resume given as plain text
func (s *Screener) ScoreText(ctx context.Context, criteria []string, text string) (*Result, error) {
	if strings.TrimSpace(text) == "" {
		return nil, errors.New("resume text is empty")
	}

	parts := []openai.ChatCompletionContentPartUnionParam{
		textPart(userPrompt(criteria)),
		textPart("Resume:\n" + text),
	}
	return s.complete(ctx, parts)
}

// ScoreImages rates a resume rendered as JPEG pages
func (s *Screener) ScoreImages(ctx context.Context, criteria []string, pages [][]byte) (*Result, error) {
	if len(pages) == 0 {
		return nil, errors.New("no pages provided")
	}

	parts := []openai.ChatCompletionContentPartUnionParam{textPart(userPrompt(criteria))}
	for _, page := range pages {
		dataURL := "data:image/jpeg;base64," + base64.StdEncoding.EncodeToString(page)
		parts = append(parts, openai.ChatCompletionContentPartUnionParam{
			OfImageURL: &openai.ChatCompletionContentPartImageParam{
				Type: constant.ImageURL("image_url"),
				ImageURL: openai.ChatCompletionContentPartImageImageURLParam{
					URL:    dataURL,
					Detail: "high",
				},
			},
		})
	}
	return s.complete(ctx, parts)
}

func textPart(text string) openai.ChatCompletionContentPartUnionParam {
	return openai.ChatCompletionContentPartUnionParam{
		OfText: &openai.ChatCompletionContentPartTextParam{
			Type: constant.Text("text"),
			Text: text,
		},
	}
}

func (s *Screener) complete(ctx context.Context, parts []openai.ChatCompletionContentPartUnionParam) (*Result, error) {
	messages := []openai.ChatCompletionMessageParamUnion{
		openai.SystemMessage(systemPrompt),
		{
			OfUser: &openai.ChatCompletionUserMessageParam{
				Content: openai.ChatCompletionUserMessageParamContentUnion{
					OfArrayOfContentParts: parts,
				},
			},
		},
	}

	completion, err := s.client.Chat.Completions.New(ctx, openai.ChatCompletionNewParams{
		Messages: messages,
		Model:    s.model,
		ResponseFormat: openai.ChatCompletionNewParamsResponseFormatUnion{
			OfJSONObject: &openai.ResponseFormatJSONObjectParam{
				Type: constant.JSONObject("json_object"),
			},
		},
		Temperature: openai.Float(0.1),
		MaxTokens:   openai.Int(500),
	})
	if err != nil {
		return nil, fmt.Errorf("openai chat api error: %w", err)
	}
	if len(completion.Choices) == 0 {
		return nil, errors.New("no response from openai")
	}

	var res Result
	if err := json.Unmarshal([]byte(completion.Choices[0].Message.Content), &res); err != nil {
		return nil, fmt.Errorf("failed to parse screening JSON: %w", err)
	}
	return &res, nil
}
