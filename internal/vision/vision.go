// Package vision reads nutrition labels from images through the
// external AI vision service. It is transport only; plausibility
// correction stays in the nutrition package.
package vision

import (
	"context"
	"encoding/base64"
	"encoding/json"
	"fmt"
	"strings"

	openai "github.com/sashabaranov/go-openai"

	"nutrimatrix/internal/nutrition"
)

const systemPrompt = `You are a nutrition label reader. Extract nutrition values from the image.

CRITICAL RULES:
- All values are per 100g/100ml
- Return ONLY numbers (no units)
- Use decimal points (not commas): 2.8 not 2,8
- Maximum 2 decimal places
- DO NOT confuse letters with numbers (g is NOT 9)
- Typical ranges: salt 0.5-5g, protein 1-90g, carbs 0-100g, fat 0-100g, fiber 0-30g, sugar 0-100g
- Energy: kcal 0-900, kJ 0-4000
- If unclear or not found, use null

Return JSON with these exact fields:
{
  "energy_kcal": number or null,
  "energy_kj": number or null,
  "fat_total": number or null,
  "fat_saturated": number or null,
  "carbs": number or null,
  "sugar": number or null,
  "fiber": number or null,
  "protein": number or null,
  "salt": number or null
}`

var mimeTypes = map[string]string{
	"png":  "image/png",
	"jpg":  "image/jpeg",
	"jpeg": "image/jpeg",
	"gif":  "image/gif",
	"bmp":  "image/bmp",
	"tiff": "image/tiff",
	"webp": "image/webp",
}

type LabelReader struct {
	client *openai.Client
}

func NewLabelReader(apiKey string) *LabelReader {
	return &LabelReader{client: openai.NewClient(apiKey)}
}

// MimeTypeFor maps an image filename extension to its MIME type.
// Unsupported extensions are an error so bad uploads fail before the
// service call.
func MimeTypeFor(ext string) (string, error) {
	mime, ok := mimeTypes[strings.ToLower(strings.TrimPrefix(ext, "."))]
	if !ok {
		return "", fmt.Errorf("unsupported file type: %s", ext)
	}
	return mime, nil
}

// ReadLabel sends the image to the vision model and returns the per
// field values it reported. Nulls are dropped. No retries: a failed
// call surfaces as a single error.
func (r *LabelReader) ReadLabel(ctx context.Context, image []byte, mimeType string) (map[nutrition.FieldKind]float64, error) {
	dataURL := fmt.Sprintf("data:%s;base64,%s", mimeType, base64.StdEncoding.EncodeToString(image))

	resp, err := r.client.CreateChatCompletion(ctx, openai.ChatCompletionRequest{
		Model: openai.GPT4oMini,
		Messages: []openai.ChatCompletionMessage{
			{
				Role:    openai.ChatMessageRoleSystem,
				Content: systemPrompt,
			},
			{
				Role: openai.ChatMessageRoleUser,
				MultiContent: []openai.ChatMessagePart{
					{
						Type: openai.ChatMessagePartTypeText,
						Text: "Please extract all nutrition values from this nutrition label image. Read carefully - don't confuse 'g' (grams) with '9' (number nine).",
					},
					{
						Type:     openai.ChatMessagePartTypeImageURL,
						ImageURL: &openai.ChatMessageImageURL{URL: dataURL},
					},
				},
			},
		},
		ResponseFormat: &openai.ChatCompletionResponseFormat{
			Type: openai.ChatCompletionResponseFormatTypeJSONObject,
		},
		MaxTokens:   500,
		Temperature: 0.1,
	})
	if err != nil {
		return nil, fmt.Errorf("vision call failed: %w", err)
	}
	if len(resp.Choices) == 0 {
		return nil, fmt.Errorf("vision call returned no choices")
	}

	content := resp.Choices[0].Message.Content
	var raw map[string]*float64
	if err := json.Unmarshal([]byte(content), &raw); err != nil {
		// Models occasionally reply with prose despite the JSON response
		// format. The text extractor handles that reply as label text.
		if values := nutrition.Extract(content); len(values) > 0 {
			return values, nil
		}
		return nil, fmt.Errorf("vision response is not valid JSON: %w", err)
	}

	values := make(map[nutrition.FieldKind]float64)
	for _, kind := range nutrition.FieldKinds() {
		if v, ok := raw[string(kind)]; ok && v != nil {
			values[kind] = *v
		}
	}
	return values, nil
}
