package advisory

import (
	"bytes"
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"io"
	"net/http"
	"time"

	"krishi/globals"
)

const systemInstruction = `You are Krishi Mitra, an AI agricultural assistant for Maharashtra farmers.
Provide:
1. Accurate weather forecasts in Marathi/English
2. Crop-specific advice for sugarcane, soybean, cotton, chickpea, wheat etc.
3. Practical farming recommendations
4. Market price analysis
5. Pest/disease warnings
6. Fertilizer, pesticide, spray guidance
Always respond in the user's preferred language.
Output format must be simple, clean, and structured.`

// fallbackAnswer is returned verbatim whenever the upstream model fails, so
// the endpoints never surface a transport error to the farmer.
const (
	fallbackAnswer   = "Error: Please try again (Limit Exceed)"
	fallbackAnswerMR = "त्रुटी: कृपया पुन्हा प्रयत्न करा"
)

// Client talks to the Gemini generateContent REST endpoint.
type Client struct {
	APIKey     string
	Model      string
	BaseURL    string
	HTTPClient *http.Client
}

func NewClient() *Client {
	return &Client{
		APIKey:     globals.Getenv("GOOGLE_GEMINI_KEY", ""),
		Model:      globals.Getenv("GEMINI_MODEL", "gemini-1.5-flash"),
		BaseURL:    "https://generativelanguage.googleapis.com/v1beta",
		HTTPClient: &http.Client{Timeout: 30 * time.Second},
	}
}

type generateRequest struct {
	SystemInstruction content   `json:"systemInstruction"`
	Contents          []content `json:"contents"`
}

type content struct {
	Parts []part `json:"parts"`
}

type part struct {
	Text string `json:"text"`
}

type generateResponse struct {
	Candidates []struct {
		Content content `json:"content"`
	} `json:"candidates"`
}

// Generate sends one prompt and returns the first candidate's text.
func (c *Client) Generate(ctx context.Context, prompt string) (string, error) {
	if c.APIKey == "" {
		return "", errors.New("advisory: missing GOOGLE_GEMINI_KEY")
	}

	payload, err := json.Marshal(generateRequest{
		SystemInstruction: content{Parts: []part{{Text: systemInstruction}}},
		Contents:          []content{{Parts: []part{{Text: prompt}}}},
	})
	if err != nil {
		return "", err
	}

	url := fmt.Sprintf("%s/models/%s:generateContent?key=%s", c.BaseURL, c.Model, c.APIKey)
	req, err := http.NewRequestWithContext(ctx, http.MethodPost, url, bytes.NewReader(payload))
	if err != nil {
		return "", err
	}
	req.Header.Set("Content-Type", "application/json")

	resp, err := c.HTTPClient.Do(req)
	if err != nil {
		return "", err
	}
	defer resp.Body.Close()

	body, err := io.ReadAll(resp.Body)
	if err != nil {
		return "", err
	}
	if resp.StatusCode != http.StatusOK {
		return "", fmt.Errorf("advisory: model returned %d: %s", resp.StatusCode, string(body))
	}

	var out generateResponse
	if err := json.Unmarshal(body, &out); err != nil {
		return "", err
	}
	if len(out.Candidates) == 0 || len(out.Candidates[0].Content.Parts) == 0 {
		return "", errors.New("advisory: empty model response")
	}
	return out.Candidates[0].Content.Parts[0].Text, nil
}

// fallbackFor picks the canned answer for the requested language.
func fallbackFor(language string) string {
	if language == "mr" {
		return fallbackAnswerMR
	}
	return fallbackAnswer
}
