// Package openai implements the two-stage studio pipeline: GPT-4o vision
// describes the product, DALL-E 3 regenerates it on a clean studio
// background. The second stage's input is derived entirely from the first,
// so a stage-1 failure stops the pipeline before any generation cost.
package openai

import (
	"bytes"
	"context"
	"encoding/base64"
	"encoding/json"
	"fmt"
	"io"
	"net/http"
	"strings"
	"time"

	"valida-backend/internal/apperr"
)

const visionPrompt = "Describe this product strictly visually in extreme detail (colors, materials, shape, textures) to guide a DALL-E 3 generation. Focus only on the product object itself. Output ONLY the description."

const studioPromptTemplate = "Professional commercial product photography of %s. Clean white studio background, soft cinematic lighting, 4k resolution, hyperrealistic. The product is the main focus."

type Client struct {
	baseURL    string
	apiKey     string
	httpClient *http.Client
}

func NewClient(baseURL, apiKey string) *Client {
	return &Client{
		baseURL: strings.TrimSuffix(baseURL, "/"),
		apiKey:  apiKey,
		httpClient: &http.Client{
			Timeout: 120 * time.Second,
		},
	}
}

type chatRequest struct {
	Model     string        `json:"model"`
	Messages  []chatMessage `json:"messages"`
	MaxTokens int           `json:"max_tokens"`
}

type chatMessage struct {
	Role    string            `json:"role"`
	Content []chatContentPart `json:"content"`
}

type chatContentPart struct {
	Type     string        `json:"type"`
	Text     string        `json:"text,omitempty"`
	ImageURL *chatImageURL `json:"image_url,omitempty"`
}

type chatImageURL struct {
	URL string `json:"url"`
}

type chatResponse struct {
	Choices []struct {
		Message struct {
			Content string `json:"content"`
		} `json:"message"`
	} `json:"choices"`
}

type imageGenerationRequest struct {
	Model   string `json:"model"`
	Prompt  string `json:"prompt"`
	Size    string `json:"size"`
	Quality string `json:"quality"`
	N       int    `json:"n"`
}

type imageGenerationResponse struct {
	Data []struct {
		URL string `json:"url"`
	} `json:"data"`
}

// DescribeProduct sends the image inline as a data URL and returns the
// model's visual description.
func (c *Client) DescribeProduct(ctx context.Context, image []byte, mimeType string) (string, error) {
	if c.apiKey == "" {
		return "", apperr.New(apperr.Configuration, "OPENAI_API_KEY não configurada")
	}
	if mimeType == "" {
		mimeType = "image/jpeg"
	}

	dataURL := fmt.Sprintf("data:%s;base64,%s", mimeType, base64.StdEncoding.EncodeToString(image))

	reqBody := chatRequest{
		Model: "gpt-4o",
		Messages: []chatMessage{{
			Role: "user",
			Content: []chatContentPart{
				{Type: "text", Text: visionPrompt},
				{Type: "image_url", ImageURL: &chatImageURL{URL: dataURL}},
			},
		}},
		MaxTokens: 500,
	}

	var result chatResponse
	if err := c.post(ctx, "/chat/completions", reqBody, &result); err != nil {
		return "", err
	}

	if len(result.Choices) == 0 || result.Choices[0].Message.Content == "" {
		return "", apperr.New(apperr.Upstream, "resposta vazia da API Vision")
	}

	return result.Choices[0].Message.Content, nil
}

// GenerateStudioImage feeds the visual description into DALL-E 3 with the
// fixed studio photography template and returns the generated image URL.
func (c *Client) GenerateStudioImage(ctx context.Context, productDescription string) (string, error) {
	if c.apiKey == "" {
		return "", apperr.New(apperr.Configuration, "OPENAI_API_KEY não configurada")
	}

	reqBody := imageGenerationRequest{
		Model:   "dall-e-3",
		Prompt:  fmt.Sprintf(studioPromptTemplate, productDescription),
		Size:    "1024x1024",
		Quality: "hd",
		N:       1,
	}

	var result imageGenerationResponse
	if err := c.post(ctx, "/images/generations", reqBody, &result); err != nil {
		return "", err
	}

	if len(result.Data) == 0 || result.Data[0].URL == "" {
		return "", apperr.New(apperr.Upstream, "URL da imagem gerada não encontrada na resposta")
	}

	return result.Data[0].URL, nil
}

func (c *Client) post(ctx context.Context, path string, reqBody, out interface{}) error {
	body, err := json.Marshal(reqBody)
	if err != nil {
		return fmt.Errorf("failed to marshal request: %w", err)
	}

	req, err := http.NewRequestWithContext(ctx, http.MethodPost, c.baseURL+path, bytes.NewReader(body))
	if err != nil {
		return fmt.Errorf("failed to create request: %w", err)
	}
	req.Header.Set("Authorization", "Bearer "+c.apiKey)
	req.Header.Set("Content-Type", "application/json")

	resp, err := c.httpClient.Do(req)
	if err != nil {
		return apperr.Wrap(apperr.Upstream, "erro na API OpenAI", err)
	}
	defer resp.Body.Close()

	respBody, err := io.ReadAll(resp.Body)
	if err != nil {
		return apperr.Wrap(apperr.Upstream, "erro ao ler resposta da OpenAI", err)
	}

	if resp.StatusCode != http.StatusOK {
		return apperr.Newf(apperr.Upstream, "erro na API OpenAI (%s): %d - %s", path, resp.StatusCode, string(respBody))
	}

	if err := json.Unmarshal(respBody, out); err != nil {
		return apperr.Wrap(apperr.Upstream, "resposta inválida da OpenAI", err)
	}

	return nil
}
