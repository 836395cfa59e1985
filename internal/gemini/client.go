package gemini

import (
	"bytes"
	"context"
	"encoding/json"
	"fmt"
	"io"
	"log"
	"net/http"
	"strings"
	"time"

	"valida-backend/internal/apperr"
)

const systemPrompt = `Você é um expert em Copywriting para Shopee, especializado em criar anúncios profissionais que rankeiam bem na plataforma.

REGRAS CRÍTICAS (OBRIGATÓRIAS):
- NÃO use emojis, caracteres especiais desnecessários ou formatação enfeitada
- O texto deve ser limpo, profissional e focado em SEO e palavras-chave
- Títulos devem ser densos em palavras-chave, sem pontuação excessiva
- Descrições devem usar listas simples com hifens (-) ou asteriscos (*) para características
- Foque em clareza técnica e informações que ajudem na conversão
- Evite linguagem excessivamente promocional ou exagerada

A Shopee NÃO PERMITE emojis em títulos ou descrições profissionais.`

const userPromptTemplate = `Produto: %s
Categoria: %s
Características: %s

Crie um anúncio profissional para Shopee seguindo estas especificações:

1. TÍTULO SEO:
   - Máximo de 60 caracteres
   - Denso em palavras-chave relevantes
   - Sem pontuação excessiva
   - Sem emojis ou caracteres especiais

2. DESCRIÇÃO:
   - Use listas simples com hifens (-) ou asteriscos (*) para características
   - Foque em clareza técnica e benefícios reais
   - Sem emojis, caracteres especiais ou formatação enfeitada

IMPORTANTE: NÃO use emojis em nenhuma parte do texto.

Formato de resposta JSON (sem emojis):
{
  "title": "Título SEO denso em palavras-chave aqui",
  "description": "Descrição profissional com listas simples aqui"
}`

type Client struct {
	baseURL    string
	apiKey     string
	models     []string
	httpClient *http.Client
}

type generateContentRequest struct {
	Contents []content `json:"contents"`
}

type content struct {
	Parts []part `json:"parts"`
}

type part struct {
	Text string `json:"text"`
}

type generateContentResponse struct {
	Candidates []struct {
		Content struct {
			Parts []struct {
				Text string `json:"text"`
			} `json:"parts"`
		} `json:"content"`
	} `json:"candidates"`
}

func NewClient(baseURL, apiKey string, models []string) *Client {
	return &Client{
		baseURL: strings.TrimSuffix(baseURL, "/"),
		apiKey:  apiKey,
		models:  models,
		httpClient: &http.Client{
			Timeout: 60 * time.Second,
		},
	}
}

// GenerateListing composes the fixed instruction prompt with the product
// fields and tries each configured model identifier in order, first success
// wins. No backoff, no jitter: the models are equivalent backends and one
// attempt each is enough to find a live one. Exhausting the list fails with
// the last model's error attached for diagnostics.
func (c *Client) GenerateListing(ctx context.Context, productName, features, category string) (title, description string, err error) {
	if c.apiKey == "" {
		return "", "", apperr.New(apperr.Configuration, "GEMINI_API_KEY não configurada")
	}

	prompt := systemPrompt + "\n\n" + fmt.Sprintf(userPromptTemplate, productName, category, features)

	var lastErr error
	for _, model := range c.models {
		raw, attemptErr := c.generateContent(ctx, model, prompt)
		if attemptErr != nil {
			lastErr = attemptErr
			log.Printf("gemini: model %s failed: %v", model, attemptErr)
			continue
		}
		title, description = NormalizeListing(raw, productName)
		return title, description, nil
	}

	return "", "", apperr.Wrap(apperr.Upstream, "nenhum modelo disponível", lastErr)
}

func (c *Client) generateContent(ctx context.Context, model, prompt string) (string, error) {
	url := fmt.Sprintf("%s/%s:generateContent?key=%s", c.baseURL, modelPath(model), c.apiKey)

	body, err := json.Marshal(generateContentRequest{
		Contents: []content{{Parts: []part{{Text: prompt}}}},
	})
	if err != nil {
		return "", fmt.Errorf("failed to marshal request: %w", err)
	}

	req, err := http.NewRequestWithContext(ctx, http.MethodPost, url, bytes.NewReader(body))
	if err != nil {
		return "", fmt.Errorf("failed to create request: %w", err)
	}
	req.Header.Set("Content-Type", "application/json")

	resp, err := c.httpClient.Do(req)
	if err != nil {
		return "", fmt.Errorf("failed to execute request: %w", err)
	}
	defer resp.Body.Close()

	respBody, err := io.ReadAll(resp.Body)
	if err != nil {
		return "", fmt.Errorf("failed to read response body: %w", err)
	}

	if resp.StatusCode != http.StatusOK {
		return "", fmt.Errorf("modelo %s: status %d - %s", model, resp.StatusCode, string(respBody))
	}

	var result generateContentResponse
	if err := json.Unmarshal(respBody, &result); err != nil {
		return "", fmt.Errorf("failed to decode response: %w, body: %s", err, string(respBody))
	}

	if len(result.Candidates) == 0 || len(result.Candidates[0].Content.Parts) == 0 {
		return "", fmt.Errorf("resposta vazia do modelo %s", model)
	}
	text := result.Candidates[0].Content.Parts[0].Text
	if text == "" {
		return "", fmt.Errorf("resposta vazia do modelo %s", model)
	}

	return text, nil
}

// modelPath normalizes the identifier into an API path. Bare names and
// "models/..." identifiers go through v1beta, which accepts both stable and
// latest aliases; identifiers already carrying an API version are kept.
func modelPath(model string) string {
	if strings.HasPrefix(model, "v1/") || strings.HasPrefix(model, "v1beta/") {
		return model
	}
	if strings.HasPrefix(model, "models/") {
		return "v1beta/" + model
	}
	return "v1beta/models/" + model
}
