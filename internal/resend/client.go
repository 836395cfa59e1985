// Package resend sends transactional email. Delivery is best-effort
// everywhere it is used: a failed send is logged, never propagated.
package resend

import (
	"bytes"
	"context"
	"encoding/json"
	"fmt"
	"io"
	"net/http"
	"time"
)

const apiURL = "https://api.resend.com/emails"

// In test mode Resend only delivers to the account owner's address; a
// verified domain sender replaces this in production.
const fromAddress = "Valida AI <onboarding@resend.dev>"

type Client struct {
	apiKey     string
	httpClient *http.Client
}

type sendRequest struct {
	From    string   `json:"from"`
	To      []string `json:"to"`
	Subject string   `json:"subject"`
	HTML    string   `json:"html"`
}

func NewClient(apiKey string) *Client {
	return &Client{
		apiKey: apiKey,
		httpClient: &http.Client{
			Timeout: 30 * time.Second,
		},
	}
}

// Configured reports whether an API key is present. Callers log and skip
// the send when it is not, instead of failing.
func (c *Client) Configured() bool {
	return c.apiKey != ""
}

// SendWelcomeEmail delivers the first-access credentials to a freshly
// provisioned account.
func (c *Client) SendWelcomeEmail(ctx context.Context, to, name, transactionCode, loginURL string) error {
	html := welcomeEmailHTML(name, to, transactionCode, loginURL)

	body, err := json.Marshal(sendRequest{
		From:    fromAddress,
		To:      []string{to},
		Subject: "Bem-vindo ao Valida AI - Suas Credenciais de Acesso",
		HTML:    html,
	})
	if err != nil {
		return fmt.Errorf("failed to marshal request: %w", err)
	}

	req, err := http.NewRequestWithContext(ctx, http.MethodPost, apiURL, bytes.NewReader(body))
	if err != nil {
		return fmt.Errorf("failed to create request: %w", err)
	}
	req.Header.Set("Authorization", "Bearer "+c.apiKey)
	req.Header.Set("Content-Type", "application/json")

	resp, err := c.httpClient.Do(req)
	if err != nil {
		return fmt.Errorf("failed to execute request: %w", err)
	}
	defer resp.Body.Close()

	if resp.StatusCode != http.StatusOK {
		respBody, _ := io.ReadAll(resp.Body)
		return fmt.Errorf("erro ao enviar email: %d - %s", resp.StatusCode, string(respBody))
	}

	return nil
}

func welcomeEmailHTML(name, email, transactionCode, loginURL string) string {
	return fmt.Sprintf(`<!DOCTYPE html>
<html>
<head>
  <meta charset="UTF-8">
  <style>
    body { font-family: Arial, sans-serif; line-height: 1.6; color: #333; }
    .container { max-width: 600px; margin: 0 auto; padding: 20px; }
    .header { background: linear-gradient(135deg, #3b82f6 0%%, #1e40af 100%%); color: white; padding: 30px; text-align: center; border-radius: 10px 10px 0 0; }
    .content { background: #f9fafb; padding: 30px; border-radius: 0 0 10px 10px; }
    .credentials-box { background: white; border: 2px solid #3b82f6; border-radius: 8px; padding: 20px; margin: 20px 0; }
    .code { font-size: 24px; font-weight: bold; color: #3b82f6; letter-spacing: 2px; text-align: center; padding: 15px; background: #eff6ff; border-radius: 5px; }
    .button { display: inline-block; background: #3b82f6; color: white; padding: 12px 30px; text-decoration: none; border-radius: 5px; margin: 20px 0; }
    .footer { text-align: center; color: #6b7280; font-size: 12px; margin-top: 30px; }
  </style>
</head>
<body>
  <div class="container">
    <div class="header">
      <h1>Bem-vindo ao Valida AI!</h1>
      <p>Sua conta foi criada com sucesso</p>
    </div>
    <div class="content">
      <p>Olá <strong>%s</strong>,</p>
      <p>Sua compra foi aprovada e sua conta no <strong>Valida AI</strong> está pronta para uso!</p>
      <div class="credentials-box">
        <h3 style="margin-top: 0; color: #1e40af;">Suas Credenciais de Acesso</h3>
        <p><strong>Email:</strong> %s</p>
        <p><strong>Senha Inicial (Código da Transação):</strong></p>
        <div class="code">%s</div>
        <p style="font-size: 12px; color: #6b7280; margin-top: 10px;">
          Use este código como senha no primeiro acesso. Você poderá definir uma senha pessoal após o login.
        </p>
      </div>
      <div style="text-align: center;">
        <a href="%s" class="button">Acessar Minha Conta</a>
      </div>
      <p>Se tiver dúvidas, entre em contato conosco.</p>
      <p>Atenciosamente,<br><strong>Equipe Valida AI</strong></p>
    </div>
    <div class="footer">
      <p>Este é um email automático. Por favor, não responda.</p>
    </div>
  </div>
</body>
</html>`, name, email, transactionCode, loginURL)
}
