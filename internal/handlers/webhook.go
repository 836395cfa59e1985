package handlers

import (
	"crypto/subtle"
	"encoding/json"
	"io"
	"log"
	"net/http"

	"github.com/gin-gonic/gin"

	"valida-backend/internal/models"
)

const hottokHeader = "X-Hotmart-Hottok"

// WebhookHandler receives Hotmart purchase events and provisions accounts
// for approved purchases.
type WebhookHandler struct {
	secret      string
	provisioner Provisioner
}

func NewWebhookHandler(secret string, provisioner Provisioner) *WebhookHandler {
	return &WebhookHandler{secret: secret, provisioner: provisioner}
}

// HotmartWebhook godoc
// @Summary     Hotmart purchase webhook
// @Description Authenticates the hottok, ignores everything but APPROVED purchases and provisions (or re-links) the buyer's account. Always returns 200 for authenticated non-approved events so Hotmart stops retrying.
// @Tags        webhooks
// @Accept      json
// @Produce     json
// @Param       X-Hotmart-Hottok header string false "Webhook token"
// @Param       payload body models.HotmartWebhookPayload true "Hotmart event"
// @Success     200 {object} models.WebhookResponse
// @Failure     401 {object} models.ErrorResponse
// @Failure     500 {object} models.ErrorResponse
// @Router      /webhooks/hotmart [post]
func (h *WebhookHandler) HotmartWebhook(c *gin.Context) {
	if h.secret == "" {
		c.JSON(http.StatusInternalServerError, models.ErrorResponse{Error: "HOTMART_SECRET não configurado"})
		return
	}

	body, err := io.ReadAll(c.Request.Body)
	if err != nil {
		c.JSON(http.StatusBadRequest, models.ErrorResponse{Error: "corpo da requisição inválido"})
		return
	}

	var payload models.HotmartWebhookPayload
	if err := json.Unmarshal(body, &payload); err != nil {
		c.JSON(http.StatusBadRequest, models.ErrorResponse{Error: "payload inválido", Message: err.Error()})
		return
	}

	token := c.GetHeader(hottokHeader)
	hottokUsedForAuth := false
	if token == "" {
		token = payload.BodyToken()
		hottokUsedForAuth = token != "" && token == payload.Hottok
	}
	if token == "" {
		c.JSON(http.StatusUnauthorized, models.ErrorResponse{Error: "Token de autenticação não fornecido"})
		return
	}
	if !tokenMatches(token, h.secret) {
		c.JSON(http.StatusUnauthorized, models.ErrorResponse{Error: "Token de autenticação inválido"})
		return
	}

	if payload.Status != "APPROVED" {
		c.JSON(http.StatusOK, models.WebhookResponse{
			Message: "evento ignorado",
			Status:  payload.Status,
		})
		return
	}

	email := payload.BuyerEmail()
	if email == "" {
		c.JSON(http.StatusBadRequest, models.ErrorResponse{Error: "email do comprador não encontrado"})
		return
	}

	transactionCode := payload.TransactionRef(hottokUsedForAuth)
	userID, created, err := h.provisioner.ProvisionPurchase(c.Request.Context(), email, payload.BuyerName(), transactionCode)
	if err != nil {
		log.Printf("webhook: provisioning failed for %s: %v", email, err)
		respondError(c, err)
		return
	}

	message := "usuário já existente vinculado"
	if created {
		message = "usuário criado com sucesso"
	}
	c.JSON(http.StatusOK, models.WebhookResponse{
		Success: true,
		Message: message,
		UserID:  userID,
		Status:  payload.Status,
	})
}

// tokenMatches compares in constant time. Length and byte mismatches take
// the same path so the two cases are indistinguishable to the caller.
func tokenMatches(token, secret string) bool {
	if len(token) != len(secret) {
		subtle.ConstantTimeCompare([]byte(secret), []byte(secret))
		return false
	}
	return subtle.ConstantTimeCompare([]byte(token), []byte(secret)) == 1
}
