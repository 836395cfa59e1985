package handlers_test

import (
	"bytes"
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/gin-gonic/gin"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"valida-backend/internal/handlers"
	"valida-backend/internal/models"
)

const webhookSecret = "hottok-secreto-123"

func webhookRouter(secret string, provisioner *fakeProvisioner) *gin.Engine {
	gin.SetMode(gin.TestMode)
	router := gin.New()
	handler := handlers.NewWebhookHandler(secret, provisioner)
	router.POST("/webhooks/hotmart", handler.HotmartWebhook)
	return router
}

func postWebhook(router *gin.Engine, headerToken string, payload map[string]interface{}) *httptest.ResponseRecorder {
	body, _ := json.Marshal(payload)
	req, _ := http.NewRequest("POST", "/webhooks/hotmart", bytes.NewReader(body))
	req.Header.Set("Content-Type", "application/json")
	if headerToken != "" {
		req.Header.Set("X-Hotmart-Hottok", headerToken)
	}
	w := httptest.NewRecorder()
	router.ServeHTTP(w, req)
	return w
}

func approvedPayload() map[string]interface{} {
	return map[string]interface{}{
		"status":      "APPROVED",
		"transaction": "HP1234567890",
		"buyer": map[string]string{
			"email": "comprador@example.com",
			"name":  "Maria Silva",
		},
	}
}

func TestHotmartWebhook_ApprovedProvisionsAccount(t *testing.T) {
	provisioner := &fakeProvisioner{userID: "user-1", created: true}
	router := webhookRouter(webhookSecret, provisioner)

	w := postWebhook(router, webhookSecret, approvedPayload())

	require.Equal(t, http.StatusOK, w.Code)

	var resp models.WebhookResponse
	require.NoError(t, json.Unmarshal(w.Body.Bytes(), &resp))
	assert.True(t, resp.Success)
	assert.Equal(t, "user-1", resp.UserID)

	require.Len(t, provisioner.calls, 1)
	assert.Equal(t, "comprador@example.com", provisioner.calls[0].Email)
	assert.Equal(t, "Maria Silva", provisioner.calls[0].Name)
	assert.Equal(t, "HP1234567890", provisioner.calls[0].TransactionCode)
}

func TestHotmartWebhook_MissingToken(t *testing.T) {
	provisioner := &fakeProvisioner{}
	router := webhookRouter(webhookSecret, provisioner)

	w := postWebhook(router, "", approvedPayload())

	assert.Equal(t, http.StatusUnauthorized, w.Code)
	assert.Contains(t, w.Body.String(), "Token de autenticação não fornecido")
	assert.Empty(t, provisioner.calls)
}

func TestHotmartWebhook_WrongToken(t *testing.T) {
	provisioner := &fakeProvisioner{}
	router := webhookRouter(webhookSecret, provisioner)

	w := postWebhook(router, "hottok-errado-456", approvedPayload())

	assert.Equal(t, http.StatusUnauthorized, w.Code)
	assert.Contains(t, w.Body.String(), "Token de autenticação inválido")
	assert.Empty(t, provisioner.calls)
}

func TestHotmartWebhook_LengthMismatchSameResponse(t *testing.T) {
	provisioner := &fakeProvisioner{}
	router := webhookRouter(webhookSecret, provisioner)

	shorter := postWebhook(router, "x", approvedPayload())
	sameLength := postWebhook(router, "hottok-secreto-124", approvedPayload())

	assert.Equal(t, http.StatusUnauthorized, shorter.Code)
	assert.Equal(t, http.StatusUnauthorized, sameLength.Code)
	assert.Equal(t, shorter.Body.String(), sameLength.Body.String())
}

func TestHotmartWebhook_BodyHottokAuthenticates(t *testing.T) {
	provisioner := &fakeProvisioner{userID: "user-2", created: true}
	router := webhookRouter(webhookSecret, provisioner)

	payload := approvedPayload()
	payload["hottok"] = webhookSecret
	delete(payload, "transaction")

	w := postWebhook(router, "", payload)

	require.Equal(t, http.StatusOK, w.Code)
	require.Len(t, provisioner.calls, 1)
	// The body hottok authenticated the call, so it must not double as the
	// transaction code used for the initial password.
	assert.NotEqual(t, webhookSecret, provisioner.calls[0].TransactionCode)
}

func TestHotmartWebhook_NonApprovedIsIgnored(t *testing.T) {
	provisioner := &fakeProvisioner{}
	router := webhookRouter(webhookSecret, provisioner)

	payload := approvedPayload()
	payload["status"] = "REFUNDED"

	w := postWebhook(router, webhookSecret, payload)

	require.Equal(t, http.StatusOK, w.Code)
	assert.Contains(t, w.Body.String(), "evento ignorado")
	assert.Empty(t, provisioner.calls)
}

func TestHotmartWebhook_MissingSecretConfig(t *testing.T) {
	provisioner := &fakeProvisioner{}
	router := webhookRouter("", provisioner)

	w := postWebhook(router, "qualquer", approvedPayload())

	assert.Equal(t, http.StatusInternalServerError, w.Code)
	assert.Contains(t, w.Body.String(), "HOTMART_SECRET")
}

func TestHotmartWebhook_NestedBuyer(t *testing.T) {
	provisioner := &fakeProvisioner{userID: "user-3"}
	router := webhookRouter(webhookSecret, provisioner)

	payload := map[string]interface{}{
		"status": "APPROVED",
		"data": map[string]interface{}{
			"buyer": map[string]string{
				"email": "aninhada@example.com",
			},
			"transaction": "HP987",
		},
	}

	w := postWebhook(router, webhookSecret, payload)

	require.Equal(t, http.StatusOK, w.Code)
	require.Len(t, provisioner.calls, 1)
	assert.Equal(t, "aninhada@example.com", provisioner.calls[0].Email)
	assert.Equal(t, "Usuário", provisioner.calls[0].Name)
	assert.Equal(t, "HP987", provisioner.calls[0].TransactionCode)
}
