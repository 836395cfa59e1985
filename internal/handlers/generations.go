package handlers

import (
	"database/sql"
	"net/http"

	"github.com/gin-gonic/gin"
	"github.com/google/uuid"

	"valida-backend/internal/middleware"
	"valida-backend/internal/models"
)

type GenerationsHandler struct {
	db GenerationStore
}

func NewGenerationsHandler(db GenerationStore) *GenerationsHandler {
	return &GenerationsHandler{db: db}
}

// SaveGeneration godoc
// @Summary     Save a generation
// @Description Persists a copy-generation result for the caller. Supplying both title and description marks the row concluido; otherwise it stays processando for a later external completion.
// @Tags        generations
// @Accept      json
// @Produce     json
// @Security    Bearer
// @Param       request body models.SaveGenerationRequest true "Generation fields"
// @Success     201 {object} models.GenerationResponse
// @Failure     400 {object} models.ErrorResponse
// @Failure     401 {object} models.ErrorResponse
// @Router      /generations [post]
func (h *GenerationsHandler) SaveGeneration(c *gin.Context) {
	userID, ok := currentUser(c)
	if !ok {
		return
	}

	var req models.SaveGenerationRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, models.ErrorResponse{
			Error:   "campos obrigatórios: product_name, features, category",
			Message: err.Error(),
		})
		return
	}

	// A completed row carries its copy at creation time; anything else
	// starts processando and waits for an external completion.
	status := models.StatusProcessing
	if req.Title != "" && req.Description != "" {
		status = models.StatusCompleted
	}

	generation := &models.Generation{
		ID:          uuid.New(),
		UserID:      userID,
		ProductName: nullString(req.ProductName),
		Features:    nullString(req.Features),
		Category:    nullString(req.Category),
		Title:       nullString(req.Title),
		Description: nullString(req.Description),
		ImageURL:    nullString(req.ImageURL),
		ImageBase64: nullString(req.ImageBase64),
		Status:      status,
	}

	created, err := h.db.CreateGeneration(generation)
	if err != nil {
		c.JSON(http.StatusInternalServerError, models.ErrorResponse{
			Error:   "erro ao salvar geração",
			Message: err.Error(),
		})
		return
	}

	c.JSON(http.StatusCreated, models.NewGenerationResponse(created))
}

// ListGenerations godoc
// @Summary     List the caller's generations
// @Tags        generations
// @Produce     json
// @Security    Bearer
// @Success     200 {object} models.GenerationListResponse
// @Failure     401 {object} models.ErrorResponse
// @Router      /generations [get]
func (h *GenerationsHandler) ListGenerations(c *gin.Context) {
	userID, ok := currentUser(c)
	if !ok {
		return
	}

	generations, err := h.db.ListGenerations(userID)
	if err != nil {
		c.JSON(http.StatusInternalServerError, models.ErrorResponse{
			Error:   "erro ao listar gerações",
			Message: err.Error(),
		})
		return
	}

	resp := models.GenerationListResponse{
		Generations: make([]models.GenerationResponse, 0, len(generations)),
	}
	for i := range generations {
		resp.Generations = append(resp.Generations, models.NewGenerationResponse(&generations[i]))
	}

	c.JSON(http.StatusOK, resp)
}

// GetGeneration godoc
// @Summary     Get one generation
// @Tags        generations
// @Produce     json
// @Security    Bearer
// @Param       generation_id path string true "Generation ID (UUID)"
// @Success     200 {object} models.GenerationResponse
// @Failure     400 {object} models.ErrorResponse
// @Failure     404 {object} models.ErrorResponse
// @Router      /generations/{generation_id} [get]
func (h *GenerationsHandler) GetGeneration(c *gin.Context) {
	userID, ok := currentUser(c)
	if !ok {
		return
	}

	generationID, err := uuid.Parse(c.Param("generation_id"))
	if err != nil {
		c.JSON(http.StatusBadRequest, models.ErrorResponse{Error: "invalid generation id"})
		return
	}

	generation, err := h.db.GetGeneration(generationID, userID)
	if err != nil {
		c.JSON(http.StatusNotFound, models.ErrorResponse{
			Error:   "geração não encontrada",
			Message: err.Error(),
		})
		return
	}

	c.JSON(http.StatusOK, models.NewGenerationResponse(generation))
}

// DeleteGeneration godoc
// @Summary     Delete a generation
// @Tags        generations
// @Produce     json
// @Security    Bearer
// @Param       generation_id path string true "Generation ID (UUID)"
// @Success     200 {object} map[string]string
// @Failure     400 {object} models.ErrorResponse
// @Router      /generations/{generation_id} [delete]
func (h *GenerationsHandler) DeleteGeneration(c *gin.Context) {
	userID, ok := currentUser(c)
	if !ok {
		return
	}

	generationID, err := uuid.Parse(c.Param("generation_id"))
	if err != nil {
		c.JSON(http.StatusBadRequest, models.ErrorResponse{Error: "invalid generation id"})
		return
	}

	if err := h.db.DeleteGeneration(generationID, userID); err != nil {
		c.JSON(http.StatusInternalServerError, models.ErrorResponse{
			Error:   "erro ao excluir geração",
			Message: err.Error(),
		})
		return
	}

	c.JSON(http.StatusOK, gin.H{"status": "deleted"})
}

func currentUser(c *gin.Context) (uuid.UUID, bool) {
	value, exists := c.Get(middleware.UserIDKey)
	if !exists {
		c.JSON(http.StatusUnauthorized, models.ErrorResponse{Error: "user id not found"})
		return uuid.Nil, false
	}

	userID, err := uuid.Parse(value.(string))
	if err != nil {
		c.JSON(http.StatusBadRequest, models.ErrorResponse{Error: "invalid user id"})
		return uuid.Nil, false
	}

	return userID, true
}

func nullString(s string) sql.NullString {
	return sql.NullString{String: s, Valid: s != ""}
}
