package handlers

import (
	"net/http"

	"github.com/gin-gonic/gin"

	"valida-backend/internal/models"
)

type CopyHandler struct {
	generator CopyGenerator
}

func NewCopyHandler(generator CopyGenerator) *CopyHandler {
	return &CopyHandler{generator: generator}
}

// GenerateCopy godoc
// @Summary     Generate listing copy
// @Description Generates an SEO title and description for a product using the configured text-generation models. The result is returned only; saving it as a generation is a separate call.
// @Tags        copy
// @Accept      json
// @Produce     json
// @Security    Bearer
// @Param       request body models.GenerateCopyRequest true "Product fields"
// @Success     200 {object} models.CopyResponse
// @Failure     400 {object} models.ErrorResponse
// @Failure     401 {object} models.ErrorResponse
// @Failure     403 {object} models.ErrorResponse
// @Failure     502 {object} models.ErrorResponse
// @Router      /copy/generate [post]
func (h *CopyHandler) GenerateCopy(c *gin.Context) {
	var req models.GenerateCopyRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, models.ErrorResponse{
			Error:   "campos obrigatórios: product_name, features, category",
			Message: err.Error(),
		})
		return
	}

	title, description, err := h.generator.GenerateListing(c.Request.Context(), req.ProductName, req.Features, req.Category)
	if err != nil {
		respondError(c, err)
		return
	}

	c.JSON(http.StatusOK, models.CopyResponse{
		Title:       title,
		Description: description,
	})
}
