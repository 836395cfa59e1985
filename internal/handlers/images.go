package handlers

import (
	"log"
	"net/http"
	"time"

	"github.com/gin-gonic/gin"
	"github.com/google/uuid"

	"valida-backend/internal/apperr"
	"valida-backend/internal/models"
	"valida-backend/internal/supabase"
)

// ImagesHandler serves the three image-processing gateways. Each one
// downloads the source image, runs its upstream pipeline, stores the result
// in the public bucket and only then mutates the generation row, so a failed
// upstream call never leaves a half-updated record behind.
type ImagesHandler struct {
	remover  BackgroundRemover
	studio   StudioPipeline
	workflow WorkflowEngine
	db       GenerationStore
	storage  ImageStorage
	realtime RealtimePublisher
}

func NewImagesHandler(remover BackgroundRemover, studio StudioPipeline, workflow WorkflowEngine, db GenerationStore, storage ImageStorage, realtime RealtimePublisher) *ImagesHandler {
	return &ImagesHandler{
		remover:  remover,
		studio:   studio,
		workflow: workflow,
		db:       db,
		storage:  storage,
		realtime: realtime,
	}
}

// RemoveBackground godoc
// @Summary     Remove the background of a generation image
// @Description Downloads the stored image, removes its background through the external API, uploads the cutout and points the generation at the new file.
// @Tags        images
// @Accept      json
// @Produce     json
// @Security    Bearer
// @Param       request body models.ProcessImageRequest true "Image and record reference"
// @Success     200 {object} models.RemoveBackgroundResponse
// @Failure     400 {object} models.ErrorResponse
// @Failure     502 {object} models.ErrorResponse
// @Router      /images/remove-background [post]
func (h *ImagesHandler) RemoveBackground(c *gin.Context) {
	var req models.ProcessImageRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, models.ErrorResponse{
			Error:   "image_url é obrigatória",
			Message: err.Error(),
		})
		return
	}

	recordID, err := uuid.Parse(req.RecordID())
	if err != nil {
		c.JSON(http.StatusBadRequest, models.ErrorResponse{Error: "product_id inválido"})
		return
	}

	original, _, err := supabase.DownloadImage(req.ImageURL)
	if err != nil {
		respondError(c, apperr.Wrap(apperr.Upstream, "erro ao baixar a imagem original", err))
		return
	}

	cutout, err := h.remover.RemoveBackground(c.Request.Context(), original)
	if err != nil {
		respondError(c, err)
		return
	}

	publicURL, err := h.storeAndRecord(recordID, "processed", cutout)
	if err != nil {
		respondError(c, err)
		return
	}

	c.JSON(http.StatusOK, models.RemoveBackgroundResponse{
		Success:           true,
		ProcessedImageURL: publicURL,
	})
}

// StudioImage godoc
// @Summary     Generate a studio rendition of a product image
// @Description Describes the product with the vision model, regenerates it on a studio background and stores the result. With only a product_id and no matching generation the legacy products table is updated instead.
// @Tags        images
// @Accept      json
// @Produce     json
// @Security    Bearer
// @Param       request body models.ProcessImageRequest true "Image and record reference"
// @Success     200 {object} models.StudioImageResponse
// @Failure     400 {object} models.ErrorResponse
// @Failure     502 {object} models.ErrorResponse
// @Router      /images/studio [post]
func (h *ImagesHandler) StudioImage(c *gin.Context) {
	var req models.ProcessImageRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, models.ErrorResponse{
			Error:   "image_url é obrigatória",
			Message: err.Error(),
		})
		return
	}

	recordID, err := uuid.Parse(req.RecordID())
	if err != nil {
		c.JSON(http.StatusBadRequest, models.ErrorResponse{Error: "product_id inválido"})
		return
	}

	original, mimeType, err := supabase.DownloadImage(req.ImageURL)
	if err != nil {
		respondError(c, apperr.Wrap(apperr.Upstream, "erro ao baixar a imagem original", err))
		return
	}

	ctx := c.Request.Context()
	description, err := h.studio.DescribeProduct(ctx, original, mimeType)
	if err != nil {
		respondError(c, err)
		return
	}

	generatedURL, err := h.studio.GenerateStudioImage(ctx, description)
	if err != nil {
		respondError(c, err)
		return
	}

	generated, _, err := supabase.DownloadImage(generatedURL)
	if err != nil {
		respondError(c, apperr.Wrap(apperr.Upstream, "erro ao baixar a imagem gerada", err))
		return
	}

	_, publicURL, err := h.storage.UploadProcessedImage("studio", recordID.String(), generated)
	if err != nil {
		respondError(c, apperr.Wrap(apperr.Persistence, "erro ao salvar a imagem no bucket", err))
		return
	}

	if req.GenerationID != "" {
		if err := h.recordImage(recordID, publicURL); err != nil {
			respondError(c, err)
			return
		}
	} else {
		// Legacy callers send a product_id from the old products table.
		// Try the generation row first and fall back to the product row.
		if err := h.recordImage(recordID, publicURL); err != nil {
			if legacyErr := h.db.UpdateLegacyProductImage(recordID, publicURL); legacyErr != nil {
				log.Printf("studio: no record updated for %s: %v", recordID, legacyErr)
			}
		}
	}

	c.JSON(http.StatusOK, models.StudioImageResponse{
		Success:      true,
		ProcessedURL: publicURL,
	})
}

// WorkflowImage godoc
// @Summary     Process an image through the external workflow
// @Description Hands the image off to the n8n workflow and waits for the processed result. Workflows slower than the configured deadline return 504.
// @Tags        images
// @Accept      json
// @Produce     json
// @Security    Bearer
// @Param       request body models.ProcessImageRequest true "Image and record reference"
// @Success     200 {object} models.WorkflowImageResponse
// @Failure     400 {object} models.ErrorResponse
// @Failure     502 {object} models.ErrorResponse
// @Failure     504 {object} models.ErrorResponse
// @Router      /images/workflow [post]
func (h *ImagesHandler) WorkflowImage(c *gin.Context) {
	var req models.ProcessImageRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, models.ErrorResponse{
			Error:   "image_url é obrigatória",
			Message: err.Error(),
		})
		return
	}

	recordID, err := uuid.Parse(req.RecordID())
	if err != nil {
		c.JSON(http.StatusBadRequest, models.ErrorResponse{Error: "product_id inválido"})
		return
	}

	processed, err := h.workflow.ProcessImage(c.Request.Context(), req.ImageURL, recordID.String())
	if err != nil {
		respondError(c, err)
		return
	}

	publicURL, err := h.storeAndRecord(recordID, "workflow", processed)
	if err != nil {
		respondError(c, err)
		return
	}

	c.JSON(http.StatusOK, models.WorkflowImageResponse{
		Success:  true,
		ImageURL: publicURL,
		Message:  "imagem processada com sucesso",
	})
}

// storeAndRecord uploads the processed bytes and then points the generation
// at the new public URL. Both steps happen after the upstream pipeline
// succeeded, and the row update happens strictly after the upload.
func (h *ImagesHandler) storeAndRecord(recordID uuid.UUID, prefix string, data []byte) (string, error) {
	_, publicURL, err := h.storage.UploadProcessedImage(prefix, recordID.String(), data)
	if err != nil {
		return "", apperr.Wrap(apperr.Persistence, "erro ao salvar a imagem no bucket", err)
	}
	if err := h.recordImage(recordID, publicURL); err != nil {
		return "", err
	}
	return publicURL, nil
}

func (h *ImagesHandler) recordImage(recordID uuid.UUID, publicURL string) error {
	if err := h.db.UpdateGenerationImageURL(recordID, publicURL); err != nil {
		return apperr.Wrap(apperr.Persistence, "erro ao atualizar o registro da geração", err)
	}
	h.publish(recordID, publicURL)
	return nil
}

func (h *ImagesHandler) publish(recordID uuid.UUID, publicURL string) {
	if h.realtime == nil {
		return
	}
	generation, err := h.db.GetGenerationByID(recordID)
	status := models.StatusProcessing
	if err == nil {
		status = generation.Status
	}
	h.realtime.PublishGenerationUpdate(supabase.GenerationSnapshot{
		GenerationID: recordID,
		ImageURL:     publicURL,
		Status:       status,
		UpdatedAt:    time.Now().UTC(),
	})
}
