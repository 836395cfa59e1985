package handlers

import (
	"context"
	"net/http"

	"github.com/gin-gonic/gin"
	"github.com/google/uuid"

	"valida-backend/internal/apperr"
	"valida-backend/internal/models"
	"valida-backend/internal/supabase"
)

// Narrow views over the shared clients so each handler depends only on what
// it calls.

type CopyGenerator interface {
	GenerateListing(ctx context.Context, productName, features, category string) (title, description string, err error)
}

type GenerationStore interface {
	CreateGeneration(g *models.Generation) (*models.Generation, error)
	GetGeneration(generationID, userID uuid.UUID) (*models.Generation, error)
	GetGenerationByID(generationID uuid.UUID) (*models.Generation, error)
	ListGenerations(userID uuid.UUID) ([]models.Generation, error)
	UpdateGenerationImageURL(generationID uuid.UUID, imageURL string) error
	UpdateLegacyProductImage(productID uuid.UUID, imageURL string) error
	DeleteGeneration(generationID, userID uuid.UUID) error
}

type ImageStorage interface {
	UploadProcessedImage(prefix, recordID string, data []byte) (storagePath, publicURL string, err error)
}

type BackgroundRemover interface {
	RemoveBackground(ctx context.Context, image []byte) ([]byte, error)
}

type StudioPipeline interface {
	DescribeProduct(ctx context.Context, image []byte, mimeType string) (string, error)
	GenerateStudioImage(ctx context.Context, productDescription string) (string, error)
}

type WorkflowEngine interface {
	ProcessImage(ctx context.Context, imageURL, productID string) ([]byte, error)
}

type RealtimePublisher interface {
	PublishGenerationUpdate(snapshot supabase.GenerationSnapshot)
}

type Provisioner interface {
	ProvisionPurchase(ctx context.Context, email, name, transactionCode string) (userID string, created bool, err error)
}

type ProfileStore interface {
	ListProfilesWithStats() ([]models.ProfileWithStats, error)
	SetProfileBanned(profileID uuid.UUID, banned bool) error
}

// respondError maps the error taxonomy to an HTTP response. Unknown errors
// fall back to a generic 500.
func respondError(c *gin.Context, err error) {
	status := apperr.HTTPStatus(err)
	if status == http.StatusInternalServerError {
		if _, ok := apperr.KindOf(err); !ok {
			c.JSON(status, models.ErrorResponse{Error: "erro interno do servidor", Message: err.Error()})
			return
		}
	}
	c.JSON(status, models.ErrorResponse{Error: err.Error()})
}
