package middleware

import (
	"net/http"

	"github.com/gin-gonic/gin"
	"github.com/google/uuid"

	"valida-backend/internal/models"
)

// ProfileStore is the slice of the database the gates need.
type ProfileStore interface {
	GetProfile(profileID uuid.UUID) (*models.Profile, error)
}

// RequireActiveProfile refuses banned accounts uniformly across every
// gateway, even though their JWT is still valid. An account with no profile
// row yet is treated as active.
func RequireActiveProfile(store ProfileStore) gin.HandlerFunc {
	return func(c *gin.Context) {
		userID, ok := currentUserID(c)
		if !ok {
			c.JSON(http.StatusUnauthorized, models.ErrorResponse{Error: "user id not found"})
			c.Abort()
			return
		}

		profile, err := store.GetProfile(userID)
		if err != nil {
			// No profile row yet (e.g. account provisioned before the
			// first gateway call finished the upsert).
			c.Next()
			return
		}

		if profile.IsBanned {
			c.JSON(http.StatusForbidden, models.ErrorResponse{Error: "conta banida"})
			c.Abort()
			return
		}

		c.Next()
	}
}

// RequireAdmin gates the admin surface on the is_admin flag.
func RequireAdmin(store ProfileStore) gin.HandlerFunc {
	return func(c *gin.Context) {
		userID, ok := currentUserID(c)
		if !ok {
			c.JSON(http.StatusUnauthorized, models.ErrorResponse{Error: "user id not found"})
			c.Abort()
			return
		}

		profile, err := store.GetProfile(userID)
		if err != nil || !profile.IsAdmin {
			c.JSON(http.StatusForbidden, models.ErrorResponse{Error: "acesso restrito a administradores"})
			c.Abort()
			return
		}

		c.Next()
	}
}

func currentUserID(c *gin.Context) (uuid.UUID, bool) {
	value, exists := c.Get(UserIDKey)
	if !exists {
		return uuid.Nil, false
	}
	str, ok := value.(string)
	if !ok {
		return uuid.Nil, false
	}
	id, err := uuid.Parse(str)
	if err != nil {
		return uuid.Nil, false
	}
	return id, true
}
