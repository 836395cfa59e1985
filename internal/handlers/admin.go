package handlers

import (
	"net/http"

	"github.com/gin-gonic/gin"
	"github.com/google/uuid"

	"valida-backend/internal/models"
)

type AdminHandler struct {
	profiles ProfileStore
}

func NewAdminHandler(profiles ProfileStore) *AdminHandler {
	return &AdminHandler{profiles: profiles}
}

// ListProfiles godoc
// @Summary     List all profiles with usage stats
// @Tags        admin
// @Produce     json
// @Security    Bearer
// @Success     200 {object} models.ProfileListResponse
// @Failure     403 {object} models.ErrorResponse
// @Router      /admin/profiles [get]
func (h *AdminHandler) ListProfiles(c *gin.Context) {
	profiles, err := h.profiles.ListProfilesWithStats()
	if err != nil {
		c.JSON(http.StatusInternalServerError, models.ErrorResponse{
			Error:   "erro ao listar perfis",
			Message: err.Error(),
		})
		return
	}

	resp := models.ProfileListResponse{Profiles: make([]models.ProfileResponse, 0, len(profiles))}
	for _, p := range profiles {
		entry := models.ProfileResponse{
			ID:              p.ID.String(),
			Email:           p.Email,
			Name:            p.Name.String,
			IsAdmin:         p.IsAdmin,
			IsBanned:        p.IsBanned,
			GenerationCount: p.GenerationCount,
			CreatedAt:       p.CreatedAt,
		}
		if p.LastGeneration.Valid {
			t := p.LastGeneration.Time
			entry.LastGeneration = &t
		}
		resp.Profiles = append(resp.Profiles, entry)
	}

	c.JSON(http.StatusOK, resp)
}

// ToggleBan godoc
// @Summary     Ban or unban a profile
// @Description Banned accounts keep their credentials but every authenticated route refuses them until the flag is lifted.
// @Tags        admin
// @Accept      json
// @Produce     json
// @Security    Bearer
// @Param       profile_id path string true "Profile ID (UUID)"
// @Param       request body models.BanRequest true "Desired banned state"
// @Success     200 {object} map[string]interface{}
// @Failure     400 {object} models.ErrorResponse
// @Failure     403 {object} models.ErrorResponse
// @Router      /admin/profiles/{profile_id}/ban [post]
func (h *AdminHandler) ToggleBan(c *gin.Context) {
	profileID, err := uuid.Parse(c.Param("profile_id"))
	if err != nil {
		c.JSON(http.StatusBadRequest, models.ErrorResponse{Error: "invalid profile id"})
		return
	}

	var req models.BanRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, models.ErrorResponse{Error: "payload inválido", Message: err.Error()})
		return
	}

	if err := h.profiles.SetProfileBanned(profileID, req.Banned); err != nil {
		c.JSON(http.StatusInternalServerError, models.ErrorResponse{
			Error:   "erro ao atualizar perfil",
			Message: err.Error(),
		})
		return
	}

	c.JSON(http.StatusOK, gin.H{"profile_id": profileID.String(), "banned": req.Banned})
}
