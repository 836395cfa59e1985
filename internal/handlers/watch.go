package handlers

import (
	"log"
	"net/http"
	"time"

	"github.com/gin-gonic/gin"
	"github.com/google/uuid"
	"github.com/gorilla/websocket"

	"valida-backend/internal/models"
	"valida-backend/internal/supabase"
)

// GenerationWatcher is the subscription side of the realtime fan-out.
type GenerationWatcher interface {
	Subscribe(generationID uuid.UUID) (<-chan supabase.GenerationSnapshot, func())
}

// WatchHandler streams row snapshots for a single generation over a
// websocket. Delivery is at-least-once; the handler de-duplicates by
// image_url so the browser only sees actual changes.
type WatchHandler struct {
	db       GenerationStore
	realtime GenerationWatcher
	upgrader websocket.Upgrader
}

func NewWatchHandler(db GenerationStore, realtime GenerationWatcher) *WatchHandler {
	return &WatchHandler{
		db:       db,
		realtime: realtime,
		upgrader: websocket.Upgrader{
			ReadBufferSize:  1024,
			WriteBufferSize: 1024,
			CheckOrigin:     func(r *http.Request) bool { return true },
		},
	}
}

// WatchGeneration godoc
// @Summary     Watch a generation for image updates
// @Description Upgrades to a websocket and pushes a snapshot whenever the generation's image changes. The current row state is sent immediately on connect.
// @Tags        generations
// @Security    Bearer
// @Param       generation_id path string true "Generation ID (UUID)"
// @Success     101 {string} string "Switching Protocols"
// @Failure     400 {object} models.ErrorResponse
// @Failure     404 {object} models.ErrorResponse
// @Router      /generations/{generation_id}/watch [get]
func (h *WatchHandler) WatchGeneration(c *gin.Context) {
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
		c.JSON(http.StatusNotFound, models.ErrorResponse{Error: "geração não encontrada"})
		return
	}

	conn, err := h.upgrader.Upgrade(c.Writer, c.Request, nil)
	if err != nil {
		log.Printf("watch: upgrade failed for %s: %v", generationID, err)
		return
	}
	defer conn.Close()

	updates, cancel := h.realtime.Subscribe(generationID)
	defer cancel()

	// Drain reads so close frames from the client are processed.
	clientGone := make(chan struct{})
	go func() {
		defer close(clientGone)
		for {
			if _, _, err := conn.ReadMessage(); err != nil {
				return
			}
		}
	}()

	lastImageURL := ""
	initial := supabase.GenerationSnapshot{
		GenerationID: generation.ID,
		ImageURL:     generation.CurrentImage(),
		Status:       generation.Status,
		UpdatedAt:    generation.UpdatedAt,
	}
	if err := conn.WriteJSON(initial); err != nil {
		return
	}
	lastImageURL = initial.ImageURL

	for {
		select {
		case snapshot, open := <-updates:
			if !open {
				return
			}
			if snapshot.ImageURL == lastImageURL {
				continue
			}
			conn.SetWriteDeadline(time.Now().Add(10 * time.Second))
			if err := conn.WriteJSON(snapshot); err != nil {
				return
			}
			lastImageURL = snapshot.ImageURL
		case <-clientGone:
			return
		case <-c.Request.Context().Done():
			return
		}
	}
}
