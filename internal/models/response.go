package models

import "time"

type CopyResponse struct {
	Title       string `json:"title"`
	Description string `json:"description"`
}

type GenerationResponse struct {
	ID          string    `json:"id"`
	ProductName string    `json:"product_name,omitempty"`
	Features    string    `json:"features,omitempty"`
	Category    string    `json:"category,omitempty"`
	Title       string    `json:"title,omitempty"`
	Description string    `json:"description,omitempty"`
	ImageURL    string    `json:"image_url,omitempty"`
	Status      string    `json:"status"`
	CreatedAt   time.Time `json:"created_at"`
	UpdatedAt   time.Time `json:"updated_at"`
}

type GenerationListResponse struct {
	Generations []GenerationResponse `json:"generations"`
}

func NewGenerationResponse(g *Generation) GenerationResponse {
	return GenerationResponse{
		ID:          g.ID.String(),
		ProductName: g.ProductName.String,
		Features:    g.Features.String,
		Category:    g.Category.String,
		Title:       g.Title.String,
		Description: g.Description.String,
		ImageURL:    g.CurrentImage(),
		Status:      string(g.Status),
		CreatedAt:   g.CreatedAt,
		UpdatedAt:   g.UpdatedAt,
	}
}

type RemoveBackgroundResponse struct {
	Success           bool   `json:"success"`
	ProcessedImageURL string `json:"processed_image_url"`
}

type StudioImageResponse struct {
	Success      bool   `json:"success"`
	ProcessedURL string `json:"processedUrl"`
}

type WorkflowImageResponse struct {
	Success  bool   `json:"success"`
	ImageURL string `json:"imageUrl"`
	Message  string `json:"message"`
}

type WebhookResponse struct {
	Success bool   `json:"success,omitempty"`
	Message string `json:"message"`
	UserID  string `json:"userId,omitempty"`
	Status  string `json:"status,omitempty"`
}

type ProfileResponse struct {
	ID              string     `json:"id"`
	Email           string     `json:"email"`
	Name            string     `json:"name,omitempty"`
	IsAdmin         bool       `json:"is_admin"`
	IsBanned        bool       `json:"is_banned"`
	GenerationCount int        `json:"generation_count"`
	LastGeneration  *time.Time `json:"last_generation,omitempty"`
	CreatedAt       time.Time  `json:"created_at"`
}

type ProfileListResponse struct {
	Profiles []ProfileResponse `json:"profiles"`
}

type HealthResponse struct {
	Status string `json:"status"`
}

type ErrorResponse struct {
	Error   string `json:"error"`
	Message string `json:"message,omitempty"`
}
