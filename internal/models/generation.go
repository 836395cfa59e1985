package models

import (
	"database/sql"
	"time"

	"github.com/google/uuid"
)

// GenerationStatus is the lifecycle of a listing generation. A row starts as
// processando and moves exactly once to concluido or erro. Image processing
// overwrites image_url in place afterwards without touching the status.
type GenerationStatus string

const (
	StatusProcessing GenerationStatus = "processando"
	StatusCompleted  GenerationStatus = "concluido"
	StatusError      GenerationStatus = "erro"
)

func (s GenerationStatus) Valid() bool {
	switch s {
	case StatusProcessing, StatusCompleted, StatusError:
		return true
	}
	return false
}

// Terminal reports whether the copy-generation lifecycle has finished.
func (s GenerationStatus) Terminal() bool {
	return s == StatusCompleted || s == StatusError
}

// CanTransitionTo enforces processando -> concluido|erro with no way back.
func (s GenerationStatus) CanTransitionTo(next GenerationStatus) bool {
	if !next.Valid() {
		return false
	}
	if s == next {
		return true
	}
	return s == StatusProcessing && next.Terminal()
}

type Generation struct {
	ID          uuid.UUID
	UserID      uuid.UUID
	ProductName sql.NullString
	Features    sql.NullString
	Category    sql.NullString
	Title       sql.NullString
	Description sql.NullString
	ImageURL    sql.NullString
	ImageBase64 sql.NullString
	Status      GenerationStatus
	CreatedAt   time.Time
	UpdatedAt   time.Time
}

// CurrentImage returns the displayable image reference. When both columns are
// set the stored URL wins over the legacy inline representation.
func (g *Generation) CurrentImage() string {
	if g.ImageURL.Valid && g.ImageURL.String != "" {
		return g.ImageURL.String
	}
	if g.ImageBase64.Valid {
		return g.ImageBase64.String
	}
	return ""
}

type Profile struct {
	ID        uuid.UUID
	Email     string
	Name      sql.NullString
	IsAdmin   bool
	IsBanned  bool
	CreatedAt time.Time
	UpdatedAt time.Time
}

// ProfileWithStats is the admin dashboard projection.
type ProfileWithStats struct {
	Profile
	GenerationCount int
	LastGeneration  sql.NullTime
}
