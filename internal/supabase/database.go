package supabase

import (
	"database/sql"
	"fmt"
	"time"

	"github.com/google/uuid"
	_ "github.com/lib/pq"

	"valida-backend/internal/models"
)

type DatabaseClient struct {
	db *sql.DB
}

func NewDatabaseClient(connectionString string) (*DatabaseClient, error) {
	db, err := sql.Open("postgres", connectionString)
	if err != nil {
		return nil, fmt.Errorf("failed to open database: %w", err)
	}

	if err := db.Ping(); err != nil {
		return nil, fmt.Errorf("failed to ping database: %w", err)
	}

	return &DatabaseClient{db: db}, nil
}

const generationColumns = `id, user_id, product_name, features, category, title, description, image_url, image_base64, status, created_at, updated_at`

func scanGeneration(row interface{ Scan(...interface{}) error }) (*models.Generation, error) {
	var g models.Generation
	err := row.Scan(
		&g.ID, &g.UserID, &g.ProductName, &g.Features, &g.Category,
		&g.Title, &g.Description, &g.ImageURL, &g.ImageBase64,
		&g.Status, &g.CreatedAt, &g.UpdatedAt,
	)
	if err != nil {
		return nil, err
	}
	return &g, nil
}

func (d *DatabaseClient) CreateGeneration(g *models.Generation) (*models.Generation, error) {
	row := d.db.QueryRow(`
		INSERT INTO generations (id, user_id, product_name, features, category, title, description, image_url, image_base64, status)
		VALUES ($1, $2, $3, $4, $5, $6, $7, $8, $9, $10)
		RETURNING `+generationColumns,
		g.ID, g.UserID, g.ProductName, g.Features, g.Category,
		g.Title, g.Description, g.ImageURL, g.ImageBase64, g.Status,
	)
	created, err := scanGeneration(row)
	if err != nil {
		return nil, fmt.Errorf("failed to create generation: %w", err)
	}
	return created, nil
}

// GetGeneration is scoped by user_id; every end-user read goes through it.
func (d *DatabaseClient) GetGeneration(generationID, userID uuid.UUID) (*models.Generation, error) {
	row := d.db.QueryRow(`
		SELECT `+generationColumns+`
		FROM generations
		WHERE id = $1 AND user_id = $2
	`, generationID, userID)
	g, err := scanGeneration(row)
	if err != nil {
		return nil, fmt.Errorf("failed to get generation: %w", err)
	}
	return g, nil
}

// GetGenerationByID skips the user scope. Used only by the image gateways'
// privileged write path and the realtime hub.
func (d *DatabaseClient) GetGenerationByID(generationID uuid.UUID) (*models.Generation, error) {
	row := d.db.QueryRow(`
		SELECT `+generationColumns+`
		FROM generations
		WHERE id = $1
	`, generationID)
	g, err := scanGeneration(row)
	if err != nil {
		return nil, fmt.Errorf("failed to get generation: %w", err)
	}
	return g, nil
}

func (d *DatabaseClient) ListGenerations(userID uuid.UUID) ([]models.Generation, error) {
	rows, err := d.db.Query(`
		SELECT `+generationColumns+`
		FROM generations
		WHERE user_id = $1
		ORDER BY created_at DESC
	`, userID)
	if err != nil {
		return nil, fmt.Errorf("failed to list generations: %w", err)
	}
	defer rows.Close()

	var generations []models.Generation
	for rows.Next() {
		g, err := scanGeneration(rows)
		if err != nil {
			return nil, fmt.Errorf("failed to scan generation: %w", err)
		}
		generations = append(generations, *g)
	}

	return generations, rows.Err()
}

// UpdateGenerationImageURL overwrites the image pointer in place. Status is
// deliberately untouched: image reprocessing is orthogonal to the copy
// lifecycle, and the last writer wins.
func (d *DatabaseClient) UpdateGenerationImageURL(generationID uuid.UUID, imageURL string) error {
	result, err := d.db.Exec(`
		UPDATE generations
		SET image_url = $1, updated_at = NOW()
		WHERE id = $2
	`, imageURL, generationID)
	if err != nil {
		return fmt.Errorf("failed to update generation image: %w", err)
	}
	affected, err := result.RowsAffected()
	if err == nil && affected == 0 {
		return fmt.Errorf("generation %s not found", generationID)
	}
	return nil
}

func (d *DatabaseClient) UpdateGenerationStatus(generationID uuid.UUID, status models.GenerationStatus) error {
	_, err := d.db.Exec(`
		UPDATE generations
		SET status = $1, updated_at = NOW()
		WHERE id = $2
	`, status, generationID)
	return err
}

func (d *DatabaseClient) DeleteGeneration(generationID, userID uuid.UUID) error {
	_, err := d.db.Exec(`
		DELETE FROM generations
		WHERE id = $1 AND user_id = $2
	`, generationID, userID)
	return err
}

// MarkStaleProcessing flips processando rows older than the cutoff to erro
// and returns how many were touched. Driven by the janitor when a deadline
// is configured.
func (d *DatabaseClient) MarkStaleProcessing(olderThan time.Duration) (int64, error) {
	result, err := d.db.Exec(`
		UPDATE generations
		SET status = $1, updated_at = NOW()
		WHERE status = $2 AND created_at < NOW() - ($3 * INTERVAL '1 second')
	`, models.StatusError, models.StatusProcessing, int64(olderThan.Seconds()))
	if err != nil {
		return 0, fmt.Errorf("failed to mark stale generations: %w", err)
	}
	return result.RowsAffected()
}

// UpdateLegacyProductImage writes the processed image pointer on a legacy
// products row. Callers treat failures as best-effort.
func (d *DatabaseClient) UpdateLegacyProductImage(productID uuid.UUID, imageURL string) error {
	_, err := d.db.Exec(`
		UPDATE products
		SET processed_image_url = $1, updated_at = NOW()
		WHERE id = $2
	`, imageURL, productID)
	return err
}

func (d *DatabaseClient) GetProfile(profileID uuid.UUID) (*models.Profile, error) {
	var p models.Profile
	err := d.db.QueryRow(`
		SELECT id, email, name, is_admin, is_banned, created_at, updated_at
		FROM profiles
		WHERE id = $1
	`, profileID).Scan(&p.ID, &p.Email, &p.Name, &p.IsAdmin, &p.IsBanned, &p.CreatedAt, &p.UpdatedAt)
	if err != nil {
		return nil, fmt.Errorf("failed to get profile: %w", err)
	}
	return &p, nil
}

// UpsertProfile refreshes the display fields for an account. The admin and
// ban flags are never written here; they change only through the admin
// surface.
func (d *DatabaseClient) UpsertProfile(profileID uuid.UUID, email, name string) error {
	_, err := d.db.Exec(`
		INSERT INTO profiles (id, email, name)
		VALUES ($1, $2, $3)
		ON CONFLICT (id) DO UPDATE
		SET email = EXCLUDED.email, name = EXCLUDED.name, updated_at = NOW()
	`, profileID, email, name)
	if err != nil {
		return fmt.Errorf("failed to upsert profile: %w", err)
	}
	return nil
}

func (d *DatabaseClient) SetProfileBanned(profileID uuid.UUID, banned bool) error {
	result, err := d.db.Exec(`
		UPDATE profiles
		SET is_banned = $1, updated_at = NOW()
		WHERE id = $2
	`, banned, profileID)
	if err != nil {
		return fmt.Errorf("failed to update ban flag: %w", err)
	}
	affected, err := result.RowsAffected()
	if err == nil && affected == 0 {
		return fmt.Errorf("profile %s not found", profileID)
	}
	return nil
}

// ListProfilesWithStats backs the admin dashboard.
func (d *DatabaseClient) ListProfilesWithStats() ([]models.ProfileWithStats, error) {
	rows, err := d.db.Query(`
		SELECT p.id, p.email, p.name, p.is_admin, p.is_banned, p.created_at, p.updated_at,
		       COUNT(g.id), MAX(g.created_at)
		FROM profiles p
		LEFT JOIN generations g ON g.user_id = p.id
		GROUP BY p.id
		ORDER BY p.created_at DESC
	`)
	if err != nil {
		return nil, fmt.Errorf("failed to list profiles: %w", err)
	}
	defer rows.Close()

	var profiles []models.ProfileWithStats
	for rows.Next() {
		var p models.ProfileWithStats
		err := rows.Scan(
			&p.ID, &p.Email, &p.Name, &p.IsAdmin, &p.IsBanned, &p.CreatedAt, &p.UpdatedAt,
			&p.GenerationCount, &p.LastGeneration,
		)
		if err != nil {
			return nil, fmt.Errorf("failed to scan profile: %w", err)
		}
		profiles = append(profiles, p)
	}

	return profiles, rows.Err()
}

func (d *DatabaseClient) Close() error {
	return d.db.Close()
}
