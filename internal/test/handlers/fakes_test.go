package handlers_test

import (
	"context"
	"database/sql"
	"fmt"
	"sync"

	"github.com/gin-gonic/gin"
	"github.com/google/uuid"

	"valida-backend/internal/middleware"
	"valida-backend/internal/models"
	"valida-backend/internal/supabase"
)

type fakeGenerationStore struct {
	mu          sync.Mutex
	generations map[uuid.UUID]*models.Generation
	products    map[uuid.UUID]string

	updateImageErr error
	imageUpdates   []string
}

func newFakeGenerationStore() *fakeGenerationStore {
	return &fakeGenerationStore{
		generations: make(map[uuid.UUID]*models.Generation),
		products:    make(map[uuid.UUID]string),
	}
}

func (f *fakeGenerationStore) CreateGeneration(g *models.Generation) (*models.Generation, error) {
	f.mu.Lock()
	defer f.mu.Unlock()
	copied := *g
	f.generations[g.ID] = &copied
	return &copied, nil
}

func (f *fakeGenerationStore) GetGeneration(generationID, userID uuid.UUID) (*models.Generation, error) {
	f.mu.Lock()
	defer f.mu.Unlock()
	g, ok := f.generations[generationID]
	if !ok || g.UserID != userID {
		return nil, fmt.Errorf("generation not found")
	}
	copied := *g
	return &copied, nil
}

func (f *fakeGenerationStore) GetGenerationByID(generationID uuid.UUID) (*models.Generation, error) {
	f.mu.Lock()
	defer f.mu.Unlock()
	g, ok := f.generations[generationID]
	if !ok {
		return nil, fmt.Errorf("generation not found")
	}
	copied := *g
	return &copied, nil
}

func (f *fakeGenerationStore) ListGenerations(userID uuid.UUID) ([]models.Generation, error) {
	f.mu.Lock()
	defer f.mu.Unlock()
	var out []models.Generation
	for _, g := range f.generations {
		if g.UserID == userID {
			out = append(out, *g)
		}
	}
	return out, nil
}

func (f *fakeGenerationStore) UpdateGenerationImageURL(generationID uuid.UUID, imageURL string) error {
	f.mu.Lock()
	defer f.mu.Unlock()
	if f.updateImageErr != nil {
		return f.updateImageErr
	}
	g, ok := f.generations[generationID]
	if !ok {
		return fmt.Errorf("nenhuma geração encontrada")
	}
	g.ImageURL = sql.NullString{String: imageURL, Valid: true}
	f.imageUpdates = append(f.imageUpdates, imageURL)
	return nil
}

func (f *fakeGenerationStore) UpdateLegacyProductImage(productID uuid.UUID, imageURL string) error {
	f.mu.Lock()
	defer f.mu.Unlock()
	if _, ok := f.products[productID]; !ok {
		return fmt.Errorf("nenhum produto encontrado")
	}
	f.products[productID] = imageURL
	return nil
}

func (f *fakeGenerationStore) DeleteGeneration(generationID, userID uuid.UUID) error {
	f.mu.Lock()
	defer f.mu.Unlock()
	g, ok := f.generations[generationID]
	if !ok || g.UserID != userID {
		return fmt.Errorf("generation not found")
	}
	delete(f.generations, generationID)
	return nil
}

type fakeStorage struct {
	mu      sync.Mutex
	uploads []string
	err     error
}

func (f *fakeStorage) UploadProcessedImage(prefix, recordID string, data []byte) (string, string, error) {
	f.mu.Lock()
	defer f.mu.Unlock()
	if f.err != nil {
		return "", "", f.err
	}
	path := fmt.Sprintf("%s_%s_%d.png", prefix, recordID, len(f.uploads)+1)
	f.uploads = append(f.uploads, path)
	return path, "https://storage.example.com/" + path, nil
}

type fakeRemover struct {
	result []byte
	err    error
}

func (f *fakeRemover) RemoveBackground(ctx context.Context, image []byte) ([]byte, error) {
	if f.err != nil {
		return nil, f.err
	}
	return f.result, nil
}

type fakeStudio struct {
	description  string
	generatedURL string
	describeErr  error
	generateErr  error
}

func (f *fakeStudio) DescribeProduct(ctx context.Context, image []byte, mimeType string) (string, error) {
	if f.describeErr != nil {
		return "", f.describeErr
	}
	return f.description, nil
}

func (f *fakeStudio) GenerateStudioImage(ctx context.Context, productDescription string) (string, error) {
	if f.generateErr != nil {
		return "", f.generateErr
	}
	return f.generatedURL, nil
}

type fakeWorkflow struct {
	result []byte
	err    error
}

func (f *fakeWorkflow) ProcessImage(ctx context.Context, imageURL, productID string) ([]byte, error) {
	if f.err != nil {
		return nil, f.err
	}
	return f.result, nil
}

type fakeRealtime struct {
	mu        sync.Mutex
	snapshots []supabase.GenerationSnapshot
}

func (f *fakeRealtime) PublishGenerationUpdate(snapshot supabase.GenerationSnapshot) {
	f.mu.Lock()
	defer f.mu.Unlock()
	f.snapshots = append(f.snapshots, snapshot)
}

type provisionCall struct {
	Email           string
	Name            string
	TransactionCode string
}

type fakeProvisioner struct {
	mu      sync.Mutex
	calls   []provisionCall
	userID  string
	created bool
	err     error
}

func (f *fakeProvisioner) ProvisionPurchase(ctx context.Context, email, name, transactionCode string) (string, bool, error) {
	f.mu.Lock()
	defer f.mu.Unlock()
	f.calls = append(f.calls, provisionCall{Email: email, Name: name, TransactionCode: transactionCode})
	if f.err != nil {
		return "", false, f.err
	}
	return f.userID, f.created, nil
}

// asUser injects the authenticated user id the way the JWT middleware does.
func asUser(userID uuid.UUID) gin.HandlerFunc {
	return func(c *gin.Context) {
		c.Set(middleware.UserIDKey, userID.String())
	}
}
