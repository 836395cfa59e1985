package handlers_test

import (
	"bytes"
	"encoding/json"
	"fmt"
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/gin-gonic/gin"
	"github.com/google/uuid"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"valida-backend/internal/apperr"
	"valida-backend/internal/handlers"
	"valida-backend/internal/models"
)

func imageServer(t *testing.T) *httptest.Server {
	t.Helper()
	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		w.Header().Set("Content-Type", "image/png")
		w.Write([]byte("png-bytes"))
	}))
	t.Cleanup(server.Close)
	return server
}

type imagesEnv struct {
	store    *fakeGenerationStore
	storage  *fakeStorage
	remover  *fakeRemover
	studio   *fakeStudio
	workflow *fakeWorkflow
	realtime *fakeRealtime
	router   *gin.Engine
}

func newImagesEnv() *imagesEnv {
	gin.SetMode(gin.TestMode)
	env := &imagesEnv{
		store:    newFakeGenerationStore(),
		storage:  &fakeStorage{},
		remover:  &fakeRemover{result: []byte("cutout")},
		studio:   &fakeStudio{description: "produto sobre fundo branco"},
		workflow: &fakeWorkflow{result: []byte("workflow-result")},
		realtime: &fakeRealtime{},
	}
	handler := handlers.NewImagesHandler(env.remover, env.studio, env.workflow, env.store, env.storage, env.realtime)
	router := gin.New()
	router.POST("/images/remove-background", handler.RemoveBackground)
	router.POST("/images/studio", handler.StudioImage)
	router.POST("/images/workflow", handler.WorkflowImage)
	env.router = router
	return env
}

func (e *imagesEnv) post(t *testing.T, path string, req models.ProcessImageRequest) *httptest.ResponseRecorder {
	t.Helper()
	body, _ := json.Marshal(req)
	httpReq, _ := http.NewRequest("POST", path, bytes.NewReader(body))
	httpReq.Header.Set("Content-Type", "application/json")
	w := httptest.NewRecorder()
	e.router.ServeHTTP(w, httpReq)
	return w
}

func (e *imagesEnv) seedGeneration() *models.Generation {
	g := &models.Generation{ID: uuid.New(), UserID: uuid.New(), Status: models.StatusCompleted}
	e.store.CreateGeneration(g)
	return g
}

func TestRemoveBackground_Success(t *testing.T) {
	env := newImagesEnv()
	server := imageServer(t)
	generation := env.seedGeneration()

	w := env.post(t, "/images/remove-background", models.ProcessImageRequest{
		ImageURL:  server.URL + "/original.png",
		ProductID: generation.ID.String(),
	})

	require.Equal(t, http.StatusOK, w.Code)

	var resp models.RemoveBackgroundResponse
	require.NoError(t, json.Unmarshal(w.Body.Bytes(), &resp))
	assert.True(t, resp.Success)
	assert.NotEmpty(t, resp.ProcessedImageURL)

	assert.Len(t, env.storage.uploads, 1)
	require.Len(t, env.store.imageUpdates, 1)
	assert.Equal(t, resp.ProcessedImageURL, env.store.imageUpdates[0])

	updated, err := env.store.GetGenerationByID(generation.ID)
	require.NoError(t, err)
	assert.Equal(t, resp.ProcessedImageURL, updated.ImageURL.String)

	require.Len(t, env.realtime.snapshots, 1)
	assert.Equal(t, generation.ID, env.realtime.snapshots[0].GenerationID)
	assert.Equal(t, resp.ProcessedImageURL, env.realtime.snapshots[0].ImageURL)
}

func TestRemoveBackground_UpstreamFailureLeavesRowUntouched(t *testing.T) {
	env := newImagesEnv()
	server := imageServer(t)
	generation := env.seedGeneration()
	env.remover.err = apperr.New(apperr.Upstream, "erro na API remove.bg: 402")

	w := env.post(t, "/images/remove-background", models.ProcessImageRequest{
		ImageURL:  server.URL + "/original.png",
		ProductID: generation.ID.String(),
	})

	assert.Equal(t, http.StatusBadGateway, w.Code)
	assert.Empty(t, env.storage.uploads)
	assert.Empty(t, env.store.imageUpdates)
	assert.Empty(t, env.realtime.snapshots)
}

func TestRemoveBackground_UploadFailureLeavesRowUntouched(t *testing.T) {
	env := newImagesEnv()
	server := imageServer(t)
	generation := env.seedGeneration()
	env.storage.err = fmt.Errorf("bucket indisponível")

	w := env.post(t, "/images/remove-background", models.ProcessImageRequest{
		ImageURL:  server.URL + "/original.png",
		ProductID: generation.ID.String(),
	})

	assert.Equal(t, http.StatusInternalServerError, w.Code)
	assert.Empty(t, env.store.imageUpdates)
	assert.Empty(t, env.realtime.snapshots)
}

func TestRemoveBackground_RowUpdateFailureAfterUpload(t *testing.T) {
	env := newImagesEnv()
	server := imageServer(t)
	generation := env.seedGeneration()
	env.store.updateImageErr = fmt.Errorf("conexão perdida")

	w := env.post(t, "/images/remove-background", models.ProcessImageRequest{
		ImageURL:  server.URL + "/original.png",
		ProductID: generation.ID.String(),
	})

	assert.Equal(t, http.StatusInternalServerError, w.Code)
	assert.Contains(t, w.Body.String(), "erro ao atualizar o registro")
	// Upload already happened; only the row update failed.
	assert.Len(t, env.storage.uploads, 1)
}

func TestRemoveBackground_InvalidRecordID(t *testing.T) {
	env := newImagesEnv()

	w := env.post(t, "/images/remove-background", models.ProcessImageRequest{
		ImageURL:  "https://example.com/a.png",
		ProductID: "not-a-uuid",
	})

	assert.Equal(t, http.StatusBadRequest, w.Code)
}

func TestStudioImage_GenerationID(t *testing.T) {
	env := newImagesEnv()
	server := imageServer(t)
	generation := env.seedGeneration()
	env.studio.generatedURL = server.URL + "/generated.png"

	w := env.post(t, "/images/studio", models.ProcessImageRequest{
		ImageURL:     server.URL + "/original.png",
		GenerationID: generation.ID.String(),
	})

	require.Equal(t, http.StatusOK, w.Code)

	var resp models.StudioImageResponse
	require.NoError(t, json.Unmarshal(w.Body.Bytes(), &resp))
	assert.True(t, resp.Success)

	updated, err := env.store.GetGenerationByID(generation.ID)
	require.NoError(t, err)
	assert.Equal(t, resp.ProcessedURL, updated.ImageURL.String)
}

func TestStudioImage_LegacyProductFallback(t *testing.T) {
	env := newImagesEnv()
	server := imageServer(t)
	env.studio.generatedURL = server.URL + "/generated.png"

	productID := uuid.New()
	env.store.products[productID] = ""

	w := env.post(t, "/images/studio", models.ProcessImageRequest{
		ImageURL:  server.URL + "/original.png",
		ProductID: productID.String(),
	})

	require.Equal(t, http.StatusOK, w.Code)

	var resp models.StudioImageResponse
	require.NoError(t, json.Unmarshal(w.Body.Bytes(), &resp))
	assert.Equal(t, resp.ProcessedURL, env.store.products[productID])
}

func TestStudioImage_VisionFailureFailsFast(t *testing.T) {
	env := newImagesEnv()
	server := imageServer(t)
	generation := env.seedGeneration()
	env.studio.describeErr = apperr.New(apperr.Upstream, "erro na API Vision: 429")

	w := env.post(t, "/images/studio", models.ProcessImageRequest{
		ImageURL:     server.URL + "/original.png",
		GenerationID: generation.ID.String(),
	})

	assert.Equal(t, http.StatusBadGateway, w.Code)
	assert.Empty(t, env.storage.uploads)
	assert.Empty(t, env.store.imageUpdates)
}

func TestWorkflowImage_Success(t *testing.T) {
	env := newImagesEnv()
	generation := env.seedGeneration()

	w := env.post(t, "/images/workflow", models.ProcessImageRequest{
		ImageURL:  "https://example.com/original.png",
		ProductID: generation.ID.String(),
	})

	require.Equal(t, http.StatusOK, w.Code)

	var resp models.WorkflowImageResponse
	require.NoError(t, json.Unmarshal(w.Body.Bytes(), &resp))
	assert.True(t, resp.Success)
	assert.NotEmpty(t, resp.ImageURL)
	assert.Len(t, env.store.imageUpdates, 1)
}

func TestRemoveBackground_LastWriterWins(t *testing.T) {
	env := newImagesEnv()
	server := imageServer(t)
	generation := env.seedGeneration()

	req := models.ProcessImageRequest{
		ImageURL:  server.URL + "/original.png",
		ProductID: generation.ID.String(),
	}

	// No concurrency token: a second run over the same row simply
	// overwrites whatever the first one stored.
	first := env.post(t, "/images/remove-background", req)
	second := env.post(t, "/images/remove-background", req)
	require.Equal(t, http.StatusOK, first.Code)
	require.Equal(t, http.StatusOK, second.Code)

	var resp models.RemoveBackgroundResponse
	require.NoError(t, json.Unmarshal(second.Body.Bytes(), &resp))

	updated, err := env.store.GetGenerationByID(generation.ID)
	require.NoError(t, err)
	assert.Equal(t, resp.ProcessedImageURL, updated.ImageURL.String)
	assert.Len(t, env.store.imageUpdates, 2)
}

func TestWorkflowImage_Timeout(t *testing.T) {
	env := newImagesEnv()
	generation := env.seedGeneration()
	env.workflow.err = apperr.New(apperr.Timeout, "timeout: o processamento demorou mais de 5m0s")

	w := env.post(t, "/images/workflow", models.ProcessImageRequest{
		ImageURL:  "https://example.com/original.png",
		ProductID: generation.ID.String(),
	})

	assert.Equal(t, http.StatusGatewayTimeout, w.Code)
	assert.Empty(t, env.store.imageUpdates)
}
