package supabase

import (
	"bytes"
	"fmt"
	"io"
	"math/rand"
	"net/http"
	"strings"
	"time"

	storage "github.com/supabase-community/storage-go"
)

type StorageClient struct {
	client  *storage.Client
	bucket  string
	baseURL string
}

func NewStorageClient(supabaseURL, serviceRoleKey, bucket string) (*StorageClient, error) {
	baseURL := strings.TrimSuffix(supabaseURL, "/")
	client := storage.NewClient(baseURL+"/storage/v1", serviceRoleKey, nil)

	return &StorageClient{
		client:  client,
		bucket:  bucket,
		baseURL: baseURL,
	}, nil
}

// UploadProcessedImage stores processed image bytes under a fresh
// collision-resistant name and returns the public URL. Names embed the
// owning record id, a timestamp and a random suffix; uploads never upsert,
// so concurrent processing of the same source can never clobber an object.
// The generations row is the only mutable pointer.
func (s *StorageClient) UploadProcessedImage(prefix, recordID string, data []byte) (string, string, error) {
	if recordID == "" {
		recordID = "img"
	}
	fileName := fmt.Sprintf("%s_%s_%d_%s.png", prefix, recordID, time.Now().UnixMilli(), randomSuffix(13))

	contentType := "image/png"
	upsert := false
	_, err := s.client.UploadFile(s.bucket, fileName, bytes.NewReader(data), storage.FileOptions{
		ContentType: &contentType,
		Upsert:      &upsert,
	})
	if err != nil {
		return "", "", fmt.Errorf("failed to upload file: %w", err)
	}

	return fileName, s.PublicURL(fileName), nil
}

func (s *StorageClient) PublicURL(storagePath string) string {
	return fmt.Sprintf("%s/storage/v1/object/public/%s/%s", s.baseURL, s.bucket, storagePath)
}

func (s *StorageClient) DeleteFile(storagePath string) error {
	_, err := s.client.RemoveFile(s.bucket, []string{storagePath})
	return err
}

// DownloadImage fetches a source image by URL. The URL typically points at
// this project's own public bucket but may be any reachable location the
// frontend handed over.
func DownloadImage(url string) ([]byte, string, error) {
	resp, err := http.Get(url)
	if err != nil {
		return nil, "", fmt.Errorf("erro ao baixar imagem: %w", err)
	}
	defer resp.Body.Close()

	if resp.StatusCode != http.StatusOK {
		return nil, "", fmt.Errorf("erro ao baixar imagem: status %d", resp.StatusCode)
	}

	data, err := io.ReadAll(resp.Body)
	if err != nil {
		return nil, "", fmt.Errorf("erro ao ler imagem: %w", err)
	}

	return data, resp.Header.Get("Content-Type"), nil
}

const suffixAlphabet = "abcdefghijklmnopqrstuvwxyz0123456789"

func randomSuffix(n int) string {
	b := make([]byte, n)
	for i := range b {
		b[i] = suffixAlphabet[rand.Intn(len(suffixAlphabet))]
	}
	return string(b)
}
