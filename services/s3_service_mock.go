package services

import (
	"fmt"
	"io"
	"mime/multipart"
	"path/filepath"
	"sync"
)

// mockMediaBucket stands in for the delgado-foods media bucket in tests
const mockMediaBucket = "delgado-foods-media-test"

// MockS3Service is an in-memory stand-in for the S3 media store
type MockS3Service struct {
	objects map[string][]byte // storage key -> object bytes
	mu      sync.RWMutex
}

// NewMockS3Service creates an empty in-memory media store
func NewMockS3Service() *MockS3Service {
	return &MockS3Service{
		objects: make(map[string][]byte),
	}
}

// SetAsMockForTesting installs this mock as the global S3 service instance
func (m *MockS3Service) SetAsMockForTesting() {
	SetS3Service(m)
}

// UploadFile stores the file bytes in memory under an uploads/ key, mirroring
// the key scheme of the real media store
func (m *MockS3Service) UploadFile(fileHeader *multipart.FileHeader) (string, error) {
	file, err := fileHeader.Open()
	if err != nil {
		return "", fmt.Errorf("failed to open file: %w", err)
	}
	defer file.Close()

	content, err := io.ReadAll(file)
	if err != nil {
		return "", fmt.Errorf("failed to read file: %w", err)
	}

	key := fmt.Sprintf("uploads/mock_%s", filepath.Base(fileHeader.Filename))

	m.mu.Lock()
	m.objects[key] = content
	m.mu.Unlock()

	return key, nil
}

// GetPresignedURL returns a deterministic URL for a stored object. An empty
// key resolves to an empty URL, matching the real service.
func (m *MockS3Service) GetPresignedURL(key string) (string, error) {
	if key == "" {
		return "", nil
	}

	m.mu.RLock()
	_, exists := m.objects[key]
	m.mu.RUnlock()

	if !exists {
		return "", fmt.Errorf("object not found in media store: %s", key)
	}

	return fmt.Sprintf("https://%s.s3.us-east-1.amazonaws.com/%s?mock=true", mockMediaBucket, key), nil
}

// DeleteFile removes a stored object. Deleting a missing or empty key is not
// an error, matching the real service.
func (m *MockS3Service) DeleteFile(key string) error {
	if key == "" {
		return nil
	}

	m.mu.Lock()
	delete(m.objects, key)
	m.mu.Unlock()

	return nil
}

// FileExists reports whether a key is present in the media store
func (m *MockS3Service) FileExists(key string) bool {
	m.mu.RLock()
	defer m.mu.RUnlock()
	_, exists := m.objects[key]
	return exists
}

// StoredObject returns the bytes stored under a key, for test assertions
func (m *MockS3Service) StoredObject(key string) ([]byte, bool) {
	m.mu.RLock()
	defer m.mu.RUnlock()
	content, exists := m.objects[key]
	return content, exists
}

// Reset empties the media store
func (m *MockS3Service) Reset() {
	m.mu.Lock()
	m.objects = make(map[string][]byte)
	m.mu.Unlock()
}
