package services

import (
	"fmt"
	"mime/multipart"
	"sync"

	"github.com/delgado-brothers/delgado-foods-api/utils"
)

// MockImageService is a mock implementation of ImageService for testing
type MockImageService struct {
	images map[string]bool
	mu     sync.RWMutex

	// FailUploads makes UploadImage return an error when set
	FailUploads bool
}

// NewMockImageService creates a new mock image service
func NewMockImageService() *MockImageService {
	return &MockImageService{
		images: make(map[string]bool),
	}
}

// SetAsMockForTesting sets this mock as the global image service instance
func (m *MockImageService) SetAsMockForTesting() {
	SetImageService(m)
}

// UploadImage simulates validating and storing an image
func (m *MockImageService) UploadImage(fileHeader *multipart.FileHeader) (string, error) {
	if m.FailUploads {
		return "", fmt.Errorf("mock upload failure")
	}

	if err := utils.ValidateImageFile(fileHeader); err != nil {
		return "", err
	}

	key := fmt.Sprintf("mock_%s", fileHeader.Filename)

	m.mu.Lock()
	m.images[key] = true
	m.mu.Unlock()

	return key, nil
}

// GetImageURL returns a deterministic mock URL
func (m *MockImageService) GetImageURL(imageKey string) (string, error) {
	if imageKey == "" {
		return "", nil
	}
	return fmt.Sprintf("https://images.test/%s", imageKey), nil
}

// DeleteImage removes the key from mock storage
func (m *MockImageService) DeleteImage(imageKey string) error {
	if imageKey == "" {
		return nil
	}

	m.mu.Lock()
	delete(m.images, imageKey)
	m.mu.Unlock()

	return nil
}

// ImageExists checks whether a key is present in mock storage
func (m *MockImageService) ImageExists(imageKey string) bool {
	m.mu.RLock()
	defer m.mu.RUnlock()
	return m.images[imageKey]
}
