package services

import (
	"fmt"
	"mime/multipart"
	"os"
	"path/filepath"

	"github.com/delgado-brothers/delgado-foods-api/config"
	"github.com/delgado-brothers/delgado-foods-api/utils"
)

// ImageService handles all image-related operations including upload, retrieval, and deletion
type ImageService interface {
	// UploadImage validates and uploads an image file, returns the storage key
	UploadImage(fileHeader *multipart.FileHeader) (string, error)

	// GetImageURL generates a URL for accessing an uploaded image
	GetImageURL(imageKey string) (string, error)

	// DeleteImage removes an image from storage
	DeleteImage(imageKey string) error
}

var imageServiceInstance ImageService

// InitImageService selects and initializes the storage backend for images.
// S3 is used when configured; otherwise images go to the local upload
// directory so the storefront can run without cloud credentials.
func InitImageService(cfg *config.Config) (ImageService, error) {
	if cfg.StorageBackend == "s3" {
		s3Service, err := InitS3Service()
		if err != nil {
			return nil, fmt.Errorf("failed to initialize S3 storage: %w", err)
		}
		imageServiceInstance = &S3ImageService{s3Service: s3Service}
		return imageServiceInstance, nil
	}

	imageServiceInstance = &LocalImageService{uploadDir: cfg.UploadDir}
	return imageServiceInstance, nil
}

// GetImageService returns the initialized image service instance
func GetImageService() ImageService {
	return imageServiceInstance
}

// SetImageService sets the image service instance (primarily for testing)
func SetImageService(service ImageService) {
	imageServiceInstance = service
}

// S3ImageService implements ImageService using AWS S3 for storage
type S3ImageService struct {
	s3Service S3Interface
}

// UploadImage validates and uploads an image file to S3
func (s *S3ImageService) UploadImage(fileHeader *multipart.FileHeader) (string, error) {
	// Validate the image file
	if err := utils.ValidateImageFile(fileHeader); err != nil {
		return "", err
	}

	// Upload to S3
	s3Key, err := s.s3Service.UploadFile(fileHeader)
	if err != nil {
		return "", fmt.Errorf("failed to upload image: %w", err)
	}

	return s3Key, nil
}

// GetImageURL generates a presigned URL for accessing an image
func (s *S3ImageService) GetImageURL(imageKey string) (string, error) {
	if imageKey == "" {
		return "", nil
	}

	url, err := s.s3Service.GetPresignedURL(imageKey)
	if err != nil {
		return "", fmt.Errorf("failed to generate image URL: %w", err)
	}

	return url, nil
}

// DeleteImage deletes an image from S3
func (s *S3ImageService) DeleteImage(imageKey string) error {
	if imageKey == "" {
		return nil
	}

	if err := s.s3Service.DeleteFile(imageKey); err != nil {
		return fmt.Errorf("failed to delete image: %w", err)
	}

	return nil
}

// LocalImageService implements ImageService on the local filesystem
type LocalImageService struct {
	uploadDir string
}

// NewLocalImageService creates a local-disk image service rooted at uploadDir
func NewLocalImageService(uploadDir string) *LocalImageService {
	return &LocalImageService{uploadDir: uploadDir}
}

// UploadImage validates and saves an image file to the upload directory
func (l *LocalImageService) UploadImage(fileHeader *multipart.FileHeader) (string, error) {
	if err := utils.ValidateImageFile(fileHeader); err != nil {
		return "", err
	}

	filename, err := utils.SaveUploadedFile(fileHeader, l.uploadDir)
	if err != nil {
		return "", fmt.Errorf("failed to upload image: %w", err)
	}

	return filename, nil
}

// GetImageURL returns the serving path for a locally stored image
func (l *LocalImageService) GetImageURL(imageKey string) (string, error) {
	return utils.GetImageURL(imageKey), nil
}

// DeleteImage removes an image file from the upload directory
func (l *LocalImageService) DeleteImage(imageKey string) error {
	if imageKey == "" {
		return nil
	}

	path := filepath.Join(l.uploadDir, filepath.Base(imageKey))
	if err := os.Remove(path); err != nil {
		if os.IsNotExist(err) {
			return nil
		}
		return fmt.Errorf("failed to delete image: %w", err)
	}

	return nil
}
