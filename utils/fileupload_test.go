package utils

import (
	"bytes"
	"mime/multipart"
	"net/textproto"
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

// createTestFileHeader creates a mock multipart.FileHeader for testing
func createTestFileHeader(t *testing.T, filename string, size int64, content []byte) *multipart.FileHeader {
	t.Helper()

	body := &bytes.Buffer{}
	writer := multipart.NewWriter(body)

	h := make(textproto.MIMEHeader)
	h.Set("Content-Disposition", `form-data; name="file"; filename="`+filename+`"`)
	h.Set("Content-Type", "application/octet-stream")
	part, err := writer.CreatePart(h)
	require.NoError(t, err)
	_, err = part.Write(content)
	require.NoError(t, err)
	require.NoError(t, writer.Close())

	reader := multipart.NewReader(body, writer.Boundary())
	form, err := reader.ReadForm(int64(len(content)) + 1024)
	require.NoError(t, err)
	t.Cleanup(func() { form.RemoveAll() })

	require.NotEmpty(t, form.File["file"])
	fileHeader := form.File["file"][0]
	// Override size for testing purposes
	fileHeader.Size = size
	return fileHeader
}

func TestValidateImageFile(t *testing.T) {
	tests := []struct {
		name         string
		filename     string
		size         int64
		expectedCode string
	}{
		{name: "Accept png", filename: "product.png", size: 1024},
		{name: "Accept jpg", filename: "product.jpg", size: 1024},
		{name: "Accept jpeg", filename: "product.jpeg", size: 1024},
		{name: "Accept webp", filename: "product.webp", size: 1024},
		{name: "Accept uppercase extension", filename: "product.PNG", size: 1024},
		{name: "Reject gif", filename: "product.gif", size: 1024, expectedCode: "INVALID_FILE_FORMAT"},
		{name: "Reject missing extension", filename: "product", size: 1024, expectedCode: "INVALID_FILE_FORMAT"},
		{name: "Reject oversized file", filename: "product.png", size: 11 * 1024 * 1024, expectedCode: "FILE_TOO_LARGE"},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			fileHeader := createTestFileHeader(t, tt.filename, tt.size, []byte("fake image content"))

			err := ValidateImageFile(fileHeader)

			if tt.expectedCode == "" {
				assert.NoError(t, err)
				return
			}

			require.Error(t, err)
			fileErr, ok := err.(*FileUploadError)
			require.True(t, ok, "Error should be of type FileUploadError")
			assert.Equal(t, tt.expectedCode, fileErr.Code)
		})
	}
}

func TestContentTypeForFile(t *testing.T) {
	assert.Equal(t, "image/png", ContentTypeForFile("a.png"))
	assert.Equal(t, "image/jpeg", ContentTypeForFile("a.jpg"))
	assert.Equal(t, "image/jpeg", ContentTypeForFile("a.JPEG"))
	assert.Equal(t, "image/webp", ContentTypeForFile("a.webp"))
	assert.Equal(t, "application/octet-stream", ContentTypeForFile("a.bin"))
}

func TestSaveUploadedFile(t *testing.T) {
	dir := t.TempDir()
	content := []byte("stored image bytes")
	fileHeader := createTestFileHeader(t, "banner.png", int64(len(content)), content)

	filename, err := SaveUploadedFile(fileHeader, dir)
	require.NoError(t, err)
	assert.Contains(t, filename, "banner.png", "Stored name keeps the original basename")

	stored, err := os.ReadFile(filepath.Join(dir, filename))
	require.NoError(t, err)
	assert.Equal(t, content, stored)
}

func TestSaveUploadedFile_UniqueNames(t *testing.T) {
	dir := t.TempDir()
	content := []byte("image")

	first, err := SaveUploadedFile(createTestFileHeader(t, "same.png", int64(len(content)), content), dir)
	require.NoError(t, err)
	second, err := SaveUploadedFile(createTestFileHeader(t, "same.png", int64(len(content)), content), dir)
	require.NoError(t, err)

	assert.NotEqual(t, first, second, "Repeated uploads must not collide")
}

func TestGetImageURL(t *testing.T) {
	assert.Equal(t, "/api/v1/uploads/photo.png", GetImageURL("photo.png"))
	assert.Equal(t, "", GetImageURL(""))
}

func TestFileUploadError_Error(t *testing.T) {
	err := &FileUploadError{
		Code:    "TEST_CODE",
		Message: "Test error message",
	}

	assert.Equal(t, "Test error message", err.Error())
}
