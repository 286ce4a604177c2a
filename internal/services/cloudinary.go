package services

import (
	"context"
	"fmt"
	"io"
	"mime/multipart"
	"path"

	"github.com/cloudinary/cloudinary-go/v2"
	"github.com/cloudinary/cloudinary-go/v2/api/uploader"
)

// MaxImageBytes caps a single profile image upload.
const MaxImageBytes = 10 << 20

// ImageUploader stores an image and returns its public URL.
type ImageUploader interface {
	UploadImage(ctx context.Context, file io.Reader, folder string) (string, error)
}

type CloudinaryService struct {
	cld *cloudinary.Cloudinary
}

func NewCloudinaryService(cloudName, apiKey, apiSecret string) (*CloudinaryService, error) {
	cld, err := cloudinary.NewFromParams(cloudName, apiKey, apiSecret)
	if err != nil {
		return nil, fmt.Errorf("failed to initialize Cloudinary: %w", err)
	}

	return &CloudinaryService{
		cld: cld,
	}, nil
}

func (s *CloudinaryService) UploadImage(ctx context.Context, file io.Reader, folder string) (string, error) {
	fileBytes, err := io.ReadAll(io.LimitReader(file, MaxImageBytes+1))
	if err != nil {
		return "", fmt.Errorf("failed to read file: %w", err)
	}
	if len(fileBytes) > MaxImageBytes {
		return "", fmt.Errorf("image larger than %d bytes", MaxImageBytes)
	}

	uploadResult, err := s.cld.Upload.Upload(ctx, fileBytes, uploader.UploadParams{
		Folder:       folder,
		ResourceType: "image",
	})
	if err != nil {
		return "", fmt.Errorf("failed to upload to Cloudinary: %w", err)
	}
	if uploadResult.Error.Message != "" {
		return "", fmt.Errorf("cloudinary rejected upload: %s", uploadResult.Error.Message)
	}

	return uploadResult.SecureURL, nil
}

// UploadFileFromHeader uploads a multipart form file.
func UploadFileFromHeader(ctx context.Context, up ImageUploader, fileHeader *multipart.FileHeader, folder string) (string, error) {
	file, err := fileHeader.Open()
	if err != nil {
		return "", fmt.Errorf("failed to open file: %w", err)
	}
	defer file.Close()

	return up.UploadImage(ctx, file, folder)
}

// UploadFolder groups a user's images by what they are for.
func UploadFolder(userID, target string) string {
	switch target {
	case "avatar", "banner":
		return path.Join("biography", userID, target)
	default:
		return path.Join("biography", userID, "blocks")
	}
}
