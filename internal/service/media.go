package service

import (
	"bytes"
	"context"
	"fmt"
	"io"
	"mime/multipart"
	"net/http"
	"strings"

	"github.com/aws/aws-sdk-go-v2/aws"
	awsconfig "github.com/aws/aws-sdk-go-v2/config"
	"github.com/aws/aws-sdk-go-v2/credentials"
	"github.com/aws/aws-sdk-go-v2/service/s3"
	"github.com/disintegration/imaging"
	"github.com/google/uuid"

	"microblog/internal/config"
	"microblog/internal/model"
)

// MediaService stores post images in S3-compatible object storage
// (Cloudflare R2).
type MediaService struct {
	s3Client  *s3.Client
	bucket    string
	publicURL string
}

// NewMediaService constructs an S3-compatible client for Cloudflare R2.
func NewMediaService(ctx context.Context, cfg *config.Config) (*MediaService, error) {
	if cfg.R2AccountID == "" || cfg.R2AccessKeyID == "" || cfg.R2SecretAccessKey == "" || cfg.R2BucketName == "" || cfg.R2PublicURL == "" {
		return nil, fmt.Errorf("missing Cloudflare R2 configuration")
	}

	awsCfg, err := awsconfig.LoadDefaultConfig(
		ctx,
		awsconfig.WithRegion("auto"),
		awsconfig.WithCredentialsProvider(credentials.NewStaticCredentialsProvider(cfg.R2AccessKeyID, cfg.R2SecretAccessKey, "")),
	)
	if err != nil {
		return nil, fmt.Errorf("failed to load AWS config for R2: %w", err)
	}

	endpoint := fmt.Sprintf("https://%s.r2.cloudflarestorage.com", cfg.R2AccountID)
	s3Client := s3.NewFromConfig(awsCfg, func(o *s3.Options) {
		o.BaseEndpoint = aws.String(endpoint)
		o.UsePathStyle = true
	})

	return &MediaService{
		s3Client:  s3Client,
		bucket:    cfg.R2BucketName,
		publicURL: strings.TrimSuffix(cfg.R2PublicURL, "/"),
	}, nil
}

// UploadPostImage enforces size/type, downsizes oversized images to the
// display bound, and uploads the JPEG under posts/<uuid>.jpg.
func (s *MediaService) UploadPostImage(ctx context.Context, file multipart.File, header *multipart.FileHeader) (*model.UploadResult, error) {
	data, _, err := readAndValidateImage(file, header, model.MaxImageSizeBytes)
	if err != nil {
		return nil, err
	}

	jpegBytes, err := normalizeToJPEG(data, model.ImageMaxWidth, model.ImageMaxHeight, 85)
	if err != nil {
		return nil, err
	}

	key := fmt.Sprintf("%s/%s%s", model.ImageFolder, uuid.NewString(), model.ImageExt)

	if err := s.putObject(ctx, key, jpegBytes, model.ContentTypeJPEG, model.ImageCacheControl); err != nil {
		return nil, err
	}

	url := fmt.Sprintf("%s/%s", s.publicURL, key)
	return &model.UploadResult{URL: url, Key: key}, nil
}

// readAndValidateImage loads the upload into memory with size and type checks.
func readAndValidateImage(file multipart.File, header *multipart.FileHeader, maxSize int64) ([]byte, string, error) {
	if header.Size > maxSize {
		return nil, "", model.ErrFileTooLarge
	}

	limitedReader := io.LimitReader(file, maxSize+1)
	data, err := io.ReadAll(limitedReader)
	if err != nil {
		return nil, "", fmt.Errorf("failed to read upload: %w", err)
	}
	if int64(len(data)) > maxSize {
		return nil, "", model.ErrFileTooLarge
	}

	contentType := header.Header.Get("Content-Type")
	if contentType == "" && len(data) > 0 {
		contentType = http.DetectContentType(data[:min(len(data), 512)])
	}
	if idx := strings.Index(contentType, ";"); idx != -1 {
		contentType = strings.TrimSpace(contentType[:idx])
	}
	if !model.IsAllowedImageType(contentType) {
		return nil, "", model.ErrInvalidImageType
	}

	return data, contentType, nil
}

// normalizeToJPEG bounds the image to maxWidth x maxHeight (preserving
// aspect ratio, never upscaling) and encodes as JPEG.
func normalizeToJPEG(data []byte, maxWidth, maxHeight, quality int) ([]byte, error) {
	img, err := imaging.Decode(bytes.NewReader(data))
	if err != nil {
		return nil, fmt.Errorf("failed to decode image: %w", err)
	}

	bounds := img.Bounds()
	if bounds.Dx() > maxWidth || bounds.Dy() > maxHeight {
		img = imaging.Fit(img, maxWidth, maxHeight, imaging.Lanczos)
	}

	var buf bytes.Buffer
	if err := imaging.Encode(&buf, img, imaging.JPEG, imaging.JPEGQuality(quality)); err != nil {
		return nil, fmt.Errorf("failed to encode jpeg: %w", err)
	}

	return buf.Bytes(), nil
}

// putObject uploads bytes to R2 with metadata.
func (s *MediaService) putObject(ctx context.Context, key string, body []byte, contentType, cacheControl string) error {
	_, err := s.s3Client.PutObject(ctx, &s3.PutObjectInput{
		Bucket:       aws.String(s.bucket),
		Key:          aws.String(key),
		Body:         bytes.NewReader(body),
		ContentType:  aws.String(contentType),
		CacheControl: aws.String(cacheControl),
	})
	if err != nil {
		return fmt.Errorf("failed to upload to r2: %w", err)
	}
	return nil
}

// DeleteObject removes an object by key.
func (s *MediaService) DeleteObject(ctx context.Context, key string) error {
	if key == "" {
		return nil
	}
	_, err := s.s3Client.DeleteObject(ctx, &s3.DeleteObjectInput{
		Bucket: aws.String(s.bucket),
		Key:    aws.String(key),
	})
	if err != nil {
		return fmt.Errorf("failed to delete from r2: %w", err)
	}
	return nil
}
