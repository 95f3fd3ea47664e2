package services

import (
	"context"
	"fmt"
	"path"
	"strings"
	"time"

	"github.com/Ouarghii/evento/internal/common"
	"github.com/Ouarghii/evento/internal/logging"
	sc "github.com/Ouarghii/evento/internal/server/config"
	"github.com/Ouarghii/evento/internal/server/models"
	"github.com/google/uuid"

	"github.com/aws/aws-sdk-go-v2/aws"
	v4 "github.com/aws/aws-sdk-go-v2/aws/signer/v4"
	"github.com/aws/aws-sdk-go-v2/config"
	"github.com/aws/aws-sdk-go-v2/credentials"
	"github.com/aws/aws-sdk-go-v2/service/s3"
)

// PresignExpiry bounds how long an upload or download URL stays usable.
const PresignExpiry = 15 * time.Minute

// DefaultImageType is assumed when an upload request names no content type.
const DefaultImageType = "image/jpeg"

const imagePrefix = "events/"

var imageExt = map[string]string{
	"image/jpeg": ".jpg",
	"image/png":  ".png",
	"image/gif":  ".gif",
	"image/webp": ".webp",
}

// Presigner signs object-storage requests. *s3.PresignClient satisfies it.
type Presigner interface {
	PresignPutObject(ctx context.Context, in *s3.PutObjectInput, optFns ...func(*s3.PresignOptions)) (*v4.PresignedHTTPRequest, error)
	PresignGetObject(ctx context.Context, in *s3.GetObjectInput, optFns ...func(*s3.PresignOptions)) (*v4.PresignedHTTPRequest, error)
}

var loadAWSConfig = config.LoadDefaultConfig

// NewS3Presigner builds a presign client for the configured S3-compatible
// endpoint. Path-style addressing keeps MinIO happy.
func NewS3Presigner(ctx context.Context, c *sc.Config) (*s3.PresignClient, error) {
	awsCfg, err := loadAWSConfig(ctx,
		config.WithRegion(c.S3Region),
		config.WithCredentialsProvider(credentials.NewStaticCredentialsProvider(c.S3RootUser, c.S3RootPassword, "")),
	)
	if err != nil {
		return nil, fmt.Errorf("aws config: %w", err)
	}

	client := s3.NewFromConfig(awsCfg, func(o *s3.Options) {
		if c.S3BaseEndpoint != "" {
			o.BaseEndpoint = aws.String(c.S3BaseEndpoint)
		}
		o.UsePathStyle = true
	})
	return s3.NewPresignClient(client), nil
}

// Upload is a presigned PUT target for an event image.
type Upload struct {
	Key         string `json:"key"`
	URL         string `json:"url"`
	ContentType string `json:"content_type"`
}

// MediaService hands out presigned object-storage URLs for event images.
// Bytes never pass through the server.
type MediaService struct {
	presigner Presigner
	bucket    string
	now       func() time.Time
	logger    logging.Logger
}

func NewMediaService(p Presigner, bucket string, l logging.Logger) *MediaService {
	return &MediaService{
		presigner: p,
		bucket:    bucket,
		now:       time.Now,
		logger:    l.With("module", "media"),
	}
}

// newImageKey returns a fresh key under events/YYYY/MM/DD/.
func (s *MediaService) newImageKey(contentType string) string {
	return imagePrefix + s.now().UTC().Format("2006/01/02/") + uuid.NewString() + imageExt[contentType]
}

// ImageUploadURL returns a presigned PUT for a new event image. Only
// image/* content types are accepted; the signature binds the type so the
// upload must send the same Content-Type header.
func (s *MediaService) ImageUploadURL(ctx context.Context, actor *models.Identity, contentType string) (*Upload, error) {
	if err := requireRole(actor, models.RoleAdmin, models.RoleContributor); err != nil {
		return nil, err
	}

	contentType = strings.ToLower(strings.TrimSpace(contentType))
	if contentType == "" {
		contentType = DefaultImageType
	}
	if !strings.HasPrefix(contentType, "image/") {
		return nil, fmt.Errorf("%w: only image files are allowed", common.ErrValidation)
	}

	key := s.newImageKey(contentType)
	req, err := s.presigner.PresignPutObject(ctx, &s3.PutObjectInput{
		Bucket:      aws.String(s.bucket),
		Key:         aws.String(key),
		ContentType: aws.String(contentType),
	}, s3.WithPresignExpires(PresignExpiry))
	if err != nil {
		return nil, fmt.Errorf("presign put: %w", err)
	}

	s.logger.Debug(ctx, "upload url issued", "key", key, "by", actor.SubjectID)
	return &Upload{Key: key, URL: req.URL, ContentType: contentType}, nil
}

// ImageURL returns a presigned GET for a key handed out by ImageUploadURL.
// Anything outside the image prefix is reported as not found.
func (s *MediaService) ImageURL(ctx context.Context, key string) (string, error) {
	key = strings.TrimPrefix(key, "/")
	if !strings.HasPrefix(key, imagePrefix) || path.Clean(key) != key {
		return "", common.ErrNotFound
	}

	req, err := s.presigner.PresignGetObject(ctx, &s3.GetObjectInput{
		Bucket: aws.String(s.bucket),
		Key:    aws.String(key),
	}, s3.WithPresignExpires(PresignExpiry))
	if err != nil {
		return "", fmt.Errorf("presign get: %w", err)
	}
	return req.URL, nil
}
