package storage

import (
	"bytes"
	"context"
	"fmt"
	"net/http"
	"path"
	"strings"
	"time"

	"github.com/aws/aws-sdk-go-v2/aws"
	awsconfig "github.com/aws/aws-sdk-go-v2/config"
	"github.com/aws/aws-sdk-go-v2/credentials"
	"github.com/aws/aws-sdk-go-v2/service/s3"
	"github.com/google/uuid"

	"crm_bridge/config"
)

const presignExpiry = 15 * time.Minute

// S3Delivery is a delivery store on S3-compatible storage. Uploads go through
// presigned PUT URLs so the slot can be handed to any HTTP client.
type S3Delivery struct {
	presign *s3.PresignClient
	client  *http.Client
	cfg     config.S3Config
}

func NewS3Delivery(ctx context.Context, client *http.Client, cfg config.S3Config) (*S3Delivery, error) {
	opts := []func(*awsconfig.LoadOptions) error{awsconfig.WithRegion(cfg.Region)}
	if cfg.AccessKeyID != "" {
		opts = append(opts, awsconfig.WithCredentialsProvider(
			credentials.NewStaticCredentialsProvider(cfg.AccessKeyID, cfg.SecretAccessKey, ""),
		))
	}
	awsCfg, err := awsconfig.LoadDefaultConfig(ctx, opts...)
	if err != nil {
		return nil, fmt.Errorf("load aws config: %w", err)
	}

	var s3Client *s3.Client
	if cfg.Endpoint != "" {
		s3Client = s3.NewFromConfig(awsCfg, func(o *s3.Options) {
			o.BaseEndpoint = aws.String(cfg.Endpoint)
			o.UsePathStyle = true
		})
	} else {
		s3Client = s3.NewFromConfig(awsCfg)
	}

	return &S3Delivery{
		presign: s3.NewPresignClient(s3Client, s3.WithPresignExpires(presignExpiry)),
		client:  client,
		cfg:     cfg,
	}, nil
}

// RequestUpload presigns a PUT for a fresh key under media/.
func (d *S3Delivery) RequestUpload(ctx context.Context, filename string) (UploadSlot, error) {
	ext := strings.ToLower(path.Ext(filename))
	if ext == "" {
		ext = ".jpg"
	}
	key := fmt.Sprintf("media/%s%s", uuid.New().String(), ext)

	req, err := d.presign.PresignPutObject(ctx, &s3.PutObjectInput{
		Bucket: aws.String(d.cfg.Bucket),
		Key:    aws.String(key),
	})
	if err != nil {
		return UploadSlot{}, fmt.Errorf("presign put: %w", err)
	}
	return UploadSlot{AssetID: key, UploadURL: req.URL, Method: req.Method}, nil
}

func (d *S3Delivery) Upload(ctx context.Context, slot UploadSlot, _ string, data []byte, contentType string) error {
	req, err := http.NewRequestWithContext(ctx, slot.Method, slot.UploadURL, bytes.NewReader(data))
	if err != nil {
		return err
	}
	req.ContentLength = int64(len(data))
	if contentType != "" {
		req.Header.Set("Content-Type", contentType)
	}

	resp, err := d.client.Do(req)
	if err != nil {
		return fmt.Errorf("put object: %w", err)
	}
	defer resp.Body.Close()
	if resp.StatusCode >= 300 {
		return fmt.Errorf("put object: status %d", resp.StatusCode)
	}
	return nil
}

// DeliveryURL returns the public URL for a key.
func (d *S3Delivery) DeliveryURL(key string) string {
	return d.baseURL() + "/" + key
}

func (d *S3Delivery) Owns(raw string) bool {
	return strings.HasPrefix(raw, d.baseURL()+"/")
}

func (d *S3Delivery) baseURL() string {
	cfg := d.cfg
	switch {
	case cfg.PublicBaseURL != "":
		return strings.TrimRight(cfg.PublicBaseURL, "/")
	case strings.Contains(cfg.Endpoint, "digitaloceanspaces.com"):
		// DO Spaces: https://{bucket}.{region}.digitaloceanspaces.com/{key}
		host := strings.TrimPrefix(cfg.Endpoint, "https://")
		return fmt.Sprintf("https://%s.%s", cfg.Bucket, host)
	default:
		return fmt.Sprintf("https://%s.s3.%s.amazonaws.com", cfg.Bucket, cfg.Region)
	}
}
