package storage

import (
	"context"
	"fmt"
	"net/http"

	"crm_bridge/config"
)

// UploadSlot is a one-shot upload target handed out by a delivery store.
type UploadSlot struct {
	AssetID   string
	UploadURL string
	Method    string
}

// Delivery is an image host that hands out upload slots and serves assets
// from deterministic URLs.
type Delivery interface {
	RequestUpload(ctx context.Context, filename string) (UploadSlot, error)
	Upload(ctx context.Context, slot UploadSlot, filename string, data []byte, contentType string) error
	DeliveryURL(assetID string) string
	Owns(url string) bool
}

// NewDelivery builds the configured delivery store. It returns nil, nil when
// the provider has no credentials, in which case media stays on its source.
func NewDelivery(ctx context.Context, cfg config.MediaConfig, client *http.Client) (Delivery, error) {
	switch cfg.Provider {
	case "cloudflare":
		if cfg.Cloudflare.AccountID == "" || cfg.Cloudflare.APIToken == "" {
			return nil, nil
		}
		d, err := NewCloudflareImages(client, cfg.Cloudflare)
		if err != nil {
			return nil, err
		}
		return d, nil
	case "s3":
		if cfg.S3.Bucket == "" {
			return nil, nil
		}
		d, err := NewS3Delivery(ctx, client, cfg.S3)
		if err != nil {
			return nil, err
		}
		return d, nil
	default:
		return nil, fmt.Errorf("unknown media provider %q", cfg.Provider)
	}
}
