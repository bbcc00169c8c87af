package storage

import (
	"bytes"
	"context"
	"encoding/json"
	"fmt"
	"io"
	"mime/multipart"
	"net/http"
	"net/url"
	"strings"

	"github.com/cloudflare/cloudflare-go"

	"crm_bridge/config"
)

const cloudflareDeliveryHost = "imagedelivery.net"

// CloudflareImages is a delivery store backed by Cloudflare Images direct
// creator uploads.
type CloudflareImages struct {
	api    *cloudflare.API
	client *http.Client
	cfg    config.CloudflareConfig
}

func NewCloudflareImages(client *http.Client, cfg config.CloudflareConfig, opts ...cloudflare.Option) (*CloudflareImages, error) {
	if cfg.Variant == "" {
		cfg.Variant = "public"
	}
	opts = append([]cloudflare.Option{cloudflare.HTTPClient(client)}, opts...)
	api, err := cloudflare.NewWithAPIToken(cfg.APIToken, opts...)
	if err != nil {
		return nil, fmt.Errorf("cloudflare client: %w", err)
	}
	return &CloudflareImages{api: api, client: client, cfg: cfg}, nil
}

// RequestUpload asks for a direct upload URL. The returned asset id is final.
func (c *CloudflareImages) RequestUpload(ctx context.Context, _ string) (UploadSlot, error) {
	res, err := c.api.CreateImageDirectUploadURL(ctx, cloudflare.AccountIdentifier(c.cfg.AccountID),
		cloudflare.CreateImageDirectUploadURLParams{Version: cloudflare.ImagesAPIVersionV2})
	if err != nil {
		return UploadSlot{}, fmt.Errorf("direct upload: %w", err)
	}
	if res.ID == "" || res.UploadURL == "" {
		return UploadSlot{}, fmt.Errorf("direct upload: empty slot")
	}
	return UploadSlot{AssetID: res.ID, UploadURL: res.UploadURL, Method: http.MethodPost}, nil
}

// Upload posts the file to the one-shot URL as multipart form data. The URL
// carries its own authorization, so no token is sent.
func (c *CloudflareImages) Upload(ctx context.Context, slot UploadSlot, filename string, data []byte, _ string) error {
	var body bytes.Buffer
	w := multipart.NewWriter(&body)
	part, err := w.CreateFormFile("file", filename)
	if err != nil {
		return err
	}
	if _, err := part.Write(data); err != nil {
		return err
	}
	if err := w.Close(); err != nil {
		return err
	}

	req, err := http.NewRequestWithContext(ctx, slot.Method, slot.UploadURL, &body)
	if err != nil {
		return err
	}
	req.Header.Set("Content-Type", w.FormDataContentType())

	resp, err := c.client.Do(req)
	if err != nil {
		return fmt.Errorf("upload %s: %w", slot.AssetID, err)
	}
	defer resp.Body.Close()

	var out cloudflare.Response
	raw, err := io.ReadAll(io.LimitReader(resp.Body, 1<<20))
	if err != nil {
		return fmt.Errorf("upload %s: %w", slot.AssetID, err)
	}
	if err := json.Unmarshal(raw, &out); err != nil {
		return fmt.Errorf("upload %s: status %d: decode: %w", slot.AssetID, resp.StatusCode, err)
	}
	if !out.Success || resp.StatusCode >= 300 {
		msgs := make([]string, 0, len(out.Errors))
		for _, e := range out.Errors {
			msgs = append(msgs, fmt.Sprintf("%d %s", e.Code, e.Message))
		}
		return fmt.Errorf("upload %s: status %d: %s", slot.AssetID, resp.StatusCode, strings.Join(msgs, "; "))
	}
	return nil
}

func (c *CloudflareImages) DeliveryURL(assetID string) string {
	return fmt.Sprintf("https://%s/%s/%s/%s", cloudflareDeliveryHost, c.cfg.AccountHash, assetID, c.cfg.Variant)
}

func (c *CloudflareImages) Owns(raw string) bool {
	u, err := url.Parse(raw)
	return err == nil && u.Host == cloudflareDeliveryHost
}
