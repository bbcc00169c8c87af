package workers

import (
	"context"
	"crypto/sha256"
	"encoding/hex"
	"errors"
	"fmt"
	"io"
	"log"
	"net/http"
	"net/url"
	"path"
	"strings"

	"golang.org/x/sync/errgroup"

	"crm_bridge/httputil"
	"crm_bridge/models"
	"crm_bridge/storage"
)

const mediaBatchSize = 5

// maxMediaBytes caps a single downloaded image.
var maxMediaBytes int64 = 50 * 1024 * 1024

var errNoDelivery = errors.New("no delivery store configured")

// MediaMigrator re-hosts source images on the delivery store.
type MediaMigrator struct {
	client   *http.Client
	delivery storage.Delivery
}

func NewMediaMigrator(client *http.Client, delivery storage.Delivery) *MediaMigrator {
	return &MediaMigrator{client: client, delivery: delivery}
}

// Migrate returns one asset per url, in order. Items are processed in batches
// of five; a failed item keeps its source URL and yields a warning.
func (m *MediaMigrator) Migrate(ctx context.Context, urls []string) ([]models.MediaAsset, []string) {
	assets := make([]models.MediaAsset, len(urls))
	failures := make([]error, len(urls))

	for start := 0; start < len(urls); start += mediaBatchSize {
		end := min(start+mediaBatchSize, len(urls))

		var g errgroup.Group
		for i := start; i < end; i++ {
			g.Go(func() error {
				assets[i], failures[i] = m.Process(ctx, i, urls[i])
				return nil
			})
		}
		g.Wait()
	}

	var warnings []string
	migrated := 0
	for i, err := range failures {
		if err != nil {
			log.Printf("[media] Image %d (%s) failed: %v", i+1, urls[i], err)
			warnings = append(warnings, fmt.Sprintf("Image %d failed: %v", i+1, err))
			continue
		}
		migrated++
	}
	if len(urls) > 0 {
		log.Printf("[media] Migrated %d/%d images", migrated, len(urls))
	}
	return assets, warnings
}

// Process downloads one image, hashes it and uploads it. The returned asset is
// always usable: on error it points at the source URL.
func (m *MediaMigrator) Process(ctx context.Context, ordinal int, src string) (models.MediaAsset, error) {
	asset := models.MediaAsset{
		Ordinal:     ordinal,
		SourceURL:   src,
		DeliveryURL: src,
		Status:      models.MediaStatusFallback,
	}

	if m.delivery != nil && m.delivery.Owns(src) {
		asset.Status = models.MediaStatusExternal
		return asset, nil
	}
	if m.delivery == nil {
		return asset, errNoDelivery
	}

	data, contentType, err := m.download(ctx, src)
	if err != nil {
		return asset, err
	}
	hash := sha256.Sum256(data)
	asset.ContentHash = hex.EncodeToString(hash[:])
	asset.SizeBytes = int64(len(data))

	filename := fmt.Sprintf("img_%03d%s", ordinal+1, guessExtension(src, contentType))
	slot, err := m.delivery.RequestUpload(ctx, filename)
	if err != nil {
		return asset, fmt.Errorf("request upload: %w", err)
	}
	if err := m.delivery.Upload(ctx, slot, filename, data, contentType); err != nil {
		return asset, fmt.Errorf("upload: %w", err)
	}

	asset.AssetID = slot.AssetID
	asset.DeliveryURL = m.delivery.DeliveryURL(slot.AssetID)
	asset.Status = models.MediaStatusUploaded
	return asset, nil
}

func (m *MediaMigrator) download(ctx context.Context, src string) ([]byte, string, error) {
	req, err := http.NewRequestWithContext(ctx, http.MethodGet, src, nil)
	if err != nil {
		return nil, "", fmt.Errorf("create request: %w", err)
	}
	req.Header.Set("User-Agent", httputil.BrowserUserAgent)
	req.Header.Set("Accept", "image/*,*/*")

	resp, err := m.client.Do(req)
	if err != nil {
		return nil, "", fmt.Errorf("download: %w", err)
	}
	defer resp.Body.Close()

	if resp.StatusCode != http.StatusOK {
		return nil, "", fmt.Errorf("download status: %d", resp.StatusCode)
	}

	data, err := io.ReadAll(io.LimitReader(resp.Body, maxMediaBytes+1))
	if err != nil {
		return nil, "", fmt.Errorf("read body: %w", err)
	}
	if int64(len(data)) > maxMediaBytes {
		return nil, "", fmt.Errorf("image exceeds %d bytes", maxMediaBytes)
	}
	if len(data) == 0 {
		return nil, "", errors.New("empty body")
	}

	contentType := resp.Header.Get("Content-Type")
	if contentType == "" {
		contentType = "image/jpeg"
	}
	return data, contentType, nil
}

// guessExtension determines file extension from URL or content-type
func guessExtension(src, contentType string) string {
	p := src
	if u, err := url.Parse(src); err == nil {
		p = u.Path
	}
	ext := strings.ToLower(path.Ext(p))
	if ext != "" && isImageExt(ext) {
		return ext
	}

	switch strings.TrimSpace(strings.Split(contentType, ";")[0]) {
	case "image/png":
		return ".png"
	case "image/gif":
		return ".gif"
	case "image/webp":
		return ".webp"
	default:
		return ".jpg"
	}
}

func isImageExt(ext string) bool {
	switch ext {
	case ".jpg", ".jpeg", ".png", ".gif", ".webp", ".bmp", ".tiff":
		return true
	}
	return false
}
