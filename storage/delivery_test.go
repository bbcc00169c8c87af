package storage

import (
	"context"
	"encoding/json"
	"io"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"

	"github.com/cloudflare/cloudflare-go"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"crm_bridge/config"
)

func TestCloudflareDirectUpload(t *testing.T) {
	var uploaded []byte
	mux := http.NewServeMux()
	srv := httptest.NewServer(mux)
	defer srv.Close()

	mux.HandleFunc("/accounts/acc1/images/v2/direct_upload", func(w http.ResponseWriter, r *http.Request) {
		assert.Equal(t, http.MethodPost, r.Method)
		assert.Equal(t, "Bearer tok", r.Header.Get("Authorization"))
		w.Header().Set("Content-Type", "application/json")
		json.NewEncoder(w).Encode(map[string]any{
			"success":  true,
			"errors":   []any{},
			"messages": []any{},
			"result":   map[string]string{"id": "img-1", "uploadURL": srv.URL + "/upload/img-1"},
		})
	})
	mux.HandleFunc("/upload/img-1", func(w http.ResponseWriter, r *http.Request) {
		file, header, err := r.FormFile("file")
		require.NoError(t, err)
		assert.Equal(t, "photo.jpg", header.Filename)
		assert.Empty(t, r.Header.Get("Authorization"))
		uploaded, _ = io.ReadAll(file)
		w.Write([]byte(`{"success":true,"errors":[],"messages":[],"result":{"id":"img-1"}}`))
	})

	cf, err := NewCloudflareImages(srv.Client(),
		config.CloudflareConfig{AccountID: "acc1", APIToken: "tok", AccountHash: "hash"},
		cloudflare.BaseURL(srv.URL))
	require.NoError(t, err)

	ctx := context.Background()
	slot, err := cf.RequestUpload(ctx, "photo.jpg")
	require.NoError(t, err)
	assert.Equal(t, "img-1", slot.AssetID)

	require.NoError(t, cf.Upload(ctx, slot, "photo.jpg", []byte("jpegbytes"), "image/jpeg"))
	assert.Equal(t, "jpegbytes", string(uploaded))

	assert.Equal(t, "https://imagedelivery.net/hash/img-1/public", cf.DeliveryURL("img-1"))
	assert.True(t, cf.Owns(cf.DeliveryURL("img-1")))
	assert.False(t, cf.Owns("https://crm.example.com/uploads/a.jpg"))
}

func TestCloudflareErrorsSurface(t *testing.T) {
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		w.WriteHeader(http.StatusForbidden)
		w.Write([]byte(`{"success":false,"errors":[{"code":10000,"message":"Authentication error"}]}`))
	}))
	defer srv.Close()

	cf, err := NewCloudflareImages(srv.Client(), config.CloudflareConfig{AccountID: "acc1", APIToken: "bad"},
		cloudflare.BaseURL(srv.URL))
	require.NoError(t, err)

	_, err = cf.RequestUpload(context.Background(), "a.jpg")
	require.Error(t, err)
	assert.Contains(t, err.Error(), "Authentication error")
}

func TestCloudflareUploadRejected(t *testing.T) {
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		w.WriteHeader(http.StatusBadRequest)
		w.Write([]byte(`{"success":false,"errors":[{"code":5400,"message":"Bad image"}],"messages":[]}`))
	}))
	defer srv.Close()

	cf, err := NewCloudflareImages(srv.Client(), config.CloudflareConfig{AccountID: "acc1", APIToken: "tok"})
	require.NoError(t, err)

	slot := UploadSlot{AssetID: "img-2", UploadURL: srv.URL + "/upload/img-2", Method: http.MethodPost}
	err = cf.Upload(context.Background(), slot, "a.jpg", []byte("x"), "image/jpeg")
	require.Error(t, err)
	assert.Contains(t, err.Error(), "5400 Bad image")
}

func TestS3PresignedUpload(t *testing.T) {
	var gotPath, gotType string
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		assert.Equal(t, http.MethodPut, r.Method)
		assert.NotEmpty(t, r.URL.Query().Get("X-Amz-Signature"))
		gotPath = r.URL.Path
		gotType = r.Header.Get("Content-Type")
		w.WriteHeader(http.StatusOK)
	}))
	defer srv.Close()

	d, err := NewS3Delivery(context.Background(), srv.Client(), config.S3Config{
		Bucket:          "listings",
		Region:          "us-east-1",
		Endpoint:        srv.URL,
		AccessKeyID:     "AKIDEXAMPLE",
		SecretAccessKey: "secret",
		PublicBaseURL:   "https://cdn.example.com/",
	})
	require.NoError(t, err)

	slot, err := d.RequestUpload(context.Background(), "img_001.png")
	require.NoError(t, err)
	assert.True(t, strings.HasPrefix(slot.AssetID, "media/"))
	assert.True(t, strings.HasSuffix(slot.AssetID, ".png"))

	require.NoError(t, d.Upload(context.Background(), slot, "img_001.png", []byte("png"), "image/png"))
	assert.Equal(t, "/listings/"+slot.AssetID, gotPath)
	assert.Equal(t, "image/png", gotType)

	assert.Equal(t, "https://cdn.example.com/"+slot.AssetID, d.DeliveryURL(slot.AssetID))
	assert.True(t, d.Owns(d.DeliveryURL(slot.AssetID)))
	assert.False(t, d.Owns("https://cdn.example.com.evil.test/x.png"))
}

func TestNewDeliveryWithoutCredentials(t *testing.T) {
	d, err := NewDelivery(context.Background(), config.MediaConfig{Provider: "cloudflare"}, http.DefaultClient)
	require.NoError(t, err)
	assert.Nil(t, d)

	_, err = NewDelivery(context.Background(), config.MediaConfig{Provider: "ftp"}, http.DefaultClient)
	assert.Error(t, err)
}
