package crm

import (
	"context"
	"net/http"
	"net/http/httptest"
	"os"
	"path/filepath"
	"strings"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"crm_bridge/browser/browsertest"
)

func sequenceProgress(seq []UploadProgress) (func() (UploadProgress, error), *int) {
	calls := 0
	return func() (UploadProgress, error) {
		p := seq[len(seq)-1]
		if calls < len(seq) {
			p = seq[calls]
		}
		calls++
		return p, nil
	}, &calls
}

func TestWaitUploadAutoClearEndsEarly(t *testing.T) {
	page := &browsertest.Page{}
	progress, calls := sequenceProgress([]UploadProgress{
		{Total: 0},
		{Total: 3, Processing: 3},
		{Total: 3, Finished: 1, Processing: 2},
		{Total: 0},
	})

	p, err := DefaultPollPolicy.WaitUpload(context.Background(), page, progress)
	require.NoError(t, err)
	assert.Equal(t, 0, p.Total)
	assert.Equal(t, 4, *calls)
	assert.Equal(t, 3*DefaultPollPolicy.Interval+DefaultPollPolicy.Settle, page.Slept)
	assert.Less(t, page.Slept, DefaultPollPolicy.Timeout)
}

func TestWaitUploadAllFinished(t *testing.T) {
	page := &browsertest.Page{}
	progress, calls := sequenceProgress([]UploadProgress{
		{Total: 2, Processing: 2},
		{Total: 2, Finished: 2},
	})

	_, err := DefaultPollPolicy.WaitUpload(context.Background(), page, progress)
	require.NoError(t, err)
	assert.Equal(t, 2, *calls)
}

func TestWaitUploadTimesOut(t *testing.T) {
	page := &browsertest.Page{}
	policy := PollPolicy{Interval: 2 * time.Second, Timeout: 10 * time.Second, Settle: time.Second}
	progress, calls := sequenceProgress([]UploadProgress{{Total: 2, Finished: 1, Processing: 1}})

	_, err := policy.WaitUpload(context.Background(), page, progress)
	require.Error(t, err)
	assert.Contains(t, err.Error(), "timed out")
	assert.Equal(t, 6, *calls)
}

func TestWaitUploadNothingEverAppears(t *testing.T) {
	page := &browsertest.Page{}
	policy := PollPolicy{Interval: time.Second, Timeout: 3 * time.Second}
	progress, _ := sequenceProgress([]UploadProgress{{Total: 0}})

	_, err := policy.WaitUpload(context.Background(), page, progress)
	assert.Error(t, err)
}

func imageServer(t *testing.T) *httptest.Server {
	t.Helper()
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		if strings.Contains(r.URL.Path, "missing") {
			http.NotFound(w, r)
			return
		}
		assert.Contains(t, r.Header.Get("User-Agent"), "Mozilla/5.0")
		w.Header().Set("Content-Type", "image/jpeg")
		w.Write([]byte("jpegbytes"))
	}))
	t.Cleanup(srv.Close)
	return srv
}

func TestUploaderUploadsAndCleansUp(t *testing.T) {
	srv := imageServer(t)
	page := &browsertest.Page{
		Visibles: map[string]bool{".dz-message": true},
		Counts: map[string]int{
			previewSelector:  2,
			finishedSelector: 2,
		},
	}

	u := NewUploader(srv.Client(), DefaultPollPolicy)
	u.tempDir = t.TempDir()

	warnings, err := u.Upload(context.Background(), page, []string{
		srv.URL + "/a.png",
		srv.URL + "/missing.jpg",
		srv.URL + "/b",
	})
	require.NoError(t, err)
	assert.Len(t, warnings, 1)
	assert.Contains(t, warnings[0], "Image 2 skipped")

	require.Len(t, page.Chosen, 2)
	assert.Equal(t, ".png", filepath.Ext(page.Chosen[0]))
	assert.Equal(t, ".jpg", filepath.Ext(page.Chosen[1]))
	assert.NotEqual(t, page.Chosen[0], page.Chosen[1])
	assert.Contains(t, page.Clicks, ".dz-message")

	_, statErr := os.Stat(filepath.Dir(page.Chosen[0]))
	assert.True(t, os.IsNotExist(statErr), "temp dir should be removed")
}

func TestUploaderChooserFailure(t *testing.T) {
	srv := imageServer(t)
	page := &browsertest.Page{ChooserErr: errBoom}

	u := NewUploader(srv.Client(), DefaultPollPolicy)
	u.tempDir = t.TempDir()

	_, err := u.Upload(context.Background(), page, []string{srv.URL + "/a.jpg"})
	var upErr *UploadError
	require.ErrorAs(t, err, &upErr)
	assert.Equal(t, "file chooser did not appear", upErr.Reason)

	entries, _ := os.ReadDir(u.tempDir)
	assert.Empty(t, entries)
}

func TestUploaderTimeoutIsUploadError(t *testing.T) {
	srv := imageServer(t)
	page := &browsertest.Page{
		Counts: map[string]int{previewSelector: 1, processingSelector: 1},
	}

	u := NewUploader(srv.Client(), PollPolicy{Interval: time.Second, Timeout: 2 * time.Second})
	u.tempDir = t.TempDir()

	_, err := u.Upload(context.Background(), page, []string{srv.URL + "/a.jpg"})
	var upErr *UploadError
	require.ErrorAs(t, err, &upErr)
	assert.Equal(t, "uploads did not complete", upErr.Reason)
}

func TestDownloadRejectsOversizeImage(t *testing.T) {
	srv := imageServer(t)
	u := NewUploader(srv.Client(), DefaultPollPolicy)
	dir := t.TempDir()

	old := maxUploadFileSize
	t.Cleanup(func() { maxUploadFileSize = old })

	maxUploadFileSize = int64(len("jpegbytes"))
	target, err := u.download(context.Background(), srv.URL+"/a.jpg", dir, 0)
	require.NoError(t, err)
	data, err := os.ReadFile(target)
	require.NoError(t, err)
	assert.Equal(t, "jpegbytes", string(data))
	require.NoError(t, os.Remove(target))

	maxUploadFileSize = 4
	_, err = u.download(context.Background(), srv.URL+"/b.jpg", dir, 1)
	require.Error(t, err)
	assert.Contains(t, err.Error(), "exceeds 4 bytes")

	entries, _ := os.ReadDir(dir)
	assert.Empty(t, entries, "partial download should be removed")
}
