package crm

import (
	"context"
	"fmt"
	"io"
	"log"
	"net/http"
	"net/url"
	"os"
	"path"
	"path/filepath"
	"strings"
	"time"

	"github.com/google/uuid"

	"crm_bridge/browser"
	"crm_bridge/httputil"
	"crm_bridge/mapping"
)

const (
	chooserTimeout  = 15 * time.Second
	imagesTabSettle = time.Second
)

// maxUploadFileSize caps a single downloaded image.
var maxUploadFileSize int64 = 50 << 20

// Drop-zone preview selectors of the legacy upload widget.
const (
	previewSelector    = ".dz-preview"
	finishedSelector   = ".dz-preview.dz-complete, .dz-preview.dz-success, .dz-preview.dz-error"
	processingSelector = ".dz-preview.dz-processing"
)

// PollPolicy bounds a polling loop: check every Interval, give up after
// Timeout, pause Settle once done.
type PollPolicy struct {
	Interval time.Duration
	Timeout  time.Duration
	Settle   time.Duration
}

var DefaultPollPolicy = PollPolicy{
	Interval: 2 * time.Second,
	Timeout:  120 * time.Second,
	Settle:   time.Second,
}

// UploadProgress is one observation of the drop-zone previews.
type UploadProgress struct {
	Total      int
	Finished   int
	Processing int
}

// uploadWatch decides when a batch is done. The widget has no completion
// event: either every preview is finished, or previews seen earlier have all
// been cleared.
type uploadWatch struct {
	maxSeen int
}

func (w *uploadWatch) done(p UploadProgress) bool {
	if p.Total > w.maxSeen {
		w.maxSeen = p.Total
	}
	if p.Total > 0 && p.Finished >= p.Total && p.Processing == 0 {
		return true
	}
	return w.maxSeen > 0 && p.Total == 0
}

// WaitUpload polls progress until the batch is done or the policy ceiling passes.
// Elapsed time is counted in intervals slept on page.
func (pp PollPolicy) WaitUpload(ctx context.Context, page browser.Page, progress func() (UploadProgress, error)) (UploadProgress, error) {
	watch := &uploadWatch{}
	var last UploadProgress

	for elapsed := time.Duration(0); ; elapsed += pp.Interval {
		if err := ctx.Err(); err != nil {
			return last, err
		}

		p, err := progress()
		if err != nil {
			return last, fmt.Errorf("read upload progress: %w", err)
		}
		last = p
		log.Printf("[push] Upload status (%ds): found %d, finished %d, processing %d",
			int(elapsed.Seconds()), p.Total, p.Finished, p.Processing)

		if watch.done(p) {
			if p.Total == 0 {
				log.Println("[push] Previews cleared, assuming upload complete")
			}
			page.Sleep(pp.Settle)
			return p, nil
		}

		if elapsed >= pp.Timeout {
			return last, fmt.Errorf("timed out after %s: total %d, finished %d", pp.Timeout, p.Total, p.Finished)
		}
		page.Sleep(pp.Interval)
	}
}

func dropzoneProgress(page browser.Page) func() (UploadProgress, error) {
	return func() (UploadProgress, error) {
		var p UploadProgress
		var err error
		if p.Total, err = page.Count(previewSelector); err != nil {
			return p, err
		}
		if p.Finished, err = page.Count(finishedSelector); err != nil {
			return p, err
		}
		if p.Processing, err = page.Count(processingSelector); err != nil {
			return p, err
		}
		return p, nil
	}
}

// Uploader feeds images to the legacy drop-zone through an intercepted file
// chooser.
type Uploader struct {
	client  *http.Client
	policy  PollPolicy
	tempDir string
}

func NewUploader(client *http.Client, policy PollPolicy) *Uploader {
	return &Uploader{client: client, policy: policy}
}

// Upload downloads urls into a per-run temp directory and submits them in
// one batch. Images that fail to download are skipped with a warning.
func (u *Uploader) Upload(ctx context.Context, page browser.Page, urls []string) ([]string, error) {
	var warnings []string
	if len(urls) == 0 {
		return nil, nil
	}

	if err := page.Click(mapping.TabImages); err != nil {
		log.Printf("[push] Could not open images tab: %v", err)
	}
	page.Sleep(imagesTabSettle)

	dir, err := os.MkdirTemp(u.tempDir, "crm_bridge_*")
	if err != nil {
		return nil, &UploadError{Reason: "create temp dir", Err: err}
	}
	defer func() {
		if err := os.RemoveAll(dir); err != nil {
			log.Printf("[push] Failed to clean up %s: %v", dir, err)
		}
	}()

	var paths []string
	for i, src := range urls {
		p, err := u.download(ctx, src, dir, i)
		if err != nil {
			log.Printf("[push] Failed to download %s: %v", src, err)
			warnings = append(warnings, fmt.Sprintf("Image %d skipped: %v", i+1, err))
			continue
		}
		paths = append(paths, p)
	}
	if len(paths) == 0 {
		return warnings, nil
	}

	log.Printf("[push] Uploading %d files", len(paths))
	if err := page.ChooseFiles(chooserTimeout, func() error { return clickDropzone(page) }, paths); err != nil {
		return warnings, &UploadError{Reason: "file chooser did not appear", Err: err}
	}

	if _, err := u.policy.WaitUpload(ctx, page, dropzoneProgress(page)); err != nil {
		return warnings, &UploadError{Reason: "uploads did not complete", Err: err}
	}
	return warnings, nil
}

func (u *Uploader) download(ctx context.Context, src, dir string, ordinal int) (string, error) {
	req, err := http.NewRequestWithContext(ctx, http.MethodGet, src, nil)
	if err != nil {
		return "", err
	}
	req.Header.Set("User-Agent", httputil.BrowserUserAgent)

	resp, err := u.client.Do(req)
	if err != nil {
		return "", err
	}
	defer resp.Body.Close()

	if resp.StatusCode != http.StatusOK {
		return "", fmt.Errorf("status %d", resp.StatusCode)
	}

	name := fmt.Sprintf("img_%03d_%s%s", ordinal, uuid.NewString()[:8], imageExt(src))
	target := filepath.Join(dir, name)
	f, err := os.Create(target)
	if err != nil {
		return "", err
	}

	n, err := io.Copy(f, io.LimitReader(resp.Body, maxUploadFileSize+1))
	if err == nil && n > maxUploadFileSize {
		err = fmt.Errorf("image exceeds %d bytes", maxUploadFileSize)
	}
	if cerr := f.Close(); err == nil {
		err = cerr
	}
	if err != nil {
		os.Remove(target)
		return "", err
	}
	return target, nil
}

func imageExt(src string) string {
	if parsed, err := url.Parse(src); err == nil {
		switch ext := strings.ToLower(path.Ext(parsed.Path)); ext {
		case ".jpg", ".jpeg", ".png", ".gif", ".webp":
			return ext
		}
	}
	return ".jpg"
}

var dropzoneSelectors = []string{".dz-message", "#mydropzone"}

const dropzoneTextScript = `() => {
	const target = Array.from(document.querySelectorAll('div, a, span'))
		.find(el => (el.textContent || '').toLowerCase().includes('drop your images here'));
	if (!target) return false;
	target.click();
	return true;
}`

const fileLabelScript = `() => {
	const input = document.querySelector('input[type="file"]');
	if (!input) return false;
	const label = input.id ? document.querySelector('label[for="' + input.id + '"]') : input.closest('label');
	if (!label) return false;
	label.click();
	return true;
}`

// clickDropzone opens the native file picker, trying each known markup in
// turn.
func clickDropzone(page browser.Page) error {
	for _, sel := range dropzoneSelectors {
		if page.Visible(sel) {
			return page.Click(sel)
		}
	}
	for _, script := range []string{dropzoneTextScript, fileLabelScript} {
		res, err := page.Evaluate(script, nil)
		if err != nil {
			return err
		}
		if ok, _ := res.(bool); ok {
			return nil
		}
	}
	log.Println("[push] No drop-zone found, waiting for file chooser anyway")
	return nil
}
