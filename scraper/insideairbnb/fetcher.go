package insideairbnb

import (
	"context"
	"fmt"
	"io"
	"net/http"
	"os"
	"os/exec"
	"time"

	"github.com/chromedp/chromedp"

	"airbnb-report/config"
	"airbnb-report/utils"
)

const dataPageURL = "https://insideairbnb.com/get-the-data/"

// Fetcher downloads the published Inside Airbnb listings CSV for a city when
// the local input file is missing. The data page is rendered client-side, so
// a headless browser resolves the download link; the file itself comes over
// plain HTTP.
type Fetcher struct {
	cfg    *config.Config
	logger *utils.Logger
	retry  *utils.RetryConfig
}

// New creates a ready-to-use Fetcher.
func New(cfg *config.Config, logger *utils.Logger) *Fetcher {
	return &Fetcher{
		cfg:    cfg,
		logger: logger,
		retry: &utils.RetryConfig{
			MaxAttempts: cfg.MaxRetries,
			BaseDelay:   2 * time.Second,
			Logger:      logger,
		},
	}
}

// Fetch resolves the listings CSV link for the configured city and downloads
// it to the configured input path.
func (f *Fetcher) Fetch() error {
	f.logger.Info("[insideairbnb] Fetching listings dataset for city %q", f.cfg.City)

	chromeBin := findChromeBinary(f.cfg.ChromeBin)
	f.logger.Info("[insideairbnb] Using browser binary: %s", chromeBin)

	opts := append(chromedp.DefaultExecAllocatorOptions[:],
		chromedp.Flag("headless", true),
		chromedp.Flag("disable-gpu", true),
		chromedp.Flag("no-sandbox", true),
		chromedp.Flag("disable-dev-shm-usage", true),
	)
	if chromeBin != "" {
		opts = append(opts, chromedp.ExecPath(chromeBin))
	}

	allocCtx, cancelAlloc := chromedp.NewExecAllocator(context.Background(), opts...)
	defer cancelAlloc()

	// Suppress chromedp log noise
	browserCtx, cancelBrowser := chromedp.NewContext(allocCtx, chromedp.WithLogf(func(string, ...interface{}) {}))
	defer cancelBrowser()

	ctx, cancel := context.WithTimeout(browserCtx, 90*time.Second)
	defer cancel()

	href, err := f.resolveListingsLink(ctx)
	if err != nil {
		return err
	}

	f.logger.Info("[insideairbnb] Resolved dataset URL: %s", href)

	err = f.retry.Do("dataset download", func() error {
		return download(href, f.cfg.InputPath)
	})
	if err != nil {
		return err
	}

	f.logger.Info("[insideairbnb] Dataset saved to %s", f.cfg.InputPath)
	return nil
}

// resolveListingsLink scans the data page's anchors for the city's
// visualisations listings.csv link.
func (f *Fetcher) resolveListingsLink(ctx context.Context) (string, error) {
	js := fmt.Sprintf(`Array.from(document.querySelectorAll('a'))
		.map(a => a.href)
		.find(h => h.includes(%q) && h.endsWith('visualisations/listings.csv')) || ''`,
		"/"+f.cfg.City+"/")

	var href string
	err := f.retry.Do("dataset link lookup", func() error {
		return chromedp.Run(ctx,
			chromedp.Navigate(dataPageURL),
			chromedp.WaitReady("body"),
			chromedp.Evaluate(js, &href),
		)
	})
	if err != nil {
		return "", fmt.Errorf("insideairbnb: load data page: %w", err)
	}
	if href == "" {
		return "", fmt.Errorf("insideairbnb: no listings.csv link found for city %q", f.cfg.City)
	}
	return href, nil
}

func download(url, path string) error {
	resp, err := http.Get(url)
	if err != nil {
		return fmt.Errorf("insideairbnb: download %q: %w", url, err)
	}
	defer resp.Body.Close()

	if resp.StatusCode != http.StatusOK {
		return fmt.Errorf("insideairbnb: download %q: unexpected status %s", url, resp.Status)
	}

	out, err := os.Create(path)
	if err != nil {
		return fmt.Errorf("insideairbnb: create %q: %w", path, err)
	}
	if _, err := io.Copy(out, resp.Body); err != nil {
		_ = out.Close()
		return fmt.Errorf("insideairbnb: save %q: %w", path, err)
	}
	return out.Close()
}

func findChromeBinary(configured string) string {
	if configured != "" {
		return configured
	}

	names := []string{"google-chrome-stable", "google-chrome", "chromium", "chromium-browser"}
	for _, name := range names {
		if path, err := exec.LookPath(name); err == nil {
			return path
		}
	}

	paths := []string{
		"/usr/bin/google-chrome-stable",
		"/usr/bin/google-chrome",
		"/usr/bin/chromium-browser",
		"/usr/bin/chromium",
		"/snap/bin/chromium",
		"/opt/google/chrome/google-chrome",
	}
	for _, p := range paths {
		if _, err := os.Stat(p); err == nil {
			return p
		}
	}

	return ""
}
