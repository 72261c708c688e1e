// Copyright Younes Elhjouji, 2026. All rights reserved.

package main

import (
	"context"
	"fmt"
	"net/http"
	"os"
	"time"

	"github.com/spf13/cobra"

	"github.com/YounesElhjouji/language-period-analysis/internal/acquire"
	"github.com/YounesElhjouji/language-period-analysis/pkg/types"
)

var acquireCmd = &cobra.Command{
	Use:   "acquire [urls...]",
	Short: "Download Shamela book exports",
	Long: `Acquire downloads book files (.bok exports or book HTML) from the given
URLs into data/raw, writing a provenance sidecar for each file into
data/metadata. URLs can be passed as arguments or listed in a manifest
file, one per line, with # comments.

Files that already exist on disk are skipped, so re-running a manifest
only fetches what is missing.`,
	RunE: runAcquire,
}

func runAcquire(cmd *cobra.Command, args []string) error {
	manifest, _ := cmd.Flags().GetString("manifest")
	dataDir, _ := cmd.Flags().GetString("data-dir")
	delay, _ := cmd.Flags().GetDuration("delay")
	timeout, _ := cmd.Flags().GetDuration("timeout")
	userAgent, _ := cmd.Flags().GetString("user-agent")
	maxRetries, _ := cmd.Flags().GetInt("max-retries")

	urls := args
	if manifest != "" {
		f, err := os.Open(manifest)
		if err != nil {
			return fmt.Errorf("opening manifest: %w", err)
		}
		fromFile, err := acquire.ParseManifest(f)
		f.Close()
		if err != nil {
			return err
		}
		urls = append(fromFile, urls...)
	}
	if len(urls) == 0 {
		return fmt.Errorf("no URLs: pass them as arguments or via --manifest")
	}

	cfg := types.AcquireConfig{
		HTTPConfig: types.HTTPConfig{
			Timeout:   timeout,
			UserAgent: userAgent,
		},
		DownloadDelay: delay,
		DataDir:       dataDir,
		MaxRetries:    maxRetries,
	}

	client := &http.Client{Timeout: cfg.Timeout}
	result := acquire.AcquireBatch(context.Background(), client, urls, cfg, os.Stdout)
	if result.HasFailures() {
		return fmt.Errorf("%d download(s) failed", result.Failed)
	}
	return nil
}

func init() {
	acquireCmd.Flags().String("manifest", "", "file listing book URLs, one per line")
	acquireCmd.Flags().String("data-dir", "data", "base directory for book data (contains raw/, metadata/)")
	acquireCmd.Flags().Duration("delay", time.Second, "delay between consecutive downloads")
	acquireCmd.Flags().Duration("timeout", 60*time.Second, "HTTP request timeout")
	acquireCmd.Flags().String("user-agent", "lpa/"+version, "User-Agent header for HTTP requests")
	acquireCmd.Flags().Int("max-retries", 0, "retry budget for rate-limited downloads (0 = default)")

	rootCmd.AddCommand(acquireCmd)
}
