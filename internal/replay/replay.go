// Package replay submits transfers to a running portal rankings server and
// reports the resulting standings.
package replay

import (
	"bytes"
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"io"
	"net/http"
	"strconv"
	"sync"
	"sync/atomic"
	"time"

	"github.com/okian/portalrank/internal/domain/model"
	"github.com/okian/portalrank/pkg/logger"
)

const backoff = 50 * time.Millisecond

// ErrUnhealthy is returned when the server's health check fails.
var ErrUnhealthy = errors.New("service unhealthy")

// Run checks the server, submits every transfer with cfg.Workers concurrent
// submitters and then fetches the top cfg.TopN teams.
func Run(ctx context.Context, cfg *Config, transfers []model.Transfer) (*Stats, error) {
	stats := &Stats{StartTime: time.Now()}
	log := logger.Named("replay")
	client := &http.Client{Timeout: cfg.Timeout}

	log.Info(ctx, "starting replay",
		logger.String("baseURL", cfg.BaseURL),
		logger.Int("transfers", len(transfers)),
		logger.Int("workers", cfg.Workers),
	)

	if err := checkHealth(ctx, client, cfg.BaseURL); err != nil {
		return nil, err
	}

	submit(ctx, cfg, client, transfers, stats, log)
	if err := ctx.Err(); err != nil {
		return stats, err
	}

	if cfg.TopN > 0 {
		if cfg.Settle > 0 {
			select {
			case <-ctx.Done():
				return stats, ctx.Err()
			case <-time.After(cfg.Settle):
			}
		}
		rankings, err := fetchRankings(ctx, client, cfg.BaseURL, cfg.TopN)
		if err != nil {
			return stats, fmt.Errorf("fetch rankings: %w", err)
		}
		stats.Rankings = rankings
	}

	stats.Duration = time.Since(stats.StartTime)
	log.Info(ctx, "replay finished",
		logger.Int64("submitted", stats.Submitted),
		logger.Int64("accepted", stats.Accepted),
		logger.Int64("duplicate", stats.Duplicate),
		logger.Int64("failed", stats.Failed),
		logger.Duration("duration", stats.Duration),
	)
	for _, st := range stats.Rankings {
		log.Info(ctx, "ranked team",
			logger.Int("rank", st.Rank),
			logger.String("team", st.Team),
			logger.Float64("score", st.Score),
			logger.Float64("nil_spent", st.NILSpent),
		)
	}
	return stats, nil
}

func checkHealth(ctx context.Context, client *http.Client, baseURL string) error {
	req, err := http.NewRequestWithContext(ctx, http.MethodGet, baseURL+"/healthz", http.NoBody)
	if err != nil {
		return fmt.Errorf("%w: %w", ErrUnhealthy, err)
	}
	resp, err := client.Do(req)
	if err != nil {
		return fmt.Errorf("%w: %w", ErrUnhealthy, err)
	}
	defer resp.Body.Close()
	if resp.StatusCode != http.StatusOK {
		return fmt.Errorf("%w: status %d", ErrUnhealthy, resp.StatusCode)
	}
	return nil
}

// submit fans transfers out to a bounded set of workers.
func submit(ctx context.Context, cfg *Config, client *http.Client, transfers []model.Transfer, stats *Stats, log logger.Logger) {
	workers := max(cfg.Workers, 1)
	ch := make(chan model.Transfer, workers*2)
	url := cfg.BaseURL + "/transfers"

	var wg sync.WaitGroup
	for i := 0; i < workers; i++ {
		wg.Add(1)
		go func() {
			defer wg.Done()
			for t := range ch {
				atomic.AddInt64(&stats.Submitted, 1)
				dup, err := post(ctx, client, url, t, cfg.Retries)
				switch {
				case err != nil:
					atomic.AddInt64(&stats.Failed, 1)
					if cfg.Verbose {
						log.Warn(ctx, "transfer failed", logger.String("transfer_id", t.TransferID), logger.Error(err))
					}
				case dup:
					atomic.AddInt64(&stats.Duplicate, 1)
				default:
					atomic.AddInt64(&stats.Accepted, 1)
				}
			}
		}()
	}

feed:
	for _, t := range transfers {
		select {
		case <-ctx.Done():
			break feed
		case ch <- t:
		}
	}
	close(ch)
	wg.Wait()
}

// post submits one transfer, retrying on backpressure. It reports whether the
// server saw the transfer before.
func post(ctx context.Context, client *http.Client, url string, t model.Transfer, retries int) (bool, error) {
	body, err := json.Marshal(transferRequest{
		TransferID: t.TransferID,
		Team:       t.Team,
		Conference: t.Conference,
		Direction:  string(t.Direction),
		TS:         formatTS(t.TS),
		Player:     t.Player,
	})
	if err != nil {
		return false, fmt.Errorf("marshal transfer: %w", err)
	}

	for attempt := 0; ; attempt++ {
		req, err := http.NewRequestWithContext(ctx, http.MethodPost, url, bytes.NewReader(body))
		if err != nil {
			return false, err
		}
		req.Header.Set("Content-Type", "application/json")

		resp, err := client.Do(req)
		if err != nil {
			return false, err
		}
		data, _ := io.ReadAll(resp.Body)
		resp.Body.Close()

		switch resp.StatusCode {
		case http.StatusAccepted, http.StatusOK:
			var ack ackResponse
			if err := json.Unmarshal(data, &ack); err != nil {
				return false, fmt.Errorf("decode ack: %w", err)
			}
			return ack.Duplicate, nil
		case http.StatusTooManyRequests:
			if attempt >= retries {
				return false, fmt.Errorf("backpressure after %d attempts", attempt+1)
			}
			select {
			case <-ctx.Done():
				return false, ctx.Err()
			case <-time.After(backoff * time.Duration(attempt+1)):
			}
		default:
			return false, fmt.Errorf("status %d: %s", resp.StatusCode, bytes.TrimSpace(data))
		}
	}
}

func fetchRankings(ctx context.Context, client *http.Client, baseURL string, n int) ([]Standing, error) {
	req, err := http.NewRequestWithContext(ctx, http.MethodGet, baseURL+"/rankings?limit="+strconv.Itoa(n), http.NoBody)
	if err != nil {
		return nil, err
	}
	resp, err := client.Do(req)
	if err != nil {
		return nil, err
	}
	defer resp.Body.Close()
	if resp.StatusCode != http.StatusOK {
		return nil, fmt.Errorf("status %d", resp.StatusCode)
	}
	var out []Standing
	if err := json.NewDecoder(resp.Body).Decode(&out); err != nil {
		return nil, fmt.Errorf("decode rankings: %w", err)
	}
	return out, nil
}

func formatTS(ts time.Time) string {
	if ts.IsZero() {
		return ""
	}
	return ts.UTC().Format(time.RFC3339)
}
