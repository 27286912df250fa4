package replay

import "time"

// Config holds configuration for a replay run.
type Config struct {
	BaseURL string        // Base URL of the service
	Workers int           // Number of concurrent submitters
	Timeout time.Duration // HTTP request timeout
	TopN    int           // Number of ranked teams to fetch afterwards; 0 skips the check
	Retries int           // Attempts per transfer on 429 backpressure
	Settle  time.Duration // Wait before fetching rankings
	Verbose bool          // Log every failed submission
}

// Stats holds replay statistics.
type Stats struct {
	Submitted int64
	Accepted  int64
	Duplicate int64
	Failed    int64
	Rankings  []Standing
	StartTime time.Time
	Duration  time.Duration
}

// Standing is the subset of a ranked team the replay reports on.
type Standing struct {
	Rank       int     `json:"rank"`
	Team       string  `json:"team"`
	Conference string  `json:"conference"`
	Score      float64 `json:"score"`
	NILSpent   float64 `json:"nil_spent"`
}

// transferRequest mirrors the POST /transfers body.
type transferRequest struct {
	TransferID string `json:"transfer_id"`
	Team       string `json:"team"`
	Conference string `json:"conference,omitempty"`
	Direction  string `json:"direction"`
	TS         string `json:"ts,omitempty"`
	Player     any    `json:"player"`
}

type ackResponse struct {
	Status    string `json:"status"`
	Duplicate bool   `json:"duplicate"`
}
