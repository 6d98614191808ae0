package app

import (
	"errors"
	"fmt"

	valid "github.com/asaskevich/govalidator"
)

var (
	ErrInvalidBaseURL   = errors.New("base URL is not a valid request URL")
	ErrInvalidSortKey   = errors.New("leaderboard sort key must be one of: wins, win_pct")
	ErrInvalidRateLimit = errors.New("rate limit must be a positive number of requests / second")
)

// Config carries everything a run needs. The cmd layer assembles it from
// flags; app code never reads flags itself.
type Config struct {
	BaseURL         string
	EchoJSON        bool
	LeaderboardSort string
	RateLimit       float64
	Headers         Headers
}

func (c Config) Validate() error {
	if !valid.IsRequestURL(c.BaseURL) {
		return fmt.Errorf("%q: %w", c.BaseURL, ErrInvalidBaseURL)
	}

	if !valid.IsIn(c.LeaderboardSort, "wins", "win_pct") {
		return fmt.Errorf("%q: %w", c.LeaderboardSort, ErrInvalidSortKey)
	}

	if c.RateLimit <= 0 {
		return fmt.Errorf("%v: %w", c.RateLimit, ErrInvalidRateLimit)
	}

	return nil
}
