package redis

import (
	"context"
	"fmt"
	"time"

	"github.com/redis/go-redis/v9"
)

const welcomeMarkerTTL = 7 * 24 * time.Hour

// WelcomeMarker remembers which users already had a welcome message claimed,
// so a job that is enqueued twice is only sent once.
// Key format: welcome:<user_id>
type WelcomeMarker struct {
	client *redis.Client
}

func NewWelcomeMarker(client *redis.Client) *WelcomeMarker {
	return &WelcomeMarker{client: client}
}

// Claim atomically marks userID and reports whether this caller won the mark.
func (m *WelcomeMarker) Claim(ctx context.Context, userID string) (bool, error) {
	ok, err := m.client.SetNX(ctx, m.key(userID), "1", welcomeMarkerTTL).Result()
	if err != nil {
		return false, fmt.Errorf("welcome marker: %w", err)
	}
	return ok, nil
}

func (m *WelcomeMarker) key(userID string) string {
	return "welcome:" + userID
}
