package redis

import (
	"context"
	"encoding/json"
	"fmt"
	"time"

	"github.com/redis/go-redis/v9"
	"github.com/rs/zerolog/log"

	"github.com/salonworks/salon-api/schedule"
)

// AvailabilityCache stores classified day slots per (staff, date). The TTL
// is short: the cache only has to absorb the calendar UI's refresh polling,
// and writes invalidate their day anyway.
type AvailabilityCache struct {
	client *redis.Client
	ttl    time.Duration
}

func NewAvailabilityCache(client *redis.Client) *AvailabilityCache {
	return &AvailabilityCache{client: client, ttl: 30 * time.Second}
}

func dayKey(staffID uint, date string) string {
	return fmt.Sprintf("availability:%d:%s", staffID, date)
}

// GetDay returns cached slots for a staff day. Any redis or decode error
// counts as a miss; the caller recomputes from the store.
func (c *AvailabilityCache) GetDay(ctx context.Context, staffID uint, date string) ([]schedule.TimeSlot, bool) {
	raw, err := c.client.Get(ctx, dayKey(staffID, date)).Bytes()
	if err != nil {
		if err != redis.Nil {
			log.Warn().Err(err).Msg("availability cache read failed")
		}
		return nil, false
	}

	var slots []schedule.TimeSlot
	if err := json.Unmarshal(raw, &slots); err != nil {
		log.Warn().Err(err).Msg("availability cache entry corrupt")
		return nil, false
	}
	return slots, true
}

func (c *AvailabilityCache) SetDay(ctx context.Context, staffID uint, date string, slots []schedule.TimeSlot) {
	raw, err := json.Marshal(slots)
	if err != nil {
		return
	}
	if err := c.client.Set(ctx, dayKey(staffID, date), raw, c.ttl).Err(); err != nil {
		log.Warn().Err(err).Msg("availability cache write failed")
	}
}

func (c *AvailabilityCache) InvalidateDay(ctx context.Context, staffID uint, date string) {
	if err := c.client.Del(ctx, dayKey(staffID, date)).Err(); err != nil {
		log.Warn().Err(err).Msg("availability cache invalidation failed")
	}
}
