// File: services/slots/redis.go
package slots

import (
	"context"
	"encoding/json"
	"fmt"
	"time"

	"petcare/models"

	"github.com/go-redis/redis/v8"
)

const slotHoldPrefix = "slot:hold:"

// RedisSlotManager keeps holds in Redis so multiple instances arbitrate the
// same slots. SetNX gives the reserve step its atomicity and the key TTL
// stands in for lazy expiry; confirmed holds are re-written without a TTL.
type RedisSlotManager struct {
	client          *redis.Client
	holdTTL         time.Duration
	hours           BusinessHours
	suggestionCount int
}

// NewRedisSlotManager creates a Redis-backed slot reservation manager.
func NewRedisSlotManager(client *redis.Client, holdTTL time.Duration, hours BusinessHours, suggestionCount int) *RedisSlotManager {
	if holdTTL <= 0 {
		holdTTL = 10 * time.Minute
	}
	return &RedisSlotManager{
		client:          client,
		holdTTL:         holdTTL,
		hours:           hours,
		suggestionCount: suggestionCount,
	}
}

func (m *RedisSlotManager) taken(ctx context.Context) takenFunc {
	return func(key string) bool {
		n, err := m.client.Exists(ctx, slotHoldPrefix+key).Result()
		if err != nil {
			// Treat a Redis failure as taken so we never double-book on a
			// degraded backend.
			return true
		}
		return n > 0
	}
}

// CheckAvailability implements Manager.
func (m *RedisSlotManager) CheckAvailability(requested string) (*models.Availability, error) {
	ctx := context.Background()
	return availability(requested, time.Now(), m.hours, m.suggestionCount, m.taken(ctx))
}

// ReserveSlot implements Manager.
func (m *RedisSlotManager) ReserveSlot(requested, ownerSessionID string) (string, error) {
	text := normalize(requested)
	if len(text) < 3 {
		return "", newSlotError(CodeMalformedSlot, "requested date/time %q is too short to interpret", requested)
	}
	key, _, _ := Canonicalize(requested, time.Now())

	hold := models.SlotHold{
		SlotKey:        key,
		OwnerSessionID: ownerSessionID,
		State:          models.HoldHeld,
		ExpiresAt:      time.Now().Add(m.holdTTL),
	}
	data, err := json.Marshal(hold)
	if err != nil {
		return "", fmt.Errorf("failed to marshal slot hold: %w", err)
	}

	ctx := context.Background()
	ok, err := m.client.SetNX(ctx, slotHoldPrefix+key, data, m.holdTTL).Result()
	if err != nil {
		return "", fmt.Errorf("failed to reserve slot %s: %w", key, err)
	}
	if !ok {
		return "", newSlotError(CodeSlotContention, "slot %s is already held", key)
	}
	return key, nil
}

// ConfirmReservation implements Manager. The read-modify-write is safe
// without a transaction: only the owning session passes the ownership check,
// and that session's turns are serialized upstream.
func (m *RedisSlotManager) ConfirmReservation(slotKey, ownerSessionID string) error {
	ctx := context.Background()

	data, err := m.client.Get(ctx, slotHoldPrefix+slotKey).Result()
	if err == redis.Nil {
		return newSlotError(CodeHoldExpired, "no active hold for slot %s", slotKey)
	}
	if err != nil {
		return fmt.Errorf("failed to load hold for slot %s: %w", slotKey, err)
	}

	var hold models.SlotHold
	if err := json.Unmarshal([]byte(data), &hold); err != nil {
		return fmt.Errorf("failed to unmarshal hold for slot %s: %w", slotKey, err)
	}
	if hold.OwnerSessionID != ownerSessionID {
		return newSlotError(CodeNotOwner, "slot %s is held by another session", slotKey)
	}
	if hold.State == models.HoldConfirmed {
		return nil
	}

	hold.State = models.HoldConfirmed
	updated, err := json.Marshal(hold)
	if err != nil {
		return fmt.Errorf("failed to marshal hold for slot %s: %w", slotKey, err)
	}
	if err := m.client.Set(ctx, slotHoldPrefix+slotKey, updated, 0).Err(); err != nil {
		return fmt.Errorf("failed to confirm hold for slot %s: %w", slotKey, err)
	}
	return nil
}

// ReleaseSlot implements Manager.
func (m *RedisSlotManager) ReleaseSlot(slotKey, ownerSessionID string) error {
	ctx := context.Background()

	data, err := m.client.Get(ctx, slotHoldPrefix+slotKey).Result()
	if err == redis.Nil {
		return nil
	}
	if err != nil {
		return fmt.Errorf("failed to load hold for slot %s: %w", slotKey, err)
	}

	var hold models.SlotHold
	if err := json.Unmarshal([]byte(data), &hold); err != nil {
		return fmt.Errorf("failed to unmarshal hold for slot %s: %w", slotKey, err)
	}
	if hold.OwnerSessionID != ownerSessionID {
		return newSlotError(CodeNotOwner, "slot %s is held by another session", slotKey)
	}
	if hold.State == models.HoldConfirmed {
		return nil
	}
	return m.client.Del(ctx, slotHoldPrefix+slotKey).Err()
}
