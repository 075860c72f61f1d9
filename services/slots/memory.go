package slots

import (
	"sync"
	"time"

	"petcare/models"
)

// MemorySlotManager tracks holds in process memory behind a mutex. It backs
// single-instance deployments without Redis and the test suite; expired holds
// are pruned lazily whenever the map is consulted.
type MemorySlotManager struct {
	mu              sync.Mutex
	holds           map[string]*models.SlotHold
	holdTTL         time.Duration
	hours           BusinessHours
	suggestionCount int
}

// NewMemorySlotManager creates an in-memory slot reservation manager.
func NewMemorySlotManager(holdTTL time.Duration, hours BusinessHours, suggestionCount int) *MemorySlotManager {
	if holdTTL <= 0 {
		holdTTL = 10 * time.Minute
	}
	return &MemorySlotManager{
		holds:           make(map[string]*models.SlotHold),
		holdTTL:         holdTTL,
		hours:           hours,
		suggestionCount: suggestionCount,
	}
}

// taken reports whether key carries an unexpired hold. Caller must hold mu.
func (m *MemorySlotManager) taken(key string, now time.Time) bool {
	h, ok := m.holds[key]
	if !ok {
		return false
	}
	if h.Expired(now) {
		delete(m.holds, key)
		return false
	}
	return true
}

// CheckAvailability implements Manager.
func (m *MemorySlotManager) CheckAvailability(requested string) (*models.Availability, error) {
	now := time.Now()
	m.mu.Lock()
	defer m.mu.Unlock()
	return availability(requested, now, m.hours, m.suggestionCount, func(key string) bool {
		return m.taken(key, now)
	})
}

// ReserveSlot implements Manager.
func (m *MemorySlotManager) ReserveSlot(requested, ownerSessionID string) (string, error) {
	text := normalize(requested)
	if len(text) < 3 {
		return "", newSlotError(CodeMalformedSlot, "requested date/time %q is too short to interpret", requested)
	}
	key, _, _ := Canonicalize(requested, time.Now())

	now := time.Now()
	m.mu.Lock()
	defer m.mu.Unlock()

	if m.taken(key, now) {
		return "", newSlotError(CodeSlotContention, "slot %s is already held", key)
	}

	m.holds[key] = &models.SlotHold{
		SlotKey:        key,
		OwnerSessionID: ownerSessionID,
		State:          models.HoldHeld,
		ExpiresAt:      now.Add(m.holdTTL),
	}
	return key, nil
}

// ConfirmReservation implements Manager.
func (m *MemorySlotManager) ConfirmReservation(slotKey, ownerSessionID string) error {
	now := time.Now()
	m.mu.Lock()
	defer m.mu.Unlock()

	h, ok := m.holds[slotKey]
	if !ok {
		return newSlotError(CodeHoldExpired, "no active hold for slot %s", slotKey)
	}
	if h.Expired(now) {
		delete(m.holds, slotKey)
		return newSlotError(CodeHoldExpired, "hold for slot %s has expired", slotKey)
	}
	if h.OwnerSessionID != ownerSessionID {
		return newSlotError(CodeNotOwner, "slot %s is held by another session", slotKey)
	}
	h.State = models.HoldConfirmed
	return nil
}

// ReleaseSlot implements Manager.
func (m *MemorySlotManager) ReleaseSlot(slotKey, ownerSessionID string) error {
	m.mu.Lock()
	defer m.mu.Unlock()

	h, ok := m.holds[slotKey]
	if !ok {
		return nil
	}
	if h.OwnerSessionID != ownerSessionID {
		return newSlotError(CodeNotOwner, "slot %s is held by another session", slotKey)
	}
	if h.State == models.HoldConfirmed {
		return nil
	}
	delete(m.holds, slotKey)
	return nil
}

// SweepExpired implements Sweeper.
func (m *MemorySlotManager) SweepExpired() int {
	now := time.Now()
	m.mu.Lock()
	defer m.mu.Unlock()

	var n int
	for key, h := range m.holds {
		if h.Expired(now) {
			delete(m.holds, key)
			n++
		}
	}
	return n
}
