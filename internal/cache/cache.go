package cache

import (
	"errors"
	"sync"
	"time"

	gocache "github.com/patrickmn/go-cache"
	"github.com/pmurley/auction-bot/internal/auction"
)

// ErrInFlight is returned when a submission for the same key is already running
var ErrInFlight = errors.New("a submission is already in progress")

// SubmissionGuard tracks in-flight mutations so repeated commands cannot
// submit the same player twice. Entries expire after ttl so a request that
// never completes does not block the player forever.
type SubmissionGuard struct {
	cache *gocache.Cache
	ttl   time.Duration
}

// NewSubmissionGuard creates a guard whose entries expire after ttl
func NewSubmissionGuard(ttl time.Duration) *SubmissionGuard {
	return &SubmissionGuard{
		cache: gocache.New(ttl, ttl*2),
		ttl:   ttl,
	}
}

// Acquire marks key as in flight. It fails with ErrInFlight if it already is.
// The returned func releases the mark and is safe to call more than once.
func (g *SubmissionGuard) Acquire(key string) (func(), error) {
	if err := g.cache.Add(key, time.Now(), g.ttl); err != nil {
		return nil, ErrInFlight
	}
	var once sync.Once
	return func() {
		once.Do(func() { g.cache.Delete(key) })
	}, nil
}

// InFlight reports whether key is currently marked
func (g *SubmissionGuard) InFlight(key string) bool {
	_, found := g.cache.Get(key)
	return found
}

// SortMemory remembers the last players-table sort per channel so that
// repeating a sort field flips its direction.
type SortMemory struct {
	cache    *gocache.Cache
	duration time.Duration
}

// NewSortMemory creates a memory whose entries are forgotten after duration of inactivity
func NewSortMemory(duration time.Duration) *SortMemory {
	return &SortMemory{
		cache:    gocache.New(duration, duration*2),
		duration: duration,
	}
}

// Get returns the channel's sort, or the default sort
func (m *SortMemory) Get(channelID string) auction.SortSpec {
	if spec, found := m.cache.Get(channelID); found {
		return spec.(auction.SortSpec)
	}
	return auction.DefaultSort
}

// Next returns the channel's sort after selecting field, without storing it
func (m *SortMemory) Next(channelID string, field auction.SortField) auction.SortSpec {
	return m.Get(channelID).Toggle(field)
}

// Store remembers spec as the channel's sort
func (m *SortMemory) Store(channelID string, spec auction.SortSpec) {
	m.cache.Set(channelID, spec, m.duration)
}

// Reset forgets the channel's sort
func (m *SortMemory) Reset(channelID string) {
	m.cache.Delete(channelID)
}
