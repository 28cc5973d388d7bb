package view

import (
	"sync"
	"time"

	"github.com/Kerhoff/giftlists/internal/models"
)

// State is what the display region currently shows.
type State int

const (
	StateIdle State = iota
	StateLoading
	StateReady
	StateFailed
)

func (s State) String() string {
	switch s {
	case StateLoading:
		return "loading"
	case StateReady:
		return "ready"
	case StateFailed:
		return "failed"
	default:
		return "idle"
	}
}

// Snapshot is a point-in-time copy of the region. Lists must be treated as
// read-only.
type Snapshot struct {
	State     State
	Lists     []models.GiftList
	UpdatedAt time.Time
}

// Region is the single display region every load writes into. Each Show
// call replaces the whole content; the last writer wins.
type Region struct {
	mu   sync.RWMutex
	snap Snapshot
	now  func() time.Time
}

// NewRegion creates an idle region.
func NewRegion() *Region {
	return &Region{now: time.Now}
}

// ShowLoading clears the region and shows the loading indicator.
func (r *Region) ShowLoading() {
	r.set(Snapshot{State: StateLoading})
}

// ShowLists replaces the region content with normalized lists.
func (r *Region) ShowLists(lists []models.GiftList) {
	if lists == nil {
		lists = []models.GiftList{}
	}
	r.set(Snapshot{State: StateReady, Lists: lists})
}

// ShowError replaces the region content with the error message.
func (r *Region) ShowError() {
	r.set(Snapshot{State: StateFailed})
}

// Snapshot returns the current content.
func (r *Region) Snapshot() Snapshot {
	r.mu.RLock()
	defer r.mu.RUnlock()
	return r.snap
}

func (r *Region) set(s Snapshot) {
	s.UpdatedAt = r.now()
	r.mu.Lock()
	r.snap = s
	r.mu.Unlock()
}
