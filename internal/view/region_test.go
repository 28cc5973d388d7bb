package view

import (
	"sync"
	"testing"

	"github.com/stretchr/testify/assert"

	"github.com/Kerhoff/giftlists/internal/models"
)

func TestRegion_Transitions(t *testing.T) {
	r := NewRegion()
	assert.Equal(t, StateIdle, r.Snapshot().State)

	r.ShowLoading()
	assert.Equal(t, StateLoading, r.Snapshot().State)
	assert.Empty(t, r.Snapshot().Lists)

	r.ShowLists([]models.GiftList{{Owner: "Bob"}})
	snap := r.Snapshot()
	assert.Equal(t, StateReady, snap.State)
	assert.Len(t, snap.Lists, 1)
	assert.False(t, snap.UpdatedAt.IsZero())

	r.ShowLoading()
	assert.Empty(t, r.Snapshot().Lists, "a new load must reset the region")

	r.ShowError()
	assert.Equal(t, StateFailed, r.Snapshot().State)
	assert.Empty(t, r.Snapshot().Lists)
}

func TestRegion_ShowListsNil(t *testing.T) {
	r := NewRegion()
	r.ShowLists(nil)
	assert.NotNil(t, r.Snapshot().Lists)
}

func TestRegion_ConcurrentWriters(t *testing.T) {
	r := NewRegion()
	var wg sync.WaitGroup
	for i := 0; i < 20; i++ {
		wg.Add(1)
		go func(i int) {
			defer wg.Done()
			r.ShowLoading()
			if i%2 == 0 {
				r.ShowError()
			} else {
				r.ShowLists([]models.GiftList{{Owner: "x"}})
			}
			_ = r.Snapshot()
		}(i)
	}
	wg.Wait()

	assert.Contains(t, []State{StateFailed, StateReady, StateLoading}, r.Snapshot().State)
}

func TestState_String(t *testing.T) {
	assert.Equal(t, "idle", StateIdle.String())
	assert.Equal(t, "loading", StateLoading.String())
	assert.Equal(t, "ready", StateReady.String())
	assert.Equal(t, "failed", StateFailed.String())
}
