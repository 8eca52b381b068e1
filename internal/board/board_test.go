package board

import (
	"context"
	"errors"
	"testing"
	"time"

	"github.com/google/uuid"
	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"backoffice/internal/events"
	"backoffice/internal/model"
)

type fakeSource struct {
	orders []model.Order
	err    error
}

func (f *fakeSource) TodayOrders(ctx context.Context) ([]model.Order, error) {
	return f.orders, f.err
}

func newOrder(total int64) model.Order {
	return model.Order{
		ID:         uuid.New(),
		TotalPrice: decimal.NewFromInt(total),
		Time:       time.Now(),
	}
}

func TestLoadSnapshotPartitionsEveryOrder(t *testing.T) {
	orders := []model.Order{newOrder(10), newOrder(20), newOrder(30)}
	store := NewMemoryStore()
	require.NoError(t, store.Set(orders[1].ID, true))

	b := New(&fakeSource{orders: orders}, store)
	require.NoError(t, b.LoadSnapshot(context.Background()))

	pending, completed := b.Pending(), b.Completed()
	assert.Len(t, pending, 2)
	assert.Len(t, completed, 1)
	assert.Equal(t, len(orders), len(pending)+len(completed))

	seen := map[uuid.UUID]int{}
	for _, o := range pending {
		seen[o.ID]++
	}
	for _, o := range completed {
		seen[o.ID]++
	}
	for _, o := range orders {
		assert.Equal(t, 1, seen[o.ID], "order must land in exactly one bucket")
	}
}

func TestLoadSnapshotAppliesPersistedFlags(t *testing.T) {
	a, bOrd, c := newOrder(1), newOrder(2), newOrder(3)
	store := NewMemoryStore()
	require.NoError(t, store.Set(a.ID, true))
	require.NoError(t, store.Set(bOrd.ID, false))

	b := New(&fakeSource{orders: []model.Order{a, bOrd, c}}, store)
	require.NoError(t, b.LoadSnapshot(context.Background()))

	pending, completed := b.Pending(), b.Completed()
	require.Len(t, pending, 2)
	require.Len(t, completed, 1)
	assert.Equal(t, bOrd.ID, pending[0].ID)
	assert.Equal(t, c.ID, pending[1].ID, "absent from the store defaults to pending")
	assert.Equal(t, a.ID, completed[0].ID)
	assert.True(t, completed[0].Done)
}

func TestLoadSnapshotFetchErrorLeavesBoardEmpty(t *testing.T) {
	src := &fakeSource{orders: []model.Order{newOrder(5)}}
	b := New(src, NewMemoryStore())
	require.NoError(t, b.LoadSnapshot(context.Background()))
	require.Len(t, b.Pending(), 1)

	src.err = errors.New("backend down")
	err := b.LoadSnapshot(context.Background())
	require.ErrorIs(t, err, ErrSnapshotFetch)
	assert.Empty(t, b.Pending())
	assert.Empty(t, b.Completed())
}

func TestToggleCompletionUpdatesStore(t *testing.T) {
	x := newOrder(7)
	store := NewMemoryStore()
	b := New(&fakeSource{orders: []model.Order{x}}, store)
	require.NoError(t, b.LoadSnapshot(context.Background()))
	require.Len(t, b.Pending(), 1)
	require.Empty(t, b.Completed())

	b.ToggleCompletion(x.ID)

	assert.Empty(t, b.Pending())
	require.Len(t, b.Completed(), 1)
	assert.True(t, b.Completed()[0].Done)
	assert.True(t, store.Get(x.ID))
}

func TestToggleCompletionRoundTrip(t *testing.T) {
	orders := []model.Order{newOrder(1), newOrder(2), newOrder(3)}
	b := New(&fakeSource{orders: orders}, NewMemoryStore())
	require.NoError(t, b.LoadSnapshot(context.Background()))

	target := orders[0].ID
	b.ToggleCompletion(target)
	b.ToggleCompletion(target)

	pending := b.Pending()
	require.Len(t, pending, 3)
	assert.Empty(t, b.Completed())
	// back in the original bucket, appended at the end rather than restored
	assert.Equal(t, target, pending[2].ID)
	assert.False(t, pending[2].Done)
}

func TestToggleCompletionUnknownIDIsNoop(t *testing.T) {
	b := New(&fakeSource{orders: []model.Order{newOrder(1)}}, NewMemoryStore())
	require.NoError(t, b.LoadSnapshot(context.Background()))

	b.ToggleCompletion(uuid.New())

	assert.Len(t, b.Pending(), 1)
	assert.Empty(t, b.Completed())
}

func TestOnOrderCreatedPrependsToPending(t *testing.T) {
	b := New(&fakeSource{orders: []model.Order{newOrder(1), newOrder(2)}}, NewMemoryStore())
	require.NoError(t, b.LoadSnapshot(context.Background()))

	fresh := newOrder(9)
	b.OnOrderCreated(fresh)

	pending := b.Pending()
	require.Len(t, pending, 3)
	assert.Equal(t, fresh.ID, pending[0].ID)
	assert.False(t, pending[0].Done)
}

func TestOnOrderCreatedDeduplicates(t *testing.T) {
	b := New(&fakeSource{}, NewMemoryStore())

	fresh := newOrder(9)
	b.OnOrderCreated(fresh)
	b.OnOrderCreated(fresh) // at-least-once delivery

	assert.Len(t, b.Pending(), 1)

	// also deduplicated against the completed bucket
	b.ToggleCompletion(fresh.ID)
	b.OnOrderCreated(fresh)
	assert.Empty(t, b.Pending())
	assert.Len(t, b.Completed(), 1)
}

func TestReorderSameIndexIsNoop(t *testing.T) {
	orders := []model.Order{newOrder(1), newOrder(2), newOrder(3)}
	b := New(&fakeSource{orders: orders}, NewMemoryStore())
	require.NoError(t, b.LoadSnapshot(context.Background()))

	before := b.Pending()
	b.Reorder(1, 1)
	assert.Equal(t, before, b.Pending())
}

func TestReorderOutOfRangeIsNoop(t *testing.T) {
	orders := []model.Order{newOrder(1), newOrder(2)}
	b := New(&fakeSource{orders: orders}, NewMemoryStore())
	require.NoError(t, b.LoadSnapshot(context.Background()))

	before := b.Pending()
	b.Reorder(0, 5)
	b.Reorder(-1, 0)
	b.Reorder(3, 0)
	assert.Equal(t, before, b.Pending())
}

func TestReorderMovesWithinVisibleBucket(t *testing.T) {
	orders := []model.Order{newOrder(1), newOrder(2), newOrder(3)}
	b := New(&fakeSource{orders: orders}, NewMemoryStore())
	require.NoError(t, b.LoadSnapshot(context.Background()))

	b.Reorder(0, 2)

	pending := b.Pending()
	assert.Equal(t, orders[1].ID, pending[0].ID)
	assert.Equal(t, orders[2].ID, pending[1].ID)
	assert.Equal(t, orders[0].ID, pending[2].ID)
}

func TestReorderAppliesToCompletedWhenShown(t *testing.T) {
	orders := []model.Order{newOrder(1), newOrder(2), newOrder(3)}
	b := New(&fakeSource{orders: orders}, NewMemoryStore())
	require.NoError(t, b.LoadSnapshot(context.Background()))

	b.ToggleCompletion(orders[0].ID)
	b.ToggleCompletion(orders[1].ID)
	require.Len(t, b.Completed(), 2)

	pendingBefore := b.Pending()
	b.ToggleView()
	b.Reorder(0, 1)

	completed := b.Completed()
	assert.Equal(t, orders[1].ID, completed[0].ID)
	assert.Equal(t, orders[0].ID, completed[1].ID)
	assert.Equal(t, pendingBefore, b.Pending(), "reordering one bucket leaves the other alone")
}

func TestSnapshotDiscardsManualOrdering(t *testing.T) {
	orders := []model.Order{newOrder(1), newOrder(2), newOrder(3)}
	b := New(&fakeSource{orders: orders}, NewMemoryStore())
	require.NoError(t, b.LoadSnapshot(context.Background()))

	b.Reorder(0, 2)
	require.NoError(t, b.LoadSnapshot(context.Background()))

	pending := b.Pending()
	for i, o := range orders {
		assert.Equal(t, o.ID, pending[i].ID)
	}
}

func TestToggleViewStateMachine(t *testing.T) {
	b := New(&fakeSource{}, NewMemoryStore())

	assert.Equal(t, ShowingPending, b.View())
	assert.Equal(t, ShowingCompleted, b.ToggleView())
	assert.Equal(t, ShowingPending, b.ToggleView())
	assert.Equal(t, ShowingCompleted, b.ToggleView())
}

func TestTotalRevenueSumsBothBuckets(t *testing.T) {
	orders := []model.Order{newOrder(10), newOrder(25)}
	b := New(&fakeSource{orders: orders}, NewMemoryStore())
	require.NoError(t, b.LoadSnapshot(context.Background()))
	b.ToggleCompletion(orders[0].ID)

	assert.True(t, decimal.NewFromInt(35).Equal(b.TotalRevenue()))
}

func TestBoardReceivesHubEvents(t *testing.T) {
	hub := events.NewHub()
	defer hub.Close()

	b := New(&fakeSource{}, NewMemoryStore())
	b.Start(hub)
	defer b.Close()

	fresh := newOrder(4)
	hub.Publish(events.EventNewOrder, fresh)

	require.Eventually(t, func() bool {
		pending := b.Pending()
		return len(pending) == 1 && pending[0].ID == fresh.ID
	}, time.Second, 5*time.Millisecond)
}
