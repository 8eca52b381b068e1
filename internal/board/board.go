package board

import (
	"context"
	"errors"
	"fmt"
	"log/slog"
	"sync"

	"github.com/google/uuid"
	"github.com/shopspring/decimal"

	"backoffice/internal/events"
	"backoffice/internal/model"
)

// ErrSnapshotFetch wraps any failure to load the day's orders. The board is
// left empty when it is returned; there is no automatic retry.
var ErrSnapshotFetch = errors.New("failed to fetch orders")

// SnapshotSource supplies the one-time bulk read of today's orders.
type SnapshotSource interface {
	TodayOrders(ctx context.Context) ([]model.Order, error)
}

// View selects which bucket the board currently displays.
type View string

const (
	ShowingPending   View = "pending"
	ShowingCompleted View = "completed"
)

// Order is a server order tagged with the board-local completion flag. The
// flag never travels back to the orders table.
type Order struct {
	model.Order
	Done bool `json:"isDone"`
}

// Board merges the day's order snapshot with live new-order events and keeps
// the result partitioned into a pending and a completed sequence. Every order
// known to the board sits in exactly one of the two.
//
// All mutations (snapshot replace, live prepend, toggle, reorder) are
// serialized behind one mutex, so a live event racing an in-flight snapshot
// load simply lands before or after the replace, whichever acquires the lock
// last wins.
type Board struct {
	source SnapshotSource
	store  CompletionStore

	mu        sync.Mutex
	pending   []Order
	completed []Order
	view      View

	sub  *events.Subscription
	done chan struct{}
}

func New(source SnapshotSource, store CompletionStore) *Board {
	return &Board{
		source: source,
		store:  store,
		view:   ShowingPending,
	}
}

// Start subscribes the board to new-order events. Close must be called on
// teardown so the subscription does not keep delivering into a dead board.
func (b *Board) Start(hub *events.Hub) {
	b.sub = hub.Subscribe(events.EventNewOrder)
	b.done = make(chan struct{})

	go func() {
		defer close(b.done)
		for payload := range b.sub.C {
			order, ok := payload.(model.Order)
			if !ok {
				slog.Warn("unexpected new-order payload", "type", fmt.Sprintf("%T", payload))
				continue
			}
			b.OnOrderCreated(order)
		}
	}()
}

func (b *Board) Close() {
	if b.sub == nil {
		return
	}
	b.sub.Close()
	<-b.done
}

// LoadSnapshot replaces the whole board state with today's orders, each tagged
// with its persisted completion flag and partitioned accordingly. Any manual
// reordering is discarded. On failure both sequences are left empty.
func (b *Board) LoadSnapshot(ctx context.Context) error {
	orders, err := b.source.TodayOrders(ctx)
	if err != nil {
		b.mu.Lock()
		b.pending = nil
		b.completed = nil
		b.mu.Unlock()
		return fmt.Errorf("%w: %v", ErrSnapshotFetch, err)
	}

	pending := make([]Order, 0, len(orders))
	completed := make([]Order, 0)
	for _, o := range orders {
		done := b.store.Get(o.ID)
		tagged := Order{Order: o, Done: done}
		if done {
			completed = append(completed, tagged)
		} else {
			pending = append(pending, tagged)
		}
	}

	b.mu.Lock()
	b.pending = pending
	b.completed = completed
	b.mu.Unlock()
	return nil
}

// OnOrderCreated prepends a freshly created order to the pending sequence.
// The transport delivers at least once, so an order id already on the board
// is ignored rather than shown twice.
func (b *Board) OnOrderCreated(order model.Order) {
	b.mu.Lock()
	defer b.mu.Unlock()

	if b.indexOf(b.pending, order.ID) >= 0 || b.indexOf(b.completed, order.ID) >= 0 {
		slog.Debug("duplicate new-order event ignored", "order", order.ID)
		return
	}

	b.pending = append([]Order{{Order: order, Done: false}}, b.pending...)
}

// ToggleCompletion moves the order to the opposite bucket, appended at the
// end, and flips its persisted flag. Unknown ids are silently ignored: an
// order can only be toggled from the bucket it is visibly in.
func (b *Board) ToggleCompletion(id uuid.UUID) {
	b.mu.Lock()
	defer b.mu.Unlock()

	if i := b.indexOf(b.pending, id); i >= 0 {
		order := b.pending[i]
		order.Done = true
		b.pending = append(b.pending[:i], b.pending[i+1:]...)
		b.completed = append(b.completed, order)
		b.persist(id, true)
		return
	}

	if i := b.indexOf(b.completed, id); i >= 0 {
		order := b.completed[i]
		order.Done = false
		b.completed = append(b.completed[:i], b.completed[i+1:]...)
		b.pending = append(b.pending, order)
		b.persist(id, false)
	}
}

// Reorder moves the element at from to position to within the bucket the
// current view displays. A drop outside any valid target (out-of-range
// indexes) and from == to leave the state untouched.
func (b *Board) Reorder(from, to int) {
	b.mu.Lock()
	defer b.mu.Unlock()

	seq := b.pending
	if b.view == ShowingCompleted {
		seq = b.completed
	}

	if from == to || from < 0 || to < 0 || from >= len(seq) || to >= len(seq) {
		return
	}

	moved := seq[from]
	seq = append(seq[:from], seq[from+1:]...)
	seq = append(seq[:to], append([]Order{moved}, seq[to:]...)...)

	if b.view == ShowingCompleted {
		b.completed = seq
	} else {
		b.pending = seq
	}
}

// ToggleView flips between the pending and completed display and returns the
// new view.
func (b *Board) ToggleView() View {
	b.mu.Lock()
	defer b.mu.Unlock()
	if b.view == ShowingPending {
		b.view = ShowingCompleted
	} else {
		b.view = ShowingPending
	}
	return b.view
}

func (b *Board) View() View {
	b.mu.Lock()
	defer b.mu.Unlock()
	return b.view
}

func (b *Board) Pending() []Order {
	b.mu.Lock()
	defer b.mu.Unlock()
	return append([]Order(nil), b.pending...)
}

func (b *Board) Completed() []Order {
	b.mu.Lock()
	defer b.mu.Unlock()
	return append([]Order(nil), b.completed...)
}

// TotalRevenue sums the total price of every order on the board, pending and
// completed alike.
func (b *Board) TotalRevenue() decimal.Decimal {
	b.mu.Lock()
	defer b.mu.Unlock()

	total := decimal.Zero
	for _, o := range b.pending {
		total = total.Add(o.TotalPrice)
	}
	for _, o := range b.completed {
		total = total.Add(o.TotalPrice)
	}
	return total
}

func (b *Board) indexOf(seq []Order, id uuid.UUID) int {
	for i, o := range seq {
		if o.ID == id {
			return i
		}
	}
	return -1
}

// persist flips the flag in the completion store. Storage failure must not
// undo the in-memory move, so it is only logged.
func (b *Board) persist(id uuid.UUID, done bool) {
	if err := b.store.Set(id, done); err != nil {
		slog.Warn("failed to persist completion flag", "order", id, "error", err)
	}
}
