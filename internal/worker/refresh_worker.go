package worker

import (
	"context"
	"log/slog"
	"time"

	"backoffice/internal/board"
)

// RefreshWorker reloads the live board snapshot when the calendar day rolls
// over, so yesterday's orders fall off the board without a manual refresh.
type RefreshWorker struct {
	board    *board.Board
	interval time.Duration
	day      time.Time
}

func NewRefreshWorker(b *board.Board, interval time.Duration) *RefreshWorker {
	return &RefreshWorker{
		board:    b,
		interval: interval,
		day:      startOfDay(time.Now()),
	}
}

func (w *RefreshWorker) Start(ctx context.Context) {
	slog.Info("starting board refresh worker", "interval", w.interval)
	ticker := time.NewTicker(w.interval)
	defer ticker.Stop()

	for {
		select {
		case <-ctx.Done():
			slog.Info("board refresh worker stopped")
			return
		case <-ticker.C:
			today := startOfDay(time.Now())
			if today.Equal(w.day) {
				continue
			}
			if err := w.board.LoadSnapshot(ctx); err != nil {
				slog.Error("day rollover refresh failed", "error", err)
				continue
			}
			w.day = today
			slog.Info("board rolled over to new day", "day", today.Format("2006-01-02"))
		}
	}
}

func startOfDay(t time.Time) time.Time {
	y, m, d := t.Date()
	return time.Date(y, m, d, 0, 0, 0, 0, t.Location())
}
