package handler

import (
	"errors"
	"log/slog"
	"net/http"

	"github.com/go-chi/chi/v5"
	"github.com/google/uuid"

	"backoffice/internal/board"
)

// GetBoardHandler returns the full live board state: both buckets, the active
// view and the day's revenue.
func GetBoardHandler(b *board.Board) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		pending := b.Pending()
		completed := b.Completed()

		writeJSON(w, http.StatusOK, map[string]any{
			"view":           b.View(),
			"pending":        pending,
			"completed":      completed,
			"pendingCount":   len(pending),
			"completedCount": len(completed),
			"totalRevenue":   b.TotalRevenue(),
		})
	}
}

// RefreshBoardHandler reloads the snapshot, replacing all board state and
// discarding any manual ordering.
func RefreshBoardHandler(b *board.Board) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		if err := b.LoadSnapshot(r.Context()); err != nil {
			if errors.Is(err, board.ErrSnapshotFetch) {
				slog.Error("board refresh failed", "error", err)
				http.Error(w, "failed to fetch orders", http.StatusBadGateway)
				return
			}
			http.Error(w, "internal error", http.StatusInternalServerError)
			return
		}

		w.WriteHeader(http.StatusNoContent)
	}
}

// ToggleOrderDoneHandler flips completion for one order. Unknown ids succeed
// silently; the order simply is not on the board anymore.
func ToggleOrderDoneHandler(b *board.Board) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		id, err := uuid.Parse(chi.URLParam(r, "id"))
		if err != nil {
			http.Error(w, "invalid order id", http.StatusBadRequest)
			return
		}

		b.ToggleCompletion(id)
		w.WriteHeader(http.StatusNoContent)
	}
}

type reorderRequest struct {
	From int `json:"from"`
	To   int `json:"to"`
}

// ReorderBoardHandler moves an order within the currently displayed bucket.
// Out-of-range positions are a no-op, matching a drag released outside any
// drop target.
func ReorderBoardHandler(b *board.Board) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		var req reorderRequest
		if !decodeJSON(w, r, &req) {
			return
		}

		b.Reorder(req.From, req.To)
		w.WriteHeader(http.StatusNoContent)
	}
}

func ToggleBoardViewHandler(b *board.Board) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		writeJSON(w, http.StatusOK, map[string]board.View{"view": b.ToggleView()})
	}
}
