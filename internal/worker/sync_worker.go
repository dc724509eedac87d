// Package worker exports purchases to the Google Sheets backup. Messages
// arrive over AMQP; a periodic reconciliation pass catches anything the
// queue missed.
package worker

import (
	"context"
	"fmt"
	"log/slog"
	"time"

	"pedidos/internal/amqp"
	"pedidos/internal/core"
	"pedidos/internal/sheets"
	"pedidos/internal/storage"
)

type BackupWorker struct {
	storage   *storage.SQLiteRepository
	backup    sheets.BackupWriter
	batchSize int
}

func NewBackupWorker(storage *storage.SQLiteRepository, backup sheets.BackupWriter, batchSize int) *BackupWorker {
	return &BackupWorker{
		storage:   storage,
		backup:    backup,
		batchSize: batchSize,
	}
}

// HandleSyncMessage processes one purchase sync message from the queue.
// The purchase is re-read from storage so the exported row reflects the
// latest version, not the message snapshot.
func (w *BackupWorker) HandleSyncMessage(ctx context.Context, msg *amqp.PurchaseSyncMessage) error {
	slog.InfoContext(ctx, "Processing sync message",
		"id", msg.ID,
		"version", msg.Version)

	purchase, err := w.storage.GetPurchase(ctx, msg.ID)
	if err != nil {
		return fmt.Errorf("get purchase from storage: %w", err)
	}

	return w.exportPurchase(ctx, purchase, msg.Version)
}

// ProcessPending exports purchases still waiting for backup. This is the
// safety net for lost queue messages.
func (w *BackupWorker) ProcessPending(ctx context.Context) error {
	pending, err := w.storage.GetPendingSyncPurchases(ctx, w.batchSize)
	if err != nil {
		return fmt.Errorf("get pending purchases: %w", err)
	}

	if len(pending) == 0 {
		return nil
	}

	slog.InfoContext(ctx, "Processing pending purchases", "count", len(pending))

	for _, p := range pending {
		purchase, err := w.storage.GetPurchase(ctx, p.ID)
		if err != nil {
			slog.ErrorContext(ctx, "Failed to get purchase", "id", p.ID, "error", err)
			if err := w.storage.MarkSyncError(ctx, p.ID); err != nil {
				slog.ErrorContext(ctx, "Failed to mark sync error", "id", p.ID, "error", err)
			}
			continue
		}

		if err := w.exportPurchase(ctx, purchase, p.Version); err != nil {
			slog.ErrorContext(ctx, "Failed to export purchase", "id", p.ID, "error", err)
			continue
		}
	}

	return nil
}

// StartupSyncCheck drains the pending backlog at worker startup, covering
// queue downtime. Uses a larger batch than the periodic pass.
func (w *BackupWorker) StartupSyncCheck(ctx context.Context) error {
	pending, err := w.storage.GetPendingSyncPurchases(ctx, w.batchSize*5)
	if err != nil {
		return fmt.Errorf("get pending purchases for startup check: %w", err)
	}

	if len(pending) == 0 {
		slog.InfoContext(ctx, "No pending purchases found on startup")
		return nil
	}

	slog.InfoContext(ctx, "Found pending purchases on startup, processing...",
		"count", len(pending))

	synced := 0
	failed := 0
	for _, p := range pending {
		purchase, err := w.storage.GetPurchase(ctx, p.ID)
		if err != nil {
			slog.ErrorContext(ctx, "Failed to get purchase for startup sync",
				"id", p.ID, "error", err)
			if err := w.storage.MarkSyncError(ctx, p.ID); err != nil {
				slog.ErrorContext(ctx, "Failed to mark sync error", "id", p.ID, "error", err)
			}
			failed++
			continue
		}

		if err := w.exportPurchase(ctx, purchase, p.Version); err != nil {
			slog.ErrorContext(ctx, "Failed to export purchase during startup",
				"id", p.ID, "error", err)
			failed++
			continue
		}
		synced++
	}

	slog.InfoContext(ctx, "Startup sync completed",
		"total", len(pending),
		"synced", synced,
		"errors", failed)

	return nil
}

// RunPeriodicReconciliation processes the pending backlog on the given
// interval until ctx is done.
func (w *BackupWorker) RunPeriodicReconciliation(ctx context.Context, interval time.Duration) error {
	ticker := time.NewTicker(interval)
	defer ticker.Stop()

	for {
		select {
		case <-ctx.Done():
			return ctx.Err()
		case <-ticker.C:
			if err := w.ProcessPending(ctx); err != nil {
				slog.ErrorContext(ctx, "Periodic reconciliation failed", "error", err)
			}
		}
	}
}

func (w *BackupWorker) exportPurchase(ctx context.Context, p core.Purchase, version int64) error {
	label := w.categoryLabel(ctx, p.CategoryID)

	ref, err := w.backup.Append(ctx, p, label)
	if err != nil {
		if markErr := w.storage.MarkSyncError(ctx, p.ID); markErr != nil {
			slog.ErrorContext(ctx, "Failed to mark sync error", "id", p.ID, "error", markErr)
		}
		return fmt.Errorf("append to backup: %w", err)
	}

	if err := w.storage.MarkSynced(ctx, p.ID, version); err != nil {
		// The export itself succeeded, so don't fail the message.
		slog.ErrorContext(ctx, "Failed to mark as synced", "id", p.ID, "error", err)
	}

	slog.InfoContext(ctx, "Purchase exported",
		"id", p.ID,
		"sheets_ref", ref,
		"dish", p.Dish,
		"paid_cents", p.Paid.Cents)

	return nil
}

func (w *BackupWorker) categoryLabel(ctx context.Context, id string) string {
	categories, err := w.storage.ListCategories(ctx)
	if err != nil {
		slog.WarnContext(ctx, "Failed to list categories for export, using id", "error", err)
		return id
	}
	return core.ResolveCategory(categories, id).Label
}
