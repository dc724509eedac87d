package sheets

import (
	"context"

	"pedidos/internal/core"
)

// Ports for outbound backup adapters.
type (
	// BackupWriter appends one purchase to the external backup sheet.
	// The category label is resolved by the caller so the writer stays
	// storage-agnostic.
	BackupWriter interface {
		Append(ctx context.Context, p core.Purchase, categoryLabel string) (rowRef string, err error)
	}
)
