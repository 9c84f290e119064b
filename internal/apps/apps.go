// Package apps loads, sorts and filters the launchable applications shown in
// the drawer.
package apps

import (
	"context"
	"fmt"
	"io"
	"log/slog"
	"slices"
	"strings"
	"time"

	"github.com/google/uuid"

	"github.com/ryan-rushton/drawer/internal/source"
)

// Record is one launchable application.
type Record struct {
	Name      string `json:"name"`
	PackageID string `json:"id"`
	Icon      string `json:"icon,omitempty"`
}

// Snapshot is the full ordered list captured by a single load.
type Snapshot struct {
	ID       string
	LoadedAt time.Time
	Records  []Record
}

// Querier is the part of a source the loader needs.
type Querier interface {
	Query(ctx context.Context) ([]source.Entry, error)
}

// Load queries q and returns its entries sorted by name. It never fails: a
// query error or panic is logged and yields an empty snapshot, which callers
// cannot tell apart from a host with no launchable apps.
func Load(ctx context.Context, q Querier, logger *slog.Logger) (snap Snapshot) {
	if logger == nil {
		logger = slog.New(slog.NewTextHandler(io.Discard, nil))
	}
	snap = Snapshot{ID: uuid.New().String()}
	started := time.Now()

	defer func() {
		if r := recover(); r != nil {
			logger.Error("app query panicked", "load", snap.ID, "panic", fmt.Sprint(r))
			snap.Records = nil
		}
		snap.LoadedAt = time.Now()
	}()

	entries, err := q.Query(ctx)
	if err != nil {
		logger.Error("app query failed", "load", snap.ID, "err", err)
		return snap
	}

	records := make([]Record, 0, len(entries))
	for _, e := range entries {
		records = append(records, Record{Name: e.Name, PackageID: e.ID, Icon: e.Icon})
	}
	SortByName(records)
	snap.Records = records

	logger.Info("apps loaded", "load", snap.ID, "count", len(records), "took", time.Since(started))
	return snap
}

// SortByName sorts records by lowercased name. Records with equal names keep
// their relative order.
func SortByName(records []Record) {
	slices.SortStableFunc(records, func(a, b Record) int {
		return strings.Compare(strings.ToLower(a.Name), strings.ToLower(b.Name))
	})
}

// Filter returns the records whose name or package ID contains query,
// ignoring case. A blank query returns all unchanged.
func Filter(all []Record, query string) []Record {
	if strings.TrimSpace(query) == "" {
		return all
	}
	q := strings.ToLower(query)
	out := make([]Record, 0, len(all))
	for _, r := range all {
		if strings.Contains(strings.ToLower(r.Name), q) || strings.Contains(strings.ToLower(r.PackageID), q) {
			out = append(out, r)
		}
	}
	return out
}
