// Contentgate - Age-Gated Content Rating and Analytics
// Copyright 2026 Tom F. (tomtom215)
// SPDX-License-Identifier: AGPL-3.0-or-later
// https://github.com/tomtom215/contentgate

package main

import (
	"context"
	"errors"
	"fmt"
	"strconv"
	"time"

	"github.com/spf13/cobra"

	"github.com/tomtom215/contentgate/internal/audit"
	"github.com/tomtom215/contentgate/internal/rating"
)

// errVolatileLedger is returned when the audit command is pointed at the
// memory backend, which never outlives a process.
var errVolatileLedger = errors.New("audit ledger is not persistent; set audit.backend to badger")

type auditFlags struct {
	correlationID string
	itemID        string
	rating        string
	source        string
	allowed       string
	since         time.Duration
	limit         int
}

func newAuditCmd(a *app) *cobra.Command {
	var flags auditFlags

	cmd := &cobra.Command{
		Use:   "audit",
		Short: "Print recorded rating decisions, most recent first",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			return a.runAudit(cmd.Context(), flags)
		},
	}
	cmd.Flags().StringVar(&flags.correlationID, "correlation-id", "", "Only decisions of this run or request")
	cmd.Flags().StringVar(&flags.itemID, "item-id", "", "Only decisions for this item")
	cmd.Flags().StringVar(&flags.rating, "rating", "", "Only decisions with this rating (G, PG, PG-13, R, NC-17)")
	cmd.Flags().StringVar(&flags.source, "source", "", "Only decisions from this rule (declared, metadata, keyword, default, fallback)")
	cmd.Flags().StringVar(&flags.allowed, "allowed", "", "Only kept (true) or excluded (false) items")
	cmd.Flags().DurationVar(&flags.since, "since", 0, "Only decisions newer than this age, e.g. 24h")
	cmd.Flags().IntVar(&flags.limit, "limit", 100, "Maximum decisions to print (0 for all)")
	return cmd
}

func (f auditFlags) queryFilter(now time.Time) (audit.QueryFilter, error) {
	filter := audit.QueryFilter{
		CorrelationID: f.correlationID,
		ItemID:        f.itemID,
		Source:        f.source,
	}

	if f.rating != "" {
		r, err := rating.Parse(f.rating)
		if err != nil {
			return filter, err
		}
		filter.Rating = r.String()
	}
	if f.allowed != "" {
		allowed, err := strconv.ParseBool(f.allowed)
		if err != nil {
			return filter, fmt.Errorf("--allowed must be true or false, got %q", f.allowed)
		}
		filter.Allowed = &allowed
	}
	if f.since < 0 {
		return filter, fmt.Errorf("--since must not be negative, got %s", f.since)
	}
	if f.since > 0 {
		start := now.Add(-f.since)
		filter.StartTime = &start
	}
	if f.limit < 0 {
		return filter, fmt.Errorf("--limit must not be negative, got %d", f.limit)
	}
	filter.Limit = f.limit
	return filter, nil
}

func (a *app) runAudit(ctx context.Context, flags auditFlags) error {
	cfg := a.cfg.Audit
	if cfg.Backend != audit.BackendBadger {
		return errVolatileLedger
	}

	filter, err := flags.queryFilter(time.Now())
	if err != nil {
		return err
	}

	store, err := openAuditStore(cfg)
	if err != nil {
		return err
	}
	defer func() { _ = store.Close() }()

	decisions, err := store.Query(ctx, filter)
	if err != nil {
		return fmt.Errorf("query audit decisions: %w", err)
	}

	data, err := audit.ExportJSON(decisions)
	if err != nil {
		return fmt.Errorf("encode audit decisions: %w", err)
	}
	if _, err := fmt.Fprintln(a.stdout, string(data)); err != nil {
		return fmt.Errorf("write audit decisions: %w", err)
	}
	return nil
}
