// Contentgate - Age-Gated Content Rating and Analytics
// Copyright 2026 Tom F. (tomtom215)
// SPDX-License-Identifier: AGPL-3.0-or-later
// https://github.com/tomtom215/contentgate

/*
Package audit records rating and filtering decisions so every visibility
decision can be reconstructed after the fact.

Each item that passes through the content filter produces one Decision: the
resolved rating, which rule produced it, why, whether the item was shown, and
the ceiling of the allowed set that was applied.

# Backends

  - MemoryStore: bounded in-process ring, used by default and in tests
  - BadgerStore: durable ledger on BadgerDB, keyed by timestamp so range
    scans return decisions in time order

Keys in BadgerDB:

	decision:<unix-nanos, zero padded>:<id>  -> JSON Decision
	decision_id:<id>                         -> primary key

# Recording

Recorder adapts a Store to the filter's decision sink. Write failures are
logged and counted but never affect filtering: the ledger observes decisions,
it does not gate them.

	store, err := audit.NewStore(audit.BackendBadger, "/var/lib/contentgate/audit", 0)
	if err != nil {
	    return err
	}
	defer store.Close()

	f := filter.New(classifier, filter.WithSink(audit.NewRecorder(store, audit.BackendBadger)))
*/
package audit
