// Contentgate - Age-Gated Content Rating and Analytics
// Copyright 2026 Tom F. (tomtom215)
// SPDX-License-Identifier: AGPL-3.0-or-later
// https://github.com/tomtom215/contentgate

/*
Package supervisor runs the long-lived services of `contentgate serve` under a
suture v4 supervisor tree.

	RootSupervisor ("contentgate")
	├── StorageSupervisor ("storage-layer")
	│   └── TextfileService (if METRICS_TEXTFILE is set)
	└── APISupervisor ("api-layer")
	    └── HTTPServerService

Crashed services restart with suture's backoff. Supervisor events are logged
through sutureslog using the zerolog-backed slog handler from the logging
package.
*/
package supervisor
