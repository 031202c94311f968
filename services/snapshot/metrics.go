// Copyright (C) 2025 Aleutian AI (jinterlante@aleutian.ai)
// This program is free software: you can redistribute it and/or modify
// it under the terms of the GNU Affero General Public License as published by
// the Free Software Foundation, either version 3 of the License, or
// (at your option) any later version.
// See the LICENSE.txt file for the full license text.
//
// NOTE: This work is subject to additional terms under AGPL v3 Section 7.
// See the NOTICE.txt file for details regarding AI system attribution.

package snapshot

import (
	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promauto"
)

var (
	// snapshotRequests counts snapshot fetches by structure and outcome.
	snapshotRequests = promauto.NewCounterVec(prometheus.CounterOpts{
		Name: "structviz_snapshot_requests_total",
		Help: "Snapshot requests served, by structure and outcome.",
	}, []string{"structure", "outcome"})

	// operationsTotal counts remote operations by structure, op, and outcome.
	operationsTotal = promauto.NewCounterVec(prometheus.CounterOpts{
		Name: "structviz_operations_total",
		Help: "Remote structure operations, by structure, op, and outcome.",
	}, []string{"structure", "op", "outcome"})

	// wsConnections gauges live websocket subscribers.
	wsConnections = promauto.NewGauge(prometheus.GaugeOpts{
		Name: "structviz_ws_connections",
		Help: "Currently connected snapshot websocket subscribers.",
	})
)
