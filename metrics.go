// Copyright (C) 2019-2025, Lux Industries Inc. All rights reserved.
// See the file LICENSE for licensing terms.

package claim

import (
	"github.com/luxfi/metric"
)

// ledgerMetrics tracks ledger operation statistics
type ledgerMetrics struct {
	Received      metric.Counter
	Rejected      metric.Counter
	Claims        metric.Counter
	ClaimFailures metric.Counter
	ClaimedTotal  metric.Counter
	Pending       metric.Gauge
}

func newLedgerMetrics(registerer metric.Registerer, namespace string) (*ledgerMetrics, error) {
	registry, ok := registerer.(metric.Registry)
	if !ok {
		// Create metrics without registry if not available
		return &ledgerMetrics{
			Received:      metric.NewCounter(metric.CounterOpts{Namespace: namespace, Name: "messages_received"}),
			Rejected:      metric.NewCounter(metric.CounterOpts{Namespace: namespace, Name: "messages_rejected"}),
			Claims:        metric.NewCounter(metric.CounterOpts{Namespace: namespace, Name: "claims"}),
			ClaimFailures: metric.NewCounter(metric.CounterOpts{Namespace: namespace, Name: "claim_failures"}),
			ClaimedTotal:  metric.NewCounter(metric.CounterOpts{Namespace: namespace, Name: "claimed_total"}),
			Pending:       metric.NewGauge(metric.GaugeOpts{Namespace: namespace, Name: "pending_entitlements"}),
		}, nil
	}

	metricsInstance := metric.NewWithRegistry(namespace, registry)
	return &ledgerMetrics{
		Received:      metricsInstance.NewCounter("messages_received", "Number of accepted cross-chain messages"),
		Rejected:      metricsInstance.NewCounter("messages_rejected", "Number of rejected cross-chain messages"),
		Claims:        metricsInstance.NewCounter("claims", "Number of successful claims"),
		ClaimFailures: metricsInstance.NewCounter("claim_failures", "Number of failed claims"),
		ClaimedTotal:  metricsInstance.NewCounter("claimed_total", "Sum of claimed amounts"),
		Pending:       metricsInstance.NewGauge("pending_entitlements", "Number of entitlements awaiting claim"),
	}, nil
}
