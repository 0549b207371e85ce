package metrics

import (
	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promauto"
)

var (
	SalesCommitted = promauto.NewCounter(prometheus.CounterOpts{
		Namespace: "hypermart",
		Subsystem: "sales",
		Name:      "committed_total",
		Help:      "Number of sale transactions committed.",
	})

	SaleLinesCommitted = promauto.NewCounter(prometheus.CounterOpts{
		Namespace: "hypermart",
		Subsystem: "sales",
		Name:      "lines_committed_total",
		Help:      "Number of sale line items written.",
	})

	SaleCommitFailures = promauto.NewCounterVec(prometheus.CounterOpts{
		Namespace: "hypermart",
		Subsystem: "sales",
		Name:      "commit_failures_total",
		Help:      "Sale commits rolled back, labelled by error code.",
	}, []string{"code"})

	RestocksRecorded = promauto.NewCounter(prometheus.CounterOpts{
		Namespace: "hypermart",
		Subsystem: "inventory",
		Name:      "restocks_total",
		Help:      "Number of restock operations recorded.",
	})

	LowStockAlerts = promauto.NewCounter(prometheus.CounterOpts{
		Namespace: "hypermart",
		Subsystem: "inventory",
		Name:      "low_stock_alerts_total",
		Help:      "Items that dropped below the low-stock threshold during a sale.",
	})

	ScansDecoded = promauto.NewCounter(prometheus.CounterOpts{
		Namespace: "hypermart",
		Subsystem: "scanner",
		Name:      "decoded_total",
		Help:      "Barcodes decoded by scanner sessions.",
	})
)
