package metrics

import (
	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promauto"
)

var (
	ShipmentsCreatedTotal = promauto.NewCounter(prometheus.CounterOpts{
		Name: "portal_shipments_created_total",
		Help: "Total number of shipments successfully submitted for review.",
	})

	ShipmentStatusTransitionsTotal = promauto.NewCounterVec(prometheus.CounterOpts{
		Name: "portal_shipment_status_transitions_total",
		Help: "Total number of review decisions, by resulting status.",
	},
		[]string{"status"},
	)

	ShipmentsDeletedTotal = promauto.NewCounter(prometheus.CounterOpts{
		Name: "portal_shipments_deleted_total",
		Help: "Total number of shipments permanently deleted.",
	})

	UploadedFilesTotal = promauto.NewCounterVec(prometheus.CounterOpts{
		Name: "portal_uploaded_files_total",
		Help: "Total number of document files accepted, by form field.",
	},
		[]string{"field"},
	)

	UploadedBytesTotal = promauto.NewCounter(prometheus.CounterOpts{
		Name: "portal_uploaded_bytes_total",
		Help: "Total number of bytes written to blob storage.",
	})

	UploadsRejectedTotal = promauto.NewCounterVec(prometheus.CounterOpts{
		Name: "portal_uploads_rejected_total",
		Help: "Total number of rejected upload requests, by reason.",
	},
		[]string{"reason"},
	)

	ClientSignupsTotal = promauto.NewCounter(prometheus.CounterOpts{
		Name: "portal_client_signups_total",
		Help: "Total number of client accounts created.",
	})

	AdminAccountsTotal = promauto.NewCounterVec(prometheus.CounterOpts{
		Name: "portal_admin_account_changes_total",
		Help: "Total number of admin account changes, by action.",
	},
		[]string{"action"},
	)

	OutboxTasksTotal = promauto.NewCounterVec(prometheus.CounterOpts{
		Name: "portal_outbox_tasks_total",
		Help: "Total number of outbox tasks processed, by result.",
	},
		[]string{"result"},
	)

	OperationErrorsTotal = promauto.NewCounterVec(prometheus.CounterOpts{
		Name: "portal_operation_errors_total",
		Help: "Total number of errors encountered during specific operations.",
	},
		[]string{"operation"},
	)

	PendingReviewCacheItems = promauto.NewGauge(prometheus.GaugeOpts{
		Name: "portal_pending_review_cache_items",
		Help: "Current number of shipments waiting for review in the cache.",
	})
)
