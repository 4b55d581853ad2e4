package metrics

import "github.com/prometheus/client_golang/prometheus"

var (
	PaymentsCreatedTotal = prometheus.NewCounter(
		prometheus.CounterOpts{
			Name: "payments_created_total",
			Help: "Payments successfully opened with the processor",
		},
	)

	PaymentsFailedTotal = prometheus.NewCounter(
		prometheus.CounterOpts{
			Name: "payments_failed_total",
			Help: "Payment creations that failed upstream",
		},
	)

	IPNTotal = prometheus.NewCounterVec(
		prometheus.CounterOpts{
			Name: "ipn_received_total",
			Help: "IPN notifications by outcome",
		},
		[]string{"outcome"}, // accepted | ignored | rejected | probe
	)

	CredentialsMintedTotal = prometheus.NewCounter(
		prometheus.CounterOpts{
			Name: "download_credentials_minted_total",
			Help: "Download credentials minted for paid orders",
		},
	)

	DownloadsTotal = prometheus.NewCounterVec(
		prometheus.CounterOpts{
			Name: "downloads_total",
			Help: "Download attempts by outcome",
		},
		[]string{"outcome"}, // served | denied
	)
)

func Register() {
	prometheus.MustRegister(
		PaymentsCreatedTotal,
		PaymentsFailedTotal,
		IPNTotal,
		CredentialsMintedTotal,
		DownloadsTotal,
	)
}
