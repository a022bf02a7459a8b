package metrics

import (
	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promauto"
)

// Metrics набор prometheus-метрик сервиса
type Metrics struct {
	BookingRequests    *prometheus.CounterVec
	AppointmentActions *prometheus.CounterVec
	Notifications      *prometheus.CounterVec
	RemindersFired     prometheus.Counter
	SlotsGenerated     prometheus.Histogram
	ActiveSessions     prometheus.Gauge
}

// New регистрирует метрики в default registry
func New(serviceName string) *Metrics {
	labels := prometheus.Labels{"service": serviceName}

	return &Metrics{
		BookingRequests: promauto.NewCounterVec(prometheus.CounterOpts{
			Name:        "booking_requests_total",
			Help:        "Booking requests submitted for approval, by outcome (accepted, conflict, error)",
			ConstLabels: labels,
		}, []string{"outcome"}),

		AppointmentActions: promauto.NewCounterVec(prometheus.CounterOpts{
			Name:        "appointment_actions_total",
			Help:        "Admin decisions on appointments (approve, reject, cancel, cancel_all)",
			ConstLabels: labels,
		}, []string{"action"}),

		Notifications: promauto.NewCounterVec(prometheus.CounterOpts{
			Name:        "notifications_total",
			Help:        "Outbound user notifications, by result (ok, error)",
			ConstLabels: labels,
		}, []string{"result"}),

		RemindersFired: promauto.NewCounter(prometheus.CounterOpts{
			Name:        "reminders_fired_total",
			Help:        "Appointment reminders delivered",
			ConstLabels: labels,
		}),

		SlotsGenerated: promauto.NewHistogram(prometheus.HistogramOpts{
			Name:        "slots_generated",
			Help:        "Number of slots offered per generation",
			ConstLabels: labels,
			Buckets:     []float64{0, 1, 2, 4, 8, 16, 32},
		}),

		ActiveSessions: promauto.NewGauge(prometheus.GaugeOpts{
			Name:        "booking_sessions_active",
			Help:        "Booking conversations currently in progress",
			ConstLabels: labels,
		}),
	}
}
