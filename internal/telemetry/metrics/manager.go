package metrics

import (
	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promauto"
)

type Manager struct {
	// counters
	CounterRegistrations    prometheus.Counter
	CounterLogins           *prometheus.CounterVec
	CounterWorkoutsLogged   *prometheus.CounterVec
	CounterRemoteCallErrors *prometheus.CounterVec

	// histograms
	HistRemoteCallDuration *prometheus.HistogramVec
}

func NewTestManager() *Manager {
	return NewManager("ut2tracker", "test_cli", prometheus.NewRegistry())
}

func NewTestManagerAndRegistry() (*Manager, *prometheus.Registry) {
	reg := prometheus.NewRegistry()
	return NewManager("ut2tracker", "test_cli", reg), reg
}

func NewManager(namespace, subsystem string, reg prometheus.Registerer) *Manager {
	factory := promauto.With(reg)

	counterRegistrations := factory.NewCounter(prometheus.CounterOpts{
		Namespace: namespace,
		Subsystem: subsystem,
		Name:      "registrations",
		Help:      "The total number of registered users",
	})
	counterLogins := factory.NewCounterVec(prometheus.CounterOpts{
		Namespace: namespace,
		Subsystem: subsystem,
		Name:      "logins",
		Help:      "The total number of login attempts, by result",
	}, []string{"result"})
	counterWorkoutsLogged := factory.NewCounterVec(prometheus.CounterOpts{
		Namespace: namespace,
		Subsystem: subsystem,
		Name:      "workouts_logged",
		Help:      "The total number of logged workouts, by workout type",
	}, []string{"workout"})
	counterRemoteCallErrors := factory.NewCounterVec(prometheus.CounterOpts{
		Namespace: namespace,
		Subsystem: subsystem,
		Name:      "remote_call_errors",
		Help:      "The total number of failed spreadsheet service calls",
	}, []string{"operation"})

	histRemoteCallDuration := factory.NewHistogramVec(
		prometheus.HistogramOpts{
			Namespace: namespace,
			Subsystem: subsystem,
			Buckets: []float64{
				0.01, 0.05, 0.1, 0.25, 0.5,
				1, 2.5, 5, 10, 30, 60,
			},
			Name: "remote_call_duration_seconds",
			Help: "Duration of spreadsheet service calls in seconds",
		},
		[]string{"operation"},
	)

	return &Manager{
		CounterRegistrations:    counterRegistrations,
		CounterLogins:           counterLogins,
		CounterWorkoutsLogged:   counterWorkoutsLogged,
		CounterRemoteCallErrors: counterRemoteCallErrors,
		HistRemoteCallDuration:  histRemoteCallDuration,
	}
}
