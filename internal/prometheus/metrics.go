// internal/prometheus/metrics.go - Prometheus metrics
package prometheus

import (
	"context"
	"errors"
	"fmt"
	"log/slog"
	"net/http"
	"strconv"
	"time"

	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promhttp"

	"windexer-jito/internal/types"
)

type Metrics struct {
	enabled bool

	validationResults   *prometheus.CounterVec
	validationErrors    *prometheus.CounterVec
	rewardsCredited     prometheus.Counter
	totalRewardsGauge   prometheus.Gauge
	consensusPercentage prometheus.Gauge
	lastSlotGauge       prometheus.Gauge
}

// New creates the exporter and registers its collectors on reg. A disabled
// exporter registers nothing and ignores every event.
func New(enabled bool, reg prometheus.Registerer) (*Metrics, error) {
	if !enabled {
		return &Metrics{enabled: false}, nil
	}

	m := &Metrics{
		enabled: true,
		validationResults: prometheus.NewCounterVec(
			prometheus.CounterOpts{
				Name: "windexer_validations_total",
				Help: "Total number of finished validations by result (valid, invalid, error)",
			},
			[]string{"result"},
		),
		validationErrors: prometheus.NewCounterVec(
			prometheus.CounterOpts{
				Name: "windexer_validation_errors_total",
				Help: "Total number of failed validations by failing stage",
			},
			[]string{"kind"},
		),
		rewardsCredited: prometheus.NewCounter(
			prometheus.CounterOpts{
				Name: "windexer_rewards_credited_total",
				Help: "Sum of rewards credited by this process",
			},
		),
		totalRewardsGauge: prometheus.NewGauge(
			prometheus.GaugeOpts{
				Name: "windexer_total_rewards",
				Help: "Accumulated rewards held by the reward distributor",
			},
		),
		consensusPercentage: prometheus.NewGauge(
			prometheus.GaugeOpts{
				Name: "windexer_consensus_percentage",
				Help: "Consensus percentage of the most recently validated slot",
			},
		),
		lastSlotGauge: prometheus.NewGauge(
			prometheus.GaugeOpts{
				Name: "windexer_last_validated_slot",
				Help: "Slot of the most recently finished validation",
			},
		),
	}

	for _, c := range []prometheus.Collector{
		m.validationResults,
		m.validationErrors,
		m.rewardsCredited,
		m.totalRewardsGauge,
		m.consensusPercentage,
		m.lastSlotGauge,
	} {
		if err := reg.Register(c); err != nil {
			return nil, fmt.Errorf("failed to register metric: %w", err)
		}
	}

	return m, nil
}

func (m *Metrics) ObserveValidation(ev types.ValidationEvent) {
	if !m.enabled {
		return
	}

	m.validationResults.WithLabelValues(ev.Outcome()).Inc()
	m.lastSlotGauge.Set(float64(ev.Data.Slot))

	if ev.Err != nil {
		m.validationErrors.WithLabelValues(types.KindOf(ev.Err).Label()).Inc()
		return
	}

	m.consensusPercentage.Set(ev.Result.ConsensusPercentage)
	if ev.Rewarded {
		m.rewardsCredited.Add(float64(ev.Reward))
		m.totalRewardsGauge.Set(float64(ev.TotalRewards))
	}
}

// Serve exposes gatherer on /metrics until ctx is cancelled.
func Serve(ctx context.Context, port int, gatherer prometheus.Gatherer, logger *slog.Logger) error {
	mux := http.NewServeMux()
	mux.Handle("/metrics", promhttp.HandlerFor(gatherer, promhttp.HandlerOpts{}))

	server := &http.Server{
		Addr:              ":" + strconv.Itoa(port),
		Handler:           mux,
		ReadHeaderTimeout: 5 * time.Second,
	}

	go func() {
		<-ctx.Done()
		shutdownCtx, cancel := context.WithTimeout(context.Background(), 5*time.Second)
		defer cancel()
		if err := server.Shutdown(shutdownCtx); err != nil {
			logger.Warn("Failed to shut down metrics server", "error", err)
		}
	}()

	logger.Info("Serving Prometheus metrics", "port", port)
	if err := server.ListenAndServe(); err != nil && !errors.Is(err, http.ErrServerClosed) {
		return fmt.Errorf("metrics server failed: %w", err)
	}
	return nil
}
