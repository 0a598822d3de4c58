package util

import (
	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promauto"
)

type metrics struct {
	roundStartedCounter   prometheus.Counter
	roundCompletedCounter prometheus.Counter
	cardsDrawnCounter     prometheus.Counter
	emptyShoeDrawCounter  prometheus.Counter
	humanTimeoutCounter   prometheus.Counter
	activeTablesGauge     prometheus.Gauge
}

func (m *metrics) RoundStarted() {
	m.roundStartedCounter.Inc()
}

func (m *metrics) RoundCompleted() {
	m.roundCompletedCounter.Inc()
}

func (m *metrics) CardDrawn() {
	m.cardsDrawnCounter.Inc()
}

func (m *metrics) EmptyShoeDraw() {
	m.emptyShoeDrawCounter.Inc()
}

func (m *metrics) HumanTimedOut() {
	m.humanTimeoutCounter.Inc()
}

func (m *metrics) SetActiveTableCount(count int) {
	m.activeTablesGauge.Set(float64(count))
}

var Metrics = &metrics{
	roundStartedCounter: promauto.NewCounter(prometheus.CounterOpts{
		Name: "rounds_started_total",
		Help: "Total number of blackjack rounds started",
	}),
	roundCompletedCounter: promauto.NewCounter(prometheus.CounterOpts{
		Name: "rounds_completed_total",
		Help: "Total number of blackjack rounds sealed",
	}),
	cardsDrawnCounter: promauto.NewCounter(prometheus.CounterOpts{
		Name: "cards_drawn_total",
		Help: "Total number of cards drawn from the shoe",
	}),
	emptyShoeDrawCounter: promauto.NewCounter(prometheus.CounterOpts{
		Name: "empty_shoe_draws_total",
		Help: "Total number of draws attempted against an exhausted shoe",
	}),
	humanTimeoutCounter: promauto.NewCounter(prometheus.CounterOpts{
		Name: "human_move_timeouts_total",
		Help: "Total number of human turns that timed out into a forced stand",
	}),
	activeTablesGauge: promauto.NewGauge(prometheus.GaugeOpts{
		Name: "active_tables_count",
		Help: "Count of the entries in the table manager activeTables map",
	}),
}
