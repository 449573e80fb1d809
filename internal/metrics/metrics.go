package metrics

import (
	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promauto"
)

// HTTP Metrics
var (
	HTTPRequestsTotal = promauto.NewCounterVec(
		prometheus.CounterOpts{
			Name: MetricNameHTTPRequestsTotal,
			Help: "Total number of HTTP requests processed",
		},
		[]string{LabelMethod, LabelPath, LabelStatus},
	)

	HTTPRequestDuration = promauto.NewHistogramVec(
		prometheus.HistogramOpts{
			Name:    MetricNameHTTPRequestDuration,
			Help:    "HTTP request latency in seconds",
			Buckets: HTTPLatencyBuckets,
		},
		[]string{LabelMethod, LabelPath},
	)

	HTTPRequestsInFlight = promauto.NewGauge(
		prometheus.GaugeOpts{
			Name: MetricNameHTTPRequestsInFlight,
			Help: "Number of HTTP requests currently being served",
		},
	)
)

// Business Metrics
var (
	ContainersOpened = promauto.NewCounterVec(
		prometheus.CounterOpts{
			Name: MetricNameContainersOpened,
			Help: "Containers opened, by container ID",
		},
		[]string{LabelContainer},
	)

	BetsSettled = promauto.NewCounterVec(
		prometheus.CounterOpts{
			Name: MetricNameBetsSettled,
			Help: "Bets settled, by game and verdict",
		},
		[]string{LabelGame, LabelVerdict},
	)

	ItemsCrafted = promauto.NewCounterVec(
		prometheus.CounterOpts{
			Name: MetricNameItemsCrafted,
			Help: "Items crafted, by recipe",
		},
		[]string{LabelRecipe},
	)

	DailyBonusesClaimed = promauto.NewCounter(
		prometheus.CounterOpts{
			Name: MetricNameDailyBonusesClaimed,
			Help: "Daily bonuses successfully claimed",
		},
	)

	RankPromotions = promauto.NewCounter(
		prometheus.CounterOpts{
			Name: MetricNameRankPromotions,
			Help: "Rank promotions applied",
		},
	)

	SeasonLevelUps = promauto.NewCounter(
		prometheus.CounterOpts{
			Name: MetricNameSeasonLevelUps,
			Help: "Season pass levels gained",
		},
	)

	NotificationsDropped = promauto.NewCounter(
		prometheus.CounterOpts{
			Name: MetricNameNotificationsDropped,
			Help: "Outbound notifications that failed delivery and were dropped",
		},
	)
)
