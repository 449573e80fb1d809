package metrics

// Metric names
const (
	MetricNameHTTPRequestsTotal    = "http_requests_total"
	MetricNameHTTPRequestDuration  = "http_request_duration_seconds"
	MetricNameHTTPRequestsInFlight = "http_requests_in_flight"

	MetricNameContainersOpened     = "containers_opened_total"
	MetricNameBetsSettled          = "bets_settled_total"
	MetricNameItemsCrafted         = "items_crafted_total"
	MetricNameDailyBonusesClaimed  = "daily_bonuses_claimed_total"
	MetricNameRankPromotions       = "rank_promotions_total"
	MetricNameSeasonLevelUps       = "season_level_ups_total"
	MetricNameNotificationsDropped = "notifications_dropped_total"
)

// Label names
const (
	LabelMethod    = "method"
	LabelPath      = "path"
	LabelStatus    = "status"
	LabelContainer = "container"
	LabelGame      = "game"
	LabelVerdict   = "verdict"
	LabelRecipe    = "recipe"
)

// HTTPLatencyBuckets are the histogram buckets for request duration in seconds.
var HTTPLatencyBuckets = []float64{0.005, 0.01, 0.025, 0.05, 0.1, 0.25, 0.5, 1, 2.5}
