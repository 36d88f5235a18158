package config

import "time"

const (
	ServiceName = "reeltrack"

	// DefaultCursorKey is only acceptable outside production.
	DefaultCursorKey = "reeltrack-dev-cursor-key-32bytes"

	DefaultPageSize    = 20
	DefaultMaxPageSize = 100

	DefaultMinRating         = 0.0
	DefaultMaxRating         = 10.0
	DefaultMaxCommentLength  = 4000
	DefaultMaxListNameLength = 120
	DefaultCatalogCacheTTL   = 5 * time.Minute

	EventsDriverNone   = "none"
	EventsDriverMemory = "memory"
	EventsDriverNATS   = "nats"
	EventsDriverKafka  = "kafka"
)
