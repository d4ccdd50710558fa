package constants

// Database pool settings
const (
	DatabaseSSLMode         = "disable"
	DatabaseMaxOpenConns    = 25
	DatabaseMaxIdleConns    = 5
	DatabaseConnMaxLifetime = 30 // minutes
)

// Redis cache keys
const (
	// CacheKeyLastSchedulingResult holds the serialized outcome list of the
	// most recent scheduling run. Replaced wholesale on every successful run.
	CacheKeyLastSchedulingResult = "scheduling:last_result"
)

// Asynq task types
const (
	TaskTypeSchedulingRun = "scheduling:run"
)

// Scheduling defaults
const (
	// MinutesPerDay bounds interval minutes: valid values are [0, 1440].
	MinutesPerDay = 1440

	// DateLayout is the canonical calendar-date format used across the API.
	DateLayout = "2006-01-02"
)
