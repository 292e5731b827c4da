package config

// EnvPrefix is passed to envconfig when processing the environment.
const EnvPrefix = ""

const (
	AppEnvDev  = "development"
	AppEnvProd = "production"
)

const (
	EnvAppEnv     = "TAPROOM_APP_ENV"
	EnvPort       = "TAPROOM_APP_PORT"
	EnvDBDSN      = "TAPROOM_DB_DSN"
	EnvDBHost     = "TAPROOM_DB_HOST"
	EnvDBUser     = "TAPROOM_DB_USER"
	EnvDBName     = "TAPROOM_DB_NAME"
	EnvRedisURL   = "TAPROOM_REDIS_URL"
	EnvSessionGap = "TAPROOM_POUR_SESSION_GAP"
)

var legacyDBEnvVars = []string{EnvDBHost, EnvDBUser, EnvDBName}
