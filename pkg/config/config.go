package config

import (
	"fmt"
	"net/url"
	"strings"
	"time"

	"github.com/kelseyhightower/envconfig"
)

type Config struct {
	App          AppConfig
	DB           DBConfig
	Redis        RedisConfig
	Pour         PourConfig
	Sweep        SweepConfig
	FeatureFlags FeatureFlagsConfig
}

func Load() (*Config, error) {
	var cfg Config
	if err := envconfig.Process(EnvPrefix, &cfg); err != nil {
		return nil, fmt.Errorf("parsing config: %w", err)
	}
	if err := cfg.DB.ensureDSN(); err != nil {
		return nil, err
	}
	if err := cfg.Pour.validate(); err != nil {
		return nil, err
	}
	return &cfg, nil
}

type AppConfig struct {
	Env          string `envconfig:"TAPROOM_APP_ENV" required:"true"`
	Port         string `envconfig:"TAPROOM_APP_PORT" required:"true"`
	LogLevel     string `envconfig:"TAPROOM_LOG_LEVEL" default:"info"`
	LogWarnStack bool   `envconfig:"TAPROOM_LOG_WARN_STACK" default:"false"`
}

func (a AppConfig) IsDev() bool {
	return strings.EqualFold(a.Env, AppEnvDev)
}

func (a AppConfig) IsProd() bool {
	return strings.EqualFold(a.Env, AppEnvProd)
}

type DBConfig struct {
	DSN    string `envconfig:"TAPROOM_DB_DSN"`
	Driver string `envconfig:"TAPROOM_DB_DRIVER" default:"postgres"`

	LegacyHost     string `envconfig:"TAPROOM_DB_HOST"`
	LegacyPort     int    `envconfig:"TAPROOM_DB_PORT" default:"5432"`
	LegacyUser     string `envconfig:"TAPROOM_DB_USER"`
	LegacyPassword string `envconfig:"TAPROOM_DB_PASSWORD"`
	LegacyName     string `envconfig:"TAPROOM_DB_NAME"`
	LegacySSLMode  string `envconfig:"TAPROOM_DB_SSLMODE" default:"disable"`

	MaxOpenConns    int           `envconfig:"TAPROOM_DB_MAX_OPEN_CONNS" default:"20"`
	MaxIdleConns    int           `envconfig:"TAPROOM_DB_MAX_IDLE_CONNS" default:"10"`
	ConnMaxLifetime time.Duration `envconfig:"TAPROOM_DB_CONN_MAX_LIFETIME" default:"1h"`
	ConnMaxIdleTime time.Duration `envconfig:"TAPROOM_DB_CONN_MAX_IDLE_TIME" default:"10m"`
}

type RedisConfig struct {
	URL          string        `envconfig:"TAPROOM_REDIS_URL" required:"true"`
	PoolSize     int           `envconfig:"TAPROOM_REDIS_POOL_SIZE" default:"10"`
	MinIdleConns int           `envconfig:"TAPROOM_REDIS_MIN_IDLE_CONNS" default:"2"`
	DialTimeout  time.Duration `envconfig:"TAPROOM_REDIS_DIAL_TIMEOUT" default:"5s"`
	ReadTimeout  time.Duration `envconfig:"TAPROOM_REDIS_READ_TIMEOUT" default:"5s"`
	WriteTimeout time.Duration `envconfig:"TAPROOM_REDIS_WRITE_TIMEOUT" default:"5s"`
}

// PourConfig holds the accounting knobs for pour processing.
type PourConfig struct {
	// SessionGap is the inactivity window that closes a drinking session.
	SessionGap time.Duration `envconfig:"TAPROOM_POUR_SESSION_GAP" default:"90m"`
	// ShortfallPolicy is "record" or "reject" (see grants allocator).
	ShortfallPolicy string `envconfig:"TAPROOM_POUR_SHORTFALL_POLICY" default:"record"`
	// BACDecayPerHour is the elimination rate in BAC units per hour.
	BACDecayPerHour float64 `envconfig:"TAPROOM_BAC_DECAY_PER_HOUR" default:"0.02"`
	// TicksPerLiter calibrates the flow meters.
	TicksPerLiter int64 `envconfig:"TAPROOM_METER_TICKS_PER_LITER" default:"2200"`

	LockTTL     time.Duration `envconfig:"TAPROOM_POUR_LOCK_TTL" default:"30s"`
	LockWait    time.Duration `envconfig:"TAPROOM_POUR_LOCK_WAIT" default:"10s"`
	StoreTimeout time.Duration `envconfig:"TAPROOM_POUR_STORE_TIMEOUT" default:"15s"`
}

func (p PourConfig) validate() error {
	if p.SessionGap <= 0 {
		return fmt.Errorf("%s must be positive", EnvSessionGap)
	}
	switch p.ShortfallPolicy {
	case "record", "reject":
	default:
		return fmt.Errorf("invalid shortfall policy %q (want record or reject)", p.ShortfallPolicy)
	}
	if p.BACDecayPerHour < 0 {
		return fmt.Errorf("BAC decay rate must not be negative")
	}
	if p.TicksPerLiter <= 0 {
		return fmt.Errorf("meter ticks per liter must be positive")
	}
	return nil
}

// SweepConfig controls the background maintenance worker.
type SweepConfig struct {
	Interval time.Duration `envconfig:"TAPROOM_SWEEP_INTERVAL" default:"1h"`
	LockTTL  time.Duration `envconfig:"TAPROOM_SWEEP_LOCK_TTL" default:"55m"`
}

type FeatureFlagsConfig struct {
	UseSQLite   bool `envconfig:"TAPROOM_USE_SQLITE" default:"false"`
	AutoMigrate bool `envconfig:"TAPROOM_AUTO_MIGRATE" default:"false"`
}

func (db *DBConfig) ensureDSN() error {
	if db.DSN != "" {
		return nil
	}

	missing := []string{}
	legacyValues := map[string]string{
		EnvDBHost: db.LegacyHost,
		EnvDBUser: db.LegacyUser,
		EnvDBName: db.LegacyName,
	}
	for _, env := range legacyDBEnvVars {
		if legacyValues[env] == "" {
			missing = append(missing, env)
		}
	}

	if len(missing) > 0 {
		return fmt.Errorf("either %s or %s are required", EnvDBDSN, strings.Join(missing, ", "))
	}

	userInfo := url.User(db.LegacyUser)
	if db.LegacyPassword != "" {
		userInfo = url.UserPassword(db.LegacyUser, db.LegacyPassword)
	}

	u := &url.URL{
		Scheme: "postgres",
		User:   userInfo,
		Host:   fmt.Sprintf("%s:%d", db.LegacyHost, db.LegacyPort),
		Path:   db.LegacyName,
	}

	if db.LegacySSLMode != "" {
		q := u.Query()
		q.Set("sslmode", db.LegacySSLMode)
		u.RawQuery = q.Encode()
	}

	db.DSN = u.String()
	return nil
}
