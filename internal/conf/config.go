package conf

// Database holds the relational store settings. Type selects the gorm driver.
type Database struct {
	Type     string `env:"DB_TYPE" envDefault:"sqlite3"`
	Host     string `env:"DB_HOST" envDefault:"localhost"`
	Port     int    `env:"DB_PORT" envDefault:"0"`
	User     string `env:"DB_USER"`
	Password string `env:"DB_PASS"`
	Name     string `env:"DB_NAME" envDefault:"batiplan"`
	DBFile   string `env:"DB_FILE" envDefault:"data/batiplan.db"`
	SSLMode  string `env:"DB_SSL_MODE" envDefault:"disable"`
}

type Scheme struct {
	Address string `env:"HTTP_ADDR" envDefault:"0.0.0.0"`
	Port    int    `env:"HTTP_PORT" envDefault:"5244"`
}

type LogConfig struct {
	Enable     bool   `env:"LOG_ENABLE" envDefault:"true"`
	Name       string `env:"LOG_NAME" envDefault:"data/log/batiplan.log"`
	Level      string `env:"LOG_LEVEL" envDefault:"info"`
	MaxSize    int    `env:"LOG_MAX_SIZE" envDefault:"50"`
	MaxBackups int    `env:"LOG_MAX_BACKUPS" envDefault:"30"`
	MaxAge     int    `env:"LOG_MAX_AGE" envDefault:"28"`
	Compress   bool   `env:"LOG_COMPRESS" envDefault:"false"`
}

type Session struct {
	Secret   string `env:"SESSION_SECRET"`
	TTLHours int    `env:"SESSION_TTL_HOURS" envDefault:"48"`
}

// Renderer points at the remote HTML to PDF service (Gotenberg compatible).
type Renderer struct {
	URL            string `env:"PDF_RENDERER_URL" envDefault:"http://localhost:3000"`
	TimeoutSeconds int    `env:"PDF_RENDERER_TIMEOUT" envDefault:"30"`
}

// Planning carries the business knobs of the scheduling feature.
// OverbookingPolicy is one of allow, warn, reject.
type Planning struct {
	Timezone          string `env:"PLANNING_TIMEZONE" envDefault:"Europe/Paris"`
	OverbookingPolicy string `env:"PLANNING_OVERBOOKING_POLICY" envDefault:"allow"`
}

type Config struct {
	Scheme   Scheme
	Database Database
	Log      LogConfig
	Session  Session
	Renderer Renderer
	Planning Planning
	Debug    bool `env:"DEBUG" envDefault:"false"`
}

func DefaultConfig() *Config {
	return &Config{
		Scheme: Scheme{
			Address: "0.0.0.0",
			Port:    5244,
		},
		Database: Database{
			Type:    "sqlite3",
			DBFile:  "data/batiplan.db",
			SSLMode: "disable",
		},
		Log: LogConfig{
			Enable:     true,
			Name:       "data/log/batiplan.log",
			Level:      "info",
			MaxSize:    50,
			MaxBackups: 30,
			MaxAge:     28,
		},
		Session: Session{
			TTLHours: 48,
		},
		Renderer: Renderer{
			URL:            "http://localhost:3000",
			TimeoutSeconds: 30,
		},
		Planning: Planning{
			Timezone:          "Europe/Paris",
			OverbookingPolicy: "allow",
		},
	}
}
