package config

import (
	"fmt"
	"os"
	"strings"

	"github.com/spf13/viper"
)

type Mode string

// Development credentials. Offline installs may run with them; online
// mode refuses to start while either is in use.
const (
	DevHMACSecret    = "supersecret-dev-key"
	DevAdminPassHash = "$2y$12$pyZAiWaTfVtM7UElIRStvOC3gNbnp70nmQU4eYopLGBfCJr1DOvji"
)

const (
	ModeOffline Mode = "offline"
	ModeOnline  Mode = "online"
)

type Config struct {
	Mode     Mode
	HTTPAddr string

	DBDriver string // sqlite|postgres|none
	DBDSN    string
	SiteID   string

	BlobBasePath string // sample templates
	PublicDir    string

	MaxUploadBytes int64

	EnableLocalAuth bool
	AuthHMACSecret  string
	AdminUser       string
	AdminPassHash   string // bcrypt

	CORSOriginsOnline  []string
	CORSOriginsOffline []string

	ItemTitleLabel string
	EscapeText     bool

	Logger LoggerConfig
}

type LoggerConfig struct {
	Level  string // debug|info
	Env    string // production|development
	Output string // stdout|stderr
}

// FromEnv reads configuration from the environment and, when QTIGEN_CONFIG
// names a file, from that file first. Environment values win.
func FromEnv() (Config, error) {
	v := viper.New()
	setDefaults(v)
	v.AutomaticEnv()

	if path := os.Getenv("QTIGEN_CONFIG"); path != "" {
		v.SetConfigFile(path)
		if err := v.ReadInConfig(); err != nil {
			return Config{}, fmt.Errorf("read config %s: %w", path, err)
		}
	}
	return fromViper(v), nil
}

func setDefaults(v *viper.Viper) {
	v.SetDefault("MODE", string(ModeOffline))
	v.SetDefault("HTTP_ADDR", ":3002")
	v.SetDefault("DB_DRIVER", "sqlite")
	v.SetDefault("DB_DSN", "")
	v.SetDefault("SITE_ID", "local")
	v.SetDefault("BLOB_BASE_PATH", "./template_txt")
	v.SetDefault("PUBLIC_DIR", "./public")
	v.SetDefault("MAX_UPLOAD_BYTES", 10<<20)
	v.SetDefault("ENABLE_LOCAL_AUTH", true)
	v.SetDefault("AUTH_HMAC_SECRET", DevHMACSecret)
	v.SetDefault("ADMIN_USER", "admin")
	v.SetDefault("ADMIN_PASS_HASH", DevAdminPassHash)
	v.SetDefault("CORS_ORIGINS_ONLINE", "https://qti.mindengage.ai")
	v.SetDefault("CORS_ORIGINS_OFFLINE", "http://localhost:3000,http://localhost:3002")
	v.SetDefault("ITEM_TITLE_LABEL", "Câu")
	v.SetDefault("ESCAPE_TEXT", false)
	v.SetDefault("LOG_LEVEL", "info")
	v.SetDefault("LOG_ENV", "development")
	v.SetDefault("LOG_OUTPUT", "stdout")
}

func fromViper(v *viper.Viper) Config {
	mode := Mode(strings.ToLower(v.GetString("MODE")))
	if mode != ModeOnline {
		mode = ModeOffline
	}
	return Config{
		Mode:               mode,
		HTTPAddr:           v.GetString("HTTP_ADDR"),
		DBDriver:           strings.ToLower(v.GetString("DB_DRIVER")),
		DBDSN:              v.GetString("DB_DSN"),
		SiteID:             v.GetString("SITE_ID"),
		BlobBasePath:       v.GetString("BLOB_BASE_PATH"),
		PublicDir:          v.GetString("PUBLIC_DIR"),
		MaxUploadBytes:     v.GetInt64("MAX_UPLOAD_BYTES"),
		EnableLocalAuth:    v.GetBool("ENABLE_LOCAL_AUTH"),
		AuthHMACSecret:     v.GetString("AUTH_HMAC_SECRET"),
		AdminUser:          v.GetString("ADMIN_USER"),
		AdminPassHash:      v.GetString("ADMIN_PASS_HASH"),
		CORSOriginsOnline:  csv(v.GetString("CORS_ORIGINS_ONLINE")),
		CORSOriginsOffline: csv(v.GetString("CORS_ORIGINS_OFFLINE")),
		ItemTitleLabel:     v.GetString("ITEM_TITLE_LABEL"),
		EscapeText:         v.GetBool("ESCAPE_TEXT"),
		Logger: LoggerConfig{
			Level:  strings.ToLower(v.GetString("LOG_LEVEL")),
			Env:    strings.ToLower(v.GetString("LOG_ENV")),
			Output: strings.ToLower(v.GetString("LOG_OUTPUT")),
		},
	}
}

// CORSOrigins returns the allowed origins for the configured mode.
func (c Config) CORSOrigins() []string {
	if c.Mode == ModeOnline {
		return c.CORSOriginsOnline
	}
	return c.CORSOriginsOffline
}

// DevCredentials lists the local auth settings still holding their
// development values. Empty when local auth is off.
func (c Config) DevCredentials() []string {
	if !c.EnableLocalAuth {
		return nil
	}
	var keys []string
	if c.AuthHMACSecret == DevHMACSecret {
		keys = append(keys, "AUTH_HMAC_SECRET")
	}
	if c.AdminPassHash == DevAdminPassHash {
		keys = append(keys, "ADMIN_PASS_HASH")
	}
	return keys
}

// Validate rejects settings the server must not start with.
func (c Config) Validate() error {
	if c.EnableLocalAuth && c.AuthHMACSecret == "" {
		return fmt.Errorf("AUTH_HMAC_SECRET is empty")
	}
	if keys := c.DevCredentials(); c.Mode == ModeOnline && len(keys) > 0 {
		return fmt.Errorf("online mode with development credentials: set %s", strings.Join(keys, ", "))
	}
	return nil
}

func csv(v string) []string {
	parts := strings.Split(v, ",")
	out := make([]string, 0, len(parts))
	for _, p := range parts {
		if s := strings.TrimSpace(p); s != "" {
			out = append(out, s)
		}
	}
	return out
}
