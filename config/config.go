package config

import (
	"fmt"
	"os"
	"path/filepath"
	"strconv"
	"strings"
	"time"

	"github.com/joho/godotenv"
	"gopkg.in/yaml.v3"

	"crm_bridge/models"
)

type Config struct {
	DatabaseURL string
	DBPath      string
	LogLevel    string
	LogPath     string
	APIAddr     string
	Browser     BrowserConfig
	Proxy       ProxyConfig
	Media       MediaConfig
	Scheduler   SchedulerConfig
	Tenants     map[string]*TenantConfig
	TenantsDir  string
}

type BrowserConfig struct {
	Headless      bool
	Install       bool
	UploadTimeout time.Duration
}

type ProxyConfig struct {
	URL string
}

type MediaConfig struct {
	Provider   string
	Cloudflare CloudflareConfig
	S3         S3Config
}

type CloudflareConfig struct {
	AccountID   string
	APIToken    string
	AccountHash string
	Variant     string
}

type S3Config struct {
	Bucket          string
	Region          string
	Endpoint        string
	AccessKeyID     string
	SecretAccessKey string
	PublicBaseURL   string
}

type SchedulerConfig struct {
	MediaRetryCron string
}

// TenantConfig is one legacy CRM installation.
type TenantConfig struct {
	ID                 string `yaml:"id"`
	Name               string `yaml:"name"`
	CRMURL             string `yaml:"crm_url"`
	EditURLPattern     string `yaml:"edit_url_pattern"`
	LeadEditURLPattern string `yaml:"lead_edit_url_pattern"`
	CreateURL          string `yaml:"create_url"`
	Username           string `yaml:"username"`
	Password           string `yaml:"password"`
}

// Credentials returns the legacy login, or a ConfigurationError-worthy error
// when anything is missing.
func (t *TenantConfig) Credentials() (models.Credentials, error) {
	var missing []string
	if t.CRMURL == "" {
		missing = append(missing, "crm_url")
	}
	if t.Username == "" {
		missing = append(missing, "username")
	}
	if t.Password == "" {
		missing = append(missing, "password")
	}
	if len(missing) > 0 {
		return models.Credentials{}, fmt.Errorf("tenant %s missing %s", t.ID, strings.Join(missing, ", "))
	}
	return models.Credentials{BaseURL: t.CRMURL, Username: t.Username, Password: t.Password}, nil
}

func Load() (*Config, error) {
	_ = godotenv.Load()

	cfg := &Config{
		DatabaseURL: os.Getenv("DATABASE_URL"),
		DBPath:      getEnv("DB_PATH", "bridge.db"),
		LogLevel:    getEnv("LOG_LEVEL", "info"),
		LogPath:     getEnv("LOG_PATH", "bridge.log"),
		APIAddr:     getEnv("API_ADDR", ":8090"),
		Browser: BrowserConfig{
			Headless:      getEnvBool("BROWSER_HEADLESS", true),
			Install:       getEnvBool("BROWSER_INSTALL", false),
			UploadTimeout: getEnvDuration("UPLOAD_TIMEOUT", 120*time.Second),
		},
		Proxy: ProxyConfig{
			URL: os.Getenv("PROXY_URL"),
		},
		Media: MediaConfig{
			Provider: getEnv("MEDIA_PROVIDER", "cloudflare"),
			Cloudflare: CloudflareConfig{
				AccountID:   os.Getenv("CLOUDFLARE_ACCOUNT_ID"),
				APIToken:    os.Getenv("CLOUDFLARE_API_TOKEN"),
				AccountHash: os.Getenv("CLOUDFLARE_ACCOUNT_HASH"),
				Variant:     getEnv("CLOUDFLARE_VARIANT", "public"),
			},
			S3: S3Config{
				Bucket:          os.Getenv("S3_BUCKET"),
				Region:          getEnv("S3_REGION", "us-east-1"),
				Endpoint:        os.Getenv("S3_ENDPOINT"),
				AccessKeyID:     os.Getenv("S3_ACCESS_KEY_ID"),
				SecretAccessKey: os.Getenv("S3_SECRET_ACCESS_KEY"),
				PublicBaseURL:   os.Getenv("S3_PUBLIC_BASE_URL"),
			},
		},
		Scheduler: SchedulerConfig{
			MediaRetryCron: os.Getenv("MEDIA_RETRY_CRON"),
		},
		Tenants:    make(map[string]*TenantConfig),
		TenantsDir: getEnv("TENANTS_DIR", "config/tenants"),
	}

	if err := cfg.loadTenantConfigs(); err != nil {
		return nil, err
	}

	return cfg, nil
}

// Tenant returns the named tenant's settings.
func (c *Config) Tenant(id string) (*TenantConfig, bool) {
	t, ok := c.Tenants[id]
	return t, ok
}

func (c *Config) loadTenantConfigs() error {
	entries, err := os.ReadDir(c.TenantsDir)
	if err != nil {
		if os.IsNotExist(err) {
			return nil
		}
		return err
	}

	for _, entry := range entries {
		if entry.IsDir() || filepath.Ext(entry.Name()) != ".yaml" {
			continue
		}

		path := filepath.Join(c.TenantsDir, entry.Name())
		tenant, err := loadTenant(path)
		if err != nil {
			return fmt.Errorf("tenant config %s: %w", path, err)
		}

		c.Tenants[tenant.ID] = tenant
	}

	return nil
}

func loadTenant(path string) (*TenantConfig, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, err
	}

	// Secrets stay in the environment: password: ${ACME_CRM_PASSWORD}
	data = []byte(os.ExpandEnv(string(data)))

	var tenant TenantConfig
	if err := yaml.Unmarshal(data, &tenant); err != nil {
		return nil, err
	}
	if tenant.ID == "" {
		tenant.ID = strings.TrimSuffix(filepath.Base(path), filepath.Ext(path))
	}
	tenant.CRMURL = strings.TrimRight(tenant.CRMURL, "/")
	return &tenant, nil
}

func getEnv(key, defaultVal string) string {
	if val := os.Getenv(key); val != "" {
		return val
	}
	return defaultVal
}

func getEnvInt(key string, defaultVal int) int {
	if val := os.Getenv(key); val != "" {
		if i, err := strconv.Atoi(val); err == nil {
			return i
		}
	}
	return defaultVal
}

func getEnvBool(key string, defaultVal bool) bool {
	if val := os.Getenv(key); val != "" {
		if b, err := strconv.ParseBool(val); err == nil {
			return b
		}
	}
	return defaultVal
}

func getEnvDuration(key string, defaultVal time.Duration) time.Duration {
	if val := os.Getenv(key); val != "" {
		if d, err := time.ParseDuration(val); err == nil {
			return d
		}
		if secs := getEnvInt(key, -1); secs >= 0 {
			return time.Duration(secs) * time.Second
		}
	}
	return defaultVal
}
