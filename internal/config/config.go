package config

import (
	"fmt"
	"os"
	"runtime"
	"strings"
	"time"

	"github.com/spf13/pflag"
	"github.com/spf13/viper"

	"policyparser/internal/domain"
)

// ProcessingDateLayout is the accepted processing date format (mm/dd/yyyy).
const ProcessingDateLayout = "01/02/2006"

// Config holds all application configuration.
type Config struct {
	Run     RunConfig
	Input   InputConfig
	Output  OutputConfig
	Master  MasterConfig
	Extract ExtractConfig
	Report  ReportConfig
	Server  ServerConfig
	DB      DBConfig
	S3      S3Config
	Log     LogConfig
}

// RunConfig holds batch run settings.
type RunConfig struct {
	ProcessingDate  time.Time
	EnabledInsurers []domain.Variant
	Workers         int
	TextDumpDir     string
}

// InputConfig names the documents of a batch run. At most one of Files and Dir is set.
type InputConfig struct {
	Files []string
	Dir   string
}

// OutputConfig names the report files of a batch run.
type OutputConfig struct {
	ReportFile string
	ErrorFile  string
}

// MasterConfig locates the branch master.
type MasterConfig struct {
	BranchFile string
}

// ExtractConfig holds text extraction backend settings.
type ExtractConfig struct {
	Binary  string
	Timeout time.Duration
}

// ReportConfig holds report rendering settings.
type ReportConfig struct {
	DefaultMobile string
}

// ServerConfig holds HTTP server settings.
type ServerConfig struct {
	Port         string
	ReadTimeout  time.Duration
	WriteTimeout time.Duration
	Environment  string
	MaxUploadMB  int64
	// AllowedOrigins lists browser origins accepted by CORS.
	AllowedOrigins []string
}

// DBConfig holds PostgreSQL connection settings. Persistence is off unless Enabled.
type DBConfig struct {
	Enabled  bool
	Host     string
	Port     int
	User     string
	Password string
	Name     string
	SSLMode  string
	MaxOpen  int
	MaxIdle  int
}

// DSN returns the PostgreSQL connection string.
func (d *DBConfig) DSN() string {
	return fmt.Sprintf(
		"postgres://%s:%s@%s:%d/%s?sslmode=%s",
		d.User, d.Password, d.Host, d.Port, d.Name, d.SSLMode,
	)
}

// S3Config holds report upload settings. Uploads are off unless Enabled.
type S3Config struct {
	Enabled       bool
	Region        string
	Bucket        string
	Prefix        string
	Endpoint      string
	AccessKey     string
	SecretKey     string
	PresignExpiry int64
}

// LogConfig holds logging settings.
type LogConfig struct {
	Level  string
	Format string
}

// flagKeys maps CLI flag names to configuration keys.
var flagKeys = map[string]string{
	"files":           "input.files",
	"dir":             "input.dir",
	"output":          "output.report_file",
	"error":           "output.error_file",
	"branches":        "master.branch_file",
	"gentxt":          "run.text_dump_dir",
	"processing-date": "run.processing_date",
	"workers":         "run.workers",
	"enable":          "run.enabled_insurers",
	"log-level":       "log.level",
}

// Load reads configuration from environment variables with the POLICYPARSER_ prefix.
func Load() (*Config, error) {
	return LoadWithFlags(nil)
}

// LoadWithFlags reads configuration like Load; flags in fs that were set on the command line
// take precedence over the environment.
func LoadWithFlags(fs *pflag.FlagSet) (*Config, error) {
	v := viper.New()
	v.SetEnvPrefix("POLICYPARSER")
	v.SetEnvKeyReplacer(strings.NewReplacer(".", "_"))
	v.AutomaticEnv()

	// Run defaults
	v.SetDefault("run.processing_date", "")
	v.SetDefault("run.enabled_insurers", "sbi,new_india,icici_lombard")
	v.SetDefault("run.workers", runtime.NumCPU())
	v.SetDefault("run.text_dump_dir", "")

	// Input/output defaults
	v.SetDefault("input.files", []string{})
	v.SetDefault("input.dir", "")
	v.SetDefault("output.report_file", "")
	v.SetDefault("output.error_file", "errors.csv")
	v.SetDefault("master.branch_file", "")

	// Extraction defaults
	v.SetDefault("extract.binary", "pdftotext")
	v.SetDefault("extract.timeout", "60s")
	v.SetDefault("report.default_mobile", "8826294213")

	// Server defaults
	v.SetDefault("server.port", ":8080")
	v.SetDefault("server.read_timeout", "30s")
	v.SetDefault("server.write_timeout", "120s")
	v.SetDefault("server.environment", "development")
	v.SetDefault("server.max_upload_mb", 20)
	v.SetDefault("server.allowed_origins", "http://localhost:3000,http://127.0.0.1:3000")

	// DB defaults
	v.SetDefault("db.enabled", false)
	v.SetDefault("db.host", "localhost")
	v.SetDefault("db.port", 5432)
	v.SetDefault("db.user", "policyparser")
	v.SetDefault("db.password", "policyparser_secret")
	v.SetDefault("db.name", "policyparser")
	v.SetDefault("db.sslmode", "disable")
	v.SetDefault("db.max_open", 10)
	v.SetDefault("db.max_idle", 5)

	// S3 defaults
	v.SetDefault("s3.enabled", false)
	v.SetDefault("s3.region", "ap-south-1")
	v.SetDefault("s3.bucket", "policyparser-reports")
	v.SetDefault("s3.prefix", "reports")
	v.SetDefault("s3.endpoint", "")
	v.SetDefault("s3.presign_expiry", 3600)

	// Log defaults
	v.SetDefault("log.level", "info")
	v.SetDefault("log.format", "console")

	// Bind environment variables explicitly for nested keys
	envBindings := map[string]string{
		"run.processing_date":    "POLICYPARSER_RUN_PROCESSING_DATE",
		"run.enabled_insurers":   "POLICYPARSER_RUN_ENABLED_INSURERS",
		"run.workers":            "POLICYPARSER_RUN_WORKERS",
		"run.text_dump_dir":      "POLICYPARSER_RUN_TEXT_DUMP_DIR",
		"input.files":            "POLICYPARSER_INPUT_FILES",
		"input.dir":              "POLICYPARSER_INPUT_DIR",
		"output.report_file":     "POLICYPARSER_OUTPUT_REPORT_FILE",
		"output.error_file":      "POLICYPARSER_OUTPUT_ERROR_FILE",
		"master.branch_file":     "POLICYPARSER_MASTER_BRANCH_FILE",
		"extract.binary":         "POLICYPARSER_EXTRACT_BINARY",
		"extract.timeout":        "POLICYPARSER_EXTRACT_TIMEOUT",
		"report.default_mobile":  "POLICYPARSER_REPORT_DEFAULT_MOBILE",
		"server.port":            "POLICYPARSER_SERVER_PORT",
		"server.read_timeout":    "POLICYPARSER_SERVER_READ_TIMEOUT",
		"server.write_timeout":   "POLICYPARSER_SERVER_WRITE_TIMEOUT",
		"server.environment":     "POLICYPARSER_SERVER_ENVIRONMENT",
		"server.max_upload_mb":   "POLICYPARSER_SERVER_MAX_UPLOAD_MB",
		"server.allowed_origins": "POLICYPARSER_SERVER_ALLOWED_ORIGINS",
		"db.enabled":             "POLICYPARSER_DB_ENABLED",
		"db.host":                "POLICYPARSER_DB_HOST",
		"db.port":                "POLICYPARSER_DB_PORT",
		"db.user":                "POLICYPARSER_DB_USER",
		"db.password":            "POLICYPARSER_DB_PASSWORD",
		"db.name":                "POLICYPARSER_DB_NAME",
		"db.sslmode":             "POLICYPARSER_DB_SSLMODE",
		"db.max_open":            "POLICYPARSER_DB_MAX_OPEN",
		"db.max_idle":            "POLICYPARSER_DB_MAX_IDLE",
		"s3.enabled":             "POLICYPARSER_S3_ENABLED",
		"s3.region":              "POLICYPARSER_S3_REGION",
		"s3.bucket":              "POLICYPARSER_S3_BUCKET",
		"s3.prefix":              "POLICYPARSER_S3_PREFIX",
		"s3.endpoint":            "POLICYPARSER_S3_ENDPOINT",
		"s3.access_key":          "POLICYPARSER_S3_ACCESS_KEY",
		"s3.secret_key":          "POLICYPARSER_S3_SECRET_KEY",
		"s3.presign_expiry":      "POLICYPARSER_S3_PRESIGN_EXPIRY",
		"log.level":              "POLICYPARSER_LOG_LEVEL",
		"log.format":             "POLICYPARSER_LOG_FORMAT",
	}
	for key, env := range envBindings {
		_ = v.BindEnv(key, env)
	}

	if fs != nil {
		for name, key := range flagKeys {
			if f := fs.Lookup(name); f != nil && f.Changed {
				if err := v.BindPFlag(key, f); err != nil {
					return nil, fmt.Errorf("config: binding flag %s: %w", name, err)
				}
			}
		}
	}

	cfg := &Config{}

	processingDate, err := ParseProcessingDate(v.GetString("run.processing_date"))
	if err != nil {
		return nil, err
	}
	enabled, err := parseVariants(listValue(v, "run.enabled_insurers"))
	if err != nil {
		return nil, err
	}
	workers := v.GetInt("run.workers")
	if workers < 1 {
		workers = 1
	}
	cfg.Run = RunConfig{
		ProcessingDate:  processingDate,
		EnabledInsurers: enabled,
		Workers:         workers,
		TextDumpDir:     v.GetString("run.text_dump_dir"),
	}
	cfg.Input = InputConfig{
		Files: listValue(v, "input.files"),
		Dir:   v.GetString("input.dir"),
	}
	cfg.Output = OutputConfig{
		ReportFile: v.GetString("output.report_file"),
		ErrorFile:  v.GetString("output.error_file"),
	}
	cfg.Master = MasterConfig{
		BranchFile: v.GetString("master.branch_file"),
	}
	cfg.Extract = ExtractConfig{
		Binary:  v.GetString("extract.binary"),
		Timeout: v.GetDuration("extract.timeout"),
	}
	cfg.Report = ReportConfig{
		DefaultMobile: v.GetString("report.default_mobile"),
	}

	// Railway/Heroku/Render set a PORT env var. Use it if POLICYPARSER_SERVER_PORT is not explicitly set.
	serverPort := v.GetString("server.port")
	if port := os.Getenv("PORT"); port != "" && os.Getenv("POLICYPARSER_SERVER_PORT") == "" {
		serverPort = ":" + port
	}
	cfg.Server = ServerConfig{
		Port:           serverPort,
		ReadTimeout:    v.GetDuration("server.read_timeout"),
		WriteTimeout:   v.GetDuration("server.write_timeout"),
		Environment:    v.GetString("server.environment"),
		MaxUploadMB:    v.GetInt64("server.max_upload_mb"),
		AllowedOrigins: listValue(v, "server.allowed_origins"),
	}
	cfg.DB = DBConfig{
		Enabled:  v.GetBool("db.enabled"),
		Host:     v.GetString("db.host"),
		Port:     v.GetInt("db.port"),
		User:     v.GetString("db.user"),
		Password: v.GetString("db.password"),
		Name:     v.GetString("db.name"),
		SSLMode:  v.GetString("db.sslmode"),
		MaxOpen:  v.GetInt("db.max_open"),
		MaxIdle:  v.GetInt("db.max_idle"),
	}
	cfg.S3 = S3Config{
		Enabled:       v.GetBool("s3.enabled"),
		Region:        v.GetString("s3.region"),
		Bucket:        v.GetString("s3.bucket"),
		Prefix:        strings.Trim(v.GetString("s3.prefix"), "/"),
		Endpoint:      v.GetString("s3.endpoint"),
		AccessKey:     v.GetString("s3.access_key"),
		SecretKey:     v.GetString("s3.secret_key"),
		PresignExpiry: v.GetInt64("s3.presign_expiry"),
	}
	cfg.Log = LogConfig{
		Level:  v.GetString("log.level"),
		Format: v.GetString("log.format"),
	}

	return cfg, nil
}

// ParseProcessingDate parses a mm/dd/yyyy processing date. An empty string yields the zero time.
func ParseProcessingDate(s string) (time.Time, error) {
	s = strings.TrimSpace(s)
	if s == "" {
		return time.Time{}, nil
	}
	t, err := time.Parse(ProcessingDateLayout, s)
	if err != nil {
		return time.Time{}, fmt.Errorf("%w: %q, expected mm/dd/yyyy", domain.ErrInvalidProcessingDate, s)
	}
	return t, nil
}

// listValue reads a list from a flag (already split) or from a comma-separated env value.
func listValue(v *viper.Viper, key string) []string {
	switch val := v.Get(key).(type) {
	case []string:
		return splitList(val)
	case string:
		return splitList([]string{val})
	default:
		return splitList(v.GetStringSlice(key))
	}
}

// splitList flattens comma-separated entries, dropping blanks.
func splitList(items []string) []string {
	var out []string
	for _, item := range items {
		for _, s := range strings.Split(item, ",") {
			if s = strings.TrimSpace(s); s != "" {
				out = append(out, s)
			}
		}
	}
	return out
}

func parseVariants(names []string) ([]domain.Variant, error) {
	out := make([]domain.Variant, 0, len(names))
	for _, name := range names {
		variant, err := domain.ParseVariant(name)
		if err != nil {
			return nil, fmt.Errorf("config: enabled insurers: %w", err)
		}
		out = append(out, variant)
	}
	return out, nil
}
