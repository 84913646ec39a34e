package contract

import (
	"fmt"
	"strings"
	"time"

	"github.com/drojas/deskmetrics/schema"
)

// Defaults for configuration values.
const (
	DefaultResultLimit  = 10
	DefaultPrecision    = 2
	DefaultPollInterval = 2 * time.Minute
	MinPollInterval     = 5 * time.Second

	// Service-level constants for the report month. Both are tunable so
	// the dashboard survives staffing and quota changes.
	DefaultExpectedMonthlyTotal = 372
	DefaultHeadcount            = 7
	DefaultWorkdaysPerWeek      = 5
)

// DateTimeFormat is the timestamp layout used in CSV output.
const DateTimeFormat = "2006-01-02 15:04:05"

// Config holds the validated, runtime configuration.
type Config struct {
	APIBaseURL string
	APIToken   string

	Output     schema.OutputMode
	OutputFile string
	Precision  int
	Color      bool
	Width      int
	Limit      int

	// Now is the injected clock for all time-relative computations.
	Now time.Time

	ReportYear  int
	ReportMonth time.Month

	Technicians []string
	Aliases     map[string]string
	Weeks       []schema.WeekRange
	Months      []schema.MonthRange

	ExpectedMonthlyTotal float64
	Headcount            float64
	WorkdaysPerWeek      float64

	PollInterval time.Duration

	CacheBackend     schema.DatabaseBackend
	CacheDBConnect   string
	HistoryBackend   schema.DatabaseBackend
	HistoryDBConnect string

	SortBy   schema.SortKey
	SortDesc bool

	Search      string
	Status      string
	TechFilter  string
	StoreFilter string
	BrandFilter string
	MonthArg    string
	FromArg     string
	ToArg       string

	// Ratings is the survey rating filter set, values 1 through 5 plus the
	// 0 sentinel for tickets without a survey. Empty means no filtering.
	Ratings []int
}

// ConfigRawInput holds the raw, unvalidated configuration from all sources
// (file, env, flags). Viper unmarshals into this struct.
type ConfigRawInput struct {
	APIBaseURL string `mapstructure:"api-url"`
	APIToken   string `mapstructure:"token"`

	OutputStr  string `mapstructure:"output"`
	OutputFile string `mapstructure:"output-file"`
	Precision  int    `mapstructure:"precision"`
	ColorStr   string `mapstructure:"color"`
	Width      int    `mapstructure:"width"`
	Limit      int    `mapstructure:"limit"`

	ReportMonthStr string `mapstructure:"report-month"`

	Technicians []string           `mapstructure:"technicians"`
	Aliases     map[string]string  `mapstructure:"aliases"`
	Weeks       []WeekRawInput     `mapstructure:"weeks"`

	ExpectedMonthlyTotal float64 `mapstructure:"sla-expected-total"`
	Headcount            float64 `mapstructure:"sla-headcount"`
	WorkdaysPerWeek      float64 `mapstructure:"workdays-per-week"`

	PollIntervalStr string `mapstructure:"poll-interval"`

	CacheBackendStr   string `mapstructure:"cache-backend"`
	CacheDBConnect    string `mapstructure:"cache-db-connect"`
	HistoryBackendStr string `mapstructure:"history-backend"`
	HistoryDBConnect  string `mapstructure:"history-db-connect"`

	SortByStr string `mapstructure:"sort-by"`
	SortDesc  bool   `mapstructure:"desc"`

	Search      string `mapstructure:"search"`
	Status      string `mapstructure:"status"`
	TechFilter  string `mapstructure:"tech"`
	StoreFilter string `mapstructure:"store"`
	BrandFilter string `mapstructure:"brand"`
	MonthArg    string `mapstructure:"month"`
	FromArg     string `mapstructure:"from"`
	ToArg       string `mapstructure:"to"`
	Ratings     []int  `mapstructure:"rating"`
}

// WeekRawInput is one week boundary entry from the config file.
type WeekRawInput struct {
	Label string `mapstructure:"label"`
	Start string `mapstructure:"start"`
	End   string `mapstructure:"end"`
}

// Clone returns a deep copy of the config, safe to mutate independently.
func (c *Config) Clone() *Config {
	clone := *c
	clone.Technicians = append([]string(nil), c.Technicians...)
	clone.Aliases = make(map[string]string, len(c.Aliases))
	for k, v := range c.Aliases {
		clone.Aliases[k] = v
	}
	clone.Weeks = append([]schema.WeekRange(nil), c.Weeks...)
	clone.Months = append([]schema.MonthRange(nil), c.Months...)
	clone.Ratings = append([]int(nil), c.Ratings...)
	return &clone
}

// ProcessAndValidate converts raw input into a validated Config.
// It populates cfg in place and returns the first validation error found.
func ProcessAndValidate(cfg *Config, input *ConfigRawInput) error {
	cfg.APIBaseURL = strings.TrimRight(strings.TrimSpace(input.APIBaseURL), "/")
	cfg.APIToken = input.APIToken
	cfg.OutputFile = input.OutputFile
	cfg.Width = input.Width
	cfg.CacheDBConnect = input.CacheDBConnect
	cfg.HistoryDBConnect = input.HistoryDBConnect
	cfg.SortDesc = input.SortDesc
	cfg.Search = input.Search
	cfg.Status = input.Status
	cfg.TechFilter = input.TechFilter
	cfg.StoreFilter = input.StoreFilter
	cfg.BrandFilter = input.BrandFilter
	cfg.MonthArg = input.MonthArg
	cfg.FromArg = input.FromArg
	cfg.ToArg = input.ToArg

	if cfg.Now.IsZero() {
		cfg.Now = time.Now()
	}

	steps := []func(*Config, *ConfigRawInput) error{
		validateBaseURL,
		validateOutput,
		validatePrecision,
		validateLimit,
		validateColor,
		validateReportMonth,
		validateRoster,
		validateWeeks,
		validateSLAConstants,
		validatePollInterval,
		validateBackends,
		validateSortKey,
		validateRatings,
	}
	for _, step := range steps {
		if err := step(cfg, input); err != nil {
			return err
		}
	}
	return nil
}

func validateBaseURL(cfg *Config, _ *ConfigRawInput) error {
	if cfg.APIBaseURL == "" {
		return fmt.Errorf("api-url must not be empty")
	}
	if !strings.HasPrefix(cfg.APIBaseURL, "http://") && !strings.HasPrefix(cfg.APIBaseURL, "https://") {
		return fmt.Errorf("api-url must start with http:// or https://, got %q", cfg.APIBaseURL)
	}
	return nil
}

func validateOutput(cfg *Config, input *ConfigRawInput) error {
	mode := schema.OutputMode(input.OutputStr)
	if _, ok := schema.ValidOutputModes[mode]; !ok {
		return fmt.Errorf("invalid output mode: %s. Must be text, csv, or json", input.OutputStr)
	}
	cfg.Output = mode
	return nil
}

func validatePrecision(cfg *Config, input *ConfigRawInput) error {
	if input.Precision < 0 || input.Precision > 6 {
		return fmt.Errorf("precision must be between 0 and 6, got %d", input.Precision)
	}
	cfg.Precision = input.Precision
	return nil
}

func validateLimit(cfg *Config, input *ConfigRawInput) error {
	if input.Limit <= 0 {
		return fmt.Errorf("limit must be positive, got %d", input.Limit)
	}
	cfg.Limit = input.Limit
	return nil
}

func validateColor(cfg *Config, input *ConfigRawInput) error {
	enabled, err := ParseBoolString(input.ColorStr)
	if err != nil {
		return fmt.Errorf("invalid color setting: %w", err)
	}
	cfg.Color = enabled
	return nil
}

// validateReportMonth parses the "YYYY-MM" report month. When absent, the
// report month is the month of the injected clock.
func validateReportMonth(cfg *Config, input *ConfigRawInput) error {
	if input.ReportMonthStr == "" {
		cfg.ReportYear = cfg.Now.Year()
		cfg.ReportMonth = cfg.Now.Month()
	} else {
		parsed, err := time.Parse("2006-01", input.ReportMonthStr)
		if err != nil {
			return fmt.Errorf("invalid report-month %q, expected YYYY-MM: %w", input.ReportMonthStr, err)
		}
		cfg.ReportYear = parsed.Year()
		cfg.ReportMonth = parsed.Month()
	}
	cfg.Months = schema.DefaultMonthTable(cfg.ReportYear, cfg.ReportMonth)
	return nil
}

// validateRoster fills the allow-list and alias map, falling back to the
// built-in production roster when the config provides none.
func validateRoster(cfg *Config, input *ConfigRawInput) error {
	cfg.Technicians = input.Technicians
	if len(cfg.Technicians) == 0 {
		cfg.Technicians = append([]string(nil), schema.DefaultTechnicians...)
	}
	cfg.Aliases = input.Aliases
	if len(cfg.Aliases) == 0 {
		cfg.Aliases = make(map[string]string, len(schema.DefaultAliases))
		for k, v := range schema.DefaultAliases {
			cfg.Aliases[k] = v
		}
	}
	return nil
}

// validateWeeks parses the week table and checks that ranges are contiguous
// and non-overlapping.
func validateWeeks(cfg *Config, input *ConfigRawInput) error {
	if len(input.Weeks) == 0 {
		cfg.Weeks = schema.DefaultWeekTable()
	} else {
		weeks := make([]schema.WeekRange, 0, len(input.Weeks))
		for _, w := range input.Weeks {
			start, err := time.Parse("2006-01-02", w.Start)
			if err != nil {
				return fmt.Errorf("invalid week start %q: %w", w.Start, err)
			}
			end, err := time.Parse("2006-01-02", w.End)
			if err != nil {
				return fmt.Errorf("invalid week end %q: %w", w.End, err)
			}
			weeks = append(weeks, schema.WeekRange{Label: w.Label, Start: start, End: end})
		}
		cfg.Weeks = weeks
	}

	for i, w := range cfg.Weeks {
		if !w.Start.Before(w.End) {
			return fmt.Errorf("week %q has start %s on or after end %s", w.Label, w.Start, w.End)
		}
		if i > 0 && !cfg.Weeks[i-1].End.Equal(w.Start) {
			return fmt.Errorf("week table is not contiguous between %q and %q", cfg.Weeks[i-1].Label, w.Label)
		}
	}
	return nil
}

func validateSLAConstants(cfg *Config, input *ConfigRawInput) error {
	cfg.ExpectedMonthlyTotal = input.ExpectedMonthlyTotal
	cfg.Headcount = input.Headcount
	cfg.WorkdaysPerWeek = input.WorkdaysPerWeek
	if cfg.ExpectedMonthlyTotal <= 0 {
		return fmt.Errorf("sla-expected-total must be positive, got %v", cfg.ExpectedMonthlyTotal)
	}
	if cfg.Headcount <= 0 {
		return fmt.Errorf("sla-headcount must be positive, got %v", cfg.Headcount)
	}
	if cfg.WorkdaysPerWeek <= 0 {
		return fmt.Errorf("workdays-per-week must be positive, got %v", cfg.WorkdaysPerWeek)
	}
	return nil
}

func validatePollInterval(cfg *Config, input *ConfigRawInput) error {
	if input.PollIntervalStr == "" {
		cfg.PollInterval = DefaultPollInterval
		return nil
	}
	interval, err := time.ParseDuration(input.PollIntervalStr)
	if err != nil {
		return fmt.Errorf("invalid poll-interval %q: %w", input.PollIntervalStr, err)
	}
	if interval < MinPollInterval {
		return fmt.Errorf("poll-interval must be at least %s, got %s", MinPollInterval, interval)
	}
	cfg.PollInterval = interval
	return nil
}

func validateBackends(cfg *Config, input *ConfigRawInput) error {
	cfg.CacheBackend = schema.DatabaseBackend(input.CacheBackendStr)
	if err := ValidateDatabaseConnectionString(cfg.CacheBackend, cfg.CacheDBConnect); err != nil {
		return fmt.Errorf("cache backend: %w", err)
	}
	if input.HistoryBackendStr != "" {
		cfg.HistoryBackend = schema.DatabaseBackend(input.HistoryBackendStr)
		if err := ValidateDatabaseConnectionString(cfg.HistoryBackend, cfg.HistoryDBConnect); err != nil {
			return fmt.Errorf("history backend: %w", err)
		}
		if cfg.HistoryBackend == cfg.CacheBackend && cfg.HistoryBackend != schema.SQLiteBackend &&
			cfg.HistoryBackend != schema.NoneBackend && cfg.HistoryDBConnect == cfg.CacheDBConnect {
			return fmt.Errorf("history-db-connect must differ from cache-db-connect for shared %s backends", cfg.HistoryBackend)
		}
	}
	return nil
}

func validateSortKey(cfg *Config, input *ConfigRawInput) error {
	if input.SortByStr == "" {
		cfg.SortBy = schema.SortByNumber
		return nil
	}
	key := schema.SortKey(input.SortByStr)
	if _, ok := schema.ValidSortKeys[key]; !ok {
		return fmt.Errorf("invalid sort key: %s. Must be no, date, status, tech, client, location, or subject", input.SortByStr)
	}
	cfg.SortBy = key
	return nil
}

// validateRatings checks the survey rating filter set. Zero is legal and
// selects tickets without a survey response.
func validateRatings(cfg *Config, input *ConfigRawInput) error {
	for _, r := range input.Ratings {
		if r < 0 || r > 5 {
			return fmt.Errorf("rating filter values must be 0 (no survey) through 5, got %d", r)
		}
	}
	cfg.Ratings = input.Ratings
	return nil
}

// ValidateDatabaseConnectionString checks that a connection string is
// present and plausible for the chosen backend.
func ValidateDatabaseConnectionString(backend schema.DatabaseBackend, connStr string) error {
	if _, ok := schema.ValidCacheBackends[backend]; !ok {
		return fmt.Errorf("unsupported backend: %s. Must be sqlite, mysql, postgresql, or none", backend)
	}
	switch backend {
	case schema.MySQLBackend:
		if connStr == "" {
			return fmt.Errorf("mysql backend requires a connection string (user:pass@tcp(host:port)/dbname)")
		}
		if !strings.Contains(connStr, "@") {
			return fmt.Errorf("mysql connection string looks malformed, expected user:pass@tcp(host:port)/dbname")
		}
	case schema.PostgreSQLBackend:
		if connStr == "" {
			return fmt.Errorf("postgresql backend requires a connection string (host=... user=... dbname=...)")
		}
	}
	return nil
}
