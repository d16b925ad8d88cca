package config

import (
	"strings"
	"testing"
	"time"
)

// clearEnv blanks every variable the loader reads so tests start from defaults.
func clearEnv(t *testing.T) {
	t.Helper()
	for _, name := range []string{
		"SERVER_HOST", "SERVER_PORT", "SERVER_READ_TIMEOUT", "SERVER_WRITE_TIMEOUT",
		"SERVER_IDLE_TIMEOUT", "SERVER_SHUTDOWN_TIMEOUT", "SERVER_REQUEST_TIMEOUT",
		"SHEET_CSV_URL", "SOURCE_URL", "SOURCE_FETCH_TIMEOUT", "SOURCE_MAX_BYTES", "SOURCE_USER_AGENT",
		"CLASS_ALIASES", "DIVISION_ALIASES", "ROLL_ALIASES",
		"RATE_LIMIT_ENABLED", "RATE_LIMIT_REQUESTS_PER_MINUTE",
		"TRUSTED_PROXIES", "SECURITY_ENABLE_CSP",
		"LOG_LEVEL", "LOG_FORMAT",
	} {
		t.Setenv(name, "")
	}
}

func validConfig() *Config {
	return &Config{
		Server: ServerConfig{Port: 8080, ShutdownTimeout: time.Second, RequestTimeout: time.Second},
		Source: SourceConfig{FetchTimeout: time.Second, MaxBytes: 1024},
		Columns: ColumnsConfig{
			ClassAliases:    []string{"class"},
			DivisionAliases: []string{"division"},
			RollAliases:     []string{"roll"},
		},
		Rate:    RateLimitConfig{Enabled: true, RequestsPerMinute: 100},
		Logging: LoggingConfig{Level: "info", Format: "text"},
	}
}

func TestLoad_Defaults(t *testing.T) {
	clearEnv(t)

	cfg, err := Load()
	if err != nil {
		t.Fatalf("Load() error = %v", err)
	}

	if cfg.Server.Host != "0.0.0.0" {
		t.Errorf("Server.Host = %q, want %q", cfg.Server.Host, "0.0.0.0")
	}
	if cfg.Server.Port != 8080 {
		t.Errorf("Server.Port = %d, want %d", cfg.Server.Port, 8080)
	}
	if cfg.Source.URL != "" {
		t.Errorf("Source.URL = %q, want empty", cfg.Source.URL)
	}
	if cfg.Source.FetchTimeout != 30*time.Second {
		t.Errorf("Source.FetchTimeout = %v, want %v", cfg.Source.FetchTimeout, 30*time.Second)
	}
	if cfg.Source.MaxBytes != 10485760 {
		t.Errorf("Source.MaxBytes = %d, want %d", cfg.Source.MaxBytes, 10485760)
	}
	if cfg.Rate.RequestsPerMinute != 120 {
		t.Errorf("Rate.RequestsPerMinute = %d, want %d", cfg.Rate.RequestsPerMinute, 120)
	}

	wantRoll := []string{"roll", "roll no", "rollno", "roll number", "roll_no", "roll no."}
	if strings.Join(cfg.Columns.RollAliases, "|") != strings.Join(wantRoll, "|") {
		t.Errorf("Columns.RollAliases = %v, want %v", cfg.Columns.RollAliases, wantRoll)
	}
	if len(cfg.Columns.ClassAliases) != 4 || cfg.Columns.ClassAliases[1] != "std" {
		t.Errorf("Columns.ClassAliases = %v", cfg.Columns.ClassAliases)
	}
}

func TestLoad_OverrideDefaults(t *testing.T) {
	clearEnv(t)
	t.Setenv("SHEET_CSV_URL", "https://docs.google.com/spreadsheets/d/e/abc/pub?output=csv")
	t.Setenv("SERVER_PORT", "9090")
	t.Setenv("LOG_LEVEL", "debug")
	t.Setenv("CLASS_ALIASES", "Grade , Year")

	cfg, err := Load()
	if err != nil {
		t.Fatalf("Load() error = %v", err)
	}

	if cfg.Server.Port != 9090 {
		t.Errorf("Server.Port = %d, want %d", cfg.Server.Port, 9090)
	}
	if cfg.Logging.Level != "debug" {
		t.Errorf("Logging.Level = %q, want %q", cfg.Logging.Level, "debug")
	}
	if !strings.HasPrefix(cfg.Source.URL, "https://docs.google.com/") {
		t.Errorf("Source.URL = %q", cfg.Source.URL)
	}
	if strings.Join(cfg.Columns.ClassAliases, "|") != "Grade|Year" {
		t.Errorf("Columns.ClassAliases = %v, want [Grade Year]", cfg.Columns.ClassAliases)
	}
}

func TestLoad_AltEnvVar(t *testing.T) {
	clearEnv(t)
	t.Setenv("SOURCE_URL", "https://sheets.internal/export.csv")

	cfg, err := Load()
	if err != nil {
		t.Fatalf("Load() error = %v", err)
	}

	if cfg.Source.URL != "https://sheets.internal/export.csv" {
		t.Errorf("Source.URL = %q, want %q", cfg.Source.URL, "https://sheets.internal/export.csv")
	}
}

func TestLoad_PrimaryBeatsAlt(t *testing.T) {
	clearEnv(t)
	t.Setenv("SHEET_CSV_URL", "https://primary/x.csv")
	t.Setenv("SOURCE_URL", "https://alt/x.csv")

	cfg, err := Load()
	if err != nil {
		t.Fatalf("Load() error = %v", err)
	}
	if cfg.Source.URL != "https://primary/x.csv" {
		t.Errorf("Source.URL = %q, want primary", cfg.Source.URL)
	}
}

func TestLoad_Duration(t *testing.T) {
	clearEnv(t)
	t.Setenv("SERVER_READ_TIMEOUT", "45s")
	t.Setenv("SOURCE_FETCH_TIMEOUT", "1m30s")

	cfg, err := Load()
	if err != nil {
		t.Fatalf("Load() error = %v", err)
	}

	if cfg.Server.ReadTimeout != 45*time.Second {
		t.Errorf("Server.ReadTimeout = %v, want %v", cfg.Server.ReadTimeout, 45*time.Second)
	}
	if cfg.Source.FetchTimeout != 90*time.Second {
		t.Errorf("Source.FetchTimeout = %v, want %v", cfg.Source.FetchTimeout, 90*time.Second)
	}
}

func TestLoad_InvalidValue(t *testing.T) {
	clearEnv(t)
	t.Setenv("SERVER_PORT", "eighty")

	_, err := Load()
	if err == nil {
		t.Fatal("Load() expected error for non-numeric SERVER_PORT")
	}
	if !strings.Contains(err.Error(), "SERVER_PORT") {
		t.Errorf("error should mention SERVER_PORT: %v", err)
	}
}

func TestLoad_CommaSeparatedSlice(t *testing.T) {
	clearEnv(t)
	t.Setenv("TRUSTED_PROXIES", "10.0.0.0/8, 172.16.0.0/12 , ,192.168.0.0/16")

	cfg, err := Load()
	if err != nil {
		t.Fatalf("Load() error = %v", err)
	}

	expected := []string{"10.0.0.0/8", "172.16.0.0/12", "192.168.0.0/16"}
	if len(cfg.Security.TrustedProxies) != len(expected) {
		t.Fatalf("TrustedProxies length = %d, want %d", len(cfg.Security.TrustedProxies), len(expected))
	}
	for i, v := range expected {
		if cfg.Security.TrustedProxies[i] != v {
			t.Errorf("TrustedProxies[%d] = %q, want %q", i, cfg.Security.TrustedProxies[i], v)
		}
	}
}

func TestValidate(t *testing.T) {
	tests := []struct {
		name    string
		mutate  func(*Config)
		wantErr string
	}{
		{"valid", func(c *Config) {}, ""},
		{"invalid port", func(c *Config) { c.Server.Port = 99999 }, "SERVER_PORT"},
		{"zero shutdown timeout", func(c *Config) { c.Server.ShutdownTimeout = 0 }, "SERVER_SHUTDOWN_TIMEOUT"},
		{"zero fetch timeout", func(c *Config) { c.Source.FetchTimeout = 0 }, "SOURCE_FETCH_TIMEOUT"},
		{"zero max bytes", func(c *Config) { c.Source.MaxBytes = 0 }, "SOURCE_MAX_BYTES"},
		{"no division aliases", func(c *Config) { c.Columns.DivisionAliases = nil }, "DIVISION_ALIASES"},
		{"rate limit without rate", func(c *Config) { c.Rate.RequestsPerMinute = 0 }, "RATE_LIMIT_REQUESTS_PER_MINUTE"},
		{"rate limit disabled ignores rate", func(c *Config) { c.Rate.Enabled = false; c.Rate.RequestsPerMinute = 0 }, ""},
		{"invalid log level", func(c *Config) { c.Logging.Level = "verbose" }, "LOG_LEVEL"},
		{"invalid log format", func(c *Config) { c.Logging.Format = "xml" }, "LOG_FORMAT"},
		{"empty source url is allowed", func(c *Config) { c.Source.URL = "" }, ""},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			cfg := validConfig()
			tt.mutate(cfg)

			err := cfg.Validate()
			if tt.wantErr == "" {
				if err != nil {
					t.Fatalf("Validate() error = %v, want nil", err)
				}
				return
			}
			if err == nil {
				t.Fatalf("Validate() expected error mentioning %s", tt.wantErr)
			}
			if !strings.Contains(err.Error(), tt.wantErr) {
				t.Errorf("error should mention %s: %v", tt.wantErr, err)
			}
		})
	}
}

func TestValidate_ReportsAllProblems(t *testing.T) {
	cfg := validConfig()
	cfg.Server.Port = 0
	cfg.Logging.Format = "xml"

	err := cfg.Validate()
	if err == nil {
		t.Fatal("Validate() expected error")
	}
	for _, want := range []string{"SERVER_PORT", "LOG_FORMAT"} {
		if !strings.Contains(err.Error(), want) {
			t.Errorf("error should mention %s: %v", want, err)
		}
	}
}

func TestServerAddr(t *testing.T) {
	tests := []struct {
		host string
		port int
		want string
	}{
		{"", 8080, ":8080"},
		{"0.0.0.0", 8080, "0.0.0.0:8080"},
		{"127.0.0.1", 3000, "127.0.0.1:3000"},
	}

	for _, tt := range tests {
		cfg := &ServerConfig{Host: tt.host, Port: tt.port}
		if got := cfg.Addr(); got != tt.want {
			t.Errorf("Addr() with host=%q, port=%d = %q, want %q", tt.host, tt.port, got, tt.want)
		}
	}
}

func TestConfigString_HidesSourceToken(t *testing.T) {
	cfg := validConfig()
	cfg.Source.URL = "https://docs.google.com/spreadsheets/d/e/2PACX-secret-token/pub?output=csv"

	str := cfg.String()
	if strings.Contains(str, "secret-token") {
		t.Errorf("String() should not include the sheet path: %s", str)
	}
	if !strings.Contains(str, "docs.google.com") {
		t.Errorf("String() should include the sheet host: %s", str)
	}
}
