package config

import (
	"os"
	"path/filepath"
	"strings"
	"testing"
)

const testYAML = `server:
  host: "127.0.0.1"
  port: 3000
  mode: "release"
database:
  driver: "postgres"
  sqlite:
    path: "data/test.db"
  postgres:
    host: "db.example.com"
    port: 5433
    user: "admin"
    password: "secret"
    dbname: "testdb"
    sslmode: "require"
  pool:
    max_idle_conns: 5
    max_open_conns: 50
    conn_max_lifetime: "30m"
log:
  level: "info"
  format: "json"
auth:
  jwt_secret: "Abcdefghijklmnopqrstuvwxyz123456"
  token_expiry: "24h"
console:
  backend_url: "https://api.example.com"
  login_path: "/login"
  default_path: "/"
  public_routes:
    - "/health"
  auth_routes:
    - "/login"
    - "/register"
  api_auth_prefix: "/api/auth"
  debounce: "500ms"
  fetch_timeout: "15s"
`

func writeTestConfig(t *testing.T, content string) string {
	t.Helper()
	dir := t.TempDir()
	path := filepath.Join(dir, "config.yaml")
	if err := os.WriteFile(path, []byte(content), 0644); err != nil {
		t.Fatalf("failed to write test config: %v", err)
	}
	return path
}

func TestLoad_FullYAML(t *testing.T) {
	path := writeTestConfig(t, testYAML)

	cfg, err := Load(path)
	if err != nil {
		t.Fatalf("Load() error: %v", err)
	}

	// Server
	if cfg.Server.Host != "127.0.0.1" {
		t.Errorf("Server.Host = %q, want %q", cfg.Server.Host, "127.0.0.1")
	}
	if cfg.Server.Port != 3000 {
		t.Errorf("Server.Port = %d, want %d", cfg.Server.Port, 3000)
	}
	if cfg.Server.Mode != "release" {
		t.Errorf("Server.Mode = %q, want %q", cfg.Server.Mode, "release")
	}

	// Database
	if cfg.Database.Driver != "postgres" {
		t.Errorf("Database.Driver = %q, want %q", cfg.Database.Driver, "postgres")
	}
	if cfg.Database.Postgres.Host != "db.example.com" {
		t.Errorf("Postgres.Host = %q, want %q", cfg.Database.Postgres.Host, "db.example.com")
	}
	if cfg.Database.Postgres.SSLMode != "require" {
		t.Errorf("Postgres.SSLMode = %q, want %q", cfg.Database.Postgres.SSLMode, "require")
	}
	if cfg.Database.Pool.MaxIdleConns != 5 {
		t.Errorf("Pool.MaxIdleConns = %d, want %d", cfg.Database.Pool.MaxIdleConns, 5)
	}
	if cfg.Database.Pool.ConnMaxLifetime != "30m" {
		t.Errorf("Pool.ConnMaxLifetime = %q, want %q", cfg.Database.Pool.ConnMaxLifetime, "30m")
	}

	// Log
	if cfg.Log.Level != "info" {
		t.Errorf("Log.Level = %q, want %q", cfg.Log.Level, "info")
	}
	if cfg.Log.Format != "json" {
		t.Errorf("Log.Format = %q, want %q", cfg.Log.Format, "json")
	}

	// Auth
	if cfg.Auth.TokenExpiry != "24h" {
		t.Errorf("Auth.TokenExpiry = %q, want %q", cfg.Auth.TokenExpiry, "24h")
	}

	// Console
	if cfg.Console.BackendURL != "https://api.example.com" {
		t.Errorf("Console.BackendURL = %q, want %q", cfg.Console.BackendURL, "https://api.example.com")
	}
	if cfg.Console.LoginPath != "/login" {
		t.Errorf("Console.LoginPath = %q, want %q", cfg.Console.LoginPath, "/login")
	}
	if len(cfg.Console.AuthRoutes) != 2 || cfg.Console.AuthRoutes[0] != "/login" {
		t.Errorf("Console.AuthRoutes = %v, want [/login /register]", cfg.Console.AuthRoutes)
	}
	if cfg.Console.Debounce != "500ms" {
		t.Errorf("Console.Debounce = %q, want %q", cfg.Console.Debounce, "500ms")
	}
}

func TestLoad_EnvOverride(t *testing.T) {
	path := writeTestConfig(t, testYAML)

	t.Setenv("APP__SERVER__PORT", "9090")
	t.Setenv("APP__DATABASE__DRIVER", "sqlite")
	t.Setenv("APP__LOG__LEVEL", "error")

	// PoolConfig fields contain underscores; verify a single _ is preserved.
	t.Setenv("APP__DATABASE__POOL__MAX_IDLE_CONNS", "20")

	// Console fields with underscores in the key name.
	t.Setenv("APP__CONSOLE__BACKEND_URL", "https://override.example.com")

	cfg, err := Load(path)
	if err != nil {
		t.Fatalf("Load() error: %v", err)
	}

	if cfg.Server.Port != 9090 {
		t.Errorf("Server.Port = %d, want %d (env override)", cfg.Server.Port, 9090)
	}
	if cfg.Database.Driver != "sqlite" {
		t.Errorf("Database.Driver = %q, want %q (env override)", cfg.Database.Driver, "sqlite")
	}
	if cfg.Log.Level != "error" {
		t.Errorf("Log.Level = %q, want %q (env override)", cfg.Log.Level, "error")
	}
	if cfg.Database.Pool.MaxIdleConns != 20 {
		t.Errorf("Pool.MaxIdleConns = %d, want %d (env override)", cfg.Database.Pool.MaxIdleConns, 20)
	}
	if cfg.Console.BackendURL != "https://override.example.com" {
		t.Errorf("Console.BackendURL = %q, want env override", cfg.Console.BackendURL)
	}
}

func TestLoad_FileNotFound(t *testing.T) {
	_, err := Load("/nonexistent/config.yaml")
	if err == nil {
		t.Fatal("Load() should fail for missing file")
	}
}

// validBaseYAML returns a minimal valid sqlite/debug config with the given
// extra sections appended.
func validBaseYAML(extras string) string {
	base := `server:
  host: "127.0.0.1"
  port: 8080
  mode: "debug"
database:
  driver: "sqlite"
  sqlite:
    path: "data/test.db"
log:
  level: "info"
  format: "text"
auth:
  jwt_secret: "abcdefghijklmnopqrstuvwxyz123456"
  token_expiry: "24h"
`
	return base + extras
}

func TestLoad_InvalidServerMode(t *testing.T) {
	yaml := strings.Replace(validBaseYAML(""), `mode: "debug"`, `mode: "production"`, 1)
	path := writeTestConfig(t, yaml)

	_, err := Load(path)
	if err == nil {
		t.Fatal("Load() should fail for invalid server.mode")
	}
	if !strings.Contains(err.Error(), "server.mode") {
		t.Errorf("error = %v, want mention of server.mode", err)
	}
}

func TestLoad_InvalidPort(t *testing.T) {
	for _, port := range []string{"0", "65536", "-1"} {
		yaml := strings.Replace(validBaseYAML(""), "port: 8080", "port: "+port, 1)
		path := writeTestConfig(t, yaml)

		_, err := Load(path)
		if err == nil {
			t.Fatalf("Load() should fail for port %s", port)
		}
		if !strings.Contains(err.Error(), "server.port") {
			t.Errorf("error = %v, want mention of server.port", err)
		}
	}
}

func TestLoad_InvalidServerHost(t *testing.T) {
	yaml := strings.Replace(validBaseYAML(""), `host: "127.0.0.1"`, `host: "   "`, 1)
	path := writeTestConfig(t, yaml)

	_, err := Load(path)
	if err == nil {
		t.Fatal("Load() should fail for blank server.host")
	}
	if !strings.Contains(err.Error(), "server.host") {
		t.Errorf("error = %v, want mention of server.host", err)
	}
}

func TestLoad_InvalidDatabaseDriver(t *testing.T) {
	yaml := strings.Replace(validBaseYAML(""), `driver: "sqlite"`, `driver: "mysql"`, 1)
	path := writeTestConfig(t, yaml)

	_, err := Load(path)
	if err == nil {
		t.Fatal("Load() should fail for unsupported database.driver")
	}
	if !strings.Contains(err.Error(), "database.driver") {
		t.Errorf("error = %v, want mention of database.driver", err)
	}
}

func TestLoad_SQLiteMissingPath(t *testing.T) {
	yaml := strings.Replace(validBaseYAML(""), `path: "data/test.db"`, `path: "  "`, 1)
	path := writeTestConfig(t, yaml)

	_, err := Load(path)
	if err == nil {
		t.Fatal("Load() should fail when sqlite path is blank")
	}
	if !strings.Contains(err.Error(), "database.sqlite.path") {
		t.Errorf("error = %v, want mention of database.sqlite.path", err)
	}
}

func TestLoad_PostgresMissingFields(t *testing.T) {
	tests := []struct {
		name        string
		postgres    string
		wantContain string
	}{
		{
			name: "missing host",
			postgres: `  postgres:
    host: ""
    port: 5432
    user: "admin"
    dbname: "testdb"
    sslmode: "disable"
`,
			wantContain: "database.postgres.host",
		},
		{
			name: "missing user",
			postgres: `  postgres:
    host: "localhost"
    port: 5432
    user: ""
    dbname: "testdb"
    sslmode: "disable"
`,
			wantContain: "database.postgres.user",
		},
		{
			name: "missing dbname",
			postgres: `  postgres:
    host: "localhost"
    port: 5432
    user: "admin"
    dbname: ""
    sslmode: "disable"
`,
			wantContain: "database.postgres.dbname",
		},
		{
			name: "bad sslmode",
			postgres: `  postgres:
    host: "localhost"
    port: 5432
    user: "admin"
    dbname: "testdb"
    sslmode: "whatever"
`,
			wantContain: "database.postgres.sslmode",
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			yaml := strings.Replace(validBaseYAML(""), `driver: "sqlite"`, `driver: "postgres"`, 1)
			yaml = strings.Replace(yaml, `  sqlite:
    path: "data/test.db"
`, tt.postgres, 1)
			path := writeTestConfig(t, yaml)

			_, err := Load(path)
			if err == nil {
				t.Fatal("Load() should fail")
			}
			if !strings.Contains(err.Error(), tt.wantContain) {
				t.Errorf("error = %v, want mention of %s", err, tt.wantContain)
			}
		})
	}
}

func TestLoad_PostgresSSLMode_ReleaseRestriction(t *testing.T) {
	yaml := `server:
  host: "127.0.0.1"
  port: 8080
  mode: "release"
database:
  driver: "postgres"
  postgres:
    host: "localhost"
    port: 5432
    user: "admin"
    dbname: "testdb"
    sslmode: "disable"
log:
  level: "info"
  format: "text"
auth:
  jwt_secret: "Abcdefghijklmnopqrstuvwxyz123456"
  token_expiry: "24h"
`
	path := writeTestConfig(t, yaml)

	_, err := Load(path)
	if err == nil {
		t.Fatal("Load() should reject sslmode=disable in release mode")
	}
	if !strings.Contains(err.Error(), "sslmode") {
		t.Errorf("error = %v, want mention of sslmode", err)
	}
}

func TestLoad_NonPositiveDurations(t *testing.T) {
	yaml := strings.Replace(validBaseYAML(""), "server:", "server:\n  timeout: \"0s\"", 1)
	path := writeTestConfig(t, yaml)
	if _, err := Load(path); err == nil || !strings.Contains(err.Error(), "server.timeout") {
		t.Errorf("Load() error = %v, want server.timeout failure", err)
	}

	yaml = strings.Replace(validBaseYAML(""), `    path: "data/test.db"
`, `    path: "data/test.db"
  pool:
    conn_max_lifetime: "-1h"
`, 1)
	path = writeTestConfig(t, yaml)
	if _, err := Load(path); err == nil || !strings.Contains(err.Error(), "conn_max_lifetime") {
		t.Errorf("Load() error = %v, want conn_max_lifetime failure", err)
	}
}

func TestLoad_AuthValidation(t *testing.T) {
	tests := []struct {
		name        string
		mutate      func(string) string
		wantContain string
	}{
		{
			name: "missing secret",
			mutate: func(y string) string {
				return strings.Replace(y, `jwt_secret: "abcdefghijklmnopqrstuvwxyz123456"`, `jwt_secret: ""`, 1)
			},
			wantContain: "auth.jwt_secret",
		},
		{
			name: "short secret",
			mutate: func(y string) string {
				return strings.Replace(y, `jwt_secret: "abcdefghijklmnopqrstuvwxyz123456"`, `jwt_secret: "short"`, 1)
			},
			wantContain: "auth.jwt_secret",
		},
		{
			name: "missing expiry",
			mutate: func(y string) string {
				return strings.Replace(y, `token_expiry: "24h"`, `token_expiry: ""`, 1)
			},
			wantContain: "auth.token_expiry",
		},
		{
			name: "negative expiry",
			mutate: func(y string) string {
				return strings.Replace(y, `token_expiry: "24h"`, `token_expiry: "-1h"`, 1)
			},
			wantContain: "auth.token_expiry",
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			path := writeTestConfig(t, tt.mutate(validBaseYAML("")))
			_, err := Load(path)
			if err == nil {
				t.Fatal("Load() should fail")
			}
			if !strings.Contains(err.Error(), tt.wantContain) {
				t.Errorf("error = %v, want mention of %s", err, tt.wantContain)
			}
		})
	}
}

func TestLoad_WeakSecretRejectedInRelease(t *testing.T) {
	yaml := strings.Replace(testYAML, `jwt_secret: "Abcdefghijklmnopqrstuvwxyz123456"`, `jwt_secret: "abcdefghijklmnopqrstuvwxyzabcdef"`, 1)
	path := writeTestConfig(t, yaml)

	_, err := Load(path)
	if err == nil {
		t.Fatal("Load() should reject a single-class secret in release mode")
	}
	if !strings.Contains(err.Error(), "character classes") {
		t.Errorf("error = %v, want mention of character classes", err)
	}
}

func TestLoad_ConsoleValidation(t *testing.T) {
	tests := []struct {
		name        string
		extras      string
		wantContain string
	}{
		{
			name: "relative backend url",
			extras: `console:
  backend_url: "not-a-url"
`,
			wantContain: "console.backend_url",
		},
		{
			name: "auth route without slash",
			extras: `console:
  auth_routes:
    - "login"
`,
			wantContain: "console.auth_routes",
		},
		{
			name: "public route empty",
			extras: `console:
  public_routes:
    - "  "
`,
			wantContain: "console.public_routes",
		},
		{
			name: "login path without slash",
			extras: `console:
  login_path: "login"
`,
			wantContain: "console.login_path",
		},
		{
			name: "bad debounce",
			extras: `console:
  debounce: "fast"
`,
			wantContain: "console.debounce",
		},
		{
			name: "zero fetch timeout",
			extras: `console:
  fetch_timeout: "0s"
`,
			wantContain: "console.fetch_timeout",
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			path := writeTestConfig(t, validBaseYAML(tt.extras))
			_, err := Load(path)
			if err == nil {
				t.Fatal("Load() should fail")
			}
			if !strings.Contains(err.Error(), tt.wantContain) {
				t.Errorf("error = %v, want mention of %s", err, tt.wantContain)
			}
		})
	}
}

func TestLoad_ConsoleOptionalFieldsMayBeEmpty(t *testing.T) {
	path := writeTestConfig(t, validBaseYAML(""))

	cfg, err := Load(path)
	if err != nil {
		t.Fatalf("Load() error: %v", err)
	}
	if cfg.Console.BackendURL != "" {
		t.Errorf("Console.BackendURL = %q, want empty", cfg.Console.BackendURL)
	}
	if cfg.Console.Debounce != "" {
		t.Errorf("Console.Debounce = %q, want empty", cfg.Console.Debounce)
	}
}

func TestCountSecretClasses(t *testing.T) {
	tests := []struct {
		secret string
		want   int
	}{
		{"", 0},
		{"abc", 1},
		{"abcABC", 2},
		{"abcABC123", 3},
		{"abcABC123!@#", 4},
		{"!!!!", 1},
	}
	for _, tt := range tests {
		if got := CountSecretClasses(tt.secret); got != tt.want {
			t.Errorf("CountSecretClasses(%q) = %d, want %d", tt.secret, got, tt.want)
		}
	}
}
