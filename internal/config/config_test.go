package config

import "testing"

func TestLoadConfig_Defaults(t *testing.T) {
	t.Setenv("TABLE_NAME", "messages")
	t.Setenv("DATABASE_URL", "postgres://localhost/shui")

	cfg, err := LoadConfig()
	if err != nil {
		t.Fatalf("expected no error, got %v", err)
	}
	if cfg.HTTPPort != "8080" {
		t.Fatalf("expected default port 8080, got %q", cfg.HTTPPort)
	}
	if cfg.StoreBackend != BackendPostgres {
		t.Fatalf("expected postgres backend, got %q", cfg.StoreBackend)
	}
	if cfg.CORSAllowOrigin != "*" {
		t.Fatalf("expected wildcard origin, got %q", cfg.CORSAllowOrigin)
	}
}

func TestLoadConfig_MissingTableName(t *testing.T) {
	t.Setenv("TABLE_NAME", "")
	t.Setenv("STORE_BACKEND", "memory")

	if _, err := LoadConfig(); err == nil {
		t.Fatalf("expected error when TABLE_NAME is empty")
	}
}

func TestLoadConfig_NormalizesBackend(t *testing.T) {
	t.Setenv("TABLE_NAME", "messages")
	t.Setenv("STORE_BACKEND", " Memory ")

	cfg, err := LoadConfig()
	if err != nil {
		t.Fatalf("expected no error, got %v", err)
	}
	if cfg.StoreBackend != BackendMemory {
		t.Fatalf("expected memory backend, got %q", cfg.StoreBackend)
	}
}

func TestConfigValidate(t *testing.T) {
	cases := []struct {
		name    string
		cfg     Config
		wantErr bool
	}{
		{"postgres without dsn", Config{TableName: "m", StoreBackend: BackendPostgres}, true},
		{"postgres with dsn", Config{TableName: "m", StoreBackend: BackendPostgres, DatabaseURL: "postgres://x"}, false},
		{"redis without addr", Config{TableName: "m", StoreBackend: BackendRedis}, true},
		{"redis with addr", Config{TableName: "m", StoreBackend: BackendRedis, RedisAddr: "localhost:6379"}, false},
		{"badger without path", Config{TableName: "m", StoreBackend: BackendBadger}, true},
		{"sqlite with path", Config{TableName: "m", StoreBackend: BackendSQLite, SQLitePath: "x.db"}, false},
		{"dynamodb", Config{TableName: "m", StoreBackend: BackendDynamoDB}, false},
		{"unknown backend", Config{TableName: "m", StoreBackend: "cassandra"}, true},
	}
	for _, tc := range cases {
		err := tc.cfg.Validate()
		if tc.wantErr && err == nil {
			t.Fatalf("%s: expected error", tc.name)
		}
		if !tc.wantErr && err != nil {
			t.Fatalf("%s: expected no error, got %v", tc.name, err)
		}
	}
}
