package config

import "testing"

func TestOverrideFromEnv(t *testing.T) {
	t.Setenv("DB_HOST", "db.internal")
	t.Setenv("DB_PORT", "6432")
	t.Setenv("MQ_URL", "amqp://guest:guest@mq:5672/")
	t.Setenv("REDIS_ADDR", "redis:6379")
	t.Setenv("JWT_SECRET", "override-secret")
	t.Setenv("SERVER_PORT", "9090")

	cfg := Config{
		DB:     DBConfig{Host: "localhost", Port: 5432, User: "zzp", Name: "zzpboard"},
		JWT:    JWTConfig{Secret: "file-secret"},
		Server: ServerConfig{Port: "8080"},
	}
	OverrideFromEnv(&cfg)

	if cfg.DB.Host != "db.internal" {
		t.Errorf("DB.Host = %q, want db.internal", cfg.DB.Host)
	}
	if cfg.DB.Port != 6432 {
		t.Errorf("DB.Port = %d, want 6432", cfg.DB.Port)
	}
	if cfg.DB.User != "zzp" {
		t.Errorf("DB.User = %q, want zzp (no env set)", cfg.DB.User)
	}
	if cfg.MQ.URL != "amqp://guest:guest@mq:5672/" {
		t.Errorf("MQ.URL = %q", cfg.MQ.URL)
	}
	if cfg.Redis.Addr != "redis:6379" {
		t.Errorf("Redis.Addr = %q", cfg.Redis.Addr)
	}
	if cfg.JWT.Secret != "override-secret" {
		t.Errorf("JWT.Secret = %q", cfg.JWT.Secret)
	}
	if cfg.Server.Port != "9090" {
		t.Errorf("Server.Port = %q", cfg.Server.Port)
	}
}

func TestOverrideFromEnvIgnoresBadPort(t *testing.T) {
	t.Setenv("DB_PORT", "not-a-number")

	cfg := Config{DB: DBConfig{Port: 5432}}
	OverrideFromEnv(&cfg)

	if cfg.DB.Port != 5432 {
		t.Errorf("DB.Port = %d, want 5432", cfg.DB.Port)
	}
}
