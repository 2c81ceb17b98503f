package config

import (
	"os"
	"path/filepath"
	"strings"
	"testing"
)

type envTestConfig struct {
	Port int `env:"VPSHUB_TEST_PORT" envDefault:"123"`
}

func TestParseEnvDefaults(t *testing.T) {
	var cfg envTestConfig

	if err := ParseEnv(&cfg); err != nil {
		t.Fatalf("parse env: %v", err)
	}
	if cfg.Port != 123 {
		t.Fatalf("expected default port 123, got %d", cfg.Port)
	}
}

func TestParseEnvError(t *testing.T) {
	var cfg envTestConfig
	t.Setenv("VPSHUB_TEST_PORT", "not-an-int")

	err := ParseEnv(&cfg)
	if err == nil {
		t.Fatal("expected error")
	}
	if !strings.Contains(err.Error(), "parse env:") {
		t.Fatalf("expected parse env prefix, got %v", err)
	}
}

func TestLoadDotEnvSkipsMissingFiles(t *testing.T) {
	if err := LoadDotEnv("", filepath.Join(t.TempDir(), "missing.env")); err != nil {
		t.Fatalf("load dotenv: %v", err)
	}
}

func TestLoadDotEnvDoesNotOverrideEnvironment(t *testing.T) {
	path := filepath.Join(t.TempDir(), ".env")
	content := "VPSHUB_TEST_DOTENV_A=from-file\nVPSHUB_TEST_DOTENV_B=from-file\n"
	if err := os.WriteFile(path, []byte(content), 0o600); err != nil {
		t.Fatalf("write dotenv: %v", err)
	}
	t.Setenv("VPSHUB_TEST_DOTENV_A", "from-env")
	t.Setenv("VPSHUB_TEST_DOTENV_B", "")
	_ = os.Unsetenv("VPSHUB_TEST_DOTENV_B")

	if err := LoadDotEnv(path); err != nil {
		t.Fatalf("load dotenv: %v", err)
	}
	if got := os.Getenv("VPSHUB_TEST_DOTENV_A"); got != "from-env" {
		t.Fatalf("VPSHUB_TEST_DOTENV_A = %q, want %q", got, "from-env")
	}
	if got := os.Getenv("VPSHUB_TEST_DOTENV_B"); got != "from-file" {
		t.Fatalf("VPSHUB_TEST_DOTENV_B = %q, want %q", got, "from-file")
	}
}
