package config

import "testing"

func TestLoadDefaults(t *testing.T) {
	setCoreEnvEmpty(t)

	cfg, err := Load()
	if err != nil {
		t.Fatalf("Load() error = %v", err)
	}

	if cfg.BindAddr != ":8080" {
		t.Fatalf("BindAddr = %q, want %q", cfg.BindAddr, ":8080")
	}
	if cfg.LLMProvider != "auto" {
		t.Fatalf("LLMProvider = %q, want %q", cfg.LLMProvider, "auto")
	}
	if cfg.RetrieveMaxResults != 3 {
		t.Fatalf("RetrieveMaxResults = %d, want 3", cfg.RetrieveMaxResults)
	}
	if cfg.EmbeddingDim != 1536 {
		t.Fatalf("EmbeddingDim = %d, want 1536", cfg.EmbeddingDim)
	}
	if cfg.DatabaseURL != "" {
		t.Fatalf("DatabaseURL = %q, want empty default", cfg.DatabaseURL)
	}
}

func TestLoadRejectsInvalidProvider(t *testing.T) {
	setCoreEnvEmpty(t)
	t.Setenv("LLM_PROVIDER", "gemini")

	if _, err := Load(); err == nil {
		t.Fatalf("Load() accepted invalid LLM_PROVIDER")
	}
}

func TestLoadRejectsNonPositiveMaxResults(t *testing.T) {
	setCoreEnvEmpty(t)
	t.Setenv("RETRIEVE_MAX_RESULTS", "0")

	if _, err := Load(); err == nil {
		t.Fatalf("Load() accepted RETRIEVE_MAX_RESULTS=0")
	}
}

func TestLoadParsesExplicitValues(t *testing.T) {
	setCoreEnvEmpty(t)
	t.Setenv("APP_BIND_ADDR", ":9090")
	t.Setenv("LLM_PROVIDER", "mock")
	t.Setenv("RETRIEVE_MAX_RESULTS", "5")
	t.Setenv("APP_SHUTDOWN_TIMEOUT", "30s")

	cfg, err := Load()
	if err != nil {
		t.Fatalf("Load() error = %v", err)
	}
	if cfg.BindAddr != ":9090" || cfg.LLMProvider != "mock" || cfg.RetrieveMaxResults != 5 {
		t.Fatalf("explicit values not applied: %+v", cfg)
	}
	if cfg.ShutdownTimeout.Seconds() != 30 {
		t.Fatalf("ShutdownTimeout = %v, want 30s", cfg.ShutdownTimeout)
	}
}

func setCoreEnvEmpty(t *testing.T) {
	t.Helper()
	keys := []string{
		"APP_BIND_ADDR",
		"APP_SHUTDOWN_TIMEOUT",
		"APP_METRICS_NAMESPACE",
		"APP_ALLOW_ANY_ORIGIN",
		"LLM_PROVIDER",
		"OPENAI_API_KEY",
		"OPENAI_BASE_URL",
		"GENERATION_MODEL",
		"EMBEDDING_MODEL",
		"EMBEDDING_DIM",
		"DATABASE_URL",
		"KB_DIR",
		"RETRIEVE_MAX_RESULTS",
		"CALL_LOG_DIR",
		"CALL_LOG_DB",
	}
	for _, k := range keys {
		t.Setenv(k, "")
	}
}
