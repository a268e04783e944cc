package config

import "testing"

func TestNewConfigDefaults(t *testing.T) {
	t.Setenv("PORT", "")
	t.Setenv("SERVER_PORT", "")
	t.Setenv("MAX_FILE_SIZE", "")
	t.Setenv("LOG_LEVEL", "")
	t.Setenv("ADMIN_API_SECRET", "")

	cfg := NewConfig()

	if cfg.GetServerPort() != "8080" {
		t.Errorf("Expected default port 8080, got %q", cfg.GetServerPort())
	}
	if cfg.GetMaxFileSize() != 100*1024*1024 {
		t.Errorf("Expected default max file size 100MB, got %d", cfg.GetMaxFileSize())
	}
	if cfg.GetLogLevel() != "info" {
		t.Errorf("Expected default log level info, got %q", cfg.GetLogLevel())
	}
	if cfg.GetAdminAPISecret() != "" {
		t.Errorf("Expected empty admin secret by default, got %q", cfg.GetAdminAPISecret())
	}
}

func TestNewConfigFromEnvironment(t *testing.T) {
	t.Setenv("PORT", "")
	t.Setenv("SERVER_PORT", "9090")
	t.Setenv("MAX_FILE_SIZE", "52428800")
	t.Setenv("LOG_LEVEL", "debug")
	t.Setenv("SUPABASE_URL", "https://project.supabase.co")
	t.Setenv("SUPABASE_ANON_KEY", "anon-key")
	t.Setenv("SUPABASE_SERVICE_ROLE_KEY", "service-key")
	t.Setenv("ADMIN_API_SECRET", "secret")

	cfg := NewConfig()

	if cfg.GetServerPort() != "9090" {
		t.Errorf("Expected port 9090, got %q", cfg.GetServerPort())
	}
	if cfg.GetMaxFileSize() != 52428800 {
		t.Errorf("Expected max file size 52428800, got %d", cfg.GetMaxFileSize())
	}
	if cfg.GetLogLevel() != "debug" {
		t.Errorf("Expected log level debug, got %q", cfg.GetLogLevel())
	}
	if cfg.GetSupabaseURL() != "https://project.supabase.co" {
		t.Errorf("Unexpected Supabase URL: %q", cfg.GetSupabaseURL())
	}
	if cfg.GetSupabaseKey() != "anon-key" {
		t.Errorf("Unexpected anon key: %q", cfg.GetSupabaseKey())
	}
	if cfg.GetServiceRoleKey() != "service-key" {
		t.Errorf("Unexpected service role key: %q", cfg.GetServiceRoleKey())
	}
	if cfg.GetAdminAPISecret() != "secret" {
		t.Errorf("Unexpected admin secret: %q", cfg.GetAdminAPISecret())
	}
}

func TestPortPrecedence(t *testing.T) {
	t.Setenv("PORT", "3000")
	t.Setenv("SERVER_PORT", "9090")

	cfg := NewConfig()
	if cfg.GetServerPort() != "3000" {
		t.Errorf("PORT must win over SERVER_PORT, got %q", cfg.GetServerPort())
	}
}

func TestInvalidMaxFileSizeFallsBack(t *testing.T) {
	t.Setenv("MAX_FILE_SIZE", "not-a-number")

	cfg := NewConfig()
	if cfg.GetMaxFileSize() != 100*1024*1024 {
		t.Errorf("Expected fallback to default, got %d", cfg.GetMaxFileSize())
	}
}
