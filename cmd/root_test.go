// ABOUTME: Tests for root command configuration precedence
// ABOUTME: Verifies flag > env > default ordering for every setting

package cmd

import "testing"

func TestGetAPIURL_FlagTakesPrecedence(t *testing.T) {
	apiURL = "http://flag.example.com"
	t.Setenv("BLOODSCRIPT_API_URL", "http://env.example.com")
	defer func() { apiURL = "" }()

	if got := GetAPIURL(); got != "http://flag.example.com" {
		t.Errorf("GetAPIURL() = %q, want flag value", got)
	}
}

func TestGetAPIURL_EnvFallback(t *testing.T) {
	apiURL = ""
	t.Setenv("BLOODSCRIPT_API_URL", "http://env.example.com")

	if got := GetAPIURL(); got != "http://env.example.com" {
		t.Errorf("GetAPIURL() = %q, want env value", got)
	}
}

func TestGetAPIURL_Default(t *testing.T) {
	apiURL = ""
	t.Setenv("BLOODSCRIPT_API_URL", "")

	if got := GetAPIURL(); got != defaultAPIURL {
		t.Errorf("GetAPIURL() = %q, want default", got)
	}
}

func TestGetTokenOverride_FlagTakesPrecedence(t *testing.T) {
	tokenFlag = "flag-token"
	t.Setenv("BLOODSCRIPT_TOKEN", "env-token")
	defer func() { tokenFlag = "" }()

	if got := GetTokenOverride(); got != "flag-token" {
		t.Errorf("GetTokenOverride() = %q, want flag value", got)
	}
}

func TestGetTokenOverride_EnvFallback(t *testing.T) {
	tokenFlag = ""
	t.Setenv("BLOODSCRIPT_TOKEN", "env-token")

	if got := GetTokenOverride(); got != "env-token" {
		t.Errorf("GetTokenOverride() = %q, want env value", got)
	}
}

func TestGetEngineID_EnvFallback(t *testing.T) {
	engineID = ""
	t.Setenv("BLOODSCRIPT_ENGINE_ID", "engine-7")

	if got := GetEngineID(); got != "engine-7" {
		t.Errorf("GetEngineID() = %q, want env value", got)
	}
}

func TestGetOwnerID(t *testing.T) {
	t.Setenv("BLOODSCRIPT_OWNER_ID", "99")

	if got := GetOwnerID(); got != "99" {
		t.Errorf("GetOwnerID() = %q, want 99", got)
	}
}
