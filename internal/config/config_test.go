package config

import (
	"testing"
	"time"
)

func TestLoadLLMConfig_InfersProviderFromKeys(t *testing.T) {
	t.Setenv("LLM_PROVIDER", "")
	t.Setenv("GEMINI_API_KEY", "")
	t.Setenv("OPENAI_API_KEY", "")
	t.Setenv("GEMINI_MODEL", "")
	t.Setenv("OPENAI_MODEL", "")
	t.Setenv("LLM_TIMEOUT_MS", "")

	if got := loadLLMConfig(); got.Provider != ProviderNone {
		t.Fatalf("provider = %q, want none", got.Provider)
	}

	t.Setenv("GEMINI_API_KEY", "gm-key")
	got := loadLLMConfig()
	if got.Provider != ProviderGemini {
		t.Fatalf("provider = %q, want gemini", got.Provider)
	}
	if got.Model != "gemini-2.5-flash" {
		t.Fatalf("model = %q", got.Model)
	}
	if got.Timeout != 12*time.Second {
		t.Fatalf("timeout = %s", got.Timeout)
	}

	t.Setenv("GEMINI_API_KEY", "")
	t.Setenv("OPENAI_API_KEY", "sk-key")
	got = loadLLMConfig()
	if got.Provider != ProviderOpenAI {
		t.Fatalf("provider = %q, want openai", got.Provider)
	}
	if got.APIKey != "sk-key" {
		t.Fatalf("api key = %q", got.APIKey)
	}
}

func TestLoadLLMConfig_ExplicitProviderWins(t *testing.T) {
	t.Setenv("LLM_PROVIDER", "fake")
	t.Setenv("GEMINI_API_KEY", "gm-key")

	if got := loadLLMConfig(); got.Provider != ProviderFake {
		t.Fatalf("provider = %q, want fake", got.Provider)
	}
}

func TestEnvHelpers_BadValuesFallBack(t *testing.T) {
	t.Setenv("LLM_TIMEOUT_MS", "not a number")
	if got := envDurationMS("LLM_TIMEOUT_MS", 12*time.Second); got != 12*time.Second {
		t.Fatalf("duration = %s", got)
	}
	t.Setenv("LLM_TIMEOUT_MS", "-5")
	if got := envDurationMS("LLM_TIMEOUT_MS", 12*time.Second); got != 12*time.Second {
		t.Fatalf("duration = %s", got)
	}
	t.Setenv("LLM_TIMEOUT_MS", "250")
	if got := envDurationMS("LLM_TIMEOUT_MS", 12*time.Second); got != 250*time.Millisecond {
		t.Fatalf("duration = %s", got)
	}

	t.Setenv("LLM_CACHE_SIZE", "eight")
	if got := envInt("LLM_CACHE_SIZE", 0); got != 0 {
		t.Fatalf("int = %d", got)
	}
}

func TestSplitList(t *testing.T) {
	got := splitList(" http://a.example , ,http://b.example")
	if len(got) != 2 || got[0] != "http://a.example" || got[1] != "http://b.example" {
		t.Fatalf("splitList = %v", got)
	}
	if splitList("") != nil {
		t.Fatal("empty input should yield nil")
	}
}
