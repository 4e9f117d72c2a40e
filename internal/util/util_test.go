package util

import (
	"os"
	"strings"
	"testing"
)

func TestParseBoolEnv(t *testing.T) {
	tests := []struct {
		value        string
		defaultValue bool
		want         bool
	}{
		{"", true, true},
		{"", false, false},
		{"true", false, true},
		{"1", false, true},
		{"YES", false, true},
		{"off", true, false},
		{"0", true, false},
		{"banana", true, true},
	}
	for _, tt := range tests {
		os.Setenv("MASSKEEPER_TEST_BOOL", tt.value)
		if got := ParseBoolEnv("MASSKEEPER_TEST_BOOL", tt.defaultValue); got != tt.want {
			t.Errorf("ParseBoolEnv(%q, %v) = %v, want %v", tt.value, tt.defaultValue, got, tt.want)
		}
	}
	os.Unsetenv("MASSKEEPER_TEST_BOOL")
}

func TestParseFloatEnv(t *testing.T) {
	os.Setenv("MASSKEEPER_TEST_FLOAT", "0.0025")
	if got := ParseFloatEnv("MASSKEEPER_TEST_FLOAT", 1); got != 0.0025 {
		t.Errorf("got %v, want 0.0025", got)
	}
	os.Setenv("MASSKEEPER_TEST_FLOAT", "not-a-number")
	if got := ParseFloatEnv("MASSKEEPER_TEST_FLOAT", 1); got != 1 {
		t.Errorf("invalid value should yield default, got %v", got)
	}
	os.Unsetenv("MASSKEEPER_TEST_FLOAT")
}

func TestParseInt64Env(t *testing.T) {
	os.Setenv("MASSKEEPER_TEST_INT", "1048576")
	if got := ParseInt64Env("MASSKEEPER_TEST_INT", 7); got != 1048576 {
		t.Errorf("got %v, want 1048576", got)
	}
	os.Unsetenv("MASSKEEPER_TEST_INT")
	if got := ParseInt64Env("MASSKEEPER_TEST_INT", 7); got != 7 {
		t.Errorf("missing value should yield default, got %v", got)
	}
}

func TestTempArtifactPath(t *testing.T) {
	a := TempArtifactPath("/tmp", "plot_42", ".png")
	b := TempArtifactPath("/tmp", "plot_42", ".png")
	if a == b {
		t.Error("artifact paths must be unique per request")
	}
	if !strings.HasPrefix(a, "/tmp/plot_42_") || !strings.HasSuffix(a, ".png") {
		t.Errorf("unexpected artifact path shape: %s", a)
	}
}
