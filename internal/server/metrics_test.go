package server

import (
	"context"
	"testing"

	"github.com/gmsa-cli/gmsa/internal/instrumentation"
)

func TestNewMetricsServerRequiresProvider(t *testing.T) {
	_, err := NewMetricsServer(MetricsServerConfig{Addr: ":9090"})
	if err == nil {
		t.Error("NewMetricsServer() without provider should fail")
	}
}

func TestNewMetricsServerRequiresEnabledProvider(t *testing.T) {
	config := instrumentation.DefaultConfig()
	config.Enabled = false
	provider, err := instrumentation.NewProvider(context.Background(), config)
	if err != nil {
		t.Fatalf("NewProvider() error = %v", err)
	}

	_, err = NewMetricsServer(MetricsServerConfig{InstrumentationProvider: provider})
	if err == nil {
		t.Error("NewMetricsServer() with disabled provider should fail")
	}
}

func TestNewMetricsServerDefaultAddr(t *testing.T) {
	config := instrumentation.DefaultConfig()
	provider, err := instrumentation.NewProvider(context.Background(), config)
	if err != nil {
		t.Fatalf("NewProvider() error = %v", err)
	}
	defer func() { _ = provider.Shutdown(context.Background()) }()

	s, err := NewMetricsServer(MetricsServerConfig{InstrumentationProvider: provider})
	if err != nil {
		t.Fatalf("NewMetricsServer() error = %v", err)
	}
	if s.Addr() != DefaultMetricsAddr {
		t.Errorf("Addr() = %q, want %q", s.Addr(), DefaultMetricsAddr)
	}

	if err := s.Shutdown(context.Background()); err != nil {
		t.Errorf("Shutdown() before Start() error = %v", err)
	}
}
