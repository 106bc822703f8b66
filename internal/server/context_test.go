package server

import (
	"testing"

	"github.com/gmsa-cli/gmsa/internal/gmail"
)

func TestServerContextShutdown(t *testing.T) {
	sc, err := NewServerContext(t.Context(), false)
	if err != nil {
		t.Fatalf("NewServerContext() error = %v", err)
	}

	if sc.IsShutdown() {
		t.Error("new context should not be shut down")
	}

	if err := sc.Shutdown(); err != nil {
		t.Errorf("Shutdown() error = %v", err)
	}
	if !sc.IsShutdown() {
		t.Error("context should report shutdown")
	}
	select {
	case <-sc.Context().Done():
	default:
		t.Error("lifecycle context should be cancelled after shutdown")
	}

	// Second shutdown is a no-op
	if err := sc.Shutdown(); err != nil {
		t.Errorf("second Shutdown() error = %v", err)
	}
}

func TestServerContextReadOnly(t *testing.T) {
	sc, err := NewServerContext(t.Context(), true)
	if err != nil {
		t.Fatalf("NewServerContext() error = %v", err)
	}
	if !sc.ReadOnly() {
		t.Error("ReadOnly() = false, want true")
	}
}

func TestServerContextClientCache(t *testing.T) {
	sc, err := NewServerContext(t.Context(), false)
	if err != nil {
		t.Fatalf("NewServerContext() error = %v", err)
	}

	client := &gmail.Client{}
	sc.SetGmailClientForAccount("work", client)

	if got := sc.GmailClientForAccount("work"); got != client {
		t.Error("GmailClientForAccount() should return the cached client")
	}

	accounts := sc.CachedAccounts()
	var found bool
	for _, a := range accounts {
		if a == "work" {
			found = true
		}
	}
	if !found {
		t.Errorf("CachedAccounts() = %v, want to contain work", accounts)
	}
}

func TestServerContextDefaultClientAlias(t *testing.T) {
	sc, err := NewServerContext(t.Context(), false)
	if err != nil {
		t.Fatalf("NewServerContext() error = %v", err)
	}

	client := &gmail.Client{}
	sc.SetGmailClient(client)

	if got := sc.GmailClientForAccount("default"); got != client {
		t.Error("SetGmailClient() should store under the default account")
	}
}
