package routing

import (
	"context"
	"testing"

	"github.com/ai-gateway/chat-relay/internal/provider"
)

type stub string

func (s stub) Reply(context.Context, provider.Conversation) (string, error) { return string(s), nil }

func TestRouterProvider(t *testing.T) {
	r := New()
	p := stub("minimax")
	r.Register("MINIMAX", p)
	if r.ProviderFor("MINIMAX") != p {
		t.Fatalf("expected provider")
	}
}

func TestRouterFallsBackToDefault(t *testing.T) {
	r := New()
	def := stub("default")
	other := stub("other")
	r.Register("MINIMAX", def)
	r.Register("OTHER", other)

	for _, name := range []string{"", "UNKNOWN", "minimax"} {
		if got := r.ProviderFor(name); got != def {
			t.Fatalf("service %q: expected default provider, got %v", name, got)
		}
	}
	if r.ProviderFor("OTHER") != other {
		t.Fatalf("expected registered provider for OTHER")
	}
}

func TestRouterServices(t *testing.T) {
	r := New()
	r.Register("MINIMAX", stub("a"))
	r.Register("OTHER", stub("b"))
	r.Register("MINIMAX", stub("c"))

	got := r.Services()
	if len(got) != 2 || got[0] != "MINIMAX" || got[1] != "OTHER" {
		t.Fatalf("unexpected services %v", got)
	}
	if r.ProviderFor("") != stub("c") {
		t.Fatalf("default should follow the first registered name")
	}
}
