package redis

import (
	"context"
	"testing"

	miniredis "github.com/alicebob/miniredis/v2"

	"github.com/fastygo/teamtasks/internal/config"
)

func TestNewClientDisabled(t *testing.T) {
	client, err := NewClient(context.Background(), config.RedisConfig{Enabled: false}, nil)
	if err != nil || client != nil {
		t.Fatalf("disabled redis should yield nil client, got %v %v", client, err)
	}
}

func TestNewClientConnects(t *testing.T) {
	mr := miniredis.RunT(t)

	client, err := NewClient(context.Background(), config.RedisConfig{Enabled: true, URL: "redis://" + mr.Addr()}, nil)
	if err != nil {
		t.Fatalf("connect: %v", err)
	}
	t.Cleanup(func() { _ = client.Close() })

	if err := Ping(client)(context.Background()); err != nil {
		t.Fatalf("ping: %v", err)
	}
}

func TestNewClientFailsWhenUnreachable(t *testing.T) {
	mr := miniredis.RunT(t)
	addr := mr.Addr()
	mr.Close()

	if _, err := NewClient(context.Background(), config.RedisConfig{Enabled: true, URL: "redis://" + addr}, nil); err == nil {
		t.Fatalf("expected connection error")
	}
}

func TestNewClientRejectsBadURL(t *testing.T) {
	if _, err := NewClient(context.Background(), config.RedisConfig{Enabled: true, URL: "::nope"}, nil); err == nil {
		t.Fatalf("expected parse error")
	}
}
