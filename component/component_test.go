package component

import (
	"context"
	"fmt"
	"strings"
	"testing"
)

type mockComponent struct {
	name       string
	startErr   error
	stopErr    error
	health     Health
	startOrder *[]string
	stopOrder  *[]string
}

func (m *mockComponent) Name() string { return m.name }
func (m *mockComponent) Start(ctx context.Context) error {
	if m.startOrder != nil {
		*m.startOrder = append(*m.startOrder, m.name)
	}
	return m.startErr
}
func (m *mockComponent) Stop(ctx context.Context) error {
	if m.stopOrder != nil {
		*m.stopOrder = append(*m.stopOrder, m.name)
	}
	return m.stopErr
}
func (m *mockComponent) Health(ctx context.Context) Health {
	return m.health
}

func TestRegisterDuplicate(t *testing.T) {
	r := NewRegistry()
	if err := r.Register(&mockComponent{name: "gemini"}); err != nil {
		t.Fatalf("Register failed: %v", err)
	}
	if err := r.Register(&mockComponent{name: "gemini"}); err == nil {
		t.Error("expected error for duplicate registration")
	}
}

func TestGet(t *testing.T) {
	r := NewRegistry()
	r.Register(&mockComponent{name: "ollama"})

	got := r.Get("ollama")
	if got == nil {
		t.Fatal("expected to get registered component")
	}
	if got.Name() != "ollama" {
		t.Errorf("expected 'ollama', got %q", got.Name())
	}
	if r.Get("missing") != nil {
		t.Error("expected nil for unregistered component")
	}
}

func TestStartAllOrder(t *testing.T) {
	r := NewRegistry()
	order := []string{}
	for _, name := range []string{"telemetry", "gemini", "ollama", "http-server"} {
		r.Register(&mockComponent{name: name, startOrder: &order})
	}

	if err := r.StartAll(context.Background()); err != nil {
		t.Fatalf("StartAll failed: %v", err)
	}
	want := "telemetry,gemini,ollama,http-server"
	if got := strings.Join(order, ","); got != want {
		t.Errorf("expected start order %s, got %s", want, got)
	}
}

func TestStartAllErrorStopsEarly(t *testing.T) {
	r := NewRegistry()
	order := []string{}
	stops := []string{}
	r.Register(&mockComponent{name: "gemini", startOrder: &order, stopOrder: &stops})
	r.Register(&mockComponent{name: "ollama", startOrder: &order, startErr: fmt.Errorf("connection refused")})
	r.Register(&mockComponent{name: "http-server", startOrder: &order})

	err := r.StartAll(context.Background())
	if err == nil {
		t.Fatal("expected error from StartAll")
	}
	if !strings.Contains(err.Error(), "ollama") {
		t.Errorf("expected failing component in error, got %v", err)
	}
	if len(order) != 2 {
		t.Errorf("expected start to stop after failure, got %v", order)
	}

	r.StopAll(context.Background())
	if len(stops) != 1 || stops[0] != "gemini" {
		t.Errorf("expected only the started component to stop, got %v", stops)
	}
}

func TestStopAllReverseOrder(t *testing.T) {
	r := NewRegistry()
	order := []string{}
	for _, name := range []string{"telemetry", "gemini", "http-server"} {
		r.Register(&mockComponent{name: name, stopOrder: &order})
	}

	r.StartAll(context.Background())
	if err := r.StopAll(context.Background()); err != nil {
		t.Fatalf("StopAll failed: %v", err)
	}
	want := "http-server,gemini,telemetry"
	if got := strings.Join(order, ","); got != want {
		t.Errorf("expected reverse stop order %s, got %s", want, got)
	}
}

func TestStopAllSkipsUnstarted(t *testing.T) {
	r := NewRegistry()
	order := []string{}
	r.Register(&mockComponent{name: "gemini", stopOrder: &order})

	if err := r.StopAll(context.Background()); err != nil {
		t.Fatalf("StopAll failed: %v", err)
	}
	if len(order) != 0 {
		t.Errorf("expected 0 stops for unstarted components, got %d", len(order))
	}
}

func TestStopAllWithErrors(t *testing.T) {
	r := NewRegistry()
	r.Register(&mockComponent{name: "gemini", stopErr: fmt.Errorf("stop failed")})
	r.Register(&mockComponent{name: "ollama"})
	r.StartAll(context.Background())

	err := r.StopAll(context.Background())
	if err == nil {
		t.Fatal("expected error from StopAll")
	}
	if !strings.Contains(err.Error(), "stop failed") {
		t.Errorf("expected wrapped cause, got %v", err)
	}
}

func TestStartLate(t *testing.T) {
	var started, stopped []string
	r := NewRegistry()
	r.Register(&mockComponent{name: "gemini", startOrder: &started, stopOrder: &stopped})
	if err := r.StartAll(context.Background()); err != nil {
		t.Fatalf("StartAll failed: %v", err)
	}

	r.Register(&mockComponent{name: "server", startOrder: &started, stopOrder: &stopped})
	if err := r.Start(context.Background(), "server"); err != nil {
		t.Fatalf("Start failed: %v", err)
	}
	if err := r.Start(context.Background(), "server"); err != nil {
		t.Fatalf("second Start should be a no-op, got %v", err)
	}
	if err := r.Start(context.Background(), "missing"); err == nil {
		t.Error("expected error for unregistered component")
	}
	if len(started) != 2 || started[1] != "server" {
		t.Errorf("unexpected start order %v", started)
	}

	r.StopAll(context.Background())
	if len(stopped) != 2 || stopped[0] != "server" {
		t.Errorf("expected server stopped first, got %v", stopped)
	}
}

func TestHealthAll(t *testing.T) {
	r := NewRegistry()
	r.Register(&mockComponent{
		name:   "gemini",
		health: Health{Name: "gemini", Status: StatusHealthy},
	})
	r.Register(&mockComponent{
		name:   "ollama",
		health: Health{Name: "ollama", Status: StatusUnhealthy, Message: "connection refused"},
	})

	results := r.HealthAll(context.Background())
	if len(results) != 2 {
		t.Fatalf("expected 2 results, got %d", len(results))
	}
	if results[0].Status != StatusHealthy {
		t.Errorf("expected gemini healthy, got %s", results[0].Status)
	}
	if results[1].Status != StatusUnhealthy {
		t.Errorf("expected ollama unhealthy, got %s", results[1].Status)
	}
	if len(r.All()) != 2 {
		t.Errorf("expected All to list 2 components, got %d", len(r.All()))
	}
}

func TestOverall(t *testing.T) {
	tests := []struct {
		name string
		in   []HealthStatus
		want HealthStatus
	}{
		{"empty", nil, StatusHealthy},
		{"all healthy", []HealthStatus{StatusHealthy, StatusHealthy}, StatusHealthy},
		{"one degraded", []HealthStatus{StatusHealthy, StatusDegraded}, StatusDegraded},
		{"unhealthy wins", []HealthStatus{StatusDegraded, StatusUnhealthy, StatusHealthy}, StatusUnhealthy},
	}
	for _, tc := range tests {
		t.Run(tc.name, func(t *testing.T) {
			results := make([]Health, len(tc.in))
			for i, s := range tc.in {
				results[i] = Health{Status: s}
			}
			if got := Overall(results); got != tc.want {
				t.Errorf("Overall() = %s, want %s", got, tc.want)
			}
		})
	}
}
