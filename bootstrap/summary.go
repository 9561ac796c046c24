package bootstrap

import (
	"context"
	"fmt"
	"io"
	"os"
	"strings"
	"time"

	"github.com/kbukum/promptserve/component"
)

// Summary prints what a binary started: its components, the routes they
// serve, and their health at the end of startup.
type Summary struct {
	serviceName     string
	version         string
	startupDuration time.Duration
	out             io.Writer
}

// NewSummary creates a startup summary writing to stdout.
func NewSummary(serviceName, version string) *Summary {
	return &Summary{
		serviceName: serviceName,
		version:     version,
		out:         os.Stdout,
	}
}

// SetStartupDuration records the total startup time.
func (s *Summary) SetStartupDuration(d time.Duration) {
	s.startupDuration = d
}

// Display prints the summary, collecting descriptions, routes and live
// health from the registry.
func (s *Summary) Display(ctx context.Context, registry *component.Registry) {
	w := s.out
	fmt.Fprintf(w, "\n🚀 %s v%s started in %.2fs\n\n", s.serviceName, s.version, s.startupDuration.Seconds())

	all := registry.All()
	if len(all) == 0 {
		fmt.Fprintf(w, "   └── No components registered\n\n")
		return
	}

	fmt.Fprintf(w, "📦 Components\n")
	var routes []component.Route
	for i, c := range all {
		name, kind, details := c.Name(), "", ""
		if d, ok := c.(component.Describable); ok {
			desc := d.Describe()
			if desc.Name != "" {
				name = desc.Name
			}
			kind, details = desc.Type, desc.Details
			if desc.Port > 0 {
				details = fmt.Sprintf("%s (:%d)", details, desc.Port)
			}
		}
		line := name
		if kind != "" {
			line += " [" + kind + "]"
		}
		if details != "" {
			line += ": " + details
		}
		fmt.Fprintf(w, "   %s %s\n", treePrefix(i, len(all)), line)

		if rp, ok := c.(component.RouteProvider); ok {
			routes = append(routes, rp.Routes()...)
		}
	}

	if len(routes) > 0 {
		fmt.Fprintf(w, "\n🌐 Routes (%d)\n", len(routes))
		for i, r := range routes {
			fmt.Fprintf(w, "   %s %-7s %s → %s\n", treePrefix(i, len(routes)), r.Method, r.Path, r.Handler)
		}
	}

	results := registry.HealthAll(ctx)
	fmt.Fprintf(w, "\n🏥 Health Check\n")
	for i, h := range results {
		msg := ""
		if h.Message != "" {
			msg = " (" + h.Message + ")"
		}
		fmt.Fprintf(w, "   %s %s %s: %s%s\n", treePrefix(i, len(results)), healthStatusIcon(h.Status), h.Name, strings.ToLower(string(h.Status)), msg)
	}
	fmt.Fprintf(w, "\n")
}

func treePrefix(i, n int) string {
	if i == n-1 {
		return "└──"
	}
	return "├──"
}

func healthStatusIcon(status component.HealthStatus) string {
	switch status {
	case component.StatusHealthy:
		return "✅"
	case component.StatusDegraded:
		return "⚠️"
	case component.StatusUnhealthy:
		return "❌"
	default:
		return "❓"
	}
}
