package server

import (
	"context"
	"sort"
	"strings"

	"github.com/kbukum/promptserve/component"
)

const componentName = "http-server"

var (
	_ component.Component     = (*Component)(nil)
	_ component.Describable   = (*Component)(nil)
	_ component.RouteProvider = (*Component)(nil)
)

// Component wraps Server for lifecycle management.
type Component struct {
	server *Server
}

// NewComponent returns a component backed by the given Server.
func NewComponent(s *Server) *Component {
	return &Component{server: s}
}

// Name returns the component name used for registration.
func (sc *Component) Name() string { return componentName }

// Start starts the underlying HTTP server.
func (sc *Component) Start(ctx context.Context) error {
	return sc.server.Start(ctx)
}

// Stop gracefully shuts down the underlying HTTP server.
func (sc *Component) Stop(ctx context.Context) error {
	return sc.server.Stop(ctx)
}

// Health reports healthy while the accept loop runs.
func (sc *Component) Health(ctx context.Context) component.Health {
	if sc.server.Serving() {
		return component.Health{Name: componentName, Status: component.StatusHealthy}
	}
	return component.Health{
		Name:    componentName,
		Status:  component.StatusUnhealthy,
		Message: "HTTP server not serving",
	}
}

// Describe returns summary info for the startup display.
func (sc *Component) Describe() component.Description {
	return component.Description{
		Name:    "HTTP Server",
		Type:    "server",
		Details: sc.server.Addr(),
		Port:    sc.server.config.Port,
	}
}

// systemPaths are listed after the application routes in the summary.
var systemPaths = map[string]bool{
	"/health": true,
	"/ready":  true,
	"/alive":  true,
	"/info":   true,
}

// Routes returns all registered HTTP routes for the startup summary,
// application routes first.
func (sc *Component) Routes() []component.Route {
	ginRoutes := sc.server.engine.Routes()
	sort.SliceStable(ginRoutes, func(i, j int) bool {
		iSys, jSys := systemPaths[ginRoutes[i].Path], systemPaths[ginRoutes[j].Path]
		if iSys != jSys {
			return !iSys
		}
		if ginRoutes[i].Path != ginRoutes[j].Path {
			return ginRoutes[i].Path < ginRoutes[j].Path
		}
		return methodOrder(ginRoutes[i].Method) < methodOrder(ginRoutes[j].Method)
	})

	routes := make([]component.Route, 0, len(ginRoutes))
	for _, r := range ginRoutes {
		handler := formatHandlerName(r.Handler)
		if systemPaths[r.Path] {
			handler += " ⚙️"
		}
		routes = append(routes, component.Route{Method: r.Method, Path: r.Path, Handler: handler})
	}
	return routes
}

// formatHandlerName shortens Gin's handler names, e.g.
// "github.com/kbukum/promptserve/serve.(*handler).invoke-fm" becomes "handler.invoke".
func formatHandlerName(fullPath string) string {
	name := strings.TrimSuffix(fullPath, "-fm")
	if idx := strings.LastIndex(name, "/"); idx >= 0 {
		name = name[idx+1:]
	}
	name = strings.ReplaceAll(name, "(*", "")
	name = strings.ReplaceAll(name, ")", "")

	// Closures such as "endpoint.Health.func1" keep only the named part.
	if strings.Contains(name, ".func") {
		parts := strings.Split(name, ".")
		for i := len(parts) - 1; i >= 0; i-- {
			if !strings.HasPrefix(parts[i], "func") {
				return strings.ToLower(parts[i])
			}
		}
	}

	if pkg, rest, ok := strings.Cut(name, "."); ok && rest != "" && strings.ToLower(pkg) == pkg {
		name = rest
	}
	return name
}

func methodOrder(method string) int {
	switch method {
	case "GET":
		return 0
	case "POST":
		return 1
	default:
		return 2
	}
}
