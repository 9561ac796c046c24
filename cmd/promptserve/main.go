// Command promptserve serves the gemini, essay and poem pipelines over HTTP.
//
// Usage:
//
//	GOOGLE_API_KEY=... promptserve [--config config.yml] [--env-file .env]
package main

import (
	"context"
	"fmt"
	"os"

	"github.com/jessevdk/go-flags"

	"github.com/kbukum/promptserve/bootstrap"
	"github.com/kbukum/promptserve/component"
	"github.com/kbukum/promptserve/llm"
	"github.com/kbukum/promptserve/logger"
	"github.com/kbukum/promptserve/observability"
	"github.com/kbukum/promptserve/server"
	"github.com/kbukum/promptserve/util"
	"github.com/kbukum/promptserve/version"

	_ "github.com/kbukum/promptserve/llm/gemini"
	_ "github.com/kbukum/promptserve/llm/ollama"
)

func main() {
	opts, err := parseOptions(os.Args[1:])
	if err != nil {
		if flags.WroteHelp(err) {
			fmt.Println(err)
			return
		}
		fmt.Fprintln(os.Stderr, err)
		os.Exit(2)
	}
	if opts.Version {
		fmt.Println(version.Full())
		return
	}

	if err := run(context.Background(), opts); err != nil {
		fmt.Fprintf(os.Stderr, "%s: %v\n", serviceName, err)
		os.Exit(1)
	}
}

func run(ctx context.Context, opts *Options) error {
	cfg, err := loadConfig(opts)
	if err != nil {
		return err
	}
	app, err := bootstrap.NewApp(cfg)
	if err != nil {
		return err
	}

	telemetry := observability.NewComponent(observability.ServiceInfo{
		Name:        cfg.Name,
		Version:     cfg.Version,
		Environment: cfg.Environment,
	}, cfg.Telemetry)
	hosted := llm.NewComponent(cfg.Gemini)
	local := llm.NewComponent(cfg.Ollama)
	for _, c := range []component.Component{telemetry, hosted, local} {
		if err := app.RegisterComponent(c); err != nil {
			return err
		}
	}

	app.Logger.Info("Gemini credential loaded", logger.Fields("api_key", util.MaskSecret(cfg.Gemini.APIKey, 4)))

	srv := server.New(cfg.Server, app.Logger)
	srv.ApplyDefaults(cfg.Name, app.Components.HealthAll)

	// Adapters and instruments exist only after their components start, so
	// the routes are mounted here and the server starts last.
	app.OnConfigure(func(ctx context.Context, a *bootstrap.App[*Config]) error {
		mountPipelines(srv.GinEngine(), hosted.Adapter(), local.Adapter(), telemetry.Metrics(), a.Logger.WithComponent("pipeline"))
		return a.StartComponent(ctx, server.NewComponent(srv))
	})

	return app.Run(ctx)
}
