// Command writer serves the Essay and Poem page, which calls the promptserve
// essay and poem pipelines.
package main

import (
	"context"
	"fmt"
	"os"
	"time"

	"github.com/jessevdk/go-flags"

	"github.com/kbukum/promptserve/bootstrap"
	"github.com/kbukum/promptserve/client"
	"github.com/kbukum/promptserve/component"
	"github.com/kbukum/promptserve/httpclient"
	"github.com/kbukum/promptserve/logger"
	"github.com/kbukum/promptserve/server"
	"github.com/kbukum/promptserve/ui"
	"github.com/kbukum/promptserve/version"
)

// probeTimeout bounds the serving front health probe behind /health.
const probeTimeout = 3 * time.Second

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

	c, err := client.New(cfg.Client, app.Logger)
	if err != nil {
		return err
	}
	app.OnStop(c.Close)

	srv := server.New(cfg.Server, app.Logger)
	srv.ApplyDefaults(cfg.Name, app.Components.HealthAll)
	ui.New(c, ui.Paths{Essay: cfg.Client.EssayPath, Poem: cfg.Client.PoemPath}, app.Logger).
		Register(srv.GinEngine())
	app.Logger.Info("Using serving front", logger.Fields("base_url", cfg.Client.BaseURL))

	probe := httpclient.NewComponent(httpclient.Config{
		Name:       "serving-front",
		BaseURL:    cfg.Client.BaseURL,
		Timeout:    probeTimeout,
		HealthPath: "/alive",
	})
	for _, c := range []component.Component{probe, server.NewComponent(srv)} {
		if err := app.RegisterComponent(c); err != nil {
			return err
		}
	}
	return app.Run(ctx)
}
