// Package bootstrap runs a binary's lifecycle: typed config, component
// registration, startup hooks, a startup summary, and graceful shutdown on
// SIGINT/SIGTERM.
//
//	app, err := bootstrap.NewApp(&cfg)
//	app.RegisterComponent(srv)
//	app.OnConfigure(func(ctx context.Context, a *bootstrap.App[*Config]) error {
//	    serve.AddRoutes(srv.APIGroup(), "/essay", essay, a.Logger)
//	    return nil
//	})
//	err = app.Run(context.Background())
package bootstrap
