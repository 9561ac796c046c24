package main

import (
	"github.com/jessevdk/go-flags"

	"github.com/kbukum/promptserve/config"
)

// Options are the command-line flags. Everything else comes from config.yml,
// .env and the environment.
type Options struct {
	Config  string `short:"f" long:"config" description:"config YAML path (default: search ./cmd/writer/config.yml and friends)"`
	EnvFile string `short:"e" long:"env-file" description:".env file path"`
	Version bool   `short:"v" long:"version" description:"print version and exit"`
}

func parseOptions(args []string) (*Options, error) {
	opts := &Options{}
	parser := flags.NewParser(opts, flags.HelpFlag|flags.PassDoubleDash)
	parser.Name = serviceName
	if _, err := parser.ParseArgs(args); err != nil {
		return nil, err
	}
	return opts, nil
}

// loaderOptions maps flags onto config loader options.
func (o *Options) loaderOptions() []config.LoaderOption {
	var out []config.LoaderOption
	if o.Config != "" {
		out = append(out, config.WithConfigFile(o.Config))
	}
	if o.EnvFile != "" {
		out = append(out, config.WithEnvFile(o.EnvFile))
	}
	return out
}
