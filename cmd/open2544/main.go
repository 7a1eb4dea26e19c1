package main

import (
	"context"
	"fmt"
	"log"
	"os"

	"github.com/kelseyhightower/envconfig"
	"github.com/mcuadros/go-defaults"
	"github.com/urfave/cli"

	"github.com/open2544/open2544/pkg/open2544"
)

var (
	version = "dev"
	commit  = "none"
	date    = "unknown"
	builtBy = "unknown"
)

func main() {
	app := newApp(version)
	if err := app.Run(os.Args); err != nil {
		log.Fatalf("%+v", err)
	}
}

func newApp(version string) *cli.App {
	app := cli.NewApp()
	app.Name = "Open2544"
	app.Version = fmt.Sprintf("%s, %s, %s, %s", version, commit, date, builtBy)

	app.Usage = "RFC 2544 benchmark traffic configuration builder and validator"

	app.EnableBashCompletion = true
	app.Flags = []cli.Flag{
		cli.StringFlag{
			Name:  "config, c",
			Usage: "path to the test configuration file",
		},
		cli.BoolFlag{
			Name:  "validate-only, n",
			Usage: "validate the configuration and exit",
		},
		cli.IntFlag{
			Name:  "streams, s",
			Value: 1,
			Usage: "streams to configure per tx port",
		},
		cli.IntFlag{
			Name:  "verbose, v",
			Usage: "log verbosity, 1 or more enables debug logging",
		},
		cli.BoolFlag{
			Name:  "quiet, q",
			Usage: "only log warnings and errors",
		},
		cli.BoolFlag{
			Name:  "json-log",
			Usage: "log in JSON format",
		},
	}
	app.Action = run
	return app
}

func run(ctx *cli.Context) error {
	var cfg open2544.Config
	defaults.SetDefaults(&cfg)
	if err := envconfig.Process("open2544", &cfg); err != nil {
		return fmt.Errorf("failed to read environment: %w", err)
	}

	if ctx.String("config") != "" {
		cfg.ConfigPath = ctx.String("config")
	}
	cfg.ValidateOnly = ctx.Bool("validate-only")
	if ctx.IsSet("streams") {
		cfg.StreamsPerPort = ctx.Int("streams")
	}
	cfg.LoggerConfig.Verbose = ctx.Int("verbose")
	cfg.LoggerConfig.Quiet = ctx.Bool("quiet")
	cfg.LoggerConfig.JSON = ctx.Bool("json-log")

	if err := cfg.Validate(); err != nil {
		return err
	}

	o, err := open2544.New(cfg)
	if err != nil {
		return err
	}
	defer o.Close()

	return o.Run(context.Background())
}
