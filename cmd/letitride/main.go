package main

import (
	"github.com/alecthomas/kong"
)

// version is set by ldflags during build
var version = "dev"

type CLI struct {
	Version kong.VersionFlag `short:"v" help:"Show version"`
	Run     RunCmd           `cmd:"" default:"withargs" help:"Run a Let It Ride simulation"`
	Check   CheckCmd         `cmd:"" help:"Validate a configuration file without running it"`
}

func main() {
	var cli CLI
	ctx := kong.Parse(&cli,
		kong.Name("letitride"),
		kong.Description("Let It Ride session simulator with bankroll and risk analysis"),
		kong.UsageOnError(),
		kong.ConfigureHelp(kong.HelpOptions{
			Compact: true,
		}),
		kong.Vars{
			"version": version,
		},
	)
	err := ctx.Run()
	ctx.FatalIfErrorf(err)
}
