package main

import (
	"github.com/alecthomas/kong"
)

// version is set by ldflags during build
var version = "dev"

type CLI struct {
	Version kong.VersionFlag `short:"v" help:"Show version"`
	Config  string           `short:"c" default:"b52poker.hcl" help:"Path to HCL config file"`

	Play    PlayCmd    `cmd:"" help:"Join the interactive table view"`
	Perform PerformCmd `cmd:"" help:"Submit a single signed action and exit"`
	State   StateCmd   `cmd:"" help:"Print one table snapshot and exit"`
}

func main() {
	var cli CLI
	ctx := kong.Parse(&cli,
		kong.Name("b52poker"),
		kong.Description("Terminal client for Block52 poker tables"),
		kong.UsageOnError(),
		kong.ConfigureHelp(kong.HelpOptions{
			Compact: true,
		}),
		kong.Vars{
			"version": version,
		},
	)
	err := ctx.Run(&cli)
	ctx.FatalIfErrorf(err)
}
