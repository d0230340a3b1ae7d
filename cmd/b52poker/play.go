package main

import (
	"github.com/block52/holdem-client/cmd/b52poker/shared"
	"github.com/block52/holdem-client/internal/client"
)

type PlayCmd struct {
	Table string `arg:"" help:"Table contract address"`
}

func (p *PlayCmd) Run(cli *CLI) error {
	cfg, err := client.LoadConfig(cli.Config)
	if err != nil {
		return err
	}

	// The table view owns the terminal, so logs go to a file.
	logger, closeLog, err := shared.SetupFileLogger(cfg.UI.LogFile, cfg.UI.LogLevel)
	if err != nil {
		return err
	}
	defer closeLog()

	c, err := client.New(cfg, logger)
	if err != nil {
		return err
	}

	ctx := shared.SetupSignalHandler(logger)
	return c.Play(ctx, p.Table)
}
