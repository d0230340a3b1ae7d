package main

import (
	"fmt"
	"os"

	"github.com/block52/holdem-client/cmd/b52poker/shared"
	"github.com/block52/holdem-client/holdem"
	"github.com/block52/holdem-client/internal/client"
)

type PerformCmd struct {
	Table  string `arg:"" help:"Table contract address"`
	Action string `arg:"" help:"Action to submit (fold, check, call, bet, raise, join, leave, ...)"`
	Amount string `arg:"" optional:"" help:"Amount in display units, e.g. 1.50"`
}

func (p *PerformCmd) Run(cli *CLI) error {
	cfg, err := client.LoadConfig(cli.Config)
	if err != nil {
		return err
	}
	logger := shared.SetupLogger(os.Stderr, cfg.UI.LogLevel)

	kind := holdem.ActionKindFromString(p.Action)
	if kind == holdem.KindUnknown {
		return fmt.Errorf("unknown action %q", p.Action)
	}

	c, err := client.New(cfg, logger)
	if err != nil {
		return err
	}

	ctx := shared.SetupSignalHandler(logger)
	txHash, err := c.Perform(ctx, p.Table, kind, p.Amount)
	if err != nil {
		return err
	}

	fmt.Println(txHash)
	return nil
}
