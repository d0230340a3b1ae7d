package main

import (
	"context"
	"encoding/json"
	"fmt"
	"os"
	"time"

	"github.com/block52/holdem-client/cmd/b52poker/shared"
	"github.com/block52/holdem-client/internal/client"
)

type StateCmd struct {
	Table   string        `arg:"" help:"Table contract address"`
	Timeout time.Duration `default:"10s" help:"How long to wait for a snapshot"`
}

func (s *StateCmd) Run(cli *CLI) error {
	cfg, err := client.LoadConfig(cli.Config)
	if err != nil {
		return err
	}
	logger := shared.SetupLogger(os.Stderr, cfg.UI.LogLevel)

	c, err := client.New(cfg, logger)
	if err != nil {
		return err
	}

	ctx, cancel := context.WithTimeout(shared.SetupSignalHandler(logger), s.Timeout)
	defer cancel()

	state, err := c.FetchState(ctx, s.Table)
	if err != nil {
		return err
	}

	out, err := json.MarshalIndent(state, "", "  ")
	if err != nil {
		return err
	}
	fmt.Println(string(out))
	return nil
}
