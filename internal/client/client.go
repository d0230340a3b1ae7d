package client

import (
	"context"
	"errors"
	"fmt"
	"math/big"
	"strconv"
	"strings"
	"sync"
	"time"

	tea "github.com/charmbracelet/bubbletea"
	"github.com/charmbracelet/log"
	"github.com/coder/quartz"
	"golang.org/x/sync/errgroup"

	"github.com/block52/holdem-client/holdem"
	"github.com/block52/holdem-client/holdem/chips"
	"github.com/block52/holdem-client/internal/feed"
	"github.com/block52/holdem-client/internal/session"
	"github.com/block52/holdem-client/internal/tui"
	"github.com/block52/holdem-client/internal/txclient"
)

// timeoutPollInterval is how often the timeout policy is re-evaluated
// between snapshots.
const timeoutPollInterval = 2 * time.Second

// Client wires the game-state feed, the timeout watchdog and the
// transaction client under a single table session.
type Client struct {
	cfg      *Config
	logger   *log.Logger
	signer   *txclient.Signer
	tx       *txclient.Client
	registry *feed.Registry
	sessions *session.Store
	clock    quartz.Clock
}

// New builds a table client from configuration.
func New(cfg *Config, logger *log.Logger) (*Client, error) {
	if err := cfg.Validate(); err != nil {
		return nil, err
	}

	keyHex, err := cfg.PrivateKeyHex()
	if err != nil {
		return nil, err
	}
	signer, err := txclient.NewSigner(keyHex)
	if err != nil {
		return nil, fmt.Errorf("loading private key: %w", err)
	}

	registry := feed.NewRegistry(cfg.Server.NodeWSURL, logger)
	registry.SetReconnect(cfg.Server.ReconnectAttempts,
		time.Duration(cfg.Server.ReconnectDelay)*time.Second)

	return &Client{
		cfg:      cfg,
		logger:   logger.WithPrefix("client"),
		signer:   signer,
		tx:       txclient.New(cfg.Server.ProxyURL, signer, logger, nil),
		registry: registry,
		sessions: session.NewStore(nil, logger),
		clock:    quartz.NewReal(),
	}, nil
}

// Address returns the account address the client acts as.
func (c *Client) Address() string {
	return c.signer.Address()
}

// Play runs the interactive table view until the user quits or the
// context is cancelled.
func (c *Client) Play(ctx context.Context, tableID string) error {
	defer c.registry.Close()

	submit := func(cmd tui.Command) (string, error) {
		sctx, cancel := context.WithTimeout(ctx, 30*time.Second)
		defer cancel()
		switch cmd.Kind {
		case holdem.KindJoin:
			return c.tx.Join(sctx, tableID, cmd.Amount, 0)
		case holdem.KindLeave:
			return c.tx.Leave(sctx, tableID, cmd.Amount, 0)
		default:
			return c.tx.PerformAction(sctx, tableID, cmd.Kind, cmd.Amount, 0)
		}
	}

	model := tui.NewModel(c.logger, c.signer.Address(), c.cfg.Player.Name, submit)
	program := tea.NewProgram(model, tea.WithAltScreen())

	autoCh := make(chan session.AutoAction, 8)
	var stateMu sync.Mutex
	var latest *holdem.TableState
	unsubscribe, err := c.registry.Subscribe(tableID, c.signer.Address(),
		func(state *holdem.TableState) {
			stateMu.Lock()
			latest = state
			stateMu.Unlock()
			program.Send(tui.StateMsg{State: state})
			c.queueAutoActions(c.sessions.Observe(state), autoCh)
		},
		func(err error) {
			program.Send(tui.FeedErrMsg{Err: err})
		})
	if err != nil {
		return fmt.Errorf("subscribing to table %s: %w", tableID, err)
	}
	defer unsubscribe()

	gctx, cancel := context.WithCancel(ctx)
	defer cancel()

	g, gctx := errgroup.WithContext(gctx)
	g.Go(func() error {
		defer cancel()
		_, err := program.Run()
		return err
	})
	g.Go(func() error {
		c.runAutoActions(gctx, tableID, autoCh)
		return nil
	})
	g.Go(func() error {
		// Snapshots only arrive when actions happen, and an expired turn
		// clock is exactly the case where none do, so the policy is also
		// re-evaluated on a fixed cadence against the retained snapshot.
		return c.pollTimeouts(gctx, func() *holdem.TableState {
			stateMu.Lock()
			defer stateMu.Unlock()
			return latest
		}, autoCh)
	})
	g.Go(func() error {
		<-gctx.Done()
		program.Quit()
		return nil
	})

	return g.Wait()
}

// pollTimeouts runs the timeout policy against the latest snapshot on every
// tick until the context is cancelled.
func (c *Client) pollTimeouts(ctx context.Context, latest func() *holdem.TableState, autoCh chan<- session.AutoAction) error {
	ticker := c.clock.TickerFunc(ctx, timeoutPollInterval, func() error {
		if state := latest(); state != nil {
			c.queueAutoActions(c.sessions.Observe(state), autoCh)
		}
		return nil
	}, "timeouts")
	if err := ticker.Wait(); err != nil && !errors.Is(err, context.Canceled) {
		return err
	}
	return nil
}

// queueAutoActions forwards watchdog decisions for our own seat to the
// submission loop. The watchdog tracks every seat; only our own is ours to
// act for.
func (c *Client) queueAutoActions(autos []session.AutoAction, autoCh chan<- session.AutoAction) {
	for _, auto := range autos {
		if !strings.EqualFold(auto.PlayerID, c.signer.Address()) {
			continue
		}
		select {
		case autoCh <- auto:
		default:
			c.logger.Warn("auto-action dropped, queue full", "kind", auto.Kind)
		}
	}
}

// runAutoActions submits watchdog decisions for our own seat.
func (c *Client) runAutoActions(ctx context.Context, tableID string, autoCh <-chan session.AutoAction) {
	for {
		select {
		case <-ctx.Done():
			return
		case auto := <-autoCh:
			sctx, cancel := context.WithTimeout(ctx, 30*time.Second)
			txHash, err := c.tx.PerformAction(sctx, tableID, auto.Kind, nil, 0)
			cancel()
			if err != nil {
				c.logger.Error("auto-action failed", "kind", auto.Kind, "error", err)
				continue
			}
			c.logger.Info("auto-action submitted", "kind", auto.Kind, "tx", txHash)
		}
	}
}

// Perform submits a single signed action without the interactive view.
func (c *Client) Perform(ctx context.Context, tableID string, kind holdem.ActionKind, amount string) (string, error) {
	micro, err := parseAmount(amount)
	if err != nil {
		return "", err
	}
	switch kind {
	case holdem.KindJoin:
		if micro == nil {
			micro = parseBuyIn(c.cfg.Player.DefaultBuyIn)
		}
		return c.tx.Join(ctx, tableID, micro, 0)
	case holdem.KindLeave:
		return c.tx.Leave(ctx, tableID, micro, 0)
	default:
		return c.tx.PerformAction(ctx, tableID, kind, micro, 0)
	}
}

// parseAmount converts a display-unit amount string like "1.50" to
// micro-units. Empty means no amount.
func parseAmount(amount string) (*big.Int, error) {
	if amount == "" {
		return nil, nil
	}
	display, err := strconv.ParseFloat(amount, 64)
	if err != nil {
		return nil, fmt.Errorf("invalid amount %q", amount)
	}
	return chips.FromDisplay(display)
}

// parseBuyIn reads the configured default buy-in, already in micro-units.
func parseBuyIn(raw string) *big.Int {
	return chips.Parse(raw)
}

// FetchState waits for one snapshot of the table and returns it.
func (c *Client) FetchState(ctx context.Context, tableID string) (*holdem.TableState, error) {
	states := make(chan *holdem.TableState, 1)
	errs := make(chan error, 1)

	unsubscribe, err := c.registry.Subscribe(tableID, c.signer.Address(),
		func(state *holdem.TableState) {
			select {
			case states <- state:
			default:
			}
		},
		func(err error) {
			select {
			case errs <- err:
			default:
			}
		})
	if err != nil {
		return nil, err
	}
	defer unsubscribe()

	select {
	case state := <-states:
		return state, nil
	case err := <-errs:
		return nil, err
	case <-ctx.Done():
		return nil, ctx.Err()
	}
}
