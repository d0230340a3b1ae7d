// Package txclient submits signed player actions to the poker VM through
// its HTTP proxy. It owns no game logic: amounts arrive already resolved in
// micro-units and the server remains the authority on legality.
package txclient

import (
	"bytes"
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"io"
	"math/big"
	"net/http"
	"strings"
	"sync"
	"time"

	"github.com/charmbracelet/log"
	"github.com/coder/quartz"

	"github.com/block52/holdem-client/holdem"
)

// ErrSubmissionInFlight is returned when an action is submitted while a
// previous one has not completed. There is no queue: the UI's busy flag
// maps directly onto this error.
var ErrSubmissionInFlight = errors.New("txclient: action submission already in flight")

// Client signs and submits table actions.
type Client struct {
	proxyURL string
	signer   *Signer
	http     *http.Client
	logger   *log.Logger
	clock    quartz.Clock

	mu   sync.Mutex
	busy bool
}

// New creates a submission client for the given proxy base URL.
func New(proxyURL string, signer *Signer, logger *log.Logger, clock quartz.Clock) *Client {
	if clock == nil {
		clock = quartz.NewReal()
	}
	return &Client{
		proxyURL: strings.TrimRight(proxyURL, "/"),
		signer:   signer,
		http:     &http.Client{Timeout: 30 * time.Second},
		logger:   logger.WithPrefix("txclient").With("account", signer.Address()),
		clock:    clock,
	}
}

// performRequest is the proxy's perform/playeraction payload.
type performRequest struct {
	UserAddress string `json:"userAddress"`
	ActionType  string `json:"actionType,omitempty"`
	Action      string `json:"action,omitempty"`
	Amount      string `json:"amount"`
	Signature   string `json:"signature"`
	PublicKey   string `json:"publicKey"`
	Timestamp   int64  `json:"timestamp"`
	Nonce       int64  `json:"nonce"`
}

type performResponse struct {
	TxHash string `json:"txHash"`
	Hash   string `json:"hash"`
	Error  string `json:"error"`
}

// PerformAction submits a signed game action and returns the transaction
// hash. Amount is in micro-units and may be nil for non-monetary kinds.
// Callers are responsible for having clamped bet/raise amounts to the
// server-declared bounds; no clamping happens here.
func (c *Client) PerformAction(ctx context.Context, tableID string, kind holdem.ActionKind, amount *big.Int, nonce int64) (string, error) {
	return c.submit(ctx, tableID, "/perform", kind.String(), amount, nonce, true)
}

// Join buys into a table. Amount is the buy-in in micro-units.
func (c *Client) Join(ctx context.Context, tableID string, buyIn *big.Int, nonce int64) (string, error) {
	return c.submit(ctx, tableID, "/playeraction", holdem.KindJoin.String(), buyIn, nonce, false)
}

// Leave withdraws the player's remaining stack from a table.
func (c *Client) Leave(ctx context.Context, tableID string, stack *big.Int, nonce int64) (string, error) {
	return c.submit(ctx, tableID, "/playeraction", holdem.KindLeave.String(), stack, nonce, false)
}

func (c *Client) submit(ctx context.Context, tableID, endpoint, action string, amount *big.Int, nonce int64, asActionType bool) (string, error) {
	if err := c.acquire(); err != nil {
		return "", err
	}
	defer c.release()

	amountStr := "0"
	if amount != nil && amount.Sign() > 0 {
		amountStr = amount.String()
	}

	timestamp := c.clock.Now().Unix()
	if nonce == 0 {
		nonce = timestamp
	}

	signature, err := c.signer.Sign(action + amountStr + tableID + fmt.Sprintf("%d", timestamp))
	if err != nil {
		return "", err
	}

	req := performRequest{
		UserAddress: c.signer.Address(),
		Amount:      amountStr,
		Signature:   signature,
		PublicKey:   c.signer.Address(),
		Timestamp:   timestamp,
		Nonce:       nonce,
	}
	if asActionType {
		req.ActionType = action
	} else {
		req.Action = action
	}

	c.logger.Debug("Submitting action", "table", tableID, "action", action, "amount", amountStr)

	body, err := json.Marshal(req)
	if err != nil {
		return "", err
	}

	url := c.proxyURL + "/table/" + tableID + endpoint
	httpReq, err := http.NewRequestWithContext(ctx, http.MethodPost, url, bytes.NewReader(body))
	if err != nil {
		return "", err
	}
	httpReq.Header.Set("Content-Type", "application/json")

	resp, err := c.http.Do(httpReq)
	if err != nil {
		return "", fmt.Errorf("txclient: submission failed: %w", err)
	}
	defer resp.Body.Close()

	data, err := io.ReadAll(resp.Body)
	if err != nil {
		return "", fmt.Errorf("txclient: reading response: %w", err)
	}

	var parsed performResponse
	if err := json.Unmarshal(data, &parsed); err != nil {
		return "", fmt.Errorf("txclient: malformed response: %w", err)
	}

	if resp.StatusCode != http.StatusOK {
		msg := parsed.Error
		if msg == "" {
			msg = strings.TrimSpace(string(data))
		}
		return "", fmt.Errorf("txclient: proxy returned %d: %s", resp.StatusCode, msg)
	}
	if parsed.Error != "" {
		return "", fmt.Errorf("txclient: action rejected: %s", parsed.Error)
	}

	hash := parsed.TxHash
	if hash == "" {
		hash = parsed.Hash
	}

	c.logger.Info("Action submitted", "table", tableID, "action", action, "tx", hash)
	return hash, nil
}

func (c *Client) acquire() error {
	c.mu.Lock()
	defer c.mu.Unlock()
	if c.busy {
		return ErrSubmissionInFlight
	}
	c.busy = true
	return nil
}

func (c *Client) release() {
	c.mu.Lock()
	c.busy = false
	c.mu.Unlock()
}
