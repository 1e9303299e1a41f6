package blockchain

import (
	"bytes"
	"context"
	"encoding/json"
	"io"
	"net/http"
	"net/url"
	"strings"
	"time"

	"github.com/Keyur279/Sia-Cli-tool/pkg/common"
	"github.com/pkg/errors"
	"go.uber.org/zap"
)

// maxErrorBody bounds how much of an error response is kept as detail.
const maxErrorBody = 4096

var _ Service = (*Client)(nil)

// Client talks to a walletd style HTTP API. It never retries.
type Client struct {
	baseURL  string
	password string
	client   *http.Client
	logger   *zap.Logger
}

// NewClient creates a client for the API rooted at baseURL, e.g.
// http://localhost:9980/api. password is sent with HTTP basic auth.
func NewClient(baseURL, password string, logger *zap.Logger) *Client {
	return &Client{
		baseURL:  strings.TrimRight(baseURL, "/"),
		password: password,
		logger:   logger,
		client: &http.Client{
			Timeout: 30 * time.Second,
			Transport: &http.Transport{
				MaxIdleConns:    10,
				IdleConnTimeout: 90 * time.Second,
			},
		},
	}
}

func (c *Client) do(ctx context.Context, method, path string, body interface{}) (*http.Response, error) {
	var r io.Reader
	if body != nil {
		b, err := json.Marshal(body)
		if err != nil {
			return nil, errors.Wrap(err, "blockchain: marshal request")
		}
		r = bytes.NewReader(b)
	}
	req, err := http.NewRequestWithContext(ctx, method, c.baseURL+path, r)
	if err != nil {
		return nil, errors.Wrap(err, "blockchain: create request")
	}
	if body != nil {
		req.Header.Set("Content-Type", "application/json")
	}
	if c.password != "" {
		req.SetBasicAuth("", c.password)
	}

	c.logger.Debug("api request", zap.String("method", method), zap.String("path", path))
	resp, err := c.client.Do(req)
	if err != nil {
		return nil, errors.Wrapf(ErrFetchFailed, "%s %s: %v", method, path, err)
	}
	return resp, nil
}

// get decodes the JSON response of a GET request into v.
func (c *Client) get(ctx context.Context, path string, v interface{}) error {
	resp, err := c.do(ctx, http.MethodGet, path, nil)
	if err != nil {
		return err
	}
	defer resp.Body.Close()

	if resp.StatusCode < 200 || resp.StatusCode >= 300 {
		detail, _ := io.ReadAll(io.LimitReader(resp.Body, maxErrorBody))
		return errors.Wrapf(ErrFetchFailed, "GET %s: HTTP %d: %s", path, resp.StatusCode, strings.TrimSpace(string(detail)))
	}
	if err := json.NewDecoder(resp.Body).Decode(v); err != nil {
		return errors.Wrapf(ErrInvalidResponse, "GET %s: %v", path, err)
	}
	return nil
}

type unspentResponse struct {
	Basis   common.ChainIndex      `json:"basis"`
	Outputs []common.UnspentOutput `json:"outputs"`
}

// GetUTXOs gets all unspent siacoin outputs of addr.
func (c *Client) GetUTXOs(ctx context.Context, addr common.Address) ([]*common.UnspentOutput, error) {
	var raw json.RawMessage
	if err := c.get(ctx, "/addresses/"+url.PathEscape(addr.String())+"/outputs/siacoin", &raw); err != nil {
		return nil, err
	}

	// older servers answer with a bare array
	var outputs []common.UnspentOutput
	if trimmed := bytes.TrimSpace(raw); len(trimmed) > 0 && trimmed[0] == '[' {
		if err := json.Unmarshal(trimmed, &outputs); err != nil {
			return nil, errors.Wrap(ErrInvalidResponse, err.Error())
		}
	} else {
		var resp unspentResponse
		if err := json.Unmarshal(raw, &resp); err != nil {
			return nil, errors.Wrap(ErrInvalidResponse, err.Error())
		}
		outputs = resp.Outputs
	}

	utxos := make([]*common.UnspentOutput, 0, len(outputs))
	for i := range outputs {
		if outputs[i].Address == (common.Address{}) {
			outputs[i].Address = addr
		}
		utxos = append(utxos, &outputs[i])
	}
	c.logger.Debug("fetched utxos", zap.Stringer("address", addr), zap.Int("count", len(utxos)))
	return utxos, nil
}

// Tip returns the current chain tip.
func (c *Client) Tip(ctx context.Context) (common.ChainIndex, error) {
	var tip common.ChainIndex
	if err := c.get(ctx, "/consensus/tip", &tip); err != nil {
		return common.ChainIndex{}, err
	}
	return tip, nil
}

// GetFeeRate returns the recommended fee in hastings per byte.
func (c *Client) GetFeeRate(ctx context.Context) (common.Currency, error) {
	var rate common.Currency
	if err := c.get(ctx, "/txpool/fee", &rate); err != nil {
		return common.ZeroCurrency, err
	}
	return rate, nil
}

type broadcastRequest struct {
	Basis          common.ChainIndex           `json:"basis"`
	Transactions   []json.RawMessage           `json:"transactions"`
	V2Transactions []*common.SignedTransaction `json:"v2transactions"`
}

// Broadcast submits txn. A non-2xx answer becomes a *BroadcastError
// carrying the service's response body.
func (c *Client) Broadcast(ctx context.Context, basis common.ChainIndex, txn *common.SignedTransaction) error {
	body := broadcastRequest{
		Basis:          basis,
		Transactions:   []json.RawMessage{},
		V2Transactions: []*common.SignedTransaction{txn},
	}
	resp, err := c.do(ctx, http.MethodPost, "/txpool/broadcast", body)
	if err != nil {
		return err
	}
	defer resp.Body.Close()

	if resp.StatusCode < 200 || resp.StatusCode >= 300 {
		detail, _ := io.ReadAll(io.LimitReader(resp.Body, maxErrorBody))
		return &BroadcastError{StatusCode: resp.StatusCode, Detail: strings.TrimSpace(string(detail))}
	}
	c.logger.Info("transaction broadcast", zap.Stringer("basis", basis), zap.Int("inputs", len(txn.SiacoinInputs)))
	return nil
}
