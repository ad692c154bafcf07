package chain

import (
	"bytes"
	"context"
	"encoding/json"
	"fmt"
	"net/http"
	"regexp"
	"strconv"
	"strings"
	"time"
)

var addressPattern = regexp.MustCompile(`^0x[0-9a-fA-F]{40}$`)

// IsAddress reports whether v looks like an EVM account address.
func IsAddress(v string) bool {
	return addressPattern.MatchString(strings.TrimSpace(v))
}

// Client is a minimal JSON-RPC client for the chain node. It only speaks the
// three methods this service needs: eth_call, eth_sendTransaction and
// eth_blockNumber.
type Client struct {
	httpURL    string
	httpClient *http.Client
}

func NewClient(httpURL string) (*Client, error) {
	if strings.TrimSpace(httpURL) == "" {
		return nil, fmt.Errorf("missing CHAIN_RPC_URL")
	}
	return &Client{
		httpURL:    strings.TrimSpace(httpURL),
		httpClient: &http.Client{Timeout: 20 * time.Second},
	}, nil
}

func (c *Client) BlockNumber(ctx context.Context) (uint64, error) {
	var out string
	if err := c.rpc(ctx, "eth_blockNumber", []any{}, &out); err != nil {
		return 0, err
	}
	return parseHexUint64(out)
}

// EthCall executes a read-only contract call and returns the raw return data.
func (c *Client) EthCall(ctx context.Context, to string, data []byte) ([]byte, error) {
	callObj := map[string]string{
		"to":   to,
		"data": "0x" + hexEncode(data),
	}
	var out string
	if err := c.rpc(ctx, "eth_call", []any{callObj, "latest"}, &out); err != nil {
		return nil, err
	}
	return hexDecode(out)
}

// SendTransaction submits a state-changing call through the node's unlocked
// account and returns the transaction hash.
func (c *Client) SendTransaction(ctx context.Context, from, to string, gasLimit uint64, data []byte) (string, error) {
	txObj := map[string]string{
		"from":  from,
		"to":    to,
		"gas":   fmt.Sprintf("0x%x", gasLimit),
		"data":  "0x" + hexEncode(data),
		"value": "0x0",
	}

	var txHash string
	if err := c.rpc(ctx, "eth_sendTransaction", []any{txObj}, &txHash); err != nil {
		return "", err
	}
	if !strings.HasPrefix(txHash, "0x") {
		return "", fmt.Errorf("invalid tx hash response")
	}
	return txHash, nil
}

func (c *Client) rpc(ctx context.Context, method string, params []any, out any) error {
	reqBody, _ := json.Marshal(map[string]any{
		"jsonrpc": "2.0",
		"id":      1,
		"method":  method,
		"params":  params,
	})
	req, err := http.NewRequestWithContext(ctx, http.MethodPost, c.httpURL, bytes.NewReader(reqBody))
	if err != nil {
		return err
	}
	req.Header.Set("Content-Type", "application/json")

	resp, err := c.httpClient.Do(req)
	if err != nil {
		return err
	}
	defer resp.Body.Close()

	var payload struct {
		Result json.RawMessage `json:"result"`
		Error  *struct {
			Code    int    `json:"code"`
			Message string `json:"message"`
		} `json:"error"`
	}
	if err := json.NewDecoder(resp.Body).Decode(&payload); err != nil {
		return err
	}
	if payload.Error != nil {
		return fmt.Errorf("rpc error %d: %s", payload.Error.Code, payload.Error.Message)
	}
	if len(payload.Result) == 0 {
		return fmt.Errorf("rpc empty result")
	}
	if err := json.Unmarshal(payload.Result, out); err != nil {
		return err
	}
	return nil
}

func parseHexUint64(v string) (uint64, error) {
	clean := strings.TrimSpace(strings.ToLower(v))
	clean = strings.TrimPrefix(clean, "0x")
	if clean == "" {
		return 0, fmt.Errorf("empty hex value")
	}
	return strconv.ParseUint(clean, 16, 64)
}
