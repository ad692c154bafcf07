package chain

import (
	"context"
	"encoding/hex"
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"sync"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

const (
	testContract = "0xaaaaaaaaaaaaaaaaaaaaaaaaaaaaaaaaaaaaaaaa"
	testToken    = "0xbbbbbbbbbbbbbbbbbbbbbbbbbbbbbbbbbbbbbbbb"
	testFrom     = "0xcccccccccccccccccccccccccccccccccccccccc"
	testTxHash   = "0xdeadbeefdeadbeefdeadbeefdeadbeefdeadbeefdeadbeefdeadbeefdeadbeef"
)

type rpcRequest struct {
	Method string            `json:"method"`
	Params []json.RawMessage `json:"params"`
}

// fakeNode records eth_sendTransaction payloads and answers with canned
// responses per method.
type fakeNode struct {
	mu       sync.Mutex
	sent     []map[string]string
	txErr    string
	callData string
	entered  chan struct{}
	block    chan struct{}
}

func (n *fakeNode) handler() http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		var req rpcRequest
		if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
			http.Error(w, err.Error(), http.StatusBadRequest)
			return
		}

		if n.entered != nil {
			select {
			case n.entered <- struct{}{}:
			default:
			}
		}
		if n.block != nil {
			<-n.block
		}

		switch req.Method {
		case "eth_sendTransaction":
			var tx map[string]string
			json.Unmarshal(req.Params[0], &tx)
			n.mu.Lock()
			n.sent = append(n.sent, tx)
			n.mu.Unlock()
			if n.txErr != "" {
				json.NewEncoder(w).Encode(map[string]any{
					"jsonrpc": "2.0", "id": 1,
					"error": map[string]any{"code": -32000, "message": n.txErr},
				})
				return
			}
			json.NewEncoder(w).Encode(map[string]any{"jsonrpc": "2.0", "id": 1, "result": testTxHash})
		case "eth_call":
			json.NewEncoder(w).Encode(map[string]any{"jsonrpc": "2.0", "id": 1, "result": n.callData})
		case "eth_blockNumber":
			json.NewEncoder(w).Encode(map[string]any{"jsonrpc": "2.0", "id": 1, "result": "0x10"})
		default:
			http.Error(w, "unexpected method "+req.Method, http.StatusBadRequest)
		}
	}
}

func (n *fakeNode) lastTx(t *testing.T) map[string]string {
	t.Helper()
	n.mu.Lock()
	defer n.mu.Unlock()
	require.NotEmpty(t, n.sent)
	return n.sent[len(n.sent)-1]
}

func newTestWriter(t *testing.T, node *fakeNode) (*Writer, *httptest.Server) {
	t.Helper()
	srv := httptest.NewServer(node.handler())
	t.Cleanup(srv.Close)

	client, err := NewClient(srv.URL)
	require.NoError(t, err)
	writer, err := NewWriter(client, testContract, testToken, testFrom, 300000)
	require.NoError(t, err)
	return writer, srv
}

func TestWriterRequestLoanCalldata(t *testing.T) {
	node := &fakeNode{}
	writer, _ := newTestWriter(t, node)

	out := writer.RequestLoan(context.Background(), "100", 2, 500, "tuition", "QmHash")
	require.True(t, out.Success, out.Err)
	assert.Equal(t, testTxHash, out.Hash)

	tx := node.lastTx(t)
	assert.Equal(t, testFrom, tx["from"])
	assert.Equal(t, testContract, tx["to"])

	data, err := hexDecode(tx["data"])
	require.NoError(t, err)
	assert.Equal(t, MethodID("requestLoan(uint256,uint256,uint256,string,string)"), data[:4])

	ret := NewReturnData(data[4:])
	amount, err := ret.Uint256(0)
	require.NoError(t, err)
	assert.Equal(t, "100000000", amount.String())

	months, err := ret.Uint64(1)
	require.NoError(t, err)
	assert.Equal(t, uint64(24), months)

	bps, err := ret.Uint64(2)
	require.NoError(t, err)
	assert.Equal(t, uint64(500), bps)

	reason, err := ret.StringAt(3)
	require.NoError(t, err)
	assert.Equal(t, "tuition", reason)
}

func TestWriterApproveSpendTargetsToken(t *testing.T) {
	node := &fakeNode{}
	writer, _ := newTestWriter(t, node)

	out := writer.ApproveSpend(context.Background(), "50")
	require.True(t, out.Success, out.Err)

	tx := node.lastTx(t)
	assert.Equal(t, testToken, tx["to"])

	data, err := hexDecode(tx["data"])
	require.NoError(t, err)
	assert.Equal(t, MethodID("approve(address,uint256)"), data[:4])

	spender, err := NewReturnData(data[4:]).AddressAt(0)
	require.NoError(t, err)
	assert.Equal(t, testContract, spender)
}

func TestWriterFailureDoesNotPanic(t *testing.T) {
	node := &fakeNode{txErr: "execution reverted: Insufficient funds"}
	writer, _ := newTestWriter(t, node)

	out := writer.VoteForLoan(context.Background(), 1)
	assert.False(t, out.Success)
	assert.Empty(t, out.Hash)
	assert.Contains(t, out.Err, "Insufficient funds")
}

func TestWriterRejectsInvalidInputBeforeSubmit(t *testing.T) {
	node := &fakeNode{}
	writer, _ := newTestWriter(t, node)

	out := writer.RequestLoan(context.Background(), "-10", 2, 500, "r", "")
	assert.False(t, out.Success)

	out = writer.RequestLoan(context.Background(), "10", 0, 500, "r", "")
	assert.False(t, out.Success)

	out = writer.RequestLoan(context.Background(), "10", 2, MaxBps+1, "r", "")
	assert.False(t, out.Success)

	out = writer.RegisterAsBorrower(context.Background(), "", "school")
	assert.False(t, out.Success)

	node.mu.Lock()
	defer node.mu.Unlock()
	assert.Empty(t, node.sent)
}

func TestWriterSingleFlight(t *testing.T) {
	node := &fakeNode{entered: make(chan struct{}, 1), block: make(chan struct{})}
	writer, _ := newTestWriter(t, node)

	done := make(chan TxOutcome, 1)
	go func() {
		done <- writer.VoteForLoan(context.Background(), 1)
	}()

	// Wait until the first submission holds the in-flight slot at the node.
	<-node.entered

	busy := writer.VoteForLoan(context.Background(), 2)
	assert.False(t, busy.Success)
	assert.Contains(t, busy.Err, "already pending")

	close(node.block)
	first := <-done
	assert.True(t, first.Success, first.Err)

	// Slot freed after completion; the closed block channel no longer stalls.
	out := writer.VoteForLoan(context.Background(), 3)
	assert.True(t, out.Success, out.Err)
}

func TestClientBlockNumber(t *testing.T) {
	node := &fakeNode{}
	srv := httptest.NewServer(node.handler())
	defer srv.Close()

	client, err := NewClient(srv.URL)
	require.NoError(t, err)

	n, err := client.BlockNumber(context.Background())
	require.NoError(t, err)
	assert.Equal(t, uint64(16), n)
}

func TestClientEthCallDecodesHex(t *testing.T) {
	word := make([]byte, wordSize)
	word[wordSize-1] = 0x2a
	node := &fakeNode{callData: "0x" + hex.EncodeToString(word)}
	srv := httptest.NewServer(node.handler())
	defer srv.Close()

	client, err := NewClient(srv.URL)
	require.NoError(t, err)

	raw, err := client.EthCall(context.Background(), testContract, []byte{0x01})
	require.NoError(t, err)

	v, err := NewReturnData(raw).Uint64(0)
	require.NoError(t, err)
	assert.Equal(t, uint64(42), v)
}
