package client

import (
	"context"
	"encoding/json"
	"fmt"
	"net/http"
	"time"

	"github.com/gagliardetto/solana-go/rpc/jsonrpc"
)

const rpcTimeout = 30 * time.Second

// rpcTransport speaks rippled's JSON-RPC over HTTP. The method is the
// command name and params is a one-element array.
type rpcTransport struct {
	client jsonrpc.RPCClient
}

func newRPCTransport(endpoint string) *rpcTransport {
	return &rpcTransport{
		client: jsonrpc.NewClientWithOpts(endpoint, &jsonrpc.RPCClientOpts{
			HTTPClient: &http.Client{Timeout: rpcTimeout},
		}),
	}
}

func (t *rpcTransport) request(ctx context.Context, command string, params map[string]any, out any) error {
	if params == nil {
		params = map[string]any{}
	}

	var raw json.RawMessage
	if err := t.client.CallForInto(ctx, &raw, command, []interface{}{params}); err != nil {
		return fmt.Errorf("%s: %w", command, err)
	}
	return decodeResult(command, raw, out)
}

func (t *rpcTransport) close() error {
	return t.client.Close()
}
