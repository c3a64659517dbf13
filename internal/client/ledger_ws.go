package client

import (
	"context"
	"encoding/json"
	"fmt"
	"sync"
	"time"

	"github.com/gorilla/websocket"
	"go.uber.org/zap"

	"github.com/AlexZinkM/xrpl-wallet/internal/logging"
)

const wsWriteTimeout = 5 * time.Second

type wsReply struct {
	raw json.RawMessage
	err error
}

// wsMessage is a rippled WebSocket response. Errors sit next to the id;
// successful results are nested under result.
type wsMessage struct {
	ID     *uint64         `json:"id"`
	Type   string          `json:"type"`
	Result json.RawMessage `json:"result"`
	ledgerStatus
}

// wsTransport multiplexes requests over one connection, matching responses
// to requests by id.
type wsTransport struct {
	conn   *websocket.Conn
	logger *zap.Logger

	writeMu sync.Mutex

	mu      sync.Mutex
	nextID  uint64
	pending map[uint64]chan wsReply
	err     error // set once the read loop stops

	done chan struct{}
}

func dialWS(ctx context.Context, endpoint string, logger *zap.Logger) (*wsTransport, error) {
	conn, _, err := websocket.DefaultDialer.DialContext(ctx, endpoint, nil)
	if err != nil {
		return nil, err
	}
	t := &wsTransport{
		conn:    conn,
		logger:  logging.OrNop(logger),
		pending: make(map[uint64]chan wsReply),
		done:    make(chan struct{}),
	}
	go t.readLoop()
	return t, nil
}

func (t *wsTransport) readLoop() {
	defer close(t.done)

	for {
		_, data, err := t.conn.ReadMessage()
		if err != nil {
			t.fail(fmt.Errorf("%w: %v", ErrNotConnected, err))
			return
		}

		var msg wsMessage
		if err := json.Unmarshal(data, &msg); err != nil {
			t.logger.Warn("failed to decode ledger message", zap.Error(err))
			continue
		}
		// streams (ledgerClosed, transaction, ...) carry no id
		if msg.ID == nil {
			continue
		}

		t.mu.Lock()
		ch, ok := t.pending[*msg.ID]
		delete(t.pending, *msg.ID)
		t.mu.Unlock()
		if !ok {
			continue
		}
		ch <- wsReply{raw: msg.Result, err: msg.ledgerStatus.err()}
	}
}

// fail resolves every pending request with err and rejects new ones.
func (t *wsTransport) fail(err error) {
	t.mu.Lock()
	defer t.mu.Unlock()
	t.err = err
	for id, ch := range t.pending {
		ch <- wsReply{err: err}
		delete(t.pending, id)
	}
}

func (t *wsTransport) request(ctx context.Context, command string, params map[string]any, out any) error {
	ch := make(chan wsReply, 1)

	t.mu.Lock()
	if t.err != nil {
		err := t.err
		t.mu.Unlock()
		return err
	}
	t.nextID++
	id := t.nextID
	t.pending[id] = ch
	t.mu.Unlock()

	msg := make(map[string]any, len(params)+2)
	for k, v := range params {
		msg[k] = v
	}
	msg["id"] = id
	msg["command"] = command

	if err := t.write(msg); err != nil {
		t.forget(id)
		return fmt.Errorf("%s: %w", command, err)
	}

	select {
	case reply := <-ch:
		if reply.err != nil {
			return fmt.Errorf("%s: %w", command, reply.err)
		}
		if out == nil {
			return nil
		}
		if err := json.Unmarshal(reply.raw, out); err != nil {
			return fmt.Errorf("%s: failed to decode result: %w", command, err)
		}
		return nil
	case <-ctx.Done():
		t.forget(id)
		return ctx.Err()
	}
}

func (t *wsTransport) write(msg any) error {
	t.writeMu.Lock()
	defer t.writeMu.Unlock()

	if err := t.conn.SetWriteDeadline(time.Now().Add(wsWriteTimeout)); err != nil {
		return err
	}
	return t.conn.WriteJSON(msg)
}

func (t *wsTransport) forget(id uint64) {
	t.mu.Lock()
	delete(t.pending, id)
	t.mu.Unlock()
}

func (t *wsTransport) close() error {
	t.writeMu.Lock()
	_ = t.conn.WriteControl(websocket.CloseMessage,
		websocket.FormatCloseMessage(websocket.CloseNormalClosure, ""),
		time.Now().Add(time.Second))
	t.writeMu.Unlock()

	err := t.conn.Close()
	<-t.done
	return err
}
