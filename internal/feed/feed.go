// README: Live order feed adapter over redis pub/sub.
package feed

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"log"
	"sync"

	"github.com/redis/go-redis/v9"

	"buensabor/internal/board"
)

// Adapter subscribes to the single channel carrying full-order updates
// and forwards validated records to the board. Reconnects and
// re-subscription are the transport's job: go-redis retries a dropped
// pub/sub connection with its own backoff and re-issues SUBSCRIBE, so
// the adapter carries no retry logic of its own.
type Adapter struct {
	rdb     *redis.Client
	channel string

	mu     sync.Mutex
	pubsub *redis.PubSub
}

func NewAdapter(rdb *redis.Client, channel string) *Adapter {
	return &Adapter{rdb: rdb, channel: channel}
}

// Connect opens the subscription and starts the consumer goroutine.
// A second Connect replaces the previous subscription; the stale one is
// closed first so at most one consumer is live.
func (a *Adapter) Connect(ctx context.Context, onUpdate func(context.Context, board.Order)) {
	a.mu.Lock()
	defer a.mu.Unlock()
	if a.pubsub != nil {
		_ = a.pubsub.Close()
	}
	ps := a.rdb.Subscribe(ctx, a.channel)
	a.pubsub = ps
	go consume(ctx, ps, onUpdate)
}

// Disconnect tears down the subscription. The consumer goroutine ends
// when its message channel closes.
func (a *Adapter) Disconnect() {
	a.mu.Lock()
	defer a.mu.Unlock()
	if a.pubsub != nil {
		_ = a.pubsub.Close()
		a.pubsub = nil
	}
}

func consume(ctx context.Context, ps *redis.PubSub, onUpdate func(context.Context, board.Order)) {
	for msg := range ps.Channel() {
		o, err := decodeOrder([]byte(msg.Payload))
		if err != nil {
			// Malformed payloads are dropped here; nothing past this
			// point sees anything but a complete order record.
			log.Printf("feed: dropping message: %v", err)
			continue
		}
		onUpdate(ctx, o)
	}
}

// decodeOrder is the feed's validation gate. Input must be a JSON object
// shaped like a complete order with a positive id and a status.
func decodeOrder(payload []byte) (board.Order, error) {
	var o board.Order
	if err := json.Unmarshal(payload, &o); err != nil {
		return board.Order{}, fmt.Errorf("invalid payload: %w", err)
	}
	if o.ID <= 0 {
		return board.Order{}, errors.New("payload has no valid order id")
	}
	if o.Status == "" {
		return board.Order{}, errors.New("payload has no order status")
	}
	return o, nil
}
