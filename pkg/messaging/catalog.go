package messaging

import (
	"context"

	"github.com/bytedance/sonic"
	amqp "github.com/rabbitmq/amqp091-go"
	"go.uber.org/zap"
)

const Prefix = "storefront"

// CatalogBus connects storefront instances so that a published catalog is
// picked up by every running server.
type CatalogBus struct {
	conn   *amqp.Connection
	logger *zap.Logger
}

func DialCatalogBus(url string, logger *zap.Logger) (*CatalogBus, error) {
	conn, err := amqp.Dial(url)
	if err != nil {
		return nil, err
	}
	ch, err := conn.Channel()
	if err != nil {
		conn.Close()
		return nil, err
	}
	defer ch.Close()
	if err := DefineTopic(ch, Prefix, CatalogChanged); err != nil {
		conn.Close()
		return nil, err
	}
	return &CatalogBus{conn: conn, logger: logger}, nil
}

func (b *CatalogBus) Notify(ctx context.Context, change CatalogChange) error {
	return SendChange(ctx, b.conn, Prefix, CatalogChanged, change)
}

// OnChange calls fn for every catalog change announced on the bus.
func (b *CatalogBus) OnChange(fn func(CatalogChange)) error {
	ch, err := b.conn.Channel()
	if err != nil {
		return err
	}
	return ListenToTopic(ch, b.logger, Prefix, CatalogChanged, func(d amqp.Delivery) error {
		change, err := decodeChange(d.Body)
		if err != nil {
			return err
		}
		fn(change)
		return nil
	})
}

func decodeChange(body []byte) (CatalogChange, error) {
	change := CatalogChange{}
	err := sonic.ConfigStd.Unmarshal(body, &change)
	return change, err
}

func (b *CatalogBus) Close() error {
	return b.conn.Close()
}
