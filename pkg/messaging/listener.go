package messaging

import (
	amqp "github.com/rabbitmq/amqp091-go"
	"go.uber.org/zap"
)

func DeclareBindAndConsume(ch *amqp.Channel, prefix string, topic ChangeTopic) (<-chan amqp.Delivery, error) {
	name := getName(prefix, topic)
	q, err := ch.QueueDeclare(
		"",    // name
		false, // durable
		true,  // delete when unused
		true,  // exclusive
		false, // no-wait
		nil,   // arguments
	)
	if err != nil {
		return nil, err
	}
	if err = ch.QueueBind(q.Name, name, name, false, nil); err != nil {
		return nil, err
	}
	return ch.Consume(
		q.Name,
		"",    // consumer
		false, // auto-ack
		true,  // exclusive
		false, // no-local
		false, // no-wait
		nil,
	)
}

// ListenToTopic consumes topic in the background until the channel closes.
// Deliveries the handler fails on are rejected without requeue.
func ListenToTopic(ch *amqp.Channel, logger *zap.Logger, prefix string, topic ChangeTopic, handler func(amqp.Delivery) error) error {
	msgs, err := DeclareBindAndConsume(ch, prefix, topic)
	if err != nil {
		return err
	}

	go func() {
		for d := range msgs {
			if err := handler(d); err != nil {
				logger.Warn("error processing message", zap.String("topic", string(topic)), zap.Error(err))
				d.Nack(false, false)
				continue
			}
			d.Ack(false)
		}
	}()
	return nil
}
