package rabbitmq

import (
	"context"
	"encoding/json"
	"fmt"
	"time"

	"github.com/muhammadheryan/eyewear-store/constant"
	"github.com/rabbitmq/amqp091-go"
)

const (
	orderEventsExchange    = "order_events_exchange"
	orderVerificationQueue = "order_verification_queue"

	RoutingKeyOrderPlaced        = "order.placed"
	RoutingKeyOrderStatusChanged = "order.status_changed"
)

type Publisher struct {
	conn    *amqp091.Connection
	channel *amqp091.Channel
}

// OrderEventMessage is published when an order is placed or its status changes.
type OrderEventMessage struct {
	OrderID       string                 `json:"order_id"`
	UserID        string                 `json:"user_id"`
	Status        constant.OrderStatus   `json:"status"`
	PaymentMethod constant.PaymentMethod `json:"payment_method"`
	TotalAmount   string                 `json:"total_amount"`
	OccurredAt    time.Time              `json:"occurred_at"`
}

func dial(host string, port int, user, password string) (*amqp091.Connection, *amqp091.Channel, error) {
	dsn := fmt.Sprintf("amqp://%s:%s@%s:%d/", user, password, host, port)
	conn, err := amqp091.Dial(dsn)
	if err != nil {
		return nil, nil, err
	}

	channel, err := conn.Channel()
	if err != nil {
		conn.Close()
		return nil, nil, err
	}

	if err := declareTopology(channel); err != nil {
		channel.Close()
		conn.Close()
		return nil, nil, err
	}
	return conn, channel, nil
}

func declareTopology(channel *amqp091.Channel) error {
	err := channel.ExchangeDeclare(
		orderEventsExchange, // name
		"topic",             // type
		true,                // durable
		false,               // auto-delete
		false,               // internal
		false,               // no-wait
		nil,                 // arguments
	)
	if err != nil {
		return err
	}

	_, err = channel.QueueDeclare(
		orderVerificationQueue, // name
		true,                   // durable
		false,                  // auto-delete
		false,                  // exclusive
		false,                  // no-wait
		nil,                    // arguments
	)
	if err != nil {
		return err
	}

	// only placed orders need a payment check
	return channel.QueueBind(
		orderVerificationQueue, // queue name
		RoutingKeyOrderPlaced,  // routing key
		orderEventsExchange,    // exchange
		false,                  // no-wait
		nil,                    // arguments
	)
}

func NewPublisher(host string, port int, user, password string) (*Publisher, error) {
	conn, channel, err := dial(host, port, user, password)
	if err != nil {
		return nil, err
	}
	return &Publisher{conn: conn, channel: channel}, nil
}

func (p *Publisher) PublishOrderEvent(ctx context.Context, routingKey string, msg OrderEventMessage) error {
	body, err := json.Marshal(msg)
	if err != nil {
		return err
	}

	return p.channel.PublishWithContext(
		ctx,
		orderEventsExchange, // exchange
		routingKey,          // routing key
		false,               // mandatory
		false,               // immediate
		amqp091.Publishing{
			ContentType:  "application/json",
			DeliveryMode: amqp091.Persistent,
			Timestamp:    msg.OccurredAt,
			Body:         body,
		},
	)
}

func (p *Publisher) Close() error {
	if p.channel != nil {
		p.channel.Close()
	}
	if p.conn != nil {
		p.conn.Close()
	}
	return nil
}
