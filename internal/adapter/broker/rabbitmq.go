// Package broker publica os eventos do salão e da cozinha no RabbitMQ.
package broker

import (
	"context"
	"encoding/json"
	"fmt"
	"sync"
	"time"

	"github.com/hugohenrick/pdv-restaurante/internal/domain/account"
	"github.com/hugohenrick/pdv-restaurante/pkg/logger"
	amqp "github.com/rabbitmq/amqp091-go"
)

const publishTimeout = 5 * time.Second

// RabbitMQ publica eventos em uma exchange do tipo topic
type RabbitMQ struct {
	conn     *amqp.Connection
	ch       *amqp.Channel
	exchange string
	log      logger.Logger
	mu       sync.Mutex
}

// NewRabbitMQ conecta ao broker e declara a exchange de eventos
func NewRabbitMQ(url, exchange string, log logger.Logger) (*RabbitMQ, error) {
	conn, err := amqp.Dial(url)
	if err != nil {
		return nil, fmt.Errorf("falha ao conectar ao RabbitMQ: %w", err)
	}

	ch, err := conn.Channel()
	if err != nil {
		conn.Close()
		return nil, fmt.Errorf("falha ao abrir canal: %w", err)
	}

	err = ch.ExchangeDeclare(
		exchange, // name
		"topic",  // type
		true,     // durable
		false,    // auto-deleted
		false,    // internal
		false,    // no-wait
		nil,      // arguments
	)
	if err != nil {
		ch.Close()
		conn.Close()
		return nil, fmt.Errorf("falha ao declarar exchange %s: %w", exchange, err)
	}

	log.Info("Conectado ao RabbitMQ", "exchange", exchange)
	return &RabbitMQ{conn: conn, ch: ch, exchange: exchange, log: log}, nil
}

// Publish serializa o evento em JSON e publica com a routing key do seu tipo
func (r *RabbitMQ) Publish(ctx context.Context, evt account.Event) error {
	body, err := json.Marshal(evt)
	if err != nil {
		return fmt.Errorf("falha ao serializar evento: %w", err)
	}

	ctx, cancel := context.WithTimeout(ctx, publishTimeout)
	defer cancel()

	// amqp.Channel não é seguro para publicações concorrentes
	r.mu.Lock()
	defer r.mu.Unlock()
	err = r.ch.PublishWithContext(ctx,
		r.exchange, // exchange
		evt.Type,   // routing key
		false,      // mandatory
		false,      // immediate
		amqp.Publishing{
			DeliveryMode: amqp.Persistent,
			ContentType:  "application/json",
			Timestamp:    evt.OccurredAt,
			Body:         body,
		})
	if err != nil {
		return fmt.Errorf("falha ao publicar %s: %w", evt.Type, err)
	}
	return nil
}

// Close encerra canal e conexão
func (r *RabbitMQ) Close() error {
	if r.ch != nil {
		r.ch.Close()
	}
	if r.conn != nil {
		return r.conn.Close()
	}
	return nil
}

// Nop descarta os eventos. Usado quando RABBITMQ_URL não está configurada.
type Nop struct{}

// Publish não faz nada
func (Nop) Publish(context.Context, account.Event) error { return nil }

// Close não faz nada
func (Nop) Close() error { return nil }
