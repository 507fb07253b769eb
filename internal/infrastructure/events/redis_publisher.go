package events

import (
	"context"
	"encoding/json"
	"fmt"
	"time"

	"github.com/cmoralesv/AgroStock-api/internal/application/inventory"
	"github.com/cmoralesv/AgroStock-api/pkg/config"
	"github.com/cmoralesv/AgroStock-api/pkg/logger"
	"github.com/redis/go-redis/v9"
)

var _ inventory.EventPublisher = (*RedisPublisher)(nil)

// RedisPublisher publica notificaciones de cambio por pub/sub de Redis.
// Los observadores (sincronización móvil, dashboards) se suscriben al canal
// "<prefijo>.events" y reciben el evento serializado como JSON.
type RedisPublisher struct {
	client  *redis.Client
	channel string
	log     *logger.Logger
}

// envelope es el sobre JSON publicado en el canal.
type envelope struct {
	Event      string    `json:"event"`
	OccurredAt time.Time `json:"occurred_at"`
	Payload    any       `json:"payload,omitempty"`
}

// NewRedisPublisher conecta a Redis y devuelve el publicador. Falla si el
// broker no responde al ping inicial.
func NewRedisPublisher(cfg config.RedisConfig, log *logger.Logger) (*RedisPublisher, error) {
	client := redis.NewClient(&redis.Options{
		Addr:     cfg.Addr(),
		Password: cfg.Password,
		DB:       cfg.DB,

		DialTimeout:  5 * time.Second,
		ReadTimeout:  3 * time.Second,
		WriteTimeout: 3 * time.Second,
	})

	ctx, cancel := context.WithTimeout(context.Background(), 5*time.Second)
	defer cancel()
	if err := client.Ping(ctx).Err(); err != nil {
		return nil, fmt.Errorf("conectar a Redis: %w", err)
	}

	return &RedisPublisher{
		client:  client,
		channel: cfg.Channel + ".events",
		log:     log,
	}, nil
}

// Publish envía el evento al canal. Best-effort: los fallos se registran y se
// descartan, nunca revierten la operación que los originó.
func (p *RedisPublisher) Publish(ctx context.Context, event string, payload any) {
	body, err := json.Marshal(envelope{
		Event:      event,
		OccurredAt: time.Now().UTC(),
		Payload:    payload,
	})
	if err != nil {
		p.log.Error().Err(err).Str("event", event).Msg("serializar evento")
		return
	}

	if err := p.client.Publish(ctx, p.channel, body).Err(); err != nil {
		p.log.Warn().Err(err).Str("event", event).Msg("publicar evento en Redis")
	}
}

// Close cierra la conexión con Redis.
func (p *RedisPublisher) Close() error {
	return p.client.Close()
}
