package publisher

import (
	"context"
	"strconv"

	"sjsage522/contactscraper/internal/crawler"

	"github.com/redis/go-redis/v9"
)

// RedisPublisher writes contacts to Redis streams named <prefix>:<shard>
type RedisPublisher struct {
	client          *redis.Client
	ctx             context.Context
	streamPrefix    string
	streamCount     int
	streamMaxLength int
	sequence        int
}

// Ensure RedisPublisher implements Publisher
var _ Publisher = (*RedisPublisher)(nil)

// NewRedisPublisher creates a publisher spreading contacts over streamCount streams
func NewRedisPublisher(ctx context.Context, addr string, db int, streamPrefix string, streamCount int, streamMaxLength int) *RedisPublisher {
	if streamCount < 1 {
		streamCount = 1
	}

	return &RedisPublisher{
		client: redis.NewClient(&redis.Options{
			Addr: addr,
			DB:   db,
		}),
		ctx:             ctx,
		streamPrefix:    streamPrefix,
		streamCount:     streamCount,
		streamMaxLength: streamMaxLength,
	}
}

// StreamFor returns the stream receiving the contact with the given sequence number.
// Contacts are dealt round-robin, so each stream holds an ascending subsequence.
func (p *RedisPublisher) StreamFor(sequence int) string {
	return p.streamPrefix + ":" + strconv.Itoa(sequence%p.streamCount)
}

// PublishContact adds the contact fields, plus its position in the export, as one stream entry
func (p *RedisPublisher) PublishContact(contact crawler.Contact) error {
	err := p.client.XAdd(p.ctx, &redis.XAddArgs{
		Stream: p.StreamFor(p.sequence),
		Values: map[string]interface{}{
			"seq":     p.sequence,
			"name":    contact.Name,
			"company": contact.Company,
			"address": contact.Address,
			"phone":   contact.Phone,
		},
	}).Err()
	if err != nil {
		return err
	}

	p.sequence++
	return nil
}

// TrimStreams trims every shard to the configured maximum length
func (p *RedisPublisher) TrimStreams() error {
	if p.streamMaxLength <= 0 {
		return nil
	}

	for shard := 0; shard < p.streamCount; shard++ {
		if err := p.client.XTrimMaxLen(p.ctx, p.StreamFor(shard), int64(p.streamMaxLength)).Err(); err != nil {
			return err
		}
	}

	return nil
}

// Close closes the Redis connection
func (p *RedisPublisher) Close() error {
	return p.client.Close()
}
