package publisher

import (
	"context"
	"testing"

	"sjsage522/contactscraper/internal/crawler"

	"github.com/redis/go-redis/v9"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestStreamForRoundRobin(t *testing.T) {
	publisher := NewRedisPublisher(context.Background(), "localhost:6379", 0, "contacts", 3, 0)
	defer publisher.Close()

	assert.Equal(t, "contacts:0", publisher.StreamFor(0))
	assert.Equal(t, "contacts:1", publisher.StreamFor(1))
	assert.Equal(t, "contacts:2", publisher.StreamFor(2))
	assert.Equal(t, "contacts:0", publisher.StreamFor(3))

	single := NewRedisPublisher(context.Background(), "localhost:6379", 0, "contacts", 0, 0)
	defer single.Close()
	assert.Equal(t, "contacts:0", single.StreamFor(41))
}

// This test requires a running Redis instance
// If Redis is not available, the test will be skipped
func TestRedisPublisher(t *testing.T) {
	ctx := context.Background()

	client := redis.NewClient(&redis.Options{
		Addr: "localhost:6379",
		DB:   0,
	})
	defer client.Close()

	if _, err := client.Ping(ctx).Result(); err != nil {
		t.Skip("Redis is not available, skipping test")
	}

	const prefix = "test_contacts_r"
	client.Del(ctx, prefix+":0", prefix+":1")
	defer client.Del(ctx, prefix+":0", prefix+":1")

	publisher := NewRedisPublisher(ctx, "localhost:6379", 0, prefix, 2, 1)
	defer publisher.Close()

	contacts := []crawler.Contact{
		{Name: "Marie Tremblay", Company: "Cabinet Tremblay inc.", Address: "Montréal", Phone: "514 555-0101"},
		{Name: "Jean Roy", Address: "Québec", Phone: "418 555-0199"},
		{Name: "Anne Gagnon", Company: "Gagnon & Associés"},
	}
	for _, c := range contacts {
		require.NoError(t, publisher.PublishContact(c))
	}

	even, err := client.XRange(ctx, prefix+":0", "-", "+").Result()
	require.NoError(t, err)
	require.Len(t, even, 2)
	assert.Equal(t, map[string]interface{}{
		"seq":     "0",
		"name":    "Marie Tremblay",
		"company": "Cabinet Tremblay inc.",
		"address": "Montréal",
		"phone":   "514 555-0101",
	}, even[0].Values)
	assert.Equal(t, "Anne Gagnon", even[1].Values["name"])
	assert.Equal(t, "2", even[1].Values["seq"])

	odd, err := client.XRange(ctx, prefix+":1", "-", "+").Result()
	require.NoError(t, err)
	require.Len(t, odd, 1)
	assert.Equal(t, "Jean Roy", odd[0].Values["name"])
	assert.Equal(t, "", odd[0].Values["company"])

	require.NoError(t, publisher.TrimStreams())

	even, err = client.XRange(ctx, prefix+":0", "-", "+").Result()
	require.NoError(t, err)
	require.Len(t, even, 1)
	assert.Equal(t, "Anne Gagnon", even[0].Values["name"])
}
