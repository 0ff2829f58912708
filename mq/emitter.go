package mq

import (
	"context"
	"encoding/json"
	"log"

	"krishi/models"
	"krishi/rdx"
)

const indexingChannel = "indexing-events"

// Emit publishes an indexing event to Redis. Mutation handlers call it in a
// goroutine so a slow broker never blocks the request.
func Emit(ctx context.Context, eventName string, content models.Index) {
	data, err := json.Marshal(content)
	if err != nil {
		log.Printf("[Emit] Failed to marshal event content: %v", err)
		return
	}

	if err := rdx.Conn.Publish(context.Background(), indexingChannel, data).Err(); err != nil {
		log.Printf("[Emit] Failed to publish %s event to Redis: %v", eventName, err)
	}
}

// StartIndexingWorker consumes indexing events and maintains the per-entity
// search index sets in Redis.
func StartIndexingWorker() {
	ctx := context.Background()
	sub := rdx.Conn.Subscribe(ctx, indexingChannel)
	ch := sub.Channel()

	log.Println("[IndexingWorker] Listening for indexing events...")

	for msg := range ch {
		var event models.Index
		if err := json.Unmarshal([]byte(msg.Payload), &event); err != nil {
			log.Printf("[IndexingWorker] Failed to parse event: %v", err)
			continue
		}

		key := "index:" + event.EntityType
		switch event.Method {
		case "DELETE":
			if err := rdx.Conn.SRem(ctx, key, event.EntityId).Err(); err != nil {
				log.Printf("[IndexingWorker] SRem error: %v", err)
			}
		default:
			if err := rdx.Conn.SAdd(ctx, key, event.EntityId).Err(); err != nil {
				log.Printf("[IndexingWorker] SAdd error: %v", err)
			}
		}
	}
}
