//go:build ignore

package main

import (
	"context"
	"encoding/json"
	"flag"
	"fmt"
	"log"
	"time"

	"github.com/google/uuid"
	"github.com/redis/go-redis/v9"
)

type TilesetBuildEvent struct {
	BuildID     uuid.UUID `json:"build_id"`
	Level       int       `json:"level"`
	RequestedAt time.Time `json:"requested_at"`
}

// Publishes a tileset build job directly into the Redis stream, bypassing
// the API. Useful for exercising the worker on its own. Note the build id
// is random here, so the worker's MarkRunning update will not find a row
// unless one was inserted first.
func main() {
	redisAddr := flag.String("redis", "localhost:6379", "Redis address for streams")
	level := flag.Int("level", 0, "Resolution level to build")
	buildID := flag.String("build-id", "", "Existing build id (random if empty)")
	flag.Parse()

	client := redis.NewClient(&redis.Options{
		Addr: *redisAddr,
	})
	defer client.Close()

	ctx := context.Background()

	if err := client.Ping(ctx).Err(); err != nil {
		log.Fatalf("Failed to connect to Redis: %v", err)
	}

	id := uuid.New()
	if *buildID != "" {
		parsed, err := uuid.Parse(*buildID)
		if err != nil {
			log.Fatalf("Invalid build id: %v", err)
		}
		id = parsed
	}

	event := TilesetBuildEvent{
		BuildID:     id,
		Level:       *level,
		RequestedAt: time.Now().UTC(),
	}

	data, err := json.Marshal(event)
	if err != nil {
		log.Fatalf("Failed to marshal event: %v", err)
	}

	result, err := client.XAdd(ctx, &redis.XAddArgs{
		Stream: "stream:tileset:build",
		Values: map[string]interface{}{
			"data": string(data),
		},
	}).Result()
	if err != nil {
		log.Fatalf("Failed to publish event: %v", err)
	}

	fmt.Printf("Event published successfully!\n")
	fmt.Printf("   Stream: stream:tileset:build\n")
	fmt.Printf("   Message ID: %s\n", result)
	fmt.Printf("   Build ID: %s\n", event.BuildID)
	fmt.Printf("   Level: %d\n", event.Level)
}
