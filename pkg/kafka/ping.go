package kafka

import (
	"context"
	"fmt"
	"log"
	"time"

	"github.com/segmentio/kafka-go"
)

// Ping dials the first broker and asks it for cluster metadata.
func Ping(ctx context.Context, brokers []string) error {
	if len(brokers) == 0 {
		return fmt.Errorf("Kafka - Ping: no brokers configured")
	}

	conn, err := kafka.DialContext(ctx, "tcp", brokers[0])
	if err != nil {
		return fmt.Errorf("Kafka - Ping - kafka.DialContext: %w", err)
	}
	defer conn.Close()

	_, err = conn.Brokers()
	if err != nil {
		return fmt.Errorf("Kafka - Ping - conn.Brokers: %w", err)
	}

	return nil
}

// WaitReady pings the cluster until it answers or attempts run out.
func WaitReady(ctx context.Context, name string, brokers []string, attempts int, timeout time.Duration) error {
	var err error

	for attempts > 0 {
		err = Ping(ctx, brokers)
		if err == nil {
			return nil
		}

		log.Printf("Kafka %s is trying to connect, attempts left: %d", name, attempts)

		select {
		case <-ctx.Done():
			return fmt.Errorf("Kafka - WaitReady: %w", ctx.Err())
		case <-time.After(timeout):
		}

		attempts--
	}

	return fmt.Errorf("Kafka - WaitReady - attempts == 0: %w", err)
}
