package pushclient

import (
	"context"
	"log"
	"time"
)

// AutoFlusher drains the fallback queue on start, on a fixed interval, and
// whenever the online channel signals a reconnect.
type AutoFlusher struct {
	client   *Client
	interval time.Duration
	online   <-chan struct{}
	stopChan chan struct{}
}

// NewAutoFlusher creates a new flusher. online may be nil when no
// connectivity signal is available; the ticker alone then drives retries.
func NewAutoFlusher(client *Client, interval time.Duration, online <-chan struct{}) *AutoFlusher {
	return &AutoFlusher{
		client:   client,
		interval: interval,
		online:   online,
		stopChan: make(chan struct{}),
	}
}

// Start begins the flush loop.
func (f *AutoFlusher) Start() {
	log.Printf("[Flush] Starting fallback queue flusher (interval: %s)", f.interval)

	go func() {
		// Run immediately on start
		f.flush()

		ticker := time.NewTicker(f.interval)
		defer ticker.Stop()

		for {
			select {
			case <-ticker.C:
				f.flush()
			case <-f.online:
				f.flush()
			case <-f.stopChan:
				log.Println("[Flush] Flusher stopped")
				return
			}
		}
	}()
}

// Stop ends the flush loop.
func (f *AutoFlusher) Stop() {
	close(f.stopChan)
}

func (f *AutoFlusher) flush() {
	ctx, cancel := context.WithTimeout(context.Background(), 30*time.Second)
	defer cancel()

	result, err := f.client.Flush(ctx)
	if err != nil {
		log.Printf("[Flush] Queue flush failed: %v", err)
		return
	}
	if result.Sent > 0 || result.Kept > 0 {
		log.Printf("[Flush] Queue flushed: %d sent, %d kept", result.Sent, result.Kept)
	}
}
