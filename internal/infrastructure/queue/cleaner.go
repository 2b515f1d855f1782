// Package queue runs background cleanup of blob objects orphaned by listing
// deletes and image replacements.
package queue

import (
	"context"

	"github.com/rs/zerolog"

	"github.com/wanderlust-travel/wanderlust/internal/core/ports"
)

const channelBuffer = 64

// Cleaner removes orphaned image objects asynchronously. Page latency never
// waits on blob deletion; a lost cleanup leaves an unreferenced object, not
// a broken listing, so failures are logged and dropped.
type Cleaner struct {
	jobs chan string
	blob ports.BlobStore
	log  zerolog.Logger
}

func NewCleaner(blob ports.BlobStore, log zerolog.Logger) *Cleaner {
	return &Cleaner{
		jobs: make(chan string, channelBuffer),
		blob: blob,
		log:  log,
	}
}

// Start launches the worker goroutine. It stops when ctx is cancelled.
func (c *Cleaner) Start(ctx context.Context) {
	go c.run(ctx)
}

// Enqueue schedules the removal of an uploaded object. Non-blocking: when
// the buffer is full the job is dropped with a warning rather than stalling
// the request that triggered it.
func (c *Cleaner) Enqueue(filename string) {
	select {
	case c.jobs <- filename:
	default:
		c.log.Warn().Str("object", filename).Msg("cleanup queue full, dropping job")
	}
}

func (c *Cleaner) run(ctx context.Context) {
	for {
		select {
		case <-ctx.Done():
			return
		case object, ok := <-c.jobs:
			if !ok {
				return
			}
			if err := c.blob.RemoveImage(ctx, object); err != nil {
				c.log.Warn().Err(err).Str("object", object).Msg("failed to remove orphaned image")
				continue
			}
			c.log.Debug().Str("object", object).Msg("orphaned image removed")
		}
	}
}
