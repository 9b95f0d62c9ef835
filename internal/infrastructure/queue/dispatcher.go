package queue

import (
	"context"
	"errors"
	"hash/fnv"
	"strconv"

	"github.com/rs/zerolog"

	"github.com/soundstash/media-catalog/internal/api/metrics"
	"github.com/soundstash/media-catalog/internal/core/domain"
	"github.com/soundstash/media-catalog/internal/core/ports"
)

const (
	defaultWorkers = 4
	channelBuffer  = 256
)

// Dispatcher routes media purge tasks to a fixed set of workers using
// consistent hashing on the asset key, so repeated purges of the same asset
// are processed in order and never race each other.
type Dispatcher struct {
	workers []chan ports.PurgeTask
	media   ports.MediaStore
	log     zerolog.Logger
}

// NewDispatcher creates a Dispatcher with numWorkers sharded workers.
// If numWorkers <= 0, defaultWorkers is used.
func NewDispatcher(numWorkers int, media ports.MediaStore, log zerolog.Logger) *Dispatcher {
	if numWorkers <= 0 {
		numWorkers = defaultWorkers
	}
	d := &Dispatcher{
		workers: make([]chan ports.PurgeTask, numWorkers),
		media:   media,
		log:     log,
	}
	for i := range d.workers {
		d.workers[i] = make(chan ports.PurgeTask, channelBuffer)
	}
	return d
}

// Start launches all worker goroutines. Workers stop when ctx is cancelled.
func (d *Dispatcher) Start(ctx context.Context) {
	for i, ch := range d.workers {
		go d.runWorker(ctx, i, ch)
	}
}

// Enqueue hands a purge task to the worker responsible for its asset key.
// Non-blocking up to channelBuffer capacity. Empty keys are ignored.
func (d *Dispatcher) Enqueue(task ports.PurgeTask) {
	if task.AssetKey == "" {
		return
	}
	idx := d.shardIndex(task.AssetKey)
	d.workers[idx] <- task
	metrics.PurgeQueueDepth.WithLabelValues(strconv.Itoa(idx)).Set(float64(len(d.workers[idx])))
}

// shardIndex maps an asset key deterministically to a worker index.
func (d *Dispatcher) shardIndex(assetKey string) int {
	h := fnv.New32a()
	_, _ = h.Write([]byte(assetKey))
	return int(h.Sum32()) % len(d.workers)
}

func (d *Dispatcher) runWorker(ctx context.Context, id int, ch <-chan ports.PurgeTask) {
	for {
		select {
		case <-ctx.Done():
			return
		case task, ok := <-ch:
			if !ok {
				return
			}
			metrics.PurgeQueueDepth.WithLabelValues(strconv.Itoa(id)).Set(float64(len(ch)))

			err := d.media.Delete(ctx, task.AssetKey)
			if err != nil && !errors.Is(err, domain.ErrAssetNotFound) {
				// Orphan blob; operators can reconcile from logs.
				metrics.MediaPurgesTotal.WithLabelValues("error").Inc()
				d.log.Error().Err(err).
					Str("asset_key", task.AssetKey).
					Str("reason", task.Reason).
					Int("worker_id", id).
					Msg("media purge failed")
				continue
			}

			metrics.MediaPurgesTotal.WithLabelValues("ok").Inc()
			d.log.Debug().
				Str("asset_key", task.AssetKey).
				Str("reason", task.Reason).
				Msg("media purged")
		}
	}
}
