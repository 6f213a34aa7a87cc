package counter

import (
	"context"
	"strconv"

	"github.com/gofiber/fiber/v2/log"

	"github.com/propnest/PropNest/internal/pkg/cache"
)

// ingestCountersKey is the Redis hash holding all pipeline counters.
const ingestCountersKey = "leadgen:counters"

// Counter fields tracked across the ingestion pipeline.
const (
	FieldReceived         = "received"
	FieldAcknowledged     = "acknowledged"
	FieldSignatureRejects = "signature_rejections"
	FieldParseFailures    = "parse_failures"
	FieldQueueDrops       = "queue_drops"
	FieldProcessed        = "processed"
	FieldLeadsCreated     = "leads_created"
	FieldDuplicates       = "duplicates"
	FieldFetchSkips       = "fetch_skips"
	FieldStoreFailures    = "store_failures"
)

// AllFields lists every counter field in display order. Snapshot consumers
// use it to render zeros for counters that were never incremented.
var AllFields = []string{
	FieldReceived,
	FieldAcknowledged,
	FieldSignatureRejects,
	FieldParseFailures,
	FieldQueueDrops,
	FieldProcessed,
	FieldLeadsCreated,
	FieldDuplicates,
	FieldFetchSkips,
	FieldStoreFailures,
}

// Increment adds one to a pipeline counter in Redis.
func Increment(field string) error {
	ctx := context.Background()
	return cache.GetClient().HIncrBy(ctx, ingestCountersKey, field, 1).Err()
}

// Bump increments a counter and only logs on failure. Counter writes are
// best effort and never fail or slow the pipeline.
func Bump(field string) {
	if err := Increment(field); err != nil {
		log.Debugf("[Counter] increment %s failed: %v", field, err)
	}
}

// Snapshot returns the current value of every pipeline counter. Fields that
// were never incremented are present with value zero.
func Snapshot() (map[string]int64, error) {
	ctx := context.Background()
	data, err := cache.GetClient().HGetAll(ctx, ingestCountersKey).Result()
	if err != nil {
		return nil, err
	}

	out := make(map[string]int64, len(AllFields))
	for _, field := range AllFields {
		out[field] = 0
	}
	for field, raw := range data {
		if n, perr := strconv.ParseInt(raw, 10, 64); perr == nil {
			out[field] = n
		}
	}
	return out, nil
}
