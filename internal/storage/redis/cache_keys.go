package redis

import (
	"context"
	"fmt"
	"time"
)

const (
	CategoryIDCacheTTL = 24 * time.Hour
	RunReportTTL       = 7 * 24 * time.Hour
	BatchCounterTTL    = 48 * time.Hour
)

func CategoryIDKey(slug string) string {
	return fmt.Sprintf("category:id:%s", slug)
}

func RunReportKey(job string, batch int) string {
	return fmt.Sprintf("report:%s:batch:%d", job, batch)
}

func BatchCounterKey(job string, day time.Time) string {
	return fmt.Sprintf("runs:%s:%s", job, day.Format(time.DateOnly))
}

// GetCategoryID returns ErrCacheMiss when the slug has not been cached.
func (c *Cache) GetCategoryID(ctx context.Context, slug string) (string, error) {
	return c.GetString(ctx, CategoryIDKey(slug))
}

func (c *Cache) SetCategoryID(ctx context.Context, slug, id string) error {
	return c.SetString(ctx, CategoryIDKey(slug), id, CategoryIDCacheTTL)
}

// SetRunReport stores the outcome of the latest run of a job batch.
func (c *Cache) SetRunReport(ctx context.Context, job string, batch int, report interface{}) error {
	return c.Set(ctx, RunReportKey(job, batch), report, RunReportTTL)
}

// GetRunReport returns ErrCacheMiss when no run of job batch was recorded
// within RunReportTTL.
func (c *Cache) GetRunReport(ctx context.Context, job string, batch int, dest interface{}) error {
	return c.Get(ctx, RunReportKey(job, batch), dest)
}

// CountFinishedBatch bumps the number of batches of job finished on day.
func (c *Cache) CountFinishedBatch(ctx context.Context, job string, day time.Time) (int64, error) {
	return c.IncrementWithExpiry(ctx, BatchCounterKey(job, day), BatchCounterTTL)
}
