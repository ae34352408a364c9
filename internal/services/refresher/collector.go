package refresher

import (
	"sync"
	"time"

	"github.com/Houeta/price-refresh/internal/models"
)

// collector accumulates the run summary across concurrently refreshed groups.
type collector struct {
	mu sync.Mutex
	rs models.RunSummary
}

func newCollector(total, uniqueURLs int, startedAt time.Time) *collector {
	return &collector{rs: models.RunSummary{TotalItems: total, UniqueURLs: uniqueURLs, StartedAt: startedAt}}
}

func (c *collector) updated() {
	c.mu.Lock()
	defer c.mu.Unlock()
	c.rs.Updated++
}

func (c *collector) skipped() {
	c.mu.Lock()
	defer c.mu.Unlock()
	c.rs.Skipped++
}

// groupFailed counts every member of a group as failed under a single error message.
func (c *collector) groupFailed(msg string, members int) {
	c.mu.Lock()
	defer c.mu.Unlock()
	c.rs.Failed += members
	c.rs.Errors = append(c.rs.Errors, msg)
}

func (c *collector) memberFailed(msg string) {
	c.mu.Lock()
	defer c.mu.Unlock()
	c.rs.Failed++
	c.rs.Errors = append(c.rs.Errors, msg)
}

// summary returns a copy of the accumulated summary stamped with the finish time.
func (c *collector) summary(finishedAt time.Time) *models.RunSummary {
	c.mu.Lock()
	defer c.mu.Unlock()

	out := c.rs
	out.Errors = append([]string(nil), c.rs.Errors...)
	out.FinishedAt = finishedAt
	return &out
}
