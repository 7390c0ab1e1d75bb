package publishers

import (
	"time"

	"github.com/finsight-hq/vantage-fetcher/internal/domain"
)

// Event represents the payload published downstream. Data carries the remote
// response verbatim; consumers own any interpretation of its shape.
type Event struct {
	Symbol    string         `json:"symbol"`
	Function  string         `json:"function"`
	Data      map[string]any `json:"data"`
	FetchedAt time.Time      `json:"fetched_at"`
}

// NewEvent constructs an Event from a fetched statement.
func NewEvent(stmt domain.Statement) Event {
	return Event{
		Symbol:    stmt.Symbol,
		Function:  stmt.Function,
		Data:      stmt.Data,
		FetchedAt: time.Now().UTC(),
	}
}
