package formatter

import (
	"time"

	"github.com/google/uuid"

	"github.com/theoremus-urban-solutions/stc-gtfs-canonical/converter"
)

// Envelope wraps a NormalizedFeed with the metadata of the run that produced it.
type Envelope struct {
	RunID       string                    `json:"runId"`
	GeneratedAt string                    `json:"generatedAt"`
	Agency      string                    `json:"agency"`
	FeedName    string                    `json:"feedName,omitempty"`
	Feed        *converter.NormalizedFeed `json:"feed"`
}

// Wrap stamps feed with a fresh run id. An empty agency becomes "UNKNOWN".
func Wrap(feed *converter.NormalizedFeed, agency, feedName string, now time.Time) Envelope {
	if agency == "" {
		agency = "UNKNOWN"
	}
	return Envelope{
		RunID:       uuid.NewString(),
		GeneratedAt: now.UTC().Format(time.RFC3339),
		Agency:      agency,
		FeedName:    feedName,
		Feed:        feed,
	}
}
