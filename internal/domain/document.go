package domain

import (
	"encoding/json"
	"time"
)

// TokenDetailDocument is one persisted fetch outcome.
// Corresponds to one document in the token details collection.
type TokenDetailDocument struct {
	Address   string          // token address the payload was fetched for
	FetchedAt time.Time       // run-wide UTC timestamp, shared by every document of a run
	Data      json.RawMessage // raw API payload, stored verbatim
}
