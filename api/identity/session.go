package identity

import (
	"time"

	"github.com/beka-birhanu/mazeshare/service/i"
	"github.com/google/uuid"
)

// IssueSessionToken signs a token granting access to the session id.
func IssueSessionToken(ts i.Tokenizer, id uuid.UUID, ttl time.Duration) (string, error) {
	return ts.Generate(map[string]interface{}{SessionClaim: id.String()}, ttl)
}
