package cache

import (
	"crypto/sha1"
	"encoding/hex"
)

// RateLimitKey names the entry blocking one site after it answered
// with a rate-limit status.
func RateLimitKey(site string) string {
	return site + "_rate_limited"
}

// SeenKey names the mark recording that one record identity was
// persisted. Identities are hashed: memcache keys must stay short and
// whitespace-free, and job identities are free-text titles.
func SeenKey(identity string) string {
	sum := sha1.Sum([]byte(identity))
	return "seen:" + hex.EncodeToString(sum[:])
}
