package cache

import (
	"crypto/sha256"
	"encoding/hex"
	"net/url"
	"sort"
	"strings"
)

// EntityKey returns the fixed cache key for a single-entity read,
// e.g. EntityKey("course", "CS101") -> "course:CS101".
func EntityKey(entity, id string) string {
	return entity + ":" + id
}

// ListKey returns a key for a list read whose identity is the full query
// parameter set. Parameters are sorted so equivalent requests fingerprint
// identically regardless of ordering.
func ListKey(entity string, query url.Values) string {
	return entity + ":list:" + Fingerprint(canonicalQuery(query))
}

// Fingerprint hashes an identifying string into a stable hex key fragment.
func Fingerprint(s string) string {
	sum := sha256.Sum256([]byte(s))
	return hex.EncodeToString(sum[:])
}

func canonicalQuery(query url.Values) string {
	if len(query) == 0 {
		return ""
	}

	keys := make([]string, 0, len(query))
	for k := range query {
		keys = append(keys, k)
	}
	sort.Strings(keys)

	var b strings.Builder
	for _, k := range keys {
		values := append([]string(nil), query[k]...)
		sort.Strings(values)
		for _, v := range values {
			if b.Len() > 0 {
				b.WriteByte('&')
			}
			b.WriteString(k)
			b.WriteByte('=')
			b.WriteString(v)
		}
	}
	return b.String()
}
