package advisor

import (
	"context"
	"crypto/sha256"
	"encoding/hex"
	"encoding/json"
	"errors"
	"fmt"
	"log/slog"
	"sort"
	"strings"

	"github.com/DrSkyle/tfgrant/pkg/storage"
)

// CachedAdvisor wraps an Advisor with a fingerprint-keyed cache. The
// key covers the resource type and attribute set, so a changed block
// shape invalidates naturally.
type CachedAdvisor struct {
	inner Advisor
	store storage.BlobStore

	// Hits counts suggestions served without calling the inner advisor.
	Hits int
}

func NewCachedAdvisor(inner Advisor, store storage.BlobStore) *CachedAdvisor {
	return &CachedAdvisor{inner: inner, store: store}
}

// Suggest serves from cache when possible and stores fresh answers.
// Cache failures degrade to a direct call, never to an error.
func (c *CachedAdvisor) Suggest(ctx context.Context, resourceType string, attributes []string) (*Suggestion, error) {
	key := fingerprint(resourceType, attributes)

	if data, err := c.store.Get(ctx, key); err == nil {
		var sug Suggestion
		if err := json.Unmarshal(data, &sug); err == nil {
			c.Hits++
			return &sug, nil
		}
		// Corrupt entry, drop it and re-ask.
		_ = c.store.Delete(ctx, key)
	} else if !errors.Is(err, storage.ErrNotFound) {
		slog.Warn("advisor cache read failed", "key", key, "error", err)
	}

	sug, err := c.inner.Suggest(ctx, resourceType, attributes)
	if err != nil {
		return nil, err
	}

	if data, err := json.Marshal(sug); err == nil {
		if err := c.store.Put(ctx, key, data); err != nil {
			slog.Warn("advisor cache write failed", "key", key, "error", err)
		}
	}
	return sug, nil
}

// fingerprint derives a short stable cache key from the request shape.
func fingerprint(resourceType string, attributes []string) string {
	attrs := append([]string(nil), attributes...)
	sort.Strings(attrs)
	sum := sha256.Sum256([]byte(resourceType + "|" + strings.Join(attrs, ",")))
	return fmt.Sprintf("%s-%s.json", resourceType, hex.EncodeToString(sum[:])[:16])
}
