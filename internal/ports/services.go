// Package ports defines the interfaces the application layer depends on.
// Adapters implement them; tests substitute fakes.
package ports

import (
	"context"
	"time"

	"github.com/jsamuelsen/alaqidah-service/internal/domain"
	"github.com/jsamuelsen/alaqidah-service/internal/sharecard"
)

// LocalePackClient fetches one locale's quote entries from a remote content
// server.
type LocalePackClient interface {
	// FetchLocale returns domain.ErrNotFound when the server has no pack for
	// locale and domain.ErrUnavailable when it cannot be reached.
	FetchLocale(ctx context.Context, locale string) (*domain.LocaleData, error)
}

// CardRenderer rasterizes share cards.
type CardRenderer interface {
	Render(req sharecard.Request) (*sharecard.Image, error)
}

// Cache stores rendered artifacts.
type Cache interface {
	// Get returns domain.ErrNotFound on a miss or an expired entry.
	Get(ctx context.Context, key string) ([]byte, error)

	// Set stores value. A zero ttl means no expiration.
	Set(ctx context.Context, key string, value []byte, ttl time.Duration) error

	// Delete removes key; deleting a missing key is not an error.
	Delete(ctx context.Context, key string) error

	// Purge removes every entry and returns how many were dropped.
	Purge(ctx context.Context) (int, error)
}

// PreferenceStore is a best-effort key-value store for user preferences.
// Implementations absorb storage failures: Get reports a miss and Set or
// Remove become no-ops.
type PreferenceStore interface {
	Get(key string) (string, bool)
	Set(key, value string)
	Remove(key string)
}
