package redis

import (
	"context"
	"crypto/md5"
	"fmt"
	"strings"
	"time"

	"github.com/redis/go-redis/v9"
)

const avatarTTL = 12 * time.Hour

// defaultAvatarBase is the gravatar-compatible endpoint used when no
// override is configured.
const defaultAvatarBase = "https://secure.gravatar.com/avatar"

// AvatarResolver resolves a user's avatar URL from their email address and
// memoises the result in Redis. Key format: avatar:<email-hash>
type AvatarResolver struct {
	client *redis.Client
	base   string
}

// NewAvatarResolver creates an AvatarResolver wrapping the given Redis client.
func NewAvatarResolver(client *redis.Client) *AvatarResolver {
	return &AvatarResolver{client: client, base: defaultAvatarBase}
}

// Resolve returns the avatar URL for email, from cache when possible.
// Cache errors fall back to computing the URL directly.
func (a *AvatarResolver) Resolve(ctx context.Context, email string) (string, error) {
	hash := EmailHash(email)
	key := "avatar:" + hash

	cached, err := a.client.Get(ctx, key).Result()
	if err == nil && cached != "" {
		return cached, nil
	}

	avatarURL := fmt.Sprintf("%s/%s?d=identicon", a.base, hash)

	// Caching is best-effort: a write failure must not cost the caller
	// their avatar field.
	_ = a.client.Set(ctx, key, avatarURL, avatarTTL).Err()
	return avatarURL, nil
}

// EmailHash computes the gravatar address hash: md5 of the trimmed,
// lowercased email.
func EmailHash(email string) string {
	normalized := strings.ToLower(strings.TrimSpace(email))
	return fmt.Sprintf("%x", md5.Sum([]byte(normalized)))
}
