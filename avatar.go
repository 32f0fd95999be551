package sessionkit

import (
	"context"
	"strings"

	"github.com/jellydator/ttlcache/v3"

	"github.com/wavely-app/sessionkit/log"
)

// isDirectImageRef reports whether ref is already renderable as-is, i.e.
// an absolute URL or an app-relative asset path, as opposed to a storage
// object key that needs a presigned URL.
func isDirectImageRef(ref string) bool {
	return strings.HasPrefix(ref, "http://") ||
		strings.HasPrefix(ref, "https://") ||
		strings.HasPrefix(ref, "/")
}

// resolveAvatarURL turns whatever avatar reference the profile carries
// into something displayable. Storage keys are exchanged for presigned
// URLs and cached for their validity window; any failure falls back to
// the default avatar rather than surfacing an error.
func (m *Manager) resolveAvatarURL(ctx context.Context, accessToken, ref string) string {
	if ref == "" {
		return m.opts.DefaultAvatarURL
	}
	if isDirectImageRef(ref) {
		return ref
	}
	if item := m.avatarCache.Get(ref); item != nil {
		return item.Value()
	}

	ctx, cancel := context.WithTimeout(ctx, m.opts.AvatarResolveTimeout)
	defer cancel()

	resolved, err := m.backend.AvatarPresignedURL(ctx, ref, accessToken)
	if err != nil {
		m.logger.Warn(ctx, "avatar resolution failed, using default",
			log.Fields{"key": ref, "error": err.Error()})
		return m.opts.DefaultAvatarURL
	}

	m.avatarCache.Set(ref, resolved, ttlcache.DefaultTTL)
	return resolved
}
