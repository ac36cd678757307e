package gravatar

import (
	"crypto/md5"
	"encoding/hex"
	"fmt"
	"strings"
)

// Options controls the rendered avatar. Zero values fall back to defaults.
type Options struct {
	Size    int    // pixel size, e.g. 200
	Rating  string // g, pg, r, x
	Default string // fallback image style, e.g. retro, identicon
}

const baseURL = "https://www.gravatar.com/avatar"

// URL derives a stable avatar URL from an email address. The same email
// always yields the same URL; the hash is the gravatar-mandated md5 of the
// trimmed, lowercased address.
func URL(email string, opts Options) string {
	normalized := strings.ToLower(strings.TrimSpace(email))
	sum := md5.Sum([]byte(normalized))

	size := opts.Size
	if size <= 0 {
		size = 200
	}
	rating := opts.Rating
	if rating == "" {
		rating = "pg"
	}
	fallback := opts.Default
	if fallback == "" {
		fallback = "retro"
	}

	return fmt.Sprintf("%s/%s?s=%d&r=%s&d=%s", baseURL, hex.EncodeToString(sum[:]), size, rating, fallback)
}
