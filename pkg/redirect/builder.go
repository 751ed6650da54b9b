// Package redirect composes the Location URL for a resolved destination,
// preserving the original request path and query string.
package redirect

import (
	"errors"
	"net/url"
	"strings"
)

// ErrInvalidTarget indicates a configured destination that is not a usable
// URL even after normalization. This is a configuration error, distinct
// from an unconfigured host.
var ErrInvalidTarget = errors.New("invalid redirect target")

// Build normalizes a stored destination and appends the request's path and
// raw query string.
//
// A destination without a scheme gets "https://" prefixed. If the result
// still has no host component, Build returns ErrInvalidTarget. Trailing
// slashes on the destination are stripped so a root-path request produces
// no trailing slash and a non-empty path never doubles one.
//
// The raw stored value is validated on every call; a destination that was
// valid when cached but is malformed stays rejected here without touching
// the cache.
func Build(target, path, rawQuery string) (string, error) {
	parsed, err := url.Parse(target)
	if err != nil {
		return "", ErrInvalidTarget
	}
	if parsed.Scheme == "" {
		target = "https://" + target
		parsed, err = url.Parse(target)
		if err != nil {
			return "", ErrInvalidTarget
		}
	}
	if parsed.Host == "" {
		return "", ErrInvalidTarget
	}

	loc := strings.TrimRight(target, "/")
	if p := strings.TrimLeft(path, "/"); p != "" {
		loc += "/" + p
	}
	if rawQuery != "" {
		loc += "?" + rawQuery
	}
	return loc, nil
}
