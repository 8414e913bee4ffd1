package resolver

import (
	"context"
	"fmt"

	"github.com/linux-china/wukong/pkg/errors"
)

// Router picks a provider per request. Plain java versions such as "21" or
// "17.0.9" go to Disco; everything else, vendor-suffixed java versions
// included, goes to Broker.
type Router struct {
	Disco  Resolver
	Broker Resolver
}

// Resolve implements Resolver.
func (r *Router) Resolve(ctx context.Context, req Request) (*Resolution, error) {
	target := r.Broker
	if req.Candidate == "java" && IsPlainVersion(req.Version) && r.Disco != nil {
		target = r.Disco
	}
	if target == nil {
		return nil, fmt.Errorf("no provider for %s %s: %w", req.Candidate, req.Version, errors.ErrResolution)
	}
	return target.Resolve(ctx, req)
}

// IsPlainVersion reports whether v consists of dot-separated numbers only.
func IsPlainVersion(v string) bool {
	if v == "" || v[0] == '.' || v[len(v)-1] == '.' {
		return false
	}
	for _, r := range v {
		if (r < '0' || r > '9') && r != '.' {
			return false
		}
	}
	return true
}
