package planning

import "github.com/pkg/errors"

// OverbookingPolicy decides what happens when a create would double-book a
// resource across overlapping tasks. The source application never guarded
// this, so "allow" is the default.
type OverbookingPolicy string

const (
	OverbookingAllow  OverbookingPolicy = "allow"
	OverbookingWarn   OverbookingPolicy = "warn"
	OverbookingReject OverbookingPolicy = "reject"
)

func ParseOverbookingPolicy(s string) (OverbookingPolicy, error) {
	switch OverbookingPolicy(s) {
	case "":
		return OverbookingAllow, nil
	case OverbookingAllow, OverbookingWarn, OverbookingReject:
		return OverbookingPolicy(s), nil
	}
	return "", errors.Errorf("unknown overbooking policy %q", s)
}
