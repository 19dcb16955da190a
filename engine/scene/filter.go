package scene

import (
	"fmt"
	"strings"
)

// DefaultCollisionSuffix marks collision-only nodes under the suffix policy.
const DefaultCollisionSuffix = "_collision"

// FilterPolicy decides from a node name whether the node's mesh becomes
// collision geometry. It is the only thing separating visual-only meshes
// from collidable ones.
type FilterPolicy interface {
	Accept(name string) bool
	String() string
}

type acceptAll struct{}

func (acceptAll) Accept(string) bool { return true }
func (acceptAll) String() string     { return "all" }

// AcceptAll treats every mesh node as collidable.
func AcceptAll() FilterPolicy {
	return acceptAll{}
}

type suffixFilter struct {
	suffix string
}

func (f suffixFilter) Accept(name string) bool {
	return strings.HasSuffix(name, f.suffix)
}

func (f suffixFilter) String() string {
	return "suffix(" + f.suffix + ")"
}

// SuffixFilter accepts only nodes whose name ends in suffix. An empty suffix
// falls back to DefaultCollisionSuffix.
func SuffixFilter(suffix string) FilterPolicy {
	if suffix == "" {
		suffix = DefaultCollisionSuffix
	}
	return suffixFilter{suffix: suffix}
}

// ParseFilterPolicy maps the config spelling ("all" or "suffix") to a policy.
func ParseFilterPolicy(kind, suffix string) (FilterPolicy, error) {
	switch strings.ToLower(strings.TrimSpace(kind)) {
	case "", "all":
		return AcceptAll(), nil
	case "suffix":
		return SuffixFilter(suffix), nil
	}
	return nil, fmt.Errorf("unknown collision filter %q", kind)
}
