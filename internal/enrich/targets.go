package enrich

import (
	"fmt"
	"strings"
)

// Target names one enrichable subscription field.
type Target string

const (
	TargetResourceType   Target = "resource_type"   // subscription quality
	TargetResourcePix    Target = "resource_pix"    // subscription resolution
	TargetResourceEffect Target = "resource_effect" // subscription effect
	TargetGroup          Target = "group"           // subscription include + sites
)

// AllTargets lists every target in display order.
var AllTargets = []Target{TargetResourceType, TargetResourcePix, TargetResourceEffect, TargetGroup}

// Targets is the set of fields enrichment may fill.
type Targets struct {
	ResourceType   bool
	ResourcePix    bool
	ResourceEffect bool
	Group          bool
}

// ParseTargets builds a Targets set from configuration keys.
// Unknown keys are reported with ErrUnknownTarget.
func ParseTargets(keys []string) (Targets, error) {
	var t Targets
	for _, k := range keys {
		switch Target(strings.TrimSpace(k)) {
		case TargetResourceType:
			t.ResourceType = true
		case TargetResourcePix:
			t.ResourcePix = true
		case TargetResourceEffect:
			t.ResourceEffect = true
		case TargetGroup:
			t.Group = true
		default:
			return t, fmt.Errorf("%w: %q", ErrUnknownTarget, k)
		}
	}
	return t, nil
}

// Empty reports whether no target is selected.
func (t Targets) Empty() bool {
	return !t.ResourceType && !t.ResourcePix && !t.ResourceEffect && !t.Group
}

// Keys returns the selected targets as configuration keys.
func (t Targets) Keys() []string {
	var keys []string
	for _, target := range AllTargets {
		if t.Has(target) {
			keys = append(keys, string(target))
		}
	}
	return keys
}

// Has reports whether target is selected.
func (t Targets) Has(target Target) bool {
	switch target {
	case TargetResourceType:
		return t.ResourceType
	case TargetResourcePix:
		return t.ResourcePix
	case TargetResourceEffect:
		return t.ResourceEffect
	case TargetGroup:
		return t.Group
	}
	return false
}
