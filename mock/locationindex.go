package mock

import (
	"github.com/ElishaSamPeterPrabhu/workbuddy"
)

var _ workbuddy.LocationIndex = (*LocationIndex)(nil)

// LocationIndex is a mock implementation of workbuddy.LocationIndex.
type LocationIndex struct {
	LocationsFn  func(tier workbuddy.Tier) []string
	TierOfFn     func(path string) workbuddy.Tier
	WellKnownFn  func(name string) (string, bool)
	CandidatesFn func() []string
}

func (i *LocationIndex) Locations(tier workbuddy.Tier) []string {
	return i.LocationsFn(tier)
}

func (i *LocationIndex) TierOf(path string) workbuddy.Tier {
	return i.TierOfFn(path)
}

func (i *LocationIndex) WellKnown(name string) (string, bool) {
	return i.WellKnownFn(name)
}

func (i *LocationIndex) Candidates() []string {
	return i.CandidatesFn()
}
