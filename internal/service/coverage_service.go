package service

import (
	"sort"
	"strings"
)

// CoverageService answers whether a zone is serviceable. Zones come from
// configuration and are matched case-insensitively.
type CoverageService struct {
	zones map[string]struct{}
}

// NewCoverageService constructs the service from the configured zone list.
func NewCoverageService(zones []string) *CoverageService {
	set := make(map[string]struct{}, len(zones))
	for _, zone := range zones {
		normalized := strings.ToLower(strings.TrimSpace(zone))
		if normalized == "" {
			continue
		}
		set[normalized] = struct{}{}
	}
	return &CoverageService{zones: set}
}

// HasCoverage reports whether the zone is serviceable.
func (s *CoverageService) HasCoverage(zone string) bool {
	_, ok := s.zones[strings.ToLower(strings.TrimSpace(zone))]
	return ok
}

// Zones returns the serviceable zones sorted alphabetically.
func (s *CoverageService) Zones() []string {
	result := make([]string, 0, len(s.zones))
	for zone := range s.zones {
		result = append(result, zone)
	}
	sort.Strings(result)
	return result
}
