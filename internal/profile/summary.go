package profile

import (
	"fmt"
	"strings"
)

// Summary renders a short human-readable description of the profile for
// display alongside ranked results.
func (p *Profile) Summary() string {
	parts := make([]string, 0, 4)

	level := titleCase(p.ExperienceLevel)
	if p.TotalExperienceMonths > 0 {
		years := float64(p.TotalExperienceMonths) / 12
		parts = append(parts, fmt.Sprintf("Experience: %s level (%.1f years)", level, years))
	} else {
		parts = append(parts, fmt.Sprintf("Experience: %s level", level))
	}

	if len(p.Skills) > 0 {
		top := p.Skills
		if len(top) > 5 {
			top = top[:5]
		}
		parts = append(parts, "Top skills: "+strings.Join(top, ", "))
	}

	if len(p.TargetRoles) > 0 {
		roles := p.TargetRoles
		if len(roles) > 3 {
			roles = roles[:3]
		}
		parts = append(parts, "Target roles: "+strings.Join(roles, ", "))
	}

	switch {
	case p.RemotePreference:
		parts = append(parts, "Location: Remote preferred")
	case len(p.PreferredLocations) > 0:
		locations := p.PreferredLocations
		if len(locations) > 2 {
			locations = locations[:2]
		}
		parts = append(parts, "Location: "+strings.Join(locations, ", "))
	}

	return strings.Join(parts, " | ")
}

func titleCase(s string) string {
	if s == "" {
		return s
	}
	return strings.ToUpper(s[:1]) + s[1:]
}
