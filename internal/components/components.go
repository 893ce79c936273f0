// Package components defines the registrable tool components of the
// Purview MCP server.
package components

import (
	"fmt"
	"strings"
)

// Component represents a registrable component
type Component struct {
	Name        string
	Description string
}

// GetAllComponents returns all available components
func GetAllComponents() []Component {
	return []Component{
		{Name: "audit", Description: "Audit log retrieval, sensitivity label change reports and security alerts"},
		{Name: "scanning", Description: "Data source scan operations"},
		{Name: "catalog", Description: "Data catalog summaries and lineage lookup"},
		{Name: "account", Description: "Purview account administration"},
	}
}

// GetComponentByName returns a component by its name
func GetComponentByName(name string) (*Component, error) {
	name = strings.TrimSpace(strings.ToLower(name))
	for _, comp := range GetAllComponents() {
		if comp.Name == name {
			return &comp, nil
		}
	}
	return nil, fmt.Errorf("unknown component: %s", name)
}

// ValidateComponents validates a list of component names
// Returns valid components, invalid component names, and an error if validation fails
// Requirements:
// - All component names must be recognized
// - At least one component must be enabled
func ValidateComponents(componentNames []string) (valid []string, invalid []string, err error) {
	// If empty list, all components are enabled - this is valid
	if len(componentNames) == 0 {
		return []string{}, []string{}, nil
	}

	for _, name := range componentNames {
		name = strings.TrimSpace(strings.ToLower(name))
		if name == "" {
			continue
		}
		if _, err := GetComponentByName(name); err != nil {
			invalid = append(invalid, name)
		} else {
			valid = append(valid, name)
		}
	}

	// Check if at least one valid component is enabled
	if len(valid) == 0 {
		if len(invalid) > 0 {
			return valid, invalid, fmt.Errorf("no valid components specified, invalid components: %s", strings.Join(invalid, ", "))
		}
		return valid, invalid, fmt.Errorf("at least one component must be enabled")
	}

	return valid, invalid, nil
}
