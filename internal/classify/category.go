package classify

import "fmt"

// Category is the closed set of file roles the analyzer distinguishes.
// Values are ordered by classification priority; Classify tests them in
// declaration order and the first match wins.
type Category int

const (
	Schema Category = iota
	Router
	Hook
	Component
	Type
	Config
	Service
	Util
	Test
	Other
)

// Categories lists every category in classification priority order.
var Categories = []Category{
	Schema, Router, Hook, Component, Type, Config, Service, Util, Test, Other,
}

// String returns the stable wire name used in the cache file.
func (c Category) String() string {
	switch c {
	case Schema:
		return "schema"
	case Router:
		return "router"
	case Hook:
		return "hook"
	case Component:
		return "component"
	case Type:
		return "type"
	case Config:
		return "config"
	case Service:
		return "service"
	case Util:
		return "util"
	case Test:
		return "test"
	case Other:
		return "other"
	}
	return fmt.Sprintf("category(%d)", int(c))
}

// Label returns the human heading used in generated documents.
func (c Category) Label() string {
	switch c {
	case Schema:
		return "Schemas & Models"
	case Router:
		return "Routes & API Handlers"
	case Hook:
		return "Hooks"
	case Component:
		return "Components & Pages"
	case Type:
		return "Types & Interfaces"
	case Config:
		return "Configuration"
	case Service:
		return "Services"
	case Util:
		return "Utilities"
	case Test:
		return "Tests"
	case Other:
		return "Other"
	}
	return c.String()
}

// ParseCategory maps a wire name back to its Category. Unknown names map to
// Other so a hand-edited cache file cannot poison an enum switch.
func ParseCategory(s string) Category {
	for _, c := range Categories {
		if c.String() == s {
			return c
		}
	}
	return Other
}
