package stats

import "strings"

// Owner identifies whose column a list belongs to
type Owner string

const (
	OwnerEve     Owner = "eve"
	OwnerDima    Owner = "dima"
	OwnerUnknown Owner = ""
)

// Classification is what a list label says about the cards in it
type Classification struct {
	Owner   Owner
	Done    bool // label contains "done"
	Pending bool // label contains "today" or "week"
}

// Classify derives owner and status from a free-text list label.
//
// Matching is case-insensitive substring matching. Owner checks run in a fixed
// order and the first hit wins: a label mentioning both owners is credited to
// eve only. Done and Pending are independent, so a label can be both or neither.
func Classify(label string) Classification {
	name := strings.ToLower(label)

	c := Classification{
		Done:    strings.Contains(name, "done"),
		Pending: strings.Contains(name, "today") || strings.Contains(name, "week"),
	}

	switch {
	case strings.Contains(name, string(OwnerEve)):
		c.Owner = OwnerEve
	case strings.Contains(name, string(OwnerDima)):
		c.Owner = OwnerDima
	default:
		c.Owner = OwnerUnknown
	}

	return c
}
