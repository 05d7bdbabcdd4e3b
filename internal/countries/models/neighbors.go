package models

// Neighbor is the resolution outcome of a single border code.
type Neighbor struct {
	Code     string `json:"code"`
	Name     string `json:"name,omitempty"`
	Resolved bool   `json:"resolved"`
}

// NeighborResolution maps a record's border codes to display names.
// It lives only as long as the detail view that requested it.
type NeighborResolution struct {
	// Codes keeps the order of the source record's border list.
	Codes   []string
	Entries map[string]Neighbor
	// Unavailable is set when the batch lookup failed; Names is then empty.
	Unavailable bool
}

// EmptyResolution is the resolution of a record without borders.
func EmptyResolution() NeighborResolution {
	return NeighborResolution{Codes: []string{}, Entries: map[string]Neighbor{}}
}

// Names returns resolved neighbor names in the source border order.
// Unresolved codes are skipped.
func (n NeighborResolution) Names() []string {
	names := make([]string, 0, len(n.Codes))
	for _, code := range n.Codes {
		if e, ok := n.Entries[code]; ok && e.Resolved {
			names = append(names, e.Name)
		}
	}
	return names
}

// Neighbors returns every entry, resolved or not, in the source border order.
func (n NeighborResolution) Neighbors() []Neighbor {
	out := make([]Neighbor, 0, len(n.Codes))
	for _, code := range n.Codes {
		if e, ok := n.Entries[code]; ok {
			out = append(out, e)
			continue
		}
		out = append(out, Neighbor{Code: code})
	}
	return out
}

// Unresolved counts codes that did not map to a record.
func (n NeighborResolution) Unresolved() int {
	count := 0
	for _, code := range n.Codes {
		if e, ok := n.Entries[code]; !ok || !e.Resolved {
			count++
		}
	}
	return count
}
