// Package layer holds the static layer registry: the named, colored
// records that can be selected as the single active layer.
package layer

// Record is a single layer. Name is the identity key.
type Record struct {
	Name    string
	URL     string
	Color   string
	Visible bool
}

var seed = [...]Record{
	{Name: "A", URL: "google.com", Color: "red"},
	{Name: "B", URL: "gmail.com", Color: "steelblue"},
	{Name: "C", URL: "ona.io", Color: "orange"},
}

// Seed returns a fresh copy of the registry in display order.
// All records start hidden.
func Seed() []Record {
	out := make([]Record, len(seed))
	copy(out, seed[:])
	return out
}

// Names returns the registry names in display order.
func Names() []string {
	names := make([]string, len(seed))
	for i, r := range seed {
		names[i] = r.Name
	}
	return names
}

// Find returns the record named name from layers.
func Find(layers []Record, name string) (Record, bool) {
	for _, r := range layers {
		if r.Name == name {
			return r, true
		}
	}
	return Record{}, false
}

// Index returns the position of name in layers, or -1.
func Index(layers []Record, name string) int {
	for i, r := range layers {
		if r.Name == name {
			return i
		}
	}
	return -1
}
