package port

// Surface is the display the search results are rendered onto. It is
// owned by the hosting environment: a browser document, an HTML tree, a
// terminal.
type Surface interface {
	// Lookup returns the region with the given identifier.
	Lookup(id string) (Region, bool)
}

// Region is a container of rendered items.
type Region interface {
	Clear()
	Append(class, text string)
}
