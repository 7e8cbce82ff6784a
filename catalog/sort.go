package catalog

// SortOrder selects the ordering of an unfiltered catalog listing
type SortOrder int

const (
	ByAuthorName SortOrder = iota + 1
	ByTitle
)

func (s SortOrder) String() string {
	switch s {
	case ByTitle:
		return "title"
	case ByAuthorName:
		return "author"
	}
	return "unknown"
}

// NewSortOrder parses a sort parameter; anything unknown orders by author name
func NewSortOrder(s string) SortOrder {
	switch s {
	case "title":
		return ByTitle
	case "author":
		return ByAuthorName
	}
	return ByAuthorName
}

// ListQuery drives SelectBooks. A non-empty Search overrides Sort.
type ListQuery struct {
	Sort   SortOrder
	Search string
}
