package model

// Match is one located occurrence of a category in a document's text.
// Matches are immutable snapshots: Score records the category weight at
// match time and is not updated if the category is later re-scored.
type Match struct {
	CategoryKey string
	Text        string
	Type        CategoryType
	Page        int
	Offset      int
	Score       int
}

// End returns the exclusive end offset of the match within its page.
func (m Match) End() int {
	return m.Offset + len(m.Text)
}

// Overlaps reports whether two matches cover intersecting spans on the same page.
func (m Match) Overlaps(other Match) bool {
	if m.Page != other.Page {
		return false
	}
	return m.Offset < other.End() && other.Offset < m.End()
}
