package tree

// Glyphs holds the connector and continuation segments used to draw a tree.
// Every segment has the same display width so columns line up.
type Glyphs struct {
	Mid      string
	Last     string
	Vertical string
	Blank    string
}

var (
	// BoxGlyphs draws with Unicode box-drawing characters.
	BoxGlyphs = Glyphs{Mid: "├── ", Last: "└── ", Vertical: "│   ", Blank: "    "}
	// ASCIIGlyphs draws with plain ASCII for terminals without box-drawing support.
	ASCIIGlyphs = Glyphs{Mid: "|-- ", Last: "`-- ", Vertical: "|   ", Blank: "    "}
)

func (g Glyphs) connector(last bool) string {
	if last {
		return g.Last
	}
	return g.Mid
}

func (g Glyphs) continuation(last bool) string {
	if last {
		return g.Blank
	}
	return g.Vertical
}
