package constant

// Terminal projection scale: one cell is CellWidth units wide and CellHeight units tall
const (
	CellWidth  = 1.5
	CellHeight = 2.5
)

// CameraLead is the fraction of the viewport kept above the top of the tower
const CameraLead = 0.4

// PanelGap is the column gap between the front and side projections
const PanelGap = 4

// Block glyphs
const (
	GlyphSlab     = '█'
	GlyphFragment = '▒'
	GlyphActive   = '▓'
)
