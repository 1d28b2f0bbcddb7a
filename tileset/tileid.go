package tileset

// The three high bits of a packed id carry orientation flags.
const (
	FlipHorizontal uint32 = 0x80000000
	FlipVertical   uint32 = 0x40000000
	FlipDiagonal   uint32 = 0x20000000

	flagMask = FlipHorizontal | FlipVertical | FlipDiagonal
)

// TileID is a decoded packed id.
type TileID struct {
	Palette uint32
	FlipH   bool
	FlipV   bool
	FlipD   bool
}

// Decode splits a packed id into its palette index and flip flags.
func Decode(raw uint32) TileID {
	return TileID{
		Palette: raw &^ flagMask,
		FlipH:   raw&FlipHorizontal != 0,
		FlipV:   raw&FlipVertical != 0,
		FlipD:   raw&FlipDiagonal != 0,
	}
}

// PaletteOf strips the flag bits from raw.
func PaletteOf(raw uint32) uint32 {
	return raw &^ flagMask
}

// Empty reports whether the id references no tile. Flags are ignored.
func (t TileID) Empty() bool {
	return t.Palette == 0
}

// Pack is the inverse of Decode.
func (t TileID) Pack() uint32 {
	raw := t.Palette &^ flagMask
	if t.FlipH {
		raw |= FlipHorizontal
	}
	if t.FlipV {
		raw |= FlipVertical
	}
	if t.FlipD {
		raw |= FlipDiagonal
	}
	return raw
}

func (t TileID) Orientation() Orientation {
	var o Orientation
	if t.FlipH {
		o |= OrientHorizontal
	}
	if t.FlipV {
		o |= OrientVertical
	}
	if t.FlipD {
		o |= OrientDiagonal
	}
	return o
}

// Orientation is one of the eight flip combinations a tile can carry.
type Orientation uint8

const (
	OrientDiagonal Orientation = 1 << iota
	OrientVertical
	OrientHorizontal

	OrientNone Orientation = 0
)

type orientationParams struct {
	signX   float64
	signY   float64
	degrees float64
}

// A diagonal flip is drawn as a horizontal mirror followed by a quarter turn.
var orientationTable = [8]orientationParams{
	OrientNone:                                         {1, 1, 0},
	OrientDiagonal:                                     {-1, 1, 90},
	OrientVertical:                                     {1, -1, 0},
	OrientVertical | OrientDiagonal:                    {-1, -1, 90},
	OrientHorizontal:                                   {-1, 1, 0},
	OrientHorizontal | OrientDiagonal:                  {1, 1, 90},
	OrientHorizontal | OrientVertical:                  {-1, -1, 0},
	OrientHorizontal | OrientVertical | OrientDiagonal: {1, -1, 90},
}

// Params returns the scale signs and clockwise rotation in degrees to apply
// to a cell drawn around its centre.
func (o Orientation) Params() (signX, signY, degrees float64) {
	p := orientationTable[o&7]
	return p.signX, p.signY, p.degrees
}

// Rotated reports whether the orientation includes the quarter turn.
func (o Orientation) Rotated() bool {
	return o&OrientDiagonal != 0
}

func (o Orientation) String() string {
	if o&7 == OrientNone {
		return "none"
	}
	s := ""
	if o&OrientHorizontal != 0 {
		s += "H"
	}
	if o&OrientVertical != 0 {
		s += "V"
	}
	if o&OrientDiagonal != 0 {
		s += "D"
	}
	return s
}
