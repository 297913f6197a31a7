package platformer

import "fmt"

// GID flag bits (same convention as Tiled TMX format).
const (
	tileFlipH    uint32 = 1 << 31 // horizontal flip
	tileFlipV    uint32 = 1 << 30 // vertical flip
	tileFlipD    uint32 = 1 << 29 // diagonal flip (90° rotation)
	tileFlagMask uint32 = tileFlipH | tileFlipV | tileFlipD
)

// TileLayer is a grid of tile GIDs as exported by Tiled. GID 0 is empty;
// any other GID is solid. Flip flags only affect drawing and are ignored for
// collision.
type TileLayer struct {
	data   []uint32 // row-major tile GIDs, len = width * height
	width  int      // map width in tiles
	height int      // map height in tiles
}

// NewTileLayer wraps row-major GID data of the given size in tiles.
func NewTileLayer(width, height int, data []uint32) (*TileLayer, error) {
	if width <= 0 || height <= 0 {
		return nil, fmt.Errorf("new tile layer: %w: size %dx%d", ErrInvalidLevel, width, height)
	}
	if len(data) != width*height {
		return nil, fmt.Errorf("new tile layer: %w: %d tiles for %dx%d", ErrInvalidLevel, len(data), width, height)
	}
	return &TileLayer{data: data, width: width, height: height}, nil
}

// Size returns the layer dimensions in tiles.
func (l *TileLayer) Size() (cols, rows int) {
	return l.width, l.height
}

// GID returns the tile at (col, row) without flip flags, 0 outside the grid.
func (l *TileLayer) GID(col, row int) uint32 {
	if col < 0 || col >= l.width || row < 0 || row >= l.height {
		return 0
	}
	return l.data[row*l.width+col] &^ tileFlagMask
}

// Flipped reports the flip flags of the tile at (col, row).
func (l *TileLayer) Flipped(col, row int) (h, v, d bool) {
	if col < 0 || col >= l.width || row < 0 || row >= l.height {
		return false, false, false
	}
	gid := l.data[row*l.width+col]
	return gid&tileFlipH != 0, gid&tileFlipV != 0, gid&tileFlipD != 0
}

// Solid reports whether (col, row) holds a tile.
func (l *TileLayer) Solid(col, row int) bool {
	return l.GID(col, row) != 0
}

// SetTile updates a single tile. Out-of-range coordinates are ignored.
// Worlds already built from the layer are not affected.
func (l *TileLayer) SetTile(col, row int, gid uint32) {
	if col < 0 || col >= l.width || row < 0 || row >= l.height {
		return
	}
	l.data[row*l.width+col] = gid
}

// WallPlacements converts the solid tiles into static walls. Horizontal runs
// of adjacent solid tiles in a row become a single wall, so a floor made of
// many tiles is one obstacle and the player never snags on the seams.
func (l *TileLayer) WallPlacements(tileSize float64) []Placement {
	var out []Placement
	for row := 0; row < l.height; row++ {
		col := 0
		for col < l.width {
			if !l.Solid(col, row) {
				col++
				continue
			}
			start := col
			for col < l.width && l.Solid(col, row) {
				col++
			}
			out = append(out, Placement{
				Kind: ObstacleWall,
				Box: Rect{
					X:      float64(start) * tileSize,
					Y:      float64(row) * tileSize,
					Width:  float64(col-start) * tileSize,
					Height: tileSize,
				},
			})
		}
	}
	return out
}
