package dome

// Column layout of the tile grid. Odd columns are shifted by one unit to
// produce the staggered honeycomb look.
const firstColumnX = -28

var (
	evenColumnRows = [4]int{-3, -1, 1, 3}
	oddColumnRows  = [4]int{-2, 0, 2, 4}
)

// TilesPerColumn is the number of tiles stacked in each segment.
const TilesPerColumn = len(evenColumnRows)

// BuildGrid lays out 4*segments tiles column-major and assigns content from
// pool round-robin: tile i receives pool[i mod len(pool)]. An empty pool
// produces tiles with empty content. The result is deterministic for equal
// inputs. segments below 1 are treated as 1.
func BuildGrid(segments int, pool []ContentItem) []Tile {
	if segments < 1 {
		segments = 1
	}
	tiles := make([]Tile, 0, segments*TilesPerColumn)
	for c := 0; c < segments; c++ {
		rows := evenColumnRows
		if c%2 == 1 {
			rows = oddColumnRows
		}
		x := firstColumnX + TileSize*c
		for _, y := range rows {
			i := len(tiles)
			t := Tile{Index: i, OffsetX: x, OffsetY: y}
			if len(pool) > 0 {
				t.Content = pool[i%len(pool)].resolved()
			}
			tiles = append(tiles, t)
		}
	}
	return tiles
}
