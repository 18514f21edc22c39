package game

import (
	"drawbattle/canvas"
	"drawbattle/domain"
	"drawbattle/rpc"
	"fmt"
)

// LobbyCanvas is the scribble board shown while players gather. Every peer,
// the server included, keeps a replica and applies the same calls in the same
// order, so all replicas hold the same pixels.
type LobbyCanvas struct {
	raster  *canvas.Raster
	brush   *canvas.Brush
	radius  int
	palette Palette
}

func NewLobbyCanvas(width, height, radius int, spacing float64, palette Palette) *LobbyCanvas {
	raster := canvas.NewRaster(width, height)
	return &LobbyCanvas{
		raster:  raster,
		brush:   canvas.NewBrush(raster, spacing),
		radius:  radius,
		palette: palette,
	}
}

func (lc *LobbyCanvas) Raster() *canvas.Raster {
	return lc.raster
}

// Stroker returns a stroker painting in the given player's ink. Local strokes
// go through it; the stamp centers it returns are what gets broadcast.
func (lc *LobbyCanvas) Stroker(id domain.PlayerId) (*canvas.Stroker, error) {
	c, ok := lc.palette.ColorOf(id)
	if !ok {
		return nil, fmt.Errorf("%w: player %d", ErrUnknownPlayerColor, id)
	}
	return canvas.NewStroker(lc.brush, c, lc.radius), nil
}

// ApplyDraw stamps one replicated Draw in its author's ink.
func (lc *LobbyCanvas) ApplyDraw(d rpc.Draw) error {
	c, ok := lc.palette.ColorOf(d.PlayerId)
	if !ok {
		return fmt.Errorf("%w: player %d", ErrUnknownPlayerColor, d.PlayerId)
	}
	lc.brush.StampCircle(canvas.Point{X: float64(d.X), Y: float64(d.Y)}, c, lc.radius)
	return nil
}

// ApplySnapshot replaces the whole board with a SendFullTexture payload. In
// legacy mode the payload is deflated once more before import, which is what
// old clients did on receive. Such input never has the raster's size and is
// rejected with canvas.ErrSnapshotSize.
func (lc *LobbyCanvas) ApplySnapshot(texture []byte, legacy bool) error {
	if !legacy {
		return lc.raster.ImportCompressed(texture)
	}
	data, err := canvas.Compress(texture)
	if err != nil {
		return err
	}
	return lc.raster.Import(data)
}

// Snapshot captures the board as a server-originated SendFullTexture.
func (lc *LobbyCanvas) Snapshot() (rpc.SendFullTexture, error) {
	texture, err := lc.raster.CompressedExport()
	if err != nil {
		return rpc.SendFullTexture{}, err
	}
	return rpc.SendFullTexture{Texture: texture}, nil
}
