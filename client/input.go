package client

import (
	"drawbattle/canvas"
	"drawbattle/domain"
	"drawbattle/rpc"
)

// LobbyPointerDown starts a scribble on the lobby board. The stroke is painted
// locally right away and every stamp is broadcast as a Draw.
func (p *Peer) LobbyPointerDown(at canvas.Point) error {
	return p.scribbleWith(func(s *canvas.Stroker) []canvas.Point { return s.PointerDown(at) })
}

func (p *Peer) LobbyPointerMove(at canvas.Point) error {
	return p.scribbleWith(func(s *canvas.Stroker) []canvas.Point { return s.Sample(at) })
}

func (p *Peer) LobbyPointerUp() {
	p.mu.Lock()
	defer p.mu.Unlock()
	if p.scribble != nil {
		p.scribble.PointerUp()
	}
}

// scribbleWith paints one stroke step and sends its stamps, paced under the
// server's Draw limit. Sending happens outside mu so incoming frames keep
// being applied meanwhile; drawMu keeps strokes in order.
func (p *Peer) scribbleWith(stroke func(*canvas.Stroker) []canvas.Point) error {
	p.drawMu.Lock()
	defer p.drawMu.Unlock()

	p.mu.Lock()
	if err := p.requirePhase(domain.PhaseLobby); err != nil {
		p.mu.Unlock()
		return err
	}
	if p.scribble == nil {
		p.mu.Unlock()
		return ErrNotJoined
	}
	id := p.id
	points := stroke(p.scribble)
	p.mu.Unlock()

	for _, c := range points {
		if err := p.drawPace.Wait(p.ctx); err != nil {
			return err
		}
		if err := p.send(rpc.AllBuffered, rpc.Draw{PlayerId: id, X: float32(c.X), Y: float32(c.Y)}); err != nil {
			return err
		}
	}
	return nil
}

// DrawPointerDown starts a stroke on the private drawing. Nothing is sent
// until CompleteDrawing.
func (p *Peer) DrawPointerDown(at canvas.Point) error {
	return p.penWith(func(s *canvas.Stroker) { s.PointerDown(at) })
}

func (p *Peer) DrawPointerMove(at canvas.Point) error {
	return p.penWith(func(s *canvas.Stroker) { s.Sample(at) })
}

func (p *Peer) DrawPointerUp() {
	p.mu.Lock()
	defer p.mu.Unlock()
	if p.pen != nil {
		p.pen.PointerUp()
	}
}

func (p *Peer) penWith(stroke func(*canvas.Stroker)) error {
	p.mu.Lock()
	defer p.mu.Unlock()
	if err := p.requirePhase(domain.PhaseDrawing); err != nil {
		return err
	}
	if p.submitted {
		return ErrAlreadySubmitted
	}
	stroke(p.pen)
	return nil
}

// SetColor picks the ink of the private drawing. canvas.Transparent erases.
func (p *Peer) SetColor(c canvas.Color) error {
	p.mu.Lock()
	defer p.mu.Unlock()
	if p.pen == nil {
		return ErrNotJoined
	}
	p.pen.SetColor(c)
	return nil
}

func (p *Peer) SetBrushSize(size int) error {
	p.mu.Lock()
	defer p.mu.Unlock()
	if p.pen == nil {
		return ErrNotJoined
	}
	p.pen.SetSize(size)
	return nil
}

// RequestReady tells the server this player is ready and lights their dot.
// Asking twice is a no-op.
func (p *Peer) RequestReady() error {
	return p.setReady(true)
}

func (p *Peer) CancelReady() error {
	return p.setReady(false)
}

func (p *Peer) setReady(ready bool) error {
	p.mu.Lock()
	defer p.mu.Unlock()
	if err := p.requirePhase(domain.PhaseLobby); err != nil {
		return err
	}
	if p.ready == ready {
		return nil
	}

	delta, state := int32(1), domain.DotReady
	if !ready {
		delta, state = -1, domain.DotJoined
	}
	// the last ready call ends the lobby, after which dots are refused
	if err := p.send(rpc.AllBuffered, rpc.UpdateDot{PlayerIndex: int32(p.id) - 1, State: state}); err != nil {
		return err
	}
	if err := p.send(rpc.Server, rpc.PlayerReady{PlayerId: p.id, Delta: delta}); err != nil {
		return err
	}
	p.ready = ready
	return nil
}

// CompleteDrawing submits the private drawing. It can only be done once per
// drawing phase.
func (p *Peer) CompleteDrawing() error {
	p.mu.Lock()
	defer p.mu.Unlock()
	if err := p.requirePhase(domain.PhaseDrawing); err != nil {
		return err
	}
	if p.submitted {
		return ErrAlreadySubmitted
	}
	texture, err := p.drawing.CompressedExport()
	if err != nil {
		return err
	}
	if err := p.send(rpc.Server, rpc.SendDrawingComplete{PlayerId: p.id, Texture: texture}); err != nil {
		return err
	}
	p.submitted = true
	p.pen.PointerUp()
	return nil
}

// ShareLobby broadcasts this peer's whole lobby board. Everybody, latecomers
// included, ends up with exactly these pixels.
func (p *Peer) ShareLobby() error {
	p.mu.Lock()
	defer p.mu.Unlock()
	if err := p.requirePhase(domain.PhaseLobby); err != nil {
		return err
	}
	snap, err := p.lobby.Snapshot()
	if err != nil {
		return err
	}
	snap.PlayerId = p.id
	return p.send(rpc.AllBuffered, snap)
}
