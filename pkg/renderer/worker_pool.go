package renderer

import (
	"context"
	"sync"

	"golang.org/x/sync/errgroup"
)

// tileProgress serializes completion bookkeeping across workers
type tileProgress struct {
	mu       sync.Mutex
	stats    RenderStats
	done     int
	total    int
	callback func(done, total int)
}

func (p *tileProgress) complete(tileStats RenderStats) {
	p.mu.Lock()
	defer p.mu.Unlock()

	p.stats.add(tileStats)
	p.done++
	if p.callback != nil {
		p.callback(p.done, p.total)
	}
}

// renderTiles renders all tiles with at most rt.workers running at once.
// The first error cancels the remaining tiles.
func (rt *Raytracer) renderTiles(ctx context.Context, tiles []*Tile, frame *Frame) (RenderStats, error) {
	progress := &tileProgress{total: len(tiles), callback: rt.progress}

	g, ctx := errgroup.WithContext(ctx)
	g.SetLimit(rt.workers)

	for _, tile := range tiles {
		g.Go(func() error {
			tileStats, err := rt.renderTile(ctx, tile, frame)
			if err != nil {
				return err
			}
			progress.complete(tileStats)
			return nil
		})
	}

	err := g.Wait()
	return progress.stats, err
}
