package pipeline

import (
	"context"

	"github.com/fine-structures/cograph/cograph"
	"github.com/fine-structures/cograph/libcograph/graph6"
	"golang.org/x/sync/errgroup"
)

// encoderPool is a fixed set of encoder goroutines that lives for exactly one batch.
//
// The first encoder failure cancels the pool: no further items are handed out and the failure
// (naming the offending structure) is returned by release().
type encoderPool struct {
	group    *errgroup.Group
	ctx      context.Context
	jobs     chan int
	released bool
}

// acquireEncoderPool starts workers goroutines encoding batch[i] into out[i] for each index sent to the pool.
func acquireEncoderPool(workers int, batch, out []string) *encoderPool {
	group, ctx := errgroup.WithContext(context.Background())
	p := &encoderPool{
		group: group,
		ctx:   ctx,
		jobs:  make(chan int, workers),
	}

	for w := 0; w < workers; w++ {
		group.Go(func() error {
			for i := range p.jobs {
				if ctx.Err() != nil {
					continue
				}
				line, err := graph6.EncodeStructure(batch[i])
				if err != nil {
					return &cograph.PipelineError{
						Stage:     cograph.StageEncode,
						Structure: batch[i],
						Err:       err,
					}
				}
				out[i] = line
			}
			return nil
		})
	}
	return p
}

// submit hands out the indices [0, count), stopping early if the pool failed.
func (p *encoderPool) submit(count int) {
	for i := 0; i < count; i++ {
		select {
		case p.jobs <- i:
		case <-p.ctx.Done():
			return
		}
	}
}

// release stops the pool and waits for every worker to exit.  It is safe to call more than once.
func (p *encoderPool) release() error {
	if !p.released {
		p.released = true
		close(p.jobs)
	}
	return p.group.Wait()
}

// encodeBatch encodes batch with a pool scoped to this call, returning results in batch order.
func encodeBatch(batch []string, workers int) ([]string, error) {
	out := make([]string, len(batch))
	workers = max(1, min(workers, len(batch)))

	pool := acquireEncoderPool(workers, batch, out)
	defer pool.release()

	pool.submit(len(batch))
	if err := pool.release(); err != nil {
		return nil, err
	}
	return out, nil
}
