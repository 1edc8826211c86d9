package distexec

import (
	"context"
	"fmt"
	"net/rpc"

	"github.com/dvalters/catchmentfp/grid"
)

// Cluster coordinates a fixed set of already-running Worker processes,
// one per row-partition of the domain, generalizing sr.Cluster's
// dial-and-dispatch role to a per-step halo-exchange barrier instead of a
// one-shot whole-simulation RPC call.
type Cluster struct {
	addrs   []string
	clients []*rpc.Client
}

// Dial connects to every worker address in order; addrs[i] must be
// serving the partition produced by distexec.SplitRows(g, len(addrs))[i].
func Dial(addrs []string) (*Cluster, error) {
	c := &Cluster{addrs: addrs, clients: make([]*rpc.Client, len(addrs))}
	for i, addr := range addrs {
		client, err := rpc.DialHTTP("tcp", addr)
		if err != nil {
			return nil, fmt.Errorf("distexec: dialing %s: %w", addr, err)
		}
		c.clients[i] = client
	}
	return c, nil
}

// Init sends each partition (as produced by SplitRows) to its
// corresponding worker, along with the shared parameters, then installs
// every worker's initial halo rows from its neighbors' partitions.
func (c *Cluster) Init(parts []*Partition, p grid.Params) error {
	if len(parts) != len(c.clients) {
		return fmt.Errorf("distexec: %d partitions for %d workers", len(parts), len(c.clients))
	}
	for i, part := range parts {
		req := &InitRequest{Partition: *part, Params: p}
		if err := c.clients[i].Call("Worker.Init", req, &Empty{}); err != nil {
			return fmt.Errorf("distexec: initializing worker %d: %w", i, err)
		}
	}
	for i := range parts {
		if i > 0 {
			if err := c.clients[i].Call("Worker.SetHalo", &HaloRequest{Rows: parts[i-1].SouthEdge(), Side: North}, &Empty{}); err != nil {
				return fmt.Errorf("distexec: initial halo %d->%d: %w", i-1, i, err)
			}
		}
		if i < len(parts)-1 {
			if err := c.clients[i].Call("Worker.SetHalo", &HaloRequest{Rows: parts[i+1].NorthEdge(), Side: South}, &Empty{}); err != nil {
				return fmt.Errorf("distexec: initial halo %d->%d: %w", i+1, i, err)
			}
		}
	}
	return nil
}

// Step runs one barrier-synchronized step across every worker: each
// worker computes its partition's next state concurrently, then the
// coordinator exchanges the resulting edge rows as the next step's
// halos before returning. Returns the total clamp mass removed across
// all partitions this step.
func (c *Cluster) Step(ctx context.Context) (float64, error) {
	results := make([]StepResult, len(c.clients))
	errCh := make(chan error, len(c.clients))
	for i, client := range c.clients {
		i, client := i, client
		go func() {
			errCh <- client.Call("Worker.Step", &Empty{}, &results[i])
		}()
	}
	for range c.clients {
		if err := <-errCh; err != nil {
			return 0, fmt.Errorf("distexec: step: %w", err)
		}
	}

	var totalClamped float64
	for i, r := range results {
		totalClamped += r.ClampedOutflow
		if i > 0 {
			if err := c.clients[i-1].Call("Worker.SetHalo", &HaloRequest{Rows: r.NorthEdge, Side: South}, &Empty{}); err != nil {
				return 0, fmt.Errorf("distexec: exchanging halo %d->%d: %w", i, i-1, err)
			}
		}
		if i < len(results)-1 {
			if err := c.clients[i+1].Call("Worker.SetHalo", &HaloRequest{Rows: r.SouthEdge, Side: North}, &Empty{}); err != nil {
				return 0, fmt.Errorf("distexec: exchanging halo %d->%d: %w", i, i+1, err)
			}
		}
	}
	return totalClamped, nil
}

// Shutdown tells every worker to exit and closes the RPC connections.
func (c *Cluster) Shutdown() {
	for _, client := range c.clients {
		client.Call("Worker.Exit", &Empty{}, &Empty{})
		client.Close()
	}
}
