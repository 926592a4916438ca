package controller

import (
	"fmt"
	"sync"

	"github.com/google/uuid"
	"github.com/panjf2000/ants/v2"
)

// Crowd ticks many independently controlled bodies. Ground probes only read
// the world and run on a worker pool; driving writes to bodies and runs on
// the calling goroutine, one controller at a time.
type Crowd struct {
	pool    *ants.Pool
	members []*Controller
	index   map[uuid.UUID]int
}

func NewCrowd(poolSize int) (*Crowd, error) {
	if poolSize <= 0 {
		poolSize = 1
	}
	pool, err := ants.NewPool(poolSize, ants.WithPreAlloc(true))
	if err != nil {
		return nil, fmt.Errorf("controller: new crowd pool: %w", err)
	}
	return &Crowd{pool: pool, index: make(map[uuid.UUID]int)}, nil
}

// Add registers c. Adding the same controller twice is a no-op.
func (cr *Crowd) Add(c *Controller) {
	if cr == nil || c == nil {
		return
	}
	if _, ok := cr.index[c.ID()]; ok {
		return
	}
	cr.index[c.ID()] = len(cr.members)
	cr.members = append(cr.members, c)
}

func (cr *Crowd) Remove(id uuid.UUID) bool {
	if cr == nil {
		return false
	}
	i, ok := cr.index[id]
	if !ok {
		return false
	}
	last := len(cr.members) - 1
	cr.members[i] = cr.members[last]
	cr.index[cr.members[i].ID()] = i
	cr.members = cr.members[:last]
	delete(cr.index, id)
	return true
}

func (cr *Crowd) Len() int {
	if cr == nil {
		return 0
	}
	return len(cr.members)
}

func (cr *Crowd) Get(id uuid.UUID) (*Controller, bool) {
	if cr == nil {
		return nil, false
	}
	i, ok := cr.index[id]
	if !ok {
		return nil, false
	}
	return cr.members[i], true
}

// Tick runs one physics tick for every member. A member without a snapshot
// is driven with an empty one, so it still gets a zero basis.
func (cr *Crowd) Tick(snaps map[uuid.UUID]Snapshot) []Report {
	if cr == nil || len(cr.members) == 0 {
		return nil
	}

	grounds := make([]GroundingResult, len(cr.members))
	var wg sync.WaitGroup
	for i, c := range cr.members {
		wg.Add(1)
		err := cr.pool.Submit(func() {
			defer wg.Done()
			grounds[i] = c.Probe()
		})
		if err != nil {
			// pool released
			grounds[i] = c.Probe()
			wg.Done()
		}
	}
	wg.Wait()

	reports := make([]Report, 0, len(cr.members))
	for i, c := range cr.members {
		reports = append(reports, c.Drive(snaps[c.ID()], grounds[i]))
	}
	return reports
}

func (cr *Crowd) Release() {
	if cr == nil || cr.pool == nil {
		return
	}
	cr.pool.Release()
}
