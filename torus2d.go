package meshfabric

// Torus2DTopology is a d x d grid (npus_count = d^2) with wrap-around on
// both axes: each device links to its right and down neighbours modulo
// dim, plus the reverse edges when bidirectional.
type Torus2DTopology struct {
	base
	dim int
}

// NewTorus2D builds a Torus2D dimension. npusCount must be a perfect
// square.
func NewTorus2D(npusCount int, bandwidth Bandwidth, latency Latency, bidirectional, standalone bool, faults *FaultTable) (*Torus2DTopology, error) {
	dim, err := integerSqrt(npusCount, "Torus2D")
	if err != nil {
		return nil, err
	}
	t := &Torus2DTopology{
		base: newBase(Torus2D, npusCount, npusCount, bandwidth, latency, bidirectional, standalone, faults),
		dim:  dim,
	}
	for row := 0; row < dim; row++ {
		for col := 0; col < dim; col++ {
			current := DeviceId(row*dim + col)
			right := DeviceId(row*dim + (col+1)%dim)
			t.installStandalone(current, right, bandwidth, bidirectional)

			down := DeviceId(((row+1)%dim)*dim + col)
			t.installStandalone(current, down, bandwidth, bidirectional)
		}
	}
	return t, nil
}

func (t *Torus2DTopology) coords(id DeviceId) (col, row int) {
	return int(id) % t.dim, int(id) / t.dim
}

// maxTorusRouteHops bounds the wrap-and-detour walk so a fault pattern
// that keeps re-triggering the single-hop detour terminates as a partial
// route instead of hanging.
const maxTorusRouteHops = 4

// Route picks the shorter wrap direction per axis (X before Y, dimension
// order), and on a broken hop takes a one-hop detour on the orthogonal
// axis without re-checking that detour's own health — matching the
// original topology's detour policy, which commits to the alternate hop
// unconditionally.
func (t *Torus2DTopology) Route(src, dst DeviceId) Route {
	dim := t.dim
	dx, dy := t.coords(dst)

	route := Route{t.device(src)}
	cur := src
	for hops := 0; cur != dst; hops++ {
		if hops >= maxTorusRouteHops*dim {
			return route
		}
		cx, cy := t.coords(cur)

		stepX, stepY := 0, 0
		if cx != dx {
			diffX := ((dx - cx) + dim) % dim
			if diffX > dim/2 {
				stepX = -1
			} else {
				stepX = 1
			}
		} else if cy != dy {
			diffY := ((dy - cy) + dim) % dim
			if diffY > dim/2 {
				stepY = -1
			} else {
				stepY = 1
			}
		}

		var next DeviceId
		if stepX != 0 {
			nx := ((cx+stepX)%dim + dim) % dim
			next = DeviceId(cy*dim + nx)
			if t.faultDerate(cur, next) == 0 {
				ny := (cy + 1) % dim
				next = DeviceId(ny*dim + cx)
			}
		} else if stepY != 0 {
			ny := ((cy+stepY)%dim + dim) % dim
			next = DeviceId(ny*dim + cx)
			if t.faultDerate(cur, next) == 0 {
				nx := (cx + 1) % dim
				next = DeviceId(cy*dim + nx)
			}
		} else {
			return route
		}

		route = append(route, t.device(next))
		cur = next
	}
	return route
}

// ConnectionPolicies emits right/down edges (with wrap) for every grid
// cell, plus left/up edges when bidirectional.
func (t *Torus2DTopology) ConnectionPolicies() []ConnectionPolicy {
	dim := t.dim
	policies := make([]ConnectionPolicy, 0, 4*dim*dim)
	for row := 0; row < dim; row++ {
		for col := 0; col < dim; col++ {
			current := DeviceId(row*dim + col)
			right := DeviceId(row*dim + (col+1)%dim)
			down := DeviceId(((row+1)%dim)*dim + col)
			policies = append(policies, ConnectionPolicy{Src: current, Dst: right})
			policies = append(policies, ConnectionPolicy{Src: current, Dst: down})
		}
	}
	if t.bidirectional {
		for row := 0; row < dim; row++ {
			for col := 0; col < dim; col++ {
				current := DeviceId(row*dim + col)
				left := DeviceId(row*dim + (col-1+dim)%dim)
				up := DeviceId(((row-1+dim)%dim)*dim + col)
				policies = append(policies, ConnectionPolicy{Src: current, Dst: left})
				policies = append(policies, ConnectionPolicy{Src: current, Dst: up})
			}
		}
	}
	return policies
}
