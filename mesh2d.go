package meshfabric

import "fmt"

// Mesh2DTopology is a d x d grid (npus_count = d^2) with no wrap-around:
// each device links to its right and down neighbours (plus the reverse
// edges when bidirectional).
type Mesh2DTopology struct {
	base
	dim int
}

// NewMesh2D builds a Mesh2D dimension. npusCount must be a perfect
// square.
func NewMesh2D(npusCount int, bandwidth Bandwidth, latency Latency, bidirectional, standalone bool, faults *FaultTable) (*Mesh2DTopology, error) {
	dim, err := integerSqrt(npusCount, "Mesh2D")
	if err != nil {
		return nil, err
	}
	t := &Mesh2DTopology{
		base: newBase(Mesh2D, npusCount, npusCount, bandwidth, latency, bidirectional, standalone, faults),
		dim:  dim,
	}
	for row := 0; row < dim; row++ {
		for col := 0; col < dim; col++ {
			current := DeviceId(row*dim + col)
			if col+1 < dim {
				right := DeviceId(row*dim + col + 1)
				t.installStandalone(current, right, bandwidth, bidirectional)
			}
			if row+1 < dim {
				down := DeviceId((row+1)*dim + col)
				t.installStandalone(current, down, bandwidth, bidirectional)
			}
		}
	}
	return t, nil
}

// integerSqrt returns the exact integer square root of n, or an error
// naming the offending topology and value if n is not a perfect square.
func integerSqrt(n int, topologyName string) (int, error) {
	if n <= 0 {
		return 0, fmt.Errorf("%s: npus_count (%d) must be positive", topologyName, n)
	}
	dim := 1
	for dim*dim < n {
		dim++
	}
	if dim*dim != n {
		return 0, fmt.Errorf("%s: npus_count (%d) is not a perfect square", topologyName, n)
	}
	return dim, nil
}

func (t *Mesh2DTopology) coords(id DeviceId) (col, row int) {
	return int(id) % t.dim, int(id) / t.dim
}

// Route walks greedily XY-first: fully close the X gap, then the Y gap.
// If the next intended hop is broken (derate 0), it attempts a one-hop
// detour on the orthogonal axis (prefer +1, then -1); if no detour exists
// routing stops early with a partial route.
func (t *Mesh2DTopology) Route(src, dst DeviceId) Route {
	dim := t.dim
	dx, dy := t.coords(dst)

	route := Route{t.device(src)}
	cur := src
	for cur != dst {
		cx, cy := t.coords(cur)

		stepX, stepY := 0, 0
		if cx != dx {
			if dx > cx {
				stepX = 1
			} else {
				stepX = -1
			}
		} else if cy != dy {
			if dy > cy {
				stepY = 1
			} else {
				stepY = -1
			}
		}

		var next DeviceId
		found := false
		switch {
		case stepX != 0:
			nx := cx + stepX
			if nx < 0 || nx >= dim {
				break
			}
			candidate := DeviceId(cy*dim + nx)
			if t.faultDerate(cur, candidate) != 0 {
				next, found = candidate, true
				break
			}
			// detour one step in Y, preferring +1 then -1
			if cy+1 < dim {
				alt := DeviceId((cy+1)*dim + cx)
				if t.faultDerate(cur, alt) != 0 {
					next, found = alt, true
					break
				}
			}
			if cy-1 >= 0 {
				alt := DeviceId((cy-1)*dim + cx)
				if t.faultDerate(cur, alt) != 0 {
					next, found = alt, true
					break
				}
			}
		case stepY != 0:
			ny := cy + stepY
			if ny < 0 || ny >= dim {
				break
			}
			candidate := DeviceId(ny*dim + cx)
			if t.faultDerate(cur, candidate) != 0 {
				next, found = candidate, true
				break
			}
			// detour one step in X, preferring +1 then -1
			if cx+1 < dim {
				alt := DeviceId(cy*dim + cx + 1)
				if t.faultDerate(cur, alt) != 0 {
					next, found = alt, true
					break
				}
			}
			if cx-1 >= 0 {
				alt := DeviceId(cy*dim + cx - 1)
				if t.faultDerate(cur, alt) != 0 {
					next, found = alt, true
					break
				}
			}
		}

		if !found {
			return route
		}
		route = append(route, t.device(next))
		cur = next
	}
	return route
}

// ConnectionPolicies emits right/down edges for every grid cell, plus
// left/up edges when bidirectional.
func (t *Mesh2DTopology) ConnectionPolicies() []ConnectionPolicy {
	dim := t.dim
	policies := make([]ConnectionPolicy, 0, 4*dim*dim)
	for row := 0; row < dim; row++ {
		for col := 0; col < dim; col++ {
			current := DeviceId(row*dim + col)
			if col+1 < dim {
				policies = append(policies, ConnectionPolicy{Src: current, Dst: DeviceId(row*dim + col + 1)})
			}
			if row+1 < dim {
				policies = append(policies, ConnectionPolicy{Src: current, Dst: DeviceId((row+1)*dim + col)})
			}
		}
	}
	if t.bidirectional {
		for row := 0; row < dim; row++ {
			for col := 0; col < dim; col++ {
				current := DeviceId(row*dim + col)
				if col-1 >= 0 {
					policies = append(policies, ConnectionPolicy{Src: current, Dst: DeviceId(row*dim + col - 1)})
				}
				if row-1 >= 0 {
					policies = append(policies, ConnectionPolicy{Src: current, Dst: DeviceId((row-1)*dim + col)})
				}
			}
		}
	}
	return policies
}
