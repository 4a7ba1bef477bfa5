package meshfabric

import "fmt"

// KingMesh2DTopology is an nx * ny grid with 8-neighbour ("king move")
// connectivity: orthogonal plus diagonal, no wrap-around. Grid dimensions
// come from configuration rather than a hard-coded 8x2 shape.
type KingMesh2DTopology struct {
	base
	nx, ny int
}

// NewKingMesh2D builds a KingMesh2D dimension. nx*ny must equal
// npusCount.
func NewKingMesh2D(npusCount, nx, ny int, bandwidth Bandwidth, latency Latency, bidirectional, standalone bool, faults *FaultTable) (*KingMesh2DTopology, error) {
	if nx <= 0 || ny <= 0 {
		return nil, fmt.Errorf("KingMesh2D: grid dimensions (%d, %d) must be positive", nx, ny)
	}
	if nx*ny != npusCount {
		return nil, fmt.Errorf("KingMesh2D: grid dimensions %dx%d don't match npus_count (%d)", nx, ny, npusCount)
	}
	t := &KingMesh2DTopology{
		base: newBase(KingMesh2D, npusCount, npusCount, bandwidth, latency, bidirectional, standalone, faults),
		nx:   nx,
		ny:   ny,
	}
	for row := 0; row < ny; row++ {
		for col := 0; col < nx; col++ {
			current := DeviceId(row*nx + col)
			if col+1 < nx {
				t.installStandalone(current, DeviceId(row*nx+col+1), bandwidth, bidirectional)
			}
			if row+1 < ny {
				t.installStandalone(current, DeviceId((row+1)*nx+col), bandwidth, bidirectional)
				if col+1 < nx {
					t.installStandalone(current, DeviceId((row+1)*nx+col+1), bandwidth, bidirectional)
				}
				if col > 0 {
					t.installStandalone(current, DeviceId((row+1)*nx+col-1), bandwidth, bidirectional)
				}
			}
		}
	}
	return t, nil
}

func (t *KingMesh2DTopology) coords(id DeviceId) (col, row int) {
	return int(id) % t.nx, int(id) / t.nx
}

// Route prefers a diagonal step when both axes still need progress,
// falling back to a single-axis move (with its own orthogonal detour) on
// a broken hop, matching the original topology's greedy king-move walk.
func (t *KingMesh2DTopology) Route(src, dst DeviceId) Route {
	nx, ny := t.nx, t.ny
	dx, dy := t.coords(dst)

	route := Route{t.device(src)}
	cur := src
	for cur != dst {
		cx, cy := t.coords(cur)

		stepX, stepY := 0, 0
		if cx < dx {
			stepX = 1
		} else if cx > dx {
			stepX = -1
		}
		if cy < dy {
			stepY = 1
		} else if cy > dy {
			stepY = -1
		}

		var next DeviceId
		found := false

		if stepX != 0 && stepY != 0 {
			nx2, ny2 := cx+stepX, cy+stepY
			if nx2 >= 0 && nx2 < nx && ny2 >= 0 && ny2 < ny {
				diag := DeviceId(ny2*nx + nx2)
				if t.faultDerate(cur, diag) != 0 {
					next, found = diag, true
				} else {
					if nx2 >= 0 && nx2 < nx {
						altX := DeviceId(cy*nx + nx2)
						if t.faultDerate(cur, altX) != 0 {
							next, found = altX, true
						}
					}
					if !found && ny2 >= 0 && ny2 < ny {
						altY := DeviceId(ny2*nx + cx)
						if t.faultDerate(cur, altY) != 0 {
							next, found = altY, true
						}
					}
				}
			}
		}

		if !found && stepX != 0 {
			nx2 := cx + stepX
			if nx2 >= 0 && nx2 < nx {
				candidate := DeviceId(cy*nx + nx2)
				if t.faultDerate(cur, candidate) != 0 {
					next, found = candidate, true
				} else {
					if cy+1 < ny && t.faultDerate(cur, DeviceId((cy+1)*nx+cx)) != 0 {
						next, found = DeviceId((cy+1)*nx+cx), true
					} else if cy-1 >= 0 && t.faultDerate(cur, DeviceId((cy-1)*nx+cx)) != 0 {
						next, found = DeviceId((cy-1)*nx+cx), true
					}
				}
			}
		} else if !found && stepY != 0 {
			ny2 := cy + stepY
			if ny2 >= 0 && ny2 < ny {
				candidate := DeviceId(ny2*nx + cx)
				if t.faultDerate(cur, candidate) != 0 {
					next, found = candidate, true
				} else {
					if cx+1 < nx && t.faultDerate(cur, DeviceId(cy*nx+cx+1)) != 0 {
						next, found = DeviceId(cy*nx+cx+1), true
					} else if cx-1 >= 0 && t.faultDerate(cur, DeviceId(cy*nx+cx-1)) != 0 {
						next, found = DeviceId(cy*nx+cx-1), true
					}
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

// ConnectionPolicies emits every 8-neighbour edge for every grid cell,
// plus explicit reverse edges when bidirectional.
func (t *KingMesh2DTopology) ConnectionPolicies() []ConnectionPolicy {
	nx, ny := t.nx, t.ny
	policies := make([]ConnectionPolicy, 0, 8*nx*ny)
	for row := 0; row < ny; row++ {
		for col := 0; col < nx; col++ {
			current := DeviceId(row*nx + col)
			for dy := -1; dy <= 1; dy++ {
				for dx := -1; dx <= 1; dx++ {
					if dx == 0 && dy == 0 {
						continue
					}
					newRow, newCol := row+dy, col+dx
					if newRow >= 0 && newRow < ny && newCol >= 0 && newCol < nx {
						policies = append(policies, ConnectionPolicy{Src: current, Dst: DeviceId(newRow*nx + newCol)})
					}
				}
			}
		}
	}
	if t.bidirectional {
		reversed := make([]ConnectionPolicy, len(policies))
		for i, p := range policies {
			reversed[i] = ConnectionPolicy{Src: p.Dst, Dst: p.Src}
		}
		policies = append(policies, reversed...)
	}
	return policies
}
