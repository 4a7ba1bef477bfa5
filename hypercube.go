package meshfabric

import "fmt"

// HyperCubeTopology has npus_count = 2^d devices, each read as a d-bit
// address; two devices link iff their addresses differ in exactly one
// bit. Routing walks toward the destination one differing bit at a time,
// generalizing the "advance one coordinate, detect a broken hop, stop"
// shape used by the grid topologies to d bits instead of 2 coordinates.
type HyperCubeTopology struct {
	base
	dims int
}

// NewHyperCube builds a HyperCube dimension. npusCount must be a power of
// two.
func NewHyperCube(npusCount int, bandwidth Bandwidth, latency Latency, bidirectional, standalone bool, faults *FaultTable) (*HyperCubeTopology, error) {
	dims, err := log2(npusCount)
	if err != nil {
		return nil, fmt.Errorf("HyperCube: %w", err)
	}
	t := &HyperCubeTopology{
		base: newBase(HyperCube, npusCount, npusCount, bandwidth, latency, bidirectional, standalone, faults),
		dims: dims,
	}
	for u := 0; u < npusCount; u++ {
		for bit := 0; bit < dims; bit++ {
			v := u ^ (1 << uint(bit))
			if v > u {
				t.installStandalone(DeviceId(u), DeviceId(v), bandwidth, bidirectional)
			}
		}
	}
	return t, nil
}

func log2(n int) (int, error) {
	if n <= 0 {
		return 0, fmt.Errorf("npus_count (%d) must be positive", n)
	}
	d := 0
	for (1 << uint(d)) < n {
		d++
	}
	if 1<<uint(d) != n {
		return 0, fmt.Errorf("npus_count (%d) is not a power of two", n)
	}
	return d, nil
}

// Route flips the differing bits of src^dst one at a time, low bit first,
// terminating early on the first zero-derate hop with a partial route.
func (t *HyperCubeTopology) Route(src, dst DeviceId) Route {
	route := Route{t.device(src)}
	cur := src
	diff := int(src) ^ int(dst)
	for diff != 0 {
		bit := 0
		for diff&(1<<uint(bit)) == 0 {
			bit++
		}
		next := DeviceId(int(cur) ^ (1 << uint(bit)))
		if t.faultDerate(cur, next) == 0 {
			return route
		}
		route = append(route, t.device(next))
		cur = next
		diff &^= 1 << uint(bit)
	}
	return route
}

// ConnectionPolicies emits both directed edges for every pair of devices
// whose addresses differ in exactly one bit.
func (t *HyperCubeTopology) ConnectionPolicies() []ConnectionPolicy {
	policies := make([]ConnectionPolicy, 0, t.npusCount*t.dims)
	for u := 0; u < t.npusCount; u++ {
		for bit := 0; bit < t.dims; bit++ {
			v := u ^ (1 << uint(bit))
			policies = append(policies, ConnectionPolicy{Src: DeviceId(u), Dst: DeviceId(v)})
		}
	}
	return policies
}
