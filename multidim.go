package meshfabric

import (
	"fmt"

	"golang.org/x/exp/slices"
)

// MultiDimAddress is a vector of length dims_count, with entry d in
// [0, npusCountPerDim[d]) for an NPU, or == npusCountPerDim[d] exactly
// when dimension d is a switch and this address is the switch's
// coordinate within that dimension.
type MultiDimAddress []int

func (a MultiDimAddress) clone() MultiDimAddress {
	out := make(MultiDimAddress, len(a))
	copy(out, a)
	return out
}

// MultiDimTopology composes an ordered list of BasicTopology dimensions
// by Cartesian product, builds inter- and intra-dimension link sets, and
// routes cross-dimension requests using dimension-order routing with
// fault-driven detour.
//
// Lifecycle: AppendDimension for each dimension, then
// InitializeAllDevices, then BuildSwitchLengthMapping, then either
// MakeConnections (recursive mode) or MakeNonRecursiveConnections
// (cluster mode). After assembly the topology is immutable aside from
// the link-bandwidth map being fixed.
type MultiDimTopology struct {
	dims          []BasicTopology
	npusCountPerDim []int
	bandwidthPerDim []Bandwidth

	npusCount    int
	devicesCount int

	faults *FaultTable

	// nonRecursiveTopo is the zeros-prefix / ones-suffix mask; nil or
	// all-zero means fully recursive.
	nonRecursiveTopo []int
	cluster          bool

	devices []Device
	graph   *DeviceGraph

	switchXlat *SwitchTranslationUnit
}

// NewMultiDimTopology returns an empty MultiDimTopology ready for
// append_dimension calls. nonRecursiveTopo may be nil, meaning fully
// recursive composition.
func NewMultiDimTopology(faults *FaultTable, nonRecursiveTopo []int) *MultiDimTopology {
	cluster := false
	if len(nonRecursiveTopo) > 0 {
		cluster = nonRecursiveTopo[len(nonRecursiveTopo)-1] == 1
	}
	return &MultiDimTopology{
		npusCount:        1,
		devicesCount:     1,
		faults:           faults,
		nonRecursiveTopo: nonRecursiveTopo,
		cluster:          cluster,
		graph:            NewDeviceGraph(),
	}
}

// AppendDimension pushes a basic topology, multiplies npus_count and
// devices_count, and records its bandwidth for use during connection
// materialisation.
func (t *MultiDimTopology) AppendDimension(topology BasicTopology) {
	t.dims = append(t.dims, topology)
	t.npusCountPerDim = append(t.npusCountPerDim, topology.NpusCount())
	t.bandwidthPerDim = append(t.bandwidthPerDim, topology.LinkBandwidthDim0())
	t.npusCount *= topology.NpusCount()
	t.devicesCount *= topology.DevicesCount()
}

func (t *MultiDimTopology) DimsCount() int      { return len(t.dims) }
func (t *MultiDimTopology) NpusCount() int      { return t.npusCount }
func (t *MultiDimTopology) Graph() *DeviceGraph { return t.graph }

// IsCluster reports whether this topology was constructed with a
// non-recursive (cluster) dimension. Given the validated zeros-prefix /
// ones-suffix mask shape, this is equivalent to "the last dimension is
// non-recursive", which is what construction checks.
func (t *MultiDimTopology) IsCluster() bool { return t.cluster }

// GetTotalNumDevices returns the total NPU count plus the switch nodes
// contributed by every switch dimension, using the switch translation
// unit's block layout.
func (t *MultiDimTopology) GetTotalNumDevices() int {
	if t.switchXlat == nil {
		t.BuildSwitchLengthMapping()
	}
	return t.switchXlat.TotalDevices()
}

// InitializeAllDevices materializes GetTotalNumDevices Device objects:
// NPUs first, then switch nodes in SwitchTranslationUnit order.
func (t *MultiDimTopology) InitializeAllDevices() {
	total := t.GetTotalNumDevices()
	t.devices = newDeviceTable(total)
	t.devicesCount = total
}

// BuildSwitchLengthMapping lazily instantiates the SwitchTranslationUnit
// from this topology's per-dimension switch mask.
func (t *MultiDimTopology) BuildSwitchLengthMapping() {
	if t.switchXlat != nil {
		return
	}
	isSwitchDim := make([]bool, len(t.dims))
	for i, dim := range t.dims {
		isSwitchDim[i] = dim.Kind() == SwitchTopology
	}
	t.switchXlat = NewSwitchTranslationUnit(t.npusCountPerDim, isSwitchDim)
}

// TranslateAddress converts an NPU device id to its MultiDimAddress,
// mixed-radix with the least significant digit at dimension 0.
func (t *MultiDimTopology) TranslateAddress(npuID DeviceId) MultiDimAddress {
	dimsCount := len(t.dims)
	addr := make(MultiDimAddress, dimsCount)
	leftover := int(npuID)
	denominator := t.npusCount
	for dim := dimsCount - 1; dim >= 0; dim-- {
		denominator /= t.npusCountPerDim[dim]
		addr[dim] = leftover / denominator
		leftover %= denominator
	}
	return addr
}

// TranslateAddressBack converts a MultiDimAddress back to an NPU device
// id. Both directions are inverses of one another over the NPU range.
func (t *MultiDimTopology) TranslateAddressBack(addr MultiDimAddress) DeviceId {
	id := 0
	for topDim := len(t.dims) - 1; topDim >= 0; topDim-- {
		weight := 1
		for j := 0; j < topDim; j++ {
			weight *= t.npusCountPerDim[j]
		}
		id += weight * addr[topDim]
	}
	return DeviceId(id)
}

// IsSwitch reports whether addr designates a switch node, i.e. at least
// one coordinate is at or beyond that dimension's npus_count.
func (t *MultiDimTopology) IsSwitch(addr MultiDimAddress) bool {
	for d, v := range addr {
		if v >= t.npusCountPerDim[d] {
			return true
		}
	}
	return false
}

// globalID resolves a (possibly switch) address into a global device id.
func (t *MultiDimTopology) globalID(addr MultiDimAddress) (DeviceId, error) {
	if t.IsSwitch(addr) {
		return t.switchXlat.TranslateAddressToID(addr)
	}
	return t.TranslateAddressBack(addr), nil
}

func (t *MultiDimTopology) faultDerate(u, v DeviceId) float64 {
	return t.faults.Derate(u, v)
}

func (t *MultiDimTopology) device(id DeviceId) Device {
	return t.devices[id]
}

// generateAddressPairs expands a dimension-local connection policy into
// every global address pair, one per combination of coordinates in every
// dimension other than dim.
func (t *MultiDimTopology) generateAddressPairs(policy ConnectionPolicy, dim int) []([2]MultiDimAddress) {
	dimsCount := len(t.dims)
	base := make(MultiDimAddress, dimsCount)
	var pairs []([2]MultiDimAddress)

	var recurse func(d int)
	recurse = func(d int) {
		if d == dimsCount {
			src := base.clone()
			dst := base.clone()
			src[dim] = int(policy.Src)
			dst[dim] = int(policy.Dst)
			pairs = append(pairs, [2]MultiDimAddress{src, dst})
			return
		}
		if d == dim {
			recurse(d + 1)
			return
		}
		for v := 0; v < t.npusCountPerDim[d]; v++ {
			base[d] = v
			recurse(d + 1)
		}
	}
	recurse(0)
	return pairs
}

// generateAddressPairsFirstNodesOnly is like generateAddressPairs but
// only for the combination where every dimension other than dim is held
// at coordinate 0 — used to materialize a non-recursive dimension's own
// links only once, at the "first copy" of the sub-cluster.
func (t *MultiDimTopology) generateAddressPairsFirstNodesOnly(policy ConnectionPolicy, dim int) []([2]MultiDimAddress) {
	dimsCount := len(t.dims)
	base := make(MultiDimAddress, dimsCount)
	src := base.clone()
	dst := base.clone()
	src[dim] = int(policy.Src)
	dst[dim] = int(policy.Dst)
	return []([2]MultiDimAddress){{src, dst}}
}

func (t *MultiDimTopology) connect(src, dst DeviceId, nominal Bandwidth, latency Latency) {
	derate := t.faultDerate(src, dst)
	bw := nominal
	if derate != 0 {
		bw = Bandwidth(float64(nominal) * derate)
	}
	t.graph.Connect(src, dst, bw, latency, false)
}

// MakeConnections materializes the inter-device links for fully
// recursive composition: every dimension's connection policy is lifted
// across the full Cartesian product of every other dimension's
// coordinates.
func (t *MultiDimTopology) MakeConnections() error {
	t.BuildSwitchLengthMapping()
	for dim, topology := range t.dims {
		policies := topology.ConnectionPolicies()
		if len(policies) == 0 {
			return fmt.Errorf("multidimtopology: dimension %d produced no connection policies", dim)
		}
		for _, policy := range policies {
			pairs := t.generateAddressPairs(policy, dim)
			for _, pair := range pairs {
				src, err := t.globalID(pair[0])
				if err != nil {
					return err
				}
				dst, err := t.globalID(pair[1])
				if err != nil {
					return err
				}
				t.connect(src, dst, t.bandwidthPerDim[dim], topology.LinkLatency())
			}
		}
	}
	return nil
}

// MakeNonRecursiveConnections materializes links under cluster mode: a
// dimension marked non-recursive (mask entry 1) has its own policy links
// materialized only at the first copy of the sub-cluster (every other
// dimension's coordinate held at zero) — routeCluster reaches the
// rest of that dimension's copies through the cluster agent instead; a
// dimension marked recursive (mask entry 0) has its policy links
// materialized across the full Cartesian product, exactly as in fully
// recursive composition.
func (t *MultiDimTopology) MakeNonRecursiveConnections() error {
	t.BuildSwitchLengthMapping()
	for dim, topology := range t.dims {
		policies := topology.ConnectionPolicies()
		if len(policies) == 0 {
			return fmt.Errorf("multidimtopology: dimension %d produced no connection policies", dim)
		}
		nonRecursiveDim := dim < len(t.nonRecursiveTopo) && t.nonRecursiveTopo[dim] == 1
		for _, policy := range policies {
			var pairs []([2]MultiDimAddress)
			if nonRecursiveDim {
				pairs = t.generateAddressPairsFirstNodesOnly(policy, dim)
			} else {
				pairs = t.generateAddressPairs(policy, dim)
			}
			for _, pair := range pairs {
				src, err := t.globalID(pair[0])
				if err != nil {
					return err
				}
				dst, err := t.globalID(pair[1])
				if err != nil {
					return err
				}
				t.connect(src, dst, t.bandwidthPerDim[dim], topology.LinkLatency())
			}
		}
	}
	return nil
}

// Route computes the global route from src to dest: cluster-mode
// composition uses routeCluster, otherwise routeNormal.
func (t *MultiDimTopology) Route(src, dest DeviceId) Route {
	if t.cluster {
		return t.routeCluster(src, dest)
	}
	return t.routeNormal(src, dest)
}

func highToLow(dimsCount int) []int {
	dims := make([]int, dimsCount)
	for i := range dims {
		dims[i] = dimsCount - 1 - i
	}
	return dims
}

func lowToHigh(dimsCount int) []int {
	dims := make([]int, dimsCount)
	for i := range dims {
		dims[i] = i
	}
	return dims
}

func (t *MultiDimTopology) routeNormal(src, dest DeviceId) Route {
	return t.routeHelper(src, dest, highToLow(len(t.dims)))
}

// routeCluster splits the journey into three segments through two
// cluster agents: src_cluster_agent (src with every recursive-dim
// coordinate zeroed) and top_cluster_agent (only the highest-dimension
// coordinate of src preserved, everything else zero).
func (t *MultiDimTopology) routeCluster(src, dest DeviceId) Route {
	dimsCount := len(t.dims)
	normalDims := highToLow(dimsCount)
	reverseDims := lowToHigh(dimsCount)

	srcAddr := t.TranslateAddress(src)

	srcClusterAgentAddr := srcAddr.clone()
	for dim := 0; dim < dimsCount; dim++ {
		if dim < len(t.nonRecursiveTopo) && t.nonRecursiveTopo[dim] == 0 {
			srcClusterAgentAddr[dim] = 0
		} else {
			break
		}
	}
	srcClusterAgentID := t.TranslateAddressBack(srcClusterAgentAddr)

	topClusterAgentAddr := make(MultiDimAddress, dimsCount)
	topClusterAgentAddr[dimsCount-1] = srcAddr[dimsCount-1]
	topClusterAgentID := t.TranslateAddressBack(topClusterAgentAddr)

	var routeToAgent, clusterRoute, agentToDest Route
	if src != srcClusterAgentID {
		routeToAgent = t.routeHelper(src, srcClusterAgentID, normalDims)
	}
	if srcClusterAgentID != topClusterAgentID {
		clusterRoute = t.routeHelper(srcClusterAgentID, topClusterAgentID, reverseDims)
	}
	if topClusterAgentID != dest {
		agentToDest = t.routeHelper(topClusterAgentID, dest, normalDims)
	}

	final := append(Route{}, routeToAgent...)
	final = spliceDedup(final, clusterRoute)
	final = spliceDedup(final, agentToDest)
	return final
}

// spliceDedup joins two route segments end-to-end and collapses any
// run of consecutive hops that land on the same device — the shared
// junction device between segments, or a segment that begins and ends
// on the same address when a dimension contributes no hop of its own.
func spliceDedup(base, next Route) Route {
	joined := append(append(Route{}, base...), next...)
	return Route(slices.CompactFunc(joined, func(a, b Device) bool { return a.ID == b.ID }))
}

// routeHelper performs dimension-order routing over the given ordering
// of dimensions. For each dimension where src and dest addresses differ,
// it asks that dimension's basic topology for a local route, lifts each
// intermediate coordinate to a global device id, and on encountering a
// derate-0 hop truncates the segment and recurses from a nearby
// reachable device with the current and predecessor dimension swapped in
// the routing order.
func (t *MultiDimTopology) routeHelper(src, dest DeviceId, routingDims []int) Route {
	srcAddr := t.TranslateAddress(src)
	destAddr := t.TranslateAddress(dest)

	route := Route{}
	lastDestAddr := srcAddr.clone()

	for idx, dim := range routingDims {
		if srcAddr[dim] == destAddr[dim] {
			continue
		}

		nextDimDestAddr := lastDestAddr.clone()
		nextDimDestAddr[dim] = destAddr[dim]

		topology := t.dims[dim]
		internalRoute := topology.Route(DeviceId(lastDestAddr[dim]), DeviceId(nextDimDestAddr[dim]))

		routeInDim := make(Route, 0, len(internalRoute))
		routeIDs := make([]DeviceId, 0, len(internalRoute))
		for _, internalDevice := range internalRoute {
			internalAddr := lastDestAddr.clone()
			internalAddr[dim] = int(internalDevice.ID)
			globalID, err := t.globalID(internalAddr)
			if err != nil {
				return route
			}
			routeInDim = append(routeInDim, t.device(globalID))
			routeIDs = append(routeIDs, globalID)
		}

		meetFault := false
		faultAt := -1
		for i := 0; i < len(routeIDs)-1; i++ {
			if t.faultDerate(routeIDs[i], routeIDs[i+1]) == 0 {
				faultAt = i
				meetFault = true
				break
			}
		}
		if meetFault {
			routeInDim = routeInDim[:faultAt+1]
			routeIDs = routeIDs[:faultAt+1]
		}

		route = spliceDedup(route, routeInDim)

		if meetFault {
			lastID := routeIDs[len(routeIDs)-1]
			lastAddr := t.TranslateAddress(lastID)

			newDestAddr := lastAddr.clone()
			nextDim := (dim + 1) % len(t.dims)
			newDestAddr[nextDim] = (newDestAddr[nextDim] + 1) % t.npusCountPerDim[nextDim]
			newDest := t.TranslateAddressBack(newDestAddr)

			newRoutingDims := append([]int{}, routingDims...)
			swappedIdx := idx - 1
			if idx == 0 {
				swappedIdx = len(newRoutingDims) - 1
			}
			newRoutingDims[idx], newRoutingDims[swappedIdx] = newRoutingDims[swappedIdx], newRoutingDims[idx]

			newRoute := t.routeHelper(newDest, dest, newRoutingDims)
			route = append(route, newRoute...)
			return route
		}

		lastDestAddr = nextDimDestAddr
	}

	if len(route) == 0 {
		route = Route{t.device(src)}
	}
	return route
}
