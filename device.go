package meshfabric

import (
	"gonum.org/v1/gonum/graph"
	"gonum.org/v1/gonum/graph/simple"
)

// Device is an addressable endpoint (NPU or switch node). Devices are
// created once during topology assembly and shared by reference by every
// link and route that mentions them; a Device value is a small, comparable
// handle, not a copy of mutable state.
type Device struct {
	ID DeviceId
}

// newDeviceTable allocates n devices with ids 0..n-1.
func newDeviceTable(n int) []Device {
	devices := make([]Device, n)
	for i := range devices {
		devices[i] = Device{ID: DeviceId(i)}
	}
	return devices
}

// DeviceGraph is the authoritative store of installed directed links for a
// topology: which ordered pairs are connected, and at what bandwidth and
// latency. It is backed by gonum's weighted directed graph, the same
// graph package used elsewhere in this codebase's lineage to represent a
// device/link topology. DeviceGraph itself never runs a shortest-path
// search over that graph — routing in
// this module is dimension-order, not shortest-path (see MultiDimTopology)
// — it exists purely as a link existence/attribute store, exercised by
// route postcondition checks and by the bandwidth-accounting collaborator.
type DeviceGraph struct {
	g         *simple.WeightedDirectedGraph
	latencies map[[2]DeviceId]Latency
}

// NewDeviceGraph returns an empty device/link graph.
func NewDeviceGraph() *DeviceGraph {
	return &DeviceGraph{
		g:         simple.NewWeightedDirectedGraph(0, 0),
		latencies: make(map[[2]DeviceId]Latency),
	}
}

// Connect installs (or overwrites) the directed link u -> v with the given
// bandwidth and latency. At most one link exists per ordered pair; a
// second call with the same pair replaces the first, matching the
// last-write-wins policy the construction code relies on.
// If bidirectional is true the reverse link v -> u is installed as well,
// with the same bandwidth and latency.
func (dg *DeviceGraph) Connect(u, v DeviceId, bandwidth Bandwidth, latency Latency, bidirectional bool) {
	dg.connectOne(u, v, bandwidth, latency)
	if bidirectional {
		dg.connectOne(v, u, bandwidth, latency)
	}
}

func (dg *DeviceGraph) connectOne(u, v DeviceId, bandwidth Bandwidth, latency Latency) {
	dg.g.SetWeightedEdge(simple.WeightedEdge{
		F: simple.Node(u),
		T: simple.Node(v),
		W: float64(bandwidth),
	})
	dg.latencies[[2]DeviceId{u, v}] = latency
}

// HasLink reports whether the directed link u -> v is installed.
func (dg *DeviceGraph) HasLink(u, v DeviceId) bool {
	return dg.g.HasEdgeFromTo(int64(u), int64(v))
}

// Bandwidth returns the installed bandwidth of the directed link u -> v,
// and false if no such link exists. This is the bandwidth-accounting
// collaborator's link-query surface.
func (dg *DeviceGraph) Bandwidth(u, v DeviceId) (Bandwidth, bool) {
	edge := dg.g.WeightedEdge(int64(u), int64(v))
	if edge == nil {
		return 0, false
	}
	return Bandwidth(edge.Weight()), true
}

// Latency returns the installed latency of the directed link u -> v, and
// false if no such link exists.
func (dg *DeviceGraph) Latency(u, v DeviceId) (Latency, bool) {
	lat, ok := dg.latencies[[2]DeviceId{u, v}]
	return lat, ok
}

// LinksFrom returns the ids of every device u directly links to.
func (dg *DeviceGraph) LinksFrom(u DeviceId) []DeviceId {
	it := dg.g.From(int64(u))
	return nodeIDs(it)
}

func nodeIDs(it graph.Nodes) []DeviceId {
	out := make([]DeviceId, 0, it.Len())
	for it.Next() {
		out = append(out, DeviceId(it.Node().ID()))
	}
	return out
}
