package meshfabric

// BasicTopology is the contract every single-dimension topology variant
// implements: Ring, Mesh1D, FullyConnected, Switch, Bus, Mesh2D, Torus2D,
// KingMesh2D, HyperCube, BinaryTree, DoubleBinaryTree.
//
// A BasicTopology can be built two ways:
//   - standalone: it materializes its own Device table and its own
//     DeviceGraph of installed links, and can be routed and inspected on
//     its own.
//   - as a dimension of a MultiDimTopology: no links are materialized by
//     the topology itself (the enclosing MultiDimTopology lifts this
//     dimension's ConnectionPolicies into the composed graph instead); its
//     Route method is still used, against local coordinate values, to
//     compute the intra-dimension hop sequence that MultiDimTopology lifts
//     to global device ids.
//
// Either way NpusCount, DevicesCount, ConnectionPolicies, LinkLatency and
// LinkBandwidthDim0 describe the same shape.
type BasicTopology interface {
	// Kind identifies which concrete variant this is.
	Kind() TopologyKind

	// NpusCount is the number of NPUs (compute endpoints) in this
	// dimension. Always > 0.
	NpusCount() int

	// DevicesCount is NpusCount plus any switch/internal nodes this
	// topology introduces (e.g. +1 for Switch and Bus).
	DevicesCount() int

	// ConnectionPolicies is the canonical, deterministic set of directed
	// edges this topology requires, expressed in local device ids.
	ConnectionPolicies() []ConnectionPolicy

	// Route returns the local hop sequence from src to dst, both given as
	// local device ids. Route consults this topology's own fault table
	// using whatever ids it is given, which only coincide with the
	// caller's fault entries when this topology is used standalone.
	Route(src, dst DeviceId) Route

	// LinkLatency is the fixed per-hop latency configured for this
	// dimension.
	LinkLatency() Latency

	// LinkBandwidthDim0 is the nominal per-link bandwidth configured for
	// this dimension, as supplied at construction — NOT scaled by any
	// topology-internal bandwidth rule (e.g. Ring's doubling only applies
	// to links Ring installs itself when standalone).
	LinkBandwidthDim0() Bandwidth

	// Graph returns the topology's own installed-link store. It is
	// populated only when the topology was built standalone; embedded
	// dimensions return an empty graph since their links live in the
	// owning MultiDimTopology's graph instead.
	Graph() *DeviceGraph
}

// base holds the fields and behavior shared by every BasicTopology
// implementation: bookkeeping, fault consultation, and the
// derate-still-installs-at-full-bandwidth link rule.
type base struct {
	kind          TopologyKind
	npusCount     int
	devicesCount  int
	bandwidth     Bandwidth
	latency       Latency
	bidirectional bool
	standalone    bool
	faults        *FaultTable
	devices       []Device
	graph         *DeviceGraph
}

func newBase(kind TopologyKind, npusCount, devicesCount int, bandwidth Bandwidth, latency Latency,
	bidirectional, standalone bool, faults *FaultTable) base {
	return base{
		kind:          kind,
		npusCount:     npusCount,
		devicesCount:  devicesCount,
		bandwidth:     bandwidth,
		latency:       latency,
		bidirectional: bidirectional,
		standalone:    standalone,
		faults:        faults,
		devices:       newDeviceTable(devicesCount),
		graph:         NewDeviceGraph(),
	}
}

func (b *base) Kind() TopologyKind          { return b.kind }
func (b *base) NpusCount() int              { return b.npusCount }
func (b *base) DevicesCount() int           { return b.devicesCount }
func (b *base) LinkLatency() Latency        { return b.latency }
func (b *base) LinkBandwidthDim0() Bandwidth { return b.bandwidth }
func (b *base) Graph() *DeviceGraph         { return b.graph }

func (b *base) faultDerate(u, v DeviceId) float64 {
	return b.faults.Derate(u, v)
}

// installStandalone applies the derate-still-installs-at-full-bandwidth
// rule and writes the link into this topology's own graph, but only when
// the topology was constructed standalone; it is a no-op when this
// topology is a dimension of a larger topology, matching the original's
// `if (!is_multi_dim) { connect(...) }` construction guard.
func (b *base) installStandalone(u, v DeviceId, nominal Bandwidth, bidirectional bool) {
	if !b.standalone {
		return
	}
	derate := b.faultDerate(u, v)
	bw := nominal
	if derate != 0 {
		bw = Bandwidth(float64(nominal) * derate)
	}
	b.graph.Connect(u, v, bw, b.latency, bidirectional)
}

func (b *base) device(id DeviceId) Device {
	return b.devices[id]
}

func routeOf(devices ...Device) Route {
	return Route(devices)
}
