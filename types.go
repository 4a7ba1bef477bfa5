package meshfabric

import "fmt"

// DeviceId identifies a device (NPU or switch node) within a topology.
// Ids are dense, starting at 0, and stable for the lifetime of the
// enclosing topology.
type DeviceId int

// Bandwidth is an effective link rate in GB/s. It is always > 0 for an
// installed link; the fault-derate rule in BasicTopology never installs a
// link at bandwidth 0 (see the derate-0-still-installs-at-full-bandwidth
// note on installStandalone).
type Bandwidth float64

// Latency is a link's fixed per-hop delay in nanoseconds. Always >= 0.
type Latency float64

// TopologyKind tags which basic topology a dimension uses.
type TopologyKind int

const (
	Ring TopologyKind = iota
	Mesh1D
	FullyConnected
	SwitchTopology
	Bus
	BinaryTree
	DoubleBinaryTree
	HyperCube
	Mesh2D
	Torus2D
	KingMesh2D
)

var topologyKindNames = map[TopologyKind]string{
	Ring:             "Ring",
	Mesh1D:           "Mesh",
	FullyConnected:   "FullyConnected",
	SwitchTopology:   "Switch",
	Bus:              "Bus",
	BinaryTree:       "BinaryTree",
	DoubleBinaryTree: "DoubleBinaryTree",
	HyperCube:        "HyperCube",
	Mesh2D:           "Mesh2D",
	Torus2D:          "Torus2D",
	KingMesh2D:       "KingMesh2D",
}

var topologyKindByName = func() map[string]TopologyKind {
	m := make(map[string]TopologyKind, len(topologyKindNames))
	for k, v := range topologyKindNames {
		m[v] = k
	}
	return m
}()

// String renders the TopologyKind using the same tag NetworkConfig accepts
// for it, e.g. Mesh1D renders as "Mesh".
func (k TopologyKind) String() string {
	if name, ok := topologyKindNames[k]; ok {
		return name
	}
	return fmt.Sprintf("TopologyKind(%d)", int(k))
}

// ParseTopologyKind maps a NetworkConfig topology tag name to its
// TopologyKind. It returns an error naming the offending value if the tag
// is not recognized.
func ParseTopologyKind(name string) (TopologyKind, error) {
	k, ok := topologyKindByName[name]
	if !ok {
		return 0, fmt.Errorf("networkconfig: unknown topology name %q", name)
	}
	return k, nil
}

// Route is a finite ordered sequence of devices produced by routing.
// Consecutive elements are, absent an unrecoverable fault, connected by an
// installed link. Route carries no mutable state of its own; devices are
// shared references into the owning topology's device table.
type Route []Device

// Front returns the first device on the route, and false if the route is
// empty.
func (r Route) Front() (Device, bool) {
	if len(r) == 0 {
		return Device{}, false
	}
	return r[0], true
}

// Back returns the last device on the route, and false if the route is
// empty.
func (r Route) Back() (Device, bool) {
	if len(r) == 0 {
		return Device{}, false
	}
	return r[len(r)-1], true
}

// Complete reports whether the route actually reaches dest, i.e. whether
// routing was not cut short by an unrecoverable fault.
func (r Route) Complete(dest DeviceId) bool {
	last, ok := r.Back()
	return ok && last.ID == dest
}

// IDs projects the route to the plain sequence of device ids it visits.
func (r Route) IDs() []DeviceId {
	ids := make([]DeviceId, len(r))
	for i, d := range r {
		ids[i] = d.ID
	}
	return ids
}
