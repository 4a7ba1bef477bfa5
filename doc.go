// Package meshfabric builds device/link graphs for multi-dimensional
// interconnects and answers deterministic device-to-device routing queries
// over them.
//
// A caller describes an interconnect as an ordered list of per-dimension
// basic topologies (Ring, Mesh1D, FullyConnected, Switch, Bus, Mesh2D,
// Torus2D, KingMesh2D, HyperCube, BinaryTree, DoubleBinaryTree) together
// with per-dimension NPU counts, bandwidths and latencies. meshfabric
// composes those dimensions by Cartesian product (or, in cluster mode, by
// a flat non-recursive overlay over the trailing dimensions), assigns every
// NPU and switch node a stable DeviceId, and answers Route(src, dst)
// queries using dimension-order routing with local detour around links a
// caller has marked as faulty.
//
// Routing is a pure function of topology shape and the fault list: it does
// not observe link utilization, and it is not a shortest-path search. Once
// a MultiDimTopology is built it is safe to call Route concurrently from
// multiple goroutines without synchronization; building one is not
// thread-safe and each construction step is meant to run exactly once,
// in order, from a single goroutine.
package meshfabric
