package meshfabric

import "fmt"

// bidirectionalByDefault is the bidirectionality every basic topology
// variant is built with when instantiated as a MultiDimTopology
// dimension. FullyConnected, Switch and Bus ignore it — they force
// their own bidirectional wiring internally.
const bidirectionalByDefault = true

// NewBasicTopology instantiates the concrete BasicTopology for one
// dimension of a validated NetworkConfig. standalone controls whether
// the returned topology also materializes its own devices and links
// (true) or is meant to be embedded as a MultiDimTopology dimension
// (false, links carry local coordinate values only).
func NewBasicTopology(kind TopologyKind, npusCount int, bandwidth Bandwidth, latency Latency, standalone bool, faults *FaultTable) (BasicTopology, error) {
	switch kind {
	case Ring:
		return NewRing(npusCount, bandwidth, latency, bidirectionalByDefault, standalone, faults), nil
	case Mesh1D:
		return NewMesh1D(npusCount, bandwidth, latency, bidirectionalByDefault, standalone, faults), nil
	case FullyConnected:
		return NewFullyConnected(npusCount, bandwidth, latency, standalone, faults), nil
	case SwitchTopology:
		return NewSwitch(npusCount, bandwidth, latency, standalone, faults), nil
	case Bus:
		return NewBus(npusCount, bandwidth, latency, standalone, faults), nil
	case BinaryTree:
		return NewBinaryTree(npusCount, bandwidth, latency, bidirectionalByDefault, standalone, faults), nil
	case DoubleBinaryTree:
		return NewDoubleBinaryTree(npusCount, bandwidth, latency, bidirectionalByDefault, standalone, faults), nil
	case HyperCube:
		return NewHyperCube(npusCount, bandwidth, latency, bidirectionalByDefault, standalone, faults)
	case Mesh2D:
		return NewMesh2D(npusCount, bandwidth, latency, bidirectionalByDefault, standalone, faults)
	case Torus2D:
		return NewTorus2D(npusCount, bandwidth, latency, bidirectionalByDefault, standalone, faults)
	case KingMesh2D:
		side, err := integerSqrt(npusCount, "KingMesh2D")
		if err != nil {
			return nil, err
		}
		return NewKingMesh2D(npusCount, side, side, bandwidth, latency, bidirectionalByDefault, standalone, faults)
	default:
		return nil, fmt.Errorf("helper: unrecognized topology kind %v", kind)
	}
}

// BuildMultiDimTopology drives end-to-end assembly of a MultiDimTopology
// from a validated NetworkConfig: instantiates each dimension's
// BasicTopology (embedded, not standalone), appends them in order,
// materializes devices, and wires the inter-device link set under
// whichever composition mode the config's mask selects.
func BuildMultiDimTopology(cfg *NetworkConfig) (*MultiDimTopology, error) {
	faults := NewFaultTable(cfg.FaultyLinks)
	mdt := NewMultiDimTopology(faults, cfg.NonRecursiveTopo)

	for d := 0; d < cfg.DimsCount; d++ {
		topology, err := NewBasicTopology(cfg.Topology[d], cfg.NpusCountPerDim[d], cfg.BandwidthPerDim[d], cfg.LatencyPerDim[d], false, faults)
		if err != nil {
			return nil, fmt.Errorf("helper: dimension %d: %w", d, err)
		}
		mdt.AppendDimension(topology)
	}

	mdt.InitializeAllDevices()
	mdt.BuildSwitchLengthMapping()

	var err error
	if mdt.IsCluster() {
		err = mdt.MakeNonRecursiveConnections()
	} else {
		err = mdt.MakeConnections()
	}
	if err != nil {
		return nil, err
	}
	return mdt, nil
}
