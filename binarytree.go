package meshfabric

// BinaryTreeTopology arranges all npus_count devices in heap order: node
// i's parent is (i-1)/2, its children are 2i+1 and 2i+2. There are no
// separate switch or internal nodes — devices_count == npus_count.
type BinaryTreeTopology struct {
	base
}

// NewBinaryTree builds a BinaryTree dimension.
func NewBinaryTree(npusCount int, bandwidth Bandwidth, latency Latency, bidirectional, standalone bool, faults *FaultTable) *BinaryTreeTopology {
	t := &BinaryTreeTopology{
		base: newBase(BinaryTree, npusCount, npusCount, bandwidth, latency, bidirectional, standalone, faults),
	}
	for i := 1; i < npusCount; i++ {
		parent := DeviceId((i - 1) / 2)
		t.installStandalone(parent, DeviceId(i), bandwidth, bidirectional)
	}
	return t
}

func treeParent(id DeviceId) DeviceId {
	return DeviceId((int(id) - 1) / 2)
}

// pathToRoot returns id, its parent, its parent's parent, ... down to 0.
func pathToRoot(id DeviceId) []DeviceId {
	path := []DeviceId{id}
	for path[len(path)-1] != 0 {
		path = append(path, treeParent(path[len(path)-1]))
	}
	return path
}

// lcaPath walks src and dst up to their lowest common ancestor and
// concatenates src..lca with the reverse of dst..lca, deduplicating the
// shared lca node.
func lcaPath(src, dst DeviceId) []DeviceId {
	if src == dst {
		return []DeviceId{src}
	}
	srcPath := pathToRoot(src)
	dstPath := pathToRoot(dst)

	dstIndex := make(map[DeviceId]int, len(dstPath))
	for i, id := range dstPath {
		dstIndex[id] = i
	}

	lcaSrcIdx := -1
	lcaDstIdx := -1
	for i, id := range srcPath {
		if j, ok := dstIndex[id]; ok {
			lcaSrcIdx = i
			lcaDstIdx = j
			break
		}
	}

	path := append([]DeviceId{}, srcPath[:lcaSrcIdx+1]...)
	for i := lcaDstIdx - 1; i >= 0; i-- {
		path = append(path, dstPath[i])
	}
	return path
}

// Route walks both endpoints up to their lowest common ancestor and
// concatenates the two half-paths, stopping short with a partial route if
// a fault is found along the way.
func (t *BinaryTreeTopology) Route(src, dst DeviceId) Route {
	ids := lcaPath(src, dst)
	route := Route{t.device(ids[0])}
	for i := 1; i < len(ids); i++ {
		if t.faultDerate(ids[i-1], ids[i]) == 0 {
			return route
		}
		route = append(route, t.device(ids[i]))
	}
	return route
}

// ConnectionPolicies emits (parent, child) for every non-root device, plus
// the reverse edge when bidirectional.
func (t *BinaryTreeTopology) ConnectionPolicies() []ConnectionPolicy {
	n := t.npusCount
	policies := make([]ConnectionPolicy, 0, 2*n)
	for i := 1; i < n; i++ {
		parent := treeParent(DeviceId(i))
		policies = append(policies, ConnectionPolicy{Src: parent, Dst: DeviceId(i)})
		if t.bidirectional {
			policies = append(policies, ConnectionPolicy{Src: DeviceId(i), Dst: parent})
		}
	}
	return policies
}

// DoubleBinaryTreeTopology uses the same heap-ordered tree shape as
// BinaryTreeTopology, but installs two links in parallel over every
// parent/child pair, each carrying the configured bandwidth, folded into
// one doubled-bandwidth edge — the same modelling choice RingTopology
// makes for its two parallel directions, applied to a tree instead of a
// cycle. The doubling only affects installed bandwidth, not the route
// shape: a single fault entry against a parent/child pair derates both
// parallel links at once, since they share one physical identity in the
// device graph.
type DoubleBinaryTreeTopology struct {
	base
}

// doubleBinaryTreeBandwidthScale folds the two parallel per-hop links into
// one effective per-link capacity when the tree is constructed standalone.
const doubleBinaryTreeBandwidthScale = 2.0

// NewDoubleBinaryTree builds a DoubleBinaryTree dimension.
func NewDoubleBinaryTree(npusCount int, bandwidth Bandwidth, latency Latency, bidirectional, standalone bool, faults *FaultTable) *DoubleBinaryTreeTopology {
	t := &DoubleBinaryTreeTopology{
		base: newBase(DoubleBinaryTree, npusCount, npusCount, bandwidth, latency, bidirectional, standalone, faults),
	}
	for i := 1; i < npusCount; i++ {
		parent := DeviceId((i - 1) / 2)
		t.installStandalone(parent, DeviceId(i), Bandwidth(float64(bandwidth)*doubleBinaryTreeBandwidthScale), bidirectional)
	}
	return t
}

// Route computes the unique LCA path exactly as BinaryTree does.
func (t *DoubleBinaryTreeTopology) Route(src, dst DeviceId) Route {
	ids := lcaPath(src, dst)
	route := Route{t.device(ids[0])}
	for i := 1; i < len(ids); i++ {
		if t.faultDerate(ids[i-1], ids[i]) == 0 {
			return route
		}
		route = append(route, t.device(ids[i]))
	}
	return route
}

// ConnectionPolicies emits (parent, child) for every non-root device, plus
// the reverse edge when bidirectional.
func (t *DoubleBinaryTreeTopology) ConnectionPolicies() []ConnectionPolicy {
	n := t.npusCount
	policies := make([]ConnectionPolicy, 0, 2*n)
	for i := 1; i < n; i++ {
		parent := treeParent(DeviceId(i))
		policies = append(policies, ConnectionPolicy{Src: parent, Dst: DeviceId(i)})
		if t.bidirectional {
			policies = append(policies, ConnectionPolicy{Src: DeviceId(i), Dst: parent})
		}
	}
	return policies
}
