package meshfabric

// ConnectionPolicy is a pure (src, dst) description of a directed link a
// basic topology wants to exist, expressed in that topology's own local
// device ids (0..devices_count-1), prior to bandwidth/latency/fault
// resolution. Bidirectional topologies emit both (a,b) and (b,a).
type ConnectionPolicy struct {
	Src, Dst DeviceId
}
