package meshfabric

import (
	"fmt"

	"golang.org/x/exp/slices"
)

// NetworkConfigDesc is the wire shape of a network configuration file:
// direct field-for-field YAML/JSON mapping, unvalidated. Use
// NetworkConfigDesc.Validate to turn it into a NetworkConfig.
type NetworkConfigDesc struct {
	Topology              []string    `yaml:"topology" json:"topology"`
	NpusCount             []int       `yaml:"npus_count" json:"npus_count"`
	Bandwidth             []float64   `yaml:"bandwidth" json:"bandwidth"`
	Latency               []float64   `yaml:"latency" json:"latency"`
	NonRecursiveFrom      *int        `yaml:"non_recursive_from,omitempty" json:"non_recursive_from,omitempty"`
	NonRecursiveTopology  []int       `yaml:"non_recursive_topology,omitempty" json:"non_recursive_topology,omitempty"`
	FaultyLinks           [][]float64 `yaml:"faulty_links,omitempty" json:"faulty_links,omitempty"`
}

// NetworkConfig is a validated, normalised network configuration: every
// vector has length dims_count, the cluster-mode declaration has been
// resolved to a single mask, and faulty link entries have been parsed
// (with malformed entries dropped, warnings recorded on diag).
type NetworkConfig struct {
	DimsCount        int
	Topology         []TopologyKind
	NpusCountPerDim  []int
	BandwidthPerDim  []Bandwidth
	LatencyPerDim    []Latency
	NonRecursiveTopo []int
	FaultyLinks      []FaultEntry
}

// Validate normalises and checks desc, returning a NetworkConfig or the
// first validation error encountered. Malformed faulty_links entries are
// not fatal — they are skipped with a warning recorded on diag, which
// may be nil.
func (desc *NetworkConfigDesc) Validate(diag *Diagnostics) (*NetworkConfig, error) {
	dimsCount := len(desc.Topology)

	topology := make([]TopologyKind, dimsCount)
	for i, name := range desc.Topology {
		kind, err := ParseTopologyKind(name)
		if err != nil {
			return nil, fmt.Errorf("networkconfig: dimension %d: %w", i, err)
		}
		topology[i] = kind
	}

	if len(desc.NpusCount) != dimsCount {
		return nil, fmt.Errorf("networkconfig: length of npus_count (%d) doesn't match dims_count (%d)", len(desc.NpusCount), dimsCount)
	}
	if len(desc.Bandwidth) != dimsCount {
		return nil, fmt.Errorf("networkconfig: length of bandwidth (%d) doesn't match dims_count (%d)", len(desc.Bandwidth), dimsCount)
	}
	if len(desc.Latency) != dimsCount {
		return nil, fmt.Errorf("networkconfig: length of latency (%d) doesn't match dims_count (%d)", len(desc.Latency), dimsCount)
	}

	for i, n := range desc.NpusCount {
		if n <= 1 {
			return nil, fmt.Errorf("networkconfig: npus_count[%d] (%d) must be greater than 1", i, n)
		}
	}
	for i, bw := range desc.Bandwidth {
		if bw <= 0 {
			return nil, fmt.Errorf("networkconfig: bandwidth[%d] (%v) must be greater than 0", i, bw)
		}
	}
	for i, lat := range desc.Latency {
		if lat < 0 {
			return nil, fmt.Errorf("networkconfig: latency[%d] (%v) must be non-negative", i, lat)
		}
	}

	nonRecursiveTopo, err := desc.resolveNonRecursiveTopo(dimsCount)
	if err != nil {
		return nil, err
	}
	if err := validateNonRecursiveMask(nonRecursiveTopo); err != nil {
		return nil, err
	}

	bandwidthPerDim := make([]Bandwidth, dimsCount)
	for i, bw := range desc.Bandwidth {
		bandwidthPerDim[i] = Bandwidth(bw)
	}
	latencyPerDim := make([]Latency, dimsCount)
	for i, lat := range desc.Latency {
		latencyPerDim[i] = Latency(lat)
	}

	faultyLinks := ParseFaultEntries(desc.FaultyLinks, diag)
	slices.SortFunc(faultyLinks, compareFaultEntries)

	return &NetworkConfig{
		DimsCount:        dimsCount,
		Topology:         topology,
		NpusCountPerDim:  desc.NpusCount,
		BandwidthPerDim:  bandwidthPerDim,
		LatencyPerDim:    latencyPerDim,
		NonRecursiveTopo: nonRecursiveTopo,
		FaultyLinks:      faultyLinks,
	}, nil
}

// compareFaultEntries orders entries by (U, V) so a validated config's
// faulty_links list has a deterministic order regardless of how the
// caller wrote them in the source file — configs that describe the same
// fault set compare and diff identically.
func compareFaultEntries(a, b FaultEntry) int {
	if a.U != b.U {
		return int(a.U - b.U)
	}
	return int(a.V - b.V)
}

// resolveNonRecursiveTopo normalises the two accepted cluster-mode
// declarations (non_recursive_from crossover index, or an explicit
// non_recursive_topology array) into a single mask; if neither is
// present the default mask is all zeros (fully recursive).
func (desc *NetworkConfigDesc) resolveNonRecursiveTopo(dimsCount int) ([]int, error) {
	if desc.NonRecursiveFrom != nil {
		crossover := *desc.NonRecursiveFrom
		if crossover < 0 || crossover > dimsCount {
			return nil, fmt.Errorf("networkconfig: non_recursive_from (%d) must be between 0 and dims_count (%d)", crossover, dimsCount)
		}
		mask := make([]int, dimsCount)
		for d := crossover; d < dimsCount; d++ {
			mask[d] = 1
		}
		return mask, nil
	}
	if desc.NonRecursiveTopology != nil {
		if len(desc.NonRecursiveTopology) != dimsCount {
			return nil, fmt.Errorf("networkconfig: length of non_recursive_topology (%d) doesn't match dims_count (%d)", len(desc.NonRecursiveTopology), dimsCount)
		}
		return desc.NonRecursiveTopology, nil
	}
	return make([]int, dimsCount), nil
}

// validateNonRecursiveMask enforces the zeros-prefix / ones-suffix shape:
// values must be 0 or 1, and once a 1 has been seen a later 0 is
// rejected.
func validateNonRecursiveMask(mask []int) error {
	seenOne := false
	for i, v := range mask {
		if v != 0 && v != 1 {
			return fmt.Errorf("networkconfig: non_recursive_topology values must be 0 or 1, got %d at dimension %d", v, i)
		}
		if seenOne && v == 0 {
			return fmt.Errorf("networkconfig: non_recursive_topology must be a zeros-prefix / ones-suffix; found 0 at dimension %d after a 1", i)
		}
		if v == 1 {
			seenOne = true
		}
	}
	return nil
}
