package meshfabric

import "fmt"

// SwitchTranslationUnit assigns stable global device ids to the extra
// switch nodes introduced by any dimension whose basic topology is
// Switch. The NPU id range [0, totalNpus) is reserved; switch ids are
// allocated above it, one contiguous block per switch dimension.
//
// A switch dimension s introduces one switch node per combination of
// coordinates in the dimensions above it (s+1 .. dims_count-1) — the
// switch aggregates everything at and below its own dimension into a
// single hub per outer-context combination, matching the device count
// MultiDimTopology computes for it. Blocks are allocated outermost
// switch dimension first.
type SwitchTranslationUnit struct {
	npusCountPerDim []int
	isSwitchDim     []bool
	blockOffset     map[int]int // dim -> starting global id of its block
	blockWeights    map[int][]int
}

// NewSwitchTranslationUnit builds the block layout for the given
// per-dimension NPU counts and switch mask. Both slices must have the
// same length.
func NewSwitchTranslationUnit(npusCountPerDim []int, isSwitchDim []bool) *SwitchTranslationUnit {
	dimsCount := len(npusCountPerDim)
	totalNpus := 1
	for _, n := range npusCountPerDim {
		totalNpus *= n
	}

	su := &SwitchTranslationUnit{
		npusCountPerDim: npusCountPerDim,
		isSwitchDim:     isSwitchDim,
		blockOffset:     make(map[int]int),
		blockWeights:    make(map[int][]int),
	}

	next := totalNpus
	for s := dimsCount - 1; s >= 0; s-- {
		if !isSwitchDim[s] {
			continue
		}
		su.blockOffset[s] = next

		// weight[j] for j in s+1..dimsCount-1: product of npusCountPerDim[k]
		// for s < k < j, i.e. dimension s+1 is the LSB of this sub-encoding.
		weights := make([]int, dimsCount)
		blockSize := 1
		w := 1
		for j := s + 1; j < dimsCount; j++ {
			weights[j] = w
			w *= npusCountPerDim[j]
			blockSize *= npusCountPerDim[j]
		}
		su.blockWeights[s] = weights
		next += blockSize
	}
	return su
}

// TotalDevices returns the NPU count plus every switch block's size.
func (su *SwitchTranslationUnit) TotalDevices() int {
	npuTotal := 1
	for _, n := range su.npusCountPerDim {
		npuTotal *= n
	}
	switchTotal := 0
	for s := range su.blockOffset {
		switchTotal += su.blockSize(s)
	}
	return npuTotal + switchTotal
}

func (su *SwitchTranslationUnit) blockSize(s int) int {
	size := 1
	for j := s + 1; j < len(su.npusCountPerDim); j++ {
		size *= su.npusCountPerDim[j]
	}
	return size
}

// TranslateAddressToID maps a switch address (an address with exactly one
// coordinate equal to its dimension's npus_count, marking the switch
// node) to its global device id. It is an error to call this on an NPU
// address.
func (su *SwitchTranslationUnit) TranslateAddressToID(addr []int) (DeviceId, error) {
	switchDim := -1
	for d, v := range addr {
		if d < len(su.npusCountPerDim) && v == su.npusCountPerDim[d] {
			switchDim = d
			break
		}
	}
	if switchDim == -1 {
		return 0, fmt.Errorf("switchtranslationunit: address %v is not a switch address", addr)
	}
	offset, ok := su.blockOffset[switchDim]
	if !ok {
		return 0, fmt.Errorf("switchtranslationunit: dimension %d is not a switch dimension", switchDim)
	}
	weights := su.blockWeights[switchDim]
	local := 0
	for j := switchDim + 1; j < len(addr); j++ {
		local += addr[j] * weights[j]
	}
	return DeviceId(offset + local), nil
}
