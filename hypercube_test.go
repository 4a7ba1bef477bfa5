package meshfabric

import "testing"

func TestHyperCubeRejectsNonPowerOfTwo(t *testing.T) {
	if _, err := NewHyperCube(6, 100, 1, true, true, nil); err == nil {
		t.Fatalf("expected error for non-power-of-two npus_count")
	}
}

func TestHyperCubeRouteHammingDistance(t *testing.T) {
	cube, err := NewHyperCube(16, 100, 1, true, true, nil)
	if err != nil {
		t.Fatalf("NewHyperCube: %v", err)
	}
	popcount := func(x int) int {
		count := 0
		for x != 0 {
			count += x & 1
			x >>= 1
		}
		return count
	}
	for src := 0; src < 16; src++ {
		for dst := 0; dst < 16; dst++ {
			want := popcount(src^dst) + 1
			route := cube.Route(DeviceId(src), DeviceId(dst))
			if len(route) != want {
				t.Errorf("route(%d,%d) length = %d, want %d", src, dst, len(route), want)
			}
			if !route.Complete(DeviceId(dst)) {
				t.Errorf("route(%d,%d) did not complete: %v", src, dst, route.IDs())
			}
		}
	}
}
