package meshfabric

import "testing"

func TestDiagnosticsRecordsWarningsInOrder(t *testing.T) {
	diag := NewDiagnostics()
	diag.Warnf("first %d", 1)
	diag.Warnf("second %d", 2)
	got := diag.Warnings()
	want := []string{"first 1", "second 2"}
	if len(got) != len(want) {
		t.Fatalf("Warnings() = %v, want %v", got, want)
	}
	for i := range want {
		if got[i] != want[i] {
			t.Errorf("Warnings()[%d] = %q, want %q", i, got[i], want[i])
		}
	}
}

func TestDiagnosticsNilIsSafeAndDiscards(t *testing.T) {
	var diag *Diagnostics
	diag.Warnf("this should not panic")
	if got := diag.Warnings(); got != nil {
		t.Fatalf("nil Diagnostics.Warnings() = %v, want nil", got)
	}
}

func TestNewDiagnosticsInUse(t *testing.T) {
	diag := NewDiagnostics()
	if !diag.InUse {
		t.Fatalf("NewDiagnostics().InUse = false, want true")
	}
}
