package domain

import "testing"

func TestOverlapIsZero(t *testing.T) {
	tests := []struct {
		name string
		ov   Overlap
		want bool
	}{
		{"zero value", Overlap{}, true},
		{"id only", Overlap{ObjectID: "ss-1"}, false},
		{"geometry only", Overlap{StartS: 1, EndS: 2}, false},
		{"full", Overlap{ObjectID: "ss-1", StartS: 1, EndS: 2}, false},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			if got := tt.ov.IsZero(); got != tt.want {
				t.Errorf("IsZero() = %v, want %v", got, tt.want)
			}
		})
	}
}

func TestFindOverlapByID(t *testing.T) {
	overlaps := []Overlap{
		{ObjectID: "a", StartS: 1, EndS: 2},
		{ObjectID: "b", StartS: 3, EndS: 4},
	}

	ov, ok := FindOverlapByID(overlaps, "b")
	if !ok {
		t.Fatal("FindOverlapByID() did not find existing ID")
	}
	if ov.StartS != 3 {
		t.Errorf("StartS = %v, want 3", ov.StartS)
	}

	if _, ok := FindOverlapByID(overlaps, "c"); ok {
		t.Error("FindOverlapByID() found a missing ID")
	}
	if _, ok := FindOverlapByID(nil, "a"); ok {
		t.Error("FindOverlapByID() found an ID in a nil slice")
	}
}

func TestFirstEncounteredOverlap(t *testing.T) {
	ref := ReferenceLineInfo{
		FirstEncountered: []EncounteredOverlap{
			{Kind: OverlapObstacle, Overlap: Overlap{ObjectID: "obs-1", StartS: 5}},
			{Kind: OverlapStopSign, Overlap: Overlap{ObjectID: "ss-1", StartS: 10}},
			{Kind: OverlapStopSign, Overlap: Overlap{ObjectID: "ss-2", StartS: 20}},
		},
	}

	ov, ok := ref.FirstEncounteredOverlap(OverlapStopSign)
	if !ok || ov.ObjectID != "ss-1" {
		t.Errorf("FirstEncounteredOverlap(stop_sign) = %+v, %v; want ss-1", ov, ok)
	}
	if _, ok := ref.FirstEncounteredOverlap(OverlapSignal); ok {
		t.Error("FirstEncounteredOverlap(signal) found an absent kind")
	}
}

func TestScenarioContextTracking(t *testing.T) {
	ctx := NewScenarioContext()

	if ctx.IsStopDone("ss-1") {
		t.Error("fresh context reports an overlap resolved")
	}
	ctx.MarkStopDone("ss-1")
	if !ctx.IsStopDone("ss-1") {
		t.Error("MarkStopDone() did not record the overlap")
	}

	ctx.CurrentStopSignOverlap = Overlap{ObjectID: "ss-1", StartS: 1, EndS: 2}
	ctx.CurrentTrafficLightOverlaps = []Overlap{{ObjectID: "tl-1"}}
	ctx.TrafficLights["tl-1"] = TrafficSignal{ID: "tl-1", Color: SignalGreen}

	ctx.ClearTracking()

	if !ctx.CurrentStopSignOverlap.IsZero() {
		t.Error("ClearTracking() kept the stop-sign overlap")
	}
	if ctx.CurrentTrafficLightOverlaps != nil {
		t.Error("ClearTracking() kept the traffic-light overlaps")
	}
	if ctx.IsStopDone("ss-1") {
		t.Error("ClearTracking() kept the resolved set")
	}
	// the signal map is rebuilt from perception every cycle, so clearing
	// tracking leaves it alone
	if _, ok := ctx.Signal("tl-1"); !ok {
		t.Error("ClearTracking() dropped the signal map")
	}
}
