package convert

import (
	"errors"
	"math"
	"reflect"
	"strings"
	"testing"

	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/testutil"
	"go.uber.org/zap"
	"go.uber.org/zap/zapcore"
	"go.uber.org/zap/zaptest/observer"

	"github.com/OpenTraceLab/easyeda2kicad/pkg/easyeda"
	"github.com/OpenTraceLab/easyeda2kicad/pkg/kicad/footprint"
)

const tolerance = 1e-6

func near(a, b float64) bool {
	return math.Abs(a-b) < tolerance
}

func nearPos(a, b footprint.Position) bool {
	return near(a.X, b.X) && near(a.Y, b.Y)
}

func newTestConverter(t *testing.T, cfg *Config, opts ...Option) (*Converter, *observer.ObservedLogs) {
	t.Helper()
	core, logs := observer.New(zapcore.DebugLevel)
	opts = append([]Option{WithLogger(zap.New(core))}, opts...)
	c, err := New(cfg, opts...)
	if err != nil {
		t.Fatalf("New() error: %v", err)
	}
	return c, logs
}

func TestMilToMM(t *testing.T) {
	if got := MilToMM(3.937); got != 1.0 {
		t.Errorf("MilToMM(3.937) = %v, want 1", got)
	}
	if got := MilToMM(0); got != 0 {
		t.Errorf("MilToMM(0) = %v, want 0", got)
	}

	if got, err := ParseMil(" 393.7 "); err != nil || !near(got, 100) {
		t.Errorf("ParseMil(393.7) = %v, %v, want 100", got, err)
	}

	_, err := ParseMil("abc")
	var convErr *ConversionError
	if !errors.As(err, &convErr) {
		t.Fatalf("ParseMil(abc) error = %v, want *ConversionError", err)
	}
	if convErr.Value != "abc" {
		t.Errorf("ConversionError.Value = %q, want abc", convErr.Value)
	}
}

func TestResolveLayer(t *testing.T) {
	want := map[string]string{
		"1": "F.Cu", "2": "B.Cu", "3": "F.SilkS", "4": "B.SilkS",
		"5": "F.Paste", "6": "B.Paste", "7": "F.Mask", "8": "B.Mask",
		"12": "F.Fab", "100": "F.SilkS", "101": "F.SilkS",
	}
	if len(LayerIDs()) != len(want) {
		t.Errorf("LayerIDs() has %d entries, want %d", len(LayerIDs()), len(want))
	}
	for id, name := range want {
		got, ok := ResolveLayer(id)
		if !ok || got != name {
			t.Errorf("ResolveLayer(%q) = %q, %v, want %q", id, got, ok, name)
		}
	}

	if got, ok := ResolveLayer("999"); ok || got != DefaultLayer {
		t.Errorf("ResolveLayer(999) = %q, %v, want fallback", got, ok)
	}
}

func TestLayerFallbackDiagnostic(t *testing.T) {
	tests := []struct {
		name  string
		prim  easyeda.Primitive
		level zapcore.Level
	}{
		{
			name:  "track logs error",
			prim:  easyeda.Track{Width: "10", Layer: "999", Points: "0 0 10 0"},
			level: zapcore.ErrorLevel,
		},
		{
			name:  "arc logs warning",
			prim:  easyeda.Arc{Width: "10", Layer: "999", Candidates: []string{"M 0 39.37 A -78.74 0 0 0 1 39.37 0"}},
			level: zapcore.WarnLevel,
		},
		{
			name:  "circle logs error",
			prim:  easyeda.Circle{X: "0", Y: "0", Radius: "10", Width: "1", Layer: "999"},
			level: zapcore.ErrorLevel,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			c, logs := newTestConverter(t, nil)
			res := c.Dispatch(NewContext("t", easyeda.SMT), tt.prim)
			if res.Outcome != Emitted {
				t.Fatalf("Outcome = %v (%v), want emitted", res.Outcome, res.Err)
			}

			entries := logs.FilterMessage("layer correspondence not found, using fallback").All()
			if len(entries) != 1 {
				t.Fatalf("got %d layer diagnostics, want 1", len(entries))
			}
			if entries[0].Level != tt.level {
				t.Errorf("diagnostic level = %v, want %v", entries[0].Level, tt.level)
			}
			if entries[0].ContextMap()["layer"] != "999" {
				t.Errorf("diagnostic fields = %v", entries[0].ContextMap())
			}

			for _, item := range res.Items {
				if layerOf(item) != DefaultLayer {
					t.Errorf("item layer = %q, want %q", layerOf(item), DefaultLayer)
				}
			}
		})
	}
}

func layerOf(item footprint.Item) string {
	switch it := item.(type) {
	case footprint.Line:
		return it.Layer
	case footprint.Arc:
		return it.Layer
	case footprint.Circle:
		return it.Layer
	}
	return ""
}

func TestTrack(t *testing.T) {
	tests := []struct {
		name      string
		points    string
		wantLines int
		wantMax   footprint.Position
	}{
		{
			name:      "odd value count drops trailing value",
			points:    "0 0 100 0 100",
			wantLines: 1,
			wantMax:   footprint.Position{X: MilToMM(100), Y: 0},
		},
		{
			name:      "polyline of three points",
			points:    "0 0 100 0 100 100",
			wantLines: 2,
			wantMax:   footprint.Position{X: MilToMM(100), Y: MilToMM(100)},
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			c, _ := newTestConverter(t, nil)
			res := c.Dispatch(NewContext("t", easyeda.SMT), easyeda.Track{Width: "10", Layer: "1", Points: tt.points})

			if res.Outcome != Emitted || len(res.Items) != tt.wantLines {
				t.Fatalf("got %v with %d items, want %d lines", res.Outcome, len(res.Items), tt.wantLines)
			}
			first := res.Items[0].(footprint.Line)
			if first.Start != (footprint.Position{}) || first.End != (footprint.Position{X: MilToMM(100)}) {
				t.Errorf("first segment = %+v", first)
			}
			if first.Width != MilToMM(10) || first.Layer != "F.Cu" {
				t.Errorf("width/layer = %v/%q", first.Width, first.Layer)
			}
			if res.Bounds.Min != (footprint.Position{}) || res.Bounds.Max != tt.wantMax {
				t.Errorf("bounds = %+v, want (0,0)-%+v", res.Bounds, tt.wantMax)
			}
		})
	}
}

func TestTrackFailures(t *testing.T) {
	c, _ := newTestConverter(t, nil)
	ctx := NewContext("t", easyeda.SMT)

	res := c.Dispatch(ctx, easyeda.Track{Width: "10", Layer: "1", Points: "0 0 x 1"})
	var convErr *ConversionError
	if res.Outcome != Failed || !errors.As(res.Err, &convErr) {
		t.Errorf("bad coordinate: outcome %v err %v", res.Outcome, res.Err)
	}

	res = c.Dispatch(ctx, easyeda.Track{Width: "10", Layer: "1", Points: "0 0 1"})
	if res.Outcome != Skipped || !res.Bounds.IsEmpty() {
		t.Errorf("single point: outcome %v bounds %+v", res.Outcome, res.Bounds)
	}
}

func TestReconstructCenter(t *testing.T) {
	tests := []struct {
		name            string
		start, end, mid footprint.Position
		want            footprint.Position
		wantErr         bool
	}{
		{
			name:  "unit circle quadrant",
			start: footprint.Position{X: 0, Y: 10},
			end:   footprint.Position{X: 10, Y: 0},
			mid:   footprint.Position{X: -10, Y: 0},
			want:  footprint.Position{X: 0, Y: 0},
		},
		{
			name:  "offset centre",
			start: footprint.Position{X: 8, Y: 4},
			end:   footprint.Position{X: 3, Y: 9},
			mid:   footprint.Position{X: 0, Y: 0},
			want:  footprint.Position{X: 3, Y: 4},
		},
		{
			name:    "collinear",
			start:   footprint.Position{X: 0, Y: 0},
			end:     footprint.Position{X: 10, Y: 0},
			mid:     footprint.Position{X: 20, Y: 0},
			wantErr: true,
		},
		{
			name:    "start and mid share y",
			start:   footprint.Position{X: 0, Y: 0},
			end:     footprint.Position{X: 10, Y: 10},
			mid:     footprint.Position{X: -10, Y: 0},
			wantErr: true,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got, err := ReconstructCenter(tt.start, tt.end, tt.mid)
			if tt.wantErr {
				if !errors.Is(err, ErrDegenerateArc) {
					t.Errorf("ReconstructCenter() error = %v, want ErrDegenerateArc", err)
				}
				return
			}
			if err != nil {
				t.Fatalf("ReconstructCenter() unexpected error: %v", err)
			}
			if !nearPos(got, tt.want) {
				t.Errorf("ReconstructCenter() = %+v, want %+v", got, tt.want)
			}
		})
	}
}

func TestArc(t *testing.T) {
	tests := []struct {
		name        string
		arc         easyeda.Arc
		wantCenter  footprint.Position
		wantReverse bool
		wantMid     footprint.Position
		wantErr     error
	}{
		{
			name:       "path in first candidate",
			arc:        easyeda.Arc{Width: "3.937", Layer: "3", Candidates: []string{"M 0 39.37 A -78.74 0 0 0 1 39.37 0"}},
			wantCenter: footprint.Position{X: 0, Y: 0},
			wantMid:    footprint.Position{X: -5 * math.Sqrt2, Y: -5 * math.Sqrt2},
		},
		{
			name:       "path in second candidate, comma separated",
			arc:        easyeda.Arc{Width: "3.937", Layer: "3", Candidates: []string{"GND", "M0,39.37 A-78.74,0 0 0 1 39.37,0"}},
			wantCenter: footprint.Position{X: 0, Y: 0},
			wantMid:    footprint.Position{X: -5 * math.Sqrt2, Y: -5 * math.Sqrt2},
		},
		{
			name:        "midpoint on the short side",
			arc:         easyeda.Arc{Width: "3.937", Layer: "3", Candidates: []string{"M 0 39.37 A -7.874 23.622 0 0 1 39.37 0"}},
			wantCenter:  footprint.Position{X: 0, Y: 0},
			wantReverse: true,
			wantMid:     footprint.Position{X: 5 * math.Sqrt2, Y: 5 * math.Sqrt2},
		},
		{
			name:    "no path",
			arc:     easyeda.Arc{Width: "1", Layer: "3", Candidates: []string{"GND", "gge1"}},
			wantErr: easyeda.ErrNoArcPath,
		},
		{
			name:    "division by zero",
			arc:     easyeda.Arc{Width: "1", Layer: "3", Candidates: []string{"M 0 0 A -78.74 -39.37 0 0 1 39.37 39.37"}},
			wantErr: ErrDegenerateArc,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			c, _ := newTestConverter(t, nil)
			res := c.Dispatch(NewContext("t", easyeda.SMT), tt.arc)

			if !res.Bounds.IsEmpty() {
				t.Errorf("arcs must not update bounds, got %+v", res.Bounds)
			}
			if tt.wantErr != nil {
				if res.Outcome != Failed || !errors.Is(res.Err, tt.wantErr) {
					t.Errorf("got %v / %v, want failure %v", res.Outcome, res.Err, tt.wantErr)
				}
				if len(res.Items) != 0 {
					t.Error("failed arc must not emit items")
				}
				return
			}

			if res.Outcome != Emitted || len(res.Items) != 1 {
				t.Fatalf("got %v with %d items (%v)", res.Outcome, len(res.Items), res.Err)
			}
			arc := res.Items[0].(footprint.Arc)
			if !nearPos(arc.Center, tt.wantCenter) {
				t.Errorf("centre = %+v, want %+v", arc.Center, tt.wantCenter)
			}
			if !nearPos(arc.Start, footprint.Position{Y: 10}) || !nearPos(arc.End, footprint.Position{X: 10}) {
				t.Errorf("start/end = %+v / %+v", arc.Start, arc.End)
			}
			if !near(arc.Width, 1) || arc.Layer != "F.SilkS" {
				t.Errorf("width/layer = %v/%q", arc.Width, arc.Layer)
			}
			if arc.Reverse != tt.wantReverse {
				t.Errorf("Reverse = %v, want %v", arc.Reverse, tt.wantReverse)
			}
			if !nearPos(arc.Mid(), tt.wantMid) {
				t.Errorf("Mid() = %+v, want %+v", arc.Mid(), tt.wantMid)
			}
		})
	}
}

func TestCircle(t *testing.T) {
	c, _ := newTestConverter(t, nil)
	ctx := NewContext("t", easyeda.SMT)

	res := c.Dispatch(ctx, easyeda.Circle{X: "39.37", Y: "0", Radius: "19.685", Width: "3.937", Layer: "3"})
	if res.Outcome != Emitted || len(res.Items) != 1 {
		t.Fatalf("got %v with %d items", res.Outcome, len(res.Items))
	}
	circle := res.Items[0].(footprint.Circle)
	if !nearPos(circle.Center, footprint.Position{X: 10}) || !near(circle.Radius, 5) || !near(circle.Width, 1) {
		t.Errorf("circle = %+v", circle)
	}
	if !res.Bounds.IsEmpty() {
		t.Errorf("circles must not update bounds, got %+v", res.Bounds)
	}

	res = c.Dispatch(ctx, easyeda.Circle{X: "1", Y: "2", Radius: "3", Width: "4", Layer: "100"})
	if res.Outcome != Skipped || len(res.Items) != 0 || !res.Bounds.IsEmpty() {
		t.Errorf("layer 100 circle = %+v", res)
	}

	res = c.Dispatch(ctx, easyeda.Circle{X: "x", Y: "2", Radius: "3", Width: "4", Layer: "3"})
	if res.Outcome != Failed {
		t.Errorf("non-numeric circle outcome = %v", res.Outcome)
	}
}

func TestSMTPad(t *testing.T) {
	tests := []struct {
		name         string
		pad          easyeda.Pad
		wantShape    footprint.PadShape
		wantRotation float64
		wantLog      bool
	}{
		{
			name:         "rect with rotation",
			pad:          easyeda.Pad{Shape: "RECT", X: "0", Y: "0", Width: "3.937", Height: "7.874", Layer: "1", Number: "1", Rotation: "90"},
			wantShape:    footprint.ShapeRect,
			wantRotation: 90,
		},
		{
			name:         "oval",
			pad:          easyeda.Pad{Shape: "OVAL", X: "0", Y: "0", Width: "3.937", Height: "7.874", Layer: "1", Number: "1", Rotation: "45"},
			wantShape:    footprint.ShapeOval,
			wantRotation: 45,
		},
		{
			name:      "ellipse ignores rotation",
			pad:       easyeda.Pad{Shape: "ELLIPSE", X: "0", Y: "0", Width: "3.937", Height: "7.874", Layer: "1", Number: "1"},
			wantShape: footprint.ShapeCircle,
		},
		{
			name:         "unknown shape falls back to oval",
			pad:          easyeda.Pad{Shape: "STAR", X: "0", Y: "0", Width: "3.937", Height: "7.874", Layer: "1", Number: "1", Rotation: "0"},
			wantShape:    footprint.ShapeOval,
			wantLog:      true,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			c, logs := newTestConverter(t, nil)
			res := c.Dispatch(NewContext("t", easyeda.SMT), tt.pad)
			if res.Outcome != Emitted {
				t.Fatalf("Outcome = %v (%v)", res.Outcome, res.Err)
			}

			pad := res.Items[0].(footprint.Pad)
			if pad.Shape != tt.wantShape || pad.Rotation != tt.wantRotation {
				t.Errorf("shape/rotation = %s/%v, want %s/%v", pad.Shape, pad.Rotation, tt.wantShape, tt.wantRotation)
			}
			if pad.Type != footprint.PadSMD || pad.Drill != SMDDrillPlaceholder {
				t.Errorf("type/drill = %s/%v", pad.Type, pad.Drill)
			}
			if !reflect.DeepEqual(pad.Layers, footprint.LayersSMD) {
				t.Errorf("layers = %v", pad.Layers)
			}
			if !near(pad.Size.Width, 1) || !near(pad.Size.Height, 2) {
				t.Errorf("size = %+v", pad.Size)
			}

			gotLog := logs.FilterMessage("no pad shape correspondence, using oval").Len() > 0
			if gotLog != tt.wantLog {
				t.Errorf("shape diagnostic logged = %v, want %v", gotLog, tt.wantLog)
			}
		})
	}
}

func TestSMTPolygonPadRecentred(t *testing.T) {
	// (5, 5) mm is 19.685 mil
	pad := easyeda.Pad{
		Shape: "POLYGON", X: "19.685", Y: "19.685", Width: "3.937", Height: "3.937",
		Layer: "1", Number: "1", HoleRadius: "0",
		Points: "19.685 19.685 23.622 19.685 23.622 23.622",
	}

	c, _ := newTestConverter(t, nil)
	res := c.Dispatch(NewContext("t", easyeda.SMT), pad)
	if res.Outcome != Emitted {
		t.Fatalf("Outcome = %v (%v)", res.Outcome, res.Err)
	}

	got := res.Items[0].(footprint.Pad)
	if got.Shape != footprint.ShapeCustom || len(got.Primitives) != 1 {
		t.Fatalf("pad = %+v", got)
	}
	points := got.Primitives[0].Points
	if len(points) != 3 {
		t.Fatalf("outline has %d points, want 3", len(points))
	}
	if points[0] != (footprint.Position{}) {
		t.Errorf("first outline point = %+v, want (0, 0)", points[0])
	}
	if !nearPos(points[2], footprint.Position{X: 1, Y: 1}) {
		t.Errorf("last outline point = %+v, want (1, 1)", points[2])
	}
	if !nearPos(res.Bounds.Min, footprint.Position{X: 5, Y: 5}) || res.Bounds.Min != res.Bounds.Max {
		t.Errorf("bounds = %+v, want the pad centre only", res.Bounds)
	}
}

func TestTHTPad(t *testing.T) {
	c, _ := newTestConverter(t, nil)
	ctx := NewContext("t", easyeda.THT)

	res := c.Dispatch(ctx, easyeda.Pad{
		Shape: "ELLIPSE", X: "39.37", Y: "0", Width: "7.874", Height: "7.874",
		Layer: "11", Number: "2", HoleRadius: "1.9685", Rotation: "90",
	})
	if res.Outcome != Emitted {
		t.Fatalf("Outcome = %v (%v)", res.Outcome, res.Err)
	}
	pad := res.Items[0].(footprint.Pad)
	if pad.Type != footprint.PadThroughHole || pad.Shape != footprint.ShapeCircle {
		t.Errorf("type/shape = %s/%s", pad.Type, pad.Shape)
	}
	if pad.Rotation != 0 {
		t.Errorf("rotation = %v, want 0", pad.Rotation)
	}
	if !near(pad.Drill, 1) {
		t.Errorf("drill = %v, want 1 (twice the hole radius)", pad.Drill)
	}
	if !reflect.DeepEqual(pad.Layers, footprint.LayersTHT) {
		t.Errorf("layers = %v", pad.Layers)
	}

	res = c.Dispatch(ctx, easyeda.Pad{
		Shape: "STAR", X: "0", Y: "0", Width: "1", Height: "1", Layer: "11", Number: "3", HoleRadius: "1",
	})
	if res.Outcome != Failed || !errors.Is(res.Err, ErrUnknownPadShape) {
		t.Errorf("unknown THT shape: %v / %v", res.Outcome, res.Err)
	}
}

func TestUnknownAssemblyProcess(t *testing.T) {
	c, logs := newTestConverter(t, nil)
	res := c.Dispatch(NewContext("t", "REFLOW"), easyeda.Pad{Shape: "RECT", X: "0", Y: "0", Width: "1", Height: "1", Layer: "1", Number: "1"})

	if res.Outcome != Skipped || len(res.Items) != 0 || !res.Bounds.IsEmpty() {
		t.Errorf("result = %+v, want skipped with no output", res)
	}
	if logs.FilterMessage("unknown assembly process").FilterLevelExact(zapcore.WarnLevel).Len() != 1 {
		t.Error("expected one warning for the unknown assembly process")
	}
}

func TestViaAndSolidRegion(t *testing.T) {
	c, logs := newTestConverter(t, nil)
	ctx := NewContext("t", easyeda.SMT)

	if res := c.Dispatch(ctx, easyeda.Via{}); res.Outcome != Skipped || len(res.Items) != 0 {
		t.Errorf("via = %+v", res)
	}
	if logs.FilterLevelExact(zapcore.WarnLevel).Len() != 1 {
		t.Error("via should log one warning")
	}

	if res := c.Dispatch(ctx, easyeda.SolidRegion{}); res.Outcome != Skipped || !res.Bounds.IsEmpty() {
		t.Errorf("solid region = %+v", res)
	}
	if res := c.Dispatch(ctx, easyeda.Unsupported{Tag: "TEXT"}); res.Outcome != Skipped {
		t.Errorf("unsupported = %+v", res)
	}
}

type stubResolver struct {
	gotID  string
	gotZ   float64
	gotRot string
	err    error
}

func (s *stubResolver) ResolveModel(id string, ctx *Context, acc Accumulator, translationZ float64, rotation string) error {
	s.gotID, s.gotZ, s.gotRot = id, translationZ, rotation
	if s.err != nil {
		return s.err
	}
	acc.Append(footprint.Model{Path: ctx.Name + "/" + id + ".wrl"})
	return nil
}

func TestSVGNode(t *testing.T) {
	node := easyeda.SVGNode{JSON: `{"attrs":{"uuid":"m1","z":"3.937","c_rotation":"0,0,90"}}`}

	resolver := &stubResolver{}
	c, _ := newTestConverter(t, nil, WithModelResolver(resolver))
	res := c.Dispatch(NewContext("SOT-23", easyeda.SMT), node)
	if res.Outcome != Emitted || len(res.Items) != 1 {
		t.Fatalf("result = %+v", res)
	}
	if resolver.gotID != "m1" || !near(resolver.gotZ, 1) || resolver.gotRot != "0,0,90" {
		t.Errorf("resolver called with %q %v %q", resolver.gotID, resolver.gotZ, resolver.gotRot)
	}
	if m := res.Items[0].(footprint.Model); m.Path != "SOT-23/m1.wrl" {
		t.Errorf("model path = %q", m.Path)
	}

	failing := &stubResolver{err: errors.New("not found")}
	c, _ = newTestConverter(t, nil, WithModelResolver(failing))
	if res := c.Dispatch(NewContext("x", easyeda.SMT), node); res.Outcome != Failed {
		t.Errorf("failing resolver outcome = %v", res.Outcome)
	}

	c, _ = newTestConverter(t, nil)
	if res := c.Dispatch(NewContext("x", easyeda.SMT), node); res.Outcome != Skipped {
		t.Errorf("no resolver outcome = %v", res.Outcome)
	}
}

func TestDispatchIdempotent(t *testing.T) {
	prims := []easyeda.Primitive{
		easyeda.Track{Width: "10", Layer: "3", Points: "0 0 100 0 100 100"},
		easyeda.Pad{Shape: "RECT", X: "50", Y: "50", Width: "10", Height: "20", Layer: "1", Number: "1", Rotation: "0"},
		easyeda.Arc{Width: "1", Layer: "3", Candidates: []string{"M 0 39.37 A -78.74 0 0 0 1 39.37 0"}},
		easyeda.Circle{X: "0", Y: "0", Radius: "5", Width: "1", Layer: "3"},
		easyeda.Via{},
	}

	run := func() (*Context, *footprint.Footprint) {
		c, _ := newTestConverter(t, nil)
		ctx := NewContext("t", easyeda.SMT)
		fp := footprint.New("t")
		for _, p := range prims {
			ctx.Fold(c.Dispatch(ctx, p), fp)
		}
		return ctx, fp
	}

	ctxA, fpA := run()
	ctxB, fpB := run()
	if !reflect.DeepEqual(fpA.Items, fpB.Items) {
		t.Error("independent runs produced different items")
	}
	if ctxA.Bounds != ctxB.Bounds {
		t.Errorf("bounds differ: %+v vs %+v", ctxA.Bounds, ctxB.Bounds)
	}
	if ctxA.Bounds.Max != (footprint.Position{X: MilToMM(100), Y: MilToMM(100)}) {
		t.Errorf("bounds = %+v", ctxA.Bounds)
	}
	if len(fpA.Items) != 5 {
		t.Errorf("got %d items, want 2 lines, pad, arc and circle", len(fpA.Items))
	}
}

func TestMetrics(t *testing.T) {
	reg := prometheus.NewRegistry()
	m := NewMetrics(reg)
	c, _ := newTestConverter(t, nil, WithMetrics(m))
	ctx := NewContext("t", easyeda.SMT)

	c.Dispatch(ctx, easyeda.Track{Width: "10", Layer: "1", Points: "0 0 1 1"})
	c.Dispatch(ctx, easyeda.Track{Width: "10", Layer: "1", Points: "0 0 1 1"})
	c.Dispatch(ctx, easyeda.Via{})
	c.Dispatch(ctx, easyeda.Arc{Width: "1", Layer: "3", Candidates: []string{"nope"}})

	tests := []struct {
		kind, outcome string
		want          float64
	}{
		{"track", "emitted", 2},
		{"via", "skipped", 1},
		{"arc", "failed", 1},
		{"pad", "emitted", 0},
	}
	for _, tt := range tests {
		got := testutil.ToFloat64(m.Primitives.WithLabelValues(tt.kind, tt.outcome))
		if got != tt.want {
			t.Errorf("%s/%s = %v, want %v", tt.kind, tt.outcome, got, tt.want)
		}
	}

	var nilMetrics *Metrics
	nilMetrics.Observe(Result{Kind: easyeda.KindTrack})
}

func TestConfigValidate(t *testing.T) {
	tests := []struct {
		name    string
		cfg     Config
		wantErr bool
	}{
		{name: "defaults", cfg: *DefaultConfig()},
		{name: "zero value", cfg: Config{}},
		{name: "lowercase assembly", cfg: Config{AssemblyProcess: "tht"}},
		{name: "bad assembly", cfg: Config{AssemblyProcess: "wave"}, wantErr: true},
		{name: "bad layer", cfg: Config{DefaultLayer: "silkscreen"}, wantErr: true},
		{name: "negative margin", cfg: Config{CourtyardMargin: -1}, wantErr: true},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			cfg := tt.cfg
			err := cfg.Validate()
			if (err != nil) != tt.wantErr {
				t.Fatalf("Validate() error = %v, wantErr %v", err, tt.wantErr)
			}
			if err == nil && cfg.DefaultLayer == "" {
				t.Error("Validate() should fill in the default layer")
			}
		})
	}
}

const sampleDocument = `{"result":{"title":"TEST","dataStr":{"head":{"x":"4000","y":"3000","c_para":{"package":"TEST-2"}},"shape":[
"PAD~RECT~3960.63~3000~20~20~1~~1~0~3950.63 2990 3970.63 2990 3970.63 3010 3950.63 3010~0~gge1~0",
"PAD~RECT~4039.37~3000~20~20~1~~2~0~4029.37 2990 4049.37 2990 4049.37 3010 4029.37 3010~0~gge2~0",
"TRACK~3.937~3~~3950 2980 4050 2980~gge3~0",
"CIRCLE~4000~3000~5~1~100~gge4~0",
"VIA~4000~3000~2~~1~gge5~0",
"TRACK~1"
]}}}`

func TestConvert(t *testing.T) {
	doc, err := easyeda.Load(strings.NewReader(sampleDocument))
	if err != nil {
		t.Fatalf("Load() error: %v", err)
	}

	c, _ := newTestConverter(t, nil)
	fp, report, err := c.Convert(doc)
	if err != nil {
		t.Fatalf("Convert() error: %v", err)
	}

	if fp.Name != "TEST-2" || fp.Attribute != footprint.AttrSMD || report.AssemblyProcess != easyeda.SMT {
		t.Errorf("name/attr/ap = %q/%s/%s", fp.Name, fp.Attribute, report.AssemblyProcess)
	}

	pads := fp.Pads()
	if len(pads) != 2 {
		t.Fatalf("got %d pads, want 2", len(pads))
	}
	if !nearPos(pads[0].Position, footprint.Position{X: -10}) || !nearPos(pads[1].Position, footprint.Position{X: 10}) {
		t.Errorf("pads not centred on the origin: %+v %+v", pads[0].Position, pads[1].Position)
	}

	if report.Total(Emitted) != 3 || report.Total(Skipped) != 2 || report.Total(Failed) != 1 {
		t.Errorf("report counts = %v", report.Counts)
	}
	if len(report.Failures) != 1 || !errors.Is(report.Failures[0].Err, easyeda.ErrTooFewFields) {
		t.Errorf("failures = %+v", report.Failures)
	}

	counts := fp.CountByKind()
	// 1 track segment + 4 courtyard lines
	if counts["fp_line"] != 5 || counts["fp_text"] != 2 || counts["fp_circle"] != 0 {
		t.Errorf("item counts = %v", counts)
	}

	var crtyd []footprint.Line
	for _, item := range fp.Items {
		if l, ok := item.(footprint.Line); ok && l.Layer == "F.CrtYd" {
			crtyd = append(crtyd, l)
		}
	}
	if len(crtyd) != 4 {
		t.Fatalf("got %d courtyard lines, want 4", len(crtyd))
	}
	// bounds span the pad centres and the track: x in [-12.7, 12.7], y in [-5.08, 0]
	wantMin := footprint.Position{X: MilToMM(-50) - 0.25, Y: MilToMM(-20) - 0.25}
	if !nearPos(crtyd[0].Start, wantMin) {
		t.Errorf("courtyard starts at %+v, want %+v", crtyd[0].Start, wantMin)
	}
}

func TestConvertOptions(t *testing.T) {
	doc, err := easyeda.Load(strings.NewReader(sampleDocument))
	if err != nil {
		t.Fatalf("Load() error: %v", err)
	}

	cfg := DefaultConfig()
	cfg.Name = "Custom"
	cfg.Courtyard = false
	cfg.AssemblyProcess = easyeda.THT
	c, _ := newTestConverter(t, cfg)

	fp, report, err := c.Convert(doc)
	if err != nil {
		t.Fatalf("Convert() error: %v", err)
	}
	if fp.Name != "Custom" || fp.Attribute != footprint.AttrThroughHole || report.AssemblyProcess != easyeda.THT {
		t.Errorf("name/attr = %q/%s", fp.Name, fp.Attribute)
	}
	for _, item := range fp.Items {
		if l, ok := item.(footprint.Line); ok && l.Layer == "F.CrtYd" {
			t.Fatal("courtyard drawn although disabled")
		}
	}
}

func TestConvertStrict(t *testing.T) {
	doc := &easyeda.Document{
		OriginX: "0",
		OriginY: "0",
		Shapes: []string{
			"TRACK~1~3~~0 0 10 0",
			"PAD~STAR~0~0~10~10~11~1~5",
		},
	}

	cfg := DefaultConfig()
	cfg.Strict = true
	c, _ := newTestConverter(t, cfg)
	if _, _, err := c.Convert(doc); !errors.Is(err, ErrPadFailed) {
		t.Errorf("strict Convert() error = %v, want ErrPadFailed", err)
	}

	c, _ = newTestConverter(t, nil)
	fp, report, err := c.Convert(doc)
	if err != nil {
		t.Fatalf("lenient Convert() error: %v", err)
	}
	if len(fp.Pads()) != 0 || report.Total(Failed) != 1 {
		t.Errorf("lenient conversion: %d pads, %d failures", len(fp.Pads()), report.Total(Failed))
	}
}

func TestConvertBadOrigin(t *testing.T) {
	c, _ := newTestConverter(t, nil)
	_, _, err := c.Convert(&easyeda.Document{OriginX: "left", OriginY: "0", Shapes: []string{"VIA"}})
	var convErr *ConversionError
	if !errors.As(err, &convErr) {
		t.Errorf("Convert() error = %v, want *ConversionError", err)
	}
}
