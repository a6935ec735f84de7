package cpu

import (
	"testing"
	"time"

	"github.com/landris006/path-tracer/asset/compiler"
	"github.com/landris006/path-tracer/asset/scene"
	"github.com/landris006/path-tracer/tracer"
	"github.com/landris006/path-tracer/types"
)

const (
	testFrameW = 64
	testFrameH = 48
)

func makeTestTracer(t *testing.T) tracer.Tracer {
	tr := NewTracer("test")
	if err := tr.Init(testFrameW, testFrameH); err != nil {
		t.Fatal(err)
	}

	compiled, err := compiler.Compile(scene.Default())
	if err != nil {
		t.Fatal(err)
	}
	tr.Update(tracer.SetScene, compiled)
	tr.Update(tracer.SetCamera, scene.Default().Camera.Kernel())
	return tr
}

func renderFullFrame(t *testing.T, tr tracer.Tracer, target []types.Vec3) {
	doneChan := make(chan uint32, 1)
	errChan := make(chan error, 1)

	tr.Enqueue(tracer.BlockRequest{
		BlockY:          0,
		BlockH:          testFrameH,
		SamplesPerPixel: 4,
		FrameCount:      1,
		Target:          target,
		DoneChan:        doneChan,
		ErrChan:         errChan,
	})

	select {
	case err := <-errChan:
		t.Fatal(err)
	case rows := <-doneChan:
		if rows != testFrameH {
			t.Fatalf("expected %d completed rows; got %d", testFrameH, rows)
		}
	case <-time.After(30 * time.Second):
		t.Fatal("timed out waiting for block completion")
	}
}

func TestTracerRendersFrame(t *testing.T) {
	tr := makeTestTracer(t)
	defer tr.Close()

	target := make([]types.Vec3, testFrameW*testFrameH)
	renderFullFrame(t, tr, target)

	// The center pixel looks at the red diffuse sphere; a sky pixel sits in
	// the top-left corner. They must differ and both must be finite colors
	// in a sane range.
	center := target[(testFrameH/2)*testFrameW+testFrameW/2]
	corner := target[0]
	if center == corner {
		t.Fatal("center and corner pixels are identical; the scene was not traced")
	}
	for _, px := range []types.Vec3{center, corner} {
		for c := 0; c < 3; c++ {
			if !(px[c] >= 0) || px[c] > 2 {
				t.Fatalf("pixel radiance %v out of range", px)
			}
		}
	}

	// The sky corner must resemble the procedural gradient: blue at least
	// as strong as red.
	if corner[2] < corner[0] {
		t.Fatalf("expected a sky-like corner pixel; got %v", corner)
	}
}

func TestTracerDeterministicPerFrame(t *testing.T) {
	tr := makeTestTracer(t)
	defer tr.Close()

	first := make([]types.Vec3, testFrameW*testFrameH)
	second := make([]types.Vec3, testFrameW*testFrameH)
	renderFullFrame(t, tr, first)
	renderFullFrame(t, tr, second)

	for i := range first {
		if first[i] != second[i] {
			t.Fatalf("pixel %d differs between identical requests: %v vs %v", i, first[i], second[i])
		}
	}
}

func TestTracerPartialBlock(t *testing.T) {
	tr := makeTestTracer(t)
	defer tr.Close()

	target := make([]types.Vec3, testFrameW*testFrameH)
	doneChan := make(chan uint32, 1)
	errChan := make(chan error, 1)

	// Render only the bottom half; rows above the block must stay zero.
	tr.Enqueue(tracer.BlockRequest{
		BlockY:          testFrameH / 2,
		BlockH:          testFrameH / 2,
		SamplesPerPixel: 1,
		FrameCount:      1,
		Target:          target,
		DoneChan:        doneChan,
		ErrChan:         errChan,
	})

	select {
	case err := <-errChan:
		t.Fatal(err)
	case <-doneChan:
	case <-time.After(30 * time.Second):
		t.Fatal("timed out waiting for block completion")
	}

	for x := 0; x < testFrameW; x++ {
		if target[x] != (types.Vec3{}) {
			t.Fatalf("row 0 pixel %d was written outside the requested block", x)
		}
	}

	wrote := false
	for x := 0; x < testFrameW; x++ {
		if target[(testFrameH-1)*testFrameW+x] != (types.Vec3{}) {
			wrote = true
			break
		}
	}
	if !wrote {
		t.Fatal("bottom row was not traced")
	}
}

func TestTracerNoSceneData(t *testing.T) {
	tr := NewTracer("no-scene")
	if err := tr.Init(testFrameW, testFrameH); err != nil {
		t.Fatal(err)
	}
	defer tr.Close()

	doneChan := make(chan uint32, 1)
	errChan := make(chan error, 1)
	tr.Enqueue(tracer.BlockRequest{
		BlockY:   0,
		BlockH:   testFrameH,
		Target:   make([]types.Vec3, testFrameW*testFrameH),
		DoneChan: doneChan,
		ErrChan:  errChan,
	})

	select {
	case err := <-errChan:
		if err != ErrNoSceneData {
			t.Fatalf("expected ErrNoSceneData; got %v", err)
		}
	case <-doneChan:
		t.Fatal("expected an error for a sceneless block request")
	case <-time.After(10 * time.Second):
		t.Fatal("timed out waiting for error")
	}
}

func TestTracerRejectsBadUpdatePayload(t *testing.T) {
	tr := makeTestTracer(t)
	defer tr.Close()

	tr.Update(tracer.SetCamera, "not a camera")

	doneChan := make(chan uint32, 1)
	errChan := make(chan error, 1)
	tr.Enqueue(tracer.BlockRequest{
		BlockY:   0,
		BlockH:   testFrameH,
		Target:   make([]types.Vec3, testFrameW*testFrameH),
		DoneChan: doneChan,
		ErrChan:  errChan,
	})

	select {
	case err := <-errChan:
		if err == nil {
			t.Fatal("expected a payload type error")
		}
	case <-doneChan:
		t.Fatal("expected the malformed update to fail the block")
	case <-time.After(10 * time.Second):
		t.Fatal("timed out waiting for error")
	}
}

func TestTracerInitValidation(t *testing.T) {
	tr := NewTracer("bad-dims")
	if err := tr.Init(0, 10); err == nil {
		t.Fatal("expected error for zero width")
	}
}

func TestTracerSpeed(t *testing.T) {
	tr := NewTracer("speed")
	if tr.Speed() == 0 {
		t.Fatal("speed estimate must be positive")
	}
}
