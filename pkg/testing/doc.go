// Package testing provides canvas recording helpers for effect tests.
//
// # Recording
//
// Record what a drawer issues without rasterising anything:
//
//	ops := efxtest.Record(rendering.Size{Width: 100, Height: 100}, func(c rendering.Canvas) {
//	    manager.Draw(c, img)
//	})
//	clips := efxtest.FilterOps(ops, "clipRRect")
//
// # Snapshot Testing
//
// Capture and compare display-op snapshots:
//
//	snapshot := efxtest.CaptureSnapshot(size, view)
//	snapshot.MatchesFile(t, "testdata/circle.snapshot.json")
//
// Update snapshots with:
//
//	EFFECTVIEW_UPDATE_SNAPSHOTS=1 go test ./...
//
// # Import Alias
//
// Since this package has the same name as the standard library testing
// package, import it with an alias:
//
//	import efxtest "github.com/go-drift/effectview/pkg/testing"
package testing
