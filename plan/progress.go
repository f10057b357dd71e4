package plan

import (
	"os"

	pb "github.com/cheggaaa/pb/v3"
)

// unitBytes scales storage units (MB on the wire) to bytes for display.
const unitBytes = 1 << 20

// ProgressBar renders placement progress on stderr, measured in storage
// placed against the fleet's total capacity. Purely observational; wire it
// up with Optimizer.SetObserver.
type ProgressBar struct {
	bar *pb.ProgressBar
}

// NewProgressBar creates a bar sized to the problem's total capacity.
func NewProgressBar(p *Problem) *ProgressBar {
	bar := pb.New64(p.TotalCapacity() * unitBytes)
	bar.Set(pb.Bytes, true)
	bar.SetWriter(os.Stderr)
	return &ProgressBar{bar: bar}
}

// Start begins rendering.
func (b *ProgressBar) Start() {
	b.bar.Start()
}

// Observe advances the bar by one placement. Satisfies PlacementObserver.
func (b *ProgressBar) Observe(_ Candidate, size int64) {
	b.bar.Add64(size * unitBytes)
}

// Finish stops rendering.
func (b *ProgressBar) Finish() {
	b.bar.Finish()
}
