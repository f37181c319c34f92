// Package progrock reports archive processing to a progrock tape.
package progrock

import (
	"context"
	"fmt"
	"path"

	"github.com/opencontainers/go-digest"
	"github.com/vito/progrock"
	"go.trai.ch/aarcache/internal/core/ports"
)

// GroupName is the progrock group every archive vertex joins.
const GroupName = "archives"

var _ ports.Telemetry = (*Recorder)(nil)

// Recorder records one vertex per archive in a single weak group.
type Recorder struct {
	tape     progrock.Writer
	archives *progrock.Recorder
}

// New creates a Recorder on a fresh in-memory tape.
func New() *Recorder {
	return NewRecorder(progrock.NewTape())
}

// NewRecorder creates a Recorder writing status updates to w.
func NewRecorder(w progrock.Writer) *Recorder {
	return &Recorder{
		tape:     w,
		archives: progrock.NewRecorder(w).WithGroup(GroupName, progrock.Weak()),
	}
}

// Record opens the vertex for the archive at inputPath. The same path always maps
// to the same vertex ID.
func (r *Recorder) Record(ctx context.Context, inputPath string) (context.Context, ports.Vertex) {
	clean := path.Clean(inputPath)
	v := r.archives.Vertex(VertexID(clean), VertexName(clean))
	_, _ = fmt.Fprintf(v.Stdout(), "input %s\n", clean)
	return ctx, &Vertex{rec: v}
}

// Close marks the archive group complete and closes the tape.
func (r *Recorder) Close() error {
	r.archives.Complete()
	return r.tape.Close()
}

// VertexID derives the vertex ID of an archive from its path.
func VertexID(inputPath string) digest.Digest {
	return digest.FromString("aar:" + path.Clean(inputPath))
}

// VertexName is the label shown for an archive.
func VertexName(inputPath string) string {
	return "explode " + path.Base(inputPath)
}
