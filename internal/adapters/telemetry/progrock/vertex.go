package progrock

import (
	"fmt"
	"io"

	"github.com/vito/progrock"
	"go.trai.ch/aarcache/internal/core/ports"
)

var _ ports.Vertex = (*Vertex)(nil)

// Vertex is the progress entry of one archive.
type Vertex struct {
	rec *progrock.VertexRecorder
}

// Stderr receives output of an external transform command.
func (v *Vertex) Stderr() io.Writer {
	return v.rec.Stderr()
}

// Log appends msg as one stdout line.
func (v *Vertex) Log(msg string) {
	_, _ = fmt.Fprintln(v.rec.Stdout(), msg)
}

// Cached flags the archive as reused from the result cache.
func (v *Vertex) Cached() {
	_, _ = fmt.Fprintln(v.rec.Stdout(), "cache hit")
	v.rec.Cached()
}

// Complete closes the vertex. A failed archive has its error written to stderr
// before the vertex is marked as errored.
func (v *Vertex) Complete(err error) {
	if err != nil {
		_, _ = fmt.Fprintln(v.rec.Stderr(), err.Error())
	}
	v.rec.Done(err)
}
