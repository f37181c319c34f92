package progrock_test

import (
	"context"
	"errors"
	"strings"
	"sync"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	vprogrock "github.com/vito/progrock"
	"go.trai.ch/aarcache/internal/adapters/telemetry/progrock"
)

// updates collects every status update written to the tape.
type updates struct {
	mu       sync.Mutex
	vertexes map[string]*vprogrock.Vertex
	groups   map[string]*vprogrock.Group
	members  map[string][]string
	logs     map[string]*strings.Builder
	closed   bool
}

func newUpdates() *updates {
	return &updates{
		vertexes: map[string]*vprogrock.Vertex{},
		groups:   map[string]*vprogrock.Group{},
		members:  map[string][]string{},
		logs:     map[string]*strings.Builder{},
	}
}

func (u *updates) WriteStatus(s *vprogrock.StatusUpdate) error {
	u.mu.Lock()
	defer u.mu.Unlock()
	for _, v := range s.Vertexes {
		u.vertexes[v.Id] = v
	}
	for _, g := range s.Groups {
		u.groups[g.Id] = g
	}
	for _, m := range s.Memberships {
		u.members[m.Group] = append(u.members[m.Group], m.Vertexes...)
	}
	for _, l := range s.Logs {
		b, ok := u.logs[l.Vertex]
		if !ok {
			b = &strings.Builder{}
			u.logs[l.Vertex] = b
		}
		_, _ = b.Write(l.Data)
	}
	return nil
}

func (u *updates) Close() error {
	u.closed = true
	return nil
}

func (u *updates) log(id string) string {
	if b, ok := u.logs[id]; ok {
		return b.String()
	}
	return ""
}

func TestRecorder_Lifecycle(t *testing.T) {
	recorder := progrock.New()
	ctx := context.Background()

	gotCtx, transformed := recorder.Record(ctx, "/libs/a.aar")
	assert.Equal(t, ctx, gotCtx)
	transformed.Log("transformed com.example.a")
	_, err := transformed.Stderr().Write([]byte("warning from extractor\n"))
	require.NoError(t, err)
	transformed.Complete(nil)

	_, reused := recorder.Record(ctx, "/libs/b.aar")
	reused.Cached()
	reused.Complete(nil)

	_, failed := recorder.Record(ctx, "/libs/c.aar")
	failed.Complete(errors.New("corrupt archive"))

	require.NoError(t, recorder.Close())
}

func TestRecorder_ArchiveVertexes(t *testing.T) {
	tape := newUpdates()
	recorder := progrock.NewRecorder(tape)
	ctx := context.Background()

	_, fresh := recorder.Record(ctx, "/libs/./camera-1.2.aar")
	fresh.Log("exploded into /out/camera-1.2")
	fresh.Complete(nil)

	_, hit := recorder.Record(ctx, "/libs/maps.aar")
	hit.Cached()
	hit.Complete(nil)

	_, bad := recorder.Record(ctx, "/libs/bad.aar")
	bad.Complete(errors.New("corrupt archive"))

	require.NoError(t, recorder.Close())
	assert.True(t, tape.closed)

	freshID := progrock.VertexID("/libs/camera-1.2.aar").String()
	require.Contains(t, tape.vertexes, freshID)
	assert.Equal(t, "explode camera-1.2.aar", tape.vertexes[freshID].Name)
	assert.False(t, tape.vertexes[freshID].Cached)
	assert.NotNil(t, tape.vertexes[freshID].Completed)
	assert.Equal(t, "input /libs/camera-1.2.aar\nexploded into /out/camera-1.2\n", tape.log(freshID))

	hitID := progrock.VertexID("/libs/maps.aar").String()
	assert.True(t, tape.vertexes[hitID].Cached)
	assert.Contains(t, tape.log(hitID), "cache hit\n")

	badID := progrock.VertexID("/libs/bad.aar").String()
	require.NotNil(t, tape.vertexes[badID].Error)
	assert.Equal(t, "corrupt archive", tape.vertexes[badID].GetError())
	assert.Contains(t, tape.log(badID), "corrupt archive\n")

	var group *vprogrock.Group
	for _, g := range tape.groups {
		if g.Name == progrock.GroupName {
			group = g
		}
	}
	require.NotNil(t, group)
	assert.True(t, group.Weak)
	assert.NotNil(t, group.Completed)
	assert.ElementsMatch(t, []string{freshID, hitID, badID}, tape.members[group.Id])
}

func TestVertexID(t *testing.T) {
	assert.Equal(t, progrock.VertexID("/libs/a.aar"), progrock.VertexID("/libs/./a.aar"))
	assert.NotEqual(t, progrock.VertexID("/mods/a/lib.aar"), progrock.VertexID("/mods/b/lib.aar"))
	assert.Equal(t, "explode lib.aar", progrock.VertexName("/mods/a/lib.aar"))
}
