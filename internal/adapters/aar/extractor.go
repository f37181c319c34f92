// Package aar explodes Android archive (AAR) files without external tooling.
package aar

import (
	"bytes"
	"context"
	"encoding/xml"
	"fmt"
	"io"
	"os"
	"path"
	"slices"
	"strings"
	"sync"

	"github.com/cespare/xxhash/v2"
	"github.com/go-git/go-billy/v5"
	"github.com/klauspost/compress/zip"
	"go.trai.ch/aarcache/internal/adapters/fs"
	"go.trai.ch/aarcache/internal/core/domain"
	"go.trai.ch/zerr"
	"golang.org/x/sync/errgroup"
)

const (
	manifestEntry = "AndroidManifest.xml"
	classesEntry  = "classes.jar"
	jniDir        = "jni/"
	assetsDir     = "assets/"

	defaultParallelism = 4
)

// Extractor unpacks archives into per-archive directories under an output base.
type Extractor struct {
	fs          billy.Filesystem
	parallelism int

	// mu serializes filesystem mutations; decompression runs in parallel.
	mu sync.Mutex
}

// NewExtractor creates a new Extractor.
func NewExtractor(fsys billy.Filesystem) *Extractor {
	return &Extractor{fs: fsys, parallelism: defaultParallelism}
}

// Transform extracts aarPath into outputBase/<archive name> and reports its contents.
func (e *Extractor) Transform(
	ctx context.Context,
	aarPath, outputBase string,
	opts domain.VariantOptions,
) (*domain.TransformResult, error) {
	data, err := e.readArchive(aarPath)
	if err != nil {
		return nil, err
	}

	zr, err := zip.NewReader(bytes.NewReader(data), int64(len(data)))
	if err != nil {
		return nil, zerr.With(zerr.Wrap(err, "failed to open archive"), "path", aarPath)
	}

	entries, manifest, err := plan(zr)
	if err != nil {
		return nil, zerr.With(err, "path", aarPath)
	}
	if manifest == nil {
		return nil, zerr.With(domain.ErrManifestMissing, "path", aarPath)
	}
	pkg, err := packageName(manifest)
	if err != nil {
		return nil, zerr.With(err, "path", aarPath)
	}

	target := OutputDir(outputBase, aarPath)
	if err := fs.RemoveAll(e.fs, target); err != nil {
		return nil, zerr.With(zerr.Wrap(err, "failed to clear output directory"), "path", target)
	}
	if err := e.fs.MkdirAll(target, domain.DirPerm); err != nil {
		return nil, zerr.With(zerr.Wrap(err, "failed to create output directory"), "path", target)
	}

	result := &domain.TransformResult{PackageName: pkg, ExplodedPath: target}

	g, ctx := errgroup.WithContext(ctx)
	g.SetLimit(e.parallelism)

	for _, ent := range entries {
		switch {
		case ent.name == classesEntry, path.Dir(ent.name) == "libs" && path.Ext(ent.name) == ".jar":
			result.Jars = append(result.Jars, e.fs.Join(target, ent.name))
		case strings.HasPrefix(ent.name, jniDir) && path.Ext(ent.name) == ".so":
			result.NativeLibraries = append(result.NativeLibraries, e.fs.Join(target, ent.name))
		}

		dests := []string{e.fs.Join(target, ent.name)}
		if opts.AssetsDestinationPath != "" && strings.HasPrefix(ent.name, assetsDir) {
			dests = append(dests, e.fs.Join(opts.AssetsDestinationPath, strings.TrimPrefix(ent.name, assetsDir)))
		}
		if opts.SharedLibraryDestinationPath != "" && strings.HasPrefix(ent.name, jniDir) {
			dests = append(dests, e.fs.Join(opts.SharedLibraryDestinationPath, strings.TrimPrefix(ent.name, jniDir)))
		}

		g.Go(func() error {
			if err := ctx.Err(); err != nil {
				return err
			}
			content, err := readEntry(ent.file)
			if err != nil {
				return zerr.With(err, "entry", ent.name)
			}
			for _, dest := range dests {
				if err := e.write(dest, content); err != nil {
					return zerr.With(err, "path", dest)
				}
			}
			return nil
		})
	}

	if err := g.Wait(); err != nil {
		return nil, err
	}

	slices.Sort(result.Jars)
	slices.Sort(result.NativeLibraries)

	return result, nil
}

// OutputDir returns the directory an archive is exploded into. The archive name is
// kept for readability and suffixed with a hash of the full input path, so archives
// sharing a file name in different directories never share an output directory.
func OutputDir(outputBase, aarPath string) string {
	name := strings.TrimSuffix(path.Base(aarPath), ".aar")
	return path.Join(outputBase, fmt.Sprintf("%s-%016x", name, xxhash.Sum64String(path.Clean(aarPath))))
}

type entry struct {
	name string
	file *zip.File
}

// plan validates every entry name and returns the regular files to extract along
// with the manifest content, which is nil when the archive has none.
func plan(zr *zip.Reader) ([]entry, []byte, error) {
	var (
		entries  []entry
		manifest []byte
	)
	for _, f := range zr.File {
		name, err := entryName(f.Name)
		if err != nil {
			return nil, nil, zerr.With(err, "entry", f.Name)
		}
		if f.FileInfo().IsDir() {
			continue
		}
		if name == manifestEntry {
			content, err := readEntry(f)
			if err != nil {
				return nil, nil, zerr.With(err, "entry", f.Name)
			}
			manifest = content
		}
		entries = append(entries, entry{name: name, file: f})
	}
	return entries, manifest, nil
}

func (e *Extractor) readArchive(aarPath string) ([]byte, error) {
	f, err := e.fs.Open(aarPath)
	if err != nil {
		return nil, zerr.With(zerr.Wrap(err, "failed to open archive"), "path", aarPath)
	}
	defer func() { _ = f.Close() }()

	data, err := io.ReadAll(f)
	if err != nil {
		return nil, zerr.With(zerr.Wrap(err, "failed to read archive"), "path", aarPath)
	}
	return data, nil
}

func (e *Extractor) write(dest string, content []byte) error {
	e.mu.Lock()
	defer e.mu.Unlock()

	if err := e.fs.MkdirAll(path.Dir(dest), domain.DirPerm); err != nil {
		return zerr.Wrap(err, "failed to create directory")
	}
	f, err := e.fs.OpenFile(dest, os.O_CREATE|os.O_TRUNC|os.O_WRONLY, domain.FilePerm)
	if err != nil {
		return zerr.Wrap(err, "failed to create file")
	}
	if _, err := f.Write(content); err != nil {
		_ = f.Close()
		return zerr.Wrap(err, "failed to write file")
	}
	return f.Close()
}

// entryName cleans an archive entry name and rejects names escaping the archive root.
func entryName(raw string) (string, error) {
	name := strings.ReplaceAll(raw, "\\", "/")
	if path.IsAbs(name) {
		return "", domain.ErrIllegalArchiveEntry
	}
	name = path.Clean(name)
	if name == ".." || strings.HasPrefix(name, "../") {
		return "", domain.ErrIllegalArchiveEntry
	}
	return name, nil
}

func readEntry(f *zip.File) ([]byte, error) {
	rc, err := f.Open()
	if err != nil {
		return nil, zerr.Wrap(err, "failed to open archive entry")
	}
	defer func() { _ = rc.Close() }()

	content, err := io.ReadAll(rc)
	if err != nil {
		return nil, zerr.Wrap(err, "failed to read archive entry")
	}
	return content, nil
}

type manifestDoc struct {
	XMLName xml.Name `xml:"manifest"`
	Package string   `xml:"package,attr"`
}

func packageName(manifest []byte) (string, error) {
	var doc manifestDoc
	if err := xml.Unmarshal(manifest, &doc); err != nil {
		return "", zerr.Wrap(err, domain.ErrManifestMissing.Error())
	}
	pkg := strings.TrimSpace(doc.Package)
	if pkg == "" {
		return "", domain.ErrPackageNameMissing
	}
	return pkg, nil
}
