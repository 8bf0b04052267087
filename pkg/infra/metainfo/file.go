package metainfo

import (
	"context"
	"os"
	"path/filepath"

	"github.com/m-mizutani/goerr/v2"
	"github.com/m-mizutani/metarel/pkg/domain/interfaces"
	"github.com/m-mizutani/metarel/pkg/utils/logging"
)

type file struct {
	path string
}

// NewFile creates a MetainfoRepository backed by the XML file at path
func NewFile(path string) interfaces.MetainfoRepository {
	return &file{path: path}
}

func (f *file) Path() string {
	return f.path
}

// Load reads and parses the metainfo file
func (f *file) Load(ctx context.Context) (interfaces.MetainfoDocument, error) {
	fd, err := os.Open(f.path)
	if err != nil {
		return nil, goerr.Wrap(err, "failed to open metainfo file", goerr.V("path", f.path))
	}
	defer fd.Close()

	doc, err := Parse(fd)
	if err != nil {
		return nil, goerr.Wrap(err, "failed to load metainfo file", goerr.V("path", f.path))
	}

	logging.From(ctx).Debug("Loaded metainfo", "path", f.path, "release_count", len(doc.Releases()))
	return doc, nil
}

// Save writes doc to a temporary file next to the metainfo file and renames it over the original.
// A symlinked metainfo path is resolved first so the link itself is kept.
func (f *file) Save(ctx context.Context, doc interfaces.MetainfoDocument) error {
	target := f.path
	if resolved, err := filepath.EvalSymlinks(f.path); err == nil {
		target = resolved
	}

	mode := os.FileMode(0644)
	if info, err := os.Stat(target); err == nil {
		mode = info.Mode().Perm()
	}

	tmp, err := os.CreateTemp(filepath.Dir(target), ".metainfo-*.xml")
	if err != nil {
		return goerr.Wrap(err, "failed to create temporary file", goerr.V("path", f.path))
	}
	tmpPath := tmp.Name()
	defer func() {
		_ = os.Remove(tmpPath) // no-op after a successful rename
	}()

	if _, err := doc.WriteTo(tmp); err != nil {
		_ = tmp.Close()
		return goerr.Wrap(err, "failed to write metainfo", goerr.V("path", tmpPath))
	}
	if err := tmp.Close(); err != nil {
		return goerr.Wrap(err, "failed to close temporary file", goerr.V("path", tmpPath))
	}
	if err := os.Chmod(tmpPath, mode); err != nil {
		return goerr.Wrap(err, "failed to set file permissions", goerr.V("path", tmpPath))
	}
	if err := os.Rename(tmpPath, target); err != nil {
		return goerr.Wrap(err, "failed to replace metainfo file", goerr.V("path", target))
	}

	logging.From(ctx).Debug("Saved metainfo", "path", f.path, "target", target)
	return nil
}
