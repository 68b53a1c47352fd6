package archive

import (
	"bytes"
	"context"
	"fmt"
	"path/filepath"
	"strings"

	"github.com/mnemo-labs/mnemo-cli/internal/core/domain"
	"github.com/mnemo-labs/mnemo-cli/internal/core/ports/driven"
)

// Ensure Opener implements the interface.
var _ driven.ArchiveOpener = (*Opener)(nil)

// Format magic numbers, used when the extension is unknown.
var (
	magicZip  = []byte("PK\x03\x04")
	magic7z   = []byte("7z\xbc\xaf\x27\x1c")
	magicRar  = []byte("Rar!\x1a\x07")
	magicGzip = []byte("\x1f\x8b")
)

// Opener dispatches on container format.
type Opener struct{}

// NewOpener creates a format-dispatching archive opener.
func NewOpener() *Opener {
	return &Opener{}
}

// Open picks the codec from the path extension, falling back to magic
// number sniffing for unknown extensions.
func (o *Opener) Open(ctx context.Context, data []byte, path string) (driven.Archive, error) {
	switch strings.ToLower(filepath.Ext(path)) {
	case ".zip", ".apkg", ".colpkg":
		return openZip(data)
	case ".7z":
		return open7z(data)
	case ".rar":
		return openRar(data)
	case ".tar":
		return openTar(ctx, data, false)
	case ".tgz":
		return openTar(ctx, data, true)
	case ".gz":
		return openTar(ctx, data, true)
	}

	switch {
	case bytes.HasPrefix(data, magicZip):
		return openZip(data)
	case bytes.HasPrefix(data, magic7z):
		return open7z(data)
	case bytes.HasPrefix(data, magicRar):
		return openRar(data)
	case bytes.HasPrefix(data, magicGzip):
		return openTar(ctx, data, true)
	}
	return nil, fmt.Errorf("%s: %w", path, domain.ErrUnsupportedFormat)
}
