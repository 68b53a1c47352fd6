package archive

import (
	"archive/tar"
	"bytes"
	"compress/gzip"
	"context"
	"errors"
	"fmt"
	"io"

	"github.com/mnemo-labs/mnemo-cli/internal/core/domain"
	"github.com/mnemo-labs/mnemo-cli/internal/core/ports/driven"
)

// Ensure tarArchive implements the interface.
var _ driven.Archive = (*tarArchive)(nil)

// tarArchive indexes members on open and re-scans the buffer per
// extraction; tar has no central directory to seek by.
type tarArchive struct {
	data    []byte
	gzipped bool
	members []domain.ArchiveMember
}

func openTar(ctx context.Context, data []byte, gzipped bool) (driven.Archive, error) {
	a := &tarArchive{data: data, gzipped: gzipped}

	err := a.scan(ctx, func(header *tar.Header, _ *tar.Reader) (bool, error) {
		if header.Typeflag == tar.TypeReg {
			a.members = append(a.members, domain.ArchiveMember{
				Path: header.Name,
				Size: header.Size,
			})
		}
		return false, nil
	})
	if err != nil {
		return nil, fmt.Errorf("tar: %v: %w", err, domain.ErrOpen)
	}
	return a, nil
}

// scan walks every header until stop is requested or the stream ends.
func (a *tarArchive) scan(ctx context.Context, visit func(*tar.Header, *tar.Reader) (bool, error)) error {
	var source io.Reader = bytes.NewReader(a.data)
	if a.gzipped {
		gz, err := gzip.NewReader(source)
		if err != nil {
			return err
		}
		defer gz.Close()
		source = gz
	}

	reader := tar.NewReader(source)
	for {
		if err := ctx.Err(); err != nil {
			return err
		}
		header, err := reader.Next()
		if errors.Is(err, io.EOF) {
			return nil
		}
		if err != nil {
			return err
		}
		stop, err := visit(header, reader)
		if err != nil {
			return err
		}
		if stop {
			return nil
		}
	}
}

func (a *tarArchive) Members() []domain.ArchiveMember {
	return a.members
}

func (a *tarArchive) Extract(ctx context.Context, path string) ([]byte, error) {
	var data []byte
	found := false

	err := a.scan(ctx, func(header *tar.Header, reader *tar.Reader) (bool, error) {
		if header.Typeflag != tar.TypeReg || header.Name != path {
			return false, nil
		}
		content, err := io.ReadAll(reader)
		if err != nil {
			return false, err
		}
		data = content
		found = true
		return true, nil
	})
	if err != nil {
		return nil, fmt.Errorf("tar %s: %v: %w", path, err, domain.ErrExtract)
	}
	if !found {
		return nil, fmt.Errorf("tar member %s: %w", path, domain.ErrNotFound)
	}
	return data, nil
}

func (a *tarArchive) Close() error {
	return nil
}
