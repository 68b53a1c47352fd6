package archive

import (
	"bytes"
	"context"
	"errors"
	"fmt"
	"io"

	"github.com/nwaples/rardecode/v2"

	"github.com/mnemo-labs/mnemo-cli/internal/core/domain"
	"github.com/mnemo-labs/mnemo-cli/internal/core/ports/driven"
)

// Ensure rarArchive implements the interface.
var _ driven.Archive = (*rarArchive)(nil)

// rarArchive indexes members on open and re-scans the buffer per
// extraction; rar decoding is sequential.
type rarArchive struct {
	data    []byte
	members []domain.ArchiveMember
}

func openRar(data []byte) (driven.Archive, error) {
	a := &rarArchive{data: data}

	reader, err := rardecode.NewReader(bytes.NewReader(data))
	if err != nil {
		return nil, fmt.Errorf("rar: %v: %w", err, domain.ErrOpen)
	}
	for {
		header, err := reader.Next()
		if errors.Is(err, io.EOF) {
			break
		}
		if err != nil {
			return nil, fmt.Errorf("rar: %v: %w", err, domain.ErrOpen)
		}
		if header.IsDir {
			continue
		}
		a.members = append(a.members, domain.ArchiveMember{
			Path: header.Name,
			Size: header.UnPackedSize,
		})
	}
	return a, nil
}

func (a *rarArchive) Members() []domain.ArchiveMember {
	return a.members
}

func (a *rarArchive) Extract(ctx context.Context, path string) ([]byte, error) {
	reader, err := rardecode.NewReader(bytes.NewReader(a.data))
	if err != nil {
		return nil, fmt.Errorf("rar %s: %v: %w", path, err, domain.ErrExtract)
	}
	for {
		if err := ctx.Err(); err != nil {
			return nil, err
		}
		header, err := reader.Next()
		if errors.Is(err, io.EOF) {
			return nil, fmt.Errorf("rar member %s: %w", path, domain.ErrNotFound)
		}
		if err != nil {
			return nil, fmt.Errorf("rar %s: %v: %w", path, err, domain.ErrExtract)
		}
		if header.IsDir || header.Name != path {
			continue
		}
		data, err := io.ReadAll(reader)
		if err != nil {
			return nil, fmt.Errorf("rar %s: %v: %w", path, err, domain.ErrExtract)
		}
		return data, nil
	}
}

func (a *rarArchive) Close() error {
	return nil
}
