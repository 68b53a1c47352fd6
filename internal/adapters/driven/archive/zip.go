package archive

import (
	"archive/zip"
	"bytes"
	"context"
	"fmt"
	"io"

	"github.com/mnemo-labs/mnemo-cli/internal/core/domain"
	"github.com/mnemo-labs/mnemo-cli/internal/core/ports/driven"
)

// Ensure zipArchive implements the interface.
var _ driven.Archive = (*zipArchive)(nil)

// zipArchive reads members through a zip.Reader kept over the buffer.
type zipArchive struct {
	reader  *zip.Reader
	members []domain.ArchiveMember
}

func openZip(data []byte) (driven.Archive, error) {
	reader, err := zip.NewReader(bytes.NewReader(data), int64(len(data)))
	if err != nil {
		return nil, fmt.Errorf("zip: %v: %w", err, domain.ErrOpen)
	}

	members := make([]domain.ArchiveMember, 0, len(reader.File))
	for _, file := range reader.File {
		if file.FileInfo().IsDir() {
			continue
		}
		members = append(members, domain.ArchiveMember{
			Path: file.Name,
			Size: int64(file.UncompressedSize64),
		})
	}
	return &zipArchive{reader: reader, members: members}, nil
}

func (a *zipArchive) Members() []domain.ArchiveMember {
	return a.members
}

func (a *zipArchive) Extract(_ context.Context, path string) ([]byte, error) {
	for _, file := range a.reader.File {
		if file.Name != path {
			continue
		}
		rc, err := file.Open()
		if err != nil {
			return nil, fmt.Errorf("zip %s: %v: %w", path, err, domain.ErrExtract)
		}
		data, err := io.ReadAll(rc)
		rc.Close()
		if err != nil {
			return nil, fmt.Errorf("zip %s: %v: %w", path, err, domain.ErrExtract)
		}
		return data, nil
	}
	return nil, fmt.Errorf("zip member %s: %w", path, domain.ErrNotFound)
}

func (a *zipArchive) Close() error {
	return nil
}
