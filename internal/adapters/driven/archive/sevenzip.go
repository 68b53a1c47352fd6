package archive

import (
	"bytes"
	"context"
	"fmt"
	"io"

	"github.com/bodgit/sevenzip"

	"github.com/mnemo-labs/mnemo-cli/internal/core/domain"
	"github.com/mnemo-labs/mnemo-cli/internal/core/ports/driven"
)

// Ensure sevenZipArchive implements the interface.
var _ driven.Archive = (*sevenZipArchive)(nil)

type sevenZipArchive struct {
	reader  *sevenzip.Reader
	members []domain.ArchiveMember
}

func open7z(data []byte) (driven.Archive, error) {
	reader, err := sevenzip.NewReader(bytes.NewReader(data), int64(len(data)))
	if err != nil {
		return nil, fmt.Errorf("7z: %v: %w", err, domain.ErrOpen)
	}

	members := make([]domain.ArchiveMember, 0, len(reader.File))
	for _, file := range reader.File {
		if file.FileInfo().IsDir() {
			continue
		}
		members = append(members, domain.ArchiveMember{
			Path: file.Name,
			Size: int64(file.UncompressedSize),
		})
	}
	return &sevenZipArchive{reader: reader, members: members}, nil
}

func (a *sevenZipArchive) Members() []domain.ArchiveMember {
	return a.members
}

func (a *sevenZipArchive) Extract(_ context.Context, path string) ([]byte, error) {
	for _, file := range a.reader.File {
		if file.Name != path {
			continue
		}
		rc, err := file.Open()
		if err != nil {
			return nil, fmt.Errorf("7z %s: %v: %w", path, err, domain.ErrExtract)
		}
		data, err := io.ReadAll(rc)
		rc.Close()
		if err != nil {
			return nil, fmt.Errorf("7z %s: %v: %w", path, err, domain.ErrExtract)
		}
		return data, nil
	}
	return nil, fmt.Errorf("7z member %s: %w", path, domain.ErrNotFound)
}

func (a *sevenZipArchive) Close() error {
	return nil
}
