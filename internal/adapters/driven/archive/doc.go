// Package archive implements the ArchiveOpener driven port for the
// container formats mnemo browses: zip (including .apkg/.colpkg card
// packages), 7z, rar and tar (optionally gzip-compressed), plus an
// in-memory archive for tests and draft previews.
//
// Member listing is eager; member bytes are materialised only on Extract.
// Sequential formats (tar, rar) re-scan the buffer per extraction instead
// of holding every member in memory.
package archive
