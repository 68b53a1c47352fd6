// Package sqlite implements the SQLEngine driven port on modernc.org/sqlite.
//
// Byte buffers are staged in scratch files because the driver opens paths,
// not memory. A handle owns its scratch file for its whole lifetime;
// Export checkpoints the WAL and reads the file back, Close removes it.
package sqlite
