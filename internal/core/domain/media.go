package domain

// Well-known archive member paths inside a card package.
const (
	// PackageDatabaseMember is the preferred embedded database member.
	PackageDatabaseMember = "collection.anki21"

	// PackageDatabaseMemberLegacy is the fallback for older exports.
	PackageDatabaseMemberLegacy = "collection.anki2"

	// PackageMediaMember is the media manifest member.
	PackageMediaMember = "media"
)

// ArchiveMember identifies one named entry inside an open archive.
// The model holds only the path; bytes exist only after extraction.
type ArchiveMember struct {
	Path string
	Size int64
}

// MediaManifest maps archive-internal short names to display filenames,
// as parsed from the well-known media member ("1" -> "sound.mp3").
type MediaManifest map[string]string

// Invert returns the display filename -> archive-internal path mapping
// used to resolve media references inside rendered templates. Display-name
// collisions resolve last-write-wins; callers that care log them.
func (m MediaManifest) Invert() map[string]string {
	inverted := make(map[string]string, len(m))
	for internal, display := range m {
		inverted[display] = internal
	}
	return inverted
}

// MediaState is the lifecycle of one display filename. Transitions only
// move forward; Resolved and Failed are terminal for the current request.
type MediaState int

const (
	MediaUnrequested MediaState = iota
	MediaQueued
	MediaExtracting
	MediaResolved
	MediaFailed
)

// String returns the lowercase state name.
func (s MediaState) String() string {
	switch s {
	case MediaUnrequested:
		return "unrequested"
	case MediaQueued:
		return "queued"
	case MediaExtracting:
		return "extracting"
	case MediaResolved:
		return "resolved"
	case MediaFailed:
		return "failed"
	default:
		return "unknown"
	}
}
