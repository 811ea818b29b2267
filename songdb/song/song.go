// Package song provides the read-only song view the filter engine
// matches against, plus the audio-format and timestamp value types.
package song

import (
	"time"

	"github.com/nonibytes/songdb/songdb/tag"
)

// TagItem is one (kind, value) pair of a song's metadata.
type TagItem struct {
	Kind  tag.Type
	Value string
}

// Song is the read-only view consumed by filter matching.
type Song interface {
	// URI is the song's location relative to the library root.
	URI() string

	// TagValues returns all values of one tag kind, possibly none.
	TagValues(kind tag.Type) []string

	// AllTags returns every (kind, value) pair.
	AllTags() []TagItem

	ModifiedAt() time.Time
	AddedAt() time.Time

	// Format returns the song's audio format; ok is false when unknown.
	Format() (AudioFormat, bool)

	// Priority is the queue priority, 0 when unset.
	Priority() uint8
}

// LightSong is the concrete Song used by storage and tests.
type LightSong struct {
	Loc      string
	Tags     []TagItem
	Mtime    time.Time
	Added    time.Time
	Audio    AudioFormat
	HasAudio bool
	Prio     uint8
}

func (s *LightSong) URI() string { return s.Loc }

func (s *LightSong) TagValues(kind tag.Type) []string {
	var values []string
	for _, item := range s.Tags {
		if item.Kind == kind {
			values = append(values, item.Value)
		}
	}
	return values
}

func (s *LightSong) AllTags() []TagItem { return s.Tags }

func (s *LightSong) ModifiedAt() time.Time { return s.Mtime }

func (s *LightSong) AddedAt() time.Time { return s.Added }

func (s *LightSong) Format() (AudioFormat, bool) { return s.Audio, s.HasAudio }

func (s *LightSong) Priority() uint8 { return s.Prio }

// AddTag appends one tag value.
func (s *LightSong) AddTag(kind tag.Type, value string) {
	s.Tags = append(s.Tags, TagItem{Kind: kind, Value: value})
}
