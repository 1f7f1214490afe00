// Package scriptline holds the data model of the audio script timeline: tracks,
// the clips placed on them, and the alternatives catalog used when swapping a
// clip for another take.
//
// The types are plain values with yaml tags. A Timeline is treated as
// immutable once built; the editor package derives new timelines from old ones
// and never modifies a timeline it was given. Use Copy when a private, mutable
// copy is needed.
package scriptline
