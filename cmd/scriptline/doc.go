// Command scriptline drives the timeline editor from the command line.
//
// Timelines are read from and written as YAML state files; actions are YAML
// lists of {type, payload} entries using the wire names SELECT_CLIP,
// UPDATE_CLIP, REPLACE_CLIP, REGENERATE_CLIP, ADD_CLIP, DELETE_CLIP and
// ADD_CLIPS. Nothing is persisted between runs: every command starts from the
// given state file, or an empty timeline, and prints the result.
package main
