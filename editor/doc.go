/*
Package editor contains the state manager of the scriptline timeline editor.

The editor state is a *scriptline.Timeline held by a Store. Nothing modifies
the timeline directly; instead, collaborators build one of the Action payloads
(SelectClip, UpdateClip, ReplaceClip, RegenerateClip, AddClip, DeleteClip,
AddClips) and pass it to Store.Dispatch. The Reducer computes the next
timeline, validating and clamping every numeric field, and the Store publishes
it to its listeners.

A timeline is never changed after it has been published, so listeners can
detect changes by comparing pointers: an action that changes nothing returns
the very same *scriptline.Timeline.

Invalid references and malformed payloads are not errors: the offending
action, or the offending entry of a batch, is skipped and logged. The only
error Dispatch returns is ErrUnknownAction, which indicates a programming
error.
*/
package editor
