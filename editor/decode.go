package editor

import (
	"fmt"

	"gopkg.in/yaml.v3"
)

type envelope struct {
	Type    string    `yaml:"type"`
	Payload yaml.Node `yaml:"payload"`
}

// DecodeActions parses an action script: a YAML (or JSON) sequence of
// {type, payload} objects. An unknown type is a contract violation and makes
// the whole script fail with ErrUnknownAction.
func DecodeActions(b []byte) ([]Action, error) {
	var envs []envelope
	if err := yaml.Unmarshal(b, &envs); err != nil {
		return nil, fmt.Errorf("could not parse action script: %w", err)
	}
	ret := make([]Action, 0, len(envs))
	for i, e := range envs {
		a, err := decodeEnvelope(e)
		if err != nil {
			return nil, fmt.Errorf("action %d: %w", i, err)
		}
		ret = append(ret, a)
	}
	return ret, nil
}

// DecodeAction decodes a single {type, payload} object.
func DecodeAction(node *yaml.Node) (Action, error) {
	var e envelope
	if err := node.Decode(&e); err != nil {
		return nil, fmt.Errorf("could not parse action: %w", err)
	}
	return decodeEnvelope(e)
}

func decodeEnvelope(e envelope) (Action, error) {
	kind, ok := ParseActionKind(e.Type)
	if !ok {
		return nil, fmt.Errorf("%w: %q", ErrUnknownAction, e.Type)
	}
	switch kind {
	case SelectClipKind:
		return decodePayload[SelectClip](e.Payload)
	case UpdateClipKind:
		return decodePayload[UpdateClip](e.Payload)
	case ReplaceClipKind:
		return decodePayload[ReplaceClip](e.Payload)
	case RegenerateClipKind:
		return decodePayload[RegenerateClip](e.Payload)
	case AddClipKind:
		return decodePayload[AddClip](e.Payload)
	case DeleteClipKind:
		return decodePayload[DeleteClip](e.Payload)
	case AddClipsKind:
		return decodePayload[AddClips](e.Payload)
	}
	return nil, fmt.Errorf("%w: %v", ErrUnknownAction, kind)
}

func decodePayload[T Action](node yaml.Node) (Action, error) {
	var p T
	if node.Kind == 0 { // payload omitted
		return p, nil
	}
	if err := node.Decode(&p); err != nil {
		return nil, fmt.Errorf("could not decode %v payload: %w", p.Kind(), err)
	}
	return p, nil
}
