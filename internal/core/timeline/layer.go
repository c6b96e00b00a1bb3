package timeline

import "fmt"

// LayerType identifies the content kind of a layer and the track lane it
// renders in. The set is closed; every switch over LayerType should carry
// a case for each value.
type LayerType string

const (
	LayerMedia       LayerType = "media"
	LayerAudio       LayerType = "audio"
	LayerEffects     LayerType = "effects"
	LayerTransitions LayerType = "transitions"
	LayerText        LayerType = "text"
	LayerKeyframes   LayerType = "keyframes"
)

// LayerTypes lists every layer type in canonical lane order.
var LayerTypes = []LayerType{
	LayerMedia,
	LayerAudio,
	LayerEffects,
	LayerTransitions,
	LayerText,
	LayerKeyframes,
}

// Valid reports whether t is one of the six known layer types.
func (t LayerType) Valid() bool {
	switch t {
	case LayerMedia, LayerAudio, LayerEffects, LayerTransitions, LayerText, LayerKeyframes:
		return true
	}
	return false
}

// BlendMode controls how a layer composites over the layers below it.
type BlendMode string

const (
	BlendNormal   BlendMode = "normal"
	BlendAdd      BlendMode = "add"
	BlendMultiply BlendMode = "multiply"
	BlendScreen   BlendMode = "screen"
)

// Layer is typed content owned by exactly one shot. StartTime and Duration
// are relative to the owning shot and bounded within it. Exactly one payload
// pointer is set, matching Type.
type Layer struct {
	ID        string    `json:"id"`
	Type      LayerType `json:"type"`
	StartTime Frame     `json:"start_time"`
	Duration  Frame     `json:"duration"`
	Locked    bool      `json:"locked,omitempty"`
	Hidden    bool      `json:"hidden,omitempty"`
	Opacity   float64   `json:"opacity"`
	BlendMode BlendMode `json:"blend_mode,omitempty"`

	Media      *MediaPayload      `json:"media,omitempty"`
	Audio      *AudioPayload      `json:"audio,omitempty"`
	Effect     *EffectPayload     `json:"effect,omitempty"`
	Transition *TransitionPayload `json:"transition,omitempty"`
	Text       *TextPayload       `json:"text,omitempty"`
	Keyframes  *KeyframePayload   `json:"keyframes,omitempty"`
}

// MediaPayload references source footage and the trim window into it.
// TrimStart/TrimEnd select which source frames the layer plays; slipping a
// shot shifts both without moving the shot on the timeline.
type MediaPayload struct {
	Source    string    `json:"source"`
	TrimStart Frame     `json:"trim_start"`
	TrimEnd   Frame     `json:"trim_end"`
	Transform Transform `json:"transform,omitzero"`
}

// Transform positions a media layer within the output frame.
type Transform struct {
	X        float64 `json:"x,omitempty"`
	Y        float64 `json:"y,omitempty"`
	Scale    float64 `json:"scale,omitempty"`
	Rotation float64 `json:"rotation,omitempty"`
}

// AudioPayload references an audio source with a gain in dB.
type AudioPayload struct {
	Source string  `json:"source"`
	Gain   float64 `json:"gain,omitempty"`
	Muted  bool    `json:"muted,omitempty"`
}

// EffectPayload names a filter effect and its parameters.
type EffectPayload struct {
	Kind   string             `json:"kind"`
	Params map[string]float64 `json:"params,omitempty"`
}

// TransitionKind is the visual style of a transition layer.
type TransitionKind string

const (
	TransitionCrossfade TransitionKind = "crossfade"
	TransitionWipe      TransitionKind = "wipe"
	TransitionSlide     TransitionKind = "slide"
	TransitionDip       TransitionKind = "dip"
)

// TransitionPayload marks the incoming edge of a shot with a transition.
type TransitionPayload struct {
	Kind TransitionKind `json:"kind"`
}

// TextPayload holds a title/caption overlay.
type TextPayload struct {
	Content string  `json:"content"`
	Font    string  `json:"font,omitempty"`
	Size    float64 `json:"size,omitempty"`
}

// Keyframe is a single animation point on a property curve. Time is
// relative to the owning shot.
type Keyframe struct {
	Time   Frame   `json:"time"`
	Value  float64 `json:"value"`
	Easing string  `json:"easing,omitempty"`
}

// KeyframePayload animates one named property with a time-sorted curve.
type KeyframePayload struct {
	Property  string     `json:"property"`
	Keyframes []Keyframe `json:"keyframes"`
}

// Span returns the layer's window relative to the owning shot.
func (l Layer) Span() Span {
	return Span{Start: l.StartTime, End: l.StartTime + l.Duration}
}

// Clone returns a deep copy of the layer, including its payload.
func (l Layer) Clone() Layer {
	c := l
	switch {
	case l.Media != nil:
		m := *l.Media
		c.Media = &m
	case l.Audio != nil:
		a := *l.Audio
		c.Audio = &a
	case l.Effect != nil:
		e := *l.Effect
		if l.Effect.Params != nil {
			e.Params = make(map[string]float64, len(l.Effect.Params))
			for k, v := range l.Effect.Params {
				e.Params[k] = v
			}
		}
		c.Effect = &e
	case l.Transition != nil:
		t := *l.Transition
		c.Transition = &t
	case l.Text != nil:
		t := *l.Text
		c.Text = &t
	case l.Keyframes != nil:
		k := *l.Keyframes
		k.Keyframes = append([]Keyframe(nil), l.Keyframes.Keyframes...)
		c.Keyframes = &k
	}
	return c
}

// Validate checks layer invariants independent of the owning shot.
func (l Layer) Validate() error {
	if l.ID == "" {
		return fmt.Errorf("layer: missing id")
	}
	if !l.Type.Valid() {
		return fmt.Errorf("layer %s: unknown type %q", l.ID, l.Type)
	}
	if l.StartTime < 0 {
		return fmt.Errorf("layer %s: negative start time %d", l.ID, l.StartTime)
	}
	if l.Duration < 1 {
		return fmt.Errorf("layer %s: duration %d below 1 frame", l.ID, l.Duration)
	}
	if l.Opacity < 0 || l.Opacity > 1 {
		return fmt.Errorf("layer %s: opacity %g outside [0, 1]", l.ID, l.Opacity)
	}
	return nil
}
