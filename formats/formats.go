// SPDX-License-Identifier: EPL-2.0

// Package formats wires the bundled decoders into an audio.Registry.
package formats

import (
	"github.com/ik5/audstream/audio"
	"github.com/ik5/audstream/formats/aiff"
	"github.com/ik5/audstream/formats/mp3"
	"github.com/ik5/audstream/formats/vorbis"
	"github.com/ik5/audstream/formats/wav"
)

// NewRegistry returns a registry with every bundled decoder registered under
// its container hints: mp3, ogg, vorbis, wav, aiff, aif.
func NewRegistry() *audio.Registry {
	reg := audio.NewRegistry()
	reg.Register("mp3", mp3.Decoder{})
	reg.Register("ogg", vorbis.Decoder{})
	reg.Register("vorbis", vorbis.Decoder{})
	reg.Register("wav", wav.Decoder{})
	reg.Register("aiff", aiff.Decoder{})
	reg.Register("aif", aiff.Decoder{})
	return reg
}
