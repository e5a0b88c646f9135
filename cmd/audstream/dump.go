// SPDX-License-Identifier: EPL-2.0

package main

import (
	"fmt"
	"os"
	"path/filepath"

	goaudio "github.com/go-audio/audio"
	"github.com/go-audio/wav"

	"github.com/ik5/audstream"
	"github.com/ik5/audstream/utils"
)

// dumpChunk writes c as a 16-bit PCM WAV file named after its index and
// returns the file path.
func dumpChunk(dir string, index int, c audstream.Chunk) (string, error) {
	name := filepath.Join(dir, fmt.Sprintf("chunk-%06d.wav", index))

	f, err := os.Create(name)
	if err != nil {
		return "", fmt.Errorf("create %s: %w", name, err)
	}
	defer f.Close()

	samples := c.Samples()
	data := make([]int, len(samples))
	for i, s := range samples {
		data[i] = int(utils.Float32ToInt16(s))
	}

	enc := wav.NewEncoder(f, c.SampleRate(), 16, c.Channels(), 1)
	buf := &goaudio.IntBuffer{
		Format:         &goaudio.Format{NumChannels: c.Channels(), SampleRate: c.SampleRate()},
		Data:           data,
		SourceBitDepth: 16,
	}
	if err := enc.Write(buf); err != nil {
		return "", fmt.Errorf("encode %s: %w", name, err)
	}
	if err := enc.Close(); err != nil {
		return "", fmt.Errorf("finish %s: %w", name, err)
	}

	return name, f.Close()
}
