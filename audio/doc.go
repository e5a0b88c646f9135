// SPDX-License-Identifier: EPL-2.0

// Package audio provides the decoding primitives the pipeline is built on.
//
//   - Source: a stream of interleaved float32 samples from a decoder
//   - Registry: decoders by container hint, with Probe to open a stream
//   - PacketReader: the packet view of a probed stream's default track
//   - Resampler and MonoMixer: optional conditioning applied by Probe
//
// # Sample Format
//
// Samples are float32 in the range [-1.0, 1.0], interleaved by channel.
// Counts returned by ReadSamples are values, not frames.
//
// # Probing
//
//	reg := audio.NewRegistry()
//	reg.Register("wav", wav.Decoder{})
//
//	pr, err := reg.Probe("wav", r, audio.ConditionOptions{})
//	if err != nil {
//	    return err
//	}
//	defer pr.Close()
//
//	track, _ := pr.DefaultTrack()
//	for {
//	    pkt, err := pr.NextPacket()
//	    if errors.Is(err, io.EOF) {
//	        break
//	    }
//	    if audio.IsRecoverable(err) {
//	        continue
//	    }
//	    if err != nil {
//	        return err
//	    }
//	    // pkt.TrackID == track.ID
//	}
//
// # Errors
//
// io.EOF ends a stream. Errors wrapping ErrCorruptPacket are recoverable:
// the packet is lost and reading continues. Anything else is fatal for the
// stream.
package audio
