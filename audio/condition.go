// SPDX-License-Identifier: EPL-2.0

package audio

// ConditionOptions describes optional processing applied to a decoded source
// before it is sliced.
type ConditionOptions struct {
	// SampleRate resamples the source when positive and different from the native rate.
	SampleRate int
	// Mono averages all channels into one.
	Mono bool
}

// Condition builds the processing chain: resample -> mono.
// With zero options src is returned unchanged.
func Condition(src Source, opts ConditionOptions) Source {
	if opts.SampleRate > 0 && opts.SampleRate != src.SampleRate() {
		src = NewResampler(src, opts.SampleRate)
	}

	if opts.Mono && src.Channels() > 1 {
		src = NewMonoMixer(src)
	}

	return src
}
