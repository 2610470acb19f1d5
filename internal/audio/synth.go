package audio

import (
	"math"
	"math/rand"
)

// floatBuffer is mono float64 samples at unity gain.
type floatBuffer []float64

// sineSweep generates a sine whose frequency glides linearly from startFreq
// to endFreq over the buffer. With equal frequencies it is a plain sine.
func sineSweep(startFreq, endFreq float64, samples int) floatBuffer {
	buf := make(floatBuffer, samples)
	phase := 0.0
	for i := 0; i < samples; i++ {
		t := float64(i) / float64(samples)
		freq := startFreq + (endFreq-startFreq)*t
		buf[i] = math.Sin(2 * math.Pi * phase)
		phase += freq / float64(SampleRate)
		if phase >= 1.0 {
			phase -= 1.0
		}
	}
	return buf
}

// noise generates white noise samples.
func noise(samples int) floatBuffer {
	buf := make(floatBuffer, samples)
	for i := range buf {
		buf[i] = rand.Float64()*2 - 1
	}
	return buf
}

// applyEnvelope applies a linear attack/release envelope in place.
func applyEnvelope(buf floatBuffer, attackSec, releaseSec float64) {
	total := len(buf)
	attackSamples := int(attackSec * float64(SampleRate))
	releaseSamples := int(releaseSec * float64(SampleRate))

	releaseStart := total - releaseSamples
	if releaseStart < attackSamples {
		releaseStart = attackSamples
	}

	for i := 0; i < total; i++ {
		vol := 1.0
		if i < attackSamples && attackSamples > 0 {
			vol = float64(i) / float64(attackSamples)
		} else if i >= releaseStart && releaseSamples > 0 {
			vol = float64(total-i) / float64(releaseSamples)
		}
		buf[i] *= vol
	}
}

// mixFloatBuffers adds b into a (in place), extending a if needed.
func mixFloatBuffers(a, b floatBuffer, bScale float64) floatBuffer {
	if len(b) > len(a) {
		extended := make(floatBuffer, len(b))
		copy(extended, a)
		a = extended
	}
	for i := range b {
		a[i] += b[i] * bScale
	}
	return a
}

// scale multiplies the buffer by gain in place and returns it.
func (buf floatBuffer) scale(gain float64) floatBuffer {
	for i := range buf {
		buf[i] *= gain
	}
	return buf
}

func durationSamples(seconds float64) int {
	return int(seconds * float64(SampleRate))
}

// synthVoice generates an 808-style stand-in for a sample that could not be
// loaded from disk, keyed by sample name. Unknown names get a short click so
// a misconfigured pad is audible rather than silent.
func synthVoice(name string) floatBuffer {
	switch name {
	case "kick-808":
		// Low sine with a fast downward pitch sweep.
		buf := sineSweep(120, 40, durationSamples(0.25))
		applyEnvelope(buf, 0.002, 0.22)
		return buf.scale(0.9)

	case "snare-808":
		// Body tone plus a burst of noise.
		buf := sineSweep(190, 160, durationSamples(0.18))
		buf = mixFloatBuffers(buf, noise(durationSamples(0.15)), 0.7)
		applyEnvelope(buf, 0.001, 0.15)
		return buf.scale(0.55)

	case "hihat-808":
		buf := noise(durationSamples(0.06))
		applyEnvelope(buf, 0.001, 0.05)
		return buf.scale(0.4)

	case "tom-lofi":
		buf := sineSweep(160, 110, durationSamples(0.22))
		applyEnvelope(buf, 0.002, 0.18)
		return buf.scale(0.7)

	case "tom-rototom":
		buf := sineSweep(220, 150, durationSamples(0.22))
		applyEnvelope(buf, 0.002, 0.18)
		return buf.scale(0.7)

	case "crash-808":
		buf := noise(durationSamples(0.9))
		buf = mixFloatBuffers(buf, sineSweep(520, 480, durationSamples(0.4)), 0.15)
		applyEnvelope(buf, 0.001, 0.85)
		return buf.scale(0.5)

	default:
		buf := noise(durationSamples(0.02))
		applyEnvelope(buf, 0.001, 0.015)
		return buf.scale(0.3)
	}
}
