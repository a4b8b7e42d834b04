package domain

import (
	"errors"
	"fmt"
	"math"
	"time"
)

var ErrSeriesLengthMismatch = errors.New("acceleration series length mismatch")

// CrashRecording is a burst of triaxial acceleration samples captured around a trigger.
// Values are in m/s².
type CrashRecording struct {
	AX         []float64
	AY         []float64
	AZ         []float64
	ReceivedAt time.Time
}

func NewCrashRecording(ax, ay, az []float64, receivedAt time.Time) (CrashRecording, error) {
	if len(ay) != len(ax) || len(az) != len(ax) {
		return CrashRecording{}, fmt.Errorf("%w: ax=%d ay=%d az=%d", ErrSeriesLengthMismatch, len(ax), len(ay), len(az))
	}

	return CrashRecording{
		AX:         cloneSamples(ax),
		AY:         cloneSamples(ay),
		AZ:         cloneSamples(az),
		ReceivedAt: receivedAt,
	}, nil
}

func (r CrashRecording) Len() int {
	return len(r.AX)
}

// SampleIndices returns the chart labels 0..n-1.
func (r CrashRecording) SampleIndices() []float64 {
	out := make([]float64, r.Len())
	for i := range out {
		out[i] = float64(i)
	}

	return out
}

// PeakMagnitude returns the largest |a| over all samples and its index, or -1 for an empty recording.
func (r CrashRecording) PeakMagnitude() (float64, int) {
	peak, at := 0.0, -1
	for i := range r.AX {
		m := r.AX[i]*r.AX[i] + r.AY[i]*r.AY[i] + r.AZ[i]*r.AZ[i]
		if at < 0 || m > peak {
			peak, at = m, i
		}
	}
	if at < 0 {
		return 0, -1
	}

	return math.Sqrt(peak), at
}

func cloneSamples(in []float64) []float64 {
	out := make([]float64, len(in))
	copy(out, in)

	return out
}
