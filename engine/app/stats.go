package app

import (
	"fmt"
	"math"
)

const statsWindow = 60 // frames

// FrameStats keeps the frame rate over the last statsWindow frames.
type FrameStats struct {
	ticks           uint64
	FramesPerSecond float64
	FPSRunningAvg   float64
	FPSMin          float64
	FPSMax          float64

	// values of the last completed window
	Avg, Min, Max float64
}

// Tick records a frame that took elapsed seconds. It returns true every statsWindow frames,
// when Avg, Min and Max were just updated.
func (s *FrameStats) Tick(elapsed float64) bool {
	if elapsed <= 0 {
		return false
	}
	s.FramesPerSecond = 1.0 / elapsed
	defer func() { s.ticks++ }()

	if s.ticks%statsWindow == 0 {
		s.Avg, s.Min, s.Max = s.FPSRunningAvg, s.FPSMin, s.FPSMax
		s.FPSRunningAvg = s.FramesPerSecond * (1.0 / statsWindow)
		s.FPSMin = s.FramesPerSecond
		s.FPSMax = s.FramesPerSecond
		return s.ticks > 0
	}
	s.FPSRunningAvg += s.FramesPerSecond * (1.0 / statsWindow)
	s.FPSMin = math.Min(s.FPSMin, s.FramesPerSecond)
	s.FPSMax = math.Max(s.FPSMax, s.FramesPerSecond)
	return false
}

func (s *FrameStats) String() string {
	return fmt.Sprintf("FPS: %.0f (Avg: %.0f, Min: %.0f, Max: %.0f)", s.FramesPerSecond, s.Avg, s.Min, s.Max)
}
