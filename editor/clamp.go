package editor

import (
	"math"

	"github.com/vsariola/scriptline"
)

func nonNegative(v float64) float64 {
	return math.Max(0, v)
}

func clampDuration(v float64) float64 {
	return math.Max(scriptline.MinClipDuration, v)
}

func clampVolume(v float64) float64 {
	return math.Max(0, math.Min(1, v))
}

// clampFades caps both fades at half of the clip duration. It must run after
// every change to the duration or the fades.
func clampFades(c *scriptline.Clip) {
	maxFade := c.Duration / 2
	c.FadeInDuration = math.Min(c.FadeInDuration, maxFade)
	c.FadeOutDuration = math.Min(c.FadeOutDuration, maxFade)
}
