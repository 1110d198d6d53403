package tumble

import (
	"fmt"
	"sort"

	"github.com/tanema/gween/ease"
)

var easings = map[string]ease.TweenFunc{
	"Linear":       ease.Linear,
	"InQuad":       ease.InQuad,
	"OutQuad":      ease.OutQuad,
	"InOutQuad":    ease.InOutQuad,
	"OutInQuad":    ease.OutInQuad,
	"InCubic":      ease.InCubic,
	"OutCubic":     ease.OutCubic,
	"InOutCubic":   ease.InOutCubic,
	"OutInCubic":   ease.OutInCubic,
	"InQuart":      ease.InQuart,
	"OutQuart":     ease.OutQuart,
	"InOutQuart":   ease.InOutQuart,
	"OutInQuart":   ease.OutInQuart,
	"InQuint":      ease.InQuint,
	"OutQuint":     ease.OutQuint,
	"InOutQuint":   ease.InOutQuint,
	"OutInQuint":   ease.OutInQuint,
	"InSine":       ease.InSine,
	"OutSine":      ease.OutSine,
	"InOutSine":    ease.InOutSine,
	"OutInSine":    ease.OutInSine,
	"InExpo":       ease.InExpo,
	"OutExpo":      ease.OutExpo,
	"InOutExpo":    ease.InOutExpo,
	"OutInExpo":    ease.OutInExpo,
	"InCirc":       ease.InCirc,
	"OutCirc":      ease.OutCirc,
	"InOutCirc":    ease.InOutCirc,
	"OutInCirc":    ease.OutInCirc,
	"InElastic":    ease.InElastic,
	"OutElastic":   ease.OutElastic,
	"InOutElastic": ease.InOutElastic,
	"OutInElastic": ease.OutInElastic,
	"InBack":       ease.InBack,
	"OutBack":      ease.OutBack,
	"InOutBack":    ease.InOutBack,
	"OutInBack":    ease.OutInBack,
	"InBounce":     ease.InBounce,
	"OutBounce":    ease.OutBounce,
	"InOutBounce":  ease.InOutBounce,
	"OutInBounce":  ease.OutInBounce,
}

// EaseByName returns the gween easing function with the given name, for
// example "OutCubic" or "InOutQuart".
func EaseByName(name string) (ease.TweenFunc, error) {
	fn, ok := easings[name]
	if !ok {
		return nil, fmt.Errorf("unknown easing %q", name)
	}
	return fn, nil
}

// EaseNames returns every name EaseByName accepts, sorted.
func EaseNames() []string {
	names := make([]string, 0, len(easings))
	for name := range easings {
		names = append(names, name)
	}
	sort.Strings(names)
	return names
}

// easeProgress remaps normalized time u in [0, 1] through fn. A nil fn is the
// identity.
func easeProgress(fn ease.TweenFunc, u float64) float64 {
	if fn == nil {
		return u
	}
	return float64(fn(float32(u), 0, 1, 1))
}
