// SPDX-License-Identifier: EPL-2.0

package utils

import "math"

// Clamp limits x to [-1, 1]. NaN maps to 0.
func Clamp(x float64) float64 {
	switch {
	case x != x:
		return 0
	case x > 1:
		return 1
	case x < -1:
		return -1
	}
	return x
}

// FloatToLevel scales x to the nearest integer of the symmetric scale
// [-maxLevel, maxLevel]. Ties round half away from zero.
func FloatToLevel(x float64, maxLevel int) int {
	return int(math.Round(Clamp(x) * float64(maxLevel)))
}
