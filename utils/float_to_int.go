// SPDX-License-Identifier: EPL-2.0

package utils

// Float32ToInt16 quantises a normalised sample to signed 16-bit PCM.
// x is clamped to [-1, 1]; negative values scale by 32768 and the rest by
// 32767, so both ends of the range map exactly onto the int16 limits.
// The scaled value is truncated toward zero.
func Float32ToInt16(x float32) int16 {
	if x != x {
		return 0
	}
	if x > 1 {
		x = 1
	} else if x < -1 {
		x = -1
	}

	// float64 keeps the product exact before truncation
	if x < 0 {
		return int16(float64(x) * 32768.0)
	}
	return int16(float64(x) * 32767.0)
}

// Int16ToFloat32 is the inverse of Float32ToInt16.
func Int16ToFloat32(v int16) float32 {
	if v < 0 {
		return float32(float64(v) / 32768.0)
	}
	return float32(float64(v) / 32767.0)
}
