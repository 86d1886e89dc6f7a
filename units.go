package pptxraster

// Angle converts degrees to OOXML's 60000ths-of-a-degree angle unit
// (the ST_Angle type used by rot, gradient angles, and shadow direction).
func Angle(degrees float64) int {
	return int(degrees * 60000)
}

// AngleToDegrees converts an ST_Angle value back to degrees.
func AngleToDegrees(angle int) float64 {
	return float64(angle) / 60000
}

// Percent converts a fractional percentage (1.0 == 100%) to OOXML's
// 100000ths-of-a-percent unit (the ST_PositivePercentage/ST_Percentage type
// used by tint, shade, lumMod, alpha and gradient stop positions).
func Percent(fraction float64) int {
	return int(fraction * 100000)
}

// PercentToFraction converts an ST_Percentage value back to a fraction.
func PercentToFraction(pct int) float64 {
	return float64(pct) / 100000
}

// HundredthsOfPoint converts a point size to OOXML's hundredths-of-a-point
// unit (the sz attribute on rPr/defRPr), e.g. 18pt -> 1800.
func HundredthsOfPoint(points float64) int {
	return int(points * 100)
}

// HundredthsOfPointToPoints converts an sz attribute value back to points.
func HundredthsOfPointToPoints(sz int) float64 {
	return float64(sz) / 100
}
