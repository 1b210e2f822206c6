package bezier

import (
	"fmt"
	"strings"

	"gonum.org/v1/gonum/spatial/r3"
)

// AsString returns a spline -- including control points -- as a
// (debugging) string, one curve per line.
//
// Example, two curves forming a wave along the x-axis:
//
//	(0,0,0) .. controls (1.0000,1.0000,0.0000)
//	  .. (2,0,0) .. controls (3.0000,-1.0000,0.0000)
//	  .. (4,0,0)
//
// The format follows MetaFont's notation for paths, extended to 3D and to
// a single control point per curve.
func AsString(spl *Spline) string {
	if spl == nil || len(spl.curves) == 0 {
		return "<empty>"
	}
	var b strings.Builder
	for i := range spl.curves {
		seg := spl.segment(i)
		if i == 0 {
			b.WriteString(ptstring(seg.Z(0), false))
		}
		b.WriteString(fmt.Sprintf(" .. controls %s\n  .. %s",
			ptstring(seg.Z(1), true), ptstring(seg.Z(2), false)))
	}
	return b.String()
}

func ptstring(p r3.Vec, iscontrol bool) string {
	if iscontrol {
		return fmt.Sprintf("(%.4f,%.4f,%.4f)", round(p.X), round(p.Y), round(p.Z))
	}
	return fmt.Sprintf("(%.4g,%.4g,%.4g)", round(p.X), round(p.Y), round(p.Z))
}

func round(x float64) float64 {
	if x >= 0 {
		return float64(int64(x*10000.0+0.5)) / 10000.0
	}
	return float64(int64(x*10000.0-0.5)) / 10000.0
}
