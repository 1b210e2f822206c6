// Package bezier deals with piecewise quadratic Bézier splines in 3D. It
// provides evaluation of splines and their derivatives, and a least squares
// fit of a single quadratic curve to a sequence of points.
/*

A spline is made of curves, each having a start point, one control point
and an end point. Consecutive curves share their boundary point, so a spline
of n curves consists of 2n+1 points. Curves partition the parameter interval
[0,1] into n equally wide parts; t = 0.5 on a 2-curve spline is the point
shared by both curves.

Usage

Clients build a spline with a small builder API (package qualifiers
omitted for clarity and brevity):

   spl, err := NewSpline(V(0,0,0), V(1,1,0), V(2,0,0))
   err = spl.AppendCurve(V(3,-1,0), V(4,0,0))
   pos, tangent, _ := spl.At(0.75)

Moving a shared point with SetPos changes the shape of both adjacent curves.

Fitting

For a sequence of points p0 … pn, FitQuad finds the single quadratic curve
from p0 to pn which comes closest to all the points in between. Points are
first assigned curve parameters by CentripetalParams, then the control point
is found from the normal equations of the least squares problem, which are
handed to the linear equation solver of package polyn.

BSD License

Copyright (c) Norbert Pillmayer

All rights reserved.

Please refer to the license file for more information.

*/
package bezier
