// Package physics describes the quarter-car suspension: two masses joined by
// a spring-damper pair, the first also tied to the ground, with the forcing
// applied to the second mass.
//
// Equations of motion (state [v1, v2, x1, x2]):
//
//	v1' = -(k1+k2)/m1·x1 + k2/m2·x2 - (b1+b2)/m1·v1 + b2/m1·v2
//	v2' =  k2/m2·x1 - k2/m2·x2 + b2/m2·v1 - b2/m2·v2 + u/m2
//	x1' = v1
//	x2' = v2
package physics
