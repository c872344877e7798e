package attitude

import (
	"math"

	"warpsim/internal/plane"
)

// AntipodeEps is the hemisphere cutoff for the gnomonic projection: a sky
// position whose direction cosine toward the boresight falls at or below
// this value is treated as singular. The projection diverges as the cosine
// approaches zero and flips sign beyond it.
const AntipodeEps = 1e-12

// ToTangentPlane projects sky positions onto the boresight tangent plane.
// Output coordinates are radians, +y toward celestial north rotated by the
// position angle. The returned mask flags which points projected cleanly;
// singular points keep their slot with a zero value so batches stay
// aligned with their input.
func ToTangentPlane(p Pointing, sky []Sky) ([]plane.Point, []bool) {
	f := newFrame(p)
	pts := make([]plane.Point, len(sky))
	ok := make([]bool, len(sky))
	for i, s := range sky {
		xi, eta, valid := f.project(s)
		if !valid {
			continue
		}
		pts[i] = plane.Point{
			X: f.cosPA*xi - f.sinPA*eta,
			Y: f.sinPA*xi + f.cosPA*eta,
		}
		ok[i] = true
	}
	return pts, ok
}

// ToSky de-projects tangent-plane points back onto the celestial sphere.
// Every finite tangent-plane point maps to a valid sky position; the
// gnomonic inverse has no singularity on the plane.
func ToSky(p Pointing, pts []plane.Point) []Sky {
	f := newFrame(p)
	sky := make([]Sky, len(pts))
	for i, pt := range pts {
		// Undo the position-angle roll first.
		xi := f.cosPA*pt.X + f.sinPA*pt.Y
		eta := -f.sinPA*pt.X + f.cosPA*pt.Y
		sky[i] = f.deproject(xi, eta)
	}
	return sky
}

// SkyJacobian returns the 2x2 derivative of the rolled tangent-plane
// coordinates with respect to sky position, d(x,y)/d(ra*, dec), where
// ra* is the on-sky right-ascension arc (dra * cos dec). Both frames are
// in radians. The second return value is false at the projection
// singularity, where no derivative exists.
func SkyJacobian(p Pointing, s Sky) (plane.Mat2, bool) {
	f := newFrame(p)
	sinDec, cosDec := math.Sincos(s.DecDeg * degToRad)
	dra := s.RADeg*degToRad - f.ra0
	sinDra, cosDra := math.Sincos(dra)

	d := f.sinDec0*sinDec + f.cosDec0*cosDec*cosDra
	if d <= AntipodeEps {
		return plane.Mat2{}, false
	}
	d2 := d * d
	n := f.cosDec0*sinDec - f.sinDec0*cosDec*cosDra
	e := f.sinDec0*cosDec - f.cosDec0*sinDec*cosDra

	// Partials of (xi, eta) with respect to (dra, dec).
	dXiDra := (cosDec*cosDra*d + f.cosDec0*cosDec*cosDec*sinDra*sinDra) / d2
	dXiDec := (-sinDec*sinDra*d - cosDec*sinDra*e) / d2
	dEtaDra := (f.sinDec0*cosDec*sinDra*d + f.cosDec0*cosDec*sinDra*n) / d2
	dEtaDec := ((f.cosDec0*cosDec+f.sinDec0*sinDec*cosDra)*d - n*e) / d2

	// d/d(ra*) = d/d(dra) / cos(dec). At the poles cosDec is zero and the
	// ra* direction is degenerate; the column collapses with it.
	j := plane.Mat2{B: dXiDec, D: dEtaDec}
	if cosDec != 0 {
		j.A = dXiDra / cosDec
		j.C = dEtaDra / cosDec
	}
	return plane.Rotation(p.PositionAngleDeg * degToRad).Mul(j), true
}

// project computes the unrolled gnomonic coordinates of a single source.
func (f frame) project(s Sky) (xi, eta float64, ok bool) {
	sinDec, cosDec := math.Sincos(s.DecDeg * degToRad)
	sinDra, cosDra := math.Sincos(s.RADeg*degToRad - f.ra0)

	cosC := f.sinDec0*sinDec + f.cosDec0*cosDec*cosDra
	if cosC <= AntipodeEps {
		return 0, 0, false
	}
	xi = cosDec * sinDra / cosC
	eta = (f.cosDec0*sinDec - f.sinDec0*cosDec*cosDra) / cosC
	return xi, eta, true
}

// deproject inverts project for unrolled plane coordinates.
func (f frame) deproject(xi, eta float64) Sky {
	rho := math.Hypot(xi, eta)
	if rho == 0 {
		return Sky{RADeg: normalizeRADeg(f.ra0 / degToRad), DecDeg: math.Asin(f.sinDec0) / degToRad}
	}
	c := math.Atan(rho)
	sinC, cosC := math.Sincos(c)

	dec := math.Asin(cosC*f.sinDec0 + eta*sinC*f.cosDec0/rho)
	ra := f.ra0 + math.Atan2(xi*sinC, rho*f.cosDec0*cosC-eta*f.sinDec0*sinC)
	return Sky{RADeg: normalizeRADeg(ra / degToRad), DecDeg: dec / degToRad}
}

func normalizeRADeg(deg float64) float64 {
	deg = math.Mod(deg, 360)
	if deg < 0 {
		deg += 360
	}
	return deg
}
