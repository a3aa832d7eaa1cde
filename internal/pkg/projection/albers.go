// Package projection implements the SIRGAS 2000 / Brazil Albers coordinate
// reference system: an Albers Equal Area Conic projection on the GRS80
// ellipsoid, parameterized for Brazil's territory (IBGE convention).
package projection

import "math"

// GRS80 ellipsoid (SIRGAS 2000 datum).
const (
	semiMajorAxis     = 6378137.0
	inverseFlattening = 298.257222101
)

// Brazil Albers parameters.
const (
	latOrigin      = -12.0 // latitude of projection origin, degrees
	lonOrigin      = -54.0 // central meridian, degrees
	stdParallel1   = -2.0
	stdParallel2   = -22.0
	falseEasting   = 5000000.0
	falseNorthing  = 10000000.0
	degreesToRad   = math.Pi / 180.0
	radToDegrees   = 180.0 / math.Pi
	inverseMaxIter = 15
	inverseEps     = 1e-12
)

// BrazilAlbers converts between WGS84 longitude/latitude and projected
// easting/northing in metres. The zero value is not usable; construct with
// NewBrazilAlbers. Instances are immutable and safe for concurrent use.
type BrazilAlbers struct {
	e    float64 // first eccentricity
	e2   float64 // eccentricity squared
	n    float64 // cone constant
	c    float64
	rho0 float64
	lam0 float64 // central meridian, radians
}

// NewBrazilAlbers precomputes the projection constants.
func NewBrazilAlbers() *BrazilAlbers {
	f := 1.0 / inverseFlattening
	e2 := 2*f - f*f
	e := math.Sqrt(e2)

	p := &BrazilAlbers{
		e:    e,
		e2:   e2,
		lam0: lonOrigin * degreesToRad,
	}

	phi1 := stdParallel1 * degreesToRad
	phi2 := stdParallel2 * degreesToRad
	phi0 := latOrigin * degreesToRad

	m1 := p.m(phi1)
	m2 := p.m(phi2)
	q0 := p.q(phi0)
	q1 := p.q(phi1)
	q2 := p.q(phi2)

	p.n = (m1*m1 - m2*m2) / (q2 - q1)
	p.c = m1*m1 + p.n*q1
	p.rho0 = semiMajorAxis * math.Sqrt(p.c-p.n*q0) / p.n

	return p
}

// Forward projects a WGS84 longitude/latitude (degrees) to easting/northing
// in metres.
func (p *BrazilAlbers) Forward(lon, lat float64) (easting, northing float64) {
	lam := lon * degreesToRad
	phi := lat * degreesToRad

	q := p.q(phi)
	rho := semiMajorAxis * math.Sqrt(p.c-p.n*q) / p.n
	theta := p.n * (lam - p.lam0)

	easting = falseEasting + rho*math.Sin(theta)
	northing = falseNorthing + p.rho0 - rho*math.Cos(theta)
	return easting, northing
}

// Inverse converts projected easting/northing in metres back to WGS84
// longitude/latitude in degrees.
func (p *BrazilAlbers) Inverse(easting, northing float64) (lon, lat float64) {
	dx := easting - falseEasting
	dy := p.rho0 - (northing - falseNorthing)

	rho := math.Hypot(dx, dy)
	theta := math.Atan2(dx, dy)
	if p.n < 0 {
		// Southern-parallel cone: rho carries the sign of n.
		rho = -rho
		theta = math.Atan2(-dx, -dy)
	}

	q := (p.c - (rho*p.n/semiMajorAxis)*(rho*p.n/semiMajorAxis)) / p.n

	// Iterate Snyder's series for the authalic latitude inversion.
	phi := math.Asin(clamp(q/2, -1, 1))
	for i := 0; i < inverseMaxIter; i++ {
		sinPhi := math.Sin(phi)
		oneMinus := 1 - p.e2*sinPhi*sinPhi
		delta := (oneMinus * oneMinus / (2 * math.Cos(phi))) *
			(q/(1-p.e2) - sinPhi/oneMinus +
				(1/(2*p.e))*math.Log((1-p.e*sinPhi)/(1+p.e*sinPhi)))
		phi += delta
		if math.Abs(delta) < inverseEps {
			break
		}
	}

	lam := p.lam0 + theta/p.n
	return lam * radToDegrees, phi * radToDegrees
}

// m is the radius of the parallel scaled to the equator (Snyder 14-15).
func (p *BrazilAlbers) m(phi float64) float64 {
	sinPhi := math.Sin(phi)
	return math.Cos(phi) / math.Sqrt(1-p.e2*sinPhi*sinPhi)
}

// q is twice the authalic function of latitude (Snyder 3-12).
func (p *BrazilAlbers) q(phi float64) float64 {
	sinPhi := math.Sin(phi)
	return (1 - p.e2) * (sinPhi/(1-p.e2*sinPhi*sinPhi) -
		(1/(2*p.e))*math.Log((1-p.e*sinPhi)/(1+p.e*sinPhi)))
}

func clamp(v, lo, hi float64) float64 {
	if v < lo {
		return lo
	}
	if v > hi {
		return hi
	}
	return v
}
