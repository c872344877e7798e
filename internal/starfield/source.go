// Package starfield models the catalog sources fed into the projection
// pipeline. A Field is plain input data: the pipeline never mutates it.
package starfield

// Source is a single catalog entry. Proper motions follow the usual
// catalog convention: PMRACosDec is the motion along right ascension
// multiplied by cos(dec), both in milliarcseconds per year.
type Source struct {
	ID         string
	RADeg      float64
	DecDeg     float64
	PMRACosDec float64
	PMDec      float64
	EpochYear  float64
}

// Field is an ordered list of sources.
type Field []Source

const masPerDeg = 3600.0 * 1000.0

// AtEpoch returns a copy of the field with every source propagated to the
// given Julian epoch by its proper motion. Sources without proper motion
// are copied unchanged. The receiver is never modified.
func (f Field) AtEpoch(year float64) Field {
	out := make(Field, len(f))
	for i, src := range f {
		dt := year - src.EpochYear
		if dt != 0 && (src.PMRACosDec != 0 || src.PMDec != 0) {
			cosDec := cosDeg(src.DecDeg)
			if cosDec != 0 {
				src.RADeg += src.PMRACosDec / masPerDeg * dt / cosDec
			}
			src.DecDeg += src.PMDec / masPerDeg * dt
			src.EpochYear = year
		}
		out[i] = src
	}
	return out
}
