package spatial

// Base32 alphabet used by geohash encoding.
const base32 = "0123456789bcdefghjkmnpqrstuvwxyz"

// GridPrecision is the geohash length used for geocode cache keys.
// Precision 6 cells are roughly 1.2 km x 0.6 km, so nearby lookups share
// a cache entry without collapsing distinct towns into one.
const GridPrecision = 6

// EncodeGeohash encodes latitude and longitude into a geohash string of
// the given precision (1-12 characters).
func EncodeGeohash(lat, lon float64, precision int) string {
	if precision < 1 {
		precision = 1
	}
	if precision > 12 {
		precision = 12
	}

	latRange := []float64{-90.0, 90.0}
	lonRange := []float64{-180.0, 180.0}

	geohash := make([]byte, 0, precision)
	bits := 0
	bit := 0
	ch := 0

	for len(geohash) < precision {
		if bit%2 == 0 {
			mid := (lonRange[0] + lonRange[1]) / 2
			if lon > mid {
				ch |= 1 << (4 - bits)
				lonRange[0] = mid
			} else {
				lonRange[1] = mid
			}
		} else {
			mid := (latRange[0] + latRange[1]) / 2
			if lat > mid {
				ch |= 1 << (4 - bits)
				latRange[0] = mid
			} else {
				latRange[1] = mid
			}
		}

		bits++
		if bits == 5 {
			geohash = append(geohash, base32[ch])
			bits = 0
			ch = 0
		}
		bit++
	}

	return string(geohash)
}

// GridKey buckets a coordinate to the cache grid.
func GridKey(lat, lon float64) string {
	return EncodeGeohash(lat, lon, GridPrecision)
}
