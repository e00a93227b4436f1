// Package geoutil 地理距离计算.
package geoutil

import "math"

// EarthRadiusKm 是计算使用的地球半径.
const EarthRadiusKm = 6378.137

// Distance 用 haversine 公式计算两个经纬度之间的球面距离，单位千米，四舍五入保留一位小数.
func Distance(startLng, startLat, endLng, endLat float64) float64 {
	startRadLat, endRadLat := radians(startLat), radians(endLat)
	latDiff := startRadLat - endRadLat
	lngDiff := radians(startLng) - radians(endLng)

	d := 2 * math.Asin(math.Sqrt(math.Pow(math.Sin(latDiff/2), 2)+
		math.Cos(startRadLat)*math.Cos(endRadLat)*math.Pow(math.Sin(lngDiff/2), 2)))

	return roundHalfUp(d*EarthRadiusKm, 1)
}

func radians(deg float64) float64 {
	return deg * math.Pi / 180.0
}

func roundHalfUp(v float64, places int) float64 {
	p := math.Pow(10, float64(places))
	return math.Floor(v*p+0.5) / p
}
