package aggregate

import (
	"sort"

	"partyline/internal/model"
)

type locatedResponse struct {
	point model.GeoPoint
	name  string
}

type placeKey struct {
	place string
	lat   float64
	lng   float64
}

// clusterPlaces groups geocoded responses by exact (place, lat, lng) and
// returns clusters sorted descending by size for marker rendering.
// Respondents without coordinates never reach here; they stay in the
// question's text aggregation only.
func clusterPlaces(located []locatedResponse) []model.GeoCluster {
	index := make(map[placeKey]int)
	var clusters []model.GeoCluster
	for _, r := range located {
		key := placeKey{place: r.point.Place, lat: r.point.Lat, lng: r.point.Lng}
		if i, ok := index[key]; ok {
			clusters[i].Count++
			clusters[i].RespondentNames = append(clusters[i].RespondentNames, r.name)
			continue
		}
		index[key] = len(clusters)
		clusters = append(clusters, model.GeoCluster{
			Place:           r.point.Place,
			Lat:             r.point.Lat,
			Lng:             r.point.Lng,
			Count:           1,
			RespondentNames: []string{r.name},
		})
	}
	sort.SliceStable(clusters, func(i, j int) bool {
		return clusters[i].Count > clusters[j].Count
	})
	return clusters
}

// MarkerRadius scales a map marker between minPx and maxPx linearly in
// count/maxCount. Monotonic in count.
func MarkerRadius(count, maxCount int, minPx, maxPx float64) float64 {
	if maxCount <= 0 || count <= 0 {
		return minPx
	}
	if count >= maxCount {
		return maxPx
	}
	return minPx + (maxPx-minPx)*float64(count)/float64(maxCount)
}
