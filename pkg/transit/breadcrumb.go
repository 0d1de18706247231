package transit

import "github.com/travigo/transitlab/pkg/util"

// BreadcrumbSample is one relative position reading reported by a vehicle
type BreadcrumbSample struct {
	VehicleID int64
	RelPos    float64
}

func BreadcrumbVehicle(b BreadcrumbSample) int64 {
	return b.VehicleID
}

// Positions flattens samples into their relpos values, keeping input order
func Positions(samples []BreadcrumbSample) []float64 {
	positions := make([]float64, 0, len(samples))

	for _, sample := range samples {
		positions = append(positions, sample.RelPos)
	}

	return positions
}

// PositionsByVehicle groups relpos values by vehicle
func PositionsByVehicle(samples []BreadcrumbSample) map[int64][]float64 {
	groups := util.GroupBy(samples, BreadcrumbVehicle)

	positions := make(map[int64][]float64, len(groups))
	for vehicleID, group := range groups {
		positions[vehicleID] = Positions(group)
	}

	return positions
}
