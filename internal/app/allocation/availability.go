package allocation

import (
	"github.com/adityar/hostelhub/internal/app/models"
)

// RoomTypeCounts is the occupancy split for one room type
type RoomTypeCounts struct {
	TotalBeds     int
	OccupiedBeds  int
	AvailableBeds int
}

// Availability is the aggregate occupancy report for one hostel
type Availability struct {
	HostelType    models.HostelType
	TotalBeds     int
	OccupiedBeds  int
	AvailableBeds int
	ByRoomType    map[models.RoomType]RoomTypeCounts
}

// Report computes aggregate occupancy counts for the hostel from a snapshot.
// Pure function, no side effects; callers wanting current durable state must
// rebuild the snapshot first.
func Report(snap *Snapshot, hostelType models.HostelType) Availability {
	av := Availability{
		HostelType: hostelType,
		ByRoomType: make(map[models.RoomType]RoomTypeCounts),
	}

	for i := range snap.Rooms {
		room := &snap.Rooms[i]
		if room.HostelType != hostelType {
			continue
		}

		occupied := room.OccupiedBedCount()
		total := len(room.Beds)

		av.TotalBeds += total
		av.OccupiedBeds += occupied
		av.AvailableBeds += total - occupied

		counts := av.ByRoomType[room.RoomType]
		counts.TotalBeds += total
		counts.OccupiedBeds += occupied
		counts.AvailableBeds += total - occupied
		av.ByRoomType[room.RoomType] = counts
	}

	return av
}
