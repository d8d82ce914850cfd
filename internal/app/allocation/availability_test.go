package allocation

import (
	"testing"

	"github.com/adityar/hostelhub/internal/app/models"
)

func TestReportCountsByRoomType(t *testing.T) {
	triple := testRoom("A-201", models.RoomTriple, "B1", "B2", "B3")
	triple.Beds[0].Occupant = &models.Occupant{StudentProfileID: 10}

	snap := &Snapshot{Rooms: []models.Room{
		testRoom("A-101", models.RoomSingle, "B1"),
		triple,
	}}

	av := Report(snap, models.HostelBoys)

	if av.TotalBeds != 4 || av.OccupiedBeds != 1 || av.AvailableBeds != 3 {
		t.Errorf("Expected totals 4/1/3, got %d/%d/%d", av.TotalBeds, av.OccupiedBeds, av.AvailableBeds)
	}

	singles := av.ByRoomType[models.RoomSingle]
	if singles.TotalBeds != 1 || singles.AvailableBeds != 1 {
		t.Errorf("Expected 1 free single bed, got %+v", singles)
	}

	triples := av.ByRoomType[models.RoomTriple]
	if triples.TotalBeds != 3 || triples.OccupiedBeds != 1 || triples.AvailableBeds != 2 {
		t.Errorf("Expected triples 3/1/2, got %+v", triples)
	}
}

func TestReportIgnoresOtherHostel(t *testing.T) {
	girls := testRoom("S-201", models.RoomTriple, "B1", "B2", "B3")
	girls.HostelType = models.HostelGirls

	snap := &Snapshot{Rooms: []models.Room{girls}}

	av := Report(snap, models.HostelBoys)
	if av.TotalBeds != 0 {
		t.Errorf("Expected no beds counted for the boys hostel, got %d", av.TotalBeds)
	}
	if len(av.ByRoomType) != 0 {
		t.Errorf("Expected no room type entries, got %v", av.ByRoomType)
	}
}
