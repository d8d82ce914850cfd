package models

import "testing"

func testRoomWithBeds(bedIDs ...string) Room {
	beds := make([]Bed, len(bedIDs))
	for i, id := range bedIDs {
		beds[i] = Bed{BedID: id}
	}
	return Room{
		HostelType: HostelBoys,
		RoomNumber: "A-201",
		RoomType:   RoomTriple,
		Capacity:   len(bedIDs),
		Beds:       beds,
	}
}

func TestOccupiedBedCountIsDerived(t *testing.T) {
	room := testRoomWithBeds("B1", "B2", "B3")

	if room.OccupiedBedCount() != 0 {
		t.Errorf("Expected 0 occupied beds, got %d", room.OccupiedBedCount())
	}

	room.Beds[1].Occupant = &Occupant{StudentProfileID: 10}
	if room.OccupiedBedCount() != 1 {
		t.Errorf("Expected 1 occupied bed, got %d", room.OccupiedBedCount())
	}
	if room.FreeBedCount() != 2 {
		t.Errorf("Expected 2 free beds, got %d", room.FreeBedCount())
	}
}

func TestFindBed(t *testing.T) {
	room := testRoomWithBeds("B1", "B2", "B3")

	if bed := room.FindBed("B2"); bed == nil || bed.BedID != "B2" {
		t.Errorf("Expected to find bed B2, got %+v", bed)
	}
	if bed := room.FindBed("B9"); bed != nil {
		t.Errorf("Expected nil for unknown bed, got %+v", bed)
	}
}

func TestFirstFreeBedSkipsOccupied(t *testing.T) {
	room := testRoomWithBeds("B1", "B2", "B3")
	room.Beds[0].Occupant = &Occupant{StudentProfileID: 10}

	bed := room.FirstFreeBed()
	if bed == nil || bed.BedID != "B2" {
		t.Errorf("Expected first free bed B2, got %+v", bed)
	}

	room.Beds[1].Occupant = &Occupant{StudentProfileID: 11}
	room.Beds[2].Occupant = &Occupant{StudentProfileID: 12}
	if bed := room.FirstFreeBed(); bed != nil {
		t.Errorf("Expected nil when room is full, got %+v", bed)
	}
}
