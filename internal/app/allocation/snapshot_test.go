package allocation

import (
	"testing"

	"github.com/adityar/hostelhub/internal/app/models"
)

func testRecord(id, profileID int64, roomNumber, bedID string) *models.AllotmentRecord {
	return &models.AllotmentRecord{
		ID:                 id,
		StudentProfileID:   profileID,
		RollNumber:         "R-REC",
		AllottedRoomNumber: roomNumber,
		AllottedBedID:      bedID,
		AllottedRoomType:   models.RoomTriple,
		AllottedHostelType: models.HostelBoys,
		AllottedHostelName: "Aravali House",
	}
}

func TestBuildSnapshotOverlaysRecords(t *testing.T) {
	rooms := []models.Room{
		testRoom("A-201", models.RoomTriple, "B1", "B2", "B3"),
	}

	snap, excluded := BuildSnapshot(rooms, []*models.AllotmentRecord{
		testRecord(1, 10, "A-201", "B2"),
	})

	if snap.RemainingCapacity(models.HostelBoys) != 2 {
		t.Errorf("Expected remaining capacity 2, got %d", snap.RemainingCapacity(models.HostelBoys))
	}
	if !excluded[10] {
		t.Error("Expected profile 10 in the exclusion set")
	}

	bed := snap.Rooms[0].FindBed("B2")
	if bed == nil || bed.Occupant == nil || bed.Occupant.StudentProfileID != 10 {
		t.Errorf("Expected bed B2 occupied by profile 10, got %+v", bed)
	}
}

func TestBuildSnapshotDoesNotMutateCatalogRooms(t *testing.T) {
	rooms := []models.Room{
		testRoom("A-201", models.RoomTriple, "B1", "B2", "B3"),
	}

	snap, _ := BuildSnapshot(rooms, []*models.AllotmentRecord{
		testRecord(1, 10, "A-201", "B1"),
	})

	if rooms[0].Beds[0].Occupant != nil {
		t.Error("Expected source rooms to stay untouched after overlay")
	}

	// Mutating the snapshot must not reach the source either
	snap.Rooms[0].Beds[1].Occupant = &models.Occupant{StudentProfileID: 20}
	if rooms[0].Beds[1].Occupant != nil {
		t.Error("Expected snapshot mutation to stay isolated from source rooms")
	}
}

func TestBuildSnapshotSkipsUnresolvableRecords(t *testing.T) {
	rooms := []models.Room{
		testRoom("A-201", models.RoomTriple, "B1", "B2", "B3"),
	}

	snap, excluded := BuildSnapshot(rooms, []*models.AllotmentRecord{
		testRecord(1, 10, "Z-999", "B1"), // unknown room
		testRecord(2, 11, "A-201", "B9"), // unknown bed
	})

	if snap.RemainingCapacity(models.HostelBoys) != 3 {
		t.Errorf("Expected unresolvable records to leave capacity at 3, got %d", snap.RemainingCapacity(models.HostelBoys))
	}
	if len(excluded) != 0 {
		t.Errorf("Expected empty exclusion set, got %v", excluded)
	}
}

func TestBuildSnapshotFirstRecordWinsBed(t *testing.T) {
	rooms := []models.Room{
		testRoom("A-201", models.RoomTriple, "B1", "B2", "B3"),
	}

	snap, excluded := BuildSnapshot(rooms, []*models.AllotmentRecord{
		testRecord(1, 10, "A-201", "B1"),
		testRecord(2, 11, "A-201", "B1"), // same bed, later record
	})

	bed := snap.Rooms[0].FindBed("B1")
	if bed.Occupant == nil || bed.Occupant.StudentProfileID != 10 {
		t.Errorf("Expected first record to keep the bed, got %+v", bed.Occupant)
	}
	if !excluded[10] {
		t.Error("Expected profile 10 in the exclusion set")
	}
	if excluded[11] {
		t.Error("Expected losing duplicate record to stay out of the exclusion set")
	}
}

func TestBuildSnapshotOrphanRecordOccupiesBedOnly(t *testing.T) {
	rooms := []models.Room{
		testRoom("A-201", models.RoomTriple, "B1", "B2", "B3"),
	}

	snap, excluded := BuildSnapshot(rooms, []*models.AllotmentRecord{
		testRecord(1, 0, "A-201", "B1"), // no resolvable student reference
	})

	if snap.RemainingCapacity(models.HostelBoys) != 2 {
		t.Errorf("Expected orphan record to hold its bed, capacity %d", snap.RemainingCapacity(models.HostelBoys))
	}
	if len(excluded) != 0 {
		t.Errorf("Expected orphan record to exclude nobody, got %v", excluded)
	}
}

func TestRemainingCapacityCountsOnlyRequestedHostel(t *testing.T) {
	girls := testRoom("S-201", models.RoomTriple, "B1", "B2", "B3")
	girls.HostelType = models.HostelGirls
	girls.HostelName = "Shivalik House"

	snap := &Snapshot{Rooms: []models.Room{
		testRoom("A-101", models.RoomSingle, "B1"),
		girls,
	}}

	if got := snap.RemainingCapacity(models.HostelBoys); got != 1 {
		t.Errorf("Expected boys capacity 1, got %d", got)
	}
	if got := snap.RemainingCapacity(models.HostelGirls); got != 3 {
		t.Errorf("Expected girls capacity 3, got %d", got)
	}
}
