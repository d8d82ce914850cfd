package allocation

import (
	"github.com/adityar/hostelhub/internal/app/models"
	"github.com/adityar/hostelhub/internal/pkg/logger"
)

// Snapshot is the in-memory, per-run working copy of room and bed occupancy.
// It is a deep copy of the catalog: one allotment run owns its snapshot
// outright and mutations never reach the static catalog or other runs.
type Snapshot struct {
	Rooms []models.Room
}

// BuildSnapshot overlays existing allotment records onto a fresh copy of the
// catalog rooms. It returns the snapshot plus the exclusion set: profile IDs
// that already hold a resolvable allotment and must not be re-considered.
//
// Records that do not resolve to a catalog room or bed are logged and
// skipped; data drift must not crash the run. Orphan records (no resolvable
// student reference) still occupy their bed so capacity stays correct, but
// they do not enter the exclusion set, so their student could be re-allotted
// elsewhere. Reconciling orphans is an operator task, hence the warning log.
func BuildSnapshot(rooms []models.Room, records []*models.AllotmentRecord) (*Snapshot, map[int64]bool) {
	snap := &Snapshot{Rooms: deepCopyRooms(rooms)}
	excluded := make(map[int64]bool)

	for _, rec := range records {
		if rec == nil {
			continue
		}

		room := snap.findRoom(rec.AllottedHostelType, rec.AllottedRoomNumber)
		if room == nil {
			logger.Warn().
				Int64("allotmentId", rec.ID).
				Str("roomNumber", rec.AllottedRoomNumber).
				Str("hostelType", string(rec.AllottedHostelType)).
				Msg("Allotment record references unknown room, skipping")
			continue
		}

		bed := room.FindBed(rec.AllottedBedID)
		if bed == nil {
			logger.Warn().
				Int64("allotmentId", rec.ID).
				Str("roomNumber", rec.AllottedRoomNumber).
				Str("bedId", rec.AllottedBedID).
				Msg("Allotment record references unknown bed, skipping")
			continue
		}

		if !bed.IsFree() {
			logger.Warn().
				Int64("allotmentId", rec.ID).
				Str("roomNumber", rec.AllottedRoomNumber).
				Str("bedId", rec.AllottedBedID).
				Msg("Bed already occupied by an earlier record, skipping duplicate")
			continue
		}

		bed.Occupant = &models.Occupant{
			StudentProfileID: rec.StudentProfileID,
			RollNumber:       rec.RollNumber,
			SGPA:             rec.SGPA,
		}

		if rec.StudentProfileID > 0 {
			excluded[rec.StudentProfileID] = true
		} else {
			logger.Warn().
				Int64("allotmentId", rec.ID).
				Str("roomNumber", rec.AllottedRoomNumber).
				Str("bedId", rec.AllottedBedID).
				Msg("Orphan allotment record: bed kept occupied, student not excluded")
		}
	}

	return snap, excluded
}

// findRoom returns the snapshot room with the given identity, or nil
func (s *Snapshot) findRoom(hostelType models.HostelType, roomNumber string) *models.Room {
	for i := range s.Rooms {
		if s.Rooms[i].HostelType == hostelType && s.Rooms[i].RoomNumber == roomNumber {
			return &s.Rooms[i]
		}
	}
	return nil
}

// RemainingCapacity is the global ceiling for one run: the sum over the
// hostel's rooms of capacity minus current occupancy.
func (s *Snapshot) RemainingCapacity(hostelType models.HostelType) int {
	total := 0
	for i := range s.Rooms {
		if s.Rooms[i].HostelType == hostelType {
			total += s.Rooms[i].FreeBedCount()
		}
	}
	return total
}

// findFreeBed scans rooms of the given hostel and room type in catalog order
// and returns the first room with a free bed, or nil. All beds in a room are
// equivalent, so first-free wins.
func (s *Snapshot) findFreeBed(hostelType models.HostelType, roomType models.RoomType) (*models.Room, *models.Bed) {
	for i := range s.Rooms {
		room := &s.Rooms[i]
		if room.HostelType != hostelType || room.RoomType != roomType {
			continue
		}
		if room.OccupiedBedCount() >= room.Capacity {
			continue
		}
		if bed := room.FirstFreeBed(); bed != nil {
			return room, bed
		}
	}
	return nil, nil
}

// deepCopyRooms copies rooms including their bed slices and occupants
func deepCopyRooms(rooms []models.Room) []models.Room {
	out := make([]models.Room, len(rooms))
	for i, r := range rooms {
		out[i] = r
		out[i].Beds = make([]models.Bed, len(r.Beds))
		for j, b := range r.Beds {
			out[i].Beds[j] = b
			if b.Occupant != nil {
				occ := *b.Occupant
				out[i].Beds[j].Occupant = &occ
			}
		}
	}
	return out
}
