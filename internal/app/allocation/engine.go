package allocation

import (
	"github.com/adityar/hostelhub/internal/app/models"
)

// Assignment is one computed bed placement, not yet persisted
type Assignment struct {
	Candidate  Candidate
	RoomNumber string
	BedID      string
	RoomType   models.RoomType
	HostelName string
}

// Plan is the ordered output of one engine run. Assignments are listed in
// the order they were decided; Unassigned holds candidates the run could not
// place, who stay eligible for a future run.
type Plan struct {
	Assignments []Assignment
	Unassigned  []Candidate
}

// Run executes the two-pass bed-assignment algorithm over the snapshot.
//
// Pass 1 walks single-preference candidates in rank order and places each in
// the first single room with a free bed. A candidate who cannot get a single
// bed falls through to the general queue instead of being discarded. Once
// the global remaining-capacity ceiling is hit, all remaining
// single-preference candidates are deferred to the general queue as well.
//
// The general queue is then re-sorted (stable, descending by average SGPA)
// so deferred candidates compete by rank with its original members, and
// Pass 2 back-fills it into the fallback room type until beds or the global
// ceiling run out.
//
// The snapshot is mutated as beds are claimed: a bed is marked occupied
// before the next candidate is considered, so no two candidates can be
// handed the same bed within a run.
func Run(snap *Snapshot, candidates []Candidate, policy Policy) *Plan {
	plan := &Plan{}
	remaining := snap.RemainingCapacity(policy.HostelType)
	assigned := make(map[int64]bool)
	newlyAssigned := 0

	var singleQueue, generalQueue []Candidate
	for _, c := range candidates {
		if c.Profile.RoomPreference == models.RoomSingle {
			singleQueue = append(singleQueue, c)
		} else {
			generalQueue = append(generalQueue, c)
		}
	}

	// Pass 1: satisfy single-room preferences within capacity
	for i, c := range singleQueue {
		if newlyAssigned >= remaining {
			generalQueue = append(generalQueue, singleQueue[i:]...)
			break
		}

		room, bed := snap.findFreeBed(policy.HostelType, models.RoomSingle)
		if room == nil {
			// No single beds left; the candidate is still eligible for
			// the fallback room type.
			generalQueue = append(generalQueue, c)
			continue
		}

		claimBed(bed, c)
		plan.Assignments = append(plan.Assignments, Assignment{
			Candidate:  c,
			RoomNumber: room.RoomNumber,
			BedID:      bed.BedID,
			RoomType:   room.RoomType,
			HostelName: room.HostelName,
		})
		assigned[c.Profile.ID] = true
		newlyAssigned++
	}

	// Re-establish rank order across deferred singles and original members
	sortByRank(generalQueue)

	// Pass 2: back-fill into the fallback room type
	for _, c := range generalQueue {
		if newlyAssigned >= remaining {
			if !assigned[c.Profile.ID] {
				plan.Unassigned = append(plan.Unassigned, c)
			}
			continue
		}
		if assigned[c.Profile.ID] {
			continue
		}

		room, bed := snap.findFreeBed(policy.HostelType, policy.FallbackRoomType)
		if room == nil {
			plan.Unassigned = append(plan.Unassigned, c)
			continue
		}

		claimBed(bed, c)
		plan.Assignments = append(plan.Assignments, Assignment{
			Candidate:  c,
			RoomNumber: room.RoomNumber,
			BedID:      bed.BedID,
			RoomType:   room.RoomType,
			HostelName: room.HostelName,
		})
		assigned[c.Profile.ID] = true
		newlyAssigned++
	}

	return plan
}

// claimBed marks a snapshot bed occupied by the candidate
func claimBed(bed *models.Bed, c Candidate) {
	bed.Occupant = &models.Occupant{
		StudentProfileID: c.Profile.ID,
		RollNumber:       c.Profile.RollNumber,
		SGPA:             c.AverageSGPA,
	}
}
