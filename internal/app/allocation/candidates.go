package allocation

import (
	"sort"

	"github.com/adityar/hostelhub/internal/app/models"
)

// Policy fixes the parameters of one allotment run: which hostel is being
// filled and which room type absorbs candidates whose preference cannot be
// satisfied.
type Policy struct {
	HostelType       models.HostelType
	FallbackRoomType models.RoomType
}

// Candidate is one ranked student in an allotment run
type Candidate struct {
	Profile     models.StudentProfile
	AverageSGPA float64
}

// SelectCandidates computes the ranked candidate list for one run.
//
// A profile makes the list when it is eligible, not already allotted (by
// flag or by the exclusion set from the snapshot), and in the hostel's
// gender cohort. A profile without a gender cannot be cohort-matched and is
// excluded rather than errored. The result is sorted descending by average
// SGPA; the sort is stable, so ties keep their input order.
func SelectCandidates(profiles []*models.StudentProfile, excluded map[int64]bool, policy Policy) []Candidate {
	cohort := models.CohortGender(policy.HostelType)

	var candidates []Candidate
	for _, p := range profiles {
		if p == nil || !p.IsEligible || p.IsAllotted {
			continue
		}
		if excluded[p.ID] {
			continue
		}
		if p.Gender != cohort {
			continue
		}
		candidates = append(candidates, Candidate{
			Profile:     *p,
			AverageSGPA: p.AverageSGPA(),
		})
	}

	sortByRank(candidates)
	return candidates
}

// sortByRank orders candidates descending by average SGPA, stable on ties
func sortByRank(candidates []Candidate) {
	sort.SliceStable(candidates, func(i, j int) bool {
		return candidates[i].AverageSGPA > candidates[j].AverageSGPA
	})
}
