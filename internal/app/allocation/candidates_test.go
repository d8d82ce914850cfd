package allocation

import (
	"testing"

	"github.com/adityar/hostelhub/internal/app/models"
)

func TestSelectCandidatesFilters(t *testing.T) {
	eligible := testProfile(1, "R-001", models.RoomTriple, 8.0, 8.0)

	ineligible := testProfile(2, "R-002", models.RoomTriple, 8.0, 8.0)
	ineligible.IsEligible = false

	alreadyAllotted := testProfile(3, "R-003", models.RoomTriple, 8.0, 8.0)
	alreadyAllotted.IsAllotted = true

	recorded := testProfile(4, "R-004", models.RoomTriple, 8.0, 8.0)

	wrongCohort := testProfile(5, "R-005", models.RoomTriple, 8.0, 8.0)
	wrongCohort.Gender = models.GenderFemale

	noGender := testProfile(6, "R-006", models.RoomTriple, 8.0, 8.0)
	noGender.Gender = ""

	candidates := SelectCandidates(
		[]*models.StudentProfile{eligible, ineligible, alreadyAllotted, recorded, wrongCohort, noGender, nil},
		map[int64]bool{4: true},
		testPolicy(),
	)

	if len(candidates) != 1 {
		t.Fatalf("Expected 1 candidate, got %d", len(candidates))
	}
	if candidates[0].Profile.ID != 1 {
		t.Errorf("Expected candidate 1, got %d", candidates[0].Profile.ID)
	}
}

func TestSelectCandidatesRanksBySGPADescending(t *testing.T) {
	candidates := SelectCandidates([]*models.StudentProfile{
		testProfile(1, "R-001", models.RoomTriple, 6.0, 6.0),
		testProfile(2, "R-002", models.RoomTriple, 9.0, 9.0),
		testProfile(3, "R-003", models.RoomTriple, 7.5, 7.5),
	}, map[int64]bool{}, testPolicy())

	want := []int64{2, 3, 1}
	for i, id := range want {
		if candidates[i].Profile.ID != id {
			t.Fatalf("Expected rank order %v, got %+v", want, candidates)
		}
	}
}

func TestSelectCandidatesTieKeepsInputOrder(t *testing.T) {
	candidates := SelectCandidates([]*models.StudentProfile{
		testProfile(1, "R-001", models.RoomTriple, 8.0, 8.0),
		testProfile(2, "R-002", models.RoomTriple, 8.0, 8.0),
		testProfile(3, "R-003", models.RoomTriple, 8.0, 8.0),
	}, map[int64]bool{}, testPolicy())

	want := []int64{1, 2, 3}
	for i, id := range want {
		if candidates[i].Profile.ID != id {
			t.Fatalf("Expected tied candidates in input order %v, got %+v", want, candidates)
		}
	}
}

func TestSelectCandidatesGirlsCohort(t *testing.T) {
	girl := testProfile(1, "R-001", models.RoomTriple, 8.0, 8.0)
	girl.Gender = models.GenderFemale
	boy := testProfile(2, "R-002", models.RoomTriple, 9.0, 9.0)

	policy := Policy{HostelType: models.HostelGirls, FallbackRoomType: models.RoomTriple}
	candidates := SelectCandidates([]*models.StudentProfile{girl, boy}, map[int64]bool{}, policy)

	if len(candidates) != 1 || candidates[0].Profile.ID != 1 {
		t.Errorf("Expected only the female profile for the girls hostel, got %+v", candidates)
	}
}
