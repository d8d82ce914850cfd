package services

import (
	"context"
	"errors"
	"sync"
	"testing"

	"github.com/rs/zerolog"

	"github.com/adityar/hostelhub/internal/app/allocation"
	"github.com/adityar/hostelhub/internal/app/catalog"
	"github.com/adityar/hostelhub/internal/app/models"
	"github.com/adityar/hostelhub/internal/app/models/dto"
	"github.com/adityar/hostelhub/internal/pkg/apperrors"
)

// fakeAllotmentStore mimics the storage uniqueness constraints in memory so
// service tests exercise the same failure surface as the real repository.
type fakeAllotmentStore struct {
	mu      sync.Mutex
	records []*models.AllotmentRecord
	nextID  int64
	failFor map[int64]error
}

func newFakeAllotmentStore() *fakeAllotmentStore {
	return &fakeAllotmentStore{failFor: make(map[int64]error)}
}

func (f *fakeAllotmentStore) FindAll(ctx context.Context) ([]*models.AllotmentRecord, error) {
	f.mu.Lock()
	defer f.mu.Unlock()
	out := make([]*models.AllotmentRecord, len(f.records))
	copy(out, f.records)
	return out, nil
}

func (f *fakeAllotmentStore) FindPage(ctx context.Context, offset uint64, limit int) ([]*models.AllotmentRecord, int64, error) {
	f.mu.Lock()
	defer f.mu.Unlock()
	total := int64(len(f.records))
	start := int(offset)
	if start > len(f.records) {
		return nil, total, nil
	}
	end := start + limit
	if end > len(f.records) {
		end = len(f.records)
	}
	out := make([]*models.AllotmentRecord, end-start)
	copy(out, f.records[start:end])
	return out, total, nil
}

func (f *fakeAllotmentStore) GetByProfileID(ctx context.Context, profileID int64) (*models.AllotmentRecord, error) {
	f.mu.Lock()
	defer f.mu.Unlock()
	for _, rec := range f.records {
		if rec.StudentProfileID == profileID {
			return rec, nil
		}
	}
	return nil, apperrors.ErrAllotmentNotFound
}

func (f *fakeAllotmentStore) Create(ctx context.Context, record *models.AllotmentRecord) error {
	f.mu.Lock()
	defer f.mu.Unlock()

	if err, ok := f.failFor[record.StudentProfileID]; ok {
		return err
	}
	for _, existing := range f.records {
		if existing.StudentProfileID == record.StudentProfileID {
			return apperrors.ErrStudentAlreadyAllotted
		}
		if existing.AllottedRoomNumber == record.AllottedRoomNumber &&
			existing.AllottedBedID == record.AllottedBedID {
			return apperrors.ErrBedAlreadyTaken
		}
	}

	f.nextID++
	record.ID = f.nextID
	f.records = append(f.records, record)
	return nil
}

func (f *fakeAllotmentStore) UpdateFeeStatus(ctx context.Context, profileID int64, hostelFee, messFee *models.FeeStatus) error {
	f.mu.Lock()
	defer f.mu.Unlock()
	for _, rec := range f.records {
		if rec.StudentProfileID == profileID {
			if hostelFee != nil {
				rec.HostelFeeStatus = *hostelFee
			}
			if messFee != nil {
				rec.MessFeeStatus = *messFee
			}
			return nil
		}
	}
	return apperrors.ErrAllotmentNotFound
}

type fakeProfileStore struct {
	mu       sync.Mutex
	profiles []*models.StudentProfile
}

func (f *fakeProfileStore) FindEligibleUnallotted(ctx context.Context, excludedIDs []int64) ([]*models.StudentProfile, error) {
	f.mu.Lock()
	defer f.mu.Unlock()
	excluded := make(map[int64]bool, len(excludedIDs))
	for _, id := range excludedIDs {
		excluded[id] = true
	}
	var out []*models.StudentProfile
	for _, p := range f.profiles {
		if p.IsEligible && !p.IsAllotted && !excluded[p.ID] {
			cp := *p
			out = append(out, &cp)
		}
	}
	return out, nil
}

func (f *fakeProfileStore) UpdateAfterAllotment(ctx context.Context, profileID int64, roomNumber, bedID, hostelName string) error {
	f.mu.Lock()
	defer f.mu.Unlock()
	for _, p := range f.profiles {
		if p.ID == profileID {
			p.IsAllotted = true
			p.AllottedRoomNumber = &roomNumber
			p.AllottedBedID = &bedID
			p.AllottedHostelName = &hostelName
			return nil
		}
	}
	return apperrors.ErrProfileNotFound
}

func testCatalog(t *testing.T) *catalog.Catalog {
	t.Helper()
	return &catalog.Catalog{Rooms: []models.Room{
		{
			HostelType: models.HostelBoys,
			RoomNumber: "A-101",
			RoomType:   models.RoomSingle,
			Capacity:   1,
			HostelName: "Aravali House",
			Beds:       []models.Bed{{BedID: "B1"}},
		},
		{
			HostelType: models.HostelBoys,
			RoomNumber: "A-201",
			RoomType:   models.RoomTriple,
			Capacity:   3,
			HostelName: "Aravali House",
			Beds:       []models.Bed{{BedID: "B1"}, {BedID: "B2"}, {BedID: "B3"}},
		},
	}}
}

func testServiceProfile(id int64, roll string, pref models.RoomType, sgpa float64) *models.StudentProfile {
	return &models.StudentProfile{
		ID:             id,
		UserID:         id + 100,
		FullName:       "Student " + roll,
		RollNumber:     roll,
		CourseName:     "B.Tech CSE",
		Semester:       4,
		SGPAOdd:        sgpa,
		SGPAEven:       sgpa,
		RoomPreference: pref,
		Gender:         models.GenderMale,
		IsEligible:     true,
	}
}

func newTestService(t *testing.T, allotments *fakeAllotmentStore, profiles *fakeProfileStore) AllotmentService {
	t.Helper()
	policy := allocation.Policy{HostelType: models.HostelBoys, FallbackRoomType: models.RoomTriple}
	return NewAllotmentService(testCatalog(t), allotments, profiles, policy, zerolog.Nop())
}

func TestRunAllotmentCommitsPlan(t *testing.T) {
	allotments := newFakeAllotmentStore()
	profiles := &fakeProfileStore{profiles: []*models.StudentProfile{
		testServiceProfile(1, "R-001", models.RoomSingle, 9.0),
		testServiceProfile(2, "R-002", models.RoomTriple, 8.0),
		testServiceProfile(3, "R-003", models.RoomTriple, 7.0),
	}}
	svc := newTestService(t, allotments, profiles)

	resp, err := svc.RunAllotment(context.Background())
	if err != nil {
		t.Fatalf("Expected no error, got %v", err)
	}
	if resp.RunID == "" {
		t.Error("Expected a run ID")
	}
	if resp.AllottedCount != 3 {
		t.Fatalf("Expected 3 allotted, got %d", resp.AllottedCount)
	}
	if len(resp.Failures) != 0 {
		t.Fatalf("Expected no failures, got %+v", resp.Failures)
	}
	if len(allotments.records) != 3 {
		t.Fatalf("Expected 3 durable records, got %d", len(allotments.records))
	}

	for _, p := range profiles.profiles {
		if !p.IsAllotted {
			t.Errorf("Expected profile %d flagged allotted", p.ID)
		}
		if p.AllottedRoomNumber == nil || p.AllottedBedID == nil {
			t.Errorf("Expected profile %d stamped with room and bed", p.ID)
		}
	}

	if resp.Availability.OccupiedBeds != 3 || resp.Availability.AvailableBeds != 1 {
		t.Errorf("Expected availability 3 occupied / 1 free, got %+v", resp.Availability)
	}
}

func TestRunAllotmentSecondRunAllotsNobody(t *testing.T) {
	allotments := newFakeAllotmentStore()
	profiles := &fakeProfileStore{profiles: []*models.StudentProfile{
		testServiceProfile(1, "R-001", models.RoomSingle, 9.0),
		testServiceProfile(2, "R-002", models.RoomTriple, 8.0),
	}}
	svc := newTestService(t, allotments, profiles)

	if _, err := svc.RunAllotment(context.Background()); err != nil {
		t.Fatalf("Expected first run to succeed, got %v", err)
	}

	resp, err := svc.RunAllotment(context.Background())
	if err != nil {
		t.Fatalf("Expected second run to succeed, got %v", err)
	}
	if resp.AllottedCount != 0 {
		t.Errorf("Expected second run to allot nobody, got %d", resp.AllottedCount)
	}
	if len(allotments.records) != 2 {
		t.Errorf("Expected record count unchanged at 2, got %d", len(allotments.records))
	}
}

func TestRunAllotmentPartialCommitFailure(t *testing.T) {
	allotments := newFakeAllotmentStore()
	allotments.failFor[2] = errors.New("connection reset")

	profiles := &fakeProfileStore{profiles: []*models.StudentProfile{
		testServiceProfile(1, "R-001", models.RoomTriple, 9.0),
		testServiceProfile(2, "R-002", models.RoomTriple, 8.0),
		testServiceProfile(3, "R-003", models.RoomTriple, 7.0),
	}}
	svc := newTestService(t, allotments, profiles)

	resp, err := svc.RunAllotment(context.Background())
	if err != nil {
		t.Fatalf("Expected run to succeed despite entry failure, got %v", err)
	}

	if resp.AllottedCount != 2 {
		t.Errorf("Expected 2 committed entries, got %d", resp.AllottedCount)
	}
	if len(resp.Failures) != 1 {
		t.Fatalf("Expected 1 failure, got %d", len(resp.Failures))
	}
	if resp.Failures[0].StudentProfileID != 2 {
		t.Errorf("Expected failure for profile 2, got %d", resp.Failures[0].StudentProfileID)
	}
	if len(allotments.records) != 2 {
		t.Errorf("Expected sibling entries to stay committed, got %d records", len(allotments.records))
	}
}

func TestRunAllotmentEmptyPool(t *testing.T) {
	allotments := newFakeAllotmentStore()
	profiles := &fakeProfileStore{}
	svc := newTestService(t, allotments, profiles)

	resp, err := svc.RunAllotment(context.Background())
	if err != nil {
		t.Fatalf("Expected empty pool to be a success, got %v", err)
	}
	if resp.AllottedCount != 0 || len(resp.Failures) != 0 {
		t.Errorf("Expected zero allotted and zero failures, got %+v", resp)
	}
}

func TestAvailabilityReflectsDurableState(t *testing.T) {
	allotments := newFakeAllotmentStore()
	allotments.records = append(allotments.records, &models.AllotmentRecord{
		ID:                 1,
		StudentProfileID:   10,
		RollNumber:         "R-010",
		AllottedRoomNumber: "A-201",
		AllottedBedID:      "B1",
		AllottedRoomType:   models.RoomTriple,
		AllottedHostelType: models.HostelBoys,
		AllottedHostelName: "Aravali House",
	})
	svc := newTestService(t, allotments, &fakeProfileStore{})

	resp, err := svc.Availability(context.Background())
	if err != nil {
		t.Fatalf("Expected no error, got %v", err)
	}
	if resp.TotalBeds != 4 || resp.OccupiedBeds != 1 || resp.AvailableBeds != 3 {
		t.Errorf("Expected 4/1/3, got %d/%d/%d", resp.TotalBeds, resp.OccupiedBeds, resp.AvailableBeds)
	}
	if resp.ByRoomType[models.RoomTriple].OccupiedBeds != 1 {
		t.Errorf("Expected 1 occupied triple bed, got %+v", resp.ByRoomType)
	}
}

func TestListAllotmentsPaginates(t *testing.T) {
	allotments := newFakeAllotmentStore()
	for i := int64(1); i <= 15; i++ {
		allotments.records = append(allotments.records, &models.AllotmentRecord{
			ID:               i,
			StudentProfileID: i,
		})
	}
	svc := newTestService(t, allotments, &fakeProfileStore{})

	resp, err := svc.ListAllotments(context.Background(), 2, 10)
	if err != nil {
		t.Fatalf("Expected no error, got %v", err)
	}
	if len(resp.Allotments) != 5 {
		t.Errorf("Expected 5 records on page 2, got %d", len(resp.Allotments))
	}
	if resp.Pagination.TotalItems != 15 || resp.Pagination.TotalPages != 2 {
		t.Errorf("Expected 15 items over 2 pages, got %+v", resp.Pagination)
	}
	if resp.Pagination.CurrentPage != 2 {
		t.Errorf("Expected current page 2, got %d", resp.Pagination.CurrentPage)
	}
}

func TestGetAllotment(t *testing.T) {
	allotments := newFakeAllotmentStore()
	allotments.records = append(allotments.records, &models.AllotmentRecord{
		ID:                 1,
		StudentProfileID:   7,
		AllottedRoomNumber: "A-201",
		AllottedBedID:      "B1",
	})
	svc := newTestService(t, allotments, &fakeProfileStore{})

	rec, err := svc.GetAllotment(context.Background(), 7)
	if err != nil {
		t.Fatalf("Expected no error, got %v", err)
	}
	if rec.AllottedRoomNumber != "A-201" || rec.AllottedBedID != "B1" {
		t.Errorf("Expected record for room A-201 bed B1, got %+v", rec)
	}

	if _, err := svc.GetAllotment(context.Background(), 99); !errors.Is(err, apperrors.ErrAllotmentNotFound) {
		t.Errorf("Expected ErrAllotmentNotFound, got %v", err)
	}
	if _, err := svc.GetAllotment(context.Background(), 0); !errors.Is(err, apperrors.ErrValidationFailed) {
		t.Errorf("Expected validation error for bad profile ID, got %v", err)
	}
}

func TestUpdateFeesValidation(t *testing.T) {
	allotments := newFakeAllotmentStore()
	svc := newTestService(t, allotments, &fakeProfileStore{})
	ctx := context.Background()

	if err := svc.UpdateFees(ctx, 0, &dto.UpdateFeesRequest{}); !errors.Is(err, apperrors.ErrValidationFailed) {
		t.Errorf("Expected validation error for bad profile ID, got %v", err)
	}
	if err := svc.UpdateFees(ctx, 1, &dto.UpdateFeesRequest{}); !errors.Is(err, apperrors.ErrValidationFailed) {
		t.Errorf("Expected validation error for empty request, got %v", err)
	}

	bad := models.FeeStatus("LATER")
	if err := svc.UpdateFees(ctx, 1, &dto.UpdateFeesRequest{HostelFeeStatus: &bad}); !errors.Is(err, apperrors.ErrValidationFailed) {
		t.Errorf("Expected validation error for unknown status, got %v", err)
	}
}

func TestUpdateFeesAppliesPartialUpdate(t *testing.T) {
	allotments := newFakeAllotmentStore()
	allotments.records = append(allotments.records, &models.AllotmentRecord{
		ID:               1,
		StudentProfileID: 7,
		HostelFeeStatus:  models.FeePending,
		MessFeeStatus:    models.FeePending,
	})
	svc := newTestService(t, allotments, &fakeProfileStore{})

	paid := models.FeePaid
	if err := svc.UpdateFees(context.Background(), 7, &dto.UpdateFeesRequest{HostelFeeStatus: &paid}); err != nil {
		t.Fatalf("Expected no error, got %v", err)
	}

	rec := allotments.records[0]
	if rec.HostelFeeStatus != models.FeePaid {
		t.Errorf("Expected hostel fee PAID, got %s", rec.HostelFeeStatus)
	}
	if rec.MessFeeStatus != models.FeePending {
		t.Errorf("Expected mess fee untouched, got %s", rec.MessFeeStatus)
	}

	if err := svc.UpdateFees(context.Background(), 99, &dto.UpdateFeesRequest{HostelFeeStatus: &paid}); !errors.Is(err, apperrors.ErrAllotmentNotFound) {
		t.Errorf("Expected ErrAllotmentNotFound for unknown profile, got %v", err)
	}
}
