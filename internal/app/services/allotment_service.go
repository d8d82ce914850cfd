package services

import (
	"context"
	"fmt"
	"sync"
	"time"

	"github.com/google/uuid"
	"github.com/rs/zerolog"

	"github.com/adityar/hostelhub/internal/app/allocation"
	"github.com/adityar/hostelhub/internal/app/catalog"
	"github.com/adityar/hostelhub/internal/app/models"
	"github.com/adityar/hostelhub/internal/app/models/dto"
	"github.com/adityar/hostelhub/internal/pkg/apperrors"
	"github.com/adityar/hostelhub/internal/pkg/helpers"
)

// AllotmentStore is the durable allotment-record collaborator
type AllotmentStore interface {
	FindAll(ctx context.Context) ([]*models.AllotmentRecord, error)
	FindPage(ctx context.Context, offset uint64, limit int) ([]*models.AllotmentRecord, int64, error)
	GetByProfileID(ctx context.Context, profileID int64) (*models.AllotmentRecord, error)
	Create(ctx context.Context, record *models.AllotmentRecord) error
	UpdateFeeStatus(ctx context.Context, profileID int64, hostelFee, messFee *models.FeeStatus) error
}

// ProfileStore is the durable student-profile collaborator
type ProfileStore interface {
	FindEligibleUnallotted(ctx context.Context, excludedIDs []int64) ([]*models.StudentProfile, error)
	UpdateAfterAllotment(ctx context.Context, profileID int64, roomNumber, bedID, hostelName string) error
}

// AllotmentService runs allotment passes and serves allotment queries
type AllotmentService interface {
	RunAllotment(ctx context.Context) (*dto.AllotmentRunResponse, error)
	Availability(ctx context.Context) (*dto.AvailabilityResponse, error)
	ListAllotments(ctx context.Context, page, size int) (*dto.AllotmentListResponse, error)
	GetAllotment(ctx context.Context, profileID int64) (*models.AllotmentRecord, error)
	UpdateFees(ctx context.Context, profileID int64, req *dto.UpdateFeesRequest) error
}

// CommitResult is the per-entry outcome of the commit stage. Entries are
// written without a cross-entry transaction, so a failed entry leaves its
// siblings committed; the caller gets the whole list and decides what to
// report.
type CommitResult struct {
	Assignment allocation.Assignment
	Err        error
}

type allotmentService struct {
	catalog    *catalog.Catalog
	allotments AllotmentStore
	profiles   ProfileStore
	policy     allocation.Policy
	logger     zerolog.Logger
}

// NewAllotmentService creates a new allotment service instance
func NewAllotmentService(cat *catalog.Catalog, allotments AllotmentStore, profiles ProfileStore, policy allocation.Policy, logger zerolog.Logger) AllotmentService {
	return &allotmentService{
		catalog:    cat,
		allotments: allotments,
		profiles:   profiles,
		policy:     policy,
		logger:     logger,
	}
}

// RunAllotment executes one allotment pass: rebuild the occupancy snapshot
// from durable state, rank the candidate pool, run the two-pass engine, and
// commit the plan. An empty candidate pool is a success with zero allotted.
//
// There is no mutual exclusion between overlapping invocations; the
// storage-level uniqueness constraints turn a concurrent-run race into
// rejected writes for the loser. Production deployments should serialize
// triggers externally.
func (s *allotmentService) RunAllotment(ctx context.Context) (*dto.AllotmentRunResponse, error) {
	runID := uuid.New().String()
	lgr := s.logger.With().Str("runId", runID).Logger()

	records, err := s.allotments.FindAll(ctx)
	if err != nil {
		return nil, fmt.Errorf("error loading existing allotments: %w", err)
	}

	snap, excluded := allocation.BuildSnapshot(s.catalog.Rooms, records)

	excludedIDs := make([]int64, 0, len(excluded))
	for id := range excluded {
		excludedIDs = append(excludedIDs, id)
	}

	profiles, err := s.profiles.FindEligibleUnallotted(ctx, excludedIDs)
	if err != nil {
		return nil, fmt.Errorf("error loading eligible profiles: %w", err)
	}

	candidates := allocation.SelectCandidates(profiles, excluded, s.policy)
	lgr.Info().
		Int("candidates", len(candidates)).
		Int("remainingCapacity", snap.RemainingCapacity(s.policy.HostelType)).
		Msg("Starting allotment run")

	plan := allocation.Run(snap, candidates, s.policy)

	results := s.commitPlan(ctx, plan)

	resp := &dto.AllotmentRunResponse{
		RunID:            runID,
		AllottedStudents: []dto.AllottedStudentResponse{},
	}
	for _, res := range results {
		if res.Err != nil {
			lgr.Error().
				Err(res.Err).
				Int64("studentProfileId", res.Assignment.Candidate.Profile.ID).
				Str("roomNumber", res.Assignment.RoomNumber).
				Str("bedId", res.Assignment.BedID).
				Msg("Commit failed for assignment, sibling entries unaffected")
			resp.Failures = append(resp.Failures, dto.CommitFailureResponse{
				StudentProfileID: res.Assignment.Candidate.Profile.ID,
				RollNumber:       res.Assignment.Candidate.Profile.RollNumber,
				Reason:           res.Err.Error(),
			})
			continue
		}
		resp.AllottedStudents = append(resp.AllottedStudents, dto.AllottedStudentResponse{
			StudentProfileID: res.Assignment.Candidate.Profile.ID,
			FullName:         res.Assignment.Candidate.Profile.FullName,
			RollNumber:       res.Assignment.Candidate.Profile.RollNumber,
			SGPA:             res.Assignment.Candidate.AverageSGPA,
			RoomNumber:       res.Assignment.RoomNumber,
			BedID:            res.Assignment.BedID,
			RoomType:         res.Assignment.RoomType,
		})
	}
	resp.AllottedCount = len(resp.AllottedStudents)
	resp.Availability = toAvailabilityResponse(allocation.Report(snap, s.policy.HostelType))

	lgr.Info().
		Int("allotted", resp.AllottedCount).
		Int("failed", len(resp.Failures)).
		Int("unassigned", len(plan.Unassigned)).
		Msg("Allotment run finished")

	return resp, nil
}

// commitPlan persists the assignment plan: one allotment record plus one
// profile update per entry, all entries dispatched concurrently and jointly
// awaited. Entries are independent; there is no rollback across them.
func (s *allotmentService) commitPlan(ctx context.Context, plan *allocation.Plan) []CommitResult {
	results := make([]CommitResult, len(plan.Assignments))

	var wg sync.WaitGroup
	for i, a := range plan.Assignments {
		wg.Add(1)
		go func(i int, a allocation.Assignment) {
			defer wg.Done()
			results[i] = CommitResult{Assignment: a, Err: s.commitOne(ctx, a)}
		}(i, a)
	}
	wg.Wait()

	return results
}

// commitOne writes the two related records for one assignment
func (s *allotmentService) commitOne(ctx context.Context, a allocation.Assignment) error {
	record := &models.AllotmentRecord{
		StudentProfileID:   a.Candidate.Profile.ID,
		UserID:             a.Candidate.Profile.UserID,
		FullName:           a.Candidate.Profile.FullName,
		RollNumber:         a.Candidate.Profile.RollNumber,
		CourseName:         a.Candidate.Profile.CourseName,
		Semester:           a.Candidate.Profile.Semester,
		SGPA:               a.Candidate.AverageSGPA,
		AllottedRoomNumber: a.RoomNumber,
		AllottedBedID:      a.BedID,
		AllottedRoomType:   a.RoomType,
		AllottedHostelType: s.policy.HostelType,
		AllottedHostelName: a.HostelName,
		HostelFeeStatus:    models.FeePending,
		MessFeeStatus:      models.FeePending,
		AllotmentDate:      time.Now(),
	}

	if err := s.allotments.Create(ctx, record); err != nil {
		return err
	}

	if err := s.profiles.UpdateAfterAllotment(ctx, a.Candidate.Profile.ID, a.RoomNumber, a.BedID, a.HostelName); err != nil {
		// The record exists but the profile stamp is missing. The profile
		// stays excluded on the next run via its allotment record, so this
		// only degrades the profile view, not the booking invariants.
		return fmt.Errorf("allotment record created but profile update failed: %w", err)
	}

	return nil
}

// Availability rebuilds a snapshot from current durable state and reports
// aggregate occupancy. No caching between calls.
func (s *allotmentService) Availability(ctx context.Context) (*dto.AvailabilityResponse, error) {
	records, err := s.allotments.FindAll(ctx)
	if err != nil {
		return nil, fmt.Errorf("error loading existing allotments: %w", err)
	}

	snap, _ := allocation.BuildSnapshot(s.catalog.Rooms, records)
	resp := toAvailabilityResponse(allocation.Report(snap, s.policy.HostelType))
	return &resp, nil
}

// ListAllotments retrieves one page of allotment records
func (s *allotmentService) ListAllotments(ctx context.Context, page, size int) (*dto.AllotmentListResponse, error) {
	offset, limit := helpers.CalculateOffsetLimit(page, size)

	records, total, err := s.allotments.FindPage(ctx, offset, limit)
	if err != nil {
		return nil, fmt.Errorf("error listing allotment records: %w", err)
	}

	if records == nil {
		records = []*models.AllotmentRecord{}
	}

	return &dto.AllotmentListResponse{
		Allotments: records,
		Pagination: helpers.NewPaginationInfo(total, page, limit),
	}, nil
}

// GetAllotment retrieves the allotment record of one student profile
func (s *allotmentService) GetAllotment(ctx context.Context, profileID int64) (*models.AllotmentRecord, error) {
	if profileID <= 0 {
		return nil, fmt.Errorf("%w: invalid student profile ID", apperrors.ErrValidationFailed)
	}

	record, err := s.allotments.GetByProfileID(ctx, profileID)
	if err != nil {
		return nil, err
	}
	return record, nil
}

// UpdateFees mutates fee-status fields on behalf of the payment collaborator
func (s *allotmentService) UpdateFees(ctx context.Context, profileID int64, req *dto.UpdateFeesRequest) error {
	if profileID <= 0 {
		return fmt.Errorf("%w: invalid student profile ID", apperrors.ErrValidationFailed)
	}
	if req == nil || (req.HostelFeeStatus == nil && req.MessFeeStatus == nil) {
		return fmt.Errorf("%w: no fee status given", apperrors.ErrValidationFailed)
	}
	if req.HostelFeeStatus != nil && !models.IsValidFeeStatus(*req.HostelFeeStatus) {
		return fmt.Errorf("%w: unknown hostel fee status %q", apperrors.ErrValidationFailed, *req.HostelFeeStatus)
	}
	if req.MessFeeStatus != nil && !models.IsValidFeeStatus(*req.MessFeeStatus) {
		return fmt.Errorf("%w: unknown mess fee status %q", apperrors.ErrValidationFailed, *req.MessFeeStatus)
	}

	return s.allotments.UpdateFeeStatus(ctx, profileID, req.HostelFeeStatus, req.MessFeeStatus)
}

// toAvailabilityResponse converts the core report to its DTO
func toAvailabilityResponse(av allocation.Availability) dto.AvailabilityResponse {
	resp := dto.AvailabilityResponse{
		HostelType:    av.HostelType,
		TotalBeds:     av.TotalBeds,
		OccupiedBeds:  av.OccupiedBeds,
		AvailableBeds: av.AvailableBeds,
		ByRoomType:    make(map[models.RoomType]dto.RoomTypeAvailability),
	}
	for roomType, counts := range av.ByRoomType {
		resp.ByRoomType[roomType] = dto.RoomTypeAvailability{
			TotalBeds:     counts.TotalBeds,
			OccupiedBeds:  counts.OccupiedBeds,
			AvailableBeds: counts.AvailableBeds,
		}
	}
	return resp
}
