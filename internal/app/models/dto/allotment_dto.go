package dto

import (
	"github.com/adityar/hostelhub/internal/app/models"
)

// AllottedStudentResponse is one committed assignment in a run summary
type AllottedStudentResponse struct {
	StudentProfileID int64           `json:"studentProfileId" example:"42"`
	FullName         string          `json:"fullName" example:"Riya Sen"`
	RollNumber       string          `json:"rollNumber" example:"CSE/20/041"`
	SGPA             float64         `json:"sgpa" example:"8.55"`
	RoomNumber       string          `json:"roomNumber" example:"101"`
	BedID            string          `json:"bedId" example:"B"`
	RoomType         models.RoomType `json:"roomType" example:"TRIPLE"`
}

// CommitFailureResponse reports one assignment whose durable writes failed.
// Sibling entries are not rolled back; failed students stay eligible and are
// picked up by the next run.
type CommitFailureResponse struct {
	StudentProfileID int64  `json:"studentProfileId" example:"43"`
	RollNumber       string `json:"rollNumber" example:"CSE/20/044"`
	Reason           string `json:"reason" example:"bed is already taken"`
}

// RoomTypeAvailability is the occupancy split for one room type
type RoomTypeAvailability struct {
	TotalBeds     int `json:"totalBeds" example:"30"`
	OccupiedBeds  int `json:"occupiedBeds" example:"18"`
	AvailableBeds int `json:"availableBeds" example:"12"`
}

// AvailabilityResponse is the aggregate occupancy report for a hostel
type AvailabilityResponse struct {
	HostelType    models.HostelType                        `json:"hostelType" example:"GIRLS"`
	TotalBeds     int                                      `json:"totalBeds" example:"40"`
	OccupiedBeds  int                                      `json:"occupiedBeds" example:"22"`
	AvailableBeds int                                      `json:"availableBeds" example:"18"`
	ByRoomType    map[models.RoomType]RoomTypeAvailability `json:"byRoomType"`
}

// AllotmentRunResponse is the summary returned by the trigger endpoint
type AllotmentRunResponse struct {
	RunID            string                    `json:"runId" example:"6a6e2f9c-6f3a-4f2e-9f1e-8c1f1bb0c001"`
	AllottedCount    int                       `json:"allottedCount" example:"12"`
	AllottedStudents []AllottedStudentResponse `json:"allottedStudents"`
	Failures         []CommitFailureResponse   `json:"failures,omitempty"`
	Availability     AvailabilityResponse      `json:"availability"`
}

// AllotmentListResponse is a paginated page of allotment records
type AllotmentListResponse struct {
	Allotments []*models.AllotmentRecord `json:"allotments"`
	Pagination PaginationInfo            `json:"pagination"`
}

// UpdateFeesRequest mutates fee-status fields on an allotment record.
// Called by the external payment collaborator after order settlement.
type UpdateFeesRequest struct {
	HostelFeeStatus *models.FeeStatus `json:"hostelFeeStatus,omitempty" example:"PAID"`
	MessFeeStatus   *models.FeeStatus `json:"messFeeStatus,omitempty" example:"WAIVED"`
}
