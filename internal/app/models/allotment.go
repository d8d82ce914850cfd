package models

import (
	"time"
)

// AllotmentRecord defines the allotment model based on the 'allotments' table.
// Academic and identity fields are a denormalized snapshot taken at allotment
// time, not a live reference to the profile: the record stays historically
// accurate even if the profile is edited later.
type AllotmentRecord struct {
	ID               int64  `json:"id" db:"id" example:"1"`                                  // Unique identifier for the allotment record
	StudentProfileID int64  `json:"studentProfileId" db:"student_profile_id" example:"42"`   // One allotment per profile (unique)
	UserID           int64  `json:"userId" db:"user_id" example:"5"`                         // Snapshot of the associated user account ID
	FullName         string `json:"fullName" db:"full_name" example:"Riya Sen"`              // Snapshot of the student's name
	RollNumber       string `json:"rollNumber" db:"roll_number" example:"CSE/20/041"`        // Snapshot of the roll number
	CourseName       string `json:"courseName" db:"course_name" example:"B.Tech CSE"`        // Snapshot of the course
	Semester         int    `json:"semester" db:"semester" example:"4"`                      // Snapshot of the semester
	SGPA             float64 `json:"sgpa" db:"sgpa" example:"8.55"`                          // Ranking score at allotment time

	AllottedRoomNumber string     `json:"allottedRoomNumber" db:"allotted_room_number" example:"101"` // (roomNumber, bedId) is unique
	AllottedBedID      string     `json:"allottedBedId" db:"allotted_bed_id" example:"B"`
	AllottedRoomType   RoomType   `json:"allottedRoomType" db:"allotted_room_type" example:"TRIPLE"`
	AllottedHostelType HostelType `json:"allottedHostelType" db:"allotted_hostel_type" example:"GIRLS"`
	AllottedHostelName string     `json:"allottedHostelName" db:"allotted_hostel_name" example:"Kalpana Hall"`

	// Fee fields are mutated by the external payment collaborator only
	HostelFeeStatus FeeStatus `json:"hostelFeeStatus" db:"hostel_fee_status" example:"PENDING"`
	MessFeeStatus   FeeStatus `json:"messFeeStatus" db:"mess_fee_status" example:"PENDING"`

	AllotmentDate time.Time `json:"allotmentDate" db:"allotment_date" example:"2026-07-15T09:30:00Z"`
}
