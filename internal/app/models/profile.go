package models

// StudentProfile defines the student profile model based on the 'student_profiles' table
type StudentProfile struct {
	ID             int64    `json:"id" db:"id" example:"1"`                              // Unique identifier for the profile record
	UserID         int64    `json:"userId" db:"user_id" example:"5"`                     // ID of the associated user account (external auth collaborator)
	FullName       string   `json:"fullName" db:"full_name" example:"Riya Sen"`          // Student's full name
	RollNumber     string   `json:"rollNumber" db:"roll_number" example:"CSE/20/041"`    // University roll number
	CourseName     string   `json:"courseName" db:"course_name" example:"B.Tech CSE"`    // Enrolled course
	Semester       int      `json:"semester" db:"semester" example:"4"`                  // Current semester
	SGPAOdd        float64  `json:"sgpaOdd" db:"sgpa_odd" example:"8.2"`                 // SGPA of the latest odd semester (0 when absent)
	SGPAEven       float64  `json:"sgpaEven" db:"sgpa_even" example:"8.9"`               // SGPA of the latest even semester (0 when absent)
	RoomPreference RoomType `json:"roomPreference" db:"room_preference" example:"SINGLE"` // Requested room type
	Gender         Gender   `json:"gender" db:"gender" example:"FEMALE"`                 // Cohort attribute; may be empty on incomplete profiles
	IsEligible     bool     `json:"isEligible" db:"is_eligible" example:"true"`          // Set by the external result-verification collaborator
	IsAllotted     bool     `json:"isAllotted" db:"is_allotted" example:"false"`         // Flipped by the commit stage

	// Allotment stamps, written by the commit stage (nullable before allotment)
	AllottedRoomNumber *string `json:"allottedRoomNumber,omitempty" db:"allotted_room_number"`
	AllottedBedID      *string `json:"allottedBedId,omitempty" db:"allotted_bed_id"`
	AllottedHostelName *string `json:"allottedHostelName,omitempty" db:"allotted_hostel_name"`
}

// AverageSGPA is the derived ranking score. When both semester SGPAs are
// positive it is their arithmetic mean; when only one is positive it is that
// value alone (a missing semester must not halve the score); otherwise zero.
func (p *StudentProfile) AverageSGPA() float64 {
	switch {
	case p.SGPAOdd > 0 && p.SGPAEven > 0:
		return (p.SGPAOdd + p.SGPAEven) / 2
	case p.SGPAOdd > 0:
		return p.SGPAOdd
	case p.SGPAEven > 0:
		return p.SGPAEven
	default:
		return 0
	}
}
