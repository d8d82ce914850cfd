package models

// HostelType partitions the room catalog by resident cohort
type HostelType string

const (
	HostelBoys  HostelType = "BOYS"
	HostelGirls HostelType = "GIRLS"
)

// RoomType defines the kind of room a bed belongs to
type RoomType string

const (
	RoomSingle RoomType = "SINGLE"
	RoomTriple RoomType = "TRIPLE"
)

// Gender defines the student gender used for cohort matching
type Gender string

const (
	GenderMale   Gender = "MALE"
	GenderFemale Gender = "FEMALE"
)

// FeeStatus defines the payment state of a fee on an allotment record
type FeeStatus string

const (
	FeePending FeeStatus = "PENDING"
	FeePaid    FeeStatus = "PAID"
	FeeWaived  FeeStatus = "WAIVED"
)

// RoleType defines the user role type carried in JWT claims
type RoleType string

const (
	RoleStudent      RoleType = "STUDENT"
	RoleProvost      RoleType = "PROVOST"
	RoleChiefProvost RoleType = "CHIEF_PROVOST"
)

// IsValidRoomType reports whether t is a known room type
func IsValidRoomType(t RoomType) bool {
	return t == RoomSingle || t == RoomTriple
}

// IsValidHostelType reports whether t is a known hostel type
func IsValidHostelType(t HostelType) bool {
	return t == HostelBoys || t == HostelGirls
}

// IsValidFeeStatus reports whether s is a known fee status
func IsValidFeeStatus(s FeeStatus) bool {
	return s == FeePending || s == FeePaid || s == FeeWaived
}

// CohortGender returns the gender cohort a hostel type admits
func CohortGender(t HostelType) Gender {
	if t == HostelGirls {
		return GenderFemale
	}
	return GenderMale
}
