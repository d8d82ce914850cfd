package models

// Occupant identifies the student occupying a bed
type Occupant struct {
	StudentProfileID int64   `json:"studentProfileId" example:"42"`
	RollNumber       string  `json:"rollNumber" example:"CSE/20/041"`
	SGPA             float64 `json:"sgpa" example:"8.75"`
}

// Bed is a single bed inside a room. A bed holds at most one occupant.
type Bed struct {
	BedID    string    `json:"bedId" example:"A"`
	Occupant *Occupant `json:"occupant,omitempty"`
}

// IsFree reports whether the bed has no occupant
func (b *Bed) IsFree() bool {
	return b.Occupant == nil
}

// Room is one room of the static catalog, identified by (hostelType, roomNumber)
type Room struct {
	HostelType HostelType `json:"hostelType" yaml:"hostelType" example:"BOYS"`
	RoomNumber string     `json:"roomNumber" yaml:"roomNumber" example:"101"`
	RoomType   RoomType   `json:"roomType" yaml:"roomType" example:"TRIPLE"`
	Capacity   int        `json:"capacity" yaml:"capacity" example:"3"`
	Floor      int        `json:"floor" yaml:"floor" example:"1"`
	HostelName string     `json:"hostelName" yaml:"hostelName" example:"Aryabhatta Hall"`
	Beds       []Bed      `json:"beds" yaml:"beds"`
}

// OccupiedBedCount is always derived from bed state, never stored,
// so the counter cannot drift from the beds themselves.
func (r *Room) OccupiedBedCount() int {
	n := 0
	for i := range r.Beds {
		if !r.Beds[i].IsFree() {
			n++
		}
	}
	return n
}

// FreeBedCount returns capacity minus current occupancy, floored at zero
func (r *Room) FreeBedCount() int {
	free := r.Capacity - r.OccupiedBedCount()
	if free < 0 {
		return 0
	}
	return free
}

// FindBed returns the bed with the given ID, or nil
func (r *Room) FindBed(bedID string) *Bed {
	for i := range r.Beds {
		if r.Beds[i].BedID == bedID {
			return &r.Beds[i]
		}
	}
	return nil
}

// FirstFreeBed returns the first bed without an occupant in catalog order, or nil
func (r *Room) FirstFreeBed() *Bed {
	for i := range r.Beds {
		if r.Beds[i].IsFree() {
			return &r.Beds[i]
		}
	}
	return nil
}
