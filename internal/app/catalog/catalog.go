package catalog

import (
	"fmt"
	"os"
	"strings"

	"gopkg.in/yaml.v3"

	"github.com/adityar/hostelhub/internal/app/models"
	"github.com/adityar/hostelhub/internal/pkg/apperrors"
	"github.com/adityar/hostelhub/internal/pkg/logger"
)

// Catalog is the static, ordered room inventory. It is loaded once at
// startup and treated as read-only reference data; allotment runs work on
// deep copies, never on the catalog itself.
type Catalog struct {
	Rooms []models.Room
}

// catalogFile is the on-disk YAML shape
type catalogFile struct {
	Rooms []roomEntry `yaml:"rooms"`
}

type roomEntry struct {
	HostelType string   `yaml:"hostelType"`
	RoomNumber string   `yaml:"roomNumber"`
	RoomType   string   `yaml:"roomType"`
	Capacity   int      `yaml:"capacity"`
	Floor      int      `yaml:"floor"`
	HostelName string   `yaml:"hostelName"`
	Beds       []string `yaml:"beds"`
}

// Load reads and validates the room catalog from a YAML file. An unreadable
// or unparsable file is fatal; a single malformed room entry is logged and
// skipped so catalog drift cannot take the whole service down.
func Load(path string) (*Catalog, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, fmt.Errorf("%w: %v", apperrors.ErrCatalogUnreadable, err)
	}

	var file catalogFile
	if err := yaml.Unmarshal(data, &file); err != nil {
		return nil, fmt.Errorf("%w: %v", apperrors.ErrCatalogInvalid, err)
	}

	return FromEntries(file.Rooms)
}

// FromEntries validates raw entries into a Catalog. Split from Load so tests
// can build catalogs without touching the filesystem.
func FromEntries(entries []roomEntry) (*Catalog, error) {
	cat := &Catalog{}
	seenRooms := make(map[string]bool)

	for _, e := range entries {
		room, err := e.toRoom()
		if err != nil {
			logger.Warn().
				Str("roomNumber", e.RoomNumber).
				Str("hostelType", e.HostelType).
				Err(err).
				Msg("Skipping invalid room catalog entry")
			continue
		}

		key := string(room.HostelType) + "/" + room.RoomNumber
		if seenRooms[key] {
			logger.Warn().
				Str("roomNumber", room.RoomNumber).
				Str("hostelType", string(room.HostelType)).
				Msg("Skipping duplicate room catalog entry")
			continue
		}
		seenRooms[key] = true

		cat.Rooms = append(cat.Rooms, room)
	}

	if len(cat.Rooms) == 0 {
		return nil, fmt.Errorf("%w: no valid rooms", apperrors.ErrCatalogInvalid)
	}

	return cat, nil
}

// toRoom validates one entry and converts it to a domain room
func (e roomEntry) toRoom() (models.Room, error) {
	hostelType := models.HostelType(strings.ToUpper(strings.TrimSpace(e.HostelType)))
	if !models.IsValidHostelType(hostelType) {
		return models.Room{}, fmt.Errorf("unknown hostel type %q", e.HostelType)
	}

	roomType := models.RoomType(strings.ToUpper(strings.TrimSpace(e.RoomType)))
	if !models.IsValidRoomType(roomType) {
		return models.Room{}, fmt.Errorf("unknown room type %q", e.RoomType)
	}

	if strings.TrimSpace(e.RoomNumber) == "" {
		return models.Room{}, fmt.Errorf("room number is empty")
	}

	if e.Capacity < 1 {
		return models.Room{}, fmt.Errorf("capacity must be at least 1, got %d", e.Capacity)
	}

	if len(e.Beds) != e.Capacity {
		return models.Room{}, fmt.Errorf("bed count %d does not match capacity %d", len(e.Beds), e.Capacity)
	}

	beds := make([]models.Bed, 0, len(e.Beds))
	seen := make(map[string]bool)
	for _, bedID := range e.Beds {
		bedID = strings.TrimSpace(bedID)
		if bedID == "" {
			return models.Room{}, fmt.Errorf("bed ID is empty")
		}
		if seen[bedID] {
			return models.Room{}, fmt.Errorf("duplicate bed ID %q", bedID)
		}
		seen[bedID] = true
		beds = append(beds, models.Bed{BedID: bedID})
	}

	return models.Room{
		HostelType: hostelType,
		RoomNumber: strings.TrimSpace(e.RoomNumber),
		RoomType:   roomType,
		Capacity:   e.Capacity,
		Floor:      e.Floor,
		HostelName: e.HostelName,
		Beds:       beds,
	}, nil
}

// RoomsForHostel returns the catalog rooms of one hostel type, in catalog order
func (c *Catalog) RoomsForHostel(hostelType models.HostelType) []models.Room {
	var rooms []models.Room
	for _, r := range c.Rooms {
		if r.HostelType == hostelType {
			rooms = append(rooms, r)
		}
	}
	return rooms
}
