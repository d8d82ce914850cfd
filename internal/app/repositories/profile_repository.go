package repositories

import (
	"context"
	"fmt"

	"github.com/jackc/pgx/v5/pgxpool"

	"github.com/adityar/hostelhub/internal/app/models"
	"github.com/adityar/hostelhub/internal/pkg/apperrors"
)

const profileColumns = `
	id, user_id, full_name, roll_number, course_name, semester, sgpa_odd,
	sgpa_even, room_preference, gender, is_eligible, is_allotted,
	allotted_room_number, allotted_bed_id, allotted_hostel_name`

// ProfileRepository handles database operations for student profiles
type ProfileRepository struct {
	db *pgxpool.Pool
}

// NewProfileRepository creates a new profile repository
func NewProfileRepository(db *pgxpool.Pool) *ProfileRepository {
	return &ProfileRepository{
		db: db,
	}
}

// FindEligibleUnallotted retrieves eligible profiles that are not flagged as
// allotted and whose IDs are not in the exclusion set. Roll-number order
// keeps the input deterministic, which matters for the stable SGPA tie-break
// downstream.
func (r *ProfileRepository) FindEligibleUnallotted(ctx context.Context, excludedIDs []int64) ([]*models.StudentProfile, error) {
	query := `SELECT` + profileColumns + `
		FROM student_profiles
		WHERE is_eligible = TRUE
		  AND is_allotted = FALSE
		  AND NOT (id = ANY($1))
		ORDER BY roll_number`

	if excludedIDs == nil {
		excludedIDs = []int64{}
	}

	rows, err := r.db.Query(ctx, query, excludedIDs)
	if err != nil {
		return nil, fmt.Errorf("error retrieving eligible profiles: %w", err)
	}
	defer rows.Close()

	var profiles []*models.StudentProfile
	for rows.Next() {
		var p models.StudentProfile
		if err := rows.Scan(profileFields(&p)...); err != nil {
			return nil, fmt.Errorf("error scanning student profile: %w", err)
		}
		profiles = append(profiles, &p)
	}

	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("error reading student profiles: %w", err)
	}

	return profiles, nil
}

// UpdateAfterAllotment stamps the room, bed and hostel onto the profile and
// flips the allotted flag. Issued by the commit stage, one call per
// assignment-plan entry.
func (r *ProfileRepository) UpdateAfterAllotment(ctx context.Context, profileID int64, roomNumber, bedID, hostelName string) error {
	query := `
		UPDATE student_profiles
		SET is_allotted = TRUE,
		    allotted_room_number = $2,
		    allotted_bed_id = $3,
		    allotted_hostel_name = $4
		WHERE id = $1
	`

	cmdTag, err := r.db.Exec(ctx, query, profileID, roomNumber, bedID, hostelName)
	if err != nil {
		return fmt.Errorf("error updating profile after allotment: %w", err)
	}

	if cmdTag.RowsAffected() == 0 {
		return apperrors.ErrProfileNotFound
	}

	return nil
}

// profileFields returns scan destinations in profileColumns order
func profileFields(p *models.StudentProfile) []interface{} {
	return []interface{}{
		&p.ID,
		&p.UserID,
		&p.FullName,
		&p.RollNumber,
		&p.CourseName,
		&p.Semester,
		&p.SGPAOdd,
		&p.SGPAEven,
		&p.RoomPreference,
		&p.Gender,
		&p.IsEligible,
		&p.IsAllotted,
		&p.AllottedRoomNumber,
		&p.AllottedBedID,
		&p.AllottedHostelName,
	}
}
