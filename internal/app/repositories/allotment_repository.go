package repositories

import (
	"context"
	"errors"
	"fmt"

	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgxpool"

	"github.com/adityar/hostelhub/internal/app/models"
	"github.com/adityar/hostelhub/internal/pkg/apperrors"
	"github.com/adityar/hostelhub/internal/pkg/dberrors"
)

// Constraint names from migrations/002_create_allotments.sql. These two
// uniqueness constraints are the storage-level backstop against
// double-booking: even a buggy in-memory run cannot commit a duplicate bed
// or a second allotment for the same student.
const (
	constraintStudentUnique = "allotments_student_profile_id_key"
	constraintRoomBedUnique = "allotments_room_bed_key"
)

const allotmentColumns = `
	id, student_profile_id, user_id, full_name, roll_number, course_name,
	semester, sgpa, allotted_room_number, allotted_bed_id, allotted_room_type,
	allotted_hostel_type, allotted_hostel_name, hostel_fee_status,
	mess_fee_status, allotment_date`

// AllotmentRepository handles database operations for allotment records
type AllotmentRepository struct {
	db *pgxpool.Pool
}

// NewAllotmentRepository creates a new allotment repository
func NewAllotmentRepository(db *pgxpool.Pool) *AllotmentRepository {
	return &AllotmentRepository{
		db: db,
	}
}

// Create inserts one allotment record and fills in its generated ID.
// Unique violations are mapped to domain sentinels so the commit stage can
// report which half of the double-booking defense fired.
func (r *AllotmentRepository) Create(ctx context.Context, record *models.AllotmentRecord) error {
	query := `
		INSERT INTO allotments (
			student_profile_id, user_id, full_name, roll_number, course_name,
			semester, sgpa, allotted_room_number, allotted_bed_id,
			allotted_room_type, allotted_hostel_type, allotted_hostel_name,
			hostel_fee_status, mess_fee_status, allotment_date
		)
		VALUES ($1, $2, $3, $4, $5, $6, $7, $8, $9, $10, $11, $12, $13, $14, $15)
		RETURNING id
	`

	err := r.db.QueryRow(ctx, query,
		record.StudentProfileID,
		record.UserID,
		record.FullName,
		record.RollNumber,
		record.CourseName,
		record.Semester,
		record.SGPA,
		record.AllottedRoomNumber,
		record.AllottedBedID,
		record.AllottedRoomType,
		record.AllottedHostelType,
		record.AllottedHostelName,
		record.HostelFeeStatus,
		record.MessFeeStatus,
		record.AllotmentDate,
	).Scan(&record.ID)

	if err != nil {
		if dberrors.IsDuplicateConstraintError(err, constraintStudentUnique) {
			return apperrors.ErrStudentAlreadyAllotted
		}
		if dberrors.IsDuplicateConstraintError(err, constraintRoomBedUnique) {
			return apperrors.ErrBedAlreadyTaken
		}
		return fmt.Errorf("error creating allotment record: %w", err)
	}

	return nil
}

// FindAll retrieves every allotment record in insertion order
func (r *AllotmentRepository) FindAll(ctx context.Context) ([]*models.AllotmentRecord, error) {
	query := `SELECT` + allotmentColumns + ` FROM allotments ORDER BY id`

	rows, err := r.db.Query(ctx, query)
	if err != nil {
		return nil, fmt.Errorf("error retrieving allotment records: %w", err)
	}
	defer rows.Close()

	return scanAllotments(rows)
}

// FindPage retrieves one page of allotment records plus the total count
func (r *AllotmentRepository) FindPage(ctx context.Context, offset uint64, limit int) ([]*models.AllotmentRecord, int64, error) {
	var total int64
	if err := r.db.QueryRow(ctx, `SELECT COUNT(*) FROM allotments`).Scan(&total); err != nil {
		return nil, 0, fmt.Errorf("error counting allotment records: %w", err)
	}

	query := `SELECT` + allotmentColumns + ` FROM allotments ORDER BY id LIMIT $1 OFFSET $2`

	rows, err := r.db.Query(ctx, query, limit, offset)
	if err != nil {
		return nil, 0, fmt.Errorf("error retrieving allotment records: %w", err)
	}
	defer rows.Close()

	records, err := scanAllotments(rows)
	if err != nil {
		return nil, 0, err
	}

	return records, total, nil
}

// GetByProfileID retrieves the allotment record of one student profile
func (r *AllotmentRepository) GetByProfileID(ctx context.Context, profileID int64) (*models.AllotmentRecord, error) {
	query := `SELECT` + allotmentColumns + ` FROM allotments WHERE student_profile_id = $1`

	var record models.AllotmentRecord
	err := r.db.QueryRow(ctx, query, profileID).Scan(allotmentFields(&record)...)
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return nil, apperrors.ErrAllotmentNotFound
		}
		return nil, fmt.Errorf("error retrieving allotment record: %w", err)
	}

	return &record, nil
}

// UpdateFeeStatus mutates the fee-status fields of one allotment record.
// Nil statuses are left untouched.
func (r *AllotmentRepository) UpdateFeeStatus(ctx context.Context, profileID int64, hostelFee, messFee *models.FeeStatus) error {
	query := `
		UPDATE allotments
		SET hostel_fee_status = COALESCE($2, hostel_fee_status),
		    mess_fee_status = COALESCE($3, mess_fee_status)
		WHERE student_profile_id = $1
	`

	cmdTag, err := r.db.Exec(ctx, query, profileID, hostelFee, messFee)
	if err != nil {
		return fmt.Errorf("error updating fee status: %w", err)
	}

	if cmdTag.RowsAffected() == 0 {
		return apperrors.ErrAllotmentNotFound
	}

	return nil
}

// scanAllotments drains rows into allotment records
func scanAllotments(rows pgx.Rows) ([]*models.AllotmentRecord, error) {
	var records []*models.AllotmentRecord
	for rows.Next() {
		var record models.AllotmentRecord
		if err := rows.Scan(allotmentFields(&record)...); err != nil {
			return nil, fmt.Errorf("error scanning allotment record: %w", err)
		}
		records = append(records, &record)
	}

	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("error reading allotment records: %w", err)
	}

	return records, nil
}

// allotmentFields returns scan destinations in allotmentColumns order
func allotmentFields(r *models.AllotmentRecord) []interface{} {
	return []interface{}{
		&r.ID,
		&r.StudentProfileID,
		&r.UserID,
		&r.FullName,
		&r.RollNumber,
		&r.CourseName,
		&r.Semester,
		&r.SGPA,
		&r.AllottedRoomNumber,
		&r.AllottedBedID,
		&r.AllottedRoomType,
		&r.AllottedHostelType,
		&r.AllottedHostelName,
		&r.HostelFeeStatus,
		&r.MessFeeStatus,
		&r.AllotmentDate,
	}
}
