package repositories

import (
	"github.com/jackc/pgx/v5/pgxpool"
)

// Repositories holds all the repository instances
type Repositories struct {
	AllotmentRepository *AllotmentRepository
	ProfileRepository   *ProfileRepository
}

// NewRepositories initializes all repositories
func NewRepositories(db *pgxpool.Pool) *Repositories {
	return &Repositories{
		AllotmentRepository: NewAllotmentRepository(db),
		ProfileRepository:   NewProfileRepository(db),
	}
}
