package domain

import "time"

// Record carries the bookkeeping fields every stored entity shares. Embed
// it and call InitTimestamps on create, Touch on every mutation.
type Record struct {
	CreatedAt time.Time  `json:"created_at"`
	UpdatedAt time.Time  `json:"updated_at"`
	DeletedAt *time.Time `json:"deleted_at,omitempty"`
	ID        string     `json:"id"`
}

// Touch bumps UpdatedAt to now.
func (r *Record) Touch() {
	r.UpdatedAt = time.Now()
}

// InitTimestamps sets CreatedAt and UpdatedAt to the same instant.
func (r *Record) InitTimestamps() {
	now := time.Now()
	r.CreatedAt = now
	r.UpdatedAt = now
}

// IsDeleted reports whether the record has been soft-deleted. Deleted
// users keep their row so the email stays reserved, but they cannot
// authenticate.
func (r *Record) IsDeleted() bool {
	return r.DeletedAt != nil
}

// MarkDeleted soft-deletes the record and bumps UpdatedAt.
func (r *Record) MarkDeleted() {
	now := time.Now()
	r.DeletedAt = &now
	r.UpdatedAt = now
}
