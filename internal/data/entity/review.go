package entity

import "github.com/google/uuid"

type Review struct {
	Base
	JobID     uuid.UUID `db:"job_id"`
	ClientID  uuid.UUID `db:"client_id"`
	ArtisanID uuid.UUID `db:"artisan_id"`
	Rating    int       `db:"rating"`
	Comment   string    `db:"comment"`
}
