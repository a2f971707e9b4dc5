package entity

import "github.com/google/uuid"

type Skill struct {
	ID   uuid.UUID `db:"id"`
	Name string    `db:"name"`
}
