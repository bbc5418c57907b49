package abstraction

import (
	"time"
)

type EntityJustCreated struct {
	CreatedAt time.Time `json:"created_at"`
}

type Entity struct {
	CreatedAt time.Time  `json:"created_at"`
	UpdatedAt *time.Time `json:"updated_at"`
}
