package domain

import "time"

type SwipeDirection string

const (
	SwipeLike SwipeDirection = "like"
	SwipeSkip SwipeDirection = "skip"
)

// Swipe records one directional decision. A job seeker swipes on a job
// posting; an employer swipes on a seeker in the context of one of their
// postings. Both sides are identified so the reciprocal-like lookup is a
// single pair query.
type Swipe struct {
	ID        int            `json:"id" db:"id"`
	ActorID   int            `json:"actor_id" db:"actor_id"`
	ActorRole Role           `json:"actor_role" db:"actor_role"`
	JobID     int            `json:"job_id" db:"job_id"`
	SeekerID  int            `json:"seeker_id" db:"seeker_id"`
	Direction SwipeDirection `json:"direction" db:"direction"`
	CreatedAt time.Time      `json:"created_at" db:"created_at"`
}

func (s *Swipe) IsLike() bool {
	return s.Direction == SwipeLike
}
