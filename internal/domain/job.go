package domain

import "time"

// JobPosting is an employer-owned opening that job seekers swipe on.
// Flex postings are short-notice shifts with their own unlock pricing.
type JobPosting struct {
	ID          int        `json:"id" db:"id"`
	EmployerID  int        `json:"employer_id" db:"employer_id"`
	Title       string     `json:"title" db:"title"`
	Description *string    `json:"description" db:"description"`
	City        *string    `json:"city" db:"city"`
	LocationLat *float64   `json:"location_lat" db:"location_lat"`
	LocationLon *float64   `json:"location_lon" db:"location_lon"`
	SalaryMin   *int       `json:"salary_min" db:"salary_min"`
	SalaryMax   *int       `json:"salary_max" db:"salary_max"`
	Tags        []string   `json:"tags" db:"tags"`
	IsFlex      bool       `json:"is_flex" db:"is_flex"`
	FlexStartAt *time.Time `json:"flex_start_at" db:"flex_start_at"`
	FlexEndAt   *time.Time `json:"flex_end_at" db:"flex_end_at"`
	IsActive    bool       `json:"is_active" db:"is_active"`
	CreatedAt   time.Time  `json:"created_at" db:"created_at"`
	UpdatedAt   time.Time  `json:"updated_at" db:"updated_at"`
}
