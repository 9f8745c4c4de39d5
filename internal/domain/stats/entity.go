package stats

import "time"

// SiteStats is the singleton site_stats row. TotalVisits increments once per
// page-level visit, not per poll.
type SiteStats struct {
	ID          int       `gorm:"primaryKey"`
	TotalVisits int64     `gorm:"not null;default:0"`
	LastUpdated time.Time `gorm:"not null"`
}

// Snapshot is the read shape exposed to clients.
type Snapshot struct {
	OnlineUsers int64 `json:"online_users"`
	TotalVisits int64 `json:"total_visits"`
}
