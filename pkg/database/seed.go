package database

import (
	"errors"
	"time"

	"github.com/enigma-chat/enigma/internal/domain/stats"

	"gorm.io/gorm"
)

// SeedStats ensures the singleton site_stats row exists. Safe to run on
// every startup.
func SeedStats(db *gorm.DB) error {
	var existing stats.SiteStats
	err := db.First(&existing, 1).Error
	if err == nil {
		return nil
	}
	if !errors.Is(err, gorm.ErrRecordNotFound) {
		return err
	}
	return db.Create(&stats.SiteStats{
		ID:          1,
		TotalVisits: 0,
		LastUpdated: time.Now(),
	}).Error
}
