package repository_test

import (
	"testing"

	"github.com/enigma-chat/enigma/internal/domain/call"
	"github.com/enigma-chat/enigma/internal/domain/keys"
	"github.com/enigma-chat/enigma/internal/domain/media"
	"github.com/enigma-chat/enigma/internal/domain/message"
	"github.com/enigma-chat/enigma/internal/domain/stats"
	"github.com/enigma-chat/enigma/internal/domain/user"

	gormsqlite "github.com/glebarez/sqlite"
	"gorm.io/gorm"
)

// openTestDB gives every test its own in-memory database with the full
// schema, matching the Postgres layout closely enough for repository logic.
func openTestDB(t *testing.T) *gorm.DB {
	t.Helper()
	db, err := gorm.Open(gormsqlite.Open(":memory:"), &gorm.Config{TranslateError: true})
	if err != nil {
		t.Fatalf("open sqlite: %v", err)
	}
	if err := db.AutoMigrate(
		&user.User{},
		&message.PrivateMessage{},
		&message.PublicMessage{},
		&media.MediaItem{},
		&keys.KeyGrant{},
		&keys.ShareGrant{},
		&call.CallInvite{},
		&stats.SiteStats{},
	); err != nil {
		t.Fatalf("automigrate: %v", err)
	}
	return db
}
