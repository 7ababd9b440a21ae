package clinic

import (
	"context"
	"strings"
	"sync"
	"testing"

	gormsqlite "github.com/glebarez/sqlite"
	"github.com/suPer8Hu/clinic-inbox/internal/db"
	"github.com/suPer8Hu/clinic-inbox/internal/events"
	"github.com/suPer8Hu/clinic-inbox/internal/models"
	"gorm.io/gorm"
)

func openTestDB(t *testing.T) *gorm.DB {
	t.Helper()
	name := strings.NewReplacer("/", "_", " ", "_").Replace(t.Name())
	gdb, err := gorm.Open(gormsqlite.Open("file:"+name+"?mode=memory&cache=shared"), db.Config())
	if err != nil {
		t.Fatalf("open sqlite: %v", err)
	}
	if err := db.Migrate(gdb); err != nil {
		t.Fatalf("automigrate: %v", err)
	}
	t.Cleanup(func() { _ = db.Close(gdb) })
	return gdb
}

type recordingPublisher struct {
	mu     sync.Mutex
	events []events.Event
}

func (p *recordingPublisher) Publish(ctx context.Context, e events.Event) error {
	_ = ctx
	p.mu.Lock()
	defer p.mu.Unlock()
	p.events = append(p.events, e)
	return nil
}

func seedUser(t *testing.T, repo *Repo, openID string, role models.Role) *models.User {
	t.Helper()
	u, err := repo.UpsertUser(context.Background(), UpsertUserInput{OpenID: openID, Role: role})
	if err != nil {
		t.Fatalf("upsert %s: %v", openID, err)
	}
	return u
}

func seedConversation(t *testing.T, repo *Repo, patientID uint64, priority models.Priority) *models.Conversation {
	t.Helper()
	c := &models.Conversation{PatientID: patientID, ChannelID: 1, Priority: priority}
	if err := repo.CreateConversation(context.Background(), c); err != nil {
		t.Fatalf("create conversation: %v", err)
	}
	return c
}

func strp(s string) *string { return &s }
