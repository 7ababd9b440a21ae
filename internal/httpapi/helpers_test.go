package httpapi

import (
	"bytes"
	"context"
	"encoding/json"
	"io"
	"net/http"
	"net/http/httptest"
	"strings"
	"sync"
	"testing"
	"time"

	"github.com/gin-gonic/gin"
	gormsqlite "github.com/glebarez/sqlite"
	"github.com/suPer8Hu/clinic-inbox/internal/auth"
	"github.com/suPer8Hu/clinic-inbox/internal/clinic"
	"github.com/suPer8Hu/clinic-inbox/internal/config"
	"github.com/suPer8Hu/clinic-inbox/internal/db"
	"github.com/suPer8Hu/clinic-inbox/internal/models"
	"gorm.io/gorm"
)

const testSecret = "test-secret"

func init() {
	gin.SetMode(gin.TestMode)
}

type envelope struct {
	Code    int             `json:"code"`
	Message string          `json:"message"`
	Data    json.RawMessage `json:"data"`
}

type fakeDenylist struct {
	mu      sync.Mutex
	revoked map[string]time.Duration
}

func newFakeDenylist() *fakeDenylist {
	return &fakeDenylist{revoked: map[string]time.Duration{}}
}

func (d *fakeDenylist) RevokeToken(ctx context.Context, jti string, ttl time.Duration) error {
	_ = ctx
	d.mu.Lock()
	defer d.mu.Unlock()
	d.revoked[jti] = ttl
	return nil
}

func (d *fakeDenylist) IsRevoked(ctx context.Context, jti string) (bool, error) {
	_ = ctx
	d.mu.Lock()
	defer d.mu.Unlock()
	_, ok := d.revoked[jti]
	return ok, nil
}

type fakeUploader struct {
	name string
	body []byte
}

func (u *fakeUploader) Upload(ctx context.Context, filename, contentType string, size int64, body io.Reader) (string, error) {
	_ = ctx
	b, err := io.ReadAll(body)
	if err != nil {
		return "", err
	}
	u.name, u.body = filename, b
	return "https://files.example.test/attachments/X/" + filename, nil
}

type testEnv struct {
	t      *testing.T
	repo   *clinic.Repo
	svc    *clinic.Service
	router *gin.Engine
	deny   *fakeDenylist
	upload *fakeUploader
}

func newTestEnv(t *testing.T) *testEnv {
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

	repo := clinic.NewRepo(gdb)
	svc := clinic.NewService(repo, nil, time.UTC)
	deny := newFakeDenylist()
	up := &fakeUploader{}
	cfg := config.Config{JWTSecret: testSecret, JWTTTL: time.Hour}
	r := NewRouter(svc, cfg, Deps{Denylist: deny, Revoker: deny, Uploader: up})
	return &testEnv{t: t, repo: repo, svc: svc, router: r, deny: deny, upload: up}
}

func (e *testEnv) user(openID string, role models.Role) (*models.User, string) {
	e.t.Helper()
	u, err := e.repo.UpsertUser(context.Background(), clinic.UpsertUserInput{OpenID: openID, Role: role})
	if err != nil {
		e.t.Fatalf("upsert %s: %v", openID, err)
	}
	tok, err := auth.SignJWT(u.ID, testSecret, time.Hour)
	if err != nil {
		e.t.Fatalf("sign: %v", err)
	}
	return u, tok
}

func (e *testEnv) do(method, path, token string, body any) (*httptest.ResponseRecorder, envelope) {
	e.t.Helper()
	var rdr io.Reader
	if body != nil {
		b, err := json.Marshal(body)
		if err != nil {
			e.t.Fatalf("marshal: %v", err)
		}
		rdr = bytes.NewReader(b)
	}
	req := httptest.NewRequest(method, path, rdr)
	if body != nil {
		req.Header.Set("Content-Type", "application/json")
	}
	if token != "" {
		req.Header.Set("Authorization", "Bearer "+token)
	}
	return e.serve(req)
}

func (e *testEnv) serve(req *http.Request) (*httptest.ResponseRecorder, envelope) {
	e.t.Helper()
	w := httptest.NewRecorder()
	e.router.ServeHTTP(w, req)
	var env envelope
	if err := json.Unmarshal(w.Body.Bytes(), &env); err != nil {
		e.t.Fatalf("decode %s %s: %v body=%s", req.Method, req.URL.Path, err, w.Body.String())
	}
	return w, env
}

func decode[T any](t *testing.T, raw json.RawMessage) T {
	t.Helper()
	var v T
	if err := json.Unmarshal(raw, &v); err != nil {
		t.Fatalf("decode data: %v (%s)", err, raw)
	}
	return v
}
