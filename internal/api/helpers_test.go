package api

import (
	"bytes"
	"context"
	"encoding/json"
	"io"
	"net/http/httptest"
	"path/filepath"
	"sync/atomic"
	"testing"
	"time"

	"news_portal/internal/db"
	"news_portal/internal/domain"
	"news_portal/internal/utils"

	"github.com/gin-gonic/gin"
	"github.com/glebarez/sqlite"
	"github.com/sirupsen/logrus"
	"github.com/stretchr/testify/require"
	"golang.org/x/crypto/bcrypt"
	"gorm.io/gorm"
	gormlogger "gorm.io/gorm/logger"
)

const testSecret = "test-secret"

var baseTime = time.Date(2026, 1, 1, 8, 0, 0, 0, time.UTC)

func init() {
	gin.SetMode(gin.TestMode)
	logrus.SetOutput(io.Discard)
}

// countingProvider hands out one handle and counts requests for it
type countingProvider struct {
	conn  *gorm.DB
	calls atomic.Int32
}

func (p *countingProvider) Get(ctx context.Context) (*gorm.DB, error) {
	p.calls.Add(1)
	return p.conn, nil
}

type testEnv struct {
	t        *testing.T
	conn     *gorm.DB
	codec    *utils.TokenCodec
	provider *countingProvider
	router   *gin.Engine
}

func newTestEnv(t *testing.T, opts ...func(*RouterConfig)) *testEnv {
	t.Helper()
	conn, err := gorm.Open(sqlite.Open(filepath.Join(t.TempDir(), "news.db")), &gorm.Config{
		Logger:         gormlogger.Default.LogMode(gormlogger.Silent),
		TranslateError: true,
	})
	require.NoError(t, err)
	sqlDB, err := conn.DB()
	require.NoError(t, err)
	sqlDB.SetMaxOpenConns(1)
	t.Cleanup(func() { _ = sqlDB.Close() })
	require.NoError(t, db.Migrate(conn))

	env := &testEnv{
		t:        t,
		conn:     conn,
		codec:    utils.NewTokenCodec(testSecret, time.Hour),
		provider: &countingProvider{conn: conn},
	}
	rc := RouterConfig{DB: env.provider, Tokens: env.codec}
	for _, opt := range opts {
		opt(&rc)
	}
	env.router, err = NewRouter(rc)
	require.NoError(t, err)
	return env
}

func (e *testEnv) seedUser(role domain.Role, name, email, password, category string) *domain.User {
	e.t.Helper()
	hash, err := bcrypt.GenerateFromPassword([]byte(password), bcrypt.MinCost)
	require.NoError(e.t, err)
	u := &domain.User{Name: name, Email: email, Password: string(hash), Role: role, Category: category}
	require.NoError(e.t, e.conn.Create(u).Error)
	return u
}

func (e *testEnv) seedAdmin() *domain.User {
	return e.seedUser(domain.RoleAdmin, "Admin", "admin@example.com", "adminpass", "general")
}

func (e *testEnv) seedWriter(name, email, category string) *domain.User {
	return e.seedUser(domain.RoleWriter, name, email, "writerpass", category)
}

// seedNews stores a news record created minutesAfter baseTime
func (e *testEnv) seedNews(author *domain.User, title, category string, status domain.NewsStatus, minutesAfter int) *domain.News {
	e.t.Helper()
	n := &domain.News{
		WriterID:    author.ID,
		WriterName:  author.Name,
		Title:       title,
		Slug:        utils.Slugify(title),
		Category:    category,
		Status:      status,
		Description: "<p>" + title + "</p>",
		CreatedAt:   baseTime.Add(time.Duration(minutesAfter) * time.Minute),
	}
	require.NoError(e.t, e.conn.Create(n).Error)
	return n
}

func (e *testEnv) tokenFor(u *domain.User) string {
	e.t.Helper()
	token, err := e.codec.Issue(domain.Identity{ID: u.ID, Role: u.Role})
	require.NoError(e.t, err)
	return token
}

// do sends a request with an optional bearer token and JSON body
func (e *testEnv) do(method, path, token string, body any) *httptest.ResponseRecorder {
	e.t.Helper()
	var reader io.Reader
	if body != nil {
		b, err := json.Marshal(body)
		require.NoError(e.t, err)
		reader = bytes.NewReader(b)
	}
	req := httptest.NewRequest(method, path, reader)
	if body != nil {
		req.Header.Set("Content-Type", "application/json")
	}
	if token != "" {
		req.Header.Set("Authorization", "Bearer "+token)
	}
	w := httptest.NewRecorder()
	e.router.ServeHTTP(w, req)
	return w
}

func decode[T any](t *testing.T, w *httptest.ResponseRecorder) T {
	t.Helper()
	var out T
	require.NoError(t, json.Unmarshal(w.Body.Bytes(), &out), w.Body.String())
	return out
}

// jsonObj is a JSON object literal for request bodies
type jsonObj = map[string]any

type messageBody struct {
	Message string `json:"message"`
}

type newsListBody struct {
	News []domain.News `json:"news"`
}

type newsBody struct {
	Message string      `json:"message"`
	News    domain.News `json:"news"`
}

func (e *testEnv) reloadNews(id string) (*domain.News, error) {
	var n domain.News
	err := e.conn.Where("id = ?", id).First(&n).Error
	return &n, err
}
