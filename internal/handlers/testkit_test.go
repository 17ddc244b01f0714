package handlers

import (
	"bytes"
	"context"
	"encoding/json"
	"fmt"
	"io"
	"mime/multipart"
	"net/http"
	"net/http/httptest"
	"net/textproto"
	"sort"
	"strings"
	"sync"
	"testing"
	"time"

	"github.com/Soumya-Xd/CreativeShowcase/internal/middleware"
	"github.com/Soumya-Xd/CreativeShowcase/internal/models"
	"github.com/Soumya-Xd/CreativeShowcase/internal/repositories"
	"github.com/Soumya-Xd/CreativeShowcase/internal/uploads"
	"github.com/Soumya-Xd/CreativeShowcase/validators"
	"github.com/labstack/echo/v4"
	"github.com/stretchr/testify/require"
	"go.mongodb.org/mongo-driver/bson/primitive"
)

const testJWTSecret = "test-secret-key"

// memRepo is an in-memory implementation of all four repository
// interfaces, enforcing the same uniqueness rules as the Mongo indexes.
type memRepo struct {
	mu       sync.Mutex
	seq      int
	users    map[primitive.ObjectID]models.User
	artworks map[primitive.ObjectID]models.Artwork
	order    map[primitive.ObjectID]int
	likes    map[string]models.Like
	follows  map[string]models.Follow
}

func newMemRepo() *memRepo {
	return &memRepo{
		users:    make(map[primitive.ObjectID]models.User),
		artworks: make(map[primitive.ObjectID]models.Artwork),
		order:    make(map[primitive.ObjectID]int),
		likes:    make(map[string]models.Like),
		follows:  make(map[string]models.Follow),
	}
}

func pairKey(a, b primitive.ObjectID) string {
	return a.Hex() + ":" + b.Hex()
}

// --- UserRepository ---

func (m *memRepo) CreateUser(ctx context.Context, user *models.User) error {
	m.mu.Lock()
	defer m.mu.Unlock()
	email := strings.ToLower(user.Email)
	for _, u := range m.users {
		if u.Username == user.Username || u.Email == email {
			return repositories.ErrDuplicate
		}
	}
	user.ID = primitive.NewObjectID()
	user.Email = email
	user.CreatedAt = time.Now()
	user.UpdatedAt = user.CreatedAt
	m.users[user.ID] = *user
	return nil
}

func (m *memRepo) GetUserByID(ctx context.Context, id primitive.ObjectID) (*models.User, error) {
	m.mu.Lock()
	defer m.mu.Unlock()
	if u, ok := m.users[id]; ok {
		return &u, nil
	}
	return nil, repositories.ErrNotFound
}

func (m *memRepo) GetUserByEmail(ctx context.Context, email string) (*models.User, error) {
	m.mu.Lock()
	defer m.mu.Unlock()
	for _, u := range m.users {
		if u.Email == strings.ToLower(email) {
			u := u
			return &u, nil
		}
	}
	return nil, repositories.ErrNotFound
}

func (m *memRepo) GetUserByUsername(ctx context.Context, username string) (*models.User, error) {
	m.mu.Lock()
	defer m.mu.Unlock()
	for _, u := range m.users {
		if u.Username == username {
			u := u
			return &u, nil
		}
	}
	return nil, repositories.ErrNotFound
}

func (m *memRepo) GetUsersByIDs(ctx context.Context, ids []primitive.ObjectID) ([]models.User, error) {
	m.mu.Lock()
	defer m.mu.Unlock()
	users := []models.User{}
	for _, id := range ids {
		if u, ok := m.users[id]; ok {
			users = append(users, u)
		}
	}
	return users, nil
}

func (m *memRepo) UpdateUser(ctx context.Context, user *models.User) error {
	m.mu.Lock()
	defer m.mu.Unlock()
	if _, ok := m.users[user.ID]; !ok {
		return repositories.ErrNotFound
	}
	for id, u := range m.users {
		if id != user.ID && u.Username == user.Username {
			return repositories.ErrDuplicate
		}
	}
	user.UpdatedAt = time.Now()
	m.users[user.ID] = *user
	return nil
}

// --- ArtworkRepository ---

func (m *memRepo) CreateArtwork(ctx context.Context, artwork *models.Artwork) error {
	m.mu.Lock()
	defer m.mu.Unlock()
	artwork.ID = primitive.NewObjectID()
	artwork.CreatedAt = time.Now()
	artwork.UpdatedAt = artwork.CreatedAt
	if artwork.Tags == nil {
		artwork.Tags = []string{}
	}
	m.seq++
	m.order[artwork.ID] = m.seq
	m.artworks[artwork.ID] = *artwork
	return nil
}

func (m *memRepo) GetArtworkByID(ctx context.Context, id primitive.ObjectID) (*models.Artwork, error) {
	m.mu.Lock()
	defer m.mu.Unlock()
	if a, ok := m.artworks[id]; ok {
		return &a, nil
	}
	return nil, repositories.ErrNotFound
}

func (m *memRepo) sortedArtworks(filter func(models.Artwork) bool) []models.Artwork {
	var out []models.Artwork
	for _, a := range m.artworks {
		if filter == nil || filter(a) {
			out = append(out, a)
		}
	}
	sort.Slice(out, func(i, j int) bool {
		return m.order[out[i].ID] > m.order[out[j].ID]
	})
	return out
}

func (m *memRepo) GetArtworks(ctx context.Context, skip, limit int64) ([]models.Artwork, error) {
	m.mu.Lock()
	defer m.mu.Unlock()
	all := m.sortedArtworks(nil)
	if skip >= int64(len(all)) {
		return []models.Artwork{}, nil
	}
	all = all[skip:]
	if limit < int64(len(all)) {
		all = all[:limit]
	}
	return all, nil
}

func (m *memRepo) GetArtworksByArtist(ctx context.Context, artistID primitive.ObjectID) ([]models.Artwork, error) {
	m.mu.Lock()
	defer m.mu.Unlock()
	out := m.sortedArtworks(func(a models.Artwork) bool { return a.ArtistID == artistID })
	if out == nil {
		out = []models.Artwork{}
	}
	return out, nil
}

func (m *memRepo) ArtworkIDsByArtist(ctx context.Context, artistID primitive.ObjectID) ([]primitive.ObjectID, error) {
	m.mu.Lock()
	defer m.mu.Unlock()
	ids := []primitive.ObjectID{}
	for id, a := range m.artworks {
		if a.ArtistID == artistID {
			ids = append(ids, id)
		}
	}
	return ids, nil
}

func (m *memRepo) CountArtworks(ctx context.Context) (int64, error) {
	m.mu.Lock()
	defer m.mu.Unlock()
	return int64(len(m.artworks)), nil
}

func (m *memRepo) CountArtworksByArtist(ctx context.Context, artistID primitive.ObjectID) (int64, error) {
	m.mu.Lock()
	defer m.mu.Unlock()
	var n int64
	for _, a := range m.artworks {
		if a.ArtistID == artistID {
			n++
		}
	}
	return n, nil
}

func (m *memRepo) UpdateArtwork(ctx context.Context, artwork *models.Artwork) error {
	m.mu.Lock()
	defer m.mu.Unlock()
	if _, ok := m.artworks[artwork.ID]; !ok {
		return repositories.ErrNotFound
	}
	artwork.UpdatedAt = time.Now()
	m.artworks[artwork.ID] = *artwork
	return nil
}

func (m *memRepo) DeleteArtwork(ctx context.Context, id primitive.ObjectID) error {
	m.mu.Lock()
	defer m.mu.Unlock()
	if _, ok := m.artworks[id]; !ok {
		return repositories.ErrNotFound
	}
	delete(m.artworks, id)
	delete(m.order, id)
	return nil
}

// --- LikeRepository ---

func (m *memRepo) CreateLike(ctx context.Context, like *models.Like) error {
	m.mu.Lock()
	defer m.mu.Unlock()
	key := pairKey(like.UserID, like.ArtworkID)
	if _, ok := m.likes[key]; ok {
		return repositories.ErrDuplicate
	}
	like.ID = primitive.NewObjectID()
	like.CreatedAt = time.Now()
	m.likes[key] = *like
	return nil
}

func (m *memRepo) DeleteLike(ctx context.Context, userID, artworkID primitive.ObjectID) error {
	m.mu.Lock()
	defer m.mu.Unlock()
	key := pairKey(userID, artworkID)
	if _, ok := m.likes[key]; !ok {
		return repositories.ErrNotFound
	}
	delete(m.likes, key)
	return nil
}

func (m *memRepo) HasUserLikedArtwork(ctx context.Context, userID, artworkID primitive.ObjectID) (bool, error) {
	m.mu.Lock()
	defer m.mu.Unlock()
	_, ok := m.likes[pairKey(userID, artworkID)]
	return ok, nil
}

func (m *memRepo) CountLikesByArtwork(ctx context.Context, artworkID primitive.ObjectID) (int64, error) {
	m.mu.Lock()
	defer m.mu.Unlock()
	var n int64
	for _, l := range m.likes {
		if l.ArtworkID == artworkID {
			n++
		}
	}
	return n, nil
}

func (m *memRepo) CountLikesByArtworks(ctx context.Context, artworkIDs []primitive.ObjectID) (int64, error) {
	m.mu.Lock()
	defer m.mu.Unlock()
	wanted := make(map[primitive.ObjectID]bool, len(artworkIDs))
	for _, id := range artworkIDs {
		wanted[id] = true
	}
	var n int64
	for _, l := range m.likes {
		if wanted[l.ArtworkID] {
			n++
		}
	}
	return n, nil
}

func (m *memRepo) DeleteLikesByArtwork(ctx context.Context, artworkID primitive.ObjectID) error {
	m.mu.Lock()
	defer m.mu.Unlock()
	for key, l := range m.likes {
		if l.ArtworkID == artworkID {
			delete(m.likes, key)
		}
	}
	return nil
}

// --- FollowRepository ---

func (m *memRepo) CreateFollow(ctx context.Context, follow *models.Follow) error {
	m.mu.Lock()
	defer m.mu.Unlock()
	key := pairKey(follow.FollowerID, follow.FolloweeID)
	if _, ok := m.follows[key]; ok {
		return repositories.ErrDuplicate
	}
	follow.ID = primitive.NewObjectID()
	follow.CreatedAt = time.Now()
	m.follows[key] = *follow
	return nil
}

func (m *memRepo) DeleteFollow(ctx context.Context, followerID, followeeID primitive.ObjectID) error {
	m.mu.Lock()
	defer m.mu.Unlock()
	key := pairKey(followerID, followeeID)
	if _, ok := m.follows[key]; !ok {
		return repositories.ErrNotFound
	}
	delete(m.follows, key)
	return nil
}

func (m *memRepo) IsFollowing(ctx context.Context, followerID, followeeID primitive.ObjectID) (bool, error) {
	m.mu.Lock()
	defer m.mu.Unlock()
	_, ok := m.follows[pairKey(followerID, followeeID)]
	return ok, nil
}

func (m *memRepo) GetFollowerIDs(ctx context.Context, userID primitive.ObjectID) ([]primitive.ObjectID, error) {
	m.mu.Lock()
	defer m.mu.Unlock()
	ids := []primitive.ObjectID{}
	for _, f := range m.follows {
		if f.FolloweeID == userID {
			ids = append(ids, f.FollowerID)
		}
	}
	return ids, nil
}

func (m *memRepo) GetFollowingIDs(ctx context.Context, userID primitive.ObjectID) ([]primitive.ObjectID, error) {
	m.mu.Lock()
	defer m.mu.Unlock()
	ids := []primitive.ObjectID{}
	for _, f := range m.follows {
		if f.FollowerID == userID {
			ids = append(ids, f.FolloweeID)
		}
	}
	return ids, nil
}

func (m *memRepo) CountFollowers(ctx context.Context, userID primitive.ObjectID) (int64, error) {
	ids, _ := m.GetFollowerIDs(ctx, userID)
	return int64(len(ids)), nil
}

func (m *memRepo) CountFollowing(ctx context.Context, userID primitive.ObjectID) (int64, error) {
	ids, _ := m.GetFollowingIDs(ctx, userID)
	return int64(len(ids)), nil
}

// --- test environment ---

type testEnv struct {
	e     *echo.Echo
	repo  *memRepo
	store *uploads.Store
}

func newTestEnv(t *testing.T) *testEnv {
	return newTestEnvWith(t, nil)
}

// newTestEnvWith lets a test swap the like/follow repositories for
// wrappers around the shared memRepo, e.g. to simulate a concurrent
// writer winning a toggle race.
func newTestEnvWith(t *testing.T, wrap func(r *memRepo) (repositories.LikeRepository, repositories.FollowRepository)) *testEnv {
	t.Helper()

	e := echo.New()
	e.Validator = validators.NewValidator()

	repo := newMemRepo()
	var likeRepo repositories.LikeRepository = repo
	var followRepo repositories.FollowRepository = repo
	if wrap != nil {
		likeRepo, followRepo = wrap(repo)
	}
	store := uploads.NewStore(t.TempDir(), 10<<20)

	requireAuth := middleware.RequireAuth(testJWTSecret)
	optionalAuth := middleware.OptionalAuth(testJWTSecret)

	authHandler := NewAuthHandler(repo, repo, followRepo, likeRepo, testJWTSecret, 7*24*time.Hour)
	authHandler.RegisterAuthRoutes(e.Group("/api/auth"), requireAuth)

	artworkHandler := NewArtworkHandler(repo, repo, likeRepo, followRepo, store)
	artworkHandler.RegisterArtworkRoutes(e.Group("/api/artworks"), requireAuth, optionalAuth)

	userHandler := NewUserHandler(repo, repo, followRepo, likeRepo)
	userHandler.RegisterUserRoutes(e.Group("/api/users"), requireAuth, optionalAuth)

	e.GET("/api/health", HealthCheck)

	return &testEnv{e: e, repo: repo, store: store}
}

func (env *testEnv) request(method, path, token string, body io.Reader, contentType string) *httptest.ResponseRecorder {
	req := httptest.NewRequest(method, path, body)
	if contentType != "" {
		req.Header.Set(echo.HeaderContentType, contentType)
	}
	if token != "" {
		req.Header.Set(echo.HeaderAuthorization, "Bearer "+token)
	}
	rec := httptest.NewRecorder()
	env.e.ServeHTTP(rec, req)
	return rec
}

func (env *testEnv) jsonRequest(method, path, token string, payload interface{}) *httptest.ResponseRecorder {
	var body io.Reader
	if payload != nil {
		b, _ := json.Marshal(payload)
		body = bytes.NewReader(b)
	}
	return env.request(method, path, token, body, echo.MIMEApplicationJSON)
}

// register creates an account and returns its token and user id.
func (env *testEnv) register(t *testing.T, username, email, password string) (string, string) {
	t.Helper()
	rec := env.jsonRequest(http.MethodPost, "/api/auth/register", "", map[string]string{
		"username": username,
		"email":    email,
		"password": password,
	})
	require.Equal(t, http.StatusCreated, rec.Code, rec.Body.String())

	body := decodeBody(t, rec)
	token, _ := body["token"].(string)
	require.NotEmpty(t, token)
	user := body["user"].(map[string]interface{})
	return token, user["id"].(string)
}

// upload posts a multipart artwork with an explicit part content type.
func (env *testEnv) upload(t *testing.T, token, title, tags, filename, contentType string, data []byte) *httptest.ResponseRecorder {
	t.Helper()
	var buf bytes.Buffer
	w := multipart.NewWriter(&buf)

	if filename != "" {
		hdr := textproto.MIMEHeader{}
		hdr.Set("Content-Disposition", fmt.Sprintf(`form-data; name="image"; filename="%s"`, filename))
		hdr.Set("Content-Type", contentType)
		part, err := w.CreatePart(hdr)
		require.NoError(t, err)
		_, err = part.Write(data)
		require.NoError(t, err)
	}
	if title != "" {
		require.NoError(t, w.WriteField("title", title))
	}
	if tags != "" {
		require.NoError(t, w.WriteField("tags", tags))
	}
	require.NoError(t, w.Close())

	return env.request(http.MethodPost, "/api/artworks", token, &buf, w.FormDataContentType())
}

func decodeBody(t *testing.T, rec *httptest.ResponseRecorder) map[string]interface{} {
	t.Helper()
	var body map[string]interface{}
	require.NoError(t, json.Unmarshal(rec.Body.Bytes(), &body))
	return body
}
