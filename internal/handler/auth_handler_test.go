package handler

import (
	"bytes"
	"context"
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"testing"

	"stackshack/internal/middleware"
	"stackshack/internal/model"
	"stackshack/internal/policy"
	"stackshack/internal/repository"
	"stackshack/internal/service"
	"stackshack/internal/utils"

	"github.com/gin-gonic/gin"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func init() {
	gin.SetMode(gin.TestMode)
}

// memUserRepo is an in-memory UserRepository backing the handler tests
type memUserRepo struct {
	users  map[int]*model.User
	nextID int
}

func newMemUserRepo() *memUserRepo {
	return &memUserRepo{users: make(map[int]*model.User), nextID: 1}
}

func (r *memUserRepo) Create(_ context.Context, user *model.User) error {
	for _, u := range r.users {
		if u.Username == user.Username {
			return repository.ErrDuplicateUsername
		}
	}
	user.ID = r.nextID
	r.nextID++
	stored := *user
	r.users[user.ID] = &stored
	return nil
}

func (r *memUserRepo) FindByUsername(_ context.Context, username string) (*model.User, error) {
	for _, u := range r.users {
		if u.Username == username {
			copied := *u
			return &copied, nil
		}
	}
	return nil, nil
}

func (r *memUserRepo) FindByID(_ context.Context, id int) (*model.User, error) {
	u, ok := r.users[id]
	if !ok {
		return nil, nil
	}
	copied := *u
	return &copied, nil
}

func (r *memUserRepo) FindAll(_ context.Context) ([]model.User, error) {
	var users []model.User
	for id := 1; id < r.nextID; id++ {
		if u, ok := r.users[id]; ok {
			users = append(users, *u)
		}
	}
	return users, nil
}

func (r *memUserRepo) UpdateRole(_ context.Context, id int, role string) error {
	u, ok := r.users[id]
	if !ok {
		return repository.ErrNotFound
	}
	u.Role = role
	return nil
}

func (r *memUserRepo) Delete(_ context.Context, id int) error {
	if _, ok := r.users[id]; !ok {
		return repository.ErrNotFound
	}
	delete(r.users, id)
	return nil
}

func newAuthTestRouter(t *testing.T) (*gin.Engine, *utils.JWTUtil, *memUserRepo) {
	t.Helper()
	jwtUtil := utils.NewJWTUtil("test-secret", 1)
	repo := newMemUserRepo()
	h := NewAuthHandler(service.NewAuthService(repo, jwtUtil), service.NewUserService(repo))

	router := gin.New()
	h.RegisterAuthRoutes(router.Group(""),
		middleware.OptionalJWTAuthMiddleware(jwtUtil),
		middleware.JWTAuthMiddleware(jwtUtil),
		middleware.RequireAction(policy.ActionManageUsers),
	)
	return router, jwtUtil, repo
}

func postRegister(t *testing.T, router *gin.Engine, token string, body gin.H) (*httptest.ResponseRecorder, map[string]any) {
	t.Helper()
	payload, err := json.Marshal(body)
	require.NoError(t, err)

	req := httptest.NewRequest(http.MethodPost, "/auth/register", bytes.NewReader(payload))
	req.Header.Set("Content-Type", "application/json")
	if token != "" {
		req.Header.Set("Authorization", "Bearer "+token)
	}
	w := httptest.NewRecorder()
	router.ServeHTTP(w, req)

	var resp map[string]any
	if w.Body.Len() > 0 {
		require.NoError(t, json.Unmarshal(w.Body.Bytes(), &resp))
	}
	return w, resp
}

func storedRole(t *testing.T, repo *memUserRepo, username string) string {
	t.Helper()
	user, err := repo.FindByUsername(context.Background(), username)
	require.NoError(t, err)
	require.NotNil(t, user)
	return user.Role
}

func TestRegisterEndpoint_AnonymousRoleRequestCoercedToCustomer(t *testing.T) {
	router, _, repo := newAuthTestRouter(t)

	// Requesting admin without a token must succeed as a plain customer,
	// never error and never store the elevated role.
	w, resp := postRegister(t, router, "", gin.H{
		"username": "mallory", "password": "hunter22", "role": "admin",
	})

	assert.Equal(t, http.StatusCreated, w.Code)
	assert.Equal(t, model.RoleCustomer, resp["role"])
	assert.Equal(t, model.RoleCustomer, storedRole(t, repo, "mallory"))
}

func TestRegisterEndpoint_CustomerTokenRoleRequestCoercedToCustomer(t *testing.T) {
	router, jwtUtil, repo := newAuthTestRouter(t)

	token, err := jwtUtil.GenerateToken(5, model.RoleCustomer)
	require.NoError(t, err)

	w, resp := postRegister(t, router, token, gin.H{
		"username": "mallory", "password": "hunter22", "role": "admin",
	})

	assert.Equal(t, http.StatusCreated, w.Code)
	assert.Equal(t, model.RoleCustomer, resp["role"])
	assert.Equal(t, model.RoleCustomer, storedRole(t, repo, "mallory"))
}

func TestRegisterEndpoint_AdminTokenKeepsRequestedRole(t *testing.T) {
	router, jwtUtil, repo := newAuthTestRouter(t)

	token, err := jwtUtil.GenerateToken(1, model.RoleAdmin)
	require.NoError(t, err)

	w, resp := postRegister(t, router, token, gin.H{
		"username": "bob", "password": "hunter22", "role": "staff",
	})

	assert.Equal(t, http.StatusCreated, w.Code)
	assert.Equal(t, model.RoleStaff, resp["role"])
	assert.Equal(t, model.RoleStaff, storedRole(t, repo, "bob"))
}

func TestRegisterEndpoint_DuplicateUsername(t *testing.T) {
	router, _, _ := newAuthTestRouter(t)

	w, _ := postRegister(t, router, "", gin.H{"username": "alice", "password": "hunter22"})
	require.Equal(t, http.StatusCreated, w.Code)

	w, _ = postRegister(t, router, "", gin.H{"username": "alice", "password": "different8"})
	assert.Equal(t, http.StatusConflict, w.Code)
}
