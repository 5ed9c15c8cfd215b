package user

import (
	"bytes"
	"context"
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/gorilla/mux"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"google.golang.org/grpc/codes"
	"google.golang.org/grpc/status"

	"github.com/chaitanyakotagiri27/SecureShift/internal/common"
	"github.com/chaitanyakotagiri27/SecureShift/internal/dbmysql"
)

// fakeUserService stubs the service behind the HTTP layer. Function
// fields keep each test focused on the path it exercises.
type fakeUserService struct {
	registerFn  func(ctx context.Context, name, email, password, role, phone string) (*dbmysql.User, string, error)
	loginFn     func(ctx context.Context, email, password string) (*dbmysql.User, string, error)
	profileFn   func(ctx context.Context, userID string) (*dbmysql.User, error)
	listUsersFn func(ctx context.Context, filter UserFilter) ([]*dbmysql.User, int64, error)
	deleteFn    func(ctx context.Context, userID string) error
}

func (f *fakeUserService) Register(ctx context.Context, name, email, password, role, phone string) (*dbmysql.User, string, error) {
	return f.registerFn(ctx, name, email, password, role, phone)
}

func (f *fakeUserService) Login(ctx context.Context, email, password string) (*dbmysql.User, string, error) {
	return f.loginFn(ctx, email, password)
}

func (f *fakeUserService) Profile(ctx context.Context, userID string) (*dbmysql.User, error) {
	return f.profileFn(ctx, userID)
}

func (f *fakeUserService) UpdateProfile(ctx context.Context, userID, name, email, phone string) (*dbmysql.User, error) {
	return f.profileFn(ctx, userID)
}

func (f *fakeUserService) ChangePassword(ctx context.Context, userID, currentPassword, newPassword string) error {
	return nil
}

func (f *fakeUserService) Deactivate(ctx context.Context, userID string) error {
	return nil
}

func (f *fakeUserService) ListUsers(ctx context.Context, filter UserFilter) ([]*dbmysql.User, int64, error) {
	return f.listUsersFn(ctx, filter)
}

func (f *fakeUserService) UserByID(ctx context.Context, userID string) (*dbmysql.User, error) {
	return f.profileFn(ctx, userID)
}

func (f *fakeUserService) DeleteUser(ctx context.Context, userID string) error {
	return f.deleteFn(ctx, userID)
}

func TestHandler_Register(t *testing.T) {
	svc := &fakeUserService{
		registerFn: func(ctx context.Context, name, email, password, role, phone string) (*dbmysql.User, string, error) {
			assert.Equal(t, "Alice Guard", name)
			assert.Equal(t, "alice@example.com", email)
			assert.Equal(t, common.RoleGuard, role)
			return &dbmysql.User{UserID: "user-1", Name: name, Email: email, Role: role, Status: common.StatusActive}, "tok-abc", nil
		},
	}
	h := NewHandler(svc)

	body, _ := json.Marshal(map[string]string{
		"name":     "Alice Guard",
		"email":    "alice@example.com",
		"password": "Secr3t!pass",
		"role":     common.RoleGuard,
	})
	req := httptest.NewRequest("POST", "/api/v1/auth/register", bytes.NewReader(body))
	rec := httptest.NewRecorder()
	h.Register(rec, req)

	assert.Equal(t, http.StatusCreated, rec.Code)
	var resp common.Response
	require.NoError(t, json.NewDecoder(rec.Body).Decode(&resp))
	assert.True(t, resp.Success)
	data := resp.Data.(map[string]interface{})
	assert.Equal(t, "tok-abc", data["token"])
	user := data["user"].(map[string]interface{})
	assert.Equal(t, "user-1", user["id"])
	assert.NotContains(t, user, "password_hash")
}

func TestHandler_Register_BadBody(t *testing.T) {
	h := NewHandler(&fakeUserService{})

	req := httptest.NewRequest("POST", "/api/v1/auth/register", bytes.NewReader([]byte("{broken")))
	rec := httptest.NewRecorder()
	h.Register(rec, req)

	assert.Equal(t, http.StatusBadRequest, rec.Code)
}

func TestHandler_Login_InvalidCredentials(t *testing.T) {
	svc := &fakeUserService{
		loginFn: func(ctx context.Context, email, password string) (*dbmysql.User, string, error) {
			return nil, "", status.Error(codes.Unauthenticated, "invalid email or password")
		},
	}
	h := NewHandler(svc)

	body, _ := json.Marshal(map[string]string{"email": "alice@example.com", "password": "wrong"})
	req := httptest.NewRequest("POST", "/api/v1/auth/login", bytes.NewReader(body))
	rec := httptest.NewRecorder()
	h.Login(rec, req)

	assert.Equal(t, http.StatusUnauthorized, rec.Code)
	var resp common.Response
	require.NoError(t, json.NewDecoder(rec.Body).Decode(&resp))
	assert.False(t, resp.Success)
}

func TestHandler_Me(t *testing.T) {
	svc := &fakeUserService{
		profileFn: func(ctx context.Context, userID string) (*dbmysql.User, error) {
			assert.Equal(t, "user-1", userID)
			return &dbmysql.User{UserID: "user-1", Name: "Alice", Email: "alice@example.com", Role: common.RoleGuard, Status: common.StatusActive}, nil
		},
	}
	h := NewHandler(svc)

	req := httptest.NewRequest("GET", "/api/v1/users/me", nil)
	req = req.WithContext(common.ContextWithActor(req.Context(), "user-1", common.RoleGuard))
	rec := httptest.NewRecorder()
	h.Me(rec, req)

	assert.Equal(t, http.StatusOK, rec.Code)
	var resp common.Response
	require.NoError(t, json.NewDecoder(rec.Body).Decode(&resp))
	data := resp.Data.(map[string]interface{})
	assert.Equal(t, "alice@example.com", data["email"])
}

func TestHandler_Me_Unauthenticated(t *testing.T) {
	h := NewHandler(&fakeUserService{})

	req := httptest.NewRequest("GET", "/api/v1/users/me", nil)
	rec := httptest.NewRecorder()
	h.Me(rec, req)

	assert.Equal(t, http.StatusUnauthorized, rec.Code)
}

func TestHandler_ListUsers_FilterParsing(t *testing.T) {
	svc := &fakeUserService{
		listUsersFn: func(ctx context.Context, filter UserFilter) ([]*dbmysql.User, int64, error) {
			assert.Equal(t, common.RoleGuard, filter.Role)
			assert.Equal(t, common.StatusActive, filter.Status)
			assert.Equal(t, "smith", filter.Search)
			assert.Equal(t, 2, filter.Page)
			assert.Equal(t, 20, filter.Limit)
			return []*dbmysql.User{{UserID: "user-1"}}, 41, nil
		},
	}
	h := NewHandler(svc)

	req := httptest.NewRequest("GET", "/api/v1/admin/users?role=guard&status=active&search=smith&page=2&limit=20", nil)
	rec := httptest.NewRecorder()
	h.ListUsers(rec, req)

	assert.Equal(t, http.StatusOK, rec.Code)
	var resp common.Response
	require.NoError(t, json.NewDecoder(rec.Body).Decode(&resp))
	data := resp.Data.(map[string]interface{})
	assert.EqualValues(t, 41, data["total_users"])
	assert.Len(t, data["users"], 1)
}

func TestHandler_GetUser_NotFound(t *testing.T) {
	svc := &fakeUserService{
		profileFn: func(ctx context.Context, userID string) (*dbmysql.User, error) {
			return nil, status.Error(codes.NotFound, "user not found")
		},
	}
	h := NewHandler(svc)

	router := mux.NewRouter()
	router.HandleFunc("/api/v1/admin/users/{userId}", h.GetUser).Methods("GET")

	req := httptest.NewRequest("GET", "/api/v1/admin/users/ghost", nil)
	rec := httptest.NewRecorder()
	router.ServeHTTP(rec, req)

	assert.Equal(t, http.StatusNotFound, rec.Code)
}

func TestHandler_DeleteUser(t *testing.T) {
	var deleted string
	svc := &fakeUserService{
		deleteFn: func(ctx context.Context, userID string) error {
			deleted = userID
			return nil
		},
	}
	h := NewHandler(svc)

	router := mux.NewRouter()
	router.HandleFunc("/api/v1/admin/users/{userId}", h.DeleteUser).Methods("DELETE")

	req := httptest.NewRequest("DELETE", "/api/v1/admin/users/user-9", nil)
	rec := httptest.NewRecorder()
	router.ServeHTTP(rec, req)

	assert.Equal(t, http.StatusOK, rec.Code)
	assert.Equal(t, "user-9", deleted)
}
