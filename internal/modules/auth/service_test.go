package auth

import (
	"context"
	"testing"

	"intraportal/internal/domain"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/mock"
	"go.uber.org/zap"
	"golang.org/x/crypto/bcrypt"
	"gorm.io/gorm"
)

type mockUserRepo struct {
	mock.Mock
}

func (m *mockUserRepo) Create(ctx context.Context, u *domain.User) error {
	args := m.Called(ctx, u)
	return args.Error(0)
}

func (m *mockUserRepo) GetByID(ctx context.Context, id int64) (*domain.User, error) {
	args := m.Called(ctx, id)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*domain.User), args.Error(1)
}

func (m *mockUserRepo) GetByEmail(ctx context.Context, email string) (*domain.User, error) {
	args := m.Called(ctx, email)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*domain.User), args.Error(1)
}

type mockTokenIssuer struct {
	mock.Mock
}

func (m *mockTokenIssuer) GenerateToken(userID int64, email, name, sector, role string) (string, error) {
	args := m.Called(userID, email, name, sector, role)
	return args.String(0), args.Error(1)
}

type mockProfileInitializer struct {
	mock.Mock
}

func (m *mockProfileInitializer) InitUser(ctx context.Context, user *domain.User) (*domain.UserAggregate, error) {
	args := m.Called(ctx, user)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*domain.UserAggregate), args.Error(1)
}

func newAuthService() (*Service, *mockUserRepo, *mockTokenIssuer, *mockProfileInitializer) {
	users := new(mockUserRepo)
	issuer := new(mockTokenIssuer)
	profiles := new(mockProfileInitializer)
	return NewService(users, issuer, profiles, zap.NewNop()), users, issuer, profiles
}

func hashed(password string) string {
	h, _ := bcrypt.GenerateFromPassword([]byte(password), bcrypt.MinCost)
	return string(h)
}

func TestRegister_Success(t *testing.T) {
	svc, users, _, profiles := newAuthService()

	users.On("GetByEmail", mock.Anything, "ana.souza@portal.local").Return(nil, gorm.ErrRecordNotFound)
	users.On("Create", mock.Anything, mock.Anything).Run(func(args mock.Arguments) {
		args.Get(1).(*domain.User).ID = 3
	}).Return(nil)
	profiles.On("InitUser", mock.Anything, mock.Anything).Return(&domain.UserAggregate{UserID: 3, Level: 1}, nil)

	user, err := svc.Register(context.Background(), RegisterRequest{
		Name: "Ana Souza", Email: "Ana.Souza@portal.local", Sector: "Financeiro", Password: "senha123",
	})

	assert.NoError(t, err)
	assert.Equal(t, int64(3), user.ID)
	assert.Equal(t, "ana.souza@portal.local", user.Email)
	assert.Equal(t, domain.RoleEmployee, user.Role)
	assert.Empty(t, user.PasswordHash)
	profiles.AssertNumberOfCalls(t, "InitUser", 1)
}

func TestRegister_DuplicateEmail(t *testing.T) {
	svc, users, _, _ := newAuthService()

	users.On("GetByEmail", mock.Anything, "ana.souza@portal.local").Return(&domain.User{ID: 3}, nil)

	_, err := svc.Register(context.Background(), RegisterRequest{
		Name: "Ana Souza", Email: "ana.souza@portal.local", Password: "senha123",
	})

	assert.ErrorIs(t, err, ErrEmailAlreadyExists)
	users.AssertNotCalled(t, "Create", mock.Anything, mock.Anything)
}

func TestLogin_Success(t *testing.T) {
	svc, users, issuer, profiles := newAuthService()

	stored := &domain.User{
		ID: 3, Email: "ana.souza@portal.local", Name: "Ana Souza",
		Sector: "Financeiro", Role: domain.RoleEmployee, PasswordHash: hashed("senha123"),
	}
	users.On("GetByEmail", mock.Anything, "ana.souza@portal.local").Return(stored, nil)
	issuer.On("GenerateToken", int64(3), "ana.souza@portal.local", "Ana Souza", "Financeiro", "employee").
		Return("signed-token", nil)
	profiles.On("InitUser", mock.Anything, mock.Anything).Return(&domain.UserAggregate{UserID: 3, Level: 1}, nil)

	result, err := svc.Login(context.Background(), LoginRequest{
		Email: "ana.souza@portal.local", Password: "senha123",
	})

	assert.NoError(t, err)
	assert.Equal(t, "signed-token", result.AccessToken)
	assert.Empty(t, result.User.PasswordHash)
}

func TestLogin_WrongPassword(t *testing.T) {
	svc, users, issuer, _ := newAuthService()

	stored := &domain.User{ID: 3, Email: "ana.souza@portal.local", PasswordHash: hashed("senha123")}
	users.On("GetByEmail", mock.Anything, "ana.souza@portal.local").Return(stored, nil)

	_, err := svc.Login(context.Background(), LoginRequest{
		Email: "ana.souza@portal.local", Password: "errada",
	})

	assert.ErrorIs(t, err, ErrInvalidCredentials)
	issuer.AssertNotCalled(t, "GenerateToken", mock.Anything, mock.Anything, mock.Anything, mock.Anything, mock.Anything)
}

func TestLogin_UnknownEmail(t *testing.T) {
	svc, users, _, _ := newAuthService()

	users.On("GetByEmail", mock.Anything, "ghost@portal.local").Return(nil, gorm.ErrRecordNotFound)

	_, err := svc.Login(context.Background(), LoginRequest{Email: "ghost@portal.local", Password: "x"})
	assert.ErrorIs(t, err, ErrInvalidCredentials)
}

func TestCurrentUser_StripsHash(t *testing.T) {
	svc, users, _, _ := newAuthService()

	users.On("GetByID", mock.Anything, int64(3)).Return(&domain.User{ID: 3, PasswordHash: "secret"}, nil)

	user, err := svc.CurrentUser(context.Background(), 3)
	assert.NoError(t, err)
	assert.Empty(t, user.PasswordHash)
}
