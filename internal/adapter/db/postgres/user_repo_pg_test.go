package postgres

import (
	"context"
	"fmt"
	"testing"

	"github.com/glebarez/sqlite"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.uber.org/zap/zaptest"
	"gorm.io/gorm"
	gormlogger "gorm.io/gorm/logger"

	"user-web-service/internal/domain/user"
	"user-web-service/pkg/apperrors"
)

func setupTestRepo(t *testing.T) *UserRepoPG {
	db, err := gorm.Open(sqlite.Open(":memory:"), &gorm.Config{
		TranslateError: true,
		Logger:         gormlogger.Default.LogMode(gormlogger.Silent),
	})
	require.NoError(t, err)

	repo := NewUserRepoPG(db, zaptest.NewLogger(t))
	require.NoError(t, repo.Migrate())
	return repo
}

func seedUsers(t *testing.T, repo *UserRepoPG, users ...user.User) []user.User {
	created := make([]user.User, 0, len(users))
	for _, u := range users {
		stored, err := repo.Create(context.Background(), &u)
		require.NoError(t, err)
		created = append(created, *stored)
	}
	return created
}

func TestUserRepoPG_CreateAndGet(t *testing.T) {
	repo := setupTestRepo(t)
	ctx := context.Background()

	created, err := repo.Create(ctx, &user.User{Name: "John Doe", Email: "john@example.com"})
	require.NoError(t, err)
	assert.NotZero(t, created.ID)
	assert.False(t, created.CreatedAt.IsZero())

	fetched, err := repo.GetByID(ctx, created.ID)
	require.NoError(t, err)
	assert.Equal(t, created.ID, fetched.ID)
	assert.Equal(t, "John Doe", fetched.Name)
	assert.Equal(t, "john@example.com", fetched.Email)
}

func TestUserRepoPG_Create_DuplicateEmail(t *testing.T) {
	repo := setupTestRepo(t)
	ctx := context.Background()

	seedUsers(t, repo, user.User{Name: "John Doe", Email: "john@example.com"})

	_, err := repo.Create(ctx, &user.User{Name: "John Clone", Email: "john@example.com"})
	require.Error(t, err)

	var exists *apperrors.AlreadyExistsError
	assert.ErrorAs(t, err, &exists)
}

func TestUserRepoPG_GetByID_NotFound(t *testing.T) {
	repo := setupTestRepo(t)

	_, err := repo.GetByID(context.Background(), 12345)
	require.Error(t, err)

	var notFound *apperrors.NotFoundError
	assert.ErrorAs(t, err, &notFound)
}

func TestUserRepoPG_GetByEmail(t *testing.T) {
	repo := setupTestRepo(t)
	ctx := context.Background()

	seedUsers(t, repo, user.User{Name: "Jane Smith", Email: "jane@example.com"})

	found, err := repo.GetByEmail(ctx, "jane@example.com")
	require.NoError(t, err)
	require.NotNil(t, found)
	assert.Equal(t, "Jane Smith", found.Name)

	// Missing email is not an error, just a nil result.
	missing, err := repo.GetByEmail(ctx, "nobody@example.com")
	require.NoError(t, err)
	assert.Nil(t, missing)
}

func TestUserRepoPG_Update(t *testing.T) {
	repo := setupTestRepo(t)
	ctx := context.Background()

	created := seedUsers(t, repo, user.User{Name: "John Doe", Email: "john@example.com"})[0]

	updated, err := repo.Update(ctx, &user.User{
		ID:    created.ID,
		Name:  "John Updated",
		Email: "john.updated@example.com",
	})
	require.NoError(t, err)
	assert.Equal(t, created.ID, updated.ID)
	assert.Equal(t, "John Updated", updated.Name)
	assert.Equal(t, "john.updated@example.com", updated.Email)

	fetched, err := repo.GetByID(ctx, created.ID)
	require.NoError(t, err)
	assert.Equal(t, "John Updated", fetched.Name)
}

func TestUserRepoPG_Update_NotFound(t *testing.T) {
	repo := setupTestRepo(t)

	_, err := repo.Update(context.Background(), &user.User{ID: 999, Name: "Ghost", Email: "ghost@example.com"})
	require.Error(t, err)

	var notFound *apperrors.NotFoundError
	assert.ErrorAs(t, err, &notFound)
}

func TestUserRepoPG_Delete(t *testing.T) {
	repo := setupTestRepo(t)
	ctx := context.Background()

	created := seedUsers(t, repo, user.User{Name: "John Doe", Email: "john@example.com"})[0]

	require.NoError(t, repo.Delete(ctx, created.ID))

	_, err := repo.GetByID(ctx, created.ID)
	var notFound *apperrors.NotFoundError
	assert.ErrorAs(t, err, &notFound)

	// Deleting again reports not found.
	err = repo.Delete(ctx, created.ID)
	assert.ErrorAs(t, err, &notFound)
}

func TestUserRepoPG_List_Pagination(t *testing.T) {
	repo := setupTestRepo(t)
	ctx := context.Background()

	for i := 1; i <= 25; i++ {
		seedUsers(t, repo, user.User{
			Name:  fmt.Sprintf("User %02d", i),
			Email: fmt.Sprintf("user%02d@example.com", i),
		})
	}

	users, total, err := repo.List(ctx, "", 1, 10)
	require.NoError(t, err)
	assert.Equal(t, int64(25), total)
	assert.Len(t, users, 10)
	assert.Equal(t, "User 01", users[0].Name)

	users, total, err = repo.List(ctx, "", 3, 10)
	require.NoError(t, err)
	assert.Equal(t, int64(25), total)
	assert.Len(t, users, 5)
	assert.Equal(t, "User 21", users[0].Name)
}

func TestUserRepoPG_List_Search(t *testing.T) {
	repo := setupTestRepo(t)
	ctx := context.Background()

	seedUsers(t, repo,
		user.User{Name: "John Doe", Email: "john@example.com"},
		user.User{Name: "jane smith", Email: "jane@example.com"},
		user.User{Name: "ADMIN User", Email: "admin@example.com"},
	)

	tests := []struct {
		name        string
		query       string
		expectCount int
		expectTotal int64
	}{
		{name: "lowercase match", query: "john", expectCount: 1, expectTotal: 1},
		{name: "uppercase match", query: "JOHN", expectCount: 1, expectTotal: 1},
		{name: "matches name and email", query: "Admin", expectCount: 1, expectTotal: 1},
		{name: "domain matches everyone", query: "example.com", expectCount: 3, expectTotal: 3},
		{name: "no match", query: "nobody", expectCount: 0, expectTotal: 0},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			users, total, err := repo.List(ctx, tt.query, 1, 10)
			require.NoError(t, err)
			assert.Len(t, users, tt.expectCount)
			assert.Equal(t, tt.expectTotal, total)
		})
	}
}

func TestUserRepoPG_List_RejectsDangerousQueries(t *testing.T) {
	repo := setupTestRepo(t)
	ctx := context.Background()

	for _, query := range []string{
		"john UNION SELECT * FROM users",
		"john; DROP TABLE users",
		"john --",
		"<script>alert('x')</script>",
	} {
		_, _, err := repo.List(ctx, query, 1, 10)
		require.Error(t, err, "query %q should be rejected", query)

		var validation *apperrors.ValidationError
		assert.ErrorAs(t, err, &validation)
	}
}

func TestUserRepoPG_List_WildcardEscaping(t *testing.T) {
	repo := setupTestRepo(t)
	ctx := context.Background()

	seedUsers(t, repo,
		user.User{Name: "John%Test", Email: "percent@example.com"},
		user.User{Name: "Jane_Test", Email: "underscore@example.com"},
		user.User{Name: "Admin", Email: "admin@example.com"},
	)

	users, total, err := repo.List(ctx, "John%Test", 1, 10)
	require.NoError(t, err)
	assert.Equal(t, int64(1), total)
	require.Len(t, users, 1)
	assert.Equal(t, "John%Test", users[0].Name)

	// A bare % must not act as a match-everything wildcard.
	_, total, err = repo.List(ctx, "zzz%", 1, 10)
	require.NoError(t, err)
	assert.Equal(t, int64(0), total)
}
