package repo

import (
	"context"
	"errors"
	"path/filepath"
	"testing"

	"github.com/4GeeksAcademy/deimianvasquez-todolist-api-49/pkg/model"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"gorm.io/driver/sqlite"
	"gorm.io/gorm"
)

func setupTestDB(t *testing.T) *gorm.DB {
	dsn := "file:" + filepath.Join(t.TempDir(), "test.db") + "?_fk=1"
	db, err := gorm.Open(sqlite.Open(dsn), &gorm.Config{TranslateError: true})
	require.NoError(t, err)
	require.NoError(t, db.AutoMigrate(&model.User{}, &model.Todo{}))
	return db
}

func TestUserRepository_CreateAndGet(t *testing.T) {
	db := setupTestDB(t)
	repo := NewUserRepository(db)
	ctx := context.Background()

	user := &model.User{Username: "ana", Email: "ana@example.com"}
	err := repo.CreateUser(ctx, user)
	require.NoError(t, err)
	assert.NotZero(t, user.ID, "user ID should be set after creation")
	assert.False(t, user.CreatedAt.IsZero(), "CreatedAt should be set")
	assert.Equal(t, model.DefaultAvatar, user.Avatar, "avatar should default when unset")

	got, err := repo.GetUser(ctx, user.ID)
	require.NoError(t, err)
	assert.Equal(t, "ana", got.Username)
	assert.Equal(t, "ana@example.com", got.Email)
	assert.Empty(t, got.Todos)
}

func TestUserRepository_GetMissing(t *testing.T) {
	db := setupTestDB(t)
	repo := NewUserRepository(db)

	_, err := repo.GetUser(context.Background(), 999)
	require.Error(t, err)
	assert.True(t, errors.Is(err, gorm.ErrRecordNotFound))
}

func TestUserRepository_DuplicateUsername(t *testing.T) {
	db := setupTestDB(t)
	repo := NewUserRepository(db)
	ctx := context.Background()

	require.NoError(t, repo.CreateUser(ctx, &model.User{Username: "ana", Email: "ana@example.com"}))

	err := repo.CreateUser(ctx, &model.User{Username: "ana", Email: "other@example.com"})
	require.Error(t, err)
	assert.True(t, errors.Is(err, gorm.ErrDuplicatedKey), "expected duplicate key error, got %v", err)

	var count int64
	require.NoError(t, db.Model(&model.User{}).Count(&count).Error)
	assert.Equal(t, int64(1), count, "duplicate create must not add a row")
}

func TestUserRepository_DuplicateEmail(t *testing.T) {
	db := setupTestDB(t)
	repo := NewUserRepository(db)
	ctx := context.Background()

	require.NoError(t, repo.CreateUser(ctx, &model.User{Username: "ana", Email: "ana@example.com"}))

	err := repo.CreateUser(ctx, &model.User{Username: "bob", Email: "ana@example.com"})
	require.Error(t, err)
	assert.True(t, errors.Is(err, gorm.ErrDuplicatedKey))
}

func TestUserRepository_DeleteCascadesTodos(t *testing.T) {
	db := setupTestDB(t)
	users := NewUserRepository(db)
	todos := NewTodoRepository(db)
	ctx := context.Background()

	user := &model.User{Username: "ana", Email: "ana@example.com"}
	require.NoError(t, users.CreateUser(ctx, user))

	first := &model.Todo{Label: "buy milk", UserID: user.ID}
	second := &model.Todo{Label: "walk the dog", UserID: user.ID}
	require.NoError(t, todos.CreateTodo(ctx, first))
	require.NoError(t, todos.CreateTodo(ctx, second))

	require.NoError(t, users.DeleteUser(ctx, user))

	_, err := users.GetUser(ctx, user.ID)
	assert.True(t, errors.Is(err, gorm.ErrRecordNotFound))

	for _, id := range []uint{first.ID, second.ID} {
		_, err := todos.GetTodo(ctx, id)
		assert.True(t, errors.Is(err, gorm.ErrRecordNotFound), "todo %d should be gone after owner delete", id)
	}
}

func TestTodoRepository_CreateWithDanglingUser(t *testing.T) {
	db := setupTestDB(t)
	todos := NewTodoRepository(db)

	err := todos.CreateTodo(context.Background(), &model.Todo{Label: "orphan", UserID: 999})
	require.Error(t, err)
	assert.True(t, errors.Is(err, gorm.ErrForeignKeyViolated), "expected foreign key violation, got %v", err)
}

func TestTodoRepository_Update(t *testing.T) {
	db := setupTestDB(t)
	users := NewUserRepository(db)
	todos := NewTodoRepository(db)
	ctx := context.Background()

	user := &model.User{Username: "ana", Email: "ana@example.com"}
	require.NoError(t, users.CreateUser(ctx, user))

	todo := &model.Todo{Label: "buy milk", UserID: user.ID}
	require.NoError(t, todos.CreateTodo(ctx, todo))
	assert.False(t, todo.IsDone, "is_done should default to false")

	todo.Label = "buy oat milk"
	todo.IsDone = true
	require.NoError(t, todos.UpdateTodo(ctx, todo))

	got, err := todos.GetTodo(ctx, todo.ID)
	require.NoError(t, err)
	assert.Equal(t, "buy oat milk", got.Label)
	assert.True(t, got.IsDone)
	assert.Equal(t, user.ID, got.UserID)
}

func TestUserRepository_ListPreloadsTodos(t *testing.T) {
	db := setupTestDB(t)
	users := NewUserRepository(db)
	todos := NewTodoRepository(db)
	ctx := context.Background()

	user := &model.User{Username: "ana", Email: "ana@example.com"}
	require.NoError(t, users.CreateUser(ctx, user))
	require.NoError(t, todos.CreateTodo(ctx, &model.Todo{Label: "buy milk", UserID: user.ID}))

	all, err := users.ListUsers(ctx)
	require.NoError(t, err)
	require.Len(t, all, 1)
	require.Len(t, all[0].Todos, 1)
	assert.Equal(t, "buy milk", all[0].Todos[0].Label)
}
