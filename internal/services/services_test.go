package services

import (
	"context"
	"sync"

	"github.com/stretchr/testify/suite"
	"github.com/yukikurage/task-tracker-api/internal/audit"
	"github.com/yukikurage/task-tracker-api/internal/auth"
	"github.com/yukikurage/task-tracker-api/internal/cache"
	"github.com/yukikurage/task-tracker-api/internal/models"
	"github.com/yukikurage/task-tracker-api/internal/repository"
	"golang.org/x/crypto/bcrypt"
	"gorm.io/driver/sqlite"
	"gorm.io/gorm"
	"gorm.io/gorm/logger"
)

const testPassword = "correct-horse"

// countingStore records namespace evictions.
type countingStore struct {
	*cache.MemoryStore
	mu        sync.Mutex
	evictions map[cache.Namespace]int
}

func newCountingStore() *countingStore {
	return &countingStore{MemoryStore: cache.NewMemoryStore(), evictions: map[cache.Namespace]int{}}
}

func (s *countingStore) EvictNamespace(ctx context.Context, ns cache.Namespace) error {
	s.mu.Lock()
	s.evictions[ns]++
	s.mu.Unlock()
	return s.MemoryStore.EvictNamespace(ctx, ns)
}

func (s *countingStore) evicted(ns cache.Namespace) int {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.evictions[ns]
}

// recordingSink keeps audit events in memory.
type recordingSink struct {
	mu     sync.Mutex
	events []audit.Event
}

func (s *recordingSink) Record(_ context.Context, e audit.Event) {
	s.mu.Lock()
	s.events = append(s.events, e)
	s.mu.Unlock()
}

func (s *recordingSink) last() audit.Event {
	s.mu.Lock()
	defer s.mu.Unlock()
	if len(s.events) == 0 {
		return audit.Event{}
	}
	return s.events[len(s.events)-1]
}

// serviceSuite wires repositories over an in-memory SQLite database.
type serviceSuite struct {
	suite.Suite
	ctx       context.Context
	db        *gorm.DB
	store     *countingStore
	cache     *cache.Cache
	sink      *recordingSink
	passwords *auth.BcryptVerifier
	users     repository.UserRepository
	tasks     repository.TaskRepository
	comments  repository.CommentRepository
}

func (s *serviceSuite) SetupTest() {
	var err error
	s.db, err = gorm.Open(sqlite.Open(":memory:"), &gorm.Config{Logger: logger.Default.LogMode(logger.Silent)})
	s.Require().NoError(err)
	sqlDB, err := s.db.DB()
	s.Require().NoError(err)
	sqlDB.SetMaxOpenConns(1)
	s.Require().NoError(s.db.AutoMigrate(&models.User{}, &models.Task{}, &models.Comment{}))

	s.ctx = context.Background()
	s.store = newCountingStore()
	s.cache = cache.New(s.store)
	s.sink = &recordingSink{}
	s.passwords = auth.NewBcryptVerifier(bcrypt.MinCost)
	s.users = repository.NewUserRepository(s.db)
	s.tasks = repository.NewTaskRepository(s.db)
	s.comments = repository.NewCommentRepository(s.db)
}

func (s *serviceSuite) TearDownTest() {
	sqlDB, err := s.db.DB()
	s.Require().NoError(err)
	sqlDB.Close()
}

func (s *serviceSuite) createUser(email string, roles ...models.Role) (*models.User, auth.ActingUser) {
	hash, err := s.passwords.Hash(testPassword)
	s.Require().NoError(err)
	if len(roles) == 0 {
		roles = []models.Role{models.RoleUser}
	}
	user := &models.User{
		FirstName:    "Test",
		LastName:     "User",
		Email:        email,
		PasswordHash: hash,
		Enabled:      true,
		Roles:        roles,
	}
	s.Require().NoError(s.users.Create(s.ctx, user))
	return user, auth.FromUser(user)
}

func (s *serviceSuite) createTask(title string, authorID, assigneeID uint64) *models.Task {
	task := &models.Task{
		Title:       title,
		Description: "description",
		Status:      models.TaskStatusTodo,
		Priority:    models.TaskPriorityMedium,
		AuthorID:    authorID,
		AssigneeID:  assigneeID,
		CreatedBy:   authorID,
	}
	s.Require().NoError(s.tasks.Create(s.ctx, task))
	return task
}

func (s *serviceSuite) createComment(content string, taskID, authorID uint64) *models.Comment {
	comment := &models.Comment{Content: content, TaskID: taskID, AuthorID: authorID, CreatedBy: authorID}
	s.Require().NoError(s.comments.Create(s.ctx, comment))
	return comment
}

func (s *serviceSuite) countTasks() int64 {
	var n int64
	s.Require().NoError(s.db.Unscoped().Model(&models.Task{}).Count(&n).Error)
	return n
}
