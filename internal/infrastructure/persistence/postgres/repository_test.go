package postgres

import (
	"context"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"gorm.io/driver/sqlite"
	"gorm.io/gorm"
	gormlogger "gorm.io/gorm/logger"

	"github.com/taskforge/taskforge/internal/domain/models"
	"github.com/taskforge/taskforge/pkg/constants"
	"github.com/taskforge/taskforge/pkg/errors"
	"github.com/taskforge/taskforge/pkg/logger"
)

// newTestDB opens a private in-memory database with the full schema.
func newTestDB(t *testing.T) *gorm.DB {
	t.Helper()

	db, err := gorm.Open(sqlite.Open(":memory:"), &gorm.Config{
		Logger: gormlogger.Default.LogMode(gormlogger.Silent),
	})
	require.NoError(t, err)

	// Every pooled connection gets its own in-memory database; pin the
	// pool to one connection so the schema stays visible.
	sqlDB, err := db.DB()
	require.NoError(t, err)
	sqlDB.SetMaxOpenConns(1)

	require.NoError(t, Migrate(db))
	return db
}

func newProject(owner, name string) *models.Project {
	start := time.Date(2026, 9, 1, 0, 0, 0, 0, time.UTC)
	end := start.AddDate(0, 3, 0)
	return &models.Project{
		Name:                 name,
		Description:          "proyecto de prueba",
		StartDate:            &start,
		EstimatedEndDate:     &end,
		EstimatedEffortHours: 120,
		ParticipantsCount:    3,
		Status:               constants.ProjectStatusPlanned,
		OwnerUsername:        owner,
		Tags:                 []string{"backend", "crm"},
	}
}

func TestProjectSaveAndFindByID(t *testing.T) {
	db := newTestDB(t)
	repo := NewProjectRepository(db, logger.NewNoopLogger())
	ctx := context.Background()

	project := newProject("alice", "Migración CRM")
	require.NoError(t, repo.Save(ctx, project))
	require.NotZero(t, project.ID)
	assert.False(t, project.CreatedAt.IsZero())

	found, err := repo.FindByID(ctx, project.ID)
	require.NoError(t, err)
	assert.Equal(t, "Migración CRM", found.Name)
	assert.Equal(t, "alice", found.OwnerUsername)
	assert.Equal(t, constants.ProjectStatusPlanned, found.Status)
	assert.Equal(t, []string{"backend", "crm"}, found.Tags)
}

func TestProjectFindByIDNotFound(t *testing.T) {
	db := newTestDB(t)
	repo := NewProjectRepository(db, logger.NewNoopLogger())

	_, err := repo.FindByID(context.Background(), 9999)
	require.Error(t, err)
	assert.True(t, errors.IsNotFound(err))
}

func TestProjectFindByOwnerIsScopedAndOrdered(t *testing.T) {
	db := newTestDB(t)
	repo := NewProjectRepository(db, logger.NewNoopLogger())
	ctx := context.Background()

	require.NoError(t, repo.Save(ctx, newProject("alice", "Primero")))
	require.NoError(t, repo.Save(ctx, newProject("bob", "Ajena")))
	require.NoError(t, repo.Save(ctx, newProject("alice", "Segundo")))

	projects, err := repo.FindByOwner(ctx, "alice")
	require.NoError(t, err)
	require.Len(t, projects, 2)
	for _, p := range projects {
		assert.Equal(t, "alice", p.OwnerUsername)
	}

	empty, err := repo.FindByOwner(ctx, "nadie")
	require.NoError(t, err)
	assert.Empty(t, empty)
}

func newTask(projectID uint, title string, position int) *models.Task {
	due := time.Date(2026, 10, 15, 0, 0, 0, 0, time.UTC)
	return &models.Task{
		Title:      title,
		ProjectID:  projectID,
		AssignedTo: "alice",
		Status:     constants.TaskStatusTodo,
		Priority:   constants.TaskPriorityHigh,
		DueDate:    &due,
		Position:   position,
		Tags:       []string{"db"},
	}
}

func TestTaskSaveAndFindByID(t *testing.T) {
	db := newTestDB(t)
	projects := NewProjectRepository(db, logger.NewNoopLogger())
	tasks := NewTaskRepository(db, logger.NewNoopLogger())
	ctx := context.Background()

	project := newProject("alice", "Migración CRM")
	require.NoError(t, projects.Save(ctx, project))

	task := newTask(project.ID, "Diseñar el esquema", 1)
	require.NoError(t, tasks.Save(ctx, task))
	require.NotZero(t, task.ID)

	found, err := tasks.FindByID(ctx, task.ID)
	require.NoError(t, err)
	assert.Equal(t, "Diseñar el esquema", found.Title)
	assert.Equal(t, project.ID, found.ProjectID)
	assert.Equal(t, constants.TaskPriorityHigh, found.Priority)
}

func TestTaskFindByIDNotFound(t *testing.T) {
	db := newTestDB(t)
	tasks := NewTaskRepository(db, logger.NewNoopLogger())

	_, err := tasks.FindByID(context.Background(), 9999)
	require.Error(t, err)
	assert.True(t, errors.IsNotFound(err))
}

func TestTaskFindByProjectIDOrderedByPosition(t *testing.T) {
	db := newTestDB(t)
	projects := NewProjectRepository(db, logger.NewNoopLogger())
	tasks := NewTaskRepository(db, logger.NewNoopLogger())
	ctx := context.Background()

	project := newProject("alice", "Migración CRM")
	require.NoError(t, projects.Save(ctx, project))
	other := newProject("alice", "Otro proyecto")
	require.NoError(t, projects.Save(ctx, other))

	require.NoError(t, tasks.Save(ctx, newTask(project.ID, "Tercera", 3)))
	require.NoError(t, tasks.Save(ctx, newTask(project.ID, "Primera", 1)))
	require.NoError(t, tasks.Save(ctx, newTask(project.ID, "Segunda", 2)))
	require.NoError(t, tasks.Save(ctx, newTask(other.ID, "Ajena", 1)))

	list, err := tasks.FindByProjectID(ctx, project.ID)
	require.NoError(t, err)
	require.Len(t, list, 3)
	assert.Equal(t, "Primera", list[0].Title)
	assert.Equal(t, "Segunda", list[1].Title)
	assert.Equal(t, "Tercera", list[2].Title)
}

func TestTaskFindByAssignee(t *testing.T) {
	db := newTestDB(t)
	projects := NewProjectRepository(db, logger.NewNoopLogger())
	tasks := NewTaskRepository(db, logger.NewNoopLogger())
	ctx := context.Background()

	project := newProject("alice", "Migración CRM")
	require.NoError(t, projects.Save(ctx, project))

	mine := newTask(project.ID, "Mía", 1)
	require.NoError(t, tasks.Save(ctx, mine))
	theirs := newTask(project.ID, "De bob", 2)
	theirs.AssignedTo = "bob"
	require.NoError(t, tasks.Save(ctx, theirs))

	list, err := tasks.FindByAssignee(ctx, "alice")
	require.NoError(t, err)
	require.Len(t, list, 1)
	assert.Equal(t, "Mía", list[0].Title)
}
