package postgres

import (
	"context"

	"github.com/redis/go-redis/v9"
	"gorm.io/gorm"

	"github.com/edusync-app/school-service/internal/cache"
	"github.com/edusync-app/school-service/internal/repositories"
)

// PostgreSQLRepository implements the main Repository interface
type PostgreSQLRepository struct {
	db           *gorm.DB
	redisClient  *redis.Client
	cacheManager *cache.CacheManager

	// Repository instances
	user         repositories.UserRepository
	teacher      repositories.TeacherRepository
	student      repositories.StudentRepository
	academic     repositories.AcademicRepository
	class        repositories.ClassRepository
	assignment   repositories.AssignmentRepository
	records      repositories.RecordsRepository
	notification repositories.NotificationRepository
	resource     repositories.ResourceRepository
}

// RepositoryConfig holds configuration for repository initialization
type RepositoryConfig struct {
	DB          *gorm.DB
	RedisClient *redis.Client
}

// NewPostgreSQLRepository creates a new repository manager with all sub-repositories
func NewPostgreSQLRepository(config RepositoryConfig) repositories.Repository {
	cacheManager := cache.NewCacheManager(config.RedisClient)

	repo := &PostgreSQLRepository{
		db:           config.DB,
		redisClient:  config.RedisClient,
		cacheManager: cacheManager,
	}
	repo.initSubRepositories(config.DB)

	return repo
}

func (r *PostgreSQLRepository) initSubRepositories(db *gorm.DB) {
	r.user = NewUserPostgreSQL(db, r.cacheManager)
	r.teacher = NewTeacherPostgreSQL(db)
	r.student = NewStudentPostgreSQL(db)
	r.academic = NewAcademicPostgreSQL(db)
	r.class = NewClassPostgreSQL(db)
	r.assignment = NewAssignmentPostgreSQL(db)
	r.records = NewRecordsPostgreSQL(db)
	r.notification = NewNotificationPostgreSQL(db)
	r.resource = NewResourcePostgreSQL(db)
}

func (r *PostgreSQLRepository) User() repositories.UserRepository             { return r.user }
func (r *PostgreSQLRepository) Teacher() repositories.TeacherRepository       { return r.teacher }
func (r *PostgreSQLRepository) Student() repositories.StudentRepository       { return r.student }
func (r *PostgreSQLRepository) Academic() repositories.AcademicRepository     { return r.academic }
func (r *PostgreSQLRepository) Class() repositories.ClassRepository           { return r.class }
func (r *PostgreSQLRepository) Assignment() repositories.AssignmentRepository { return r.assignment }
func (r *PostgreSQLRepository) Records() repositories.RecordsRepository       { return r.records }
func (r *PostgreSQLRepository) Notification() repositories.NotificationRepository {
	return r.notification
}
func (r *PostgreSQLRepository) Resource() repositories.ResourceRepository { return r.resource }

// WithTransaction runs fn against a tx-scoped Repository. Any error from
// fn rolls the whole transaction back; nothing partial survives.
func (r *PostgreSQLRepository) WithTransaction(ctx context.Context, fn func(repositories.Repository) error) error {
	return r.db.WithContext(ctx).Transaction(func(tx *gorm.DB) error {
		txRepo := &PostgreSQLRepository{
			db:           tx,
			redisClient:  r.redisClient,
			cacheManager: r.cacheManager,
		}
		txRepo.initSubRepositories(tx)
		return fn(txRepo)
	})
}

func (r *PostgreSQLRepository) Ping(ctx context.Context) error {
	sqlDB, err := r.db.DB()
	if err != nil {
		return err
	}
	return sqlDB.PingContext(ctx)
}

func (r *PostgreSQLRepository) Close() error {
	sqlDB, err := r.db.DB()
	if err != nil {
		return err
	}
	return sqlDB.Close()
}
