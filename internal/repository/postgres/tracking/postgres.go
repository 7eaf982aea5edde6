package tracking

import (
	"context"
	"errors"

	"baby-tracker-go/internal/db"
	domain "baby-tracker-go/internal/domain/tracking"
	"gorm.io/gorm"
)

type PostgresRepository struct {
	db *gorm.DB
}

func NewPostgres(db *gorm.DB) *PostgresRepository {
	return &PostgresRepository{db: db}
}

func (r *PostgresRepository) Transaction(ctx context.Context, fn func(domain.Repository) error) error {
	return r.db.WithContext(ctx).Transaction(func(tx *gorm.DB) error {
		return fn(&PostgresRepository{db: tx})
	})
}

// timeColumns names the columns a category is ordered and windowed by.
type timeColumns struct {
	start string
	end   string
}

var (
	intervalColumns = timeColumns{start: "start_time", end: "end_time"}
	occurredColumns = timeColumns{start: "occurred_at"}
	measuredColumns = timeColumns{start: "measured_at"}
)

// applyWindow keeps interval records that overlap the window in any way and
// point records whose instant falls inside [From, To).
func applyWindow(query *gorm.DB, cols timeColumns, filter domain.Filter) *gorm.DB {
	if cols.end == "" {
		if filter.From != nil {
			query = query.Where(cols.start+" >= ?", filter.From.UTC())
		}
		if filter.To != nil {
			query = query.Where(cols.start+" < ?", filter.To.UTC())
		}
		return query
	}

	start, end := cols.start, cols.end
	switch {
	case filter.From != nil && filter.To != nil:
		from, to := filter.From.UTC(), filter.To.UTC()
		query = query.Where(
			"(("+start+" >= ? AND "+start+" < ?) OR ("+end+" >= ? AND "+end+" < ?) OR ("+start+" < ? AND "+end+" >= ?) OR ("+end+" IS NULL AND "+start+" < ?))",
			from, to, from, to, from, to, to,
		)
	case filter.From != nil:
		query = query.Where("("+end+" IS NULL OR "+end+" >= ? OR "+start+" >= ?)", filter.From.UTC(), filter.From.UTC())
	case filter.To != nil:
		query = query.Where(start+" < ?", filter.To.UTC())
	}

	if filter.CompletedOnly {
		query = query.Where(end + " IS NOT NULL")
	}
	return query
}

func list[T any](ctx context.Context, conn *gorm.DB, childID string, cols timeColumns, filter domain.Filter) ([]T, error) {
	records := make([]T, 0)
	query := applyWindow(conn.WithContext(ctx).Where("child_id = ?", childID), cols, filter).
		Order(cols.start + " desc")
	if filter.Limit > 0 {
		query = query.Limit(filter.Limit)
	}
	if err := query.Find(&records).Error; err != nil {
		return nil, err
	}
	return records, nil
}

func get[T any](ctx context.Context, conn *gorm.DB, childID, recordID string, notFound error) (*T, error) {
	var record T
	err := conn.WithContext(ctx).Where("id = ? AND child_id = ?", recordID, childID).Take(&record).Error
	if errors.Is(err, gorm.ErrRecordNotFound) {
		return nil, notFound
	}
	if err != nil {
		return nil, err
	}
	return &record, nil
}

// latest returns the newest row matching conds ordered by column.
func latest[T any](ctx context.Context, conn *gorm.DB, column string, notFound error, conds ...func(*gorm.DB) *gorm.DB) (*T, error) {
	var record T
	query := conn.WithContext(ctx)
	for _, cond := range conds {
		query = cond(query)
	}
	err := query.Order(column + " desc").Take(&record).Error
	if errors.Is(err, gorm.ErrRecordNotFound) {
		return nil, notFound
	}
	if err != nil {
		return nil, err
	}
	return &record, nil
}

func create[T any](ctx context.Context, conn *gorm.DB, record *T, conflict error) error {
	err := conn.WithContext(ctx).Create(record).Error
	if conflict != nil && db.IsUniqueViolation(err) {
		return conflict
	}
	return err
}

func update[T any](ctx context.Context, conn *gorm.DB, record *T, conflict error) error {
	err := conn.WithContext(ctx).Save(record).Error
	if conflict != nil && db.IsUniqueViolation(err) {
		return conflict
	}
	return err
}

func remove[T any](ctx context.Context, conn *gorm.DB, childID, recordID string) (bool, error) {
	var model T
	result := conn.WithContext(ctx).Where("id = ? AND child_id = ?", recordID, childID).Delete(&model)
	if result.Error != nil {
		return false, result.Error
	}
	return result.RowsAffected > 0, nil
}

func forChild(childID string) func(*gorm.DB) *gorm.DB {
	return func(q *gorm.DB) *gorm.DB {
		return q.Where("child_id = ?", childID)
	}
}

func completed(q *gorm.DB) *gorm.DB {
	return q.Where("end_time IS NOT NULL")
}

func running(q *gorm.DB) *gorm.DB {
	return q.Where("end_time IS NULL")
}
