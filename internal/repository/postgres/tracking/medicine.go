package tracking

import (
	"context"
	"errors"
	"strings"

	domain "baby-tracker-go/internal/domain/tracking"
	"gorm.io/gorm"
)

const medicineRecordSelect = "medicine_records.*, medicines.name AS medicine_name"

func (r *PostgresRepository) ListMedicines(ctx context.Context, childID string, activeOnly bool) ([]domain.Medicine, error) {
	medicines := make([]domain.Medicine, 0)
	query := r.db.WithContext(ctx).Where("child_id = ?", childID)
	if activeOnly {
		query = query.Where("is_active = ?", true)
	}
	if err := query.Order("name asc").Find(&medicines).Error; err != nil {
		return nil, err
	}
	return medicines, nil
}

func (r *PostgresRepository) GetMedicine(ctx context.Context, childID, medicineID string) (*domain.Medicine, error) {
	return get[domain.Medicine](ctx, r.db, childID, medicineID, domain.ErrMedicineNotFound)
}

// FindMedicineByName matches case-insensitively, preferring active medicines.
func (r *PostgresRepository) FindMedicineByName(ctx context.Context, childID, name string) (*domain.Medicine, error) {
	var medicine domain.Medicine
	err := r.db.WithContext(ctx).
		Where("child_id = ? AND LOWER(name) = ?", childID, strings.ToLower(strings.TrimSpace(name))).
		Order("is_active desc").
		Order("created_at desc").
		Take(&medicine).Error
	if errors.Is(err, gorm.ErrRecordNotFound) {
		return nil, domain.ErrMedicineNotFound
	}
	if err != nil {
		return nil, err
	}
	return &medicine, nil
}

func (r *PostgresRepository) CreateMedicine(ctx context.Context, medicine *domain.Medicine) error {
	return r.db.WithContext(ctx).Create(medicine).Error
}

func (r *PostgresRepository) UpdateMedicine(ctx context.Context, medicine *domain.Medicine) error {
	return r.db.WithContext(ctx).Save(medicine).Error
}

func (r *PostgresRepository) ListMedicineRecords(ctx context.Context, childID string, filter domain.Filter) ([]domain.MedicineRecord, error) {
	records := make([]domain.MedicineRecord, 0)
	query := r.db.WithContext(ctx).
		Model(&domain.MedicineRecord{}).
		Select(medicineRecordSelect).
		Joins("LEFT JOIN medicines ON medicines.id = medicine_records.medicine_id").
		Where("medicine_records.child_id = ?", childID)
	query = applyWindow(query, timeColumns{start: "medicine_records.occurred_at"}, filter).
		Order("medicine_records.occurred_at desc")
	if filter.Limit > 0 {
		query = query.Limit(filter.Limit)
	}
	if err := query.Find(&records).Error; err != nil {
		return nil, err
	}
	return records, nil
}

func (r *PostgresRepository) LatestMedicineRecord(ctx context.Context, childID string) (*domain.MedicineRecord, error) {
	records, err := r.ListMedicineRecords(ctx, childID, domain.Filter{Limit: 1})
	if err != nil {
		return nil, err
	}
	if len(records) == 0 {
		return nil, domain.ErrMedicineRecordNotFound
	}
	return &records[0], nil
}

func (r *PostgresRepository) CreateMedicineRecord(ctx context.Context, record *domain.MedicineRecord) error {
	return r.db.WithContext(ctx).Create(record).Error
}

func (r *PostgresRepository) DeleteMedicineRecord(ctx context.Context, childID, recordID string) (bool, error) {
	return remove[domain.MedicineRecord](ctx, r.db, childID, recordID)
}
