package tracking

import (
	"context"
	"strings"
	"time"

	"baby-tracker-go/internal/domain/errs"
	"baby-tracker-go/internal/domain/household"
)

type CreateMedicineInput struct {
	Name      string
	Dosage    string
	Unit      *string
	Frequency *string
	Notes     *string
}

type UpdateMedicineInput struct {
	Name      *string
	Dosage    *string
	Unit      *string
	Frequency *string
	IsActive  *bool
	Notes     *string
}

// LogDoseInput identifies the medicine by id, or by name when the id is empty.
type LogDoseInput struct {
	MedicineID   string
	MedicineName string
	Time         *time.Time
	DosageGiven  *string
	Skipped      bool
	Notes        *string
}

func (s *Service) CreateMedicine(ctx context.Context, m household.Membership, childID string, input CreateMedicineInput) (*Medicine, error) {
	if err := canWrite(m); err != nil {
		return nil, err
	}

	name := strings.TrimSpace(input.Name)
	dosage := strings.TrimSpace(input.Dosage)
	if name == "" {
		return nil, errs.BadRequestf("medicine name is required")
	}
	if dosage == "" {
		return nil, errs.BadRequestf("dosage is required")
	}

	medicine := Medicine{
		ID:        newID(),
		ChildID:   childID,
		Name:      name,
		Dosage:    dosage,
		Unit:      cleanText(input.Unit),
		Frequency: cleanText(input.Frequency),
		IsActive:  true,
		Notes:     cleanText(input.Notes),
		CreatedBy: m.UserID,
	}
	if err := s.repo.CreateMedicine(ctx, &medicine); err != nil {
		return nil, err
	}

	s.publish(m, childID, CategoryMedicine, ActionCreated, medicine.ID, medicine)
	return &medicine, nil
}

func (s *Service) UpdateMedicine(ctx context.Context, m household.Membership, childID, medicineID string, input UpdateMedicineInput) (*Medicine, error) {
	if err := canWrite(m); err != nil {
		return nil, err
	}

	medicine, err := s.repo.GetMedicine(ctx, childID, medicineID)
	if err != nil {
		return nil, err
	}
	if input.Name != nil {
		name := strings.TrimSpace(*input.Name)
		if name == "" {
			return nil, errs.BadRequestf("medicine name is required")
		}
		medicine.Name = name
	}
	if input.Dosage != nil {
		dosage := strings.TrimSpace(*input.Dosage)
		if dosage == "" {
			return nil, errs.BadRequestf("dosage is required")
		}
		medicine.Dosage = dosage
	}
	if input.Unit != nil {
		medicine.Unit = cleanText(input.Unit)
	}
	if input.Frequency != nil {
		medicine.Frequency = cleanText(input.Frequency)
	}
	if input.IsActive != nil {
		medicine.IsActive = *input.IsActive
	}
	if input.Notes != nil {
		medicine.Notes = cleanText(input.Notes)
	}
	medicine.UpdatedAt = s.now().UTC()

	if err := s.repo.UpdateMedicine(ctx, medicine); err != nil {
		return nil, err
	}

	s.publish(m, childID, CategoryMedicine, ActionUpdated, medicine.ID, medicine)
	return medicine, nil
}

// DeactivateMedicine hides a medicine from active lists while keeping its dose history.
func (s *Service) DeactivateMedicine(ctx context.Context, m household.Membership, childID, medicineID string) (*Medicine, error) {
	inactive := false
	return s.UpdateMedicine(ctx, m, childID, medicineID, UpdateMedicineInput{IsActive: &inactive})
}

func (s *Service) ListMedicines(ctx context.Context, m household.Membership, childID string, activeOnly bool) ([]Medicine, error) {
	if err := canRead(m); err != nil {
		return nil, err
	}
	return s.repo.ListMedicines(ctx, childID, activeOnly)
}

func (s *Service) LogMedicineDose(ctx context.Context, m household.Membership, childID string, input LogDoseInput) (*MedicineRecord, error) {
	if err := canWrite(m); err != nil {
		return nil, err
	}

	var (
		medicine *Medicine
		err      error
	)
	switch {
	case strings.TrimSpace(input.MedicineID) != "":
		medicine, err = s.repo.GetMedicine(ctx, childID, strings.TrimSpace(input.MedicineID))
	case strings.TrimSpace(input.MedicineName) != "":
		medicine, err = s.repo.FindMedicineByName(ctx, childID, strings.TrimSpace(input.MedicineName))
	default:
		return nil, errs.BadRequestf("medicine id or name is required")
	}
	if err != nil {
		return nil, err
	}
	if !medicine.IsActive {
		return nil, ErrMedicineInactive
	}

	dosage := cleanText(input.DosageGiven)
	if dosage == nil && !input.Skipped {
		dosage = &medicine.Dosage
	}

	record := MedicineRecord{
		ID:           newID(),
		ChildID:      childID,
		MedicineID:   medicine.ID,
		Time:         s.at(input.Time),
		DosageGiven:  dosage,
		Skipped:      input.Skipped,
		Notes:        cleanText(input.Notes),
		CreatedBy:    m.UserID,
		MedicineName: medicine.Name,
	}
	if err := s.repo.CreateMedicineRecord(ctx, &record); err != nil {
		return nil, err
	}

	s.publish(m, childID, CategoryMedicine, ActionCreated, record.ID, record)
	return &record, nil
}

func (s *Service) DeleteMedicineDose(ctx context.Context, m household.Membership, childID, recordID string) error {
	if err := canWrite(m); err != nil {
		return err
	}
	deleted, err := s.repo.DeleteMedicineRecord(ctx, childID, recordID)
	if err != nil {
		return err
	}
	if !deleted {
		return ErrMedicineRecordNotFound
	}

	s.publish(m, childID, CategoryMedicine, ActionDeleted, recordID, nil)
	return nil
}

func (s *Service) ListMedicineDoses(ctx context.Context, m household.Membership, childID string, filter Filter) ([]MedicineRecord, error) {
	if err := canRead(m); err != nil {
		return nil, err
	}
	return s.repo.ListMedicineRecords(ctx, childID, normalizeFilter(filter))
}
