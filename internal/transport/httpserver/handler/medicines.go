package handler

import (
	"net/http"
	"time"

	"baby-tracker-go/internal/domain/tracking"
)

type createMedicineRequest struct {
	Name      string  `json:"name"`
	Dosage    string  `json:"dosage"`
	Unit      *string `json:"unit"`
	Frequency *string `json:"frequency"`
	Notes     *string `json:"notes"`
}

type updateMedicineRequest struct {
	Name      *string `json:"name"`
	Dosage    *string `json:"dosage"`
	Unit      *string `json:"unit"`
	Frequency *string `json:"frequency"`
	IsActive  *bool   `json:"isActive"`
	Notes     *string `json:"notes"`
}

type logDoseRequest struct {
	MedicineID   string     `json:"medicineId"`
	MedicineName string     `json:"medicineName"`
	Time         *time.Time `json:"time"`
	DosageGiven  *string    `json:"dosageGiven"`
	Skipped      bool       `json:"skipped"`
	Notes        *string    `json:"notes"`
}

// ListMedicines returns active medicines unless all=true.
func (h *Handlers) ListMedicines(w http.ResponseWriter, r *http.Request) {
	m, childID, ok := scope(w, r)
	if !ok {
		return
	}
	activeOnly := !parseBoolParam(r.URL.Query().Get("all"))

	medicines, err := h.Tracking.ListMedicines(r.Context(), m, childID, activeOnly)
	h.reply(w, "medicines.list", http.StatusOK, listOf(medicines), err, "child_id", childID)
}

func (h *Handlers) CreateMedicine(w http.ResponseWriter, r *http.Request) {
	var req createMedicineRequest
	if err := decodeJSON(r, &req); err != nil {
		invalidJSON(w)
		return
	}
	m, childID, ok := scope(w, r)
	if !ok {
		return
	}

	medicine, err := h.Tracking.CreateMedicine(r.Context(), m, childID, tracking.CreateMedicineInput{
		Name:      req.Name,
		Dosage:    req.Dosage,
		Unit:      req.Unit,
		Frequency: req.Frequency,
		Notes:     req.Notes,
	})
	h.reply(w, "medicines.create", http.StatusCreated, medicine, err, "child_id", childID, "user_id", m.UserID)
}

func (h *Handlers) UpdateMedicine(w http.ResponseWriter, r *http.Request) {
	var req updateMedicineRequest
	if err := decodeJSON(r, &req); err != nil {
		invalidJSON(w)
		return
	}
	m, childID, ok := scope(w, r)
	if !ok {
		return
	}
	medicineID := pathParam(r, "id")

	medicine, err := h.Tracking.UpdateMedicine(r.Context(), m, childID, medicineID, tracking.UpdateMedicineInput{
		Name:      req.Name,
		Dosage:    req.Dosage,
		Unit:      req.Unit,
		Frequency: req.Frequency,
		IsActive:  req.IsActive,
		Notes:     req.Notes,
	})
	h.reply(w, "medicines.update", http.StatusOK, medicine, err, "child_id", childID, "medicine_id", medicineID)
}

// DeactivateMedicine backs DELETE; the medicine and its dose history are kept.
func (h *Handlers) DeactivateMedicine(w http.ResponseWriter, r *http.Request) {
	m, childID, ok := scope(w, r)
	if !ok {
		return
	}
	medicineID := pathParam(r, "id")

	medicine, err := h.Tracking.DeactivateMedicine(r.Context(), m, childID, medicineID)
	h.reply(w, "medicines.deactivate", http.StatusOK, medicine, err, "child_id", childID, "medicine_id", medicineID)
}

func (h *Handlers) ListMedicineDoses(w http.ResponseWriter, r *http.Request) {
	m, childID, ok := scope(w, r)
	if !ok {
		return
	}
	filter, err := h.listFilter(r)
	if err != nil {
		invalidRequest(w, err.Error())
		return
	}

	records, err := h.Tracking.ListMedicineDoses(r.Context(), m, childID, filter)
	h.reply(w, "medicines.doses", http.StatusOK, listOf(records), err, "child_id", childID)
}

func (h *Handlers) LogMedicineDose(w http.ResponseWriter, r *http.Request) {
	var req logDoseRequest
	if err := decodeJSON(r, &req); err != nil {
		invalidJSON(w)
		return
	}
	m, childID, ok := scope(w, r)
	if !ok {
		return
	}

	record, err := h.Tracking.LogMedicineDose(r.Context(), m, childID, tracking.LogDoseInput{
		MedicineID:   req.MedicineID,
		MedicineName: req.MedicineName,
		Time:         req.Time,
		DosageGiven:  req.DosageGiven,
		Skipped:      req.Skipped,
		Notes:        req.Notes,
	})
	h.reply(w, "medicines.log_dose", http.StatusCreated, record, err, "child_id", childID, "user_id", m.UserID)
}

func (h *Handlers) DeleteMedicineDose(w http.ResponseWriter, r *http.Request) {
	m, childID, ok := scope(w, r)
	if !ok {
		return
	}
	recordID := pathParam(r, "id")

	err := h.Tracking.DeleteMedicineDose(r.Context(), m, childID, recordID)
	h.reply(w, "medicines.delete_dose", http.StatusNoContent, nil, err, "child_id", childID, "record_id", recordID)
}
