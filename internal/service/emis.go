package service

import (
	"fmt"
	"sort"
	"time"

	"github.com/smartexpense/smartexpense/internal/models"
	"github.com/smartexpense/smartexpense/internal/schedule"
)

// EMIInput carries the user-editable EMI fields
type EMIInput struct {
	Name      string
	Amount    float64
	EMIType   string
	DueDay    int
	StartDate time.Time
	EndDate   time.Time
}

// EMIDetail is one EMI with its full installment schedule grouped by month
type EMIDetail struct {
	EMI    *models.EMI        `json:"emi"`
	Months []InstallmentMonth `json:"months"`
}

// InstallmentMonth groups a month's installments, months descending
type InstallmentMonth struct {
	Month        string                 `json:"month"` // Format: YYYY-MM
	Installments []schedule.Installment `json:"installments"`
}

// CreateEMI creates an installment plan. The EMI type must be one of the
// user's configured types; the stored name takes the configured casing.
func (s *Service) CreateEMI(userID int64, in EMIInput) (*models.EMI, error) {
	emiType, err := s.repo.FindEMITypeByName(userID, in.EMIType)
	if err != nil {
		return nil, fmt.Errorf("emi type %q is not configured: %w", in.EMIType, ErrInvalidInput)
	}

	emi := &models.EMI{
		UserID:    userID,
		Name:      in.Name,
		Amount:    in.Amount,
		EMIType:   emiType.Name,
		DueDay:    in.DueDay,
		StartDate: in.StartDate,
		EndDate:   in.EndDate,
		TotalEMIs: schedule.InstallmentCount(in.StartDate, in.EndDate),
	}
	if err := s.repo.CreateEMI(emi); err != nil {
		return nil, err
	}
	s.log.Infof("EMI %q created for user %d: %d installments", emi.Name, userID, emi.TotalEMIs)
	return emi, nil
}

// ListEMIs returns the user's EMIs with paid marks and next-due decorations
func (s *Service) ListEMIs(userID int64) ([]models.EMI, error) {
	emis, err := s.repo.ListEMIs(userID)
	if err != nil {
		return nil, err
	}

	now := time.Now().UTC()
	for i := range emis {
		paid := make(map[schedule.Cycle]bool, len(emis[i].PaidMarks))
		for _, mark := range emis[i].PaidMarks {
			paid[schedule.Cycle{Year: mark.Year, Month: time.Month(mark.Month)}] = true
		}
		plan := schedule.Plan{StartDate: emis[i].StartDate, EndDate: emis[i].EndDate, DueDay: emis[i].DueDay}
		if due := schedule.NextDue(plan, paid, now); due != nil {
			days := schedule.DaysUntil(*due, now)
			emis[i].NextDueAt = due
			emis[i].NextDueInDays = days
			emis[i].ShowMarkPaid = schedule.ShowMarkPaid(days)
		}
	}
	return emis, nil
}

// UpdateEMI edits an installment plan, recomputing the installment count
func (s *Service) UpdateEMI(userID, id int64, in EMIInput) (*models.EMI, error) {
	emi, err := s.repo.FindEMI(userID, id)
	if err != nil {
		return nil, err
	}
	emiType, err := s.repo.FindEMITypeByName(userID, in.EMIType)
	if err != nil {
		return nil, fmt.Errorf("emi type %q is not configured: %w", in.EMIType, ErrInvalidInput)
	}

	emi.Name = in.Name
	emi.Amount = in.Amount
	emi.EMIType = emiType.Name
	emi.DueDay = in.DueDay
	emi.StartDate = in.StartDate
	emi.EndDate = in.EndDate
	emi.TotalEMIs = schedule.InstallmentCount(in.StartDate, in.EndDate)
	if err := s.repo.UpdateEMI(emi); err != nil {
		return nil, err
	}
	return emi, nil
}

// DeleteEMI removes an EMI and its paid marks
func (s *Service) DeleteEMI(userID, id int64) error {
	if err := s.repo.DeleteEMI(userID, id); err != nil {
		return err
	}
	s.log.Infof("EMI %d deleted for user %d", id, userID)
	return nil
}

// EMIDetail returns one EMI with its installment schedule grouped by month,
// months descending and installments within a month by due date descending.
func (s *Service) EMIDetail(userID, id int64) (*EMIDetail, error) {
	emi, err := s.repo.FindEMI(userID, id)
	if err != nil {
		return nil, err
	}

	// Latest mark wins when a cycle was somehow marked twice.
	paid := make(map[schedule.Cycle]time.Time)
	for _, mark := range emi.PaidMarks {
		cycle := schedule.Cycle{Year: mark.Year, Month: time.Month(mark.Month)}
		if existing, ok := paid[cycle]; !ok || mark.PaidDate.After(existing) {
			paid[cycle] = mark.PaidDate
		}
	}

	plan := schedule.Plan{StartDate: emi.StartDate, EndDate: emi.EndDate, DueDay: emi.DueDay}
	installments := schedule.ScheduleFor(plan, paid)

	grouped := make(map[string][]schedule.Installment)
	for _, inst := range installments {
		key := inst.DueDate.Format("2006-01")
		grouped[key] = append(grouped[key], inst)
	}
	months := make([]InstallmentMonth, 0, len(grouped))
	for key, insts := range grouped {
		sort.SliceStable(insts, func(i, j int) bool {
			return insts[i].DueDate.After(insts[j].DueDate)
		})
		months = append(months, InstallmentMonth{Month: key, Installments: insts})
	}
	sort.SliceStable(months, func(i, j int) bool {
		return months[i].Month > months[j].Month
	})

	return &EMIDetail{EMI: emi, Months: months}, nil
}
