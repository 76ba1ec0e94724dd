package services

import (
	"context"
	"encoding/json"
	"log"
	"time"

	"gatepass/internal/adapters/persistence/repositories"
	"gatepass/internal/core/domain"
	"gatepass/internal/pkg/idgen"
)

// PassService owns the pass lifecycle: pending -> approved/rejected -> used
type PassService struct {
	repo     repositories.SnapshotRepository
	notifier PassNotifier
	now      func() time.Time
}

// NewPassService creates a new pass service. notifier may be nil.
func NewPassService(repo repositories.SnapshotRepository, notifier PassNotifier) *PassService {
	return &PassService{
		repo:     repo,
		notifier: notifier,
		now:      time.Now,
	}
}

// CreatePassInput represents a pass request. No field is required.
type CreatePassInput struct {
	StudentID   string  `json:"studentId" form:"studentId"`
	StudentName string  `json:"studentName" form:"studentName"`
	Reason      string  `json:"reason" form:"reason"`
	Category    string  `json:"category" form:"category"`
	ReturnTime  *string `json:"returnTime" form:"returnTime"`
	Notes       string  `json:"notes" form:"notes"`
}

// UnmarshalJSON accepts numbers and booleans for every field
func (in *CreatePassInput) UnmarshalJSON(data []byte) error {
	var aux struct {
		StudentID   domain.Scalar  `json:"studentId"`
		StudentName domain.Scalar  `json:"studentName"`
		Reason      domain.Scalar  `json:"reason"`
		Category    domain.Scalar  `json:"category"`
		ReturnTime  *domain.Scalar `json:"returnTime"`
		Notes       domain.Scalar  `json:"notes"`
	}
	if err := json.Unmarshal(data, &aux); err != nil {
		return err
	}

	in.StudentID = aux.StudentID.String()
	in.StudentName = aux.StudentName.String()
	in.Reason = aux.Reason.String()
	in.Category = aux.Category.String()
	in.ReturnTime = aux.ReturnTime.StringPtr()
	in.Notes = aux.Notes.String()
	return nil
}

// UpdateStatusInput represents a moderator decision. Status is not validated.
// A missing status or remark is stored as the empty string.
type UpdateStatusInput struct {
	Status           string `json:"status" form:"status"`
	ModeratorRemarks string `json:"moderatorRemarks" form:"moderatorRemarks"`
}

// UnmarshalJSON accepts numbers and booleans for both fields
func (in *UpdateStatusInput) UnmarshalJSON(data []byte) error {
	var aux struct {
		Status           domain.Scalar `json:"status"`
		ModeratorRemarks domain.Scalar `json:"moderatorRemarks"`
	}
	if err := json.Unmarshal(data, &aux); err != nil {
		return err
	}

	in.Status = aux.Status.String()
	in.ModeratorRemarks = aux.ModeratorRemarks.String()
	return nil
}

// timestamp returns the current time at millisecond precision
func (s *PassService) timestamp() time.Time {
	return s.now().UTC().Truncate(time.Millisecond)
}

// Create stores a new pending pass
func (s *PassService) Create(ctx context.Context, input *CreatePassInput) (*domain.Pass, error) {
	var pass domain.Pass
	err := s.repo.Update(ctx, func(snapshot *domain.Snapshot) error {
		now := s.timestamp()
		pass = domain.Pass{
			ID:          idgen.NewAt(now),
			StudentID:   input.StudentID,
			StudentName: input.StudentName,
			Reason:      input.Reason,
			Category:    input.Category,
			ReturnTime:  input.ReturnTime,
			Notes:       input.Notes,
			Status:      domain.PassStatusPending,
			RequestedAt: now,
		}
		if pass.Category == "" {
			pass.Category = domain.DefaultPassCategory
		}
		if pass.ReturnTime != nil && *pass.ReturnTime == "" {
			pass.ReturnTime = nil
		}
		snapshot.Passes = append(snapshot.Passes, pass)
		return nil
	})
	if err != nil {
		return nil, err
	}

	passOperationsTotal.WithLabelValues("create", statusLabel(pass.Status)).Inc()
	if s.notifier != nil {
		s.notifier.NotifyPassCreated(&pass)
	}
	return &pass, nil
}

// ListAll returns every pass in creation order
func (s *PassService) ListAll(ctx context.Context) []domain.Pass {
	return s.repo.Load(ctx).Passes
}

// ListByStudent returns the passes of one student in creation order
func (s *PassService) ListByStudent(ctx context.Context, studentID string) []domain.Pass {
	passes := []domain.Pass{}
	for _, p := range s.repo.Load(ctx).Passes {
		if p.StudentID == studentID {
			passes = append(passes, p)
		}
	}
	return passes
}

// GetByID returns one pass
func (s *PassService) GetByID(ctx context.Context, passID string) (*domain.Pass, error) {
	snapshot := s.repo.Load(ctx)
	i := snapshot.FindPass(passID)
	if i < 0 {
		return nil, domain.ErrPassNotFound
	}
	pass := snapshot.Passes[i]
	return &pass, nil
}

// UpdateStatus overwrites status and remarks from any state.
// Every transition to "approved" refreshes approvedAt.
func (s *PassService) UpdateStatus(ctx context.Context, passID string, input *UpdateStatusInput) (*domain.Pass, error) {
	var pass domain.Pass
	err := s.repo.Update(ctx, func(snapshot *domain.Snapshot) error {
		i := snapshot.FindPass(passID)
		if i < 0 {
			return domain.ErrPassNotFound
		}

		p := &snapshot.Passes[i]
		p.Status = input.Status
		p.ModeratorRemarks = input.ModeratorRemarks
		if input.Status == domain.PassStatusApproved {
			now := s.timestamp()
			p.ApprovedAt = &now
		}
		pass = *p
		return nil
	})
	if err != nil {
		return nil, err
	}

	log.Printf("✅ Pass %s status set to %q", pass.ID, pass.Status)
	passOperationsTotal.WithLabelValues("update_status", statusLabel(pass.Status)).Inc()
	if s.notifier != nil {
		s.notifier.NotifyStatusChanged(&pass)
	}
	return &pass, nil
}

// MarkUsed records gate exit/entry. Only approved passes can be used;
// using a pass again overwrites usedAt.
func (s *PassService) MarkUsed(ctx context.Context, passID string) (*domain.Pass, error) {
	var pass domain.Pass
	err := s.repo.Update(ctx, func(snapshot *domain.Snapshot) error {
		i := snapshot.FindPass(passID)
		if i < 0 {
			return domain.ErrPassNotFound
		}

		p := &snapshot.Passes[i]
		if !p.IsApproved() {
			return domain.ErrPassNotApproved
		}
		now := s.timestamp()
		p.UsedAt = &now
		pass = *p
		return nil
	})
	if err != nil {
		return nil, err
	}

	log.Printf("✅ Pass %s used at gate", pass.ID)
	passOperationsTotal.WithLabelValues("mark_used", statusLabel(pass.Status)).Inc()
	if s.notifier != nil {
		s.notifier.NotifyPassUsed(&pass)
	}
	return &pass, nil
}
