package services

import (
	"context"
	"time"

	"gatepass/internal/adapters/persistence/repositories"
	"gatepass/internal/core/domain"
)

// recentPassLimit caps the recent activity list
const recentPassLimit = 5

// DashboardService summarizes the snapshot for staff and students
type DashboardService struct {
	repo repositories.SnapshotRepository
	now  func() time.Time
}

// NewDashboardService creates a new dashboard service
func NewDashboardService(repo repositories.SnapshotRepository) *DashboardService {
	return &DashboardService{
		repo: repo,
		now:  time.Now,
	}
}

// ============================================================
// Staff Dashboard
// ============================================================

// PassCounts counts passes by status
type PassCounts struct {
	Total    int `json:"total"`
	Pending  int `json:"pending"`
	Approved int `json:"approved"`
	Rejected int `json:"rejected"`
	Other    int `json:"other"`
}

func (p *PassCounts) add(pass *domain.Pass) {
	p.Total++
	switch pass.Status {
	case domain.PassStatusPending:
		p.Pending++
	case domain.PassStatusApproved:
		p.Approved++
	case domain.PassStatusRejected:
		p.Rejected++
	default:
		p.Other++
	}
}

// StaffDashboardData represents the moderator/gatekeeper/admin overview
type StaffDashboardData struct {
	// User Statistics
	TotalUsers  int            `json:"totalUsers"`
	UsersByRole map[string]int `json:"usersByRole"`

	// Pass Statistics
	Passes         PassCounts `json:"passes"`
	RequestedToday int        `json:"requestedToday"`
	UsedToday      int        `json:"usedToday"`

	// Recent Activity, newest first
	RecentPasses []domain.Pass `json:"recentPasses"`
}

// GetStaffDashboard returns the system overview
func (s *DashboardService) GetStaffDashboard(ctx context.Context) *StaffDashboardData {
	snapshot := s.repo.Load(ctx)
	startOfDay := s.startOfDay()

	data := &StaffDashboardData{
		TotalUsers:   len(snapshot.Users),
		UsersByRole:  map[string]int{},
		RecentPasses: []domain.Pass{},
	}

	for _, u := range snapshot.Users {
		data.UsersByRole[string(u.Role)]++
	}

	for i := range snapshot.Passes {
		p := &snapshot.Passes[i]
		data.Passes.add(p)
		if !p.RequestedAt.Before(startOfDay) {
			data.RequestedToday++
		}
		if p.UsedAt != nil && !p.UsedAt.Before(startOfDay) {
			data.UsedToday++
		}
	}

	for i := len(snapshot.Passes) - 1; i >= 0 && len(data.RecentPasses) < recentPassLimit; i-- {
		data.RecentPasses = append(data.RecentPasses, snapshot.Passes[i])
	}

	return data
}

// ============================================================
// Student Dashboard
// ============================================================

// StudentDashboardData represents one student's pass overview
type StudentDashboardData struct {
	StudentID string     `json:"studentId"`
	Passes    PassCounts `json:"passes"`
	// Latest approved pass not yet used at the gate
	ActivePass *domain.Pass `json:"activePass"`
	LatestPass *domain.Pass `json:"latestPass"`
}

// GetStudentDashboard returns the pass overview of one student
func (s *DashboardService) GetStudentDashboard(ctx context.Context, studentID string) *StudentDashboardData {
	snapshot := s.repo.Load(ctx)
	data := &StudentDashboardData{StudentID: studentID}

	for i := range snapshot.Passes {
		p := snapshot.Passes[i]
		if p.StudentID != studentID {
			continue
		}
		data.Passes.add(&p)
		data.LatestPass = &p
		if p.IsApproved() && !p.IsUsed() {
			data.ActivePass = &p
		}
	}

	return data
}

// startOfDay returns today's midnight in UTC, matching stored timestamps
func (s *DashboardService) startOfDay() time.Time {
	now := s.now().UTC()
	return time.Date(now.Year(), now.Month(), now.Day(), 0, 0, 0, 0, time.UTC)
}
