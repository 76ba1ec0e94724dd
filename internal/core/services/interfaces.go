package services

import "gatepass/internal/core/domain"

// Note: AuthService implementation is in auth_service.go
// Note: PassService implementation is in pass_service.go

// PassNotifier receives pass lifecycle events after they are persisted
type PassNotifier interface {
	NotifyPassCreated(pass *domain.Pass)
	NotifyStatusChanged(pass *domain.Pass)
	NotifyPassUsed(pass *domain.Pass)
}
