package worker

import (
	"github.com/nesthome/lead-service/internal/service"
)

// StartAuditWorker registers the audit event handlers.
func StartAuditWorker(auditService *service.AuditService) {
	if auditService == nil {
		return
	}
	auditService.RegisterHandlers()
}
