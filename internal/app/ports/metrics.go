package ports

import "clawcolony/internal/domain/colony"

type SchedulerMetrics interface {
	RecordProduction(role colony.Role)
	RecordRejection()
	RecordSkip(reason string)
	RecordRoleChange(from, to colony.Role)
}
