package tasks

import "context"

// ScheduledTaskFunc defines the signature for functions that can be run by
// the scheduler.
type ScheduledTaskFunc func(ctx context.Context) error

// RegisterAllTasks builds the map of known scheduled tasks, keyed by the
// names used in the scheduler configuration.
func RegisterAllTasks(deps TaskDeps) map[string]ScheduledTaskFunc {
	return map[string]ScheduledTaskFunc{
		"sql_maintenance":    newSQLMaintenanceTask(deps),
		"tournament_refresh": newTournamentRefreshTask(deps),
	}
}
