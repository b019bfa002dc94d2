package app

import (
	"context"
	"os/signal"
	"syscall"

	apperrors "github.com/abenson/pbbdash/internal/errors"
	"github.com/abenson/pbbdash/internal/server"
)

// runServe runs the dashboard HTTP server until interrupted.
func (a *Application) runServe(ctx context.Context) int {
	ctx, stopSignals := signal.NotifyContext(ctx, syscall.SIGINT, syscall.SIGTERM)
	defer stopSignals()

	caller, provider, store := a.collaborators()

	srv := server.NewServer(
		server.Config{
			Addr:                  a.Config.Addr,
			OrgURL:                a.Config.OrgURL,
			OrgName:               a.Config.OrgName,
			ProgramsPerDepartment: a.Config.ProgramsPerDepartment,
			CostThreshold:         a.Config.CostThreshold,
			Insights:              a.Config.Insights,
			LiveScoring:           a.Config.LiveScoring,
		},
		caller,
		provider,
		a.Config.Endpoints,
		store,
		server.WithServerLogger(a.Logger),
	)

	if err := srv.Run(ctx); err != nil {
		a.Logger.Error("server stopped", err)
		return apperrors.ExitErrorGeneric
	}
	return apperrors.ExitSuccess
}
