package inbound

import (
	"context"

	"github.com/Dakshp001/SOC-Central-sub003/internal/ingest/analytics"
	"github.com/Dakshp001/SOC-Central-sub003/internal/ingest/audit"
	"github.com/Dakshp001/SOC-Central-sub003/internal/ingest/usecase"
	"github.com/Dakshp001/SOC-Central-sub003/internal/pkg/pkgauth"
	"github.com/Dakshp001/SOC-Central-sub003/internal/pkg/pkgrouter"
)

type uc interface {
	CreateSession(ctx context.Context) (usecase.SessionResult, error)
	GetSession(ctx context.Context, sessionID string) (usecase.SessionResult, error)
	CloseSession(ctx context.Context, sessionID string) error
	Upload(ctx context.Context, sessionID string, input usecase.UploadInput) (usecase.AcceptResult, error)
	GetUpload(ctx context.Context, sessionID, uploadID string) (usecase.UploadResult, error)
	SetActiveUpload(ctx context.Context, sessionID, uploadID string) error
	GetActiveUpload(ctx context.Context, sessionID string) (usecase.UploadResult, error)
	KPIs(ctx context.Context, sessionID, uploadID string, rng analytics.Range) (usecase.KPIResult, error)
	Activity(ctx context.Context, limit int) ([]audit.ActivityRecord, error)
}

func RegisterHTTPEndpoint(r *pkgrouter.Router, uc uc, auth *pkgrouter.APIKeyAuth) {
	end := &HTTPEndpoint{uc: uc}

	upload := auth.Require((pkgauth.Role).CanUpload)
	view := auth.Require((pkgauth.Role).CanView)
	activity := auth.Require((pkgauth.Role).CanViewActivity)

	r.POST("/sessions", end.CreateSession, upload)
	r.GET("/sessions/:sid", end.GetSession, view)
	r.DELETE("/sessions/:sid", end.CloseSession, upload)

	r.POST("/sessions/:sid/uploads", end.Upload, upload) // ?tool= required, ?filename= for raw bodies
	r.GET("/sessions/:sid/uploads/:uid", end.GetUpload, view)
	r.GET("/sessions/:sid/uploads/:uid/kpis", end.UploadKPIs, view) // ?from=&to=

	r.PUT("/sessions/:sid/active", end.SetActiveUpload, upload)
	r.GET("/sessions/:sid/active", end.GetActiveUpload, view)

	r.GET("/activity", end.Activity, activity) // ?limit=
}
