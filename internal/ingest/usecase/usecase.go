package usecase

import (
	"context"
	"errors"
	"io"
	"log/slog"
	"time"

	"github.com/Dakshp001/SOC-Central-sub003/internal/ingest/analytics"
	"github.com/Dakshp001/SOC-Central-sub003/internal/ingest/audit"
	"github.com/Dakshp001/SOC-Central-sub003/internal/ingest/entity"
	"github.com/Dakshp001/SOC-Central-sub003/internal/ingest/inference"
	"github.com/Dakshp001/SOC-Central-sub003/internal/pkg/pkgerror"
	"github.com/Dakshp001/SOC-Central-sub003/internal/pkg/pkguid"
)

type Store interface {
	CreateSession(ctx context.Context, session entity.Session) error
	GetSession(ctx context.Context, sessionID string) (entity.Session, []entity.UploadMeta, error)
	DeleteSession(ctx context.Context, sessionID string) error
	SetActiveUpload(ctx context.Context, sessionID, uploadID string) error
	CreateUpload(ctx context.Context, meta entity.UploadMeta) error
	UpdateMeta(ctx context.Context, sessionID, uploadID string, fn func(meta *entity.UploadMeta)) error
	SaveResults(ctx context.Context, sessionID, uploadID string, columns []entity.ColumnDescriptor, records []entity.Record) error
	GetUpload(ctx context.Context, sessionID, uploadID string) (entity.UploadMeta, []entity.ColumnDescriptor, error)
	GetRecords(ctx context.Context, sessionID, uploadID string) (entity.UploadMeta, []entity.ColumnDescriptor, []entity.Record, error)
}

type EventPublisher interface {
	Publish(ctx context.Context, event entity.UploadActivityEvent) error
}

type ActivityReader interface {
	Recent(ctx context.Context, limit int) ([]audit.ActivityRecord, error)
}

type Metrics interface {
	Accepted(tool string)
	Finished(tool, outcome string)
	RowsParsed(n int64)
	ObserveProcessing(d time.Duration)
}

type Runner interface {
	Go(ctx context.Context, f func(ctx context.Context) error)
}

type Clock interface {
	Now() time.Time
}

type Dependency struct {
	Store      Store
	Classifier *inference.Classifier
	Events     EventPublisher
	Activity   ActivityReader
	Metrics    Metrics
	Runner     Runner
	Clock      Clock
	ID         pkguid.StringID
	RootCtx    context.Context
}

type Usecase struct {
	store      Store
	classifier *inference.Classifier
	events     EventPublisher
	activity   ActivityReader
	metrics    Metrics
	runner     Runner
	clock      Clock
	id         pkguid.StringID
	rootCtx    context.Context
}

func New(dep Dependency) *Usecase {
	root := dep.RootCtx
	if root == nil {
		root = context.Background()
	}

	clock := dep.Clock
	if clock == nil {
		clock = realClock{}
	}

	classifier := dep.Classifier
	if classifier == nil {
		classifier = inference.New(inference.DefaultProfile())
	}

	return &Usecase{
		store:      dep.Store,
		classifier: classifier,
		events:     dep.Events,
		activity:   dep.Activity,
		metrics:    dep.Metrics,
		runner:     dep.Runner,
		clock:      clock,
		id:         dep.ID,
		rootCtx:    root,
	}
}

type realClock struct{}

func (realClock) Now() time.Time {
	return time.Now()
}

func (u *Usecase) CreateSession(ctx context.Context) (SessionResult, error) {
	if u.store == nil || u.id == nil {
		return SessionResult{}, pkgerror.NewServer(errors.New("missing dependency"))
	}

	session := entity.Session{
		ID:        u.id.Generate(),
		CreatedAt: u.clock.Now().Unix(),
	}
	if err := u.store.CreateSession(ctx, session); err != nil {
		return SessionResult{}, normalizeErr(err)
	}

	return SessionResult{
		SessionID: session.ID,
		CreatedAt: session.CreatedAt,
	}, nil
}

func (u *Usecase) GetSession(ctx context.Context, sessionID string) (SessionResult, error) {
	if sessionID == "" {
		return SessionResult{}, pkgerror.NewInvalidInput(errors.New("session_id is required"))
	}

	session, metas, err := u.store.GetSession(ctx, sessionID)
	if err != nil {
		return SessionResult{}, mapStoreErr(err, "session not found")
	}

	uploads := make([]UploadResult, 0, len(metas))
	for _, meta := range metas {
		uploads = append(uploads, toUploadResult(meta, nil))
	}

	return SessionResult{
		SessionID:      session.ID,
		CreatedAt:      session.CreatedAt,
		ActiveUploadID: session.ActiveUploadID,
		Uploads:        uploads,
	}, nil
}

// CloseSession discards the session and every descriptor parsed under it.
func (u *Usecase) CloseSession(ctx context.Context, sessionID string) error {
	if sessionID == "" {
		return pkgerror.NewInvalidInput(errors.New("session_id is required"))
	}

	if err := u.store.DeleteSession(ctx, sessionID); err != nil {
		return mapStoreErr(err, "session not found")
	}

	return nil
}

// Upload validates the file synchronously, queues it, and parses it in the
// background. Spreadsheet formats are refused here so the caller learns
// immediately that only CSV is accepted.
func (u *Usecase) Upload(ctx context.Context, sessionID string, input UploadInput) (AcceptResult, error) {
	if u.store == nil || u.id == nil || u.runner == nil {
		return AcceptResult{}, pkgerror.NewServer(errors.New("missing dependency"))
	}

	if sessionID == "" {
		return AcceptResult{}, pkgerror.NewInvalidInput(errors.New("session_id is required"))
	}
	if input.Filename == "" {
		return AcceptResult{}, pkgerror.NewInvalidInput(errors.New("filename is required"))
	}
	if input.Tool == "" {
		return AcceptResult{}, pkgerror.NewInvalidInput(errors.New("tool is required"))
	}
	if err := checkFormat(input.Filename); err != nil {
		return AcceptResult{}, err
	}

	meta := entity.UploadMeta{
		ID:         u.id.Generate(),
		SessionID:  sessionID,
		Filename:   input.Filename,
		SizeBytes:  input.SizeBytes,
		MIMEType:   input.MIMEType,
		Tool:       input.Tool,
		Status:     entity.UploadStatusQueued,
		UploadedAt: u.clock.Now().Unix(),
	}
	if err := u.store.CreateUpload(ctx, meta); err != nil {
		return AcceptResult{}, mapStoreErr(err, "session not found")
	}

	if u.metrics != nil {
		u.metrics.Accepted(string(meta.Tool))
	}

	body := input.Body
	u.runner.Go(u.rootCtx, func(ctx context.Context) error {
		if err := u.processUpload(ctx, meta, body); err != nil {
			slog.ErrorContext(ctx, "upload processing failed", "upload_id", meta.ID, "error", err)
			return err
		}
		return nil
	})

	return AcceptResult{
		SessionID: sessionID,
		UploadID:  meta.ID,
		Status:    meta.Status,
	}, nil
}

func (u *Usecase) GetUpload(ctx context.Context, sessionID, uploadID string) (UploadResult, error) {
	if sessionID == "" || uploadID == "" {
		return UploadResult{}, pkgerror.NewInvalidInput(errors.New("session_id and upload_id are required"))
	}

	meta, columns, err := u.store.GetUpload(ctx, sessionID, uploadID)
	if err != nil {
		return UploadResult{}, mapStoreErr(err, "upload not found")
	}

	return toUploadResult(meta, columns), nil
}

// SetActiveUpload marks which upload feeds the column-selection step. Only a
// READY upload can be activated; an empty uploadID clears the selection.
func (u *Usecase) SetActiveUpload(ctx context.Context, sessionID, uploadID string) error {
	if sessionID == "" {
		return pkgerror.NewInvalidInput(errors.New("session_id is required"))
	}

	if uploadID != "" {
		meta, _, err := u.store.GetUpload(ctx, sessionID, uploadID)
		if err != nil {
			return mapStoreErr(err, "upload not found")
		}
		if meta.Status != entity.UploadStatusReady {
			return pkgerror.NewBusiness("upload is not ready", pkgerror.CodeConflict)
		}
	}

	if err := u.store.SetActiveUpload(ctx, sessionID, uploadID); err != nil {
		return mapStoreErr(err, "upload not found")
	}

	return nil
}

func (u *Usecase) GetActiveUpload(ctx context.Context, sessionID string) (UploadResult, error) {
	if sessionID == "" {
		return UploadResult{}, pkgerror.NewInvalidInput(errors.New("session_id is required"))
	}

	session, _, err := u.store.GetSession(ctx, sessionID)
	if err != nil {
		return UploadResult{}, mapStoreErr(err, "session not found")
	}
	if session.ActiveUploadID == "" {
		return UploadResult{}, pkgerror.NewBusiness("session has no active upload", pkgerror.CodeNotFound)
	}

	meta, columns, err := u.store.GetUpload(ctx, sessionID, session.ActiveUploadID)
	if err != nil {
		return UploadResult{}, mapStoreErr(err, "upload not found")
	}

	return toUploadResult(meta, columns), nil
}

// KPIs recomputes the per-tool aggregates over the records inside rng.
func (u *Usecase) KPIs(ctx context.Context, sessionID, uploadID string, rng analytics.Range) (KPIResult, error) {
	if sessionID == "" || uploadID == "" {
		return KPIResult{}, pkgerror.NewInvalidInput(errors.New("session_id and upload_id are required"))
	}

	meta, columns, records, err := u.store.GetRecords(ctx, sessionID, uploadID)
	if err != nil {
		return KPIResult{}, mapStoreErr(err, "upload not found")
	}
	if meta.Status != entity.UploadStatusReady {
		return KPIResult{}, pkgerror.NewBusiness("upload is not ready", pkgerror.CodeConflict)
	}

	kpis, err := analytics.Compute(meta.Tool, columns, records, rng)
	if err != nil {
		return KPIResult{}, pkgerror.NewServer(err)
	}

	return KPIResult{
		SessionID: sessionID,
		UploadID:  uploadID,
		Tool:      meta.Tool,
		Range:     rng,
		KPIs:      kpis,
	}, nil
}

func (u *Usecase) Activity(ctx context.Context, limit int) ([]audit.ActivityRecord, error) {
	if u.activity == nil {
		return nil, pkgerror.NewBusiness("activity trail is not enabled", pkgerror.CodeNotFound)
	}

	records, err := u.activity.Recent(ctx, limit)
	if err != nil {
		return nil, pkgerror.NewServer(err)
	}

	return records, nil
}

func (u *Usecase) processUpload(ctx context.Context, meta entity.UploadMeta, r io.Reader) error {
	startedAt := u.clock.Now()
	if err := u.store.UpdateMeta(ctx, meta.SessionID, meta.ID, func(m *entity.UploadMeta) {
		m.Status = entity.UploadStatusProcessing
		m.StartedAt = startedAt.Unix()
	}); err != nil {
		return err
	}

	columns, records, rows, parseErr := parseCSV(ctx, r, u.classifier)

	endedAt := u.clock.Now()
	status := entity.UploadStatusReady
	errMsg := ""
	if parseErr != nil {
		status = entity.UploadStatusFailed
		errMsg = parseErr.Error()
		columns = nil
		records = nil
		rows = 0
	}

	if parseErr == nil {
		if saveErr := u.store.SaveResults(ctx, meta.SessionID, meta.ID, columns, records); saveErr != nil {
			return saveErr
		}
	}

	if metaErr := u.store.UpdateMeta(ctx, meta.SessionID, meta.ID, func(m *entity.UploadMeta) {
		m.Status = status
		m.Err = errMsg
		m.EndedAt = endedAt.Unix()
		m.RowCount = rows
		m.ColumnCount = len(columns)
	}); metaErr != nil {
		return metaErr
	}

	if u.metrics != nil {
		outcome := "ready"
		if parseErr != nil {
			outcome = "failed"
		}
		u.metrics.Finished(string(meta.Tool), outcome)
		u.metrics.RowsParsed(rows)
		u.metrics.ObserveProcessing(endedAt.Sub(startedAt))
	}

	if u.events != nil {
		event := entity.UploadActivityEvent{
			EventID:    u.id.Generate(),
			SessionID:  meta.SessionID,
			UploadID:   meta.ID,
			Filename:   meta.Filename,
			Tool:       meta.Tool,
			Status:     status,
			Err:        errMsg,
			RowCount:   rows,
			Columns:    len(columns),
			FinishedAt: endedAt.Unix(),
		}
		if pubErr := u.events.Publish(ctx, event); pubErr != nil {
			slog.WarnContext(ctx, "failed to publish activity event", "upload_id", meta.ID, "event_id", event.EventID, "error", pubErr)
		}
	}

	return parseErr
}

func mapStoreErr(err error, notFoundMsg string) error {
	if errors.Is(err, pkgerror.ErrNotFound) {
		return pkgerror.NewBusiness(notFoundMsg, pkgerror.CodeNotFound)
	}
	return normalizeErr(err)
}

func normalizeErr(err error) error {
	var perr *pkgerror.Error
	if errors.As(err, &perr) {
		return perr
	}
	return pkgerror.NewServer(err)
}
