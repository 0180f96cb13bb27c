package inbound

import (
	"context"
	"encoding/json"
	"errors"
	"io"
	"mime"
	"net/http"
	"strconv"
	"strings"
	"time"

	"github.com/Dakshp001/SOC-Central-sub003/internal/ingest/analytics"
	"github.com/Dakshp001/SOC-Central-sub003/internal/ingest/entity"
	"github.com/Dakshp001/SOC-Central-sub003/internal/ingest/usecase"
	"github.com/Dakshp001/SOC-Central-sub003/internal/pkg/pkgerror"
	"github.com/Dakshp001/SOC-Central-sub003/internal/pkg/pkgrouter"
)

type HTTPEndpoint struct {
	uc uc
}

func (h *HTTPEndpoint) CreateSession(ctx context.Context, r *http.Request) (any, error) {
	result, err := h.uc.CreateSession(ctx)
	if err != nil {
		return nil, err
	}

	return SessionCreatedResponse{
		SessionID: result.SessionID,
		CreatedAt: result.CreatedAt,
	}, nil
}

func (h *HTTPEndpoint) GetSession(ctx context.Context, r *http.Request) (any, error) {
	result, err := h.uc.GetSession(ctx, pkgrouter.GetParam(ctx, "sid"))
	if err != nil {
		return nil, err
	}

	return toSessionResponse(result), nil
}

func (h *HTTPEndpoint) CloseSession(ctx context.Context, r *http.Request) (any, error) {
	if err := h.uc.CloseSession(ctx, pkgrouter.GetParam(ctx, "sid")); err != nil {
		return nil, err
	}

	return nil, nil
}

func (h *HTTPEndpoint) Upload(ctx context.Context, r *http.Request) (any, error) {
	tool, err := parseTool(r.URL.Query().Get("tool"))
	if err != nil {
		return nil, err
	}

	file, err := extractUploadFile(r)
	if err != nil {
		return nil, err
	}
	defer file.cleanup()

	pr, pw := io.Pipe()
	result, err := h.uc.Upload(ctx, pkgrouter.GetParam(ctx, "sid"), usecase.UploadInput{
		Filename:  file.filename,
		SizeBytes: file.size,
		MIMEType:  file.mimeType,
		Tool:      tool,
		Body:      pr,
	})
	if err != nil {
		_ = pr.Close()
		_ = pw.Close()
		return nil, err
	}

	if err := streamToPipe(file.reader, pw); err != nil {
		return nil, pkgerror.NewServer(err)
	}

	return UploadAcceptedResponse{
		SessionID: result.SessionID,
		UploadID:  result.UploadID,
		Status:    result.Status,
	}, nil
}

func (h *HTTPEndpoint) GetUpload(ctx context.Context, r *http.Request) (any, error) {
	result, err := h.uc.GetUpload(ctx, pkgrouter.GetParam(ctx, "sid"), pkgrouter.GetParam(ctx, "uid"))
	if err != nil {
		return nil, err
	}

	return toUploadDetailResponse(result), nil
}

func (h *HTTPEndpoint) UploadKPIs(ctx context.Context, r *http.Request) (any, error) {
	query := r.URL.Query()
	rng, err := parseRange(query.Get("from"), query.Get("to"))
	if err != nil {
		return nil, err
	}

	result, err := h.uc.KPIs(ctx, pkgrouter.GetParam(ctx, "sid"), pkgrouter.GetParam(ctx, "uid"), rng)
	if err != nil {
		return nil, err
	}

	payload, err := toKPIPayload(result.KPIs)
	if err != nil {
		return nil, pkgerror.NewServer(err)
	}

	return KPIResponse{
		SessionID: result.SessionID,
		UploadID:  result.UploadID,
		Tool:      result.Tool,
		KPIs:      payload,
		from:      result.Range.From,
		to:        result.Range.To,
	}, nil
}

func (h *HTTPEndpoint) SetActiveUpload(ctx context.Context, r *http.Request) (any, error) {
	var body SetActiveRequest
	if r.Body == nil {
		return nil, pkgerror.NewInvalidFormat()
	}
	if err := json.NewDecoder(r.Body).Decode(&body); err != nil {
		return nil, pkgerror.NewInvalidFormat()
	}

	sessionID := pkgrouter.GetParam(ctx, "sid")
	if err := h.uc.SetActiveUpload(ctx, sessionID, strings.TrimSpace(body.UploadID)); err != nil {
		return nil, err
	}

	return ActiveUploadResponse{
		SessionID: sessionID,
		UploadID:  strings.TrimSpace(body.UploadID),
	}, nil
}

func (h *HTTPEndpoint) GetActiveUpload(ctx context.Context, r *http.Request) (any, error) {
	result, err := h.uc.GetActiveUpload(ctx, pkgrouter.GetParam(ctx, "sid"))
	if err != nil {
		return nil, err
	}

	return toUploadDetailResponse(result), nil
}

func (h *HTTPEndpoint) Activity(ctx context.Context, r *http.Request) (any, error) {
	limit := 0
	if raw := r.URL.Query().Get("limit"); raw != "" {
		value, err := strconv.Atoi(raw)
		if err != nil || value < 1 {
			return nil, pkgerror.NewInvalidInput(errors.New("invalid limit"))
		}
		limit = value
	}

	records, err := h.uc.Activity(ctx, limit)
	if err != nil {
		return nil, err
	}

	entries := make([]ActivityEntry, 0, len(records))
	for _, record := range records {
		entries = append(entries, toActivityEntry(record))
	}

	return ActivityResponse{Entries: entries, count: len(entries)}, nil
}

func parseTool(raw string) (entity.ToolType, error) {
	if strings.TrimSpace(raw) == "" {
		return "", pkgerror.NewInvalidInput(errors.New("tool is required"))
	}

	tool, ok := entity.ParseToolType(raw)
	if !ok {
		return "", pkgerror.NewInvalidInput(errors.New("invalid tool, expected one of SIEM, EDR, MDM, MERAKI, GSUITE, SONICWALL"))
	}

	return tool, nil
}

// Range bounds accept RFC3339, a space-separated datetime, or a bare date.
// A bare date in "to" covers the whole day so from=X&to=X means that day.
var rangeLayouts = []string{
	time.RFC3339,
	"2006-01-02 15:04:05",
	"2006-01-02",
}

func parseRange(fromRaw, toRaw string) (analytics.Range, error) {
	rng := analytics.Range{}

	if fromRaw != "" {
		from, _, err := parseRangeBound(fromRaw)
		if err != nil {
			return rng, pkgerror.NewInvalidInput(errors.New("invalid from, expected RFC3339 or YYYY-MM-DD"))
		}
		rng.From = from
	}

	if toRaw != "" {
		to, dateOnly, err := parseRangeBound(toRaw)
		if err != nil {
			return rng, pkgerror.NewInvalidInput(errors.New("invalid to, expected RFC3339 or YYYY-MM-DD"))
		}
		if dateOnly {
			to = to.Add(24*time.Hour - time.Nanosecond)
		}
		rng.To = to
	}

	if !rng.From.IsZero() && !rng.To.IsZero() && rng.From.After(rng.To) {
		return analytics.Range{}, pkgerror.NewInvalidInput(errors.New("from must not be after to"))
	}

	return rng, nil
}

func parseRangeBound(raw string) (time.Time, bool, error) {
	value := strings.TrimSpace(raw)
	for _, layout := range rangeLayouts {
		if ts, err := time.Parse(layout, value); err == nil {
			return ts, layout == "2006-01-02", nil
		}
	}

	return time.Time{}, false, errors.New("unrecognized time format")
}

type uploadFile struct {
	reader   io.ReadCloser
	filename string
	size     int64
	mimeType string
	cleanup  func()
}

func extractUploadFile(r *http.Request) (uploadFile, error) {
	contentType := r.Header.Get("Content-Type")
	if contentType != "" {
		mediaType, _, err := mime.ParseMediaType(contentType)
		if err == nil && strings.EqualFold(mediaType, "multipart/form-data") {
			return extractMultipartFile(r)
		}
	}

	if r.Body == nil {
		return uploadFile{}, pkgerror.NewInvalidInput(errors.New("empty request body"))
	}

	filename := strings.TrimSpace(r.URL.Query().Get("filename"))
	if filename == "" {
		return uploadFile{}, pkgerror.NewInvalidInput(errors.New("filename is required for raw uploads"))
	}

	return uploadFile{
		reader:   r.Body,
		filename: filename,
		size:     r.ContentLength,
		mimeType: contentType,
		cleanup:  func() {},
	}, nil
}

func extractMultipartFile(r *http.Request) (uploadFile, error) {
	reader, err := r.MultipartReader()
	if err != nil {
		return uploadFile{}, pkgerror.NewInvalidFormat()
	}

	for {
		part, err := reader.NextPart()
		if err != nil {
			if errors.Is(err, io.EOF) {
				return uploadFile{}, pkgerror.NewInvalidInput(errors.New("file part is required"))
			}
			return uploadFile{}, pkgerror.NewInvalidFormat()
		}

		if part.FormName() == "file" {
			return uploadFile{
				reader:   part,
				filename: part.FileName(),
				size:     r.ContentLength,
				mimeType: part.Header.Get("Content-Type"),
				cleanup:  func() { _ = part.Close() },
			}, nil
		}
		_ = part.Close()
	}
}

func streamToPipe(src io.Reader, dst *io.PipeWriter) error {
	defer func() {
		_ = dst.Close()
	}()

	if _, err := io.Copy(dst, src); err != nil {
		_ = dst.CloseWithError(err)
		return err
	}

	return nil
}
