package ingest

import (
	"context"
	"time"

	"github.com/Dakshp001/SOC-Central-sub003/internal/ingest/audit"
	"github.com/Dakshp001/SOC-Central-sub003/internal/ingest/event"
	"github.com/Dakshp001/SOC-Central-sub003/internal/ingest/inbound"
	"github.com/Dakshp001/SOC-Central-sub003/internal/ingest/inference"
	"github.com/Dakshp001/SOC-Central-sub003/internal/ingest/store"
	"github.com/Dakshp001/SOC-Central-sub003/internal/ingest/usecase"
	"github.com/Dakshp001/SOC-Central-sub003/internal/pkg/pkgconfig"
	"github.com/Dakshp001/SOC-Central-sub003/internal/pkg/pkgmetric"
	"github.com/Dakshp001/SOC-Central-sub003/internal/pkg/pkgrouter"
	"github.com/Dakshp001/SOC-Central-sub003/internal/pkg/pkgroutine"
	"github.com/Dakshp001/SOC-Central-sub003/internal/pkg/pkguid"
)

type Dependency struct {
	Config    pkgconfig.Config
	Goroutine *pkgroutine.Manager
	Router    *pkgrouter.Router
	Context   context.Context
	ID        pkguid.StringID
	Seq       pkguid.NumberID
	Metrics   *pkgmetric.Ingest
}

func New(dep Dependency) (func(context.Context) error, error) {
	profile := inference.DefaultProfile()
	if path := dep.Config.GetString("modules.ingest.scoring_profile"); path != "" {
		loaded, err := inference.LoadProfile(path)
		if err != nil {
			return nil, err
		}
		profile = loaded
	}

	storage := store.NewInMemoryStore()
	bus := event.NewBus(512)

	var handler event.Handler = event.LogHandler{}
	var trail *audit.Store
	var activity usecase.ActivityReader
	if dep.Config.GetBool("modules.ingest.activity.enabled") {
		if dep.Seq == nil {
			seq, err := pkguid.NewSnowflake()
			if err != nil {
				return nil, err
			}
			dep.Seq = seq
		}

		opened, err := audit.Open(dep.Config.GetString("modules.ingest.activity.path"), dep.Seq)
		if err != nil {
			return nil, err
		}
		trail = opened
		handler = trail
		activity = trail
	}

	consumer := event.NewActivityConsumer(bus, handler, event.ConsumerConfig{
		Workers:     4,
		MaxRetries:  3,
		BaseBackoff: 200 * time.Millisecond,
	})
	consumer.Start()

	if dep.ID == nil {
		dep.ID = pkguid.NewUUID()
	}

	// A nil *pkgmetric.Ingest must stay a nil interface inside the usecase.
	var metrics usecase.Metrics
	if dep.Metrics != nil {
		metrics = dep.Metrics
	}

	uc := usecase.New(usecase.Dependency{
		Store:      storage,
		Classifier: inference.New(profile),
		Events:     bus,
		Activity:   activity,
		Metrics:    metrics,
		Runner:     dep.Goroutine,
		Clock:      nil,
		ID:         dep.ID,
		RootCtx:    dep.Context,
	})

	auth, err := pkgrouter.NewAPIKeyAuth(dep.Config.GetBool("server.auth.enabled"), dep.Config.GetMap("server.auth.keys"))
	if err != nil {
		return nil, err
	}

	inbound.RegisterHTTPEndpoint(dep.Router, uc, auth)

	closer := func(ctx context.Context) error {
		if err := consumer.Stop(ctx); err != nil {
			return err
		}
		if trail != nil {
			return trail.Close()
		}
		return nil
	}

	return closer, nil
}
