// Package analytics computes per-tool KPI aggregates over the parsed records
// of an upload, optionally narrowed to a date range.
package analytics

import (
	"fmt"

	"github.com/Dakshp001/SOC-Central-sub003/internal/ingest/entity"
)

// KPIs is the closed set of per-tool aggregate payloads.
//
// Every supported tool has exactly one variant. Consumers switch over the
// concrete types and must handle each of them; the unexported marker keeps
// outside packages from adding variants.
type KPIs interface {
	Tool() entity.ToolType
	kpis()
}

type SIEMKPIs struct {
	TotalEvents   int
	BySeverity    map[string]int
	UniqueSources int
	UniqueUsers   int
}

func (SIEMKPIs) Tool() entity.ToolType { return entity.ToolSIEM }
func (SIEMKPIs) kpis()                 {}

type EDRKPIs struct {
	TotalDetections int
	ByStatus        map[string]int
	UniqueDevices   int
	AvgRiskScore    float64
}

func (EDRKPIs) Tool() entity.ToolType { return entity.ToolEDR }
func (EDRKPIs) kpis()                 {}

type MDMKPIs struct {
	TotalDevices  int
	ByPlatform    map[string]int
	UniqueDevices int
}

func (MDMKPIs) Tool() entity.ToolType { return entity.ToolMDM }
func (MDMKPIs) kpis()                 {}

type MerakiKPIs struct {
	TotalEvents    int
	ByType         map[string]int
	UniqueNetworks int
}

func (MerakiKPIs) Tool() entity.ToolType { return entity.ToolMeraki }
func (MerakiKPIs) kpis()                 {}

type GSuiteKPIs struct {
	TotalActivities int
	ByActivity      map[string]int
	UniqueUsers     int
}

func (GSuiteKPIs) Tool() entity.ToolType { return entity.ToolGSuite }
func (GSuiteKPIs) kpis()                 {}

type SonicWallKPIs struct {
	TotalEvents        int
	ByCategory         map[string]int
	UniqueSources      int
	UniqueDestinations int
}

func (SonicWallKPIs) Tool() entity.ToolType { return entity.ToolSonicWall }
func (SonicWallKPIs) kpis()                 {}

// Compute aggregates the records of an upload into the KPI variant of its
// tool. The aggregation inputs are chosen from the column descriptors, using
// relevance to break ties between candidate columns.
//
// The tool tag is validated at ingestion time, so an unhandled tool here is
// a programming error, not caller input.
func Compute(tool entity.ToolType, columns []entity.ColumnDescriptor, records []entity.Record, rng Range) (KPIs, error) {
	rows := filterRecords(records, rng)

	switch tool {
	case entity.ToolSIEM:
		return SIEMKPIs{
			TotalEvents:   len(rows),
			BySeverity:    countBy(rows, pickColumn(columns, "severity", "level")),
			UniqueSources: distinctCount(rows, pickColumn(columns, "source", "src")),
			UniqueUsers:   distinctCount(rows, pickColumn(columns, "user", "account")),
		}, nil

	case entity.ToolEDR:
		return EDRKPIs{
			TotalDetections: len(rows),
			ByStatus:        countBy(rows, pickColumn(columns, "status", "action", "verdict")),
			UniqueDevices:   distinctCount(rows, pickColumn(columns, "device", "host", "endpoint")),
			AvgRiskScore:    avgMetric(rows, pickMetricColumn(columns)),
		}, nil

	case entity.ToolMDM:
		return MDMKPIs{
			TotalDevices:  len(rows),
			ByPlatform:    countBy(rows, pickColumn(columns, "platform", "os")),
			UniqueDevices: distinctCount(rows, pickIdentifierColumn(columns)),
		}, nil

	case entity.ToolMeraki:
		return MerakiKPIs{
			TotalEvents:    len(rows),
			ByType:         countBy(rows, pickColumn(columns, "type", "category")),
			UniqueNetworks: distinctCount(rows, pickColumn(columns, "network", "ssid")),
		}, nil

	case entity.ToolGSuite:
		return GSuiteKPIs{
			TotalActivities: len(rows),
			ByActivity:      countBy(rows, pickColumn(columns, "activity", "event", "action")),
			UniqueUsers:     distinctCount(rows, pickColumn(columns, "user", "actor", "email")),
		}, nil

	case entity.ToolSonicWall:
		return SonicWallKPIs{
			TotalEvents:        len(rows),
			ByCategory:         countBy(rows, pickColumn(columns, "category", "class")),
			UniqueSources:      distinctCount(rows, pickColumn(columns, "source", "src")),
			UniqueDestinations: distinctCount(rows, pickColumn(columns, "destination", "dst")),
		}, nil

	default:
		return nil, fmt.Errorf("unhandled tool type: %s", tool)
	}
}
