// Package health aggregates component health checks into one report.
package health

import "context"

// SourcePinger checks catalog source availability. File-backed
// deployments have no live source and pass nil.
type SourcePinger interface {
	Ping(ctx context.Context) error
}

// CatalogInfo reports the loaded catalog sizes.
type CatalogInfo interface {
	Len() int
	TagCount() int
}

// Status represents the aggregated health status.
type Status string

const (
	// Healthy indicates all components are operational.
	Healthy Status = "ok"
	// Degraded indicates partial failure.
	Degraded Status = "degraded"
)

// CheckResult represents an individual component health check outcome.
type CheckResult string

const (
	// CheckOK indicates a passing health check.
	CheckOK CheckResult = "ok"
	// CheckError indicates a failing health check.
	CheckError CheckResult = "error"
)

// Report aggregates health check results.
type Report struct {
	Status Status
	Checks map[string]CheckResult
	Venues int
	Tags   int
}

// Service coordinates health checks.
type Service struct {
	catalog CatalogInfo
	source  SourcePinger
}

// New creates a Service. source can be nil.
func New(catalog CatalogInfo, source SourcePinger) *Service {
	return &Service{catalog: catalog, source: source}
}

// Check runs health checks against all components. The catalog check
// fails when either collection is empty; a ranking engine with no
// venues or no vocabulary cannot serve anything useful.
func (s *Service) Check(ctx context.Context) Report {
	checks := make(map[string]CheckResult)

	venues, tags := s.catalog.Len(), s.catalog.TagCount()
	if venues == 0 || tags == 0 {
		checks["catalog"] = CheckError
	} else {
		checks["catalog"] = CheckOK
	}

	if s.source != nil {
		if err := s.source.Ping(ctx); err != nil {
			checks["source"] = CheckError
		} else {
			checks["source"] = CheckOK
		}
	}

	status := Healthy
	for _, v := range checks {
		if v == CheckError {
			status = Degraded
			break
		}
	}

	return Report{Status: status, Checks: checks, Venues: venues, Tags: tags}
}
