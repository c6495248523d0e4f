package health

import (
	"context"
	"sort"
	"time"
)

// Status represents the aggregated health status.
type Status string

const (
	// Healthy indicates all components are operational.
	Healthy Status = "ok"
	// Degraded indicates partial failure.
	Degraded Status = "degraded"
	// Unhealthy indicates total failure.
	Unhealthy Status = "error"
)

// CheckResult represents an individual component health check outcome.
type CheckResult string

const (
	// CheckOK indicates a passing health check.
	CheckOK CheckResult = "ok"
	// CheckError indicates a failing health check.
	CheckError CheckResult = "error"
)

// DefaultTimeout bounds each individual check.
const DefaultTimeout = 2 * time.Second

// Report aggregates health check results.
type Report struct {
	Status Status
	Checks map[string]CheckResult
}

type namedCheck struct {
	name string
	p    Pinger
}

// Service coordinates health checks.
type Service struct {
	checks  []namedCheck
	timeout time.Duration
}

// New creates a Service checking the session store.
func New(sessions Pinger) *Service {
	s := &Service{timeout: DefaultTimeout}
	return s.WithCheck("session_store", sessions)
}

// WithCheck adds a named check. Nil pingers are ignored.
func (s *Service) WithCheck(name string, p Pinger) *Service {
	if p != nil {
		s.checks = append(s.checks, namedCheck{name: name, p: p})
	}
	return s
}

// WithTimeout sets the per-check timeout.
func (s *Service) WithTimeout(d time.Duration) *Service {
	if d > 0 {
		s.timeout = d
	}
	return s
}

// Names returns the registered check names, sorted.
func (s *Service) Names() []string {
	out := make([]string, 0, len(s.checks))
	for _, c := range s.checks {
		out = append(out, c.name)
	}
	sort.Strings(out)
	return out
}

// Check runs every registered check. Some failing checks degrade the
// report; all failing make it unhealthy.
func (s *Service) Check(ctx context.Context) Report {
	checks := make(map[string]CheckResult, len(s.checks))
	failed := 0

	for _, c := range s.checks {
		cctx, cancel := context.WithTimeout(ctx, s.timeout)
		err := c.p.Ping(cctx)
		cancel()

		if err != nil {
			checks[c.name] = CheckError
			failed++
			continue
		}
		checks[c.name] = CheckOK
	}

	status := Healthy
	switch {
	case failed > 0 && failed == len(s.checks):
		status = Unhealthy
	case failed > 0:
		status = Degraded
	}

	return Report{Status: status, Checks: checks}
}
