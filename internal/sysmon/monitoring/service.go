package monitoring

import (
	"sync"
	"time"

	"sysmon/internal/sysmon/monitoring/collectors"
	"sysmon/internal/sysmon/monitoring/domain"
	"sysmon/pkg/config"
	"sysmon/pkg/errors"
	"sysmon/pkg/logger"
)

// Metric sources are the seams between the scheduler and the OS. The
// gopsutil-backed collectors implement them in production; tests substitute
// stubs.
type (
	CPUSource interface {
		Collect() (*domain.CPUSample, error)
	}
	MemorySource interface {
		Collect() (*domain.MemorySample, error)
	}
	DiskSource interface {
		Collect() (*domain.DiskSample, error)
	}
	NetworkSource interface {
		Collect() (*domain.NetworkSample, error)
	}
	SystemSource interface {
		Collect() (*domain.SystemSample, error)
	}
)

// Sources bundles one metric source per category.
type Sources struct {
	CPU     CPUSource
	Memory  MemorySource
	Disk    DiskSource
	Network NetworkSource
	System  SystemSource
}

// DefaultSources returns the gopsutil-backed production sources.
func DefaultSources() Sources {
	return Sources{
		CPU:     collectors.NewCPUCollector(),
		Memory:  collectors.NewMemoryCollector(),
		Disk:    collectors.NewDiskCollector(),
		Network: collectors.NewNetworkCollector(),
		System:  collectors.NewSystemCollector(),
	}
}

// Service is the monitoring coordinator: one background worker samples the
// enabled metric sources once per interval, appends to the bounded store,
// derives the status snapshot and fans both out to subscribers. All control
// surface operations are safe to call from arbitrary goroutines.
type Service struct {
	mu       sync.Mutex
	config   *domain.MonitoringConfig
	logger   *logger.Logger
	store    *MetricStore
	registry *CallbackRegistry
	sources  Sources

	running bool
	stop    chan struct{}
	done    chan struct{}
}

// NewService creates a monitoring service with the specified configuration
// and the production gopsutil-backed sources. If config is nil, defaults
// are used.
func NewService(config *domain.MonitoringConfig) *Service {
	return NewServiceWithSources(config, DefaultSources())
}

// NewServiceWithSources creates a monitoring service with explicit metric
// sources. This is the dependency-injection seam tests use to substitute
// deterministic collectors.
func NewServiceWithSources(cfg *domain.MonitoringConfig, sources Sources) *Service {
	if cfg == nil {
		cfg = domain.DefaultMonitoringConfig()
	}

	log := logger.WithField("component", "monitoring-service")

	return &Service{
		config:   cfg,
		logger:   log,
		store:    NewMetricStore(cfg.HistoryCapacity()),
		registry: NewCallbackRegistry(logger.WithField("component", "callback-registry")),
		sources:  sources,
	}
}

// NewServiceFromConfig creates a monitoring service from configuration
// package types. This bridges the gap between the config package and the
// monitoring domain package types.
func NewServiceFromConfig(cfg *config.MonitoringConfig) *Service {
	categories := make([]domain.Category, 0, len(cfg.Metrics))
	for _, metric := range cfg.Metrics {
		categories = append(categories, domain.Category(metric))
	}

	domainConfig := &domain.MonitoringConfig{
		Enabled:       cfg.Enabled,
		Interval:      cfg.Interval,
		Categories:    categories,
		HistoryWindow: cfg.HistoryWindow,
		StopTimeout:   cfg.StopTimeout,
		Thresholds: domain.HealthThresholds{
			CPUWarning:     cfg.Thresholds.CPUWarning,
			CPUCritical:    cfg.Thresholds.CPUCritical,
			MemoryWarning:  cfg.Thresholds.MemoryWarning,
			MemoryCritical: cfg.Thresholds.MemoryCritical,
			DiskWarning:    cfg.Thresholds.DiskWarning,
			DiskCritical:   cfg.Thresholds.DiskCritical,
			LoadWarning:    cfg.Thresholds.LoadWarning,
			LoadCritical:   cfg.Thresholds.LoadCritical,
		},
	}
	return NewService(domainConfig)
}

// Start transitions the scheduler from idle to running. Returns false,
// without error, if monitoring is disabled by configuration or already
// running, so callers can poll-and-retry safely.
func (s *Service) Start() bool {
	s.mu.Lock()
	defer s.mu.Unlock()

	if s.running {
		s.logger.Info("monitoring is already running")
		return false
	}

	if !s.config.Enabled {
		s.logger.Info("monitoring is disabled in configuration")
		return false
	}

	s.stop = make(chan struct{})
	s.done = make(chan struct{})
	s.running = true

	go s.run(s.stop, s.done)

	s.logger.Info("started system monitoring", "interval", s.config.Interval)
	return true
}

// Stop signals the worker to exit and waits up to the configured grace
// period. Returns false if the scheduler was idle, or if the worker did
// not exit in time - in that case the worker is left to terminate on its
// own and Status() eventually reflects that it settled. Safe to call
// repeatedly and concurrently; a retry after a timeout waits on the same
// worker again.
func (s *Service) Stop() bool {
	s.mu.Lock()
	if !s.running {
		s.mu.Unlock()
		s.logger.Info("monitoring is not running")
		return false
	}

	// The channel is nilled after closing so repeated or concurrent Stop
	// calls re-wait on done instead of closing twice.
	if s.stop != nil {
		close(s.stop)
		s.stop = nil
	}
	done := s.done
	timeout := s.config.StopTimeout
	s.mu.Unlock()

	if timeout <= 0 {
		timeout = 5 * time.Second
	}

	select {
	case <-done:
		s.logger.Info("stopped system monitoring")
		return true
	case <-time.After(timeout):
		s.logger.Warn("monitoring worker did not terminate gracefully", "timeout", timeout, "error", errors.ErrShutdownTimeout)
		return false
	}
}

// IsRunning reports whether the background worker is active.
func (s *Service) IsRunning() bool {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.running
}

// Status returns the control surface's view of the scheduler: enabled and
// running flags, the sampling interval, and per-category history depth.
func (s *Service) Status() domain.MonitoringStatus {
	s.mu.Lock()
	enabled := s.config.Enabled
	running := s.running
	interval := s.config.Interval
	s.mu.Unlock()

	return domain.MonitoringStatus{
		Enabled:  enabled,
		Running:  running,
		Interval: interval,
		Metrics:  s.store.Depths(),
	}
}

// GetMetrics returns the most recent count samples for the category in
// chronological order. Unknown categories and empty history yield nil.
func (s *Service) GetMetrics(category domain.Category, count int) []domain.Sample {
	return s.store.Read(category, count)
}

// Store exposes the metric series store. Read-only access for callers that
// need history depths or raw series.
func (s *Service) Store() *MetricStore {
	return s.store
}

// Subscribe registers a handler for an event category. Handlers run
// synchronously on the scheduler goroutine during fan-out.
func (s *Service) Subscribe(category EventCategory, handler Handler) SubscriptionID {
	return s.registry.Subscribe(category, handler)
}

// Unsubscribe removes a previously registered handler.
func (s *Service) Unsubscribe(category EventCategory, id SubscriptionID) {
	s.registry.Unsubscribe(category, id)
}

// GetSystemStatus computes a fresh status snapshot on demand. It does not
// require the scheduler to be running. A failed composite collection
// yields a snapshot with status Unknown and the error recorded.
func (s *Service) GetSystemStatus() domain.SystemStatusSnapshot {
	sample, err := s.sources.System.Collect()
	if err != nil {
		s.logger.Error("failed to collect system status", "error", err)
		return domain.SystemStatusSnapshot{
			Timestamp: time.Now(),
			Status:    domain.StatusUnknown,
			Error:     err.Error(),
		}
	}
	return SnapshotFromSample(sample)
}

// CheckHealth computes a fresh status snapshot and evaluates it against
// the configured thresholds.
func (s *Service) CheckHealth() domain.HealthReport {
	return EvaluateHealth(s.GetSystemStatus(), s.config.Thresholds)
}

// SnapshotFromSample derives the immutable status snapshot from a
// composite system sample.
func SnapshotFromSample(sample *domain.SystemSample) domain.SystemStatusSnapshot {
	uptimeSeconds := sample.Uptime.Seconds()

	return domain.SystemStatusSnapshot{
		Timestamp: sample.Timestamp,
		Status:    ClassifyStatus(sample.CPUUsage, sample.MemoryUsage, sample.DiskUsage),
		CPU: domain.SnapshotCPU{
			UsagePercent: sample.CPUUsage,
			LoadAverage:  sample.LoadAverage,
		},
		Memory: domain.SnapshotMemory{
			Percent:        sample.MemoryUsage,
			Available:      sample.MemoryAvailable,
			AvailableHuman: domain.BytesToHuman(sample.MemoryAvailable),
		},
		Disks:     sample.DiskUsage,
		Processes: domain.SnapshotProcesses{Count: sample.ProcessCount},
		Uptime: domain.SnapshotUptime{
			Seconds: uptimeSeconds,
			Human:   domain.FormatUptime(uptimeSeconds),
		},
	}
}

// run is the scheduler loop. The first tick fires immediately, then once
// per interval until the stop channel closes. The loop only exits via
// stop; a failing tick is logged and retried on the next interval.
func (s *Service) run(stop, done chan struct{}) {
	defer func() {
		s.mu.Lock()
		s.running = false
		s.mu.Unlock()
		close(done)
	}()

	ticker := time.NewTicker(s.config.Interval)
	defer ticker.Stop()

	s.tick()

	for {
		select {
		case <-ticker.C:
			s.tick()
		case <-stop:
			s.logger.Debug("stopping monitoring loop")
			return
		}
	}
}

// tick performs one sampling-and-publish cycle. Each category is collected
// independently: a failing source produces an error-marked sample and
// never blocks the others. The tick body is panic-safe so the loop cannot
// die.
func (s *Service) tick() {
	defer func() {
		if rec := recover(); rec != nil {
			s.logger.Error("monitoring tick failed", "panic", rec)
		}
	}()

	now := time.Now()

	if s.config.CategoryEnabled(domain.CategoryCPU) {
		sample, err := s.sources.CPU.Collect()
		if err != nil {
			s.record(domain.CategoryCPU, &domain.CPUSample{SampleMeta: errorMeta(now, err)}, err)
		} else {
			s.record(domain.CategoryCPU, sample, nil)
		}
	}

	if s.config.CategoryEnabled(domain.CategoryMemory) {
		sample, err := s.sources.Memory.Collect()
		if err != nil {
			s.record(domain.CategoryMemory, &domain.MemorySample{SampleMeta: errorMeta(now, err)}, err)
		} else {
			s.record(domain.CategoryMemory, sample, nil)
		}
	}

	if s.config.CategoryEnabled(domain.CategoryDisk) {
		sample, err := s.sources.Disk.Collect()
		if err != nil {
			s.record(domain.CategoryDisk, &domain.DiskSample{SampleMeta: errorMeta(now, err)}, err)
		} else {
			s.record(domain.CategoryDisk, sample, nil)
		}
	}

	if s.config.CategoryEnabled(domain.CategoryNetwork) {
		sample, err := s.sources.Network.Collect()
		if err != nil {
			s.record(domain.CategoryNetwork, &domain.NetworkSample{SampleMeta: errorMeta(now, err)}, err)
		} else {
			s.record(domain.CategoryNetwork, sample, nil)
		}
	}

	systemSample, err := s.sources.System.Collect()
	if err != nil {
		s.record(domain.CategorySystem, &domain.SystemSample{SampleMeta: errorMeta(now, err)}, err)
		return
	}
	s.record(domain.CategorySystem, systemSample, nil)
	s.registry.Publish(EventStatus, SnapshotFromSample(systemSample))
}

// record appends a sample to the store and fans it out. A collection
// failure is logged; the error-marked sample is still stored so history
// shows the gap.
func (s *Service) record(category domain.Category, sample domain.Sample, err error) {
	if err != nil {
		s.logger.Warn("metric collection failed", "error", errors.NewCollectionError(string(category), err))
	}
	s.store.Append(sample)
	s.registry.Publish(EventCategory(category), sample)
}

func errorMeta(now time.Time, err error) domain.SampleMeta {
	return domain.SampleMeta{Timestamp: now, Error: err.Error()}
}
