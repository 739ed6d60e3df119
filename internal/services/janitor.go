package services

import (
	"fmt"
	"sync"
	"time"

	"github.com/robfig/cron/v3"
	"github.com/sirupsen/logrus"
)

// JanitorService runs the scheduled cache sweep. It keeps per-job status
// so the ops endpoints can report when the last sweep ran and whether it
// worked.
type JanitorService struct {
	cache     *FileCache
	logger    *logrus.Logger
	cron      *cron.Cron
	schedule  string
	mu        sync.RWMutex
	jobs      map[string]JobInfo
	isRunning bool
}

// JobInfo describes one scheduled job for status reporting.
type JobInfo struct {
	ID         string        `json:"id"`
	Name       string        `json:"name"`
	Schedule   string        `json:"schedule"`
	LastRun    time.Time     `json:"last_run"`
	NextRun    time.Time     `json:"next_run"`
	Status     string        `json:"status"`
	RunCount   int           `json:"run_count"`
	ErrorCount int           `json:"error_count"`
	LastError  string        `json:"last_error,omitempty"`
	Duration   time.Duration `json:"duration"`
}

const (
	sweepJobID   = "cache_sweep"
	sweepJobName = "Expired cache sweep"
)

func NewJanitorService(cache *FileCache, schedule string, logger *logrus.Logger) *JanitorService {
	cronLogger := cron.VerbosePrintfLogger(logger)
	return &JanitorService{
		cache:    cache,
		logger:   logger,
		cron:     cron.New(cron.WithLogger(cronLogger)),
		schedule: schedule,
		jobs:     make(map[string]JobInfo),
	}
}

// Start schedules the sweep job and starts the scheduler.
func (j *JanitorService) Start() error {
	j.mu.Lock()
	defer j.mu.Unlock()

	if j.isRunning {
		return fmt.Errorf("janitor service is already running")
	}

	if err := j.addJob(sweepJobID, j.schedule, sweepJobName, j.sweep); err != nil {
		return fmt.Errorf("failed to schedule sweep job: %w", err)
	}

	j.cron.Start()
	j.isRunning = true

	j.logger.WithFields(logrus.Fields{
		"component": "janitor",
		"schedule":  j.schedule,
	}).Info("JanitorService started")
	return nil
}

// Stop shuts the scheduler down, waiting briefly for a running sweep.
func (j *JanitorService) Stop() error {
	j.mu.Lock()
	defer j.mu.Unlock()

	if !j.isRunning {
		return nil
	}

	ctx := j.cron.Stop()
	select {
	case <-ctx.Done():
		j.logger.WithField("component", "janitor").Info("Cron scheduler stopped gracefully")
	case <-time.After(5 * time.Second):
		j.logger.WithField("component", "janitor").Warn("Cron scheduler stop timed out")
	}

	j.isRunning = false
	return nil
}

// GetJobs returns a copy of the job status map.
func (j *JanitorService) GetJobs() map[string]JobInfo {
	j.mu.RLock()
	defer j.mu.RUnlock()

	jobs := make(map[string]JobInfo, len(j.jobs))
	for id, job := range j.jobs {
		jobs[id] = job
	}
	return jobs
}

// TriggerSweep runs the sweep immediately, outside the schedule. It also
// works when the scheduler was never started, so the manual endpoint
// stays usable with the janitor disabled at boot.
func (j *JanitorService) TriggerSweep() {
	j.mu.Lock()
	if _, exists := j.jobs[sweepJobID]; !exists {
		j.jobs[sweepJobID] = JobInfo{
			ID:       sweepJobID,
			Name:     sweepJobName,
			Schedule: j.schedule,
			Status:   "scheduled",
		}
	}
	j.mu.Unlock()

	go j.runJob(sweepJobID, sweepJobName, j.sweep)
}

func (j *JanitorService) addJob(id, schedule, name string, jobFunc func() error) error {
	entryID, err := j.cron.AddFunc(schedule, func() {
		j.runJob(id, name, jobFunc)
	})
	if err != nil {
		return fmt.Errorf("failed to add job %s: %w", id, err)
	}

	var nextRun time.Time
	for _, entry := range j.cron.Entries() {
		if entry.ID == entryID {
			nextRun = entry.Next
			break
		}
	}

	j.jobs[id] = JobInfo{
		ID:       id,
		Name:     name,
		Schedule: schedule,
		NextRun:  nextRun,
		Status:   "scheduled",
	}
	return nil
}

// runJob executes a job with panic recovery and status tracking.
func (j *JanitorService) runJob(id, name string, jobFunc func() error) {
	j.mu.Lock()
	job, exists := j.jobs[id]
	if !exists {
		j.mu.Unlock()
		return
	}
	job.Status = "running"
	job.LastRun = time.Now()
	job.RunCount++
	j.jobs[id] = job
	j.mu.Unlock()

	logger := j.logger.WithFields(logrus.Fields{
		"component": "janitor",
		"job_id":    id,
		"job_name":  name,
	})

	startTime := time.Now()
	defer func() {
		if r := recover(); r != nil {
			logger.WithField("panic", r).Error("Job panicked")
			j.updateJobStatus(id, "failed", fmt.Sprintf("panic: %v", r), time.Since(startTime))
		}
	}()

	if err := jobFunc(); err != nil {
		logger.WithError(err).Error("Job failed")
		j.updateJobStatus(id, "failed", err.Error(), time.Since(startTime))
		return
	}

	j.updateJobStatus(id, "completed", "", time.Since(startTime))
}

func (j *JanitorService) updateJobStatus(id, status, errorMsg string, duration time.Duration) {
	j.mu.Lock()
	defer j.mu.Unlock()

	job, exists := j.jobs[id]
	if !exists {
		return
	}

	job.Status = status
	job.Duration = duration
	if errorMsg != "" {
		job.ErrorCount++
		job.LastError = errorMsg
	}
	for _, entry := range j.cron.Entries() {
		job.NextRun = entry.Next
		break
	}
	j.jobs[id] = job
}

// sweep removes expired entries and logs what it reclaimed.
func (j *JanitorService) sweep() error {
	removed, err := j.cache.Sweep()
	if err != nil {
		return err
	}

	j.logger.WithFields(logrus.Fields{
		"component": "janitor",
		"removed":   removed,
	}).Info("Cache sweep completed")
	return nil
}
