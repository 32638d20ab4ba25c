package autocomplete

import (
	"context"
	"errors"
	"fmt"
	"time"

	"github.com/robfig/cron/v3"
)

const runTimeout = 30 * time.Second

// ErrInvalidSchedule возвращается при некорректном cron выражении
var ErrInvalidSchedule = errors.New("autocomplete: invalid schedule")

// Completer переводит прошедшие подтвержденные записи в completed
type Completer interface {
	CompleteFinished(ctx context.Context) (int64, error)
}

// Logger интерфейс для логирования
type Logger interface {
	Info(format string, v ...interface{})
	Warn(format string, v ...interface{})
	Error(format string, v ...interface{})
}

// Job периодически завершает записи, время которых прошло
type Job struct {
	completer Completer
	cron      *cron.Cron
	logger    Logger
}

// New создает задачу с расписанием в формате cron (например, "*/5 * * * *" или "@every 5m")
// Запуски не накладываются: если предыдущий еще идет, следующий пропускается
func New(completer Completer, schedule string, logger Logger) (*Job, error) {
	j := &Job{
		completer: completer,
		logger:    logger,
	}

	j.cron = cron.New(cron.WithChain(cron.SkipIfStillRunning(cron.DiscardLogger)))
	if _, err := j.cron.AddFunc(schedule, j.Run); err != nil {
		return nil, fmt.Errorf("%w: %q: %v", ErrInvalidSchedule, schedule, err)
	}

	return j, nil
}

// Start запускает планировщик в фоне
func (j *Job) Start() {
	j.cron.Start()
	j.logger.Info("AutoComplete: scheduler started")
}

// Stop останавливает планировщик и ждет завершения текущего запуска
func (j *Job) Stop(ctx context.Context) {
	select {
	case <-j.cron.Stop().Done():
	case <-ctx.Done():
		j.logger.Warn("AutoComplete: stop interrupted: %v", ctx.Err())
	}
}

// Run выполняет один проход
func (j *Job) Run() {
	ctx, cancel := context.WithTimeout(context.Background(), runTimeout)
	defer cancel()

	count, err := j.completer.CompleteFinished(ctx)
	if err != nil {
		j.logger.Error("AutoComplete: run failed: %v", err)
		return
	}

	if count > 0 {
		j.logger.Info("AutoComplete: %d appointments marked completed", count)
	}
}
