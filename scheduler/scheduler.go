package scheduler

import (
	"context"
	"fmt"
	"log"
	"time"

	"github.com/robfig/cron/v3"

	"crm_bridge/config"
	"crm_bridge/models"
	"crm_bridge/storage"
	"crm_bridge/workers"
)

const commandPollInterval = 2 * time.Second

// Runner executes queued commands and media retries.
type Runner interface {
	HandleCommand(ctx context.Context, cmd *models.Command) error
	RetryMedia(ctx context.Context) (workers.RetryResult, error)
}

type Scheduler struct {
	cfg    *config.Config
	runner Runner
	store  *storage.SQLiteStore
	cron   *cron.Cron
	stopCh chan struct{}
}

func New(cfg *config.Config, runner Runner, store *storage.SQLiteStore) *Scheduler {
	return &Scheduler{
		cfg:    cfg,
		runner: runner,
		store:  store,
		cron:   cron.New(),
		stopCh: make(chan struct{}),
	}
}

func (s *Scheduler) Start(ctx context.Context) error {
	go s.pollCommands(ctx)

	if s.cfg.Scheduler.MediaRetryCron != "" {
		log.Printf("Starting media retry with cron: %s", s.cfg.Scheduler.MediaRetryCron)
		_, err := s.cron.AddFunc(s.cfg.Scheduler.MediaRetryCron, func() {
			if _, err := s.runner.RetryMedia(ctx); err != nil {
				log.Printf("Scheduled media retry error: %v", err)
			}
		})
		if err != nil {
			return fmt.Errorf("invalid cron expression: %w", err)
		}
		s.cron.Start()
	} else {
		log.Println("No media retry schedule configured, daemon will only respond to commands")
	}

	return nil
}

func (s *Scheduler) Stop() {
	if s.cron != nil {
		<-s.cron.Stop().Done()
	}
	close(s.stopCh)
}

func (s *Scheduler) pollCommands(ctx context.Context) {
	ticker := time.NewTicker(commandPollInterval)
	defer ticker.Stop()

	for {
		select {
		case <-ticker.C:
			s.drainCommands(ctx)
		case <-s.stopCh:
			return
		case <-ctx.Done():
			return
		}
	}
}

// drainCommands runs every pending command in order. A command is marked
// processed even when it fails; its run records the failure.
func (s *Scheduler) drainCommands(ctx context.Context) {
	cmds, err := s.store.GetPendingCommands()
	if err != nil {
		log.Printf("Error getting commands: %v", err)
		return
	}

	for _, cmd := range cmds {
		if ctx.Err() != nil {
			return
		}
		log.Printf("Processing command: %s", cmd.Command)
		if err := s.runner.HandleCommand(ctx, &cmd); err != nil {
			log.Printf("Command error: %v", err)
		}
		if err := s.store.MarkCommandProcessed(cmd.ID); err != nil {
			log.Printf("Error marking command processed: %v", err)
		}
	}
}
