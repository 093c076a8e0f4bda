package services

import (
	"errors"

	"labfleet/backend/app/models"
	"labfleet/backend/app/repo"
)

// ErrInvalidArgument marks a request missing a required field.
var ErrInvalidArgument = errors.New("invalid argument")

// ErrNotFound marks a report against a nonexistent command id.
var ErrNotFound = errors.New("not found")

type CommandService struct {
	commands *repo.CommandRepository
}

func NewCommandService(commands *repo.CommandRepository) *CommandService {
	return &CommandService{commands: commands}
}

// Enqueue creates a pending command for a client. The target client is not
// validated against any registry; any id that later polls will receive it.
func (s *CommandService) Enqueue(clientID, command, args string) (uint, error) {
	if clientID == "" || command == "" {
		return 0, ErrInvalidArgument
	}
	return s.commands.Enqueue(clientID, command, args)
}

// FetchPending returns the pending queue for one client, oldest first. An
// empty queue is an empty slice, never an error.
func (s *CommandService) FetchPending(clientID string) ([]models.Command, error) {
	return s.commands.FetchPending(clientID)
}

// ReportResult records a command outcome.
func (s *CommandService) ReportResult(id uint, status, result string) error {
	if id == 0 {
		return ErrInvalidArgument
	}
	if err := s.commands.ReportResult(id, status, result); err != nil {
		if errors.Is(err, repo.ErrNotFound) {
			return ErrNotFound
		}
		return err
	}
	return nil
}

func (s *CommandService) Find(id uint) (*models.Command, error) {
	cmd, err := s.commands.Find(id)
	if err != nil {
		if errors.Is(err, repo.ErrNotFound) {
			return nil, ErrNotFound
		}
		return nil, err
	}
	return cmd, nil
}

func (s *CommandService) ListByClient(clientID string) ([]models.Command, error) {
	if clientID == "" {
		return nil, ErrInvalidArgument
	}
	return s.commands.ListByClient(clientID)
}

func (s *CommandService) KnownClients() ([]string, error) {
	return s.commands.KnownClients()
}
