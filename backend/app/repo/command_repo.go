package repo

import (
	"errors"

	"labfleet/backend/app/models"

	"gorm.io/gorm"
)

// ErrNotFound is returned when a command id does not exist.
var ErrNotFound = errors.New("command not found")

type CommandRepository struct {
	db *gorm.DB
}

func NewCommandRepository(db *gorm.DB) *CommandRepository {
	return &CommandRepository{db: db}
}

// Enqueue inserts a new pending command and returns its id.
func (r *CommandRepository) Enqueue(clientID, command, args string) (uint, error) {
	cmd := &models.Command{
		ClientID: clientID,
		Command:  command,
		Args:     args,
		Status:   models.StatusPending,
	}
	if err := r.db.Create(cmd).Error; err != nil {
		return 0, err
	}
	return cmd.ID, nil
}

// FetchPending returns the pending queue for one client in creation order.
// Commands stay pending until the client reports a result; a client that
// crashes mid-execution sees the same commands again on its next poll.
func (r *CommandRepository) FetchPending(clientID string) ([]models.Command, error) {
	var cmds []models.Command
	err := r.db.
		Where("client_id = ? AND status = ?", clientID, models.StatusPending).
		Order("id ASC").
		Find(&cmds).Error
	if err != nil {
		return nil, err
	}
	return cmds, nil
}

// ReportResult records a command's outcome. Reports against a command that is
// already terminal overwrite it (last write wins); the report endpoint is
// idempotent by design.
func (r *CommandRepository) ReportResult(id uint, status, result string) error {
	return r.db.Transaction(func(tx *gorm.DB) error {
		var cmd models.Command
		if err := tx.First(&cmd, id).Error; err != nil {
			if errors.Is(err, gorm.ErrRecordNotFound) {
				return ErrNotFound
			}
			return err
		}
		return tx.Model(&cmd).Updates(map[string]any{
			"status": models.NormalizeStatus(status),
			"result": result,
		}).Error
	})
}

// Find returns one command by id.
func (r *CommandRepository) Find(id uint) (*models.Command, error) {
	var cmd models.Command
	if err := r.db.First(&cmd, id).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, ErrNotFound
		}
		return nil, err
	}
	return &cmd, nil
}

// ListByClient returns the full command history for one client, oldest first.
func (r *CommandRepository) ListByClient(clientID string) ([]models.Command, error) {
	var cmds []models.Command
	err := r.db.
		Where("client_id = ?", clientID).
		Order("id ASC").
		Find(&cmds).Error
	if err != nil {
		return nil, err
	}
	return cmds, nil
}

// KnownClients returns the distinct client ids that ever had a command.
func (r *CommandRepository) KnownClients() ([]string, error) {
	var ids []string
	err := r.db.Model(&models.Command{}).
		Distinct("client_id").
		Order("client_id ASC").
		Pluck("client_id", &ids).Error
	if err != nil {
		return nil, err
	}
	return ids, nil
}
