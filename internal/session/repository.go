package session

import (
	"errors"
	"time"

	"github.com/google/uuid"
	"gorm.io/datatypes"
	"gorm.io/gorm"

	"github.com/maxretail/training-api/internal/dberr"
)

// ErrInvalidTransition is returned when a session is completed or abandoned
// twice, or otherwise moved out of a non-active state.
var ErrInvalidTransition = errors.New("session is not active")

type Repository interface {
	Create(db *gorm.DB, s *TrainingSession) error
	GetByID(db *gorm.DB, id uuid.UUID) (*TrainingSession, error)
	ListByUser(db *gorm.DB, userID uuid.UUID) ([]TrainingSession, error)
	ListCompletedByUser(db *gorm.DB, userID uuid.UUID, limit int) ([]TrainingSession, error)
	ListCompleted(db *gorm.DB) ([]TrainingSession, error)
	Complete(db *gorm.DB, id uuid.UUID, responses, scores datatypes.JSON, completionTime int) error
	Abandon(db *gorm.DB, id uuid.UUID) error
	Delete(db *gorm.DB, id uuid.UUID) error
}

type repositoryImpl struct{}

func NewRepository() Repository {
	return &repositoryImpl{}
}

func (r *repositoryImpl) Create(db *gorm.DB, s *TrainingSession) error {
	return dberr.Map(db.Create(s).Error)
}

func (r *repositoryImpl) GetByID(db *gorm.DB, id uuid.UUID) (*TrainingSession, error) {
	var s TrainingSession
	if err := db.First(&s, "id = ?", id).Error; err != nil {
		return nil, dberr.Map(err)
	}
	return &s, nil
}

func (r *repositoryImpl) ListByUser(db *gorm.DB, userID uuid.UUID) ([]TrainingSession, error) {
	var sessions []TrainingSession
	err := db.Where("user_id = ?", userID).Order("started_at DESC").Find(&sessions).Error
	return sessions, dberr.Map(err)
}

func (r *repositoryImpl) ListCompletedByUser(db *gorm.DB, userID uuid.UUID, limit int) ([]TrainingSession, error) {
	var sessions []TrainingSession
	q := db.Where("user_id = ? AND session_status = ?", userID, StatusCompleted).
		Order("completed_at DESC")
	if limit > 0 {
		q = q.Limit(limit)
	}
	err := q.Find(&sessions).Error
	return sessions, dberr.Map(err)
}

// ListCompleted loads every completed session with its user, for the
// leaderboard aggregation.
func (r *repositoryImpl) ListCompleted(db *gorm.DB) ([]TrainingSession, error) {
	var sessions []TrainingSession
	err := db.Preload("User").
		Where("session_status = ?", StatusCompleted).
		Find(&sessions).Error
	return sessions, dberr.Map(err)
}

// Complete moves an active session to completed, recording the outcome. The
// status predicate in the WHERE clause is what enforces the state machine:
// zero rows touched means the session was not active.
func (r *repositoryImpl) Complete(db *gorm.DB, id uuid.UUID, responses, scores datatypes.JSON, completionTime int) error {
	now := time.Now()
	updates := map[string]interface{}{
		"session_status":  StatusCompleted,
		"completed_at":    &now,
		"completion_time": completionTime,
	}
	if responses != nil {
		updates["responses"] = responses
	}
	if scores != nil {
		updates["scores"] = scores
	}
	return r.transition(db, id, updates)
}

// Abandon moves an active session to abandoned.
func (r *repositoryImpl) Abandon(db *gorm.DB, id uuid.UUID) error {
	now := time.Now()
	return r.transition(db, id, map[string]interface{}{
		"session_status": StatusAbandoned,
		"completed_at":   &now,
	})
}

func (r *repositoryImpl) transition(db *gorm.DB, id uuid.UUID, updates map[string]interface{}) error {
	res := db.Model(&TrainingSession{}).
		Where("id = ? AND session_status = ?", id, StatusActive).
		Updates(updates)
	if res.Error != nil {
		return dberr.Map(res.Error)
	}
	if res.RowsAffected == 0 {
		var s TrainingSession
		if err := db.First(&s, "id = ?", id).Error; err != nil {
			return dberr.Map(err)
		}
		return ErrInvalidTransition
	}
	return nil
}

// Delete removes the session; interactions and the transcript cascade with it.
func (r *repositoryImpl) Delete(db *gorm.DB, id uuid.UUID) error {
	return dberr.Map(db.Delete(&TrainingSession{}, "id = ?", id).Error)
}
