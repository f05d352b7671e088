package event

import (
	"errors"
	"time"

	"gorm.io/gorm"
)

type EventRepository interface {
	CreateEvent(e *Event) error
	GetEventByID(id uint) (*Event, error)
	UpdateEvent(e *Event) error
	GetUpcomingEvents(now time.Time) ([]Event, error)
	GetEventsByClub(clubID uint) ([]Event, error)
	GetPastEventsByClub(clubID uint, now time.Time) ([]Event, error)

	CreateRegistration(r *EventRegistration) error
	GetRegistration(eventID, userID uint) (*EventRegistration, error)
	GetRegistrationsForUser(userID uint) ([]EventRegistration, error)
	GetRegistrationsForEvent(eventID uint) ([]EventRegistration, error)
	CountRegistrations(eventID uint) (int64, error)
	DeleteRegistration(eventID, userID uint) error
}

type eventRepository struct {
	db *gorm.DB
}

func NewEventRepository(db *gorm.DB) EventRepository {
	return &eventRepository{db: db}
}

func (r *eventRepository) CreateEvent(e *Event) error {
	return r.db.Create(e).Error
}

func (r *eventRepository) GetEventByID(id uint) (*Event, error) {
	var e Event
	if err := r.db.First(&e, id).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, nil
		}
		return nil, err
	}
	return &e, nil
}

func (r *eventRepository) UpdateEvent(e *Event) error {
	return r.db.Save(e).Error
}

// GetUpcomingEvents returns published, non-archived events starting at or
// after now, soonest first. The view is computed, nothing is stored.
func (r *eventRepository) GetUpcomingEvents(now time.Time) ([]Event, error) {
	var events []Event
	err := r.db.
		Where("status = ? AND is_archived = ? AND start_date_time >= ?", StatusPublished, false, now).
		Order("start_date_time asc").
		Find(&events).Error
	if err != nil {
		return nil, err
	}
	return events, nil
}

func (r *eventRepository) GetEventsByClub(clubID uint) ([]Event, error) {
	var events []Event
	err := r.db.
		Where("club_id = ? AND status <> ?", clubID, StatusDeleted).
		Order("start_date_time desc").
		Find(&events).Error
	if err != nil {
		return nil, err
	}
	return events, nil
}

func (r *eventRepository) GetPastEventsByClub(clubID uint, now time.Time) ([]Event, error) {
	var events []Event
	err := r.db.
		Where("club_id = ? AND status = ? AND is_archived = ? AND show_in_past_events = ? AND start_date_time < ?",
			clubID, StatusPublished, false, true, now).
		Order("start_date_time desc").
		Find(&events).Error
	if err != nil {
		return nil, err
	}
	return events, nil
}

func (r *eventRepository) CreateRegistration(reg *EventRegistration) error {
	return r.db.Create(reg).Error
}

func (r *eventRepository) GetRegistration(eventID, userID uint) (*EventRegistration, error) {
	var reg EventRegistration
	err := r.db.Where("event_id = ? AND user_id = ?", eventID, userID).First(&reg).Error
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, nil
		}
		return nil, err
	}
	return &reg, nil
}

func (r *eventRepository) GetRegistrationsForUser(userID uint) ([]EventRegistration, error) {
	var regs []EventRegistration
	err := r.db.Preload("Event").
		Where("user_id = ?", userID).
		Order("registered_at desc").
		Find(&regs).Error
	if err != nil {
		return nil, err
	}
	return regs, nil
}

func (r *eventRepository) GetRegistrationsForEvent(eventID uint) ([]EventRegistration, error) {
	var regs []EventRegistration
	err := r.db.Where("event_id = ?", eventID).Order("registered_at asc").Find(&regs).Error
	if err != nil {
		return nil, err
	}
	return regs, nil
}

func (r *eventRepository) CountRegistrations(eventID uint) (int64, error) {
	var count int64
	err := r.db.Model(&EventRegistration{}).Where("event_id = ?", eventID).Count(&count).Error
	return count, err
}

// DeleteRegistration deletes the row outright so the unique (event, user)
// index never blocks a later re-registration.
func (r *eventRepository) DeleteRegistration(eventID, userID uint) error {
	result := r.db.Unscoped().Where("event_id = ? AND user_id = ?", eventID, userID).Delete(&EventRegistration{})
	if result.Error != nil {
		return result.Error
	}
	if result.RowsAffected == 0 {
		return gorm.ErrRecordNotFound
	}
	return nil
}
