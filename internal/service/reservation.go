package service

import (
	"context"
	"strings"
	"time"

	"github.com/Skotchmaster/restaurant_pos/internal/events"
	"github.com/Skotchmaster/restaurant_pos/internal/models"
	"github.com/Skotchmaster/restaurant_pos/internal/repo"
	"github.com/Skotchmaster/restaurant_pos/internal/transport"
)

// Layouts without a zone are read in the server's local time.
var reservationLayouts = []string{
	time.RFC3339,
	"2006-01-02T15:04",
	"2006-01-02T15:04:05",
	"2006-01-02 15:04:05",
	"2006-01-02 15:04",
	"2006-01-02",
}

func ParseReservationDate(v string) (time.Time, error) {
	v = strings.TrimSpace(v)
	for _, layout := range reservationLayouts {
		if t, err := time.ParseInLocation(layout, v, time.Local); err == nil {
			return t.UTC(), nil
		}
	}
	return time.Time{}, invalid("reservation_date %q is not a valid date", v)
}

type ReservationService struct {
	Repo   *repo.GormRepo
	Events events.Publisher
}

func (s *ReservationService) List(ctx context.Context) ([]models.ReservationDetail, error) {
	rows, err := s.Repo.ListReservations(ctx)
	return rows, storeErr("reservation", err)
}

func (s *ReservationService) Get(ctx context.Context, id uint) (*models.ReservationDetail, error) {
	row, err := s.Repo.GetReservationDetail(ctx, id)
	if err != nil {
		return nil, storeErr("reservation", err)
	}
	return row, nil
}

func (s *ReservationService) Create(ctx context.Context, req transport.CreateReservationRequest) (*models.Reservation, error) {
	if req.CustomerID == 0 {
		return nil, invalid("customer_id is required")
	}
	if req.GuestCount <= 0 {
		return nil, invalid("guest_count must be > 0")
	}
	date, err := ParseReservationDate(req.ReservationDate)
	if err != nil {
		return nil, err
	}

	reservation := &models.Reservation{
		CustomerID:      req.CustomerID,
		ReservationDate: date,
		GuestCount:      req.GuestCount,
		Status:          models.ReservationStatusConfirmed,
		Notes:           req.Notes,
	}
	err = s.Repo.Transaction(ctx, func(tx *repo.GormRepo) error {
		ok, err := tx.CustomerExists(ctx, req.CustomerID)
		if err != nil {
			return err
		}
		if !ok {
			return invalid("customer %d does not exist", req.CustomerID)
		}
		return tx.CreateReservation(ctx, reservation)
	})
	if err != nil {
		return nil, storeErr("reservation", err)
	}

	events.Emit(ctx, s.Events, events.TopicReservations, events.Event{Type: "reservation_created", ID: reservation.ID, Data: reservation})
	return reservation, nil
}

// Update replaces date, guest count and notes. Status changes only when given.
func (s *ReservationService) Update(ctx context.Context, id uint, req transport.UpdateReservationRequest) (*models.Reservation, error) {
	if req.GuestCount <= 0 {
		return nil, invalid("guest_count must be > 0")
	}
	date, err := ParseReservationDate(req.ReservationDate)
	if err != nil {
		return nil, err
	}

	var reservation *models.Reservation
	err = s.Repo.Transaction(ctx, func(tx *repo.GormRepo) error {
		cur, err := tx.GetReservation(ctx, id)
		if err != nil {
			return err
		}
		cur.ReservationDate = date
		cur.GuestCount = req.GuestCount
		cur.Notes = req.Notes
		if st := strings.TrimSpace(req.Status); st != "" {
			cur.Status = st
		}
		reservation = cur
		return tx.SaveReservation(ctx, cur)
	})
	if err != nil {
		return nil, storeErr("reservation", err)
	}

	events.Emit(ctx, s.Events, events.TopicReservations, events.Event{Type: "reservation_updated", ID: id, Data: reservation})
	return reservation, nil
}

func (s *ReservationService) Delete(ctx context.Context, id uint) error {
	if err := s.Repo.DeleteReservation(ctx, id); err != nil {
		return storeErr("reservation", err)
	}
	events.Emit(ctx, s.Events, events.TopicReservations, events.Event{Type: "reservation_deleted", ID: id})
	return nil
}
