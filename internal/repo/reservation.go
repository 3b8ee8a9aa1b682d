package repo

import (
	"context"

	"github.com/Skotchmaster/restaurant_pos/internal/models"
)

const reservationDetailSelect = "r.*, c.name AS customer_name, c.phone AS phone, c.email AS email"

func (r *GormRepo) ListReservations(ctx context.Context) ([]models.ReservationDetail, error) {
	rows := []models.ReservationDetail{}
	err := r.DB.WithContext(ctx).
		Table("reservations AS r").
		Select(reservationDetailSelect).
		Joins("LEFT JOIN customers c ON c.id = r.customer_id").
		Order("r.reservation_date DESC").
		Order("r.id DESC").
		Scan(&rows).Error
	if err != nil {
		return nil, err
	}
	return rows, nil
}

func (r *GormRepo) GetReservationDetail(ctx context.Context, id uint) (*models.ReservationDetail, error) {
	var row models.ReservationDetail
	res := r.DB.WithContext(ctx).
		Table("reservations AS r").
		Select(reservationDetailSelect).
		Joins("LEFT JOIN customers c ON c.id = r.customer_id").
		Where("r.id = ?", id).
		Limit(1).
		Scan(&row)
	if err := notFoundIfEmpty(res); err != nil {
		return nil, err
	}
	return &row, nil
}

func (r *GormRepo) GetReservation(ctx context.Context, id uint) (*models.Reservation, error) {
	var reservation models.Reservation
	if err := r.DB.WithContext(ctx).First(&reservation, id).Error; err != nil {
		return nil, err
	}
	return &reservation, nil
}

func (r *GormRepo) CreateReservation(ctx context.Context, reservation *models.Reservation) error {
	return r.DB.WithContext(ctx).Create(reservation).Error
}

func (r *GormRepo) SaveReservation(ctx context.Context, reservation *models.Reservation) error {
	return r.DB.WithContext(ctx).Save(reservation).Error
}

func (r *GormRepo) DeleteReservation(ctx context.Context, id uint) error {
	return notFoundIfEmpty(r.DB.WithContext(ctx).Delete(&models.Reservation{}, id))
}
