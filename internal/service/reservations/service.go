package reservations

import (
	"context"
	"errors"
	"fmt"

	"github.com/google/uuid"

	"github.com/m04kA/SMC-ReservationService/internal/domain"
	calendarRepo "github.com/m04kA/SMC-ReservationService/internal/infra/storage/calendar"
	reservationRepo "github.com/m04kA/SMC-ReservationService/internal/infra/storage/reservation"
	"github.com/m04kA/SMC-ReservationService/internal/service/reservations/models"
)

// Service сервис администрирования бронирований
type Service struct {
	reservationRepo ReservationRepository
	calendarRepo    CalendarRepository
	txManager       TransactionManager
	logger          Logger
}

// NewService создает новый экземпляр сервиса бронирований
func NewService(
	reservationRepo ReservationRepository,
	calendarRepo CalendarRepository,
	txManager TransactionManager,
	logger Logger,
) *Service {
	return &Service{
		reservationRepo: reservationRepo,
		calendarRepo:    calendarRepo,
		txManager:       txManager,
		logger:          logger,
	}
}

// List получает бронирования календарей пользователя
// Если указан календарь, пользователь должен быть его владельцем
func (s *Service) List(ctx context.Context, req *models.ListReservationsRequest) (*models.ReservationListResponse, error) {
	s.logger.Info("List: fetching reservations for user=%s, calendar=%v", req.UserID, req.CalendarID)

	if req.From != nil && req.To != nil && !req.From.Before(*req.To) {
		return nil, fmt.Errorf("%w: 'from' must be before 'to'", ErrInvalidInput)
	}

	if req.CalendarID != nil {
		if err := s.checkOwner(ctx, "List", *req.CalendarID, req.UserID); err != nil {
			return nil, err
		}
	}

	reservations, err := s.reservationRepo.List(ctx, domain.ReservationsFilter{
		OwnerID:    req.UserID,
		CalendarID: req.CalendarID,
		From:       req.From,
		To:         req.To,
	})
	if err != nil {
		s.logger.Error("List: repository error for user=%s: %v", req.UserID, err)
		return nil, fmt.Errorf("%w: List - repository error: %v", ErrInternal, err)
	}

	s.logger.Info("List: successfully fetched %d reservations for user=%s", len(reservations), req.UserID)
	return models.FromDomainReservationList(reservations), nil
}

// Delete удаляет бронирование
// Доступно только владельцу календаря
func (s *Service) Delete(ctx context.Context, id int64, userID uuid.UUID) error {
	s.logger.Info("Delete: deleting reservation id=%d by user=%s", id, userID)

	reservation, err := s.reservationRepo.GetByID(ctx, id)
	if err != nil {
		if errors.Is(err, reservationRepo.ErrReservationNotFound) {
			s.logger.Warn("Delete: reservation id=%d not found", id)
			return ErrReservationNotFound
		}
		s.logger.Error("Delete: repository error for reservation id=%d: %v", id, err)
		return fmt.Errorf("%w: Delete - repository error: %v", ErrInternal, err)
	}

	if err := s.checkOwner(ctx, "Delete", reservation.CalendarID, userID); err != nil {
		return err
	}

	if err := s.reservationRepo.Delete(ctx, id); err != nil {
		if errors.Is(err, reservationRepo.ErrReservationNotFound) {
			s.logger.Warn("Delete: reservation id=%d not found during deletion", id)
			return ErrReservationNotFound
		}
		s.logger.Error("Delete: repository error for reservation id=%d: %v", id, err)
		return fmt.Errorf("%w: Delete - repository error: %v", ErrInternal, err)
	}

	s.logger.Info("Delete: successfully deleted reservation id=%d", id)
	return nil
}

// DeleteMany удаляет несколько бронирований одной транзакцией.
// Все бронирования должны существовать и принадлежать календарям пользователя, иначе ничего не удаляется.
func (s *Service) DeleteMany(ctx context.Context, req *models.BulkDeleteRequest) (*models.BulkDeleteResponse, error) {
	ids := uniqueIDs(req.IDs)
	s.logger.Info("DeleteMany: deleting %d reservations by user=%s", len(ids), req.UserID)

	if len(ids) == 0 {
		return nil, fmt.Errorf("%w: ids are required", ErrInvalidInput)
	}
	if len(ids) > domain.MaxBulkDeleteSize {
		return nil, fmt.Errorf("%w: at most %d reservations per request", ErrInvalidInput, domain.MaxBulkDeleteSize)
	}

	var deleted int64
	err := s.txManager.Do(ctx, func(txCtx context.Context) error {
		// 1. Все бронирования должны существовать
		found, err := s.reservationRepo.GetByIDs(txCtx, ids)
		if err != nil {
			return fmt.Errorf("%w: DeleteMany - repository error: %v", ErrInternal, err)
		}
		if len(found) != len(ids) {
			s.logger.Warn("DeleteMany: %d of %d reservations not found", len(ids)-len(found), len(ids))
			return ErrReservationNotFound
		}

		// 2. Каждый затронутый календарь должен принадлежать пользователю
		checked := make(map[uuid.UUID]bool)
		for _, r := range found {
			if checked[r.CalendarID] {
				continue
			}
			if err := s.checkOwner(txCtx, "DeleteMany", r.CalendarID, req.UserID); err != nil {
				return err
			}
			checked[r.CalendarID] = true
		}

		// 3. Удаляем
		deleted, err = s.reservationRepo.DeleteMany(txCtx, ids)
		if err != nil {
			return fmt.Errorf("%w: DeleteMany - repository error: %v", ErrInternal, err)
		}
		return nil
	})
	if err != nil {
		if errors.Is(err, ErrInternal) {
			s.logger.Error("DeleteMany: %v", err)
		}
		return nil, err
	}

	s.logger.Info("DeleteMany: successfully deleted %d reservations", deleted)
	return &models.BulkDeleteResponse{Deleted: deleted}, nil
}

// Вспомогательные методы

// checkOwner проверяет, что календарь существует и принадлежит пользователю
func (s *Service) checkOwner(ctx context.Context, op string, calendarID, userID uuid.UUID) error {
	calendar, err := s.calendarRepo.GetByID(ctx, calendarID)
	if err != nil {
		if errors.Is(err, calendarRepo.ErrCalendarNotFound) {
			s.logger.Warn("%s: calendar id=%s not found", op, calendarID)
			return ErrCalendarNotFound
		}
		s.logger.Error("%s: failed to get calendar id=%s: %v", op, calendarID, err)
		return fmt.Errorf("%w: %s - repository error: %v", ErrInternal, op, err)
	}

	if !calendar.IsOwnedBy(userID) {
		s.logger.Warn("%s: user=%s is not the owner of calendar id=%s", op, userID, calendarID)
		return ErrAccessDenied
	}
	return nil
}

func uniqueIDs(ids []int64) []int64 {
	seen := make(map[int64]struct{}, len(ids))
	result := make([]int64, 0, len(ids))
	for _, id := range ids {
		if _, ok := seen[id]; ok {
			continue
		}
		seen[id] = struct{}{}
		result = append(result, id)
	}
	return result
}
