package create_booking

import (
	"context"
	"fmt"

	"github.com/m04kA/SMC-AppointmentBot/internal/domain"
)

// UseCase use case для создания заявки на запись.
// Заявка попадает в очередь на подтверждение администратором; слот при этом
// проверяется на занятость еще раз по живому набору подтвержденных записей.
type UseCase struct {
	appointmentRepo AppointmentRepository
	txManager       TransactionManager
	adminNotifier   AdminNotifier
	logger          Logger
}

// NewUseCase создает новый экземпляр use case
func NewUseCase(
	appointmentRepo AppointmentRepository,
	txManager TransactionManager,
	adminNotifier AdminNotifier,
	logger Logger,
) *UseCase {
	return &UseCase{
		appointmentRepo: appointmentRepo,
		txManager:       txManager,
		adminNotifier:   adminNotifier,
		logger:          logger,
	}
}

// Execute выполняет use case создания заявки.
// Использует сериализуемую транзакцию: слоты генерировались по снимку,
// и к моменту фиксации слот мог занять другой клиент. Повторная заявка
// того же клиента перезаписывает предыдущую (последний выбор выигрывает).
func (uc *UseCase) Execute(ctx context.Context, req *Request) (*Response, error) {
	uc.logger.Info("CreateBooking: user=%d, weekday=%s, slot=%s-%s",
		req.UserID, req.Weekday,
		req.StartAt.Format(domain.TimeFormat), req.EndAt.Format(domain.TimeFormat))

	// 1. Валидация входных данных
	if err := validateRequest(req); err != nil {
		uc.logger.Warn("CreateBooking: validation failed: %v", err)
		return nil, err
	}

	appt := &domain.Appointment{
		UserID:  req.UserID,
		Weekday: req.Weekday,
		StartAt: req.StartAt,
		EndAt:   req.EndAt,
		Name:    req.Name,
		Contact: req.Contact,
		Status:  domain.StatusPending,
	}

	// 2. Проверка занятости и запись заявки в сериализуемой транзакции
	err := uc.txManager.DoSerializable(ctx, func(txCtx context.Context) error {
		// 2.1. Подтвержденные записи на дату с блокировкой (FOR UPDATE)
		booked, err := uc.appointmentRepo.ListConfirmedOnDate(txCtx, req.StartAt)
		if err != nil {
			uc.logger.Error("CreateBooking: failed to list appointments: %v", err)
			return fmt.Errorf("%w: failed to list appointments: %v", ErrInternal, err)
		}

		// 2.2. Финальная проверка пересечений - единственная точка, где
		// инвариант отсутствия двойной записи защищен от гонки
		for _, existing := range booked {
			if existing.OverlapsInterval(req.StartAt, req.EndAt) {
				uc.logger.Warn("CreateBooking: slot %s-%s already taken by user=%d",
					req.StartAt.Format(domain.TimeFormat), req.EndAt.Format(domain.TimeFormat),
					existing.UserID)
				return ErrSlotTaken
			}
		}

		// 2.3. Сохраняем заявку, перезаписывая предыдущую заявку клиента
		if err := uc.appointmentRepo.UpsertPending(txCtx, appt); err != nil {
			uc.logger.Error("CreateBooking: failed to save pending appointment: %v", err)
			return fmt.Errorf("%w: failed to save pending appointment: %v", ErrInternal, err)
		}

		return nil
	})

	if err != nil {
		return nil, err
	}

	uc.logger.Info("CreateBooking: pending appointment saved for user=%d", req.UserID)

	// 3. Уведомляем администратора с выбором подтвердить/отклонить.
	// Ошибка доставки не откатывает заявку - она уже сохранена.
	adminNotified := true
	if err := uc.adminNotifier.NotifyBookingRequest(ctx, appt); err != nil {
		uc.logger.Error("CreateBooking: failed to notify admin about user=%d: %v", req.UserID, err)
		adminNotified = false
	}

	return &Response{
		Appointment:   appt,
		AdminNotified: adminNotified,
	}, nil
}
