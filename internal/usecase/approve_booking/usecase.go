package approve_booking

import (
	"context"
	"fmt"
	"strings"

	"github.com/m04kA/SMC-AppointmentBot/internal/domain"
)

const (
	msgApproved = "✅ Your booking for %s at %s has been confirmed!"
	msgRejected = "❌ Your booking request for %s at %s was declined.\n\nReason: %s"
)

// UseCase use case для решения администратора по заявке: подтверждение
// переносит заявку в подтвержденные записи, отклонение удаляет ее с
// уведомлением клиента о причине.
type UseCase struct {
	appointmentRepo AppointmentRepository
	txManager       TransactionManager
	reminders       ReminderScheduler
	notifier        Notifier
	logger          Logger
}

// NewUseCase создает новый экземпляр use case
func NewUseCase(
	appointmentRepo AppointmentRepository,
	txManager TransactionManager,
	reminders ReminderScheduler,
	notifier Notifier,
	logger Logger,
) *UseCase {
	return &UseCase{
		appointmentRepo: appointmentRepo,
		txManager:       txManager,
		reminders:       reminders,
		notifier:        notifier,
		logger:          logger,
	}
}

// Approve подтверждает заявку клиента.
// Слот перепроверяется в сериализуемой транзакции: между подачей заявки и
// решением администратора другой клиент мог занять то же время. При конфликте
// заявка остается в очереди нетронутой.
func (uc *UseCase) Approve(ctx context.Context, req *ApproveRequest) (*ApproveResponse, error) {
	uc.logger.Info("ApproveBooking: user=%d", req.UserID)

	if req.UserID <= 0 {
		return nil, fmt.Errorf("%w: userID must be positive", ErrInvalidInput)
	}

	// 1. Загружаем заявку клиента
	pending, err := uc.appointmentRepo.GetPending(ctx, req.UserID)
	if err != nil {
		uc.logger.Warn("ApproveBooking: failed to get pending appointment for user=%d: %v", req.UserID, err)
		return nil, ErrPendingNotFound
	}

	confirmed := *pending
	confirmed.Status = domain.StatusConfirmed

	// 2. Перенос заявки в подтвержденные в сериализуемой транзакции
	err = uc.txManager.DoSerializable(ctx, func(txCtx context.Context) error {
		// 2.1. Подтвержденные записи на дату с блокировкой (FOR UPDATE)
		booked, err := uc.appointmentRepo.ListConfirmedOnDate(txCtx, pending.StartAt)
		if err != nil {
			uc.logger.Error("ApproveBooking: failed to list appointments: %v", err)
			return fmt.Errorf("%w: failed to list appointments: %v", ErrInternal, err)
		}

		// 2.2. Слот мог занять другой клиент, пока заявка ждала решения
		for _, existing := range booked {
			if existing.OverlapsInterval(pending.StartAt, pending.EndAt) {
				uc.logger.Warn("ApproveBooking: slot %s-%s already taken by user=%d",
					pending.StartAt.Format(domain.TimeFormat), pending.EndAt.Format(domain.TimeFormat),
					existing.UserID)
				return ErrSlotTaken
			}
		}

		// 2.3. Подтверждаем запись и убираем заявку из очереди
		if err := uc.appointmentRepo.InsertConfirmed(txCtx, &confirmed); err != nil {
			uc.logger.Error("ApproveBooking: failed to insert confirmed appointment: %v", err)
			return fmt.Errorf("%w: failed to insert confirmed appointment: %v", ErrInternal, err)
		}

		if err := uc.appointmentRepo.DeletePending(txCtx, req.UserID); err != nil {
			uc.logger.Error("ApproveBooking: failed to delete pending appointment: %v", err)
			return fmt.Errorf("%w: failed to delete pending appointment: %v", ErrInternal, err)
		}

		return nil
	})

	if err != nil {
		return nil, err
	}

	uc.logger.Info("ApproveBooking: appointment confirmed for user=%d at %s",
		req.UserID, confirmed.StartAt.Format(domain.DateFormat))

	// 3. Ставим напоминание на подтвержденную запись
	uc.reminders.Schedule(confirmed.UserID, confirmed.StartAt)

	// 4. Уведомляем клиента. Ошибка доставки не откатывает подтверждение
	notified := true
	text := fmt.Sprintf(msgApproved,
		confirmed.Weekday.Title(), confirmed.StartAt.Format(domain.DisplayTimeFormat))
	if err := uc.notifier.Notify(ctx, confirmed.UserID, text); err != nil {
		uc.logger.Error("ApproveBooking: failed to notify user=%d: %v", confirmed.UserID, err)
		notified = false
	}

	return &ApproveResponse{
		Appointment:       &confirmed,
		RequesterNotified: notified,
	}, nil
}

// Reject отклоняет заявку клиента с указанием причины.
// Заявка удаляется из очереди независимо от того, удалось ли доставить
// клиенту уведомление.
func (uc *UseCase) Reject(ctx context.Context, req *RejectRequest) (*RejectResponse, error) {
	uc.logger.Info("RejectBooking: user=%d", req.UserID)

	if req.UserID <= 0 {
		return nil, fmt.Errorf("%w: userID must be positive", ErrInvalidInput)
	}

	reason := strings.TrimSpace(req.Reason)
	if reason == "" {
		return nil, fmt.Errorf("%w: rejection reason is required", ErrInvalidInput)
	}
	if len(reason) > domain.MaxRejectReasonLength {
		return nil, fmt.Errorf("%w: rejection reason is too long", ErrInvalidInput)
	}

	// 1. Загружаем заявку клиента
	pending, err := uc.appointmentRepo.GetPending(ctx, req.UserID)
	if err != nil {
		uc.logger.Warn("RejectBooking: failed to get pending appointment for user=%d: %v", req.UserID, err)
		return nil, ErrPendingNotFound
	}

	// 2. Уведомляем клиента о причине отказа
	notified := true
	text := fmt.Sprintf(msgRejected,
		pending.Weekday.Title(), pending.StartAt.Format(domain.DisplayTimeFormat), reason)
	if err := uc.notifier.Notify(ctx, pending.UserID, text); err != nil {
		uc.logger.Error("RejectBooking: failed to notify user=%d: %v", pending.UserID, err)
		notified = false
	}

	// 3. Убираем заявку из очереди
	if err := uc.appointmentRepo.DeletePending(ctx, req.UserID); err != nil {
		uc.logger.Error("RejectBooking: failed to delete pending appointment: %v", err)
		return nil, fmt.Errorf("%w: failed to delete pending appointment: %v", ErrInternal, err)
	}

	uc.logger.Info("RejectBooking: appointment rejected for user=%d", req.UserID)

	return &RejectResponse{
		Appointment:       pending,
		RequesterNotified: notified,
	}, nil
}
