package workflow

import "github.com/m04kA/SMC-AppointmentBot/internal/domain"

// State состояние диалога записи
type State string

const (
	StateChoosingDay       State = "choosing_day"
	StateCollectingName    State = "collecting_name"
	StateCollectingContact State = "collecting_contact"
	StateChoosingSlot      State = "choosing_slot"
	StateAwaitingApproval  State = "awaiting_approval"
	StateCancelled         State = "cancelled"
)

// Terminal сообщает, завершен ли диалог для клиента
func (s State) Terminal() bool {
	return s == StateAwaitingApproval || s == StateCancelled
}

// Session сессия диалога записи одного клиента.
// Хранит только накопленные к текущему состоянию данные; переходы выполняет
// Advance, сама сессия никаких побочных эффектов не производит.
type Session struct {
	UserID  int64
	State   State
	Weekday domain.Weekday
	Name    string
	Contact string
	Slots   []domain.Slot // Предложенные клиенту слоты
}

// NewSession создает сессию в начальном состоянии
func NewSession(userID int64) Session {
	return Session{
		UserID: userID,
		State:  StateChoosingDay,
	}
}
