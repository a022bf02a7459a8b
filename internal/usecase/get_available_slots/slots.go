package get_available_slots

import (
	"fmt"
	"time"

	"github.com/m04kA/SMC-AppointmentBot/internal/domain"
)

// breakWindow перерыв, совмещенный с конкретной датой
type breakWindow struct {
	start time.Time
	end   time.Time
}

// generateSlots генерирует свободные слоты на дату по конфигурации дня.
// Детерминированная функция без побочных эффектов: одинаковый вход дает
// одинаковый выход, входные данные не изменяются.
//
// Курсор идет от времени открытия:
//  1. Пока курсор попадает внутрь какого-либо перерыва [start, end),
//     курсор переносится на конец этого перерыва и проверка повторяется
//     заново - так курсор, попавший после переноса в следующий перерыв,
//     выталкивается и из него. Пересекающиеся перерывы не сливаются.
//  2. Полный слот: если конец слота не позже закрытия, слот предлагается
//     при отсутствии пересечений с занятыми интервалами. Курсор сдвигается
//     на конец слота независимо от того, был ли слот предложен - занятые
//     слоты тоже потребляют свою длительность, иначе сетка слотов съезжает
//     относительно перерывов.
//  3. Неполный хвостовой слот: остаток до закрытия предлагается только при
//     включенных частичных слотах. Курсор при этом сдвигается на полную
//     длительность, а не на остаток - цикл завершится на следующей проверке.
func generateSlots(cfg *domain.DayConfig, date time.Time, booked []*domain.Appointment) ([]domain.Slot, error) {
	openAt, err := cfg.OpenTime.At(date)
	if err != nil {
		return nil, fmt.Errorf("%w: open time: %v", ErrInvalidConfig, err)
	}

	closeAt, err := cfg.CloseTime.At(date)
	if err != nil {
		return nil, fmt.Errorf("%w: close time: %v", ErrInvalidConfig, err)
	}

	if !openAt.Before(closeAt) {
		return nil, fmt.Errorf("%w: open time %s is not before close time %s", ErrInvalidConfig, cfg.OpenTime, cfg.CloseTime)
	}

	duration := time.Duration(cfg.SlotDurationMinutes) * time.Minute

	// Перерывы обрабатываются в порядке возрастания времени начала
	breaks := make([]breakWindow, 0, len(cfg.Breaks))
	for _, b := range cfg.SortedBreaks() {
		bStart, err := b.Start.At(date)
		if err != nil {
			return nil, fmt.Errorf("%w: break start: %v", ErrInvalidConfig, err)
		}
		bEnd, err := b.End.At(date)
		if err != nil {
			return nil, fmt.Errorf("%w: break end: %v", ErrInvalidConfig, err)
		}
		breaks = append(breaks, breakWindow{start: bStart, end: bEnd})
	}

	slots := make([]domain.Slot, 0)
	cursor := openAt

	for cursor.Before(closeAt) {
		if jumped, next := jumpBreak(cursor, breaks); jumped {
			cursor = next
			continue
		}

		slotEnd := cursor.Add(duration)

		if !slotEnd.After(closeAt) {
			if !overlapsAny(cursor, slotEnd, booked) {
				slots = append(slots, domain.Slot{
					Start:        cursor,
					End:          slotEnd,
					FullDuration: true,
				})
			}
			cursor = slotEnd
			continue
		}

		remaining := closeAt.Sub(cursor)
		if cfg.AllowPartialSlots && remaining > 0 && !overlapsAny(cursor, closeAt, booked) {
			slots = append(slots, domain.Slot{
				Start:        cursor,
				End:          closeAt,
				FullDuration: false,
			})
		}
		cursor = cursor.Add(duration)
	}

	return slots, nil
}

// jumpBreak возвращает конец первого перерыва, содержащего cursor.
// Содержание проверяется как [start, end): начало перерыва занято, конец свободен.
func jumpBreak(cursor time.Time, breaks []breakWindow) (bool, time.Time) {
	for _, b := range breaks {
		if !cursor.Before(b.start) && cursor.Before(b.end) {
			return true, b.end
		}
	}
	return false, cursor
}

// overlapsAny проверяет пересечение кандидата [start, end) с занятыми интервалами
func overlapsAny(start, end time.Time, booked []*domain.Appointment) bool {
	for _, appt := range booked {
		if appt.OverlapsInterval(start, end) {
			return true
		}
	}
	return false
}
