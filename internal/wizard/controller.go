package wizard

import (
	"context"
	"fmt"
	"strconv"
	"strings"
	"sync"
	"time"

	"github.com/m04kA/SMC-MobileDiagnostics/internal/calendar"
	"github.com/m04kA/SMC-MobileDiagnostics/internal/domain"
	"github.com/m04kA/SMC-MobileDiagnostics/internal/integrations/bookingapi"
)

// Controller владеет черновиком и результатом доступности.
// Все методы безопасны для вызова из разных горутин; сетевые вызовы
// выполняются без удержания мьютекса.
type Controller struct {
	api       BookingAPI
	navigator Navigator
	analytics Analytics
	log       Logger
	loc       *time.Location

	mu           sync.Mutex
	services     []domain.Service
	draft        BookingDraft
	availability *domain.AvailabilityResult
	days         []calendar.DayGroup
	dateIndex    int
	message      string
	step         Step
	direction    Direction

	seq             uint64 // последний выданный номер запроса доступности
	loadingServices bool
	loadingSlots    bool
	submitting      bool
}

// NewController создает контроллер мастера бронирования.
// analytics может быть nil; loc - часовой пояс для подписей дат.
func NewController(api BookingAPI, navigator Navigator, analytics Analytics, loc *time.Location, log Logger) *Controller {
	if loc == nil {
		loc = time.UTC
	}
	return &Controller{
		api:       api,
		navigator: navigator,
		analytics: analytics,
		log:       log,
		loc:       loc,
		draft:     NewDraft(),
		step:      StepServiceAndLocation,
		direction: Forward,
	}
}

// LoadServices загружает каталог услуг один раз.
// При ошибке список остается пустым, а пользователь видит одно сообщение.
func (c *Controller) LoadServices(ctx context.Context) error {
	c.mu.Lock()
	if c.loadingServices {
		c.mu.Unlock()
		return ErrActionInProgress
	}
	c.loadingServices = true
	c.mu.Unlock()

	services, err := c.api.ListServices(ctx)

	c.mu.Lock()
	defer c.mu.Unlock()
	c.loadingServices = false

	// Вызывающий ушел - результат не применяем
	if ctx.Err() != nil {
		return ctx.Err()
	}

	if err != nil {
		c.log.Error("LoadServices: failed to load catalog: %v", err)
		c.services = nil
		c.message = MsgCatalogFailed
		return fmt.Errorf("%w: %v", ErrCatalogUnavailable, err)
	}

	c.services = services
	return nil
}

// SetPostcode меняет почтовый индекс; прежняя доступность становится недействительной
func (c *Controller) SetPostcode(postcode string) {
	c.mu.Lock()
	defer c.mu.Unlock()

	if c.draft.Details.Postcode == postcode {
		return
	}
	c.draft.Details.Postcode = postcode
	c.clearAvailabilityLocked()
	c.transitionLocked()
}

// SelectService выбирает единственную услугу; прежняя доступность становится недействительной
func (c *Controller) SelectService(serviceID string) {
	c.SelectServices([]string{serviceID})
}

// SelectServices выбирает набор услуг
func (c *Controller) SelectServices(serviceIDs []string) {
	c.mu.Lock()
	defer c.mu.Unlock()

	if equalIDs(c.draft.ServiceIDs, serviceIDs) {
		return
	}
	c.draft.ServiceIDs = append([]string{}, serviceIDs...)
	c.clearAvailabilityLocked()
	c.transitionLocked()
}

// FetchAvailability запрашивает слоты для текущего индекса и услуг.
// Пустой индекс или список услуг - ничего не делает.
// Ответ, пришедший после более нового запроса, отбрасывается.
func (c *Controller) FetchAvailability(ctx context.Context) error {
	c.mu.Lock()
	postcode := strings.TrimSpace(c.draft.Details.Postcode)
	serviceIDs := append([]string(nil), c.draft.ServiceIDs...)
	if postcode == "" || len(serviceIDs) == 0 {
		c.mu.Unlock()
		return nil
	}

	// 1. Сбрасываем сообщение, прежнюю доступность и выбранный слот
	c.message = ""
	c.clearAvailabilityLocked()
	seq := c.seq
	c.loadingSlots = true
	c.transitionLocked()
	c.mu.Unlock()

	// 2. Запрос
	result, err := c.api.GetAvailability(ctx, postcode, serviceIDs)

	c.mu.Lock()
	defer c.mu.Unlock()

	// 3. Устаревший ответ
	if seq != c.seq {
		c.log.Info("FetchAvailability: discarding stale response seq=%d (latest=%d)", seq, c.seq)
		return nil
	}
	c.loadingSlots = false

	if ctx.Err() != nil {
		return ctx.Err()
	}

	if err != nil {
		if detail, ok := bookingapi.Detail(err); ok {
			c.message = detail
		} else {
			c.message = MsgLookupFailed
		}
		c.log.Warn("FetchAvailability: postcode=%s failed: %v", postcode, err)
		return fmt.Errorf("%w: %v", ErrLookupFailed, err)
	}

	// 4. Сохраняем результат и показываем самую раннюю дату
	c.availability = result
	c.days = calendar.Group(result.Slots, c.loc)
	c.dateIndex = 0
	c.transitionLocked()

	c.emit("availability_checked", map[string]string{
		"zone":          string(result.Zone),
		"slots":         strconv.Itoa(result.AvailableCount()),
		"manual_review": strconv.FormatBool(result.ManualReviewRequired),
	})

	return nil
}

// SelectSlot выбирает слот из текущей доступности (шаг 2 -> 3)
func (c *Controller) SelectSlot(start time.Time) error {
	c.mu.Lock()
	defer c.mu.Unlock()

	if c.availability == nil || c.availability.ManualReviewRequired || !c.availability.OffersSlot(start) {
		c.message = MsgSlotNotOffered
		return ErrSlotNotOffered
	}

	c.draft.Slot = &start
	c.message = ""
	c.transitionLocked()
	return nil
}

// ChangeSlot сбрасывает выбранный слот (шаг 3 -> 2)
func (c *Controller) ChangeSlot() {
	c.mu.Lock()
	defer c.mu.Unlock()

	c.draft.Slot = nil
	c.transitionLocked()
}

// ChangeService сбрасывает доступность (любой шаг -> 1)
func (c *Controller) ChangeService() {
	c.mu.Lock()
	defer c.mu.Unlock()

	c.clearAvailabilityLocked()
	c.transitionLocked()
}

// SelectDate переходит к дате по индексу навигатора
func (c *Controller) SelectDate(index int) bool {
	c.mu.Lock()
	defer c.mu.Unlock()

	if index < 0 || index >= len(c.days) {
		return false
	}
	c.dateIndex = index
	return true
}

// SelectDateKey переходит к дате по ключу YYYY-MM-DD (клик в календаре)
func (c *Controller) SelectDateKey(key string) bool {
	c.mu.Lock()
	i := calendar.IndexOf(c.days, key)
	c.mu.Unlock()
	return c.SelectDate(i)
}

// NextDate следующая дата в навигаторе
func (c *Controller) NextDate() bool {
	c.mu.Lock()
	i := c.dateIndex + 1
	c.mu.Unlock()
	return c.SelectDate(i)
}

// PrevDate предыдущая дата в навигаторе
func (c *Controller) PrevDate() bool {
	c.mu.Lock()
	i := c.dateIndex - 1
	c.mu.Unlock()
	return c.SelectDate(i)
}

// UpdateDetails изменяет данные клиента.
// Почтовый индекс меняется только через SetPostcode.
func (c *Controller) UpdateDetails(edit func(d *domain.BookingDetails)) {
	c.mu.Lock()
	defer c.mu.Unlock()

	postcode := c.draft.Details.Postcode
	edit(&c.draft.Details)
	c.draft.Details.Postcode = postcode
}

// clearAvailabilityLocked сбрасывает доступность и слот, а ответы на уже
// отправленные запросы доступности становятся устаревшими
func (c *Controller) clearAvailabilityLocked() {
	c.seq++
	c.loadingSlots = false
	c.availability = nil
	c.days = nil
	c.dateIndex = 0
	c.draft.Slot = nil
}

func (c *Controller) resetLocked() {
	c.draft = NewDraft()
	c.clearAvailabilityLocked()
	c.transitionLocked()
}

func (c *Controller) transitionLocked() {
	next := DeriveStep(c.availability, c.draft.Slot)
	c.direction = DirectionOf(c.step, next)
	c.step = next
}

// emit отправляет событие аналитики, не блокируя основной сценарий
func (c *Controller) emit(event string, props map[string]string) {
	if c.analytics == nil {
		return
	}
	go func() {
		defer func() {
			if r := recover(); r != nil {
				c.log.Warn("Analytics: %s panicked: %v", event, r)
			}
		}()
		c.analytics.Track(event, props)
	}()
}

func equalIDs(a, b []string) bool {
	if len(a) != len(b) {
		return false
	}
	for i := range a {
		if a[i] != b[i] {
			return false
		}
	}
	return true
}
