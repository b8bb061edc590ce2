package wizard

import (
	"context"
	"errors"
	"fmt"
	"strings"
	"sync"
	"time"

	"github.com/m04kA/SMC-SalonBookingService/internal/domain"
	"github.com/m04kA/SMC-SalonBookingService/internal/usecase/check_availability"
	"github.com/m04kA/SMC-SalonBookingService/internal/usecase/create_booking"
	"github.com/m04kA/SMC-SalonBookingService/internal/usecase/resolve_customer"
	"github.com/m04kA/SMC-SalonBookingService/pkg/types"
)

// Step шаг мастера записи
type Step int

const (
	StepService Step = iota + 1
	StepStylist
	StepDateTime
	StepDetails
	StepConfirm
)

func (s Step) String() string {
	switch s {
	case StepService:
		return "service"
	case StepStylist:
		return "stylist"
	case StepDateTime:
		return "datetime"
	case StepDetails:
		return "details"
	case StepConfirm:
		return "confirm"
	}
	return fmt.Sprintf("step(%d)", int(s))
}

// Controller мастер записи одной сессии
//
// Выбор накапливается по шагам Service -> Stylist -> Date&Time -> Details -> Confirm.
// Каждая внешняя операция (загрузка услуги, проверка слота, поиск клиента, отправка)
// имеет собственное состояние Op и собственный счетчик поколений: результат, пришедший
// после того, как входные данные операции изменились, отбрасывается.
// Мьютекс не удерживается во время внешних вызовов.
type Controller struct {
	mu     sync.Mutex
	deps   Dependencies
	logger Logger

	step Step
	sel  domain.Selection

	serviceGen uint64
	slotGen    uint64
	detailsGen uint64

	service      Op[*domain.Service]
	availability Op[bool]
	customer     Op[*domain.Customer]
	submission   Op[*domain.Booking]

	lastBooking *domain.Booking
}

// NewController создает мастер на первом шаге с пустым выбором
func NewController(deps Dependencies, logger Logger) *Controller {
	c := &Controller{deps: deps, logger: logger}
	c.resetLocked()
	return c
}

// SelectService выбирает услугу и фиксирует ее цену в выборе
// Повторный выбор той же услуги не пересчитывает уже зафиксированную сумму
func (c *Controller) SelectService(ctx context.Context, serviceID int64) error {
	if serviceID <= 0 {
		return domain.NewValidationError("service_id", "must be positive")
	}

	c.mu.Lock()
	if c.submission.IsPending() {
		c.mu.Unlock()
		return ErrOperationInFlight
	}
	if c.sel.ServiceID == serviceID && c.sel.TotalAmount != nil {
		c.mu.Unlock()
		return nil
	}
	c.serviceGen++
	gen := c.serviceGen
	c.service = pendingOp[*domain.Service]()
	c.mu.Unlock()

	svc, err := c.deps.Catalog.GetActiveService(ctx, serviceID)

	c.mu.Lock()
	defer c.mu.Unlock()

	if gen != c.serviceGen {
		return ErrSuperseded
	}
	if err != nil {
		c.service = failureOp[*domain.Service](err)
		c.sel.ServiceID = 0
		c.sel.ServiceName = ""
		c.sel.TotalAmount = nil
		c.logger.Warn("Wizard: failed to load service id=%d: %v", serviceID, err)
		return err
	}

	amount := svc.EffectivePrice()
	c.service = successOp(svc)
	c.sel.ServiceID = svc.ID
	c.sel.ServiceName = svc.Name
	c.sel.TotalAmount = &amount

	return nil
}

// SelectStylist выбирает стилиста или вариант "любой"
// Смена стилиста сбрасывает результат проверки слота: он будет перепроверен
// при входе на шаг даты и времени
func (c *Controller) SelectStylist(choice domain.StylistChoice) error {
	if !choice.IsValid() {
		return domain.NewValidationError("stylist_id", "must be a stylist id or \"any\"")
	}

	c.mu.Lock()
	defer c.mu.Unlock()

	if c.submission.IsPending() {
		return ErrOperationInFlight
	}
	if c.sel.Stylist != nil && c.sel.Stylist.Equal(choice) {
		return nil
	}

	c.sel.Stylist = &choice
	c.invalidateSlotLocked()

	return nil
}

// SelectSlot выбирает дату и время и сразу проверяет доступность слота
// "Слот занят" - нормальный результат (availability = success(false)), а не ошибка
func (c *Controller) SelectSlot(ctx context.Context, date time.Time, t types.TimeString) error {
	if date.IsZero() {
		return domain.NewValidationError("booking_date", "is required")
	}
	if !domain.IsOnSlotGrid(t) {
		return domain.NewValidationError("booking_time",
			fmt.Sprintf("must be a %d-minute slot between %s and %s",
				domain.SlotDurationMinutes, domain.OpeningTime, domain.ClosingTime))
	}

	c.mu.Lock()
	if c.submission.IsPending() {
		c.mu.Unlock()
		return ErrOperationInFlight
	}
	c.sel.Date = date
	c.sel.Time = t
	c.invalidateSlotLocked()
	req, gen := c.startCheckLocked()
	c.mu.Unlock()

	return c.runCheck(ctx, req, gen)
}

// SubmitDetails сохраняет контактные данные и находит или создает клиента
// Введенные данные сохраняются в выборе даже при ошибке валидации
func (c *Controller) SubmitDetails(ctx context.Context, name, email, phone, specialRequests string) error {
	c.mu.Lock()
	if c.submission.IsPending() {
		c.mu.Unlock()
		return ErrOperationInFlight
	}

	unchanged := c.customer.Succeeded() &&
		c.sel.CustomerName == name && c.sel.CustomerEmail == email && c.sel.CustomerPhone == phone

	c.sel.CustomerName = name
	c.sel.CustomerEmail = email
	c.sel.CustomerPhone = phone
	c.sel.SpecialRequests = specialRequests

	if len(strings.TrimSpace(specialRequests)) > domain.MaxSpecialRequestsLength {
		c.mu.Unlock()
		return domain.NewValidationError("special_requests",
			fmt.Sprintf("must be at most %d characters", domain.MaxSpecialRequestsLength))
	}

	if unchanged {
		c.mu.Unlock()
		return nil
	}

	c.detailsGen++
	gen := c.detailsGen
	c.sel.CustomerID = 0

	if err := domain.ValidateContact(name, email, phone); err != nil {
		c.customer = failureOp[*domain.Customer](err)
		c.mu.Unlock()
		return err
	}

	c.customer = pendingOp[*domain.Customer]()
	c.mu.Unlock()

	resp, err := c.deps.Customers.Execute(ctx, &resolve_customer.Request{Name: name, Email: email, Phone: phone})

	c.mu.Lock()
	defer c.mu.Unlock()

	if gen != c.detailsGen {
		return ErrSuperseded
	}
	if err != nil {
		c.customer = failureOp[*domain.Customer](err)
		c.logger.Warn("Wizard: failed to resolve customer: %v", err)
		return err
	}

	c.customer = successOp(resp.Customer)
	c.sel.CustomerID = resp.Customer.ID

	return nil
}

// Next переходит на следующий шаг, если требования текущего шага выполнены
// и для него не выполняется блокирующая операция
func (c *Controller) Next(ctx context.Context) error {
	c.mu.Lock()
	if err := c.canAdvanceLocked(); err != nil {
		c.mu.Unlock()
		return err
	}
	c.step++
	req, gen, check := c.maybeStartCheckLocked()
	c.mu.Unlock()

	if check {
		c.recheck(ctx, req, gen)
	}
	return nil
}

// Previous возвращается на шаг назад; введенные данные не очищаются
func (c *Controller) Previous(ctx context.Context) error {
	c.mu.Lock()
	if c.step > StepService {
		c.step--
	}
	req, gen, check := c.maybeStartCheckLocked()
	c.mu.Unlock()

	if check {
		c.recheck(ctx, req, gen)
	}
	return nil
}

// Complete собирает бронирование из выбора и отправляет его
// При успехе состояние мастера очищается; при ошибке весь выбор сохраняется,
// чтобы можно было повторить отправку или вернуться и выбрать другой слот
func (c *Controller) Complete(ctx context.Context) (*domain.Booking, error) {
	c.mu.Lock()
	if c.step != StepConfirm {
		c.mu.Unlock()
		return nil, ErrNotOnConfirmStep
	}
	if c.submission.IsPending() || c.availability.IsPending() || c.customer.IsPending() || c.service.IsPending() {
		c.mu.Unlock()
		return nil, ErrOperationInFlight
	}
	if !c.availability.Succeeded() || !c.availability.Value {
		c.mu.Unlock()
		return nil, fmt.Errorf("%w: slot is not confirmed available", ErrStepIncomplete)
	}

	if _, err := domain.BuildBookingRequest(c.sel); err != nil {
		c.submission = failureOp[*domain.Booking](err)
		c.mu.Unlock()
		return nil, err
	}

	sel := copySelection(c.sel)
	c.submission = pendingOp[*domain.Booking]()
	c.mu.Unlock()

	resp, err := c.deps.Bookings.Execute(ctx, &create_booking.Request{Selection: sel, ServerPriced: true})

	c.mu.Lock()
	defer c.mu.Unlock()

	if err != nil {
		c.submission = failureOp[*domain.Booking](err)
		if errors.Is(err, create_booking.ErrSlotNotAvailable) {
			c.availability = successOp(false)
		}
		c.logger.Warn("Wizard: booking submission failed: %v", err)
		return nil, err
	}

	booking := resp.Booking
	c.resetLocked()
	c.lastBooking = booking
	c.logger.Info("Wizard: booking id=%d submitted", booking.ID)

	return booking, nil
}

// Snapshot возвращает копию состояния мастера
func (c *Controller) Snapshot() Snapshot {
	c.mu.Lock()
	defer c.mu.Unlock()

	return Snapshot{
		Step:         c.step,
		Selection:    copySelection(c.sel),
		Service:      c.service,
		Availability: c.availability,
		Customer:     c.customer,
		Submission:   c.submission,
		CanGoNext:    c.canAdvanceLocked() == nil,
		CanGoBack:    c.step > StepService,
		LastBooking:  c.lastBooking,
	}
}

// Snapshot неизменяемая копия состояния мастера
type Snapshot struct {
	Step         Step
	Selection    domain.Selection
	Service      Op[*domain.Service]
	Availability Op[bool]
	Customer     Op[*domain.Customer]
	Submission   Op[*domain.Booking]
	CanGoNext    bool
	CanGoBack    bool
	LastBooking  *domain.Booking // последнее успешно созданное бронирование
}

func (c *Controller) canAdvanceLocked() error {
	if c.submission.IsPending() {
		return ErrOperationInFlight
	}

	switch c.step {
	case StepService:
		if c.service.IsPending() {
			return ErrOperationInFlight
		}
		if !c.service.Succeeded() || c.sel.ServiceID <= 0 || c.sel.TotalAmount == nil {
			return fmt.Errorf("%w: service is not selected", ErrStepIncomplete)
		}
	case StepStylist:
		if c.sel.Stylist == nil {
			return fmt.Errorf("%w: stylist is not selected", ErrStepIncomplete)
		}
	case StepDateTime:
		if c.availability.IsPending() {
			return ErrOperationInFlight
		}
		if !c.slotSelectedLocked() {
			return fmt.Errorf("%w: date and time are not selected", ErrStepIncomplete)
		}
		if !c.availability.Succeeded() || !c.availability.Value {
			return fmt.Errorf("%w: slot is not confirmed available", ErrStepIncomplete)
		}
	case StepDetails:
		if c.customer.IsPending() {
			return ErrOperationInFlight
		}
		if !c.customer.Succeeded() || c.sel.CustomerID <= 0 {
			return fmt.Errorf("%w: contact details are not confirmed", ErrStepIncomplete)
		}
	case StepConfirm:
		return fmt.Errorf("%w: last step, complete the booking instead", ErrStepIncomplete)
	}

	return nil
}

func (c *Controller) slotSelectedLocked() bool {
	return !c.sel.Date.IsZero() && !c.sel.Time.IsZero()
}

// invalidateSlotLocked помечает результат проверки слота как неизвестный
// и делает устаревшими все проверки, которые сейчас выполняются
func (c *Controller) invalidateSlotLocked() {
	c.slotGen++
	c.availability = idleOp[bool]()
}

func (c *Controller) startCheckLocked() (*check_availability.Request, uint64) {
	c.availability = pendingOp[bool]()
	req := &check_availability.Request{Date: c.sel.Date, Time: c.sel.Time}
	if c.sel.Stylist != nil {
		choice := *c.sel.Stylist
		req.Stylist = &choice
	}
	return req, c.slotGen
}

// maybeStartCheckLocked запускает перепроверку при входе на шаг даты и времени,
// если слот выбран, а его доступность неизвестна
func (c *Controller) maybeStartCheckLocked() (*check_availability.Request, uint64, bool) {
	if c.step != StepDateTime || !c.slotSelectedLocked() || c.availability.State != OpIdle {
		return nil, 0, false
	}
	req, gen := c.startCheckLocked()
	return req, gen, true
}

func (c *Controller) recheck(ctx context.Context, req *check_availability.Request, gen uint64) {
	if err := c.runCheck(ctx, req, gen); err != nil && !errors.Is(err, ErrSuperseded) {
		c.logger.Warn("Wizard: availability re-check failed: %v", err)
	}
}

func (c *Controller) runCheck(ctx context.Context, req *check_availability.Request, gen uint64) error {
	resp, err := c.deps.Availability.Check(ctx, req)

	c.mu.Lock()
	defer c.mu.Unlock()

	if gen != c.slotGen {
		return ErrSuperseded
	}
	if err != nil {
		c.availability = failureOp[bool](err)
		return err
	}

	c.availability = successOp(resp != nil && resp.Available)
	return nil
}

func (c *Controller) resetLocked() {
	c.step = StepService
	c.sel = domain.Selection{}
	c.serviceGen++
	c.slotGen++
	c.detailsGen++
	c.service = idleOp[*domain.Service]()
	c.availability = idleOp[bool]()
	c.customer = idleOp[*domain.Customer]()
	c.submission = idleOp[*domain.Booking]()
}

func copySelection(sel domain.Selection) domain.Selection {
	out := sel
	if sel.TotalAmount != nil {
		amount := *sel.TotalAmount
		out.TotalAmount = &amount
	}
	if sel.Stylist != nil {
		choice := *sel.Stylist
		out.Stylist = &choice
	}
	return out
}
