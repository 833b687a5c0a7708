package main

import (
	"bufio"
	"context"
	"errors"
	"flag"
	"fmt"
	"io"
	"os"
	"os/signal"
	"strconv"
	"strings"
	"syscall"
	"time"

	"github.com/m04kA/SMC-MobileDiagnostics/internal/calendar"
	"github.com/m04kA/SMC-MobileDiagnostics/internal/domain"
	"github.com/m04kA/SMC-MobileDiagnostics/internal/integrations/bookingapi"
	"github.com/m04kA/SMC-MobileDiagnostics/internal/wizard"
	"github.com/m04kA/SMC-MobileDiagnostics/pkg/logger"
)

func main() {
	apiURL := flag.String("api", "http://localhost:8080", "booking API base URL")
	timeout := flag.Duration("timeout", 10*time.Second, "HTTP request timeout")
	tz := flag.String("tz", "Europe/London", "timezone for dates and times")
	logFile := flag.String("log", "wizard.log", "log file (empty = stdout)")
	flag.Parse()

	log, err := logger.New(*logFile, "info")
	if err != nil {
		fmt.Printf("Failed to initialize logger: %v\n", err)
		os.Exit(1)
	}
	defer log.Close()

	loc, err := time.LoadLocation(*tz)
	if err != nil {
		fmt.Printf("Unknown timezone %q: %v\n", *tz, err)
		os.Exit(1)
	}

	ctx, stop := signal.NotifyContext(context.Background(), syscall.SIGINT, syscall.SIGTERM)
	defer stop()

	client := bookingapi.NewClient(*apiURL, *timeout, log)
	t := &terminal{
		in:    bufio.NewScanner(os.Stdin),
		out:   os.Stdout,
		loc:   loc,
		zones: client,
	}
	t.ctrl = wizard.NewController(client, t, analytics{log: log}, loc, log)

	if err := t.run(ctx); err != nil && !errors.Is(err, io.EOF) && !errors.Is(err, context.Canceled) {
		fmt.Fprintf(os.Stderr, "\n%v\n", err)
		os.Exit(1)
	}
}

// analytics пишет события мастера в лог
type analytics struct {
	log *logger.Logger
}

func (a analytics) Track(event string, props map[string]string) {
	a.log.Info("analytics: %s %v", event, props)
}

// zoneLookup проверка почтового индекса до выбора услуг
type zoneLookup interface {
	CalculateZone(ctx context.Context, postcode string) (*domain.ZoneResult, error)
}

// terminal текстовый интерфейс мастера бронирования
type terminal struct {
	in    *bufio.Scanner
	out   io.Writer
	loc   *time.Location
	zones zoneLookup
	ctrl  *wizard.Controller
}

// Redirect в терминале переход на оплату - это ссылка для браузера
func (t *terminal) Redirect(url string) error {
	t.printf("\nPlease open this link to pay your deposit:\n  %s\n", url)
	return nil
}

func (t *terminal) run(ctx context.Context) error {
	t.printf("Mobile vehicle diagnostics - book a visit\n\n")

	if err := t.ctrl.LoadServices(ctx); err != nil {
		t.printf("%s\n", t.ctrl.View().Message)
		return err
	}

	for {
		if err := ctx.Err(); err != nil {
			return err
		}

		var err error
		switch t.ctrl.View().Step {
		case wizard.StepServiceAndLocation:
			err = t.serviceAndLocation(ctx)
		case wizard.StepChooseSlot:
			err = t.chooseSlot()
		case wizard.StepDetails:
			var done bool
			done, err = t.details(ctx)
			if done {
				return nil
			}
		}
		if err != nil {
			return err
		}
	}
}

func (t *terminal) serviceAndLocation(ctx context.Context) error {
	v := t.ctrl.View()
	t.printf("Step 1: %s\n", v.Step)

	postcode, err := t.ask("Postcode")
	if err != nil {
		return err
	}

	zone, err := t.zones.CalculateZone(ctx, postcode)
	if err != nil {
		if detail, ok := bookingapi.Detail(err); ok {
			t.printf("%s\n\n", detail)
		} else {
			t.printf("%s\n\n", wizard.MsgLookupFailed)
		}
		return nil
	}
	t.printf("%s\n", describeZone(zone))

	for i, s := range v.Services {
		t.printf("  %d) %s (%d min)\n", i+1, s.Label, s.DurationMinutes)
	}

	ids, err := t.askServices(v.Services)
	if err != nil {
		return err
	}

	t.ctrl.SelectServices(ids)
	t.ctrl.SetPostcode(postcode)

	t.printf("Checking availability...\n")
	if err := t.ctrl.FetchAvailability(ctx); err != nil {
		if detail, ok := bookingapi.Detail(err); ok {
			t.printf("%s\n\n", detail)
		} else {
			t.printf("%s\n\n", t.ctrl.View().Message)
		}
		return nil
	}

	v = t.ctrl.View()
	if a := v.Availability; a != nil {
		t.printf("Zone %s, price %s, total visit %d min\n", a.Zone, a.Price, a.TotalDurationMinutes)
		if a.Deposit != nil {
			t.printf("A deposit of %s is taken to confirm the booking\n", domain.FormatGBP(*a.Deposit))
		}
	}
	if v.NoSlots {
		t.printf("%s\n", v.Message)
		t.ctrl.ChangeService()
	}
	t.printf("\n")
	return nil
}

func (t *terminal) askServices(services []domain.Service) ([]string, error) {
	for {
		answer, err := t.ask("Choose services (e.g. 1 or 1,3)")
		if err != nil {
			return nil, err
		}

		var ids []string
		valid := true
		for _, part := range strings.Split(answer, ",") {
			n, err := strconv.Atoi(strings.TrimSpace(part))
			if err != nil || n < 1 || n > len(services) {
				valid = false
				break
			}
			ids = append(ids, services[n-1].ID)
		}
		if valid && len(ids) > 0 && len(ids) <= domain.MaxServicesPerBooking {
			return ids, nil
		}
		t.printf("Please enter between 1 and %d numbers from the list\n", domain.MaxServicesPerBooking)
	}
}

func (t *terminal) chooseSlot() error {
	v := t.ctrl.View()
	day, ok := v.CurrentDay()
	if !ok {
		t.ctrl.ChangeService()
		return nil
	}

	t.printf("Step 2: %s - %s (%d/%d)\n", v.Step, day.Label, v.DateIndex+1, len(v.Days))
	var offered []time.Time
	for _, s := range day.Slots {
		if !s.Available {
			t.printf("      %s  taken\n", s.Start.In(t.loc).Format("15:04"))
			continue
		}
		offered = append(offered, s.Start)
		t.printf("  %2d) %s\n", len(offered), s.Start.In(t.loc).Format("15:04"))
	}

	answer, err := t.ask("Slot number, n = next day, p = previous day, c = calendar, b = back")
	if err != nil {
		return err
	}

	switch strings.ToLower(answer) {
	case "c":
		return t.pickFromCalendar(v.Grid)
	case "n":
		if !t.ctrl.NextDate() {
			t.printf("No later dates\n")
		}
		return nil
	case "p":
		if !t.ctrl.PrevDate() {
			t.printf("No earlier dates\n")
		}
		return nil
	case "b":
		t.ctrl.ChangeService()
		return nil
	}

	n, err := strconv.Atoi(answer)
	if err != nil || n < 1 || n > len(offered) {
		t.printf("Please choose a slot from the list\n")
		return nil
	}
	if err := t.ctrl.SelectSlot(offered[n-1]); err != nil {
		t.printf("%s\n", t.ctrl.View().Message)
	}
	t.printf("\n")
	return nil
}

func (t *terminal) pickFromCalendar(grid calendar.MonthGrid) error {
	t.printf("\n")
	renderGrid(t.out, grid)

	answer, err := t.ask("Date (day number or YYYY-MM-DD)")
	if err != nil {
		return err
	}

	key, ok := pickDateKey(grid, answer)
	if !ok || !t.ctrl.SelectDateKey(key) {
		t.printf("Please choose a date marked in the calendar\n")
	}
	t.printf("\n")
	return nil
}

// details собирает данные клиента и отправляет бронь; true - мастер завершен
func (t *terminal) details(ctx context.Context) (bool, error) {
	s := t.ctrl.Summary()
	t.printf("Step 3: %s\n", wizard.StepDetails)
	t.printf("  Services: %s\n  When: %s\n  Price: %s\n", strings.Join(s.Services, ", "), s.When, s.Price)
	if s.Deposit != "" {
		t.printf("  Deposit: %s\n", s.Deposit)
	}

	fields := []struct {
		label string
		set   func(d *domain.BookingDetails, v string)
	}{
		{domain.FieldName, func(d *domain.BookingDetails, v string) { d.Name = v }},
		{domain.FieldEmail, func(d *domain.BookingDetails, v string) { d.Email = v }},
		{domain.FieldPhone, func(d *domain.BookingDetails, v string) { d.Phone = v }},
		{domain.FieldAddressLine1, func(d *domain.BookingDetails, v string) { d.AddressLine1 = v }},
		{domain.FieldTown, func(d *domain.BookingDetails, v string) { d.Town = v }},
		{domain.FieldVehicleRegistration, func(d *domain.BookingDetails, v string) { d.VehicleRegistration = v }},
		{domain.FieldVehicleMake, func(d *domain.BookingDetails, v string) { d.VehicleMake = v }},
		{domain.FieldVehicleModel, func(d *domain.BookingDetails, v string) { d.VehicleModel = v }},
		{domain.FieldMileage, func(d *domain.BookingDetails, v string) { d.Mileage = v }},
		{domain.FieldSymptoms, func(d *domain.BookingDetails, v string) { d.Symptoms = v }},
		{"Notes (optional)", func(d *domain.BookingDetails, v string) { d.Notes = v }},
	}

	for _, f := range fields {
		value, err := t.ask(f.label)
		if err != nil {
			return false, err
		}
		set := f.set
		t.ctrl.UpdateDetails(func(d *domain.BookingDetails) { set(d, value) })
	}

	safe, err := t.ask("Will the vehicle be in a safe, legal location? (y/n)")
	if err != nil {
		return false, err
	}
	t.ctrl.UpdateDetails(func(d *domain.BookingDetails) {
		d.SafeLocationConfirmed = strings.EqualFold(safe, "y")
	})

	result, err := t.ctrl.Submit(ctx)
	if err != nil {
		t.printf("\n%s\n\n", t.submitError(err))
		if errors.Is(err, wizard.ErrSlotNotOffered) || errors.Is(err, wizard.ErrSlotRequired) {
			t.ctrl.ChangeSlot()
		}
		return false, nil
	}

	t.printf("\n%s\nReference: %s\n", result.Message, result.Reference)
	return true, nil
}

func (t *terminal) submitError(err error) string {
	if detail, ok := bookingapi.Detail(err); ok {
		return detail
	}
	if msg := t.ctrl.View().Message; msg != "" {
		return msg
	}
	return wizard.MsgBookingFailed
}

func (t *terminal) ask(prompt string) (string, error) {
	t.printf("%s: ", prompt)
	if !t.in.Scan() {
		if err := t.in.Err(); err != nil {
			return "", err
		}
		return "", io.EOF
	}
	return strings.TrimSpace(t.in.Text()), nil
}

func (t *terminal) printf(format string, args ...interface{}) {
	fmt.Fprintf(t.out, format, args...)
}
