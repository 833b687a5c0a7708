package main

import (
	"fmt"
	"io"
	"strconv"
	"strings"

	"github.com/m04kA/SMC-MobileDiagnostics/internal/calendar"
	"github.com/m04kA/SMC-MobileDiagnostics/internal/domain"
)

// renderGrid печатает сетку: * есть время, x все занято, . нет данных
func renderGrid(w io.Writer, grid calendar.MonthGrid) {
	fmt.Fprintf(w, "%s\n", grid.Title)
	fmt.Fprintf(w, " Mo  Tu  We  Th  Fr  Sa  Su\n")
	for _, week := range grid.Weeks {
		var line strings.Builder
		for _, cell := range week {
			if cell.Empty {
				line.WriteString("    ")
				continue
			}
			fmt.Fprintf(&line, "%3d%s", cell.Day, cellMark(cell.State))
		}
		fmt.Fprintf(w, "%s\n", strings.TrimRight(line.String(), " "))
	}
	fmt.Fprintf(w, "* available  x fully booked  . no slots\n")
}

func cellMark(state calendar.CellState) string {
	switch state {
	case calendar.CellAvailable:
		return "*"
	case calendar.CellFullyBooked:
		return "x"
	default:
		return "."
	}
}

// pickDateKey находит дату по ответу: YYYY-MM-DD или число месяца, если оно однозначно
func pickDateKey(grid calendar.MonthGrid, answer string) (string, bool) {
	answer = strings.TrimSpace(answer)

	var matches []string
	day, dayErr := strconv.Atoi(answer)
	for _, week := range grid.Weeks {
		for _, cell := range week {
			if cell.Empty || cell.State == calendar.CellNoData {
				continue
			}
			if cell.Key == answer {
				return cell.Key, true
			}
			if dayErr == nil && cell.Day == day {
				matches = append(matches, cell.Key)
			}
		}
	}

	if len(matches) == 1 {
		return matches[0], true
	}
	return "", false
}

// describeZone строка с результатом проверки почтового индекса
func describeZone(z *domain.ZoneResult) string {
	if z.ManualReviewRequired {
		return fmt.Sprintf("%s is outside our usual area (%d min drive). We'll review your request by hand.",
			z.Postcode, z.DriveTimeMinutes)
	}

	line := fmt.Sprintf("%s is in zone %s, about %d min drive", z.Postcode, z.Zone, z.DriveTimeMinutes)
	if z.PriceBand != nil {
		if z.PriceBand.MinGBP == z.PriceBand.MaxGBP {
			line += ", visits " + domain.FormatGBP(z.PriceBand.MinGBP)
		} else {
			line += fmt.Sprintf(", visits from %s to %s",
				domain.FormatGBP(z.PriceBand.MinGBP), domain.FormatGBP(z.PriceBand.MaxGBP))
		}
	}
	return line
}
