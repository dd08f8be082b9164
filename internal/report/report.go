// Package report builds and renders vehicle service-history reports.
// The document content is a plain data structure so the field set,
// ordering and totals can be tested without going through the PDF
// renderer.
package report

import (
	"fmt"
	"time"

	"github.com/shopspring/decimal"

	"autostats/internal/model"
)

// Row is one service event line in the report table.
type Row struct {
	Date        time.Time
	ServiceType string
	Mileage     int
	Cost        decimal.Decimal
}

// Document is the full report content: title, chronological rows, exact
// total and generation time.
type Document struct {
	Title       string
	Rows        []Row
	TotalCost   decimal.Decimal
	GeneratedAt time.Time
}

// BuildServiceHistory assembles the report document for a vehicle. The
// records are expected in chronological (ascending) order; the total is
// the exact decimal sum of the record costs, 0 for no records.
func BuildServiceHistory(vehicle *model.Vehicle, records []model.ServiceRecord, now time.Time) Document {
	doc := Document{
		Title: fmt.Sprintf("Service history for %s %s (%s)",
			vehicle.Make, vehicle.Model, vehicle.RegistrationNumber),
		Rows:        make([]Row, 0, len(records)),
		TotalCost:   decimal.Zero,
		GeneratedAt: now,
	}

	for _, r := range records {
		doc.Rows = append(doc.Rows, Row{
			Date:        r.ServiceDate,
			ServiceType: r.ServiceType,
			Mileage:     r.Mileage,
			Cost:        r.Cost,
		})
		doc.TotalCost = doc.TotalCost.Add(r.Cost)
	}

	return doc
}

// Filename returns the suggested export filename for a vehicle,
// servisi_{registration}_{yyyyMMdd}.pdf.
func Filename(registrationNumber string, now time.Time) string {
	return fmt.Sprintf("servisi_%s_%s.pdf", registrationNumber, now.Format("20060102"))
}
