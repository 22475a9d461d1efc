// Package report 把一次行程查询（机票估价 + 酒店推荐）渲染成单页 PDF。
package report

import (
	"fmt"
	"io"
	"time"

	"github.com/jung-kurt/gofpdf"

	"github.com/rushteam/tripkit/core"
	"github.com/rushteam/tripkit/feature"
	"github.com/rushteam/tripkit/hotel"
)

// Trip 是报告的输入
type Trip struct {
	Flight      feature.FlightQuery
	FlightPrice float64
	Hotel       core.HotelQuery
	Hotels      []hotel.Result
	GeneratedAt time.Time
}

// Render 写出 PDF。
func Render(w io.Writer, trip Trip) error {
	pdf := gofpdf.New("P", "mm", "A4", "")
	pdf.SetMargins(20, 20, 20)
	pdf.SetTitle("Trip estimate", false)
	pdf.AddPage()
	tr := pdf.UnicodeTranslatorFromDescriptor("")

	// 页眉
	pdf.SetFillColor(13, 24, 37)
	pdf.Rect(0, 0, 210, 28, "F")
	pdf.SetTextColor(255, 255, 255)
	pdf.SetFont("Helvetica", "B", 18)
	pdf.SetXY(20, 8)
	pdf.CellFormat(100, 10, "Trip Estimate", "", 0, "L", false, 0, "")
	pdf.SetFont("Helvetica", "", 10)
	pdf.SetXY(20, 18)
	generated := trip.GeneratedAt
	if generated.IsZero() {
		generated = time.Now()
	}
	pdf.CellFormat(170, 6, "Generated "+generated.UTC().Format("02 Jan 2006, 15:04 UTC"), "", 1, "L", false, 0, "")
	pdf.SetY(35)
	pdf.SetTextColor(0, 0, 0)

	section := func(title string) {
		pdf.SetFillColor(13, 24, 37)
		pdf.SetTextColor(255, 255, 255)
		pdf.SetFont("Helvetica", "B", 11)
		pdf.CellFormat(170, 8, "  "+title, "", 1, "L", true, 0, "")
		pdf.SetTextColor(0, 0, 0)
		pdf.Ln(2)
	}
	row := func(label, value string) {
		pdf.SetFont("Helvetica", "", 10)
		pdf.SetTextColor(100, 100, 100)
		pdf.CellFormat(55, 7, tr(label), "", 0, "L", false, 0, "")
		pdf.SetTextColor(20, 20, 20)
		pdf.SetFont("Helvetica", "B", 10)
		pdf.CellFormat(115, 7, tr(value), "", 1, "L", false, 0, "")
	}

	f := trip.Flight
	section("Flight")
	row("Route", fmt.Sprintf("%s -> %s", f.Origin, f.Destination))
	row("Class", f.FlightType)
	row("Agency", f.Agency)
	row("Date", fmt.Sprintf("%04d-%02d-%02d", f.Year, f.Month, f.Day))
	row("Estimated price", fmt.Sprintf("%.2f", trip.FlightPrice))
	pdf.Ln(4)

	h := trip.Hotel
	section("Hotels")
	row("Place", h.Place)
	row("Stay", fmt.Sprintf("%d days, up to %.2f per day", h.Days, h.MaxPricePerDay))
	pdf.Ln(2)
	if len(trip.Hotels) == 0 {
		pdf.SetFont("Helvetica", "I", 10)
		pdf.CellFormat(170, 7, "No hotels match the requested stay.", "", 1, "L", false, 0, "")
	} else {
		pdf.SetFont("Helvetica", "B", 10)
		pdf.SetFillColor(235, 235, 235)
		pdf.CellFormat(10, 7, "#", "1", 0, "C", true, 0, "")
		pdf.CellFormat(110, 7, "Hotel", "1", 0, "L", true, 0, "")
		pdf.CellFormat(50, 7, "Price / day", "1", 1, "R", true, 0, "")
		pdf.SetFont("Helvetica", "", 10)
		for i, r := range trip.Hotels {
			pdf.CellFormat(10, 7, fmt.Sprintf("%d", i+1), "1", 0, "C", false, 0, "")
			pdf.CellFormat(110, 7, tr(r.Name), "1", 0, "L", false, 0, "")
			pdf.CellFormat(50, 7, fmt.Sprintf("%.2f", r.Price), "1", 1, "R", false, 0, "")
		}
	}

	if len(trip.Hotels) > 0 {
		pdf.Ln(6)
		cheapest := trip.Hotels[0]
		total := trip.FlightPrice + cheapest.Price*float64(h.Days)
		pdf.SetFillColor(212, 168, 67)
		pdf.SetFont("Helvetica", "B", 12)
		pdf.CellFormat(55, 9, "TOTAL ESTIMATE", "", 0, "L", true, 0, "")
		pdf.CellFormat(115, 9, tr(fmt.Sprintf("%.2f (flight + %d days at %s)", total, h.Days, cheapest.Name)), "", 1, "L", true, 0, "")
	}

	if err := pdf.Error(); err != nil {
		return fmt.Errorf("render pdf: %w", err)
	}
	if err := pdf.Output(w); err != nil {
		return fmt.Errorf("write pdf: %w", err)
	}
	return nil
}
