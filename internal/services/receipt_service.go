package services

import (
	"bytes"
	"context"
	"database/sql"
	"errors"
	"fmt"
	"strings"
	"time"

	intconfig "shuttle/internal/config"
	"shuttle/internal/domain"
	"shuttle/internal/repositories"
	"shuttle/internal/utils"

	"github.com/phpdave11/gofpdf"
)

// ReceiptService renders a PDF receipt for a completed booking.
type ReceiptService struct {
	DB        *sql.DB
	RequestID string
	Loader    func(ctx context.Context, occupancyID int64) (receiptData, error)
}

type receiptData struct {
	OccupancyID int64
	BusID       int64
	BusNumber   string
	UserName    string
	BookedAt    time.Time
	RouteLabel  string
}

func (s ReceiptService) db() repositories.DBTX {
	if s.DB != nil {
		return s.DB
	}
	return dbtx(intconfig.DB)
}

func (s ReceiptService) Generate(ctx context.Context, occupancyID int64) ([]byte, string, error) {
	if occupancyID <= 0 {
		return nil, "", domain.ValidationError{Field: "id", Msg: "id booking tidak valid"}
	}
	data, err := s.load(ctx, occupancyID)
	if err != nil {
		return nil, "", err
	}
	utils.LogEvent(s.RequestID, "docs", "generate_receipt", fmt.Sprintf("occupancy_id=%d", occupancyID))
	pdf, name, err := buildReceiptPDF(data)
	if err != nil {
		return nil, "", domain.InternalError{Msg: "gagal membuat PDF", Err: err}
	}
	return pdf, name, nil
}

func (s ReceiptService) load(ctx context.Context, occupancyID int64) (receiptData, error) {
	if s.Loader != nil {
		return s.Loader(ctx, occupancyID)
	}
	db := s.db()
	occ, err := repositories.OccupancyRepository{DB: db}.GetByID(ctx, occupancyID)
	if errors.Is(err, sql.ErrNoRows) {
		return receiptData{}, domain.NotFoundError{Resource: "booking"}
	}
	if err != nil {
		return receiptData{}, storeErr("load occupancy", err)
	}
	out := receiptData{
		OccupancyID: occ.ID,
		BusID:       occ.BusID,
		UserName:    occ.UserName,
		BookedAt:    occ.CreatedAt,
	}

	// The bus may have been edited or removed since; the receipt still renders.
	if bus, err := (repositories.BusRepository{DB: db}).GetByID(ctx, occ.BusID); err == nil {
		out.BusNumber = bus.Number
	}
	if stops, err := (repositories.RouteRepository{DB: db}).ListByBusID(ctx, occ.BusID); err == nil {
		out.RouteLabel = domain.RouteLabel(domain.RouteFor(stops, occ.BusID))
	}
	return out, nil
}

func buildReceiptPDF(d receiptData) ([]byte, string, error) {
	pdf := gofpdf.New("P", "mm", "A5", "")
	pdf.SetTitle("Booking Receipt", false)
	pdf.AddPage()
	pdf.SetFont("Helvetica", "B", 16)
	pdf.Cell(0, 10, "CAMPUS SHUTTLE - BOOKING")
	pdf.Ln(12)

	booked := "-"
	if !d.BookedAt.IsZero() {
		booked = d.BookedAt.Format("2006-01-02 15:04")
	}

	pdf.SetFont("Helvetica", "", 11)
	lines := []string{
		fmt.Sprintf("Kode Booking : BK-%06d", d.OccupancyID),
		fmt.Sprintf("Nama         : %s", safe(d.UserName, "-")),
		fmt.Sprintf("Bus          : %s", safe(d.BusNumber, fmt.Sprintf("#%d", d.BusID))),
		fmt.Sprintf("Waktu Pesan  : %s", booked),
	}
	for _, s := range lines {
		pdf.Cell(0, 7, s)
		pdf.Ln(7)
	}
	if strings.TrimSpace(d.RouteLabel) != "" {
		// gofpdf core fonts are cp1252; the arrow glyph is not available.
		pdf.MultiCell(0, 6, "Rute         : "+strings.ReplaceAll(d.RouteLabel, "→", "->"), "", "", false)
	}

	pdf.Ln(6)
	pdf.SetFont("Helvetica", "I", 9)
	pdf.MultiCell(0, 5, "Bukti ini berlaku untuk 1 kursi. Tunjukkan kepada pengemudi saat naik.", "", "", false)

	var buf bytes.Buffer
	if err := pdf.Output(&buf); err != nil {
		return nil, "", err
	}
	filename := fmt.Sprintf("BOOKING_%d_%s.pdf", d.OccupancyID, safeFilenamePart(d.UserName))
	return buf.Bytes(), filename, nil
}

func safe(v, fallback string) string {
	v = strings.TrimSpace(v)
	if v == "" {
		return fallback
	}
	return v
}

const maxFilenameRunes = 40

func safeFilenamePart(s string) string {
	s = strings.TrimSpace(s)
	if s == "" {
		return "NA"
	}
	replacer := strings.NewReplacer(" ", "_", "/", "_", "\\", "_", ":", "_", "*", "_", "?", "_", "\"", "_", "<", "_", ">", "_", "|", "_")
	s = replacer.Replace(s)
	if r := []rune(s); len(r) > maxFilenameRunes {
		s = string(r[:maxFilenameRunes])
	}
	return s
}
