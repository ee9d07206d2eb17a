package services

import (
	"bytes"
	"database/sql"
	"fmt"
	"strings"
	"time"

	intconfig "backend/internal/config"
	"backend/internal/pricing"
	"backend/internal/repositories"
	"backend/internal/reservation"
	"backend/internal/utils"

	"github.com/phpdave11/gofpdf"
)

// VoucherService renders printable PDFs from a reservation and its
// money snapshot.
type VoucherService struct {
	ReservationRepo repositories.ReservationRepository
	PackageRepo     repositories.PackageRepository
	DB              *sql.DB
	RequestID       string
	Loader          func(int64) (voucherData, error)
}

type voucherData struct {
	ReservationID int64
	PackageTitle  string
	Origin        string
	Destination   string
	TripType      pricing.TripType
	Method        pricing.PaymentMethod
	Status        reservation.Status
	Split         pricing.MoneySplit
	CreatedAt     time.Time
}

func (s VoucherService) db() *sql.DB {
	if s.DB != nil {
		return s.DB
	}
	return intconfig.DB
}

func (s VoucherService) GenerateVoucher(reservationID int64) ([]byte, string, error) {
	data, err := s.loadVoucherData(reservationID)
	if err != nil {
		return nil, "", err
	}
	utils.LogEvent(s.RequestID, "voucher", "generate_voucher", fmt.Sprintf("reservation_id=%d", reservationID))
	return buildVoucherPDF(data)
}

func (s VoucherService) GenerateDriverReceipt(reservationID int64) ([]byte, string, error) {
	data, err := s.loadVoucherData(reservationID)
	if err != nil {
		return nil, "", err
	}
	utils.LogEvent(s.RequestID, "voucher", "generate_receipt", fmt.Sprintf("reservation_id=%d", reservationID))
	return buildDriverReceiptPDF(data)
}

func (s VoucherService) loadVoucherData(reservationID int64) (voucherData, error) {
	if s.Loader != nil {
		return s.Loader(reservationID)
	}

	resRepo := s.ReservationRepo
	if resRepo.DB == nil {
		resRepo = repositories.ReservationRepository{DB: s.db()}
	}
	res, err := resRepo.GetByID(reservationID)
	if err != nil {
		return voucherData{}, err
	}

	out := voucherData{
		ReservationID: res.ID,
		TripType:      res.TripType,
		Method:        res.Method,
		Status:        res.Status,
		Split:         res.Split,
		CreatedAt:     res.CreatedAt,
	}

	pkgRepo := s.PackageRepo
	if pkgRepo.DB == nil {
		pkgRepo = repositories.PackageRepository{DB: s.db()}
	}
	if pkg, err := pkgRepo.GetByID(res.PackageID); err == nil {
		out.PackageTitle = pkg.Title
		out.Origin = pkg.Origin
		out.Destination = pkg.Destination
	}
	return out, nil
}

func buildVoucherPDF(d voucherData) ([]byte, string, error) {
	pdf := gofpdf.New("P", "mm", "A4", "")
	pdf.SetTitle("Voucher", false)
	pdf.AddPage()
	pdf.SetFont("Helvetica", "B", 18)
	pdf.Cell(0, 10, "VOUCHER DE RESERVA")
	pdf.Ln(12)

	pdf.SetFont("Helvetica", "", 12)
	lines := []string{
		fmt.Sprintf("Reserva        : #%d", d.ReservationID),
		fmt.Sprintf("Pacote         : %s", safe(d.PackageTitle, "-")),
		fmt.Sprintf("Trajeto        : %s -> %s", safe(d.Origin, "-"), safe(d.Destination, "-")),
		fmt.Sprintf("Tipo de viagem : %s", tripTypeLabel(d.TripType)),
		fmt.Sprintf("Pagamento      : %s", strings.ToUpper(string(d.Method))),
		fmt.Sprintf("Status         : %s", string(d.Status)),
		fmt.Sprintf("Data           : %s", utils.FormatDateTime(d.CreatedAt)),
		fmt.Sprintf("Valor total    : %s", pricing.FormatReais(d.Split.TotalPrice)),
		fmt.Sprintf("Sinal          : %s", pricing.FormatReais(d.Split.DepositWithMethodDiscount)),
	}
	for _, l := range lines {
		pdf.Cell(0, 7, l)
		pdf.Ln(7)
	}

	pdf.Ln(6)
	pdf.SetFont("Helvetica", "I", 10)
	pdf.MultiCell(0, 6, "Apresente este voucher ao motorista no embarque.", "", "", false)

	var buf bytes.Buffer
	if err := pdf.Output(&buf); err != nil {
		return nil, "", err
	}
	filename := fmt.Sprintf("VOUCHER_%d.pdf", d.ReservationID)
	return buf.Bytes(), filename, nil
}

func buildDriverReceiptPDF(d voucherData) ([]byte, string, error) {
	pdf := gofpdf.New("P", "mm", "A4", "")
	pdf.SetTitle("Recibo", false)
	pdf.AddPage()

	pdf.SetFont("Helvetica", "B", 18)
	pdf.Cell(0, 10, "RECIBO DO MOTORISTA")
	pdf.Ln(12)

	pdf.SetFont("Helvetica", "", 12)
	pdf.Cell(0, 7, fmt.Sprintf("Reserva     : #%d", d.ReservationID))
	pdf.Ln(7)
	pdf.Cell(0, 7, fmt.Sprintf("Trajeto     : %s -> %s", safe(d.Origin, "-"), safe(d.Destination, "-")))
	pdf.Ln(7)
	pdf.Cell(0, 7, "Emitido em  : "+utils.FormatDateTime(time.Now()))
	pdf.Ln(10)

	pdf.SetFont("Helvetica", "B", 12)
	pdf.Cell(0, 7, "Repasse por trecho:")
	pdf.Ln(8)

	pdf.SetFont("Helvetica", "", 11)
	pdf.Cell(0, 6, "Ida   : "+pricing.FormatReais(d.Split.FirstLegPayout))
	pdf.Ln(6)
	if d.TripType == pricing.TripRoundTrip {
		pdf.Cell(0, 6, "Volta : "+pricing.FormatReais(d.Split.SecondLegPayout))
		pdf.Ln(6)
	}
	pdf.Ln(4)

	pdf.SetFont("Helvetica", "B", 12)
	total := d.Split.FirstLegPayout + d.Split.SecondLegPayout
	pdf.Cell(0, 8, "Total: "+pricing.FormatReais(total))
	pdf.Ln(12)

	pdf.SetFont("Helvetica", "I", 10)
	pdf.MultiCell(0, 6, "Repasse liberado somente após aprovação da agência.", "", "", false)

	var buf bytes.Buffer
	if err := pdf.Output(&buf); err != nil {
		return nil, "", err
	}
	filename := fmt.Sprintf("RECIBO_%d.pdf", d.ReservationID)
	return buf.Bytes(), filename, nil
}

func tripTypeLabel(t pricing.TripType) string {
	switch t {
	case pricing.TripOneWay:
		return "Somente ida"
	case pricing.TripReturnOnly:
		return "Somente volta"
	case pricing.TripRoundTrip:
		return "Ida e volta"
	}
	return string(t)
}

func safe(s, def string) string {
	if strings.TrimSpace(s) == "" {
		return def
	}
	return s
}
