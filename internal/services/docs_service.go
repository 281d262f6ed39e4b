package services

import (
	"bytes"
	"context"
	"fmt"
	"strings"
	"time"

	"github.com/ShreyaP55/transit-ticketing-nexus-33-sub001/internal/domain/models"
	"github.com/ShreyaP55/transit-ticketing-nexus-33-sub001/internal/utils"

	"github.com/phpdave11/gofpdf"
)

type DocsBackend interface {
	GetPass(ctx context.Context, passID string) (models.Pass, error)
	ListRoutes(ctx context.Context) ([]models.Route, error)
}

// DocsService renders printable pass documents.
type DocsService struct {
	Backend   DocsBackend
	RequestID string
	Now       func() time.Time
	Loader    func(ctx context.Context, passID string) (passDocData, error)
}

type passDocData struct {
	Pass      models.Pass
	RouteFrom string
	RouteTo   string
}

func (s DocsService) now() time.Time {
	if s.Now != nil {
		return s.Now()
	}
	return time.Now()
}

// GeneratePassPDF returns the PDF bytes and a download filename.
func (s DocsService) GeneratePassPDF(ctx context.Context, passID string) ([]byte, string, error) {
	data, err := s.loadPassDocData(ctx, passID)
	if err != nil {
		return nil, "", err
	}
	utils.LogEvent(s.RequestID, "docs", "generate_pass", "pass_id="+passID)
	return buildPassPDF(data, s.now())
}

func (s DocsService) loadPassDocData(ctx context.Context, passID string) (passDocData, error) {
	if s.Loader != nil {
		return s.Loader(ctx, passID)
	}
	p, err := s.Backend.GetPass(ctx, passID)
	if err != nil {
		return passDocData{}, upstream("get_pass", "pass", err)
	}
	out := passDocData{Pass: p}

	// Route names are cosmetic; a failed lookup still renders the pass.
	routes, err := s.Backend.ListRoutes(ctx)
	if err != nil {
		utils.LogError(s.RequestID, "docs", "list_routes", err)
		return out, nil
	}
	for _, r := range routes {
		if r.ID == p.RouteID {
			out.RouteFrom, out.RouteTo = r.Start, r.End
			break
		}
	}
	return out, nil
}

func buildPassPDF(d passDocData, now time.Time) ([]byte, string, error) {
	pdf := gofpdf.New("P", "mm", "A5", "")
	pdf.SetTitle("Transit Pass", false)
	pdf.AddPage()
	pdf.SetFont("Helvetica", "B", 18)
	pdf.Cell(0, 10, "TRANSIT PASS")
	pdf.Ln(12)

	status := "VALID"
	if d.Pass.Expired(now) {
		status = "EXPIRED"
	}

	pdf.SetFont("Helvetica", "", 11)
	lines := []string{
		fmt.Sprintf("Pass ID     : %s", safe(d.Pass.ID, "-")),
		fmt.Sprintf("Holder      : %s", safe(d.Pass.UserID, "-")),
		fmt.Sprintf("Route       : %s -> %s", safe(d.RouteFrom, "-"), safe(d.RouteTo, "-")),
		fmt.Sprintf("Price       : %s", utils.FormatRupees(d.Pass.Price)),
		fmt.Sprintf("Purchased   : %s", utils.FormatDate(d.Pass.PurchaseDate)),
		fmt.Sprintf("Valid until : %s", utils.FormatDate(d.Pass.ExpiryDate)),
	}
	for _, s := range lines {
		pdf.Cell(0, 7, s)
		pdf.Ln(7)
	}

	pdf.Ln(4)
	pdf.SetFont("Helvetica", "B", 14)
	if status == "EXPIRED" {
		pdf.SetTextColor(200, 30, 30)
	} else {
		pdf.SetTextColor(20, 140, 60)
	}
	pdf.Cell(0, 10, "Status: "+status)
	pdf.SetTextColor(0, 0, 0)
	pdf.Ln(12)

	pdf.SetFont("Helvetica", "I", 9)
	pdf.MultiCell(0, 5, "Show this pass with your QR code when boarding. Passes are valid on the listed route only.", "", "", false)

	var buf bytes.Buffer
	if err := pdf.Output(&buf); err != nil {
		return nil, "", err
	}

	filename := fmt.Sprintf("PASS_%s.pdf", safeFilenamePart(d.Pass.ID))
	return buf.Bytes(), filename, nil
}

func safe(v, fallback string) string {
	v = strings.TrimSpace(v)
	if v == "" {
		return fallback
	}
	return v
}

func safeFilenamePart(s string) string {
	s = strings.TrimSpace(s)
	if s == "" {
		return "NA"
	}
	replacer := strings.NewReplacer(" ", "_", "/", "_", "\\", "_", ":", "_", "*", "_", "?", "_", "\"", "_", "<", "_", ">", "_", "|", "_")
	s = replacer.Replace(s)
	if len(s) > 40 {
		s = s[:40]
	}
	return s
}
