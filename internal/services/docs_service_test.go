package services

import (
	"bytes"
	"context"
	"testing"
	"time"

	"github.com/ShreyaP55/transit-ticketing-nexus-33-sub001/internal/domain/models"
)

func TestDocsServiceGeneratePassPDF(t *testing.T) {
	now := time.Now()
	fb := &fakeBackend{
		pass:   models.Pass{ID: "p/1", UserID: "u1", RouteID: "r1", Price: 750, PurchaseDate: now.Add(-time.Hour), ExpiryDate: now.Add(720 * time.Hour)},
		routes: []models.Route{{ID: "r1", Start: "Majestic", End: "Whitefield"}},
	}
	svc := DocsService{Backend: fb}

	pdf, filename, err := svc.GeneratePassPDF(context.Background(), "p/1")
	if err != nil {
		t.Fatalf("GeneratePassPDF returned error: %v", err)
	}
	if !bytes.HasPrefix(pdf, []byte("%PDF")) {
		t.Fatalf("output is not a PDF")
	}
	if filename != "PASS_p_1.pdf" {
		t.Fatalf("unexpected filename %q", filename)
	}
}

func TestDocsServiceLoader(t *testing.T) {
	svc := DocsService{Loader: func(_ context.Context, id string) (passDocData, error) {
		return passDocData{Pass: models.Pass{ID: id, ExpiryDate: time.Now().Add(-time.Hour)}}, nil
	}}

	pdf, filename, err := svc.GeneratePassPDF(context.Background(), "expired")
	if err != nil {
		t.Fatalf("GeneratePassPDF returned error: %v", err)
	}
	if len(pdf) == 0 || filename == "" {
		t.Fatalf("GeneratePassPDF returned empty data")
	}
}
