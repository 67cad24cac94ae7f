package services

import (
	"bytes"
	"context"
	"fmt"
	"html/template"
	"log"
	"time"

	"github.com/chromedp/cdproto/page"
	"github.com/chromedp/chromedp"
	"github.com/google/uuid"
	"github.com/notewala/gyan_notes/database"
	"github.com/notewala/gyan_notes/models"
)

const (
	ReputationNewbie         = "Newbie"
	ReputationContributor    = "Contributor"
	ReputationActive         = "Active"
	ReputationTopContributor = "Top Contributor"
	ReputationLegend         = "Legend"
)

// ReputationLevel maps a point balance to the public reputation tiers.
func ReputationLevel(points int) string {
	switch {
	case points < 50:
		return ReputationNewbie
	case points < 200:
		return ReputationContributor
	case points < 500:
		return ReputationActive
	case points < 1000:
		return ReputationTopContributor
	default:
		return ReputationLegend
	}
}

// CheckReputationCertificate renders a certificate PDF the first time a user
// reaches Top Contributor, stores it and records the award. Best-effort:
// failures are logged, never surfaced to the triggering request.
func CheckReputationCertificate(userID uuid.UUID) {
	var user models.User
	if err := database.DB.First(&user, "id = ?", userID).Error; err != nil {
		return
	}

	level := ReputationLevel(user.GyanPoints)
	if level != ReputationTopContributor && level != ReputationLegend {
		return
	}

	title := fmt.Sprintf("%s - Gyan Notes Community", ReputationTopContributor)
	var existing models.Certificate
	if err := database.DB.Where("user_id = ? AND title = ?", userID, title).First(&existing).Error; err == nil {
		return
	}

	html, err := renderCertificateHTML(user.FullName, ReputationTopContributor)
	if err != nil {
		log.Printf("🔥 Failed to render certificate HTML: %v", err)
		return
	}

	pdfBytes, err := renderPDF(html)
	if err != nil {
		log.Printf("🔥 Failed to render certificate PDF: %v", err)
		return
	}

	url, err := UploadRaw(bytes.NewReader(pdfBytes), "gyan_notes_certificates",
		fmt.Sprintf("reputation_%s_%s", userID, uuid.New()))
	if err != nil {
		log.Printf("🔥 Failed to store certificate: %v", err)
		return
	}

	certificate := models.Certificate{
		UserID:         userID,
		Title:          title,
		Level:          ReputationTopContributor,
		CertificateURL: url,
		AwardedAt:      time.Now(),
	}
	if err := database.DB.Create(&certificate).Error; err != nil {
		log.Printf("🔥 Failed to record certificate for user %s: %v", userID, err)
		return
	}
	log.Printf("✅ Awarded %s certificate to user %s.", ReputationTopContributor, userID)
}

func renderCertificateHTML(fullName, level string) (string, error) {
	tmpl, err := template.ParseFiles("templates/certificate.html")
	if err != nil {
		return "", err
	}

	data := struct {
		FullName  string
		Level     string
		AwardedOn string
	}{
		FullName:  fullName,
		Level:     level,
		AwardedOn: time.Now().Format("January 2, 2006"),
	}

	var rendered bytes.Buffer
	if err := tmpl.Execute(&rendered, data); err != nil {
		return "", err
	}
	return rendered.String(), nil
}

func renderPDF(htmlContent string) ([]byte, error) {
	ctx, cancel := chromedp.NewContext(context.Background())
	defer cancel()

	var pdfBuffer []byte
	err := chromedp.Run(ctx,
		chromedp.Navigate("about:blank"),
		chromedp.ActionFunc(func(ctx context.Context) error {
			frameTree, err := page.GetFrameTree().Do(ctx)
			if err != nil {
				return err
			}
			return page.SetDocumentContent(frameTree.Frame.ID, htmlContent).Do(ctx)
		}),
		chromedp.ActionFunc(func(ctx context.Context) error {
			pdf, _, err := page.PrintToPDF().WithPrintBackground(true).Do(ctx)
			if err != nil {
				return err
			}
			pdfBuffer = pdf
			return nil
		}),
	)
	if err != nil {
		return nil, err
	}
	return pdfBuffer, nil
}
