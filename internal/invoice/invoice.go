// Package invoice renders purchase invoices as PDF documents. Rendering is
// read-only and deterministic for the same purchase data and static assets.
package invoice

import (
	"bytes"
	"fmt"
	"time"

	"github.com/go-pdf/fpdf"
)

const terms = `1. Finality of Sales: All sales are final and non-refundable. Please make sure to review your selections carefully before completing the transaction.
2. Verification of Movie Details: Users are responsible for verifying movie details, such as title, release date, and format, prior to making a purchase.
3. No Piracy Policy: Unauthorized duplication, distribution, or sharing of purchased content is strictly prohibited. Users must adhere to copyright laws.
4. User Privacy Protection: We prioritize the privacy and protection of our users' personal information, handling all data in accordance with our privacy policy.
5. Customer Support: For any questions, issues, or support needs, users are encouraged to contact our customer support team for prompt assistance.
6. Content Availability: The availability of movies and content is subject to change without notice. We reserve the right to modify, suspend, or discontinue any content or service at our discretion.
7. Usage Rights: Purchase of content grants the user a non-transferable, limited right to access and view the content for personal use only.`

type Line struct {
	Title string
	Price float64
	Genre string
}

type Data struct {
	FullName      string
	PurchaseID    int
	TransactionID string
	PurchaseDate  time.Time
	PaymentMethod string
	TotalPrice    float64
	Lines         []Line
}

// Renderer draws the fixed invoice layout. Asset paths are optional; when set
// they must be readable or rendering fails.
type Renderer struct {
	LogoPath   string
	FooterPath string
}

func (r *Renderer) Render(d Data) ([]byte, error) {
	pdf := fpdf.New("P", "mm", "A4", "")
	// pin document metadata so the same purchase always renders the same bytes
	pdf.SetCreationDate(d.PurchaseDate)
	pdf.SetModificationDate(d.PurchaseDate)

	if r.FooterPath != "" {
		pdf.SetFooterFunc(func() {
			pdf.ImageOptions(r.FooterPath, 0, 277, 210, 0, false, fpdf.ImageOptions{ReadDpi: true}, 0, "")
		})
	}
	pdf.AddPage()

	if r.LogoPath != "" {
		pdf.ImageOptions(r.LogoPath, 10, 10, 50, 0, false, fpdf.ImageOptions{ReadDpi: true}, 0, "")
	}

	pdf.SetFont("Helvetica", "B", 20)
	pdf.CellFormat(0, 30, "Invoice", "", 1, "R", false, 0, "")
	pdf.Ln(4)

	pdf.SetFont("Helvetica", "", 12)
	meta := []string{
		fmt.Sprintf("Full Name: %s", d.FullName),
		fmt.Sprintf("Purchase ID: %d", d.PurchaseID),
		fmt.Sprintf("Transaction ID: %s", d.TransactionID),
		fmt.Sprintf("Purchase Date: %s", d.PurchaseDate.Format("2006-01-02")),
		fmt.Sprintf("Payment Method: %s", d.PaymentMethod),
		fmt.Sprintf("Total Price: Rs. %.2f", d.TotalPrice),
	}
	for _, line := range meta {
		pdf.CellFormat(0, 8, line, "", 1, "L", false, 0, "")
	}
	pdf.Ln(6)

	widths := []float64{90, 40, 60}
	pdf.SetFont("Helvetica", "B", 12)
	for i, h := range []string{"Title", "Price", "Genre"} {
		pdf.CellFormat(widths[i], 8, h, "1", 0, "L", false, 0, "")
	}
	pdf.Ln(-1)

	pdf.SetFont("Helvetica", "", 12)
	for _, line := range d.Lines {
		pdf.CellFormat(widths[0], 8, line.Title, "1", 0, "L", false, 0, "")
		pdf.CellFormat(widths[1], 8, fmt.Sprintf("Rs. %.2f", line.Price), "1", 0, "L", false, 0, "")
		pdf.CellFormat(widths[2], 8, line.Genre, "1", 0, "L", false, 0, "")
		pdf.Ln(-1)
	}
	pdf.Ln(6)

	pdf.SetFont("Helvetica", "B", 12)
	pdf.CellFormat(0, 8, "Terms and Conditions:", "", 1, "L", false, 0, "")
	pdf.SetFont("Helvetica", "", 10)
	pdf.MultiCell(0, 5, terms, "", "L", false)

	var buf bytes.Buffer
	if err := pdf.Output(&buf); err != nil {
		return nil, err
	}
	return buf.Bytes(), nil
}
