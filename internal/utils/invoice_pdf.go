package utils

import (
	"context"
	"encoding/base64"
	"fmt"
	"net/url"
	"os"
	"time"

	"github.com/chromedp/cdproto/page"
	"github.com/chromedp/chromedp"
	"github.com/skip2/go-qrcode"
)

// GenerateTrackingQR génère un QR de suivi de commande en base64, prêt à
// mettre dans <img src="...">.
func GenerateTrackingQR(paymentID string) (string, error) {
	trackingURL := fmt.Sprintf("%s/orders/track/%s", frontendBaseURL(), paymentID)

	png, err := qrcode.Encode(trackingURL, qrcode.Medium, 256)
	if err != nil {
		return "", err
	}
	return "data:image/png;base64," + base64.StdEncoding.EncodeToString(png), nil
}

// RenderInvoicePDF charge la page facture du front et l'imprime en PDF
// via Chrome headless.
func RenderInvoicePDF(paymentID, qrBase64 string) ([]byte, error) {
	q := url.Values{}
	q.Set("payment_id", paymentID)
	q.Set("qr", qrBase64)

	fullURL := fmt.Sprintf("%s/invoice?%s", frontendBaseURL(), q.Encode())

	ctx, cancel := chromedp.NewContext(context.Background())
	defer cancel()

	// timeout pour éviter de bloquer le webhook
	ctx, cancel = context.WithTimeout(ctx, 30*time.Second)
	defer cancel()

	var pdfBuf []byte

	err := chromedp.Run(ctx,
		chromedp.Navigate(fullURL),
		chromedp.WaitVisible("body", chromedp.ByQuery),
		chromedp.ActionFunc(func(ctx context.Context) error {
			buf, _, err := page.PrintToPDF().WithPrintBackground(true).Do(ctx)
			if err != nil {
				return err
			}
			pdfBuf = buf
			return nil
		}),
	)
	if err != nil {
		return nil, err
	}

	return pdfBuf, nil
}

func frontendBaseURL() string {
	u := os.Getenv("FRONTEND_URL")
	if u == "" {
		// fallback local dev
		return "http://localhost:3000"
	}
	return u
}
