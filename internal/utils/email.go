package utils

import (
	"bytes"
	"fmt"
	"log"
	"os"

	"vendora_back_end/internal/models"

	"github.com/wneessen/go-mail"
)

func SendConfirmationEmail(to, subject, htmlBody string, pdfAttachment []byte) error {
	msg := mail.NewMsg()

	if err := msg.From("noreply@vendora.shop"); err != nil {
		return err
	}
	if err := msg.To(to); err != nil {
		return err
	}
	msg.Subject(subject)
	msg.SetBodyString(mail.TypeTextHTML, htmlBody)

	if pdfAttachment != nil {
		msg.AttachReader("facture_vendora.pdf", bytes.NewReader(pdfAttachment))
	}

	client, err := mail.NewClient(os.Getenv("SMTP_HOST"),
		mail.WithPort(587),
		mail.WithSMTPAuth(mail.SMTPAuthLogin),
		mail.WithUsername(os.Getenv("SMTP_USERNAME")),
		mail.WithPassword(os.Getenv("SMTP_PASSWORD")),
		mail.WithTLSPolicy(mail.TLSMandatory),
	)
	if err != nil {
		return err
	}

	log.Println("📤 Envoi de l'e-mail à", to)
	return client.DialAndSend(msg)
}

// GenerateOrderConfirmationHTML génère le HTML de confirmation de commande.
// qrBase64 : QR de suivi de commande, inséré en data-URI (peut être vide).
func GenerateOrderConfirmationHTML(orders []models.Order, userEmail, qrBase64 string) string {
	itemsHTML := ""
	var total float64
	for _, order := range orders {
		total += order.TotalPrice
		for _, item := range order.Items {
			variation := ""
			if item.Color != "" || item.Size != "" {
				variation = fmt.Sprintf(" (%s %s)", item.Color, item.Size)
			}
			itemsHTML += fmt.Sprintf(`
			<tr>
				<td>%s%s</td>
				<td>%d</td>
				<td>%.2f€</td>
				<td>%.2f€</td>
			</tr>`, item.Name, variation, item.Quantity, item.UnitPrice, item.UnitPrice*float64(item.Quantity))
		}
	}

	qrHTML := ""
	if qrBase64 != "" {
		qrHTML = fmt.Sprintf(`<p style="text-align:center;"><img src="%s" alt="Suivi de commande" width="140" height="140"/></p>`, qrBase64)
	}

	return fmt.Sprintf(`
<!DOCTYPE html>
<html lang="fr">
<head>
	<meta charset="UTF-8">
	<meta name="viewport" content="width=device-width, initial-scale=1.0">
	<title>Confirmation de commande</title>
</head>
<body style="font-family: Arial, sans-serif; background-color: #f9f9f9; padding: 20px;">
	<div style="max-width: 600px; margin: auto; background-color: white; padding: 20px; border-radius: 10px;">
		<h2 style="color: #333;">Confirmation de votre commande</h2>
		<p>Bonjour,</p>
		<p>Votre commande a été confirmée avec succès. Chaque boutique expédie ses articles séparément.</p>

		<h3>Détails de la commande</h3>
		<table style="width: 100%%; border-collapse: collapse; margin: 20px 0;">
			<thead>
				<tr style="background-color: #f0f0f0;">
					<th style="padding: 10px; text-align: left; border: 1px solid #ddd;">Article</th>
					<th style="padding: 10px; text-align: left; border: 1px solid #ddd;">Quantité</th>
					<th style="padding: 10px; text-align: left; border: 1px solid #ddd;">Prix unitaire</th>
					<th style="padding: 10px; text-align: left; border: 1px solid #ddd;">Total</th>
				</tr>
			</thead>
			<tbody>
				%s
			</tbody>
			<tfoot>
				<tr>
					<td colspan="3" style="padding: 10px; text-align: right; font-weight: bold;">Total:</td>
					<td style="padding: 10px; font-weight: bold;">%.2f€</td>
				</tr>
			</tfoot>
		</table>
		%s
		<p style="margin-top: 30px; color: #555;">
			Cordialement,<br>
			<strong>L'équipe Vendora</strong>
		</p>
	</div>
</body>
</html>`, itemsHTML, total, qrHTML)
}
