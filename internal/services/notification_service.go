// internal/services/notification_service.go
package services

import (
	"bytes"
	"fmt"
	"html/template"
	"net/smtp"

	"github.com/sirupsen/logrus"
	"gorm.io/gorm"

	"github.com/gadaelectronics/storefront/internal/config"
	"github.com/gadaelectronics/storefront/internal/models"
)

type NotificationService struct {
	db     *gorm.DB
	config *config.Config
}

func NewNotificationService(db *gorm.DB, config *config.Config) *NotificationService {
	return &NotificationService{
		db:     db,
		config: config,
	}
}

var orderConfirmationTemplate = template.Must(template.New("order_confirmation").Parse(`
<h2>Thank you for your order!</h2>
<p>Hi {{.Name}},</p>
<p>Your payment has been verified and your order is confirmed.</p>
<p><strong>Order ID:</strong> {{.OrderID}}<br>
<strong>Payment ID:</strong> {{.PaymentID}}<br>
<strong>Total:</strong> ${{printf "%.2f" .Total}}</p>
<table>
{{range .Items}}<tr><td>{{.ProductName}}</td><td>x{{.Quantity}}</td><td>${{printf "%.2f" .Price}}</td></tr>
{{end}}</table>
<p>&mdash; {{.FromName}}</p>
`))

type orderConfirmationData struct {
	Name      string
	OrderID   string
	PaymentID string
	Total     float64
	Items     []orderConfirmationItem
	FromName  string
}

type orderConfirmationItem struct {
	ProductName string
	Quantity    int
	Price       float64
}

// SendOrderConfirmation emails the buyer after payment verifies. Called
// asynchronously; failures are logged, never surfaced to the checkout.
func (s *NotificationService) SendOrderConfirmation(order *models.Order) {
	var user models.User
	if err := s.db.First(&user, "id = ?", order.UserID).Error; err != nil {
		logrus.WithError(err).WithField("order_id", order.ID).
			Error("Failed to load user for order confirmation email")
		return
	}

	data := orderConfirmationData{
		Name:      user.Name,
		OrderID:   order.ID.String(),
		PaymentID: order.PaymentID,
		Total:     order.Total,
		FromName:  s.config.Email.FromName,
	}
	for _, item := range order.Items {
		data.Items = append(data.Items, orderConfirmationItem{
			ProductName: item.Product.Name,
			Quantity:    item.Quantity,
			Price:       item.PriceAtPurchase,
		})
	}

	var body bytes.Buffer
	if err := orderConfirmationTemplate.Execute(&body, data); err != nil {
		logrus.WithError(err).Error("Failed to render order confirmation email")
		return
	}

	subject := fmt.Sprintf("Order confirmed (#%s)", shortOrderID(order.ID.String()))
	if err := s.sendEmail(user.Email, subject, body.String()); err != nil {
		logrus.WithError(err).WithField("order_id", order.ID).
			Error("Failed to send order confirmation email")
	}
}

func (s *NotificationService) sendEmail(to, subject, htmlBody string) error {
	cfg := s.config.Email
	if cfg.SMTPUsername == "" {
		logrus.WithField("to", to).Debug("SMTP not configured, skipping email")
		return nil
	}

	msg := fmt.Sprintf(
		"From: %s <%s>\r\nTo: %s\r\nSubject: %s\r\nMIME-Version: 1.0\r\nContent-Type: text/html; charset=UTF-8\r\n\r\n%s",
		cfg.FromName, cfg.FromEmail, to, subject, htmlBody,
	)

	auth := smtp.PlainAuth("", cfg.SMTPUsername, cfg.SMTPPassword, cfg.SMTPHost)
	addr := fmt.Sprintf("%s:%s", cfg.SMTPHost, cfg.SMTPPort)
	return smtp.SendMail(addr, auth, cfg.FromEmail, []string{to}, []byte(msg))
}

func shortOrderID(id string) string {
	if len(id) > 8 {
		return id[:8]
	}
	return id
}
