// internal/services/notification_service.go
package services

import (
	"bytes"
	"context"
	"errors"
	"fmt"
	"html/template"
	"time"

	"github.com/sirupsen/logrus"
	"gorm.io/gorm"

	"github.com/phonemarket/backend/internal/config"
	"github.com/phonemarket/backend/internal/models"
	"github.com/phonemarket/backend/internal/utils"
)

const NotificationTypeOrder = "order_created"

var ErrNotificationNotFound = errors.New("notification not found")

// NotificationService keeps an outbox of messages for every configured admin.
type NotificationService struct {
	db     *gorm.DB
	config *config.Config
}

type messageTemplate struct {
	Title string
	Body  *template.Template
}

type orderLine struct {
	Name     string
	Quantity int
	Price    int64
	Subtotal int64
}

func NewNotificationService(db *gorm.DB, config *config.Config) *NotificationService {
	return &NotificationService{
		db:     db,
		config: config,
	}
}

// OrderCreated queues an order summary for each admin.
func (s *NotificationService) OrderCreated(ctx context.Context, order *models.Order) error {
	if len(s.config.Admin.IDs) == 0 {
		return nil
	}

	tmpl := s.getTemplate(NotificationTypeOrder)

	lines := make([]orderLine, 0, len(order.Items))
	for _, item := range order.Items {
		lines = append(lines, orderLine{
			Name:     item.ProductName,
			Quantity: item.Quantity,
			Price:    item.Price,
			Subtotal: int64(item.Quantity) * item.Price,
		})
	}
	data := map[string]interface{}{
		"Order": order,
		"Lines": lines,
	}

	body, err := s.renderTemplate(tmpl.Body, data)
	if err != nil {
		return fmt.Errorf("failed to render notification: %w", err)
	}

	notifications := make([]models.AdminNotification, 0, len(s.config.Admin.IDs))
	for _, adminID := range s.config.Admin.IDs {
		notifications = append(notifications, models.AdminNotification{
			AdminID: adminID,
			Type:    NotificationTypeOrder,
			Title:   fmt.Sprintf(tmpl.Title, order.ID),
			Message: body,
			OrderID: &order.ID,
			Status:  models.NotificationUnread,
		})
	}

	if err := s.db.WithContext(ctx).Create(&notifications).Error; err != nil {
		return fmt.Errorf("failed to create notifications: %w", err)
	}

	logrus.WithFields(logrus.Fields{
		"order_id": order.ID,
		"admins":   len(notifications),
	}).Info("Admins notified")
	return nil
}

func (s *NotificationService) List(ctx context.Context, adminID int64, unreadOnly bool, params utils.PaginationParams) ([]models.AdminNotification, int64, error) {
	params = utils.NormalizePagination(params)
	query := s.db.WithContext(ctx).Model(&models.AdminNotification{}).Where("admin_id = ?", adminID)
	if unreadOnly {
		query = query.Where("status = ?", models.NotificationUnread)
	}

	var total int64
	if err := query.Count(&total).Error; err != nil {
		return nil, 0, fmt.Errorf("database error: %w", err)
	}

	query = utils.ApplySort(query, params, []string{"created_at", "id"})
	query = utils.ApplyPagination(query, params)

	var notifications []models.AdminNotification
	if err := query.Find(&notifications).Error; err != nil {
		return nil, 0, fmt.Errorf("database error: %w", err)
	}
	return notifications, total, nil
}

func (s *NotificationService) MarkRead(ctx context.Context, adminID int64, id uint) error {
	now := time.Now()
	result := s.db.WithContext(ctx).Model(&models.AdminNotification{}).
		Where("id = ? AND admin_id = ?", id, adminID).
		Updates(map[string]interface{}{
			"status":  models.NotificationRead,
			"read_at": now,
		})
	if result.Error != nil {
		return fmt.Errorf("database error: %w", result.Error)
	}
	if result.RowsAffected == 0 {
		return ErrNotificationNotFound
	}
	return nil
}

func (s *NotificationService) renderTemplate(tmpl *template.Template, data interface{}) (string, error) {
	var buf bytes.Buffer
	if err := tmpl.Execute(&buf, data); err != nil {
		return "", err
	}
	return buf.String(), nil
}

var templates = map[string]messageTemplate{
	NotificationTypeOrder: {
		Title: "New order #%d",
		Body: template.Must(template.New(NotificationTypeOrder).Parse(
			`📦 <b>New order #{{.Order.ID}}</b>

👤 <b>Customer:</b>
{{with .Order.Username}}@{{.}}
{{end}}First name: {{or .Order.FirstName "not specified"}}
Last name: {{or .Order.LastName "not specified"}}
ID: <code>{{.Order.UserID}}</code>

<b>Items:</b>
{{range .Lines}}• {{.Name}}
  {{.Quantity}} × {{.Price}} = {{.Subtotal}}
{{end}}
<b>Total: {{.Order.TotalPrice}}</b>`)),
	},
}

func (s *NotificationService) getTemplate(templateType string) messageTemplate {
	if tmpl, exists := templates[templateType]; exists {
		return tmpl
	}
	return messageTemplate{
		Title: "Notification #%d",
		Body:  template.Must(template.New("default").Parse("<p>{{.Order.ID}}</p>")),
	}
}
