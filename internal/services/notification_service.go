package services

import (
	"context"
	"encoding/json"
	"fmt"
	"time"

	"gorm.io/datatypes"
	"gorm.io/gorm"

	"github.com/mesametamaarkhan/theekkardo/internal/apperrors"
	"github.com/mesametamaarkhan/theekkardo/internal/email"
	"github.com/mesametamaarkhan/theekkardo/internal/logger"
	"github.com/mesametamaarkhan/theekkardo/internal/models"
	"github.com/mesametamaarkhan/theekkardo/internal/push"
	"github.com/mesametamaarkhan/theekkardo/internal/repositories"
	"github.com/mesametamaarkhan/theekkardo/internal/services/dto"
)

// NotificationService fans lifecycle/bid events out to their recipient
// set: one persisted Notification per recipient, then a best-effort
// push (or email fallback) per recipient. Push and email failures are
// logged and swallowed; only persistence failures reach the caller,
// and callers are expected to log those too rather than abort the
// triggering operation.
type NotificationService interface {
	// Event fan-out
	NotifyNewRequest(ctx context.Context, req *models.ServiceRequest, owner *models.User) error
	NotifyBidReceived(ctx context.Context, req *models.ServiceRequest, bid *models.Bid, mechanic *models.User) error
	NotifyBidAccepted(ctx context.Context, req *models.ServiceRequest, bid *models.Bid) error
	NotifyServiceStarted(ctx context.Context, req *models.ServiceRequest) error
	NotifyServiceCompleted(ctx context.Context, req *models.ServiceRequest) error

	// Recipient-side operations
	ListForRecipient(ctx context.Context, recipientID string, criteria repositories.NotificationCriteria) (*dto.NotificationList, error)
	UnreadCount(ctx context.Context, recipientID string) (int64, error)
	MarkAsRead(ctx context.Context, recipientID, notificationID string) error
	MarkAllAsRead(ctx context.Context, recipientID string) error
}

type notificationService struct {
	notificationRepo repositories.NotificationRepository
	userRepo         repositories.UserRepository
	sender           push.Sender
	mailer           email.Sender
	pushTimeout      time.Duration
}

func NewNotificationService(
	notificationRepo repositories.NotificationRepository,
	userRepo repositories.UserRepository,
	sender push.Sender,
	mailer email.Sender,
	pushTimeout time.Duration,
) NotificationService {
	return &notificationService{
		notificationRepo: notificationRepo,
		userRepo:         userRepo,
		sender:           sender,
		mailer:           mailer,
		pushTimeout:      pushTimeout,
	}
}

// ---------------- Event fan-out ----------------

func (s *notificationService) NotifyNewRequest(ctx context.Context, req *models.ServiceRequest, owner *models.User) error {
	mechanics, err := s.userRepo.FindByRole(ctx, models.UserRoleMechanic)
	if err != nil {
		return fmt.Errorf("resolve mechanics for new request fan-out: %w", err)
	}

	title := "New Service Request"
	if req.IsEmergency {
		title = "New Emergency Request"
	}
	body := fmt.Sprintf("New service request from %s for %s %s.",
		owner.FullName, req.Vehicle.Make, req.Vehicle.Model)

	var notifications []*models.Notification
	recipients := make([]*models.User, 0, len(mechanics))
	for i := range mechanics {
		mechanic := &mechanics[i]
		notifications = append(notifications, s.build(mechanic.ID, models.NotificationTypeServiceRequest, title, body, req.ID))
		recipients = append(recipients, mechanic)
	}

	if err := s.notificationRepo.CreateBulk(ctx, notifications); err != nil {
		return fmt.Errorf("persist new request notifications: %w", err)
	}

	s.deliver(recipients, title, body, s.data(models.NotificationTypeServiceRequest, req.ID), false)
	return nil
}

func (s *notificationService) NotifyBidReceived(ctx context.Context, req *models.ServiceRequest, bid *models.Bid, mechanic *models.User) error {
	owner, err := s.userRepo.FindByID(ctx, req.UserID)
	if err != nil {
		return fmt.Errorf("resolve request owner for bid notification: %w", err)
	}

	title := "New Bid Received"
	body := fmt.Sprintf("%s bid Rs %.0f on your service request.", mechanic.FullName, bid.BidAmount)

	notification := s.build(owner.ID, models.NotificationTypeBidReceived, title, body, req.ID)
	if err := s.notificationRepo.Create(ctx, notification); err != nil {
		return fmt.Errorf("persist bid notification: %w", err)
	}

	s.deliver([]*models.User{owner}, title, body, s.data(models.NotificationTypeBidReceived, req.ID), false)
	return nil
}

func (s *notificationService) NotifyBidAccepted(ctx context.Context, req *models.ServiceRequest, bid *models.Bid) error {
	mechanic, err := s.userRepo.FindByID(ctx, bid.MechanicID)
	if err != nil {
		return fmt.Errorf("resolve winning mechanic: %w", err)
	}

	title := "Bid Accepted"
	body := fmt.Sprintf("Your bid of Rs %.0f was accepted for the %s %s.",
		bid.BidAmount, req.Vehicle.Make, req.Vehicle.Model)

	notification := s.build(mechanic.ID, models.NotificationTypeBidAccepted, title, body, req.ID)
	if err := s.notificationRepo.Create(ctx, notification); err != nil {
		return fmt.Errorf("persist bid accepted notification: %w", err)
	}

	s.deliver([]*models.User{mechanic}, title, body, s.data(models.NotificationTypeBidAccepted, req.ID), true)
	return nil
}

func (s *notificationService) NotifyServiceStarted(ctx context.Context, req *models.ServiceRequest) error {
	return s.notifyOwner(ctx, req, models.NotificationTypeServiceStarted,
		"Service Started", "Your mechanic has started working on your request.", false)
}

func (s *notificationService) NotifyServiceCompleted(ctx context.Context, req *models.ServiceRequest) error {
	return s.notifyOwner(ctx, req, models.NotificationTypeServiceCompleted,
		"Service Completed", "Your service request has been completed.", true)
}

func (s *notificationService) notifyOwner(ctx context.Context, req *models.ServiceRequest, eventType, title, body string, emailFallback bool) error {
	owner, err := s.userRepo.FindByID(ctx, req.UserID)
	if err != nil {
		return fmt.Errorf("resolve request owner: %w", err)
	}

	notification := s.build(owner.ID, eventType, title, body, req.ID)
	if err := s.notificationRepo.Create(ctx, notification); err != nil {
		return fmt.Errorf("persist %s notification: %w", eventType, err)
	}

	s.deliver([]*models.User{owner}, title, body, s.data(eventType, req.ID), emailFallback)
	return nil
}

func (s *notificationService) build(recipientID, eventType, title, body, requestID string) *models.Notification {
	data, _ := json.Marshal(map[string]string{"serviceRequestId": requestID})
	return &models.Notification{
		RecipientID: recipientID,
		Type:        eventType,
		Title:       title,
		Body:        body,
		Data:        datatypes.JSON(data),
	}
}

func (s *notificationService) data(eventType, requestID string) map[string]string {
	return map[string]string{
		"type":             eventType,
		"serviceRequestId": requestID,
	}
}

// deliver pushes to every recipient holding a token, concurrently and
// detached from the request context. Recipients without a token get an
// email instead when emailFallback is set. Nothing here can fail the
// triggering operation.
func (s *notificationService) deliver(recipients []*models.User, title, body string, data map[string]string, emailFallback bool) {
	for _, recipient := range recipients {
		if recipient.PushToken != nil && *recipient.PushToken != "" {
			token := *recipient.PushToken
			recipientID := recipient.ID
			go func() {
				ctx, cancel := context.WithTimeout(context.Background(), s.pushTimeout)
				defer cancel()
				if err := s.sender.Send(ctx, push.Message{
					Token: token,
					Title: title,
					Body:  body,
					Data:  data,
				}); err != nil {
					logger.Warn("push delivery failed", "recipient_id", recipientID, "error", err.Error())
				}
			}()
			continue
		}

		if emailFallback {
			to := recipient.Email
			recipientID := recipient.ID
			go func() {
				if err := s.mailer.Send(to, title, body); err != nil {
					logger.Warn("email delivery failed", "recipient_id", recipientID, "error", err.Error())
				}
			}()
		}
	}
}

// ---------------- Recipient-side operations ----------------

func (s *notificationService) ListForRecipient(ctx context.Context, recipientID string, criteria repositories.NotificationCriteria) (*dto.NotificationList, error) {
	notifications, total, err := s.notificationRepo.ListByRecipient(ctx, recipientID, criteria)
	if err != nil {
		return nil, apperrors.InternalError(err)
	}

	page := criteria.Page
	if page < 1 {
		page = 1
	}
	pageSize := criteria.PageSize
	if pageSize < 1 || pageSize > 100 {
		pageSize = 20
	}

	return &dto.NotificationList{
		Notifications: notifications,
		Total:         total,
		Page:          page,
		PageSize:      pageSize,
	}, nil
}

func (s *notificationService) UnreadCount(ctx context.Context, recipientID string) (int64, error) {
	return s.notificationRepo.UnreadCount(ctx, recipientID)
}

func (s *notificationService) MarkAsRead(ctx context.Context, recipientID, notificationID string) error {
	notification, err := s.notificationRepo.FindByID(ctx, notificationID)
	if err != nil {
		if apperrors.Is(err, gorm.ErrRecordNotFound) {
			return apperrors.ErrNotificationNotFound
		}
		return apperrors.InternalError(err)
	}
	if notification.RecipientID != recipientID {
		return apperrors.ErrForbidden
	}
	return s.notificationRepo.MarkAsRead(ctx, notificationID)
}

func (s *notificationService) MarkAllAsRead(ctx context.Context, recipientID string) error {
	return s.notificationRepo.MarkAllAsRead(ctx, recipientID)
}
