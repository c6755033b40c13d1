package services

import (
	"context"
	"sync"
	"time"

	"gorm.io/gorm"

	"github.com/mesametamaarkhan/theekkardo/internal/models"
	"github.com/mesametamaarkhan/theekkardo/internal/push"
	"github.com/mesametamaarkhan/theekkardo/internal/repositories"
	"github.com/mesametamaarkhan/theekkardo/internal/services/dto"
)

// In-memory fakes over the repository interfaces. The real
// implementations are thin gorm wrappers; the service logic under test
// only cares about the interface contracts, including the
// gorm.ErrRecordNotFound convention for missing rows.

type fakeUserRepo struct {
	users map[string]*models.User
}

func newFakeUserRepo(users ...*models.User) *fakeUserRepo {
	r := &fakeUserRepo{users: make(map[string]*models.User)}
	for _, u := range users {
		r.users[u.ID] = u
	}
	return r
}

func (r *fakeUserRepo) FindByID(_ context.Context, id string) (*models.User, error) {
	if u, ok := r.users[id]; ok {
		return u, nil
	}
	return nil, gorm.ErrRecordNotFound
}

func (r *fakeUserRepo) FindByRole(_ context.Context, role models.UserRole) ([]models.User, error) {
	var out []models.User
	for _, u := range r.users {
		if u.Role == role {
			out = append(out, *u)
		}
	}
	return out, nil
}

type fakeServiceRepo struct {
	services map[string]*models.Service
}

func newFakeServiceRepo(svcs ...*models.Service) *fakeServiceRepo {
	r := &fakeServiceRepo{services: make(map[string]*models.Service)}
	for _, s := range svcs {
		r.services[s.ID] = s
	}
	return r
}

func (r *fakeServiceRepo) FindByID(_ context.Context, id string) (*models.Service, error) {
	if s, ok := r.services[id]; ok {
		return s, nil
	}
	return nil, gorm.ErrRecordNotFound
}

func (r *fakeServiceRepo) List(_ context.Context) ([]models.Service, error) {
	var out []models.Service
	for _, s := range r.services {
		out = append(out, *s)
	}
	return out, nil
}

type fakeRequestRepo struct {
	mu       sync.Mutex
	requests map[string]*models.ServiceRequest
	seq      int
}

func newFakeRequestRepo(reqs ...*models.ServiceRequest) *fakeRequestRepo {
	r := &fakeRequestRepo{requests: make(map[string]*models.ServiceRequest)}
	for _, req := range reqs {
		r.requests[req.ID] = req
	}
	return r
}

func (r *fakeRequestRepo) Create(_ context.Context, req *models.ServiceRequest) error {
	r.mu.Lock()
	defer r.mu.Unlock()
	if req.ID == "" {
		r.seq++
		req.ID = "req-" + string(rune('0'+r.seq))
	}
	r.requests[req.ID] = req
	return nil
}

func (r *fakeRequestRepo) FindByID(_ context.Context, id string) (*models.ServiceRequest, error) {
	r.mu.Lock()
	defer r.mu.Unlock()
	if req, ok := r.requests[id]; ok {
		copied := *req
		return &copied, nil
	}
	return nil, gorm.ErrRecordNotFound
}

func (r *fakeRequestRepo) ListPending(_ context.Context) ([]models.ServiceRequest, error) {
	return r.listWhere(func(req *models.ServiceRequest) bool {
		return req.Status == models.RequestStatusPending
	}), nil
}

func (r *fakeRequestRepo) ListAll(_ context.Context) ([]models.ServiceRequest, error) {
	return r.listWhere(func(*models.ServiceRequest) bool { return true }), nil
}

func (r *fakeRequestRepo) ListByUser(_ context.Context, userID string) ([]models.ServiceRequest, error) {
	return r.listWhere(func(req *models.ServiceRequest) bool {
		return req.UserID == userID
	}), nil
}

func (r *fakeRequestRepo) ListByMechanic(_ context.Context, mechanicID string) ([]models.ServiceRequest, error) {
	return r.listWhere(func(req *models.ServiceRequest) bool {
		return req.MechanicID != nil && *req.MechanicID == mechanicID
	}), nil
}

func (r *fakeRequestRepo) ListEmergency(_ context.Context, pendingOnly bool) ([]models.ServiceRequest, error) {
	return r.listWhere(func(req *models.ServiceRequest) bool {
		if !req.IsEmergency {
			return false
		}
		return !pendingOnly || req.Status == models.RequestStatusPending
	}), nil
}

func (r *fakeRequestRepo) listWhere(keep func(*models.ServiceRequest) bool) []models.ServiceRequest {
	r.mu.Lock()
	defer r.mu.Unlock()
	out := make([]models.ServiceRequest, 0)
	for _, req := range r.requests {
		if keep(req) {
			out = append(out, *req)
		}
	}
	return out
}

func (r *fakeRequestRepo) UpdateStatusFrom(_ context.Context, id string, fromStatus, newStatus models.RequestStatus) error {
	r.mu.Lock()
	defer r.mu.Unlock()
	req, ok := r.requests[id]
	if !ok {
		return gorm.ErrRecordNotFound
	}
	if req.Status != fromStatus {
		return repositories.ErrStaleStatus
	}
	req.Status = newStatus
	return nil
}

func (r *fakeRequestRepo) CancelStale(_ context.Context, _ time.Duration) (int64, error) {
	return 0, nil
}

type fakeBidRepo struct {
	mu       sync.Mutex
	bids     map[string]*models.Bid
	requests *fakeRequestRepo
	seq      int
}

func newFakeBidRepo(requests *fakeRequestRepo, bids ...*models.Bid) *fakeBidRepo {
	r := &fakeBidRepo{bids: make(map[string]*models.Bid), requests: requests}
	for _, b := range bids {
		r.bids[b.ID] = b
	}
	return r
}

func (r *fakeBidRepo) Create(_ context.Context, bid *models.Bid) error {
	r.mu.Lock()
	defer r.mu.Unlock()
	if bid.ID == "" {
		r.seq++
		bid.ID = "bid-" + string(rune('0'+r.seq))
	}
	r.bids[bid.ID] = bid
	return nil
}

func (r *fakeBidRepo) FindByID(_ context.Context, id string) (*models.Bid, error) {
	r.mu.Lock()
	defer r.mu.Unlock()
	if b, ok := r.bids[id]; ok {
		copied := *b
		return &copied, nil
	}
	return nil, gorm.ErrRecordNotFound
}

func (r *fakeBidRepo) ListByRequest(_ context.Context, serviceRequestID string) ([]models.Bid, error) {
	r.mu.Lock()
	defer r.mu.Unlock()
	out := make([]models.Bid, 0)
	for _, b := range r.bids {
		if b.ServiceRequestID == serviceRequestID {
			out = append(out, *b)
		}
	}
	return out, nil
}

// ResolveAcceptance mirrors the transactional semantics of the real
// repository: pending->accepted is the serialization point, losers get
// ErrBidConflict, the winner's re-acceptance is a no-op.
func (r *fakeBidRepo) ResolveAcceptance(_ context.Context, bid *models.Bid) error {
	r.mu.Lock()
	defer r.mu.Unlock()
	r.requests.mu.Lock()
	defer r.requests.mu.Unlock()

	req, ok := r.requests.requests[bid.ServiceRequestID]
	if !ok {
		return gorm.ErrRecordNotFound
	}

	if req.Status != models.RequestStatusPending {
		if req.Status != models.RequestStatusAccepted ||
			req.MechanicID == nil || *req.MechanicID != bid.MechanicID ||
			bid.Status != models.BidStatusAccepted {
			return repositories.ErrBidConflict
		}
	} else {
		mechanicID := bid.MechanicID
		amount := bid.BidAmount
		req.MechanicID = &mechanicID
		req.FinalPrice = &amount
		req.Status = models.RequestStatusAccepted
	}

	for _, other := range r.bids {
		if other.ServiceRequestID == bid.ServiceRequestID {
			if other.ID == bid.ID {
				other.Status = models.BidStatusAccepted
			} else {
				other.Status = models.BidStatusRejected
			}
		}
	}
	return nil
}

type fakeNotificationRepo struct {
	mu            sync.Mutex
	notifications []*models.Notification
	seq           int
	createErr     error
}

func newFakeNotificationRepo() *fakeNotificationRepo {
	return &fakeNotificationRepo{}
}

func (r *fakeNotificationRepo) Create(_ context.Context, n *models.Notification) error {
	return r.CreateBulk(nil, []*models.Notification{n})
}

func (r *fakeNotificationRepo) CreateBulk(_ context.Context, ns []*models.Notification) error {
	r.mu.Lock()
	defer r.mu.Unlock()
	if r.createErr != nil {
		return r.createErr
	}
	for _, n := range ns {
		if n.ID == "" {
			r.seq++
			n.ID = "notif-" + string(rune('0'+r.seq))
		}
		r.notifications = append(r.notifications, n)
	}
	return nil
}

func (r *fakeNotificationRepo) FindByID(_ context.Context, id string) (*models.Notification, error) {
	r.mu.Lock()
	defer r.mu.Unlock()
	for _, n := range r.notifications {
		if n.ID == id {
			copied := *n
			return &copied, nil
		}
	}
	return nil, gorm.ErrRecordNotFound
}

func (r *fakeNotificationRepo) ListByRecipient(_ context.Context, recipientID string, criteria repositories.NotificationCriteria) ([]models.Notification, int64, error) {
	r.mu.Lock()
	defer r.mu.Unlock()
	out := make([]models.Notification, 0)
	for _, n := range r.notifications {
		if n.RecipientID != recipientID {
			continue
		}
		if criteria.UnreadOnly && n.IsRead {
			continue
		}
		if criteria.Type != "" && n.Type != criteria.Type {
			continue
		}
		out = append(out, *n)
	}
	return out, int64(len(out)), nil
}

func (r *fakeNotificationRepo) UnreadCount(_ context.Context, recipientID string) (int64, error) {
	r.mu.Lock()
	defer r.mu.Unlock()
	var count int64
	for _, n := range r.notifications {
		if n.RecipientID == recipientID && !n.IsRead {
			count++
		}
	}
	return count, nil
}

func (r *fakeNotificationRepo) MarkAsRead(_ context.Context, id string) error {
	r.mu.Lock()
	defer r.mu.Unlock()
	for _, n := range r.notifications {
		if n.ID == id {
			n.IsRead = true
			return nil
		}
	}
	return gorm.ErrRecordNotFound
}

func (r *fakeNotificationRepo) MarkAllAsRead(_ context.Context, recipientID string) error {
	r.mu.Lock()
	defer r.mu.Unlock()
	for _, n := range r.notifications {
		if n.RecipientID == recipientID {
			n.IsRead = true
		}
	}
	return nil
}

// byRecipient returns the persisted notifications for one recipient.
func (r *fakeNotificationRepo) byRecipient(recipientID string) []*models.Notification {
	r.mu.Lock()
	defer r.mu.Unlock()
	var out []*models.Notification
	for _, n := range r.notifications {
		if n.RecipientID == recipientID {
			out = append(out, n)
		}
	}
	return out
}

type fakeReviewRepo struct {
	mu      sync.Mutex
	reviews map[string]*models.Review
	seq     int
}

func newFakeReviewRepo(reviews ...*models.Review) *fakeReviewRepo {
	r := &fakeReviewRepo{reviews: make(map[string]*models.Review)}
	for _, rev := range reviews {
		r.reviews[rev.ID] = rev
	}
	return r
}

func (r *fakeReviewRepo) Create(_ context.Context, review *models.Review) error {
	r.mu.Lock()
	defer r.mu.Unlock()
	if review.ID == "" {
		r.seq++
		review.ID = "review-" + string(rune('0'+r.seq))
	}
	r.reviews[review.ID] = review
	return nil
}

func (r *fakeReviewRepo) FindByID(_ context.Context, id string) (*models.Review, error) {
	r.mu.Lock()
	defer r.mu.Unlock()
	if rev, ok := r.reviews[id]; ok {
		copied := *rev
		return &copied, nil
	}
	return nil, gorm.ErrRecordNotFound
}

func (r *fakeReviewRepo) ListByMechanic(_ context.Context, mechanicID string) ([]models.Review, error) {
	r.mu.Lock()
	defer r.mu.Unlock()
	out := make([]models.Review, 0)
	for _, rev := range r.reviews {
		if rev.MechanicID == mechanicID {
			out = append(out, *rev)
		}
	}
	return out, nil
}

func (r *fakeReviewRepo) ListByUser(_ context.Context, userID string) ([]models.Review, error) {
	r.mu.Lock()
	defer r.mu.Unlock()
	out := make([]models.Review, 0)
	for _, rev := range r.reviews {
		if rev.UserID == userID {
			out = append(out, *rev)
		}
	}
	return out, nil
}

func (r *fakeReviewRepo) Delete(_ context.Context, id string) error {
	r.mu.Lock()
	defer r.mu.Unlock()
	if _, ok := r.reviews[id]; !ok {
		return gorm.ErrRecordNotFound
	}
	delete(r.reviews, id)
	return nil
}

// recordingPushSender captures Send calls on a channel so tests can
// wait for the detached delivery goroutines.
type recordingPushSender struct {
	sent chan push.Message
	err  error
}

func newRecordingPushSender() *recordingPushSender {
	return &recordingPushSender{sent: make(chan push.Message, 16)}
}

func (s *recordingPushSender) Send(_ context.Context, msg push.Message) error {
	s.sent <- msg
	return s.err
}

type recordingMailer struct {
	sent chan string
}

func newRecordingMailer() *recordingMailer {
	return &recordingMailer{sent: make(chan string, 16)}
}

func (m *recordingMailer) Send(to, _, _ string) error {
	m.sent <- to
	return nil
}

// noopNotifier satisfies NotificationService for request/bid service
// tests that do not care about fan-out.
type noopNotifier struct{}

func (noopNotifier) NotifyNewRequest(context.Context, *models.ServiceRequest, *models.User) error {
	return nil
}
func (noopNotifier) NotifyBidReceived(context.Context, *models.ServiceRequest, *models.Bid, *models.User) error {
	return nil
}
func (noopNotifier) NotifyBidAccepted(context.Context, *models.ServiceRequest, *models.Bid) error {
	return nil
}
func (noopNotifier) NotifyServiceStarted(context.Context, *models.ServiceRequest) error {
	return nil
}
func (noopNotifier) NotifyServiceCompleted(context.Context, *models.ServiceRequest) error {
	return nil
}
func (noopNotifier) ListForRecipient(context.Context, string, repositories.NotificationCriteria) (*dto.NotificationList, error) {
	return &dto.NotificationList{}, nil
}
func (noopNotifier) UnreadCount(context.Context, string) (int64, error) { return 0, nil }
func (noopNotifier) MarkAsRead(context.Context, string, string) error   { return nil }
func (noopNotifier) MarkAllAsRead(context.Context, string) error        { return nil }

// notifierEvent is one captured lifecycle notification call.
type notifierEvent struct {
	name      string
	requestID string
	bidID     string
}

// recordingNotifier captures which lifecycle notifications the
// request and bid services fire, without any delivery machinery.
type recordingNotifier struct {
	noopNotifier
	mu     sync.Mutex
	events []notifierEvent
}

func (n *recordingNotifier) record(ev notifierEvent) {
	n.mu.Lock()
	defer n.mu.Unlock()
	n.events = append(n.events, ev)
}

func (n *recordingNotifier) recorded() []notifierEvent {
	n.mu.Lock()
	defer n.mu.Unlock()
	out := make([]notifierEvent, len(n.events))
	copy(out, n.events)
	return out
}

func (n *recordingNotifier) NotifyNewRequest(_ context.Context, req *models.ServiceRequest, _ *models.User) error {
	n.record(notifierEvent{name: models.NotificationTypeServiceRequest, requestID: req.ID})
	return nil
}

func (n *recordingNotifier) NotifyBidReceived(_ context.Context, req *models.ServiceRequest, bid *models.Bid, _ *models.User) error {
	n.record(notifierEvent{name: models.NotificationTypeBidReceived, requestID: req.ID, bidID: bid.ID})
	return nil
}

func (n *recordingNotifier) NotifyBidAccepted(_ context.Context, req *models.ServiceRequest, bid *models.Bid) error {
	n.record(notifierEvent{name: models.NotificationTypeBidAccepted, requestID: req.ID, bidID: bid.ID})
	return nil
}

func (n *recordingNotifier) NotifyServiceStarted(_ context.Context, req *models.ServiceRequest) error {
	n.record(notifierEvent{name: models.NotificationTypeServiceStarted, requestID: req.ID})
	return nil
}

func (n *recordingNotifier) NotifyServiceCompleted(_ context.Context, req *models.ServiceRequest) error {
	n.record(notifierEvent{name: models.NotificationTypeServiceCompleted, requestID: req.ID})
	return nil
}
