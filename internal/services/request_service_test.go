package services

import (
	"context"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/mesametamaarkhan/theekkardo/internal/apperrors"
	"github.com/mesametamaarkhan/theekkardo/internal/models"
	"github.com/mesametamaarkhan/theekkardo/internal/services/dto"
)

func newOwner(id string) *models.User {
	return &models.User{
		BaseModel: models.BaseModel{ID: id},
		Role:      models.UserRoleUser,
		FullName:  "Ali Raza",
		Email:     id + "@example.com",
	}
}

func newMechanic(id string) *models.User {
	return &models.User{
		BaseModel: models.BaseModel{ID: id},
		Role:      models.UserRoleMechanic,
		FullName:  "Bilal Khan",
		Email:     id + "@example.com",
		Rating:    4.5,
		Verified:  true,
	}
}

func validCreatePayload() *dto.CreateRequestRequest {
	return &dto.CreateRequestRequest{
		ServiceID: "svc-1",
		Vehicle: dto.VehiclePayload{
			Make:        "Toyota",
			Model:       "Corolla",
			Year:        2018,
			PlateNumber: "LEB-1234",
		},
		Location:         dto.LocationPayload{Lat: 31.52, Lng: 74.35},
		IssueDescription: "Engine overheating on the motorway",
		PreferredTime:    time.Now().Add(2 * time.Hour),
	}
}

func TestCreateRequest_StartsPending(t *testing.T) {
	owner := newOwner("owner-1")
	requestRepo := newFakeRequestRepo()
	svc := NewRequestService(requestRepo, newFakeUserRepo(owner), newFakeServiceRepo(), noopNotifier{})

	created, err := svc.Create(context.Background(), owner.ID, validCreatePayload())
	require.NoError(t, err)

	assert.Equal(t, models.RequestStatusPending, created.Status)
	assert.Equal(t, owner.ID, created.UserID)
	assert.Nil(t, created.MechanicID)
	assert.Nil(t, created.FinalPrice)
	assert.False(t, created.IsEmergency)
	assert.Equal(t, models.PriorityMedium, created.Priority)

	stored, err := requestRepo.FindByID(context.Background(), created.ID)
	require.NoError(t, err)
	assert.Equal(t, models.RequestStatusPending, stored.Status)
}

func TestCreateRequest_UnknownOwner(t *testing.T) {
	svc := NewRequestService(newFakeRequestRepo(), newFakeUserRepo(), newFakeServiceRepo(), noopNotifier{})

	_, err := svc.Create(context.Background(), "ghost", validCreatePayload())

	var appErr *apperrors.AppError
	require.ErrorAs(t, err, &appErr)
	assert.Equal(t, 404, appErr.HTTPCode)
}

func TestCreateEmergencyRequest_CarriesPriority(t *testing.T) {
	owner := newOwner("owner-1")
	svc := NewRequestService(newFakeRequestRepo(), newFakeUserRepo(owner), newFakeServiceRepo(), noopNotifier{})

	created, err := svc.CreateEmergency(context.Background(), owner.ID, &dto.CreateEmergencyRequest{
		CreateRequestRequest: *validCreatePayload(),
		Priority:             models.PriorityHigh,
	})
	require.NoError(t, err)

	assert.True(t, created.IsEmergency)
	assert.Equal(t, models.PriorityHigh, created.Priority)
	assert.Equal(t, models.RequestStatusPending, created.Status)
}

func TestUpdateStatus_OwnerCancelsPending(t *testing.T) {
	owner := newOwner("owner-1")
	request := &models.ServiceRequest{
		BaseModel: models.BaseModel{ID: "req-1"},
		UserID:    owner.ID,
		Status:    models.RequestStatusPending,
	}
	svc := NewRequestService(newFakeRequestRepo(request), newFakeUserRepo(owner), newFakeServiceRepo(), noopNotifier{})

	actor := dto.Actor{ID: owner.ID, Role: models.UserRoleUser}
	updated, err := svc.UpdateStatus(context.Background(), actor, "req-1", models.RequestStatusCanceled)
	require.NoError(t, err)
	assert.Equal(t, models.RequestStatusCanceled, updated.Status)
}

func TestUpdateStatus_IllegalTransitions(t *testing.T) {
	owner := newOwner("owner-1")
	actor := dto.Actor{ID: owner.ID, Role: models.UserRoleUser}

	cases := []struct {
		name string
		from models.RequestStatus
		to   models.RequestStatus
	}{
		{"pending to completed", models.RequestStatusPending, models.RequestStatusCompleted},
		{"pending to in-progress", models.RequestStatusPending, models.RequestStatusInProgress},
		{"pending to accepted", models.RequestStatusPending, models.RequestStatusAccepted},
		{"accepted to completed", models.RequestStatusAccepted, models.RequestStatusCompleted},
		{"completed to canceled", models.RequestStatusCompleted, models.RequestStatusCanceled},
		{"canceled to in-progress", models.RequestStatusCanceled, models.RequestStatusInProgress},
	}
	for _, tc := range cases {
		t.Run(tc.name, func(t *testing.T) {
			request := &models.ServiceRequest{
				BaseModel: models.BaseModel{ID: "req-1"},
				UserID:    owner.ID,
				Status:    tc.from,
			}
			svc := NewRequestService(newFakeRequestRepo(request), newFakeUserRepo(owner), newFakeServiceRepo(), noopNotifier{})

			_, err := svc.UpdateStatus(context.Background(), actor, "req-1", tc.to)

			var appErr *apperrors.AppError
			require.ErrorAs(t, err, &appErr)
			assert.Equal(t, 409, appErr.HTTPCode)
		})
	}
}

func TestUpdateStatus_UnknownStatusRejected(t *testing.T) {
	svc := NewRequestService(newFakeRequestRepo(), newFakeUserRepo(), newFakeServiceRepo(), noopNotifier{})

	_, err := svc.UpdateStatus(context.Background(), dto.Actor{ID: "anyone"}, "req-1", "paused")

	var appErr *apperrors.AppError
	require.ErrorAs(t, err, &appErr)
	assert.Equal(t, 400, appErr.HTTPCode)
}

func TestUpdateStatus_StrangerForbidden(t *testing.T) {
	request := &models.ServiceRequest{
		BaseModel: models.BaseModel{ID: "req-1"},
		UserID:    "owner-1",
		Status:    models.RequestStatusPending,
	}
	svc := NewRequestService(newFakeRequestRepo(request), newFakeUserRepo(), newFakeServiceRepo(), noopNotifier{})

	actor := dto.Actor{ID: "someone-else", Role: models.UserRoleUser}
	_, err := svc.UpdateStatus(context.Background(), actor, "req-1", models.RequestStatusCanceled)
	assert.ErrorIs(t, err, apperrors.ErrForbidden)
}

func TestUpdateStatus_AssignedMechanicDrivesLifecycle(t *testing.T) {
	mechanicID := "mech-1"
	request := &models.ServiceRequest{
		BaseModel:  models.BaseModel{ID: "req-1"},
		UserID:     "owner-1",
		MechanicID: &mechanicID,
		Status:     models.RequestStatusAccepted,
	}
	svc := NewRequestService(newFakeRequestRepo(request), newFakeUserRepo(), newFakeServiceRepo(), noopNotifier{})
	actor := dto.Actor{ID: mechanicID, Role: models.UserRoleMechanic}

	updated, err := svc.UpdateStatus(context.Background(), actor, "req-1", models.RequestStatusInProgress)
	require.NoError(t, err)
	assert.Equal(t, models.RequestStatusInProgress, updated.Status)

	updated, err = svc.UpdateStatus(context.Background(), actor, "req-1", models.RequestStatusCompleted)
	require.NoError(t, err)
	assert.Equal(t, models.RequestStatusCompleted, updated.Status)
}

func TestUpdateStatus_AdminMayMutateAnyRequest(t *testing.T) {
	request := &models.ServiceRequest{
		BaseModel: models.BaseModel{ID: "req-1"},
		UserID:    "owner-1",
		Status:    models.RequestStatusPending,
	}
	svc := NewRequestService(newFakeRequestRepo(request), newFakeUserRepo(), newFakeServiceRepo(), noopNotifier{})

	actor := dto.Actor{ID: "admin-1", Role: models.UserRoleAdmin}
	updated, err := svc.UpdateStatus(context.Background(), actor, "req-1", models.RequestStatusCanceled)
	require.NoError(t, err)
	assert.Equal(t, models.RequestStatusCanceled, updated.Status)
}

func TestUpdateStatus_MissingRequest(t *testing.T) {
	svc := NewRequestService(newFakeRequestRepo(), newFakeUserRepo(), newFakeServiceRepo(), noopNotifier{})

	_, err := svc.UpdateStatus(context.Background(), dto.Actor{ID: "owner-1"}, "missing", models.RequestStatusCanceled)
	assert.ErrorIs(t, err, apperrors.ErrRequestNotFound)
}

func TestGetByID_BuildsProjections(t *testing.T) {
	owner := newOwner("owner-1")
	mechanic := newMechanic("mech-1")
	mechanicID := mechanic.ID
	request := &models.ServiceRequest{
		BaseModel:  models.BaseModel{ID: "req-1"},
		UserID:     owner.ID,
		MechanicID: &mechanicID,
		ServiceID:  "svc-1",
		Status:     models.RequestStatusAccepted,
	}
	service := &models.Service{BaseModel: models.BaseModel{ID: "svc-1"}, Name: "Engine Repair"}
	svc := NewRequestService(newFakeRequestRepo(request), newFakeUserRepo(owner, mechanic), newFakeServiceRepo(service), noopNotifier{})

	detail, err := svc.GetByID(context.Background(), "req-1")
	require.NoError(t, err)

	require.NotNil(t, detail.Owner)
	assert.Equal(t, owner.FullName, detail.Owner.FullName)
	require.NotNil(t, detail.Mechanic)
	assert.Equal(t, mechanic.FullName, detail.Mechanic.FullName)
	require.NotNil(t, detail.Service)
	assert.Equal(t, "Engine Repair", detail.Service.Name)
}

func TestGetByID_MissingProjectionsAreOmitted(t *testing.T) {
	request := &models.ServiceRequest{
		BaseModel: models.BaseModel{ID: "req-1"},
		UserID:    "gone-owner",
		ServiceID: "gone-svc",
		Status:    models.RequestStatusPending,
	}
	svc := NewRequestService(newFakeRequestRepo(request), newFakeUserRepo(), newFakeServiceRepo(), noopNotifier{})

	detail, err := svc.GetByID(context.Background(), "req-1")
	require.NoError(t, err)
	assert.Nil(t, detail.Owner)
	assert.Nil(t, detail.Mechanic)
	assert.Nil(t, detail.Service)
}

func TestListEmergency_PendingOnlyFilter(t *testing.T) {
	pendingEmergency := &models.ServiceRequest{
		BaseModel:   models.BaseModel{ID: "req-1"},
		UserID:      "owner-1",
		Status:      models.RequestStatusPending,
		IsEmergency: true,
	}
	completedEmergency := &models.ServiceRequest{
		BaseModel:   models.BaseModel{ID: "req-2"},
		UserID:      "owner-1",
		Status:      models.RequestStatusCompleted,
		IsEmergency: true,
	}
	ordinary := &models.ServiceRequest{
		BaseModel: models.BaseModel{ID: "req-3"},
		UserID:    "owner-1",
		Status:    models.RequestStatusPending,
	}
	svc := NewRequestService(newFakeRequestRepo(pendingEmergency, completedEmergency, ordinary), newFakeUserRepo(), newFakeServiceRepo(), noopNotifier{})

	all, err := svc.ListEmergency(context.Background(), false)
	require.NoError(t, err)
	assert.Len(t, all, 2)

	pending, err := svc.ListEmergency(context.Background(), true)
	require.NoError(t, err)
	require.Len(t, pending, 1)
	assert.Equal(t, "req-1", pending[0].ID)
}

func TestCreateRequest_EmitsNewRequestNotification(t *testing.T) {
	owner := newOwner("owner-1")
	notifier := &recordingNotifier{}
	svc := NewRequestService(newFakeRequestRepo(), newFakeUserRepo(owner), newFakeServiceRepo(), notifier)

	created, err := svc.Create(context.Background(), owner.ID, validCreatePayload())
	require.NoError(t, err)

	events := notifier.recorded()
	require.Len(t, events, 1)
	assert.Equal(t, models.NotificationTypeServiceRequest, events[0].name)
	assert.Equal(t, created.ID, events[0].requestID)
}

func TestUpdateStatus_EmitsLifecycleNotifications(t *testing.T) {
	mechanicID := "mech-1"
	cases := []struct {
		name      string
		from      models.RequestStatus
		to        models.RequestStatus
		wantEvent string
	}{
		{"started", models.RequestStatusAccepted, models.RequestStatusInProgress, models.NotificationTypeServiceStarted},
		{"completed", models.RequestStatusInProgress, models.RequestStatusCompleted, models.NotificationTypeServiceCompleted},
		{"canceled is silent", models.RequestStatusAccepted, models.RequestStatusCanceled, ""},
	}

	for _, tc := range cases {
		t.Run(tc.name, func(t *testing.T) {
			owner := newOwner("owner-1")
			mechanic := newMechanic(mechanicID)
			request := &models.ServiceRequest{
				BaseModel:  models.BaseModel{ID: "req-1"},
				UserID:     owner.ID,
				MechanicID: &mechanicID,
				Status:     tc.from,
			}
			notifier := &recordingNotifier{}
			svc := NewRequestService(newFakeRequestRepo(request), newFakeUserRepo(owner, mechanic), newFakeServiceRepo(), notifier)

			actor := dto.Actor{ID: mechanicID, Role: models.UserRoleMechanic}
			if tc.to == models.RequestStatusCanceled {
				actor = dto.Actor{ID: owner.ID, Role: models.UserRoleUser}
			}
			_, err := svc.UpdateStatus(context.Background(), actor, request.ID, tc.to)
			require.NoError(t, err)

			events := notifier.recorded()
			if tc.wantEvent == "" {
				assert.Empty(t, events)
				return
			}
			require.Len(t, events, 1)
			assert.Equal(t, tc.wantEvent, events[0].name)
			assert.Equal(t, request.ID, events[0].requestID)
		})
	}
}
