package services

import (
	"context"

	"github.com/dmitrijs2005/requestdesk/internal/client/models"
)

// fakeClient implements client.Client for the service tests.
type fakeClient struct {
	LoginRet  models.Identity
	LoginErr  error
	LastCreds models.Credentials

	SettingsRet models.Profile
	SettingsErr error
	SaveRet     *models.Profile
	SaveErr     error
	LastSaved   models.Profile
	SaveCalls   int

	HealthErr error
}

func (f *fakeClient) Login(_ context.Context, c models.Credentials) (models.Identity, error) {
	f.LastCreds = c
	return f.LoginRet, f.LoginErr
}

func (f *fakeClient) GetSettings(context.Context) (models.Profile, error) {
	return f.SettingsRet, f.SettingsErr
}

func (f *fakeClient) SaveSettings(_ context.Context, p models.Profile) (models.Profile, error) {
	f.SaveCalls++
	f.LastSaved = p
	if f.SaveErr != nil {
		return models.Profile{}, f.SaveErr
	}
	if f.SaveRet != nil {
		return *f.SaveRet, nil
	}
	return p, nil
}

func (f *fakeClient) GetOrders(context.Context, models.Filter) ([]models.Order, error) {
	return nil, nil
}

func (f *fakeClient) CreateOrder(context.Context, models.NewOrder) (*models.Order, error) {
	return nil, nil
}

func (f *fakeClient) UpdateOrder(context.Context, models.ID, models.Patch) (*models.Order, error) {
	return nil, nil
}

func (f *fakeClient) GetTickets(context.Context, models.Filter) ([]models.Ticket, error) {
	return nil, nil
}

func (f *fakeClient) CreateTicket(context.Context, models.NewTicket) (*models.Ticket, error) {
	return nil, nil
}

func (f *fakeClient) UpdateTicket(context.Context, models.ID, models.Patch) (*models.Ticket, error) {
	return nil, nil
}

func (f *fakeClient) Health(context.Context) error { return f.HealthErr }
