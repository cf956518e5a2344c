package client

import (
	"context"
	"errors"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/mock"
	"github.com/stretchr/testify/require"

	"github.com/pacphi/statusboard/pkg/api"
)

// MockSource implements Source for testing
type MockSource struct {
	mock.Mock
}

func (m *MockSource) ListStatusPages(ctx context.Context) ([]api.StatusPage, error) {
	args := m.Called(ctx)
	return args.Get(0).([]api.StatusPage), args.Error(1)
}

func (m *MockSource) SearchStatusPages(ctx context.Context, query string, limit int) ([]api.StatusPage, error) {
	args := m.Called(ctx, query, limit)
	return args.Get(0).([]api.StatusPage), args.Error(1)
}

func (m *MockSource) GetStatusPage(ctx context.Context, name string) (*api.StatusPage, error) {
	args := m.Called(ctx, name)
	page, _ := args.Get(0).(*api.StatusPage)
	return page, args.Error(1)
}

func (m *MockSource) GetCurrentStatus(ctx context.Context, statusPageURL string) (*api.CurrentStatusResponse, error) {
	args := m.Called(ctx, statusPageURL)
	status, _ := args.Get(0).(*api.CurrentStatusResponse)
	return status, args.Error(1)
}

func (m *MockSource) GetIncidents(ctx context.Context, statusPageURL string, limit int) ([]api.Incident, error) {
	args := m.Called(ctx, statusPageURL, limit)
	return args.Get(0).([]api.Incident), args.Error(1)
}

func TestService_ListWithStatus(t *testing.T) {
	source := new(MockSource)
	pages := []api.StatusPage{
		{Name: "payu", URL: "https://status.payu.com"},
		{Name: "csob", URL: "https://status.csob.cz"},
		{Name: "broken", URL: "https://status.broken.example"},
	}

	source.On("ListStatusPages", mock.Anything).Return(pages, nil)
	source.On("GetCurrentStatus", mock.Anything, "https://status.payu.com").
		Return(&api.CurrentStatusResponse{Status: api.StatusUp, IsIndexed: true}, nil)
	source.On("GetCurrentStatus", mock.Anything, "https://status.csob.cz").
		Return(&api.CurrentStatusResponse{Status: api.StatusDegraded, IsIndexed: true}, nil)
	source.On("GetCurrentStatus", mock.Anything, "https://status.broken.example").
		Return(nil, errors.New("HTTP 500"))

	result, err := NewService(source, 2, 0, 0).ListWithStatus(context.Background())
	require.NoError(t, err)
	require.Len(t, result, 3)

	assert.Equal(t, "payu", result[0].Name)
	assert.Equal(t, api.StatusUp, result[0].Status)
	assert.True(t, result[0].IsIndexed)
	assert.Equal(t, api.StatusDegraded, result[1].Status)
	assert.Equal(t, api.StatusUnknown, result[2].Status)

	source.AssertExpectations(t)
}

func TestService_ListWithStatus_ListFails(t *testing.T) {
	source := new(MockSource)
	source.On("ListStatusPages", mock.Anything).Return([]api.StatusPage(nil), errors.New("connection refused"))

	_, err := NewService(source, 2, 0, 0).ListWithStatus(context.Background())
	assert.EqualError(t, err, "connection refused")
	source.AssertNotCalled(t, "GetCurrentStatus", mock.Anything, mock.Anything)
}

func TestService_Search(t *testing.T) {
	source := new(MockSource)
	source.On("SearchStatusPages", mock.Anything, "pay", 20).Return([]api.StatusPage{{Name: "payu"}}, nil)

	pages, err := NewService(source, 1, 0, 0).Search(context.Background(), "pay")
	require.NoError(t, err)
	assert.Len(t, pages, 1)
	source.AssertExpectations(t)
}

func TestService_GetCompanyDetail(t *testing.T) {
	now := time.Date(2024, 1, 5, 12, 0, 0, 0, time.UTC)
	page := &api.StatusPage{Name: "payu", URL: "https://status.payu.com", IsIndexed: true}
	incidents := []api.Incident{
		{Title: "old", StartTime: now.Add(-48 * time.Hour)},
		{Title: "new", StartTime: now.Add(-time.Hour)},
		{Title: "middle", StartTime: now.Add(-24 * time.Hour)},
	}

	source := new(MockSource)
	source.On("GetStatusPage", mock.Anything, "payu").Return(page, nil)
	source.On("GetCurrentStatus", mock.Anything, page.URL).
		Return(&api.CurrentStatusResponse{Status: api.StatusDegraded, IsIndexed: true}, nil)
	source.On("GetIncidents", mock.Anything, page.URL, 10).Return(incidents, nil)

	detail, err := NewService(source, 2, 10, 0).GetCompanyDetail(context.Background(), "payu")
	require.NoError(t, err)

	assert.Equal(t, "payu", detail.StatusPage.Name)
	assert.Equal(t, api.StatusDegraded, detail.Status)
	assert.True(t, detail.IsIndexed)
	require.Len(t, detail.Incidents, 3)
	assert.Equal(t, "new", detail.Incidents[0].Title)
	assert.Equal(t, "middle", detail.Incidents[1].Title)
	assert.Equal(t, "old", detail.Incidents[2].Title)
}

func TestService_GetCompanyDetail_NotIndexed(t *testing.T) {
	page := &api.StatusPage{Name: "rohlik", URL: "https://status.rohlik.cz"}

	source := new(MockSource)
	source.On("GetStatusPage", mock.Anything, "rohlik").Return(page, nil)
	source.On("GetCurrentStatus", mock.Anything, page.URL).
		Return(&api.CurrentStatusResponse{Status: api.StatusUnknown, IsIndexed: false}, nil)

	detail, err := NewService(source, 2, 0, 0).GetCompanyDetail(context.Background(), "rohlik")
	require.NoError(t, err)

	assert.False(t, detail.IsIndexed)
	assert.Empty(t, detail.Incidents)
	source.AssertNotCalled(t, "GetIncidents", mock.Anything, mock.Anything, mock.Anything)
}

func TestService_GetCompanyDetail_StatusFailureDegrades(t *testing.T) {
	page := &api.StatusPage{Name: "payu", URL: "https://status.payu.com", IsIndexed: true}

	source := new(MockSource)
	source.On("GetStatusPage", mock.Anything, "payu").Return(page, nil)
	source.On("GetCurrentStatus", mock.Anything, page.URL).Return(nil, errors.New("HTTP 502"))
	source.On("GetIncidents", mock.Anything, page.URL, DefaultIncidentLimit).Return([]api.Incident{}, nil)

	detail, err := NewService(source, 2, 0, 0).GetCompanyDetail(context.Background(), "payu")
	require.NoError(t, err)
	assert.Equal(t, api.StatusUnknown, detail.Status)
	assert.True(t, detail.IsIndexed)
}

func TestService_GetCompanyDetail_NotFound(t *testing.T) {
	source := new(MockSource)
	source.On("GetStatusPage", mock.Anything, "nobody").Return(nil, ErrNotFound)

	_, err := NewService(source, 2, 0, 0).GetCompanyDetail(context.Background(), "nobody")
	assert.ErrorIs(t, err, ErrNotFound)
}

func TestSortIncidents_Stable(t *testing.T) {
	at := time.Date(2024, 1, 5, 9, 0, 0, 0, time.UTC)
	incidents := []api.Incident{{Title: "a", StartTime: at}, {Title: "b", StartTime: at}}

	SortIncidents(incidents)
	assert.Equal(t, "a", incidents[0].Title)
	assert.Equal(t, "b", incidents[1].Title)
}
