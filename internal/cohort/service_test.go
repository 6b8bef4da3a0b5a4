package cohort_test

import (
	"context"
	"errors"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.uber.org/mock/gomock"

	"github.com/dualbank/backoffice/internal/cohort"
	"github.com/dualbank/backoffice/internal/registry"
	"github.com/dualbank/backoffice/internal/txlog"
)

const taxID = "12345678000190"

func registeredClient() *registry.Client {
	return &registry.Client{
		Name:         "Padaria Central",
		TaxID:        taxID,
		RegisteredAt: time.Date(2026, 2, 1, 0, 0, 0, 0, time.UTC),
	}
}

func TestService_Enroll(t *testing.T) {
	type testCase struct {
		name      string
		taxID     string
		setupMock func(repo *MockRepository, clients *MockClientDirectory)
		wantErr   error
		wantAny   bool
	}

	tests := []testCase{
		{
			name:  "Success",
			taxID: "12.345.678/0001-90",
			setupMock: func(repo *MockRepository, clients *MockClientDirectory) {
				clients.EXPECT().Get(gomock.Any(), taxID).Return(registeredClient(), nil)
				repo.EXPECT().GetRecord(gomock.Any(), taxID).Return(nil, cohort.ErrNotFound)
				repo.EXPECT().CreateRecord(gomock.Any(), gomock.Any()).Return(nil)
			},
		},
		{
			name:  "ClientNotRegistered",
			taxID: taxID,
			setupMock: func(repo *MockRepository, clients *MockClientDirectory) {
				clients.EXPECT().Get(gomock.Any(), taxID).Return(nil, registry.ErrNotFound)
			},
			wantErr: registry.ErrNotFound,
		},
		{
			name:  "AlreadyEnrolled",
			taxID: taxID,
			setupMock: func(repo *MockRepository, clients *MockClientDirectory) {
				clients.EXPECT().Get(gomock.Any(), taxID).Return(registeredClient(), nil)
				repo.EXPECT().GetRecord(gomock.Any(), taxID).Return(&cohort.Record{TaxID: taxID}, nil)
			},
			wantErr: cohort.ErrAlreadyEnrolled,
		},
		{
			name:  "RepoError",
			taxID: taxID,
			setupMock: func(repo *MockRepository, clients *MockClientDirectory) {
				clients.EXPECT().Get(gomock.Any(), taxID).Return(registeredClient(), nil)
				repo.EXPECT().GetRecord(gomock.Any(), taxID).Return(nil, errors.New("sheet locked"))
			},
			wantAny: true,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			ctrl := gomock.NewController(t)
			defer ctrl.Finish()

			repo := NewMockRepository(ctrl)
			clients := NewMockClientDirectory(ctrl)
			tt.setupMock(repo, clients)

			svc := cohort.NewService(repo, clients)
			got, err := svc.Enroll(context.Background(), tt.taxID)

			if tt.wantErr != nil {
				assert.ErrorIs(t, err, tt.wantErr)
				assert.Nil(t, got)

				return
			}

			if tt.wantAny {
				assert.Error(t, err)
				assert.Nil(t, got)

				return
			}

			require.NoError(t, err)
			require.NotNil(t, got)
			assert.Equal(t, taxID, got.TaxID)
			// The enrollment date comes from the registry, not the caller.
			assert.Equal(t, registeredClient().RegisteredAt, got.EnrolledAt)
			assert.Equal(t, cohort.FrequencyDaily, got.Frequency)
			assert.NotNil(t, got.Observations)
		})
	}
}

func TestService_RecordTransaction(t *testing.T) {
	ctrl := gomock.NewController(t)
	defer ctrl.Finish()

	existing := &cohort.Record{
		TaxID:        taxID,
		EnrolledAt:   time.Date(2026, 2, 1, 0, 0, 0, 0, time.UTC),
		Observations: map[string]float64{"2026-02-02": 1000},
		Frequency:    cohort.FrequencyDaily,
	}

	repo := NewMockRepository(ctrl)
	clients := NewMockClientDirectory(ctrl)

	clients.EXPECT().Get(gomock.Any(), taxID).Return(registeredClient(), nil)
	repo.EXPECT().GetRecord(gomock.Any(), taxID).Return(existing, nil)
	repo.EXPECT().
		SaveObservation(gomock.Any(), gomock.Any(), gomock.Any()).
		DoAndReturn(func(_ context.Context, rec *cohort.Record, tx *txlog.Transaction) error {
			assert.Equal(t, taxID, tx.TaxID)
			assert.Equal(t, 2000.0, tx.Amount)
			assert.Equal(t, txlog.StatusProcessed, tx.Status)
			assert.WithinDuration(t, time.Now(), tx.Date, time.Minute)
			return nil
		})

	svc := cohort.NewService(repo, clients)
	got, err := svc.RecordTransaction(context.Background(), cohort.TransactionParams{
		TaxID:     taxID,
		Amount:    2000,
		Frequency: cohort.FrequencySometimes,
	})
	require.NoError(t, err)

	assert.Len(t, got.Observations, 2)
	assert.Equal(t, 1500.0, got.RunningAverage)
	assert.Equal(t, cohort.FrequencySometimes, got.Frequency)
}

func TestService_RecordTransaction_EnrollsImplicitly(t *testing.T) {
	ctrl := gomock.NewController(t)
	defer ctrl.Finish()

	repo := NewMockRepository(ctrl)
	clients := NewMockClientDirectory(ctrl)

	clients.EXPECT().Get(gomock.Any(), taxID).Return(registeredClient(), nil)
	repo.EXPECT().GetRecord(gomock.Any(), taxID).Return(nil, cohort.ErrNotFound)
	repo.EXPECT().SaveObservation(gomock.Any(), gomock.Any(), gomock.Any()).Return(nil)

	svc := cohort.NewService(repo, clients)
	got, err := svc.RecordTransaction(context.Background(), cohort.TransactionParams{
		TaxID:  taxID,
		Amount: 300,
	})
	require.NoError(t, err)

	assert.Equal(t, registeredClient().RegisteredAt, got.EnrolledAt)
	assert.Len(t, got.Observations, 1)
	assert.Equal(t, 300.0, got.RunningAverage)
}

func TestService_RecordTransaction_Validation(t *testing.T) {
	ctrl := gomock.NewController(t)
	defer ctrl.Finish()

	repo := NewMockRepository(ctrl)
	clients := NewMockClientDirectory(ctrl)

	svc := cohort.NewService(repo, clients)

	_, err := svc.RecordTransaction(context.Background(), cohort.TransactionParams{
		TaxID:  taxID,
		Amount: 0,
	})
	assert.Error(t, err)

	_, err = svc.RecordTransaction(context.Background(), cohort.TransactionParams{
		TaxID:  taxID,
		Amount: -5,
	})
	assert.Error(t, err)
}

func TestService_RecordTransaction_UnregisteredClient(t *testing.T) {
	ctrl := gomock.NewController(t)
	defer ctrl.Finish()

	repo := NewMockRepository(ctrl)
	clients := NewMockClientDirectory(ctrl)
	clients.EXPECT().Get(gomock.Any(), taxID).Return(nil, registry.ErrNotFound)

	svc := cohort.NewService(repo, clients)
	_, err := svc.RecordTransaction(context.Background(), cohort.TransactionParams{
		TaxID:  taxID,
		Amount: 100,
	})
	assert.ErrorIs(t, err, registry.ErrNotFound)
}

func TestService_Remove_NormalizesTaxID(t *testing.T) {
	ctrl := gomock.NewController(t)
	defer ctrl.Finish()

	repo := NewMockRepository(ctrl)
	clients := NewMockClientDirectory(ctrl)
	repo.EXPECT().DeleteRecord(gomock.Any(), taxID).Return(nil)

	svc := cohort.NewService(repo, clients)
	assert.NoError(t, svc.Remove(context.Background(), "12.345.678/0001-90"))
}

func TestRecord_ObserveUpsertsSameDay(t *testing.T) {
	rec := &cohort.Record{TaxID: taxID}
	day := time.Date(2026, 2, 10, 9, 0, 0, 0, time.UTC)

	rec.Observe(day, 100)
	// A second observation on the same day replaces, never accumulates.
	rec.Observe(day.Add(4*time.Hour), 200)

	assert.Len(t, rec.Observations, 1)
	assert.Equal(t, 200.0, rec.RunningAverage)
}

func TestRecord_RefreshAverage(t *testing.T) {
	rec := &cohort.Record{
		Observations: map[string]float64{
			"2026-02-01": 100,
			"2026-02-02": 200,
			"2026-02-03": 250,
		},
	}
	rec.RefreshAverage()
	assert.InDelta(t, 183.33, rec.RunningAverage, 1e-9)

	rec.Observations = nil
	rec.RefreshAverage()
	assert.Zero(t, rec.RunningAverage)
}
