package registry_test

import (
	"context"
	"errors"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.uber.org/mock/gomock"

	"github.com/dualbank/backoffice/internal/registry"
)

func TestService_Register(t *testing.T) {
	type args struct {
		params registry.RegisterParams
	}

	type testCase struct {
		name      string
		args      args
		setupMock func(m *registry.MockRepository)
		wantErr   error
		wantAny   bool
	}

	tests := []testCase{
		{
			name: "Success",
			args: args{
				params: registry.RegisterParams{
					Name:         "Padaria Central",
					TaxID:        "12.345.678/0001-90",
					RegisteredAt: time.Date(2026, 2, 1, 0, 0, 0, 0, time.UTC),
				},
			},
			setupMock: func(m *registry.MockRepository) {
				m.EXPECT().
					GetClient(gomock.Any(), "12345678000190").
					Return(nil, registry.ErrNotFound)
				m.EXPECT().
					CreateClient(gomock.Any(), gomock.Any()).
					DoAndReturn(func(_ context.Context, c *registry.Client) error {
						c.RowID = "row-1"
						return nil
					})
			},
		},
		{
			name: "Duplicate",
			args: args{
				params: registry.RegisterParams{
					Name:  "Padaria Central",
					TaxID: "12345678000190",
				},
			},
			setupMock: func(m *registry.MockRepository) {
				m.EXPECT().
					GetClient(gomock.Any(), "12345678000190").
					Return(&registry.Client{TaxID: "12345678000190"}, nil)
			},
			wantErr: registry.ErrDuplicate,
		},
		{
			name: "MissingName",
			args: args{
				params: registry.RegisterParams{TaxID: "12345678000190"},
			},
			wantAny: true,
		},
		{
			name: "MissingTaxID",
			args: args{
				params: registry.RegisterParams{Name: "Padaria Central"},
			},
			wantAny: true,
		},
		{
			name: "RepoError",
			args: args{
				params: registry.RegisterParams{
					Name:  "Padaria Central",
					TaxID: "12345678000190",
				},
			},
			setupMock: func(m *registry.MockRepository) {
				m.EXPECT().
					GetClient(gomock.Any(), "12345678000190").
					Return(nil, registry.ErrNotFound)
				m.EXPECT().
					CreateClient(gomock.Any(), gomock.Any()).
					Return(errors.New("sheet locked"))
			},
			wantAny: true,
		},
		{
			// A failed duplicate lookup must abort the registration, never
			// fall through to a write with the duplicate check disabled.
			name: "LookupErrorBlocksWrite",
			args: args{
				params: registry.RegisterParams{
					Name:  "Padaria Central",
					TaxID: "12345678000190",
				},
			},
			setupMock: func(m *registry.MockRepository) {
				m.EXPECT().
					GetClient(gomock.Any(), "12345678000190").
					Return(nil, errors.New("client row abc: parsing date"))
			},
			wantAny: true,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			ctrl := gomock.NewController(t)
			defer ctrl.Finish()

			repo := registry.NewMockRepository(ctrl)
			if tt.setupMock != nil {
				tt.setupMock(repo)
			}

			svc := registry.NewService(repo)
			got, err := svc.Register(context.Background(), tt.args.params)

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
			assert.Equal(t, "12345678000190", got.TaxID)
			assert.Equal(t, "ACTIVE", got.Status)
			assert.NotNil(t, got.Revenue)
		})
	}
}

func TestService_Register_DefaultsRegisteredAt(t *testing.T) {
	ctrl := gomock.NewController(t)
	defer ctrl.Finish()

	repo := registry.NewMockRepository(ctrl)
	repo.EXPECT().
		GetClient(gomock.Any(), "12345678000190").
		Return(nil, registry.ErrNotFound)
	repo.EXPECT().
		CreateClient(gomock.Any(), gomock.Any()).
		Return(nil)

	svc := registry.NewService(repo)
	got, err := svc.Register(context.Background(), registry.RegisterParams{
		Name:  "Padaria Central",
		TaxID: "12345678000190",
	})
	require.NoError(t, err)

	assert.False(t, got.RegisteredAt.IsZero())
	assert.WithinDuration(t, time.Now(), got.RegisteredAt, time.Minute)
}

func TestService_List(t *testing.T) {
	type testCase struct {
		name      string
		filter    string
		setupMock func(m *registry.MockRepository)
		wantNames []string
		wantErr   bool
	}

	clients := []*registry.Client{
		{Name: "Padaria Central"},
		{Name: "Mercearia Sul"},
		{Name: "Padoca do Bairro"},
	}

	tests := []testCase{
		{
			name: "All",
			setupMock: func(m *registry.MockRepository) {
				m.EXPECT().ListClients(gomock.Any()).Return(clients, nil)
			},
			wantNames: []string{"Padaria Central", "Mercearia Sul", "Padoca do Bairro"},
		},
		{
			name:   "NameFilterIsCaseInsensitive",
			filter: "PAD",
			setupMock: func(m *registry.MockRepository) {
				m.EXPECT().ListClients(gomock.Any()).Return(clients, nil)
			},
			wantNames: []string{"Padaria Central", "Padoca do Bairro"},
		},
		{
			name:   "NoMatches",
			filter: "farmacia",
			setupMock: func(m *registry.MockRepository) {
				m.EXPECT().ListClients(gomock.Any()).Return(clients, nil)
			},
			wantNames: nil,
		},
		{
			name: "RepoError",
			setupMock: func(m *registry.MockRepository) {
				m.EXPECT().ListClients(gomock.Any()).Return(nil, errors.New("sheet missing"))
			},
			wantErr: true,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			ctrl := gomock.NewController(t)
			defer ctrl.Finish()

			repo := registry.NewMockRepository(ctrl)
			tt.setupMock(repo)

			svc := registry.NewService(repo)
			got, err := svc.List(context.Background(), tt.filter)

			if tt.wantErr {
				assert.Error(t, err)

				return
			}

			require.NoError(t, err)
			require.Len(t, got, len(tt.wantNames))
			for i, name := range tt.wantNames {
				assert.Equal(t, name, got[i].Name)
			}
		})
	}
}

func TestService_Get_NormalizesTaxID(t *testing.T) {
	ctrl := gomock.NewController(t)
	defer ctrl.Finish()

	repo := registry.NewMockRepository(ctrl)
	repo.EXPECT().
		GetClient(gomock.Any(), "12345678000190").
		Return(&registry.Client{TaxID: "12345678000190"}, nil)

	svc := registry.NewService(repo)
	got, err := svc.Get(context.Background(), "12.345.678/0001-90")
	require.NoError(t, err)
	assert.Equal(t, "12345678000190", got.TaxID)
}

func TestNormalizeTaxID(t *testing.T) {
	tests := []struct {
		in   string
		want string
	}{
		{in: "12.345.678/0001-90", want: "12345678000190"},
		{in: " 12345678000190 ", want: "12345678000190"},
		{in: "12345678900.0", want: "12345678900"},
		{in: "abc", want: ""},
		{in: "", want: ""},
	}

	for _, tt := range tests {
		assert.Equal(t, tt.want, registry.NormalizeTaxID(tt.in), tt.in)
	}
}
