package repository

import (
	"context"
	"errors"
	"os"
	"path/filepath"
	"testing"
	"time"

	"github.com/DATA-DOG/go-sqlmock"
	"github.com/jmoiron/sqlx"
	"github.com/piresc/vigilante/internal/pkg/apperrors"
	"github.com/piresc/vigilante/internal/pkg/database"
	"github.com/piresc/vigilante/internal/pkg/models"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func setupMockDB(t *testing.T) (*database.PostgresClient, sqlmock.Sqlmock) {
	db, mock, err := sqlmock.New()
	require.NoError(t, err)
	t.Cleanup(func() { db.Close() })
	return database.NewPostgresClientFromDB(sqlx.NewDb(db, "sqlmock")), mock
}

func TestPostgresCatalog_LoadRadars(t *testing.T) {
	client, mock := setupMockDB(t)
	created := time.Date(2024, 6, 1, 0, 0, 0, 0, time.UTC)

	rows := sqlmock.NewRows([]string{"id", "latitude", "longitude", "speed_limit", "radar_type", "description", "created_at"}).
		AddRow("r1", 38.7223, -9.1393, 80, "fixed", "Radar fixo A1 Sul-Norte", created).
		AddRow("r2", 41.1579, -8.6291, 120, "fixed", "Radar VCI Porto", created)
	mock.ExpectQuery("SELECT id, latitude, longitude, speed_limit, radar_type, description, created_at FROM radars").
		WillReturnRows(rows)

	radars, err := NewPostgresCatalog(client).LoadRadars(context.Background())

	require.NoError(t, err)
	require.Len(t, radars, 2)
	assert.Equal(t, models.HazardKindRadar, radars[0].Kind)
	assert.Equal(t, 80, radars[0].SpeedLimit)
	assert.Equal(t, "Radar VCI Porto", radars[1].Description)
	assert.Equal(t, created, radars[1].CreatedAt)
	assert.NoError(t, mock.ExpectationsWereMet())
}

func TestPostgresCatalog_QueryError(t *testing.T) {
	client, mock := setupMockDB(t)
	mock.ExpectQuery("SELECT (.+) FROM radars").WillReturnError(errors.New("relation \"radars\" does not exist"))

	radars, err := NewPostgresCatalog(client).LoadRadars(context.Background())

	assert.Nil(t, radars)
	assert.ErrorContains(t, err, "failed to load radars")
	assert.NoError(t, mock.ExpectationsWereMet())
}

func TestParseRadarCatalog(t *testing.T) {
	loadedAt := time.Date(2025, 3, 1, 8, 0, 0, 0, time.UTC)

	tests := []struct {
		name    string
		yaml    string
		want    int
		wantErr error
	}{
		{
			name: "valid",
			yaml: `
radars:
  - id: r1
    latitude: 38.7223
    longitude: -9.1393
    speed_limit: 80
    type: fixed
    description: Radar fixo A1 Sul-Norte
  - id: r2
    latitude: 41.1579
    longitude: -8.6291
    speed_limit: 120
    description: Radar VCI Porto
`,
			want: 2,
		},
		{
			name:    "missing id",
			yaml:    "radars:\n  - latitude: 38.7\n    longitude: -9.1\n    speed_limit: 50\n",
			wantErr: apperrors.ErrValidation,
		},
		{
			name:    "bad latitude",
			yaml:    "radars:\n  - id: r1\n    latitude: 98.7\n    longitude: -9.1\n    speed_limit: 50\n",
			wantErr: apperrors.ErrValidation,
		},
		{
			name:    "unknown type",
			yaml:    "radars:\n  - id: r1\n    latitude: 38.7\n    longitude: -9.1\n    speed_limit: 50\n    type: laser\n",
			wantErr: apperrors.ErrValidation,
		},
		{
			name: "empty",
			yaml: "radars: []\n",
			want: 0,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			radars, err := ParseRadarCatalog([]byte(tt.yaml), loadedAt)
			if tt.wantErr != nil {
				assert.ErrorIs(t, err, tt.wantErr)
				return
			}
			require.NoError(t, err)
			assert.Len(t, radars, tt.want)
			for _, r := range radars {
				assert.Equal(t, models.RadarTypeFixed, r.RadarType)
				assert.Equal(t, loadedAt, r.CreatedAt)
			}
		})
	}

	_, err := ParseRadarCatalog([]byte("radars: [:"), loadedAt)
	assert.ErrorContains(t, err, "failed to parse radar catalog")
}

func TestFileCatalog_LoadRadars(t *testing.T) {
	path := filepath.Join(t.TempDir(), "radars.yaml")
	require.NoError(t, os.WriteFile(path, []byte("radars:\n  - id: r1\n    latitude: 38.7223\n    longitude: -9.1393\n    speed_limit: 80\n"), 0o600))

	radars, err := NewFileCatalog(path, nil).LoadRadars(context.Background())
	require.NoError(t, err)
	require.Len(t, radars, 1)
	assert.Equal(t, "r1", radars[0].ID)

	_, err = NewFileCatalog(filepath.Join(t.TempDir(), "missing.yaml"), nil).LoadRadars(context.Background())
	assert.ErrorContains(t, err, "failed to read radar catalog")
}
