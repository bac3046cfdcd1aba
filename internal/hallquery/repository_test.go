package hallquery

import (
	"testing"
	"time"

	"github.com/DATA-DOG/go-sqlmock"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"gorm.io/driver/postgres"
	"gorm.io/gorm"
	"gorm.io/gorm/logger"
)

func newMockRepository(t *testing.T) (Repository, sqlmock.Sqlmock) {
	t.Helper()

	sqlDB, mock, err := sqlmock.New()
	require.NoError(t, err)
	t.Cleanup(func() { sqlDB.Close() })

	db, err := gorm.Open(postgres.New(postgres.Config{Conn: sqlDB}), &gorm.Config{
		SkipDefaultTransaction: true,
		Logger:                 logger.Default.LogMode(logger.Silent),
	})
	require.NoError(t, err)

	return NewRepository(db), mock
}

func searchRows() *sqlmock.Rows {
	return sqlmock.NewRows([]string{
		"id", "name", "slug", "description", "city", "capacity",
		"is_premium", "created_at", "min_price", "min_currency",
	})
}

func TestSearchHallsPriceBoundsLiveInHaving(t *testing.T) {
	repo, mock := newMockRepository(t)

	// both bounds compare the MIN aggregate, so they must land in HAVING —
	// a WHERE would also keep unpriced halls, which the bounds drop
	having := `HAVING MIN\(hall_product_rates\.price\) >= \$\d+ AND MIN\(hall_product_rates\.price\) <= \$\d+`

	mock.ExpectQuery(`SELECT count\(\*\) FROM \(SELECT halls\.id FROM "halls" .*` + having + `\) AS grouped`).
		WillReturnRows(sqlmock.NewRows([]string{"count"}).AddRow(1))
	mock.ExpectQuery(`SELECT halls\.id, .*MIN\(hall_product_rates\.price\) AS min_price.* WHERE halls\.status = \$\d+ .*` +
		having + ` ORDER BY MIN\(hall_product_rates\.price\) ASC NULLS LAST`).
		WillReturnRows(searchRows().
			AddRow(1, "Palais A", "palais-a", "", "Casablanca", 300, true, time.Now(), "1500.00", "MAD"))

	priceMin, priceMax := 1000.0, 5000.0
	rows, total, err := repo.SearchHalls(PublicListFilter{
		PriceMin: &priceMin,
		PriceMax: &priceMax,
		Sort:     SortPriceAsc,
		Page:     1,
		Limit:    20,
	})
	require.NoError(t, err)

	assert.Equal(t, int64(1), total)
	require.Len(t, rows, 1)
	require.NotNil(t, rows[0].MinPrice)
	assert.Equal(t, "1500.00", *rows[0].MinPrice)
	assert.NoError(t, mock.ExpectationsWereMet())
}

func TestSearchHallsDateFilterUsesNotExists(t *testing.T) {
	repo, mock := newMockRepository(t)

	notExists := `NOT EXISTS \(SELECT 1 FROM hall_blocked_dates b WHERE b\.hall_id = halls\.id ` +
		`AND b\.start_date <= \$\d+ AND \(b\.end_date IS NULL OR b\.end_date >= \$\d+\)\)`

	mock.ExpectQuery(`SELECT count\(\*\) FROM \(SELECT halls\.id FROM "halls" .*` + notExists).
		WillReturnRows(sqlmock.NewRows([]string{"count"}).AddRow(0))
	mock.ExpectQuery(notExists + `.* GROUP BY .* ORDER BY halls\.is_premium DESC, halls\.created_at DESC`).
		WillReturnRows(searchRows())

	date := time.Date(2026, 9, 12, 0, 0, 0, 0, time.UTC)
	rows, total, err := repo.SearchHalls(PublicListFilter{
		Date:  &date,
		Page:  1,
		Limit: 20,
	})
	require.NoError(t, err)

	assert.Equal(t, int64(0), total)
	assert.Empty(t, rows)
	assert.NoError(t, mock.ExpectationsWereMet())
}

func TestSearchHallsCapacitySortPushesNullsLast(t *testing.T) {
	repo, mock := newMockRepository(t)

	mock.ExpectQuery(`SELECT count\(\*\) FROM \(SELECT halls\.id FROM "halls"`).
		WillReturnRows(sqlmock.NewRows([]string{"count"}).AddRow(2))
	mock.ExpectQuery(`WHERE halls\.status = \$\d+ GROUP BY .* ORDER BY halls\.capacity DESC NULLS LAST`).
		WillReturnRows(searchRows().
			AddRow(1, "Palais A", "palais-a", "", "Casablanca", 500, false, time.Now(), nil, nil).
			AddRow(2, "Palais B", "palais-b", "", "Rabat", nil, false, time.Now(), nil, nil))

	rows, total, err := repo.SearchHalls(PublicListFilter{
		Sort:  SortCapacityDesc,
		Page:  1,
		Limit: 20,
	})
	require.NoError(t, err)

	assert.Equal(t, int64(2), total)
	require.Len(t, rows, 2)
	assert.Nil(t, rows[1].Capacity)
	assert.Nil(t, rows[1].MinPrice)
	assert.NoError(t, mock.ExpectationsWereMet())
}
