package postgres

import (
	"math/big"
	"testing"
	"time"

	"github.com/jackc/pgx/v5/pgtype"
	"github.com/stretchr/testify/assert"
)

func TestPgNumericToDecimal(t *testing.T) {
	assert.True(t, pgNumericToDecimal(pgtype.Numeric{}).IsZero(), "invalid numeric is zero")
	assert.True(t, pgNumericToDecimal(pgtype.Numeric{Valid: true}).IsZero(), "nil int is zero")

	n := pgtype.Numeric{Int: big.NewInt(801299), Exp: -2, Valid: true}
	assert.Equal(t, "8012.99", pgNumericToDecimal(n).StringFixed(2))
}

func TestPgDateToTime(t *testing.T) {
	assert.True(t, pgDateToTime(pgtype.Date{}).IsZero())

	loc := time.FixedZone("UTC+8", 8*3600)
	d := pgtype.Date{Time: time.Date(2025, time.February, 28, 0, 0, 0, 0, loc), Valid: true}
	got := pgDateToTime(d)
	assert.Equal(t, time.Date(2025, time.February, 28, 0, 0, 0, 0, time.UTC), got)
}

func TestTimeToPgDate(t *testing.T) {
	assert.False(t, timeToPgDate(time.Time{}).Valid)
	assert.True(t, timeToPgDate(time.Date(2025, time.March, 1, 0, 0, 0, 0, time.UTC)).Valid)
}
