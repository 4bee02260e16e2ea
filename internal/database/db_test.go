package database

import (
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
)

func TestDSN(t *testing.T) {
	p := Params{User: "app", Password: "s3cret", Host: "db", Port: "3306", Name: "booking"}
	assert.Equal(t,
		"app:s3cret@tcp(db:3306)/booking?charset=utf8mb4&parseTime=true&loc=UTC",
		p.dsn())
}

func TestDSNOmitsEmptyPassword(t *testing.T) {
	p := Params{User: "app", Host: "localhost", Port: "3306", Name: "booking"}
	assert.Equal(t,
		"app@tcp(localhost:3306)/booking?charset=utf8mb4&parseTime=true&loc=UTC",
		p.dsn())
}

func TestPoolDefaults(t *testing.T) {
	p := Params{}.withDefaults()
	assert.Equal(t, 25, p.MaxOpenConns)
	assert.Equal(t, 25, p.MaxIdleConns)
	assert.Equal(t, 30*time.Minute, p.ConnMaxLifetime)
}

func TestPoolSettingsKeptWhenSet(t *testing.T) {
	p := Params{MaxOpenConns: 5, MaxIdleConns: 2, ConnMaxLifetime: time.Minute}.withDefaults()
	assert.Equal(t, 5, p.MaxOpenConns)
	assert.Equal(t, 2, p.MaxIdleConns)
	assert.Equal(t, time.Minute, p.ConnMaxLifetime)
}
