package main

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestDatabaseName(t *testing.T) {
	tests := []struct {
		dsn  string
		want string
	}{
		{dsn: "postgres://app:secret@db:5432/main?sslmode=disable", want: "main"},
		{dsn: "postgresql://app@db/edu", want: "edu"},
		{dsn: "host=db user=app dbname=main sslmode=disable", want: "main"},
		{dsn: "host=db dbname='edu'", want: "edu"},
	}
	for _, tt := range tests {
		t.Run(tt.dsn, func(t *testing.T) {
			got, err := databaseName(tt.dsn)
			require.NoError(t, err)
			assert.Equal(t, tt.want, got)
		})
	}
}

func TestDatabaseName_Missing(t *testing.T) {
	_, err := databaseName("postgres://app@db:5432")
	require.Error(t, err)

	_, err = databaseName("host=db user=app")
	require.Error(t, err)
}
