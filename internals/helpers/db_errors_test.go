package helper

import (
	"errors"
	"fmt"
	"testing"

	"github.com/jackc/pgx/v5/pgconn"
)

func TestIsUniqueViolation(t *testing.T) {
	tests := []struct {
		name string
		err  error
		want bool
	}{
		{"nil", nil, false},
		{"pg unique", &pgconn.PgError{Code: "23505"}, true},
		{"pg foreign key", &pgconn.PgError{Code: "23503"}, false},
		{"wrapped pg unique", fmt.Errorf("create: %w", &pgconn.PgError{Code: "23505"}), true},
		{"sqlite wording", errors.New("UNIQUE constraint failed: rooms.room_name"), true},
		{"duplicate wording", errors.New("duplicate key value violates constraint"), true},
		{"other error", errors.New("connection refused"), false},
	}
	for _, tt := range tests {
		if got := IsUniqueViolation(tt.err); got != tt.want {
			t.Errorf("%s: IsUniqueViolation = %v, want %v", tt.name, got, tt.want)
		}
	}
}
