package service

import (
	"fmt"
	"time"

	"github.com/google/uuid"
)

const fechaLayout = "2006-01-02"

func parseFecha(s string) (time.Time, error) {
	t, err := time.Parse(fechaLayout, s)
	if err != nil {
		return time.Time{}, fmt.Errorf("fecha inválida %q: %w", s, err)
	}
	return t, nil
}

func parseFechaPtr(s *string) (*time.Time, error) {
	if s == nil || *s == "" {
		return nil, nil
	}
	t, err := parseFecha(*s)
	if err != nil {
		return nil, err
	}
	return &t, nil
}

func fechaStr(t time.Time) string { return t.Format(fechaLayout) }

func fechaStrPtr(t *time.Time) *string {
	if t == nil {
		return nil
	}
	s := t.Format(fechaLayout)
	return &s
}

func parseUUIDPtr(s *string) (*uuid.UUID, error) {
	if s == nil || *s == "" {
		return nil, nil
	}
	id, err := uuid.Parse(*s)
	if err != nil {
		return nil, fmt.Errorf("id inválido %q: %w", *s, err)
	}
	return &id, nil
}

func uuidStrPtr(id *uuid.UUID) *string {
	if id == nil {
		return nil
	}
	s := id.String()
	return &s
}
