package services

import "time"

func (s *AppointmentService) SetNow(now func() time.Time) {
	s.now = now
}
